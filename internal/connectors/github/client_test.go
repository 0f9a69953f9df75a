package github

import (
	"testing"

	gh "github.com/google/go-github/v80/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTreeEntries_KeepsBlobsOnly(t *testing.T) {
	tree := &gh.Tree{
		Entries: []*gh.TreeEntry{
			{Path: gh.Ptr("src"), Type: gh.Ptr("tree"), SHA: gh.Ptr("t1")},
			{Path: gh.Ptr("src/manifest.rs"), Type: gh.Ptr("blob"), SHA: gh.Ptr("b1"), Size: gh.Ptr(42)},
			{Path: gh.Ptr("link"), Type: gh.Ptr("commit"), SHA: gh.Ptr("c1")},
		},
	}

	entries, err := treeEntries(tree)
	require.NoError(t, err)

	require.Len(t, entries, 1)
	assert.Equal(t, "src/manifest.rs", entries[0].Path)
	assert.Equal(t, "b1", entries[0].SHA)
	assert.Equal(t, 42, entries[0].Size)
}

func TestTreeEntries_RefusesTruncatedTree(t *testing.T) {
	tree := &gh.Tree{
		Truncated: gh.Ptr(true),
		Entries: []*gh.TreeEntry{
			{Path: gh.Ptr("src/partial.rs"), Type: gh.Ptr("blob"), SHA: gh.Ptr("b1")},
		},
	}

	entries, err := treeEntries(tree)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "truncated")
	assert.Nil(t, entries)
}
