package services

import (
	"context"
	"errors"

	"github.com/credentia-labs/corpora-cli/internal/core/ports/driven"
)

// fakeRepositoryAPI is an in-memory content API for crawler and indexer
// tests.
type fakeRepositoryAPI struct {
	defaultBranch string
	branchErr     error

	tree    []driven.TreeEntry
	treeErr error

	blobs    map[string][]byte
	blobErrs map[string]error
}

func (f *fakeRepositoryAPI) DefaultBranch(_ context.Context, _, _ string) (string, error) {
	if f.branchErr != nil {
		return "", f.branchErr
	}
	return f.defaultBranch, nil
}

func (f *fakeRepositoryAPI) Tree(_ context.Context, _, _, _ string) ([]driven.TreeEntry, error) {
	if f.treeErr != nil {
		return nil, f.treeErr
	}
	return f.tree, nil
}

func (f *fakeRepositoryAPI) BlobContent(_ context.Context, _, _, sha string) ([]byte, error) {
	if err, ok := f.blobErrs[sha]; ok {
		return nil, err
	}
	content, ok := f.blobs[sha]
	if !ok {
		return nil, errors.New("blob not found")
	}
	return content, nil
}

// fakeBlobStore serves upload bytes from a map.
type fakeBlobStore struct {
	files map[string][]byte
}

func (f *fakeBlobStore) Read(_ context.Context, path string) ([]byte, error) {
	content, ok := f.files[path]
	if !ok {
		return nil, errors.New("no such file")
	}
	return content, nil
}

func (f *fakeBlobStore) Exists(_ context.Context, path string) bool {
	_, ok := f.files[path]
	return ok
}

// staticTokenProvider always returns the same token or error.
type staticTokenProvider struct {
	token string
	err   error
}

func (p *staticTokenProvider) GetToken(_ context.Context) (string, error) {
	if p.err != nil {
		return "", p.err
	}
	return p.token, nil
}
