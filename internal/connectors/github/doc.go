// Package github adapts the GitHub REST API to the RepositoryAPI port
// and hosts the crawler that enumerates a repository's indexable files.
// Requests are rate limited with a proactive token bucket plus reactive
// header tracking so an index run never exhausts the API quota.
package github
