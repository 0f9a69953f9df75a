// Package services implements the core operations: crawling and indexing
// remote repositories, searching indexed content, managing the local
// upload corpus and listing/deleting corpora.
package services
