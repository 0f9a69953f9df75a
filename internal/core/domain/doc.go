// Package domain contains the core entities of the corpora engine:
// corpora, indexed documents and search results. It has no dependencies
// on adapters or external services.
package domain
