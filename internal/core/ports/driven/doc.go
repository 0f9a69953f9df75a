// Package driven defines the outbound ports of the core: persistence,
// the repository content API, the local upload byte store, configuration
// and credentials. Adapters implement these interfaces.
package driven
