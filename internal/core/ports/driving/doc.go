// Package driving defines the inbound ports of the core: the operations
// the CLI, the MCP server and the (out of scope) chat orchestrator call.
package driving
