// Package mcpsrv exposes the ingested knowledge base over the Model Context
// Protocol: searchEndpoints, getSchema, getExample, and getEndpointCategories,
// each registered via mcp.AddTool and wrapped by a common middleware chain
// (validate -> circuit breaker -> pool acquire -> timeout -> retry -> run ->
// record).
//
// Grounded on _examples/erraggy-oastools/internal/mcpserver's server.go
// (tool registration, shared helpers), tools_validate.go (handler signature
// and jsonschema tagging), and config.go (env-driven configuration) —
// restructured around an explicit ServerContext threaded into every handler
// closure instead of that package's cfg/specCache globals, replacing global
// monitor/circuit-breaker singletons with explicit state.
package mcpsrv
