// Package searchindex builds and maintains the structured search documents
// that back query and mcpsrv's searchEndpoints tool: one Document per
// endpoint, carrying every field FTS5 cannot index as structured data
// (operation_type, split parameter-name groups, response status codes,
// security scopes) alongside the same searchable_text the store package's
// endpoints_fts virtual table already maintains via triggers.
//
// The index is not transactional with store: Index.CreateFromStore drains
// repository.EndpointRepository in batches and is the recovery path for any
// detected drift, exactly as original_source/swagger_mcp_server's search
// index rebuilds from the relational tables rather than replaying writes.
package searchindex
