// Package oaskb converts OpenAPI/Swagger specifications into a queryable
// knowledge base exposed over the Model Context Protocol (MCP).
//
// # Overview
//
// A spec file is ingested once (C9's pipeline: parse, normalize, persist,
// build search index) and then served from a SQLite-backed store through
// four MCP tools: searchEndpoints, getSchema, getExample, and
// getEndpointCategories. Everything downstream of ingestion works off the
// normalized store rows, never the original document.
//
// The pipeline stages live in dedicated packages:
//
//   - parser: streams and decodes the raw JSON document, order-preserving
//   - recovery: classifies decode/structural faults into a recovery taxonomy
//   - validator: validates the decoded document against its OAS version
//   - normalize: converts the validated document into store rows
//   - categorize: assigns and catalogs endpoint categories
//   - consistency: cross-entity invariant checks and a consistency score
//   - store: SQLite schema, migrations, connection pool, backup/restore
//   - repository: generic CRUD plus search-oriented query methods
//   - ingest: wires the above into one transactional pipeline
//   - searchindex: builds and maintains the FTS5 search index
//   - query: query parsing and BM25-inspired relevance ranking
//   - mcpsrv: the MCP tool handlers and their resilience middleware
//   - monitor: per-method metrics, circuit breakers, and health checks
//   - examplegen: curl/http-client/script example generation
//
// # Installation
//
//	go get github.com/erraggy/oaskb
//
// # Quick Start
//
// Ingest a spec and start the MCP server:
//
//	import (
//		"github.com/erraggy/oaskb"
//		"github.com/erraggy/oaskb/ingest"
//		"github.com/erraggy/oaskb/mcpsrv"
//		"github.com/erraggy/oaskb/store"
//	)
//
//	db, err := store.Open(ctx, store.DefaultConfig("oaskb.db"))
//	if err != nil {
//		log.Fatal(err)
//	}
//	if _, err := store.MigrateToLatest(ctx, db, false); err != nil {
//		log.Fatal(err)
//	}
//
//	pipeline := ingest.New(db)
//	res, err := pipeline.Run(ctx, "openapi.json")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	sc := mcpsrv.NewServerContext(db, mcpsrv.LoadConfig())
//	if err := sc.RefreshIndex(ctx, res.APIID); err != nil {
//		log.Fatal(err)
//	}
//	log.Fatal(mcpsrv.Run(ctx, sc, oaskb.Version()))
//
// # Command-Line Interface
//
//	# Ingest a spec into the store, then start the MCP server over stdio
//	oaskb serve -db oaskb.db -ingest openapi.json
//
//	# Start the MCP server over stdio on an existing store
//	oaskb serve -db oaskb.db
//
// Install the CLI:
//
//	go install github.com/erraggy/oaskb/cmd/oaskb@latest
//
// # License
//
// This library is released under the MIT License. See the LICENSE file in
// the repository for full details.
package oaskb
