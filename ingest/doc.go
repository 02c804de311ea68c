// Package ingest drives one OpenAPI/Swagger document from a file path to
// queryable rows in store: parse, validate, normalize, categorize, and
// persist, each step its own pipeline stage with a compensating rollback so
// a failure partway through a multi-table write leaves nothing half-done.
//
// Grounded on original_source/swagger_mcp_server/pipeline.py's stage
// sequence (parse -> normalize -> persist -> index) and its
// PipelineContext/StageResult/ProcessingResult shapes, translated from
// async Python stages into a slice of Go Stage values run in order, with
// batch concurrency bounded the way recovery.Accumulator bounds how many
// faults a batch tolerates before giving up.
package ingest
