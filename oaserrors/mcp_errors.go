package oaserrors

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel errors for the MCP-serving error taxonomy (spec categories not
// already covered by errors.go's parse/conversion/config taxonomy).
var (
	// ErrResourceNotFound indicates a requested entity does not exist in the store.
	ErrResourceNotFound = errors.New("resource not found")

	// ErrUnsupportedVersion indicates an OpenAPI/Swagger version this server cannot ingest.
	ErrUnsupportedVersion = errors.New("unsupported version")

	// ErrDatabaseConnection indicates a retriable failure to reach the store.
	ErrDatabaseConnection = errors.New("database connection error")

	// ErrTransient indicates a retriable, otherwise-unclassified internal failure.
	ErrTransient = errors.New("transient error")

	// ErrTimeout indicates a request-scoped deadline was exceeded.
	ErrTimeout = errors.New("timeout")

	// ErrCircuitOpen indicates a method's circuit breaker is open and short-circuiting calls.
	ErrCircuitOpen = errors.New("circuit open")

	// ErrResourceExhausted indicates a bounded pool could not grant a slot before its deadline.
	ErrResourceExhausted = errors.New("resource exhausted")

	// ErrSchemaResolution indicates a non-recoverable failure resolving a schema's dependencies.
	ErrSchemaResolution = errors.New("schema resolution error")

	// ErrCodeGeneration indicates a failure generating an example or code sample.
	ErrCodeGeneration = errors.New("code generation error")

	// ErrMigrationIntegrity indicates an applied migration's checksum no longer matches its source.
	ErrMigrationIntegrity = errors.New("migration integrity error")

	// ErrDataIntegrity indicates a store-level invariant was violated.
	ErrDataIntegrity = errors.New("data integrity error")

	// ErrConflict indicates a write violated a uniqueness or state constraint.
	ErrConflict = errors.New("conflict error")

	// ErrRepository indicates an otherwise-unclassified repository-layer failure.
	ErrRepository = errors.New("repository error")
)

// ValidationInputError represents a client-input validation failure on an MCP
// method parameter. Distinct from the spec-violation ValidationError above,
// which describes a fault in the ingested OpenAPI document itself.
type ValidationInputError struct {
	// Parameter is the name of the offending MCP tool parameter.
	Parameter string
	// Value is the rejected value, sanitized before logging/serialization.
	Value any
	// Message describes why the value was rejected.
	Message string
	// Suggestions lists actionable corrections for the caller.
	Suggestions []string
}

func (e *ValidationInputError) Error() string {
	msg := "validation error"
	if e.Parameter != "" {
		msg += " for parameter " + e.Parameter
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Is reports whether target matches this error type.
func (e *ValidationInputError) Is(target error) bool { return target == ErrValidation }

// ResourceNotFoundError represents a lookup that found no matching entity.
type ResourceNotFoundError struct {
	ResourceType string
	Identifier   string
	Suggestions  []string
}

func (e *ResourceNotFoundError) Error() string {
	msg := "resource not found"
	if e.ResourceType != "" {
		msg += ": " + e.ResourceType
	}
	if e.Identifier != "" {
		msg += fmt.Sprintf(" (%s)", e.Identifier)
	}
	return msg
}

// Is reports whether target matches this error type.
func (e *ResourceNotFoundError) Is(target error) bool { return target == ErrResourceNotFound }

// UnsupportedVersionError represents an OpenAPI/Swagger version this server does not ingest.
type UnsupportedVersionError struct {
	Version string
	Message string
}

func (e *UnsupportedVersionError) Error() string {
	msg := "unsupported version"
	if e.Version != "" {
		msg += ": " + e.Version
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

func (e *UnsupportedVersionError) Is(target error) bool { return target == ErrUnsupportedVersion }

// DatabaseConnectionError represents a retriable failure to reach the store.
type DatabaseConnectionError struct {
	Operation string
	Cause     error
}

func (e *DatabaseConnectionError) Error() string {
	msg := "database connection error"
	if e.Operation != "" {
		msg += ": " + e.Operation
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}
func (e *DatabaseConnectionError) Unwrap() error { return e.Cause }
func (e *DatabaseConnectionError) Is(target error) bool {
	return target == ErrDatabaseConnection || target == ErrTransient
}

// TransientError represents a retriable, otherwise-unclassified internal failure.
type TransientError struct {
	Operation string
	Cause     error
}

func (e *TransientError) Error() string {
	msg := "transient error"
	if e.Operation != "" {
		msg += ": " + e.Operation
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}
func (e *TransientError) Unwrap() error   { return e.Cause }
func (e *TransientError) Is(t error) bool { return t == ErrTransient }

// TimeoutError represents a request-scoped deadline that was exceeded.
type TimeoutError struct {
	Method  string
	Elapsed time.Duration
	Limit   time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("timeout: %s exceeded deadline of %s (ran %s)", e.Method, e.Limit, e.Elapsed)
}
func (e *TimeoutError) Is(t error) bool { return t == ErrTimeout }

// CircuitOpenError represents a method whose circuit breaker is open.
type CircuitOpenError struct {
	Method      string
	RetryAfter  time.Duration
	OpenedSince time.Duration
}

func (e *CircuitOpenError) Error() string {
	return fmt.Sprintf("circuit open for %s, retry after %s", e.Method, e.RetryAfter)
}
func (e *CircuitOpenError) Is(t error) bool { return t == ErrCircuitOpen }

// ResourceExhaustedError represents a bounded pool that could not grant a slot in time.
type ResourceExhaustedError struct {
	Resource string
	Waited   time.Duration
}

func (e *ResourceExhaustedError) Error() string {
	return fmt.Sprintf("resource exhausted: %s (waited %s)", e.Resource, e.Waited)
}
func (e *ResourceExhaustedError) Is(t error) bool { return t == ErrResourceExhausted }

// SchemaResolutionError represents a non-recoverable failure resolving schema dependencies.
type SchemaResolutionError struct {
	ComponentName      string
	CircularReferences [][]string
	Message            string
}

func (e *SchemaResolutionError) Error() string {
	msg := "schema resolution error: " + e.ComponentName
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}
func (e *SchemaResolutionError) Is(t error) bool { return t == ErrSchemaResolution }

// CodeGenerationError represents a failure generating an example or code sample.
type CodeGenerationError struct {
	Format  string
	Message string
	Cause   error
}

func (e *CodeGenerationError) Error() string {
	msg := "code generation error"
	if e.Format != "" {
		msg += " (" + e.Format + ")"
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}
func (e *CodeGenerationError) Unwrap() error   { return e.Cause }
func (e *CodeGenerationError) Is(t error) bool { return t == ErrCodeGeneration }

// MigrationIntegrityError represents an applied migration whose checksum no longer matches.
type MigrationIntegrityError struct {
	Version          string
	ExpectedChecksum string
	ActualChecksum   string
}

func (e *MigrationIntegrityError) Error() string {
	return fmt.Sprintf("migration integrity error: version %s checksum mismatch (expected %s, got %s)",
		e.Version, e.ExpectedChecksum, e.ActualChecksum)
}
func (e *MigrationIntegrityError) Is(t error) bool { return t == ErrMigrationIntegrity }

// DataIntegrityError represents a violated store-level invariant.
type DataIntegrityError struct {
	Table   string
	Message string
}

func (e *DataIntegrityError) Error() string {
	msg := "data integrity error"
	if e.Table != "" {
		msg += ": " + e.Table
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}
func (e *DataIntegrityError) Is(t error) bool { return t == ErrDataIntegrity }

// ConflictError represents a write that violated a uniqueness or state
// constraint, such as a duplicate (path_template, method) pair.
type ConflictError struct {
	ResourceType string
	Identifier   string
	Message      string
}

func (e *ConflictError) Error() string {
	msg := "conflict"
	if e.ResourceType != "" {
		msg += ": " + e.ResourceType
	}
	if e.Identifier != "" {
		msg += fmt.Sprintf(" (%s)", e.Identifier)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}
func (e *ConflictError) Is(t error) bool { return t == ErrConflict }

// RepositoryError represents an otherwise-unclassified repository-layer
// failure: a driver error not recognized as NotFound or Conflict.
type RepositoryError struct {
	Operation string
	Cause     error
}

func (e *RepositoryError) Error() string {
	msg := "repository error"
	if e.Operation != "" {
		msg += ": " + e.Operation
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}
func (e *RepositoryError) Unwrap() error   { return e.Cause }
func (e *RepositoryError) Is(t error) bool { return t == ErrRepository }

// IsRetriable reports whether err belongs to a transient class that the MCP
// method runtime's retry middleware is permitted to retry:
// DatabaseConnection and generic Transient only. Validation and not-found
// errors are never retried.
func IsRetriable(err error) bool {
	var dbErr *DatabaseConnectionError
	var transientErr *TransientError
	return errors.As(err, &dbErr) || errors.As(err, &transientErr)
}
