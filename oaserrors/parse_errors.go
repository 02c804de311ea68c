package oaserrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for the stream-parser-specific taxonomy.
var (
	// ErrFileNotFound indicates the input spec file does not exist or is unreadable.
	ErrFileNotFound = errors.New("file not found")

	// ErrFileTooLarge indicates the input spec file exceeds the configured maximum size.
	ErrFileTooLarge = errors.New("file too large")

	// ErrInvalidJSON indicates the input could not be decoded as JSON.
	ErrInvalidJSON = errors.New("invalid json")

	// ErrMemoryLimitExceeded indicates decoding crossed the configured memory ceiling.
	ErrMemoryLimitExceeded = errors.New("memory limit exceeded")

	// ErrStructureValidation indicates the document failed the OpenAPI skeleton check.
	ErrStructureValidation = errors.New("structure validation error")
)

// FileNotFoundError represents a spec file that does not exist or cannot be opened.
type FileNotFoundError struct {
	Path  string
	Cause error
}

func (e *FileNotFoundError) Error() string {
	msg := "file not found: " + e.Path
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}
func (e *FileNotFoundError) Unwrap() error   { return e.Cause }
func (e *FileNotFoundError) Is(t error) bool { return t == ErrFileNotFound }

// FileTooLargeError represents a spec file exceeding the configured maximum size.
type FileTooLargeError struct {
	Path    string
	SizeB   int64
	MaxB    int64
	Message string
}

func (e *FileTooLargeError) Error() string {
	return fmt.Sprintf("file too large: %s (%d bytes exceeds max %d bytes)", e.Path, e.SizeB, e.MaxB)
}
func (e *FileTooLargeError) Is(t error) bool { return t == ErrFileTooLarge }

// InvalidJSONError represents a JSON decode failure, with the source location when known.
type InvalidJSONError struct {
	Path    string
	Line    int
	Column  int
	Message string
	Cause   error
}

func (e *InvalidJSONError) Error() string {
	msg := "invalid json"
	if e.Path != "" {
		msg += " in " + e.Path
	}
	if e.Line > 0 {
		msg += fmt.Sprintf(" at line %d", e.Line)
		if e.Column > 0 {
			msg += fmt.Sprintf(", column %d", e.Column)
		}
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}
func (e *InvalidJSONError) Unwrap() error   { return e.Cause }
func (e *InvalidJSONError) Is(t error) bool { return t == ErrInvalidJSON }

// MemoryLimitExceededError represents decoding that crossed the configured memory ceiling.
type MemoryLimitExceededError struct {
	Path       string
	CeilingMB  int64
	ObservedMB int64
}

func (e *MemoryLimitExceededError) Error() string {
	return fmt.Sprintf("memory limit exceeded parsing %s: observed %dMB, ceiling %dMB",
		e.Path, e.ObservedMB, e.CeilingMB)
}
func (e *MemoryLimitExceededError) Is(t error) bool { return t == ErrMemoryLimitExceeded }

// StructureValidationError represents a failure of the OpenAPI document skeleton check
// (missing openapi/swagger version, missing info.title/info.version/paths, etc).
type StructureValidationError struct {
	FieldPath  string
	Expected   string
	Actual     string
	Message    string
	Suggestion string
}

func (e *StructureValidationError) Error() string {
	msg := "structure validation error"
	if e.FieldPath != "" {
		msg += " at " + e.FieldPath
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}
func (e *StructureValidationError) Is(t error) bool { return t == ErrStructureValidation }
