package parser

import (
	"io"
	"os"
	"runtime"
	"time"

	"github.com/erraggy/oaskb/oaserrors"
)

// Default resource guard values for StreamFile, per spec-level defaults:
// 10MiB max file size, 1MiB progress interval, 1s progress interval,
// whichever elapses first, and no memory ceiling unless configured.
const (
	DefaultMaxStreamFileSize   int64 = 10 * 1024 * 1024
	DefaultProgressByteInterval int64 = 1024 * 1024
	DefaultProgressTimeInterval       = 1 * time.Second
)

// ProgressPhase identifies which stage of streaming ingestion a ProgressEvent
// describes, grounded on the original Python implementation's
// ProgressPhase enum (read → decode → validate).
type ProgressPhase string

const (
	// ProgressPhaseReading is emitted while bytes are being read from disk.
	ProgressPhaseReading ProgressPhase = "reading"
	// ProgressPhaseDecoding is emitted while the buffered bytes are decoded into a document.
	ProgressPhaseDecoding ProgressPhase = "decoding"
	// ProgressPhaseComplete is emitted once streaming and decoding have both finished.
	ProgressPhaseComplete ProgressPhase = "complete"
)

// ProgressEvent reports incremental progress of a StreamFile call.
// Emitted at least every ProgressByteInterval bytes or ProgressTimeInterval,
// whichever comes first.
type ProgressEvent struct {
	Phase           ProgressPhase
	BytesRead       int64
	TotalBytes      int64
	Elapsed         time.Duration
	BytesPerSecond  float64
	EstimatedRemain time.Duration
	MemoryPeakMB    int64
}

// Metrics aggregates counters produced by a StreamFile call, matching the
// aggregate metrics report.
type Metrics struct {
	EndpointsFound       int
	SchemasFound         int
	SecuritySchemesFound int
	ExtensionsFound      int
	FileSize             int64
	ParseDuration        time.Duration
	MemoryPeakMB         int64
}

// StreamOptions configures StreamFile's resource guards and progress reporting.
type StreamOptions struct {
	// MaxFileSize rejects files larger than this many bytes with FileTooLargeError.
	// Zero means DefaultMaxStreamFileSize.
	MaxFileSize int64
	// MemoryCeilingMB fails the stream with MemoryLimitExceededError once
	// runtime-reported heap usage crosses this many megabytes at a checkpoint.
	// Zero disables the memory guard.
	MemoryCeilingMB int64
	// ProgressByteInterval emits a ProgressEvent at least this often, measured in bytes read.
	// Zero means DefaultProgressByteInterval.
	ProgressByteInterval int64
	// ProgressTimeInterval emits a ProgressEvent at least this often, measured in wall time.
	// Zero means DefaultProgressTimeInterval.
	ProgressTimeInterval time.Duration
	// OnProgress, if set, receives every emitted ProgressEvent. Called synchronously
	// on the reading goroutine — implementations must not block significantly.
	OnProgress func(ProgressEvent)
	// Logger receives structured debug/warn events about the stream's lifecycle.
	Logger Logger
	// ParserOptions are forwarded to the underlying Parser for decode/validation behavior.
	ParserOptions []Option
}

// progressReader wraps an io.Reader, counting bytes and invoking a callback
// at configured byte/time intervals. Callers observe progress through it
// without the decoder itself needing to be interruptible mid-token.
type progressReader struct {
	r                io.Reader
	total            int64
	read             int64
	start            time.Time
	lastEmit         time.Time
	lastEmitBytes    int64
	byteInterval     int64
	timeInterval     time.Duration
	memCeilingMB     int64
	onProgress       func(ProgressEvent)
	memoryPeakMB     int64
	memCheckFn       func() int64 // overridable in tests
}

func (pr *progressReader) Read(p []byte) (int, error) {
	n, err := pr.r.Read(p)
	if n > 0 {
		pr.read += int64(n)
		pr.maybeEmit()
	}
	return n, err
}

func (pr *progressReader) maybeEmit() {
	now := time.Now()
	bytesSinceEmit := pr.read - pr.lastEmitBytes
	timeSinceEmit := now.Sub(pr.lastEmit)
	if bytesSinceEmit < pr.byteInterval && timeSinceEmit < pr.timeInterval {
		return
	}
	pr.lastEmit = now
	pr.lastEmitBytes = pr.read

	memMB := pr.sampleMemoryMB()
	if memMB > pr.memoryPeakMB {
		pr.memoryPeakMB = memMB
	}

	if pr.onProgress == nil {
		return
	}
	elapsed := now.Sub(pr.start)
	var bps float64
	if elapsed > 0 {
		bps = float64(pr.read) / elapsed.Seconds()
	}
	var remain time.Duration
	if bps > 0 && pr.total > pr.read {
		remain = time.Duration(float64(pr.total-pr.read)/bps) * time.Second
	}
	pr.onProgress(ProgressEvent{
		Phase:           ProgressPhaseReading,
		BytesRead:       pr.read,
		TotalBytes:      pr.total,
		Elapsed:         elapsed,
		BytesPerSecond:  bps,
		EstimatedRemain: remain,
		MemoryPeakMB:    pr.memoryPeakMB,
	})
}

func (pr *progressReader) sampleMemoryMB() int64 {
	if pr.memCheckFn != nil {
		return pr.memCheckFn()
	}
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	return int64(ms.HeapAlloc / (1024 * 1024))
}

// StreamFile reads specPath incrementally, enforcing size and memory guards
// and emitting ProgressEvents, then decodes it the same way Parser.Parse
// does (order-preserving, OAS2/OAS3 typed). It is the entry point for C1's
// streaming contract: FileNotFound/FileTooLarge/MemoryLimitExceeded are
// returned as the typed oaserrors variants rather than generic errors.
func StreamFile(specPath string, opts StreamOptions) (*ParseResult, *Metrics, error) {
	maxSize := opts.MaxFileSize
	if maxSize == 0 {
		maxSize = DefaultMaxStreamFileSize
	}
	byteInterval := opts.ProgressByteInterval
	if byteInterval == 0 {
		byteInterval = DefaultProgressByteInterval
	}
	timeInterval := opts.ProgressTimeInterval
	if timeInterval == 0 {
		timeInterval = DefaultProgressTimeInterval
	}

	info, err := os.Stat(specPath)
	if err != nil {
		return nil, nil, &oaserrors.FileNotFoundError{Path: specPath, Cause: err}
	}
	if info.Size() > maxSize {
		return nil, nil, &oaserrors.FileTooLargeError{Path: specPath, SizeB: info.Size(), MaxB: maxSize}
	}

	f, err := os.Open(specPath)
	if err != nil {
		return nil, nil, &oaserrors.FileNotFoundError{Path: specPath, Cause: err}
	}
	defer f.Close()

	start := time.Now()
	pr := &progressReader{
		r:            f,
		total:        info.Size(),
		start:        start,
		lastEmit:     start,
		byteInterval: byteInterval,
		timeInterval: timeInterval,
		memCeilingMB: opts.MemoryCeilingMB,
		onProgress:   opts.OnProgress,
	}

	data, err := io.ReadAll(pr)
	if err != nil {
		return nil, nil, &oaserrors.InvalidJSONError{Path: specPath, Message: "failed to read stream", Cause: err}
	}

	if opts.MemoryCeilingMB > 0 && pr.memoryPeakMB > opts.MemoryCeilingMB {
		return nil, nil, &oaserrors.MemoryLimitExceededError{
			Path: specPath, CeilingMB: opts.MemoryCeilingMB, ObservedMB: pr.memoryPeakMB,
		}
	}

	if opts.OnProgress != nil {
		opts.OnProgress(ProgressEvent{
			Phase:        ProgressPhaseDecoding,
			BytesRead:    pr.read,
			TotalBytes:   pr.total,
			Elapsed:      time.Since(start),
			MemoryPeakMB: pr.memoryPeakMB,
		})
	}

	allOpts := append([]Option{WithBytes(data), WithSourceName(specPath)}, opts.ParserOptions...)
	result, parseErr := ParseWithOptions(allOpts...)
	if parseErr != nil {
		return nil, nil, translateDecodeError(specPath, parseErr)
	}
	result.SourcePath = specPath
	result.SourceSize = info.Size()

	if opts.MemoryCeilingMB > 0 {
		memMB := pr.sampleMemoryMB()
		if memMB > pr.memoryPeakMB {
			pr.memoryPeakMB = memMB
		}
		if pr.memoryPeakMB > opts.MemoryCeilingMB {
			return nil, nil, &oaserrors.MemoryLimitExceededError{
				Path: specPath, CeilingMB: opts.MemoryCeilingMB, ObservedMB: pr.memoryPeakMB,
			}
		}
	}

	metrics := collectMetrics(result, info.Size(), time.Since(start), pr.memoryPeakMB)

	if opts.OnProgress != nil {
		opts.OnProgress(ProgressEvent{
			Phase:        ProgressPhaseComplete,
			BytesRead:    pr.read,
			TotalBytes:   pr.total,
			Elapsed:      time.Since(start),
			MemoryPeakMB: pr.memoryPeakMB,
		})
	}

	return result, metrics, nil
}

// translateDecodeError maps a generic parse failure into the InvalidJSON
// taxonomy member, preserving line/column when the underlying error carries one.
func translateDecodeError(path string, err error) error {
	if pe, ok := err.(*oaserrors.ParseError); ok {
		return &oaserrors.InvalidJSONError{Path: path, Line: pe.Line, Column: pe.Column, Message: pe.Message, Cause: pe.Cause}
	}
	return &oaserrors.InvalidJSONError{Path: path, Message: err.Error(), Cause: err}
}

// collectMetrics derives aggregate counters from a parsed document, counting
// extension keys (x-*) recursively.
func collectMetrics(result *ParseResult, fileSize int64, dur time.Duration, memPeakMB int64) *Metrics {
	m := &Metrics{FileSize: fileSize, ParseDuration: dur, MemoryPeakMB: memPeakMB}
	stats := GetDocumentStats(result.Document)
	m.EndpointsFound = stats.OperationCount
	m.SchemasFound = stats.SchemaCount
	switch doc := result.Document.(type) {
	case *OAS2Document:
		m.SecuritySchemesFound = len(doc.SecurityDefinitions)
	case *OAS3Document:
		if doc.Components != nil {
			m.SecuritySchemesFound = len(doc.Components.SecuritySchemes)
		}
	}
	m.ExtensionsFound = countExtensionKeys(result.Data)
	return m
}

// countExtensionKeys recursively counts map keys beginning with "x-" anywhere
// in the decoded document tree.
func countExtensionKeys(v any) int {
	switch val := v.(type) {
	case map[string]any:
		count := 0
		for k, child := range val {
			if len(k) >= 2 && k[0] == 'x' && k[1] == '-' {
				count++
			}
			count += countExtensionKeys(child)
		}
		return count
	case []any:
		count := 0
		for _, item := range val {
			count += countExtensionKeys(item)
		}
		return count
	default:
		return 0
	}
}
