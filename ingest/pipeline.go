package ingest

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/erraggy/oaskb/categorize"
	"github.com/erraggy/oaskb/consistency"
	"github.com/erraggy/oaskb/normalize"
	"github.com/erraggy/oaskb/oaserrors"
	"github.com/erraggy/oaskb/parser"
	"github.com/erraggy/oaskb/repository"
	"github.com/erraggy/oaskb/store"
	"github.com/erraggy/oaskb/validator"
)

// Logger is the subset of parser.Logger that Pipeline needs, restated here
// so ingest doesn't require its callers to import parser just to supply one.
type Logger interface {
	Debug(msg string, attrs ...any)
	Info(msg string, attrs ...any)
	Warn(msg string, attrs ...any)
	Error(msg string, attrs ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

// Metrics summarizes one ingestion run's counts and timing.
type Metrics struct {
	EndpointCount       int
	SchemaCount         int
	SecuritySchemeCount int
	ConsistencyScore    float64
	Duration            time.Duration
	FileSize            int64
	MemoryPeakMB        int64
}

// StageResult records one stage's name and duration for a Result's trace.
type StageResult struct {
	Name     string
	Duration time.Duration
}

// Result is what Run returns for one ingested document.
type Result struct {
	FilePath     string
	ContentHash  string
	APIID        int64
	Skipped      bool // true when an earlier ingestion already has this content hash
	Metrics      Metrics
	Warnings     []string
	StageResults []StageResult
}

// PipelineContext threads one document's intermediate state through the
// pipeline's stages, the way the original pipeline's PipelineContext
// dataclass threads it between async stage calls.
type PipelineContext struct {
	FilePath    string
	Data        []byte
	ContentHash string

	ParseResult   *parser.ParseResult
	StreamMetrics *parser.Metrics
	Normalized    *normalize.Result
	Catalog       *categorize.Catalog
	Consistency   consistency.Report

	APIID              int64
	CreatedEndpointIDs []int64
	CreatedSchemaIDs   []int64
	CreatedSchemeIDs   []int64

	Warnings []string
}

// Stage is one step of the pipeline. Rollback, when non-nil, undoes whatever
// Run committed; it only runs when a later stage in the same document fails.
type Stage struct {
	Name     string
	Run      func(ctx context.Context, p *Pipeline, pc *PipelineContext) error
	Rollback func(ctx context.Context, p *Pipeline, pc *PipelineContext) error
}

// Indexer is the subset of searchindex.Index that Pipeline needs, kept as an
// interface so ingest has no import dependency on the search-index package.
type Indexer interface {
	CreateFromStore(ctx context.Context, apiID int64) error
}

// Pipeline wires parsing, validation, normalization, categorization, and
// persistence into one ingest-a-file operation.
type Pipeline struct {
	DB              *store.DB
	APIMetadataRepo *repository.APIMetadataRepository
	EndpointRepo    *repository.EndpointRepository
	SchemaRepo      *repository.SchemaRepository
	SchemeRepo      *repository.SecuritySchemeRepository

	Validator *validator.Validator

	// StrictValidation aborts ingestion when the document fails structural
	// validation with errors. Off by default: a parseable-but-invalid
	// document is still ingested, with validation errors folded into
	// Result.Warnings rather than blocking storage.
	StrictValidation bool

	// BatchConcurrency bounds how many files RunBatch processes at once.
	// Zero means the default of 3.
	BatchConcurrency int

	// MaxFileSize rejects spec files larger than this many bytes with
	// FileTooLargeError before they're read. Zero means
	// parser.DefaultMaxStreamFileSize. Configurable via OASKB_MAX_FILE_SIZE.
	MaxFileSize int64

	// MemoryCeilingMB fails a parse once runtime-reported heap usage crosses
	// this many megabytes while streaming the file in. Zero disables the
	// guard. Configurable via OASKB_MEMORY_CEILING_MB.
	MemoryCeilingMB int64

	// Indexer, when set, is invoked by the build_search_index stage after a
	// successful persist. Nil skips that stage entirely.
	Indexer Indexer

	// Log receives structured events for every stage failure and batch
	// summary. Defaults to a no-op logger.
	Log Logger
}

// New constructs a Pipeline with repositories bound to db, the default
// batch concurrency, and resource guards read from OASKB_MAX_FILE_SIZE /
// OASKB_MEMORY_CEILING_MB.
func New(db *store.DB) *Pipeline {
	return &Pipeline{
		DB:               db,
		APIMetadataRepo:  repository.NewAPIMetadataRepository(db),
		EndpointRepo:     repository.NewEndpointRepository(db),
		SchemaRepo:       repository.NewSchemaRepository(db),
		SchemeRepo:       repository.NewSecuritySchemeRepository(db),
		Validator:        validator.New(),
		BatchConcurrency: 3,
		MaxFileSize:      envInt64("OASKB_MAX_FILE_SIZE", parser.DefaultMaxStreamFileSize),
		MemoryCeilingMB:  envInt64("OASKB_MEMORY_CEILING_MB", 0),
		Log:              nopLogger{},
	}
}

func (p *Pipeline) log() Logger {
	if p.Log == nil {
		return nopLogger{}
	}
	return p.Log
}

// maxFileSize returns the effective file-size guard, defaulting to
// parser.DefaultMaxStreamFileSize when unset.
func (p *Pipeline) maxFileSize() int64 {
	if p.MaxFileSize > 0 {
		return p.MaxFileSize
	}
	return parser.DefaultMaxStreamFileSize
}

// envInt64 reads key as a base-10 int64, falling back to fallback when the
// variable is unset, empty, or not a positive integer. Mirrors
// mcpsrv.envInt's validate-and-warn idiom for the int64 values Pipeline needs.
func envInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n <= 0 {
		slog.Warn("invalid int64 env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return n
}

func (p *Pipeline) stages() []Stage {
	s := []Stage{
		{Name: "parse", Run: runParse},
		{Name: "validate", Run: runValidate},
		{Name: "normalize", Run: runNormalize},
		{Name: "categorize", Run: runCategorize},
		{Name: "persist", Run: runPersist, Rollback: rollbackPersist},
	}
	if p.Indexer != nil {
		s = append(s, Stage{Name: "build_search_index", Run: runBuildIndex})
	}
	return s
}

// Run ingests one file: parse, validate, normalize, categorize, persist, and
// (if an Indexer is configured) build its search index, in that order. A
// file whose content hash matches a previous ingestion is not re-parsed; the
// existing API id is returned with Skipped set.
func (p *Pipeline) Run(ctx context.Context, filePath string) (*Result, error) {
	start := time.Now()

	info, err := os.Stat(filePath)
	if err != nil {
		return nil, &oaserrors.FileNotFoundError{Path: filePath, Cause: err}
	}
	if info.Size() > p.maxFileSize() {
		return nil, &oaserrors.FileTooLargeError{Path: filePath, SizeB: info.Size(), MaxB: p.maxFileSize()}
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("ingest: read %s: %w", filePath, err)
	}
	sum := sha256.Sum256(data)
	hash := hex.EncodeToString(sum[:])

	if existing, err := p.APIMetadataRepo.GetByContentHash(ctx, hash); err == nil {
		p.log().Info("ingest skipped, content hash already ingested", "file", filePath, "api_id", existing.ID)
		return &Result{FilePath: filePath, ContentHash: hash, APIID: existing.ID, Skipped: true}, nil
	}

	pc := &PipelineContext{FilePath: filePath, Data: data, ContentHash: hash}

	var stageResults []StageResult
	var ran []Stage
	for _, stage := range p.stages() {
		stageStart := time.Now()
		if runErr := stage.Run(ctx, p, pc); runErr != nil {
			p.log().Error("ingest stage failed", "file", filePath, "stage", stage.Name, "error", runErr)
			for i := len(ran) - 1; i >= 0; i-- {
				if ran[i].Rollback != nil {
					_ = ran[i].Rollback(ctx, p, pc)
				}
			}
			return nil, fmt.Errorf("ingest: stage %q: %w", stage.Name, runErr)
		}
		stageResults = append(stageResults, StageResult{Name: stage.Name, Duration: time.Since(stageStart)})
		ran = append(ran, stage)
	}

	p.log().Info("ingest completed", "file", filePath, "api_id", pc.APIID, "duration", time.Since(start))

	metrics := Metrics{Duration: time.Since(start)}
	if pc.Normalized != nil {
		metrics.EndpointCount = len(pc.Normalized.Endpoints)
		metrics.SchemaCount = len(pc.Normalized.Schemas)
		metrics.SecuritySchemeCount = len(pc.Normalized.SecuritySchemes)
		metrics.ConsistencyScore = pc.Consistency.Score(metrics.EndpointCount, metrics.SchemaCount)
	}
	if pc.StreamMetrics != nil {
		metrics.FileSize = pc.StreamMetrics.FileSize
		metrics.MemoryPeakMB = pc.StreamMetrics.MemoryPeakMB
	}

	return &Result{
		FilePath:     filePath,
		ContentHash:  hash,
		APIID:        pc.APIID,
		Metrics:      metrics,
		Warnings:     pc.Warnings,
		StageResults: stageResults,
	}, nil
}

// BatchResult aggregates RunBatch over a list of files.
type BatchResult struct {
	TotalFiles      int
	SuccessfulFiles int
	FailedFiles     int
	Results         []*Result
	Errors          []string
}

// RunBatch ingests every path in files with bounded concurrency
// (Pipeline.BatchConcurrency, default 3). A single file's failure is
// recorded in BatchResult.Errors and does not abort the remaining files.
func (p *Pipeline) RunBatch(ctx context.Context, files []string) (*BatchResult, error) {
	limit := p.BatchConcurrency
	if limit <= 0 {
		limit = 3
	}

	results := make([]*Result, len(files))
	errs := make([]error, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, f := range files {
		i, f := i, f
		g.Go(func() error {
			res, err := p.Run(gctx, f)
			results[i] = res
			errs[i] = err
			return nil // a per-file error never aborts its siblings
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := &BatchResult{TotalFiles: len(files)}
	for i, res := range results {
		if errs[i] != nil {
			out.FailedFiles++
			out.Errors = append(out.Errors, fmt.Sprintf("%s: %v", files[i], errs[i]))
			continue
		}
		out.SuccessfulFiles++
		out.Results = append(out.Results, res)
	}
	p.log().Info("ingest batch completed", "total", out.TotalFiles, "successful", out.SuccessfulFiles, "failed", out.FailedFiles)
	return out, nil
}

// runParse decodes the file via parser.StreamFile rather than a whole-file
// Parse call, so the file-size and memory-ceiling guards and progress events
// spec.md's ingestion contract requires are actually enforced on this path.
func runParse(_ context.Context, p *Pipeline, pc *PipelineContext) error {
	result, metrics, err := parser.StreamFile(pc.FilePath, parser.StreamOptions{
		MaxFileSize:     p.maxFileSize(),
		MemoryCeilingMB: p.MemoryCeilingMB,
		OnProgress: func(ev parser.ProgressEvent) {
			p.log().Debug("parse progress",
				"file", pc.FilePath,
				"phase", ev.Phase,
				"bytes_read", ev.BytesRead,
				"total_bytes", ev.TotalBytes,
				"memory_peak_mb", ev.MemoryPeakMB,
			)
		},
	})
	if err != nil {
		return err
	}
	pc.ParseResult = result
	pc.StreamMetrics = metrics
	return nil
}

func runValidate(_ context.Context, p *Pipeline, pc *PipelineContext) error {
	vr, err := p.Validator.ValidateParsed(*pc.ParseResult)
	if err != nil {
		return err
	}
	if !vr.Valid && p.StrictValidation {
		return fmt.Errorf("document failed validation with %d error(s)", vr.ErrorCount)
	}
	for _, e := range vr.Errors {
		pc.Warnings = append(pc.Warnings, "validation error: "+e.Message)
	}
	for _, w := range vr.Warnings {
		pc.Warnings = append(pc.Warnings, "validation warning: "+w.Message)
	}
	return nil
}

func runNormalize(_ context.Context, _ *Pipeline, pc *PipelineContext) error {
	n, err := normalize.Document(pc.ParseResult)
	if err != nil {
		return err
	}
	pc.Normalized = n
	pc.Warnings = append(pc.Warnings, n.Warnings...)
	return nil
}

func runCategorize(_ context.Context, _ *Pipeline, pc *PipelineContext) error {
	accessor := pc.ParseResult.AsAccessor()
	idx := categorize.BuildTagIndex(accessor)
	catalog := categorize.NewCatalog()

	for i, ep := range pc.Normalized.Endpoints {
		cat := categorize.Resolve(ep.Tags, ep.PathTemplate, idx)
		pc.Normalized.Endpoints[i].Category = cat.Name
		pc.Normalized.Endpoints[i].CategoryGroup = cat.Group
		catalog.Add(cat, cat.Group, ep.Method)
	}
	pc.Catalog = catalog

	pc.Consistency = consistency.Check(pc.Normalized.Endpoints, pc.Normalized.Schemas, pc.Normalized.SecuritySchemes)
	for _, e := range pc.Consistency.Errors {
		pc.Warnings = append(pc.Warnings, "consistency error: "+e.Message)
	}
	for _, w := range pc.Consistency.Warnings {
		pc.Warnings = append(pc.Warnings, "consistency warning: "+w.Message)
	}
	return nil
}

func docTitleVersion(pr *parser.ParseResult) (title, version, openAPIVersion, description string) {
	accessor := pr.AsAccessor()
	if accessor == nil {
		return "Unknown API", "1.0.0", "", ""
	}
	info := accessor.GetInfo()
	if info == nil {
		return "Unknown API", "1.0.0", accessor.GetVersionString(), ""
	}
	title = info.Title
	if title == "" {
		title = "Unknown API"
	}
	version = info.Version
	if version == "" {
		version = "1.0.0"
	}
	return title, version, accessor.GetVersionString(), info.Description
}

// runPersist writes the API metadata row, then every endpoint, schema, and
// security scheme, all inside one transaction: a failure on any insert rolls
// back every earlier insert in the same call.
func runPersist(ctx context.Context, p *Pipeline, pc *PipelineContext) error {
	release, err := p.DB.Acquire(ctx)
	if err != nil {
		return err
	}
	defer release()

	tx, err := p.DB.SQL().BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin persist tx: %w", err)
	}
	defer tx.Rollback()

	title, version, openAPIVersion, description := docTitleVersion(pc.ParseResult)
	apiID, err := p.APIMetadataRepo.CreateTx(ctx, tx, store.APIMetadata{
		FilePath:            pc.FilePath,
		ContentHash:         pc.ContentHash,
		Title:               title,
		Version:             version,
		OpenAPIVersion:      openAPIVersion,
		Description:         description,
		EndpointCount:       len(pc.Normalized.Endpoints),
		SchemaCount:         len(pc.Normalized.Schemas),
		SecuritySchemeCount: len(pc.Normalized.SecuritySchemes),
		IngestedAt:          time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("persist api metadata: %w", err)
	}
	pc.APIID = apiID

	for _, ep := range pc.Normalized.Endpoints {
		ep.APIID = apiID
		id, err := p.EndpointRepo.CreateTx(ctx, tx, ep)
		if err != nil {
			return fmt.Errorf("persist endpoint %s %s: %w", ep.Method, ep.PathTemplate, err)
		}
		pc.CreatedEndpointIDs = append(pc.CreatedEndpointIDs, id)
	}
	for _, s := range pc.Normalized.Schemas {
		s.APIID = apiID
		id, err := p.SchemaRepo.CreateTx(ctx, tx, s)
		if err != nil {
			return fmt.Errorf("persist schema %s: %w", s.Name, err)
		}
		pc.CreatedSchemaIDs = append(pc.CreatedSchemaIDs, id)
	}
	for _, sc := range pc.Normalized.SecuritySchemes {
		sc.APIID = apiID
		id, err := p.SchemeRepo.CreateTx(ctx, tx, sc)
		if err != nil {
			return fmt.Errorf("persist security scheme %s: %w", sc.Name, err)
		}
		pc.CreatedSchemeIDs = append(pc.CreatedSchemeIDs, id)
	}

	if err := p.EndpointRepo.RebuildCategoryCatalog(ctx, tx, apiID); err != nil {
		return fmt.Errorf("rebuild category catalog: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit persist tx: %w", err)
	}
	return nil
}

// rollbackPersist is only reached when a later stage (build_search_index)
// fails after persist already committed; the transaction itself already
// rolled back any partial persist on its own failure path.
func rollbackPersist(ctx context.Context, p *Pipeline, pc *PipelineContext) error {
	if pc.APIID == 0 {
		return nil
	}
	return p.APIMetadataRepo.DeleteByID(ctx, pc.APIID)
}

func runBuildIndex(ctx context.Context, p *Pipeline, pc *PipelineContext) error {
	return p.Indexer.CreateFromStore(ctx, pc.APIID)
}
