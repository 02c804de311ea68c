package mcpsrv

import (
	"context"

	"github.com/erraggy/oaskb/monitor"
	"github.com/erraggy/oaskb/query"
	"github.com/erraggy/oaskb/repository"
	"github.com/erraggy/oaskb/searchindex"
	"github.com/erraggy/oaskb/store"
)

// Method name constants, shared between registration, middleware, and
// monitor.PerformanceThresholds lookups.
const (
	MethodSearchEndpoints       = monitor.MethodSearchEndpoints
	MethodGetSchema             = monitor.MethodGetSchema
	MethodGetExample            = monitor.MethodGetExample
	MethodGetEndpointCategories = monitor.MethodGetEndpointCategories
)

var allMethods = []string{
	MethodSearchEndpoints, MethodGetSchema, MethodGetExample, MethodGetEndpointCategories,
}

// ServerContext carries every piece of shared, mutable state a handler
// needs: the database pool, per-method resilience singletons, and config.
// It replaces package-level cfg/specCache globals with an explicit struct
// threaded into every handler closure by RegisterTools.
type ServerContext struct {
	DB *store.DB

	Endpoints *repository.EndpointRepository
	Schemas   *repository.SchemaRepository
	Schemes   *repository.SecuritySchemeRepository
	APIs      *repository.APIMetadataRepository

	Index *searchindex.Index

	Config *Config

	Monitor  *monitor.PerformanceMonitor
	Metrics  *monitor.Exporter
	Health   *monitor.HealthChecker
	breakers map[string]*monitor.CircuitBreaker
	pools    map[string]*monitor.Pool
}

// NewServerContext wires repositories, a fresh search index, and per-method
// monitor singletons over db, per cfg.
func NewServerContext(db *store.DB, cfg *Config) *ServerContext {
	if cfg == nil {
		cfg = LoadConfig()
	}
	endpoints := repository.NewEndpointRepository(db)
	pm := monitor.NewDefaultPerformanceMonitor()
	pm.SetMonitoringEnabled(cfg.MonitoringEnabled)

	var exporter *monitor.Exporter
	if cfg.MonitoringEnabled {
		exporter = monitor.NewExporter()
		pm.SetExporter(exporter)
	}

	sc := &ServerContext{
		DB:        db,
		Endpoints: endpoints,
		Schemas:   repository.NewSchemaRepository(db),
		Schemes:   repository.NewSecuritySchemeRepository(db),
		APIs:      repository.NewAPIMetadataRepository(db),
		Index:     searchindex.New(endpoints),
		Config:    cfg,
		Monitor:   pm,
		Metrics:   exporter,
		Health:    monitor.NewHealthChecker(pm, cfg.ServerVersion),
		breakers:  make(map[string]*monitor.CircuitBreaker, len(allMethods)),
		pools:     make(map[string]*monitor.Pool, len(allMethods)),
	}
	for _, m := range allMethods {
		sc.breakers[m] = monitor.NewCircuitBreaker(m, cfg.CircuitFailureThreshold, cfg.CircuitSuccessThreshold, cfg.CircuitRecoveryTimeout)
		sc.pools[m] = monitor.NewPool(m, cfg.PoolSize, cfg.PoolAcquireTimeout)
	}
	return sc
}

func (sc *ServerContext) breaker(method string) *monitor.CircuitBreaker {
	if b, ok := sc.breakers[method]; ok {
		return b
	}
	b := monitor.NewDefaultCircuitBreaker(method)
	sc.breakers[method] = b
	return b
}

func (sc *ServerContext) pool(method string) *monitor.Pool {
	if p, ok := sc.pools[method]; ok {
		return p
	}
	p := monitor.NewPool(method, sc.Config.PoolSize, sc.Config.PoolAcquireTimeout)
	sc.pools[method] = p
	return p
}

// currentAPI resolves the api_metadata row every tool operates against: the
// most recently ingested document. The MCP surface is single-tenant per
// the tool signatures (none of the four tools take an api id).
func (sc *ServerContext) currentAPI(ctx context.Context) (store.APIMetadata, error) {
	return sc.APIs.GetLatest(ctx)
}

// Ping satisfies monitor.Pinger: a synthetic call through the search path,
// the "MCP responsiveness" health component.
func (sc *ServerContext) Ping(ctx context.Context) error {
	api, err := sc.currentAPI(ctx)
	if err != nil {
		return nil // no ingested API yet is not an MCP-responsiveness failure
	}
	_, err = sc.Endpoints.SearchEndpoints(ctx, api.ID, "", nil, "", "", 1, 0)
	return err
}

// RefreshIndex rebuilds the in-memory search index from the store for apiID,
// called once at startup (and after each ingest) so searchEndpoints always
// ranks against current data.
func (sc *ServerContext) RefreshIndex(ctx context.Context, apiID int64) error {
	return sc.Index.CreateFromStore(ctx, apiID)
}
