// Package store owns the SQLite-backed persistence layer: schema migrations,
// connection pooling, and the row types every other package builds on.
// Grounded on oastools' general preference for plain structs over ORM models
// (see parser's Schema/Operation types) and on
// original_source/storage/repositories/base.py for the entity shapes the
// original system persisted.
package store

import "time"

// APIMetadata is one row per ingested spec.
type APIMetadata struct {
	ID              int64
	FilePath        string
	ContentHash     string // SHA-256 of the source bytes
	Title           string
	Version         string
	OpenAPIVersion  string
	Description     string
	EndpointCount   int
	SchemaCount     int
	SecuritySchemeCount int
	IngestedAt      time.Time
}

// Parameter describes one operation or path-level parameter.
type Parameter struct {
	Name                 string
	In                   string // query/path/header/cookie
	Required             bool
	Description          string
	SchemaType           string
	Format               string
	Enum                 []any
	Default              any
	Example              any
	Deprecated           bool
	Ref                  string // nullable $ref, preserved verbatim if unresolved
	Items                *Parameter // item schema for arrays
	AdditionalProperties *Parameter
	Extensions           map[string]any
}

// SecurityRequirementAlternative is one alternative in an endpoint's security
// requirement list: scheme_id -> required scopes.
type SecurityRequirementAlternative struct {
	SchemeID string
	Scopes   []string
}

// Endpoint is one row per (path, method).
type Endpoint struct {
	ID                  int64
	APIID               int64
	PathTemplate        string // must start with "/"
	Method              string // GET/POST/PUT/DELETE/PATCH/HEAD/OPTIONS/TRACE
	OperationID         string
	Summary             string
	Description         string
	Tags                []string
	Parameters          []Parameter
	RequestBodyRef      string // bare schema name or unresolved $ref marker, empty if none
	Responses           map[string]Response
	Security            []SecurityRequirementAlternative
	Deprecated          bool
	Extensions          map[string]any
	SchemaDependencies  []string // set of schema names referenced transitively, sorted
	SecurityDependencies []string // set of scheme ids, sorted
	Category            string // nullable: empty means unset
	CategoryGroup       string
	SearchableText      string // derived
}

// Response is one status-code response entry on an Endpoint.
type Response struct {
	Description string
	ContentType string // primary media type, empty if none
	SchemaRef   string // bare schema name, or "" if inline/absent
}

// Schema is one row per components.schemas (or definitions) entry.
type Schema struct {
	ID                 int64
	APIID              int64
	Name               string // unique within api_id
	Title              string
	Type               string // object/array/string/number/integer/boolean/null
	Format             string
	Description        string
	Properties         []SchemaProperty // ordered
	Required           []string
	AllOf              []string // bare names or "" for embedded, see AllOfInline
	OneOf              []string
	AnyOf              []string
	Discriminator      string // property name, empty if none
	Example            any
	ReferenceCount     int
	SchemaDependencies []string // sorted set of schema names
	CyclicDependencies []string // edges DFS marked as back-edges (cycles tolerated, annotated)
	Deprecated         bool
	Extensions         map[string]any
	SearchableText     string
}

// SchemaProperty is one ordered property-name -> sub-schema-name pair.
// SubSchemaRef is the referenced schema's bare name when the property is a
// $ref, empty when the property is an inline primitive/array type (Type holds
// the inline type in that case).
type SchemaProperty struct {
	Name         string
	Type         string
	SubSchemaRef string
}

// SecurityScheme is one row per security scheme definition.
type SecurityScheme struct {
	ID              int64
	APIID           int64
	Name            string
	Type            string // apiKey/http/oauth2/openIdConnect/mutualTLS
	Description     string
	APIKeyName      string
	APIKeyLocation  string
	HTTPScheme      string
	BearerFormat    string
	OAuth2Flows     map[string]OAuth2Flow
	OpenIDConnectURL string
	Extensions      map[string]any
	ReferenceCount  int
}

// OAuth2Flow is one named OAuth2 flow (implicit/password/clientCredentials/authorizationCode).
type OAuth2Flow struct {
	AuthorizationURL string
	TokenURL         string
	RefreshURL       string
	Scopes           map[string]string
}

// CategoryCatalogEntry is one row in the category catalog.
type CategoryCatalogEntry struct {
	CategoryName  string // normalized: lowercase, spaces/hyphens -> underscore
	DisplayName   string // original casing
	Description   string
	CategoryGroup string
	EndpointCount int
	HTTPMethods   []string // set, sorted
}

// Migration describes one forward/rollback SQL pair and its checksum.
type Migration struct {
	Version     string
	Name        string
	Description string
	UpSQL       string
	DownSQL     string
	Checksum    string // sha256 of UpSQL, hex-encoded
}

// MigrationRecord is the persisted row tracking an applied Migration.
type MigrationRecord struct {
	Version  string
	Name     string
	AppliedAt time.Time
	Checksum string
}
