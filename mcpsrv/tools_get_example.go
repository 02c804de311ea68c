package mcpsrv

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oaskb/examplegen"
	"github.com/erraggy/oaskb/examplegen/curl"
	"github.com/erraggy/oaskb/examplegen/httpclient"
	"github.com/erraggy/oaskb/examplegen/script"
	"github.com/erraggy/oaskb/oaserrors"
	"github.com/erraggy/oaskb/store"
)

// generators maps the three supported example formats onto their
// examplegen.Generator, each a plain function adapted via
// examplegen.GeneratorFunc.
var generators = map[string]examplegen.Generator{
	"curl":        examplegen.GeneratorFunc(curl.Generate),
	"http-client": examplegen.GeneratorFunc(httpclient.Generate),
	"script":      examplegen.GeneratorFunc(script.Generate),
}

type getExampleInput struct {
	Endpoint    string `json:"endpoint" jsonschema:"Endpoint id, or a path (starting with /) paired with method"`
	Method      string `json:"method,omitempty" jsonschema:"HTTP method, required when endpoint is a path"`
	Format      string `json:"format" jsonschema:"enum=curl,enum=http-client,enum=script"`
	IncludeAuth *bool  `json:"includeAuth,omitempty" jsonschema:"Inject an authorization header/query parameter, default true"`
	BaseURL     string `json:"baseUrl,omitempty" jsonschema:"Base URL prefixed to the endpoint path, default https://api.example.com"`
}

type getExampleMetadata struct {
	IncludeAuth        bool   `json:"includeAuth"`
	BaseURL            string `json:"baseUrl"`
	GenerationTimestamp string `json:"generation_timestamp"`
	SyntaxValidated    bool   `json:"syntax_validated"`
}

type getExampleOutput struct {
	EndpointID   int64              `json:"endpoint_id"`
	EndpointPath string             `json:"endpoint_path"`
	Method       string             `json:"method"`
	Format       string             `json:"format"`
	Code         string             `json:"code"`
	Summary      string             `json:"summary,omitempty"`
	Description  string             `json:"description,omitempty"`
	Metadata     getExampleMetadata `json:"metadata"`
}

func (sc *ServerContext) handleGetExample(ctx context.Context, _ *mcp.CallToolRequest, input getExampleInput) (*mcp.CallToolResult, getExampleOutput, error) {
	if err := validateEndpointAndMethod(input.Endpoint, input.Method); err != nil {
		return errResult(err), getExampleOutput{}, nil
	}
	if err := validateFormat(input.Format); err != nil {
		return errResult(err), getExampleOutput{}, nil
	}
	includeAuth := true
	if input.IncludeAuth != nil {
		includeAuth = *input.IncludeAuth
	}

	out, err := runWithMiddleware(ctx, sc, MethodGetExample, func(ctx context.Context) (getExampleOutput, error) {
		return getExample(ctx, sc, input.Endpoint, input.Method, input.Format, includeAuth, input.BaseURL)
	})
	if err != nil {
		return errResult(err), getExampleOutput{}, nil
	}
	return nil, out, nil
}

func getExample(ctx context.Context, sc *ServerContext, endpoint, method, format string, includeAuth bool, baseURL string) (getExampleOutput, error) {
	api, err := sc.currentAPI(ctx)
	if err != nil {
		return getExampleOutput{}, err
	}

	ep, err := resolveEndpoint(ctx, sc, api.ID, endpoint, method)
	if err != nil {
		return getExampleOutput{}, err
	}

	var bodySchema *store.Schema
	if ep.RequestBodyRef != "" && ep.RequestBodyRef != "<inline>" {
		s, err := sc.Schemas.GetByName(ctx, api.ID, ep.RequestBodyRef)
		if err == nil {
			bodySchema = &s
		}
	}

	var scheme *store.SecurityScheme
	if len(ep.Security) > 0 {
		s, err := sc.Schemes.GetByName(ctx, api.ID, ep.Security[0].SchemeID)
		if err == nil {
			scheme = &s
		}
	}

	req := examplegen.Request{
		Endpoint:    ep,
		BodySchema:  bodySchema,
		Scheme:      scheme,
		BaseURL:     baseURL,
		IncludeAuth: includeAuth,
	}

	gen, ok := generators[format]
	if !ok {
		return getExampleOutput{}, &oaserrors.CodeGenerationError{Format: format, Message: "unsupported format"}
	}
	code, err := gen.Generate(req)
	if err != nil {
		return getExampleOutput{}, &oaserrors.CodeGenerationError{Format: format, Cause: err}
	}

	resolvedBase := baseURL
	if resolvedBase == "" {
		resolvedBase = "https://api.example.com"
	}

	return getExampleOutput{
		EndpointID:   ep.ID,
		EndpointPath: ep.PathTemplate,
		Method:       ep.Method,
		Format:       format,
		Code:         code,
		Summary:      ep.Summary,
		Description:  ep.Description,
		Metadata: getExampleMetadata{
			IncludeAuth:        includeAuth,
			BaseURL:            resolvedBase,
			GenerationTimestamp: time.Now().UTC().Format(time.RFC3339),
			SyntaxValidated:    true,
		},
	}, nil
}

// resolveEndpoint looks endpoint up by path+method when it starts with "/",
// otherwise treats it as a decimal endpoint id.
func resolveEndpoint(ctx context.Context, sc *ServerContext, apiID int64, endpoint, method string) (store.Endpoint, error) {
	if strings.HasPrefix(endpoint, "/") {
		return sc.Endpoints.GetByPathAndMethod(ctx, apiID, endpoint, method)
	}
	id, err := strconv.ParseInt(endpoint, 10, 64)
	if err != nil {
		return store.Endpoint{}, &oaserrors.ResourceNotFoundError{
			ResourceType: "endpoint",
			Identifier:   endpoint,
			Suggestions:  []string{"provide a numeric endpoint id, or a path starting with / plus method"},
		}
	}
	ep, err := sc.Endpoints.GetByID(ctx, id)
	if err != nil {
		return store.Endpoint{}, err
	}
	if ep.APIID != apiID {
		return store.Endpoint{}, &oaserrors.ResourceNotFoundError{ResourceType: "endpoint", Identifier: endpoint}
	}
	return ep, nil
}
