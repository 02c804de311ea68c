package normalize

import (
	"fmt"
	"sort"

	"github.com/erraggy/oaskb/parser"
	"github.com/erraggy/oaskb/store"
)

// SecurityResult is the output of normalizing a document's security schemes.
type SecurityResult struct {
	Schemes  []store.SecurityScheme
	Warnings []string
}

// knownOAuthFlows lists the OAuth2 flow names the mapper recognizes; a
// scheme declaring flows outside this set still normalizes, but none of its
// flows count toward the "at least one known flow" requirement.
var knownOAuthFlows = []string{"implicit", "password", "clientCredentials", "authorizationCode"}

// Security normalizes every declared security scheme, validating the
// type-specific required fields for each scheme type.
func Security(accessor parser.DocumentAccessor) (*SecurityResult, error) {
	raw := accessor.GetSecuritySchemes()
	var warnings []string
	schemes := make([]store.SecurityScheme, 0, len(raw))

	for _, name := range sortedKeys(raw) {
		s := raw[name]
		row := store.SecurityScheme{
			Name:        name,
			Type:        s.Type,
			Description: s.Description,
			Extensions:  extractExtensions(s.Extra),
		}

		switch s.Type {
		case "apiKey":
			row.APIKeyName = s.Name
			row.APIKeyLocation = s.In
			if s.Name == "" || s.In == "" {
				warnings = append(warnings, fmt.Sprintf("security scheme %q: apiKey requires name and in", name))
			}
		case "http":
			row.HTTPScheme = s.Scheme
			row.BearerFormat = s.BearerFormat
			if s.Scheme == "" {
				warnings = append(warnings, fmt.Sprintf("security scheme %q: http requires scheme", name))
			}
		case "oauth2":
			flows, flowWarnings := normalizeOAuthFlows(name, s)
			row.OAuth2Flows = flows
			warnings = append(warnings, flowWarnings...)
		case "openIdConnect":
			row.OpenIDConnectURL = s.OpenIDConnectURL
			if s.OpenIDConnectURL == "" {
				warnings = append(warnings, fmt.Sprintf("security scheme %q: openIdConnect requires url", name))
			}
		case "mutualTLS":
			// OAS 3.1+; no scheme-specific fields beyond type/description.
		default:
			warnings = append(warnings, fmt.Sprintf("security scheme %q: unknown type %q", name, s.Type))
		}

		schemes = append(schemes, row)
	}

	return &SecurityResult{Schemes: schemes, Warnings: warnings}, nil
}

func normalizeOAuthFlows(name string, s *parser.SecurityScheme) (map[string]store.OAuth2Flow, []string) {
	var warnings []string
	flows := make(map[string]store.OAuth2Flow)

	addFlow := func(flowName string, f *parser.OAuthFlow) {
		if f == nil {
			return
		}
		flows[flowName] = store.OAuth2Flow{
			AuthorizationURL: f.AuthorizationURL,
			TokenURL:         f.TokenURL,
			RefreshURL:       f.RefreshURL,
			Scopes:           f.Scopes,
		}
	}

	if s.Flows != nil {
		addFlow("implicit", s.Flows.Implicit)
		addFlow("password", s.Flows.Password)
		addFlow("clientCredentials", s.Flows.ClientCredentials)
		addFlow("authorizationCode", s.Flows.AuthorizationCode)
	} else if s.Flow != "" {
		// OAS 2.0 single-flow shape.
		flows[s.Flow] = store.OAuth2Flow{
			AuthorizationURL: s.AuthorizationURL,
			TokenURL:         s.TokenURL,
			Scopes:           s.Scopes,
		}
	}

	if len(flows) == 0 {
		warnings = append(warnings, fmt.Sprintf("security scheme %q: oauth2 requires at least one flow", name))
		return flows, warnings
	}

	hasKnown := false
	for flowName := range flows {
		for _, known := range knownOAuthFlows {
			if flowName == known {
				hasKnown = true
			}
		}
	}
	if !hasKnown {
		warnings = append(warnings, fmt.Sprintf("security scheme %q: no recognized oauth2 flow among %v", name, sortedFlowNames(flows)))
	}
	return flows, warnings
}

func sortedFlowNames(flows map[string]store.OAuth2Flow) []string {
	names := make([]string, 0, len(flows))
	for name := range flows {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ValidateScopes checks that every scope named in a security requirement is
// declared on its referenced scheme, returning one warning per undeclared
// scope.
func ValidateScopes(schemeName string, scopes []string, scheme store.SecurityScheme) []string {
	if scheme.Type != "oauth2" || len(scopes) == 0 {
		return nil
	}
	declared := make(map[string]struct{})
	for _, flow := range scheme.OAuth2Flows {
		for scope := range flow.Scopes {
			declared[scope] = struct{}{}
		}
	}
	var warnings []string
	for _, scope := range scopes {
		if _, ok := declared[scope]; !ok {
			warnings = append(warnings, fmt.Sprintf("security requirement %q: undeclared scope %q", schemeName, scope))
		}
	}
	return warnings
}
