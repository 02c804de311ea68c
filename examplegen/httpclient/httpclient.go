// Package httpclient renders examplegen.Request values as a promise-based
// fetch() call: the general-purpose HTTP-client form of the http-client
// example format.
package httpclient

import (
	"fmt"
	"strings"

	"github.com/erraggy/oaskb/examplegen"
)

// Generate renders req as an async function using fetch().
func Generate(req examplegen.Request) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}

	method := strings.ToUpper(req.Endpoint.Method)
	var b strings.Builder

	fmt.Fprintf(&b, "async function %s() {\n", camelFunctionName(req.FunctionName()))
	b.WriteString("  try {\n")
	fmt.Fprintf(&b, "    const response = await fetch('%s', {\n", req.URL())
	fmt.Fprintf(&b, "      method: '%s',\n", method)
	b.WriteString("      headers: {\n")
	b.WriteString("        'Accept': 'application/json',\n")
	if comment, ok := req.AuthComment(); ok {
		fmt.Fprintf(&b, "        // %s\n", comment)
	}
	if name, value, ok := req.AuthHeader(); ok {
		fmt.Fprintf(&b, "        '%s': `%s`,\n", name, jsTemplateValue(value))
	}
	b.WriteString("      },\n")
	if body, ok := req.BodyIndented("  "); ok {
		fmt.Fprintf(&b, "      body: JSON.stringify(%s),\n", body)
	}
	b.WriteString("    });\n\n")
	b.WriteString("    if (!response.ok) {\n")
	b.WriteString("      throw new Error(`HTTP error: ${response.status}`);\n")
	b.WriteString("    }\n\n")
	b.WriteString("    const data = await response.json();\n")
	b.WriteString("    return data;\n")
	b.WriteString("  } catch (error) {\n")
	b.WriteString("    console.error('Request failed:', error);\n")
	b.WriteString("    throw error;\n")
	b.WriteString("  }\n")
	b.WriteString("}\n")
	return b.String(), nil
}

// jsTemplateValue rewrites a placeholder like "Bearer YOUR_TOKEN_HERE" into
// a template-literal expression, e.g. "Bearer ${token}", matching how a
// hand-written fetch call would reference a variable instead of a literal.
func jsTemplateValue(value string) string {
	fields := strings.Fields(value)
	if len(fields) == 2 {
		return fields[0] + " ${token}"
	}
	return "${token}"
}

func camelFunctionName(name string) string {
	if name == "" {
		return "callEndpoint"
	}
	r := []rune(name)
	r[0] = toLowerRune(r[0])
	return string(r)
}

func toLowerRune(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r + ('a' - 'A')
	}
	return r
}
