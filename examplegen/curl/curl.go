// Package curl renders examplegen.Request values as line-continued cURL
// invocations.
package curl

import (
	"strings"

	"github.com/erraggy/oaskb/examplegen"
)

// Generate renders req as a cURL command.
func Generate(req examplegen.Request) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}

	var lines []string
	lines = append(lines, "curl -X "+strings.ToUpper(req.Endpoint.Method))
	lines = append(lines, `"`+req.URL()+`"`)
	lines = append(lines, `-H "`+examplegen.FmtHeader("Accept", "application/json")+`"`)

	if comment, ok := req.AuthComment(); ok {
		lines = append(lines, "# "+comment)
	}
	if name, value, ok := req.AuthHeader(); ok {
		lines = append(lines, `-H "`+examplegen.FmtHeader(name, value)+`"`)
	}
	if body, ok := req.Body(); ok {
		lines = append(lines, "-d '"+body+"'")
	}

	var b strings.Builder
	for i, line := range lines {
		if i > 0 {
			b.WriteString("  ")
		}
		b.WriteString(line)
		if i < len(lines)-1 {
			b.WriteString(" \\\n")
		}
	}
	b.WriteString("\n")
	return b.String(), nil
}
