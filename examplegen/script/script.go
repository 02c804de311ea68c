// Package script renders examplegen.Request values as a synchronous,
// exception-handling request function: the scripting form of the example
// formats, modeled on the requests library's idioms.
package script

import (
	"fmt"
	"strings"

	"github.com/erraggy/oaskb/examplegen"
)

// Generate renders req as a Python function using requests.
func Generate(req examplegen.Request) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}

	method := strings.ToLower(req.Endpoint.Method)
	var b strings.Builder

	b.WriteString("import requests\n")
	b.WriteString("from typing import Any, Dict\n\n\n")
	fmt.Fprintf(&b, "def %s() -> Dict[Any, Any]:\n", snakeFunctionName(req.FunctionName()))
	fmt.Fprintf(&b, "    url = \"%s\"\n", req.URL())
	b.WriteString("    headers = {\n")
	b.WriteString("        \"Accept\": \"application/json\",\n")
	if comment, ok := req.AuthComment(); ok {
		fmt.Fprintf(&b, "        # %s\n", comment)
	}
	if name, value, ok := req.AuthHeader(); ok {
		fmt.Fprintf(&b, "        %q: %q,\n", name, value)
	}
	b.WriteString("    }\n")

	body, hasBody := req.BodyIndented("    ")
	if hasBody {
		fmt.Fprintf(&b, "    payload = %s\n", body)
	}

	b.WriteString("    try:\n")
	if hasBody {
		fmt.Fprintf(&b, "        response = requests.%s(url, headers=headers, json=payload)\n", method)
	} else {
		fmt.Fprintf(&b, "        response = requests.%s(url, headers=headers)\n", method)
	}
	b.WriteString("        response.raise_for_status()\n")
	b.WriteString("        return response.json()\n")
	b.WriteString("    except requests.exceptions.RequestException as error:\n")
	b.WriteString("        raise error\n")
	return b.String(), nil
}

func snakeFunctionName(name string) string {
	if name == "" {
		return "call_endpoint"
	}
	var b strings.Builder
	for i, r := range name {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r + ('a' - 'A'))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
