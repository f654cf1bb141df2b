package emitter

import (
	"fmt"
	"strings"

	"github.com/dl-lang/dlc/ast"
)

// emitStruct implements the Struct row: a plain record plus a static
// `create(members)` factory returning a brace-initialised value
// (spec.md §4.3, §8 scenario 4). A zero-field struct still gets a
// `create()` factory with an empty brace init (§8 boundary case).
func emitStruct(s *ast.StructStatement) string {
	var fields []string
	var params []string
	var inits []string
	for _, m := range s.Members {
		fields = append(fields, fmt.Sprintf("%s %s;", m.Type.CType()+m.TypeExtensions, m.Name))
		params = append(params, fmt.Sprintf("%s %s", m.Type.CType()+m.TypeExtensions, m.Name))
		inits = append(inits, fmt.Sprintf(".%s = %s", m.Name, m.Name))
	}

	braceInit := "{}"
	if len(inits) > 0 {
		braceInit = "{ " + strings.Join(inits, ", ") + " }"
	}

	name := s.Name.Lexeme
	factory := fmt.Sprintf("static %s create(%s) %s", name, strings.Join(params, ", "),
		braced(fmt.Sprintf("return %s;", braceInit)))

	body := strings.Join(fields, "\n")
	if body != "" {
		body += "\n"
	}
	body += factory

	return fmt.Sprintf("struct %s %s;", name, braced(body))
}
