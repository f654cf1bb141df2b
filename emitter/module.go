package emitter

import (
	"strings"

	"github.com/dl-lang/dlc/ast"
)

// EmitModule implements the Module row and §6's output file format:
// includes, then enums (each an `enum class` plus its backing `__dl_`
// struct), then structs, then functions, each section separated by a
// blank line. A section with nothing in it contributes nothing, so an
// empty module renders as the empty string.
func EmitModule(m *ast.ModuleStatement) string {
	var sections []string

	if len(m.Includes) > 0 {
		includes := make([]string, len(m.Includes))
		for i, path := range m.Includes {
			includes[i] = "#include <" + path + ">"
		}
		sections = append(sections, strings.Join(includes, "\n"))
	}

	if rendered := joinTopLevel(m.Enums); rendered != "" {
		sections = append(sections, rendered)
	}
	if rendered := joinTopLevel(m.Structs); rendered != "" {
		sections = append(sections, rendered)
	}
	if rendered := joinTopLevel(m.Functions); rendered != "" {
		sections = append(sections, rendered)
	}

	return strings.Join(sections, "\n\n")
}

func joinTopLevel(nodes []ast.Node) string {
	var rendered []string
	for _, n := range nodes {
		rendered = append(rendered, Emit(n))
	}
	return strings.Join(rendered, "\n\n")
}
