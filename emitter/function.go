package emitter

import (
	"fmt"
	"strings"

	"github.com/dl-lang/dlc/ast"
	"github.com/dl-lang/dlc/types"
)

// emitFunction implements the Function row: mutability-qualified
// params, a lowered return type (an unrecognized name is emitted
// verbatim, e.g. `void`), and the body in braces.
func emitFunction(f *ast.FunctionStatement) string {
	params := make([]string, len(f.Params))
	for i, p := range f.Params {
		params[i] = fmt.Sprintf("%s %s", qualifiedType(p), p.Name)
	}
	return fmt.Sprintf("%s %s(%s) %s", lowerReturnType(f), f.Name.Lexeme, strings.Join(params, ", "), braced(emitBlockBody(f.Body)))
}

// lowerReturnType uses the registry-resolved ReturnType when the
// parser found one, so a return type naming a registered enum lowers
// to its backing `__dl_<Name>` struct the same way a parameter or
// local of that type does; an unresolved return type (`void`, or any
// other name the registry does not know) passes through verbatim.
func lowerReturnType(f *ast.FunctionStatement) string {
	if f.ReturnType.IsCustom || f.ReturnType.Builtin != types.None {
		return f.ReturnType.CType()
	}
	return f.ReturnTypeName
}
