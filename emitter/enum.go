package emitter

import (
	"fmt"
	"strings"

	"github.com/dl-lang/dlc/ast"
)

// emitEnum implements the Enum row's two emissions (spec.md §4.3): the
// `enum class` naming each variant, and a backing `__dl_<Name>` struct
// holding a `type` tag plus a union of per-variant field records, with
// one static factory per variant. Variant order is taken from
// VariantOrder, never from ranging over the Variants map, preserving
// declaration order end to end (spec.md §8's testable property).
func emitEnum(e *ast.EnumStatement) string {
	name := e.Name.Lexeme

	tags := strings.Join(e.VariantOrder, ", ")
	enumClass := fmt.Sprintf("enum class %s : int { %s };", name, tags)

	var unionMembers []string
	var factories []string
	for _, variant := range e.VariantOrder {
		fields := e.Variants[variant]

		var dataFields []string
		var factoryParams []string
		var assigns []string
		for i, ft := range fields {
			dataFields = append(dataFields, fmt.Sprintf("%s data_%d;", ft.CType(), i))
			paramName := fmt.Sprintf("%s_%d", variant, i)
			factoryParams = append(factoryParams, fmt.Sprintf("%s %s", ft.CType(), paramName))
			assigns = append(assigns, fmt.Sprintf("v.%s_data.data_%d = %s;", variant, i, paramName))
		}

		unionMembers = append(unionMembers, fmt.Sprintf("struct { %s } %s_data;", strings.Join(dataFields, " "), variant))

		factoryBody := []string{
			fmt.Sprintf("%s v;", "__dl_"+name),
			fmt.Sprintf("v.type = %s::%s;", name, variant),
		}
		factoryBody = append(factoryBody, assigns...)
		factoryBody = append(factoryBody, "return v;")

		factories = append(factories, fmt.Sprintf("static __dl_%s %s(%s) %s",
			name, variant, strings.Join(factoryParams, ", "), braced(strings.Join(factoryBody, "\n"))))
	}

	// The union is anonymous: its per-variant members (e.g. Some_data)
	// become direct members of __dl_<Name>, which is what lets a match
	// case reach `o.Some_data.data_0` instead of `o.data.Some_data...`.
	backingBody := fmt.Sprintf("%s type;\nunion {\n%s\n};\n%s",
		name, indent(strings.Join(unionMembers, "\n")), strings.Join(factories, "\n"))
	backing := fmt.Sprintf("struct __dl_%s %s;", name, braced(backingBody))

	return enumClass + "\n" + backing
}

// emitMatch implements the Match row: a `switch` on the scrutinee's
// `type` tag, one `case` per non-default MatchCase binding its
// destructured names as `const auto n = <scrutinee>.<Variant>_data.data_<k>;`
// before the case body, and a `default:` for the `_` arm.
//
// Case labels use the enum class's own scoped enumerator
// (`Opt::Some`), not the `__dl_`-prefixed backing struct — unlike an
// EnumExpression appearing as an ordinary expression (emitEnumExpression),
// a match label is never itself evaluated as a value.
func emitMatch(m *ast.MatchStatement) string {
	scrutinee := Emit(m.Scrutinee)
	var cases []string
	for _, c := range m.Cases {
		if c.IsDefault() {
			cases = append(cases, fmt.Sprintf("default: %s", braced(matchCaseBody(scrutinee, c))))
			continue
		}
		label := fmt.Sprintf("%s::%s", c.Label.BaseExpr.Name.Lexeme, c.Label.VariantName().Lexeme)
		cases = append(cases, fmt.Sprintf("case %s: %s", label, braced(matchCaseBody(scrutinee, c))))
	}
	return fmt.Sprintf("switch (%s.type) %s", scrutinee, braced(strings.Join(cases, "\n")))
}

func matchCaseBody(scrutinee string, c *ast.MatchCase) string {
	variant := ""
	if c.Label != nil {
		variant = c.Label.VariantName().Lexeme
	}

	var lines []string
	for i, name := range c.Destructuring {
		lines = append(lines, fmt.Sprintf("const auto %s = %s.%s_data.data_%d;", name, scrutinee, variant, i))
	}
	if body := emitBlockBody(c.Body); body != "" {
		lines = append(lines, body)
	}
	lines = append(lines, "break;")
	return strings.Join(lines, "\n")
}
