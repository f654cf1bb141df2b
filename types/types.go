// Package types implements DL's small type model: the fixed set of
// builtin scalar kinds, user-defined struct/enum names, and the
// variable-declaration shape ({mutability, type, type extensions,
// name}) shared by parameters, locals, and struct members.
package types

import "strings"

// BuiltinType enumerates DL's builtin scalar kinds. None means "not a
// recognized builtin" rather than an invalid zero value, so that a
// missing lookup and an explicit "none" both read the same way.
type BuiltinType int

const (
	None BuiltinType = iota
	U8
	I8
	U16
	I16
	U32
	I32
	U64
	I64
	F32
	F64
	Char
)

var builtinNames = map[string]BuiltinType{
	"u8":   U8,
	"i8":   I8,
	"u16":  U16,
	"i16":  I16,
	"u32":  U32,
	"i32":  I32,
	"u64":  U64,
	"i64":  I64,
	"f32":  F32,
	"f64":  F64,
	"char": Char,
}

// cTypeNames is the builtin lowering table from spec.md §4.3.
var cTypeNames = map[BuiltinType]string{
	U8:   "unsigned char",
	I8:   "char",
	U16:  "unsigned short",
	I16:  "short",
	U32:  "unsigned int",
	I32:  "int",
	U64:  "unsigned long",
	I64:  "long",
	F32:  "float",
	F64:  "double",
	Char: "char",
}

// LookupBuiltin returns the BuiltinType named by name, or None if name
// does not name a builtin scalar.
func LookupBuiltin(name string) BuiltinType {
	if b, ok := builtinNames[name]; ok {
		return b
	}
	return None
}

func (b BuiltinType) String() string {
	for name, k := range builtinNames {
		if k == b {
			return name
		}
	}
	return "none"
}

// CType lowers a builtin scalar to its C target-language spelling.
func (b BuiltinType) CType() string {
	if c, ok := cTypeNames[b]; ok {
		return c
	}
	return b.String()
}

// CustomKind distinguishes the two kinds of user-defined type.
type CustomKind int

const (
	Struct CustomKind = iota
	Enum
)

func (k CustomKind) String() string {
	if k == Struct {
		return "struct"
	}
	return "enum"
}

// CustomType names a user-defined struct or enum. Two CustomTypes are
// equal iff both Name and Kind match, which is exactly Go's built-in
// struct equality here since both fields are comparable — used
// directly as a map key by the parser's type registry.
type CustomType struct {
	Name string
	Kind CustomKind
}

// Type is the tagged union `BuiltinType | CustomType` from spec.md §3.
// Exactly one of Builtin/Custom is meaningful; IsCustom says which.
type Type struct {
	Builtin  BuiltinType
	Custom   CustomType
	IsCustom bool
}

// FromBuiltin wraps a builtin scalar as a Type.
func FromBuiltin(b BuiltinType) Type {
	return Type{Builtin: b}
}

// FromCustom wraps a user-defined type as a Type.
func FromCustom(c CustomType) Type {
	return Type{Custom: c, IsCustom: true}
}

func (t Type) String() string {
	if t.IsCustom {
		return t.Custom.Name
	}
	return t.Builtin.String()
}

// CType lowers t to its C target-language spelling. A struct name is
// emitted verbatim; an enum name is emitted as its backing
// `__dl_<Name>` struct, since every enum value (a match scrutinee, a
// parameter, a return value) is represented by that struct, not by
// the bare `enum class` tag type (spec.md §4.3).
func (t Type) CType() string {
	if t.IsCustom {
		if t.Custom.Kind == Enum {
			return "__dl_" + t.Custom.Name
		}
		return t.Custom.Name
	}
	return t.Builtin.CType()
}

// VariableDeclaration is {is_mutable, type, type_extensions, name}
// from spec.md §3: a parameter, local, or struct member.
type VariableDeclaration struct {
	IsMutable      bool
	Type           Type
	TypeExtensions string
	Name           string
}

// IsArray reports whether TypeExtensions denotes a fixed-size array
// (`[N]`) rather than pointer stars, per spec.md's recovery rule:
// "whether it denotes pointer-ness or a fixed-size array is recovered
// by inspecting whether it starts with `[` and ends with `]`".
func (v VariableDeclaration) IsArray() bool {
	ext := strings.TrimSpace(v.TypeExtensions)
	return strings.HasPrefix(ext, "[") && strings.HasSuffix(ext, "]")
}

// IsPointer reports whether TypeExtensions is one or more `*`.
func (v VariableDeclaration) IsPointer() bool {
	return !v.IsArray() && strings.Contains(v.TypeExtensions, "*")
}

// ArraySize returns the `[N]` extension's declared element count and
// true, or ("", false) if TypeExtensions is not an array extension.
func (v VariableDeclaration) ArraySize() (string, bool) {
	if !v.IsArray() {
		return "", false
	}
	ext := strings.TrimSpace(v.TypeExtensions)
	return ext[1 : len(ext)-1], true
}
