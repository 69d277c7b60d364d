package ir

import (
	"fmt"
	"strings"
)

// BasicKind is the scalar or opaque category at the core of a Type.
type BasicKind uint8

const (
	// BasicVoid is the absence of a value.
	BasicVoid BasicKind = iota
	// BasicFloat is a 32-bit IEEE float.
	BasicFloat
	// BasicInt is a 32-bit signed integer.
	BasicInt
	// BasicUInt is a 32-bit unsigned integer.
	BasicUInt
	// BasicBool is a boolean.
	BasicBool
	// BasicSampler is an opaque sampler or texture handle.
	BasicSampler
	// BasicStruct is a named aggregate of fields.
	BasicStruct
)

// String returns the GLSL-flavored name of the kind.
func (k BasicKind) String() string {
	switch k {
	case BasicVoid:
		return "void"
	case BasicFloat:
		return "float"
	case BasicInt:
		return "int"
	case BasicUInt:
		return "uint"
	case BasicBool:
		return "bool"
	case BasicSampler:
		return "sampler"
	case BasicStruct:
		return "struct"
	default:
		return "invalid"
	}
}

// StorageClass says where a symbol's value lives and how long it lasts.
type StorageClass uint8

const (
	// StorageTemporary is a function-local value.
	StorageTemporary StorageClass = iota
	// StorageConst is a compile-time constant.
	StorageConst
	// StorageGlobal is a shader-global non-uniform variable.
	StorageGlobal
	// StorageUniform is a uniform variable set by the application.
	StorageUniform
	// StorageBuffer is a shader storage buffer variable.
	StorageBuffer
	// StorageVaryingIn is a stage input (vertex attribute or interpolant).
	StorageVaryingIn
	// StorageVaryingOut is a stage output.
	StorageVaryingOut
)

// String returns the lowercase storage class name.
func (s StorageClass) String() string {
	switch s {
	case StorageTemporary:
		return "temp"
	case StorageConst:
		return "const"
	case StorageGlobal:
		return "global"
	case StorageUniform:
		return "uniform"
	case StorageBuffer:
		return "buffer"
	case StorageVaryingIn:
		return "in"
	case StorageVaryingOut:
		return "out"
	default:
		return "invalid"
	}
}

// Precision is a GLSL precision qualifier.
type Precision uint8

const (
	PrecisionNone Precision = iota
	PrecisionLow
	PrecisionMedium
	PrecisionHigh
)

// MatrixLayout is the memory order of a matrix.
type MatrixLayout uint8

const (
	MatrixLayoutNone MatrixLayout = iota
	MatrixLayoutRowMajor
	MatrixLayoutColumnMajor
)

// Packing is the memory layout rule applied to a block or struct member.
type Packing uint8

const (
	PackingNone Packing = iota
	PackingTight
	PackingStd140
	PackingStd430
)

// ImageDimension is the dimensionality of a sampled image.
type ImageDimension uint8

const (
	Dim1D ImageDimension = iota
	Dim2D
	Dim3D
	DimCube
)

// SamplerInfo describes an opaque sampler type. A front-end produces combined
// texture+sampler symbols; the sampler splitting pass separates them into a
// texture (Combined false) and a pure sampler (Pure true).
type SamplerInfo struct {
	Dim          ImageDimension
	Arrayed      bool
	Shadow       bool
	Multisampled bool
	// Combined is set when the symbol is a GLSL-style combined
	// texture+sampler.
	Combined bool
	// Pure is set when the symbol is a bare sampler with no image.
	Pure bool
	// Sampled is the scalar kind returned by sampling.
	Sampled BasicKind
}

// StructField is one member of a StructDef.
type StructField struct {
	Name string
	Type Type
}

// StructDef is the shared definition of a struct type. Symbols whose types
// carry the same *StructDef refer to the same struct.
type StructDef struct {
	Name   string
	Fields []StructField
}

// Qualifier carries the non-shape attributes of a symbol: storage, layout,
// precision and source position. Qualifiers never participate in type
// equality.
type Qualifier struct {
	Storage      StorageClass
	Precision    Precision
	MatrixLayout MatrixLayout
	Packing      Packing
	// Binding is the descriptor binding slot, if assigned.
	Binding *uint32
	// Location is the input/output location, if assigned.
	Location *uint32
	// Line and Column are the symbol's position in the source, for
	// diagnostics only.
	Line   uint32
	Column uint32
}

// IsUniformOrBuffer reports whether the storage class is uniform or buffer.
func (q Qualifier) IsUniformOrBuffer() bool {
	return q.Storage == StorageUniform || q.Storage == StorageBuffer
}

// Type is the resolved type of a node. The zero value is void.
//
// Shape is encoded as: a BasicKind, an optional vector width (Vector > 1),
// optional matrix dimensions (MatrixCols and MatrixRows > 1), and optional
// outer array sizes. A matrix is float-based with both dimensions set; a
// vector has Vector set and no matrix dimensions.
type Type struct {
	Basic      BasicKind
	Vector     uint8
	MatrixCols uint8
	MatrixRows uint8
	// ArraySizes lists outer array dimensions, outermost first. Empty
	// means not an array.
	ArraySizes []uint32
	// Sampler is meaningful only when Basic is BasicSampler.
	Sampler SamplerInfo
	// Struct is meaningful only when Basic is BasicStruct.
	Struct    *StructDef
	Qualifier Qualifier
}

// IsArray reports whether the type has at least one array dimension.
func (t Type) IsArray() bool { return len(t.ArraySizes) > 0 }

// IsMatrix reports whether the type is a matrix.
func (t Type) IsMatrix() bool { return t.MatrixCols > 1 && t.MatrixRows > 1 }

// IsVector reports whether the type is a vector (and not a matrix).
func (t Type) IsVector() bool { return t.Vector > 1 && !t.IsMatrix() }

// IsScalar reports whether the type is a lone scalar.
func (t Type) IsScalar() bool {
	return t.Vector <= 1 && !t.IsMatrix() && !t.IsArray() &&
		t.Basic != BasicStruct && t.Basic != BasicSampler && t.Basic != BasicVoid
}

// WithoutArraySizes returns a copy of t with all array dimensions removed.
func (t Type) WithoutArraySizes() Type {
	t.ArraySizes = nil
	return t
}

// Equal reports whether t and o have the same shape. Qualifiers and source
// positions are ignored; struct types compare by field names and shapes.
func (t Type) Equal(o Type) bool {
	if t.Basic != o.Basic || t.Vector != o.Vector ||
		t.MatrixCols != o.MatrixCols || t.MatrixRows != o.MatrixRows {
		return false
	}
	if len(t.ArraySizes) != len(o.ArraySizes) {
		return false
	}
	for i, n := range t.ArraySizes {
		if o.ArraySizes[i] != n {
			return false
		}
	}
	if t.Basic == BasicSampler && t.Sampler != o.Sampler {
		return false
	}
	if t.Basic == BasicStruct {
		return structEqual(t.Struct, o.Struct)
	}
	return true
}

func structEqual(a, b *StructDef) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if a.Name != b.Name || len(a.Fields) != len(b.Fields) {
		return false
	}
	for i := range a.Fields {
		if a.Fields[i].Name != b.Fields[i].Name {
			return false
		}
		if !a.Fields[i].Type.Equal(b.Fields[i].Type) {
			return false
		}
	}
	return true
}

// String returns a GLSL-flavored rendering of the type shape, such as
// "vec4", "mat3", "float[4]" or "struct Frame".
func (t Type) String() string {
	var sb strings.Builder
	switch {
	case t.IsMatrix():
		if t.MatrixCols == t.MatrixRows {
			fmt.Fprintf(&sb, "mat%d", t.MatrixCols)
		} else {
			fmt.Fprintf(&sb, "mat%dx%d", t.MatrixCols, t.MatrixRows)
		}
	case t.IsVector():
		switch t.Basic {
		case BasicFloat:
			fmt.Fprintf(&sb, "vec%d", t.Vector)
		case BasicInt:
			fmt.Fprintf(&sb, "ivec%d", t.Vector)
		case BasicUInt:
			fmt.Fprintf(&sb, "uvec%d", t.Vector)
		case BasicBool:
			fmt.Fprintf(&sb, "bvec%d", t.Vector)
		default:
			fmt.Fprintf(&sb, "%s%d", t.Basic, t.Vector)
		}
	case t.Basic == BasicStruct:
		if t.Struct != nil && t.Struct.Name != "" {
			fmt.Fprintf(&sb, "struct %s", t.Struct.Name)
		} else {
			sb.WriteString("struct")
		}
	case t.Basic == BasicSampler:
		sb.WriteString(samplerString(t.Sampler))
	default:
		sb.WriteString(t.Basic.String())
	}
	for _, n := range t.ArraySizes {
		fmt.Fprintf(&sb, "[%d]", n)
	}
	return sb.String()
}

func samplerString(s SamplerInfo) string {
	var sb strings.Builder
	if s.Pure {
		return "sampler"
	}
	switch s.Sampled {
	case BasicInt:
		sb.WriteString("i")
	case BasicUInt:
		sb.WriteString("u")
	}
	if s.Combined {
		sb.WriteString("sampler")
	} else {
		sb.WriteString("texture")
	}
	switch s.Dim {
	case Dim1D:
		sb.WriteString("1D")
	case Dim2D:
		sb.WriteString("2D")
	case Dim3D:
		sb.WriteString("3D")
	case DimCube:
		sb.WriteString("Cube")
	}
	if s.Multisampled {
		sb.WriteString("MS")
	}
	if s.Arrayed {
		sb.WriteString("Array")
	}
	if s.Shadow {
		sb.WriteString("Shadow")
	}
	return sb.String()
}

// FloatType returns a scalar float type.
func FloatType() Type { return Type{Basic: BasicFloat} }

// VecType returns a float vector type of the given width.
func VecType(width uint8) Type { return Type{Basic: BasicFloat, Vector: width} }

// MatType returns a float matrix type with the given dimensions.
func MatType(cols, rows uint8) Type {
	return Type{Basic: BasicFloat, MatrixCols: cols, MatrixRows: rows}
}

// UintPtr returns a pointer to v, for Qualifier.Binding and
// Qualifier.Location.
func UintPtr(v uint32) *uint32 { return &v }
