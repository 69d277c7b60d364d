package ir

// NodeKind is the closed set of node payloads. Exactly the types in this
// package implement it.
type NodeKind interface {
	nodeKind()
}

// Symbol is a reference to a named object. Every occurrence of the same
// object shares one ID; synthesized symbols take fresh IDs from an
// IDGenerator.
type Symbol struct {
	ID   uint64
	Name string
}

// Aggregate is an ordered sequence of children under an operator tag. The
// root of a tree is an OpSequence aggregate, and the linker-objects section
// is an OpLinkerObjects aggregate.
type Aggregate struct {
	Op       Operator
	Children []NodeHandle
}

// Binary is a two-operand operation.
type Binary struct {
	Op    Operator
	Left  NodeHandle
	Right NodeHandle
}

// Unary is a one-operand operation.
type Unary struct {
	Op      Operator
	Operand NodeHandle
}

// Constant is a literal value.
type Constant struct {
	Value ConstantValue
}

func (Symbol) nodeKind()    {}
func (Aggregate) nodeKind() {}
func (Binary) nodeKind()    {}
func (Unary) nodeKind()     {}
func (Constant) nodeKind()  {}

// ConstantValue is the closed set of literal payloads.
type ConstantValue interface {
	constantValue()
}

// ConstF32 is a float literal.
type ConstF32 float32

// ConstI32 is a signed integer literal.
type ConstI32 int32

// ConstU32 is an unsigned integer literal.
type ConstU32 uint32

// ConstBool is a boolean literal.
type ConstBool bool

func (ConstF32) constantValue()  {}
func (ConstI32) constantValue()  {}
func (ConstU32) constantValue()  {}
func (ConstBool) constantValue() {}

// Node is one arena entry: a payload variant plus its resolved type. A
// released node has a nil Kind.
type Node struct {
	Kind NodeKind
	Type Type
}

// Operator tags Aggregate, Binary and Unary nodes. The set covers the
// operations the rewriting passes inspect or synthesize; front-ends may
// carry further operators through untouched.
type Operator uint8

const (
	// OpNone is the zero operator.
	OpNone Operator = iota

	// OpSequence is a statement or declaration sequence.
	OpSequence
	// OpLinkerObjects is the externally visible symbol section, always
	// the last child of the root.
	OpLinkerObjects

	// OpIndexDirect indexes an array or vector by a constant.
	OpIndexDirect
	// OpIndexIndirect indexes an array or vector by a computed value.
	OpIndexIndirect
	// OpIndexDirectStruct selects a struct field by constant index.
	OpIndexDirectStruct
	// OpVectorSwizzle reorders or narrows vector components.
	OpVectorSwizzle

	OpAssign
	OpAdd
	OpSubtract
	OpMultiply
	OpDivide

	// OpNegative is arithmetic negation.
	OpNegative

	OpDPdx
	OpDPdy
	OpDPdxFine
	OpDPdyFine
	OpDPdxCoarse
	OpDPdyCoarse

	// OpTexture samples a combined texture+sampler.
	OpTexture
	// OpConstructCombinedSampler rebuilds a combined sampler from a
	// texture and a pure sampler.
	OpConstructCombinedSampler

	OpConstructFloat
	OpConstructInt
	OpConstructUInt
	OpConstructBool
	OpConstructVec2
	OpConstructVec3
	OpConstructVec4
	OpConstructIVec2
	OpConstructIVec3
	OpConstructIVec4
	OpConstructUVec2
	OpConstructUVec3
	OpConstructUVec4
	OpConstructBVec2
	OpConstructBVec3
	OpConstructBVec4
)

var operatorNames = map[Operator]string{
	OpNone:                     "none",
	OpSequence:                 "sequence",
	OpLinkerObjects:            "linker-objects",
	OpIndexDirect:              "index-direct",
	OpIndexIndirect:            "index-indirect",
	OpIndexDirectStruct:        "index-direct-struct",
	OpVectorSwizzle:            "vector-swizzle",
	OpAssign:                   "assign",
	OpAdd:                      "add",
	OpSubtract:                 "subtract",
	OpMultiply:                 "multiply",
	OpDivide:                   "divide",
	OpNegative:                 "negative",
	OpDPdx:                     "dPdx",
	OpDPdy:                     "dPdy",
	OpDPdxFine:                 "dPdxFine",
	OpDPdyFine:                 "dPdyFine",
	OpDPdxCoarse:               "dPdxCoarse",
	OpDPdyCoarse:               "dPdyCoarse",
	OpTexture:                  "texture",
	OpConstructCombinedSampler: "construct-combined-sampler",
	OpConstructFloat:           "construct-float",
	OpConstructInt:             "construct-int",
	OpConstructUInt:            "construct-uint",
	OpConstructBool:            "construct-bool",
	OpConstructVec2:            "construct-vec2",
	OpConstructVec3:            "construct-vec3",
	OpConstructVec4:            "construct-vec4",
	OpConstructIVec2:           "construct-ivec2",
	OpConstructIVec3:           "construct-ivec3",
	OpConstructIVec4:           "construct-ivec4",
	OpConstructUVec2:           "construct-uvec2",
	OpConstructUVec3:           "construct-uvec3",
	OpConstructUVec4:           "construct-uvec4",
	OpConstructBVec2:           "construct-bvec2",
	OpConstructBVec3:           "construct-bvec3",
	OpConstructBVec4:           "construct-bvec4",
}

// String returns the operator's debug name.
func (op Operator) String() string {
	if name, ok := operatorNames[op]; ok {
		return name
	}
	return "invalid"
}

// IsYDerivative reports whether the operator computes a derivative along the
// window-space Y axis.
func (op Operator) IsYDerivative() bool {
	return op == OpDPdy || op == OpDPdyFine || op == OpDPdyCoarse
}
