// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package bgfx describes the vertex attribute conventions of the bgfx
// renderer: the fixed attribute set, the shader symbol name bgfx binds each
// attribute to, and the engine-side canonical source names for them.
//
// Attrib values double as binding locations, so a shader rewritten to use
// bgfx's names and locations can be linked against vertex buffers laid out
// with the corresponding bgfx vertex attributes.
package bgfx

// Attrib is a bgfx vertex attribute. The numeric value of an Attrib is also
// its shader binding location.
type Attrib uint8

const (
	AttribPosition Attrib = iota
	AttribNormal
	AttribTangent
	AttribBitangent
	AttribColor0
	AttribColor1
	AttribColor2
	AttribColor3
	AttribIndices
	AttribWeight
	AttribTexCoord0
	AttribTexCoord1
	AttribTexCoord2
	AttribTexCoord3
	AttribTexCoord4
	AttribTexCoord5
	AttribTexCoord6
	AttribTexCoord7

	AttribCount
)

// FirstGenericLocation is the first binding location handed out to attributes
// with no fixed bgfx counterpart. Texture coordinate slots double as generic
// slots.
const FirstGenericLocation = uint32(AttribTexCoord0)

// attribNames matches the attribute symbol table of bgfx's renderers.
var attribNames = [AttribCount]string{
	"a_position",
	"a_normal",
	"a_tangent",
	"a_bitangent",
	"a_color0",
	"a_color1",
	"a_color2",
	"a_color3",
	"a_indices",
	"a_weight",
	"a_texcoord0",
	"a_texcoord1",
	"a_texcoord2",
	"a_texcoord3",
	"a_texcoord4",
	"a_texcoord5",
	"a_texcoord6",
	"a_texcoord7",
}

// Name returns the shader symbol name bgfx binds the attribute to, such as
// "a_position".
func (a Attrib) Name() string {
	if a >= AttribCount {
		return "a_invalid"
	}
	return attribNames[a]
}

// Location returns the attribute's binding location.
func (a Attrib) Location() uint32 { return uint32(a) }

// String returns the attribute's debug name.
func (a Attrib) String() string {
	switch a {
	case AttribPosition:
		return "Position"
	case AttribNormal:
		return "Normal"
	case AttribTangent:
		return "Tangent"
	case AttribBitangent:
		return "Bitangent"
	case AttribColor0:
		return "Color0"
	case AttribColor1:
		return "Color1"
	case AttribColor2:
		return "Color2"
	case AttribColor3:
		return "Color3"
	case AttribIndices:
		return "Indices"
	case AttribWeight:
		return "Weight"
	case AttribTexCoord0:
		return "TexCoord0"
	case AttribTexCoord1:
		return "TexCoord1"
	case AttribTexCoord2:
		return "TexCoord2"
	case AttribTexCoord3:
		return "TexCoord3"
	case AttribTexCoord4:
		return "TexCoord4"
	case AttribTexCoord5:
		return "TexCoord5"
	case AttribTexCoord6:
		return "TexCoord6"
	case AttribTexCoord7:
		return "TexCoord7"
	default:
		return "Invalid"
	}
}

// canonicalAttribs maps the canonical engine-side source names to bgfx
// attributes, the association bgfx's OpenGL renderer is configured with.
var canonicalAttribs = map[string]Attrib{
	"position":        AttribPosition,
	"normal":          AttribNormal,
	"tangent":         AttribTangent,
	"color":           AttribColor0,
	"matricesIndices": AttribIndices,
	"matricesWeights": AttribWeight,
	"uv":              AttribTexCoord0,
	"uv2":             AttribTexCoord1,
	"uv3":             AttribTexCoord2,
	"uv4":             AttribTexCoord3,
	"uv5":             AttribTexCoord4,
	"uv6":             AttribTexCoord5,
}

// CanonicalAttrib returns the bgfx attribute conventionally associated with
// an engine source name such as "position" or "uv2".
func CanonicalAttrib(source string) (Attrib, bool) {
	a, ok := canonicalAttribs[source]
	return a, ok
}
