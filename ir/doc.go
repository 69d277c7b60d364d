// Package ir defines the typed intermediate tree that shade's rewriting
// passes operate on.
//
// The tree has the shape produced by a front-end parser/type-checker for a
// GLSL-family shading language: a root sequence aggregate whose final child
// is the linker-objects section enumerating every externally visible symbol
// exactly once. Rewriting passes restructure this tree in place so that the
// same program can be re-emitted for a different target renderer.
//
// # Structure
//
// Nodes live in a per-tree arena and reference each other through stable
// NodeHandle indices; replacing a subtree is an overwrite of a handle in a
// parent's child slot. The node payload is a closed set of variants:
//   - Symbol: a named, uniquely identified reference
//   - Aggregate: an ordered child sequence with an operator tag
//   - Binary: left/right children with an operator tag
//   - Unary: a single operand with an operator tag
//   - Constant: a literal value
//
// Every node carries its resolved Type. Types are plain values; comparing
// them with Equal compares shape (basic kind, widths, array sizes, struct
// fields), not qualifiers.
//
// # Rewriting Pipeline
//
// The typical pipeline is:
//
//	source → parse/type-check (external) → ir.Program → rewrite passes → code generation (external)
//
// The traversal engine (Walk) visits every symbol occurrence exactly once
// with its full ancestor path available, and the replacement engine
// (ReplaceChild, ReplaceUses) performs the slot surgery the passes rely on.
//
// # References
//
// The tree shape follows the intermediate representation of glslang:
// https://github.com/KhronosGroup/glslang
package ir
