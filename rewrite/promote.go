// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package rewrite

import "github.com/gogpu/shade/ir"

// PromoteUniformVectors retypes every float, vec2 and vec3 uniform to vec4,
// which targets with vec4-granular uniform storage require. Matrix, sampler
// and struct uniforms are left alone. Every use outside the linker-objects
// section is wrapped in a shape conversion back to the shape the surrounding
// code consumes; an indexed array uniform is converted at the indexing
// operation instead, after the operation itself is retyped to the promoted
// element shape.
//
// An already promoted use may gain a redundant conversion over an existing
// narrowing, such as projecting the first component of a widened vec3. The
// layered conversion is shape-correct and left for the code generator to
// flatten.
func PromoteUniformVectors(prog *ir.Program) error {
	for _, stage := range prog.Stages() {
		if err := promoteStage(prog.Tree(stage)); err != nil {
			return err
		}
	}
	return nil
}

func promoteStage(t *ir.Tree) error {
	return t.Walk(ir.Visitor{
		Symbol: func(w *ir.Walk, h ir.NodeHandle, sym ir.Symbol) error {
			oldType := t.TypeOf(h)
			if !oldType.Qualifier.IsUniformOrBuffer() ||
				oldType.Basic == ir.BasicSampler ||
				oldType.Basic == ir.BasicStruct ||
				oldType.IsMatrix() {
				return nil
			}

			newType := ir.Type{
				Basic:      ir.BasicFloat,
				Vector:     4,
				ArraySizes: oldType.ArraySizes,
				Qualifier:  oldType.Qualifier,
			}
			t.SetType(h, newType)

			// Linker entries only change type; uses must also convert
			// the widened value back to the consumed shape.
			if w.InLinkerObjects() {
				return nil
			}

			parent := w.Parent()
			if oldType.IsArray() {
				// The value consumed by the surrounding code is the
				// indexed element, so the conversion goes between the
				// indexing operation and its parent, and the indexing
				// operation itself takes the promoted element type.
				if _, ok := t.Kind(parent).(ir.Binary); !ok {
					return ir.NewErrorAt(ir.ErrUnsupportedReplacementTarget, parent,
						"array uniform use is not an indexing operation")
				}
				elemType := t.TypeOf(parent)
				t.SetType(parent, newType.WithoutArraySizes())
				conv, err := t.AddShapeConversion(elemType, parent)
				if err != nil {
					return err
				}
				if conv == parent {
					return nil
				}
				return t.RedirectChild(w.Grandparent(), parent, conv)
			}

			conv, err := t.AddShapeConversion(oldType, h)
			if err != nil {
				return err
			}
			if conv == h {
				return nil
			}
			return t.RedirectChild(parent, h, conv)
		},
	})
}
