// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package rewrite

import "github.com/gogpu/shade/ir"

// InvertYDerivatives negates the operand of every window-space Y derivative
// in the fragment stage, compensating for targets whose window coordinates
// run top to bottom. The negation is inserted between the derivative and its
// operand; the operand subtree itself is not descended into, so a derivative
// nested inside another derivative's operand keeps its sign.
func InvertYDerivatives(prog *ir.Program) error {
	t := prog.Tree(ir.StageFragment)
	if t == nil {
		return nil
	}
	return t.Walk(ir.Visitor{
		Unary: func(w *ir.Walk, h ir.NodeHandle, u ir.Unary) (bool, error) {
			if !u.Op.IsYDerivative() {
				return true, nil
			}
			negType := t.TypeOf(u.Operand)
			negType.Qualifier = ir.Qualifier{}
			u.Operand = t.AddUnary(ir.OpNegative, u.Operand, negType)
			t.SetKind(h, u)
			return false, nil
		},
	})
}
