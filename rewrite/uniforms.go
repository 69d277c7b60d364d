// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package rewrite

import "github.com/gogpu/shade/ir"

// Names given to the synthetic uniform struct. The symbol name mirrors the
// strings glslang generates for anonymous block instances.
const (
	packedStructName = "Frame"
	packedSymbolName = "anon@0"
)

// PackUniforms collects every non-sampler uniform of each stage into one
// synthetic struct, bound to slot 0 with std140 layout and column-major
// matrices, as constant-buffer targets require. Each collected uniform's
// linker entry is removed in favor of a single struct entry at the front of
// the linker-objects section, and every use is replaced by a field selection
// on the struct. Member order follows the order the uniforms are first
// encountered in the linker section. A stage with no eligible uniforms still
// gains the empty struct.
func PackUniforms(prog *ir.Program, gen *ir.IDGenerator) error {
	for _, stage := range prog.Stages() {
		if err := packStage(prog.Tree(stage), gen); err != nil {
			return err
		}
	}
	return nil
}

func packStage(t *ir.Tree, gen *ir.IDGenerator) error {
	uniforms := newSymbolSet()
	var sites []ir.UseSite

	err := t.Walk(ir.Visitor{
		Symbol: func(w *ir.Walk, h ir.NodeHandle, sym ir.Symbol) error {
			typ := t.TypeOf(h)
			if !typ.Qualifier.IsUniformOrBuffer() || typ.Basic == ir.BasicSampler {
				return nil
			}
			// Linker entries define the struct members; every other
			// occurrence becomes a field selection.
			if w.InLinkerObjects() {
				uniforms.add(sym.Name, h)
			} else {
				sites = append(sites, ir.UseSite{Symbol: h, Parent: w.Parent()})
			}
			return nil
		},
	})
	if err != nil {
		return err
	}

	memberQualifier := ir.Qualifier{
		Storage:      ir.StorageUniform,
		Precision:    ir.PrecisionHigh,
		MatrixLayout: ir.MatrixLayoutColumnMajor,
		Packing:      ir.PackingStd140,
	}

	fields := make([]ir.StructField, 0, uniforms.len())
	for _, name := range uniforms.names {
		fieldType := t.TypeOf(uniforms.handle(name))
		fieldType.Qualifier = memberQualifier
		fields = append(fields, ir.StructField{Name: name, Type: fieldType})
	}

	structType := ir.Type{
		Basic:  ir.BasicStruct,
		Struct: &ir.StructDef{Name: packedStructName, Fields: fields},
		Qualifier: ir.Qualifier{
			Storage:      ir.StorageUniform,
			MatrixLayout: ir.MatrixLayoutColumnMajor,
			Packing:      ir.PackingStd140,
			Binding:      ir.UintPtr(0),
		},
	}
	structSym := t.AddSymbol(gen.Next(), packedSymbolName, structType)

	// One field selection per member, shared by all of that member's use
	// sites.
	indexType := ir.Type{Basic: ir.BasicUInt, Qualifier: ir.Qualifier{Storage: ir.StorageConst}}
	replacements := make(map[string]ir.NodeHandle, len(fields))
	for idx, field := range fields {
		index := t.AddConstant(ir.ConstU32(idx), indexType)
		replacements[field.Name] = t.AddBinary(ir.OpIndexDirectStruct, structSym, index, field.Type)
	}

	linker, err := t.LinkerObjects()
	if err != nil {
		return err
	}
	for i := linkerLen(t, linker) - 1; i >= 0; i-- {
		c := linkerChild(t, linker, i)
		sym, ok := t.Kind(c).(ir.Symbol)
		if !ok || !uniforms.has(sym.Name) {
			continue
		}
		t.Release(c)
		if err := t.RemoveChild(linker, i); err != nil {
			return err
		}
	}
	if err := t.InsertChild(linker, 0, structSym); err != nil {
		return err
	}

	return t.ReplaceUses(replacements, sites)
}

func linkerLen(t *ir.Tree, linker ir.NodeHandle) int {
	a, ok := t.Kind(linker).(ir.Aggregate)
	if !ok {
		return 0
	}
	return len(a.Children)
}

func linkerChild(t *ir.Tree, linker ir.NodeHandle, i int) ir.NodeHandle {
	a, ok := t.Kind(linker).(ir.Aggregate)
	if !ok || i < 0 || i >= len(a.Children) {
		return ir.InvalidHandle
	}
	return a.Children[i]
}
