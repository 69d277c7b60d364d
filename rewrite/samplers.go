// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package rewrite

import "github.com/gogpu/shade/ir"

// SplitCombinedSamplers separates every combined texture+sampler uniform
// into a texture symbol named after the original with a "Texture" suffix and
// a pure sampler symbol keeping the original name. The pair shares one
// binding slot, assigned sequentially per stage in discovery order. In the
// linker-objects section the original entry becomes the texture entry with
// the sampler entry directly after it; every other use is replaced by an
// operation reconstructing the combined sampler from the pair, so the
// surrounding sampling code is unchanged.
func SplitCombinedSamplers(prog *ir.Program, gen *ir.IDGenerator) error {
	for _, stage := range prog.Stages() {
		if err := splitStage(prog.Tree(stage), gen); err != nil {
			return err
		}
	}
	return nil
}

func splitStage(t *ir.Tree, gen *ir.IDGenerator) error {
	samplers := newSymbolSet()
	var sites []ir.UseSite

	err := t.Walk(ir.Visitor{
		Symbol: func(w *ir.Walk, h ir.NodeHandle, sym ir.Symbol) error {
			typ := t.TypeOf(h)
			if typ.Qualifier.Storage != ir.StorageUniform || typ.Basic != ir.BasicSampler {
				return nil
			}
			// Linker entries are rewritten into the texture+sampler
			// pair directly, not through the reconstruction.
			if w.InLinkerObjects() {
				samplers.add(sym.Name, h)
			} else {
				sites = append(sites, ir.UseSite{Symbol: h, Parent: w.Parent()})
			}
			return nil
		},
	})
	if err != nil {
		return err
	}
	linker, err := t.LinkerObjects()
	if err != nil {
		return err
	}
	if samplers.len() == 0 && len(sites) == 0 {
		return nil
	}

	type splitPair struct {
		texture ir.NodeHandle
		sampler ir.NodeHandle
	}
	pairs := make(map[string]splitPair, samplers.len())
	replacements := make(map[string]ir.NodeHandle, samplers.len())

	slot := uint32(0)
	for _, name := range samplers.names {
		origType := t.TypeOf(samplers.handle(name))

		textureType := origType
		textureType.Sampler.Combined = false
		textureType.Qualifier.Precision = ir.PrecisionHigh
		textureType.Qualifier.Binding = ir.UintPtr(slot)
		texture := t.AddSymbol(gen.Next(), name+"Texture", textureType)

		samplerType := ir.Type{
			Basic:     ir.BasicSampler,
			Sampler:   ir.SamplerInfo{Pure: true},
			Qualifier: origType.Qualifier,
		}
		samplerType.Qualifier.Precision = ir.PrecisionHigh
		samplerType.Qualifier.Binding = ir.UintPtr(slot)
		sampler := t.AddSymbol(gen.Next(), name, samplerType)

		pairs[name] = splitPair{texture: texture, sampler: sampler}

		combinedType := ir.Type{Basic: ir.BasicSampler, Sampler: origType.Sampler}
		combinedType.Sampler.Combined = true
		replacements[name] = t.AddAggregate(ir.OpConstructCombinedSampler, combinedType, texture, sampler)

		slot++
	}

	for i := linkerLen(t, linker) - 1; i >= 0; i-- {
		c := linkerChild(t, linker, i)
		sym, ok := t.Kind(c).(ir.Symbol)
		if !ok {
			continue
		}
		pair, ok := pairs[sym.Name]
		if !ok {
			continue
		}
		if err := t.ReplaceChild(linker, c, pair.texture); err != nil {
			return err
		}
		if err := t.InsertChild(linker, i+1, pair.sampler); err != nil {
			return err
		}
	}

	return t.ReplaceUses(replacements, sites)
}
