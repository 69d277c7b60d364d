// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package rewrite

import (
	"fmt"
	"strings"

	"github.com/gogpu/shade/bgfx"
	"github.com/gogpu/shade/ir"
)

// AttribPolicy selects how BindVertexAttributes assigns locations and names.
type AttribPolicy uint8

const (
	// PolicyFixedTable maps attributes named in the table to that
	// attribute's location and bgfx name, and hands sequential generic
	// locations to the rest, which keep their names.
	PolicyFixedTable AttribPolicy = iota

	// PolicyPacked ignores source names entirely and assigns locations
	// 0, 1, 2 and so on in discovery order, each with the bgfx name of
	// that location. Used on targets with a hard attribute limit.
	PolicyPacked
)

// AttribOptions configures BindVertexAttributes.
type AttribOptions struct {
	// Policy selects the assignment strategy.
	Policy AttribPolicy

	// Table maps source attribute names to bgfx attributes. Only
	// PolicyFixedTable consults it.
	Table map[string]bgfx.Attrib

	// FirstGenericLocation is the first location handed to attributes
	// absent from the table under PolicyFixedTable.
	FirstGenericLocation uint32

	// MaxSlots bounds how many attributes PolicyPacked may assign.
	// Zero means the full bgfx attribute range.
	MaxSlots int
}

// DefaultAttribOptions returns the fixed-table policy over the canonical
// engine attribute names, with generics starting at bgfx's first texture
// coordinate slot.
func DefaultAttribOptions() AttribOptions {
	return AttribOptions{
		Policy:               PolicyFixedTable,
		Table:                canonicalTable(),
		FirstGenericLocation: bgfx.FirstGenericLocation,
		MaxSlots:             int(bgfx.AttribCount),
	}
}

func canonicalTable() map[string]bgfx.Attrib {
	table := make(map[string]bgfx.Attrib)
	for _, name := range []string{
		"position", "normal", "tangent", "color",
		"matricesIndices", "matricesWeights",
		"uv", "uv2", "uv3", "uv4", "uv5", "uv6",
	} {
		a, ok := bgfx.CanonicalAttrib(name)
		if !ok {
			continue
		}
		table[name] = a
	}
	return table
}

// BindVertexAttributes rewrites every vertex attribute of the vertex stage
// to the name and location bgfx binds vertex buffers against. Each attribute
// is replaced, in its linker entry and at every use, by a fresh symbol with
// the assigned name and location and the original shape. The returned map
// records each assigned name against the original source name, so the caller
// can associate application-side vertex streams with the rewritten shader.
//
// Under PolicyFixedTable, texture coordinate attributes double as generic
// slots, so the generic counter is seeded with the number of uv-prefixed
// attributes before assignment begins.
func BindVertexAttributes(prog *ir.Program, gen *ir.IDGenerator, opts AttribOptions) (map[string]string, error) {
	renamed := make(map[string]string)
	t := prog.Tree(ir.StageVertex)
	if t == nil {
		return renamed, nil
	}

	attrs := newSymbolSet()
	var sites []ir.UseSite

	err := t.Walk(ir.Visitor{
		Symbol: func(w *ir.Walk, h ir.NodeHandle, sym ir.Symbol) error {
			if t.TypeOf(h).Qualifier.Storage != ir.StorageVaryingIn {
				return nil
			}
			// The linker section lists every attribute exactly once,
			// so it alone defines the assignment order. The
			// replacement is a plain symbol, so linker entries are
			// replaced alongside every other use.
			if w.InLinkerObjects() {
				attrs.add(sym.Name, h)
			}
			sites = append(sites, ir.UseSite{Symbol: h, Parent: w.Parent()})
			return nil
		},
	})
	if err != nil {
		return nil, err
	}

	maxSlots := opts.MaxSlots
	if maxSlots <= 0 || maxSlots > int(bgfx.AttribCount) {
		maxSlots = int(bgfx.AttribCount)
	}

	count := uint32(0)
	if opts.Policy == PolicyFixedTable {
		for _, name := range attrs.names {
			if strings.HasPrefix(name, "uv") {
				count++
			}
		}
	}

	replacements := make(map[string]ir.NodeHandle, attrs.len())
	for _, name := range attrs.names {
		var location uint32
		newName := name
		switch opts.Policy {
		case PolicyPacked:
			if int(count) >= maxSlots {
				return nil, NewError(ErrAttributeSlotsExhausted,
					fmt.Sprintf("attribute %q does not fit in %d slots", name, maxSlots))
			}
			location = count
			newName = bgfx.Attrib(count).Name()
			count++
		default:
			if a, ok := opts.Table[name]; ok {
				location = a.Location()
				newName = a.Name()
			} else {
				location = opts.FirstGenericLocation + count
				count++
			}
		}

		newType := t.TypeOf(attrs.handle(name))
		newType.Qualifier.Location = ir.UintPtr(location)
		replacements[name] = t.AddSymbol(gen.Next(), newName, newType)
		renamed[newName] = name
	}

	if err := t.ReplaceUses(replacements, sites); err != nil {
		return nil, err
	}
	return renamed, nil
}
