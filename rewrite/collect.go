// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package rewrite

import "github.com/gogpu/shade/ir"

// symbolSet records symbols by name in order of first discovery. Passes use
// it to cache the linker-objects occurrence of each symbol they rewrite, so
// synthesized members and bindings come out in a deterministic order.
type symbolSet struct {
	names  []string
	byName map[string]ir.NodeHandle
}

func newSymbolSet() *symbolSet {
	return &symbolSet{byName: make(map[string]ir.NodeHandle)}
}

// add records h under name. The first occurrence wins.
func (s *symbolSet) add(name string, h ir.NodeHandle) {
	if _, ok := s.byName[name]; ok {
		return
	}
	s.byName[name] = h
	s.names = append(s.names, name)
}

func (s *symbolSet) has(name string) bool {
	_, ok := s.byName[name]
	return ok
}

func (s *symbolSet) handle(name string) ir.NodeHandle {
	return s.byName[name]
}

func (s *symbolSet) len() int { return len(s.names) }
