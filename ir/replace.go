package ir

// UseSite records one occurrence of a symbol outside the linker-objects
// section: the occurrence itself and the node holding it.
type UseSite struct {
	Symbol NodeHandle
	Parent NodeHandle
}

// ReplaceChild overwrites every slot of parent that references old with repl,
// then releases old. repl must not be a descendant of old; use RedirectChild
// when wrapping a node in place.
func (t *Tree) ReplaceChild(parent, old, repl NodeHandle) error {
	if err := t.overwriteChild(parent, old, repl); err != nil {
		return err
	}
	t.Release(old)
	return nil
}

// RedirectChild overwrites every slot of parent that references old with
// repl, keeping old alive. Used when repl contains old, as when wrapping an
// operand in a conversion.
func (t *Tree) RedirectChild(parent, old, repl NodeHandle) error {
	return t.overwriteChild(parent, old, repl)
}

func (t *Tree) overwriteChild(parent, old, repl NodeHandle) error {
	switch k := t.Kind(parent).(type) {
	case Aggregate:
		found := false
		for i, c := range k.Children {
			if c == old {
				k.Children[i] = repl
				found = true
			}
		}
		if !found {
			return NewErrorAt(ErrUnsupportedReplacementTarget, parent,
				"aggregate does not reference the node being replaced")
		}
		t.nodes[parent].Kind = k
		return nil
	case Binary:
		switch old {
		case k.Left:
			k.Left = repl
		case k.Right:
			k.Right = repl
		default:
			return NewErrorAt(ErrUnsupportedReplacementTarget, parent,
				"binary does not reference the node being replaced")
		}
		t.nodes[parent].Kind = k
		return nil
	case Unary:
		if k.Operand != old {
			return NewErrorAt(ErrUnsupportedReplacementTarget, parent,
				"unary does not reference the node being replaced")
		}
		k.Operand = repl
		t.nodes[parent].Kind = k
		return nil
	default:
		return NewErrorAt(ErrUnsupportedReplacementTarget, parent,
			"node kind cannot host a replacement")
	}
}

// ReplaceUses replaces every recorded symbol occurrence with the replacement
// registered under its name. All sites of one name share a single replacement
// node. A site whose symbol has no registered replacement is an error.
//
// A node aliased into several slots of one parent yields one record per slot,
// but the first record's replacement overwrites every matching slot and
// releases the node; the remaining records find it released and are skipped
// as already resolved.
func (t *Tree) ReplaceUses(replacements map[string]NodeHandle, sites []UseSite) error {
	for _, site := range sites {
		if !t.Valid(site.Symbol) {
			continue
		}
		sym, ok := t.Kind(site.Symbol).(Symbol)
		if !ok {
			return NewErrorAt(ErrInvalidHandle, site.Symbol, "use site does not hold a symbol")
		}
		repl, ok := replacements[sym.Name]
		if !ok {
			return NewErrorAt(ErrUnknownSymbol, site.Symbol,
				"no replacement registered for "+sym.Name)
		}
		if err := t.ReplaceChild(site.Parent, site.Symbol, repl); err != nil {
			return err
		}
	}
	return nil
}
