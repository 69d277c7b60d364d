package ir

// Visitor holds the callbacks a traversal invokes. Nil callbacks are skipped.
// The hooks cover what rewriting passes inspect: symbol occurrences, with
// their ancestor path available, and unary operations, with control over
// descending into the operand.
type Visitor struct {
	// Symbol is called once for every symbol occurrence.
	Symbol func(w *Walk, h NodeHandle, sym Symbol) error

	// Unary is called for every unary operation before its operand.
	// Returning descend false skips the operand subtree.
	Unary func(w *Walk, h NodeHandle, u Unary) (descend bool, err error)
}

// Walk is the state of one traversal: the tree being walked and the ancestor
// path of the node currently visited.
type Walk struct {
	tree *Tree
	path []NodeHandle
}

// Walk visits the tree in depth-first pre-order, children of an aggregate in
// sequence order and a binary's left child before its right. Child slots are
// re-read between steps, so in-place replacements made by a callback are
// picked up by the rest of the traversal. The first callback error aborts the
// walk.
func (t *Tree) Walk(v Visitor) error {
	w := &Walk{tree: t, path: make([]NodeHandle, 0, 16)}
	return w.visit(t.Root(), v)
}

func (w *Walk) visit(h NodeHandle, v Visitor) error {
	k := w.tree.Kind(h)
	if k == nil {
		return NewErrorAt(ErrInvalidHandle, h, "released node reached during traversal")
	}
	switch n := k.(type) {
	case Symbol:
		if v.Symbol != nil {
			return v.Symbol(w, h, n)
		}
	case Constant:
	case Unary:
		if v.Unary != nil {
			descend, err := v.Unary(w, h, n)
			if err != nil {
				return err
			}
			if !descend {
				return nil
			}
		}
		w.path = append(w.path, h)
		// Re-read the operand slot: the callback may have replaced it.
		err := w.visit(w.tree.Kind(h).(Unary).Operand, v)
		w.path = w.path[:len(w.path)-1]
		return err
	case Binary:
		w.path = append(w.path, h)
		if err := w.visit(n.Left, v); err != nil {
			w.path = w.path[:len(w.path)-1]
			return err
		}
		err := w.visit(w.tree.Kind(h).(Binary).Right, v)
		w.path = w.path[:len(w.path)-1]
		return err
	case Aggregate:
		w.path = append(w.path, h)
		for i := 0; ; i++ {
			a := w.tree.Kind(h).(Aggregate)
			if i >= len(a.Children) {
				break
			}
			if err := w.visit(a.Children[i], v); err != nil {
				w.path = w.path[:len(w.path)-1]
				return err
			}
		}
		w.path = w.path[:len(w.path)-1]
	}
	return nil
}

// Tree returns the tree being traversed.
func (w *Walk) Tree() *Tree { return w.tree }

// Path returns the ancestor handles of the current node, root first. The
// slice is reused between callbacks; callers keeping it must copy.
func (w *Walk) Path() []NodeHandle { return w.path }

// Depth returns the number of ancestors of the current node.
func (w *Walk) Depth() int { return len(w.path) }

// Parent returns the immediate parent of the current node, or InvalidHandle
// at the root.
func (w *Walk) Parent() NodeHandle {
	if len(w.path) == 0 {
		return InvalidHandle
	}
	return w.path[len(w.path)-1]
}

// Grandparent returns the parent of the parent, or InvalidHandle if the
// current node is within two levels of the root.
func (w *Walk) Grandparent() NodeHandle {
	if len(w.path) < 2 {
		return InvalidHandle
	}
	return w.path[len(w.path)-2]
}

// InLinkerObjects reports whether the current node sits inside the
// linker-objects section, that is, whether the ancestor directly below the
// root is the linker-objects aggregate.
func (w *Walk) InLinkerObjects() bool {
	if len(w.path) < 2 {
		return false
	}
	a, ok := w.tree.Kind(w.path[1]).(Aggregate)
	return ok && a.Op == OpLinkerObjects
}
