package ir

import (
	"fmt"
)

// ValidationError represents a structural defect found in a tree.
type ValidationError struct {
	Message string
	// Handle optionally identifies the node involved.
	Handle NodeHandle
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	if e.Handle != InvalidHandle {
		return fmt.Sprintf("node %d: %s", e.Handle, e.Message)
	}
	return e.Message
}

// validator accumulates defects while walking a tree.
type validator struct {
	tree   *Tree
	errors []ValidationError
	seen   map[NodeHandle]bool
}

// Validate checks a tree for structural correctness: a well-formed root and
// linker-objects section, no released or out-of-range handles reachable from
// the root, linker entries that are uniquely named symbols, and externally
// stored symbols in the body that are enumerated in the linker section.
// Returns the defects found, or nil if the tree is valid.
func Validate(t *Tree) ([]ValidationError, error) {
	if t == nil {
		return nil, fmt.Errorf("tree is nil")
	}

	v := &validator{
		tree: t,
		seen: make(map[NodeHandle]bool),
	}

	v.validateRoot()
	v.validateReachable(t.Root())
	v.validateLinkerSection()

	if len(v.errors) > 0 {
		return v.errors, nil
	}
	return nil, nil
}

func (v *validator) addError(h NodeHandle, message string) {
	v.errors = append(v.errors, ValidationError{Message: message, Handle: h})
}

func (v *validator) validateRoot() {
	root, ok := v.tree.Kind(v.tree.Root()).(Aggregate)
	if !ok {
		v.addError(v.tree.Root(), "root is not an aggregate")
		return
	}
	if root.Op != OpSequence {
		v.addError(v.tree.Root(), fmt.Sprintf("root operator is %s, want %s", root.Op, OpSequence))
	}
}

// validateReachable checks every handle reachable from h. Shared nodes are
// checked once.
func (v *validator) validateReachable(h NodeHandle) {
	if v.seen[h] {
		return
	}
	v.seen[h] = true

	if h == InvalidHandle || int(h) >= len(v.tree.nodes) {
		v.addError(h, "handle outside the arena")
		return
	}
	k := v.tree.nodes[h].Kind
	if k == nil {
		v.addError(h, "released node is reachable")
		return
	}
	switch n := k.(type) {
	case Aggregate:
		for _, c := range n.Children {
			v.validateReachable(c)
		}
	case Binary:
		v.validateReachable(n.Left)
		v.validateReachable(n.Right)
	case Unary:
		v.validateReachable(n.Operand)
	}
}

func (v *validator) validateLinkerSection() {
	linker, err := v.tree.LinkerObjects()
	if err != nil {
		v.addError(InvalidHandle, err.Error())
		return
	}

	names := make(map[string]bool)
	lk := v.tree.Kind(linker).(Aggregate)
	for _, c := range lk.Children {
		sym, ok := v.tree.Kind(c).(Symbol)
		if !ok {
			v.addError(c, "linker-objects child is not a symbol")
			continue
		}
		if names[sym.Name] {
			v.addError(c, fmt.Sprintf("symbol %q enumerated twice in linker objects", sym.Name))
		}
		names[sym.Name] = true
	}

	v.validateExternals(linker, names)
}

// validateExternals checks that every externally stored symbol used in the
// body appears in the linker-objects section.
func (v *validator) validateExternals(linker NodeHandle, linkerNames map[string]bool) {
	_ = v.tree.Walk(Visitor{
		Symbol: func(w *Walk, h NodeHandle, sym Symbol) error {
			if w.InLinkerObjects() {
				return nil
			}
			switch w.Tree().TypeOf(h).Qualifier.Storage {
			case StorageUniform, StorageBuffer, StorageVaryingIn, StorageVaryingOut:
				if !linkerNames[sym.Name] {
					v.addError(h, fmt.Sprintf("external symbol %q missing from linker objects", sym.Name))
				}
			}
			return nil
		},
	})
}
