package ir

import "fmt"

// Tree is one shader stage's intermediate tree. Nodes live in a flat arena
// and reference each other through NodeHandle indices; the root is a sequence
// aggregate whose last child is the linker-objects section.
type Tree struct {
	// nodes[0] is a sentinel so that InvalidHandle never refers to a node.
	nodes []Node
	live  int
}

// NewTree creates a tree containing only an empty root sequence.
func NewTree() *Tree {
	t := &Tree{
		nodes: make([]Node, 1, 64),
	}
	t.add(Node{Kind: Aggregate{Op: OpSequence}})
	return t
}

// Root returns the handle of the root sequence aggregate.
func (t *Tree) Root() NodeHandle { return 1 }

func (t *Tree) add(n Node) NodeHandle {
	h := NodeHandle(len(t.nodes))
	t.nodes = append(t.nodes, n)
	t.live++
	return h
}

// AddSymbol allocates a symbol occurrence node.
func (t *Tree) AddSymbol(id uint64, name string, typ Type) NodeHandle {
	return t.add(Node{Kind: Symbol{ID: id, Name: name}, Type: typ})
}

// AddConstant allocates a literal node.
func (t *Tree) AddConstant(v ConstantValue, typ Type) NodeHandle {
	return t.add(Node{Kind: Constant{Value: v}, Type: typ})
}

// AddUnary allocates a one-operand operation node.
func (t *Tree) AddUnary(op Operator, operand NodeHandle, typ Type) NodeHandle {
	return t.add(Node{Kind: Unary{Op: op, Operand: operand}, Type: typ})
}

// AddBinary allocates a two-operand operation node.
func (t *Tree) AddBinary(op Operator, left, right NodeHandle, typ Type) NodeHandle {
	return t.add(Node{Kind: Binary{Op: op, Left: left, Right: right}, Type: typ})
}

// AddAggregate allocates a sequence node with the given children.
func (t *Tree) AddAggregate(op Operator, typ Type, children ...NodeHandle) NodeHandle {
	return t.add(Node{Kind: Aggregate{Op: op, Children: children}, Type: typ})
}

// Valid reports whether h refers to a live node.
func (t *Tree) Valid(h NodeHandle) bool {
	return h != InvalidHandle && int(h) < len(t.nodes) && t.nodes[h].Kind != nil
}

// Lookup finds a node by its handle.
func (t *Tree) Lookup(h NodeHandle) (Node, bool) {
	if !t.Valid(h) {
		return Node{}, false
	}
	return t.nodes[h], true
}

// Kind returns the payload of h, or nil if h is invalid or released.
func (t *Tree) Kind(h NodeHandle) NodeKind {
	if !t.Valid(h) {
		return nil
	}
	return t.nodes[h].Kind
}

// TypeOf returns the resolved type of h. Invalid handles yield the void type.
func (t *Tree) TypeOf(h NodeHandle) Type {
	if !t.Valid(h) {
		return Type{}
	}
	return t.nodes[h].Type
}

// SetKind overwrites the payload of h. Invalid handles are ignored.
func (t *Tree) SetKind(h NodeHandle, k NodeKind) {
	if t.Valid(h) {
		t.nodes[h].Kind = k
	}
}

// SetType overwrites the resolved type of h. Invalid handles are ignored.
func (t *Tree) SetType(h NodeHandle, typ Type) {
	if t.Valid(h) {
		t.nodes[h].Type = typ
	}
}

// Count returns the number of live nodes, the root included.
func (t *Tree) Count() int { return t.live }

// AppendChild adds child at the end of an aggregate's child list.
func (t *Tree) AppendChild(agg, child NodeHandle) error {
	a, ok := t.Kind(agg).(Aggregate)
	if !ok {
		return NewErrorAt(ErrUnsupportedReplacementTarget, agg, "append target is not an aggregate")
	}
	a.Children = append(a.Children, child)
	t.nodes[agg].Kind = a
	return nil
}

// InsertChild adds child at position index of an aggregate's child list,
// shifting later children right. index may equal the current child count.
func (t *Tree) InsertChild(agg NodeHandle, index int, child NodeHandle) error {
	a, ok := t.Kind(agg).(Aggregate)
	if !ok {
		return NewErrorAt(ErrUnsupportedReplacementTarget, agg, "insert target is not an aggregate")
	}
	if index < 0 || index > len(a.Children) {
		return NewErrorAt(ErrUnsupportedReplacementTarget, agg,
			fmt.Sprintf("child index %d out of range 0..%d", index, len(a.Children)))
	}
	a.Children = append(a.Children, InvalidHandle)
	copy(a.Children[index+1:], a.Children[index:])
	a.Children[index] = child
	t.nodes[agg].Kind = a
	return nil
}

// RemoveChild deletes the child at position index of an aggregate's child
// list without releasing it.
func (t *Tree) RemoveChild(agg NodeHandle, index int) error {
	a, ok := t.Kind(agg).(Aggregate)
	if !ok {
		return NewErrorAt(ErrUnsupportedReplacementTarget, agg, "remove target is not an aggregate")
	}
	if index < 0 || index >= len(a.Children) {
		return NewErrorAt(ErrUnsupportedReplacementTarget, agg,
			fmt.Sprintf("child index %d out of range 0..%d", index, len(a.Children)-1))
	}
	a.Children = append(a.Children[:index], a.Children[index+1:]...)
	t.nodes[agg].Kind = a
	return nil
}

// Release returns h and every node reachable from it to the arena. Releasing
// an invalid or already released handle is a no-op, so shared subtrees are
// safe to release from each referencing parent.
func (t *Tree) Release(h NodeHandle) {
	if !t.Valid(h) {
		return
	}
	switch k := t.nodes[h].Kind.(type) {
	case Aggregate:
		// Tombstone before recursing so a cycle cannot loop.
		t.nodes[h] = Node{}
		t.live--
		for _, c := range k.Children {
			t.Release(c)
		}
		return
	case Binary:
		t.nodes[h] = Node{}
		t.live--
		t.Release(k.Left)
		t.Release(k.Right)
		return
	case Unary:
		t.nodes[h] = Node{}
		t.live--
		t.Release(k.Operand)
		return
	default:
		t.nodes[h] = Node{}
		t.live--
	}
}

// LinkerObjects returns the linker-objects aggregate: the last child of the
// root, enumerating every externally visible symbol exactly once.
func (t *Tree) LinkerObjects() (NodeHandle, error) {
	root, ok := t.Kind(t.Root()).(Aggregate)
	if !ok {
		return InvalidHandle, NewError(ErrMalformedLinkerSection, "tree has no root aggregate")
	}
	if len(root.Children) == 0 {
		return InvalidHandle, NewError(ErrMalformedLinkerSection, "root aggregate is empty")
	}
	last := root.Children[len(root.Children)-1]
	lk, ok := t.Kind(last).(Aggregate)
	if !ok || lk.Op != OpLinkerObjects {
		return InvalidHandle, NewErrorAt(ErrMalformedLinkerSection, last,
			"last child of root is not a linker-objects aggregate")
	}
	return last, nil
}

// AddShapeConversion wraps operand in a constructor that converts its value
// to the shape of target. If the shapes already match, operand is returned
// unchanged. Only scalar and vector targets can be constructed.
func (t *Tree) AddShapeConversion(target Type, operand NodeHandle) (NodeHandle, error) {
	if target.Equal(t.TypeOf(operand)) {
		return operand, nil
	}
	op, ok := conversionOp(target)
	if !ok {
		return InvalidHandle, NewErrorAt(ErrInvalidConversion, operand,
			fmt.Sprintf("no constructor for shape %s", target))
	}
	typ := target
	typ.Qualifier = Qualifier{}
	return t.AddAggregate(op, typ, operand), nil
}

func conversionOp(target Type) (Operator, bool) {
	if target.IsArray() || target.IsMatrix() {
		return OpNone, false
	}
	switch target.Basic {
	case BasicFloat:
		switch target.Vector {
		case 0, 1:
			return OpConstructFloat, true
		case 2:
			return OpConstructVec2, true
		case 3:
			return OpConstructVec3, true
		case 4:
			return OpConstructVec4, true
		}
	case BasicInt:
		switch target.Vector {
		case 0, 1:
			return OpConstructInt, true
		case 2:
			return OpConstructIVec2, true
		case 3:
			return OpConstructIVec3, true
		case 4:
			return OpConstructIVec4, true
		}
	case BasicUInt:
		switch target.Vector {
		case 0, 1:
			return OpConstructUInt, true
		case 2:
			return OpConstructUVec2, true
		case 3:
			return OpConstructUVec3, true
		case 4:
			return OpConstructUVec4, true
		}
	case BasicBool:
		switch target.Vector {
		case 0, 1:
			return OpConstructBool, true
		case 2:
			return OpConstructBVec2, true
		case 3:
			return OpConstructBVec3, true
		case 4:
			return OpConstructBVec4, true
		}
	}
	return OpNone, false
}
