package ir

import (
	"fmt"
	"io"
	"strings"
)

// Dump writes an indented rendering of the tree to w, one node per line in
// traversal order. Each line carries the node's handle, payload and type, so
// arena surgery can be inspected after a rewriting pass.
func Dump(w io.Writer, t *Tree) error {
	return dumpNode(w, t, t.Root(), 0)
}

// DumpString returns Dump's output as a string.
func DumpString(t *Tree) string {
	var sb strings.Builder
	_ = Dump(&sb, t)
	return sb.String()
}

func dumpNode(w io.Writer, t *Tree, h NodeHandle, depth int) error {
	indent := strings.Repeat("  ", depth)
	n, ok := t.Lookup(h)
	if !ok {
		_, err := fmt.Fprintf(w, "%s%d: <released>\n", indent, h)
		return err
	}
	suffix := fmt.Sprintf("(%s %s)", n.Type.Qualifier.Storage, n.Type)

	switch k := n.Kind.(type) {
	case Symbol:
		_, err := fmt.Fprintf(w, "%s%d: '%s' id=%d %s\n", indent, h, k.Name, k.ID, suffix)
		return err
	case Constant:
		_, err := fmt.Fprintf(w, "%s%d: const %s %s\n", indent, h, constString(k.Value), suffix)
		return err
	case Unary:
		if _, err := fmt.Fprintf(w, "%s%d: %s %s\n", indent, h, k.Op, suffix); err != nil {
			return err
		}
		return dumpNode(w, t, k.Operand, depth+1)
	case Binary:
		if _, err := fmt.Fprintf(w, "%s%d: %s %s\n", indent, h, k.Op, suffix); err != nil {
			return err
		}
		if err := dumpNode(w, t, k.Left, depth+1); err != nil {
			return err
		}
		return dumpNode(w, t, k.Right, depth+1)
	case Aggregate:
		if _, err := fmt.Fprintf(w, "%s%d: %s %s\n", indent, h, k.Op, suffix); err != nil {
			return err
		}
		for _, c := range k.Children {
			if err := dumpNode(w, t, c, depth+1); err != nil {
				return err
			}
		}
		return nil
	default:
		_, err := fmt.Fprintf(w, "%s%d: <unknown>\n", indent, h)
		return err
	}
}

func constString(v ConstantValue) string {
	switch c := v.(type) {
	case ConstF32:
		return fmt.Sprintf("%g", float32(c))
	case ConstI32:
		return fmt.Sprintf("%d", int32(c))
	case ConstU32:
		return fmt.Sprintf("%du", uint32(c))
	case ConstBool:
		return fmt.Sprintf("%t", bool(c))
	default:
		return "<unknown>"
	}
}
