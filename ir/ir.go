package ir

// NodeHandle identifies a node within a Tree's arena. Handles are stable
// across replacements: overwriting a child slot changes which handle a parent
// references, never what an existing handle points at.
type NodeHandle uint32

// InvalidHandle is the zero NodeHandle. Valid handles start at 1 so that the
// zero value of a slot or field is never a live node.
const InvalidHandle NodeHandle = 0

// Stage identifies a pipeline stage within a Program.
type Stage uint8

const (
	// StageVertex is the vertex shader stage.
	StageVertex Stage = iota
	// StageFragment is the fragment shader stage.
	StageFragment

	stageCount
)

// String returns the lowercase stage name.
func (s Stage) String() string {
	switch s {
	case StageVertex:
		return "vertex"
	case StageFragment:
		return "fragment"
	default:
		return "unknown"
	}
}

// Program holds the per-stage trees of one linked shader program. A stage
// without a tree is simply absent; passes skip it.
type Program struct {
	trees [stageCount]*Tree
}

// NewProgram returns an empty Program with no stage trees.
func NewProgram() *Program {
	return &Program{}
}

// Tree returns the tree for stage, or nil if the stage is absent.
func (p *Program) Tree(stage Stage) *Tree {
	if stage >= stageCount {
		return nil
	}
	return p.trees[stage]
}

// SetTree installs the tree for stage, replacing any previous one.
func (p *Program) SetTree(stage Stage, t *Tree) {
	if stage >= stageCount {
		return
	}
	p.trees[stage] = t
}

// Stages returns the stages that have trees, in pipeline order.
func (p *Program) Stages() []Stage {
	var stages []Stage
	for s := Stage(0); s < stageCount; s++ {
		if p.trees[s] != nil {
			stages = append(stages, s)
		}
	}
	return stages
}

// IDGenerator issues unique symbol IDs. A single generator is shared by all
// stages of a program so that synthesized symbols never collide with existing
// ones.
type IDGenerator struct {
	next uint64
}

// NewIDGenerator returns a generator whose first issued ID is start.
// Callers seed it past the highest ID already present in the program.
func NewIDGenerator(start uint64) *IDGenerator {
	return &IDGenerator{next: start}
}

// Next returns a fresh unique ID.
func (g *IDGenerator) Next() uint64 {
	id := g.next
	g.next++
	return id
}
