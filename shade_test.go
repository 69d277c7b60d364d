package shade

import (
	"testing"

	"github.com/gogpu/shade/ir"
	"github.com/gogpu/shade/rewrite"
)

func uniform(shape ir.Type) ir.Type {
	shape.Qualifier.Storage = ir.StorageUniform
	return shape
}

func varying(shape ir.Type, storage ir.StorageClass) ir.Type {
	shape.Qualifier.Storage = storage
	return shape
}

func combinedSampler2D() ir.Type {
	return uniform(ir.Type{
		Basic:   ir.BasicSampler,
		Sampler: ir.SamplerInfo{Dim: ir.Dim2D, Combined: true, Sampled: ir.BasicFloat},
	})
}

// buildTestProgram assembles a two-stage program the way a glslang-style
// front end would link it.
//
// Vertex stage:
//
//	uniform mat4 world; uniform float scale;
//	in vec3 position; in vec2 uv;
//	out vec4 outPos; out vec2 vUV;
//	outPos = world * (position * scale); vUV = uv;
//
// Fragment stage:
//
//	uniform vec4 tint; uniform sampler2D diffuse;
//	in vec2 vUV; out vec4 fragColor;
//	fragColor = texture(diffuse, vUV) * tint + dFdy(vUV).xyxy-ish use
func buildTestProgram(t *testing.T) *ir.Program {
	t.Helper()

	vt := ir.NewTree()
	{
		worldType := uniform(ir.MatType(4, 4))
		scaleType := uniform(ir.FloatType())
		posType := varying(ir.VecType(3), ir.StorageVaryingIn)
		uvType := varying(ir.VecType(2), ir.StorageVaryingIn)
		outPosType := varying(ir.VecType(4), ir.StorageVaryingOut)
		vUVType := varying(ir.VecType(2), ir.StorageVaryingOut)

		scaled := vt.AddBinary(ir.OpMultiply,
			vt.AddSymbol(3, "position", posType),
			vt.AddSymbol(2, "scale", scaleType),
			ir.VecType(3))
		transformed := vt.AddBinary(ir.OpMultiply,
			vt.AddSymbol(1, "world", worldType),
			scaled,
			ir.VecType(4))
		assignPos := vt.AddBinary(ir.OpAssign,
			vt.AddSymbol(5, "outPos", outPosType), transformed, ir.VecType(4))
		assignUV := vt.AddBinary(ir.OpAssign,
			vt.AddSymbol(6, "vUV", vUVType),
			vt.AddSymbol(4, "uv", uvType),
			ir.VecType(2))
		body := vt.AddAggregate(ir.OpSequence, ir.Type{}, assignPos, assignUV)

		linker := vt.AddAggregate(ir.OpLinkerObjects, ir.Type{},
			vt.AddSymbol(1, "world", worldType),
			vt.AddSymbol(2, "scale", scaleType),
			vt.AddSymbol(3, "position", posType),
			vt.AddSymbol(4, "uv", uvType),
			vt.AddSymbol(5, "outPos", outPosType),
			vt.AddSymbol(6, "vUV", vUVType))

		if err := vt.AppendChild(vt.Root(), body); err != nil {
			t.Fatalf("AppendChild failed: %v", err)
		}
		if err := vt.AppendChild(vt.Root(), linker); err != nil {
			t.Fatalf("AppendChild failed: %v", err)
		}
	}

	ft := ir.NewTree()
	{
		tintType := uniform(ir.VecType(4))
		diffuseType := combinedSampler2D()
		vUVType := varying(ir.VecType(2), ir.StorageVaryingIn)
		fragType := varying(ir.VecType(4), ir.StorageVaryingOut)

		sample := ft.AddAggregate(ir.OpTexture, ir.VecType(4),
			ft.AddSymbol(11, "diffuse", diffuseType),
			ft.AddSymbol(12, "vUV", vUVType))
		tinted := ft.AddBinary(ir.OpMultiply, sample,
			ft.AddSymbol(10, "tint", tintType), ir.VecType(4))
		assign := ft.AddBinary(ir.OpAssign,
			ft.AddSymbol(13, "fragColor", fragType), tinted, ir.VecType(4))
		deriv := ft.AddUnary(ir.OpDPdy,
			ft.AddSymbol(12, "vUV", vUVType), ir.VecType(2))
		body := ft.AddAggregate(ir.OpSequence, ir.Type{}, assign, deriv)

		linker := ft.AddAggregate(ir.OpLinkerObjects, ir.Type{},
			ft.AddSymbol(10, "tint", tintType),
			ft.AddSymbol(11, "diffuse", diffuseType),
			ft.AddSymbol(12, "vUV", vUVType),
			ft.AddSymbol(13, "fragColor", fragType))

		if err := ft.AppendChild(ft.Root(), body); err != nil {
			t.Fatalf("AppendChild failed: %v", err)
		}
		if err := ft.AppendChild(ft.Root(), linker); err != nil {
			t.Fatalf("AppendChild failed: %v", err)
		}
	}

	prog := ir.NewProgram()
	prog.SetTree(ir.StageVertex, vt)
	prog.SetTree(ir.StageFragment, ft)
	return prog
}

func stageLinkerNames(t *testing.T, tree *ir.Tree) []string {
	t.Helper()
	linker, err := tree.LinkerObjects()
	if err != nil {
		t.Fatalf("LinkerObjects failed: %v", err)
	}
	var names []string
	for _, c := range tree.Kind(linker).(ir.Aggregate).Children {
		sym, ok := tree.Kind(c).(ir.Symbol)
		if !ok {
			t.Fatalf("linker entry is not a symbol: %T", tree.Kind(c))
		}
		names = append(names, sym.Name)
	}
	return names
}

func TestRewrite_MetalPipeline(t *testing.T) {
	prog := buildTestProgram(t)

	result, err := Rewrite(prog, ir.NewIDGenerator(1000), PlatformOptions(PlatformMetal))
	if err != nil {
		t.Fatalf("Rewrite failed: %v", err)
	}

	// Uniforms packed per stage: each linker section starts with the
	// synthetic struct, with samplers left loose.
	vNames := stageLinkerNames(t, prog.Tree(ir.StageVertex))
	wantV := []string{"anon@0", "a_position", "a_normal", "outPos", "vUV"}
	if len(vNames) != len(wantV) {
		t.Fatalf("Expected vertex linker %v, got %v", wantV, vNames)
	}
	for i, name := range wantV {
		if vNames[i] != name {
			t.Errorf("Expected vertex linker entry %d to be %q, got %q", i, name, vNames[i])
		}
	}
	fNames := stageLinkerNames(t, prog.Tree(ir.StageFragment))
	wantF := []string{"anon@0", "diffuseTexture", "diffuse", "vUV", "fragColor"}
	if len(fNames) != len(wantF) {
		t.Fatalf("Expected fragment linker %v, got %v", wantF, fNames)
	}
	for i, name := range wantF {
		if fNames[i] != name {
			t.Errorf("Expected fragment linker entry %d to be %q, got %q", i, name, fNames[i])
		}
	}

	// Packed attribute binding ignores names: discovery order maps to
	// locations 0 and 1.
	want := map[string]string{"a_position": "position", "a_normal": "uv"}
	if len(result.AttributeNames) != len(want) {
		t.Fatalf("Expected remap %v, got %v", want, result.AttributeNames)
	}
	for assigned, original := range want {
		if result.AttributeNames[assigned] != original {
			t.Errorf("Expected %q -> %q, got %q", assigned, original, result.AttributeNames[assigned])
		}
	}

	// The rewritten trees still satisfy the linker invariant.
	errs, err := Validate(prog)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if len(errs) != 0 {
		t.Errorf("Expected the rewritten program to validate, got %v", errs)
	}
}

func TestRewrite_MetalPipelineStructure(t *testing.T) {
	prog := buildTestProgram(t)
	if _, err := Rewrite(prog, ir.NewIDGenerator(1000), PlatformOptions(PlatformMetal)); err != nil {
		t.Fatalf("Rewrite failed: %v", err)
	}

	vt := prog.Tree(ir.StageVertex)
	vLinker, _ := vt.LinkerObjects()
	structType := vt.TypeOf(vt.Kind(vLinker).(ir.Aggregate).Children[0])
	if structType.Struct == nil {
		t.Fatalf("Expected a struct entry, got %s", structType)
	}
	fieldNames := make([]string, 0, len(structType.Struct.Fields))
	for _, f := range structType.Struct.Fields {
		fieldNames = append(fieldNames, f.Name)
	}
	if len(fieldNames) != 2 || fieldNames[0] != "world" || fieldNames[1] != "scale" {
		t.Errorf("Expected fields [world scale], got %v", fieldNames)
	}

	// The fragment stage's Y derivative gained exactly one negation.
	ft := prog.Tree(ir.StageFragment)
	negations := 0
	derivNegated := false
	err := ft.Walk(ir.Visitor{
		Unary: func(w *ir.Walk, h ir.NodeHandle, u ir.Unary) (bool, error) {
			switch {
			case u.Op == ir.OpNegative:
				negations++
			case u.Op.IsYDerivative():
				inner, ok := ft.Kind(u.Operand).(ir.Unary)
				derivNegated = ok && inner.Op == ir.OpNegative
			}
			return true, nil
		},
	})
	if err != nil {
		t.Fatalf("Walk failed: %v", err)
	}
	if negations != 1 || !derivNegated {
		t.Errorf("Expected exactly one negation under the derivative, got %d (negated=%t)", negations, derivNegated)
	}
}

func TestRewrite_OpenGLPipeline(t *testing.T) {
	prog := buildTestProgram(t)

	result, err := Rewrite(prog, ir.NewIDGenerator(1000), PlatformOptions(PlatformOpenGL))
	if err != nil {
		t.Fatalf("Rewrite failed: %v", err)
	}

	// No packing: the scale uniform stays loose, promoted to vec4.
	vt := prog.Tree(ir.StageVertex)
	vLinker, _ := vt.LinkerObjects()
	var scaleType ir.Type
	found := false
	for _, c := range vt.Kind(vLinker).(ir.Aggregate).Children {
		if sym, ok := vt.Kind(c).(ir.Symbol); ok && sym.Name == "scale" {
			scaleType = vt.TypeOf(c)
			found = true
		}
	}
	if !found {
		t.Fatal("Expected the scale uniform to keep its linker entry")
	}
	if !scaleType.Equal(ir.VecType(4)) {
		t.Errorf("Expected scale promoted to vec4, got %s", scaleType)
	}

	// Combined samplers survive: GLSL consumes them directly.
	fNames := stageLinkerNames(t, prog.Tree(ir.StageFragment))
	for _, name := range fNames {
		if name == "diffuseTexture" {
			t.Error("Expected no sampler splitting for OpenGL")
		}
	}

	if result.AttributeNames["a_position"] != "position" {
		t.Errorf("Expected packed attribute remap, got %v", result.AttributeNames)
	}

	errs, err := Validate(prog)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if len(errs) != 0 {
		t.Errorf("Expected the rewritten program to validate, got %v", errs)
	}
}

func TestRewrite_NilProgram(t *testing.T) {
	if _, err := Rewrite(nil, ir.NewIDGenerator(1), DefaultOptions()); err == nil {
		t.Error("Expected an error for a nil program")
	}
}

func TestRewrite_ValidationRejectsMalformedTree(t *testing.T) {
	prog := ir.NewProgram()
	prog.SetTree(ir.StageVertex, ir.NewTree()) // no linker section

	opts := DefaultOptions()
	if _, err := Rewrite(prog, ir.NewIDGenerator(1), opts); err == nil {
		t.Error("Expected validation to reject a tree without a linker section")
	}
}

func TestPlatformOptions(t *testing.T) {
	d3d := PlatformOptions(PlatformD3D)
	if !d3d.PackUniforms || !d3d.SplitSamplers || !d3d.InvertYDerivatives || !d3d.BindAttributes {
		t.Error("Expected D3D to pack, bind, split and invert")
	}
	if d3d.PromoteUniformVectors {
		t.Error("Expected D3D not to promote uniform vectors")
	}
	if d3d.Attributes.Policy != rewrite.PolicyFixedTable {
		t.Error("Expected D3D to use the fixed attribute table")
	}

	metal := PlatformOptions(PlatformMetal)
	if metal.Attributes.Policy != rewrite.PolicyPacked {
		t.Error("Expected Metal to pack attributes")
	}

	gl := PlatformOptions(PlatformOpenGL)
	if gl.PackUniforms || gl.SplitSamplers || gl.InvertYDerivatives {
		t.Error("Expected OpenGL to keep loose uniforms and combined samplers")
	}
	if !gl.PromoteUniformVectors {
		t.Error("Expected OpenGL to promote uniform vectors")
	}
}

func TestValidate_ReportsPerStageDefects(t *testing.T) {
	prog := ir.NewProgram()
	prog.SetTree(ir.StageVertex, ir.NewTree())
	prog.SetTree(ir.StageFragment, ir.NewTree())

	errs, err := Validate(prog)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if len(errs) < 2 {
		t.Errorf("Expected defects from both stages, got %v", errs)
	}
}
