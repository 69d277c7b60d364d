// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package rewrite

import (
	"fmt"
	"testing"

	"github.com/gogpu/shade/ir"
)

// buildBenchProgram synthesizes a vertex stage with the given number of loose
// uniforms, one use each, plus two attributes and a combined sampler.
func buildBenchProgram(uniforms int) *ir.Program {
	tree := ir.NewTree()

	var bodyChildren, linkerChildren []ir.NodeHandle
	id := uint64(1)
	addSym := func(name string, typ ir.Type) (use, decl ir.NodeHandle) {
		use = tree.AddSymbol(id, name, typ)
		decl = tree.AddSymbol(id, name, typ)
		id++
		return use, decl
	}

	outType := ir.Type{Basic: ir.BasicFloat, Vector: 4, Qualifier: ir.Qualifier{Storage: ir.StorageVaryingOut}}
	outUse, outDecl := addSym("v_color", outType)
	linkerChildren = append(linkerChildren, outDecl)

	acc := tree.AddConstant(ir.ConstF32(0), ir.FloatType())
	sum := acc
	for i := 0; i < uniforms; i++ {
		width := uint8(i%4) + 1
		typ := ir.Type{Basic: ir.BasicFloat, Vector: width, Qualifier: ir.Qualifier{Storage: ir.StorageUniform}}
		if width == 1 {
			typ.Vector = 0
		}
		use, decl := addSym(fmt.Sprintf("u%d", i), typ)
		linkerChildren = append(linkerChildren, decl)
		conv := tree.AddAggregate(ir.OpConstructFloat, ir.FloatType(), use)
		sum = tree.AddBinary(ir.OpAdd, sum, conv, ir.FloatType())
	}
	splat := tree.AddAggregate(ir.OpConstructVec4, ir.VecType(4), sum)
	bodyChildren = append(bodyChildren, tree.AddBinary(ir.OpAssign, outUse, splat, ir.VecType(4)))

	attribType := ir.Type{Basic: ir.BasicFloat, Vector: 3, Qualifier: ir.Qualifier{Storage: ir.StorageVaryingIn}}
	for _, name := range []string{"position", "normal"} {
		use, decl := addSym(name, attribType)
		linkerChildren = append(linkerChildren, decl)
		bodyChildren = append(bodyChildren, use)
	}

	samplerType := ir.Type{
		Basic:     ir.BasicSampler,
		Sampler:   ir.SamplerInfo{Dim: ir.Dim2D, Combined: true, Sampled: ir.BasicFloat},
		Qualifier: ir.Qualifier{Storage: ir.StorageUniform},
	}
	texUse, texDecl := addSym("diffuse", samplerType)
	linkerChildren = append(linkerChildren, texDecl)
	uv := tree.AddConstant(ir.ConstF32(0.5), ir.VecType(2))
	bodyChildren = append(bodyChildren, tree.AddAggregate(ir.OpTexture, ir.VecType(4), texUse, uv))

	body := tree.AddAggregate(ir.OpSequence, ir.Type{}, bodyChildren...)
	linker := tree.AddAggregate(ir.OpLinkerObjects, ir.Type{}, linkerChildren...)
	_ = tree.AppendChild(tree.Root(), body)
	_ = tree.AppendChild(tree.Root(), linker)

	prog := ir.NewProgram()
	prog.SetTree(ir.StageVertex, tree)
	return prog
}

// BenchmarkPipeline measures the full pass sequence over programs of
// increasing uniform counts. Tree construction is included, since the passes
// mutate their input and need a fresh program per iteration.
func BenchmarkPipeline(b *testing.B) {
	for _, uniforms := range []int{4, 32, 256} {
		b.Run(fmt.Sprintf("uniforms-%d", uniforms), func(b *testing.B) {
			b.ReportAllocs()

			for i := 0; i < b.N; i++ {
				prog := buildBenchProgram(uniforms)
				gen := ir.NewIDGenerator(10_000)
				if err := PackUniforms(prog, gen); err != nil {
					b.Fatalf("PackUniforms failed: %v", err)
				}
				if _, err := BindVertexAttributes(prog, gen, DefaultAttribOptions()); err != nil {
					b.Fatalf("BindVertexAttributes failed: %v", err)
				}
				if err := SplitCombinedSamplers(prog, gen); err != nil {
					b.Fatalf("SplitCombinedSamplers failed: %v", err)
				}
				if err := InvertYDerivatives(prog); err != nil {
					b.Fatalf("InvertYDerivatives failed: %v", err)
				}
			}
		})
	}
}

// BenchmarkPromote measures uniform vector promotion alone, the pass whose
// work scales with use sites rather than declarations.
func BenchmarkPromote(b *testing.B) {
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		prog := buildBenchProgram(128)
		if err := PromoteUniformVectors(prog); err != nil {
			b.Fatalf("PromoteUniformVectors failed: %v", err)
		}
	}
}
