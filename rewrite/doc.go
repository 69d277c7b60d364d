// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package rewrite implements the tree rewriting passes that adapt a parsed
// GLSL-family shader program to the expectations of the bgfx renderer and
// its native target languages.
//
// Each pass is a standalone function over an ir.Program:
//
//   - PackUniforms merges loose non-sampler uniforms into one synthetic
//     uniform struct per stage, as constant-buffer targets require.
//   - PromoteUniformVectors widens narrow uniforms to vec4, compensating at
//     every use with a shape conversion.
//   - BindVertexAttributes renames and relocates vertex attributes to bgfx's
//     conventions, by fixed table or by packing.
//   - SplitCombinedSamplers separates combined texture+samplers into texture
//     and sampler pairs sharing a binding slot.
//   - InvertYDerivatives negates the operand of every Y-axis derivative in
//     the fragment stage.
//
// Passes mutate the trees in place through the ir arena and may be composed
// in any order, though the conventional order is the one above.
package rewrite
