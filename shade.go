// Package shade rewrites parsed GLSL-family shader programs so they can be
// cross-compiled for the bgfx renderer's native target languages.
//
// The input is an ir.Program: one typed intermediate tree per pipeline stage,
// in the shape a glslang-style front end produces. shade restructures the
// trees in place:
//   - Uniform packing — loose non-sampler uniforms become one struct per
//     stage, for constant-buffer targets such as DirectX and Metal.
//   - Uniform vector promotion — narrow uniforms widen to vec4, for targets
//     with vec4-granular uniform storage such as OpenGL and Metal.
//   - Vertex attribute binding — attributes take bgfx's names and locations,
//     by fixed table or by packing.
//   - Sampler splitting — combined texture+samplers become texture and
//     sampler pairs, as required everywhere outside OpenGL-style GLSL.
//   - Y derivative inversion — dFdy operands are negated for targets whose
//     window coordinates run top to bottom.
//
// The package provides per-platform option presets as well as direct access
// to the individual passes in the rewrite package.
//
// Example usage:
//
//	prog := ir.NewProgram()
//	// ... populate stage trees from a front end ...
//	gen := ir.NewIDGenerator(1)
//	result, err := shade.Rewrite(prog, gen, shade.PlatformOptions(shade.PlatformMetal))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	_ = result.AttributeNames // assigned name -> original name
package shade

import (
	"fmt"

	"github.com/gogpu/shade/ir"
	"github.com/gogpu/shade/rewrite"
)

// Platform identifies a rendering backend with its own rewriting needs.
type Platform uint8

const (
	// PlatformD3D targets DirectX-style HLSL compilation.
	PlatformD3D Platform = iota

	// PlatformMetal targets Metal Shading Language compilation.
	PlatformMetal

	// PlatformOpenGL targets OpenGL-style GLSL compilation.
	PlatformOpenGL
)

// String returns the platform's name.
func (p Platform) String() string {
	switch p {
	case PlatformD3D:
		return "d3d"
	case PlatformMetal:
		return "metal"
	case PlatformOpenGL:
		return "opengl"
	default:
		return "unknown"
	}
}

// Options configures which rewriting passes Rewrite runs.
type Options struct {
	// PackUniforms merges non-sampler uniforms into one struct per stage.
	PackUniforms bool

	// PromoteUniformVectors widens narrow uniforms to vec4.
	PromoteUniformVectors bool

	// BindAttributes rewrites vertex attributes to bgfx names and
	// locations, configured by Attributes.
	BindAttributes bool

	// Attributes configures attribute binding when BindAttributes is set.
	Attributes rewrite.AttribOptions

	// SplitSamplers separates combined texture+samplers.
	SplitSamplers bool

	// InvertYDerivatives negates dFdy operands in the fragment stage.
	InvertYDerivatives bool

	// Validate checks the program's structure before rewriting.
	Validate bool
}

// DefaultOptions returns the full DirectX-style rewriting pipeline.
func DefaultOptions() Options {
	return PlatformOptions(PlatformD3D)
}

// PlatformOptions returns the pass selection a platform requires.
//
// DirectX and Metal group uniforms into a constant buffer and consume split
// samplers with top-down window coordinates; Metal's hard attribute limit
// additionally forces packed attribute binding. OpenGL keeps loose uniforms,
// widened to vec4, and binds attributes packed by name table on the engine
// side.
func PlatformOptions(p Platform) Options {
	opts := Options{
		Attributes: rewrite.DefaultAttribOptions(),
		Validate:   true,
	}
	switch p {
	case PlatformMetal:
		opts.PackUniforms = true
		opts.BindAttributes = true
		opts.Attributes.Policy = rewrite.PolicyPacked
		opts.SplitSamplers = true
		opts.InvertYDerivatives = true
	case PlatformOpenGL:
		opts.PromoteUniformVectors = true
		opts.BindAttributes = true
		opts.Attributes.Policy = rewrite.PolicyPacked
	default:
		opts.PackUniforms = true
		opts.BindAttributes = true
		opts.SplitSamplers = true
		opts.InvertYDerivatives = true
	}
	return opts
}

// Result carries the artifacts a rewrite produces beyond the trees
// themselves.
type Result struct {
	// AttributeNames maps each assigned vertex attribute name to the
	// original source name, for associating application-side vertex
	// streams with the rewritten shader. Empty unless attribute binding
	// ran.
	AttributeNames map[string]string
}

// Rewrite runs the selected passes over the program in the conventional
// order: packing, promotion, attribute binding, sampler splitting, then
// derivative inversion. The trees are mutated in place; on error they may be
// partially rewritten and should be discarded.
func Rewrite(prog *ir.Program, gen *ir.IDGenerator, opts Options) (Result, error) {
	result := Result{AttributeNames: make(map[string]string)}
	if prog == nil {
		return result, fmt.Errorf("program is nil")
	}

	if opts.Validate {
		validationErrors, err := Validate(prog)
		if err != nil {
			return result, fmt.Errorf("validation error: %w", err)
		}
		if len(validationErrors) > 0 {
			return result, fmt.Errorf("validation failed: %w", &validationErrors[0])
		}
	}

	if opts.PackUniforms {
		if err := rewrite.PackUniforms(prog, gen); err != nil {
			return result, fmt.Errorf("uniform packing error: %w", err)
		}
	}

	if opts.PromoteUniformVectors {
		if err := rewrite.PromoteUniformVectors(prog); err != nil {
			return result, fmt.Errorf("uniform promotion error: %w", err)
		}
	}

	if opts.BindAttributes {
		names, err := rewrite.BindVertexAttributes(prog, gen, opts.Attributes)
		if err != nil {
			return result, fmt.Errorf("attribute binding error: %w", err)
		}
		result.AttributeNames = names
	}

	if opts.SplitSamplers {
		if err := rewrite.SplitCombinedSamplers(prog, gen); err != nil {
			return result, fmt.Errorf("sampler splitting error: %w", err)
		}
	}

	if opts.InvertYDerivatives {
		if err := rewrite.InvertYDerivatives(prog); err != nil {
			return result, fmt.Errorf("derivative inversion error: %w", err)
		}
	}

	return result, nil
}

// Validate checks every stage tree of the program for structural
// correctness.
//
// Validation checks include:
//   - Root and linker-objects section well-formedness
//   - Handle validity (no released nodes reachable)
//   - Linker entry uniqueness
//   - Externally visible symbols enumerated in the linker section
//
// Returns a slice of validation errors. If the slice is empty, validation
// passed.
func Validate(prog *ir.Program) ([]ir.ValidationError, error) {
	if prog == nil {
		return nil, fmt.Errorf("program is nil")
	}
	var all []ir.ValidationError
	for _, stage := range prog.Stages() {
		errs, err := ir.Validate(prog.Tree(stage))
		if err != nil {
			return nil, err
		}
		all = append(all, errs...)
	}
	if len(all) > 0 {
		return all, nil
	}
	return nil, nil
}
