package renderer

import (
	"github.com/JohnVV/cosmographia/common"
)

// UniverseRendererBuilderOption is a functional option for configuring a
// UniverseRenderer during its creation.
type UniverseRendererBuilderOption func(*universeRendererImpl)

// WithAmbientLight sets the ambient fill light added to all shaded geometry.
//
// Parameters:
//   - light: the ambient color
//
// Returns:
//   - UniverseRendererBuilderOption: the option function
func WithAmbientLight(light common.Spectrum) UniverseRendererBuilderOption {
	return func(r *universeRendererImpl) {
		r.ambientLight = light
	}
}

// WithVisualizersEnabled controls whether entity visualizers are drawn.
//
// Parameters:
//   - enabled: true to draw visualizers
//
// Returns:
//   - UniverseRendererBuilderOption: the option function
func WithVisualizersEnabled(enabled bool) UniverseRendererBuilderOption {
	return func(r *universeRendererImpl) {
		r.visualizersEnabled = enabled
	}
}

// WithSkyLayersEnabled controls whether sky layers are drawn.
//
// Parameters:
//   - enabled: true to draw sky layers
//
// Returns:
//   - UniverseRendererBuilderOption: the option function
func WithSkyLayersEnabled(enabled bool) UniverseRendererBuilderOption {
	return func(r *universeRendererImpl) {
		r.skyLayersEnabled = enabled
	}
}

// WithDefaultSunEnabled controls whether a directional sun light at the
// universe origin is added to every view set.
//
// Parameters:
//   - enabled: true to add the default sun
//
// Returns:
//   - UniverseRendererBuilderOption: the option function
func WithDefaultSunEnabled(enabled bool) UniverseRendererBuilderOption {
	return func(r *universeRendererImpl) {
		r.defaultSunEnabled = enabled
	}
}

// WithDiagnostics enables debug logging of the per-view depth buffer span
// layout.
//
// Returns:
//   - UniverseRendererBuilderOption: the option function
func WithDiagnostics() UniverseRendererBuilderOption {
	return func(r *universeRendererImpl) {
		r.diagnostics = true
	}
}
