package engine

import (
	"time"

	"github.com/JohnVV/cosmographia/engine/renderer"
	"github.com/JohnVV/cosmographia/engine/universe"
	"github.com/JohnVV/cosmographia/engine/window"
)

// EngineBuilderOption is a functional option for configuring an Engine
// during its creation.
type EngineBuilderOption func(*viewerEngine)

// WithWindow sets a pre-configured window instead of the default one.
//
// Parameters:
//   - w: the window to use
//
// Returns:
//   - EngineBuilderOption: the option function
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *viewerEngine) {
		e.window = w
	}
}

// WithUniverse sets the universe to view.
//
// Parameters:
//   - u: the universe
//
// Returns:
//   - EngineBuilderOption: the option function
func WithUniverse(u universe.Universe) EngineBuilderOption {
	return func(e *viewerEngine) {
		e.universe = u
	}
}

// WithObserver sets the viewpoint the render loop draws from.
//
// Parameters:
//   - o: the observer
//
// Returns:
//   - EngineBuilderOption: the option function
func WithObserver(o universe.Observer) EngineBuilderOption {
	return func(e *viewerEngine) {
		e.observer = o
	}
}

// WithRenderer sets a pre-configured universe renderer.
//
// Parameters:
//   - r: the renderer
//
// Returns:
//   - EngineBuilderOption: the option function
func WithRenderer(r renderer.UniverseRenderer) EngineBuilderOption {
	return func(e *viewerEngine) {
		e.renderer = r
	}
}

// WithContextOptions forwards options to the render context created on the
// window's surface.
//
// Parameters:
//   - opts: context options to forward
//
// Returns:
//   - EngineBuilderOption: the option function
func WithContextOptions(opts ...renderer.WGPURenderContextBuilderOption) EngineBuilderOption {
	return func(e *viewerEngine) {
		e.contextOptions = append(e.contextOptions, opts...)
	}
}

// WithTickRate sets the simulation tick rate in ticks per second. Values
// <= 0 are treated as the default (60Hz).
//
// Parameters:
//   - tps: target ticks per second
//
// Returns:
//   - EngineBuilderOption: the option function
func WithTickRate(tps float64) EngineBuilderOption {
	return func(e *viewerEngine) {
		if tps <= 0 {
			tps = 60
		}
		e.engineTickRate = time.Duration(float64(time.Second) / tps)
	}
}

// WithTimeMultiplier sets how fast simulation time advances relative to wall
// clock time.
//
// Parameters:
//   - multiplier: simulation seconds per wall clock second
//
// Returns:
//   - EngineBuilderOption: the option function
func WithTimeMultiplier(multiplier float64) EngineBuilderOption {
	return func(e *viewerEngine) {
		e.timeMultiplier = multiplier
	}
}

// WithFieldOfView sets the vertical field of view of the observer view.
//
// Parameters:
//   - fov: field of view in radians
//
// Returns:
//   - EngineBuilderOption: the option function
func WithFieldOfView(fov float64) EngineBuilderOption {
	return func(e *viewerEngine) {
		e.fieldOfView = fov
	}
}

// WithProfiling enables frame statistics output to the log.
//
// Parameters:
//   - enabled: true to enable profiling
//
// Returns:
//   - EngineBuilderOption: the option function
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *viewerEngine) {
		e.profilingEnabled = enabled
	}
}

// WithRenderFrameLimit sets an optional render frame rate cap in frames per
// second. Pass 0 to uncap the render loop (default).
//
// Parameters:
//   - fps: maximum render frames per second
//
// Returns:
//   - EngineBuilderOption: the option function
func WithRenderFrameLimit(fps float64) EngineBuilderOption {
	return func(e *viewerEngine) {
		if fps <= 0 {
			e.renderFrameLimit = 0
			return
		}
		e.renderFrameLimit = time.Duration(float64(time.Second) / fps)
	}
}
