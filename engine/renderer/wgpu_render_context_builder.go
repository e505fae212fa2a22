package renderer

import "github.com/cogentcore/webgpu/wgpu"

type wgpuContextConfig struct {
	presentMode          wgpu.PresentMode
	sampleCount          MSAASampleCount
	forceFallbackAdapter bool
}

// WGPURenderContextBuilderOption is a functional option for configuring a
// WGPURenderContext during its creation.
type WGPURenderContextBuilderOption func(*wgpuContextConfig)

// WithContextPresentMode selects how finished frames are presented.
//
// Parameters:
//   - mode: the present mode
//
// Returns:
//   - WGPURenderContextBuilderOption: the option function
func WithContextPresentMode(mode PresentMode) WGPURenderContextBuilderOption {
	return func(cfg *wgpuContextConfig) {
		switch mode {
		case PresentModeVSync:
			cfg.presentMode = wgpu.PresentModeFifo
		case PresentModeUncapped:
			cfg.presentMode = wgpu.PresentModeImmediate
		}
	}
}

// WithContextMSAA sets the multisample count for the default surface.
//
// Parameters:
//   - sampleCount: the MSAA sample count
//
// Returns:
//   - WGPURenderContextBuilderOption: the option function
func WithContextMSAA(sampleCount MSAASampleCount) WGPURenderContextBuilderOption {
	return func(cfg *wgpuContextConfig) {
		cfg.sampleCount = sampleCount
	}
}

// WithForceFallbackAdapter forces selection of a software adapter. Useful on
// headless machines.
//
// Returns:
//   - WGPURenderContextBuilderOption: the option function
func WithForceFallbackAdapter() WGPURenderContextBuilderOption {
	return func(cfg *wgpuContextConfig) {
		cfg.forceFallbackAdapter = true
	}
}
