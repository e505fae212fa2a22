package universe

import "github.com/JohnVV/cosmographia/common"

// LightSource describes light emitted by an entity. The entity supplies the
// light's position; the source supplies its photometric properties.
type LightSource interface {
	// Range returns the distance beyond which the light contributes no
	// energy.
	//
	// Returns:
	//   - float32: the range in world units
	Range() float32

	// Color returns the light's color.
	//
	// Returns:
	//   - common.Spectrum: the light color
	Color() common.Spectrum

	// Luminosity returns the scalar intensity multiplier for the light.
	//
	// Returns:
	//   - float32: the luminosity value
	Luminosity() float32

	// CastsShadows returns whether this light is eligible for shadow map
	// generation.
	//
	// Returns:
	//   - bool: true if the light casts shadows
	CastsShadows() bool

	// SetRange sets the maximum attenuation distance.
	//
	// Parameters:
	//   - lightRange: the range in world units
	SetRange(lightRange float32)

	// SetColor sets the light's color.
	//
	// Parameters:
	//   - color: the light color
	SetColor(color common.Spectrum)

	// SetLuminosity sets the scalar intensity multiplier.
	//
	// Parameters:
	//   - luminosity: the luminosity value
	SetLuminosity(luminosity float32)

	// SetCastsShadows sets whether the light is eligible for shadow mapping.
	//
	// Parameters:
	//   - castsShadows: true to enable shadow casting
	SetCastsShadows(castsShadows bool)
}

type lightSourceImpl struct {
	lightRange   float32
	color        common.Spectrum
	luminosity   float32
	castsShadows bool
}

var _ LightSource = &lightSourceImpl{}

// NewLightSource creates a white, non-shadow-casting light source with the
// given range and any provided options applied.
//
// Parameters:
//   - lightRange: the maximum attenuation distance in world units
//   - opts: variadic list of LightSourceBuilderOption functions to configure the source
//
// Returns:
//   - LightSource: a new LightSource instance
func NewLightSource(lightRange float32, opts ...LightSourceBuilderOption) LightSource {
	l := &lightSourceImpl{
		lightRange: lightRange,
		color:      common.NewSpectrum(1, 1, 1),
		luminosity: 1,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *lightSourceImpl) Range() float32 {
	return l.lightRange
}

func (l *lightSourceImpl) Color() common.Spectrum {
	return l.color
}

func (l *lightSourceImpl) Luminosity() float32 {
	return l.luminosity
}

func (l *lightSourceImpl) CastsShadows() bool {
	return l.castsShadows
}

func (l *lightSourceImpl) SetRange(lightRange float32) {
	l.lightRange = lightRange
}

func (l *lightSourceImpl) SetColor(color common.Spectrum) {
	l.color = color
}

func (l *lightSourceImpl) SetLuminosity(luminosity float32) {
	l.luminosity = luminosity
}

func (l *lightSourceImpl) SetCastsShadows(castsShadows bool) {
	l.castsShadows = castsShadows
}

// LightSourceBuilderOption is a function that configures a LightSource instance during construction.
type LightSourceBuilderOption func(*lightSourceImpl)

// WithLightColor is an option builder that sets the light's color.
//
// Parameters:
//   - color: the light color
//
// Returns:
//   - LightSourceBuilderOption: a function that applies the color option to a lightSourceImpl
func WithLightColor(color common.Spectrum) LightSourceBuilderOption {
	return func(l *lightSourceImpl) {
		l.color = color
	}
}

// WithLuminosity is an option builder that sets the scalar intensity
// multiplier.
//
// Parameters:
//   - luminosity: the luminosity value
//
// Returns:
//   - LightSourceBuilderOption: a function that applies the luminosity option to a lightSourceImpl
func WithLuminosity(luminosity float32) LightSourceBuilderOption {
	return func(l *lightSourceImpl) {
		l.luminosity = luminosity
	}
}

// WithShadowCasting is an option builder that sets whether the light is
// eligible for shadow map generation.
//
// Parameters:
//   - castsShadows: true to enable shadow casting
//
// Returns:
//   - LightSourceBuilderOption: a function that applies the shadow option to a lightSourceImpl
func WithShadowCasting(castsShadows bool) LightSourceBuilderOption {
	return func(l *lightSourceImpl) {
		l.castsShadows = castsShadows
	}
}
