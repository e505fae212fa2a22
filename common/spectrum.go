package common

// Spectrum is a linear RGB color sample.
type Spectrum struct {
	R float32
	G float32
	B float32
}

// NewSpectrum creates a Spectrum from red, green and blue components.
func NewSpectrum(r, g, b float32) Spectrum {
	return Spectrum{R: r, G: g, B: b}
}

// MulScalar returns the spectrum scaled by s.
func (c Spectrum) MulScalar(s float32) Spectrum {
	return Spectrum{R: c.R * s, G: c.G * s, B: c.B * s}
}

// Add returns the component-wise sum of two spectra.
func (c Spectrum) Add(other Spectrum) Spectrum {
	return Spectrum{R: c.R + other.R, G: c.G + other.G, B: c.B + other.B}
}
