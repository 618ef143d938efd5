package spectra

// PhysicalQuantity describes the data variable an entity carries.
type PhysicalQuantity struct {
	Name         string // variable name in the store
	Units        string
	StandardName string // CF standard name
}

// PowerSpectrum is the wave energy density carried by spectral entities.
var PowerSpectrum = PhysicalQuantity{
	Name:         "spec",
	Units:        "m**2/Hz",
	StandardName: "sea_surface_wave_variance_spectral_density",
}
