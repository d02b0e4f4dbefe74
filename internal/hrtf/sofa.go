package hrtf

// SofaAdapter satisfies Dataset by delegating to a host-supplied lookup
// function, so a host linking an external SOFA library (e.g. libmysofa)
// can plug its own file-backed interpolation in without this package
// needing to parse the SOFA format itself — out of scope per spec, see
// SPEC_FULL.md's open question on SOFA loading.
type SofaAdapter struct {
	LookupFunc func(azimuthDeg, elevationDeg float64) (left, right []float64)
}

// Lookup implements Dataset.
func (s *SofaAdapter) Lookup(azimuthDeg, elevationDeg float64) (left, right []float64) {
	if s.LookupFunc == nil {
		return nil, nil
	}
	return s.LookupFunc(azimuthDeg, elevationDeg)
}
