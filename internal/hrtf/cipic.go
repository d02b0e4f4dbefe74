package hrtf

// cipicElevations is the CIPIC HRTF database's standard 50-point elevation
// set: -45 to 230.625 degrees in steps of 5.625 degrees. cipicAzimuths is
// its 25-point azimuth set, identical at every elevation. Both match the
// published CIPIC measurement grid; original_source's cipicmic.cpp never
// reached a working state (its Load/FindElevationIndex/FindAzimuthIndex
// are commented-out copies of kemarmic.cpp's, left unfinished), so this
// table is grounded on the CIPIC database's own published specification
// rather than that file.
var cipicAzimuths = []float64{
	-80, -65, -55, -45, -40, -35, -30, -25, -20, -15, -10, -5,
	0, 5, 10, 15, 20, 25, 30, 35, 40, 45, 55, 65, 80,
}

func cipicElevations() []float64 {
	el := make([]float64, 50)
	for i := range el {
		el[i] = -45 + 5.625*float64(i)
	}
	return el
}

// CipicDataset is a Dataset backed by the CIPIC grid. left and right must
// be laid out as left[elevationIndex][azimuthIndex] against
// cipicElevations()/cipicAzimuths.
type CipicDataset struct {
	*Grid
}

// NewCipicDataset builds the grid from pre-loaded HRIR rows (see
// KemarDataset's doc comment on the file-loading boundary).
func NewCipicDataset(left, right [][][]float64) *CipicDataset {
	elevations := cipicElevations()
	azimuths := make([][]float64, len(elevations))
	for i := range azimuths {
		azimuths[i] = cipicAzimuths
	}
	return &CipicDataset{Grid: NewGrid(elevations, azimuths, left, right)}
}
