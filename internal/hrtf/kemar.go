package hrtf

// kemarElevations and kemarAzimuthCounts are the MIT Kemar compact HRTF
// set's measurement grid, transcribed from kemarmic.cpp's
// num_measurements_/elevations_ tables: 14 elevation rows from -40 to
// +90 degrees, each with its own uniform azimuth count (coarser near the
// poles).
var kemarElevations = []float64{-40, -30, -20, -10, 0, 10, 20, 30, 40, 50, 60, 70, 80, 90}
var kemarAzimuthCounts = []int{56, 60, 72, 72, 72, 72, 72, 60, 56, 45, 36, 24, 12, 1}

func uniformAzimuths(count int) []float64 {
	az := make([]float64, count)
	for i := range az {
		az[i] = 360 * float64(i) / float64(count)
	}
	return az
}

// KemarDataset is a Dataset backed by the Kemar compact grid. left and
// right must be laid out as left[elevationRow][azimuthIndex], each a mono
// impulse response, with azimuthIndex running ipsilateral-first per
// kemarAzimuthCounts (as kemarmic.cpp's Load produces by mirroring
// opposite-ear measurements across the array).
type KemarDataset struct {
	*Grid
}

// NewKemarDataset builds the grid from pre-loaded HRIR rows. Loading the
// raw Kemar binary files themselves is outside this package's scope (see
// spec's WAV/file-I/O boundary) — callers supply already-decoded samples.
func NewKemarDataset(left, right [][][]float64) *KemarDataset {
	azimuths := make([][]float64, len(kemarAzimuthCounts))
	for i, c := range kemarAzimuthCounts {
		azimuths[i] = uniformAzimuths(c)
	}
	return &KemarDataset{Grid: NewGrid(kemarElevations, azimuths, left, right)}
}
