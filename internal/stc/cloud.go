package stc

import "strconv"

// Band is a contiguous run of points sharing a time range.
//
// Points in a band get seeds "x<Label>-<k>" and "y<Label>-<k>" where
// k = IndexBase + i. When Even is false the time value is sampled from
// "z<Label>-<k>" inside [ZMin, ZMax]; when Even is true the points are spaced
// evenly from ZMin to ZMax inclusive.
type Band struct {
	Label     string
	Count     int
	ZMin      float64
	ZMax      float64
	Burst     bool
	Even      bool
	IndexBase int
}

// CloudSpec describes a full point cloud.
type CloudSpec struct {
	Bands []Band
	// Spread is the width of the x/y jitter around 0.
	Spread float64
	// FilterEvery marks every n-th point (by global index) as part of the
	// filtered subset. Zero or negative marks none.
	FilterEvery int
}

// Generate builds the cloud described by spec. Bands with a non-positive
// count contribute no points.
func Generate(spec CloudSpec) []Point3D {
	n := 0
	for _, b := range spec.Bands {
		if b.Count > 0 {
			n += b.Count
		}
	}
	out := make([]Point3D, 0, n)
	for _, b := range spec.Bands {
		for i := 0; i < b.Count; i++ {
			k := strconv.Itoa(b.IndexBase + i)
			p := Point3D{
				X:     (Random("x"+b.Label+"-"+k) - 0.5) * spec.Spread,
				Y:     (Random("y"+b.Label+"-"+k) - 0.5) * spec.Spread,
				Burst: b.Burst,
			}
			switch {
			case !b.Even:
				p.Z = lerp(b.ZMin, b.ZMax, Random("z"+b.Label+"-"+k))
			case b.Count == 1:
				p.Z = b.ZMin
			default:
				p.Z = b.ZMin + (b.ZMax-b.ZMin)*float64(i)/float64(b.Count-1)
			}
			if spec.FilterEvery > 0 && len(out)%spec.FilterEvery == 0 {
				p.Filtered = true
			}
			out = append(out, p)
		}
	}
	return out
}

// TourCloudSpec is the 200 point cloud used by the dashboard tour: evenly
// spaced in time at 0.01 steps, with points 121..159 flagged as a burst and
// every third point in the filtered subset.
func TourCloudSpec() CloudSpec {
	return CloudSpec{
		Spread:      1.5,
		FilterEvery: 3,
		Bands: []Band{
			{Count: 121, ZMin: -1, ZMax: 0.2, Even: true},
			{Count: 39, ZMin: 0.21, ZMax: 0.59, Even: true, Burst: true, IndexBase: 121},
			{Count: 40, ZMin: 0.6, ZMax: 0.99, Even: true, IndexBase: 160},
		},
	}
}

// ConceptCloudSpec is the banded cloud of the concept video: three sparse
// stretches separated by two dense bursts.
func ConceptCloudSpec() CloudSpec {
	return CloudSpec{
		Spread: 1.5,
		Bands: []Band{
			{Label: "s1", Count: 40, ZMin: -1, ZMax: -0.35},
			{Label: "b1", Count: 120, ZMin: -0.35, ZMax: -0.1, Burst: true},
			{Label: "s2", Count: 40, ZMin: -0.1, ZMax: 0.45},
			{Label: "b2", Count: 120, ZMin: 0.45, ZMax: 0.7, Burst: true},
			{Label: "s3", Count: 30, ZMin: 0.7, ZMax: 1},
		},
	}
}

// TourCloud generates TourCloudSpec.
func TourCloud() []Point3D { return Generate(TourCloudSpec()) }

// ConceptCloud generates ConceptCloudSpec.
func ConceptCloud() []Point3D { return Generate(ConceptCloudSpec()) }

func lerp(a, b, t float64) float64 { return a + (b-a)*t }
