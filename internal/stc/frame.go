package stc

// Cube bundles a cloud with the projection settings of one scene variant.
type Cube struct {
	Cloud   []Point3D
	Warp    Warp
	Camera  Camera
	Spin    Spin
	Falloff Falloff
}

// FrameInput is everything that varies per frame.
type FrameInput struct {
	Frame        float64
	Progress     float64
	Slice        *SliceRange
	FilteredOnly bool
	Viewport     Viewport
}

// Geometry is the projected content of one frame: edges are drawn first,
// then points in paint order.
type Geometry struct {
	Edges  []Segment
	Points []ProjectedPoint
}

// TourCube is the dashboard cube: 200 points, slow spin and a 0.4 rad tilt.
func TourCube() Cube {
	return Cube{
		Cloud:   TourCloud(),
		Warp:    TourWarp(),
		Camera:  Camera{Tilt: 0.4, Distance: 500, ZSensitivity: 150, Scale: 180},
		Spin:    Spin{Speed: 0.015},
		Falloff: TourFalloff(),
	}
}

// ConceptCube is the banded concept-video cube.
func ConceptCube() Cube {
	return Cube{
		Cloud:   ConceptCloud(),
		Warp:    ConceptWarp(),
		Camera:  Camera{Tilt: 0.2, Distance: 600, ZSensitivity: 150, Scale: 250},
		Spin:    Spin{Speed: 0.01, Phase: 0.5},
		Falloff: ConceptFalloff(),
	}
}

// Projector returns the projector for a frame.
func (c Cube) Projector(in FrameInput) Projector {
	return Projector{
		Camera:   c.Camera,
		Viewport: in.Viewport,
		Warp:     c.Warp,
		Angle:    c.Spin.Angle(in.Frame),
		Progress: in.Progress,
	}.Sanitize()
}

// Frame projects the wireframe and every visible point, sorted for painting.
func (c Cube) Frame(in FrameInput) Geometry {
	pr := c.Projector(in)

	edges := make([]Segment, len(cubeEdges))
	for i, e := range cubeEdges {
		edges[i] = pr.ProjectEdge(e)
	}

	pts := make([]ProjectedPoint, 0, len(c.Cloud))
	for i, p := range c.Cloud {
		if !Visible(p, in.Slice, in.FilteredOnly) {
			continue
		}
		pp := pr.Project(p)
		pp.Index = i
		pts = append(pts, pp)
	}
	SortByDepth(pts)
	return Geometry{Edges: edges, Points: pts}
}

// Label projects an annotation anchor at time t using the base curve.
func (c Cube) Label(x, y, t float64, in FrameInput) ProjectedPoint {
	return c.Projector(in).ProjectTime(x, y, t, false)
}
