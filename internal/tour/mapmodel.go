// Package tour holds the data behind the linked-view dashboard: the incident
// map, the adaptive and uniform timelines, the brush that links them to the
// space-time cube, and the panel layout.
package tour

import (
	"math"

	"github.com/coreman2200/funtimes-stcube/internal/render"
)

// Map centre (Amsterdam) and extent shown by the map panel, in degrees.
const (
	CenterLat = 52.3676
	CenterLng = 4.9041
	SpanLat   = 0.06
	SpanLng   = 0.09

	IncidentCount = 60
	HoverIndex    = 15
)

// Incident is one point on the map.
type Incident struct {
	Index    int
	Lat, Lng float64
}

// Bounds is an open lat/lng box.
type Bounds struct {
	LatMin, LatMax float64
	LngMin, LngMax float64
}

// Contains is strict on every side.
func (b Bounds) Contains(lat, lng float64) bool {
	return lat > b.LatMin && lat < b.LatMax && lng > b.LngMin && lng < b.LngMax
}

// Ring returns the corners as a closed lat/lng path.
func (b Bounds) Ring() [][2]float64 {
	return [][2]float64{
		{b.LatMax, b.LngMin},
		{b.LatMax, b.LngMax},
		{b.LatMin, b.LngMax},
		{b.LatMin, b.LngMin},
		{b.LatMax, b.LngMin},
	}
}

// Tooltip is the detail card shown next to the hovered incident.
type Tooltip struct {
	Title string
	Lines []string
}

// MapModel is the incident set and the lasso selection over it.
type MapModel struct {
	Incidents []Incident
	Lasso     Bounds
	Hover     int
	Tooltip   Tooltip
}

// Amsterdam builds the 60 incident map with its lasso.
func Amsterdam() MapModel {
	inc := make([]Incident, IncidentCount)
	for i := range inc {
		inc[i] = Incident{
			Index: i,
			Lat:   CenterLat + math.Sin(float64(i)*123)*0.02,
			Lng:   CenterLng + math.Cos(float64(i)*456)*0.02,
		}
	}
	return MapModel{
		Incidents: inc,
		Lasso:     Bounds{LatMin: 52.35, LatMax: 52.38, LngMin: 4.88, LngMax: 4.93},
		Hover:     HoverIndex,
		Tooltip: Tooltip{
			Title: "CRIME DATA #1242",
			Lines: []string{"Type: Burglary", "Time: 22:15:04"},
		},
	}
}

// Inside reports whether the incident lies within the lasso.
func (m MapModel) Inside(in Incident) bool { return m.Lasso.Contains(in.Lat, in.Lng) }

// Highlighted is true once the lasso has nearly closed around an inside point.
func (m MapModel) Highlighted(in Incident, selection float64) bool {
	return m.Inside(in) && selection > 0.8
}

// Hovered is true for the tooltip incident while the lasso is being drawn.
func (m MapModel) Hovered(in Incident, selection float64) bool {
	return in.Index == m.Hover && selection > 0.1 && selection < 0.9
}

// CountHighlighted returns the number of highlighted incidents.
func (m MapModel) CountHighlighted(selection float64) int {
	n := 0
	for _, in := range m.Incidents {
		if m.Highlighted(in, selection) {
			n++
		}
	}
	return n
}

// Project maps a lat/lng into the panel rectangle, scaled by zoom about the
// panel centre.
func Project(lat, lng float64, vp render.Viewport, zoom float64) (x, y float64) {
	cx, cy := vp.X+vp.Width/2, vp.Y+vp.Height/2
	x = cx + (lng-CenterLng)/SpanLng*vp.Width*zoom
	y = cy - (lat-CenterLat)/SpanLat*vp.Height*zoom
	return x, y
}
