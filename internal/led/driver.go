// Package led pushes RGB frames to a WS2812 strip through periph: nrzled
// over SPI on real hardware, or the periph console screen when no SPI port
// is present.
package led

import (
	"fmt"
	"image"
	"image/color"
	"sync"

	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/devices/v3/nrzled"
	"periph.io/x/extra/devices/screen"
	"periph.io/x/host/v3"
)

// Driver abstracts an LED output sink.
type Driver interface {
	// Write pushes an RGB frame to hardware. len(rgb) must be 3*N.
	Write(rgb []byte) error
	// Close releases resources.
	Close() error
}

// SPIFreq is the SPI clock nrzled encodes the 800kHz NRZ stream at.
const SPIFreq = 2500 * physic.KiloHertz

// Strip draws frames onto any periph display.Drawer as a 1xN image.
type Strip struct {
	mu     sync.Mutex
	drawer display.Drawer
	img    *image.NRGBA
	count  int
	order  [3]int
	Kind   string
}

// NewStrip wraps d. colorOrder like "GRB" reorders channels before they
// reach the drawer; empty keeps RGB.
func NewStrip(d display.Drawer, count int, colorOrder, kind string) (*Strip, error) {
	if count <= 0 {
		return nil, fmt.Errorf("invalid LED count: %d", count)
	}
	s := &Strip{
		drawer: d,
		img:    image.NewNRGBA(image.Rect(0, 0, count, 1)),
		count:  count,
		order:  [3]int{0, 1, 2},
		Kind:   kind,
	}
	if len(colorOrder) == 3 {
		for i := 0; i < 3; i++ {
			switch colorOrder[i] {
			case 'R':
				s.order[i] = 0
			case 'G':
				s.order[i] = 1
			case 'B':
				s.order[i] = 2
			default:
				return nil, fmt.Errorf("color order %q: want a permutation of RGB", colorOrder)
			}
		}
	}
	return s, nil
}

// NewSPI drives count pixels through nrzled on an open SPI port.
func NewSPI(p spi.Port, count int, colorOrder string) (*Strip, error) {
	d, err := nrzled.NewSPI(p, &nrzled.Opts{NumPixels: count, Channels: 3, Freq: SPIFreq})
	if err != nil {
		return nil, fmt.Errorf("nrzled: %w", err)
	}
	if err := d.Halt(); err != nil {
		return nil, fmt.Errorf("nrzled halt: %w", err)
	}
	return NewStrip(d, count, colorOrder, "spi")
}

// NewSim prints frames to the terminal through the periph console screen.
func NewSim(count int) (*Strip, error) {
	return NewStrip(screen.New(min(count, 100)), count, "", "sim")
}

// Open initialises the host and picks SPI when a port is available,
// falling back to the console. port "" selects the first port.
func Open(port string, count int, colorOrder string) (*Strip, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("periph host: %w", err)
	}
	ss, err := spireg.Open(port)
	if err != nil {
		return NewSim(count)
	}
	return NewSPI(ss, count, colorOrder)
}

func (s *Strip) Count() int { return s.count }

func (s *Strip) Write(rgb []byte) error {
	if len(rgb) != s.count*3 {
		return fmt.Errorf("rgb length %d does not match count %d", len(rgb), s.count)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := 0; i < s.count; i++ {
		px := rgb[i*3 : i*3+3]
		s.img.SetNRGBA(i, 0, color.NRGBA{R: px[s.order[0]], G: px[s.order[1]], B: px[s.order[2]], A: 255})
	}
	return s.drawer.Draw(s.drawer.Bounds(), s.img, image.Point{})
}

// Close blanks the strip.
func (s *Strip) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.drawer.Halt()
}
