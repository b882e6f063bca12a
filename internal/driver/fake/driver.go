package fake

import (
	"fmt"
	"io"
	"sync"

	"github.com/coreman2200/funtimes-stcube/internal/render"
)

// Driver prints a compact summary of each frame (op counts per kind),
// useful for headless tests and dry runs. With Keep set it also retains a
// copy of every frame.
type Driver struct {
	Out  io.Writer
	Keep bool

	mu     sync.Mutex
	Count  int
	Frames map[int]*render.DrawList
}

func (d *Driver) Write(frame int, dl *render.DrawList) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Count++
	if d.Keep {
		if d.Frames == nil {
			d.Frames = map[int]*render.DrawList{}
		}
		cp := &render.DrawList{}
		cp.CopyFrom(dl)
		d.Frames[frame] = cp
	}
	if d.Out == nil {
		return nil
	}
	_, err := fmt.Fprintf(d.Out, "[frame %04d] bg=%s ops=%d lines=%d circles=%d rects=%d texts=%d\n",
		frame, dl.Background.Hex(), len(dl.Ops),
		dl.Count(render.OpLine), dl.Count(render.OpCircle), dl.Count(render.OpRect), dl.Count(render.OpText))
	return err
}

// Frame returns a retained frame.
func (d *Driver) Frame(n int) (*render.DrawList, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	dl, ok := d.Frames[n]
	return dl, ok
}

// Written returns how many frames were written.
func (d *Driver) Written() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.Count
}
