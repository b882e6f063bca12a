package ws

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	diag "github.com/coreman2200/funtimes-stcube/internal/diagnostics"
	"github.com/coreman2200/funtimes-stcube/internal/render"
)

type fakeCtl struct {
	mu        sync.Mutex
	playing   bool
	seek      int
	loaded    string
	overrides map[string]float64
}

func (f *fakeCtl) Play()          { f.mu.Lock(); f.playing = true; f.mu.Unlock() }
func (f *fakeCtl) Pause()         { f.mu.Lock(); f.playing = false; f.mu.Unlock() }
func (f *fakeCtl) Seek(frame int) { f.mu.Lock(); f.seek = frame; f.mu.Unlock() }
func (f *fakeCtl) Load(name string) error {
	if name != "FullDemo" {
		return errors.New("unknown composition " + name)
	}
	f.mu.Lock()
	f.loaded = name
	f.mu.Unlock()
	return nil
}
func (f *fakeCtl) Override(name string, v float64) {
	f.mu.Lock()
	if f.overrides == nil {
		f.overrides = map[string]float64{}
	}
	f.overrides[name] = v
	f.mu.Unlock()
}
func (f *fakeCtl) ClearOverrides() { f.mu.Lock(); f.overrides = nil; f.mu.Unlock() }
func (f *fakeCtl) Status() render.Status {
	return render.Status{Active: "dashboard", Preset: "MapInteraction"}
}

func serve(t *testing.T) (*State, *fakeCtl, *httptest.Server) {
	ctl := &fakeCtl{}
	s := NewState(30, ctl)
	srv := httptest.NewServer(s.Mux())
	t.Cleanup(srv.Close)
	return s, ctl, srv
}

func dial(t *testing.T, srv *httptest.Server, path string) *websocket.Conn {
	u := "ws" + strings.TrimPrefix(srv.URL, "http") + path
	c, _, err := websocket.DefaultDialer.Dial(u, nil)
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func count(s *State, m func() map[*websocket.Conn]*peer) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(m())
}

func TestFramesBroadcast(t *testing.T) {
	s, _, srv := serve(t)
	c := dial(t, srv, "/ws")
	require.Eventually(t, func() bool { return count(s, func() map[*websocket.Conn]*peer { return s.clients }) == 1 },
		time.Second, 5*time.Millisecond)

	th := render.DarkTheme()
	dl := render.NewDrawList(640, 360, th.Background)
	dl.Add(render.Circle(10, 10, 3, th.AccentOrange))
	require.NoError(t, s.Write(42, dl))

	c.SetReadDeadline(time.Now().Add(time.Second))
	_, data, err := c.ReadMessage()
	require.NoError(t, err)
	var got struct {
		FrameID    uint64      `json:"frame_id"`
		Frame      int         `json:"frame"`
		Width      float64     `json:"width"`
		Background string      `json:"background"`
		Ops        []render.Op `json:"ops"`
	}
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, uint64(1), got.FrameID)
	assert.Equal(t, 42, got.Frame)
	assert.Equal(t, 640.0, got.Width)
	assert.Equal(t, th.Background.Hex(), got.Background)
	require.Len(t, got.Ops, 1)
	assert.Equal(t, th.AccentOrange, *got.Ops[0].Fill)

	// late joiners get the last frame immediately
	late := dial(t, srv, "/ws")
	late.SetReadDeadline(time.Now().Add(time.Second))
	_, data, err = late.ReadMessage()
	require.NoError(t, err)
	assert.Contains(t, string(data), `"frame":42`)
}

func TestControlMessages(t *testing.T) {
	s, ctl, srv := serve(t)
	c := dial(t, srv, "/control")

	require.NoError(t, c.WriteJSON(map[string]any{"composition": "FullDemo", "seek": 120, "warp": 1.4, "play": true}))
	c.SetReadDeadline(time.Now().Add(time.Second))
	var h Health
	require.NoError(t, c.ReadJSON(&h))

	assert.Equal(t, "FullDemo", h.Composition)
	assert.Equal(t, "dashboard", h.Engine.Active)
	ctl.mu.Lock()
	assert.True(t, ctl.playing)
	assert.Equal(t, 120, ctl.seek)
	assert.Equal(t, 1.0, ctl.overrides["Warp"], "warp is clamped")
	ctl.mu.Unlock()

	require.NoError(t, c.WriteJSON(map[string]any{"warp": nil, "pause": true}))
	require.NoError(t, c.ReadJSON(&h))
	ctl.mu.Lock()
	assert.False(t, ctl.playing)
	assert.Nil(t, ctl.overrides)
	ctl.mu.Unlock()
	assert.Equal(t, 30, s.health().FPS)
}

func TestDiagnosticsStream(t *testing.T) {
	s, _, srv := serve(t)
	d := dial(t, srv, "/diag")
	require.Eventually(t, func() bool { return count(s, func() map[*websocket.Conn]*peer { return s.diagClients }) == 1 },
		time.Second, 5*time.Millisecond)

	c := dial(t, srv, "/control")
	require.NoError(t, c.WriteJSON(map[string]any{"composition": "Nope"}))
	require.NoError(t, c.WriteJSON(map[string]any{"volume": 11}))

	var got []diag.Diagnostic
	for range 2 {
		var m diag.Diagnostic
		d.SetReadDeadline(time.Now().Add(time.Second))
		require.NoError(t, d.ReadJSON(&m))
		got = append(got, m)
	}
	assert.Equal(t, "COMPOSITION.UNKNOWN", got[0].Code)
	assert.Equal(t, diag.Warn, got[0].Severity)
	assert.Equal(t, "CONTROL.UNKNOWN", got[1].Code)
	assert.Equal(t, []any{"volume"}, got[1].Evidence["keys"])
}

func TestConcurrentDiagnostics(t *testing.T) {
	s, _, srv := serve(t)
	d := dial(t, srv, "/diag")
	require.Eventually(t, func() bool { return count(s, func() map[*websocket.Conn]*peer { return s.diagClients }) == 1 },
		time.Second, 5*time.Millisecond)

	const writers, each = 8, 50
	received := make(chan int, 1)
	go func() {
		n := 0
		for n < writers*each {
			d.SetReadDeadline(time.Now().Add(2 * time.Second))
			if _, _, err := d.ReadMessage(); err != nil {
				break
			}
			n++
		}
		received <- n
	}()

	var wg sync.WaitGroup
	for w := range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range each {
				s.Diag(diag.Diagnostic{Severity: diag.Info, Code: "FRAME.WRITE_FAILED",
					Evidence: map[string]any{"writer": w, "i": i}})
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, writers*each, <-received)
}

func TestHealthAndCurve(t *testing.T) {
	_, _, srv := serve(t)

	res, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer res.Body.Close()
	var h Health
	require.NoError(t, json.NewDecoder(res.Body).Decode(&h))
	assert.Equal(t, "MapInteraction", h.Engine.Preset)

	res2, err := http.Get(srv.URL + "/curve?progress=0.5")
	require.NoError(t, err)
	defer res2.Body.Close()
	b, err := io.ReadAll(res2.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res2.StatusCode)
	assert.Contains(t, string(b), "Time-axis warp")
	assert.Contains(t, string(b), "progress=0.50")
}
