package ws

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/coreman2200/funtimes-stcube/internal/chart"
	diag "github.com/coreman2200/funtimes-stcube/internal/diagnostics"
	"github.com/coreman2200/funtimes-stcube/internal/render"
	"github.com/coreman2200/funtimes-stcube/internal/stc"
)

// writeWait bounds every websocket write so a stalled client cannot hold
// the frame loop.
const writeWait = 200 * time.Millisecond

// Controller is the playback surface the control socket drives.
type Controller interface {
	Play()
	Pause()
	Seek(frame int)
	Load(composition string) error
	Override(name string, v float64)
	ClearOverrides()
	Status() render.Status
}

type State struct {
	mu  sync.RWMutex
	FPS int

	Ctl  Controller
	Warp stc.Warp

	frameID     uint64
	frame       int
	last        []byte
	startTime   time.Time
	clients     map[*websocket.Conn]*peer
	diagClients map[*websocket.Conn]*peer
	composition string
}

func NewState(fps int, ctl Controller) *State {
	return &State{
		FPS:         fps,
		Ctl:         ctl,
		Warp:        stc.TourWarp(),
		startTime:   time.Now(),
		clients:     map[*websocket.Conn]*peer{},
		diagClients: map[*websocket.Conn]*peer{},
	}
}

// peer serialises writes to one connection; gorilla allows a single writer.
type peer struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (p *peer) send(b []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return p.conn.WriteMessage(websocket.TextMessage, b)
}

// Mux wires every handler under its path.
func (s *State) Mux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.HandleFramesWS)
	mux.HandleFunc("/diag", s.HandleDiagWS)
	mux.HandleFunc("/control", s.HandleControlWS)
	mux.HandleFunc("/health", s.HandleHealth)
	mux.HandleFunc("/curve", s.HandleCurve)
	return mux
}

// frameMsg is the JSON frame pushed to /ws clients.
type frameMsg struct {
	T       int64  `json:"t"`
	FrameID uint64 `json:"frame_id"`
	Frame   int    `json:"frame"`
	*render.DrawList
}

// Write implements render.Driver: the frame is encoded once and broadcast.
func (s *State) Write(frame int, dl *render.DrawList) error {
	s.mu.Lock()
	s.frameID++
	s.frame = frame
	id := s.frameID
	s.mu.Unlock()

	b, err := json.Marshal(frameMsg{
		T:        time.Now().UnixNano(),
		FrameID:  id,
		Frame:    frame,
		DrawList: dl,
	})
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.last = b
	s.mu.Unlock()
	s.broadcastFrame(b)
	return nil
}

func upgrader() websocket.Upgrader {
	return websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
}

func (s *State) HandleFramesWS(w http.ResponseWriter, r *http.Request) {
	up := upgrader()
	conn, err := up.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	p := &peer{conn: conn}
	s.mu.Lock()
	s.clients[conn] = p
	if s.last != nil {
		_ = p.send(s.last)
	}
	s.mu.Unlock()
	go s.drain(conn, s.clients)
}

func (s *State) HandleDiagWS(w http.ResponseWriter, r *http.Request) {
	up := upgrader()
	conn, err := up.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	s.mu.Lock()
	s.diagClients[conn] = &peer{conn: conn}
	s.mu.Unlock()
	go s.drain(conn, s.diagClients)
}

// drain reads until the peer goes away, then forgets it.
func (s *State) drain(conn *websocket.Conn, set map[*websocket.Conn]*peer) {
	defer func() {
		s.mu.Lock()
		delete(set, conn)
		s.mu.Unlock()
		conn.Close()
	}()
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (s *State) HandleControlWS(w http.ResponseWriter, r *http.Request) {
	up := upgrader()
	conn, err := up.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var msg map[string]any
		if err := json.Unmarshal(data, &msg); err != nil {
			s.pushDiag(diag.Diagnostic{
				Severity: diag.Warn, Code: "CONTROL.BAD_JSON", Summary: "Control message is not JSON",
				Detail: err.Error(),
			})
			continue
		}
		s.applyControl(msg)
		s.sendStatus(conn)
	}
}

// Health is the /health payload.
type Health struct {
	FrameID     uint64        `json:"frame_id"`
	Frame       int           `json:"frame"`
	UptimeS     float64       `json:"uptime_s"`
	FPS         int           `json:"fps"`
	Clients     int           `json:"clients"`
	Composition string        `json:"composition,omitempty"`
	Engine      render.Status `json:"engine"`
}

func (s *State) health() Health {
	s.mu.RLock()
	h := Health{
		FrameID:     s.frameID,
		Frame:       s.frame,
		UptimeS:     time.Since(s.startTime).Seconds(),
		FPS:         s.FPS,
		Clients:     len(s.clients),
		Composition: s.composition,
	}
	ctl := s.Ctl
	s.mu.RUnlock()
	if ctl != nil {
		h.Engine = ctl.Status()
	}
	return h
}

func (s *State) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(s.health())
}

// HandleCurve serves the warp curves as an echarts page. ?progress= picks
// the blend, default 1.
func (s *State) HandleCurve(w http.ResponseWriter, r *http.Request) {
	progress := 1.0
	if v := r.URL.Query().Get("progress"); v != "" {
		var p float64
		if err := json.Unmarshal([]byte(v), &p); err == nil {
			progress = p
		}
	}
	s.mu.RLock()
	warp := s.Warp
	s.mu.RUnlock()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := chart.WarpLineChart(w, warp, "Time-axis warp", progress); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// SetComposition records the loaded composition for /health.
func (s *State) SetComposition(name string) {
	s.mu.Lock()
	s.composition = name
	s.mu.Unlock()
}

func (s *State) applyControl(msg map[string]any) {
	ctl := s.Ctl
	if ctl == nil {
		s.pushDiag(diag.Diagnostic{Severity: diag.Err, Code: "CONTROL.NO_PLAYER", Summary: "No player attached"})
		return
	}
	known := false
	if v, ok := msg["composition"].(string); ok {
		known = true
		if err := ctl.Load(v); err != nil {
			s.pushDiag(diag.Diagnostic{
				Severity: diag.Warn, Code: "COMPOSITION.UNKNOWN", Summary: "Unknown composition",
				Detail:         err.Error(),
				SuggestedFixes: []string{"use one of the names listed by stcube -list"},
				Evidence:       map[string]any{"name": v},
			})
		} else {
			s.SetComposition(v)
			s.pushDiag(diag.Diagnostic{Severity: diag.Info, Code: "COMPOSITION.LOADED", Summary: "Composition loaded", Detail: v})
		}
	}
	if v, ok := msg["seek"].(float64); ok {
		known = true
		ctl.Seek(int(v))
	}
	if v, ok := msg["play"].(bool); ok {
		known = true
		if v {
			ctl.Play()
		} else {
			ctl.Pause()
		}
	}
	if v, ok := msg["pause"].(bool); ok && v {
		known = true
		ctl.Pause()
	}
	if v, exists := msg["warp"]; exists {
		known = true
		switch w := v.(type) {
		case float64:
			ctl.Override("Warp", clamp(w, 0, 1))
		case nil:
			ctl.ClearOverrides()
		}
	}
	if v, ok := msg["clear"].(bool); ok && v {
		known = true
		ctl.ClearOverrides()
	}
	if !known {
		keys := make([]string, 0, len(msg))
		for k := range msg {
			keys = append(keys, k)
		}
		s.pushDiag(diag.Diagnostic{
			Severity: diag.Warn, Code: "CONTROL.UNKNOWN", Summary: "Unknown control message",
			LikelyCauses: []string{"client and server versions differ"},
			Evidence:     map[string]any{"keys": keys},
		})
	}
}

func (s *State) sendStatus(conn *websocket.Conn) {
	b, _ := json.Marshal(s.health())
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	_ = conn.WriteMessage(websocket.TextMessage, b)
}

func (s *State) broadcastFrame(b []byte) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.clients {
		if err := p.send(b); err != nil {
			log.Debug().Err(err).Msg("write frame")
		}
	}
}

// Diag pushes a diagnostic to /diag subscribers.
func (s *State) Diag(d diag.Diagnostic) { s.pushDiag(d) }

func (s *State) pushDiag(d diag.Diagnostic) {
	d.Log()
	b, _ := json.Marshal(d)
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.diagClients {
		_ = p.send(b)
	}
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
