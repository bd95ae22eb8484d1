package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"net/http"

	"github.com/gorilla/websocket"

	"planetgen/internal/planet"
	"planetgen/internal/render"
)

// Request is a client message. Every field is optional; a seed or random seed
// is applied before any ratio, so ratios sent together with a seed win.
// Ratios are clamped to [0, 1].
type Request struct {
	Seed            *int64   `json:"seed,omitempty"`
	Random          bool     `json:"random,omitempty"`
	Radius          *float64 `json:"radius,omitempty"`
	Deformation     *float64 `json:"deformation,omitempty"`
	DeformationFreq *float64 `json:"deformation_freq,omitempty"`
	CaveDensity     *float64 `json:"cave_density,omitempty"`
}

// State describes the map sent in the binary frame that follows it.
type State struct {
	Type   string             `json:"type"`
	Name   string             `json:"name"`
	Seed   uint32             `json:"seed"`
	Ratios map[string]float64 `json:"ratios"`
	Size   int                `json:"size"`
	Counts map[string]int     `json:"counts"`
}

// ErrorMessage reports a rejected request; the previous map stays current.
type ErrorMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// WSHandler serves one planet per websocket connection.
type WSHandler struct {
	newPlanet func() *planet.Planet
	block     int
	upgrader  websocket.Upgrader
}

// NewWSHandler creates a handler; newPlanet is called once per connection and
// block is the PNG pixel size of one cell.
func NewWSHandler(newPlanet func() *planet.Planet, block int) *WSHandler {
	if block < 1 {
		block = 1
	}
	return &WSHandler{
		newPlanet: newPlanet,
		block:     block,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

func (h *WSHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("websocket upgrade:", err)
		return
	}
	defer conn.Close()

	ctx := r.Context()
	p := h.newPlanet()
	if err := h.generate(ctx, conn, p); err != nil {
		log.Println("websocket write:", err)
		return
	}
	for {
		var req Request
		if err := conn.ReadJSON(&req); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Println("websocket read:", err)
			}
			return
		}
		if err := Apply(p, req); err != nil {
			if err := conn.WriteJSON(ErrorMessage{Type: "error", Message: err.Error()}); err != nil {
				return
			}
			continue
		}
		if err := h.generate(ctx, conn, p); err != nil {
			log.Println("websocket write:", err)
			return
		}
	}
}

// generate regenerates p and sends the result. Generation failures are
// reported to the client; only write failures are returned.
func (h *WSHandler) generate(ctx context.Context, conn *websocket.Conn, p *planet.Planet) error {
	if err := p.Generate(ctx); err != nil {
		log.Printf("generate seed %d: %v", p.Seed(), err)
		return conn.WriteJSON(ErrorMessage{Type: "error", Message: err.Error()})
	}
	res := p.Result()
	img, err := render.PlanetImage(res.Map.Cells(), res.Size, render.Palette(p.Descriptors(), p.Background()), h.block)
	if err != nil {
		return conn.WriteJSON(ErrorMessage{Type: "error", Message: err.Error()})
	}
	var buf bytes.Buffer
	if err := render.EncodePNG(&buf, img); err != nil {
		return err
	}
	if err := conn.WriteJSON(StateOf(p)); err != nil {
		return err
	}
	return conn.WriteMessage(websocket.BinaryMessage, buf.Bytes())
}

// Apply updates p from req without generating. A rejected request leaves p
// untouched.
func Apply(p *planet.Planet, req Request) error {
	if req.Seed != nil && *req.Seed > math.MaxUint32 {
		return fmt.Errorf("seed %d out of range", *req.Seed)
	}
	ratios := []struct {
		key   string
		value *float64
	}{
		{planet.KeyRadius, req.Radius},
		{planet.KeyDeformation, req.Deformation},
		{planet.KeyDeformationFrequency, req.DeformationFreq},
		{planet.KeyCaveDensity, req.CaveDensity},
	}
	for _, r := range ratios {
		if r.value != nil && math.IsNaN(*r.value) {
			return fmt.Errorf("%s ratio must be a number", r.key)
		}
	}

	switch {
	case req.Seed != nil:
		p.SetSeed(uint32(max(*req.Seed, 1)))
	case req.Random:
		p.SetRandomSeed()
	}
	for _, r := range ratios {
		if r.value != nil {
			p.SetRatio(r.key, min(max(*r.value, 0), 1))
		}
	}
	return nil
}

// StateOf summarises p's configuration and last map.
func StateOf(p *planet.Planet) State {
	st := State{
		Type:   "state",
		Name:   p.Name(),
		Seed:   p.Seed(),
		Ratios: map[string]float64{},
		Counts: map[string]int{},
	}
	for _, key := range planet.RatioKeys() {
		st.Ratios[key], _ = p.Ratio(key)
	}
	if res := p.Result(); res != nil {
		st.Size = res.Size.W
		for tag, n := range res.Map.Count() {
			st.Counts[planet.Tag(tag).String()] = n
		}
	}
	return st
}

// PNGHandler renders a preset as a PNG: GET ?preset=planet&seed=42.
func PNGHandler(block int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		overrides := map[string]string{}
		if s := q.Get("seed"); s != "" {
			overrides["seed"] = s
		}
		cfg := planet.FromPreset(q.Get("preset"), overrides)
		res, err := planet.Generate(r.Context(), cfg)
		if err != nil {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		img, err := render.PlanetImage(res.Map.Cells(), res.Size, render.Palette(cfg.Descriptors, cfg.Background), max(block, 1))
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		if err := render.EncodePNG(w, img); err != nil {
			log.Println("png write:", err)
		}
	}
}

// NewMux wires the websocket endpoint and the PNG endpoint.
func NewMux(newPlanet func() *planet.Planet, block int) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/ws", NewWSHandler(newPlanet, block))
	mux.Handle("/planet.png", PNGHandler(block))
	mux.HandleFunc("/state", func(w http.ResponseWriter, r *http.Request) {
		p := newPlanet()
		if err := p.Generate(r.Context()); err != nil {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(StateOf(p)); err != nil {
			log.Println("state write:", err)
		}
	})
	return mux
}
