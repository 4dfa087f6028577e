package api

import (
	"context"
	"encoding/json"
	"errors"
	"image"
	"image/png"
	"log"
	"net/http"

	"github.com/matt-g-everett/pulsar/render"
	"github.com/matt-g-everett/pulsar/surface"
)

// Api serves previews and timing statistics of a running Pulsar.
type Api struct {
	pulsar  *render.Pulsar
	memory  *surface.Memory
	server  *http.Server
	handler http.Handler
}

// NewApi creates an Api on addr for pulsar drawing on memory.
func NewApi(addr string, pulsar *render.Pulsar, memory *surface.Memory) *Api {
	a := new(Api)
	a.pulsar = pulsar
	a.memory = memory

	mux := http.NewServeMux()
	mux.HandleFunc("/preview.png", a.handlePreview)
	mux.HandleFunc("/frame.png", a.handleFrame)
	mux.HandleFunc("/stats", a.handleStats)
	a.handler = mux
	a.server = &http.Server{Addr: addr, Handler: mux}

	return a
}

// Handler returns the HTTP handler for all routes.
func (a *Api) Handler() http.Handler {
	return a.handler
}

// Serve listens until Shutdown is called.
func (a *Api) Serve() error {
	log.Printf("Listening on %s...", a.server.Addr)
	if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops the server.
func (a *Api) Shutdown(ctx context.Context) error {
	return a.server.Shutdown(ctx)
}

// handlePreview renders the current animation state without advancing it.
func (a *Api) handlePreview(w http.ResponseWriter, r *http.Request) {
	width, height := a.memory.Size()
	if width == 0 || height == 0 {
		http.Error(w, render.ErrNoSurface.Error(), http.StatusServiceUnavailable)
		return
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	if err := a.pulsar.Preview(img); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writePng(w, img)
}

func (a *Api) handleFrame(w http.ResponseWriter, r *http.Request) {
	img, ok := a.memory.Snapshot()
	if !ok {
		http.Error(w, render.ErrNoSurface.Error(), http.StatusServiceUnavailable)
		return
	}
	writePng(w, img)
}

func (a *Api) handleStats(w http.ResponseWriter, r *http.Request) {
	body := struct {
		Running bool `json:"running"`
		render.Stats
	}{a.pulsar.Running(), a.pulsar.Stats()}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("Stats response failed: %v", err)
	}
}

func writePng(w http.ResponseWriter, img image.Image) {
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	if err := png.Encode(w, img); err != nil {
		log.Printf("PNG response failed: %v", err)
	}
}
