// Command tackwave-server exposes the wavefront solver over a websocket for
// browser-side mesh inspection: a client sends wave parameters as JSON and
// receives the solved mesh back. Solves run on a worker pool so several
// connected clients (or several wave trains from one client) are serviced
// concurrently.
package main

import (
	"flag"
	"log"
	"net/http"
	"runtime"

	"github.com/gorilla/websocket"

	"github.com/simonbw/tack-and-trim-sub009/internal/config"
	"github.com/simonbw/tack-and-trim-sub009/internal/meshing"
	"github.com/simonbw/tack-and-trim-sub009/internal/solver"
	"github.com/simonbw/tack-and-trim-sub009/internal/terrain"
	"github.com/simonbw/tack-and-trim-sub009/internal/wave"
)

// SolveRequest is the client's wave and terrain selection.
type SolveRequest struct {
	Wavelength float64 `json:"wavelength"`
	Direction  float64 `json:"direction"` // radians
	Tide       float64 `json:"tide"`
	Seed       int64   `json:"seed"`
}

// MeshMessage is the solved mesh plus enough metadata to place it.
type MeshMessage struct {
	Type      string    `json:"type"`
	Vertices  []float32 `json:"vertices"` // x, y, amplitude, direction, phase, blend per vertex
	Indices   []uint32  `json:"indices"`
	Stride    int       `json:"stride"`
	OriginX   float64   `json:"originX"`
	OriginY   float64   `json:"originY"`
	Spacing   float64   `json:"spacing"`
	Cols      int       `json:"cols"`
	Rows      int       `json:"rows"`
	Triangles int       `json:"triangles"`
}

// ErrorMessage reports a rejected request.
type ErrorMessage struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // local tooling, not a public service
	},
}

func main() {
	var (
		addr    = flag.String("addr", "localhost:8089", "Listen address")
		workers = flag.Int("workers", runtime.NumCPU(), "Concurrent solves")
	)
	flag.Parse()

	pool := solver.NewPool(*workers, *workers*2)
	defer pool.Shutdown()

	http.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		handleClient(pool, w, r)
	})

	log.Printf("listening on ws://%s/ws", *addr)
	log.Fatal(http.ListenAndServe(*addr, nil))
}

func handleClient(pool *solver.Pool, w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("upgrade: %v", err)
		return
	}
	defer conn.Close()

	cfg := config.Default()
	for {
		var req SolveRequest
		if err := conn.ReadJSON(&req); err != nil {
			return // client went away
		}
		if req.Wavelength <= 0 {
			conn.WriteJSON(ErrorMessage{Type: "error", Error: "wavelength must be positive"})
			continue
		}

		field := terrain.NewIsland(req.Seed, 2000, 120, 30)
		results := make(chan solver.Result, 1)
		pool.SubmitBlocking(solver.Job{
			Field:      field,
			Source:     wave.Source{Wavelength: req.Wavelength, Direction: req.Direction},
			Tide:       req.Tide,
			Config:     cfg,
			ResultChan: results,
		})
		res := <-results

		grid := res.Grid
		mesh := meshing.Build(grid, cfg)
		msg := MeshMessage{
			Type:      "mesh",
			Vertices:  mesh.Vertices,
			Indices:   mesh.Indices,
			Stride:    meshing.VertexStride,
			OriginX:   grid.Origin[0],
			OriginY:   grid.Origin[1],
			Spacing:   grid.Spacing,
			Cols:      grid.Cols,
			Rows:      grid.Rows,
			Triangles: mesh.TriangleCount(),
		}
		if err := conn.WriteJSON(msg); err != nil {
			log.Printf("write: %v", err)
			return
		}
	}
}
