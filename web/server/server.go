// Package server exposes the ricochet engine over HTTP: one-shot JSON
// query endpoints, a websocket stream that pushes on_results_changed
// after every player/cursor move, and /healthz + /inspect for
// operability. Grounded on the teacher's web/server/{server,console,
// render,inspect}.go, which served a render's pixels over HTTP and its
// progress/console lines over a websocket from the same process; here
// the "render" is a trajectory/visibility query instead of an image.
package server

import (
	"encoding/json"
	"net/http"

	"github.com/AlonKellner-RedHat/ricochet-game-sub003/pkg/sceneio"
	"github.com/AlonKellner-RedHat/ricochet-game-sub003/pkg/tracelog"
)

// Server serves the ricochet HTTP + websocket surface. Each request
// resolves its own scene and builds its own *engine.Engine; the Server
// itself holds no scene state, mirroring the teacher's Server holding
// only the listen address and a logger while each render owned its
// own Raytracer.
type Server struct {
	addr   string
	logger tracelog.Logger
}

// NewServer creates a Server listening on addr. A nil logger falls
// back to tracelog.NewDefaultLogger.
func NewServer(addr string, logger tracelog.Logger) *Server {
	if logger == nil {
		logger = tracelog.NewDefaultLogger()
	}
	return &Server{addr: addr, logger: logger}
}

// Start registers every route and blocks serving on s.addr, the same
// shape as the teacher's Server.Start.
func (s *Server) Start() error {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealthz)
	mux.HandleFunc("/inspect", s.handleInspect)
	mux.HandleFunc("/api/trajectory", s.handleTrajectory)
	mux.HandleFunc("/api/visibility", s.handleVisibility)
	mux.HandleFunc("/ws", s.handleWebsocket)
	s.logger.Printf("server: listening on %s", s.addr)
	return http.ListenAndServe(s.addr, mux)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleInspect resolves ?scene= as a built-in scene name (a file path
// is not accepted here, since the server has no access to a caller's
// filesystem) and reports its shape without running a query,
// the same no-query debug surface as the teacher's inspect.go.
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("scene")
	if name == "" {
		name = "direct-shot"
	}
	doc, ok := sceneio.Builtin(name)
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unknown built-in scene " + name})
		return
	}
	scene, err := sceneio.Build(doc)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"name":           doc.Name,
		"surfaces":       len(scene.Surfaces),
		"chains":         len(scene.Chains),
		"hasBounds":      scene.Bounds != nil,
		"hasRangeLimit":  scene.RangeLimit != nil,
		"hasWindow":      scene.Window != nil,
		"maxReflections": scene.MaxReflections,
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
