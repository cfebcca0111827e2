package server

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/AlonKellner-RedHat/ricochet-game-sub003/pkg/sceneio"
)

// trajectoryRequest is the POST /api/trajectory body: a scene plus
// optional player/cursor overrides applied after the scene's own.
type trajectoryRequest struct {
	sceneRequest
	Player *point `json:"player,omitempty"`
	Cursor *point `json:"cursor,omitempty"`
}

func (s *Server) handleTrajectory(w http.ResponseWriter, r *http.Request) {
	var req trajectoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	doc, err := resolveDoc(req.sceneRequest)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	scene, err := sceneio.Build(doc)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	e := buildEngine(scene)
	if req.Player != nil {
		e.SetPlayer(req.Player.vec())
	}
	if req.Cursor != nil {
		e.SetCursor(req.Cursor.vec())
	}

	result := e.GetFullTrajectory()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"reachedCursor":  result.Merged.ReachedCursor,
		"fullyAligned":   result.Merged.FullyAligned,
		"diverged":       result.Merged.Diverged,
		"segments":       len(result.Merged.Segments),
		"arrowWaypoints": result.ArrowWaypoints,
	})
}

// visibilityRequest is the POST /api/visibility body: a scene plus an
// optional query origin override (default: the scene's player).
type visibilityRequest struct {
	sceneRequest
	Origin *point `json:"origin,omitempty"`
}

func (s *Server) handleVisibility(w http.ResponseWriter, r *http.Request) {
	var req visibilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	doc, err := resolveDoc(req.sceneRequest)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	scene, err := sceneio.Build(doc)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	e := buildEngine(scene)
	origin := scene.Player
	if req.Origin != nil {
		origin = req.Origin.vec()
	}

	points := e.GetVisibility(origin, scene.Chains, scene.Bounds, "", scene.Window, scene.RangeLimit)
	writeJSON(w, http.StatusOK, points)
}
