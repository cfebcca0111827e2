package server

import (
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/AlonKellner-RedHat/ricochet-game-sub003/pkg/engine"
	"github.com/AlonKellner-RedHat/ricochet-game-sub003/pkg/sceneio"
	"github.com/AlonKellner-RedHat/ricochet-game-sub003/pkg/tracelog"
)

// upgrader accepts any origin: this is a local query tool, not a
// browser-facing multi-tenant service, so there is no session cookie
// an attacker's page could ride along.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// moveRequest is one subsequent websocket frame after the initial
// sceneRequest: a player and/or cursor move to apply to the session's
// engine.
type moveRequest struct {
	Player *point `json:"player,omitempty"`
	Cursor *point `json:"cursor,omitempty"`
}

// outboundMessage is everything the session loop ever pushes back: a
// trajectory result after each move, a fanned-out console log line, or
// a fatal setup error, tagged by Type the way the teacher's console
// stream tagged frames by kind.
type outboundMessage struct {
	Type   string                  `json:"type"`
	Error  string                  `json:"error,omitempty"`
	Result map[string]interface{}  `json:"result,omitempty"`
	Log    *tracelog.ConsoleMessage `json:"log,omitempty"`
}

// handleWebsocket upgrades the connection, reads one sceneRequest to
// establish the session's Engine, then alternates pushing
// on_results_changed/log frames out with reading moveRequest frames
// in until the client disconnects. Grounded on the teacher's
// web/server console websocket, generalized from "stream render
// progress lines" to "stream query results plus log lines for one
// engine session".
func (s *Server) handleWebsocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Printf("server: websocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	var initial sceneRequest
	if err := conn.ReadJSON(&initial); err != nil {
		s.logger.Printf("server: websocket read initial scene: %v", err)
		return
	}

	doc, err := resolveDoc(initial)
	if err != nil {
		_ = conn.WriteJSON(outboundMessage{Type: "error", Error: err.Error()})
		return
	}
	scene, err := sceneio.Build(doc)
	if err != nil {
		_ = conn.WriteJSON(outboundMessage{Type: "error", Error: err.Error()})
		return
	}

	e := buildEngine(scene)
	consoleCh := make(chan tracelog.ConsoleMessage, 16)
	sessionLogger := tracelog.NewConsoleLogger(e.ID().String(), consoleCh)
	sessionLogger.Printf("server: session %s started on scene %q", e.ID(), doc.Name)

	out := make(chan outboundMessage, 16)
	e.OnResultsChanged(func() {
		out <- outboundMessage{Type: "result", Result: resultPayload(e)}
	})
	out <- outboundMessage{Type: "result", Result: resultPayload(e)}

	go func() {
		for {
			select {
			case msg := <-out:
				if err := conn.WriteJSON(msg); err != nil {
					return
				}
			case line := <-consoleCh:
				if err := conn.WriteJSON(outboundMessage{Type: "log", Log: &line}); err != nil {
					return
				}
			}
		}
	}()

	for {
		var mv moveRequest
		if err := conn.ReadJSON(&mv); err != nil {
			return
		}
		if mv.Player != nil {
			e.SetPlayer(mv.Player.vec())
		}
		if mv.Cursor != nil {
			e.SetCursor(mv.Cursor.vec())
		}
	}
}

// resultPayload flattens e's current trajectory into the same shape
// the CLI's trajectory command and POST /api/trajectory print.
func resultPayload(e *engine.Engine) map[string]interface{} {
	result := e.GetFullTrajectory()
	return map[string]interface{}{
		"reachedCursor":  result.Merged.ReachedCursor,
		"fullyAligned":   result.Merged.FullyAligned,
		"diverged":       result.Merged.Diverged,
		"segments":       len(result.Merged.Segments),
		"arrowWaypoints": result.ArrowWaypoints,
	}
}
