package orgchart

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/ogtechminds/orgchart/internal/diagrams"
)

const (
	writeWait    = 10 * time.Second
	snapshotWait = 10 * time.Second
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// RegisterRoutes mounts the chart endpoints and the live feed.
func RegisterRoutes(r chi.Router, svc *Service, hub *Hub) {
	r.Get("/api/orgchart", chartJSON(svc))
	r.Get("/api/orgchart.svg", chartSVG(svc))
	r.Get("/api/orgchart.mmd", chartMermaid(svc))
	r.Get("/ws/orgchart", hub.serveWS)
}

func resolveTeam(w http.ResponseWriter, r *http.Request, svc *Service) (string, bool) {
	team, err := svc.ResolveTeam(r.URL.Query().Get("team"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return "", false
	}
	return team, true
}

func chartJSON(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		team, ok := resolveTeam(w, r, svc)
		if !ok {
			return
		}
		chart, err := svc.Chart(r.Context(), team)
		if err != nil {
			log.Printf("orgchart: %v", err)
			http.Error(w, "failed to build chart", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, newResponse(team, chart))
	}
}

func chartSVG(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		team, ok := resolveTeam(w, r, svc)
		if !ok {
			return
		}
		chart, err := svc.Chart(r.Context(), team)
		if err != nil {
			log.Printf("orgchart: %v", err)
			http.Error(w, "failed to build chart", http.StatusInternalServerError)
			return
		}
		opts := svc.Options()
		var out string
		if chart == nil {
			out = diagrams.EmptySVG(opts.Bounds, "No "+team+" members yet")
		} else {
			out = diagrams.SVG(chart, diagrams.SVGOptions{NodeRadius: opts.NodeRadius, Title: team})
		}
		w.Header().Set("Content-Type", "image/svg+xml")
		w.Write([]byte(out))
	}
}

func chartMermaid(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		team, ok := resolveTeam(w, r, svc)
		if !ok {
			return
		}
		root, err := svc.Tree(r.Context(), team)
		if err != nil {
			log.Printf("orgchart: %v", err)
			http.Error(w, "failed to build chart", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte(diagrams.Mermaid(root)))
	}
}

func (h *Hub) serveWS(w http.ResponseWriter, r *http.Request) {
	team, ok := resolveTeam(w, r, h.svc)
	if !ok {
		return
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("orgchart: websocket upgrade: %v", err)
		return
	}
	defer conn.Close()

	sub := h.Subscribe(team)
	defer h.Unsubscribe(sub)

	ctx, cancel := context.WithTimeout(context.Background(), snapshotWait)
	err = h.Snapshot(ctx, sub)
	cancel()
	if err != nil {
		log.Printf("orgchart: snapshot %s: %v", team, err)
		return
	}

	// The feed is one-way; reading only detects the client going away.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					log.Printf("orgchart: websocket read: %v", err)
				}
				return
			}
		}
	}()

	for {
		select {
		case <-closed:
			return
		case resp := <-sub.Updates():
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(resp); err != nil {
				if !errors.Is(err, websocket.ErrCloseSent) {
					log.Printf("orgchart: websocket write: %v", err)
				}
				return
			}
		}
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
