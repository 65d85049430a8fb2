package members

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Handler serves the member REST API.
type Handler struct {
	store     *Store
	teams     []string
	observers []Observer
}

// NewHandler creates a Handler. teams is the set of accepted team tags.
func NewHandler(store *Store, teams []string, observers ...Observer) *Handler {
	return &Handler{store: store, teams: teams, observers: observers}
}

// RegisterRoutes mounts member and team endpoints on the given router.
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Get("/api/teams", h.listTeams)
	r.Get("/api/members", h.listMembers)
	r.Get("/api/members/{id}", h.getMember)
	r.Post("/api/members", h.createMember)
	r.Put("/api/members/{id}", h.updateMember)
	r.Delete("/api/members/{id}", h.deleteMember)
}

func (h *Handler) notify(r *http.Request, c Change) {
	c.Actor = actor(r)
	for _, o := range h.observers {
		o.MemberChanged(r.Context(), c)
	}
}

// actor identifies who made a change. Authentication lives in front of
// this service, which forwards the user in X-Actor.
func actor(r *http.Request) string {
	if a := r.Header.Get("X-Actor"); a != "" {
		return a
	}
	return "anonymous"
}

func (h *Handler) listTeams(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"teams": h.teams})
}

func (h *Handler) listMembers(w http.ResponseWriter, r *http.Request) {
	ms, err := h.store.List(r.Context(), ListFilter{Team: r.URL.Query().Get("team")})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if ms == nil {
		ms = []Member{}
	}
	writeJSON(w, http.StatusOK, memberList{Members: ms})
}

func (h *Handler) getMember(w http.ResponseWriter, r *http.Request) {
	m, err := h.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "member not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (h *Handler) createMember(w http.ResponseWriter, r *http.Request) {
	var m Member
	if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := Validate(m, h.teams); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if m.ID != "" {
		if _, err := h.store.Get(r.Context(), m.ID); err == nil {
			http.Error(w, "member already exists", http.StatusConflict)
			return
		}
	}
	if err := h.store.Create(r.Context(), &m); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	h.notify(r, Change{Action: ActionCreated, Member: m, Teams: []string{m.Team}, Count: 1})
	writeJSON(w, http.StatusCreated, m)
}

func (h *Handler) updateMember(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	prev, err := h.store.Get(r.Context(), id)
	if err != nil {
		http.Error(w, "member not found", http.StatusNotFound)
		return
	}

	var m Member
	if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	m.ID = id
	if err := Validate(m, h.teams); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.store.Update(r.Context(), &m); err != nil {
		http.Error(w, "member not found", http.StatusNotFound)
		return
	}
	m.Position = prev.Position
	m.CreatedAt = prev.CreatedAt

	teams := []string{m.Team}
	if prev.Team != m.Team {
		teams = append(teams, prev.Team)
	}
	h.notify(r, Change{Action: ActionUpdated, Member: m, Teams: teams, Count: 1})
	writeJSON(w, http.StatusOK, m)
}

func (h *Handler) deleteMember(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	prev, err := h.store.Get(r.Context(), id)
	if err != nil {
		http.Error(w, "member not found", http.StatusNotFound)
		return
	}
	if err := h.store.Delete(r.Context(), id); err != nil {
		http.Error(w, "member not found", http.StatusNotFound)
		return
	}
	h.notify(r, Change{Action: ActionDeleted, Member: *prev, Teams: []string{prev.Team}, Count: 1})
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
