package audit

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/ogtechminds/orgchart/internal/members"
)

// Entry is a single audit trail record of a member change.
type Entry struct {
	ID        string         `json:"id"`
	Timestamp time.Time      `json:"timestamp"`
	Actor     string         `json:"actor"`
	Action    members.Action `json:"action"`
	MemberID  string         `json:"member_id,omitempty"`
	Team      string         `json:"team,omitempty"`
	Summary   string         `json:"summary"`
}

// Recorder turns member changes into audit entries.
type Recorder struct {
	store *Store
}

// NewRecorder creates a Recorder writing to store.
func NewRecorder(store *Store) *Recorder {
	return &Recorder{store: store}
}

// MemberChanged implements members.Observer. A failed write is logged;
// the member change itself has already been committed.
func (r *Recorder) MemberChanged(ctx context.Context, c members.Change) {
	e := Entry{
		Actor:    c.Actor,
		Action:   c.Action,
		MemberID: c.Member.ID,
		Team:     c.Member.Team,
		Summary:  summarize(c),
	}
	if err := r.store.Log(ctx, e); err != nil {
		log.Printf("audit: %v", err)
	}
}

func summarize(c members.Change) string {
	switch c.Action {
	case members.ActionCreated:
		return fmt.Sprintf("added %s (%s) to %s", c.Member.Name, c.Member.Role, c.Member.Team)
	case members.ActionUpdated:
		if len(c.Teams) > 1 {
			return fmt.Sprintf("moved %s from %s to %s", c.Member.Name, c.Teams[1], c.Teams[0])
		}
		return fmt.Sprintf("updated %s in %s", c.Member.Name, c.Member.Team)
	case members.ActionDeleted:
		return fmt.Sprintf("removed %s from %s", c.Member.Name, c.Member.Team)
	case members.ActionImported:
		return fmt.Sprintf("imported %d member(s) into %v", c.Count, c.Teams)
	default:
		return string(c.Action)
	}
}
