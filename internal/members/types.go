package members

import (
	"context"
	"time"

	"github.com/ogtechminds/orgchart/internal/hierarchy"
)

// Member is a stored club member with its place in the reporting line.
type Member struct {
	ID          string    `json:"id" yaml:"id"`
	Name        string    `json:"name" yaml:"name"`
	Role        string    `json:"role" yaml:"role"`
	LinkedInURL string    `json:"linkedin_url,omitempty" yaml:"linkedin_url"`
	Team        string    `json:"team" yaml:"team"`
	ParentID    string    `json:"parent_id,omitempty" yaml:"parent_id"`
	Position    int       `json:"position" yaml:"-"`
	CreatedAt   time.Time `json:"created_at" yaml:"-"`
	UpdatedAt   time.Time `json:"updated_at" yaml:"-"`
}

// Record returns the chart input for this member.
func (m Member) Record() hierarchy.Member {
	return hierarchy.Member{
		ID:          m.ID,
		Name:        m.Name,
		Role:        m.Role,
		LinkedInURL: m.LinkedInURL,
		Team:        m.Team,
		ParentID:    m.ParentID,
	}
}

// Records converts members to chart input, keeping their order.
func Records(ms []Member) []hierarchy.Member {
	out := make([]hierarchy.Member, len(ms))
	for i, m := range ms {
		out[i] = m.Record()
	}
	return out
}

// ListFilter narrows List results. An empty Team lists every member.
type ListFilter struct {
	Team string
}

// Action names a kind of member change.
type Action string

const (
	ActionCreated  Action = "member_created"
	ActionUpdated  Action = "member_updated"
	ActionDeleted  Action = "member_deleted"
	ActionImported Action = "members_imported"
)

// Change describes one committed member mutation. Teams lists every team
// whose chart the change touches.
type Change struct {
	Action Action
	Actor  string
	Member Member
	Teams  []string
	Count  int
}

// Observer is told about every committed member change.
type Observer interface {
	MemberChanged(ctx context.Context, change Change)
}
