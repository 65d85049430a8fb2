package orgchart

import (
	"context"
	"errors"
	"fmt"

	"github.com/ogtechminds/orgchart/internal/hierarchy"
	"github.com/ogtechminds/orgchart/internal/members"
)

// ErrUnknownTeam is returned for a team tag that is not configured.
var ErrUnknownTeam = errors.New("unknown team")

// MemberLister is the part of the member store the chart service reads.
type MemberLister interface {
	List(ctx context.Context, f members.ListFilter) ([]members.Member, error)
}

// Options configures a Service.
type Options struct {
	Bounds      hierarchy.Bounds
	NodeRadius  float64
	Teams       []string
	DefaultTeam string
}

// Service builds and lays out per-team charts from stored members.
type Service struct {
	members MemberLister
	opts    Options
}

// NewService creates a chart service.
func NewService(store MemberLister, opts Options) *Service {
	return &Service{members: store, opts: opts}
}

// Options returns the service configuration.
func (s *Service) Options() Options { return s.opts }

// ResolveTeam maps an empty team to the default team and rejects tags
// that are not configured.
func (s *Service) ResolveTeam(team string) (string, error) {
	if team == "" {
		team = s.opts.DefaultTeam
	}
	for _, t := range s.opts.Teams {
		if t == team {
			return team, nil
		}
	}
	return "", fmt.Errorf("%w %q", ErrUnknownTeam, team)
}

// Tree builds the team's member tree. It returns nil when the team has
// no members.
func (s *Service) Tree(ctx context.Context, team string) (*hierarchy.Node, error) {
	ms, err := s.members.List(ctx, members.ListFilter{Team: team})
	if err != nil {
		return nil, fmt.Errorf("loading %s members: %w", team, err)
	}
	return hierarchy.Build(members.Records(ms)), nil
}

// Chart builds and lays out the team's chart. It returns nil when the
// team has no members; layout is skipped in that case.
func (s *Service) Chart(ctx context.Context, team string) (*hierarchy.Chart, error) {
	root, err := s.Tree(ctx, team)
	if err != nil {
		return nil, err
	}
	if root == nil {
		return nil, nil
	}
	return hierarchy.Layout(root, s.opts.Bounds), nil
}

// ChartResponse is the JSON shape served for a team chart, over HTTP
// and on the live feed.
type ChartResponse struct {
	Seq   uint64           `json:"seq,omitempty"`
	Team  string           `json:"team"`
	Empty bool             `json:"empty"`
	Chart *hierarchy.Chart `json:"chart"`
}

func newResponse(team string, chart *hierarchy.Chart) ChartResponse {
	return ChartResponse{Team: team, Empty: chart == nil, Chart: chart}
}
