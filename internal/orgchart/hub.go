package orgchart

import (
	"context"
	"log"
	"sync"

	"github.com/ogtechminds/orgchart/internal/members"
)

// Hub fans fresh charts out to live subscribers. Each subscriber holds
// at most one pending chart: a newer chart replaces an unsent older one,
// and a chart older than what the subscriber already got is dropped.
type Hub struct {
	svc *Service

	mu   sync.Mutex
	seq  uint64
	subs map[string]map[*Subscription]struct{}
}

// Subscription receives chart updates for one team.
type Subscription struct {
	team    string
	mailbox chan ChartResponse
	last    uint64
}

// Team returns the subscribed team.
func (s *Subscription) Team() string { return s.team }

// Updates delivers the latest chart for the team.
func (s *Subscription) Updates() <-chan ChartResponse { return s.mailbox }

// NewHub creates a Hub rendering charts with svc.
func NewHub(svc *Service) *Hub {
	return &Hub{svc: svc, subs: make(map[string]map[*Subscription]struct{})}
}

// Subscribe registers a subscriber for team.
func (h *Hub) Subscribe(team string) *Subscription {
	sub := &Subscription{team: team, mailbox: make(chan ChartResponse, 1)}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.subs[team] == nil {
		h.subs[team] = make(map[*Subscription]struct{})
	}
	h.subs[team][sub] = struct{}{}
	return sub
}

// Unsubscribe removes sub. Pending updates are discarded.
func (h *Hub) Unsubscribe(sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.subs[sub.team], sub)
	if len(h.subs[sub.team]) == 0 {
		delete(h.subs, sub.team)
	}
}

// Subscribers returns the number of live subscribers for team.
func (h *Hub) Subscribers(team string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs[team])
}

func (h *Hub) nextSeq() uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.seq++
	return h.seq
}

// render builds the team's chart stamped with a sequence number taken
// before the members are read, so a later stamp never carries older data.
func (h *Hub) render(ctx context.Context, team string) (ChartResponse, error) {
	seq := h.nextSeq()
	chart, err := h.svc.Chart(ctx, team)
	if err != nil {
		return ChartResponse{}, err
	}
	resp := newResponse(team, chart)
	resp.Seq = seq
	return resp, nil
}

// Refresh renders team and publishes it to every subscriber of team.
func (h *Hub) Refresh(ctx context.Context, team string) error {
	if h.Subscribers(team) == 0 {
		return nil
	}
	resp, err := h.render(ctx, team)
	if err != nil {
		return err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for sub := range h.subs[team] {
		sub.offer(resp)
	}
	return nil
}

// Snapshot renders team for a single subscriber, typically right after
// it subscribed.
func (h *Hub) Snapshot(ctx context.Context, sub *Subscription) error {
	resp, err := h.render(ctx, sub.team)
	if err != nil {
		return err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	sub.offer(resp)
	return nil
}

// MemberChanged implements members.Observer by refreshing every team the
// change touched.
func (h *Hub) MemberChanged(ctx context.Context, c members.Change) {
	for _, team := range c.Teams {
		if _, err := h.svc.ResolveTeam(team); err != nil {
			continue
		}
		if err := h.Refresh(ctx, team); err != nil {
			log.Printf("orgchart: refreshing %s: %v", team, err)
		}
	}
}

// offer must be called with the hub lock held; the hub is the only sender.
func (s *Subscription) offer(resp ChartResponse) {
	if resp.Seq <= s.last {
		return
	}
	s.last = resp.Seq
	select {
	case <-s.mailbox:
	default:
	}
	select {
	case s.mailbox <- resp:
	default:
	}
}
