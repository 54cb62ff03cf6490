package reports

import (
	"context"
	"fmt"
	"strings"

	"github.com/Ferxas/chris-hotel-web-app/internal/apperr"
	"github.com/Ferxas/chris-hotel-web-app/internal/model"
	"github.com/Ferxas/chris-hotel-web-app/internal/parse"
	"github.com/Ferxas/chris-hotel-web-app/internal/store"
)

// Status selects reports by resolution.
type Status string

const (
	StatusAll      Status = "all"
	StatusPending  Status = "pending"
	StatusResolved Status = "resolved"
)

// ParseStatus maps the query value to a Status. Empty means all.
func ParseStatus(raw string) (Status, error) {
	switch s := Status(strings.ToLower(strings.TrimSpace(raw))); s {
	case "":
		return StatusAll, nil
	case StatusAll, StatusPending, StatusResolved:
		return s, nil
	}
	return "", apperr.NewValidationError("status", fmt.Sprintf("unknown status %q", raw))
}

// Filter narrows a report listing.
type Filter struct {
	Room   string
	Status Status
}

// View is a report together with its derived priority.
type View struct {
	model.ProblemReport
	Priority parse.Priority `json:"priority"`
}

func newView(r model.ProblemReport) View {
	return View{ProblemReport: r, Priority: parse.ClassifyPriority(r.Description)}
}

// List returns reports newest first. Room is a substring match on the number.
func (s *Service) List(ctx context.Context, f Filter) ([]View, error) {
	var q store.ReportQuery
	switch f.Status {
	case StatusPending:
		resolved := false
		q.Resolved = &resolved
	case StatusResolved:
		resolved := true
		q.Resolved = &resolved
	}

	reports, err := s.store.ListReports(ctx, q)
	if err != nil {
		return nil, err
	}
	room := strings.TrimSpace(f.Room)
	views := make([]View, 0, len(reports))
	for _, r := range reports {
		if room != "" && !strings.Contains(r.RoomNumber, room) {
			continue
		}
		views = append(views, newView(r))
	}
	return views, nil
}

// RoomEntry is one room on the maintenance board.
type RoomEntry struct {
	Room     model.Room      `json:"room"`
	Reports  []View          `json:"reports"`
	Priority *parse.Priority `json:"priority"`
}

// Board is the maintenance board: every room with its unresolved reports,
// plus the unresolved reports whose room number matches no room.
type Board struct {
	Rooms   []RoomEntry `json:"rooms"`
	Orphans []View      `json:"orphans"`
}

// Board groups unresolved reports by room number. A room's priority is the
// priority of its most recent unresolved report, not the most severe one.
// Rooms sharing a number all receive the same reports.
func (s *Service) Board(ctx context.Context, onlyWithReports bool) (Board, error) {
	rooms, err := s.store.ListRooms(ctx)
	if err != nil {
		return Board{}, err
	}
	pending, err := s.List(ctx, Filter{Status: StatusPending})
	if err != nil {
		return Board{}, err
	}

	byNumber := make(map[string][]View)
	for _, v := range pending {
		byNumber[v.RoomNumber] = append(byNumber[v.RoomNumber], v)
	}

	board := Board{Rooms: []RoomEntry{}, Orphans: []View{}}
	known := make(map[string]bool, len(rooms))
	for _, room := range rooms {
		known[room.Number] = true
		views := byNumber[room.Number]
		if onlyWithReports && len(views) == 0 {
			continue
		}
		entry := RoomEntry{Room: room, Reports: views}
		if entry.Reports == nil {
			entry.Reports = []View{}
		}
		if len(views) > 0 {
			p := views[0].Priority
			entry.Priority = &p
		}
		board.Rooms = append(board.Rooms, entry)
	}
	for _, v := range pending {
		if !known[v.RoomNumber] {
			board.Orphans = append(board.Orphans, v)
		}
	}
	return board, nil
}
