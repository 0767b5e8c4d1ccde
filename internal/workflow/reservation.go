package workflow

import (
	"context"
	"errors"
	"log"
	"net/http"
	"sort"
	"sync"
	"time"

	"tastybites-web/internal/backend"
	"tastybites-web/internal/domain"
)

// TableCount is the number of physical tables in the dining room.
const TableCount = 20

// TableStatus is one slot in the table grid. Number is the 1-based id
// shown to the user and sent to the backend.
type TableStatus struct {
	Index    int  `json:"index"`
	Number   int  `json:"number"`
	Reserved bool `json:"reserved"`
	Selected bool `json:"selected"`
}

// ReservationConfirmation echoes what was booked, with 1-based table ids.
type ReservationConfirmation struct {
	Message string `json:"message"`
	Date    string `json:"date"`
	Time    string `json:"time"`
	Tables  []int  `json:"tables"`
}

// tableGrid is one user's view of the dining room: which tables they have
// seen confirmed and which they currently have selected.
type tableGrid struct {
	reserved [TableCount]bool
	selected map[int]bool
}

// ReservationWorkflow tracks a table grid and selection per user. Grids are
// never shared across users; the backend is authoritative for conflicts, and
// a rejected submission leaves the local grid untouched.
type ReservationWorkflow struct {
	mu        sync.Mutex
	grids     map[int]*tableGrid
	backend   ReservationBackend
	publisher ActivityPublisher
}

func NewReservationWorkflow(b ReservationBackend, publisher ActivityPublisher) *ReservationWorkflow {
	return &ReservationWorkflow{
		grids:     make(map[int]*tableGrid),
		backend:   b,
		publisher: publisher,
	}
}

// grid returns the user's grid, creating it on first access. Caller holds mu.
func (w *ReservationWorkflow) grid(userID int) *tableGrid {
	g, ok := w.grids[userID]
	if !ok {
		g = &tableGrid{selected: make(map[int]bool)}
		w.grids[userID] = g
	}
	return g
}

// ToggleTable flips the user's selection of an available table and reports
// the new selection state. Clicking a reserved table is a no-op.
func (w *ReservationWorkflow) ToggleTable(userID, index int) (bool, error) {
	if index < 0 || index >= TableCount {
		return false, errors.New("table index out of range")
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	g := w.grid(userID)
	if g.reserved[index] {
		return false, nil
	}
	if g.selected[index] {
		delete(g.selected, index)
		return false, nil
	}
	g.selected[index] = true
	return true, nil
}

// Tables returns the user's current grid.
func (w *ReservationWorkflow) Tables(userID int) []TableStatus {
	w.mu.Lock()
	defer w.mu.Unlock()

	g := w.grid(userID)
	tables := make([]TableStatus, TableCount)
	for i := 0; i < TableCount; i++ {
		tables[i] = TableStatus{
			Index:    i,
			Number:   i + 1,
			Reserved: g.reserved[i],
			Selected: g.selected[i],
		}
	}
	return tables
}

// Submit books the user's selected tables for the given date-time. On
// success the selected slots become reserved and the selection resets.
func (w *ReservationWorkflow) Submit(ctx context.Context, cookie string, sess domain.SessionState, when time.Time) (ReservationConfirmation, error) {
	if !sess.Authenticated {
		return ReservationConfirmation{}, ErrNotAuthenticated
	}

	w.mu.Lock()
	g := w.grid(sess.UserID)
	indices := make([]int, 0, len(g.selected))
	for index := range g.selected {
		indices = append(indices, index)
	}
	w.mu.Unlock()

	if len(indices) == 0 {
		return ReservationConfirmation{}, ErrNoTablesSelected
	}
	sort.Ints(indices)

	// 1-based ids on the wire, same as in the confirmation view.
	tables := make([]int, len(indices))
	for i, index := range indices {
		tables[i] = index + 1
	}

	req := domain.ReservationRequest{
		ReservationDate: when.Format("2006-01-02"),
		ReservationTime: when.Format("15:04:05"),
		TablesReserved:  tables,
	}

	message, err := w.backend.CreateReservation(ctx, cookie, req)
	if err != nil {
		var apiErr *backend.APIError
		if errors.As(err, &apiErr) {
			switch apiErr.Status {
			case http.StatusConflict:
				return ReservationConfirmation{}, ErrTablesConflict
			case http.StatusUnauthorized:
				return ReservationConfirmation{}, ErrNotAuthenticated
			}
		}
		return ReservationConfirmation{}, err
	}
	if ctx.Err() != nil {
		return ReservationConfirmation{}, ctx.Err()
	}

	w.mu.Lock()
	g = w.grid(sess.UserID)
	for _, index := range indices {
		g.reserved[index] = true
		delete(g.selected, index)
	}
	w.mu.Unlock()

	if message == "" {
		message = "Reservation confirmed."
	}

	if w.publisher != nil {
		event := domain.ActivityEvent{
			Type:      "reservation_confirmed",
			UserID:    sess.UserID,
			Tables:    tables,
			Timestamp: time.Now(),
		}
		if err := w.publisher.Publish(ctx, event); err != nil {
			log.Printf("[reservation] publishing activity event: %v", err)
		}
	}

	return ReservationConfirmation{
		Message: message,
		Date:    req.ReservationDate,
		Time:    req.ReservationTime,
		Tables:  tables,
	}, nil
}
