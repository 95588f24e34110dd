package tracking

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/baderkothman/admin-dashboard/internal/config"
	"github.com/google/uuid"
)

// Report is one location report from a mobile client. InsideZone is the
// client's tri-state opinion on whether it is inside its geofence: true,
// false, or nil for "no opinion".
type Report struct {
	UserID     int64
	Latitude   float64
	Longitude  float64
	InsideZone *bool
}

// Result is the outcome of a successfully processed report. Ignored is true
// when the user is an admin and the report was deliberately not recorded.
type Result struct {
	Ignored bool `json:"ignored"`
}

// Evaluator decides, for each incoming report, what the user's new location
// state is and whether a zone transition occurred. An alert is written for a
// transition exactly once: only when both the previous and the new status
// are definite and they differ.
type Evaluator struct {
	store Store
	mode  config.EvalMode
	now   func() time.Time

	// One mutex per user id serializes the read-compare-write sequence for
	// concurrent reports about the same user. Entries are never removed;
	// the user population is dashboard-scale.
	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func NewEvaluator(store Store, mode config.EvalMode) *Evaluator {
	return &Evaluator{
		store: store,
		mode:  mode,
		now:   time.Now,
		locks: make(map[int64]*sync.Mutex),
	}
}

// ReportLocation processes one report.
//
// Invalid input and unknown users fail before any write. Admin users are
// acknowledged but never tracked. For everyone else the location row is
// replaced and, if a definite-to-definite status change is detected, one
// alert is appended atomically with it.
func (e *Evaluator) ReportLocation(ctx context.Context, rep Report) (Result, error) {
	if rep.UserID <= 0 {
		return Result{}, fmt.Errorf("%w: user id must be positive", ErrInvalidInput)
	}
	if !isFinite(rep.Latitude) || !isFinite(rep.Longitude) {
		return Result{}, fmt.Errorf("%w: coordinates must be finite", ErrInvalidInput)
	}

	user, err := e.store.FindUser(ctx, rep.UserID)
	if err != nil {
		return Result{}, err
	}
	if user.Role == RoleAdmin {
		return Result{Ignored: true}, nil
	}

	unlock := e.lockUser(rep.UserID)
	defer unlock()

	previous := StatusUnknown
	if prev, err := e.store.GetLocation(ctx, rep.UserID); err != nil {
		return Result{}, err
	} else if prev != nil {
		previous = prev.InsideZone
	}

	next := e.nextStatus(user, rep)
	now := e.now()

	loc := Location{
		UserID:     rep.UserID,
		Latitude:   rep.Latitude,
		Longitude:  rep.Longitude,
		InsideZone: next,
		UpdatedAt:  now,
	}

	var alert *Alert
	if next.Known() && previous.Known() && next != previous {
		kind := KindExit
		if next == StatusInside {
			kind = KindEnter
		}
		alert = &Alert{
			ID:         uuid.NewString(),
			UserID:     rep.UserID,
			Kind:       kind,
			Latitude:   rep.Latitude,
			Longitude:  rep.Longitude,
			OccurredAt: now,
		}
	}

	if err := e.store.SaveReport(ctx, loc, alert); err != nil {
		return Result{}, err
	}
	return Result{}, nil
}

// nextStatus computes the status to persist. In client mode the report's
// hint is trusted as supplied. In server mode the hint is ignored and the
// status is derived from the user's stored zone; a user without a zone has
// no derivable status.
func (e *Evaluator) nextStatus(user User, rep Report) ZoneStatus {
	if e.mode == config.EvalServer {
		zone, ok := user.Zone()
		if !ok {
			return StatusUnknown
		}
		return statusFromBool(withinZone(zone, rep.Latitude, rep.Longitude))
	}
	return statusFromHint(rep.InsideZone)
}

func (e *Evaluator) lockUser(id int64) func() {
	e.mu.Lock()
	lock, ok := e.locks[id]
	if !ok {
		lock = &sync.Mutex{}
		e.locks[id] = lock
	}
	e.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
