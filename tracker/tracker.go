// Package tracker runs the habit actions for the active user: add, delete and
// complete habits, publish the user's standing to the shared leaderboard, and
// fold pushed store snapshots back into the working state.
package tracker

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"habitboard/core/storage"
	"habitboard/errorvalues"
	"habitboard/leaderboard"
	"habitboard/lib/dates"
	"habitboard/models"
	"habitboard/scoring"
	"habitboard/session"
)

type Tracker struct {
	store   storage.DocumentStore
	session *session.Session
	log     zerolog.Logger

	mu    sync.RWMutex
	board models.Leaderboard
}

func New(store storage.DocumentStore, sess *session.Session, log zerolog.Logger) *Tracker {
	return &Tracker{
		store:   store,
		session: sess,
		log:     log.With().Str("component", "tracker").Logger(),
	}
}

// AddHabit appends a new habit to the active user's list. The 16th habit is
// rejected with ErrCapacityExceeded.
func (t *Tracker) AddHabit(ctx context.Context, title string, freq models.Frequency, intervalDays int) (models.Habit, error) {
	current := t.session.Current()
	if current == nil {
		return models.Habit{}, errorvalues.ErrNoActiveUser
	}
	if len(current.Habits) >= models.MaxHabits {
		return models.Habit{}, errorvalues.ErrCapacityExceeded
	}

	next := current.Clone()
	h := models.NewHabit(title, freq, intervalDays)
	next.Habits = append(next.Habits, h)

	if err := t.store.PutUser(ctx, next, storage.Merge); err != nil {
		return models.Habit{}, err
	}
	t.session.Refresh(next)
	return h, nil
}

// DeleteHabit removes a habit by its identifier.
func (t *Tracker) DeleteHabit(ctx context.Context, id string) error {
	current := t.session.Current()
	if current == nil {
		return errorvalues.ErrNoActiveUser
	}

	next := current.Clone()
	idx := habitIndex(next.Habits, id)
	if idx < 0 {
		return errorvalues.ErrNotFound
	}
	next.Habits = append(next.Habits[:idx], next.Habits[idx+1:]...)

	if err := t.store.PutUser(ctx, next, storage.Merge); err != nil {
		return err
	}
	t.session.Refresh(next)
	return nil
}

// CompleteHabit records one completion: the scoring engine recomputes the
// aggregates, the habit is stamped, the profile is persisted, and the user's
// new standing is pushed onto the shared leaderboard. The leaderboard push is
// a non-atomic read-reconcile-replace; two simultaneous completions by
// different users can race and one overwrite may clobber the other. That lost
// update is accepted and self-corrects on the next completion. A failed
// leaderboard write is logged and swallowed — the profile update stands.
func (t *Tracker) CompleteHabit(ctx context.Context, id string) (scoring.Result, error) {
	current := t.session.Current()
	if current == nil {
		return scoring.Result{}, errorvalues.ErrNoActiveUser
	}

	next := current.Clone()
	idx := habitIndex(next.Habits, id)
	if idx < 0 {
		return scoring.Result{}, errorvalues.ErrNotFound
	}

	today := dates.Today()
	result := scoring.ApplyCompletion(next, today)
	result.ApplyTo(next)
	scoring.MarkCompleted(&next.Habits[idx], today)

	if err := t.store.PutUser(ctx, next, storage.Merge); err != nil {
		return scoring.Result{}, err
	}
	t.session.Refresh(next)

	t.publishStanding(ctx, next)

	t.log.Info().
		Str("habit", next.Habits[idx].Title).
		Int("points", result.Points).
		Int("streak", result.Streak).
		Msg("habit completed")
	return result, nil
}

func (t *Tracker) publishStanding(ctx context.Context, p *models.UserProfile) {
	board, err := t.store.GetLeaderboard(ctx)
	if err != nil {
		t.log.Warn().Err(err).Msg("leaderboard read failed; standing not published")
		return
	}
	board.Players = leaderboard.Reconcile(board.Players, models.Snapshot(p))
	if err := t.store.PutLeaderboard(ctx, board); err != nil {
		t.log.Warn().Err(err).Msg("leaderboard write failed; standing not published")
		return
	}
	t.setBoard(*board)
}

// Leaderboard returns the cached copy of the shared top list.
func (t *Tracker) Leaderboard() models.Leaderboard {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.board
}

// SyncLeaderboard fetches the current leaderboard and refreshes the cache.
func (t *Tracker) SyncLeaderboard(ctx context.Context) (models.Leaderboard, error) {
	board, err := t.store.GetLeaderboard(ctx)
	if err != nil {
		return models.Leaderboard{}, err
	}
	t.setBoard(*board)
	return *board, nil
}

func (t *Tracker) setBoard(b models.Leaderboard) {
	t.mu.Lock()
	t.board = b
	t.mu.Unlock()
}

// Roster fetches the identity-selection roster. It needs no active user.
func (t *Tracker) Roster(ctx context.Context) (models.Roster, error) {
	roster, err := t.store.GetRoster(ctx)
	if err != nil {
		return models.Roster{}, err
	}
	return *roster, nil
}

// Watch subscribes to the active user's document and the leaderboard, folding
// every pushed snapshot into the working copies until the returned stop
// function is called.
func (t *Tracker) Watch(ctx context.Context) (func(), error) {
	current := t.session.Current()
	if current == nil {
		return nil, errorvalues.ErrNoActiveUser
	}

	users, stopUsers, err := t.store.WatchUser(ctx, current.Name)
	if err != nil {
		return nil, err
	}
	boards, stopBoards, err := t.store.WatchLeaderboard(ctx)
	if err != nil {
		stopUsers()
		return nil, err
	}

	go func() {
		for users != nil || boards != nil {
			select {
			case snap, ok := <-users:
				if !ok {
					users = nil
					continue
				}
				profile := snap
				t.session.Refresh(&profile)
			case board, ok := <-boards:
				if !ok {
					boards = nil
					continue
				}
				t.setBoard(board)
			}
		}
	}()

	return func() {
		stopUsers()
		stopBoards()
	}, nil
}

func habitIndex(habits []models.Habit, id string) int {
	for i := range habits {
		if habits[i].ID == id {
			return i
		}
	}
	return -1
}
