// Package stats derives aggregate statistics and badges from finished
// missions
package stats

import (
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/ayoisaiah/guardian/internal/timeutil"
)

// HistoryLimit is the number of mission records retained.
const HistoryLimit = 10

// DefaultUserName is used when no profile name has been configured.
const DefaultUserName = "Guardian"

// MissionRecord is an immutable history entry for a finished mission.
type MissionRecord struct {
	EndedAt         time.Time `json:"ended_at"         yaml:"ended_at"`
	ID              string    `json:"id"               yaml:"id"`
	Task            string    `json:"task"             yaml:"task"`
	DurationMinutes int       `json:"duration_minutes" yaml:"duration_minutes"`
	Completed       bool      `json:"completed"        yaml:"completed"`
}

// Profile holds the aggregate statistics of the player.
type Profile struct {
	LastFocusDay      time.Time `json:"last_focus_day"      yaml:"last_focus_day"`
	UserName          string    `json:"user_name"           yaml:"user_name"`
	CompletedMissions int       `json:"completed_missions"  yaml:"completed_missions"`
	AbortedMissions   int       `json:"aborted_missions"    yaml:"aborted_missions"`
	TotalFocusMinutes int       `json:"total_focus_minutes" yaml:"total_focus_minutes"`
	BestFocusMinutes  int       `json:"best_focus_minutes"  yaml:"best_focus_minutes"`
	FocusStreakDays   int       `json:"focus_streak_days"   yaml:"focus_streak_days"`
	TotalRestPeriods  int       `json:"total_rest_periods"  yaml:"total_rest_periods"`
}

// Ledger owns the profile and mission history. It is the only place where
// either is mutated.
type Ledger struct {
	now     func() time.Time
	newID   func() string
	history []MissionRecord
	profile Profile
}

// LedgerOption customises a Ledger.
type LedgerOption func(*Ledger)

// WithClock sets the time source used to stamp records and track streaks.
func WithClock(now func() time.Time) LedgerOption {
	return func(l *Ledger) {
		l.now = now
	}
}

// WithIDGenerator sets the function used to create record IDs.
func WithIDGenerator(fn func() string) LedgerOption {
	return func(l *Ledger) {
		l.newID = fn
	}
}

// NewLedger creates an empty ledger for the named user.
func NewLedger(userName string, opts ...LedgerOption) *Ledger {
	l := &Ledger{
		now:   time.Now,
		newID: uuid.NewString,
	}

	for _, opt := range opts {
		opt(l)
	}

	l.SetUserName(userName)

	return l
}

// SetUserName renames the profile. Blank names fall back to the default.
func (l *Ledger) SetUserName(name string) {
	if name == "" {
		name = DefaultUserName
	}

	l.profile.UserName = name
}

// RecordCompletion folds a successfully completed mission into the profile
// and history.
func (l *Ledger) RecordCompletion(task string, minutes int) MissionRecord {
	rec := l.record(task, minutes, true)

	p := &l.profile
	p.CompletedMissions++
	p.TotalFocusMinutes += minutes
	p.BestFocusMinutes = max(p.BestFocusMinutes, minutes)

	switch {
	case p.LastFocusDay.IsZero():
		p.FocusStreakDays = 1
	case timeutil.SameDay(p.LastFocusDay, rec.EndedAt):
	case timeutil.NextDay(p.LastFocusDay, rec.EndedAt):
		p.FocusStreakDays++
	default:
		p.FocusStreakDays = 1
	}

	p.LastFocusDay = timeutil.RoundToStart(rec.EndedAt)

	return rec
}

// RecordAbort appends a mission that was ended early. Completion aggregates
// are left untouched.
func (l *Ledger) RecordAbort(task string, minutes int) MissionRecord {
	rec := l.record(task, minutes, false)

	l.profile.AbortedMissions++

	return rec
}

// RecordRest counts a finished rest period.
func (l *Ledger) RecordRest() {
	l.profile.TotalRestPeriods++
}

func (l *Ledger) record(task string, minutes int, completed bool) MissionRecord {
	rec := MissionRecord{
		ID:              l.newID(),
		Task:            task,
		DurationMinutes: minutes,
		Completed:       completed,
		EndedAt:         l.now(),
	}

	l.history = slices.Insert(l.history, 0, rec)
	if len(l.history) > HistoryLimit {
		l.history = l.history[:HistoryLimit]
	}

	return rec
}

// Profile returns a copy of the current profile.
func (l *Ledger) Profile() Profile {
	return l.profile
}

// History returns the retained records, most recent first.
func (l *Ledger) History() []MissionRecord {
	return slices.Clone(l.history)
}

// Badges evaluates the badge table against the current profile.
func (l *Ledger) Badges() []Badge {
	return DeriveBadges(l.profile)
}

// Report assembles the current profile, history and badges.
func (l *Ledger) Report() Report {
	return Report{
		Profile: l.Profile(),
		History: l.History(),
		Badges:  l.Badges(),
	}
}
