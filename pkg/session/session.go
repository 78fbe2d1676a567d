// Package session holds the state of one user session: the record window, the
// day plans, and the calendar cursor. A State is created by the caller and
// handed to every operation; there is no package-level instance.
package session

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"tableflip.dev/habits/pkg/calendar"
	"tableflip.dev/habits/pkg/day"
	"tableflip.dev/habits/pkg/plan"
	"tableflip.dev/habits/pkg/record"
)

// DefaultHabits is the habit set used when none is configured.
var DefaultHabits = []string{
	"Wake up early",
	"Drink water",
	"Study or read",
	"Exercise",
	"Sleep well",
}

// ErrUnknownHabit is returned when a check-in names a habit outside the set.
var ErrUnknownHabit = errors.New("session: unknown habit")

// Options configures a new State.
type Options struct {
	Habits []string
	Window int
	Seed   bool
	Now    func() time.Time
}

// State is the per-session state. It is not safe for concurrent use; callers
// that share it across goroutines serialize access themselves.
type State struct {
	Records *record.Store
	Plans   *plan.Store
	Cursor  calendar.Cursor
	Habits  []string

	now     func() time.Time
	checked map[string][]string
}

// CheckIn is the result of recording today's habits.
type CheckIn struct {
	Record  record.DailyRecord `json:"record"`
	Checked []string           `json:"checked"`
	Total   int                `json:"total"`
}

// New builds a session.
func New(opts Options) *State {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	habits := opts.Habits
	if len(habits) == 0 {
		habits = DefaultHabits
	}

	s := &State{
		Records: record.NewStore(opts.Window),
		Plans:   plan.NewStore(),
		Cursor:  calendar.NewCursor(now()),
		Habits:  slices.Clone(habits),
		now:     now,
		checked: map[string][]string{},
	}
	if opts.Seed {
		record.Seed(s.Records, day.Of(now()))
	}
	return s
}

// Today is the session's current day.
func (s *State) Today() time.Time {
	return day.Of(s.now())
}

// CheckIn records today's result for the checked habit labels and mood.
// Labels are matched case-insensitively against the habit set; duplicates
// count once.
func (s *State) CheckIn(checked []string, mood int) (CheckIn, error) {
	labels, err := s.resolve(checked)
	if err != nil {
		return CheckIn{}, err
	}
	return s.CheckInCount(labels, len(labels), mood), nil
}

// CheckInCount records today's result from a bare count of checked habits.
// labels may be empty when only the count is known.
func (s *State) CheckInCount(labels []string, count, mood int) CheckIn {
	total := len(s.Habits)
	count = min(max(count, 0), total)
	rate := record.AchievementRate(count, total)
	rec := s.Records.Upsert(s.Today(), rate, count, mood)
	if len(labels) > 0 {
		s.checked[day.Key(rec.Date)] = slices.Clone(labels)
	} else {
		delete(s.checked, day.Key(rec.Date))
	}
	return CheckIn{Record: rec, Checked: labels, Total: total}
}

// CheckedOn returns the habit labels of the last check-in on d, or nil when
// it was made from a bare count.
func (s *State) CheckedOn(d time.Time) []string {
	return slices.Clone(s.checked[day.Key(d)])
}

func (s *State) resolve(checked []string) ([]string, error) {
	out := make([]string, 0, len(checked))
	for _, c := range checked {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		i := slices.IndexFunc(s.Habits, func(h string) bool {
			return strings.EqualFold(h, c)
		})
		if i < 0 {
			return nil, fmt.Errorf("%w: %q", ErrUnknownHabit, c)
		}
		if !slices.Contains(out, s.Habits[i]) {
			out = append(out, s.Habits[i])
		}
	}
	return out, nil
}

// SelectedEntries returns the plan entries of the cursor's selected day.
func (s *State) SelectedEntries() []plan.Entry {
	return s.Plans.EntriesFor(s.Cursor.Selected)
}

// CalendarDays returns the render metadata of the cursor's displayed month.
func (s *State) CalendarDays() []calendar.Day {
	return calendar.Days(s.Cursor, s.Plans.Dates(), s.now())
}
