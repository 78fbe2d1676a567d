// Package plan keeps the per-day agenda of hour-slotted entries.
package plan

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"tableflip.dev/habits/pkg/day"
)

// HoursPerDay is the number of slots in a day's agenda.
const HoursPerDay = 24

// ErrInvalid is matched by every ValidationError.
var ErrInvalid = errors.New("plan: invalid entry")

// ValidationError describes a rejected AddEntry input.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("plan: %s %s", e.Field, e.Reason)
}

// Is lets errors.Is(err, ErrInvalid) match any validation failure.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalid
}

// Entry is one slot of a day plan.
type Entry struct {
	Hour  int    `json:"hour"`
	Title string `json:"title"`
	Note  string `json:"note,omitempty"`
}

// Slot is one hour row of a full-day view. Entry is nil for an empty hour.
type Slot struct {
	Hour  int
	Entry *Entry
}

// Store maps a day to its entries, ordered by hour with one entry per hour.
// It is owned by a single session and is not safe for concurrent use.
type Store struct {
	days map[string][]Entry
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{days: make(map[string][]Entry)}
}

// AddEntry validates and stores an entry. An existing entry at the same hour
// is overwritten.
func (s *Store) AddEntry(date time.Time, hour int, title, note string) (Entry, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return Entry{}, &ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if hour < 0 || hour >= HoursPerDay {
		return Entry{}, &ValidationError{Field: "hour", Reason: fmt.Sprintf("%d out of range 0-%d", hour, HoursPerDay-1)}
	}

	e := Entry{Hour: hour, Title: title, Note: strings.TrimSpace(note)}
	key := day.Key(date)
	entries := s.days[key]
	for i := range entries {
		if entries[i].Hour == hour {
			entries[i] = e
			return e, nil
		}
	}
	entries = append(entries, e)
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Hour < entries[j].Hour
	})
	s.days[key] = entries
	return e, nil
}

// DeleteEntries removes the entries of date at any of hours. It returns how
// many entries were removed.
func (s *Store) DeleteEntries(date time.Time, hours ...int) int {
	key := day.Key(date)
	entries, ok := s.days[key]
	if !ok || len(hours) == 0 {
		return 0
	}
	drop := make(map[int]struct{}, len(hours))
	for _, h := range hours {
		drop[h] = struct{}{}
	}

	kept := entries[:0]
	for _, e := range entries {
		if _, ok := drop[e.Hour]; !ok {
			kept = append(kept, e)
		}
	}
	removed := len(entries) - len(kept)
	s.days[key] = kept
	return removed
}

// EntriesFor returns a copy of the entries of date, ordered by hour.
func (s *Store) EntriesFor(date time.Time) []Entry {
	entries := s.days[day.Key(date)]
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out
}

// Slots returns all 24 hours of date, with nil entries for free hours.
func (s *Store) Slots(date time.Time) []Slot {
	slots := make([]Slot, HoursPerDay)
	for h := range slots {
		slots[h].Hour = h
	}
	for _, e := range s.EntriesFor(date) {
		slots[e.Hour].Entry = &e
	}
	return slots
}

// Dates lists the days that currently hold at least one entry, oldest first.
func (s *Store) Dates() []time.Time {
	out := make([]time.Time, 0, len(s.days))
	for key, entries := range s.days {
		if len(entries) == 0 {
			continue
		}
		if d, err := day.Parse(key); err == nil {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Before(out[j])
	})
	return out
}
