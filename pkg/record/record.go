// Package record keeps the rolling window of daily habit check-ins.
package record

import (
	"sort"
	"time"

	"tableflip.dev/habits/pkg/day"
)

// DefaultWindow is the number of most recent days a Store retains.
const DefaultWindow = 7

const (
	MinMood = 1
	MaxMood = 10
)

// DailyRecord is one day of habit check-in results.
type DailyRecord struct {
	Date            time.Time `json:"date"`
	AchievementRate int       `json:"achievementRate"`
	CheckedCount    int       `json:"checkedCount"`
	MoodScore       int       `json:"moodScore"`
}

// Key is the day key of the record.
func (r DailyRecord) Key() string {
	return day.Key(r.Date)
}

// Store holds at most Window records, one per date, ordered by date.
// It is owned by a single session and is not safe for concurrent use.
type Store struct {
	window  int
	records []DailyRecord
}

// NewStore creates an empty store. A window below one falls back to DefaultWindow.
func NewStore(window int) *Store {
	if window < 1 {
		window = DefaultWindow
	}
	return &Store{window: window}
}

// Window reports how many days the store retains.
func (s *Store) Window() int {
	return s.window
}

// Upsert overwrites the record for date or appends a new one, then keeps only
// the most recent Window dates. Values out of range are clamped.
func (s *Store) Upsert(date time.Time, achievementRate, checkedCount, moodScore int) DailyRecord {
	rec := DailyRecord{
		Date:            day.Of(date),
		AchievementRate: clamp(achievementRate, 0, 100),
		CheckedCount:    max(checkedCount, 0),
		MoodScore:       clamp(moodScore, MinMood, MaxMood),
	}

	found := false
	for i := range s.records {
		if s.records[i].Date.Equal(rec.Date) {
			s.records[i].AchievementRate = rec.AchievementRate
			s.records[i].CheckedCount = rec.CheckedCount
			s.records[i].MoodScore = rec.MoodScore
			found = true
			break
		}
	}
	if !found {
		s.records = append(s.records, rec)
	}

	sort.SliceStable(s.records, func(i, j int) bool {
		return s.records[i].Date.Before(s.records[j].Date)
	})
	if over := len(s.records) - s.window; over > 0 {
		s.records = append([]DailyRecord(nil), s.records[over:]...)
	}
	return rec
}

// List returns a copy of the retained records, oldest first.
func (s *Store) List() []DailyRecord {
	out := make([]DailyRecord, len(s.records))
	copy(out, s.records)
	return out
}

// Get returns the record for date, if retained.
func (s *Store) Get(date time.Time) (DailyRecord, bool) {
	d := day.Of(date)
	for _, r := range s.records {
		if r.Date.Equal(d) {
			return r, true
		}
	}
	return DailyRecord{}, false
}

// Len is the number of retained records.
func (s *Store) Len() int {
	return len(s.records)
}

// AchievementRate is the whole percentage of total habits that were checked.
func AchievementRate(checked, total int) int {
	if total <= 0 {
		return 0
	}
	return clamp(checked*100/total, 0, 100)
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
