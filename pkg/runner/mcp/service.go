// Package mcp exposes one habits session over the Model Context Protocol.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"tableflip.dev/habits/pkg/calendar"
	"tableflip.dev/habits/pkg/day"
	"tableflip.dev/habits/pkg/plan"
	"tableflip.dev/habits/pkg/record"
	"tableflip.dev/habits/pkg/report"
	"tableflip.dev/habits/pkg/session"
)

// ErrNoCheckIn is returned by Report before anything was recorded.
var ErrNoCheckIn = errors.New("no check-in recorded yet")

// Service serializes tool calls onto a single session.
type Service struct {
	mu      sync.Mutex
	state   *session.State
	reports *report.Builder
}

// RecordDTO is a transport-friendly projection of a daily record.
type RecordDTO struct {
	Date            string `json:"date"`
	AchievementRate int    `json:"achievementRate"`
	CheckedCount    int    `json:"checkedCount"`
	MoodScore       int    `json:"moodScore"`
}

// CheckInDTO is the result of a check-in.
type CheckInDTO struct {
	Record  RecordDTO `json:"record"`
	Checked []string  `json:"checked"`
	Total   int       `json:"total"`
}

// DayPlanDTO lists the entries of one day.
type DayPlanDTO struct {
	Date    string       `json:"date"`
	Entries []plan.Entry `json:"entries"`
	Count   int          `json:"count"`
}

// MonthDTO is a Monday-first month grid.
type MonthDTO struct {
	Year     int             `json:"year"`
	Month    int             `json:"month"`
	Name     string          `json:"name"`
	Weeks    []calendar.Week `json:"weeks"`
	Marked   []int           `json:"marked"`
	Selected string          `json:"selected,omitempty"`
}

// CheckInOptions captures the parameters of a check-in.
type CheckInOptions struct {
	Habits []string
	Count  *int
	Mood   int
}

// NewService wraps state. reports may be nil, in which case the report tool
// only renders the offline parts.
func NewService(state *session.State, reports *report.Builder) *Service {
	if reports == nil {
		reports = &report.Builder{}
	}
	return &Service{state: state, reports: reports}
}

// Habits returns the configured habit labels.
func (s *Service) Habits() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.state.Habits...)
}

// CheckIn records today's habits and mood. Mood and count are clamped like
// every other check-in.
func (s *Service) CheckIn(_ context.Context, opts CheckInOptions) (*CheckInDTO, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var ci session.CheckIn
	switch {
	case len(opts.Habits) > 0:
		var err error
		if ci, err = s.state.CheckIn(opts.Habits, opts.Mood); err != nil {
			return nil, err
		}
	case opts.Count != nil:
		ci = s.state.CheckInCount(nil, *opts.Count, opts.Mood)
	default:
		ci = s.state.CheckInCount(nil, 0, opts.Mood)
	}
	return toCheckInDTO(ci), nil
}

// Records lists the retained window, oldest first.
func (s *Service) Records(_ context.Context) []RecordDTO {
	s.mu.Lock()
	defer s.mu.Unlock()
	recs := s.state.Records.List()
	out := make([]RecordDTO, 0, len(recs))
	for _, r := range recs {
		out = append(out, toRecordDTO(r))
	}
	return out
}

// AddPlanEntry adds or overwrites the entry at hour on date.
func (s *Service) AddPlanEntry(_ context.Context, date string, hour int, title, note string) (*DayPlanDTO, error) {
	d, err := s.parseDate(date)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.state.Plans.AddEntry(d, hour, title, note); err != nil {
		return nil, err
	}
	return s.dayPlan(d), nil
}

// DeletePlanEntries removes the entries at hours on date.
func (s *Service) DeletePlanEntries(_ context.Context, date string, hours []int) (*DayPlanDTO, int, error) {
	d, err := s.parseDate(date)
	if err != nil {
		return nil, 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	n := s.state.Plans.DeleteEntries(d, hours...)
	return s.dayPlan(d), n, nil
}

// PlanEntries lists the entries of date. An empty date means the selected day.
func (s *Service) PlanEntries(_ context.Context, date string) (*DayPlanDTO, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := s.state.Cursor.Selected
	if strings.TrimSpace(date) != "" {
		var err error
		if d, err = day.Parse(date); err != nil {
			return nil, err
		}
	}
	return s.dayPlan(d), nil
}

// Month returns the grid of year/month, or of the displayed month when year
// is zero.
func (s *Service) Month(_ context.Context, year, month int) (*MonthDTO, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	start := s.state.Cursor.Month
	if year != 0 {
		if month < 1 || month > 12 {
			return nil, fmt.Errorf("month must be between 1 and 12, got %d", month)
		}
		start = day.Date(year, time.Month(month), 1)
	}
	return s.month(start), nil
}

// ShiftMonth moves the displayed month by delta and returns its grid.
func (s *Service) ShiftMonth(_ context.Context, delta int) *MonthDTO {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Cursor.Shift(delta)
	return s.month(s.state.Cursor.Month)
}

// SelectDate moves the selection and displayed month to date.
func (s *Service) SelectDate(_ context.Context, date string) (*DayPlanDTO, error) {
	d, err := s.parseDate(date)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Cursor.Jump(d)
	return s.dayPlan(d), nil
}

// Report assembles today's summary, falling back to the newest record.
// External lookups run outside the session lock.
func (s *Service) Report(ctx context.Context) (*report.Summary, error) {
	s.mu.Lock()
	ci, ok := report.Today(s.state)
	if !ok {
		ci, ok = report.Latest(s.state)
	}
	s.mu.Unlock()
	if !ok {
		return nil, ErrNoCheckIn
	}
	sum := s.reports.Build(ctx, ci)
	return &sum, nil
}

func (s *Service) parseDate(v string) (time.Time, error) {
	if strings.TrimSpace(v) == "" {
		return time.Time{}, errors.New("date is required")
	}
	return day.Parse(strings.TrimSpace(v))
}

func (s *Service) dayPlan(d time.Time) *DayPlanDTO {
	entries := s.state.Plans.EntriesFor(d)
	return &DayPlanDTO{Date: day.Key(d), Entries: entries, Count: len(entries)}
}

func (s *Service) month(start time.Time) *MonthDTO {
	dto := &MonthDTO{
		Year:   start.Year(),
		Month:  int(start.Month()),
		Name:   start.Format("January 2006"),
		Weeks:  []calendar.Week{},
		Marked: []int{},
	}
	for w := range calendar.MonthGrid(start.Year(), start.Month()) {
		dto.Weeks = append(dto.Weeks, w)
	}
	for _, d := range s.state.Plans.Dates() {
		if d.Year() == start.Year() && d.Month() == start.Month() {
			dto.Marked = append(dto.Marked, d.Day())
		}
	}
	if sel := s.state.Cursor.Selected; !sel.IsZero() {
		dto.Selected = day.Key(sel)
	}
	return dto
}

func toRecordDTO(r record.DailyRecord) RecordDTO {
	return RecordDTO{
		Date:            r.Key(),
		AchievementRate: r.AchievementRate,
		CheckedCount:    r.CheckedCount,
		MoodScore:       r.MoodScore,
	}
}

func toCheckInDTO(ci session.CheckIn) *CheckInDTO {
	checked := ci.Checked
	if checked == nil {
		checked = []string{}
	}
	return &CheckInDTO{Record: toRecordDTO(ci.Record), Checked: checked, Total: ci.Total}
}
