package mcp

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"tableflip.dev/habits/pkg/plan"
	"tableflip.dev/habits/pkg/session"
)

func newTestService(seed bool) *Service {
	st := session.New(session.Options{Seed: seed, Now: func() time.Time {
		return time.Date(2024, time.June, 12, 10, 0, 0, 0, time.UTC)
	}})
	return NewService(st, nil)
}

func TestServiceCheckIn(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(true)

	dto, err := svc.CheckIn(ctx, CheckInOptions{Habits: []string{"exercise", "sleep well"}, Mood: 8})
	if err != nil {
		t.Fatalf("CheckIn failed: %v", err)
	}
	if dto.Record.Date != "2024-06-12" || dto.Record.AchievementRate != 40 || len(dto.Checked) != 2 {
		t.Fatalf("unexpected check-in %+v", dto)
	}

	count := 4
	dto, err = svc.CheckIn(ctx, CheckInOptions{Count: &count, Mood: 6})
	if err != nil {
		t.Fatal(err)
	}
	if dto.Record.AchievementRate != 80 || dto.Checked == nil {
		t.Fatalf("unexpected count check-in %+v", dto)
	}

	recs := svc.Records(ctx)
	if len(recs) != 7 || recs[6].MoodScore != 6 {
		t.Fatalf("unexpected records %+v", recs)
	}
}

func TestServiceCheckInRejects(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(false)

	_, err := svc.CheckIn(ctx, CheckInOptions{Habits: []string{"Juggle"}, Mood: 5})
	if !errors.Is(err, session.ErrUnknownHabit) {
		t.Fatalf("expected ErrUnknownHabit, got %v", err)
	}
	if len(svc.Records(ctx)) != 0 {
		t.Fatalf("rejected check-ins should not record")
	}
}

func TestServiceCheckInClampsMood(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(false)

	for _, tt := range []struct{ in, want int }{{11, 10}, {0, 1}, {-3, 1}} {
		dto, err := svc.CheckIn(ctx, CheckInOptions{Mood: tt.in})
		if err != nil {
			t.Fatalf("CheckIn(mood %d) failed: %v", tt.in, err)
		}
		if dto.Record.MoodScore != tt.want {
			t.Errorf("mood %d stored as %d, want %d", tt.in, dto.Record.MoodScore, tt.want)
		}
	}
}

func TestServicePlanLifecycle(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(false)

	if _, err := svc.AddPlanEntry(ctx, "2024-06-20", 14, "Meeting sync", ""); err != nil {
		t.Fatal(err)
	}
	dto, err := svc.AddPlanEntry(ctx, " 2024-06-20 ", 7, "Gym", "legs")
	if err != nil {
		t.Fatal(err)
	}
	if dto.Count != 2 || dto.Entries[0].Title != "Gym" || dto.Entries[1].Hour != 14 {
		t.Fatalf("unexpected plan %+v", dto)
	}

	_, err = svc.AddPlanEntry(ctx, "2024-06-20", 24, "Late", "")
	if !errors.Is(err, plan.ErrInvalid) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, err := svc.AddPlanEntry(ctx, "20/06/2024", 1, "x", ""); err == nil {
		t.Fatalf("expected date parse error")
	}
	if _, err := svc.AddPlanEntry(ctx, "", 1, "x", ""); err == nil {
		t.Fatalf("expected missing date error")
	}

	dto, removed, err := svc.DeletePlanEntries(ctx, "2024-06-20", []int{7, 9})
	if err != nil {
		t.Fatal(err)
	}
	if removed != 1 || dto.Count != 1 || dto.Entries[0].Title != "Meeting sync" {
		t.Fatalf("unexpected delete result %d %+v", removed, dto)
	}

	month, err := svc.Month(ctx, 2024, 6)
	if err != nil {
		t.Fatal(err)
	}
	if len(month.Marked) != 1 || month.Marked[0] != 20 {
		t.Fatalf("unexpected marks %+v", month.Marked)
	}
}

func TestServicePlanEntriesDefaultsToSelection(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(false)

	if _, err := svc.AddPlanEntry(ctx, "2024-06-12", 9, "Standup", ""); err != nil {
		t.Fatal(err)
	}
	dto, err := svc.PlanEntries(ctx, "")
	if err != nil {
		t.Fatal(err)
	}
	if dto.Date != "2024-06-12" || dto.Count != 1 {
		t.Fatalf("unexpected selected plan %+v", dto)
	}

	empty, err := svc.PlanEntries(ctx, "2024-01-01")
	if err != nil {
		t.Fatal(err)
	}
	if empty.Entries == nil || empty.Count != 0 {
		t.Fatalf("expected empty non-nil entries, got %+v", empty)
	}
}

func TestServiceMonthNavigation(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(false)

	m := svc.ShiftMonth(ctx, 7)
	if m.Year != 2025 || m.Month != 1 || m.Name != "January 2025" {
		t.Fatalf("unexpected shifted month %+v", m)
	}
	if m.Selected != "2024-06-12" {
		t.Fatalf("shifting should keep the selection, got %s", m.Selected)
	}
	// January 2025 starts on a Wednesday.
	if m.Weeks[0] != [7]int{0, 0, 1, 2, 3, 4, 5} {
		t.Fatalf("unexpected first week %v", m.Weeks[0])
	}

	cur, err := svc.Month(ctx, 0, 0)
	if err != nil || cur.Month != 1 {
		t.Fatalf("expected displayed month, got %+v %v", cur, err)
	}
	if _, err := svc.Month(ctx, 2024, 13); err == nil {
		t.Fatalf("expected month range error")
	}

	if _, err := svc.SelectDate(ctx, "2023-02-14"); err != nil {
		t.Fatal(err)
	}
	cur, _ = svc.Month(ctx, 0, 0)
	if cur.Year != 2023 || cur.Month != 2 || cur.Selected != "2023-02-14" {
		t.Fatalf("unexpected month after select %+v", cur)
	}
}

func TestServiceReport(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(false)

	if _, err := svc.Report(ctx); !errors.Is(err, ErrNoCheckIn) {
		t.Fatalf("expected ErrNoCheckIn, got %v", err)
	}

	if _, err := svc.CheckIn(ctx, CheckInOptions{Habits: []string{"Drink water"}, Mood: 4}); err != nil {
		t.Fatal(err)
	}
	sum, err := svc.Report(ctx)
	if err != nil {
		t.Fatal(err)
	}
	md, err := sum.Markdown()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(md, "**1/5** (20%)") || !strings.Contains(md, "no weather data") {
		t.Fatalf("unexpected report:\n%s", md)
	}
}
