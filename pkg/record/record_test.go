package record

import (
	"math/rand"
	"testing"
	"time"

	"tableflip.dev/habits/pkg/day"
)

func june(d int) time.Time {
	return day.Date(2024, time.June, d)
}

func TestUpsertEvictsOldest(t *testing.T) {
	s := NewStore(DefaultWindow)
	for d := 1; d <= 6; d++ {
		s.Upsert(june(d), 50, 2, 5)
	}

	s.Upsert(june(7), 80, 4, 7)
	s.Upsert(june(8), 100, 5, 8)

	got := s.List()
	if len(got) != 7 {
		t.Fatalf("expected 7 records, got %d", len(got))
	}
	for i, r := range got {
		if want := june(i + 2); !r.Date.Equal(want) {
			t.Fatalf("record %d: expected %s, got %s", i, want.Format(day.LayoutISO), r.Key())
		}
	}
	last := got[len(got)-1]
	if last.AchievementRate != 100 || last.CheckedCount != 5 || last.MoodScore != 8 {
		t.Fatalf("unexpected values for last record: %+v", last)
	}
}

func TestUpsertSameDateLastWriteWins(t *testing.T) {
	s := NewStore(DefaultWindow)
	s.Upsert(june(3), 40, 2, 5)
	s.Upsert(june(3).Add(15*time.Hour), 80, 4, 9)

	got := s.List()
	if len(got) != 1 {
		t.Fatalf("expected one record, got %d", len(got))
	}
	if got[0].AchievementRate != 80 || got[0].CheckedCount != 4 || got[0].MoodScore != 9 {
		t.Fatalf("expected latest values, got %+v", got[0])
	}
}

func TestUpsertOutOfOrderKeepsMostRecent(t *testing.T) {
	s := NewStore(3)
	for _, d := range []int{5, 1, 9, 3, 7} {
		s.Upsert(june(d), 10, 1, 3)
	}
	got := s.List()
	want := []int{5, 7, 9}
	if len(got) != len(want) {
		t.Fatalf("expected %d records, got %d", len(want), len(got))
	}
	for i, d := range want {
		if !got[i].Date.Equal(june(d)) {
			t.Errorf("record %d: expected june %d, got %s", i, d, got[i].Key())
		}
	}
}

func TestUpsertWindowProperty(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	s := NewStore(DefaultWindow)
	seen := map[string]time.Time{}

	for i := 0; i < 500; i++ {
		d := day.Date(2024, time.January, 1).AddDate(0, 0, r.Intn(60))
		s.Upsert(d, r.Intn(101), r.Intn(6), 1+r.Intn(10))
		seen[day.Key(d)] = d

		got := s.List()
		if len(got) > DefaultWindow {
			t.Fatalf("store holds %d records", len(got))
		}
		for j := 1; j < len(got); j++ {
			if !got[j-1].Date.Before(got[j].Date) {
				t.Fatalf("records not strictly ascending at %d: %s, %s", j, got[j-1].Key(), got[j].Key())
			}
		}
		newer := 0
		for _, sd := range seen {
			if sd.After(got[0].Date) {
				newer++
			}
		}
		if want := min(len(seen), DefaultWindow) - 1; newer != want {
			t.Fatalf("expected %d seen dates after oldest retained, got %d", want, newer)
		}
	}
}

func TestUpsertClampsValues(t *testing.T) {
	s := NewStore(DefaultWindow)
	rec := s.Upsert(june(1), 140, -3, 0)
	if rec.AchievementRate != 100 || rec.CheckedCount != 0 || rec.MoodScore != MinMood {
		t.Fatalf("expected clamped values, got %+v", rec)
	}
}

func TestListIsSnapshot(t *testing.T) {
	s := NewStore(DefaultWindow)
	s.Upsert(june(1), 20, 1, 4)
	got := s.List()
	got[0].AchievementRate = 99

	if r, _ := s.Get(june(1)); r.AchievementRate != 20 {
		t.Fatalf("list mutation leaked into store: %+v", r)
	}
}

func TestSeed(t *testing.T) {
	s := NewStore(DefaultWindow)
	today := june(10)
	Seed(s, today)

	got := s.List()
	if len(got) != 6 {
		t.Fatalf("expected 6 seeded records, got %d", len(got))
	}
	if !got[0].Date.Equal(june(4)) || !got[5].Date.Equal(june(9)) {
		t.Fatalf("unexpected seeded range %s..%s", got[0].Key(), got[5].Key())
	}
	if got[4].AchievementRate != 100 || got[4].MoodScore != 8 {
		t.Fatalf("unexpected seeded values %+v", got[4])
	}
}

func TestAchievementRate(t *testing.T) {
	tests := []struct {
		checked, total, want int
	}{
		{0, 5, 0},
		{3, 5, 60},
		{5, 5, 100},
		{2, 3, 66},
		{1, 0, 0},
		{7, 5, 100},
	}
	for _, tt := range tests {
		if got := AchievementRate(tt.checked, tt.total); got != tt.want {
			t.Errorf("AchievementRate(%d, %d) = %d, want %d", tt.checked, tt.total, got, tt.want)
		}
	}
}
