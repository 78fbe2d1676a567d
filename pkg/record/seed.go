package record

import "time"

// demo values for the six days before today: rate, checked, mood.
var demo = [][3]int{
	{40, 2, 5},
	{60, 3, 6},
	{80, 4, 7},
	{20, 1, 4},
	{100, 5, 8},
	{60, 3, 6},
}

// Seed fills s with six sample days ending the day before today.
func Seed(s *Store, today time.Time) {
	base := today.AddDate(0, 0, -len(demo))
	for i, v := range demo {
		s.Upsert(base.AddDate(0, 0, i), v[0], v[1], v[2])
	}
}
