package options

import (
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/habits/pkg/day"
)

const (
	layoutISO      = "2006-1-2"
	layoutISOShort = "1/2"
)

// OnOptions selects a day.
type OnOptions struct {
	OnString string
}

func AddOnArgs(cmd *cobra.Command, o *OnOptions) {
	cmd.Flags().StringVar(&o.OnString, "on", "",
		`Specify a date, example: --on="2020-2-28" or --on="2/28". Defaults to today.`)
}

// GetOn resolves the flag relative to today. A month/day without a year
// that has already passed this year means next year.
func (o *OnOptions) GetOn(today time.Time) (time.Time, error) {
	today = day.Of(today)
	switch o.OnString {
	case "", "today":
		return today, nil
	case "tomorrow":
		return today.AddDate(0, 0, 1), nil
	case "yesterday":
		return today.AddDate(0, 0, -1), nil
	}
	t, err := time.Parse(layoutISO, o.OnString)
	if err == nil {
		return day.Of(t), nil
	}
	t, err = time.Parse(layoutISOShort, o.OnString)
	if err != nil {
		return time.Time{}, err
	}
	t = day.Date(today.Year(), t.Month(), t.Day())
	if t.Before(today) {
		t = t.AddDate(1, 0, 0)
	}
	return t, nil
}
