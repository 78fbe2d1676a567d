// Package report assembles the daily summary shown after a check-in.
package report

import (
	"bytes"
	"context"
	"strings"
	"text/template"
	"time"

	"tableflip.dev/habits/pkg/coach"
	"tableflip.dev/habits/pkg/day"
	"tableflip.dev/habits/pkg/session"
	"tableflip.dev/habits/pkg/weather"
)

// NoWeather stands in for an absent weather lookup.
const NoWeather = "no weather data"

// Summary is everything that goes into a report.
type Summary struct {
	Date     time.Time       `json:"date"`
	Name     string          `json:"name,omitempty"`
	City     string          `json:"city,omitempty"`
	Checked  []string        `json:"checked"`
	Count    int             `json:"checkedCount"`
	Total    int             `json:"total"`
	Rate     int             `json:"achievementRate"`
	Mood     int             `json:"moodScore"`
	Weather  *weather.Report `json:"weather,omitempty"`
	Style    coach.Style     `json:"style"`
	Feedback string          `json:"feedback"`
	Image    string          `json:"image,omitempty"`
}

// WeatherText is the weather summary or NoWeather.
func (s Summary) WeatherText() string {
	if s.Weather == nil {
		return NoWeather
	}
	return s.Weather.String()
}

// Closing is the style's canned line.
func (s Summary) Closing() string {
	return s.Style.Closing()
}

// Title capitalizes the style name for headings.
func (s Summary) Title() string {
	if s.Style == "" {
		return ""
	}
	return strings.ToUpper(string(s.Style[:1])) + string(s.Style[1:])
}

var markdown = template.Must(template.New("report").Funcs(template.FuncMap{
	"key": day.Key,
}).Parse(`# Today's habit summary{{if .Name}} for {{.Name}}{{end}}

_{{key .Date}}_

- Habits checked: **{{.Count}}/{{.Total}}** ({{.Rate}}%)
- Mood: **{{.Mood}}/10**
- Weather{{if .City}} in {{.City}}{{end}}: {{.WeatherText}}
{{if .Checked}}
## Done today
{{range .Checked}}
- {{.}}{{end}}
{{end}}
## {{.Title}} coach

{{.Feedback}}

> {{.Closing}}
{{if .Image}}
![Today's reward]({{.Image}})

{{.Image}}
{{end}}`))

// Markdown renders the summary.
func (s Summary) Markdown() (string, error) {
	var buf bytes.Buffer
	if err := markdown.Execute(&buf, s); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Weather looks up the weather for a city.
type Weather interface {
	Lookup(ctx context.Context, city string) *weather.Report
}

// Reward looks up a reward image URL.
type Reward interface {
	Image(ctx context.Context) (string, bool)
}

// Builder calls the external collaborators and assembles a Summary. Any
// collaborator may be nil; its part of the report is then absent.
type Builder struct {
	Name    string
	City    string
	Weather Weather
	Reward  Reward
	Coach   *coach.Coach
}

// Build assembles the summary of a check-in. Collaborator failures never
// surface as errors.
func (b *Builder) Build(ctx context.Context, ci session.CheckIn) Summary {
	s := Summary{
		Date:    ci.Record.Date,
		Name:    b.Name,
		City:    b.City,
		Checked: ci.Checked,
		Count:   ci.Record.CheckedCount,
		Total:   ci.Total,
		Rate:    ci.Record.AchievementRate,
		Mood:    ci.Record.MoodScore,
		Style:   coach.Gentle,
	}
	if s.Checked == nil {
		s.Checked = []string{}
	}
	if b.Weather != nil {
		s.Weather = b.Weather.Lookup(ctx, b.City)
	}

	s.Feedback = coach.Placeholder
	if b.Coach != nil {
		s.Style = b.Coach.Style
		var wt string
		if s.Weather != nil {
			wt = s.Weather.String()
		}
		s.Feedback = b.Coach.Feedback(ctx, coach.Input{
			Name:      b.Name,
			Completed: s.Checked,
			Count:     s.Count,
			Total:     s.Total,
			Percent:   s.Rate,
			Weather:   wt,
		})
	}

	if b.Reward != nil {
		if u, ok := b.Reward.Image(ctx); ok {
			s.Image = u
		}
	}
	return s
}

// Latest returns a CheckIn for the newest record in the window, or false
// when the window is empty.
func Latest(st *session.State) (session.CheckIn, bool) {
	recs := st.Records.List()
	if len(recs) == 0 {
		return session.CheckIn{}, false
	}
	rec := recs[len(recs)-1]
	return session.CheckIn{Record: rec, Checked: st.CheckedOn(rec.Date), Total: len(st.Habits)}, true
}

// Today returns today's CheckIn if one was recorded.
func Today(st *session.State) (session.CheckIn, bool) {
	rec, ok := st.Records.Get(st.Today())
	if !ok {
		return session.CheckIn{}, false
	}
	return session.CheckIn{Record: rec, Checked: st.CheckedOn(rec.Date), Total: len(st.Habits)}, true
}
