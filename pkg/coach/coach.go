// Package coach produces the encouragement message shown after a check-in.
package coach

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"
	"time"
)

// Placeholder is returned when no model credential is configured or the
// model could not be reached.
const Placeholder = "Add a Gemini API key (coach.key or GEMINI_API_KEY) to get AI feedback."

// Style is a coaching voice.
type Style string

const (
	Gentle    Style = "gentle"
	Realistic Style = "realistic"
	Energetic Style = "energetic"
)

var instructions = map[Style]string{
	Gentle:    "You are a warm, patient habit coach. Be kind and reassuring, never judgemental.",
	Realistic: "You are a direct, practical habit coach. Name what slipped and give one concrete fix.",
	Energetic: "You are a high-energy habit coach. Be upbeat and motivating, and keep it punchy.",
}

var closings = map[Style]string{
	Gentle:    "It doesn't have to be perfect. Writing today down is already enough.",
	Realistic: "Pick the one habit you missed and make it the first thing you do tomorrow.",
	Energetic: "Let's go! Tomorrow we stack one more win on top of today!",
}

// ParseStyle maps a configured name onto a Style, defaulting to Gentle.
func ParseStyle(s string) Style {
	st := Style(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := instructions[st]; ok {
		return st
	}
	return Gentle
}

// Closing is the canned line used when no model text is available.
func (s Style) Closing() string {
	return closings[ParseStyle(string(s))]
}

// Input is what the coach knows about today. Completed may be empty when
// only Count is known.
type Input struct {
	Name      string
	Completed []string
	Count     int
	Total     int
	Percent   int
	Weather   string
}

// Generator turns a system instruction and a prompt into text.
type Generator interface {
	Generate(ctx context.Context, system, prompt string) (string, error)
}

// Coach writes feedback in one Style. A nil Generator means no credential.
type Coach struct {
	Generator Generator
	Style     Style
	Timeout   time.Duration
	Log       io.Writer
}

// New returns a Coach.
func New(gen Generator, style string, timeout time.Duration) *Coach {
	return &Coach{
		Generator: gen,
		Style:     ParseStyle(style),
		Timeout:   timeout,
		Log:       os.Stderr,
	}
}

var promptTmpl = template.Must(template.New("prompt").Parse(
	`{{if .Name}}The user's name is {{.Name}}.
{{end}}Today they completed {{.Percent}}% of their habits{{if .Total}} ({{.Count}} of {{.Total}}){{end}}.
{{if .Completed}}Completed habits:
{{range .Completed}}- {{.}}
{{end}}{{else if and (not .Count) (not .Percent)}}They did not complete any habit today.
{{end}}{{if .Weather}}Weather: {{.Weather}}
{{end}}
Write a short (2-3 sentence) message for them about today and tomorrow.`))

// Prompt renders the user prompt for in.
func Prompt(in Input) (string, error) {
	var buf bytes.Buffer
	if err := promptTmpl.Execute(&buf, in); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Feedback returns model text, or Placeholder when there is no generator or
// generation fails.
func (c *Coach) Feedback(ctx context.Context, in Input) string {
	if c.Generator == nil {
		return Placeholder
	}
	prompt, err := Prompt(in)
	if err != nil {
		fmt.Fprintf(c.Log, "coach: prompt: %v\n", err)
		return Placeholder
	}

	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}
	text, err := c.Generator.Generate(ctx, instructions[ParseStyle(string(c.Style))], prompt)
	if err != nil {
		fmt.Fprintf(c.Log, "coach: generate: %v\n", err)
		return Placeholder
	}
	if text = strings.TrimSpace(text); text == "" {
		fmt.Fprintf(c.Log, "coach: empty response\n")
		return Placeholder
	}
	return text
}
