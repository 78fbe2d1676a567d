package coach

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
)

type fakeGenerator struct {
	system, prompt string
	text           string
	err            error
}

func (f *fakeGenerator) Generate(_ context.Context, system, prompt string) (string, error) {
	f.system, f.prompt = system, prompt
	return f.text, f.err
}

func TestFeedbackWithoutGenerator(t *testing.T) {
	c := New(nil, "gentle", 0)
	if got := c.Feedback(context.Background(), Input{}); got != Placeholder {
		t.Fatalf("expected placeholder, got %q", got)
	}
}

func TestFeedbackUsesStyleAndInput(t *testing.T) {
	gen := &fakeGenerator{text: "  Nice work today!  "}
	c := New(gen, "Realistic", 0)

	got := c.Feedback(context.Background(), Input{
		Name:      "Mina",
		Completed: []string{"Exercise", "Drink water"},
		Percent:   40,
		Weather:   "clear sky / 21.5°C",
	})
	if got != "Nice work today!" {
		t.Fatalf("unexpected feedback %q", got)
	}
	if gen.system != instructions[Realistic] {
		t.Fatalf("unexpected system instruction %q", gen.system)
	}
	for _, want := range []string{"Mina", "40%", "- Exercise", "- Drink water", "clear sky"} {
		if !strings.Contains(gen.prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, gen.prompt)
		}
	}
}

func TestFeedbackDegrades(t *testing.T) {
	for name, gen := range map[string]*fakeGenerator{
		"error": {err: errors.New("quota exceeded")},
		"blank": {text: "   "},
	} {
		t.Run(name, func(t *testing.T) {
			var logs bytes.Buffer
			c := New(gen, "energetic", 0)
			c.Log = &logs
			if got := c.Feedback(context.Background(), Input{Percent: 100}); got != Placeholder {
				t.Fatalf("expected placeholder, got %q", got)
			}
			if logs.Len() == 0 {
				t.Fatalf("expected a warning")
			}
		})
	}
}

func TestPromptWithoutHabits(t *testing.T) {
	p, err := Prompt(Input{Percent: 0})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(p, "did not complete any habit") || strings.Contains(p, "Weather") {
		t.Fatalf("unexpected prompt:\n%s", p)
	}
}

func TestPromptCountWithoutLabels(t *testing.T) {
	tests := []struct {
		name string
		in   Input
		want string
	}{
		{"percent only", Input{Percent: 60}, "60% of their habits."},
		{"count and total", Input{Count: 3, Total: 5, Percent: 60}, "60% of their habits (3 of 5)."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Prompt(tt.in)
			if err != nil {
				t.Fatal(err)
			}
			if !strings.Contains(p, tt.want) {
				t.Errorf("prompt missing %q:\n%s", tt.want, p)
			}
			if strings.Contains(p, "did not complete") {
				t.Errorf("prompt says nothing was completed:\n%s", p)
			}
		})
	}
}

func TestParseStyle(t *testing.T) {
	tests := map[string]Style{
		"gentle":      Gentle,
		" Energetic ": Energetic,
		"REALISTIC":   Realistic,
		"grumpy":      Gentle,
		"":            Gentle,
	}
	for in, want := range tests {
		if got := ParseStyle(in); got != want {
			t.Errorf("ParseStyle(%q) = %q, want %q", in, got, want)
		}
		if ParseStyle(in).Closing() == "" {
			t.Errorf("no closing line for %q", in)
		}
	}
}

func TestOpenWithoutKey(t *testing.T) {
	c, err := Open(context.Background(), "", "gemini-2.0-flash", "gentle", 0)
	if err != nil {
		t.Fatal(err)
	}
	if c.Generator != nil {
		t.Fatalf("expected no generator without a key")
	}
}
