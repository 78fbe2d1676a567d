package checkin

import (
	"errors"
	"fmt"
	"slices"
	"strconv"

	"github.com/manifoldco/promptui"

	"tableflip.dev/habits/pkg/record"
)

// Prompter asks the user for today's habits and mood.
type Prompter interface {
	Prompt(habits []string, mood int) ([]string, int, error)
}

// PromptUI asks on the terminal.
type PromptUI struct{}

const done = "Done"

type choice struct {
	Label   string
	Checked bool
}

func (PromptUI) Prompt(habits []string, mood int) ([]string, int, error) {
	checked := make([]bool, len(habits))

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}?",
		Active:   "➜  {{ if .Checked }}{{ \"[x]\" | green }}{{ else }}[ ]{{ end }} {{ .Label | bold }}",
		Inactive: "   {{ if .Checked }}{{ \"[x]\" | green }}{{ else }}[ ]{{ end }} {{ .Label }}",
		Selected: "{{ .Label | bold }}",
	}

	cursor := 0
	for {
		items := make([]choice, 0, len(habits)+1)
		for i, h := range habits {
			items = append(items, choice{Label: h, Checked: checked[i]})
		}
		items = append(items, choice{Label: done})

		prompt := promptui.Select{
			HideHelp:     true,
			HideSelected: true,
			Label:        "Which habits did you keep today",
			Items:        items,
			Templates:    templates,
			Size:         len(items),
			CursorPos:    cursor,
		}
		i, _, err := prompt.Run()
		if err != nil {
			return nil, 0, err
		}
		if i == len(habits) {
			break
		}
		checked[i] = !checked[i]
		cursor = i
	}

	out := make([]string, 0, len(habits))
	for i, h := range habits {
		if checked[i] {
			out = append(out, h)
		}
	}

	m, err := promptMood(mood)
	if err != nil {
		return nil, 0, err
	}
	return slices.Clip(out), m, nil
}

func promptMood(def int) (int, error) {
	validate := func(input string) error {
		if input == "" {
			return nil
		}
		v, err := strconv.Atoi(input)
		if err != nil {
			return errors.New("not a number")
		}
		if v < record.MinMood || v > record.MaxMood {
			return fmt.Errorf("between %d and %d", record.MinMood, record.MaxMood)
		}
		return nil
	}

	templates := &promptui.PromptTemplates{
		Prompt:  "{{ . }} : ",
		Valid:   "{{ . | green }} : ",
		Invalid: "{{ . | red }} : ",
		Success: "{{ . | bold }} : ",
	}

	prompt := promptui.Prompt{
		Label:     fmt.Sprintf("Mood today (%d-%d) [%d]", record.MinMood, record.MaxMood, def),
		Templates: templates,
		Validate:  validate,
	}
	result, err := prompt.Run()
	if err != nil {
		return 0, err
	}
	if result == "" {
		return def, nil
	}
	return strconv.Atoi(result)
}
