package info

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/habits/pkg/config"
)

type Info struct {
	Config *config.Config
	Out    io.Writer
}

func (n *Info) Do(ctx context.Context) error {
	out := n.Out
	if out == nil {
		out = color.Output
	}

	if override := os.Getenv("HABITS_CONFIG_PATH"); override != "" {
		_, _ = fmt.Fprintln(out, "HABITS_CONFIG_PATH found on env, using ", override)
	} else {
		_, _ = fmt.Fprintln(out, "HABITS_CONFIG_PATH env var not set")
	}

	if n.Config == nil {
		var err error
		n.Config, err = config.Load()
		if err != nil {
			return err
		}
	}
	c := n.Config

	file := c.File
	if file == "" {
		file = "none found, using defaults"
	}
	cache := c.Cache.Path
	if cache == "" {
		cache = "disabled"
	} else {
		cache = fmt.Sprintf("%s (ttl %s)", cache, c.Cache.TTL)
	}

	bold := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Config file"), file)
	tbl.AddRow(bold.Sprint("Name"), c.Name)
	tbl.AddRow(bold.Sprint("City"), c.City)
	tbl.AddRow(bold.Sprint("Window"), fmt.Sprintf("%d days", c.Window))
	tbl.AddRow(bold.Sprint("Timeout"), c.Timeout)
	tbl.AddRow(bold.Sprint("Weather key"), isSet(c.Weather.Key))
	tbl.AddRow(bold.Sprint("Coach"), fmt.Sprintf("%s, %s, key %s", c.Coach.Style, c.Coach.Model, isSet(c.Coach.Key)))
	tbl.AddRow(bold.Sprint("Cache"), cache)
	tbl.AddRow(bold.Sprint("Habits"), strings.Join(c.Habits, ", "))
	tbl.RightAlign(0)

	_, _ = fmt.Fprintln(out, tbl)
	return nil
}

func isSet(v string) string {
	if v == "" {
		return "not set"
	}
	return "set"
}
