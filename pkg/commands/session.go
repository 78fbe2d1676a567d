package commands

import (
	"context"

	"tableflip.dev/habits/pkg/cache"
	"tableflip.dev/habits/pkg/coach"
	"tableflip.dev/habits/pkg/config"
	"tableflip.dev/habits/pkg/report"
	"tableflip.dev/habits/pkg/reward"
	"tableflip.dev/habits/pkg/session"
	"tableflip.dev/habits/pkg/weather"
)

// environment is one process-lifetime session and its collaborators.
type environment struct {
	Config  *config.Config
	State   *session.State
	Reports *report.Builder
}

func load(ctx context.Context) (*environment, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return wire(ctx, cfg)
}

func wire(ctx context.Context, cfg *config.Config) (*environment, error) {
	c := cache.Open(cfg.Cache.Path, cfg.Cache.TTL)

	w := weather.New(cfg.Weather.URL, cfg.Weather.Key, cfg.Timeout)
	w.Cache = c
	r := reward.New(cfg.Reward.URL, cfg.Timeout)

	co, err := coach.Open(ctx, cfg.Coach.Key, cfg.Coach.Model, cfg.Coach.Style, cfg.Timeout)
	if err != nil {
		return nil, err
	}

	return &environment{
		Config: cfg,
		State:  session.New(cfg.SessionOptions()),
		Reports: &report.Builder{
			Name:    cfg.Name,
			City:    cfg.City,
			Weather: w,
			Reward:  r,
			Coach:   co,
		},
	}, nil
}
