// Package config loads habits settings from a .habits file, the environment,
// and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"tableflip.dev/habits/pkg/record"
	"tableflip.dev/habits/pkg/session"
)

const (
	DefaultCity        = "Seoul"
	DefaultWeatherURL  = "https://api.openweathermap.org/data/2.5/weather"
	DefaultRewardURL   = "https://dog.ceo/api/breeds/image/random"
	DefaultCoachModel  = "gemini-2.0-flash"
	DefaultCoachStyle  = "gentle"
	DefaultTimeout     = 5 * time.Second
	DefaultCachePath   = "~/.habits/cache"
	DefaultCacheTTL    = 10 * time.Minute
	configName         = ".habits"
	envPrefix          = "HABITS"
	configPathOverride = "HABITS_CONFIG_PATH"
)

// Styles are the coach styles a config may name.
var Styles = []string{"gentle", "realistic", "energetic"}

// Config is the resolved application configuration.
type Config struct {
	Name    string
	City    string
	Habits  []string
	Window  int
	Timeout time.Duration
	Seed    bool

	Weather Endpoint
	Reward  Endpoint
	Coach   Coach
	Cache   Cache

	// File is the config file that was read, empty when none was found.
	File string
}

// Endpoint is an external HTTP collaborator.
type Endpoint struct {
	URL string
	Key string
}

// Coach configures feedback generation.
type Coach struct {
	Key   string
	Model string
	Style string
}

// Cache configures the on-disk lookup cache. An empty Path disables it.
type Cache struct {
	Path string
	TTL  time.Duration
}

// Load reads .env, then the .habits config file (searched in
// $HABITS_CONFIG_PATH and ./), then HABITS_* environment overrides.
func Load() (*Config, error) {
	// .env is optional.
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.SetConfigName(configName) // .yaml is implicit
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Conventional key names also work.
	_ = v.BindEnv("weather.key", "OPENWEATHER_API_KEY")
	_ = v.BindEnv("coach.key", "GEMINI_API_KEY")

	if override := os.Getenv(configPathOverride); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read %s: %w", v.ConfigFileUsed(), err)
		}
	}

	return FromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("name", "")
	v.SetDefault("city", DefaultCity)
	v.SetDefault("habits", session.DefaultHabits)
	v.SetDefault("window", record.DefaultWindow)
	v.SetDefault("timeout", DefaultTimeout)
	v.SetDefault("seed", true)
	v.SetDefault("weather.url", DefaultWeatherURL)
	v.SetDefault("weather.key", "")
	v.SetDefault("reward.url", DefaultRewardURL)
	v.SetDefault("coach.key", "")
	v.SetDefault("coach.model", DefaultCoachModel)
	v.SetDefault("coach.style", DefaultCoachStyle)
	v.SetDefault("cache.path", DefaultCachePath)
	v.SetDefault("cache.ttl", DefaultCacheTTL)
}

// FromViper resolves and validates a Config from a populated viper instance.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Name:    strings.TrimSpace(v.GetString("name")),
		City:    strings.TrimSpace(v.GetString("city")),
		Habits:  cleanHabits(v.GetStringSlice("habits")),
		Window:  v.GetInt("window"),
		Timeout: v.GetDuration("timeout"),
		Seed:    v.GetBool("seed"),
		Weather: Endpoint{URL: v.GetString("weather.url"), Key: v.GetString("weather.key")},
		Reward:  Endpoint{URL: v.GetString("reward.url")},
		Coach: Coach{
			Key:   v.GetString("coach.key"),
			Model: v.GetString("coach.model"),
			Style: strings.ToLower(strings.TrimSpace(v.GetString("coach.style"))),
		},
		Cache: Cache{TTL: v.GetDuration("cache.ttl")},
		File:  v.ConfigFileUsed(),
	}

	if p := strings.TrimSpace(v.GetString("cache.path")); p != "" {
		expanded, err := homedir.Expand(p)
		if err != nil {
			return nil, fmt.Errorf("config: cache.path: %w", err)
		}
		cfg.Cache.Path = expanded
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the ranges the rest of the program relies on.
func (c *Config) Validate() error {
	switch {
	case c.Window < 1:
		return fmt.Errorf("config: window must be at least 1, got %d", c.Window)
	case c.Timeout <= 0:
		return fmt.Errorf("config: timeout must be positive, got %s", c.Timeout)
	case len(c.Habits) == 0:
		return errors.New("config: at least one habit is required")
	}
	for _, s := range Styles {
		if c.Coach.Style == s {
			return nil
		}
	}
	return fmt.Errorf("config: unknown coach.style %q (expected one of %s)", c.Coach.Style, strings.Join(Styles, ", "))
}

// SessionOptions maps the config onto a new session.
func (c *Config) SessionOptions() session.Options {
	return session.Options{
		Habits: c.Habits,
		Window: c.Window,
		Seed:   c.Seed,
	}
}

func cleanHabits(in []string) []string {
	out := make([]string, 0, len(in))
	for _, h := range in {
		if h = strings.TrimSpace(h); h != "" {
			out = append(out, h)
		}
	}
	return out
}
