/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

// Package config provides the swisstd TOML config file and XDG path helpers.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/mikeb26/swiss-standings/internal"
	"github.com/mikeb26/swiss-standings/swiss"
)

var ErrInvalid = errors.New("invalid config")

const (
	EnvDiscordToken  = "SWISSTD_DISCORD_TOKEN"
	EnvDiscordPubKey = "SWISSTD_DISCORD_PUBKEY"
)

// FileConfig represents the TOML configuration file. Pointer fields are
// unset when absent from the file.
type FileConfig struct {
	Standings StandingsConfig `toml:"standings"`
	Source    SourceConfig    `toml:"source"`
	Cache     CacheConfig     `toml:"cache"`
	Discord   DiscordConfig   `toml:"discord"`
}

type StandingsConfig struct {
	WinFloor       *float64 `toml:"win-floor"`
	SwissRoundType *string  `toml:"swiss-round-type"`
}

type SourceConfig struct {
	URL          *string        `toml:"url"`
	PairingsURL  *string        `toml:"pairings-url"`
	PollInterval *time.Duration `toml:"poll-interval"`
	CacheMaxAge  *time.Duration `toml:"cache-max-age"`
}

type CacheConfig struct {
	Bucket *string `toml:"bucket"`
	Gzip   *bool   `toml:"gzip"`
}

type DiscordConfig struct {
	Token     *string `toml:"token"`
	PublicKey *string `toml:"public-key"`
	AppID     *string `toml:"app-id"`
	CommandID *string `toml:"command-id"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("%w: unknown key %v in %v", ErrInvalid,
			undecoded[0], path)
	}
	return cfg, nil
}

// Settings is the fully resolved configuration: defaults, then file
// values, then environment overrides.
type Settings struct {
	Standings    swiss.Config
	URL          string
	PairingsURL  string
	PollInterval time.Duration
	CacheMaxAge  time.Duration
	Bucket       string
	Gzip         bool

	DiscordToken     string
	DiscordPublicKey string
	DiscordAppID     string
	DiscordCommandID string
}

func Defaults() Settings {
	return Settings{
		Standings:    swiss.DefaultConfig(),
		PollInterval: internal.DefaultPollInterval,
		CacheMaxAge:  internal.DefaultCacheMaxAge,
		Bucket:       internal.WebCacheBucket,
	}
}

// Resolve applies file values and environment overrides on top of the
// defaults and validates the result.
func (fc FileConfig) Resolve() (Settings, error) {
	s := Defaults()

	if v := fc.Standings.WinFloor; v != nil {
		s.Standings.WinFloor = *v
	}
	if v := fc.Standings.SwissRoundType; v != nil {
		s.Standings.SwissRoundType = *v
	}
	setString(&s.URL, fc.Source.URL)
	setString(&s.PairingsURL, fc.Source.PairingsURL)
	if v := fc.Source.PollInterval; v != nil {
		s.PollInterval = *v
	}
	if v := fc.Source.CacheMaxAge; v != nil {
		s.CacheMaxAge = *v
	}
	setString(&s.Bucket, fc.Cache.Bucket)
	if v := fc.Cache.Gzip; v != nil {
		s.Gzip = *v
	}
	setString(&s.DiscordToken, fc.Discord.Token)
	setString(&s.DiscordPublicKey, fc.Discord.PublicKey)
	setString(&s.DiscordAppID, fc.Discord.AppID)
	setString(&s.DiscordCommandID, fc.Discord.CommandID)

	if v := os.Getenv(EnvDiscordToken); v != "" {
		s.DiscordToken = v
	}
	if v := os.Getenv(EnvDiscordPubKey); v != "" {
		s.DiscordPublicKey = v
	}

	return s, s.Validate()
}

func (s Settings) Validate() error {
	if err := s.Standings.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if s.PollInterval <= 0 {
		return fmt.Errorf("%w: poll-interval must be positive, got %v",
			ErrInvalid, s.PollInterval)
	}
	if s.CacheMaxAge < 0 {
		return fmt.Errorf("%w: cache-max-age must not be negative, got %v",
			ErrInvalid, s.CacheMaxAge)
	}
	return nil
}

// CacheOptions returns the http cache settings.
func (s Settings) CacheOptions() internal.CacheOptions {
	return internal.CacheOptions{
		Bucket: s.Bucket,
		Gzip:   s.Gzip,
		MaxAge: s.CacheMaxAge,
	}
}

// Load reads and resolves the config at path.
func Load(path string) (Settings, error) {
	fc, err := LoadConfig(path)
	if err != nil {
		return Settings{}, err
	}
	return fc.Resolve()
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
