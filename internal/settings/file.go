package settings

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// fileStatic is the [static] table. The pause is written as a Go duration
// string such as "500ms".
type fileStatic struct {
	Static
	Pause string `toml:"hit_pause"`
}

// fileConfig is the on-disk layout of a profile override file:
//
//	[static]
//	screen_width = 1200
//	hit_pause = "500ms"
//
//	[medium]
//	alien_speed = 0.6
//
// Keys that are absent keep their default values.
type fileConfig struct {
	Static fileStatic `toml:"static"`
	Presets
}

func defaultFileConfig() fileConfig {
	static := DefaultStatic()
	return fileConfig{
		Static:  fileStatic{Static: static, Pause: static.HitPause.String()},
		Presets: DefaultPresets(),
	}
}

// Load decodes a profile override from r on top of the defaults and
// validates the result.
func Load(r io.Reader) (*Profile, error) {
	cfg := defaultFileConfig()
	if _, err := toml.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}
	return cfg.profile()
}

// LoadFile reads a profile override file. Unlike the high score, a missing
// file is an error because the path was asked for explicitly.
func LoadFile(path string) (*Profile, error) {
	cfg := defaultFileConfig()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("load profile %s: %w", path, err)
	}
	return cfg.profile()
}

func (cfg fileConfig) profile() (*Profile, error) {
	static := cfg.Static.Static
	if cfg.Static.Pause != "" {
		pause, err := time.ParseDuration(cfg.Static.Pause)
		if err != nil {
			return nil, fmt.Errorf("%w: hit_pause: %v", ErrInvalidProfile, err)
		}
		static.HitPause = pause
	}
	p := New(static, cfg.Presets)
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Write encodes the static constants and presets of p as TOML.
// The output can be read back with Load.
func Write(w io.Writer, p *Profile) error {
	cfg := fileConfig{
		Static:  fileStatic{Static: p.Static, Pause: p.HitPause.String()},
		Presets: p.Presets,
	}
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	return nil
}

// WriteFile writes p to path, creating or truncating it.
func WriteFile(path string, p *Profile) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create profile %s: %w", path, err)
	}
	if err := Write(f, p); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
