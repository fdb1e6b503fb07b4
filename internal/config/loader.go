package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const configFileName = "runner.yaml"

// LoadRunner loads the runner configuration.
// Search order: customPath -> ~/.moonrunner/configs/runner.yaml -> ./configs/runner.yaml -> embedded default.
// Files are decoded over the defaults, so a partial file only overrides what it names.
// The result is not sanitized; callers run Sanitize and report its fixes.
func LoadRunner(customPath string) (RunnerConfig, error) {
	// Try custom path first
	if customPath != "" {
		cfg, err := loadFile(customPath)
		if err != nil {
			return DefaultRunnerConfig(), err
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(configFileName); userCfgPath != "" {
		if cfg, err := loadFile(userCfgPath); err == nil {
			return cfg, nil
		}
	}

	// Try local configs directory
	if cfg, err := loadFile(filepath.Join("configs", configFileName)); err == nil {
		return cfg, nil
	}

	// Use embedded default YAML
	cfg, err := Parse(defaultRunnerYAML)
	if err != nil {
		return DefaultRunnerConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// ResolvePath returns the file LoadRunner would read, or "" when only the
// embedded default applies.
func ResolvePath(customPath string) string {
	if customPath != "" {
		return customPath
	}
	candidates := []string{
		userConfigPath(configFileName),
		filepath.Join("configs", configFileName),
	}
	for _, p := range candidates {
		if p == "" {
			continue
		}
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// Parse decodes YAML over the default configuration. Degenerate values are
// kept as written so Sanitize can report them.
func Parse(data []byte) (RunnerConfig, error) {
	cfg := DefaultRunnerConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Marshal encodes the configuration as YAML.
func Marshal(cfg RunnerConfig) ([]byte, error) {
	return yaml.Marshal(cfg)
}

func loadFile(path string) (RunnerConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return RunnerConfig{}, fmt.Errorf("config: failed to read %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return RunnerConfig{}, fmt.Errorf("config: failed to parse %s: %w", path, err)
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".moonrunner", "configs", filename)
}

// ApplyPreset modifies the difficulty section based on a preset. It does not
// sanitize.
func ApplyPreset(cfg *RunnerConfig, preset DifficultyPreset) {
	d := &cfg.Difficulty
	switch preset {
	case DifficultyEasy:
		d.BaseSpeed = 420
		d.MaxSpeed = 760
		d.SpeedRamp = 6
		d.SpawnIntervalStart = 1400
		d.SpawnIntervalMin = 700
		cfg.Spawn.AirCooldownSegments = 3
	case DifficultyNormal:
		// Defaults are the normal curve.
	case DifficultyHard:
		d.BaseSpeed = 600
		d.MaxSpeed = 1050
		d.SpeedRamp = 14
		d.SpawnIntervalStart = 1000
		d.SpawnIntervalMin = 450
		d.SpawnIntervalRamp = 8
		cfg.Spawn.AirCooldownSegments = 1
	case DifficultyFixed:
		d.SpeedRamp = 0
		d.SpawnIntervalRamp = 0
	}
}

// Sanitize clamps degenerate tuning to playable bounds instead of failing.
// It returns a description of every adjustment made.
func (c *RunnerConfig) Sanitize() []string {
	var fixes []string
	fix := func(format string, args ...any) {
		fixes = append(fixes, fmt.Sprintf(format, args...))
	}
	def := DefaultRunnerConfig()

	d := &c.Difficulty
	if d.BaseSpeed < 0 {
		fix("difficulty.base_speed %v < 0, using 0", d.BaseSpeed)
		d.BaseSpeed = 0
	}
	if d.MaxSpeed < d.BaseSpeed {
		fix("difficulty.max_speed %v below base_speed, using %v", d.MaxSpeed, d.BaseSpeed)
		d.MaxSpeed = d.BaseSpeed
	}
	if d.SpeedRamp < 0 {
		fix("difficulty.speed_ramp %v < 0, using 0", d.SpeedRamp)
		d.SpeedRamp = 0
	}
	if d.SpawnIntervalStart < 0 {
		fix("difficulty.spawn_interval_start %v < 0, using 0", d.SpawnIntervalStart)
		d.SpawnIntervalStart = 0
	}
	if d.SpawnIntervalMin > d.SpawnIntervalStart {
		fix("difficulty.spawn_interval_min %v above spawn_interval_start, using %v", d.SpawnIntervalMin, d.SpawnIntervalStart)
		d.SpawnIntervalMin = d.SpawnIntervalStart
	}
	if d.SpawnIntervalMin < 0 {
		fix("difficulty.spawn_interval_min %v < 0, using 0", d.SpawnIntervalMin)
		d.SpawnIntervalMin = 0
	}
	if d.SpawnIntervalRamp < 0 {
		fix("difficulty.spawn_interval_ramp %v < 0, using 0", d.SpawnIntervalRamp)
		d.SpawnIntervalRamp = 0
	}

	s := &c.Spawn
	if s.SegmentWidth <= 0 {
		fix("spawn.segment_width %v <= 0, using %v", s.SegmentWidth, def.Spawn.SegmentWidth)
		s.SegmentWidth = def.Spawn.SegmentWidth
	}
	if s.FairnessWindow < 0 {
		fix("spawn.fairness_window %v < 0, using 0", s.FairnessWindow)
		s.FairnessWindow = 0
	}
	if s.AirCooldownSegments < 0 {
		fix("spawn.air_cooldown_segments %d < 0, using 0", s.AirCooldownSegments)
		s.AirCooldownSegments = 0
	}
	if s.MaxAttempts < 1 {
		fix("spawn.max_attempts %d < 1, using 1", s.MaxAttempts)
		s.MaxAttempts = 1
	}
	if s.AirSpeedFactor <= 0 {
		fix("spawn.air_speed_factor %v <= 0, using %v", s.AirSpeedFactor, def.Spawn.AirSpeedFactor)
		s.AirSpeedFactor = def.Spawn.AirSpeedFactor
	}

	e := &c.Encounter
	for _, cc := range []struct {
		name string
		c    *ChanceCurve
	}{{"ground_chance", &e.GroundChance}, {"air_chance", &e.AirChance}} {
		if cc.c.Base < 0 || cc.c.Base > 1 {
			fix("encounter.%s.base %v outside [0,1]", cc.name, cc.c.Base)
			cc.c.Base = clampF(cc.c.Base, 0, 1)
		}
		if cc.c.Max < cc.c.Base || cc.c.Max > 1 {
			fix("encounter.%s.max %v outside [base,1]", cc.name, cc.c.Max)
			cc.c.Max = clampF(cc.c.Max, cc.c.Base, 1)
		}
		if cc.c.Ramp < 0 {
			fix("encounter.%s.ramp %v < 0, using 0", cc.name, cc.c.Ramp)
			cc.c.Ramp = 0
		}
	}
	gm := &e.GroundMix
	if gm.RockSmall < 0 || gm.RockBig < 0 || gm.Crater < 0 || gm.RockSmall+gm.RockBig+gm.Crater <= 0 {
		fix("encounter.ground_mix has no usable weights, using defaults")
		*gm = def.Encounter.GroundMix
	}
	am := &e.AirMix
	if am.High < 0 || am.Mid < 0 || am.Low < 0 || am.High+am.Mid+am.Low <= 0 {
		fix("encounter.air_mix has no usable weights, using defaults")
		*am = def.Encounter.AirMix
	}

	o := &c.Obstacles
	for _, sz := range []struct {
		name string
		s    *Size
		def  Size
	}{
		{"rock_small", &o.RockSmall, def.Obstacles.RockSmall},
		{"rock_big", &o.RockBig, def.Obstacles.RockBig},
		{"crater", &o.Crater, def.Obstacles.Crater},
		{"meteor", &o.Meteor, def.Obstacles.Meteor},
	} {
		if sz.s.Width <= 0 || sz.s.Height <= 0 {
			fix("obstacles.%s size %vx%v not positive, using defaults", sz.name, sz.s.Width, sz.s.Height)
			*sz.s = sz.def
		}
	}

	if c.World.ViewportWidth <= 0 {
		fix("world.viewport_width %v <= 0, using %v", c.World.ViewportWidth, def.World.ViewportWidth)
		c.World.ViewportWidth = def.World.ViewportWidth
	}
	if c.Player.Width <= 0 || c.Player.Height <= 0 {
		fix("player size %vx%v not positive, using defaults", c.Player.Width, c.Player.Height)
		c.Player.Width, c.Player.Height = def.Player.Width, def.Player.Height
	}
	if c.Render.WorldTop >= c.World.GroundY {
		fix("render.world_top %v not above ground_y, using %v", c.Render.WorldTop, c.World.GroundY-c.Player.Height*4)
		c.Render.WorldTop = c.World.GroundY - c.Player.Height*4
	}
	if c.Render.GroundOffset < 1 {
		c.Render.GroundOffset = 1
	}

	return fixes
}
