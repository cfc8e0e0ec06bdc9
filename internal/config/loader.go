package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Agent silhouettes understood by the collision layer.
const (
	ShapeBox     = "box"
	ShapeEllipse = "ellipse"
)

// LoadSim loads the simulation configuration.
// Search order: customPath -> ~/.neuroflap/configs/flappy.yaml -> ./configs/flappy.yaml -> embedded default
// Files only need to name the values they override.
func LoadSim(customPath string) (SimConfig, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return SimConfig{}, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := parseSim(data)
		if err != nil {
			return SimConfig{}, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	if userCfgPath := userConfigPath("flappy.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parseSim(data); err == nil {
				return cfg, nil
			}
		}
	}

	if data, err := os.ReadFile("configs/flappy.yaml"); err == nil {
		if cfg, err := parseSim(data); err == nil {
			return cfg, nil
		}
	}

	cfg, err := parseSim(defaultSimYAML)
	if err != nil {
		return DefaultSimConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// parseSim decodes YAML over the built-in defaults and validates the result.
func parseSim(data []byte) (SimConfig, error) {
	cfg := DefaultSimConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return SimConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return SimConfig{}, err
	}
	return cfg, nil
}

// Validate rejects configurations the simulation cannot run.
func (c SimConfig) Validate() error {
	var errs []error

	if c.World.Width <= 0 || c.World.Height <= 0 {
		errs = append(errs, errors.New("world size must be positive"))
	}
	if c.World.Floor <= 0 {
		errs = append(errs, errors.New("world floor must be positive"))
	}
	if c.Agent.Width <= 0 || c.Agent.Height <= 0 {
		errs = append(errs, errors.New("agent size must be positive"))
	}
	if c.Agent.EffectiveHeight < 0 {
		errs = append(errs, errors.New("agent effective_height must not be negative"))
	}
	if c.Agent.Shape != ShapeBox && c.Agent.Shape != ShapeEllipse {
		errs = append(errs, fmt.Errorf("agent shape %q is not %q or %q", c.Agent.Shape, ShapeBox, ShapeEllipse))
	}
	if c.Agent.Terminal <= 0 {
		errs = append(errs, errors.New("agent terminal_displacement must be positive"))
	}
	if c.Agent.MinTilt > c.Agent.MaxTilt {
		errs = append(errs, errors.New("agent min_tilt exceeds max_tilt"))
	}
	if c.Obstacles.Gap <= 0 {
		errs = append(errs, errors.New("obstacles gap must be positive"))
	}
	if c.Obstacles.Width <= 0 || c.Obstacles.BarrierHeight <= 0 {
		errs = append(errs, errors.New("obstacle size must be positive"))
	}
	if c.Obstacles.MaxGapCenter <= c.Obstacles.MinGapCenter {
		errs = append(errs, errors.New("obstacles max_gap_center must exceed min_gap_center"))
	}
	if c.Obstacles.Velocity <= 0 {
		errs = append(errs, errors.New("obstacles velocity must be positive"))
	}
	if c.Episode.MaxTicks < 0 || c.Episode.MaxScore < 0 {
		errs = append(errs, errors.New("episode caps must not be negative"))
	}
	if c.Episode.TickRate <= 0 {
		errs = append(errs, errors.New("episode tick_rate must be positive"))
	}
	if c.Evolution.Generations < 0 || c.Evolution.PopSize < 0 {
		errs = append(errs, errors.New("evolution counts must not be negative"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: invalid: %w", errors.Join(errs...))
	}
	return nil
}

// WriteYAML saves the configuration next to a run's output.
func (c SimConfig) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("config: failed to encode: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: failed to write %s: %w", path, err)
	}
	return nil
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".neuroflap", "configs", filename)
}
