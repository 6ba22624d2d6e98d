package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/cube-arcade/internal/games/cubes/core"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("kind", validateKind)
}

// validateKind accepts the name of a kind the player may steer.
func validateKind(fl validator.FieldLevel) bool {
	k, err := core.ParseKind(fl.Field().String())
	return err == nil && k != core.White
}

// Load loads cubes configuration and validates it.
// Search order: customPath -> ~/.cubes/configs/cubes.yaml -> ./configs/cubes.yaml -> embedded default.
// Files only need to set the keys they change.
func Load(customPath string) (CubesConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return CubesConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parse(data)
		if err != nil {
			return CubesConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory, then the local configs directory
	for _, p := range []string{userConfigPath("cubes.yaml"), filepath.Join("configs", "cubes.yaml")} {
		if p == "" {
			continue
		}
		data, err := os.ReadFile(p)
		if err != nil {
			continue
		}
		cfg, err := parse(data)
		if err != nil {
			return CubesConfig{}, fmt.Errorf("failed to parse config %s: %w", p, err)
		}
		return cfg, nil
	}

	// Use embedded default YAML
	cfg, err := parse(defaultCubesYAML)
	if err != nil {
		return DefaultCubesConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// parse decodes data over the defaults and validates the result.
func parse(data []byte) (CubesConfig, error) {
	cfg := DefaultCubesConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return CubesConfig{}, err
	}
	if err := Validate(cfg); err != nil {
		return CubesConfig{}, err
	}
	return cfg, nil
}

// Validate checks field constraints and reports every violation.
func Validate(cfg CubesConfig) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, len(verrs))
	for i, fe := range verrs {
		msgs[i] = fmt.Sprintf("%s: failed %q (value %v)", fieldPath(fe.Namespace()), fe.Tag(), fe.Value())
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

// fieldPath turns "CubesConfig.Timing.StepFrames" into "Timing.StepFrames".
func fieldPath(ns string) string {
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return ns
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".cubes", "configs", filename)
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(p string) (string, error) {
	if p == "" || p[0] != '~' {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot expand home directory: %w", err)
	}
	return filepath.Join(home, p[1:]), nil
}
