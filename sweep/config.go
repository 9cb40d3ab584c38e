package sweep

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/weiihann/sortbench/workload"
)

// Config controls which cases a sweep runs.
type Config struct {
	// Iterations is the number of timed runs per algorithm per case.
	Iterations int `yaml:"iterations" validate:"gte=1"`

	// Sizes are 2^e for e in [MinExponent, MaxExponent). The largest
	// size must fit the int32 element range.
	MinExponent int `yaml:"min_exponent" validate:"gte=0,lte=30"`
	MaxExponent int `yaml:"max_exponent" validate:"lte=31,gtfield=MinExponent"`

	Distributions []string `yaml:"distributions" validate:"required,min=1,dive,required"`

	// Candidate is verified against Baseline, which must sort in place.
	Candidate string `yaml:"candidate" validate:"required"`
	Baseline  string `yaml:"baseline" validate:"required,nefield=Candidate"`
}

// DefaultConfig returns the full stats sweep: ten iterations over sizes
// 2^10 to 2^26, samplesort against stdsort.
func DefaultConfig() Config {
	return Config{
		Iterations:    10,
		MinExponent:   10,
		MaxExponent:   27,
		Distributions: workload.DefaultNames(),
		Candidate:     "samplesort",
		Baseline:      "stdsort",
	}
}

var validate = validator.New()

// Validate checks field ranges and cross-field constraints.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			first := verrs[0]

			return fmt.Errorf("invalid config: %s fails %q (value %v)",
				first.Field(), first.Tag(), first.Value())
		}

		return fmt.Errorf("invalid config: %w", err)
	}

	return nil
}

// Sizes returns the case sizes in sweep order.
func (c Config) Sizes() []int {
	sizes := make([]int, 0, max(c.MaxExponent-c.MinExponent, 0))
	for e := c.MinExponent; e < c.MaxExponent; e++ {
		sizes = append(sizes, 1<<e)
	}

	return sizes
}

// LoadConfig returns the defaults overlaid with the YAML file at path.
// An empty path yields the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	return cfg, nil
}
