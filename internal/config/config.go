// Package config resolves run configuration exactly once at startup into
// immutable values. Size limits come from PRIMER_SCOUT_* environment
// variables or an optional primer-scout.yaml; nothing in the engine reads
// the environment after this.
package config

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/viper"

	"github.com/yash27-lab/primer-scout/internal/guard"
)

const (
	envPrefix = "PRIMER_SCOUT"

	// Thread clamp bounds: a hostile or mistaken --threads value may not
	// allocate more than loadFactor×CPU workers, capped at hardCap.
	threadLoadFactor = 4
	threadHardCap    = 256
)

// Viper keys for the resource limits. The env form replaces '-' with '_',
// e.g. PRIMER_SCOUT_MAX_CONTIG_BASES.
const (
	keyMaxPrimerFileBytes    = "max-primer-file-bytes"
	keyMaxPrimerLineBytes    = "max-primer-line-bytes"
	keyMaxReferenceLineBytes = "max-reference-line-bytes"
	keyMaxContigBases        = "max-contig-bases"
)

// LoadLimits builds the resource limits from defaults, the optional config
// file, and the environment, in increasing precedence.
func LoadLimits() (guard.Limits, error) {
	v := viper.New()
	v.SetDefault(keyMaxPrimerFileBytes, int64(guard.DefaultMaxPrimerFileBytes))
	v.SetDefault(keyMaxPrimerLineBytes, guard.DefaultMaxPrimerLineBytes)
	v.SetDefault(keyMaxReferenceLineBytes, guard.DefaultMaxReferenceLineBytes)
	v.SetDefault(keyMaxContigBases, guard.DefaultMaxContigBases)

	v.SetConfigName("primer-scout")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return guard.Limits{}, fmt.Errorf("config file: %w", err)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	lim := guard.Limits{
		MaxPrimerFileBytes:    v.GetInt64(keyMaxPrimerFileBytes),
		MaxPrimerLineBytes:    v.GetInt(keyMaxPrimerLineBytes),
		MaxReferenceLineBytes: v.GetInt(keyMaxReferenceLineBytes),
		MaxContigBases:        v.GetInt(keyMaxContigBases),
	}
	if lim.MaxPrimerFileBytes <= 0 || lim.MaxPrimerLineBytes <= 0 ||
		lim.MaxReferenceLineBytes <= 0 || lim.MaxContigBases <= 0 {
		return guard.Limits{}, errors.New("resource limits must be positive")
	}
	return lim, nil
}

// ClampThreads maps a requested worker count into the safe range
// [1, min(requested, loadFactor×CPU, hardCap)]. Zero or negative requests
// mean "all CPUs". Out-of-range values clamp rather than fail: they threaten
// resource usage, not correctness.
func ClampThreads(requested int) int {
	hw := runtime.NumCPU()
	bound := hw * threadLoadFactor
	if bound > threadHardCap {
		bound = threadHardCap
	}
	if bound < 1 {
		bound = 1
	}
	if requested <= 0 {
		requested = hw
	}
	if requested > bound {
		return bound
	}
	return requested
}
