package openmht

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/ini.v1"
)

// ErrConfig indicates an invalid parameter value or a malformed, incomplete
// or unreadable parameter file. Configuration errors abort the run.
var ErrConfig = errors.New("openmht: invalid configuration")

// Params holds the eight tracker parameters.
type Params struct {
	V     int     // image area in pixel units; sets the missed-detection score ln(1 - 1/v)
	DTh   float64 // squared-Mahalanobis gating threshold
	K     float64 // initial gain seed
	Q     float64 // process-noise scale, Q = qI
	R     float64 // measurement-noise scalar
	N     int     // N-scan pruning look-back in frames
	BTh   int     // maximum branches per root
	NMiss int     // maximum consecutive missed detections before cull
}

// DefaultParams returns the reference parameter set for VGA-sized scenes.
func DefaultParams() Params {
	return Params{
		V:     307200,
		DTh:   1000,
		K:     0,
		Q:     1e-5,
		R:     0.01,
		N:     1,
		BTh:   100,
		NMiss: 3,
	}
}

func (p Params) validate() error {
	switch {
	case p.V < 2:
		return fmt.Errorf("%w: v must be at least 2, got %d", ErrConfig, p.V)
	case p.DTh <= 0:
		return fmt.Errorf("%w: dth must be positive, got %g", ErrConfig, p.DTh)
	case p.Q < 0:
		return fmt.Errorf("%w: q must be non-negative, got %g", ErrConfig, p.Q)
	case p.R < 0:
		return fmt.Errorf("%w: r must be non-negative, got %g", ErrConfig, p.R)
	case p.N < 0:
		return fmt.Errorf("%w: n must be non-negative, got %d", ErrConfig, p.N)
	case p.BTh < 1:
		return fmt.Errorf("%w: bth must be at least 1, got %d", ErrConfig, p.BTh)
	case p.NMiss < 0:
		return fmt.Errorf("%w: nmiss must be non-negative, got %d", ErrConfig, p.NMiss)
	}
	return nil
}

// paramKeys are the required parameter file keys.
var paramKeys = []string{"v", "dth", "k", "q", "r", "n", "bth", "nmiss"}

// LoadParams reads a line-oriented key=value parameter file with '#'
// comments. All eight keys must appear.
func LoadParams(path string) (Params, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return Params{}, fmt.Errorf("%w: %v", ErrConfig, err)
	}
	sec := cfg.Section("")

	var missing []string
	for _, key := range paramKeys {
		if !sec.HasKey(key) {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return Params{}, fmt.Errorf("%w: parameters not found: %s", ErrConfig, strings.Join(missing, ", "))
	}

	intKey := func(name string) (int, error) {
		v, err := sec.Key(name).Int()
		if err != nil {
			return 0, fmt.Errorf("%w: parameter %s: %v", ErrConfig, name, err)
		}
		return v, nil
	}
	floatKey := func(name string) (float64, error) {
		v, err := sec.Key(name).Float64()
		if err != nil {
			return 0, fmt.Errorf("%w: parameter %s: %v", ErrConfig, name, err)
		}
		return v, nil
	}

	var p Params
	if p.V, err = intKey("v"); err != nil {
		return Params{}, err
	}
	if p.DTh, err = floatKey("dth"); err != nil {
		return Params{}, err
	}
	if p.K, err = floatKey("k"); err != nil {
		return Params{}, err
	}
	if p.Q, err = floatKey("q"); err != nil {
		return Params{}, err
	}
	if p.R, err = floatKey("r"); err != nil {
		return Params{}, err
	}
	if p.N, err = intKey("n"); err != nil {
		return Params{}, err
	}
	if p.BTh, err = intKey("bth"); err != nil {
		return Params{}, err
	}
	if p.NMiss, err = intKey("nmiss"); err != nil {
		return Params{}, err
	}

	if err := p.validate(); err != nil {
		return Params{}, err
	}
	return p, nil
}
