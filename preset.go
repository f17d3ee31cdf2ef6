package proposals

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
	"github.com/sirupsen/logrus"
)

// HostConstraint is the host compiler version range [Build] accepts by default.
// The prerelease floor admits 7.x betas and release candidates.
const HostConstraint = "^7.0.0-0"

// Host is the compiler integration the preset runs inside.
type Host interface {
	// Version returns the host compiler version, e.g. "7.24.0".
	Version() string
}

// HostVersion is a [Host] with a fixed version.
type HostVersion string

// Version implements [Host].
func (v HostVersion) Version() string {
	return string(v)
}

// Preset is the result of a successful [Build].
type Preset struct {
	Plugins []Activation
}

// AssertVersion returns a *[HostVersionError] unless host satisfies constraint.
func AssertVersion(host Host, constraint string) error {
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return fmt.Errorf("invalid host constraint %q: %w", constraint, err)
	}
	if host == nil {
		return &HostVersionError{Constraint: constraint, Err: ErrUnsupportedHost}
	}

	raw := host.Version()
	v, err := semver.NewVersion(raw)
	if err != nil {
		return &HostVersionError{Version: raw, Constraint: constraint, Err: fmt.Errorf("%w: %w", ErrUnsupportedHost, err)}
	}
	if !c.Check(v) {
		return &HostVersionError{Version: raw, Constraint: constraint, Err: ErrUnsupportedHost}
	}
	return nil
}

// Build checks the host version, validates in and resolves it.
//
// Validation failures are reported together as a *[ValidationError];
// no activations are returned in that case. A nil in is treated as empty.
func Build(host Host, in Input, opts ...Option) (*Preset, error) {
	cfg := newConfig(opts...)
	if err := AssertVersion(host, cfg.hostConstraint); err != nil {
		return nil, err
	}

	if errs := Validate(in); len(errs) > 0 {
		cfg.log.WithField("count", len(errs)).Debug("Rejected preset options")
		return nil, &ValidationError{Errors: errs}
	}

	plugins, err := Resolve(in, opts...)
	if err != nil {
		return nil, err
	}

	cfg.log.WithFields(logrus.Fields{
		"host":    host.Version(),
		"plugins": len(plugins),
	}).Debug("Built preset")
	return &Preset{Plugins: plugins}, nil
}
