package proposals

import "github.com/sirupsen/logrus"

// config holds the configuration for a [Resolve] or [Build] call.
type config struct {
	resolver       ModuleResolver
	log            logrus.FieldLogger
	hostConstraint string
}

// Option configures [Resolve] and [Build].
type Option func(*config)

// WithResolver sets the collaborator used to turn bare module identifiers
// into absolute paths when the absolutePaths key is true.
func WithResolver(r ModuleResolver) Option {
	return func(c *config) {
		c.resolver = r
	}
}

// WithLogger sets the logger. Resolution is logged at debug level.
func WithLogger(log logrus.FieldLogger) Option {
	return func(c *config) {
		c.log = log
	}
}

// WithHostConstraint overrides [HostConstraint] for [Build].
func WithHostConstraint(constraint string) Option {
	return func(c *config) {
		c.hostConstraint = constraint
	}
}

func newConfig(opts ...Option) *config {
	c := &config{hostConstraint: HostConstraint}
	for _, opt := range opts {
		opt(c)
	}
	if c.log == nil {
		c.log = logrus.New()
	}
	return c
}
