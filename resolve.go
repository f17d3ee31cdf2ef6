package proposals

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Activation is one resolved plugin, ready to be handed to the host compiler.
type Activation struct {
	Feature Feature
	// Module is the plugin identifier, resolved when absolute paths are requested.
	Module string
	// Options is nil when the plugin runs with its own defaults.
	Options Options
}

// Resolve computes the plugin activations for in, in catalog order.
//
// Resolve assumes [Validate] returned no errors for in; it does not
// re-validate. Its only failure is a module resolution error.
func Resolve(in Input, opts ...Option) ([]Activation, error) {
	cfg := newConfig(opts...)
	eo := newEffectiveOptions(in)

	rule := classPropertiesUnderLegacyDecorators
	peerLegacy := rule.peerInLegacyMode(eo.value(rule.peer))

	var out []Activation
	for _, d := range catalog {
		v, ok := eo.features[d.Feature]
		if !ok || !v.Enabled() {
			continue
		}

		module, err := cfg.module(d, eo.absolutePaths)
		if err != nil {
			return nil, err
		}

		act := Activation{Feature: d.Feature, Module: module}
		switch {
		case v.Kind == ValueObject:
			act.Options = v.Options.Clone()
		case d.Feature == rule.feature && peerLegacy:
			act.Options = Options{KeyLoose: true}
		case d.Mandatory != nil:
			act.Options = d.Mandatory.Clone()
		}

		cfg.log.WithFields(logrus.Fields{
			"feature": d.Name,
			"module":  module,
		}).Debug("Activating plugin")
		out = append(out, act)
	}

	cfg.log.WithField("count", len(out)).Debug("Resolved plugin activations")
	return out, nil
}

// module returns the identifier to emit for d.
func (c *config) module(d Descriptor, absolute bool) (string, error) {
	if !absolute {
		return d.Module, nil
	}
	if c.resolver == nil {
		return "", fmt.Errorf("resolve %s: %w", d.Module, ErrNoModuleResolver)
	}
	resolved, err := c.resolver.ResolveModule(d.Module)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", d.Module, err)
	}
	return resolved, nil
}
