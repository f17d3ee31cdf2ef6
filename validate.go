package proposals

import (
	"fmt"
	"slices"
)

// Validate checks in against the feature catalog and returns every violated
// constraint, in discovery order. An empty result means in is valid.
//
// Validate does not stop at the first problem and never modifies in.
func Validate(in Input) []*OptionError {
	var errs []*OptionError

	for _, key := range reservedKeys {
		raw, ok := in[key]
		if !ok {
			continue
		}
		if _, isBool := raw.(bool); !isBool {
			errs = append(errs, &OptionError{
				Kind:    KindType,
				Option:  key,
				Message: fmt.Sprintf("'%s' option must be boolean.", key),
			})
		}
	}

	eo := newEffectiveOptions(in)

	if len(eo.unknown) > 0 {
		errs = append(errs, &OptionError{
			Kind:    KindUnknown,
			Message: fmt.Sprintf("unknown %s: %s", plural(len(eo.unknown), "option", "options"), quoteList(eo.unknown)),
		})
	}

	valid := make(map[Feature]bool, len(eo.features))
	for _, d := range catalog {
		v, ok := eo.features[d.Feature]
		if !ok {
			continue
		}
		featureErrs := validateFeature(d, v)
		valid[d.Feature] = len(featureErrs) == 0
		errs = append(errs, featureErrs...)
	}

	rule := classPropertiesUnderLegacyDecorators
	feature, peer := eo.value(rule.feature), eo.value(rule.peer)
	if valid[rule.feature] && valid[rule.peer] &&
		feature.Enabled() && rule.peerInLegacyMode(peer) && rule.featureNotLoose(feature) {
		errs = append(errs, &OptionError{
			Kind:    KindCompat,
			Option:  rule.feature.String() + "." + KeyLoose,
			Message: rule.violation(),
		})
	}

	return errs
}

// validateFeature checks the shape of a single feature value.
func validateFeature(d Descriptor, v Value) []*OptionError {
	switch v.Kind {
	case ValueBool:
		return nil
	case ValueObject:
		if d.Structured {
			return validateSubOptions(d, v.Options)
		}
	}

	msg := fmt.Sprintf("'%s' option must be a boolean.", d.Name)
	if d.Structured {
		msg = fmt.Sprintf("'%s' option must be a boolean or an Object.", d.Name)
	}
	return []*OptionError{{Kind: KindType, Option: d.Name, Message: msg}}
}

// validateSubOptions checks declared sub-option types and closed sets,
// then reports undeclared sub-options in one error.
func validateSubOptions(d Descriptor, opts Options) []*OptionError {
	var errs []*OptionError

	for _, so := range d.SubOptions {
		raw, ok := opts[so.Key]
		if !ok {
			continue
		}
		name := d.Name + "." + so.Key
		if !so.Type.matches(raw) {
			errs = append(errs, &OptionError{
				Kind:    KindType,
				Option:  name,
				Message: fmt.Sprintf("'%s' option must be a %s.", name, so.Type),
			})
			continue
		}
		if s, isString := raw.(string); len(so.OneOf) > 0 && (!isString || !slices.Contains(so.OneOf, s)) {
			errs = append(errs, &OptionError{
				Kind:    KindEnum,
				Option:  name,
				Message: fmt.Sprintf("'%s' option must be one of: %s.", name, quoteList(so.OneOf)),
			})
		}
	}

	var unknown []string
	for key := range opts {
		if _, ok := d.SubOption(key); !ok {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) > 0 {
		slices.Sort(unknown)
		errs = append(errs, &OptionError{
			Kind:   KindUnknown,
			Option: d.Name,
			Message: fmt.Sprintf("'%s' option contained %s: %s",
				d.Name, plural(len(unknown), "an unknown option", "unknown options"), quoteList(unknown)),
		})
	}

	return errs
}
