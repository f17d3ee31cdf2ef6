package proposals

import (
	"slices"
)

// effectiveOptions is the per-feature view of an [Input] after the global
// keys have been consumed and folded into the feature values.
type effectiveOptions struct {
	all           bool
	absolutePaths bool
	loose         bool
	looseSet      bool

	features map[Feature]Value
	// unknown holds the keys that are neither reserved nor known features,
	// sorted.
	unknown []string
}

// newEffectiveOptions strips the reserved keys out of in, applies the "all"
// key and folds the global "loose" key into loose-capable features.
//
// The caller's Input and any mapping inside it are never modified.
func newEffectiveOptions(in Input) effectiveOptions {
	eo := effectiveOptions{
		features: make(map[Feature]Value, len(in)),
	}
	eo.all, _ = in[KeyAll].(bool)
	eo.absolutePaths, _ = in[KeyAbsolutePaths].(bool)
	eo.loose, eo.looseSet = in[KeyLoose].(bool)

	for key, raw := range in {
		if slices.Contains(reservedKeys, key) {
			continue
		}
		i, ok := catalogByName[key]
		if !ok {
			eo.unknown = append(eo.unknown, key)
			continue
		}
		eo.features[catalog[i].Feature] = ClassifyValue(raw)
	}
	slices.Sort(eo.unknown)

	// Explicit false values are kept: they exclude a feature under "all".
	if eo.all {
		for _, d := range catalog {
			if _, ok := eo.features[d.Feature]; !ok {
				eo.features[d.Feature] = Value{Kind: ValueBool, Bool: true}
			}
		}
	}

	if eo.looseSet {
		for _, d := range catalog {
			if !d.Loose {
				continue
			}
			v, ok := eo.features[d.Feature]
			if !ok || v.IsFalse() {
				continue
			}
			switch v.Kind {
			case ValueBool:
				eo.features[d.Feature] = Value{Kind: ValueObject, Options: Options{KeyLoose: eo.loose}}
			case ValueObject:
				// An explicit per-feature loose setting wins.
				if _, has := v.Options[KeyLoose]; !has {
					v.Options[KeyLoose] = eo.loose
				}
			}
		}
	}

	return eo
}

// value returns the effective value of f, or an absent value.
func (eo effectiveOptions) value(f Feature) Value {
	v, ok := eo.features[f]
	if !ok {
		return Value{Kind: ValueAbsent}
	}
	return v
}
