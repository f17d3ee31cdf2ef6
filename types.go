package proposals

import (
	"fmt"
	"strings"
)

// Feature represents a language proposal that can be enabled via [Input].
//
// The numeric order of the constants is the catalog declaration order, which
// is also the order activations are emitted in.
type Feature int

const (
	// FeatureFunctionBind enables the function bind operator (stage 0).
	FeatureFunctionBind Feature = iota
	// FeatureExportDefaultFrom enables `export v from "mod"` (stage 1).
	FeatureExportDefaultFrom
	// FeaturePipelineOperator enables the pipeline operator (stage 1).
	FeaturePipelineOperator
	// FeatureDoExpressions enables do expressions (stage 1).
	FeatureDoExpressions
	// FeatureDecorators enables decorators (stage 2).
	// It must come before FeatureClassProperties.
	FeatureDecorators
	// FeatureFunctionSent enables the function.sent meta property (stage 2).
	FeatureFunctionSent
	// FeatureLogicalAssignmentOperators enables ||=, &&= and ??= (stage 2).
	FeatureLogicalAssignmentOperators
	// FeatureThrowExpressions enables throw expressions (stage 2).
	FeatureThrowExpressions
	// FeatureDynamicImport enables import() syntax (stage 3).
	FeatureDynamicImport
	// FeatureImportMeta enables import.meta syntax (stage 3).
	FeatureImportMeta
	// FeatureClassProperties enables class fields (stage 3).
	FeatureClassProperties
	// FeatureNumericSeparator enables 1_000_000 literals (stage 3).
	FeatureNumericSeparator
	// FeatureExportNamespaceFrom enables `export * as ns from "mod"` (stage 4).
	FeatureExportNamespaceFrom
)

var featureNames = map[Feature]string{
	FeatureFunctionBind:               "functionBind",
	FeatureExportDefaultFrom:          "exportDefaultFrom",
	FeaturePipelineOperator:           "pipelineOperator",
	FeatureDoExpressions:              "doExpressions",
	FeatureDecorators:                 "decorators",
	FeatureFunctionSent:               "functionSent",
	FeatureLogicalAssignmentOperators: "logicalAssignmentOperators",
	FeatureThrowExpressions:           "throwExpressions",
	FeatureDynamicImport:              "dynamicImport",
	FeatureImportMeta:                 "importMeta",
	FeatureClassProperties:            "classProperties",
	FeatureNumericSeparator:           "numericSeparator",
	FeatureExportNamespaceFrom:        "exportNamespaceFrom",
}

func (f Feature) String() string {
	if name, ok := featureNames[f]; ok {
		return name
	}
	return fmt.Sprintf("Feature(%d)", f)
}

// FeatureValues returns every known [Feature] in declaration order.
func FeatureValues() []Feature {
	values := make([]Feature, 0, len(catalog))
	for _, d := range catalog {
		values = append(values, d.Feature)
	}
	return values
}

// FeatureNames returns the input key of every known [Feature] in declaration order.
func FeatureNames() []string {
	names := make([]string, 0, len(catalog))
	for _, d := range catalog {
		names = append(names, d.Name)
	}
	return names
}

// ParseFeature returns the [Feature] whose input key matches name, ignoring case.
func ParseFeature(name string) (Feature, error) {
	name = strings.TrimSpace(name)
	for _, d := range catalog {
		if strings.EqualFold(d.Name, name) {
			return d.Feature, nil
		}
	}
	return 0, fmt.Errorf("unknown feature: %q", name)
}

// OptionType is the primitive type a sub-option value must have.
type OptionType int

const (
	// TypeBool requires a boolean sub-option value.
	TypeBool OptionType = iota
	// TypeString requires a string sub-option value.
	TypeString
)

func (t OptionType) String() string {
	switch t {
	case TypeBool:
		return "boolean"
	case TypeString:
		return "string"
	default:
		return fmt.Sprintf("OptionType(%d)", t)
	}
}

// matches reports whether v has the primitive type t.
func (t OptionType) matches(v any) bool {
	switch t {
	case TypeBool:
		_, ok := v.(bool)
		return ok
	case TypeString:
		_, ok := v.(string)
		return ok
	default:
		return false
	}
}

// Options holds the structured options of a single feature.
type Options map[string]any

// Clone returns a shallow copy of o. A nil Options clones to nil.
func (o Options) Clone() Options {
	if o == nil {
		return nil
	}
	copied := make(Options, len(o))
	for k, v := range o {
		copied[k] = v
	}
	return copied
}

// Input is the raw, unvalidated configuration handed over by the host.
//
// Keys are either reserved global keys ([KeyAll], [KeyAbsolutePaths],
// [KeyLoose]) or feature names. Values are left as decoded: booleans,
// mappings, or anything else, which [Validate] reports.
type Input map[string]any

// Reserved global keys.
const (
	KeyAll           = "all"
	KeyAbsolutePaths = "absolutePaths"
	KeyLoose         = "loose"
)

// reservedKeys lists the global keys in the order they are type-checked.
var reservedKeys = []string{KeyAll, KeyAbsolutePaths, KeyLoose}

// ValueKind tags the shape of a feature value.
type ValueKind int

const (
	// ValueAbsent means the feature key was not given.
	ValueAbsent ValueKind = iota
	// ValueBool means the feature was given as true or false.
	ValueBool
	// ValueObject means the feature was given structured options.
	ValueObject
	// ValueInvalid means the feature was given something else.
	ValueInvalid
)

func (k ValueKind) String() string {
	switch k {
	case ValueAbsent:
		return "absent"
	case ValueBool:
		return "boolean"
	case ValueObject:
		return "object"
	case ValueInvalid:
		return "invalid"
	default:
		return fmt.Sprintf("ValueKind(%d)", k)
	}
}

// Value is a feature value classified once at the input boundary.
type Value struct {
	Kind    ValueKind
	Bool    bool
	Options Options
}

// ClassifyValue decides the [ValueKind] of a raw input value.
// Mappings are copied so that later defaulting never touches the caller's data.
func ClassifyValue(v any) Value {
	switch x := v.(type) {
	case nil:
		return Value{Kind: ValueInvalid}
	case bool:
		return Value{Kind: ValueBool, Bool: x}
	case Options:
		return Value{Kind: ValueObject, Options: x.Clone()}
	case map[string]any:
		return Value{Kind: ValueObject, Options: Options(x).Clone()}
	case map[any]any:
		// YAML mappings with non-string keys decode this way.
		opts := make(Options, len(x))
		for k, val := range x {
			opts[fmt.Sprint(k)] = val
		}
		return Value{Kind: ValueObject, Options: opts}
	default:
		return Value{Kind: ValueInvalid}
	}
}

// Enabled reports whether the value turns its feature on.
func (v Value) Enabled() bool {
	switch v.Kind {
	case ValueBool:
		return v.Bool
	case ValueObject:
		return true
	default:
		return false
	}
}

// IsTrue reports whether the value is the boolean true.
func (v Value) IsTrue() bool {
	return v.Kind == ValueBool && v.Bool
}

// IsFalse reports whether the value is the boolean false.
func (v Value) IsFalse() bool {
	return v.Kind == ValueBool && !v.Bool
}
