package proposals

import (
	"fmt"
	"slices"
)

// SubOption describes one key accepted inside a feature's structured options.
type SubOption struct {
	Key  string
	Type OptionType
	// OneOf restricts the value to a closed set, in declaration order.
	OneOf []string
}

// Descriptor describes a [Feature]: its input key, the transformation module
// backing it, and the shape its value may take.
type Descriptor struct {
	Feature Feature
	// Name is the input key.
	Name string
	// Module is the bare identifier of the plugin implementing the feature.
	Module string
	// Stage is the proposal maturity stage (0-4).
	Stage int
	// Structured is true when the feature accepts structured options
	// in addition to a boolean.
	Structured bool
	SubOptions []SubOption
	// Loose is true when the feature has a loose sub-option that the global
	// loose key folds into.
	Loose bool
	// Mandatory holds the options forced when the feature is enabled with a
	// bare true.
	Mandatory Options
}

// SubOption returns the sub-option declared under key.
func (d Descriptor) SubOption(key string) (SubOption, bool) {
	for _, so := range d.SubOptions {
		if so.Key == key {
			return so, true
		}
	}
	return SubOption{}, false
}

// clone returns a copy of d that shares no maps or slices with the catalog.
func (d Descriptor) clone() Descriptor {
	if d.SubOptions != nil {
		subs := make([]SubOption, len(d.SubOptions))
		for i, so := range d.SubOptions {
			so.OneOf = slices.Clone(so.OneOf)
			subs[i] = so
		}
		d.SubOptions = subs
	}
	d.Mandatory = d.Mandatory.Clone()
	return d
}

// Module identifiers.
const (
	pluginPrefix = "@babel/plugin-proposal-"
	syntaxPrefix = "@babel/plugin-syntax-"
)

// Pipeline operator proposal variants, in declaration order.
const (
	PipelineMinimal = "minimal"
	PipelineSmart   = "smart"
	PipelineFSharp  = "fsharp"
)

// catalog is the feature table in declaration order.
// Decorators must be emitted before class properties.
var catalog = []Descriptor{
	{Feature: FeatureFunctionBind, Name: "functionBind", Module: pluginPrefix + "function-bind", Stage: 0},
	{Feature: FeatureExportDefaultFrom, Name: "exportDefaultFrom", Module: pluginPrefix + "export-default-from", Stage: 1},
	{
		Feature:    FeaturePipelineOperator,
		Name:       "pipelineOperator",
		Module:     pluginPrefix + "pipeline-operator",
		Stage:      1,
		Structured: true,
		SubOptions: []SubOption{
			{Key: "proposal", Type: TypeString, OneOf: []string{PipelineMinimal, PipelineSmart, PipelineFSharp}},
		},
		Mandatory: Options{"proposal": PipelineMinimal},
	},
	{Feature: FeatureDoExpressions, Name: "doExpressions", Module: pluginPrefix + "do-expressions", Stage: 1},
	{
		Feature:    FeatureDecorators,
		Name:       "decorators",
		Module:     pluginPrefix + "decorators",
		Stage:      2,
		Structured: true,
		SubOptions: []SubOption{
			{Key: "legacy", Type: TypeBool},
			{Key: "decoratorsBeforeExport", Type: TypeBool},
		},
		Mandatory: Options{"legacy": true},
	},
	{Feature: FeatureFunctionSent, Name: "functionSent", Module: pluginPrefix + "function-sent", Stage: 2},
	{Feature: FeatureLogicalAssignmentOperators, Name: "logicalAssignmentOperators", Module: pluginPrefix + "logical-assignment-operators", Stage: 2},
	{Feature: FeatureThrowExpressions, Name: "throwExpressions", Module: pluginPrefix + "throw-expressions", Stage: 2},
	{Feature: FeatureDynamicImport, Name: "dynamicImport", Module: syntaxPrefix + "dynamic-import", Stage: 3},
	{Feature: FeatureImportMeta, Name: "importMeta", Module: syntaxPrefix + "import-meta", Stage: 3},
	{
		Feature:    FeatureClassProperties,
		Name:       "classProperties",
		Module:     pluginPrefix + "class-properties",
		Stage:      3,
		Structured: true,
		SubOptions: []SubOption{
			{Key: "loose", Type: TypeBool},
		},
		Loose: true,
	},
	{Feature: FeatureNumericSeparator, Name: "numericSeparator", Module: pluginPrefix + "numeric-separator", Stage: 3},
	{Feature: FeatureExportNamespaceFrom, Name: "exportNamespaceFrom", Module: pluginPrefix + "export-namespace-from", Stage: 4},
}

var catalogByName = func() map[string]int {
	idx := make(map[string]int, len(catalog))
	for i, d := range catalog {
		idx[d.Name] = i
	}
	return idx
}()

// Lookup returns the [Descriptor] for an input key.
func Lookup(name string) (Descriptor, bool) {
	i, ok := catalogByName[name]
	if !ok {
		return Descriptor{}, false
	}
	return catalog[i].clone(), true
}

// Descriptor returns the catalog entry for f.
// Returns false as the second value if the feature is unknown.
func (f Feature) Descriptor() (Descriptor, bool) {
	if f < 0 || int(f) >= len(catalog) {
		return Descriptor{}, false
	}
	return catalog[f].clone(), true
}

// Catalog returns a copy of the feature table in declaration order.
func Catalog() []Descriptor {
	out := make([]Descriptor, len(catalog))
	for i, d := range catalog {
		out[i] = d.clone()
	}
	return out
}

// legacyLooseRule ties a feature that must run in loose mode to a peer
// feature configured in legacy mode.
type legacyLooseRule struct {
	feature  Feature
	peer     Feature
	key      string
	sentinel bool
}

// classPropertiesUnderLegacyDecorators: legacy decorators only work with
// class properties in loose mode.
var classPropertiesUnderLegacyDecorators = legacyLooseRule{
	feature:  FeatureClassProperties,
	peer:     FeatureDecorators,
	key:      "legacy",
	sentinel: true,
}

// peerInLegacyMode reports whether the peer's effective value selects legacy
// mode. A bare true counts when the peer's mandatory options select it.
func (r legacyLooseRule) peerInLegacyMode(peer Value) bool {
	switch peer.Kind {
	case ValueBool:
		if !peer.Bool {
			return false
		}
		v, ok := catalog[r.peer].Mandatory[r.key].(bool)
		return ok && v == r.sentinel
	case ValueObject:
		v, ok := peer.Options[r.key].(bool)
		return ok && v == r.sentinel
	default:
		return false
	}
}

// featureNotLoose reports whether the feature was explicitly given structured
// options without loose set to true.
func (r legacyLooseRule) featureNotLoose(v Value) bool {
	if v.Kind != ValueObject {
		return false
	}
	loose, ok := v.Options[KeyLoose].(bool)
	return !ok || !loose
}

func (r legacyLooseRule) violation() string {
	return fmt.Sprintf("'%s.%s' option must be true, as legacy %s are being used.", r.feature, KeyLoose, r.peer)
}
