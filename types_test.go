package proposals

import (
	"reflect"
	"strings"
	"testing"
)

func TestFeature_String(t *testing.T) {
	tests := []struct {
		f    Feature
		want string
	}{
		{FeatureFunctionBind, "functionBind"},
		{FeatureExportDefaultFrom, "exportDefaultFrom"},
		{FeaturePipelineOperator, "pipelineOperator"},
		{FeatureDoExpressions, "doExpressions"},
		{FeatureDecorators, "decorators"},
		{FeatureFunctionSent, "functionSent"},
		{FeatureLogicalAssignmentOperators, "logicalAssignmentOperators"},
		{FeatureThrowExpressions, "throwExpressions"},
		{FeatureDynamicImport, "dynamicImport"},
		{FeatureImportMeta, "importMeta"},
		{FeatureClassProperties, "classProperties"},
		{FeatureNumericSeparator, "numericSeparator"},
		{FeatureExportNamespaceFrom, "exportNamespaceFrom"},
		{Feature(99), "Feature(99)"},
	}
	for _, tt := range tests {
		if got := tt.f.String(); got != tt.want {
			t.Errorf("Feature(%d).String() = %q, want %q", tt.f, got, tt.want)
		}
	}
}

func TestCatalog_DeclarationOrder(t *testing.T) {
	for i, d := range catalog {
		if d.Feature != Feature(i) {
			t.Errorf("catalog[%d].Feature = %v, want %v", i, d.Feature, Feature(i))
		}
		if d.Name != d.Feature.String() {
			t.Errorf("catalog[%d].Name = %q, want %q", i, d.Name, d.Feature.String())
		}
	}
	if FeatureDecorators >= FeatureClassProperties {
		t.Error("decorators must be declared before classProperties")
	}
}

func TestCatalog_ReturnsCopy(t *testing.T) {
	c := Catalog()
	c[0].Name = "mutated"
	if catalog[0].Name == "mutated" {
		t.Error("Catalog() exposed the internal table")
	}

	c[FeaturePipelineOperator].Mandatory["proposal"] = "hack"
	c[FeaturePipelineOperator].SubOptions[0].OneOf[0] = "hack"
	c[FeaturePipelineOperator].SubOptions[0].Key = "hack"

	d, _ := Lookup("decorators")
	d.Mandatory["legacy"] = false
	d.SubOptions[0].Key = "hack"

	cp, _ := FeatureClassProperties.Descriptor()
	cp.SubOptions[0].Type = TypeString

	got, err := Resolve(Input{"pipelineOperator": true, "decorators": true, "classProperties": true})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	want := []Options{
		{"proposal": PipelineMinimal},
		{"legacy": true},
		{"loose": true},
	}
	if len(got) != len(want) {
		t.Fatalf("len(Resolve()) = %d, want %d", len(got), len(want))
	}
	for i, a := range got {
		if !reflect.DeepEqual(a.Options, want[i]) {
			t.Errorf("Resolve()[%d].Options = %v, want %v", i, a.Options, want[i])
		}
	}

	if errs := Validate(Input{"pipelineOperator": map[string]any{"proposal": PipelineMinimal}}); len(errs) != 0 {
		t.Errorf("Validate() = %v, want no errors", errs)
	}
	if errs := Validate(Input{"classProperties": map[string]any{"loose": true}}); len(errs) != 0 {
		t.Errorf("Validate() = %v, want no errors", errs)
	}
}

func TestFeatureNames(t *testing.T) {
	names := FeatureNames()
	if len(names) != len(featureNames) {
		t.Fatalf("len(FeatureNames()) = %d, want %d", len(names), len(featureNames))
	}
	if names[0] != "functionBind" {
		t.Errorf("FeatureNames()[0] = %q, want functionBind", names[0])
	}
	if last := names[len(names)-1]; last != "exportNamespaceFrom" {
		t.Errorf("last FeatureNames() = %q, want exportNamespaceFrom", last)
	}

	values := FeatureValues()
	for i, f := range values {
		if f.String() != names[i] {
			t.Errorf("FeatureValues()[%d] = %v, want %q", i, f, names[i])
		}
	}
}

func TestLookup(t *testing.T) {
	d, ok := Lookup("classProperties")
	if !ok {
		t.Fatal("Lookup(classProperties) not found")
	}
	if !d.Structured || !d.Loose {
		t.Errorf("classProperties Structured=%v Loose=%v, want both true", d.Structured, d.Loose)
	}
	if _, ok := Lookup("ClassProperties"); ok {
		t.Error("Lookup must be case-sensitive")
	}
	if _, ok := Lookup("all"); ok {
		t.Error("reserved key must not be a feature")
	}
}

func TestFeature_Descriptor(t *testing.T) {
	d, ok := FeaturePipelineOperator.Descriptor()
	if !ok {
		t.Fatal("Descriptor() not found for pipelineOperator")
	}
	if got := d.Mandatory["proposal"]; got != PipelineMinimal {
		t.Errorf("pipelineOperator mandatory proposal = %v, want %q", got, PipelineMinimal)
	}
	so, ok := d.SubOption("proposal")
	if !ok {
		t.Fatal("SubOption(proposal) not found")
	}
	if so.Type != TypeString || len(so.OneOf) != 3 {
		t.Errorf("proposal sub-option = %+v", so)
	}

	for _, f := range []Feature{Feature(-1), Feature(999)} {
		if _, ok := f.Descriptor(); ok {
			t.Errorf("%v.Descriptor() ok = true, want false", f)
		}
	}
}

func TestParseFeature(t *testing.T) {
	got, err := ParseFeature(" ClassProperties ")
	if err != nil {
		t.Fatalf("ParseFeature() error = %v", err)
	}
	if got != FeatureClassProperties {
		t.Errorf("ParseFeature() = %v, want %v", got, FeatureClassProperties)
	}

	_, err = ParseFeature("ciao")
	if err == nil {
		t.Fatal("ParseFeature(ciao) expected error")
	}
	if !strings.Contains(err.Error(), `unknown feature: "ciao"`) {
		t.Errorf("error %q missing unknown feature context", err)
	}
}

func TestOptionType_String(t *testing.T) {
	tests := []struct {
		typ  OptionType
		want string
	}{
		{TypeBool, "boolean"},
		{TypeString, "string"},
		{OptionType(7), "OptionType(7)"},
	}
	for _, tt := range tests {
		if got := tt.typ.String(); got != tt.want {
			t.Errorf("OptionType(%d).String() = %q, want %q", tt.typ, got, tt.want)
		}
	}
}

func TestClassifyValue(t *testing.T) {
	tests := []struct {
		name    string
		in      any
		want    ValueKind
		enabled bool
	}{
		{"true", true, ValueBool, true},
		{"false", false, ValueBool, false},
		{"map", map[string]any{"loose": true}, ValueObject, true},
		{"empty map", map[string]any{}, ValueObject, true},
		{"options", Options{}, ValueObject, true},
		{"yaml map", map[any]any{1: true}, ValueObject, true},
		{"nil", nil, ValueInvalid, false},
		{"string", "yes", ValueInvalid, false},
		{"number", 1, ValueInvalid, false},
		{"list", []any{true}, ValueInvalid, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := ClassifyValue(tt.in)
			if v.Kind != tt.want {
				t.Errorf("ClassifyValue(%v).Kind = %v, want %v", tt.in, v.Kind, tt.want)
			}
			if v.Enabled() != tt.enabled {
				t.Errorf("ClassifyValue(%v).Enabled() = %v, want %v", tt.in, v.Enabled(), tt.enabled)
			}
		})
	}
}

func TestClassifyValue_Immutability(t *testing.T) {
	raw := map[string]any{"loose": false}
	v := ClassifyValue(raw)

	v.Options["loose"] = true
	v.Options["extra"] = 1

	if raw["loose"] != false {
		t.Error("original mapping was affected by mutation of classified value")
	}
	if _, ok := raw["extra"]; ok {
		t.Error("original mapping was affected by addition to classified value")
	}
}

func TestClassifyValue_NonStringKeys(t *testing.T) {
	v := ClassifyValue(map[any]any{1: true, "loose": false})
	want := Options{"1": true, "loose": false}
	if !reflect.DeepEqual(v.Options, want) {
		t.Errorf("ClassifyValue().Options = %v, want %v", v.Options, want)
	}
}

func TestValueKind_String(t *testing.T) {
	tests := []struct {
		k    ValueKind
		want string
	}{
		{ValueAbsent, "absent"},
		{ValueBool, "boolean"},
		{ValueObject, "object"},
		{ValueInvalid, "invalid"},
		{ValueKind(42), "ValueKind(42)"},
	}
	for _, tt := range tests {
		if got := tt.k.String(); got != tt.want {
			t.Errorf("ValueKind(%d).String() = %q, want %q", tt.k, got, tt.want)
		}
	}
}

func TestOptions_Clone(t *testing.T) {
	var nilOpts Options
	if nilOpts.Clone() != nil {
		t.Error("nil Options.Clone() != nil")
	}

	o := Options{"legacy": true}
	c := o.Clone()
	c["legacy"] = false
	if o["legacy"] != true {
		t.Error("Clone() shares storage with the original")
	}
}
