package proposals

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
)

// String returns the plugin list, one activation per line.
func (p *Preset) String() string {
	var b strings.Builder
	if len(p.Plugins) == 0 {
		b.WriteString("(no plugins)\n")
		return b.String()
	}
	for _, a := range p.Plugins {
		writeActivation(&b, a)
	}
	return b.String()
}

// String returns "module" or "module {k: v, ...}" with sorted keys.
func (a Activation) String() string {
	var b strings.Builder
	writeActivation(&b, a)
	return strings.TrimSuffix(b.String(), "\n")
}

func writeActivation(b *strings.Builder, a Activation) {
	if a.Options == nil {
		fmt.Fprintf(b, "%s\n", a.Module)
		return
	}
	keys := make([]string, 0, len(a.Options))
	for k := range a.Options {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, fmt.Sprintf("%s: %v", k, a.Options[k]))
	}
	fmt.Fprintf(b, "%s {%s}\n", a.Module, strings.Join(pairs, ", "))
}

// MarshalJSON encodes the activation in the host's plugin list form:
// "module" without options, ["module", {options}] otherwise.
func (a Activation) MarshalJSON() ([]byte, error) {
	if a.Options == nil {
		return json.Marshal(a.Module)
	}
	return json.Marshal([]any{a.Module, map[string]any(a.Options)})
}

// MarshalJSON encodes the preset as {"plugins": [...]}.
func (p *Preset) MarshalJSON() ([]byte, error) {
	plugins := p.Plugins
	if plugins == nil {
		plugins = []Activation{}
	}
	return json.Marshal(struct {
		Plugins []Activation `json:"plugins"`
	}{plugins})
}
