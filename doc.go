// Package proposals turns a flat set of language-proposal toggles into the
// ordered plugin list a source compiler should run.
//
// The package never parses or transforms source text. It only decides which
// transformation plugins to activate and with which options, so that the host
// compiler can load them.
//
// # API Model
//
// The pipeline has three steps, each usable on its own:
//   - [Validate] checks an [Input] and returns every violated constraint
//   - [Resolve] turns a valid [Input] into [Activation] items
//   - [Build] asserts the host version, validates, and resolves in one call
//
// [Resolve] must only be called on input [Validate] accepted.
//
// Output contract (frozen):
//   - activations follow the catalog declaration order, never input order
//   - decorators always come before class properties
//   - a feature set to false is never emitted, even with the "all" key
//   - the caller's [Input] is never modified
//
// # Quick Build
//
//	preset, err := proposals.Build(proposals.HostVersion("7.24.0"), proposals.Input{
//	    "decorators":      true,
//	    "classProperties": true,
//	})
//	if err != nil {
//	    var ve *proposals.ValidationError
//	    if errors.As(err, &ve) {
//	        log.Fatal(ve)
//	    }
//	    log.Fatal(err)
//	}
//	for _, p := range preset.Plugins {
//	    fmt.Println(p)
//	}
//
// # Global keys
//
//   - "all": enables every feature not explicitly set
//   - "loose": default for the loose sub-option of features that have one;
//     an explicit per-feature loose setting wins
//   - "absolutePaths": emit module identifiers through the [ModuleResolver]
//     configured with [WithResolver]
//
// # Types
//
// [Feature] enumerates the catalog; [Descriptor] carries each feature's shape
// rules. [Value] is the closed sum type an input value is classified into.
//
// [OptionError] describes one violated constraint with a stable [ErrorKind].
// [ValidationError] aggregates them; its message joins the individual
// messages with newlines when there is more than one.
package proposals
