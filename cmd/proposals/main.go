package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"

	"github.com/leodido/proposals"
	"github.com/leodido/structcli"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/thediveo/enumflag/v2"
)

// Build metadata injected via ldflags.
// When built without ldflags (e.g., plain `go build`), these remain
// at their zero values and the version command omits them gracefully.
var (
	version = ""
	commit  = ""
	date    = ""
)

func main() {
	root := &cobra.Command{
		Use:   "proposals",
		Short: "Resolve language proposal toggles into a compiler plugin list",
		Long: `proposals validates a set of language proposal toggles and prints the
ordered plugin list a source compiler should load for them.

Use it to check preset options in CI or to inspect what a configuration
expands to before handing it to the compiler.`,
		SilenceUsage: true,
	}

	root.AddCommand(resolveCmd())
	root.AddCommand(validateCmd())
	root.AddCommand(featuresCmd())
	root.AddCommand(versionCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// InputOptions defines the flags that build a preset input.
type InputOptions struct {
	Config        string       `flag:"config" flagshort:"c" flagdescr:"Read options from a YAML or JSON file ('-' for stdin)"`
	Enable        featureFlags `flag:"enable" flagshort:"e" flagdescr:"Features to enable (see 'proposals features')" flagcustom:"true"`
	Disable       featureFlags `flag:"disable" flagshort:"d" flagdescr:"Features to disable, also under --all" flagcustom:"true"`
	All           bool         `flag:"all" flagshort:"a" flagdescr:"Enable every feature not explicitly disabled"`
	Loose         bool         `flag:"loose" flagdescr:"Default loose mode for features that support it"`
	AbsolutePaths bool         `flag:"absolute-paths" flagdescr:"Emit plugin paths resolved under --root"`
	Root          string       `flag:"root" flagdescr:"Directory whose node_modules holds the plugins"`
	HostVersion   string       `flag:"host-version" flagdescr:"Version of the host compiler"`
	JSON          bool         `flag:"json" flagshort:"j" flagdescr:"Output in JSON format"`
	Verbose       bool         `flag:"verbose" flagshort:"v" flagdescr:"Log resolution steps to stderr"`
}

func newInputOptions() *InputOptions {
	return &InputOptions{HostVersion: "7.0.0"}
}

func (o *InputOptions) Attach(c *cobra.Command) error {
	return structcli.Define(c, o)
}

func (o *InputOptions) DefineEnable(name, short, descr string, structField reflect.StructField, fieldValue reflect.Value) (pflag.Value, string) {
	fieldPtr := fieldValue.Addr().Interface().(*featureFlags)
	*fieldPtr = nil
	return fieldPtr, descr
}

func (o *InputOptions) DecodeEnable(input any) (any, error) {
	s, ok := input.(string)
	if !ok {
		return input, nil
	}
	return parseFeatureFlags(s)
}

func (o *InputOptions) CompleteEnable(c *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return completeFeatures(toComplete)
}

func (o *InputOptions) DefineDisable(name, short, descr string, structField reflect.StructField, fieldValue reflect.Value) (pflag.Value, string) {
	fieldPtr := fieldValue.Addr().Interface().(*featureFlags)
	*fieldPtr = nil
	return fieldPtr, descr
}

func (o *InputOptions) DecodeDisable(input any) (any, error) {
	s, ok := input.(string)
	if !ok {
		return input, nil
	}
	return parseFeatureFlags(s)
}

func (o *InputOptions) CompleteDisable(c *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return completeFeatures(toComplete)
}

// input reads the config document, if any, and lays the flags over it.
func (o *InputOptions) input(flags *pflag.FlagSet, stdin io.Reader) (proposals.Input, error) {
	in := proposals.Input{}
	if o.Config != "" {
		var (
			decoded proposals.Input
			err     error
		)
		if o.Config == "-" {
			decoded, err = proposals.DecodeInput(stdin)
		} else {
			decoded, err = readInputFile(o.Config)
		}
		if err != nil {
			return nil, err
		}
		in = decoded
	}

	if o.All {
		in[proposals.KeyAll] = true
	}
	if flags.Changed("loose") {
		in[proposals.KeyLoose] = o.Loose
	}
	if o.AbsolutePaths {
		in[proposals.KeyAbsolutePaths] = true
	}
	for _, f := range o.Enable {
		in[f.String()] = true
	}
	for _, f := range o.Disable {
		in[f.String()] = false
	}
	return in, nil
}

func (o *InputOptions) logger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	if o.Verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	return log
}

func (o *InputOptions) buildOptions() []proposals.Option {
	opts := []proposals.Option{proposals.WithLogger(o.logger())}
	if o.Root != "" {
		opts = append(opts, proposals.WithResolver(proposals.DirResolver{Root: o.Root}))
	}
	return opts
}

func readInputFile(path string) (proposals.Input, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	defer f.Close()

	in, err := proposals.DecodeInput(f)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return in, nil
}

func resolveCmd() *cobra.Command {
	opts := newInputOptions()

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Print the plugin list for the given options",
		PreRunE: func(c *cobra.Command, args []string) error {
			return structcli.Unmarshal(c, opts)
		},
		RunE: func(c *cobra.Command, args []string) error {
			in, err := opts.input(c.Flags(), c.InOrStdin())
			if err != nil {
				return err
			}

			preset, err := proposals.Build(proposals.HostVersion(opts.HostVersion), in, opts.buildOptions()...)
			if err != nil {
				var ve *proposals.ValidationError
				if errors.As(err, &ve) {
					if opts.JSON {
						_ = printJSON(map[string]any{
							"ok":     false,
							"errors": ve.Messages(),
						})
						os.Exit(1)
					}
					fmt.Fprintln(os.Stderr, ve.Error())
					os.Exit(1)
				}
				return err
			}

			if opts.JSON {
				return printJSON(preset)
			}
			fmt.Print(preset)
			return nil
		},
	}

	if err := opts.Attach(cmd); err != nil {
		panic(err)
	}
	return cmd
}

func validateCmd() *cobra.Command {
	opts := newInputOptions()

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check the given options without resolving them",
		Long: `Check the given options against the feature catalog.
Exits with code 0 if the options are valid, 1 otherwise.`,
		PreRunE: func(c *cobra.Command, args []string) error {
			return structcli.Unmarshal(c, opts)
		},
		RunE: func(c *cobra.Command, args []string) error {
			in, err := opts.input(c.Flags(), c.InOrStdin())
			if err != nil {
				return err
			}

			errs := proposals.Validate(in)
			msgs := (&proposals.ValidationError{Errors: errs}).Messages()

			if opts.JSON {
				if err := printJSON(map[string]any{"ok": len(errs) == 0, "errors": msgs}); err != nil {
					return err
				}
			} else if len(errs) == 0 {
				fmt.Println("OK: configuration is valid")
			} else {
				for _, m := range msgs {
					fmt.Fprintf(os.Stderr, "FAIL: %s\n", m)
				}
			}

			if len(errs) > 0 {
				os.Exit(1)
			}
			return nil
		},
	}

	if err := opts.Attach(cmd); err != nil {
		panic(err)
	}
	return cmd
}

// FeaturesOptions defines flags for the features subcommand.
type FeaturesOptions struct {
	JSON bool `flag:"json" flagshort:"j" flagdescr:"Output in JSON format"`
}

func (o *FeaturesOptions) Attach(c *cobra.Command) error {
	return structcli.Define(c, o)
}

// featureInfo is the JSON form of a catalog entry.
type featureInfo struct {
	Name       string            `json:"name"`
	Module     string            `json:"module"`
	Stage      int               `json:"stage"`
	SubOptions []string          `json:"sub_options,omitempty"`
	Defaults   proposals.Options `json:"defaults,omitempty"`
}

func featuresCmd() *cobra.Command {
	opts := &FeaturesOptions{}

	cmd := &cobra.Command{
		Use:   "features",
		Short: "List the known features in plugin order",
		PreRunE: func(c *cobra.Command, args []string) error {
			return structcli.Unmarshal(c, opts)
		},
		RunE: func(c *cobra.Command, args []string) error {
			infos := catalogInfo()
			if opts.JSON {
				return printJSON(infos)
			}
			for _, fi := range infos {
				fmt.Printf("%-28s stage %d  %s\n", fi.Name, fi.Stage, fi.Module)
				if len(fi.SubOptions) > 0 {
					fmt.Printf("%-28s options: %s\n", "", strings.Join(fi.SubOptions, ", "))
				}
			}
			return nil
		},
	}

	if err := opts.Attach(cmd); err != nil {
		panic(err)
	}
	return cmd
}

func catalogInfo() []featureInfo {
	descriptors := proposals.Catalog()
	infos := make([]featureInfo, 0, len(descriptors))
	for _, d := range descriptors {
		fi := featureInfo{
			Name:     d.Name,
			Module:   d.Module,
			Stage:    d.Stage,
			Defaults: d.Mandatory,
		}
		for _, so := range d.SubOptions {
			desc := fmt.Sprintf("%s (%s)", so.Key, so.Type)
			if len(so.OneOf) > 0 {
				desc = fmt.Sprintf("%s (%s)", so.Key, strings.Join(so.OneOf, "|"))
			}
			fi.SubOptions = append(fi.SubOptions, desc)
		}
		infos = append(infos, fi)
	}
	return infos
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show tool version and supported host range",
		RunE: func(c *cobra.Command, args []string) error {
			if version != "" {
				fmt.Printf("proposals %s", version)
				if commit != "" {
					fmt.Printf(" (%s)", commit)
				}
				if date != "" {
					fmt.Printf(" built %s", date)
				}
				fmt.Println()
			} else {
				fmt.Println("proposals (dev)")
			}
			fmt.Printf("Host compiler: %s\n", proposals.HostConstraint)
			return nil
		},
	}
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func availableFeatures() string {
	return strings.Join(proposals.FeatureNames(), ", ")
}

type featureFlags []proposals.Feature

var featureIdentifierMap = func() map[proposals.Feature][]string {
	ids := make(map[proposals.Feature][]string, len(proposals.FeatureValues()))
	for _, f := range proposals.FeatureValues() {
		ids[f] = []string{f.String()}
	}
	return ids
}()

func (r *featureFlags) String() string {
	names := make([]string, 0, len(*r))
	for _, f := range *r {
		names = append(names, f.String())
	}

	return strings.Join(names, ",")
}

func (r *featureFlags) Set(input string) error {
	features, err := parseFeatureFlags(input)
	if err != nil {
		return err
	}

	*r = append(*r, features...)
	return nil
}

func (r *featureFlags) Type() string {
	return "feature"
}

func parseFeatureFlags(input string) (featureFlags, error) {
	if strings.TrimSpace(input) == "" {
		return featureFlags{}, nil
	}

	parts := strings.Split(input, ",")
	features := make(featureFlags, 0, len(parts))
	for _, part := range parts {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}

		var feature proposals.Feature
		enumValue := enumflag.New(&feature, "proposals.Feature", featureIdentifierMap, enumflag.EnumCaseInsensitive)
		if err := enumValue.Set(name); err != nil {
			return nil, fmt.Errorf("unknown feature: %q (available: %s)", name, availableFeatures())
		}

		features = append(features, feature)
	}

	return features, nil
}

// completeFeatures suggests feature names for a comma-separated list,
// skipping the ones already typed.
func completeFeatures(toComplete string) ([]string, cobra.ShellCompDirective) {
	prefix := ""
	current := toComplete
	if i := strings.LastIndex(toComplete, ","); i >= 0 {
		prefix = toComplete[:i+1]
		current = toComplete[i+1:]
	}

	selected := map[string]bool{}
	for _, part := range strings.Split(prefix, ",") {
		if name := strings.TrimSpace(part); name != "" {
			selected[strings.ToLower(name)] = true
		}
	}

	var candidates []string
	for _, name := range proposals.FeatureNames() {
		if selected[strings.ToLower(name)] {
			continue
		}
		if strings.HasPrefix(strings.ToLower(name), strings.ToLower(current)) {
			candidates = append(candidates, prefix+name)
		}
	}
	return candidates, cobra.ShellCompDirectiveNoFileComp | cobra.ShellCompDirectiveNoSpace
}
