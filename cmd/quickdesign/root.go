package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"Armature/internal/calc/materials"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// options shared by every subcommand
type app struct {
	defaultsFile string
	asJSON       bool
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "quickdesign",
		Short: "Quick sizing, bar bending schedules and bills of quantities",
		Long: `quickdesign - indicative sizing for small reinforced concrete elements

Runs the same calculators as the HTTP service from the command line:
  - Isolated footings, cantilever retaining wall stems, straight stair flights
  - Bar bending schedules from a JSON or YAML item list
  - Bills of quantities from a JSON or YAML item list

Results are quick checks for early design and estimating. They are not a
substitute for a full structural design.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.PersistentFlags().StringVar(&a.defaultsFile, "defaults", os.Getenv("DEFAULTS_FILE"), "YAML file overriding the built-in materials registry")
	root.PersistentFlags().BoolVar(&a.asJSON, "json", false, "Print the raw result as JSON")

	root.AddCommand(
		newFootingCmd(a),
		newWallCmd(a),
		newStairCmd(a),
		newBBSCmd(a),
		newBOQCmd(a),
		newEstimateCmd(a),
		newDefaultsCmd(a),
		newTokenCmd(),
		newVersionCmd(),
	)
	return root
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func (a *app) defaults() (materials.Defaults, error) {
	if a.defaultsFile == "" {
		return materials.Standard(), nil
	}
	return materials.LoadFile(a.defaultsFile)
}

// emit prints v as JSON when --json is set, otherwise the text report.
func (a *app) emit(w io.Writer, v any, report func(io.Writer)) error {
	if a.asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	report(w)
	return nil
}

// readInput decodes a YAML or JSON document from path, or stdin for "-".
func readInput(cmd *cobra.Command, path string, v any) error {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func optional(cmd *cobra.Command, name string, v float64) *float64 {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	return &v
}
