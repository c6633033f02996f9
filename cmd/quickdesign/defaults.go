package main

import (
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newDefaultsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "defaults",
		Short: "Print the materials registry in effect",
		Long: `Print the materials registry, including any --defaults file, as YAML.
The output can be edited and passed back with --defaults.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.defaults()
			if err != nil {
				return err
			}
			var encErr error
			err = a.emit(cmd.OutOrStdout(), d, func(w io.Writer) {
				enc := yaml.NewEncoder(w)
				enc.SetIndent(2)
				if encErr = enc.Encode(d); encErr == nil {
					encErr = enc.Close()
				}
			})
			if err != nil {
				return err
			}
			return encErr
		},
	}
}
