package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"mosaic-hq/configurator/pkg/catalog/source"
	"mosaic-hq/configurator/pkg/engine"
)

var validateCmd = &cobra.Command{
	Use:   "validate <catalog-path>",
	Short: "Validate catalog files",
	Long: `Validate parses every catalog at the given file or directory path and
checks that each one can be loaded by the rules engine. It exits non-zero
on the first failure.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := source.NewFileSource(args[0])
		if err != nil {
			return err
		}
		descs, err := src.Load(cmd.Context())
		if err != nil {
			return err
		}

		for _, desc := range descs {
			if _, err := engine.New(desc, nil); err != nil {
				return fmt.Errorf("catalog %s: %w", desc.ID, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d components, %d rules)\n",
				desc.ID, len(desc.Components), len(desc.Rules))
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d catalog(s) valid\n", len(descs))
		return nil
	},
}
