package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"mosaic-hq/configurator/pkg/catalog/parser"
	"mosaic-hq/configurator/pkg/catalog/source"
)

var lintCmd = &cobra.Command{
	Use:   "lint <catalog-path>",
	Short: "Report referential problems in catalog files",
	Long: `Lint loads the catalogs at the given path and reports rules that
reference components or options missing from the catalog. Such rules never
match at runtime; lint surfaces them for the catalog author. Warnings exit
non-zero.`,
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

		total := 0
		for _, desc := range descs {
			for _, warning := range parser.Lint(desc) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", desc.ID, warning)
				total++
			}
		}
		if total > 0 {
			return fmt.Errorf("%d warning(s)", total)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d catalog(s) clean\n", len(descs))
		return nil
	},
}
