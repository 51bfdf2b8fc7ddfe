package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"mosaic-hq/configurator/pkg/catalog"
	"mosaic-hq/configurator/pkg/catalog/source"
	"mosaic-hq/configurator/pkg/engine"
	"mosaic-hq/configurator/pkg/pricing"
	"mosaic-hq/configurator/pkg/validation"
)

var priceSelections []string

var priceCmd = &cobra.Command{
	Use:   "price <catalog-file>",
	Short: "Price a selection against a catalog",
	Long: `Price loads one catalog, evaluates its rules for the given selections
and prints the resulting breakdown and validation verdict as JSON.

Selections are passed as --select component=option[,option...], repeatable.`,
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
		if len(descs) != 1 {
			return fmt.Errorf("price expects exactly one catalog, found %d", len(descs))
		}
		desc := descs[0]

		sel, err := parseSelections(priceSelections)
		if err != nil {
			return err
		}

		eng, err := engine.New(desc, nil)
		if err != nil {
			return err
		}
		calc, err := pricing.NewCalculator(desc, nil)
		if err != nil {
			return err
		}
		validator, err := validation.New(desc, nil)
		if err != nil {
			return err
		}

		rules := eng.Evaluate(sel)
		out := struct {
			Price      *pricing.Breakdown `json:"price"`
			Validation *validation.Result `json:"validation"`
			Rules      *engine.Result     `json:"rules"`
		}{
			Price:      calc.Calculate(sel, rules.PriceModifications),
			Validation: validator.Validate(sel, rules),
			Rules:      rules,
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	},
}

func init() {
	priceCmd.Flags().StringArrayVar(&priceSelections, "select", nil,
		"selection as component=option[,option...] (repeatable)")
}

func parseSelections(raw []string) (catalog.SelectionState, error) {
	sel := catalog.SelectionState{}
	for _, entry := range raw {
		componentID, options, ok := strings.Cut(entry, "=")
		if !ok || componentID == "" || options == "" {
			return nil, fmt.Errorf("invalid --select %q, want component=option[,option...]", entry)
		}
		sel[componentID] = strings.Split(options, ",")
	}
	return sel, nil
}
