package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "mosaic",
	Short: "Product configurator rules and pricing engine",
	Long: `mosaic evaluates configuration rules, prices configurations and
validates shopper selections for 3D product configurators.

Catalogs are YAML documents describing a product's components, options,
rules and pricing settings.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(lintCmd)
	rootCmd.AddCommand(priceCmd)
	rootCmd.AddCommand(serveCmd)
}
