// Package main provides the habiscope CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "habiscope",
		Short: "Habitability and survivability scoring for exoplanets",
		Long: `Habiscope scores how Earth-like a planet is, how well it sits in its
star's habitable zone, and how survivable its surface would be for humans,
microbes or a terraforming effort.`,
		Version: version,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default: .habiscope/config.yaml in a parent directory)")

	rootCmd.AddCommand(
		newHabitabilityCmd(&configPath),
		newSimulateCmd(&configPath),
		newRecommendCmd(&configPath),
		newCatalogCmd(&configPath),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
