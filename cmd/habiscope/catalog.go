package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/habiscope/habiscope/pkg/planet"
)

func newCatalogCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Manage the local planet corpus",
	}
	cmd.AddCommand(
		newCatalogImportCmd(configPath),
		newCatalogListCmd(configPath),
	)
	return cmd
}

func newCatalogImportCmd(configPath *string) *cobra.Command {
	var (
		file   string
		dbPath string
	)

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import a JSON catalog into the corpus",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := loadConfig(*configPath)

			c, err := planet.LoadCatalog(file)
			if err != nil {
				return err
			}

			svc, db, err := openService(ctx, cfg, dbPath)
			if err != nil {
				return err
			}
			defer db.Close()

			n, err := svc.ImportCatalog(ctx, c)
			if err != nil {
				return fmt.Errorf("importing %s: %w", file, err)
			}
			fmt.Fprintf(os.Stderr, "Imported %d planets (catalog %s)\n", n, c.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "Path to a JSON catalog (required)")
	cmd.Flags().StringVar(&dbPath, "db", "", "Path to a SQLite corpus (default from config)")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func newCatalogListCmd(configPath *string) *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List planets in the corpus",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := loadConfig(*configPath)

			svc, db, err := openService(ctx, cfg, dbPath)
			if err != nil {
				return err
			}
			defer db.Close()

			records, err := svc.Store().ListPlanets(ctx)
			if err != nil {
				return err
			}
			if len(records) == 0 {
				fmt.Fprintln(os.Stderr, "Corpus is empty. Import a catalog with 'habiscope catalog import --file <catalog.json>'.")
				return nil
			}

			tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tTEQ (K)\tRADIUS\tMASS\tDISTANCE (AU)")
			for _, r := range records {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", r.Name,
					formatOptional(r.EquilibriumTempK), formatOptional(r.Radius),
					formatOptional(r.Mass), formatOptional(r.SemiMajorAxisAU))
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "Path to a SQLite corpus (default from config)")

	return cmd
}

func formatOptional(p *float64) string {
	if v, ok := planet.Float(p); ok {
		return fmt.Sprintf("%g", v)
	}
	return "-"
}
