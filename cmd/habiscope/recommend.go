package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/habiscope/habiscope/pkg/planet"
	"github.com/habiscope/habiscope/pkg/scoring"
	"github.com/habiscope/habiscope/pkg/surface"
)

type recommendOpts struct {
	minScore    float64
	minScoreSet bool
	mode        string
	catalogFile string
	dbPath      string
	outputFmt   string
}

func newRecommendCmd(configPath *string) *cobra.Command {
	var opts recommendOpts

	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Find the most survivable planet in a corpus",
		Long: `Ranks every planet in a catalog file or the local corpus database by
survivability and reports the best one at or above --min-score.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.minScoreSet = cmd.Flags().Changed("min-score")
			return runRecommend(cmd.Context(), *configPath, opts)
		},
	}

	cmd.Flags().Float64Var(&opts.minScore, "min-score", 50, "Minimum survivability score (default from config)")
	cmd.Flags().StringVar(&opts.mode, "mode", "", "Life mode: human, microbial or terraforming (default from config)")
	cmd.Flags().StringVar(&opts.catalogFile, "catalog", "", "Rank a JSON catalog file instead of the corpus database")
	cmd.Flags().StringVar(&opts.dbPath, "db", "", "Path to a SQLite corpus (default from config)")
	cmd.Flags().StringVar(&opts.outputFmt, "output", "text", "Output format: text, markdown or json")

	return cmd
}

func runRecommend(ctx context.Context, configPath string, opts recommendOpts) error {
	cfg := loadConfig(configPath)
	mode := scoring.ParseMode(firstNonEmpty(opts.mode, cfg.Scoring.Mode))
	minScore := cfg.Scoring.MinScore
	if opts.minScoreSet {
		minScore = opts.minScore
	}

	var candidates []scoring.Candidate
	if opts.catalogFile != "" {
		c, err := planet.LoadCatalog(opts.catalogFile)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Ranking %d planets from %s...\n", len(c.Records), opts.catalogFile)

		rec := scoring.NewRecommender(mode)
		rec.Workers = cfg.Scoring.Workers
		candidates, err = rec.Rank(ctx, c.Records, minScore)
		if err != nil {
			return fmt.Errorf("ranking catalog: %w", err)
		}
	} else {
		svc, db, err := openService(ctx, cfg, opts.dbPath)
		if err != nil {
			return err
		}
		defer db.Close()

		candidates, err = svc.Recommend(ctx, minScore, mode)
		if err != nil {
			return err
		}
	}

	return surface.ForFormat(opts.outputFmt).RenderRecommendation(os.Stdout, surface.NewRecommendation(mode, minScore, candidates))
}
