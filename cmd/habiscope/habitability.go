package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/habiscope/habiscope/pkg/planet"
	"github.com/habiscope/habiscope/pkg/scoring"
	"github.com/habiscope/habiscope/pkg/surface"
)

// recordFlags maps CLI flag names to the Record fields they set.
var recordFlags = []struct {
	name  string
	usage string
	field func(*planet.Record) **float64
}{
	{"teq", "Equilibrium temperature (K)", func(r *planet.Record) **float64 { return &r.EquilibriumTempK }},
	{"radius", "Radius (Earth radii)", func(r *planet.Record) **float64 { return &r.Radius }},
	{"mass", "Mass (Earth masses)", func(r *planet.Record) **float64 { return &r.Mass }},
	{"insolation", "Insolation (Earth = 1)", func(r *planet.Record) **float64 { return &r.Insolation }},
	{"distance", "Semi-major axis (AU)", func(r *planet.Record) **float64 { return &r.SemiMajorAxisAU }},
	{"star-temp", "Host star effective temperature (K)", func(r *planet.Record) **float64 { return &r.StarTempK }},
	{"luminosity", "Host star luminosity (solar units)", func(r *planet.Record) **float64 { return &r.StarLuminosity }},
	{"density", "Bulk density (Earth = 1)", func(r *planet.Record) **float64 { return &r.Density }},
	{"escape-velocity", "Escape velocity (Earth = 1)", func(r *planet.Record) **float64 { return &r.EscapeVelocity }},
}

func newHabitabilityCmd(configPath *string) *cobra.Command {
	var (
		file        string
		catalogFile string
		name        string
		outputFmt   string
	)

	cmd := &cobra.Command{
		Use:   "habitability",
		Short: "Compute the habitability index of a planet",
		Long: `Scores a planet from a record file, a catalog entry, or individual
measurement flags. Flags override values loaded from a file; omitted
measurements are treated as unknown.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := resolveRecord(cmd, file, catalogFile, name)
			if err != nil {
				return err
			}
			res := scoring.NewHabitabilityModel(scoring.Defaults()).Calculate(rec)
			return surface.ForFormat(outputFmt).RenderHabitability(os.Stdout, &res)
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "Path to a JSON planet record")
	cmd.Flags().StringVar(&catalogFile, "catalog", "", "Path to a JSON catalog")
	cmd.Flags().StringVar(&name, "name", "", "Planet name (selects a catalog entry, or names an ad-hoc record)")
	cmd.Flags().StringVar(&outputFmt, "output", "text", "Output format: text, markdown or json")
	for _, f := range recordFlags {
		cmd.Flags().Float64(f.name, 0, f.usage)
	}

	return cmd
}

// resolveRecord builds the record to score from --file, --catalog/--name and
// the measurement flags, in that order of precedence (lowest first).
func resolveRecord(cmd *cobra.Command, file, catalogFile, name string) (planet.Record, error) {
	var rec planet.Record

	switch {
	case file != "" && catalogFile != "":
		return rec, fmt.Errorf("--file and --catalog are mutually exclusive")
	case file != "":
		r, err := planet.LoadRecord(file)
		if err != nil {
			return rec, err
		}
		rec = *r
	case catalogFile != "":
		if name == "" {
			return rec, fmt.Errorf("--catalog requires --name")
		}
		c, err := planet.LoadCatalog(catalogFile)
		if err != nil {
			return rec, err
		}
		r, ok := c.Find(name)
		if !ok {
			return rec, fmt.Errorf("planet %q not found in %s", name, catalogFile)
		}
		rec = r
	}

	if name != "" && catalogFile == "" {
		rec.Name = name
	}

	for _, f := range recordFlags {
		if !cmd.Flags().Changed(f.name) {
			continue
		}
		v, err := cmd.Flags().GetFloat64(f.name)
		if err != nil {
			return rec, err
		}
		*f.field(&rec) = planet.Ptr(v)
	}

	return rec, nil
}
