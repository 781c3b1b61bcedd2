package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/habiscope/habiscope/pkg/scoring"
	"github.com/habiscope/habiscope/pkg/surface"
)

func newSimulateCmd(configPath *string) *cobra.Command {
	var (
		params    = scoring.DefaultSurvivabilityParams()
		radiation string
		mode      string
		outputFmt string
	)

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Simulate survivability of an environment",
		Long: `Scores how survivable a surface environment is for a life mode.
Omitted parameters default to Earth-like values.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig(*configPath)
			params.Radiation = scoring.ParseRadiation(radiation)
			m := scoring.ParseMode(firstNonEmpty(mode, cfg.Scoring.Mode))

			res := scoring.NewSimulator(scoring.Defaults()).Run(params, m)
			return surface.ForFormat(outputFmt).RenderSimulation(os.Stdout, &res)
		},
	}

	f := cmd.Flags()
	f.Float64Var(&params.TempC, "temp", params.TempC, "Surface temperature (°C)")
	f.Float64Var(&params.Water, "water", params.Water, "Water presence (fraction 0-1)")
	f.Float64Var(&params.O2, "o2", params.O2, "Oxygen (%)")
	f.Float64Var(&params.CO2, "co2", params.CO2, "Carbon dioxide (%)")
	f.Float64Var(&params.Nitrogen, "nitrogen", params.Nitrogen, "Nitrogen (%)")
	f.Float64Var(&params.ToxicGases, "toxic", params.ToxicGases, "Toxic gases (%)")
	f.StringVar(&radiation, "radiation", string(params.Radiation), "Radiation level: low, medium or high")
	f.Float64Var(&params.Gravity, "gravity", params.Gravity, "Gravity (Earth = 1)")
	f.Float64Var(&params.Pressure, "pressure", params.Pressure, "Surface pressure (Earth = 1)")
	f.StringSliceVar(&params.TraceElements, "trace", nil, "Trace elements (reported, not scored)")
	f.StringVar(&mode, "mode", "", "Life mode: human, microbial or terraforming (default from config)")
	f.StringVar(&outputFmt, "output", "text", "Output format: text, markdown or json")

	return cmd
}
