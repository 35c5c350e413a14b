package cli

import (
	"github.com/spf13/cobra"

	"github.com/whtowbin/Pynams/calculator"
)

func newArrheniusCmd(a *app) *cobra.Command {
	var (
		celsius, log10D []float64
		low, high       float64
	)
	cmd := &cobra.Command{
		Use:   "arrhenius",
		Short: "Fit an Arrhenius line through diffusivities",
		Long: `Fit log10(D) against 1e4/T and print a 100-point line over [low, high].

Example:
  pynams arrhenius --celsius 700,800,900 --log10d -13,-12,-11`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			line, err := calculator.ArrheniusLine(celsius, log10D, low, high)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), line)
		},
	}
	cmd.Flags().Float64SliceVar(&celsius, "celsius", nil, "Temperatures in °C")
	cmd.Flags().Float64SliceVar(&log10D, "log10d", nil, "log10 diffusivities in m²/s")
	cmd.Flags().Float64Var(&low, "low", calculator.DefaultArrheniusLow, "Lowest 1e4/T of the line")
	cmd.Flags().Float64Var(&high, "high", calculator.DefaultArrheniusHigh, "Highest 1e4/T of the line")
	return cmd
}
