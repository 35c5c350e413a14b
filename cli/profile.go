package cli

import (
	"github.com/spf13/cobra"

	"github.com/whtowbin/Pynams/calculator"
	"github.com/whtowbin/Pynams/server"
)

func newProfileCmd(a *app) *cobra.Command {
	var (
		length, log10D, seconds float64
		initial, final          float64
		method                  string
		points                  int
		times                   []float64
	)
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "1D diffusion profile across a slab",
		Long: `Print the 1D profile across a slab as JSON. Positions are in microns
centered on the slab. With --times one profile is printed per time.

Examples:
  pynams profile --length 1000 --log10d -12 --time 3600
  pynams profile --length 1000 --log10d -12 --times 60,600,3600 --method infsum`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opt := a.opt
			if method != "" {
				opt.Method = calculator.Method(method)
			}
			if points > 0 {
				opt.Points = points
			}
			p := calculator.Params1D(length, log10D, seconds, initial, final, false, false, false)
			if len(times) > 0 {
				profiles, err := calculator.Sweep1D(p, times, opt, server.LoadConfig(a.file).Workers)
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), profiles)
			}
			profile, err := calculator.Diffusion1D(p, opt)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), profile)
		},
	}
	cmd.Flags().Float64Var(&length, "length", 0, "Slab thickness in microns (required)")
	cmd.Flags().Float64Var(&log10D, "log10d", -12, "log10 of the diffusivity in m²/s")
	cmd.Flags().Float64Var(&seconds, "time", 0, "Diffusion time in seconds")
	cmd.Flags().Float64Var(&initial, "initial", 1, "Initial value")
	cmd.Flags().Float64Var(&final, "final", 0, "Final value")
	cmd.Flags().StringVar(&method, "method", "", "erf or infsum, overrides [calculator] Method")
	cmd.Flags().IntVar(&points, "points", 0, "Number of points, overrides [calculator] Points")
	cmd.Flags().Float64SliceVar(&times, "times", nil, "Diffusion times in seconds for a sweep")
	_ = cmd.MarkFlagRequired("length")
	return cmd
}
