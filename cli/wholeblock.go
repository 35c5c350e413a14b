package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/whtowbin/Pynams/block"
	"github.com/whtowbin/Pynams/calculator"
)

func newWholeBlockCmd(a *app) *cobra.Command {
	var (
		lengths, log10D []float64
		seconds         float64
		initial, final  float64
		rays            []string
		points          int
	)
	cmd := &cobra.Command{
		Use:   "wholeblock",
		Short: "Path-averaged profiles through a rectangular block",
		Long: `Print the three whole-block profiles as JSON. Each profile parallel to
one edge is averaged along the ray path given for it.

Examples:
  pynams wholeblock --lengths 1000,2000,3000 --log10d -12,-12.5,-13 --time 3600
  pynams wholeblock --lengths 1000,2000,3000 --log10d -12 --time 3600 --raypaths c,c,b`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(lengths) != 3 {
				return fmt.Errorf("%w: --lengths needs 3 values, got %d", calculator.ErrInvalidInput, len(lengths))
			}
			b := block.NewBlock("cli", [3]float64{lengths[0], lengths[1], lengths[2]})
			switch len(log10D) {
			case 1:
				b.SetIsotropic(log10D[0])
			case 3:
				b.SetLog10D([3]float64{log10D[0], log10D[1], log10D[2]})
			default:
				return fmt.Errorf("%w: --log10d needs 1 or 3 values, got %d", calculator.ErrInvalidInput, len(log10D))
			}
			if len(rays) != 3 {
				return fmt.Errorf("%w: --raypaths needs 3 values, got %d", calculator.ErrInvalidConfig, len(rays))
			}
			b.SetRayPaths(calculator.RayPaths{rays[0], rays[1], rays[2]})
			b.SetTime(seconds)
			b.SetBoundary(initial, final)

			opt := a.opt
			if points > 0 {
				opt.Points = points
			}
			res, err := b.WholeBlock(opt)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), res)
		},
	}
	cmd.Flags().Float64SliceVar(&lengths, "lengths", nil, "Edge lengths a,b,c in microns (required)")
	cmd.Flags().Float64SliceVar(&log10D, "log10d", []float64{-12}, "log10 diffusivity, one value or x,y,z")
	cmd.Flags().Float64Var(&seconds, "time", 0, "Diffusion time in seconds")
	cmd.Flags().Float64Var(&initial, "initial", block.DefaultInitial, "Initial value")
	cmd.Flags().Float64Var(&final, "final", block.DefaultFinal, "Final value")
	cmd.Flags().StringSliceVar(&rays, "raypaths", block.DefaultRayPaths[:], "Ray path used for the a,b,c profiles")
	cmd.Flags().IntVar(&points, "points", 0, "Number of points, overrides [calculator] Points")
	_ = cmd.MarkFlagRequired("lengths")
	return cmd
}
