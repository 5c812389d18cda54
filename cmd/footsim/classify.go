package main

import (
	"fmt"
	"strconv"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/footfall/motion"
	"github.com/spf13/cobra"
)

func newClassifyCmd() *cobra.Command {
	th := motion.DefaultThresholds()
	cmd := &cobra.Command{
		Use:   "classify [--] x y z",
		Short: "Print the movement flags for one velocity",
		Long:  "Classify prints the movement flags for one velocity. Put -- before negative components.",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := th.Validate(); err != nil {
				return err
			}
			var v mgl64.Vec3
			for i, arg := range args {
				f, err := strconv.ParseFloat(arg, 64)
				if err != nil {
					return fmt.Errorf("velocity component %d: %w", i, err)
				}
				v[i] = f
			}

			flags := motion.Classify(v, th)
			fmt.Fprintf(cmd.OutOrStdout(), "walking=%t sprinting=%t falling=%t\n",
				flags.Walking, flags.Sprinting, flags.Falling)
			return nil
		},
	}

	cmd.Flags().Float64Var(&th.Walk, "walk", th.Walk, "walk threshold")
	cmd.Flags().Float64Var(&th.Sprint, "sprint", th.Sprint, "sprint threshold")
	cmd.Flags().Float64Var(&th.Fall, "fall", th.Fall, "fall threshold")
	return cmd
}
