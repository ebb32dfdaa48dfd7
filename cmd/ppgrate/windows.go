package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-ppg/dsp/window"
)

func newWindowsCmd(a *app) *cobra.Command {
	var periodic bool

	cmd := &cobra.Command{
		Use:   "windows",
		Short: "List the selectable windows with their spectral properties",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runWindows(cmd.OutOrStdout(), periodic)
		},
	}
	cmd.Flags().BoolVar(&periodic, "periodic", false, "evaluate the periodic form instead of the symmetric one")

	return cmd
}

func (a *app) runWindows(stdout io.Writer, periodic bool) error {
	size := a.cfg.Estimator.SegmentSamples

	var opts []window.Option
	if periodic {
		opts = append(opts, window.WithPeriodic())
	}

	tw := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "Window\tSize\tCoherent Gain\tENBW [bins]\tAmplitude Corr.\n"); err != nil {
		return err
	}

	for _, t := range window.Types() {
		coeffs := window.Generate(t, size, opts...)

		cg, err := window.CoherentGain(coeffs)
		if err != nil {
			return fmt.Errorf("%s: %w", t, err)
		}
		enbw, err := window.EquivalentNoiseBandwidth(coeffs)
		if err != nil {
			return fmt.Errorf("%s: %w", t, err)
		}

		if _, err := fmt.Fprintf(tw, "%s\t%d\t%.6f\t%.4f\t%.4f\n", t, size, cg, enbw, window.Info(t).AmplitudeCorrection); err != nil {
			return err
		}
	}
	return tw.Flush()
}
