package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-ppg/dsp/spectrum"
)

func newBandsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "bands",
		Short: "Show the FFT bins searched for the configured band",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runBands(cmd.OutOrStdout())
		},
	}
}

func (a *app) runBands(stdout io.Writer) error {
	est, err := a.cfg.Estimator.NewEstimator()
	if err != nil {
		return err
	}

	cfg := est.Config()
	lo, hi, ok := est.BandBins()

	tw := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Sample rate\t%g Hz\n", cfg.SampleRate)
	fmt.Fprintf(tw, "Segment\t%d samples (%.2f s)\n", cfg.SegmentSamples, float64(cfg.SegmentSamples)/cfg.SampleRate)
	fmt.Fprintf(tw, "Resolution\t%.6f Hz (%.3f bpm)\n", est.BinHz(), est.BinHz()*60)
	fmt.Fprintf(tw, "Band\t%g .. %g Hz\n", cfg.Band.MinHz, cfg.Band.MaxHz)
	fmt.Fprintf(tw, "Window\t%s\n", cfg.Window)
	if ok {
		fmt.Fprintf(tw, "Bins\t%d .. %d (%.4f .. %.4f Hz)\n", lo, hi,
			spectrum.BinFrequency(lo, cfg.SampleRate, cfg.SegmentSamples),
			spectrum.BinFrequency(hi, cfg.SampleRate, cfg.SegmentSamples))
	} else {
		fmt.Fprintf(tw, "Bins\tnone (band narrower than one bin)\n")
	}
	return tw.Flush()
}
