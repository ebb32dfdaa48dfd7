package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-ppg/ppg/acquire"
)

func newSimulateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Print synthetic PPG samples as \"<ir> <red>\" lines",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return a.runSimulate(ctx, cmd.OutOrStdout())
		},
	}

	f := cmd.Flags()
	f.Float64("bpm", 0, "pulse rate in beats per minute")
	f.Float64("dc", 0, "infrared baseline in counts")
	f.Float64("ac", 0, "pulsatile amplitude in counts")
	f.Float64("noise", 0, "white noise amplitude in counts")
	f.Float64("wander", 0, "baseline wander amplitude in counts")
	f.Float64("wander-hz", 0, "baseline wander frequency in Hz")
	f.Int("samples", 0, "number of samples (0 = until interrupted)")
	f.Bool("realtime", false, "pace output at the sample rate")
	f.Int64("seed", 0, "noise seed")

	bindFlags(a.v, f, map[string]string{
		"bpm":       "simulator.bpm",
		"dc":        "simulator.dc",
		"ac":        "simulator.ac",
		"noise":     "simulator.noise",
		"wander":    "simulator.wander",
		"wander-hz": "simulator.wander_hz",
		"samples":   "simulator.samples",
		"realtime":  "simulator.realtime",
		"seed":      "simulator.seed",
	})

	return cmd
}

func (a *app) runSimulate(ctx context.Context, stdout io.Writer) error {
	sim, err := acquire.NewSimulator(a.cfg.AcquireSimulator())
	if err != nil {
		return err
	}
	defer sim.Close()

	w := bufio.NewWriter(stdout)
	defer w.Flush()

	realtime := a.cfg.Simulator.Realtime
	for {
		s, err := sim.Next(ctx)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if errors.Is(err, context.Canceled) {
			return nil
		}
		if err != nil {
			return err
		}

		if _, err := fmt.Fprintf(w, "%d %d\n", s.IR, s.Red); err != nil {
			return err
		}
		if realtime {
			if err := w.Flush(); err != nil {
				return err
			}
		}
	}
}
