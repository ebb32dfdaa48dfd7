package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cwbudde/algo-ppg/internal/log"
	"github.com/cwbudde/algo-ppg/ppg"
	"github.com/cwbudde/algo-ppg/ppg/acquire"
)

func newEstimateCmd(a *app) *cobra.Command {
	var quality bool

	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Estimate heart rate for every segment of the input",
		Long: `estimate reads samples from a file, standard input or a serial port and
prints one heart-rate estimate per completed segment. A trailing partial
segment is not analyzed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return a.runEstimate(ctx, cmd.InOrStdin(), cmd.OutOrStdout(), quality)
		},
	}

	f := cmd.Flags()
	f.StringP("file", "f", "", `sample file ("-" or empty for stdin)`)
	f.String("serial", "", "serial device to read instead of a file")
	f.Int("baud", 0, "serial line rate")
	f.Int("hop", 0, "samples between segment starts (0 = segment length)")
	f.Int("queue", 0, "segments buffered between reader and estimator")
	f.String("overflow", "", "full queue policy (block, drop-oldest)")
	f.BoolVar(&quality, "quality", false, "include per-channel signal quality")

	bindFlags(a.v, f, map[string]string{
		"file":     "input.file",
		"serial":   "input.serial",
		"baud":     "input.baud",
		"hop":      "pipeline.hop",
		"queue":    "pipeline.queue_size",
		"overflow": "pipeline.overflow",
	})

	return cmd
}

func (a *app) runEstimate(ctx context.Context, stdin io.Reader, stdout io.Writer, withQuality bool) error {
	logger := log.Logger()

	src, closeSrc, err := a.openSource(stdin)
	if err != nil {
		return err
	}
	defer closeSrc()

	est, err := a.cfg.Estimator.NewEstimator()
	if err != nil {
		return err
	}
	ws, err := est.NewWorkspace()
	if err != nil {
		return err
	}

	pcfg, err := a.cfg.AcquirePipeline(logger.Named("acquire"))
	if err != nil {
		return err
	}
	pipe, err := acquire.NewPipeline(src, pcfg)
	if err != nil {
		return err
	}

	out, err := newReportWriter(stdout, a.cfg.OutputFormat, withQuality)
	if err != nil {
		return err
	}

	lo, hi, _ := est.BandBins()
	logger.Info("estimating",
		zap.Float64("sample_rate", est.Config().SampleRate),
		zap.Int("segment_samples", est.Config().SegmentSamples),
		zap.Float64("bin_hz", est.BinHz()),
		zap.Int("min_bin", lo),
		zap.Int("max_bin", hi))

	pipe.Start(ctx)

	var index, valid int
	for {
		seg, err := pipe.NextSegment(ctx)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("acquire: %w", err)
		}

		res, err := est.Estimate(ws, seg)
		if err != nil {
			return err
		}
		if res.Valid() {
			valid++
		} else {
			logger.Debug("no heart rate in segment", zap.Int("segment", index), zap.Stringer("status", res.Status))
		}

		rep := report{Segment: index, Result: res, BPM: res.BPM()}
		if withQuality {
			q := ppg.Assess(seg)
			rep.Quality = &q
			rep.Spectrum = newSpectrumReport(est.Spectrum(ws))
		}
		if err := out.Write(rep); err != nil {
			return err
		}
		index++
	}

	logger.Info("done",
		zap.Int("segments", index),
		zap.Int("valid", valid),
		zap.Uint64("dropped", pipe.Dropped()))

	return out.Close()
}

func (a *app) openSource(stdin io.Reader) (acquire.Source, func(), error) {
	in := a.cfg.Input
	if in.Serial != "" {
		port, err := acquire.OpenSerial(in.Serial, in.Baud)
		if err != nil {
			return nil, nil, err
		}
		return port, func() { _ = port.Close() }, nil
	}

	if in.File == "" || in.File == "-" {
		return acquire.NewLineSource(stdin), func() {}, nil
	}

	f, err := os.Open(in.File)
	if err != nil {
		return nil, nil, err
	}
	return acquire.NewLineSource(f), func() { _ = f.Close() }, nil
}
