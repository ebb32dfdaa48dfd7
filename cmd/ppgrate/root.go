package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/cwbudde/algo-ppg/internal/config"
	"github.com/cwbudde/algo-ppg/internal/log"
)

type app struct {
	v          *viper.Viper
	configFile string
	cfg        *config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{v: config.New()}

	root := &cobra.Command{
		Use:   "ppgrate",
		Short: "Spectral heart-rate estimation from PPG samples",
		Long: `ppgrate reads infrared/red photoplethysmogram samples, groups them into
fixed-length segments and reports the dominant pulse frequency of each
segment found inside the heart-rate band.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.load,
		PersistentPostRun: func(*cobra.Command, []string) { log.Sync() },
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configFile, "config", "", "YAML config file")
	pf.Bool("debug", false, "development logging at debug level")
	pf.String("log-level", "info", "log level (debug, info, warn, error)")
	pf.StringP("output", "o", config.FormatTable, "output format (table, json, yaml)")
	pf.Float64("sample-rate", 0, "sample rate in Hz")
	pf.Int("segment-samples", 0, "samples per segment (power of two)")
	pf.Float64("min-hz", 0, "lower band edge in Hz")
	pf.Float64("max-hz", 0, "upper band edge in Hz")
	pf.String("window", "", "window applied before the FFT (hann, hamming, blackman, rectangular)")
	pf.String("backend", "", "FFT backend (radix2, radix2-incremental, algofft)")

	bindFlags(a.v, pf, map[string]string{
		"debug":           "debug",
		"log-level":       "log_level",
		"output":          "output_format",
		"sample-rate":     "estimator.sample_rate",
		"segment-samples": "estimator.segment_samples",
		"min-hz":          "estimator.min_hz",
		"max-hz":          "estimator.max_hz",
		"window":          "estimator.window",
		"backend":         "estimator.backend",
	})

	root.AddCommand(
		newEstimateCmd(a),
		newSimulateCmd(a),
		newBandsCmd(a),
		newWindowsCmd(a),
	)

	return root
}

// bindFlags binds each flag to its viper key. Only flags set on the command
// line override file and environment values.
func bindFlags(v *viper.Viper, fs *pflag.FlagSet, keys map[string]string) {
	for name, key := range keys {
		if f := fs.Lookup(name); f != nil {
			_ = v.BindPFlag(key, f)
		}
	}
}

func (a *app) load(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.v, a.configFile)
	if err != nil {
		return err
	}
	a.cfg = cfg

	if err := log.Init(cfg.Debug); err != nil {
		return err
	}
	if !cfg.Debug {
		if err := log.SetLevel(cfg.LogLevel); err != nil {
			return err
		}
	}

	log.Logger().Debug("configuration loaded")
	return nil
}
