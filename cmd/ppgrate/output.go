package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-ppg/internal/config"
	"github.com/cwbudde/algo-ppg/ppg"
	"github.com/cwbudde/algo-ppg/stats/frequency"
)

// report is one output record.
type report struct {
	Segment int `json:"segment" yaml:"segment"`

	ppg.Result `yaml:",inline"`

	BPM      float64         `json:"bpm" yaml:"bpm"`
	Quality  *ppg.Quality    `json:"quality,omitempty" yaml:"quality,omitempty"`
	Spectrum *spectrumReport `json:"spectrum,omitempty" yaml:"spectrum,omitempty"`
}

// spectrumReport is the encodable subset of frequency.Stats. SNRdB is left
// out when infinite, which JSON cannot represent.
type spectrumReport struct {
	PeakRatio   float64  `json:"peak_ratio" yaml:"peak_ratio"`
	CentroidHz  float64  `json:"centroid_hz" yaml:"centroid_hz"`
	BandwidthHz float64  `json:"bandwidth_hz" yaml:"bandwidth_hz"`
	Flatness    float64  `json:"flatness" yaml:"flatness"`
	SNRdB       *float64 `json:"snr_db,omitempty" yaml:"snr_db,omitempty"`
}

func newSpectrumReport(s frequency.Stats) *spectrumReport {
	r := &spectrumReport{
		PeakRatio:   s.PeakRatio,
		CentroidHz:  s.Centroid,
		BandwidthHz: s.Bandwidth,
		Flatness:    s.Flatness,
	}
	if !math.IsInf(s.SNRdB, 0) && !math.IsNaN(s.SNRdB) {
		snr := s.SNRdB
		r.SNRdB = &snr
	}
	return r
}

type reportWriter interface {
	Write(r report) error
	Close() error
}

func newReportWriter(w io.Writer, format string, withQuality bool) (reportWriter, error) {
	switch format {
	case config.FormatTable:
		return newTableWriter(w, withQuality), nil
	case config.FormatJSON:
		return jsonWriter{enc: json.NewEncoder(w)}, nil
	case config.FormatYAML:
		return yamlWriter{enc: yaml.NewEncoder(w)}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}

// jsonWriter emits one JSON object per line.
type jsonWriter struct{ enc *json.Encoder }

func (j jsonWriter) Write(r report) error { return j.enc.Encode(r) }
func (j jsonWriter) Close() error         { return nil }

// yamlWriter emits one YAML document per segment.
type yamlWriter struct{ enc *yaml.Encoder }

func (y yamlWriter) Write(r report) error { return y.enc.Encode(r) }
func (y yamlWriter) Close() error         { return y.enc.Close() }

type tableWriter struct {
	tw          *tabwriter.Writer
	withQuality bool
	header      bool
}

func newTableWriter(w io.Writer, withQuality bool) *tableWriter {
	return &tableWriter{
		tw:          tabwriter.NewWriter(w, 8, 0, 2, ' ', 0),
		withQuality: withQuality,
	}
}

func (t *tableWriter) Write(r report) error {
	if !t.header {
		t.header = true
		head := "Segment\tStatus\tHz\tBPM\tBin"
		if t.withQuality {
			head += "\tPI [%]\tIR DC\tSNR [dB]"
		}
		if _, err := fmt.Fprintln(t.tw, head); err != nil {
			return err
		}
	}

	row := fmt.Sprintf("%d\t%s\t%.4f\t%.1f\t%d", r.Segment, r.Status, r.HeartRateHz, r.BPM, r.PeakBin)
	if t.withQuality && r.Quality != nil {
		row += fmt.Sprintf("\t%.3f\t%.0f", r.Quality.IR.PerfusionIndex, r.Quality.IR.DC)
		if r.Spectrum != nil && r.Spectrum.SNRdB != nil {
			row += fmt.Sprintf("\t%.1f", *r.Spectrum.SNRdB)
		} else {
			row += "\t-"
		}
	}
	if _, err := fmt.Fprintln(t.tw, row); err != nil {
		return err
	}

	// Flush per row so streaming input shows up immediately.
	return t.tw.Flush()
}

func (t *tableWriter) Close() error { return t.tw.Flush() }
