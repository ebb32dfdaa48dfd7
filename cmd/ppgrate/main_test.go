package main

import (
	"bytes"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

func run(t *testing.T, stdin string, args ...string) string {
	t.Helper()

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("ppgrate %s: %v", strings.Join(args, " "), err)
	}
	return out.String()
}

func simulated(t *testing.T, bpm string, samples int) string {
	t.Helper()
	return run(t, "", "simulate", "--bpm", bpm, "--noise", "0", "--samples", strconv.Itoa(samples), "--log-level", "error")
}

func TestSimulateWritesLines(t *testing.T) {
	out := simulated(t, "72", 10)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 10 {
		t.Fatalf("got %d lines, want 10", len(lines))
	}
	for _, l := range lines {
		if len(strings.Fields(l)) != 2 {
			t.Fatalf("line %q is not \"<ir> <red>\"", l)
		}
	}
}

func TestEstimateJSON(t *testing.T) {
	samples := simulated(t, "72", 2*1024+100)

	out := run(t, samples, "estimate", "-o", "json", "--log-level", "error")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d records, want 2:\n%s", len(lines), out)
	}

	for i, l := range lines {
		var rec struct {
			Segment     int     `json:"segment"`
			HeartRateHz float64 `json:"heart_rate_hz"`
			Status      string  `json:"status"`
			BPM         float64 `json:"bpm"`
		}
		if err := json.Unmarshal([]byte(l), &rec); err != nil {
			t.Fatalf("record %d: %v", i, err)
		}
		if rec.Segment != i || rec.Status != "ok" {
			t.Fatalf("record %d: %+v", i, rec)
		}
		if math.Abs(rec.HeartRateHz-1.2) > 0.1 {
			t.Fatalf("record %d: heart rate %v Hz, want about 1.2", i, rec.HeartRateHz)
		}
		if strings.Contains(l, "spo2") || strings.Contains(l, "SpO2") {
			t.Fatalf("record %d exposes SpO2: %s", i, l)
		}
	}
}

func TestEstimateFileYAMLWithQuality(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.txt")
	if err := os.WriteFile(path, []byte(simulated(t, "90", 1024)), 0o600); err != nil {
		t.Fatal(err)
	}

	out := run(t, "", "estimate", "--file", path, "-o", "yaml", "--quality", "--log-level", "error")
	for _, want := range []string{"segment: 0", "status: ok", "heart_rate_hz:", "perfusion_index:", "peak_ratio:"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output lacks %q:\n%s", want, out)
		}
	}
}

func TestEstimateTable(t *testing.T) {
	flat := strings.Repeat("50000 40000\n", 1024)

	out := run(t, flat, "estimate", "--log-level", "error")
	if !strings.Contains(out, "Segment") || !strings.Contains(out, "no-peak") {
		t.Fatalf("unexpected table:\n%s", out)
	}
}

func TestEstimateRejectsBadInput(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader("1 2\nnot a sample\n"))
	cmd.SetArgs([]string{"estimate", "--segment-samples", "2", "--log-level", "error"})

	if err := cmd.Execute(); err == nil {
		t.Fatal("expected error for malformed line")
	}
}

func TestBands(t *testing.T) {
	out := run(t, "", "bands", "--log-level", "error")
	if !strings.Contains(out, "6 .. 30") {
		t.Fatalf("default band should cover bins 6..30:\n%s", out)
	}

	out = run(t, "", "bands", "--sample-rate", "1000", "--segment-samples", "128", "--log-level", "error")
	if !strings.Contains(out, "none") {
		t.Fatalf("coarse resolution should report no bins:\n%s", out)
	}
}

func TestWindows(t *testing.T) {
	out := run(t, "", "windows", "--log-level", "error")
	for _, name := range []string{"rectangular", "hann", "hamming", "blackman"} {
		if !strings.Contains(out, name) {
			t.Fatalf("missing %s:\n%s", name, out)
		}
	}
}

func TestWindowsPeriodic(t *testing.T) {
	gain := func(out string) string {
		for _, line := range strings.Split(out, "\n") {
			if f := strings.Fields(line); len(f) >= 3 && f[0] == "hann" {
				return f[2]
			}
		}
		t.Fatalf("no hann row:\n%s", out)
		return ""
	}

	symmetric := gain(run(t, "", "windows", "--log-level", "error"))
	periodic := gain(run(t, "", "windows", "--periodic", "--log-level", "error"))

	// Periodic Hann sums to exactly N/2; the symmetric form to (N-1)/2.
	if periodic != "0.500000" {
		t.Fatalf("periodic hann gain = %s, want 0.500000", periodic)
	}
	if symmetric != "0.499512" {
		t.Fatalf("symmetric hann gain = %s, want 0.499512", symmetric)
	}
}

func TestInvalidConfig(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"bands", "--window", "kaiser"})

	if err := cmd.Execute(); err == nil {
		t.Fatal("expected error for unknown window")
	}
}
