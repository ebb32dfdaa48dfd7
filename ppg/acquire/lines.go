package acquire

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-ppg/ppg"
)

// LineSource reads one sample per text line: "<ir> <red>" separated by
// whitespace or a comma. A single column is taken as the infrared reading.
// Blank lines and lines starting with '#' are skipped.
//
// Reads block on the underlying reader; ctx is checked between lines only.
type LineSource struct {
	sc   *bufio.Scanner
	line int
}

// NewLineSource returns a LineSource reading from r.
func NewLineSource(r io.Reader) *LineSource {
	return &LineSource{sc: bufio.NewScanner(r)}
}

// Next returns the sample on the next non-empty line.
func (l *LineSource) Next(ctx context.Context) (ppg.Sample, error) {
	for {
		if err := ctx.Err(); err != nil {
			return ppg.Sample{}, err
		}

		if !l.sc.Scan() {
			if err := l.sc.Err(); err != nil {
				return ppg.Sample{}, fmt.Errorf("acquire: read line %d: %w", l.line+1, err)
			}
			return ppg.Sample{}, io.EOF
		}
		l.line++

		text := strings.TrimSpace(l.sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		s, err := ParseSample(text)
		if err != nil {
			return ppg.Sample{}, fmt.Errorf("line %d: %w", l.line, err)
		}
		return s, nil
	}
}

// Line returns the number of lines consumed so far.
func (l *LineSource) Line() int { return l.line }

// ParseSample parses "<ir> [red]". Readings may be written as integers or
// decimals; decimals are rounded to the nearest count.
func ParseSample(text string) (ppg.Sample, error) {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == ';' || r == ' ' || r == '\t'
	})
	if len(fields) == 0 {
		return ppg.Sample{}, fmt.Errorf("%w: %q", ErrMalformedLine, text)
	}

	ir, err := parseReading(fields[0])
	if err != nil {
		return ppg.Sample{}, fmt.Errorf("%w: ir %q: %w", ErrMalformedLine, fields[0], err)
	}

	s := ppg.Sample{IR: ir}
	if len(fields) > 1 {
		if s.Red, err = parseReading(fields[1]); err != nil {
			return ppg.Sample{}, fmt.Errorf("%w: red %q: %w", ErrMalformedLine, fields[1], err)
		}
	}

	return s, nil
}

// maxReading bounds the magnitude of a channel reading, integer or decimal.
const maxReading = math.MaxInt32

func parseReading(field string) (int, error) {
	if v, err := strconv.ParseInt(field, 10, 64); err == nil {
		if v > maxReading || v < -maxReading {
			return 0, fmt.Errorf("reading out of range: %d", v)
		}
		return int(v), nil
	}

	f, err := strconv.ParseFloat(field, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || math.Abs(f) > maxReading {
		return 0, fmt.Errorf("reading out of range: %v", f)
	}

	return int(math.Round(f)), nil
}
