package acquire

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/cwbudde/algo-ppg/ppg"
)

func TestParseSample(t *testing.T) {
	tests := []struct {
		in      string
		want    ppg.Sample
		wantErr bool
	}{
		{in: "50123 40111", want: ppg.Sample{IR: 50123, Red: 40111}},
		{in: "50123,40111", want: ppg.Sample{IR: 50123, Red: 40111}},
		{in: "50123;\t40111", want: ppg.Sample{IR: 50123, Red: 40111}},
		{in: "50123", want: ppg.Sample{IR: 50123}},
		{in: "50123.6 10.2", want: ppg.Sample{IR: 50124, Red: 10}},
		{in: "-12 7", want: ppg.Sample{IR: -12, Red: 7}},
		{in: "abc 1", wantErr: true},
		{in: "1 xyz", wantErr: true},
		{in: ",,", wantErr: true},
		{in: "2147483647 -2147483647", want: ppg.Sample{IR: 2147483647, Red: -2147483647}},
		{in: "3000000000 1", wantErr: true},
		{in: "1 -3000000000", wantErr: true},
		{in: "99999999999999999999 1", wantErr: true},
		{in: "3e9 1", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseSample(tc.in)
			if tc.wantErr {
				if !errors.Is(err, ErrMalformedLine) {
					t.Fatalf("err=%v, want ErrMalformedLine", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseSample: %v", err)
			}
			if got != tc.want {
				t.Fatalf("got %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestLineSourceSkipsBlankAndComments(t *testing.T) {
	in := "# ir red\n\n100 200\n   \n101,201\n102\n"
	src := NewLineSource(strings.NewReader(in))
	ctx := context.Background()

	want := []ppg.Sample{{IR: 100, Red: 200}, {IR: 101, Red: 201}, {IR: 102}}
	for i, w := range want {
		got, err := src.Next(ctx)
		if err != nil {
			t.Fatalf("sample %d: %v", i, err)
		}
		if got != w {
			t.Fatalf("sample %d = %+v, want %+v", i, got, w)
		}
	}

	if _, err := src.Next(ctx); !errors.Is(err, io.EOF) {
		t.Fatalf("err=%v, want io.EOF", err)
	}
	if src.Line() != 6 {
		t.Fatalf("Line()=%d, want 6", src.Line())
	}
}

func TestLineSourceReportsLineNumber(t *testing.T) {
	src := NewLineSource(strings.NewReader("1 2\nbad\n"))
	ctx := context.Background()

	if _, err := src.Next(ctx); err != nil {
		t.Fatal(err)
	}
	_, err := src.Next(ctx)
	if !errors.Is(err, ErrMalformedLine) {
		t.Fatalf("err=%v, want ErrMalformedLine", err)
	}
	if !strings.Contains(err.Error(), "line 2") {
		t.Fatalf("error %q does not name the line", err)
	}
}

func TestLineSourceCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	src := NewLineSource(strings.NewReader("1 2\n"))
	if _, err := src.Next(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("err=%v, want context.Canceled", err)
	}
}

func TestSliceSource(t *testing.T) {
	src := NewSliceSource([]ppg.Sample{{IR: 1}, {IR: 2}})
	ctx := context.Background()

	for want := 1; want <= 2; want++ {
		s, err := src.Next(ctx)
		if err != nil || s.IR != want {
			t.Fatalf("got %+v, %v; want IR=%d", s, err, want)
		}
	}
	if _, err := src.Next(ctx); !errors.Is(err, io.EOF) {
		t.Fatalf("err=%v, want io.EOF", err)
	}
}
