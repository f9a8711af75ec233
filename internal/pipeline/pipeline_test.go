package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"nmeafeed/internal/nmea"
)

func writeFeed(t *testing.T, name string, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write feed: %v", err)
	}
	return path
}

func collect(t *testing.T, sources []string, opts Options) []nmea.Record {
	t.Helper()
	var out []nmea.Record
	err := Run(context.Background(), sources, opts, func(rec nmea.Record) error {
		out = append(out, rec)
		return nil
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	return out
}

const feed = "$GPRMC,123519,A,4807.038,N,01131.000,E,022.4,084.4,230394,003.1,W*6A\n" +
	"\n" +
	"$GPXXX,bad\n" +
	"!AIVDM,1,1,,A,13HOI:0P0U0SG<hN`K>P6@TN00Sj,0*23\n"

func TestRunOrderAndLineNumbers(t *testing.T) {
	path := writeFeed(t, "feed.log", feed)
	recs := collect(t, []string{path}, Options{})
	if len(recs) != 3 {
		t.Fatalf("got %d records, want 3 (blank line skipped)", len(recs))
	}
	if _, ok := recs[0].Message.(nmea.Rmc); !ok {
		t.Fatalf("record 0 = %T", recs[0].Message)
	}
	perr, ok := recs[1].Message.(nmea.ParseError)
	if !ok {
		t.Fatalf("record 1 = %T", recs[1].Message)
	}
	// Line numbers count physical lines, so the blank line still counts.
	if perr.LineNumber != 3 {
		t.Fatalf("line number = %d, want 3", perr.LineNumber)
	}
	if perr.File != path {
		t.Fatalf("file = %q", perr.File)
	}
	if perr.RawSentence != "$GPXXX,bad" {
		t.Fatalf("raw sentence = %q", perr.RawSentence)
	}
	if recs[2].RawSentence == "" {
		t.Fatalf("raw sentence missing on record 2")
	}
}

func TestRunSkipErrors(t *testing.T) {
	path := writeFeed(t, "feed.log", feed)
	recs := collect(t, []string{path}, Options{SkipErrors: true})
	if len(recs) != 2 {
		t.Fatalf("got %d records, want 2", len(recs))
	}
	for _, rec := range recs {
		if _, isErr := rec.Message.(nmea.ParseError); isErr {
			t.Fatalf("ParseError not filtered")
		}
	}
}

func TestRunMissingSource(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.log")
	ok := writeFeed(t, "ok.log", "$GPHDT,90.5,T\n")
	recs := collect(t, []string{missing, ok}, Options{})
	if len(recs) != 2 {
		t.Fatalf("got %d records, want 2", len(recs))
	}
	perr, isErr := recs[0].Message.(nmea.ParseError)
	if !isErr {
		t.Fatalf("record 0 = %T, want terminal ParseError", recs[0].Message)
	}
	if perr.File != missing {
		t.Fatalf("file = %q", perr.File)
	}
	if _, ok := recs[1].Message.(nmea.Hdt); !ok {
		t.Fatalf("run did not continue past failed source: %T", recs[1].Message)
	}
}

// Two runs over the same input produce identical sequences.
func TestRunIdempotent(t *testing.T) {
	path := writeFeed(t, "feed.log", feed)
	a := collect(t, []string{path}, Options{})
	b := collect(t, []string{path}, Options{})
	if len(a) != len(b) {
		t.Fatalf("lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].RawSentence != b[i].RawSentence || a[i].Message.Type() != b[i].Message.Type() {
			t.Fatalf("record %d differs", i)
		}
	}
}

func TestRunWorkersPreserveSourceOrder(t *testing.T) {
	dir := t.TempDir()
	var sources []string
	for s := 0; s < 4; s++ {
		var content string
		for l := 0; l < 50; l++ {
			// Distinct headings so each record maps back to its
			// source and line.
			content += fmt.Sprintf("$GPHDT,%d,T\n", s*1000+l)
		}
		path := filepath.Join(dir, fmt.Sprintf("feed%d.log", s))
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write feed: %v", err)
		}
		sources = append(sources, path)
	}

	recs := collect(t, sources, Options{Workers: 4})
	if len(recs) != 200 {
		t.Fatalf("got %d records, want 200", len(recs))
	}
	lastPerSource := map[int]int{0: -1, 1: -1, 2: -1, 3: -1}
	for _, rec := range recs {
		hdt, ok := rec.Message.(nmea.Hdt)
		if !ok || hdt.HeadingTrue == nil {
			t.Fatalf("unexpected record %T", rec.Message)
		}
		v := int(*hdt.HeadingTrue)
		src := v / 1000
		if v <= lastPerSource[src] {
			t.Fatalf("order violated within source %d: %d after %d", src, v, lastPerSource[src])
		}
		lastPerSource[src] = v
	}
}

func TestRunEmitErrorAborts(t *testing.T) {
	path := writeFeed(t, "feed.log", feed)
	wantErr := fmt.Errorf("sink full")
	err := Run(context.Background(), []string{path}, Options{}, func(nmea.Record) error {
		return wantErr
	})
	if err != wantErr {
		t.Fatalf("err = %v, want %v", err, wantErr)
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	path := writeFeed(t, "feed.log", feed)
	err := Run(ctx, []string{path}, Options{}, func(nmea.Record) error { return nil })
	if err == nil {
		t.Fatalf("cancelled run returned nil")
	}
}
