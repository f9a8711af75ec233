package main

import (
	"fmt"
	"io"
	"sort"

	"nmeafeed/internal/nmea"
)

// runStats is the pure reduction behind -S: counts by message type,
// success/error ratio, tag-block presence. It sees every record before any
// skip-errors filtering.
type runStats struct {
	Lines       int
	Records     int
	ParseErrors int
	TagBlocks   int
	TypeCounts  map[string]int
}

func newRunStats() *runStats {
	return &runStats{TypeCounts: map[string]int{}}
}

func (s *runStats) observe(rec nmea.Record) {
	s.Lines++
	s.TypeCounts[rec.Message.Type()]++
	if _, isErr := rec.Message.(nmea.ParseError); isErr {
		s.ParseErrors++
	} else {
		s.Records++
	}
	if rec.TagBlock != nil {
		s.TagBlocks++
	}
}

func (s *runStats) print(w io.Writer) {
	fmt.Fprintf(w, "lines:        %d\n", s.Lines)
	fmt.Fprintf(w, "records:      %d\n", s.Records)
	fmt.Fprintf(w, "parse errors: %d\n", s.ParseErrors)
	if s.Lines > 0 {
		fmt.Fprintf(w, "success:      %.1f%%\n", 100*float64(s.Records)/float64(s.Lines))
		fmt.Fprintf(w, "tag blocks:   %.1f%%\n", 100*float64(s.TagBlocks)/float64(s.Lines))
	}

	types := make([]string, 0, len(s.TypeCounts))
	for t := range s.TypeCounts {
		types = append(types, t)
	}
	sort.Strings(types)
	for _, t := range types {
		fmt.Fprintf(w, "  %-28s %d\n", t, s.TypeCounts[t])
	}
}
