package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nmeafeed/internal/nmea"
)

func TestRunStatsObserve(t *testing.T) {
	s := newRunStats()
	p := nmea.NewParser()
	for _, line := range []string{
		"$GPRMC,123519,A,4807.038,N,01131.000,E,022.4,084.4,230394,003.1,W*6A",
		`\s:2573515,c:1643588424*09\!BSVDM,1,1,,B,33mg@s0P@@Q@m58` + "`" + `2g;m:4Pb01q0,0*0B`,
		"$GPXXX,bad",
	} {
		res := p.Parse(line)
		rec := nmea.Record{RawSentence: line, TagBlock: res.TagBlock, Message: res.Message}
		if res.Err != nil {
			rec.Message = nmea.ParseError{RawSentence: line, Error: res.Err.Error()}
		}
		s.observe(rec)
	}

	assert.Equal(t, 3, s.Lines)
	assert.Equal(t, 2, s.Records)
	assert.Equal(t, 1, s.ParseErrors)
	assert.Equal(t, 1, s.TagBlocks)
	assert.Equal(t, 1, s.TypeCounts["Rmc"])
	assert.Equal(t, 1, s.TypeCounts["VesselDynamicData"])
	assert.Equal(t, 1, s.TypeCounts["ParseError"])

	var buf bytes.Buffer
	s.print(&buf)
	out := buf.String()
	assert.Contains(t, out, "lines:        3")
	assert.Contains(t, out, "VesselDynamicData")
}

func TestExpandInputs(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.log", "b.log"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}

	sources, err := expandInputs([]string{filepath.Join(dir, "*.log"), "tcp://feed:10110", "plain.log"})
	require.NoError(t, err)
	assert.Len(t, sources, 4)
	assert.Contains(t, sources, "tcp://feed:10110")
	assert.Contains(t, sources, "plain.log")

	_, err = expandInputs(nil)
	assert.Error(t, err)

	_, err = expandInputs([]string{filepath.Join(dir, "*.nope")})
	assert.Error(t, err)
}
