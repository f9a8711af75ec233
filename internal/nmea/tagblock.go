package nmea

import (
	"fmt"
	"strconv"
	"strings"
)

// SentenceGrouping is the g field of a tag block: "sentence-total-group".
type SentenceGrouping struct {
	SentenceNumber int `json:"sentence_number"`
	TotalSentences int `json:"total_sentences"`
	GroupID        int `json:"group_id"`
}

// TagBlock is the optional NMEA 4.10 metadata prefix (`\...\`) of a
// sentence. Known single-letter codes are parsed into typed fields; unknown
// codes are preserved verbatim for forward compatibility. An invalid
// interior checksum marks the block invalid but never blocks the sentence
// behind it.
type TagBlock struct {
	// Timestamp is the c field, unix seconds or milliseconds. The unit is
	// whatever the feed used; no normalization is applied.
	Timestamp    *int64            `json:"unix_timestamp,omitempty"`
	Destination  string            `json:"destination,omitempty"`
	Grouping     *SentenceGrouping `json:"grouping,omitempty"`
	LineCount    *int64            `json:"line_count,omitempty"`
	RelativeTime *int64            `json:"relative_time,omitempty"`
	Source       string            `json:"source_station,omitempty"`
	Text         string            `json:"text,omitempty"`
	Unknown      map[string]string `json:"unknown,omitempty"`

	// Checksum is the two-hex-digit value found after '*' in the block.
	Checksum string `json:"checksum"`
	// Valid reports whether Checksum matched the computed XOR of the
	// interior.
	Valid bool `json:"valid"`
}

// SplitTagBlock separates a leading tag block from the rest of the line.
// A line without a leading backslash has no tag block; that is not an
// error. A leading backslash without a closing one is a frame error.
func SplitTagBlock(line string) (raw string, rest string, err error) {
	if !strings.HasPrefix(line, `\`) {
		return "", line, nil
	}
	end := strings.IndexByte(line[1:], '\\')
	if end == -1 {
		return "", "", fmt.Errorf("tag block not closed")
	}
	return line[1 : end+1], strings.TrimLeft(line[end+2:], " \t"), nil
}

// ParseTagBlock parses the interior of a tag block (between the
// backslashes). Malformed integer values drop that field only; the block is
// still returned. The checksum verdict lands in Valid.
func ParseTagBlock(interior string) *TagBlock {
	tb := &TagBlock{}

	fields := interior
	if star := strings.LastIndexByte(interior, '*'); star != -1 {
		fields = interior[:star]
		cs := interior[star+1:]
		if len(cs) >= 2 {
			cs = cs[:2]
		}
		tb.Checksum = cs
		tb.Valid = ChecksumMatches(fields, cs)
	}

	for _, field := range strings.Split(fields, ",") {
		if field == "" {
			continue
		}
		colon := strings.IndexByte(field, ':')
		if colon == -1 {
			continue
		}
		code, value := field[:colon], field[colon+1:]
		switch code {
		case "c":
			if v, err := strconv.ParseInt(value, 10, 64); err == nil {
				tb.Timestamp = &v
			}
		case "d":
			tb.Destination = value
		case "g":
			tb.Grouping = parseGrouping(value)
		case "n":
			if v, err := strconv.ParseInt(value, 10, 64); err == nil {
				tb.LineCount = &v
			}
		case "r":
			if v, err := strconv.ParseInt(value, 10, 64); err == nil {
				tb.RelativeTime = &v
			}
		case "s":
			tb.Source = value
		case "t", "i":
			tb.Text = value
		default:
			if tb.Unknown == nil {
				tb.Unknown = map[string]string{}
			}
			tb.Unknown[code] = value
		}
	}
	return tb
}

// parseGrouping parses "1-2-73874". Anything else yields nil rather than an
// error; grouping is advisory metadata.
func parseGrouping(value string) *SentenceGrouping {
	parts := strings.Split(value, "-")
	if len(parts) != 3 {
		return nil
	}
	num, err1 := strconv.Atoi(parts[0])
	total, err2 := strconv.Atoi(parts[1])
	group, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return nil
	}
	return &SentenceGrouping{SentenceNumber: num, TotalSentences: total, GroupID: group}
}
