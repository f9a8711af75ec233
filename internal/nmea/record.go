package nmea

import "encoding/json"

// Message is one decoded NMEA payload. The concrete set is closed: the GNSS
// payloads in this package, the AIS reports in internal/ais, Fragment, and
// ParseError.
type Message interface {
	// Type returns the wire name used in the JSON "type" tag.
	Type() string
}

// Record is the unit emitted per input line: the raw sentence, its tag
// block (nil when absent), and exactly one message. Decode failures become
// ParseError messages so a run always yields one Record per non-empty line.
type Record struct {
	RawSentence string
	TagBlock    *TagBlock
	// ChecksumError carries a sentence checksum mismatch when best-effort
	// decoding still produced a typed message. Empty otherwise.
	ChecksumError string
	Message       Message
}

type wireMessage struct {
	Type string  `json:"type"`
	Data Message `json:"data"`
}

type wireRecord struct {
	RawSentence   string      `json:"raw_sentence"`
	TagBlock      *TagBlock   `json:"tag_block"`
	ChecksumError string      `json:"checksum_error,omitempty"`
	Message       wireMessage `json:"message"`
}

func (r Record) MarshalJSON() ([]byte, error) {
	return json.Marshal(wireRecord{
		RawSentence:   r.RawSentence,
		TagBlock:      r.TagBlock,
		ChecksumError: r.ChecksumError,
		Message:       wireMessage{Type: r.Message.Type(), Data: r.Message},
	})
}

// MarshalIndent is the pretty-print variant used by --pretty. Same
// structure, multi-line formatting.
func (r Record) MarshalIndent() ([]byte, error) {
	return json.MarshalIndent(wireRecord{
		RawSentence:   r.RawSentence,
		TagBlock:      r.TagBlock,
		ChecksumError: r.ChecksumError,
		Message:       wireMessage{Type: r.Message.Type(), Data: r.Message},
	}, "", "  ")
}

// ParseError is the failure variant: any per-line decode problem is data,
// not a raised error.
type ParseError struct {
	RawSentence string `json:"raw_sentence"`
	Error       string `json:"error"`
	LineNumber  int    `json:"line_number"`
	File        string `json:"file"`
}

func (ParseError) Type() string { return "ParseError" }

// Fragment is emitted for a multi-part AIS sentence whose counterpart has
// not arrived yet (or whose group is larger than the supported two parts).
type Fragment struct {
	FragmentNumber int    `json:"fragment_number"`
	FragmentCount  int    `json:"fragment_count"`
	MessageID      *int64 `json:"message_id,omitempty"`
	Channel        string `json:"channel,omitempty"`
}

func (Fragment) Type() string { return "Fragment" }
