package nmea

import (
	"encoding/json"
	"testing"
)

func TestRecordJSONShape(t *testing.T) {
	rec := Record{
		RawSentence: "$GPXXX,bad",
		Message: ParseError{
			RawSentence: "$GPXXX,bad",
			Error:       `unsupported sentence formatter "GPXXX"`,
			LineNumber:  3,
			File:        "feed.log",
		},
	}
	b, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var got struct {
		RawSentence string          `json:"raw_sentence"`
		TagBlock    *TagBlock       `json:"tag_block"`
		Message     json.RawMessage `json:"message"`
	}
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.RawSentence != "$GPXXX,bad" {
		t.Fatalf("raw_sentence = %q", got.RawSentence)
	}
	if got.TagBlock != nil {
		t.Fatalf("tag_block should serialize as null")
	}

	var msg struct {
		Type string `json:"type"`
		Data struct {
			LineNumber int    `json:"line_number"`
			File       string `json:"file"`
		} `json:"data"`
	}
	if err := json.Unmarshal(got.Message, &msg); err != nil {
		t.Fatalf("unmarshal message: %v", err)
	}
	if msg.Type != "ParseError" {
		t.Fatalf("message type = %q", msg.Type)
	}
	if msg.Data.LineNumber != 3 || msg.Data.File != "feed.log" {
		t.Fatalf("data = %+v", msg.Data)
	}
}

func TestRecordChecksumErrorOmitted(t *testing.T) {
	rec := Record{RawSentence: "x", Message: Fragment{FragmentNumber: 1, FragmentCount: 2}}
	b, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, present := m["checksum_error"]; present {
		t.Fatalf("empty checksum_error serialized")
	}

	rec.ChecksumError = "checksum mismatch"
	b, _ = json.Marshal(rec)
	m = nil
	_ = json.Unmarshal(b, &m)
	if m["checksum_error"] != "checksum mismatch" {
		t.Fatalf("checksum_error = %v", m["checksum_error"])
	}
}

// The same record marshals identically across runs; the engine holds no
// wall-clock or random state.
func TestRecordMarshalDeterministic(t *testing.T) {
	res := NewParser().Parse(`\s:2573515,c:1643588424*09\!BSVDM,1,1,,B,33mg@s0P@@Q@m58` + "`" + `2g;m:4Pb01q0,0*0B`)
	rec := Record{RawSentence: "x", TagBlock: res.TagBlock, Message: res.Message}
	a, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	b, _ := json.Marshal(rec)
	if string(a) != string(b) {
		t.Fatalf("marshal not deterministic")
	}
}
