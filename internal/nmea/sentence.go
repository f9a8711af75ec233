package nmea

import (
	"fmt"
	"strconv"
	"strings"

	"nmeafeed/internal/ais"
)

// Result is the outcome of parsing one line. Exactly one of Message and Err
// is set; ChecksumError is additive and carries a sentence-checksum mismatch
// when decoding still succeeded best-effort.
type Result struct {
	TagBlock      *TagBlock
	Message       Message
	ChecksumError string
	Err           error
}

// maxPendingFragments bounds the reassembly buffer. When full, the oldest
// pending fragment is evicted; its counterpart will then surface as a lone
// Fragment record instead of a decoded message.
const maxPendingFragments = 256

// Parser turns one line into one Result. The only state it carries is the
// buffer for two-part AIS sentences waiting for their counterpart; everything
// else is a pure function of the line. A Parser is not safe for concurrent
// use; give each worker its own.
type Parser struct {
	pending map[string]pendingFragment
	order   []string
}

// pendingFragment is one half of a two-part message waiting for its
// counterpart. Either half may arrive first; the fill bits only matter when
// the stored half is the trailing one.
type pendingFragment struct {
	payload string
	fill    int
	number  int
}

func NewParser() *Parser {
	return &Parser{pending: make(map[string]pendingFragment)}
}

// Parse decodes one input line: optional tag block, frame and checksum
// validation, then formatter dispatch. Any per-line failure lands in
// Result.Err; nothing here panics on adversarial input.
func (p *Parser) Parse(line string) Result {
	interior, rest, err := SplitTagBlock(line)
	if err != nil {
		return Result{Err: err}
	}
	res := Result{}
	if interior != "" {
		res.TagBlock = ParseTagBlock(interior)
	}

	body := strings.TrimSpace(rest)
	if body == "" || (body[0] != '$' && body[0] != '!') {
		res.Err = fmt.Errorf("not a valid sentence frame")
		return res
	}

	if star := strings.LastIndexByte(body, '*'); star != -1 {
		expected := body[star+1:]
		if !ChecksumMatches(body[1:star], expected) {
			res.ChecksumError = fmt.Sprintf("checksum mismatch: computed %02X, sentence has %q",
				Checksum(body[1:star]), expected)
		}
		body = body[:star]
	}

	fields := strings.Split(body[1:], ",")
	prefix := fields[0]
	if len(prefix) < 5 {
		res.Err = fmt.Errorf("invalid talker/formatter prefix %q", prefix)
		return res
	}
	formatter := prefix[len(prefix)-3:]

	switch {
	case formatter == "VDM" || formatter == "VDO":
		p.parseAIS(fields, &res)
	default:
		m, err, ok := decodeGNSS(formatter, fields)
		if !ok {
			res.Err = fmt.Errorf("unsupported sentence formatter %q", prefix)
		} else if err != nil {
			res.Err = err
		} else {
			res.Message = m
		}
	}
	return res
}

// parseAIS handles the VDM/VDO wrapper: single-fragment sentences decode
// directly; two-fragment groups are reassembled across calls; anything
// larger is surfaced as a Fragment record per part.
func (p *Parser) parseAIS(fields []string, res *Result) {
	if len(fields) < 7 {
		res.Err = fmt.Errorf("%s: expected at least 7 fields, got %d", fields[0], len(fields))
		return
	}
	count, err := strconv.Atoi(fields[1])
	if err != nil || count < 1 {
		res.Err = fmt.Errorf("%s field 1: invalid fragment count %q", fields[0], fields[1])
		return
	}
	num, err := strconv.Atoi(fields[2])
	if err != nil || num < 1 || num > count {
		res.Err = fmt.Errorf("%s field 2: invalid fragment number %q", fields[0], fields[2])
		return
	}
	var msgID *int64
	if fields[3] != "" {
		v, err := strconv.ParseInt(fields[3], 10, 64)
		if err != nil {
			res.Err = fmt.Errorf("%s field 3: invalid message id %q", fields[0], fields[3])
			return
		}
		msgID = &v
	}
	channel := fields[4]
	payload := fields[5]
	fill, err := strconv.Atoi(fields[6])
	if err != nil {
		res.Err = fmt.Errorf("%s field 6: invalid fill bits %q", fields[0], fields[6])
		return
	}

	switch count {
	case 1:
		res.Message, res.Err = decodeArmored(payload, fill)
	case 2:
		key := fragmentKey(fields[0], msgID, channel)
		stored, found := p.pending[key]
		if !found || stored.number == num {
			// First arrival of this half, or a duplicate: hold the newest
			// copy and report the lone fragment.
			p.store(key, pendingFragment{payload: payload, fill: fill, number: num})
			res.Message = Fragment{FragmentNumber: num, FragmentCount: 2, MessageID: msgID, Channel: channel}
			return
		}
		p.drop(key)
		if num == 2 {
			res.Message, res.Err = decodeArmored(stored.payload+payload, fill)
		} else {
			res.Message, res.Err = decodeArmored(payload+stored.payload, stored.fill)
		}
	default:
		// Groups beyond two parts are not reassembled; each part is
		// reported as a fragment.
		res.Message = Fragment{FragmentNumber: num, FragmentCount: count, MessageID: msgID, Channel: channel}
	}
}

func decodeArmored(payload string, fill int) (Message, error) {
	bs, err := ais.DecodePayload(payload, fill)
	if err != nil {
		return nil, err
	}
	rep, err := ais.Decode(bs)
	if err != nil {
		return nil, err
	}
	return rep, nil
}

// fragmentKey groups the two halves of a split message. The sequential
// message id disambiguates interleaved groups on the same channel.
func fragmentKey(prefix string, msgID *int64, channel string) string {
	id := int64(-1)
	if msgID != nil {
		id = *msgID
	}
	return fmt.Sprintf("%s.%d.%s", prefix, id, channel)
}

func (p *Parser) store(key string, frag pendingFragment) {
	if _, exists := p.pending[key]; exists {
		p.pending[key] = frag
		return
	}
	if len(p.order) >= maxPendingFragments {
		oldest := p.order[0]
		p.order = p.order[1:]
		delete(p.pending, oldest)
	}
	p.pending[key] = frag
	p.order = append(p.order, key)
}

func (p *Parser) drop(key string) {
	delete(p.pending, key)
	for i, k := range p.order {
		if k == key {
			p.order = append(p.order[:i], p.order[i+1:]...)
			break
		}
	}
}
