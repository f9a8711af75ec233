// Package ais decodes the six-bit-armored binary payloads carried inside
// VDM/VDO sentences into typed reports.
package ais

import (
	"fmt"
	"strings"
)

// Bitstream is the unpacked payload of an AIS sentence, MSB-first.
type Bitstream struct {
	bits []byte // packed, bit i at bits[i/8] >> (7 - i%8)
	n    int
}

// Len returns the number of valid bits.
func (b Bitstream) Len() int { return b.n }

// DecodePayload converts a six-bit-armored payload into a bitstream. Each
// character carries 6 bits via the AIS substitution alphabet (not Base64):
// '0'..'W' map to 0..39 and '`'..'w' to 40..63. fillBits (0..5) are trimmed
// from the end, so the result holds 6*len(payload)-fillBits bits.
func DecodePayload(payload string, fillBits int) (Bitstream, error) {
	if fillBits < 0 || fillBits > 5 {
		return Bitstream{}, fmt.Errorf("fill bits out of range: %d", fillBits)
	}
	out := Bitstream{bits: make([]byte, (len(payload)*6+7)/8)}
	for i := 0; i < len(payload); i++ {
		c := payload[i]
		v := int(c) - 48
		if v > 40 {
			v -= 8
		}
		if v < 0 || v > 63 || (c > 'W' && c < '`') {
			return Bitstream{}, fmt.Errorf("invalid armor character %q at index %d", c, i)
		}
		for bit := 0; bit < 6; bit++ {
			if v&(1<<(5-bit)) != 0 {
				pos := i*6 + bit
				out.bits[pos/8] |= 1 << (7 - pos%8)
			}
		}
	}
	out.n = len(payload) * 6
	if out.n >= fillBits {
		out.n -= fillBits
	}
	return out, nil
}

func (b Bitstream) bit(pos int) bool {
	return b.bits[pos/8]&(1<<(7-pos%8)) != 0
}

// Uint reads width bits at offset as an unsigned integer. ok is false when
// the range extends past the end of the stream.
func (b Bitstream) Uint(offset, width int) (uint64, bool) {
	if offset < 0 || width < 1 || width > 64 || offset+width > b.n {
		return 0, false
	}
	var v uint64
	for i := 0; i < width; i++ {
		v <<= 1
		if b.bit(offset + i) {
			v |= 1
		}
	}
	return v, true
}

// Int reads width bits at offset as a two's-complement signed integer.
func (b Bitstream) Int(offset, width int) (int64, bool) {
	v, ok := b.Uint(offset, width)
	if !ok {
		return 0, false
	}
	if width < 64 && v&(1<<(width-1)) != 0 {
		return int64(v) - (1 << width), true
	}
	return int64(v), true
}

// sixBitASCII is the AIS text alphabet: values 0..31 map to '@'..'_' and
// 32..63 to ' '..'?'.
const sixBitASCII = `@ABCDEFGHIJKLMNOPQRSTUVWXYZ[\]^_ !"#$%&'()*+,-./0123456789:;<=>?`

// Text reads width bits at offset as six-bit ASCII. Truncated payloads
// yield the characters that fit. Trailing '@' padding and surrounding
// whitespace are stripped.
func (b Bitstream) Text(offset, width int) string {
	var sb strings.Builder
	for pos := offset; pos+6 <= offset+width; pos += 6 {
		v, ok := b.Uint(pos, 6)
		if !ok {
			break
		}
		sb.WriteByte(sixBitASCII[v])
	}
	s := sb.String()
	if at := strings.IndexByte(s, '@'); at != -1 {
		s = s[:at]
	}
	return strings.TrimSpace(s)
}

// cursor walks a bitstream front to back. Once any read runs past the end
// the cursor stays exhausted, so every later field reads as absent; a
// truncated payload degrades field by field instead of failing the message.
type cursor struct {
	bs  Bitstream
	pos int
	bad bool
}

func (c *cursor) take(width int) (uint64, bool) {
	if c.bad {
		return 0, false
	}
	v, ok := c.bs.Uint(c.pos, width)
	if !ok {
		c.bad = true
		return 0, false
	}
	c.pos += width
	return v, true
}

func (c *cursor) takeSigned(width int) (int64, bool) {
	if c.bad {
		return 0, false
	}
	v, ok := c.bs.Int(c.pos, width)
	if !ok {
		c.bad = true
		return 0, false
	}
	c.pos += width
	return v, true
}

func (c *cursor) skip(width int) { _, _ = c.take(width) }

func (c *cursor) text(width int) string {
	if c.bad || c.pos+6 > c.bs.Len() {
		c.bad = true
		return ""
	}
	end := c.pos + width
	if end > c.bs.Len() {
		end = c.bs.Len()
	}
	s := c.bs.Text(c.pos, end-c.pos)
	c.pos = end
	return s
}

// uintOr reads width bits and returns a pointer, nil at the not-available
// sentinel or on truncation.
func (c *cursor) uintOr(width int, sentinel uint64) *int64 {
	v, ok := c.take(width)
	if !ok || v == sentinel {
		return nil
	}
	out := int64(v)
	return &out
}

func (c *cursor) boolBit() *bool {
	v, ok := c.take(1)
	if !ok {
		return nil
	}
	out := v == 1
	return &out
}

// scaledCoord reads a signed fixed-point coordinate: raw/div degrees with a
// positive not-available sentinel (91 deg for latitude, 181 for longitude,
// pre-multiplied by div).
func (c *cursor) scaledCoord(width int, div float64, sentinel int64) *float64 {
	raw, ok := c.takeSigned(width)
	if !ok || raw == sentinel {
		return nil
	}
	v := float64(raw) / div
	return &v
}
