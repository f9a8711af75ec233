package nmea

import "strconv"

// Checksum returns the XOR of all bytes in span. NMEA 0183 uses this for
// both sentence bodies ($/! to *) and tag block interiors.
func Checksum(span string) byte {
	ck := byte(0)
	for i := 0; i < len(span); i++ {
		ck ^= span[i]
	}
	return ck
}

// ChecksumMatches reports whether the two-hex-digit string matches the XOR
// of span. Hex digits are accepted in either case. A malformed expected
// value never matches.
func ChecksumMatches(span string, expected string) bool {
	if len(expected) != 2 {
		return false
	}
	want, err := strconv.ParseUint(expected, 16, 8)
	if err != nil {
		return false
	}
	return Checksum(span) == byte(want)
}
