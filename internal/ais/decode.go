package ais

import (
	"encoding/hex"
	"fmt"
	"math"
)

// Coordinate scaling: positions are signed 1/10000-minute fixed point, so
// raw/600000 degrees. 91 deg lat / 181 deg lon are the unavailable
// sentinels. Type 27 uses 1/10-minute precision instead.
const (
	coordDiv     = 600000.0
	latSentinel  = 91 * 600000
	lonSentinel  = 181 * 600000
	coordDiv27   = 600.0
	latSentinel2 = 91 * 600
	lonSentinel2 = 181 * 600
)

// Report is one decoded AIS message.
type Report interface {
	Type() string
}

// UnsupportedTypeError is returned for message-type ids outside the decoded
// set, carrying the numeric id so callers can tally unhandled types.
type UnsupportedTypeError struct {
	MessageType int
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("unsupported AIS message type: %d", e.MessageType)
}

// Decode dispatches a bitstream on its leading 6-bit message-type id. A
// stream too short to hold the id is the only fatal truncation; inside a
// message, fields past the end of a short stream read as absent.
func Decode(bs Bitstream) (Report, error) {
	id, ok := bs.Uint(0, 6)
	if !ok {
		return nil, fmt.Errorf("bitstream too short for message type: %d bits", bs.Len())
	}
	msgType := int(id)
	switch msgType {
	case 1, 2, 3:
		return decodePositionReportA(bs, msgType), nil
	case 4, 11:
		return decodeBaseStationReport(bs, msgType), nil
	case 5:
		return decodeStaticVoyageData(bs), nil
	case 8:
		return decodeBinaryBroadcast(bs), nil
	case 9:
		return decodeSarAircraft(bs), nil
	case 12:
		return decodeAddressedSafetyMessage(bs), nil
	case 14:
		return decodeSafetyBroadcast(bs), nil
	case 18:
		return decodePositionReportB(bs), nil
	case 19:
		return decodeExtendedPositionReportB(bs), nil
	case 21:
		return decodeAidToNavigation(bs), nil
	case 24:
		return decodeStaticDataReport(bs), nil
	case 27:
		return decodeLongRangePosition(bs), nil
	default:
		return nil, &UnsupportedTypeError{MessageType: msgType}
	}
}

func mmsiAt(c *cursor) uint32 {
	v, _ := c.take(30)
	return uint32(v)
}

// rateOfTurn converts the 8-bit ROT field: -128 unavailable, otherwise
// deg/min = sign(raw) * (raw/4.733)^2.
func rateOfTurn(c *cursor) *float64 {
	raw, ok := c.takeSigned(8)
	if !ok || raw == -128 {
		return nil
	}
	v := math.Pow(float64(raw)/4.733, 2)
	if raw < 0 {
		v = -v
	}
	return &v
}

// tenth reads an unsigned field scaled by 0.1 with a not-available
// sentinel (1023 for SOG, 3600 for COG).
func (c *cursor) tenth(width int, sentinel uint64) *float64 {
	raw, ok := c.take(width)
	if !ok || raw == sentinel {
		return nil
	}
	v := float64(raw) / 10
	return &v
}

// utcSecond reads the 6-bit fix timestamp; 60 and above mean unavailable.
func utcSecond(c *cursor) *int64 {
	raw, ok := c.take(6)
	if !ok || raw >= 60 {
		return nil
	}
	v := int64(raw)
	return &v
}

func (c *cursor) dimensions() *Dimensions {
	// Dimension fields have no sentinel (0 is a legitimate value); the
	// out-of-range sentinel only makes nil mean truncation.
	d := &Dimensions{
		ToBow:       c.uintOr(9, 1<<9),
		ToStern:     c.uintOr(9, 1<<9),
		ToPort:      c.uintOr(6, 1<<6),
		ToStarboard: c.uintOr(6, 1<<6),
	}
	if d.ToBow == nil && d.ToStern == nil && d.ToPort == nil && d.ToStarboard == nil {
		return nil
	}
	return d
}

// Type 1/2/3: class A position report, 168 bits.
func decodePositionReportA(bs Bitstream, msgType int) *VesselDynamicData {
	c := &cursor{bs: bs}
	c.skip(6) // message type
	c.skip(2) // repeat indicator
	out := &VesselDynamicData{MessageType: msgType, Class: "A"}
	out.MMSI = mmsiAt(c)
	out.NavStatus = c.uintOr(4, 15)
	out.RateOfTurn = rateOfTurn(c)
	out.SpeedOverGround = c.tenth(10, 1023)
	if acc := c.boolBit(); acc != nil {
		out.PositionAccuracy = *acc
	}
	out.Longitude = c.scaledCoord(28, coordDiv, lonSentinel)
	out.Latitude = c.scaledCoord(27, coordDiv, latSentinel)
	out.CourseOverGround = c.tenth(12, 3600)
	out.TrueHeading = c.uintOr(9, 511)
	out.Timestamp = utcSecond(c)
	c.skip(2) // maneuver indicator
	c.skip(3) // spare
	out.Raim = c.boolBit()
	return out
}

// Type 18: class B position report, 168 bits.
func decodePositionReportB(bs Bitstream) *VesselDynamicData {
	c := &cursor{bs: bs}
	c.skip(8) // type + repeat
	out := &VesselDynamicData{MessageType: 18, Class: "B"}
	out.MMSI = mmsiAt(c)
	c.skip(8) // regional reserved
	out.SpeedOverGround = c.tenth(10, 1023)
	if acc := c.boolBit(); acc != nil {
		out.PositionAccuracy = *acc
	}
	out.Longitude = c.scaledCoord(28, coordDiv, lonSentinel)
	out.Latitude = c.scaledCoord(27, coordDiv, latSentinel)
	out.CourseOverGround = c.tenth(12, 3600)
	out.TrueHeading = c.uintOr(9, 511)
	out.Timestamp = utcSecond(c)
	c.skip(2) // regional reserved
	c.skip(5) // CS unit, display, DSC, band, message 22 flags
	c.skip(1) // assigned mode
	out.Raim = c.boolBit()
	return out
}

// Type 19: extended class B position report, 312 bits. Position block as
// type 18, then a subset of static data inline.
func decodeExtendedPositionReportB(bs Bitstream) *VesselDynamicData {
	c := &cursor{bs: bs}
	c.skip(8)
	out := &VesselDynamicData{MessageType: 19, Class: "B"}
	out.MMSI = mmsiAt(c)
	c.skip(8)
	out.SpeedOverGround = c.tenth(10, 1023)
	if acc := c.boolBit(); acc != nil {
		out.PositionAccuracy = *acc
	}
	out.Longitude = c.scaledCoord(28, coordDiv, lonSentinel)
	out.Latitude = c.scaledCoord(27, coordDiv, latSentinel)
	out.CourseOverGround = c.tenth(12, 3600)
	out.TrueHeading = c.uintOr(9, 511)
	out.Timestamp = utcSecond(c)
	c.skip(4) // regional reserved
	out.Name = c.text(120)
	out.ShipType = c.uintOr(8, 0)
	out.Dimensions = c.dimensions()
	c.skip(4) // EPFD
	out.Raim = c.boolBit()
	return out
}

// Type 27: long range broadcast, 96 bits, 1/10-minute position precision.
func decodeLongRangePosition(bs Bitstream) *VesselDynamicData {
	c := &cursor{bs: bs}
	c.skip(8)
	out := &VesselDynamicData{MessageType: 27}
	out.MMSI = mmsiAt(c)
	if acc := c.boolBit(); acc != nil {
		out.PositionAccuracy = *acc
	}
	out.Raim = c.boolBit()
	out.NavStatus = c.uintOr(4, 15)
	out.Longitude = c.scaledCoord(18, coordDiv27, lonSentinel2)
	out.Latitude = c.scaledCoord(17, coordDiv27, latSentinel2)
	if raw, ok := c.take(6); ok && raw != 63 {
		v := float64(raw)
		out.SpeedOverGround = &v
	}
	if raw, ok := c.take(9); ok && raw != 511 {
		v := float64(raw)
		out.CourseOverGround = &v
	}
	return out
}

// Type 4 and 11: base station report / UTC response, 168 bits.
func decodeBaseStationReport(bs Bitstream, msgType int) *BaseStationReport {
	c := &cursor{bs: bs}
	c.skip(8)
	out := &BaseStationReport{MessageType: msgType}
	out.MMSI = mmsiAt(c)
	out.Year = c.uintOr(14, 0)
	out.Month = c.uintOr(4, 0)
	out.Day = c.uintOr(5, 0)
	out.Hour = c.uintOr(5, 24)
	out.Minute = c.uintOr(6, 60)
	out.Second = c.uintOr(6, 60)
	if acc := c.boolBit(); acc != nil {
		out.PositionAccuracy = *acc
	}
	out.Longitude = c.scaledCoord(28, coordDiv, lonSentinel)
	out.Latitude = c.scaledCoord(27, coordDiv, latSentinel)
	c.skip(4)  // EPFD
	c.skip(10) // spare
	out.Raim = c.boolBit()
	return out
}

// Type 5: static and voyage related data, 424 bits.
func decodeStaticVoyageData(bs Bitstream) *VesselStaticData {
	c := &cursor{bs: bs}
	c.skip(8)
	out := &VesselStaticData{MessageType: 5}
	out.MMSI = mmsiAt(c)
	if v, ok := c.take(2); ok {
		av := int64(v)
		out.AisVersion = &av
	}
	out.ImoNumber = c.uintOr(30, 0)
	out.CallSign = c.text(42)
	out.VesselName = c.text(120)
	out.ShipType = c.uintOr(8, 0)
	out.Dimensions = c.dimensions()
	c.skip(4) // EPFD
	eta := &Eta{
		Month:  c.uintOr(4, 0),
		Day:    c.uintOr(5, 0),
		Hour:   c.uintOr(5, 24),
		Minute: c.uintOr(6, 60),
	}
	if eta.Month != nil || eta.Day != nil || eta.Hour != nil || eta.Minute != nil {
		out.Eta = eta
	}
	out.Draught = c.tenth(8, 0)
	out.Destination = c.text(120)
	return out
}

// Type 24: class B static data report. Part A carries the name, part B the
// rest. Parts are decoded independently; no cross-sentence merging.
func decodeStaticDataReport(bs Bitstream) *VesselStaticData {
	c := &cursor{bs: bs}
	c.skip(8)
	out := &VesselStaticData{MessageType: 24}
	out.MMSI = mmsiAt(c)
	part, ok := c.take(2)
	if !ok {
		return out
	}
	p := int64(part)
	out.PartNumber = &p
	if part == 0 {
		out.VesselName = c.text(120)
		return out
	}
	out.ShipType = c.uintOr(8, 0)
	out.VendorID = c.text(42)
	out.CallSign = c.text(42)
	out.Dimensions = c.dimensions()
	return out
}

// Type 9: standard SAR aircraft position report, 168 bits.
func decodeSarAircraft(bs Bitstream) *SarAircraftPositionReport {
	c := &cursor{bs: bs}
	c.skip(8)
	out := &SarAircraftPositionReport{MessageType: 9}
	out.MMSI = mmsiAt(c)
	out.AltitudeMeters = c.uintOr(12, 4095)
	if raw, ok := c.take(10); ok && raw != 1023 {
		v := float64(raw)
		out.SpeedOverGround = &v
	}
	if acc := c.boolBit(); acc != nil {
		out.PositionAccuracy = *acc
	}
	out.Longitude = c.scaledCoord(28, coordDiv, lonSentinel)
	out.Latitude = c.scaledCoord(27, coordDiv, latSentinel)
	out.CourseOverGround = c.tenth(12, 3600)
	out.Timestamp = utcSecond(c)
	c.skip(8) // regional reserved
	c.skip(1) // DTE
	c.skip(4) // spare + assigned
	out.Raim = c.boolBit()
	return out
}

// Type 12: addressed safety related message, 72 bits of header then up to
// 936 bits of six-bit text.
func decodeAddressedSafetyMessage(bs Bitstream) *AddressedSafetyMessage {
	c := &cursor{bs: bs}
	c.skip(8)
	out := &AddressedSafetyMessage{MessageType: 12}
	out.MMSI = mmsiAt(c)
	if v, ok := c.take(2); ok {
		seq := int64(v)
		out.SequenceNumber = &seq
	}
	if v, ok := c.take(30); ok {
		out.DestinationMMSI = uint32(v)
	}
	out.Retransmit = c.boolBit()
	c.skip(1) // spare
	out.Text = c.text(bs.Len() - c.pos)
	return out
}

// Type 14: safety related broadcast, text from bit 40.
func decodeSafetyBroadcast(bs Bitstream) *SafetyBroadcastMessage {
	c := &cursor{bs: bs}
	c.skip(8)
	out := &SafetyBroadcastMessage{MessageType: 14}
	out.MMSI = mmsiAt(c)
	c.skip(2) // spare
	out.Text = c.text(bs.Len() - c.pos)
	return out
}

// Type 21: aid-to-navigation report, 272 to 360 bits.
func decodeAidToNavigation(bs Bitstream) *AidToNavigationReport {
	c := &cursor{bs: bs}
	c.skip(8)
	out := &AidToNavigationReport{MessageType: 21}
	out.MMSI = mmsiAt(c)
	out.AidType = c.uintOr(5, 0)
	out.Name = c.text(120)
	if acc := c.boolBit(); acc != nil {
		out.PositionAccuracy = *acc
	}
	out.Longitude = c.scaledCoord(28, coordDiv, lonSentinel)
	out.Latitude = c.scaledCoord(27, coordDiv, latSentinel)
	out.Dimensions = c.dimensions()
	c.skip(4) // EPFD
	out.UtcSecond = c.uintOr(6, 60)
	out.OffPosition = c.boolBit()
	c.skip(8) // regional reserved
	out.Raim = c.boolBit()
	out.VirtualAid = c.boolBit()
	c.skip(2) // assigned mode + spare
	if ext := c.text(bs.Len() - c.pos); ext != "" {
		// Name extension for aids whose name exceeds 20 characters.
		out.Name += ext
	}
	return out
}

// Type 8: binary broadcast message. Header is 56 bits (type, repeat, MMSI,
// spare, DAC, FID); everything after is the application payload.
func decodeBinaryBroadcast(bs Bitstream) *BinaryBroadcastMessage {
	c := &cursor{bs: bs}
	c.skip(8)
	out := &BinaryBroadcastMessage{MessageType: 8}
	out.MMSI = mmsiAt(c)
	c.skip(2) // spare
	if v, ok := c.take(10); ok {
		out.Dac = int64(v)
	}
	if v, ok := c.take(6); ok {
		out.Fid = int64(v)
	}

	if bs.Len() > 56 {
		out.DataBitLength = bs.Len() - 56
		data := make([]byte, (out.DataBitLength+7)/8)
		for i := 0; i < out.DataBitLength; i++ {
			if bs.bit(56 + i) {
				data[i/8] |= 1 << (7 - i%8)
			}
		}
		out.DataHex = hex.EncodeToString(data)
		if out.Dac == 1 && out.Fid == 11 {
			out.Meteo = decodeMeteoHydro11(bs, 56)
		}
	}
	return out
}
