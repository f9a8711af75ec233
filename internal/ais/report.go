package ais

// Report types produced by Decode. Field layouts, scaling factors, and
// not-available sentinels follow the published AIS tables; optional fields
// are pointers so "not available" survives serialization as null.

// Dimensions of a vessel relative to its reference point, in meters.
type Dimensions struct {
	ToBow       *int64 `json:"to_bow,omitempty"`
	ToStern     *int64 `json:"to_stern,omitempty"`
	ToPort      *int64 `json:"to_port,omitempty"`
	ToStarboard *int64 `json:"to_starboard,omitempty"`
}

// Eta is the estimated time of arrival from a type 5 report. Month/day 0
// and hour 24 / minute 60 mean unavailable and are omitted.
type Eta struct {
	Month  *int64 `json:"month,omitempty"`
	Day    *int64 `json:"day,omitempty"`
	Hour   *int64 `json:"hour,omitempty"`
	Minute *int64 `json:"minute,omitempty"`
}

// VesselDynamicData covers the position report family: types 1/2/3
// (class A), 18/19 (class B), and 27 (long range).
type VesselDynamicData struct {
	MessageType int    `json:"message_type"`
	MMSI        uint32 `json:"mmsi"`
	// Class is "A" for types 1-3 and "B" for 18/19. Type 27 reports carry
	// the class of the transponder, which the message does not encode;
	// left empty there.
	Class string `json:"class,omitempty"`

	NavStatus        *int64   `json:"nav_status,omitempty"`
	RateOfTurn       *float64 `json:"rate_of_turn,omitempty"`
	SpeedOverGround  *float64 `json:"speed_over_ground,omitempty"`
	PositionAccuracy bool     `json:"position_accuracy"`
	Latitude         *float64 `json:"latitude"`
	Longitude        *float64 `json:"longitude"`
	CourseOverGround *float64 `json:"course_over_ground,omitempty"`
	TrueHeading      *int64   `json:"true_heading,omitempty"`
	// Timestamp is the UTC second of the position fix (0-59).
	Timestamp *int64 `json:"timestamp,omitempty"`
	Raim      *bool  `json:"raim,omitempty"`

	// Type 19 carries a subset of static data inline.
	Name       string      `json:"name,omitempty"`
	ShipType   *int64      `json:"ship_type,omitempty"`
	Dimensions *Dimensions `json:"dimensions,omitempty"`
}

func (VesselDynamicData) Type() string { return "VesselDynamicData" }

// VesselStaticData covers type 5 (static and voyage) and type 24 (class B
// static, parts A and B decoded independently).
type VesselStaticData struct {
	MessageType int    `json:"message_type"`
	MMSI        uint32 `json:"mmsi"`
	// PartNumber is set for type 24 only: 0 for part A, 1 for part B.
	PartNumber *int64 `json:"part_number,omitempty"`

	AisVersion  *int64      `json:"ais_version,omitempty"`
	ImoNumber   *int64      `json:"imo_number,omitempty"`
	CallSign    string      `json:"call_sign,omitempty"`
	VesselName  string      `json:"vessel_name,omitempty"`
	ShipType    *int64      `json:"ship_type,omitempty"`
	VendorID    string      `json:"vendor_id,omitempty"`
	Dimensions  *Dimensions `json:"dimensions,omitempty"`
	Eta         *Eta        `json:"eta,omitempty"`
	Draught     *float64    `json:"draught,omitempty"`
	Destination string      `json:"destination,omitempty"`
}

func (VesselStaticData) Type() string { return "VesselStaticData" }

// BaseStationReport covers type 4 and the identically laid out type 11 UTC
// response.
type BaseStationReport struct {
	MessageType int    `json:"message_type"`
	MMSI        uint32 `json:"mmsi"`

	Year   *int64 `json:"year,omitempty"`
	Month  *int64 `json:"month,omitempty"`
	Day    *int64 `json:"day,omitempty"`
	Hour   *int64 `json:"hour,omitempty"`
	Minute *int64 `json:"minute,omitempty"`
	Second *int64 `json:"second,omitempty"`

	PositionAccuracy bool     `json:"position_accuracy"`
	Latitude         *float64 `json:"latitude"`
	Longitude        *float64 `json:"longitude"`
	Raim             *bool    `json:"raim,omitempty"`
}

func (BaseStationReport) Type() string { return "BaseStationReport" }

// SarAircraftPositionReport is type 9.
type SarAircraftPositionReport struct {
	MessageType int    `json:"message_type"`
	MMSI        uint32 `json:"mmsi"`

	// AltitudeMeters 4095 means unavailable, 4094 means 4094 or higher.
	AltitudeMeters   *int64   `json:"altitude,omitempty"`
	SpeedOverGround  *float64 `json:"speed_over_ground,omitempty"`
	PositionAccuracy bool     `json:"position_accuracy"`
	Latitude         *float64 `json:"latitude"`
	Longitude        *float64 `json:"longitude"`
	CourseOverGround *float64 `json:"course_over_ground,omitempty"`
	Timestamp        *int64   `json:"timestamp,omitempty"`
	Raim             *bool    `json:"raim,omitempty"`
}

func (SarAircraftPositionReport) Type() string { return "StandardSarAircraftPositionReport" }

// AidToNavigationReport is type 21.
type AidToNavigationReport struct {
	MessageType int    `json:"message_type"`
	MMSI        uint32 `json:"mmsi"`

	AidType          *int64      `json:"aid_type,omitempty"`
	Name             string      `json:"name,omitempty"`
	PositionAccuracy bool        `json:"position_accuracy"`
	Latitude         *float64    `json:"latitude"`
	Longitude        *float64    `json:"longitude"`
	Dimensions       *Dimensions `json:"dimensions,omitempty"`
	UtcSecond        *int64      `json:"utc_second,omitempty"`
	OffPosition      *bool       `json:"off_position,omitempty"`
	Raim             *bool       `json:"raim,omitempty"`
	VirtualAid       *bool       `json:"virtual_aid,omitempty"`
}

func (AidToNavigationReport) Type() string { return "AidToNavigationReport" }

// AddressedSafetyMessage is type 12: six-bit text addressed to one station.
type AddressedSafetyMessage struct {
	MessageType int    `json:"message_type"`
	MMSI        uint32 `json:"mmsi"`

	SequenceNumber  *int64 `json:"sequence_number,omitempty"`
	DestinationMMSI uint32 `json:"destination_mmsi"`
	Retransmit      *bool  `json:"retransmit,omitempty"`
	Text            string `json:"text,omitempty"`
}

func (AddressedSafetyMessage) Type() string { return "AddressedSafetyRelatedMessage" }

// SafetyBroadcastMessage is type 14.
type SafetyBroadcastMessage struct {
	MessageType int    `json:"message_type"`
	MMSI        uint32 `json:"mmsi"`

	Text string `json:"text,omitempty"`
}

func (SafetyBroadcastMessage) Type() string { return "SafetyRelatedBroadcastMessage" }

// BinaryBroadcastMessage is type 8. The payload after the DAC/FID header is
// kept as hex; DAC=1 FID=11 meteorology additionally decodes into Meteo.
type BinaryBroadcastMessage struct {
	MessageType int    `json:"message_type"`
	MMSI        uint32 `json:"mmsi"`

	Dac           int64       `json:"dac"`
	Fid           int64       `json:"fid"`
	DataHex       string      `json:"data_hex"`
	DataBitLength int         `json:"data_bit_length"`
	Meteo         *MeteoHydro `json:"meteo,omitempty"`
}

func (BinaryBroadcastMessage) Type() string { return "BinaryBroadcastMessage" }
