package nmea

import (
	"fmt"
	"strconv"
	"strings"
)

// GNSS payload types, one per supported formatter. Optional fields are
// pointers: an empty field on the wire stays absent instead of becoming
// zero.

// TimeOfDay is an hhmmss.sss UTC time-of-day field, split into components.
type TimeOfDay struct {
	Hour   int     `json:"hour"`
	Minute int     `json:"minute"`
	Second float64 `json:"second"`
}

// Date is a ddmmyy date field with the century restored.
type Date struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
}

// Gga is the GGA fix data sentence.
type Gga struct {
	Time            *TimeOfDay `json:"time,omitempty"`
	Latitude        *float64   `json:"latitude"`
	Longitude       *float64   `json:"longitude"`
	FixQuality      *int64     `json:"fix_quality,omitempty"`
	SatelliteCount  *int64     `json:"satellite_count,omitempty"`
	Hdop            *float64   `json:"hdop,omitempty"`
	Altitude        *float64   `json:"altitude,omitempty"`
	GeoidSeparation *float64   `json:"geoid_separation,omitempty"`
	DgpsAge         *float64   `json:"dgps_age,omitempty"`
	DgpsStationID   string     `json:"dgps_station_id,omitempty"`
}

func (Gga) Type() string { return "Gga" }

// Rmc is the RMC recommended minimum sentence.
type Rmc struct {
	Time              *TimeOfDay `json:"time,omitempty"`
	StatusActive      *bool      `json:"status_active,omitempty"`
	Latitude          *float64   `json:"latitude"`
	Longitude         *float64   `json:"longitude"`
	SpeedOverGround   *float64   `json:"speed_over_ground,omitempty"`
	CourseOverGround  *float64   `json:"course_over_ground,omitempty"`
	Date              *Date      `json:"date,omitempty"`
	MagneticVariation *float64   `json:"magnetic_variation,omitempty"`
}

func (Rmc) Type() string { return "Rmc" }

// Gll is the GLL geographic position sentence.
type Gll struct {
	Latitude     *float64   `json:"latitude"`
	Longitude    *float64   `json:"longitude"`
	Time         *TimeOfDay `json:"time,omitempty"`
	StatusActive *bool      `json:"status_active,omitempty"`
}

func (Gll) Type() string { return "Gll" }

// Vtg is the VTG course and speed over ground sentence.
type Vtg struct {
	CourseTrue     *float64 `json:"course_true,omitempty"`
	CourseMagnetic *float64 `json:"course_magnetic,omitempty"`
	SpeedKnots     *float64 `json:"speed_knots,omitempty"`
	SpeedKmh       *float64 `json:"speed_kmh,omitempty"`
}

func (Vtg) Type() string { return "Vtg" }

// Gsa is the GSA active satellites and dilution-of-precision sentence.
type Gsa struct {
	// Mode is "A" (automatic) or "M" (manual).
	Mode         string   `json:"mode,omitempty"`
	FixType      *int64   `json:"fix_type,omitempty"`
	SatelliteIDs []int64  `json:"satellite_ids,omitempty"`
	Pdop         *float64 `json:"pdop,omitempty"`
	Hdop         *float64 `json:"hdop,omitempty"`
	Vdop         *float64 `json:"vdop,omitempty"`
}

func (Gsa) Type() string { return "Gsa" }

// GsvSatellite is one satellite entry of a GSV sentence.
type GsvSatellite struct {
	Prn       *int64 `json:"prn,omitempty"`
	Elevation *int64 `json:"elevation,omitempty"`
	Azimuth   *int64 `json:"azimuth,omitempty"`
	Snr       *int64 `json:"snr,omitempty"`
}

// Gsv is one GSV satellites-in-view sentence. Sentences of a group are
// reported independently; no cross-sentence merging.
type Gsv struct {
	TotalSentences   *int64         `json:"total_sentences,omitempty"`
	SentenceNumber   *int64         `json:"sentence_number,omitempty"`
	SatellitesInView *int64         `json:"satellites_in_view,omitempty"`
	Satellites       []GsvSatellite `json:"satellites,omitempty"`
}

func (Gsv) Type() string { return "Gsv" }

// Zda is the ZDA time and date sentence.
type Zda struct {
	Time             *TimeOfDay `json:"time,omitempty"`
	Day              *int64     `json:"day,omitempty"`
	Month            *int64     `json:"month,omitempty"`
	Year             *int64     `json:"year,omitempty"`
	LocalZoneHours   *int64     `json:"local_zone_hours,omitempty"`
	LocalZoneMinutes *int64     `json:"local_zone_minutes,omitempty"`
}

func (Zda) Type() string { return "Zda" }

// Hdt is the HDT true heading sentence.
type Hdt struct {
	HeadingTrue *float64 `json:"heading_true,omitempty"`
}

func (Hdt) Type() string { return "Hdt" }

// Dpt is the DPT depth-of-water sentence.
type Dpt struct {
	DepthBelowTransducer *float64 `json:"depth_below_transducer,omitempty"`
	TransducerOffset     *float64 `json:"transducer_offset,omitempty"`
	MaxRange             *float64 `json:"max_range,omitempty"`
}

func (Dpt) Type() string { return "Dpt" }

// Mtw is the MTW water temperature sentence.
type Mtw struct {
	WaterTemperature *float64 `json:"water_temperature,omitempty"`
}

func (Mtw) Type() string { return "Mtw" }

// Mwv is the MWV wind speed and angle sentence.
type Mwv struct {
	WindAngle *float64 `json:"wind_angle,omitempty"`
	// Reference is "R" (relative) or "T" (true).
	Reference string   `json:"reference,omitempty"`
	WindSpeed *float64 `json:"wind_speed,omitempty"`
	// SpeedUnits is the declared unit letter: K, M, or N.
	SpeedUnits string `json:"speed_units,omitempty"`
	Valid      bool   `json:"valid"`
}

func (Mwv) Type() string { return "Mwv" }

// Field helpers shared by the decoders. An empty field means absent and
// parses to nil without error; a non-empty malformed field is a field error
// naming the sentence type and position.

func optFloat(sentence string, field int, name, raw string) (*float64, error) {
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("%s field %d (%s): invalid number %q", sentence, field, name, raw)
	}
	return &v, nil
}

func optInt(sentence string, field int, name, raw string) (*int64, error) {
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%s field %d (%s): invalid integer %q", sentence, field, name, raw)
	}
	return &v, nil
}

// parseCoord converts a ddmm.mmmm (or dddmm.mmmm) value plus hemisphere
// letter to signed decimal degrees. An empty value is absent; a value with
// an unknown hemisphere letter is a field error.
func parseCoord(sentence string, field int, value, hemi string, lat bool) (*float64, error) {
	if value == "" {
		return nil, nil
	}
	raw, err := strconv.ParseFloat(value, 64)
	if err != nil || raw < 0 {
		return nil, fmt.Errorf("%s field %d: invalid coordinate %q", sentence, field, value)
	}
	deg := float64(int(raw / 100))
	min := raw - deg*100
	if min >= 60 {
		return nil, fmt.Errorf("%s field %d: minutes out of range in %q", sentence, field, value)
	}
	v := deg + min/60
	switch hemi {
	case "N", "E":
	case "S", "W":
		v = -v
	default:
		axis := "longitude"
		if lat {
			axis = "latitude"
		}
		return nil, fmt.Errorf("%s field %d: invalid %s hemisphere %q", sentence, field+1, axis, hemi)
	}
	if lat {
		if hemi == "E" || hemi == "W" {
			return nil, fmt.Errorf("%s field %d: invalid latitude hemisphere %q", sentence, field+1, hemi)
		}
	} else if hemi == "N" || hemi == "S" {
		return nil, fmt.Errorf("%s field %d: invalid longitude hemisphere %q", sentence, field+1, hemi)
	}
	return &v, nil
}

// parseClock parses hhmmss or hhmmss.sss.
func parseClock(sentence string, field int, raw string) (*TimeOfDay, error) {
	if raw == "" {
		return nil, nil
	}
	bad := func() error {
		return fmt.Errorf("%s field %d: invalid time %q", sentence, field, raw)
	}
	if len(raw) < 6 {
		return nil, bad()
	}
	hour, err1 := strconv.Atoi(raw[0:2])
	minute, err2 := strconv.Atoi(raw[2:4])
	second, err3 := strconv.ParseFloat(raw[4:], 64)
	if err1 != nil || err2 != nil || err3 != nil {
		return nil, bad()
	}
	if hour > 23 || minute > 59 || second < 0 || second >= 61 {
		return nil, bad()
	}
	return &TimeOfDay{Hour: hour, Minute: minute, Second: second}, nil
}

// parseDate parses ddmmyy. Two-digit years below 80 land in the 2000s.
func parseDate(sentence string, field int, raw string) (*Date, error) {
	if raw == "" {
		return nil, nil
	}
	bad := func() error {
		return fmt.Errorf("%s field %d: invalid date %q", sentence, field, raw)
	}
	if len(raw) != 6 {
		return nil, bad()
	}
	day, err1 := strconv.Atoi(raw[0:2])
	month, err2 := strconv.Atoi(raw[2:4])
	year, err3 := strconv.Atoi(raw[4:6])
	if err1 != nil || err2 != nil || err3 != nil {
		return nil, bad()
	}
	if day < 1 || day > 31 || month < 1 || month > 12 {
		return nil, bad()
	}
	if year < 80 {
		year += 2000
	} else {
		year += 1900
	}
	return &Date{Year: year, Month: month, Day: day}, nil
}

// unitLetter validates a declared unit field against the accepted letters.
// Empty is fine; anything else must match one of accepted.
func unitLetter(sentence string, field int, raw string, accepted ...string) error {
	if raw == "" {
		return nil
	}
	for _, a := range accepted {
		if raw == a {
			return nil
		}
	}
	return fmt.Errorf("%s field %d: invalid units letter %q (want %s)",
		sentence, field, raw, strings.Join(accepted, "/"))
}

// activeFlag parses the A/V status letter common to RMC and GLL.
func activeFlag(sentence string, field int, raw string) (*bool, error) {
	switch raw {
	case "":
		return nil, nil
	case "A":
		v := true
		return &v, nil
	case "V":
		v := false
		return &v, nil
	default:
		return nil, fmt.Errorf("%s field %d: invalid status %q", sentence, field, raw)
	}
}
