package nmea

import "fmt"

// decodeGNSS dispatches the comma-split field list (prefix at index 0) to
// the formatter's decoder. ok is false for formatters outside the supported
// set; the caller owns that error.
func decodeGNSS(formatter string, fields []string) (Message, error, bool) {
	switch formatter {
	case "GGA":
		m, err := decodeGGA(fields)
		return m, err, true
	case "RMC":
		m, err := decodeRMC(fields)
		return m, err, true
	case "GLL":
		m, err := decodeGLL(fields)
		return m, err, true
	case "VTG":
		m, err := decodeVTG(fields)
		return m, err, true
	case "GSA":
		m, err := decodeGSA(fields)
		return m, err, true
	case "GSV":
		m, err := decodeGSV(fields)
		return m, err, true
	case "ZDA":
		m, err := decodeZDA(fields)
		return m, err, true
	case "HDT":
		m, err := decodeHDT(fields)
		return m, err, true
	case "DPT":
		m, err := decodeDPT(fields)
		return m, err, true
	case "MTW":
		m, err := decodeMTW(fields)
		return m, err, true
	case "MWV":
		m, err := decodeMWV(fields)
		return m, err, true
	}
	return nil, nil, false
}

func countErr(sentence string, want, got int) error {
	return fmt.Errorf("%s: expected at least %d fields, got %d", sentence, want, got)
}

func decodeGGA(f []string) (Message, error) {
	if len(f) < 15 {
		return nil, countErr("GGA", 15, len(f))
	}
	out := Gga{}
	var err error
	if out.Time, err = parseClock("GGA", 1, f[1]); err != nil {
		return nil, err
	}
	if out.Latitude, err = parseCoord("GGA", 2, f[2], f[3], true); err != nil {
		return nil, err
	}
	if out.Longitude, err = parseCoord("GGA", 4, f[4], f[5], false); err != nil {
		return nil, err
	}
	if out.FixQuality, err = optInt("GGA", 6, "fix quality", f[6]); err != nil {
		return nil, err
	}
	if out.SatelliteCount, err = optInt("GGA", 7, "satellite count", f[7]); err != nil {
		return nil, err
	}
	if out.Hdop, err = optFloat("GGA", 8, "hdop", f[8]); err != nil {
		return nil, err
	}
	if out.Altitude, err = optFloat("GGA", 9, "altitude", f[9]); err != nil {
		return nil, err
	}
	if err = unitLetter("GGA", 10, f[10], "M"); err != nil {
		return nil, err
	}
	if out.GeoidSeparation, err = optFloat("GGA", 11, "geoid separation", f[11]); err != nil {
		return nil, err
	}
	if err = unitLetter("GGA", 12, f[12], "M"); err != nil {
		return nil, err
	}
	if out.DgpsAge, err = optFloat("GGA", 13, "dgps age", f[13]); err != nil {
		return nil, err
	}
	out.DgpsStationID = f[14]
	return out, nil
}

func decodeRMC(f []string) (Message, error) {
	if len(f) < 12 {
		return nil, countErr("RMC", 12, len(f))
	}
	out := Rmc{}
	var err error
	if out.Time, err = parseClock("RMC", 1, f[1]); err != nil {
		return nil, err
	}
	if out.StatusActive, err = activeFlag("RMC", 2, f[2]); err != nil {
		return nil, err
	}
	if out.Latitude, err = parseCoord("RMC", 3, f[3], f[4], true); err != nil {
		return nil, err
	}
	if out.Longitude, err = parseCoord("RMC", 5, f[5], f[6], false); err != nil {
		return nil, err
	}
	if out.SpeedOverGround, err = optFloat("RMC", 7, "speed over ground", f[7]); err != nil {
		return nil, err
	}
	if out.CourseOverGround, err = optFloat("RMC", 8, "course over ground", f[8]); err != nil {
		return nil, err
	}
	if out.Date, err = parseDate("RMC", 9, f[9]); err != nil {
		return nil, err
	}
	if out.MagneticVariation, err = optFloat("RMC", 10, "magnetic variation", f[10]); err != nil {
		return nil, err
	}
	if out.MagneticVariation != nil {
		switch f[11] {
		case "E":
		case "W":
			*out.MagneticVariation = -*out.MagneticVariation
		default:
			return nil, fmt.Errorf("RMC field 11: invalid variation direction %q", f[11])
		}
	}
	return out, nil
}

func decodeGLL(f []string) (Message, error) {
	if len(f) < 7 {
		return nil, countErr("GLL", 7, len(f))
	}
	out := Gll{}
	var err error
	if out.Latitude, err = parseCoord("GLL", 1, f[1], f[2], true); err != nil {
		return nil, err
	}
	if out.Longitude, err = parseCoord("GLL", 3, f[3], f[4], false); err != nil {
		return nil, err
	}
	if out.Time, err = parseClock("GLL", 5, f[5]); err != nil {
		return nil, err
	}
	if out.StatusActive, err = activeFlag("GLL", 6, f[6]); err != nil {
		return nil, err
	}
	return out, nil
}

func decodeVTG(f []string) (Message, error) {
	if len(f) < 9 {
		return nil, countErr("VTG", 9, len(f))
	}
	out := Vtg{}
	var err error
	if out.CourseTrue, err = optFloat("VTG", 1, "true course", f[1]); err != nil {
		return nil, err
	}
	if err = unitLetter("VTG", 2, f[2], "T"); err != nil {
		return nil, err
	}
	if out.CourseMagnetic, err = optFloat("VTG", 3, "magnetic course", f[3]); err != nil {
		return nil, err
	}
	if err = unitLetter("VTG", 4, f[4], "M"); err != nil {
		return nil, err
	}
	if out.SpeedKnots, err = optFloat("VTG", 5, "speed", f[5]); err != nil {
		return nil, err
	}
	if err = unitLetter("VTG", 6, f[6], "N"); err != nil {
		return nil, err
	}
	if out.SpeedKmh, err = optFloat("VTG", 7, "speed", f[7]); err != nil {
		return nil, err
	}
	if err = unitLetter("VTG", 8, f[8], "K"); err != nil {
		return nil, err
	}
	return out, nil
}

func decodeGSA(f []string) (Message, error) {
	if len(f) < 18 {
		return nil, countErr("GSA", 18, len(f))
	}
	out := Gsa{}
	var err error
	switch f[1] {
	case "", "A", "M":
		out.Mode = f[1]
	default:
		return nil, fmt.Errorf("GSA field 1: invalid selection mode %q", f[1])
	}
	if out.FixType, err = optInt("GSA", 2, "fix type", f[2]); err != nil {
		return nil, err
	}
	for i := 3; i < 15; i++ {
		id, err := optInt("GSA", i, "satellite id", f[i])
		if err != nil {
			return nil, err
		}
		if id != nil {
			out.SatelliteIDs = append(out.SatelliteIDs, *id)
		}
	}
	if out.Pdop, err = optFloat("GSA", 15, "pdop", f[15]); err != nil {
		return nil, err
	}
	if out.Hdop, err = optFloat("GSA", 16, "hdop", f[16]); err != nil {
		return nil, err
	}
	if out.Vdop, err = optFloat("GSA", 17, "vdop", f[17]); err != nil {
		return nil, err
	}
	return out, nil
}

func decodeGSV(f []string) (Message, error) {
	if len(f) < 4 {
		return nil, countErr("GSV", 4, len(f))
	}
	out := Gsv{}
	var err error
	if out.TotalSentences, err = optInt("GSV", 1, "total sentences", f[1]); err != nil {
		return nil, err
	}
	if out.SentenceNumber, err = optInt("GSV", 2, "sentence number", f[2]); err != nil {
		return nil, err
	}
	if out.SatellitesInView, err = optInt("GSV", 3, "satellites in view", f[3]); err != nil {
		return nil, err
	}
	// Up to four satellite blocks of four fields each; a short final block
	// is a field-count error, a fully empty one is absent.
	for base := 4; base < len(f); base += 4 {
		if base+4 > len(f) {
			return nil, fmt.Errorf("GSV: truncated satellite block at field %d", base)
		}
		sat := GsvSatellite{}
		if sat.Prn, err = optInt("GSV", base, "prn", f[base]); err != nil {
			return nil, err
		}
		if sat.Elevation, err = optInt("GSV", base+1, "elevation", f[base+1]); err != nil {
			return nil, err
		}
		if sat.Azimuth, err = optInt("GSV", base+2, "azimuth", f[base+2]); err != nil {
			return nil, err
		}
		if sat.Snr, err = optInt("GSV", base+3, "snr", f[base+3]); err != nil {
			return nil, err
		}
		if sat.Prn != nil || sat.Elevation != nil || sat.Azimuth != nil || sat.Snr != nil {
			out.Satellites = append(out.Satellites, sat)
		}
	}
	return out, nil
}

func decodeZDA(f []string) (Message, error) {
	if len(f) < 7 {
		return nil, countErr("ZDA", 7, len(f))
	}
	out := Zda{}
	var err error
	if out.Time, err = parseClock("ZDA", 1, f[1]); err != nil {
		return nil, err
	}
	if out.Day, err = optInt("ZDA", 2, "day", f[2]); err != nil {
		return nil, err
	}
	if out.Month, err = optInt("ZDA", 3, "month", f[3]); err != nil {
		return nil, err
	}
	if out.Year, err = optInt("ZDA", 4, "year", f[4]); err != nil {
		return nil, err
	}
	if out.LocalZoneHours, err = optInt("ZDA", 5, "local zone hours", f[5]); err != nil {
		return nil, err
	}
	if out.LocalZoneMinutes, err = optInt("ZDA", 6, "local zone minutes", f[6]); err != nil {
		return nil, err
	}
	return out, nil
}

func decodeHDT(f []string) (Message, error) {
	if len(f) < 3 {
		return nil, countErr("HDT", 3, len(f))
	}
	out := Hdt{}
	var err error
	if out.HeadingTrue, err = optFloat("HDT", 1, "heading", f[1]); err != nil {
		return nil, err
	}
	if err = unitLetter("HDT", 2, f[2], "T"); err != nil {
		return nil, err
	}
	return out, nil
}

func decodeDPT(f []string) (Message, error) {
	if len(f) < 3 {
		return nil, countErr("DPT", 3, len(f))
	}
	out := Dpt{}
	var err error
	if out.DepthBelowTransducer, err = optFloat("DPT", 1, "depth", f[1]); err != nil {
		return nil, err
	}
	if out.TransducerOffset, err = optFloat("DPT", 2, "transducer offset", f[2]); err != nil {
		return nil, err
	}
	if len(f) > 3 {
		if out.MaxRange, err = optFloat("DPT", 3, "max range", f[3]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func decodeMTW(f []string) (Message, error) {
	if len(f) < 3 {
		return nil, countErr("MTW", 3, len(f))
	}
	out := Mtw{}
	var err error
	if out.WaterTemperature, err = optFloat("MTW", 1, "temperature", f[1]); err != nil {
		return nil, err
	}
	if err = unitLetter("MTW", 2, f[2], "C"); err != nil {
		return nil, err
	}
	return out, nil
}

func decodeMWV(f []string) (Message, error) {
	if len(f) < 6 {
		return nil, countErr("MWV", 6, len(f))
	}
	out := Mwv{}
	var err error
	if out.WindAngle, err = optFloat("MWV", 1, "wind angle", f[1]); err != nil {
		return nil, err
	}
	switch f[2] {
	case "", "R", "T":
		out.Reference = f[2]
	default:
		return nil, fmt.Errorf("MWV field 2: invalid reference %q", f[2])
	}
	if out.WindSpeed, err = optFloat("MWV", 3, "wind speed", f[3]); err != nil {
		return nil, err
	}
	if err = unitLetter("MWV", 4, f[4], "K", "M", "N"); err != nil {
		return nil, err
	}
	out.SpeedUnits = f[4]
	out.Valid = f[5] == "A"
	return out, nil
}
