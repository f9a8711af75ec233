package nmea

import (
	"strings"
	"testing"
)

func parseOK(t *testing.T, line string) Message {
	t.Helper()
	res := NewParser().Parse(line)
	if res.Err != nil {
		t.Fatalf("Parse(%q): %v", line, res.Err)
	}
	return res.Message
}

func TestDecodeGGA(t *testing.T) {
	m := parseOK(t, "$GPGGA,092750.000,5321.6802,N,00630.3372,W,1,8,1.03,61.7,M,55.2,M,,")
	gga, ok := m.(Gga)
	if !ok {
		t.Fatalf("got %T", m)
	}
	if gga.Time == nil || gga.Time.Hour != 9 || gga.Time.Minute != 27 || gga.Time.Second != 50 {
		t.Fatalf("time = %+v", gga.Time)
	}
	near(t, "latitude", gga.Latitude, 53.361336666666666)
	near(t, "longitude", gga.Longitude, -6.50562)
	if gga.FixQuality == nil || *gga.FixQuality != 1 {
		t.Fatalf("fix quality = %v", gga.FixQuality)
	}
	if gga.SatelliteCount == nil || *gga.SatelliteCount != 8 {
		t.Fatalf("satellite count = %v", gga.SatelliteCount)
	}
	near(t, "hdop", gga.Hdop, 1.03)
	near(t, "altitude", gga.Altitude, 61.7)
	near(t, "geoid separation", gga.GeoidSeparation, 55.2)
	if gga.DgpsAge != nil || gga.DgpsStationID != "" {
		t.Fatalf("empty trailing fields decoded: %v %q", gga.DgpsAge, gga.DgpsStationID)
	}
}

func TestDecodeGGAEmptyPosition(t *testing.T) {
	m := parseOK(t, "$GPGGA,,,,,,0,00,,,M,,M,,")
	gga := m.(Gga)
	if gga.Latitude != nil || gga.Longitude != nil || gga.Time != nil {
		t.Fatalf("empty fields decoded as values: %+v", gga)
	}
	if gga.FixQuality == nil || *gga.FixQuality != 0 {
		t.Fatalf("fix quality = %v", gga.FixQuality)
	}
}

func TestDecodeGGABadHemisphere(t *testing.T) {
	res := NewParser().Parse("$GPGGA,092750.000,5321.6802,Q,00630.3372,W,1,8,1.03,61.7,M,55.2,M,,")
	if res.Err == nil || !strings.Contains(res.Err.Error(), "hemisphere") {
		t.Fatalf("bad hemisphere accepted: %v", res.Err)
	}
}

func TestDecodeGLL(t *testing.T) {
	m := parseOK(t, "$GPGLL,4916.45,N,12311.12,W,225444,A")
	gll := m.(Gll)
	near(t, "latitude", gll.Latitude, 49.274166666666666)
	near(t, "longitude", gll.Longitude, -123.18533333333333)
	if gll.Time == nil || gll.Time.Hour != 22 || gll.Time.Minute != 54 || gll.Time.Second != 44 {
		t.Fatalf("time = %+v", gll.Time)
	}
	if gll.StatusActive == nil || !*gll.StatusActive {
		t.Fatalf("status = %v", gll.StatusActive)
	}
}

func TestDecodeVTG(t *testing.T) {
	m := parseOK(t, "$GPVTG,054.7,T,034.4,M,005.5,N,010.2,K")
	vtg := m.(Vtg)
	near(t, "true course", vtg.CourseTrue, 54.7)
	near(t, "magnetic course", vtg.CourseMagnetic, 34.4)
	near(t, "speed knots", vtg.SpeedKnots, 5.5)
	near(t, "speed kmh", vtg.SpeedKmh, 10.2)
}

func TestDecodeGSA(t *testing.T) {
	m := parseOK(t, "$GPGSA,A,3,04,05,,09,12,,,24,,,,,2.5,1.3,2.1")
	gsa := m.(Gsa)
	if gsa.Mode != "A" {
		t.Fatalf("mode = %q", gsa.Mode)
	}
	if gsa.FixType == nil || *gsa.FixType != 3 {
		t.Fatalf("fix type = %v", gsa.FixType)
	}
	want := []int64{4, 5, 9, 12, 24}
	if len(gsa.SatelliteIDs) != len(want) {
		t.Fatalf("satellite ids = %v", gsa.SatelliteIDs)
	}
	for i, id := range want {
		if gsa.SatelliteIDs[i] != id {
			t.Fatalf("satellite ids = %v, want %v", gsa.SatelliteIDs, want)
		}
	}
	near(t, "pdop", gsa.Pdop, 2.5)
	near(t, "hdop", gsa.Hdop, 1.3)
	near(t, "vdop", gsa.Vdop, 2.1)
}

func TestDecodeGSV(t *testing.T) {
	m := parseOK(t, "$GPGSV,2,1,08,01,40,083,46,02,17,308,41,12,07,344,39,14,22,228,45")
	gsv := m.(Gsv)
	if *gsv.TotalSentences != 2 || *gsv.SentenceNumber != 1 || *gsv.SatellitesInView != 8 {
		t.Fatalf("header = %v/%v/%v", *gsv.TotalSentences, *gsv.SentenceNumber, *gsv.SatellitesInView)
	}
	if len(gsv.Satellites) != 4 {
		t.Fatalf("satellites = %d", len(gsv.Satellites))
	}
	first := gsv.Satellites[0]
	if *first.Prn != 1 || *first.Elevation != 40 || *first.Azimuth != 83 || *first.Snr != 46 {
		t.Fatalf("first satellite = %+v", first)
	}
}

func TestDecodeGSVTruncatedBlock(t *testing.T) {
	res := NewParser().Parse("$GPGSV,2,1,08,01,40,083")
	if res.Err == nil || !strings.Contains(res.Err.Error(), "GSV") {
		t.Fatalf("truncated satellite block accepted: %v", res.Err)
	}
}

func TestDecodeZDA(t *testing.T) {
	m := parseOK(t, "$GPZDA,201530.00,04,07,2002,00,00")
	zda := m.(Zda)
	if zda.Time == nil || zda.Time.Hour != 20 || zda.Time.Minute != 15 || zda.Time.Second != 30 {
		t.Fatalf("time = %+v", zda.Time)
	}
	if *zda.Day != 4 || *zda.Month != 7 || *zda.Year != 2002 {
		t.Fatalf("date = %v/%v/%v", *zda.Day, *zda.Month, *zda.Year)
	}
}

func TestDecodeDPT(t *testing.T) {
	m := parseOK(t, "$SDDPT,17.0,0.3,100")
	dpt := m.(Dpt)
	near(t, "depth", dpt.DepthBelowTransducer, 17.0)
	near(t, "offset", dpt.TransducerOffset, 0.3)
	near(t, "max range", dpt.MaxRange, 100)
}

func TestDecodeMTW(t *testing.T) {
	m := parseOK(t, "$IIMTW,17.9,C")
	mtw := m.(Mtw)
	near(t, "water temperature", mtw.WaterTemperature, 17.9)
}

func TestDecodeMTWWrongUnits(t *testing.T) {
	res := NewParser().Parse("$IIMTW,17.9,F")
	if res.Err == nil || !strings.Contains(res.Err.Error(), "MTW") {
		t.Fatalf("wrong units accepted: %v", res.Err)
	}
}

func TestDecodeMWV(t *testing.T) {
	m := parseOK(t, "$WIMWV,214.8,R,0.1,K,A")
	mwv := m.(Mwv)
	near(t, "wind angle", mwv.WindAngle, 214.8)
	if mwv.Reference != "R" || mwv.SpeedUnits != "K" || !mwv.Valid {
		t.Fatalf("mwv = %+v", mwv)
	}
	near(t, "wind speed", mwv.WindSpeed, 0.1)
}

// Every supported formatter rejects a short field list with an error naming
// the type, never a payload padded with defaults.
func TestFieldCountMismatchPerType(t *testing.T) {
	cases := map[string]string{
		"GGA": "$GPGGA,092750.000,5321.6802,N",
		"RMC": "$GPRMC,123519,A,4807.038",
		"GLL": "$GPGLL,4916.45,N",
		"VTG": "$GPVTG,054.7,T",
		"GSA": "$GPGSA,A,3,04",
		"GSV": "$GPGSV,2,1",
		"ZDA": "$GPZDA,201530.00,04",
		"HDT": "$GPHDT,274.07",
		"DPT": "$SDDPT,17.0",
		"MTW": "$IIMTW,17.9",
		"MWV": "$WIMWV,214.8,R,0.1",
	}
	for typ, line := range cases {
		res := NewParser().Parse(line)
		if res.Err == nil {
			t.Fatalf("%s: short sentence accepted", typ)
		}
		if !strings.Contains(res.Err.Error(), typ) {
			t.Fatalf("%s: error does not name the type: %v", typ, res.Err)
		}
	}
}
