package ais

// MeteoHydro is the IMO meteorological and hydrological payload carried in
// type 8 messages with DAC=1 FID=11. The field block is fixed at 290 bits
// (352 for the whole message including the wrapper header); a shorter
// payload is not decoded at all.
type MeteoHydro struct {
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`

	Day    *int64 `json:"day,omitempty"`
	Hour   *int64 `json:"hour,omitempty"`
	Minute *int64 `json:"minute,omitempty"`

	WindSpeedAvg      *int64   `json:"wind_speed_avg,omitempty"`
	WindGust          *int64   `json:"wind_gust,omitempty"`
	WindDirection     *int64   `json:"wind_direction,omitempty"`
	WindGustDirection *int64   `json:"wind_gust_direction,omitempty"`
	AirTemperature    *float64 `json:"air_temperature,omitempty"`
	Humidity          *int64   `json:"humidity,omitempty"`
	DewPoint          *float64 `json:"dew_point,omitempty"`
	AirPressure       *int64   `json:"air_pressure,omitempty"`
	PressureTendency  *int64   `json:"pressure_tendency,omitempty"`
	Visibility        *float64 `json:"visibility,omitempty"`

	WaterLevel              *float64 `json:"water_level,omitempty"`
	WaterLevelTrend         *int64   `json:"water_level_trend,omitempty"`
	SurfaceCurrentSpeed     *float64 `json:"surface_current_speed,omitempty"`
	SurfaceCurrentDirection *int64   `json:"surface_current_direction,omitempty"`
	CurrentSpeed2           *float64 `json:"current_speed_2,omitempty"`
	CurrentDirection2       *int64   `json:"current_direction_2,omitempty"`
	CurrentDepth2           *float64 `json:"current_depth_2,omitempty"`
	CurrentSpeed3           *float64 `json:"current_speed_3,omitempty"`
	CurrentDirection3       *int64   `json:"current_direction_3,omitempty"`
	CurrentDepth3           *float64 `json:"current_depth_3,omitempty"`

	WaveHeight       *float64 `json:"wave_height,omitempty"`
	WavePeriod       *int64   `json:"wave_period,omitempty"`
	WaveDirection    *int64   `json:"wave_direction,omitempty"`
	SwellHeight      *float64 `json:"swell_height,omitempty"`
	SwellPeriod      *int64   `json:"swell_period,omitempty"`
	SwellDirection   *int64   `json:"swell_direction,omitempty"`
	SeaState         *int64   `json:"sea_state,omitempty"`
	WaterTemperature *float64 `json:"water_temperature,omitempty"`

	PrecipitationType *int64   `json:"precipitation_type,omitempty"`
	Salinity          *float64 `json:"salinity,omitempty"`
	Ice               *int64   `json:"ice,omitempty"`
}

func i64p(v int64) *int64     { return &v }
func f64p(v float64) *float64 { return &v }

// decodeMeteoHydro11 decodes the DAC=1 FID=11 layout starting at offset.
// Sentinel values per the IMO field table become nil.
func decodeMeteoHydro11(bs Bitstream, offset int) *MeteoHydro {
	if bs.Len() < offset+290 {
		return nil
	}
	u := func(at, width int) int64 {
		v, _ := bs.Uint(offset+at, width)
		return int64(v)
	}
	s := func(at, width int) int64 {
		v, _ := bs.Int(offset+at, width)
		return v
	}

	m := &MeteoHydro{}
	// Position: signed 1/1000-minute fixed point; all-ones means absent.
	if raw := s(0, 24); raw != 0x7FFFFF {
		m.Latitude = f64p(float64(raw) / 60000)
	}
	if raw := s(24, 25); raw != 0x1FFFFFF {
		m.Longitude = f64p(float64(raw) / 60000)
	}
	if v := u(49, 5); v != 31 {
		m.Day = i64p(v)
	}
	if v := u(54, 5); v != 31 {
		m.Hour = i64p(v)
	}
	if v := u(59, 6); v != 63 {
		m.Minute = i64p(v)
	}
	if v := u(65, 7); v != 127 {
		m.WindSpeedAvg = i64p(v)
	}
	if v := u(72, 7); v != 127 {
		m.WindGust = i64p(v)
	}
	if v := u(79, 9); v < 511 {
		m.WindDirection = i64p(v)
	}
	if v := u(88, 9); v < 511 {
		m.WindGustDirection = i64p(v)
	}
	// Temperature is offset-encoded: 0.1 degC steps from -60.
	if v := u(97, 11); v != 2047 {
		m.AirTemperature = f64p(float64(v)*0.1 - 60)
	}
	if v := u(108, 7); v != 127 {
		m.Humidity = i64p(v)
	}
	if v := u(115, 10); v != 1023 {
		m.DewPoint = f64p(float64(v)*0.1 - 20)
	}
	if v := u(125, 9); v != 511 {
		m.AirPressure = i64p(v + 800)
	}
	if v := u(134, 2); v != 3 {
		m.PressureTendency = i64p(v)
	}
	if v := u(136, 8); v != 255 {
		m.Visibility = f64p(float64(v) * 0.1)
	}
	if v := u(144, 9); v != 511 {
		m.WaterLevel = f64p(float64(v)*0.1 - 10)
	}
	if v := u(153, 2); v != 3 {
		m.WaterLevelTrend = i64p(v)
	}
	if v := u(155, 8); v != 255 {
		m.SurfaceCurrentSpeed = f64p(float64(v) * 0.1)
	}
	if v := u(163, 9); v < 511 {
		m.SurfaceCurrentDirection = i64p(v)
	}
	if v := u(172, 8); v != 255 {
		m.CurrentSpeed2 = f64p(float64(v) * 0.1)
	}
	if v := u(180, 9); v < 511 {
		m.CurrentDirection2 = i64p(v)
	}
	if v := u(189, 5); v != 31 {
		m.CurrentDepth2 = f64p(float64(v) * 0.1)
	}
	if v := u(194, 8); v != 255 {
		m.CurrentSpeed3 = f64p(float64(v) * 0.1)
	}
	if v := u(202, 9); v < 511 {
		m.CurrentDirection3 = i64p(v)
	}
	if v := u(211, 5); v != 31 {
		m.CurrentDepth3 = f64p(float64(v) * 0.1)
	}
	if v := u(216, 8); v != 255 {
		m.WaveHeight = f64p(float64(v) * 0.1)
	}
	if v := u(224, 6); v != 63 {
		m.WavePeriod = i64p(v)
	}
	if v := u(230, 9); v < 511 {
		m.WaveDirection = i64p(v)
	}
	if v := u(239, 8); v != 255 {
		m.SwellHeight = f64p(float64(v) * 0.1)
	}
	if v := u(247, 6); v != 63 {
		m.SwellPeriod = i64p(v)
	}
	if v := u(253, 9); v < 511 {
		m.SwellDirection = i64p(v)
	}
	if v := u(262, 4); v < 13 {
		m.SeaState = i64p(v)
	}
	if v := u(266, 10); v != 1023 {
		m.WaterTemperature = f64p(float64(v)*0.1 - 10)
	}
	if v := u(276, 3); v != 7 {
		m.PrecipitationType = i64p(v)
	}
	if v := u(279, 9); v < 511 {
		m.Salinity = f64p(float64(v) * 0.1)
	}
	if v := u(288, 2); v != 3 {
		m.Ice = i64p(v)
	}
	return m
}
