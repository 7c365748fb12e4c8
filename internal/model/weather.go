package model

// Snapshot holds current conditions plus the hourly forecast for a
// resolved location. It is replaced wholesale on every successful query.
type Snapshot struct {
	Address       string      `json:"address"`
	Temperature   int         `json:"temperature"`
	WindSpeed     int         `json:"wind_speed"`
	Precipitation int         `json:"precipitation"`
	Humidity      int         `json:"humidity"`
	Condition     string      `json:"condition"`
	Hourly        []HourPoint `json:"hourly"`
}

// HourPoint is one hourly forecast entry, in source order
type HourPoint struct {
	Time        string `json:"time"`
	Temperature int    `json:"temperature"`
	Condition   string `json:"condition"`
}
