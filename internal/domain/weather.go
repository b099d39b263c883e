package domain

type WeatherCondition string

const (
	Sunny        WeatherCondition = "Sunny"
	Cloudy       WeatherCondition = "Cloudy"
	Rain         WeatherCondition = "Rain"
	Showers      WeatherCondition = "Showers"
	Thunderstorm WeatherCondition = "Thunderstorm"
)

type DailyForecast struct {
	Day       int              `json:"day"`
	HighTemp  int              `json:"high_temp"`
	LowTemp   int              `json:"low_temp"`
	Condition WeatherCondition `json:"condition"`
}
