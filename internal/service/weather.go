package service

import (
	"context"
	"fmt"

	"github.com/nitesh/risk_dashboard/internal/classify"
	"github.com/nitesh/risk_dashboard/pkg/models"
)

func (s *Service) Weather(ctx context.Context, lat, lon float64) (*models.WeatherRecord, error) {
	rec, err := s.weather(ctx, lat, lon)
	return resolve(s, DomainWeather, rec, err, degradedWeather)
}

func (s *Service) weather(ctx context.Context, lat, lon float64) (*models.WeatherRecord, error) {
	cw, err := s.src.Weather.CurrentWeather(ctx, lat, lon)
	if err != nil {
		return nil, err
	}

	conditions := cw.Summary
	if conditions == "" {
		conditions = classify.ConditionFromIcon(cw.Icon)
	}
	temp := classify.Round(cw.Temperature)

	return &models.WeatherRecord{
		Temperature:      temp,
		Conditions:       conditions,
		High:             classify.Round(cw.High),
		Low:              classify.Round(cw.Low),
		FeelsLike:        classify.Round(cw.ApparentTemperature),
		OutfitSuggestion: classify.OutfitSuggestion(temp),
		ItemsToCarry:     classify.ItemsToCarry(conditions, temp),
		Humidity:         classify.Round(cw.Humidity),
		Wind:             classify.Round(cw.WindSpeed),
		UVIndex:          classify.Round(cw.UVIndex),
		Icon:             classify.WeatherIcon(conditions),
	}, nil
}

func degradedWeather() *models.WeatherRecord {
	return &models.WeatherRecord{
		Conditions:       "Weather data unavailable",
		OutfitSuggestion: "Check local conditions before heading out.",
		ItemsToCarry:     []string{},
		Icon:             classify.DefaultWeatherIcon,
	}
}

// Background picks a backdrop for the current conditions. It never fails;
// any weather error yields the default image.
func (s *Service) Background(ctx context.Context, lat, lon float64) string {
	rec, err := s.weather(ctx, lat, lon)
	if err != nil {
		s.log.Warn("background falls back to default", "err", err)
		return classify.DefaultBackground
	}
	return classify.BackgroundImage(rec.Conditions)
}

func (s *Service) Environment(ctx context.Context, lat, lon float64) (*models.EnvironmentRecord, error) {
	rec, err := s.environment(ctx, lat, lon)
	return resolve(s, DomainEnvironment, rec, err, degradedEnvironment)
}

func (s *Service) environment(ctx context.Context, lat, lon float64) (*models.EnvironmentRecord, error) {
	sample, err := s.src.Air.AirPollution(ctx, lat, lon)
	if err != nil {
		return nil, err
	}
	aqi := classify.ConvertAQI(sample.AQI)
	ppb := classify.OzonePPB(sample.O3)

	return &models.EnvironmentRecord{
		AirQualityText:  classify.AirQualityText(aqi),
		AirQualityIndex: aqi,
		Recommendation:  classify.AirQualityRecommendation(aqi),
		PM25:            fmt.Sprintf("%.1f µg/m³", sample.PM25),
		PM25Percentage:  classify.PM25Percentage(sample.PM25),
		Ozone:           fmt.Sprintf("%d ppb", ppb),
		OzonePercentage: classify.OzonePercentage(ppb),
	}, nil
}

func degradedEnvironment() *models.EnvironmentRecord {
	return &models.EnvironmentRecord{
		AirQualityText: "Data Unavailable",
		Recommendation: "Unable to retrieve air quality data. Please try again later.",
		PM25:           "N/A",
		Ozone:          "N/A",
	}
}
