// Package config loads the kettle parameters from configs/config.yml,
// falling back to built-in defaults and allowing KETTLE_* environment
// overrides. Cross-field validation lives here: the kettle itself treats
// its Config as trusted.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"controlling_kettle/internal/kettle"
)

// Defaults describe a typical household kettle: 20 °C tap water boiled
// to 100 °C in one minute.
const (
	defaultMinVolume        = 0.2
	defaultMaxVolume        = 1.0
	defaultStartTemperature = 20.0
	defaultMaxTemperature   = 100.0
	defaultBoilingTime      = "60s"
	defaultLogLevel         = "info"
)

// App is everything main needs to wire the process.
type App struct {
	LogLevel string
	Kettle   kettle.Config
}

// Load reads configs/config.yml relative to the working directory.
func Load() (App, error) {
	return LoadFrom("configs")
}

// LoadFrom reads config.yml from the given directory. A missing file is
// not an error; defaults and environment variables still apply.
func LoadFrom(dir string) (App, error) {
	v := viper.New()
	v.AddConfigPath(dir)
	v.SetConfigName("config")

	v.SetDefault("min_volume", defaultMinVolume)
	v.SetDefault("max_volume", defaultMaxVolume)
	v.SetDefault("start_temperature", defaultStartTemperature)
	v.SetDefault("max_temperature", defaultMaxTemperature)
	v.SetDefault("boiling_time", defaultBoilingTime)
	v.SetDefault("log_level", defaultLogLevel)

	v.SetEnvPrefix("kettle")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return App{}, fmt.Errorf("reading config: %w", err)
		}
	}

	app := App{
		LogLevel: v.GetString("log_level"),
		Kettle: kettle.Config{
			MinVolume:        v.GetFloat64("min_volume"),
			MaxVolume:        v.GetFloat64("max_volume"),
			StartTemperature: v.GetFloat64("start_temperature"),
			MaxTemperature:   v.GetFloat64("max_temperature"),
			BoilingTime:      v.GetDuration("boiling_time"),
		},
	}
	if err := validate(app.Kettle); err != nil {
		return App{}, err
	}
	return app, nil
}

func validate(c kettle.Config) error {
	switch {
	case c.MaxVolume <= 0:
		return fmt.Errorf("max_volume must be positive, got %g", c.MaxVolume)
	case c.MinVolume < 0:
		return fmt.Errorf("min_volume can't be negative, got %g", c.MinVolume)
	case c.MinVolume > c.MaxVolume:
		return fmt.Errorf("min_volume %g exceeds max_volume %g", c.MinVolume, c.MaxVolume)
	case c.StartTemperature >= c.MaxTemperature:
		return fmt.Errorf("start_temperature %g must be below max_temperature %g", c.StartTemperature, c.MaxTemperature)
	case c.BoilingTime <= 0:
		return fmt.Errorf("boiling_time must be positive, got %v", c.BoilingTime)
	}
	return nil
}
