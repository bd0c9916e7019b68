package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
	"github.com/swdee/go-rmcv"
	"github.com/swdee/go-rmcv/objdetect"
	"github.com/swdee/go-rmcv/solver"
)

// Config holds the settings of the turret program
type Config struct {
	LogLevel  string `mapstructure:"logLevel"`
	LogPretty bool   `mapstructure:"logPretty"`

	Camp       string `mapstructure:"camp"`
	AimMode    string `mapstructure:"aimMode"`
	Compensate string `mapstructure:"compensate"`
	Speed      uint8  `mapstructure:"speed"`

	Source    string  `mapstructure:"source"`
	Threshold float32 `mapstructure:"threshold"`
	QueueSize int     `mapstructure:"queueSize"`

	LightBar  objdetect.LightBarParams `mapstructure:"lightBar"`
	Armour    objdetect.ArmourParams   `mapstructure:"armour"`
	Ballistic solver.BallisticParams   `mapstructure:"ballistic"`
	Camera    solver.PinholeCamera     `mapstructure:"camera"`

	// PlateHeight is the physical armour light bar height in metres
	PlateHeight float64 `mapstructure:"plateHeight"`

	Serial SerialConfig `mapstructure:"serial"`
}

// SerialConfig holds the aim actuation link settings
type SerialConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Port     string `mapstructure:"port"`
	BaudRate int    `mapstructure:"baudRate"`
}

// setDefaults registers the default value of every setting
func setDefaults(v *viper.Viper) {
	lp := objdetect.DefaultLightBarParams()
	ap := objdetect.DefaultArmourParams()
	bp := solver.DefaultBallisticParams()

	v.SetDefault("logLevel", "info")
	v.SetDefault("logPretty", true)

	v.SetDefault("camp", "red")
	v.SetDefault("aimMode", "armour")
	v.SetDefault("compensate", "classic")
	v.SetDefault("speed", 15)

	v.SetDefault("source", "0")
	v.SetDefault("threshold", 100)
	v.SetDefault("queueSize", 4)

	v.SetDefault("lightBar.minRatio", lp.MinRatio)
	v.SetDefault("lightBar.maxRatio", lp.MaxRatio)
	v.SetDefault("lightBar.tiltAngle", lp.TiltAngle)
	v.SetDefault("lightBar.minArea", lp.MinArea)
	v.SetDefault("lightBar.maxArea", lp.MaxArea)
	v.SetDefault("lightBar.useFitEllipse", lp.UseFitEllipse)

	v.SetDefault("armour.maxAngleDif", ap.MaxAngleDif)
	v.SetDefault("armour.errAngle", ap.ErrAngle)
	v.SetDefault("armour.minBoxRatio", ap.MinBoxRatio)
	v.SetDefault("armour.maxBoxRatio", ap.MaxBoxRatio)
	v.SetDefault("armour.lenRatio", ap.LenRatio)
	v.SetDefault("armour.filter", ap.Filter)

	v.SetDefault("ballistic.gravity", bp.Gravity)
	v.SetDefault("ballistic.muzzleVelocity", bp.MuzzleVelocity)
	v.SetDefault("ballistic.deltaHeight", bp.DeltaHeight)

	v.SetDefault("camera.fx", 1280)
	v.SetDefault("camera.fy", 1280)
	v.SetDefault("camera.cx", 640)
	v.SetDefault("camera.cy", 512)

	v.SetDefault("plateHeight", 0.055)

	v.SetDefault("serial.enabled", false)
	v.SetDefault("serial.port", "/dev/ttyUSB0")
	v.SetDefault("serial.baudRate", 115200)
}

// Load reads the configuration file at path on top of the defaults.  An
// empty path uses the defaults only.  Any setting may be overridden with an
// RMCV_ prefixed environment variable, eg: RMCV_CAMP=blue
func Load(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix("RMCV")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)

		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error decoding config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate checks the enumerated settings can be parsed
func (c *Config) validate() error {
	if _, err := c.OwnCamp(); err != nil {
		return err
	}

	if _, err := c.Mode(); err != nil {
		return err
	}

	if _, err := c.CompensateMode(); err != nil {
		return err
	}

	if c.Ballistic.MuzzleVelocity <= 0 {
		return fmt.Errorf("ballistic.muzzleVelocity must be positive, got %v",
			c.Ballistic.MuzzleVelocity)
	}

	return nil
}

// OwnCamp returns the parsed camp setting
func (c *Config) OwnCamp() (rmcv.CampType, error) {
	return rmcv.ParseCamp(c.Camp)
}

// Mode returns the parsed aim mode setting
func (c *Config) Mode() (rmcv.AimMode, error) {
	return rmcv.ParseAimMode(c.AimMode)
}

// CompensateMode returns the parsed compensation mode setting
func (c *Config) CompensateMode() (rmcv.CompensateMode, error) {
	return rmcv.ParseCompensateMode(c.Compensate)
}
