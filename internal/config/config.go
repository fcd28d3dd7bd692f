package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure.
type Config struct {
	Detector DetectorConfig `yaml:"detector"`
	Library  LibraryConfig  `yaml:"library"`
	Audio    AudioConfig    `yaml:"audio"`
	Logging  LoggingConfig  `yaml:"logging"`
	MQTT     MQTTConfig     `yaml:"mqtt"`
	Tracing  TracingConfig  `yaml:"tracing"`
}

// DetectorConfig describes the detector to open.
type DetectorConfig struct {
	Resource      string   `yaml:"resource"`
	Models        []string `yaml:"models"`
	Sensitivity   string   `yaml:"sensitivity"`
	AudioGain     float32  `yaml:"audio_gain"`
	ApplyFrontend bool     `yaml:"apply_frontend"`
}

// LibraryConfig locates the native Snowboy library.
type LibraryConfig struct {
	Path string `yaml:"path"`
	Dir  string `yaml:"dir"`
}

// AudioConfig contains capture and framing settings.
type AudioConfig struct {
	SampleRate int `yaml:"sample_rate"`
	FrameSize  int `yaml:"frame_size"`
	Device     int `yaml:"device"`
	CooldownMS int `yaml:"cooldown_ms"`
}

// LoggingConfig contains log output settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// MQTTConfig contains settings for publishing detections.
type MQTTConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Broker   string `yaml:"broker"`
	ClientID string `yaml:"client_id"`
	Topic    string `yaml:"topic"`
	QoS      int    `yaml:"qos"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// TracingConfig selects the OpenTelemetry exporter.
type TracingConfig struct {
	Exporter     string  `yaml:"exporter"`
	SamplingRate float64 `yaml:"sampling_rate"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Detector: DetectorConfig{
			Sensitivity: "0.5",
			AudioGain:   1.0,
		},
		Audio: AudioConfig{
			SampleRate: 16000,
			FrameSize:  2048,
			Device:     -1,
			CooldownMS: 1000,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
		MQTT: MQTTConfig{
			Broker:   "tcp://localhost:1883",
			ClientID: "snowgo",
			Topic:    "snowgo/detections",
			QoS:      1,
		},
		Tracing: TracingConfig{
			Exporter:     "none",
			SamplingRate: 1.0,
		},
	}
}

// Load reads the YAML file at path over the defaults, applies environment
// overrides and validates the result. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

// LoadDotEnv loads variables from the given .env files (default ".env")
// without overriding variables that are already set. Missing files are ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	var existing []string
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			existing = append(existing, f)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	if err := godotenv.Load(existing...); err != nil {
		return fmt.Errorf("loading .env: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) error {
	// Detector
	if v := os.Getenv("SNOWGO_RESOURCE"); v != "" {
		cfg.Detector.Resource = v
	}
	if v := os.Getenv("SNOWGO_MODELS"); v != "" {
		cfg.Detector.Models = splitList(v)
	}
	if v := os.Getenv("SNOWGO_SENSITIVITY"); v != "" {
		cfg.Detector.Sensitivity = v
	}
	if v := os.Getenv("SNOWGO_AUDIO_GAIN"); v != "" {
		gain, err := strconv.ParseFloat(v, 32)
		if err != nil {
			return fmt.Errorf("SNOWGO_AUDIO_GAIN: %w", err)
		}
		cfg.Detector.AudioGain = float32(gain)
	}

	// Library
	if v := os.Getenv("SNOWGO_LIBRARY"); v != "" {
		cfg.Library.Path = v
	}
	if v := os.Getenv("SNOWGO_LIBRARY_DIR"); v != "" {
		cfg.Library.Dir = v
	}

	// Logging
	if v := os.Getenv("SNOWGO_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}

	// MQTT
	if v := os.Getenv("SNOWGO_MQTT_BROKER"); v != "" {
		cfg.MQTT.Broker = v
		cfg.MQTT.Enabled = true
	}
	if v := os.Getenv("SNOWGO_MQTT_USERNAME"); v != "" {
		cfg.MQTT.Username = v
	}
	if v := os.Getenv("SNOWGO_MQTT_PASSWORD"); v != "" {
		cfg.MQTT.Password = v
	}

	// Tracing
	if v := os.Getenv("SNOWGO_TRACE_EXPORTER"); v != "" {
		cfg.Tracing.Exporter = v
	}
	return nil
}

func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Validate checks the configuration for values the program cannot work with.
// A missing resource or model is not an error: the detector falls back to the mock.
func (c *Config) Validate() error {
	var errs []error

	if c.Detector.AudioGain < 0 {
		errs = append(errs, fmt.Errorf("detector.audio_gain must not be negative, got %v", c.Detector.AudioGain))
	}
	if c.Audio.SampleRate <= 0 {
		errs = append(errs, fmt.Errorf("audio.sample_rate must be positive, got %d", c.Audio.SampleRate))
	}
	if c.Audio.FrameSize <= 0 {
		errs = append(errs, fmt.Errorf("audio.frame_size must be positive, got %d", c.Audio.FrameSize))
	}
	if c.Audio.CooldownMS < 0 {
		errs = append(errs, fmt.Errorf("audio.cooldown_ms must not be negative, got %d", c.Audio.CooldownMS))
	}

	switch strings.ToLower(c.Logging.Format) {
	case "json", "text":
	default:
		errs = append(errs, fmt.Errorf("logging.format must be json or text, got %q", c.Logging.Format))
	}

	if c.MQTT.Enabled {
		if c.MQTT.Broker == "" {
			errs = append(errs, errors.New("mqtt.broker is required when mqtt is enabled"))
		}
		if c.MQTT.Topic == "" {
			errs = append(errs, errors.New("mqtt.topic is required when mqtt is enabled"))
		}
		if c.MQTT.QoS < 0 || c.MQTT.QoS > 2 {
			errs = append(errs, fmt.Errorf("mqtt.qos must be 0, 1 or 2, got %d", c.MQTT.QoS))
		}
	}

	switch c.Tracing.Exporter {
	case "", "none", "stdout":
	default:
		errs = append(errs, fmt.Errorf("tracing.exporter must be none or stdout, got %q", c.Tracing.Exporter))
	}

	return errors.Join(errs...)
}
