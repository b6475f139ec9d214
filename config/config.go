package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config is the full application configuration surface: category roots,
// cache directories, external API credentials, and the listening address.
type Config struct {
	TMDB    TMDB    `json:"tmdb" yaml:"tmdb" mapstructure:"tmdb"`
	Library Library `json:"library" yaml:"library" mapstructure:"library"`
	Storage Storage `json:"storage" yaml:"storage" mapstructure:"storage"`
	Server  Server  `json:"server" yaml:"server" mapstructure:"server"`
	Cache   Cache   `json:"cache" yaml:"cache" mapstructure:"cache"`
}

// TMDB holds the external metadata database's connection details.
type TMDB struct {
	Scheme string `json:"scheme" yaml:"scheme" mapstructure:"scheme" validate:"required"`
	Host   string `json:"host" yaml:"host" mapstructure:"host" validate:"required"`
	APIKey string `json:"apiKey" yaml:"apiKey" mapstructure:"apiKey" validate:"required"`
}

// Library maps the five fixed categories to their on-disk roots.
type Library struct {
	Movies     string `json:"movies" yaml:"movies" mapstructure:"movies" validate:"required"`
	ForeignTV  string `json:"foreignTV" yaml:"foreignTV" mapstructure:"foreignTV" validate:"required"`
	DomesticTV string `json:"domesticTV" yaml:"domesticTV" mapstructure:"domesticTV" validate:"required"`
	Animation  string `json:"animation" yaml:"animation" mapstructure:"animation" validate:"required"`
	Airing     string `json:"airing" yaml:"airing" mapstructure:"airing" validate:"required"`
}

// Storage configuration is assumed to be for a sqlite database only.
type Storage struct {
	FilePath string `json:"filePath" yaml:"filePath" mapstructure:"filePath" validate:"required"`
}

// Server holds the HTTP listen address.
type Server struct {
	ListenAddr string `json:"listenAddr" yaml:"listenAddr" mapstructure:"listenAddr" validate:"required"`
}

// Cache holds the generated-asset directories that sit alongside the
// durable store: thumbnails, subtitle caches, and transcoded HLS segments.
type Cache struct {
	ThumbnailDir string `json:"thumbnailDir" yaml:"thumbnailDir" mapstructure:"thumbnailDir" validate:"required"`
	SubtitleDir  string `json:"subtitleDir" yaml:"subtitleDir" mapstructure:"subtitleDir" validate:"required"`
	HLSDir       string `json:"hlsDir" yaml:"hlsDir" mapstructure:"hlsDir" validate:"required"`
}

// ConfigUnmarshaler is the subset of viper's API New depends on, so tests
// can substitute a mock.
type ConfigUnmarshaler interface {
	ReadInConfig() error
	Unmarshal(any, ...viper.DecoderConfigOption) error
	ConfigFileUsed() string
}

var validate = validator.New()

// New reads and validates a new Config.
func New(cu ConfigUnmarshaler) (Config, error) {
	var c Config

	if cu.ConfigFileUsed() != "" {
		if err := cu.ReadInConfig(); err != nil {
			return c, err
		}
	}

	if err := cu.Unmarshal(&c); err != nil {
		return c, err
	}

	if err := validate.Struct(&c); err != nil {
		return c, fmt.Errorf("invalid configuration: %w", err)
	}

	return c, nil
}
