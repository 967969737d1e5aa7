package config

import (
	"errors"
	"fmt"
	"os"

	"harustay/internal/models"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	App        AppConfig        `yaml:"app"`
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Redis      RedisConfig      `yaml:"redis"`
	Admin      AdminConfig      `yaml:"admin"`
	Rates      RatesConfig      `yaml:"rates"`
	Monitoring MonitoringConfig `yaml:"monitoring"`
	Logging    LoggingConfig    `yaml:"logging"`
	Google     GoogleConfig     `yaml:"google"`
	Telegram   TelegramConfig   `yaml:"telegram"`
	Exports    ExportConfig     `yaml:"exports"`
	Rooms      []models.Room    `yaml:"rooms"`
}

type AppConfig struct {
	Name        string `yaml:"name"`
	Environment string `yaml:"environment"`
	Version     string `yaml:"version"`
}

type ServerConfig struct {
	Port           int     `yaml:"port"`
	RateLimitRPS   float64 `yaml:"rate_limit_rps"`
	RateLimitBurst int     `yaml:"rate_limit_burst"`
}

type DatabaseConfig struct {
	Path string `yaml:"path"`
}

type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	PoolSize int    `yaml:"pool_size"`
}

type AdminConfig struct {
	// PasswordHash is the bcrypt hash of the shared admin password.
	PasswordHash      string `yaml:"password_hash"`
	SessionTTLSeconds int    `yaml:"session_ttl_seconds"`
}

type RatesConfig struct {
	URL          string  `yaml:"url"`
	TTLSeconds   int     `yaml:"ttl_seconds"`
	FallbackRate float64 `yaml:"fallback_rate"`
}

type MonitoringConfig struct {
	PrometheusEnabled bool `yaml:"prometheus_enabled"`
	PrometheusPort    int  `yaml:"prometheus_port"`
}

type LoggingConfig struct {
	Level    string `yaml:"level"`
	Format   string `yaml:"format"`
	Output   string `yaml:"output"`
	FilePath string `yaml:"file_path"`
}

type GoogleConfig struct {
	CredentialsFile           string `yaml:"credentials_file"`
	ReservationsSpreadSheetID string `yaml:"reservations_spreadsheet_id"`
}

type TelegramConfig struct {
	BotToken    string `yaml:"bot_token"`
	AdminChatID int64  `yaml:"admin_chat_id"`
}

type ExportConfig struct {
	Path string `yaml:"path"`
}

func Load(configPath string) (*Config, error) {
	// .env is optional; environment may already be populated.
	_ = godotenv.Load(".env")

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	// Expand ${VAR} references before parsing.
	expandedData := []byte(os.ExpandEnv(string(data)))

	var config Config
	if err := yaml.Unmarshal(expandedData, &config); err != nil {
		return nil, err
	}

	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

func (c *Config) Validate() error {
	if c.Database.Path == "" {
		return errors.New("database path is required")
	}

	if c.Admin.PasswordHash == "" {
		return errors.New("admin password hash is required")
	}

	return ValidateRooms(c.Rooms)
}

func ValidateRooms(rooms []models.Room) error {
	roomIDs := make(map[int64]bool)
	for _, room := range rooms {
		if room.ID == 0 {
			return fmt.Errorf("room '%s' has invalid ID 0", room.Name)
		}
		if roomIDs[room.ID] {
			return fmt.Errorf("duplicate room ID found: %d", room.ID)
		}
		roomIDs[room.ID] = true

		if room.PricePerNight <= 0 {
			return fmt.Errorf("room %d has non-positive nightly price", room.ID)
		}
		if room.Capacity <= 0 {
			return fmt.Errorf("room %d has non-positive capacity", room.ID)
		}
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.RateLimitRPS == 0 {
		c.Server.RateLimitRPS = models.RateLimitRPS
	}
	if c.Server.RateLimitBurst == 0 {
		c.Server.RateLimitBurst = models.RateLimitBurst
	}
	if c.Monitoring.PrometheusEnabled && c.Monitoring.PrometheusPort == 0 {
		c.Monitoring.PrometheusPort = 9090
	}
	if c.Admin.SessionTTLSeconds == 0 {
		c.Admin.SessionTTLSeconds = models.DefaultSessionTTL
	}
	if c.Rates.TTLSeconds == 0 {
		c.Rates.TTLSeconds = models.DefaultRatesTTL
	}
	if c.Exports.Path == "" {
		c.Exports.Path = "exports"
	}
}
