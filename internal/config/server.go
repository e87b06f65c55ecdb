package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Server holds all configuration for the courtroom server.
type Server struct {
	// Network
	BindAddress string `yaml:"bind_address"`
	Port        int    `yaml:"port"`
	ServerName  string `yaml:"server_name"`

	LogLevel string        `yaml:"log_level"`
	Logging  LoggingConfig `yaml:"logging"`

	// Database
	Database DatabaseConfig `yaml:"database"`

	// Write queue / timeouts
	WriteTimeout  time.Duration `yaml:"write_timeout"`   // per-write deadline (default: 5s)
	ReadTimeout   time.Duration `yaml:"read_timeout"`    // idle client disconnect (default: 300s)
	SendQueueSize int           `yaml:"send_queue_size"` // per-client outbox capacity (default: 256)

	// IPIDSalt is mixed into the origin identifier derived from client addresses.
	IPIDSalt string `yaml:"ipid_salt"`

	IC         IC           `yaml:"ic"`
	Characters []string     `yaml:"characters"`
	Areas      []AreaConfig `yaml:"areas"`
}

// DefaultServer returns Server config with sensible defaults.
func DefaultServer() Server {
	return Server{
		BindAddress:   "0.0.0.0",
		Port:          27016,
		ServerName:    "aoserver",
		LogLevel:      "info",
		WriteTimeout:  5 * time.Second,
		ReadTimeout:   300 * time.Second,
		SendQueueSize: 256,
		Logging: LoggingConfig{
			MaxSizeMB:  50,
			MaxBackups: 5,
			MaxAgeDays: 30,
		},
		Database: DatabaseConfig{
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "aoserver",
			Password: "aoserver",
			DBName:   "aoserver",
			SSLMode:  "disable",
		},
		IC:         DefaultIC(),
		Characters: []string{"Phoenix", "Edgeworth", "Maya", "Franziska", "Judge"},
		Areas:      DefaultAreas(),
	}
}

// LoadServer loads server config from a YAML file.
// If the file doesn't exist, returns defaults.
func LoadServer(path string) (Server, error) {
	cfg := DefaultServer()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if len(cfg.Areas) == 0 {
		return cfg, fmt.Errorf("config %s: at least one area is required", path)
	}

	return cfg, nil
}
