package config

import (
	"fmt"
	"time"
)

// DatabaseConfig holds PostgreSQL connection parameters.
// The IC log is only persisted to the database when Enabled is set.
type DatabaseConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// LoggingConfig controls rotating log files.
// An empty File disables the file output.
type LoggingConfig struct {
	File       string `yaml:"file"`
	ICFile     string `yaml:"ic_file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

// IC holds limits and content rules for in-character messages.
type IC struct {
	MaxCharacters           int           `yaml:"max_characters"`
	MessageFloodguard       time.Duration `yaml:"message_floodguard"`        // per area
	GlobalMessageFloodguard time.Duration `yaml:"global_message_floodguard"` // whole server
	ZalgoTolerance          int           `yaml:"zalgo_tolerance"`
	MaxStatements           int           `yaml:"max_statements"`

	// FilterList holds case-insensitive regular expressions replaced in IC text.
	FilterList []string `yaml:"filter_list"`
	// GimpList holds the substitute lines used for gimped sessions.
	GimpList []string `yaml:"gimp_list"`
	// MedievalWords extends the built-in medieval word table.
	MedievalWords map[string]string `yaml:"medieval_words"`
}

// EvidenceConfig describes one evidence entry preloaded into an area.
type EvidenceConfig struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Image       string `yaml:"image"`
	Owner       string `yaml:"owner"` // "" or "all", otherwise comma separated positions
}

// AreaConfig describes one courtroom area and its IC policy.
type AreaConfig struct {
	Name                string           `yaml:"name"`
	Side                string           `yaml:"side"`
	IniswapAllowed      bool             `yaml:"iniswap_allowed"`
	BlankpostingAllowed bool             `yaml:"blankposting_allowed"`
	ShoutsAllowed       bool             `yaml:"shouts_allowed"`
	ShownamesAllowed    bool             `yaml:"shownames_allowed"`
	ForceImmediate      bool             `yaml:"force_immediate"`
	MedievalMode        bool             `yaml:"medieval_mode"`
	EvidenceMod         string           `yaml:"evidence_mod"` // ffa, mod, cm, hidden_cm
	Lock                string           `yaml:"lock"`         // free, spectatable, locked
	Evidence            []EvidenceConfig `yaml:"evidence"`
}

// DefaultIC returns IC limits matching common AO2 server defaults.
func DefaultIC() IC {
	return IC{
		MaxCharacters:           256,
		MessageFloodguard:       250 * time.Millisecond,
		GlobalMessageFloodguard: 0,
		ZalgoTolerance:          3,
		MaxStatements:           50,
		GimpList: []string{
			"I'm a fool!",
			"Please don't listen to me.",
			"I have no idea what I'm saying.",
			"Objection! ...wait, never mind.",
		},
	}
}

// DefaultAreas returns a minimal area list.
func DefaultAreas() []AreaConfig {
	return []AreaConfig{
		{
			Name:                "Basement",
			IniswapAllowed:      true,
			BlankpostingAllowed: true,
			ShoutsAllowed:       true,
			ShownamesAllowed:    true,
			EvidenceMod:         "ffa",
			Lock:                "free",
		},
		{
			Name:                "Courtroom 1",
			IniswapAllowed:      false,
			BlankpostingAllowed: false,
			ShoutsAllowed:       true,
			ShownamesAllowed:    true,
			EvidenceMod:         "hidden_cm",
			Lock:                "free",
		},
	}
}
