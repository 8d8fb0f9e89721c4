// Package config loads sqltint configuration: highlight gates and the
// catalog connections the classifier resolves against. It is decoupled
// from CLI concerns so editor integrations can load the same file.
package config

import (
	"fmt"

	"github.com/sqltint/sqltint/pkg/semantic"
)

// HighlightConfig holds the per-class highlight gates. A disabled gate
// suppresses the highlight group, never the classification itself.
type HighlightConfig struct {
	Keywords   bool `koanf:"keywords"`
	Parameters bool `koanf:"parameters"`
	Databases  bool `koanf:"databases"`
	Schemas    bool `koanf:"schemas"`
	Tables     bool `koanf:"tables"`
	Columns    bool `koanf:"columns"`
	Unresolved bool `koanf:"unresolved"`
}

// ToSemantic converts the gates into the classifier's config.
func (h HighlightConfig) ToSemantic() semantic.Config {
	return semantic.Config{
		HighlightKeywords:   h.Keywords,
		HighlightParameters: h.Parameters,
		HighlightDatabases:  h.Databases,
		HighlightSchemas:    h.Schemas,
		HighlightTables:     h.Tables,
		HighlightColumns:    h.Columns,
		HighlightUnresolved: h.Unresolved,
	}
}

// ConnectionConfig describes one catalog source.
type ConnectionConfig struct {
	Driver string `koanf:"driver"` // yaml, sqlite, postgres

	// File-based sources (yaml fixture, sqlite database file)
	Path string `koanf:"path"`

	// Network databases
	DSN string `koanf:"dsn"`

	// Database to treat as connected; defaults per driver.
	Database string `koanf:"database"`
}

// Validate checks the connection for the fields its driver requires.
func (c *ConnectionConfig) Validate() error {
	switch c.Driver {
	case "yaml", "sqlite":
		if c.Path == "" {
			return fmt.Errorf("%s connection requires a path", c.Driver)
		}
	case "postgres":
		if c.DSN == "" {
			return fmt.Errorf("postgres connection requires a dsn")
		}
	case "":
		return fmt.Errorf("connection driver is required")
	default:
		return fmt.Errorf("unknown connection driver %q", c.Driver)
	}
	return nil
}

// Config is the full sqltint configuration.
type Config struct {
	// Connection names the entry of Connections to use.
	Connection  string                       `koanf:"connection"`
	Connections map[string]*ConnectionConfig `koanf:"connections"`

	Highlight HighlightConfig `koanf:"highlight"`

	NoColor bool `koanf:"no_color"`
	Verbose bool `koanf:"verbose"`
}

// ActiveConnection returns the selected connection, or nil when none is
// configured. Classification without a connection still works; it just
// degrades to scope and clause heuristics.
func (c *Config) ActiveConnection() (*ConnectionConfig, error) {
	if c.Connection == "" {
		return nil, nil
	}
	conn, ok := c.Connections[c.Connection]
	if !ok {
		return nil, fmt.Errorf("connection %q not defined", c.Connection)
	}
	if err := conn.Validate(); err != nil {
		return nil, fmt.Errorf("connection %q: %w", c.Connection, err)
	}
	return conn, nil
}
