package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigPath = "/etc/cms"
	ConfigFileName    = "cms.yml"

	LogLevelInfo  = "info"
	LogLevelDebug = "debug"
)

var languageRgx = regexp.MustCompile(`^[a-z]{2,3}(-[A-Za-z]{2,4})?$`)

// CMSConfig holds all CMS server configuration settings
type CMSConfig struct {
	// DataDir holds private server state: users, pending changes, the token secret
	DataDir string `yaml:"data_dir" json:"data_dir"`

	// ContentDir is the root of the published JSON content tree (<lang>/<country>/...)
	ContentDir string `yaml:"content_dir" json:"content_dir"`

	// MediaDir is served read-only under /imagenes/
	MediaDir string `yaml:"media_dir" json:"media_dir"`

	// DefaultLang is used when a request carries no lang query parameter
	DefaultLang string `yaml:"default_lang" json:"default_lang"`

	// Languages lists the content languages accepted by the API
	Languages []string `yaml:"languages" json:"languages"`

	// TokenTTL is the lifetime of issued session tokens in seconds
	TokenTTL int `yaml:"token_ttl" json:"token_ttl"`

	// SecureCookies marks the session cookie Secure
	SecureCookies bool `yaml:"secure_cookies" json:"secure_cookies"`

	// CORSOrigins restricts cross-origin callers; empty reflects any origin
	CORSOrigins []string `yaml:"cors_origins" json:"cors_origins"`

	// ApplyOnApprove makes approving a pending change write its payload to the content store
	ApplyOnApprove bool `yaml:"apply_on_approve" json:"apply_on_approve"`

	// DatabaseURL selects the postgres backend for users and pending changes
	DatabaseURL string `yaml:"database_url" json:"database_url"`

	// LogLevel is "info" or "debug"; debug echoes every SQL statement
	LogLevel string `yaml:"log_level" json:"log_level"`

	sources        map[string]string
	configFilePath string
}

// fileConfig mirrors CMSConfig with pointer booleans so that an explicit
// "false" in the file can be told apart from an absent key.
type fileConfig struct {
	DataDir        string   `yaml:"data_dir"`
	ContentDir     string   `yaml:"content_dir"`
	MediaDir       string   `yaml:"media_dir"`
	DefaultLang    string   `yaml:"default_lang"`
	Languages      []string `yaml:"languages"`
	TokenTTL       int      `yaml:"token_ttl"`
	SecureCookies  *bool    `yaml:"secure_cookies"`
	CORSOrigins    []string `yaml:"cors_origins"`
	ApplyOnApprove *bool    `yaml:"apply_on_approve"`
	DatabaseURL    string   `yaml:"database_url"`
	LogLevel       string   `yaml:"log_level"`
}

// Attribute represents a configuration attribute with its value and source
type Attribute struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Source string `json:"source"`
}

// newDefault returns a config with default values
func newDefault() *CMSConfig {
	return &CMSConfig{
		DataDir:        "data",
		ContentDir:     filepath.Join("public", "data"),
		MediaDir:       filepath.Join("public", "imagenes"),
		DefaultLang:    "es",
		Languages:      []string{"es", "en"},
		TokenTTL:       24 * 60 * 60,
		SecureCookies:  false,
		CORSOrigins:    []string{},
		ApplyOnApprove: false,
		LogLevel:       LogLevelInfo,
		sources:        make(map[string]string),
	}
}

// Default returns the built-in configuration without consulting file or environment.
func Default() *CMSConfig {
	cfg := newDefault()
	for _, name := range attributeNames() {
		cfg.sources[name] = "default"
	}
	return cfg
}

// Load loads configuration from file and environment variables.
// Environment variables take precedence over file values.
func Load() (*CMSConfig, error) {
	config := Default()

	configPath := os.Getenv("CMS_CONFIG_PATH")
	if configPath == "" {
		configPath = DefaultConfigPath
	}
	config.configFilePath = filepath.Join(configPath, ConfigFileName)

	if data, err := os.ReadFile(config.configFilePath); err == nil {
		var file fileConfig
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", config.configFilePath, err)
		}
		config.applyFileConfig(&file)
	}

	config.applyEnvConfig()

	return config, nil
}

func attributeNames() []string {
	return []string{
		"data_dir", "content_dir", "media_dir", "default_lang", "languages",
		"token_ttl", "secure_cookies", "cors_origins", "apply_on_approve",
		"database_url", "log_level",
	}
}

func (c *CMSConfig) applyFileConfig(file *fileConfig) {
	if file.DataDir != "" {
		c.DataDir = file.DataDir
		c.sources["data_dir"] = "file"
	}
	if file.ContentDir != "" {
		c.ContentDir = file.ContentDir
		c.sources["content_dir"] = "file"
	}
	if file.MediaDir != "" {
		c.MediaDir = file.MediaDir
		c.sources["media_dir"] = "file"
	}
	if file.DefaultLang != "" {
		c.DefaultLang = file.DefaultLang
		c.sources["default_lang"] = "file"
	}
	if len(file.Languages) > 0 {
		c.Languages = file.Languages
		c.sources["languages"] = "file"
	}
	if file.TokenTTL != 0 {
		c.TokenTTL = file.TokenTTL
		c.sources["token_ttl"] = "file"
	}
	if file.SecureCookies != nil {
		c.SecureCookies = *file.SecureCookies
		c.sources["secure_cookies"] = "file"
	}
	if len(file.CORSOrigins) > 0 {
		c.CORSOrigins = file.CORSOrigins
		c.sources["cors_origins"] = "file"
	}
	if file.ApplyOnApprove != nil {
		c.ApplyOnApprove = *file.ApplyOnApprove
		c.sources["apply_on_approve"] = "file"
	}
	if file.DatabaseURL != "" {
		c.DatabaseURL = file.DatabaseURL
		c.sources["database_url"] = "file"
	}
	if file.LogLevel != "" {
		c.LogLevel = file.LogLevel
		c.sources["log_level"] = "file"
	}
}

func (c *CMSConfig) applyEnvConfig() {
	if val := os.Getenv("CMS_DATA_DIR"); val != "" {
		c.DataDir = val
		c.sources["data_dir"] = "environment"
	}
	if val := os.Getenv("CMS_CONTENT_DIR"); val != "" {
		c.ContentDir = val
		c.sources["content_dir"] = "environment"
	}
	if val := os.Getenv("CMS_MEDIA_DIR"); val != "" {
		c.MediaDir = val
		c.sources["media_dir"] = "environment"
	}
	if val := os.Getenv("CMS_DEFAULT_LANG"); val != "" {
		c.DefaultLang = val
		c.sources["default_lang"] = "environment"
	}
	if val := os.Getenv("CMS_LANGUAGES"); val != "" {
		c.Languages = splitAndTrim(val)
		c.sources["languages"] = "environment"
	}
	if val := os.Getenv("CMS_TOKEN_TTL"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			c.TokenTTL = i
			c.sources["token_ttl"] = "environment"
		}
	}
	if val := os.Getenv("CMS_SECURE_COOKIES"); val != "" {
		c.SecureCookies = val == "true" || val == "1"
		c.sources["secure_cookies"] = "environment"
	}
	if val := os.Getenv("CMS_CORS_ORIGINS"); val != "" {
		c.CORSOrigins = splitAndTrim(val)
		c.sources["cors_origins"] = "environment"
	}
	if val := os.Getenv("CMS_APPLY_ON_APPROVE"); val != "" {
		c.ApplyOnApprove = val == "true" || val == "1"
		c.sources["apply_on_approve"] = "environment"
	}
	if val := os.Getenv("DATABASE_URL"); val != "" {
		c.DatabaseURL = val
		c.sources["database_url"] = "environment"
	}
	if val := os.Getenv("CMS_LOG_LEVEL"); val != "" {
		c.LogLevel = val
		c.sources["log_level"] = "environment"
	}
}

// ConfigFilePath returns the path to the config file
func (c *CMSConfig) ConfigFilePath() string {
	return c.configFilePath
}

// Source returns the source of a configuration attribute
func (c *CMSConfig) Source(name string) string {
	if c.sources == nil {
		return "default"
	}
	if s, ok := c.sources[name]; ok {
		return s
	}
	return "default"
}

// TokenDuration returns the token TTL as a duration
func (c *CMSConfig) TokenDuration() time.Duration {
	return time.Duration(c.TokenTTL) * time.Second
}

// UsesDatabase reports whether users and pending changes live in postgres
func (c *CMSConfig) UsesDatabase() bool {
	return c.DatabaseURL != ""
}

// IsLanguage checks whether lang is one of the configured content languages
func (c *CMSConfig) IsLanguage(lang string) bool {
	for _, l := range c.Languages {
		if l == lang {
			return true
		}
	}
	return false
}

// PendingFile is the JSON file holding the moderation queue
func (c *CMSConfig) PendingFile() string {
	return filepath.Join(c.DataDir, "pending-changes.json")
}

// UsersFile is the JSON file holding user accounts
func (c *CMSConfig) UsersFile() string {
	return filepath.Join(c.DataDir, "users.json")
}

// Validate validates the configuration
func (c *CMSConfig) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data_dir must not be empty")
	}
	if c.ContentDir == "" {
		return fmt.Errorf("content_dir must not be empty")
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("invalid token_ttl: %d", c.TokenTTL)
	}
	for _, lang := range c.Languages {
		if !languageRgx.MatchString(lang) {
			return fmt.Errorf("invalid language code: %s", lang)
		}
	}
	if len(c.Languages) > 0 && !c.IsLanguage(c.DefaultLang) {
		return fmt.Errorf("default_lang %q is not listed in languages", c.DefaultLang)
	}
	if c.LogLevel != LogLevelInfo && c.LogLevel != LogLevelDebug {
		return fmt.Errorf("invalid log_level: %q (must be %s or %s)", c.LogLevel, LogLevelInfo, LogLevelDebug)
	}
	return nil
}

// Attributes returns all configuration attributes with their values and sources
func (c *CMSConfig) Attributes() []Attribute {
	dbURL := c.DatabaseURL
	if dbURL != "" {
		dbURL = "(set)"
	}
	return []Attribute{
		{Name: "data_dir", Value: c.DataDir, Source: c.Source("data_dir")},
		{Name: "content_dir", Value: c.ContentDir, Source: c.Source("content_dir")},
		{Name: "media_dir", Value: c.MediaDir, Source: c.Source("media_dir")},
		{Name: "default_lang", Value: c.DefaultLang, Source: c.Source("default_lang")},
		{Name: "languages", Value: strings.Join(c.Languages, ","), Source: c.Source("languages")},
		{Name: "token_ttl", Value: strconv.Itoa(c.TokenTTL), Source: c.Source("token_ttl")},
		{Name: "secure_cookies", Value: strconv.FormatBool(c.SecureCookies), Source: c.Source("secure_cookies")},
		{Name: "cors_origins", Value: strings.Join(c.CORSOrigins, ","), Source: c.Source("cors_origins")},
		{Name: "apply_on_approve", Value: strconv.FormatBool(c.ApplyOnApprove), Source: c.Source("apply_on_approve")},
		{Name: "database_url", Value: dbURL, Source: c.Source("database_url")},
		{Name: "log_level", Value: c.LogLevel, Source: c.Source("log_level")},
	}
}

// FormatText returns a text representation of the configuration
func (c *CMSConfig) FormatText() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Config file: %s\n\n", c.configFilePath))
	sb.WriteString(fmt.Sprintf("%-20s %-30s %s\n", "NAME", "VALUE", "SOURCE"))
	sb.WriteString(fmt.Sprintf("%-20s %-30s %s\n", "----", "-----", "------"))

	for _, attr := range c.Attributes() {
		value := attr.Value
		if value == "" {
			value = "(not set)"
		}
		sb.WriteString(fmt.Sprintf("%-20s %-30s %s\n", attr.Name, value, attr.Source))
	}
	return sb.String()
}

// FormatJSON returns a JSON representation of the configuration
func (c *CMSConfig) FormatJSON() (string, error) {
	result := map[string]interface{}{
		"config_file": c.configFilePath,
		"attributes":  c.Attributes(),
	}
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}
