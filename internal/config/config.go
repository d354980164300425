package config

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gustycube/casedns/internal/ontology"
	"gopkg.in/yaml.v3"
)

// Config represents the complete configuration for casedns
type Config struct {
	// Core configuration
	DNSCSV      string `yaml:"dns_csv" json:"dns_csv"`
	OutGraph    string `yaml:"out_graph" json:"out_graph"`
	KBPrefix    string `yaml:"kb_prefix" json:"kb_prefix"`
	KBPrefixIRI string `yaml:"kb_prefix_iri" json:"kb_prefix_iri"`

	// Output
	OutputFormat string `yaml:"output_format" json:"output_format"`

	// Validation
	DoValidate    bool     `yaml:"validate" json:"validate"`
	OntologyURLs  []string `yaml:"ontology_urls" json:"ontology_urls"`
	CacheTTLHours int      `yaml:"cache_ttl_hours" json:"cache_ttl_hours"`

	// Identifier generation; 0 means random
	Seed int64 `yaml:"seed" json:"seed"`

	// Observability
	Debug        bool   `yaml:"debug" json:"debug"`
	MetricsAddr  string `yaml:"metrics_addr" json:"metrics_addr"`
	OTELEndpoint string `yaml:"otel_endpoint" json:"otel_endpoint"`
	OTELInsecure bool   `yaml:"otel_insecure" json:"otel_insecure"`
	OTELService  string `yaml:"otel_service" json:"otel_service"`

	// Redis (ontology document cache)
	RedisAddr string `yaml:"redis_addr" json:"redis_addr"`
}

// SetDefaults sets default values for the configuration
func (c *Config) SetDefaults() {
	if c.DNSCSV == "" {
		c.DNSCSV = "data/domain-ip-res.csv"
	}
	if c.KBPrefix == "" {
		c.KBPrefix = "kb"
	}
	if c.KBPrefixIRI == "" {
		c.KBPrefixIRI = "http://example.org/kb/"
	}
	if len(c.OntologyURLs) == 0 {
		c.OntologyURLs = append([]string{}, ontology.DefaultURLs...)
	}
	if c.CacheTTLHours == 0 {
		c.CacheTTLHours = 24
	}
	if c.OTELService == "" {
		c.OTELService = "casedns"
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.OutGraph == "" {
		return fmt.Errorf("output graph path is required")
	}
	if c.DNSCSV == "" {
		return fmt.Errorf("dns_csv path is required")
	}
	if c.KBPrefixIRI == "" {
		return fmt.Errorf("kb_prefix_iri is required")
	}
	if c.CacheTTLHours < 1 {
		return fmt.Errorf("cache_ttl_hours must be at least 1")
	}
	return nil
}

// LoadFromFile loads configuration from a YAML or JSON file
func LoadFromFile(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	ext := strings.ToLower(filepath.Ext(path))

	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse JSON config: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config file format: %s (use .yaml, .yml, or .json)", ext)
	}

	config.SetDefaults()
	return &config, nil
}

// MergeWithFlags merges command-line flags with file configuration
// Command-line flags take precedence over file configuration
func (c *Config) MergeWithFlags(flags map[string]interface{}) {
	if v, ok := flags["dns_csv"].(string); ok && v != "" {
		c.DNSCSV = v
	}
	if v, ok := flags["out_graph"].(string); ok && v != "" {
		c.OutGraph = v
	}
	if v, ok := flags["kb_prefix"].(string); ok && v != "" {
		c.KBPrefix = v
	}
	if v, ok := flags["kb_prefix_iri"].(string); ok && v != "" {
		c.KBPrefixIRI = v
	}
	if v, ok := flags["output_format"].(string); ok && v != "" {
		c.OutputFormat = v
	}
	if v, ok := flags["validate"].(bool); ok && v {
		c.DoValidate = true
	}
	if v, ok := flags["debug"].(bool); ok && v {
		c.Debug = true
	}
	if v, ok := flags["seed"].(int64); ok && v != 0 {
		c.Seed = v
	}
	if v, ok := flags["metrics_addr"].(string); ok && v != "" {
		c.MetricsAddr = v
	}
	if v, ok := flags["otel_endpoint"].(string); ok && v != "" {
		c.OTELEndpoint = v
	}
	if v, ok := flags["otel_insecure"].(bool); ok {
		c.OTELInsecure = v
	}
	if v, ok := flags["otel_service"].(string); ok && v != "" {
		c.OTELService = v
	}
}

// LoadFromEnv loads configuration from environment variables
func (c *Config) LoadFromEnv() {
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.RedisAddr = v
	}
	if v := os.Getenv("CASEDNS_ONTOLOGY_URLS"); v != "" {
		c.OntologyURLs = c.OntologyURLs[:0]
		for _, u := range strings.Split(v, ",") {
			u = strings.TrimSpace(u)
			if u != "" {
				c.OntologyURLs = append(c.OntologyURLs, u)
			}
		}
	}
}
