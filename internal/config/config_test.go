package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFromFile_YAML(t *testing.T) {
	yamlContent := `
dns_csv: records.csv
out_graph: out.json
kb_prefix: case
kb_prefix_iri: http://example.org/case/
output_format: turtle
validate: true
cache_ttl_hours: 6
seed: 42
metrics_addr: ":9090"
`

	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configFile, []byte(yamlContent), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromFile(configFile)
	if err != nil {
		t.Fatalf("failed to load YAML config: %v", err)
	}

	if cfg.DNSCSV != "records.csv" {
		t.Errorf("expected dns_csv 'records.csv', got %s", cfg.DNSCSV)
	}
	if cfg.OutGraph != "out.json" {
		t.Errorf("expected out_graph 'out.json', got %s", cfg.OutGraph)
	}
	if cfg.KBPrefix != "case" {
		t.Errorf("expected kb_prefix 'case', got %s", cfg.KBPrefix)
	}
	if cfg.KBPrefixIRI != "http://example.org/case/" {
		t.Errorf("expected kb_prefix_iri, got %s", cfg.KBPrefixIRI)
	}
	if cfg.OutputFormat != "turtle" {
		t.Errorf("expected output_format 'turtle', got %s", cfg.OutputFormat)
	}
	if !cfg.DoValidate {
		t.Error("expected validate true")
	}
	if cfg.CacheTTLHours != 6 {
		t.Errorf("expected cache_ttl_hours 6, got %d", cfg.CacheTTLHours)
	}
	if cfg.Seed != 42 {
		t.Errorf("expected seed 42, got %d", cfg.Seed)
	}
	if cfg.MetricsAddr != ":9090" {
		t.Errorf("expected metrics_addr ':9090', got %s", cfg.MetricsAddr)
	}
}

func TestLoadFromFile_JSON(t *testing.T) {
	jsonContent := `{
		"dns_csv": "records.json.csv",
		"out_graph": "graph.json",
		"ontology_urls": ["https://ontology.test/core.ttl"],
		"otel_endpoint": "localhost:4318"
	}`

	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "config.json")
	if err := os.WriteFile(configFile, []byte(jsonContent), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromFile(configFile)
	if err != nil {
		t.Fatalf("failed to load JSON config: %v", err)
	}

	if cfg.DNSCSV != "records.json.csv" {
		t.Errorf("expected dns_csv 'records.json.csv', got %s", cfg.DNSCSV)
	}
	if cfg.OutGraph != "graph.json" {
		t.Errorf("expected out_graph 'graph.json', got %s", cfg.OutGraph)
	}
	if len(cfg.OntologyURLs) != 1 || cfg.OntologyURLs[0] != "https://ontology.test/core.ttl" {
		t.Errorf("unexpected ontology_urls: %v", cfg.OntologyURLs)
	}
	if cfg.OTELEndpoint != "localhost:4318" {
		t.Errorf("expected otel_endpoint 'localhost:4318', got %s", cfg.OTELEndpoint)
	}
}

func TestLoadFromFile_UnsupportedExtension(t *testing.T) {
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "config.toml")
	if err := os.WriteFile(configFile, []byte("x = 1"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadFromFile(configFile); err == nil {
		t.Error("expected error for unsupported extension")
	}
}

func TestSetDefaults(t *testing.T) {
	var cfg Config
	cfg.SetDefaults()

	if cfg.DNSCSV != "data/domain-ip-res.csv" {
		t.Errorf("expected default dns_csv, got %s", cfg.DNSCSV)
	}
	if cfg.KBPrefix != "kb" {
		t.Errorf("expected default kb_prefix 'kb', got %s", cfg.KBPrefix)
	}
	if cfg.KBPrefixIRI != "http://example.org/kb/" {
		t.Errorf("expected default kb_prefix_iri, got %s", cfg.KBPrefixIRI)
	}
	if len(cfg.OntologyURLs) != 2 {
		t.Errorf("expected 2 default ontology URLs, got %d", len(cfg.OntologyURLs))
	}
	if cfg.CacheTTLHours != 24 {
		t.Errorf("expected default cache_ttl_hours 24, got %d", cfg.CacheTTLHours)
	}
	if cfg.OTELService != "casedns" {
		t.Errorf("expected default otel_service 'casedns', got %s", cfg.OTELService)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"missing out_graph", func(c *Config) { c.OutGraph = "" }, true},
		{"missing dns_csv", func(c *Config) { c.DNSCSV = "" }, true},
		{"missing kb_prefix_iri", func(c *Config) { c.KBPrefixIRI = "" }, true},
		{"zero ttl", func(c *Config) { c.CacheTTLHours = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{OutGraph: "out.json"}
			cfg.SetDefaults()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestMergeWithFlags(t *testing.T) {
	cfg := Config{DNSCSV: "file.csv", OutGraph: "file.json", KBPrefix: "kb"}
	cfg.SetDefaults()

	cfg.MergeWithFlags(map[string]interface{}{
		"dns_csv":       "flag.csv",
		"out_graph":     "flag.json",
		"kb_prefix":     "",
		"output_format": "ntriples",
		"validate":      true,
		"seed":          int64(7),
	})

	if cfg.DNSCSV != "flag.csv" {
		t.Errorf("expected flag to override dns_csv, got %s", cfg.DNSCSV)
	}
	if cfg.OutGraph != "flag.json" {
		t.Errorf("expected flag to override out_graph, got %s", cfg.OutGraph)
	}
	if cfg.KBPrefix != "kb" {
		t.Errorf("expected empty flag to keep file value, got %s", cfg.KBPrefix)
	}
	if cfg.OutputFormat != "ntriples" {
		t.Errorf("expected output_format 'ntriples', got %s", cfg.OutputFormat)
	}
	if !cfg.DoValidate {
		t.Error("expected validate true after merge")
	}
	if cfg.Seed != 7 {
		t.Errorf("expected seed 7, got %d", cfg.Seed)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("CASEDNS_ONTOLOGY_URLS", "https://a.test/core.ttl, https://b.test/observable.ttl")

	var cfg Config
	cfg.SetDefaults()
	cfg.LoadFromEnv()

	if cfg.RedisAddr != "localhost:6379" {
		t.Errorf("expected redis_addr from env, got %s", cfg.RedisAddr)
	}
	if len(cfg.OntologyURLs) != 2 || cfg.OntologyURLs[1] != "https://b.test/observable.ttl" {
		t.Errorf("unexpected ontology_urls from env: %v", cfg.OntologyURLs)
	}
}
