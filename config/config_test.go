package config

import (
	"bytes"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"offer-enrichment/models"
)

func validConfig() *Config {
	return &Config{
		InputPath:        "in.csv",
		OutputPath:       "out.csv",
		ClusterAlgorithm: ClusterKMeans,
		ClusterCount:     5,
		DBSCANEps:        0.9,
		DBSCANMinSamples: 5,
		ClusterVectors:   VectorizerConfig{MaxFeatures: 2000, MinDF: 2, MaxDF: 0.7},
		LabelPolicy:      LabelTitleFrequency,
		LabelQuantile:    0.8,
		TestFraction:     0.2,
		ClassifierVector: VectorizerConfig{MaxFeatures: 1000, MinDF: 2, MaxDF: 1},
	}
}

func TestLoadDefaultsAreValid(t *testing.T) {
	t.Setenv("CLUSTER_ALGORITHM", "")
	t.Setenv("LABEL_POLICY", "")
	t.Setenv("DOMAIN_RULES_PATH", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
	if cfg.ClusterAlgorithm != ClusterKMeans {
		t.Errorf("ClusterAlgorithm: got %q, want %q", cfg.ClusterAlgorithm, ClusterKMeans)
	}
	if cfg.Seed != 42 {
		t.Errorf("Seed: got %d, want 42", cfg.Seed)
	}
}

func TestLoadReadsEnvOverrides(t *testing.T) {
	t.Setenv("CLUSTER_ALGORITHM", "DBSCAN")
	t.Setenv("CLUSTER_COUNT", "7")
	t.Setenv("DBSCAN_EPS", "0.35")
	t.Setenv("CLUSTER_DOMAIN_FEATURE", "false")
	t.Setenv("DOMAIN_RULES_PATH", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ClusterAlgorithm != ClusterDBSCAN {
		t.Errorf("ClusterAlgorithm: got %q", cfg.ClusterAlgorithm)
	}
	if cfg.ClusterCount != 7 {
		t.Errorf("ClusterCount: got %d, want 7", cfg.ClusterCount)
	}
	if cfg.DBSCANEps != 0.35 {
		t.Errorf("DBSCANEps: got %g, want 0.35", cfg.DBSCANEps)
	}
	if cfg.DomainFeature {
		t.Error("DomainFeature should be disabled")
	}
}

func TestLoadWarnsOnMalformedValues(t *testing.T) {
	t.Setenv("CLUSTER_COUNT", "abc")
	t.Setenv("DBSCAN_EPS", "")
	t.Setenv("DOMAIN_RULES_PATH", "")

	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ClusterCount != 5 {
		t.Errorf("ClusterCount: got %d, want default 5", cfg.ClusterCount)
	}
	if !strings.Contains(buf.String(), `CLUSTER_COUNT="abc"`) {
		t.Errorf("expected a warning naming CLUSTER_COUNT, got %q", buf.String())
	}
}

func TestValidateRejectsBadSelections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		want   string
	}{
		{"unknown algorithm", func(c *Config) { c.ClusterAlgorithm = "spectral" }, "CLUSTER_ALGORITHM"},
		{"unknown label policy", func(c *Config) { c.LabelPolicy = "both" }, "LABEL_POLICY"},
		{"zero clusters", func(c *Config) { c.ClusterCount = 0 }, "CLUSTER_COUNT"},
		{"test fraction", func(c *Config) { c.TestFraction = 1 }, "TEST_FRACTION"},
		{"quantile", func(c *Config) { c.LabelQuantile = 1.5 }, "LABEL_QUANTILE"},
		{"max df", func(c *Config) { c.ClusterVectors.MaxDF = 0 }, "vectorizer"},
		{"empty rule", func(c *Config) {
			c.DomainRules = []models.DomainRule{{Category: "", Keywords: []string{"x"}}}
		}, "domain rule #1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q should mention %q", err, tt.want)
			}
		})
	}
}

func TestLoadDomainRulesKeepsOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	content := `rules:
  - category: Logistique
    keywords: [cariste, chauffeur]
  - category: Commerce
    keywords: [vendeur]
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	rules, err := LoadDomainRules(path)
	if err != nil {
		t.Fatalf("LoadDomainRules: %v", err)
	}
	if len(rules) != 2 {
		t.Fatalf("rules: got %d, want 2", len(rules))
	}
	if rules[0].Category != "Logistique" || rules[1].Category != "Commerce" {
		t.Errorf("order not preserved: %+v", rules)
	}
	if rules[0].Keywords[1] != "chauffeur" {
		t.Errorf("keywords: got %v", rules[0].Keywords)
	}
}

func TestLoadDomainRulesRejectsEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	if err := os.WriteFile(path, []byte("rules: []\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadDomainRules(path); err == nil {
		t.Error("expected error for empty rule table")
	}
}
