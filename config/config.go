package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"offer-enrichment/models"
)

// Clustering algorithms the operator may select.
const (
	ClusterKMeans        = "kmeans"
	ClusterAgglomerative = "agglomerative"
	ClusterDBSCAN        = "dbscan"
)

// Label policies for the demand classifier.
const (
	LabelTitleFrequency = "title_frequency"
	LabelCluster        = "cluster"
)

// VectorizerConfig bounds one TF-IDF vocabulary.
type VectorizerConfig struct {
	MaxFeatures int
	MinDF       int
	MaxDF       float64
}

// Config holds all application configuration loaded from environment variables.
type Config struct {
	InputPath  string
	OutputPath string
	LogLevel   string
	Workers    int
	Seed       int64

	ClusterAlgorithm string
	ClusterCount     int
	DBSCANEps        float64
	DBSCANMinSamples int
	ClusterVectors   VectorizerConfig
	DomainFeature    bool

	LabelPolicy      string
	LabelQuantile    float64
	LabelClusterID   int
	TestFraction     float64
	ClassifierVector VectorizerConfig

	DomainRulesPath string
	DomainRules     []models.DomainRule

	ScrapeEnabled  bool
	PagesToScrape  int
	MaxConcurrency int
	RateLimitMs    int
	MaxRetries     int
	ChromeBin      string

	PostgresEnabled  bool
	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string

	SQLitePath string
}

// Load reads the .env file and returns a populated Config struct.
// The optional domain rule file is read here too; call Validate before use.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	cfg := &Config{
		InputPath:  getEnv("INPUT_PATH", "./data/raw/offres_hellowork.csv"),
		OutputPath: getEnv("OUTPUT_PATH", "./data/processed/offres_ml.csv"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),
		Workers:    getEnvInt("WORKERS", 4),
		Seed:       int64(getEnvInt("SEED", 42)),

		ClusterAlgorithm: strings.ToLower(getEnv("CLUSTER_ALGORITHM", ClusterKMeans)),
		ClusterCount:     getEnvInt("CLUSTER_COUNT", 5),
		DBSCANEps:        getEnvFloat("DBSCAN_EPS", 0.9),
		DBSCANMinSamples: getEnvInt("DBSCAN_MIN_SAMPLES", 5),
		ClusterVectors: VectorizerConfig{
			MaxFeatures: getEnvInt("CLUSTER_MAX_FEATURES", 2000),
			MinDF:       getEnvInt("CLUSTER_MIN_DF", 2),
			MaxDF:       getEnvFloat("CLUSTER_MAX_DF", 0.7),
		},
		DomainFeature: getEnvBool("CLUSTER_DOMAIN_FEATURE", true),

		LabelPolicy:    strings.ToLower(getEnv("LABEL_POLICY", LabelTitleFrequency)),
		LabelQuantile:  getEnvFloat("LABEL_QUANTILE", 0.8),
		LabelClusterID: getEnvInt("LABEL_CLUSTER_ID", 0),
		TestFraction:   getEnvFloat("TEST_FRACTION", 0.2),
		ClassifierVector: VectorizerConfig{
			MaxFeatures: getEnvInt("CLASSIFIER_MAX_FEATURES", 1000),
			MinDF:       getEnvInt("CLASSIFIER_MIN_DF", 2),
			MaxDF:       getEnvFloat("CLASSIFIER_MAX_DF", 1.0),
		},

		DomainRulesPath: getEnv("DOMAIN_RULES_PATH", ""),

		ScrapeEnabled:  getEnvBool("SCRAPE_ENABLED", false),
		PagesToScrape:  getEnvInt("PAGES_TO_SCRAPE", 10),
		MaxConcurrency: getEnvInt("MAX_CONCURRENCY", 3),
		RateLimitMs:    getEnvInt("RATE_LIMIT_MS", 2000),
		MaxRetries:     getEnvInt("MAX_RETRIES", 3),
		ChromeBin:      getEnv("CHROME_BIN", ""),

		PostgresEnabled:  getEnvBool("POSTGRES_ENABLED", false),
		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "offres"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "offres123"),
		PostgresDB:       getEnv("POSTGRES_DB", "offres_db"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),

		SQLitePath: getEnv("SQLITE_PATH", ""),
	}

	if cfg.DomainRulesPath != "" {
		rules, err := LoadDomainRules(cfg.DomainRulesPath)
		if err != nil {
			return nil, err
		}
		cfg.DomainRules = rules
	}

	return cfg, nil
}

type rulesFile struct {
	Rules []models.DomainRule `yaml:"rules"`
}

// LoadDomainRules reads an ordered rule table from a YAML file of the form
//
//	rules:
//	  - category: Restauration
//	    keywords: [cuisinier, serveur]
func LoadDomainRules(path string) ([]models.DomainRule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read domain rules %q: %w", path, err)
	}
	var f rulesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("config: parse domain rules %q: %w", path, err)
	}
	if len(f.Rules) == 0 {
		return nil, fmt.Errorf("config: domain rules %q: no rules defined", path)
	}
	return f.Rules, nil
}

// Validate rejects configurations that would fail later in the run.
func (c *Config) Validate() error {
	switch c.ClusterAlgorithm {
	case ClusterKMeans, ClusterAgglomerative, ClusterDBSCAN:
	default:
		return fmt.Errorf("config: unknown CLUSTER_ALGORITHM %q (want %s, %s or %s)",
			c.ClusterAlgorithm, ClusterKMeans, ClusterAgglomerative, ClusterDBSCAN)
	}
	switch c.LabelPolicy {
	case LabelTitleFrequency, LabelCluster:
	default:
		return fmt.Errorf("config: unknown LABEL_POLICY %q (want %s or %s)",
			c.LabelPolicy, LabelTitleFrequency, LabelCluster)
	}
	if c.ClusterCount < 1 {
		return fmt.Errorf("config: CLUSTER_COUNT must be >= 1, got %d", c.ClusterCount)
	}
	if c.DBSCANEps <= 0 || c.DBSCANMinSamples < 1 {
		return fmt.Errorf("config: DBSCAN_EPS must be > 0 and DBSCAN_MIN_SAMPLES >= 1")
	}
	if c.LabelQuantile < 0 || c.LabelQuantile > 1 {
		return fmt.Errorf("config: LABEL_QUANTILE must be in [0,1], got %g", c.LabelQuantile)
	}
	if c.TestFraction <= 0 || c.TestFraction >= 1 {
		return fmt.Errorf("config: TEST_FRACTION must be in (0,1), got %g", c.TestFraction)
	}
	for name, v := range map[string]VectorizerConfig{"CLUSTER": c.ClusterVectors, "CLASSIFIER": c.ClassifierVector} {
		if v.MaxFeatures < 1 || v.MinDF < 1 || v.MaxDF <= 0 || v.MaxDF > 1 {
			return fmt.Errorf("config: invalid %s vectorizer bounds %+v", name, v)
		}
	}
	for i, r := range c.DomainRules {
		if strings.TrimSpace(r.Category) == "" || len(r.Keywords) == 0 {
			return fmt.Errorf("config: domain rule #%d needs a category and at least one keyword", i+1)
		}
	}
	if c.InputPath == "" || c.OutputPath == "" {
		return fmt.Errorf("config: INPUT_PATH and OUTPUT_PATH are required")
	}
	return nil
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
		warnMalformed(key, val, fallback)
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if val := os.Getenv(key); val != "" {
		f, err := strconv.ParseFloat(val, 64)
		if err == nil {
			return f
		}
		warnMalformed(key, val, fallback)
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		b, err := strconv.ParseBool(val)
		if err == nil {
			return b
		}
		warnMalformed(key, val, fallback)
	}
	return fallback
}

func warnMalformed(key, val string, fallback any) {
	log.Printf("[config] Ignoring malformed %s=%q, using default %v", key, val, fallback)
}
