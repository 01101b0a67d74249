// Package config loads process configuration the way the teacher's
// internal/gateway/config does: an optional .env file via godotenv, flag
// overrides, then environment variables with firstNonEmpty fallback chains.
package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/joho/godotenv"
)

type Config struct {
	InputPath  string
	OutputPath string
	ErrorPath  string
	ReportPath string

	RefData    RefDataConfig
	Density    DensityConfig
	Fuzzy      FuzzyConfig
	Concurrency int

	// GatewayAddr is the listen address for cmd/canonpipe-gateway.
	GatewayAddr string
}

type RefDataConfig struct {
	Dir   string
	PGDSN string
	S3    S3Config
}

type S3Config struct {
	Enabled   bool
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
	Prefix    string
	UseSSL    bool
}

func (c S3Config) CanUseS3() bool {
	if !c.Enabled {
		return false
	}
	return strings.TrimSpace(c.Endpoint) != "" &&
		strings.TrimSpace(c.AccessKey) != "" &&
		strings.TrimSpace(c.SecretKey) != "" &&
		strings.TrimSpace(c.Bucket) != ""
}

type DensityConfig struct {
	BandMin float64
	BandMax float64
}

type FuzzyConfig struct {
	Accept float64
	Review float64
}

var (
	flagsOnce  sync.Once
	inputFlag  *string
	outputFlag *string
	concFlag   *int
)

// registerFlags defines the CLI flags exactly once per process. Tests that
// call Load more than once in the same binary would otherwise hit "flag
// redefined" panics against the package-global flag.CommandLine.
func registerFlags() {
	flagsOnce.Do(func() {
		inputFlag = flag.String("input", "", "input NDJSON path (CANON_INPUT_PATH)")
		outputFlag = flag.String("output", "", "output NDJSON path (CANON_OUTPUT_PATH)")
		concFlag = flag.Int("concurrency", 0, "worker pool size (CANON_CONCURRENCY)")
	})
}

// Load reads .env (if present), CLI flags, then environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	registerFlags()
	if !flag.Parsed() {
		flag.Parse()
	}

	cfg := &Config{
		InputPath:  firstNonEmpty(*inputFlag, os.Getenv("CANON_INPUT_PATH")),
		OutputPath: firstNonEmpty(*outputFlag, os.Getenv("CANON_OUTPUT_PATH")),
		ErrorPath:  firstNonEmpty(os.Getenv("CANON_ERROR_PATH"), ""),
		ReportPath: firstNonEmpty(os.Getenv("CANON_REPORT_PATH"), ""),
		RefData: RefDataConfig{
			Dir:   strings.TrimSpace(os.Getenv("CANON_REFDATA_DIR")),
			PGDSN: strings.TrimSpace(os.Getenv("CANON_REFDATA_PG_DSN")),
			S3:    loadS3Config(),
		},
		Density: DensityConfig{
			BandMin: envFloat("CANON_DENSITY_BAND_MIN", 0.05),
			BandMax: envFloat("CANON_DENSITY_BAND_MAX", 2.0),
		},
		Fuzzy: FuzzyConfig{
			Accept: envFloat("CANON_FUZZY_ACCEPT", 0.92),
			Review: envFloat("CANON_FUZZY_REVIEW", 0.80),
		},
		Concurrency: *concFlag,
		GatewayAddr: firstNonEmpty(strings.TrimSpace(os.Getenv("CANON_GATEWAY_ADDR")), ":8080"),
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = int(envFloat("CANON_CONCURRENCY", 4))
	}
	if cfg.RefData.Dir == "" && cfg.RefData.PGDSN == "" {
		return nil, fmt.Errorf("config: set CANON_REFDATA_DIR or CANON_REFDATA_PG_DSN")
	}
	return cfg, nil
}

func loadS3Config() S3Config {
	endpoint := strings.TrimSpace(os.Getenv("CANON_REFDATA_S3_ENDPOINT"))
	return S3Config{
		Enabled:   endpoint != "",
		Endpoint:  endpoint,
		Region:    firstNonEmpty(strings.TrimSpace(os.Getenv("CANON_REFDATA_S3_REGION")), "us-east-1"),
		AccessKey: strings.TrimSpace(os.Getenv("CANON_REFDATA_S3_ACCESS_KEY")),
		SecretKey: strings.TrimSpace(os.Getenv("CANON_REFDATA_S3_SECRET_KEY")),
		Bucket:    strings.TrimSpace(os.Getenv("CANON_REFDATA_S3_BUCKET")),
		Prefix:    strings.TrimSpace(os.Getenv("CANON_REFDATA_S3_PREFIX")),
		UseSSL:    envBool("CANON_REFDATA_S3_USE_SSL", true),
	}
}

func envFloat(key string, fallback float64) float64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fallback
	}
	return v
}

func envBool(key string, fallback bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}
	return v
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
