package config

import (
	"os"
	"testing"
)

func validConfig() Config {
	cfg := Config{
		HTTP:       HTTPConfig{Port: 8000},
		Database:   DatabaseConfig{Addrs: []string{"localhost:6379"}},
		Embedding:  EmbeddingConfig{Model: "text-embedding-3-small"},
		Generation: GenerationConfig{Model: "gpt-4o-mini"},
	}
	cfg.ApplyDefaults()
	return cfg
}

func TestValidate_Valid(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_InvalidPort(t *testing.T) {
	cfg := validConfig()
	cfg.HTTP.Port = 0

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidate_MissingAddrs(t *testing.T) {
	cfg := validConfig()
	cfg.Database.Addrs = nil

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing database addrs")
	}
}

func TestValidate_MissingModels(t *testing.T) {
	cfg := validConfig()
	cfg.Embedding.Model = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing embedding model")
	}

	cfg = validConfig()
	cfg.Generation.Model = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing generation model")
	}
}

func TestValidate_TopKOrdering(t *testing.T) {
	cfg := validConfig()
	cfg.Retrieval.DefaultTopK = 100
	cfg.Retrieval.MaxTopK = 50

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error when default_top_k exceeds max_top_k")
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("expected ReadTimeoutSec=10, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.WriteTimeoutSec != 60 {
		t.Errorf("expected WriteTimeoutSec=60, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.Retrieval.Collection != "docs" {
		t.Errorf("expected Collection='docs', got %q", cfg.Retrieval.Collection)
	}
	if cfg.Retrieval.ChunkMaxChars != 480 {
		t.Errorf("expected ChunkMaxChars=480, got %d", cfg.Retrieval.ChunkMaxChars)
	}
	if cfg.Retrieval.DefaultTopK != 5 || cfg.Retrieval.MaxTopK != 50 {
		t.Errorf("expected top_k defaults 5/50, got %d/%d", cfg.Retrieval.DefaultTopK, cfg.Retrieval.MaxTopK)
	}
	if cfg.Generation.MaxTokens != 128 {
		t.Errorf("expected MaxTokens=128, got %d", cfg.Generation.MaxTokens)
	}
	if cfg.Eval.TestSetPath != "data/qd_test.json" {
		t.Errorf("expected default test set path, got %q", cfg.Eval.TestSetPath)
	}
	if cfg.Eval.ArtifactPath != "output_offline.json" {
		t.Errorf("expected default artifact path, got %q", cfg.Eval.ArtifactPath)
	}
}

func TestApplyDefaults_GenerationFallsBackToEmbedding(t *testing.T) {
	cfg := Config{
		Embedding: EmbeddingConfig{APIKey: "key-123", BaseURL: "https://api.example.com/v1"},
	}
	cfg.ApplyDefaults()

	if cfg.Generation.APIKey != "key-123" {
		t.Errorf("expected generation api key to fall back, got %q", cfg.Generation.APIKey)
	}
	if cfg.Generation.BaseURL != "https://api.example.com/v1" {
		t.Errorf("expected generation base url to fall back, got %q", cfg.Generation.BaseURL)
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	cfg := Config{
		HTTP:       HTTPConfig{ReadTimeoutSec: 30, WriteTimeoutSec: 90, ShutdownSec: 5},
		Retrieval:  RetrievalConfig{Collection: "custom", ChunkMaxChars: 256, DefaultTopK: 3, MaxTopK: 10},
		Generation: GenerationConfig{APIKey: "gen-key", MaxTokens: 64},
	}
	cfg.ApplyDefaults()

	if cfg.HTTP.WriteTimeoutSec != 90 {
		t.Errorf("expected WriteTimeoutSec=90, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.Retrieval.Collection != "custom" {
		t.Errorf("expected Collection='custom', got %q", cfg.Retrieval.Collection)
	}
	if cfg.Retrieval.ChunkMaxChars != 256 {
		t.Errorf("expected ChunkMaxChars=256, got %d", cfg.Retrieval.ChunkMaxChars)
	}
	if cfg.Generation.APIKey != "gen-key" {
		t.Errorf("expected APIKey='gen-key', got %q", cfg.Generation.APIKey)
	}
}

func TestExpandEnvVars(t *testing.T) {
	os.Setenv("RAGTRIAL_TEST_VAR", "redis:6379")
	defer os.Unsetenv("RAGTRIAL_TEST_VAR")

	in := []byte("addr: ${RAGTRIAL_TEST_VAR}\nfallback: ${RAGTRIAL_UNSET_VAR:-default-val}\nempty: ${RAGTRIAL_UNSET_VAR:-}")
	out := string(expandEnvVars(in))

	want := "addr: redis:6379\nfallback: default-val\nempty: "
	if out != want {
		t.Errorf("expandEnvVars:\ngot:  %q\nwant: %q", out, want)
	}
}
