package infra

import (
	"testing"
	"time"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("KAFKA_CONSUMER_HOST", "localhost:9092")
	t.Setenv("KAFKA_CONSUMER_TOPIC", "plant-organ-detection")
	t.Setenv("KAFKA_CONSUMER_GROUP", "group")
	t.Setenv("KAFKA_PRODUCER_HOST", "localhost:9092")
	t.Setenv("KAFKA_PRODUCER_TOPIC", "annotations")
	t.Setenv("RUNNING_ENDPOINT", "https://api.example.org/mjr")
	t.Setenv("MAS_ID", "20.5000.1025/XYZ")
}

func TestLoadConfigDefaults(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORT", "")
	t.Setenv("MODEL_NAME", "")
	t.Setenv("INFERENCE_ENDPOINT", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.Port != "8080" {
		t.Fatalf("Port mismatch: got %q want %q", cfg.Port, "8080")
	}
	if cfg.ModelName != "leafpriority" {
		t.Fatalf("ModelName mismatch: got %q want %q", cfg.ModelName, "leafpriority")
	}
	expected := "https://herbaria.idlab.ugent.be/inference/process_image/"
	if cfg.InferenceEndpoint != expected {
		t.Fatalf("InferenceEndpoint mismatch: got %q want %q", cfg.InferenceEndpoint, expected)
	}
	if cfg.ModelReference != "https://github.com/kymillev/demo-enrichment-service-image" {
		t.Fatalf("ModelReference mismatch: got %q", cfg.ModelReference)
	}
	if cfg.MASName != "plant-organ-annotator" {
		t.Fatalf("MASName mismatch: got %q", cfg.MASName)
	}
	if cfg.RequestTimeout != 60*time.Second {
		t.Fatalf("RequestTimeout mismatch: got %v want %v", cfg.RequestTimeout, 60*time.Second)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
}

func TestLoadConfigHonorsExplicitModel(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("MODEL_NAME", "leafonly")
	t.Setenv("HTTP_TIMEOUT_SECONDS", "10")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.ModelName != "leafonly" {
		t.Fatalf("ModelName mismatch: got %q want %q", cfg.ModelName, "leafonly")
	}
	if cfg.RequestTimeout != 10*time.Second {
		t.Fatalf("RequestTimeout mismatch: got %v want %v", cfg.RequestTimeout, 10*time.Second)
	}
}

func TestValidateRequiresConsumerTopic(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("KAFKA_CONSUMER_TOPIC", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if err := cfg.Validate(); err == nil {
		t.Fatal("Validate returned nil, want error for missing KAFKA_CONSUMER_TOPIC")
	}
}

func TestValidateRequiresMASID(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("MAS_ID", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if err := cfg.Validate(); err == nil {
		t.Fatal("Validate returned nil, want error for missing MAS_ID")
	}
}
