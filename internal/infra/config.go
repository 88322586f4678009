package infra

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config represents connector configuration loaded from environment variables.
type Config struct {
	AppEnv string
	Port   string

	KafkaConsumerHost  string
	KafkaConsumerTopic string
	KafkaConsumerGroup string
	KafkaProducerHost  string
	KafkaProducerTopic string

	RunningEndpoint string

	MASID   string
	MASName string

	InferenceEndpoint string
	ModelName         string
	ModelReference    string

	RequestTimeout   time.Duration
	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration
}

// LoadConfig loads configuration from environment variables and applies
// defaults where needed. Required settings are checked separately by
// Validate so the local runner can start from a partial environment.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		AppEnv:             getEnv("APP_ENV", "development"),
		Port:               getEnv("PORT", "8080"),
		KafkaConsumerHost:  os.Getenv("KAFKA_CONSUMER_HOST"),
		KafkaConsumerTopic: os.Getenv("KAFKA_CONSUMER_TOPIC"),
		KafkaConsumerGroup: os.Getenv("KAFKA_CONSUMER_GROUP"),
		KafkaProducerHost:  os.Getenv("KAFKA_PRODUCER_HOST"),
		KafkaProducerTopic: os.Getenv("KAFKA_PRODUCER_TOPIC"),
		RunningEndpoint:    os.Getenv("RUNNING_ENDPOINT"),
		MASID:              os.Getenv("MAS_ID"),
		MASName:            getEnv("MAS_NAME", "plant-organ-annotator"),
		InferenceEndpoint:  getEnv("INFERENCE_ENDPOINT", "https://herbaria.idlab.ugent.be/inference/process_image/"),
		ModelName:          getEnv("MODEL_NAME", "leafpriority"),
		ModelReference:     getEnv("MODEL_REFERENCE", "https://github.com/kymillev/demo-enrichment-service-image"),
		RequestTimeout:     time.Second * time.Duration(getEnvInt("HTTP_TIMEOUT_SECONDS", 60)),
		HTTPReadTimeout:    time.Second * time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SECONDS", 15)),
		HTTPWriteTimeout:   time.Second * time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SECONDS", 30)),
		HTTPIdleTimeout:    time.Second * time.Duration(getEnvInt("HTTP_IDLE_TIMEOUT_SECONDS", 60)),
	}

	return cfg, nil
}

// Validate enforces the settings the queue-driven daemon cannot run without.
func (c *Config) Validate() error {
	required := []struct {
		key   string
		value string
	}{
		{"KAFKA_CONSUMER_HOST", c.KafkaConsumerHost},
		{"KAFKA_CONSUMER_TOPIC", c.KafkaConsumerTopic},
		{"KAFKA_CONSUMER_GROUP", c.KafkaConsumerGroup},
		{"KAFKA_PRODUCER_HOST", c.KafkaProducerHost},
		{"KAFKA_PRODUCER_TOPIC", c.KafkaProducerTopic},
		{"RUNNING_ENDPOINT", c.RunningEndpoint},
		{"MAS_ID", c.MASID},
	}
	for _, r := range required {
		if r.value == "" {
			return fmt.Errorf("%s is required", r.key)
		}
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}
