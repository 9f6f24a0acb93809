package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.ServerPort != "8090" {
		t.Errorf("expected default port 8090, got %q", cfg.ServerPort)
	}
	if len(cfg.KafkaBrokers) != 1 || cfg.KafkaBrokers[0] != "localhost:9092" {
		t.Errorf("unexpected default brokers: %v", cfg.KafkaBrokers)
	}
	if cfg.KafkaEnabled {
		t.Error("kafka must default to disabled")
	}
	if cfg.AnalysisMaxWorkers != 4 {
		t.Errorf("expected 4 default workers, got %d", cfg.AnalysisMaxWorkers)
	}
}

func TestKafkaBrokersCommaSeparated(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", "broker-1:9092, broker-2:9092,broker-3:9092")

	cfg := Load()
	if len(cfg.KafkaBrokers) != 3 {
		t.Fatalf("expected 3 brokers, got %d: %v", len(cfg.KafkaBrokers), cfg.KafkaBrokers)
	}
	expected := []string{"broker-1:9092", "broker-2:9092", "broker-3:9092"}
	for i, broker := range expected {
		if cfg.KafkaBrokers[i] != broker {
			t.Errorf("broker %d: expected %q, got %q", i, broker, cfg.KafkaBrokers[i])
		}
	}
}

func TestKafkaBrokersBlankValue(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", " , ")

	cfg := Load()
	if len(cfg.KafkaBrokers) != 1 || cfg.KafkaBrokers[0] != "localhost:9092" {
		t.Errorf("blank broker list must fall back to defaults, got %v", cfg.KafkaBrokers)
	}
}
