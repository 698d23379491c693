package config

import (
	"testing"
)

func TestValidateAndSetDefaults(t *testing.T) {
	cfg := &Config{
		Project: Project{
			Root: "/test/root",
			Name: "test-project",
		},
		Parallelism: Parallelism{
			NumThreads: 4,
		},
		Verifier: Verifier{
			PollTimeoutSec: 0, // should be set to 10
		},
	}

	validator := NewValidator()
	err := validator.ValidateAndSetDefaults(cfg)
	if err != nil {
		t.Fatalf("ValidateAndSetDefaults failed: %v", err)
	}

	if cfg.Verifier.PollTimeoutSec != 10 {
		t.Errorf("PollTimeoutSec should default to 10, got %d", cfg.Verifier.PollTimeoutSec)
	}

	if cfg.Parallelism.NumThreads != 4 {
		t.Errorf("NumThreads should be left at its explicit value, got %d", cfg.Parallelism.NumThreads)
	}
}

func TestValidateAndSetDefaults_SerialIsPreserved(t *testing.T) {
	cfg := &Config{
		Project: Project{
			Root: "/test/root",
		},
		Parallelism: Parallelism{
			NumThreads: 0, // deliberate: serial extraction
		},
	}

	validator := NewValidator()
	if err := validator.ValidateAndSetDefaults(cfg); err != nil {
		t.Fatalf("ValidateAndSetDefaults failed: %v", err)
	}

	if cfg.Parallelism.NumThreads != 0 {
		t.Errorf("NumThreads == 0 must remain serial, got %d", cfg.Parallelism.NumThreads)
	}
}

func TestValidateProjectConfig(t *testing.T) {
	validator := NewValidator()

	err := validator.validateProjectConfig(&Project{
		Root: "/test/root",
		Name: "test-project",
	})
	if err != nil {
		t.Errorf("Expected no error for valid config, got %v", err)
	}

	err = validator.validateProjectConfig(&Project{
		Root: "",
		Name: "test-project",
	})
	if err == nil {
		t.Errorf("Expected error for empty root")
	}
}

func TestValidateParallelism(t *testing.T) {
	validator := NewValidator()

	if err := validator.validateParallelism(&Parallelism{NumThreads: 4}); err != nil {
		t.Errorf("Expected no error for valid config, got %v", err)
	}

	if err := validator.validateParallelism(&Parallelism{NumThreads: 0}); err != nil {
		t.Errorf("Expected no error for NumThreads = 0 (serial), got %v", err)
	}

	if err := validator.validateParallelism(&Parallelism{NumThreads: -1}); err == nil {
		t.Errorf("Expected error for negative NumThreads")
	}
}

func TestValidateVerifier(t *testing.T) {
	validator := NewValidator()

	if err := validator.validateVerifier(&Verifier{PollTimeoutSec: 10}); err != nil {
		t.Errorf("Expected no error for valid config, got %v", err)
	}

	if err := validator.validateVerifier(&Verifier{PollTimeoutSec: -1}); err == nil {
		t.Errorf("Expected error for negative PollTimeoutSec")
	}
}

func TestValidateConfig(t *testing.T) {
	cfg := &Config{
		Project: Project{
			Root: "/test/root",
			Name: "test-project",
		},
		Parallelism: Parallelism{NumThreads: 1},
	}

	err := ValidateConfig(cfg)
	if err != nil {
		t.Fatalf("ValidateConfig failed: %v", err)
	}

	invalidCfg := &Config{
		Project: Project{
			Root: "", // Invalid
		},
	}

	err = ValidateConfig(invalidCfg)
	if err == nil {
		t.Errorf("Expected error for invalid config")
	}
}

func TestSetSmartDefaults(t *testing.T) {
	cfg := &Config{
		Project: Project{
			Root: "/test/root",
		},
		Verifier: Verifier{
			PollTimeoutSec: 0, // Should be set
		},
	}

	validator := NewValidator()
	validator.setSmartDefaults(cfg)

	if cfg.Verifier.PollTimeoutSec == 0 {
		t.Errorf("PollTimeoutSec should have been set")
	}
}

func BenchmarkValidateAndSetDefaults(b *testing.B) {
	cfg := &Config{
		Project: Project{
			Root: "/test/root",
			Name: "test-project",
		},
		Parallelism: Parallelism{NumThreads: 4},
	}

	validator := NewValidator()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		testCfg := *cfg
		_ = validator.ValidateAndSetDefaults(&testCfg)
	}
}
