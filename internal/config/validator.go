package config

import (
	"errors"
	"fmt"

	logerrors "github.com/standardbeagle/logram/internal/errors"
)

// Validator validates configuration and applies smart defaults.
type Validator struct{}

// NewValidator creates a new configuration validator.
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateAndSetDefaults validates configuration and applies smart defaults.
func (v *Validator) ValidateAndSetDefaults(cfg *Config) error {
	if err := v.validateProjectConfig(&cfg.Project); err != nil {
		return logerrors.NewConfigurationError("project", err)
	}

	if err := v.validateParallelism(&cfg.Parallelism); err != nil {
		return logerrors.NewConfigurationError("parallelism", err)
	}

	if err := v.validateVerifier(&cfg.Verifier); err != nil {
		return logerrors.NewConfigurationError("verifier", err)
	}

	v.setSmartDefaults(cfg)
	return nil
}

func (v *Validator) validateProjectConfig(project *Project) error {
	if project.Root == "" {
		return errors.New("project root cannot be empty")
	}
	return nil
}

func (v *Validator) validateParallelism(p *Parallelism) error {
	if p.NumThreads < 0 {
		return fmt.Errorf("NumThreads cannot be negative, got %d", p.NumThreads)
	}
	return nil
}

func (v *Validator) validateVerifier(ver *Verifier) error {
	if ver.PollTimeoutSec < 0 {
		return fmt.Errorf("PollTimeoutSec cannot be negative, got %d", ver.PollTimeoutSec)
	}
	return nil
}

// setSmartDefaults applies defaults that are safe to fill in without
// changing a user's explicit choice. NumThreads == 0 is a deliberate
// setting (serial extraction), never overwritten here.
func (v *Validator) setSmartDefaults(cfg *Config) {
	if cfg.Verifier.PollTimeoutSec == 0 {
		cfg.Verifier.PollTimeoutSec = 10
	}
}

// ValidateConfig is a convenience function for quick validation.
func ValidateConfig(cfg *Config) error {
	validator := NewValidator()
	return validator.ValidateAndSetDefaults(cfg)
}
