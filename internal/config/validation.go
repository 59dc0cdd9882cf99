package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"artemisctl/internal/broker"

	"github.com/Masterminds/semver/v3"
)

// ValidationError represents a validation error with context
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

// Error implements the error interface
func (ve ValidationError) Error() string {
	if ve.Field == "" {
		return ve.Message
	}
	return fmt.Sprintf("field '%s': %s", ve.Field, ve.Message)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for multiple validation errors
func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "no validation errors"
	}
	if len(ve) == 1 {
		return ve[0].Error()
	}

	var messages []string
	for _, err := range ve {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(messages, "; "))
}

// HasErrors returns true if there are any validation errors
func (ve ValidationErrors) HasErrors() bool {
	return len(ve) > 0
}

// Add adds a new validation error
func (ve *ValidationErrors) Add(field, message string, value ...interface{}) {
	var val interface{}
	if len(value) > 0 {
		val = value[0]
	}
	*ve = append(*ve, ValidationError{
		Field:   field,
		Value:   val,
		Message: message,
	})
}

// Validate checks cfg and returns every problem found, or nil.
func (cfg Config) Validate() error {
	var errs ValidationErrors

	if strings.TrimSpace(cfg.Version) == "" {
		errs.Add("version", "is required")
	} else if _, err := semver.StrictNewVersion(cfg.Version); err != nil {
		errs.Add("version", fmt.Sprintf("must be a release version like %s: %v", DefaultVersion, err), cfg.Version)
	}

	requiredPaths := []struct {
		field string
		value string
	}{
		{"installDir", cfg.InstallDir},
		{"brokerRoot", cfg.BrokerRoot},
		{"brokerConfig", cfg.BrokerConfig},
	}
	for _, p := range requiredPaths {
		if strings.TrimSpace(p.value) == "" {
			errs.Add(p.field, "is required")
		}
	}

	switch name := cfg.BrokerName; {
	case strings.TrimSpace(name) == "":
		errs.Add("brokerName", "is required")
	case name == "." || name == ".." || strings.ContainsAny(name, `/\`) || filepath.Base(name) != name:
		errs.Add("brokerName", "must be a single directory name", name)
	}

	if cfg.DownloadTimeout <= 0 {
		errs.Add("downloadTimeout", "must be positive", cfg.DownloadTimeout)
	}

	if _, err := broker.ParseURLTemplate(cfg.ArchiveURLTemplate); err != nil {
		errs.Add("archiveURLTemplate", err.Error(), cfg.ArchiveURLTemplate)
	} else if cfg.Origin == "" && (cfg.ArchiveURLTemplate == "" || cfg.ArchiveURLTemplate == broker.DefaultURLTemplate) {
		errs.Add("origin", "is required with the default archive URL template")
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}
