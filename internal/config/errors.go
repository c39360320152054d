package config

import (
	"fmt"
	"sort"
	"strings"
)

// Error categories.
const (
	CategorySettings  = "settings"
	CategoryConfig    = "config"
	CategoryExtension = "extension"
)

// Error types.
const (
	ErrorTypeParse      = "parse"
	ErrorTypeIO         = "io"
	ErrorTypeValidation = "validation"
)

// ConfigurationError describes a problem with one file read by featurepack.
type ConfigurationError struct {
	FilePath    string   `json:"filePath"`
	FileName    string   `json:"fileName"`
	Category    string   `json:"category"`  // settings, config or extension
	ErrorType   string   `json:"errorType"` // parse, io or validation
	Message     string   `json:"message"`
	Details     string   `json:"details,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
}

// Error implements the error interface
func (ce ConfigurationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", ce.Category, ce.FileName, ce.Message)
}

// DetailedError returns a multi-line message with all context.
func (ce ConfigurationError) DetailedError() string {
	var parts []string
	parts = append(parts, fmt.Sprintf("Configuration error in %s", ce.FileName))
	parts = append(parts, fmt.Sprintf("  File: %s", ce.FilePath))
	parts = append(parts, fmt.Sprintf("  Category: %s", ce.Category))
	parts = append(parts, fmt.Sprintf("  Type: %s", ce.ErrorType))
	parts = append(parts, fmt.Sprintf("  Error: %s", ce.Message))

	if ce.Details != "" {
		parts = append(parts, fmt.Sprintf("  Details: %s", ce.Details))
	}
	if len(ce.Suggestions) > 0 {
		parts = append(parts, "  Suggestions:")
		for _, suggestion := range ce.Suggestions {
			parts = append(parts, fmt.Sprintf("    - %s", suggestion))
		}
	}
	return strings.Join(parts, "\n")
}

// ConfigurationErrorCollection gathers the problems found while loading many
// files so that loading can continue past a bad one.
type ConfigurationErrorCollection struct {
	Errors []ConfigurationError `json:"errors"`
}

// Error implements the error interface for the collection
func (cec ConfigurationErrorCollection) Error() string {
	if len(cec.Errors) == 0 {
		return "no configuration errors"
	}
	if len(cec.Errors) == 1 {
		return cec.Errors[0].Error()
	}
	return fmt.Sprintf("%d configuration errors: %s (and %d more)",
		len(cec.Errors), cec.Errors[0].Error(), len(cec.Errors)-1)
}

// HasErrors returns true if there are any errors in the collection
func (cec *ConfigurationErrorCollection) HasErrors() bool {
	return len(cec.Errors) > 0
}

// Count returns the number of errors in the collection
func (cec *ConfigurationErrorCollection) Count() int {
	return len(cec.Errors)
}

// Add adds a new error to the collection
func (cec *ConfigurationErrorCollection) Add(err ConfigurationError) {
	cec.Errors = append(cec.Errors, err)
}

// GetErrorsByCategory returns errors filtered by category
func (cec *ConfigurationErrorCollection) GetErrorsByCategory(category string) []ConfigurationError {
	var filtered []ConfigurationError
	for _, err := range cec.Errors {
		if err.Category == category {
			filtered = append(filtered, err)
		}
	}
	return filtered
}

// GetSummary returns the errors grouped by category, sorted by file name.
func (cec *ConfigurationErrorCollection) GetSummary() string {
	if len(cec.Errors) == 0 {
		return "No configuration errors"
	}

	groups := make(map[string][]ConfigurationError)
	for _, err := range cec.Errors {
		groups[err.Category] = append(groups[err.Category], err)
	}
	categories := make([]string, 0, len(groups))
	for category := range groups {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	parts := []string{fmt.Sprintf("Configuration error summary (%d total):", len(cec.Errors))}
	for _, category := range categories {
		errs := groups[category]
		sort.Slice(errs, func(i, j int) bool { return errs[i].FileName < errs[j].FileName })
		parts = append(parts, fmt.Sprintf("%s: %d errors", category, len(errs)))
		for _, err := range errs {
			parts = append(parts, fmt.Sprintf("  - %s: %s", err.FileName, err.Message))
		}
	}
	return strings.Join(parts, "\n")
}

// NewConfigurationError creates a new configuration error with basic information
func NewConfigurationError(filePath, fileName, category, errorType, message string) ConfigurationError {
	return ConfigurationError{
		FilePath:  filePath,
		FileName:  fileName,
		Category:  category,
		ErrorType: errorType,
		Message:   message,
	}
}

// NewConfigurationErrorWithDetails creates a new configuration error with additional details
func NewConfigurationErrorWithDetails(filePath, fileName, category, errorType, message, details string, suggestions []string) ConfigurationError {
	return ConfigurationError{
		FilePath:    filePath,
		FileName:    fileName,
		Category:    category,
		ErrorType:   errorType,
		Message:     message,
		Details:     details,
		Suggestions: suggestions,
	}
}

// NewConfigurationErrorCollection creates a new empty error collection
func NewConfigurationErrorCollection() *ConfigurationErrorCollection {
	return &ConfigurationErrorCollection{
		Errors: make([]ConfigurationError, 0),
	}
}
