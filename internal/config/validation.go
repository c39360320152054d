package config

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
)

var machineNamePattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

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

// ValidateMachineName checks that value is a lowercase machine name.
func ValidateMachineName(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return ValidationError{Field: field, Value: value, Message: "is required"}
	}
	if !machineNamePattern.MatchString(value) {
		return ValidationError{
			Field:   field,
			Value:   value,
			Message: "must start with a letter and contain only lowercase letters, digits and underscores",
		}
	}
	return nil
}

// ValidateCoreConstraint checks that value is a valid version constraint
// such as "^10 || ^11".
func ValidateCoreConstraint(field, value string) error {
	if value == "" {
		return nil
	}
	if _, err := semver.NewConstraint(value); err != nil {
		return ValidationError{Field: field, Value: value, Message: fmt.Sprintf("is not a valid version constraint: %v", err)}
	}
	return nil
}

// ValidateSettings checks bundle names, method settings, type declarations
// and the core constraint. All problems are reported together.
func ValidateSettings(s Settings) error {
	var errs ValidationErrors

	if err := ValidateCoreConstraint("core", s.Core); err != nil {
		errs = append(errs, err.(ValidationError))
	}

	seen := make(map[string]bool)
	for i, b := range s.Bundles {
		field := fmt.Sprintf("bundles[%d]", i)
		if err := ValidateMachineName(field+".machineName", b.MachineName); err != nil {
			errs = append(errs, err.(ValidationError))
		} else if seen[b.MachineName] {
			errs.Add(field+".machineName", "is defined more than once", b.MachineName)
		}
		seen[b.MachineName] = true

		if b.IsProfile && b.ProfileName != "" {
			if err := ValidateMachineName(field+".profileName", b.ProfileName); err != nil {
				errs = append(errs, err.(ValidationError))
			}
		}
		for id, a := range b.Assignments {
			if a.Regex == "" {
				continue
			}
			if _, err := regexp.Compile(a.Regex); err != nil {
				errs.Add(fmt.Sprintf("%s.assignments.%s.regex", field, id), fmt.Sprintf("is not a valid regular expression: %v", err), a.Regex)
			}
		}
	}
	if s.DefaultBundle != "" && len(s.Bundles) > 0 && !seen[s.DefaultBundle] && s.DefaultBundle != "default" {
		errs.Add("defaultBundle", "does not name a defined bundle", s.DefaultBundle)
	}

	for i, t := range s.Types {
		field := fmt.Sprintf("types[%d]", i)
		if err := ValidateMachineName(field+".id", t.ID); err != nil {
			errs = append(errs, err.(ValidationError))
		}
		if strings.TrimSpace(t.Prefix) == "" {
			errs.Add(field+".prefix", "is required", t.Prefix)
		}
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}

// FormatValidationError creates a consistent validation error message
func FormatValidationError(entityType, entityName string, err error) error {
	if err == nil {
		return nil
	}

	if entityName != "" {
		return fmt.Errorf("validation failed for %s '%s': %w", entityType, entityName, err)
	}
	return fmt.Errorf("validation failed for %s: %w", entityType, err)
}
