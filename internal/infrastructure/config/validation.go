package config

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator checks config structs and reports fields by their config key.
type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New()

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("mapstructure"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	v.RegisterStructValidation(validateHost, HostConfig{})
	v.RegisterStructValidation(validateDatabase, DatabaseConfig{})

	return &Validator{validate: v}
}

// validateHost rejects deadlines the poll loop could never observe in time.
func validateHost(sl validator.StructLevel) {
	host := sl.Current().Interface().(HostConfig)
	if host.TurnDeadline < 0 {
		sl.ReportError(host.TurnDeadline, "turn_deadline", "TurnDeadline", "min", "0")
		return
	}
	if host.TurnDeadline > 0 && host.TurnDeadline < host.PollInterval {
		sl.ReportError(host.TurnDeadline, "turn_deadline", "TurnDeadline", "gtefield", "poll_interval")
	}
}

// validateDatabase needs a file for sqlite and a server for postgres
// unless a URL is given.
func validateDatabase(sl validator.StructLevel) {
	db := sl.Current().Interface().(DatabaseConfig)
	if db.URL != "" {
		return
	}
	switch db.Type {
	case "sqlite":
		if db.Path == "" {
			sl.ReportError(db.Path, "path", "Path", "required_for_sqlite", "")
		}
	case "postgres":
		if db.Host == "" {
			sl.ReportError(db.Host, "host", "Host", "required_for_postgres", "")
		}
	}
}

func (v *Validator) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		return v.formatValidationError(err)
	}
	return nil
}

func (v *Validator) formatValidationError(err error) error {
	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	messages := make([]string, 0, len(validationErrs))
	for _, e := range validationErrs {
		// Namespace is "Config.host.turn_deadline"; drop the root type.
		key := e.Namespace()
		if i := strings.Index(key, "."); i >= 0 {
			key = key[i+1:]
		}
		rule := e.Tag()
		if e.Param() != "" {
			rule += "=" + e.Param()
		}
		messages = append(messages, fmt.Sprintf("%s: failed %s (value: '%v')", key, rule, e.Value()))
	}
	return fmt.Errorf("validation failed:\n  %s", strings.Join(messages, "\n  "))
}

// ValidateConfig validates the entire configuration
func ValidateConfig(cfg *Config) error {
	return NewValidator().Validate(cfg)
}
