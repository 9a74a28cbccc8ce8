// validate.go - settings validation
package conf

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ValidationError represents a collection of validation errors.
type ValidationError struct {
	Errors []string
}

func (ve ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", strings.Join(ve.Errors, "; "))
}

// ValidateSettings validates the entire Settings struct.
func ValidateSettings(settings *Settings) error {
	ve := ValidationError{}

	if err := validateDatabaseSettings(&settings.Database); err != nil {
		ve.Errors = append(ve.Errors, err.Error())
	}
	if err := validateHTTPSettings(&settings.HTTP); err != nil {
		ve.Errors = append(ve.Errors, err.Error())
	}
	if err := validateUploadSettings(&settings.Uploads); err != nil {
		ve.Errors = append(ve.Errors, err.Error())
	}

	if len(ve.Errors) > 0 {
		return ve
	}
	return nil
}

func validateDatabaseSettings(db *DatabaseSettings) error {
	if db.SQLite.Enabled && db.MySQL.Enabled {
		return errors.New("only one database backend may be enabled at a time")
	}
	if !db.SQLite.Enabled && !db.MySQL.Enabled {
		return errors.New("either the SQLite or MySQL database backend must be enabled")
	}
	if db.SQLite.Enabled && db.SQLite.Path == "" {
		return errors.New("SQLite database path must not be empty")
	}
	if db.MySQL.Enabled {
		if db.MySQL.Host == "" || db.MySQL.Database == "" || db.MySQL.Username == "" {
			return errors.New("MySQL host, database and username must not be empty")
		}
		if _, err := strconv.Atoi(db.MySQL.Port); err != nil {
			return fmt.Errorf("invalid MySQL port: %s", db.MySQL.Port)
		}
	}
	return nil
}

func validateHTTPSettings(http *HTTPSettings) error {
	if http.Address == "" {
		return errors.New("HTTP listen address must not be empty")
	}
	return nil
}

func validateUploadSettings(uploads *UploadSettings) error {
	if uploads.Path == "" {
		return errors.New("upload path must not be empty")
	}
	if uploads.MaxSize <= 0 {
		return errors.New("upload max size must be positive")
	}
	if len(uploads.AllowedTypes) == 0 {
		return errors.New("at least one allowed upload file type is required")
	}
	for _, ext := range uploads.AllowedTypes {
		if ext == "" || strings.ContainsAny(ext, "./\\") {
			return fmt.Errorf("invalid allowed file type %q, use a bare extension like \"jpg\"", ext)
		}
	}
	return nil
}
