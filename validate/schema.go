// Package validate runs advisory checks on user input before a call. Nothing
// here blocks a request: results are warnings shown next to the response.
package validate

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

const NotJSONWarning = "json input is not valid JSON; it will be sent as a string"

// CheckJSONInput compares raw json input against an endpoint's schema.
// An empty raw input yields nothing. Invalid JSON yields NotJSONWarning and
// skips the schema. An invalid schema is reported as a single warning.
func CheckJSONInput(schema, raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	if !json.Valid([]byte(raw)) {
		return []string{NotJSONWarning}
	}
	if schema == "" {
		return nil
	}

	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(schema))
	if err != nil {
		return []string{fmt.Sprintf("endpoint schema is invalid: %v", err)}
	}

	result, err := s.Validate(gojsonschema.NewStringLoader(raw))
	if err != nil {
		return []string{fmt.Sprintf("schema check failed: %v", err)}
	}
	if result.Valid() {
		return nil
	}

	warnings := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		warnings = append(warnings, fmt.Sprintf("- %s", desc))
	}
	return warnings
}
