// internal/api/validation.go
package api

import (
	"regexp"

	"github.com/xeipuuv/gojsonschema"
)

// matchRequestSchema guards the match endpoint: both profile objects must
// be present; their inner fields stay loose because matchers degrade
// gracefully on missing attributes.
const matchRequestSchema = `{
	"type": "object",
	"required": ["startup", "investor"],
	"properties": {
		"startup": {"type": "object"},
		"investor": {"type": "object"},
		"options": {
			"type": "object",
			"properties": {
				"weights": {
					"type": "object",
					"additionalProperties": {"type": "number"}
				}
			}
		}
	}
}`

var compiledMatchSchema = gojsonschema.NewStringLoader(matchRequestSchema)

// validateMatchRequest checks the raw request body against the schema and
// returns human-readable field errors.
func validateMatchRequest(body []byte) []string {
	result, err := gojsonschema.Validate(compiledMatchSchema, gojsonschema.NewBytesLoader(body))
	if err != nil {
		return []string{"invalid JSON body"}
	}
	if result.Valid() {
		return nil
	}

	details := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		details = append(details, desc.String())
	}
	return details
}

// suspiciousPatterns flag markup that has no business inside a pitch.
var suspiciousPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)<script\b`),
	regexp.MustCompile(`(?i)javascript:`),
	regexp.MustCompile(`(?i)on\w+\s*=`),
}

// containsSuspiciousContent scans a raw body for script injection markers.
func containsSuspiciousContent(body []byte) bool {
	for _, pattern := range suspiciousPatterns {
		if pattern.Match(body) {
			return true
		}
	}
	return false
}
