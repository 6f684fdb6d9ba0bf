package utils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// NormalizeEmail lowercases and trims an email for storage consistency
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizeEmails lowercases a slice of emails
func NormalizeEmails(emails []string) []string {
	normalized := make([]string, len(emails))
	for i, email := range emails {
		normalized[i] = NormalizeEmail(email)
	}
	return normalized
}

// PercentageAssignment is one email:percentage pair from the wire format,
// in input order.
type PercentageAssignment struct {
	Email      string
	Percentage float64
}

// ParsePercentages parses the "email1:XX%,email2:YY%" wire format.
// Whitespace is ignored; percentage values are decimal numbers followed
// by a literal '%' (the '%' itself is optional on parse).
func ParsePercentages(percentageStr string) ([]PercentageAssignment, error) {
	cleaned := strings.ReplaceAll(percentageStr, " ", "")
	if cleaned == "" {
		return nil, NewValidationError("Percentage string cannot be empty")
	}

	assignments := strings.Split(cleaned, ",")
	result := make([]PercentageAssignment, 0, len(assignments))
	seen := make(map[string]bool)

	for _, assignment := range assignments {
		parts := strings.SplitN(assignment, ":", 2)
		if len(parts) != 2 {
			return nil, NewValidationError(fmt.Sprintf("Invalid percentage format %q. Expected format: 'email:XX%%,email:YY%%'", assignment))
		}

		email := NormalizeEmail(parts[0])
		value, err := strconv.ParseFloat(strings.TrimSuffix(parts[1], "%"), 64)
		if err != nil {
			return nil, NewValidationError(fmt.Sprintf("Invalid percentage value %q. Expected format: 'email:XX%%,email:YY%%'", parts[1]))
		}

		if seen[email] {
			return nil, NewValidationError(fmt.Sprintf("Duplicate email %q in percentage string", email))
		}
		seen[email] = true

		result = append(result, PercentageAssignment{Email: email, Percentage: value})
	}

	return result, nil
}

// CleanJSONResponse strips markdown code fences that language models wrap
// around JSON output.
func CleanJSONResponse(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```") {
		text = regexp.MustCompile("(?i)^```(?:json)?\\s*").ReplaceAllString(text, "")
		text = regexp.MustCompile("\\s*```$").ReplaceAllString(text, "")
	}
	return strings.TrimSpace(text)
}
