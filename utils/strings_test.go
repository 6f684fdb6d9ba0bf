package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePercentages(t *testing.T) {
	assignments, err := ParsePercentages("alice@gmail.com:50%,bob@gmail.com:50%")
	assert.NoError(t, err)
	assert.Equal(t, []PercentageAssignment{
		{Email: "alice@gmail.com", Percentage: 50},
		{Email: "bob@gmail.com", Percentage: 50},
	}, assignments)
}

func TestParsePercentages_WhitespaceAndCase(t *testing.T) {
	assignments, err := ParsePercentages(" Alice@Gmail.com : 33.5% , bob@gmail.com:66.5% ")
	assert.NoError(t, err)
	assert.Equal(t, "alice@gmail.com", assignments[0].Email)
	assert.Equal(t, 33.5, assignments[0].Percentage)
	assert.Equal(t, 66.5, assignments[1].Percentage)
}

func TestParsePercentages_DecimalValues(t *testing.T) {
	assignments, err := ParsePercentages("a@x.com:33.333333333333336%,b@x.com:33.333333333333336%,c@x.com:33.333333333333336%")
	assert.NoError(t, err)
	assert.Len(t, assignments, 3)
	assert.InDelta(t, 33.3333333, assignments[0].Percentage, 0.0001)
}

func TestParsePercentages_Invalid(t *testing.T) {
	cases := []string{
		"",
		"alice@gmail.com",
		"alice@gmail.com:abc%",
		"alice@gmail.com:50%,alice@gmail.com:50%",
	}
	for _, input := range cases {
		_, err := ParsePercentages(input)
		assert.Error(t, err, "input %q should fail", input)
	}
}

func TestCleanJSONResponse(t *testing.T) {
	assert.Equal(t, `{"a":1}`, CleanJSONResponse("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, CleanJSONResponse("```\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, CleanJSONResponse(`{"a":1}`))
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "alice@gmail.com", NormalizeEmail("  Alice@Gmail.COM "))
	assert.Equal(t, []string{"a@x.com", "b@x.com"}, NormalizeEmails([]string{"A@x.com", " b@X.com"}))
}
