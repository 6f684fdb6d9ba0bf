package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRound(t *testing.T) {
	assert.Equal(t, 3.33, Round(3.333333))
	assert.Equal(t, 3.34, Round(3.335))
	assert.Equal(t, -3.34, Round(-3.335))
	assert.Equal(t, 10.0, Round(9.999999))
}

func TestRound4(t *testing.T) {
	assert.Equal(t, 0.06, Round4(0.0600001))
	assert.Equal(t, 0.0667, Round4(0.06666))
}

func TestDistributeCents(t *testing.T) {
	tests := []struct {
		name       string
		totalCents int
		n          int
		expected   []int
	}{
		{"even split", 9, 3, []int{3, 3, 3}},
		{"remainder to first recipients", 7, 3, []int{3, 2, 2}},
		{"single recipient", 5, 1, []int{5}},
		{"zero total", 0, 4, []int{0, 0, 0, 0}},
		{"fewer cents than recipients", 3, 5, []int{1, 1, 1, 0, 0}},
		{"negative total", -3, 2, []int{-2, -1}},
		{"negative even", -6, 3, []int{-2, -2, -2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := DistributeCents(tt.totalCents, tt.n)
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestDistributeCents_Properties(t *testing.T) {
	totals := []int{-101, -7, -1, 0, 1, 2, 33, 100, 997}
	counts := []int{1, 2, 3, 7, 10}

	for _, total := range totals {
		for _, n := range counts {
			result, err := DistributeCents(total, n)
			assert.NoError(t, err)
			assert.Len(t, result, n)

			sum, min, max := 0, result[0], result[0]
			for _, v := range result {
				sum += v
				if v < min {
					min = v
				}
				if v > max {
					max = v
				}
			}
			assert.Equal(t, total, sum, "sum must be exact for total=%d n=%d", total, n)
			assert.LessOrEqual(t, max-min, 1, "spread must be at most one cent for total=%d n=%d", total, n)
		}
	}
}

func TestDistributeCents_InvalidCount(t *testing.T) {
	_, err := DistributeCents(10, 0)
	assert.Error(t, err)

	_, err = DistributeCents(10, -2)
	assert.Error(t, err)
}

func TestCentsConversion(t *testing.T) {
	assert.Equal(t, 1234, ToCents(12.34))
	assert.Equal(t, -3, ToCents(-0.03))
	assert.Equal(t, 12.34, FromCents(1234))
}
