package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchService_FindClosestEmail(t *testing.T) {
	service := NewMatchService()
	emails := []string{"alice@gmail.com", "bob@gmail.com", "carol@yahoo.com"}

	t.Run("exact match", func(t *testing.T) {
		email, ok := service.FindClosestEmail("bob@gmail.com", emails)
		assert.True(t, ok)
		assert.Equal(t, "bob@gmail.com", email)
	})

	t.Run("typo resolves to closest participant", func(t *testing.T) {
		email, ok := service.FindClosestEmail("alice@gmial.com", emails)
		assert.True(t, ok)
		assert.Equal(t, "alice@gmail.com", email)
	})

	t.Run("case and whitespace folded", func(t *testing.T) {
		email, ok := service.FindClosestEmail("  Carol@Yahoo.COM ", emails)
		assert.True(t, ok)
		assert.Equal(t, "carol@yahoo.com", email)
	})

	t.Run("no candidate clears cutoff", func(t *testing.T) {
		_, ok := service.FindClosestEmail("zzqqxx", emails)
		assert.False(t, ok)
	})

	t.Run("empty query", func(t *testing.T) {
		_, ok := service.FindClosestEmail("   ", emails)
		assert.False(t, ok)
	})

	t.Run("no participants", func(t *testing.T) {
		_, ok := service.FindClosestEmail("alice@gmail.com", nil)
		assert.False(t, ok)
	})
}
