package services

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fadhlanhapp/billsplit-backend/models"
	"github.com/fadhlanhapp/billsplit-backend/utils"
)

func TestAllocationService_DivideByPercentages(t *testing.T) {
	bill := threeItemBill()
	store := newMemStore(bill)
	service := NewAllocationService(store)

	err := service.DivideByPercentages(bill, []utils.PercentageAssignment{
		{Email: "alice@gmail.com", Percentage: 60},
		{Email: "bob@gmail.com", Percentage: 40},
	})

	assert.NoError(t, err)
	assert.Equal(t, utils.SplitMethodDivideBased, bill.SplitMethod)
	assert.Equal(t, 1, store.saves)

	alice := bill.FindParticipant("alice@gmail.com")
	bob := bill.FindParticipant("bob@gmail.com")
	carol := bill.FindParticipant("carol@gmail.com")

	// One share per item, in item order
	assert.Len(t, alice.ItemsPaid, 3)
	assert.Len(t, bob.ItemsPaid, 3)
	assert.Empty(t, carol.ItemsPaid)

	assert.Equal(t, 18.00, alice.TotalPaid)
	assert.Equal(t, 12.00, bob.TotalPaid)
	assert.Equal(t, 0.00, carol.TotalPaid)

	assert.Equal(t, models.ItemShare{
		ID: 1, Value: 6.00, Percentage: 60,
		SplitType: utils.SplitTypePercentage, OriginalPrice: 10.00,
	}, alice.ItemsPaid[0])
}

func TestAllocationService_DivideByPercentages_FullReplace(t *testing.T) {
	bill := threeItemBill()
	// Carol starts with stale shares that must be cleared even though
	// she is not in the new mapping
	carol := bill.FindParticipant("carol@gmail.com")
	carol.ItemsPaid = []models.ItemShare{{ID: 2, Value: 10.00, Percentage: 100}}
	carol.TotalPaid = 10.00

	service := NewAllocationService(newMemStore(bill))
	err := service.DivideByPercentages(bill, []utils.PercentageAssignment{
		{Email: "alice@gmail.com", Percentage: 100},
	})

	assert.NoError(t, err)
	assert.Empty(t, carol.ItemsPaid)
	assert.Equal(t, 0.00, carol.TotalPaid)
	assert.Equal(t, 30.00, bill.FindParticipant("alice@gmail.com").TotalPaid)
}

func TestAllocationService_DivideByPercentages_InvalidSum(t *testing.T) {
	bill := threeItemBill()
	store := newMemStore(bill)
	service := NewAllocationService(store)

	// Seed existing allocation to verify the bill is left untouched
	assert.NoError(t, service.SplitEqually(bill, 0))
	savedBefore := store.saves
	totalsBefore := []float64{
		bill.Participants[0].TotalPaid,
		bill.Participants[1].TotalPaid,
		bill.Participants[2].TotalPaid,
	}

	err := service.DivideByPercentages(bill, []utils.PercentageAssignment{
		{Email: "alice@gmail.com", Percentage: 60},
		{Email: "bob@gmail.com", Percentage: 30},
	})

	assert.Error(t, err)
	assert.Equal(t, savedBefore, store.saves)
	for i, total := range totalsBefore {
		assert.Equal(t, total, bill.Participants[i].TotalPaid)
	}
}

func TestAllocationService_DivideByPercentages_SumTolerance(t *testing.T) {
	bill := threeItemBill()
	service := NewAllocationService(newMemStore(bill))

	// 33.33 * 3 = 99.99, within the 0.01 tolerance
	err := service.DivideByPercentages(bill, []utils.PercentageAssignment{
		{Email: "alice@gmail.com", Percentage: 33.33},
		{Email: "bob@gmail.com", Percentage: 33.33},
		{Email: "carol@gmail.com", Percentage: 33.33},
	})
	assert.NoError(t, err)
}

func TestAllocationService_DivideByPercentages_UnknownParticipant(t *testing.T) {
	bill := threeItemBill()
	service := NewAllocationService(newMemStore(bill))

	err := service.DivideByPercentages(bill, []utils.PercentageAssignment{
		{Email: "mallory@gmail.com", Percentage: 100},
	})
	assert.Error(t, err)
}

func TestAllocationService_RoundingDriftBound(t *testing.T) {
	bill := threeItemBill()
	service := NewAllocationService(newMemStore(bill))

	// Repeating decimal percentages leave per-item rounding drift that
	// this engine deliberately does not correct
	third := 100.0 / 3
	err := service.DivideByPercentages(bill, []utils.PercentageAssignment{
		{Email: "alice@gmail.com", Percentage: third},
		{Email: "bob@gmail.com", Percentage: third},
		{Email: "carol@gmail.com", Percentage: third},
	})

	assert.NoError(t, err)
	drift := math.Abs(bill.ParticipantsTotal() - bill.NettAmount)
	assert.LessOrEqual(t, drift, 0.01*float64(len(bill.Items)))
	// For this bill the drift is concretely 3 cents (3.33 * 9)
	assert.InDelta(t, 29.97, bill.ParticipantsTotal(), 1e-9)
}

func TestAllocationService_SplitEqually(t *testing.T) {
	bill := threeItemBill()
	service := NewAllocationService(newMemStore(bill))

	err := service.SplitEqually(bill, 2)
	assert.NoError(t, err)

	// Only the first two participants in bill order are included
	assert.Equal(t, 15.00, bill.FindParticipant("alice@gmail.com").TotalPaid)
	assert.Equal(t, 15.00, bill.FindParticipant("bob@gmail.com").TotalPaid)
	assert.Equal(t, 0.00, bill.FindParticipant("carol@gmail.com").TotalPaid)
}

func TestAllocationService_SplitEqually_DefaultsToAllParticipants(t *testing.T) {
	bill := threeItemBill()
	service := NewAllocationService(newMemStore(bill))

	err := service.SplitEqually(bill, 0)
	assert.NoError(t, err)

	for _, p := range bill.Participants {
		assert.Len(t, p.ItemsPaid, 3)
		// 100/3 is passed through unrounded, so each share is 3.33
		assert.Equal(t, 9.99, p.TotalPaid)
	}
}

func TestAllocationService_SplitEqually_InvalidCount(t *testing.T) {
	bill := threeItemBill()
	service := NewAllocationService(newMemStore(bill))

	assert.Error(t, service.SplitEqually(bill, 4))
	assert.Error(t, service.SplitEqually(bill, -1))
}

func TestAllocationService_SplitEqually_Idempotent(t *testing.T) {
	first := threeItemBill()
	service := NewAllocationService(newMemStore(first))

	assert.NoError(t, service.SplitEqually(first, 3))
	snapshot := make([]models.Participant, len(first.Participants))
	copy(snapshot, first.Participants)

	assert.NoError(t, service.SplitEqually(first, 3))
	assert.Equal(t, snapshot, first.Participants)
}

func TestAllocationService_SaveFailureSurfaces(t *testing.T) {
	bill := threeItemBill()
	store := newMemStore(bill)
	store.failSave = true
	service := NewAllocationService(store)

	err := service.SplitEqually(bill, 0)
	assert.Error(t, err)
}
