package services

import (
	"fmt"
	"math"

	"github.com/fadhlanhapp/billsplit-backend/models"
	"github.com/fadhlanhapp/billsplit-backend/utils"
)

// AllocationService recomputes every participant's shares from a
// percentage map. Dividing is a full replace, not a merge: all existing
// shares are cleared before the new percentages are applied.
type AllocationService struct {
	store BillStore
}

// NewAllocationService creates a new allocation service
func NewAllocationService(store BillStore) *AllocationService {
	return &AllocationService{store: store}
}

// DivideByPercentages splits every item across the named participants.
// Percentages must sum to 100 within 0.01 and every email must already
// be a bill participant; otherwise the bill is left unmodified.
//
// Per-item rounding (half away from zero, 2dp) can leave the sum of all
// totals up to 0.01 * item_count away from the bill's nett amount. This
// engine does not correct that drift; ReconcileService.ReconcileTotals
// does, on the conversational-agent path only.
func (s *AllocationService) DivideByPercentages(bill *models.Bill, assignments []utils.PercentageAssignment) error {
	if len(assignments) == 0 {
		return utils.NewInvalidAllocationError("No percentage assignments given")
	}

	var sum float64
	for _, a := range assignments {
		if bill.FindParticipant(a.Email) == nil {
			return utils.NewInvalidAllocationError(fmt.Sprintf("Unknown participant %q", a.Email))
		}
		sum += a.Percentage
	}
	if math.Abs(sum-100) > utils.MoneyTolerance {
		return utils.NewInvalidAllocationError("Percentages must sum to 100%")
	}

	// Full replace: participants not named in the map end up with
	// nothing, including their previous shares
	for i := range bill.Participants {
		bill.Participants[i].ItemsPaid = nil
		bill.Participants[i].TotalPaid = 0
	}

	for _, item := range bill.Items {
		itemValue := item.NettPrice

		for _, a := range assignments {
			participant := bill.FindParticipant(a.Email)
			share := models.ItemShare{
				ID:            item.ID,
				Value:         utils.Round(itemValue * (a.Percentage / 100)),
				Percentage:    a.Percentage,
				SplitType:     utils.SplitTypePercentage,
				OriginalPrice: itemValue,
			}
			participant.ItemsPaid = append(participant.ItemsPaid, share)
			participant.TotalPaid += share.Value
		}
	}

	for i := range bill.Participants {
		bill.Participants[i].TotalPaid = utils.Round(bill.Participants[i].TotalPaid)
	}

	bill.SplitMethod = utils.SplitMethodDivideBased

	return s.store.StoreBill(bill)
}

// SplitEqually divides the bill across the first numWays participants in
// bill order. numWays of 0 means every participant. The per-head
// percentage is passed through unrounded (100/3 stays 33.333...), so the
// rounding drift lands in DivideByPercentages the same way it does for
// hand-written percentage maps.
func (s *AllocationService) SplitEqually(bill *models.Bill, numWays int) error {
	participantCount := len(bill.Participants)
	if numWays == 0 {
		numWays = participantCount
	}
	if numWays < 0 {
		return utils.NewInvalidAllocationError("Split count must be positive")
	}
	if numWays > participantCount {
		return utils.NewInvalidAllocationError(fmt.Sprintf(
			"Cannot split between %d people. Only %d participants available", numWays, participantCount))
	}

	basePercentage := 100.0 / float64(numWays)

	assignments := make([]utils.PercentageAssignment, 0, numWays)
	for _, participant := range bill.Participants[:numWays] {
		assignments = append(assignments, utils.PercentageAssignment{
			Email:      participant.Email,
			Percentage: basePercentage,
		})
	}

	return s.DivideByPercentages(bill, assignments)
}
