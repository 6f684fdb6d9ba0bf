package services

import (
	"github.com/fadhlanhapp/billsplit-backend/models"
	"github.com/fadhlanhapp/billsplit-backend/utils"
)

// TransferService moves previously-allocated item shares between
// participants without altering the total money owed bill-wide.
type TransferService struct {
	store   BillStore
	matcher *MatchService
}

// NewTransferService creates a new transfer service
func NewTransferService(store BillStore, matcher *MatchService) *TransferService {
	return &TransferService{store: store, matcher: matcher}
}

// MoveItems moves the shares for the given item ids from the source
// participant to the destination participant. Both emails are resolved
// with fuzzy matching before anything is touched; a resolution failure
// aborts the whole call.
//
// Moves are applied id by id. If an id is missing from the source's
// shares, the call fails with that id but earlier moves in the same call
// stay applied and persisted — there is no rollback. Callers must treat
// a failed call as possibly partially applied and re-query state.
func (s *TransferService) MoveItems(bill *models.Bill, sourceQuery, destQuery string, itemIDs []int) (string, string, error) {
	emails := bill.ParticipantEmails()

	sourceEmail, ok := s.matcher.FindClosestEmail(sourceQuery, emails)
	if !ok {
		return "", "", utils.NewAmbiguousParticipantError(sourceQuery)
	}
	destEmail, ok := s.matcher.FindClosestEmail(destQuery, emails)
	if !ok {
		return sourceEmail, "", utils.NewAmbiguousParticipantError(destQuery)
	}

	source := bill.FindParticipant(sourceEmail)
	dest := bill.FindParticipant(destEmail)

	moved := 0
	for _, itemID := range itemIDs {
		shareIdx := -1
		for i, share := range source.ItemsPaid {
			if share.ID == itemID {
				shareIdx = i
				break
			}
		}
		if shareIdx < 0 {
			if moved > 0 {
				s.roundTotals(source, dest)
				if err := s.store.StoreBill(bill); err != nil {
					return sourceEmail, destEmail, err
				}
			}
			return sourceEmail, destEmail, utils.NewItemNotFoundError(itemID, sourceEmail)
		}

		share := source.ItemsPaid[shareIdx]
		source.ItemsPaid = append(source.ItemsPaid[:shareIdx], source.ItemsPaid[shareIdx+1:]...)

		// Consolidate if the destination already holds this item
		merged := false
		for i := range dest.ItemsPaid {
			if dest.ItemsPaid[i].ID == itemID {
				dest.ItemsPaid[i].Value = utils.Round(dest.ItemsPaid[i].Value + share.Value)
				dest.ItemsPaid[i].Percentage += share.Percentage
				merged = true
				break
			}
		}
		if !merged {
			dest.ItemsPaid = append(dest.ItemsPaid, share)
		}

		source.TotalPaid -= share.Value
		dest.TotalPaid += share.Value
		moved++
	}

	s.roundTotals(source, dest)
	if err := s.store.StoreBill(bill); err != nil {
		return sourceEmail, destEmail, err
	}
	return sourceEmail, destEmail, nil
}

func (s *TransferService) roundTotals(participants ...*models.Participant) {
	for _, p := range participants {
		p.TotalPaid = utils.Round(p.TotalPaid)
	}
}
