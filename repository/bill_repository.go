// repository/bill_repository.go
package repository

import (
	"database/sql"
	"fmt"

	"github.com/fadhlanhapp/billsplit-backend/models"
	"github.com/fadhlanhapp/billsplit-backend/utils"
)

// BillRepository handles database operations for bills. Each save is a
// whole-document atomic replace: the previous rows for the bill are
// deleted and the current state inserted in one transaction.
type BillRepository struct {
	DB *sql.DB
}

// NewBillRepository creates a new BillRepository
func NewBillRepository() *BillRepository {
	return &BillRepository{
		DB: GetDB(),
	}
}

// StoreBill saves a bill to the database, replacing any previous state
func (r *BillRepository) StoreBill(bill *models.Bill) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return utils.NewStorageError(fmt.Errorf("failed to begin transaction: %v", err))
	}
	defer tx.Rollback()

	// Replace the whole document
	if _, err = tx.Exec("DELETE FROM bills WHERE bill_id = $1", bill.BillID); err != nil {
		return utils.NewStorageError(fmt.Errorf("failed to clear previous bill state: %v", err))
	}

	_, err = tx.Exec(
		`INSERT INTO bills
         (bill_id, name, date, time, category, tax_rate, service_charge_rate,
          subtotal_amount, tax_amount, service_charge_amount, rounding_adj,
          nett_amount, paid_by, split_method, notes)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		bill.BillID, bill.Name, bill.Date, bill.Time, bill.Category,
		bill.TaxRate, bill.ServiceChargeRate, bill.SubtotalAmount, bill.TaxAmount,
		bill.ServiceChargeAmount, bill.RoundingAdj, bill.NettAmount,
		bill.PaidBy, bill.SplitMethod, bill.Notes,
	)
	if err != nil {
		return utils.NewStorageError(fmt.Errorf("failed to insert bill: %v", err))
	}

	for pos, item := range bill.Items {
		_, err = tx.Exec(
			`INSERT INTO bill_items
             (bill_id, item_id, name, price, tax_amount, nett_price, quantity,
              rounding_adj, error_diff, position)
             VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			bill.BillID, item.ID, item.Name, item.Price, item.TaxAmount,
			item.NettPrice, item.Quantity, item.RoundingAdj, item.ErrorDiff, pos,
		)
		if err != nil {
			return utils.NewStorageError(fmt.Errorf("failed to insert bill item: %v", err))
		}
	}

	for pos, participant := range bill.Participants {
		_, err = tx.Exec(
			`INSERT INTO bill_participants (bill_id, email, total_paid, position)
             VALUES ($1, $2, $3, $4)`,
			bill.BillID, participant.Email, participant.TotalPaid, pos,
		)
		if err != nil {
			return utils.NewStorageError(fmt.Errorf("failed to insert participant: %v", err))
		}

		for sPos, share := range participant.ItemsPaid {
			_, err = tx.Exec(
				`INSERT INTO participant_shares
                 (bill_id, email, item_id, value, percentage, split_type,
                  original_price, position)
                 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
				bill.BillID, participant.Email, share.ID, share.Value,
				share.Percentage, share.SplitType, share.OriginalPrice, sPos,
			)
			if err != nil {
				return utils.NewStorageError(fmt.Errorf("failed to insert item share: %v", err))
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return utils.NewStorageError(fmt.Errorf("failed to commit bill: %v", err))
	}
	return nil
}

// GetBill retrieves a bill and its full item/participant document
func (r *BillRepository) GetBill(billID string) (*models.Bill, error) {
	var bill models.Bill
	var notes sql.NullString

	err := r.DB.QueryRow(
		`SELECT bill_id, name, date, time, category, tax_rate, service_charge_rate,
                subtotal_amount, tax_amount, service_charge_amount, rounding_adj,
                nett_amount, paid_by, split_method, notes
         FROM bills WHERE bill_id = $1`,
		billID,
	).Scan(
		&bill.BillID, &bill.Name, &bill.Date, &bill.Time, &bill.Category,
		&bill.TaxRate, &bill.ServiceChargeRate, &bill.SubtotalAmount,
		&bill.TaxAmount, &bill.ServiceChargeAmount, &bill.RoundingAdj,
		&bill.NettAmount, &bill.PaidBy, &bill.SplitMethod, &notes,
	)
	if err == sql.ErrNoRows {
		return nil, utils.NewNotFoundError("Bill")
	}
	if err != nil {
		return nil, utils.NewStorageError(fmt.Errorf("failed to get bill: %v", err))
	}
	if notes.Valid {
		bill.Notes = notes.String
	}

	// Items in receipt order
	iRows, err := r.DB.Query(
		`SELECT item_id, name, price, tax_amount, nett_price, quantity,
                rounding_adj, error_diff
         FROM bill_items WHERE bill_id = $1 ORDER BY position ASC`,
		billID,
	)
	if err != nil {
		return nil, utils.NewStorageError(fmt.Errorf("failed to get bill items: %v", err))
	}
	defer iRows.Close()

	for iRows.Next() {
		var item models.Item
		if err := iRows.Scan(&item.ID, &item.Name, &item.Price, &item.TaxAmount,
			&item.NettPrice, &item.Quantity, &item.RoundingAdj, &item.ErrorDiff); err != nil {
			return nil, utils.NewStorageError(fmt.Errorf("failed to scan item: %v", err))
		}
		bill.Items = append(bill.Items, item)
	}

	// Participants in insertion order; equal-split selects "the first N"
	// so this ordering is load-bearing
	pRows, err := r.DB.Query(
		`SELECT email, total_paid FROM bill_participants
         WHERE bill_id = $1 ORDER BY position ASC`,
		billID,
	)
	if err != nil {
		return nil, utils.NewStorageError(fmt.Errorf("failed to get participants: %v", err))
	}
	defer pRows.Close()

	for pRows.Next() {
		var participant models.Participant
		if err := pRows.Scan(&participant.Email, &participant.TotalPaid); err != nil {
			return nil, utils.NewStorageError(fmt.Errorf("failed to scan participant: %v", err))
		}
		bill.Participants = append(bill.Participants, participant)
	}

	for i := range bill.Participants {
		sRows, err := r.DB.Query(
			`SELECT item_id, value, percentage, split_type, original_price
             FROM participant_shares
             WHERE bill_id = $1 AND email = $2 ORDER BY position ASC`,
			billID, bill.Participants[i].Email,
		)
		if err != nil {
			return nil, utils.NewStorageError(fmt.Errorf("failed to get item shares: %v", err))
		}

		for sRows.Next() {
			var share models.ItemShare
			if err := sRows.Scan(&share.ID, &share.Value, &share.Percentage,
				&share.SplitType, &share.OriginalPrice); err != nil {
				sRows.Close()
				return nil, utils.NewStorageError(fmt.Errorf("failed to scan item share: %v", err))
			}
			bill.Participants[i].ItemsPaid = append(bill.Participants[i].ItemsPaid, share)
		}
		sRows.Close()
	}

	return &bill, nil
}
