package services

import (
	"github.com/fadhlanhapp/billsplit-backend/models"
)

// BillStore is the persistence contract the engines mutate bills through.
// A save failure means the mutation is not durable; callers must re-query
// current state. The Postgres repository implements this; tests use an
// in-memory fake.
type BillStore interface {
	GetBill(billID string) (*models.Bill, error)
	StoreBill(bill *models.Bill) error
}
