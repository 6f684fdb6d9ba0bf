package services

import (
	"errors"

	"github.com/fadhlanhapp/billsplit-backend/models"
	"github.com/fadhlanhapp/billsplit-backend/utils"
)

// memStore is an in-memory BillStore for tests
type memStore struct {
	bills    map[string]*models.Bill
	saves    int
	failSave bool
}

func newMemStore(bills ...*models.Bill) *memStore {
	m := &memStore{bills: make(map[string]*models.Bill)}
	for _, b := range bills {
		m.bills[b.BillID] = b
	}
	return m
}

func (m *memStore) GetBill(billID string) (*models.Bill, error) {
	bill, ok := m.bills[billID]
	if !ok {
		return nil, utils.NewNotFoundError("Bill")
	}
	return bill, nil
}

func (m *memStore) StoreBill(bill *models.Bill) error {
	if m.failSave {
		return utils.NewStorageError(errors.New("disk full"))
	}
	m.bills[bill.BillID] = bill
	m.saves++
	return nil
}

// threeItemBill builds a bill with nett 30.00: three items of nett_price
// 10.00 each and three participants in insertion order a, b, c.
func threeItemBill() *models.Bill {
	return &models.Bill{
		BillID:         "BILL20250101-001",
		Name:           "Test Cafe",
		SubtotalAmount: 30.00,
		NettAmount:     30.00,
		SplitMethod:    utils.SplitMethodNotSet,
		Items: []models.Item{
			{ID: 1, Name: "Pasta", Price: 10.00, NettPrice: 10.00, Quantity: 1},
			{ID: 2, Name: "Pizza", Price: 10.00, NettPrice: 10.00, Quantity: 1},
			{ID: 3, Name: "Salad", Price: 10.00, NettPrice: 10.00, Quantity: 1},
		},
		Participants: []models.Participant{
			{Email: "alice@gmail.com"},
			{Email: "bob@gmail.com"},
			{Email: "carol@gmail.com"},
		},
	}
}
