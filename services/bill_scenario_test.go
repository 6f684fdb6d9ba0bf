package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fadhlanhapp/billsplit-backend/models"
	"github.com/fadhlanhapp/billsplit-backend/utils"
)

// Walks a scanned bill through the full conversational flow: register,
// split equally, hand an item over, then re-divide by percentages, with
// the participant total reconciled after each step the way the agent
// does it.
func TestBillLifecycle_DinnerScenario(t *testing.T) {
	store := newMemStore()
	reconciler := NewReconcileService(store)
	receipts := NewReceiptService(store, reconciler)
	allocation := NewAllocationService(store)
	transfers := NewTransferService(store, NewMatchService())

	scanned := &models.Bill{
		BillID:            "BILL20250301-001",
		Name:              "Mamak Corner",
		TaxRate:           0.06,
		ServiceChargeRate: 0.10,
		SubtotalAmount:    50.00,
		NettAmount:        57.98,
		Items: []models.Item{
			{ID: 1, Name: "Nasi Goreng Kampung", Price: 12.00, Quantity: 1},
			{ID: 2, Name: "Maggi Goreng", Price: 9.00, Quantity: 1},
			{ID: 3, Name: "Roti Telur", Price: 6.00, Quantity: 1},
			{ID: 4, Name: "Teh O Ais", Price: 3.00, Quantity: 1},
			{ID: 5, Name: "Sirap Bandung", Price: 20.00, Quantity: 1},
		},
	}

	bill, err := receipts.RegisterBill(scanned,
		[]string{"del@gmail.com", "joj@gmail.com", "tash@gmail.com"})
	assert.NoError(t, err)
	assert.Equal(t, bill.NettAmount, utils.Round(bill.ItemsNettTotal()))
	assert.Equal(t, bill.NettAmount, bill.Participants[0].TotalPaid)

	// "split it equally between everyone"
	assert.NoError(t, allocation.SplitEqually(bill, 0))
	total, err := reconciler.ReconcileTotals(bill)
	assert.NoError(t, err)
	assert.Equal(t, bill.NettAmount, total)

	// "give del's share of the sirap bandung to joj" (typo and all)
	source, dest, err := transfers.MoveItems(bill, "del@gmial.com", "joj@gmail.com", []int{5})
	assert.NoError(t, err)
	assert.Equal(t, "del@gmail.com", source)
	assert.Equal(t, "joj@gmail.com", dest)
	total, err = reconciler.ReconcileTotals(bill)
	assert.NoError(t, err)
	assert.Equal(t, bill.NettAmount, total)

	// "actually just make it 50/30/20"
	assignments, err := utils.ParsePercentages(
		"del@gmail.com:50%,joj@gmail.com:30%,tash@gmail.com:20%")
	assert.NoError(t, err)
	assert.NoError(t, allocation.DivideByPercentages(bill, assignments))
	total, err = reconciler.ReconcileTotals(bill)
	assert.NoError(t, err)
	assert.Equal(t, bill.NettAmount, total)

	assert.Equal(t, utils.SplitMethodDivideBased, bill.SplitMethod)

	// Everything above round-tripped through the store
	stored, err := store.GetBill(bill.BillID)
	assert.NoError(t, err)
	assert.Equal(t, bill.NettAmount, utils.Round(stored.ParticipantsTotal()))
}
