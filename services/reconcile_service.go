package services

import (
	"log/slog"
	"math"

	"github.com/fadhlanhapp/billsplit-backend/models"
	"github.com/fadhlanhapp/billsplit-backend/utils"
)

// ReconcileService forces computed sub-totals to exactly match declared
// totals. It runs once per freshly scanned bill (surcharge propagation
// plus bill-level closure) and after agent-driven splits (participant
// total correction).
type ReconcileService struct {
	store BillStore
}

// NewReconcileService creates a new reconcile service
func NewReconcileService(store BillStore) *ReconcileService {
	return &ReconcileService{store: store}
}

// PropagateSurcharges applies the combined tax+service surcharge rate to
// every item. A zero rate with a non-zero declared amount is treated as
// an extraction gap: the rate is back-derived from amount/subtotal and
// the correction logged.
func (s *ReconcileService) PropagateSurcharges(bill *models.Bill) {
	if bill.TaxRate == 0 && bill.TaxAmount != 0 && bill.SubtotalAmount > 0 {
		bill.TaxRate = utils.Round4(bill.TaxAmount / bill.SubtotalAmount)
		slog.Warn("back-derived tax rate from declared amount",
			"bill_id", bill.BillID, "tax_rate", bill.TaxRate)
	}
	if bill.ServiceChargeRate == 0 && bill.ServiceChargeAmount != 0 && bill.SubtotalAmount > 0 {
		bill.ServiceChargeRate = utils.Round4(bill.ServiceChargeAmount / bill.SubtotalAmount)
		slog.Warn("back-derived service charge rate from declared amount",
			"bill_id", bill.BillID, "service_charge_rate", bill.ServiceChargeRate)
	}

	totalSurchargeRate := bill.TaxRate + bill.ServiceChargeRate

	for i := range bill.Items {
		item := &bill.Items[i]
		item.TaxAmount = utils.Round(item.Price * totalSurchargeRate)
		item.NettPrice = utils.Round(item.Price + item.TaxAmount)
	}
}

// CloseBill concentrates the residual between the declared nett amount
// and the summed item nett prices onto the first item, recording the
// bill-level rounding adjustment and the leftover extraction error as
// visible fields on that item. After closure the recomputed item total
// equals the nett amount exactly.
func (s *ReconcileService) CloseBill(bill *models.Bill) {
	if len(bill.Items) == 0 {
		return
	}

	itemsNettPrice := bill.ItemsNettTotal()
	errorDiff := utils.Round(bill.NettAmount - (bill.RoundingAdj + itemsNettPrice))

	first := &bill.Items[0]
	first.RoundingAdj = bill.RoundingAdj
	first.ErrorDiff = errorDiff
	first.NettPrice = utils.Round(first.NettPrice + bill.RoundingAdj + errorDiff)

	if errorDiff != 0 {
		slog.Info("closed bill against declared nett amount",
			"bill_id", bill.BillID, "error_diff", errorDiff)
	}
}

// ReconcileTotals nudges participant totals after a split so they sum to
// the nett amount exactly, spreading the cent-level gap across all
// participants (the first few carry the extra cent of correction). Gaps
// under one cent are left alone. Returns the corrected (or unchanged)
// participant total. Only the conversational-agent path calls this; the
// direct API path keeps the raw rounding drift.
func (s *ReconcileService) ReconcileTotals(bill *models.Bill) (float64, error) {
	total := utils.Round(bill.ParticipantsTotal())
	difference := utils.Round(total - bill.NettAmount)

	if math.Abs(difference) < utils.MoneyTolerance || len(bill.Participants) == 0 {
		return total, nil
	}

	adjustments, err := utils.DistributeCents(utils.ToCents(difference), len(bill.Participants))
	if err != nil {
		return total, err
	}

	for i := range bill.Participants {
		bill.Participants[i].TotalPaid = utils.Round(
			bill.Participants[i].TotalPaid - utils.FromCents(adjustments[i]))
	}

	if err := s.store.StoreBill(bill); err != nil {
		return total, err
	}

	corrected := utils.Round(bill.ParticipantsTotal())
	slog.Info("reconciled participant totals",
		"bill_id", bill.BillID, "difference", difference, "total", corrected)
	return corrected, nil
}
