package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fadhlanhapp/billsplit-backend/models"
	"github.com/fadhlanhapp/billsplit-backend/repository"
	"github.com/fadhlanhapp/billsplit-backend/services"
	"github.com/fadhlanhapp/billsplit-backend/utils"
)

// HandlerServices contains all service dependencies
type HandlerServices struct {
	Store        services.BillStore
	Allocation   *services.AllocationService
	Transfer     *services.TransferService
	Reconcile    *services.ReconcileService
	Receipt      *services.ReceiptService
	Agent        *services.AgentService
	Notification *services.NotificationService
	Excel        *services.ExcelService
}

// NewHandlerServices creates a new handler services instance
func NewHandlerServices() *HandlerServices {
	store := repository.NewBillRepository()
	matcher := services.NewMatchService()
	reconcile := services.NewReconcileService(store)
	allocation := services.NewAllocationService(store)
	transfer := services.NewTransferService(store, matcher)

	return &HandlerServices{
		Store:        store,
		Allocation:   allocation,
		Transfer:     transfer,
		Reconcile:    reconcile,
		Receipt:      services.NewReceiptService(store, reconcile),
		Agent:        services.NewAgentService(store, allocation, transfer, reconcile),
		Notification: services.NewNotificationService(),
		Excel:        services.NewExcelService(store),
	}
}

var handlerServices *HandlerServices

// InitHandlers initializes the handler services
func InitHandlers() {
	handlerServices = NewHandlerServices()
}

// GetBill returns the full bill document
func GetBill(c *gin.Context) {
	bill, err := handlerServices.Store.GetBill(c.Param("id"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, bill)
}

// GetParticipants returns all participants and their current balances
func GetParticipants(c *gin.Context) {
	bill, err := handlerServices.Store.GetBill(c.Param("id"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, gin.H{"participants": bill.Participants})
}

// GetItems returns all items in the bill
func GetItems(c *gin.Context) {
	bill, err := handlerServices.Store.GetBill(c.Param("id"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, gin.H{"items": bill.Items})
}

// GetBillSummary returns a condensed view of the current bill state
func GetBillSummary(c *gin.Context) {
	bill, err := handlerServices.Store.GetBill(c.Param("id"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	summary := models.BillSummary{
		TotalBill:   bill.NettAmount,
		SplitMethod: bill.SplitMethod,
	}
	for _, item := range bill.Items {
		summary.Items = append(summary.Items, fmt.Sprintf("%s (x%d): $%.2f", item.Name, item.Quantity, item.Price))
	}
	for _, p := range bill.Participants {
		summary.Participants = append(summary.Participants, models.ParticipantBalance{
			Email:      p.Email,
			TotalPaid:  p.TotalPaid,
			ItemsCount: len(p.ItemsPaid),
		})
	}

	utils.HandleSuccess(c, summary)
}

// MoveItem moves item shares between participants. A failed call may be
// partially applied; clients should re-fetch the bill.
func MoveItem(c *gin.Context) {
	var request models.MoveItemRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleError(c, utils.NewBadRequestError(utils.ErrInvalidRequest))
		return
	}

	bill, err := handlerServices.Store.GetBill(c.Param("id"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	source, dest, err := handlerServices.Transfer.MoveItems(bill, request.SourceEmail, request.DestinationEmail, request.ItemIDs)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, gin.H{
		"message": "Items moved successfully",
		"source":  source,
		"dest":    dest,
		"data":    bill,
	})
}

// DivideItems splits every item across participants by percentage.
// The direct API path does not run the post-split total reconciliation;
// only the conversational agent path does.
func DivideItems(c *gin.Context) {
	var request models.DivideItemsRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleError(c, utils.NewBadRequestError(utils.ErrInvalidRequest))
		return
	}

	assignments, err := utils.ParsePercentages(request.Percentages)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	bill, err := handlerServices.Store.GetBill(c.Param("id"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	if err := handlerServices.Allocation.DivideByPercentages(bill, assignments); err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, gin.H{"message": "Bill divided successfully", "data": bill})
}

// SplitEqually splits the bill equally among the first numWays participants
func SplitEqually(c *gin.Context) {
	var request models.SplitEquallyRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleError(c, utils.NewBadRequestError(utils.ErrInvalidRequest))
		return
	}

	bill, err := handlerServices.Store.GetBill(c.Param("id"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	if err := handlerServices.Allocation.SplitEqually(bill, request.NumWays); err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, gin.H{"message": "Bill split equally", "data": bill})
}

// ExportBill streams the bill breakdown as an Excel workbook
func ExportBill(c *gin.Context) {
	f, filename, err := handlerServices.Excel.ExportBillToExcel(c.Param("id"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := f.Write(c.Writer); err != nil {
		utils.HandleError(c, utils.NewInternalError("Failed to write Excel file"))
		return
	}
	c.Status(http.StatusOK)
}

// NotifyParticipant sends a share notification over WhatsApp
func NotifyParticipant(c *gin.Context) {
	var request models.NotifyRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleError(c, utils.NewBadRequestError(utils.ErrInvalidRequest))
		return
	}

	bill, err := handlerServices.Store.GetBill(c.Param("id"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	messageSID, err := handlerServices.Notification.NotifyShare(bill, request.Email, request.PhoneNumber, request.PayLink)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, gin.H{"messageSid": messageSID})
}
