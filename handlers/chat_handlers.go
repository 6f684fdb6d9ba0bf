package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/fadhlanhapp/billsplit-backend/models"
	"github.com/fadhlanhapp/billsplit-backend/utils"
)

// Chat is the main conversational endpoint. The agent chooses which of
// the four bill operations to run; even on a failed request the current
// bill state is returned so the client can resync.
func Chat(c *gin.Context) {
	var request models.ChatRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleError(c, utils.NewBadRequestError(utils.ErrInvalidRequest))
		return
	}

	reply, bill, err := handlerServices.Agent.Chat(request.BillID, request.Message)
	if err != nil {
		current, loadErr := handlerServices.Store.GetBill(request.BillID)
		if loadErr != nil {
			current = bill
		}
		utils.HandleSuccess(c, models.ChatResponse{
			Response: "Error processing request: " + err.Error(),
			Status:   "error",
			Data:     current,
		})
		return
	}

	utils.HandleSuccess(c, models.ChatResponse{
		Response: reply,
		Status:   "success",
		Data:     bill,
	})
}
