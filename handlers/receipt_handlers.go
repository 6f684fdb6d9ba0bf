// handlers/receipt_handlers.go
package handlers

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/fadhlanhapp/billsplit-backend/utils"
)

// AnalyzeReceipt ingests a receipt image: OCR, LLM structuring, surcharge
// propagation, bill closure, and persistence of the canonical bill.
func AnalyzeReceipt(c *gin.Context) {
	file, header, err := c.Request.FormFile("receipt")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("No file uploaded or invalid form: %v", err)})
		return
	}
	defer file.Close()

	participantsField := c.Request.FormValue("participants")
	if participantsField == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing participants field"})
		return
	}
	participants := strings.Split(participantsField, ",")

	ext := filepath.Ext(header.Filename)
	if ext != ".jpg" && ext != ".jpeg" && ext != ".png" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only JPG, JPEG, and PNG files are supported"})
		return
	}

	// Stage the upload; the file is removed again once processed
	filename := uuid.New().String() + ext
	filePath := filepath.Join("uploads", filename)

	out, err := os.Create(filePath)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Failed to save file: %v", err)})
		return
	}
	defer out.Close()

	if _, err := io.Copy(out, file); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Failed to save file: %v", err)})
		return
	}

	fileBytes, err := os.ReadFile(filePath)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Failed to read saved file: %v", err)})
		return
	}
	defer func() {
		if err := os.Remove(filePath); err != nil {
			slog.Warn("failed to delete receipt image after processing", "path", filePath, "error", err)
		}
	}()

	ocrText, err := handlerServices.Receipt.ExtractText(fileBytes, ext[1:])
	if err != nil {
		slog.Error("receipt OCR failed", "error", err)
		utils.HandleError(c, err)
		return
	}

	bill, rawOutput, err := handlerServices.Receipt.StructureReceipt(ocrText)
	if err != nil {
		slog.Error("receipt structuring failed", "error", err)
		if appErr, ok := err.(*utils.AppError); ok {
			c.JSON(appErr.Code, gin.H{
				"error":               appErr.Message,
				"raw_text":            ocrText,
				"structured_data_raw": rawOutput,
			})
			return
		}
		utils.HandleError(c, err)
		return
	}

	bill, err = handlerServices.Receipt.RegisterBill(bill, participants)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	slog.Info("registered bill from receipt",
		"bill_id", bill.BillID, "merchant", bill.Name, "nett_amount", bill.NettAmount)

	utils.HandleSuccess(c, gin.H{
		"raw_text":        ocrText,
		"structured_data": bill,
	})
}
