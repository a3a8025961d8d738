package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/Srinith2224/Banking-Systems/shared/middleware"
	"github.com/Srinith2224/Banking-Systems/shared/models"
)

// TransactionService defines the ledger operations used by TransactionHandler.
type TransactionService interface {
	CreateTransaction(candidate *models.Transaction) (*models.Transaction, error)
	GetTransaction(id int64) (*models.Transaction, error)
	ListTransactions(status models.TransactionStatus, txType models.TransactionType) ([]models.Transaction, error)
	ListTransactionsByAccountID(accountID int64) ([]models.Transaction, error)
	UpdateTransaction(id int64, candidate *models.Transaction) (*models.Transaction, error)
	CancelTransaction(id int64) error
	SettleTransaction(id int64, outcome models.TransactionStatus) (*models.Transaction, error)
}

type TransactionHandler struct {
	service TransactionService
}

func NewTransactionHandler(service TransactionService) *TransactionHandler {
	return &TransactionHandler{service: service}
}

type CreateTransactionRequest struct {
	AccountID int64           `json:"accountId" validate:"required,gt=0"`
	Type      string          `json:"type" validate:"required,oneof=Deposit Withdrawal Transfer"`
	Amount    decimal.Decimal `json:"amount"`
}

type UpdateTransactionRequest struct {
	Type   string          `json:"type" validate:"required,oneof=Deposit Withdrawal Transfer"`
	Amount decimal.Decimal `json:"amount"`
	Status string          `json:"status" validate:"required,oneof=PENDING SUCCESS FAILED"`
}

type SettleTransactionRequest struct {
	Outcome string `json:"outcome" validate:"required,oneof=SUCCESS FAILED"`
}

type ListTransactionsResponse struct {
	Transactions []models.Transaction `json:"transactions"`
}

func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	transaction, err := h.service.CreateTransaction(&models.Transaction{
		AccountID: req.AccountID,
		Type:      models.TransactionType(req.Type),
		Amount:    req.Amount,
	})
	if err != nil {
		middleware.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, transaction)
}

// ListTransactions lists transactions, narrowed by the optional accountId,
// status and type query parameters. accountId takes precedence and returns
// the account's history most recent first.
func (h *TransactionHandler) ListTransactions(c *gin.Context) {
	if raw := c.Query("accountId"); raw != "" {
		accountID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || accountID <= 0 {
			middleware.RespondWithError(c, http.StatusBadRequest, "Invalid account ID")
			return
		}
		transactions, err := h.service.ListTransactionsByAccountID(accountID)
		if err != nil {
			middleware.RespondWithDomainError(c, err)
			return
		}
		c.JSON(http.StatusOK, ListTransactionsResponse{Transactions: transactions})
		return
	}

	var status models.TransactionStatus
	if raw := c.Query("status"); raw != "" {
		parsed, err := models.ParseTransactionStatus(raw)
		if err != nil {
			middleware.RespondWithDomainError(c, err)
			return
		}
		status = parsed
	}
	var txType models.TransactionType
	if raw := c.Query("type"); raw != "" {
		parsed, err := models.ParseTransactionType(raw)
		if err != nil {
			middleware.RespondWithDomainError(c, err)
			return
		}
		txType = parsed
	}

	transactions, err := h.service.ListTransactions(status, txType)
	if err != nil {
		middleware.RespondWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, ListTransactionsResponse{Transactions: transactions})
}

func (h *TransactionHandler) GetTransaction(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	transaction, err := h.service.GetTransaction(id)
	if err != nil {
		middleware.RespondWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, transaction)
}

func (h *TransactionHandler) UpdateTransaction(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	transaction, err := h.service.UpdateTransaction(id, &models.Transaction{
		Type:   models.TransactionType(req.Type),
		Amount: req.Amount,
		Status: models.TransactionStatus(req.Status),
	})
	if err != nil {
		middleware.RespondWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, transaction)
}

// SettleTransaction drives the explicit PENDING -> SUCCESS|FAILED step.
func (h *TransactionHandler) SettleTransaction(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req SettleTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	transaction, err := h.service.SettleTransaction(id, models.TransactionStatus(req.Outcome))
	if err != nil {
		middleware.RespondWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, transaction)
}

func (h *TransactionHandler) CancelTransaction(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.service.CancelTransaction(id); err != nil {
		middleware.RespondWithDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid transaction ID")
		return 0, false
	}
	return id, true
}
