package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/Srinith2224/Banking-Systems/shared/middleware"
	"github.com/Srinith2224/Banking-Systems/shared/models"
)

// AccountService defines the registry operations used by AccountHandler.
type AccountService interface {
	CreateAccount(candidate *models.Account) (*models.Account, error)
	GetAccount(id int64) (*models.Account, error)
	ListAccounts() ([]models.Account, error)
	ListAccountsByCustomerID(customerID int64) ([]models.Account, error)
	UpdateAccount(id int64, candidate *models.Account) (*models.Account, error)
	DeleteAccount(id int64) error
}

// AccountHandler handles account-related HTTP requests.
type AccountHandler struct {
	service AccountService
}

func NewAccountHandler(service AccountService) *AccountHandler {
	return &AccountHandler{service: service}
}

type AccountRequest struct {
	AccountNumber string          `json:"accountNumber" validate:"required,max=20"`
	CustomerID    int64           `json:"customerId" validate:"required,gt=0"`
	Type          string          `json:"type" validate:"required,oneof=Savings Checking Current"`
	Balance       decimal.Decimal `json:"balance"`
}

type ListAccountsResponse struct {
	Accounts []models.Account `json:"accounts"`
}

func (h *AccountHandler) CreateAccount(c *gin.Context) {
	var req AccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	account, err := h.service.CreateAccount(&models.Account{
		AccountNumber: req.AccountNumber,
		CustomerID:    req.CustomerID,
		Type:          models.AccountType(req.Type),
		Balance:       req.Balance,
	})
	if err != nil {
		middleware.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, account)
}

// ListAccounts lists every account, or only one customer's accounts when the
// customerId query parameter is present.
func (h *AccountHandler) ListAccounts(c *gin.Context) {
	if raw := c.Query("customerId"); raw != "" {
		customerID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || customerID <= 0 {
			middleware.RespondWithError(c, http.StatusBadRequest, "Invalid customer ID")
			return
		}
		accounts, err := h.service.ListAccountsByCustomerID(customerID)
		if err != nil {
			middleware.RespondWithDomainError(c, err)
			return
		}
		c.JSON(http.StatusOK, ListAccountsResponse{Accounts: accounts})
		return
	}

	accounts, err := h.service.ListAccounts()
	if err != nil {
		middleware.RespondWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, ListAccountsResponse{Accounts: accounts})
}

func (h *AccountHandler) GetAccount(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	account, err := h.service.GetAccount(id)
	if err != nil {
		middleware.RespondWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, account)
}

func (h *AccountHandler) UpdateAccount(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req AccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	account, err := h.service.UpdateAccount(id, &models.Account{
		AccountNumber: req.AccountNumber,
		CustomerID:    req.CustomerID,
		Type:          models.AccountType(req.Type),
		Balance:       req.Balance,
	})
	if err != nil {
		middleware.RespondWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, account)
}

func (h *AccountHandler) DeleteAccount(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.service.DeleteAccount(id); err != nil {
		middleware.RespondWithDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid account ID")
		return 0, false
	}
	return id, true
}
