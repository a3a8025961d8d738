package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/Srinith2224/Banking-Systems/shared/errs"
	"github.com/Srinith2224/Banking-Systems/shared/models"
)

// ---- mock implementations ----

type mockTransactionService struct {
	createFn        func(*models.Transaction) (*models.Transaction, error)
	getFn           func(int64) (*models.Transaction, error)
	listFn          func(models.TransactionStatus, models.TransactionType) ([]models.Transaction, error)
	listByAccountFn func(int64) ([]models.Transaction, error)
	updateFn        func(int64, *models.Transaction) (*models.Transaction, error)
	cancelFn        func(int64) error
	settleFn        func(int64, models.TransactionStatus) (*models.Transaction, error)
}

func (m *mockTransactionService) CreateTransaction(candidate *models.Transaction) (*models.Transaction, error) {
	if m.createFn != nil {
		return m.createFn(candidate)
	}
	return nil, fmt.Errorf("not configured")
}

func (m *mockTransactionService) GetTransaction(id int64) (*models.Transaction, error) {
	if m.getFn != nil {
		return m.getFn(id)
	}
	return nil, fmt.Errorf("not configured")
}

func (m *mockTransactionService) ListTransactions(status models.TransactionStatus, txType models.TransactionType) ([]models.Transaction, error) {
	if m.listFn != nil {
		return m.listFn(status, txType)
	}
	return nil, fmt.Errorf("not configured")
}

func (m *mockTransactionService) ListTransactionsByAccountID(accountID int64) ([]models.Transaction, error) {
	if m.listByAccountFn != nil {
		return m.listByAccountFn(accountID)
	}
	return nil, fmt.Errorf("not configured")
}

func (m *mockTransactionService) UpdateTransaction(id int64, candidate *models.Transaction) (*models.Transaction, error) {
	if m.updateFn != nil {
		return m.updateFn(id, candidate)
	}
	return nil, fmt.Errorf("not configured")
}

func (m *mockTransactionService) CancelTransaction(id int64) error {
	if m.cancelFn != nil {
		return m.cancelFn(id)
	}
	return fmt.Errorf("not configured")
}

func (m *mockTransactionService) SettleTransaction(id int64, outcome models.TransactionStatus) (*models.Transaction, error) {
	if m.settleFn != nil {
		return m.settleFn(id, outcome)
	}
	return nil, fmt.Errorf("not configured")
}

// ---- helpers ----

func newTxTestRouter(svc TransactionService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewTransactionHandler(svc)
	v1 := r.Group("/v1/transactions")
	v1.POST("", h.CreateTransaction)
	v1.GET("", h.ListTransactions)
	v1.GET("/:id", h.GetTransaction)
	v1.PUT("/:id", h.UpdateTransaction)
	v1.DELETE("/:id", h.CancelTransaction)
	v1.POST("/:id/settle", h.SettleTransaction)
	return r
}

func txDoRequest(router *gin.Engine, method, url string, body interface{}) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, url, nil)
	if body != nil {
		b, _ := json.Marshal(body)
		req, _ = http.NewRequest(method, url, strings.NewReader(string(b)))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// ---- test data ----

var txTestTransaction = &models.Transaction{
	ID: 1, AccountID: 10, Type: models.TypeDeposit,
	Amount:          decimal.RequireFromString("50.00"),
	TransactionDate: time.Now().UTC(),
	Status:          models.StatusPending,
}

func txDepositBody() map[string]interface{} {
	return map[string]interface{}{"accountId": 10, "type": "Deposit", "amount": "50.00"}
}

// ---- tests ----

func TestCreateTransactionHandler(t *testing.T) {
	tests := []struct {
		name           string
		body           interface{}
		createFn       func(*models.Transaction) (*models.Transaction, error)
		expectedStatus int
	}{
		{
			name:           "created - valid deposit",
			body:           txDepositBody(),
			createFn:       func(tx *models.Transaction) (*models.Transaction, error) { return txTestTransaction, nil },
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "bad request - missing required fields",
			body:           map[string]interface{}{},
			createFn:       nil,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "bad request - unknown type",
			body:           map[string]interface{}{"accountId": 10, "type": "Wire", "amount": "50.00"},
			createFn:       nil,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "bad request - non-positive amount",
			body: map[string]interface{}{"accountId": 10, "type": "Deposit", "amount": "0"},
			createFn: func(tx *models.Transaction) (*models.Transaction, error) {
				return nil, fmt.Errorf("%w: amount must be greater than zero", errs.ErrValidation)
			},
			expectedStatus: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTxTestRouter(&mockTransactionService{createFn: tt.createFn})
			w := txDoRequest(router, http.MethodPost, "/v1/transactions", tt.body)
			if w.Code != tt.expectedStatus {
				t.Errorf("[%s] expected %d got %d; body: %s", tt.name, tt.expectedStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestListTransactionsHandler(t *testing.T) {
	tests := []struct {
		name           string
		url            string
		svc            *mockTransactionService
		expectedStatus int
	}{
		{
			name: "success - unfiltered list",
			url:  "/v1/transactions",
			svc: &mockTransactionService{
				listFn: func(status models.TransactionStatus, txType models.TransactionType) ([]models.Transaction, error) {
					if status != "" || txType != "" {
						return nil, fmt.Errorf("unexpected filters: %q %q", status, txType)
					}
					return []models.Transaction{*txTestTransaction}, nil
				},
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "success - status and type filters forwarded",
			url:  "/v1/transactions?status=PENDING&type=Deposit",
			svc: &mockTransactionService{
				listFn: func(status models.TransactionStatus, txType models.TransactionType) ([]models.Transaction, error) {
					if status != models.StatusPending || txType != models.TypeDeposit {
						return nil, fmt.Errorf("unexpected filters: %q %q", status, txType)
					}
					return nil, nil
				},
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "success - accountId takes precedence",
			url:  "/v1/transactions?accountId=10&status=PENDING",
			svc: &mockTransactionService{
				listByAccountFn: func(accountID int64) ([]models.Transaction, error) {
					if accountID != 10 {
						return nil, fmt.Errorf("unexpected account id %d", accountID)
					}
					return []models.Transaction{*txTestTransaction}, nil
				},
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "bad request - unknown status value",
			url:            "/v1/transactions?status=DONE",
			svc:            &mockTransactionService{},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "bad request - malformed accountId",
			url:            "/v1/transactions?accountId=abc",
			svc:            &mockTransactionService{},
			expectedStatus: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTxTestRouter(tt.svc)
			w := txDoRequest(router, http.MethodGet, tt.url, nil)
			if w.Code != tt.expectedStatus {
				t.Errorf("[%s] expected %d got %d; body: %s", tt.name, tt.expectedStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestGetTransactionHandler(t *testing.T) {
	tests := []struct {
		name           string
		url            string
		getFn          func(int64) (*models.Transaction, error)
		expectedStatus int
	}{
		{
			name:           "success",
			url:            "/v1/transactions/1",
			getFn:          func(id int64) (*models.Transaction, error) { return txTestTransaction, nil },
			expectedStatus: http.StatusOK,
		},
		{
			name: "not found",
			url:  "/v1/transactions/999",
			getFn: func(id int64) (*models.Transaction, error) {
				return nil, fmt.Errorf("%w: transaction not found with id: %d", errs.ErrNotFound, id)
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "bad request - malformed id",
			url:            "/v1/transactions/abc",
			getFn:          nil,
			expectedStatus: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTxTestRouter(&mockTransactionService{getFn: tt.getFn})
			w := txDoRequest(router, http.MethodGet, tt.url, nil)
			if w.Code != tt.expectedStatus {
				t.Errorf("[%s] expected %d got %d; body: %s", tt.name, tt.expectedStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestUpdateTransactionHandler(t *testing.T) {
	updateBody := map[string]interface{}{"type": "Deposit", "amount": "75.00", "status": "PENDING"}
	tests := []struct {
		name           string
		body           interface{}
		updateFn       func(int64, *models.Transaction) (*models.Transaction, error)
		expectedStatus int
	}{
		{
			name: "success - pending transaction amended",
			body: updateBody,
			updateFn: func(id int64, tx *models.Transaction) (*models.Transaction, error) {
				return txTestTransaction, nil
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "conflict - transaction already terminal",
			body: updateBody,
			updateFn: func(id int64, tx *models.Transaction) (*models.Transaction, error) {
				return nil, fmt.Errorf("%w: cannot update SUCCESS transaction %d", errs.ErrInvalidStateTransition, id)
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "bad request - unknown status",
			body:           map[string]interface{}{"type": "Deposit", "amount": "75.00", "status": "DONE"},
			updateFn:       nil,
			expectedStatus: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTxTestRouter(&mockTransactionService{updateFn: tt.updateFn})
			w := txDoRequest(router, http.MethodPut, "/v1/transactions/1", tt.body)
			if w.Code != tt.expectedStatus {
				t.Errorf("[%s] expected %d got %d; body: %s", tt.name, tt.expectedStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestSettleTransactionHandler(t *testing.T) {
	tests := []struct {
		name           string
		body           interface{}
		settleFn       func(int64, models.TransactionStatus) (*models.Transaction, error)
		expectedStatus int
	}{
		{
			name: "success - settle to SUCCESS",
			body: map[string]interface{}{"outcome": "SUCCESS"},
			settleFn: func(id int64, outcome models.TransactionStatus) (*models.Transaction, error) {
				settled := *txTestTransaction
				settled.Status = outcome
				return &settled, nil
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "conflict - already settled",
			body: map[string]interface{}{"outcome": "FAILED"},
			settleFn: func(id int64, outcome models.TransactionStatus) (*models.Transaction, error) {
				return nil, fmt.Errorf("%w: cannot settle SUCCESS transaction %d", errs.ErrInvalidStateTransition, id)
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "bad request - PENDING is not an outcome",
			body:           map[string]interface{}{"outcome": "PENDING"},
			settleFn:       nil,
			expectedStatus: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTxTestRouter(&mockTransactionService{settleFn: tt.settleFn})
			w := txDoRequest(router, http.MethodPost, "/v1/transactions/1/settle", tt.body)
			if w.Code != tt.expectedStatus {
				t.Errorf("[%s] expected %d got %d; body: %s", tt.name, tt.expectedStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestCancelTransactionHandler(t *testing.T) {
	tests := []struct {
		name           string
		cancelFn       func(int64) error
		expectedStatus int
	}{
		{
			name:           "no content - pending transaction cancelled",
			cancelFn:       func(id int64) error { return nil },
			expectedStatus: http.StatusNoContent,
		},
		{
			name: "conflict - terminal transaction",
			cancelFn: func(id int64) error {
				return fmt.Errorf("%w: cannot cancel FAILED transaction %d", errs.ErrInvalidStateTransition, id)
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name: "not found",
			cancelFn: func(id int64) error {
				return fmt.Errorf("%w: transaction not found with id: %d", errs.ErrNotFound, id)
			},
			expectedStatus: http.StatusNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTxTestRouter(&mockTransactionService{cancelFn: tt.cancelFn})
			w := txDoRequest(router, http.MethodDelete, "/v1/transactions/1", nil)
			if w.Code != tt.expectedStatus {
				t.Errorf("[%s] expected %d got %d; body: %s", tt.name, tt.expectedStatus, w.Code, w.Body.String())
			}
		})
	}
}
