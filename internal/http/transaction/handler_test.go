package transaction_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/granahq/grana/internal/auth"
	handler "github.com/granahq/grana/internal/http/transaction"
	"github.com/granahq/grana/internal/transaction"
)

func newRouter(t *testing.T) (*chi.Mux, *transaction.MockRepository, uuid.UUID) {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := transaction.NewMockRepository(ctrl)
	userID := uuid.New()

	r := chi.NewRouter()
	// Stand-in for the real token middleware.
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req.WithContext(auth.WithUserID(req.Context(), userID)))
		})
	})
	r.Route("/transactions", handler.NewHandler(transaction.NewService(repo)).Routes)

	return r, repo, userID
}

func TestHandler_Create(t *testing.T) {
	router, repo, userID := newRouter(t)

	repo.EXPECT().
		CreateTransaction(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, tx *transaction.Transaction) error {
			assert.Equal(t, userID, tx.UserID)
			tx.ID = uuid.New()
			tx.CreatedAt = time.Now()

			return nil
		})

	body := `{
		"title": "Salário",
		"amount": 500000,
		"type": "income",
		"account_type": "personal",
		"date": "2026-01-05T00:00:00Z"
	}`

	req := httptest.NewRequest(http.MethodPost, "/transactions/", strings.NewReader(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Salário", resp["title"])
	assert.Equal(t, float64(500000), resp["amount"])
}

func TestHandler_Create_Invalid(t *testing.T) {
	router, _, _ := newRouter(t)

	body := `{"title": "", "amount": 100, "type": "income", "account_type": "personal"}`

	req := httptest.NewRequest(http.MethodPost, "/transactions/", strings.NewReader(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_List_FiltersInMemory(t *testing.T) {
	router, repo, userID := newRouter(t)

	txs := []*transaction.Transaction{
		{ID: uuid.New(), UserID: userID, Title: "Salário", Amount: 500000, Type: transaction.TypeIncome, AccountType: transaction.AccountPersonal, Date: time.Now()},
		{ID: uuid.New(), UserID: userID, Title: "Supermercado", Amount: 35000, Type: transaction.TypeExpense, AccountType: transaction.AccountPersonal, Date: time.Now()},
	}

	repo.EXPECT().
		ListTransactions(gomock.Any(), transaction.ListFilter{UserID: userID, AccountType: transaction.AccountPersonal}).
		Return(txs, nil)

	req := httptest.NewRequest(http.MethodGet, "/transactions/?account_type=personal&search=sal", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	assert.Equal(t, "Salário", resp[0]["title"])
}

func TestHandler_List_MissingAccountType(t *testing.T) {
	router, _, _ := newRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/transactions/", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_Summary(t *testing.T) {
	router, repo, userID := newRouter(t)

	txs := []*transaction.Transaction{
		{ID: uuid.New(), UserID: userID, Title: "Salário", Amount: 500000, Type: transaction.TypeIncome, AccountType: transaction.AccountPersonal, Date: time.Now()},
		{ID: uuid.New(), UserID: userID, Title: "Aluguel", Amount: 120000, Type: transaction.TypeExpense, AccountType: transaction.AccountPersonal, Date: time.Now()},
	}

	repo.EXPECT().
		ListTransactions(gomock.Any(), gomock.Any()).
		Return(txs, nil)

	req := httptest.NewRequest(http.MethodGet, "/transactions/summary?account_type=personal", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, float64(500000), resp["total_income"])
	assert.Equal(t, float64(120000), resp["total_expense"])
	assert.Equal(t, float64(380000), resp["balance"])
}

func TestHandler_Delete_NotFound(t *testing.T) {
	router, repo, userID := newRouter(t)

	id := uuid.New()

	repo.EXPECT().
		DeleteTransaction(gomock.Any(), userID, id).
		Return(false, nil)

	req := httptest.NewRequest(http.MethodDelete, "/transactions/"+id.String(), nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
