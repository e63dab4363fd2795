package partnerboost

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/affistack/brandledger/internal/config"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	c, err := New(Params{
		Config: config.Config{APIBaseURL: baseURL, APIToken: "test-token", HTTPTimeout: 5},
		Log:    zap.NewNop(),
	})
	assert.NoError(t, err)
	return c
}

func TestNewRequiresToken(t *testing.T) {
	_, err := New(Params{
		Config: config.Config{APIBaseURL: "http://localhost"},
		Log:    zap.NewNop(),
	})
	assert.ErrorIs(t, err, ErrMissingToken)
}

func TestFetchReportPageParsesMixedTypes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, reportPath, r.URL.Path)

		var payload map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "test-token", payload["token"])
		assert.Equal(t, "20260801", payload["start_date"])
		assert.Equal(t, "20260807", payload["end_date"])

		w.Write([]byte(`{
			"status": {"code": "0", "msg": "success"},
			"data": {
				"list": [
					{"asin": "B001", "quantity": "2", "sales": 50.5, "estCommission": "2.53"},
					{"asin": "B002", "quantity": 0, "sales": "", "estCommission": "oops"}
				],
				"has_more": false
			}
		}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	page, err := c.FetchReportPage(context.Background(), "20260801", "20260807", 1, 500)
	assert.NoError(t, err)
	assert.Len(t, page.Rows, 2)
	assert.False(t, page.HasMore)

	assert.Equal(t, "B001", page.Rows[0].ASIN)
	assert.Equal(t, Count(2), page.Rows[0].Quantity)
	assert.True(t, page.Rows[0].Sales.Decimal.Equal(mustDecimal(t, "50.5")))
	assert.True(t, page.Rows[0].EstCommission.Decimal.Equal(mustDecimal(t, "2.53")))
	assert.False(t, page.Rows[0].Sales.Malformed)

	// Empty amounts decode to zero without a flag; garbage is flagged.
	assert.True(t, page.Rows[1].Sales.Decimal.IsZero())
	assert.False(t, page.Rows[1].Sales.Malformed)
	assert.True(t, page.Rows[1].EstCommission.Decimal.IsZero())
	assert.True(t, page.Rows[1].EstCommission.Malformed)
}

func TestFetchProductsPageFallsBackToRows(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, productsPath, r.URL.Path)
		w.Write([]byte(`{
			"status": {"code": 0, "msg": "ok"},
			"data": {
				"rows": [{"asin": "B001", "brand_name": "Acme"}],
				"has_more": true
			}
		}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	page, err := c.FetchProductsPage(context.Background(), 1, 50)
	assert.NoError(t, err)
	assert.Len(t, page.Records, 1)
	assert.NotNil(t, page.HasMore)
	assert.True(t, *page.HasMore)
	assert.Equal(t, "Acme", page.Records[0]["brand_name"])
}

func TestFetchProductsPageWithoutHasMore(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"status": {"code": 0, "msg": "ok"},
			"data": {"list": [{"asin": "B001"}]}
		}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	page, err := c.FetchProductsPage(context.Background(), 1, 50)
	assert.NoError(t, err)
	assert.Len(t, page.Records, 1)
	assert.Nil(t, page.HasMore)
}

func TestAPIErrorStatusFailsTheCall(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": {"code": 1001, "msg": "invalid token"}, "data": null}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.FetchProductsPage(context.Background(), 1, 50)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid token")
}

func TestUnexpectedHTTPStatusFailsTheCall(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gateway timeout", http.StatusGatewayTimeout)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.FetchReportPage(context.Background(), "20260801", "20260801", 1, 500)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "504")
}

func TestFetchTransactionsPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, mediumPath, r.URL.Path)
		assert.Equal(t, "medium", r.URL.Query().Get("mod"))
		assert.Equal(t, "transaction", r.URL.Query().Get("op"))

		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "test-token", r.PostForm.Get("token"))
		assert.Equal(t, "json", r.PostForm.Get("type"))
		assert.Equal(t, "2026-08-01", r.PostForm.Get("begin_date"))
		assert.Equal(t, "2026-08-07", r.PostForm.Get("end_date"))

		w.Write([]byte(`{
			"status": {"code": 0, "msg": "ok"},
			"data": {
				"list": [{"merchant_name": "Acme", "sale_amount": "10.00", "sale_comm": 0.5}],
				"total_page": "3"
			}
		}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	page, err := c.FetchTransactionsPage(context.Background(), "2026-08-01", "2026-08-07", 1, 1000)
	assert.NoError(t, err)
	assert.Equal(t, 3, page.TotalPage)
	assert.Len(t, page.Rows, 1)
	assert.Equal(t, "Acme", page.Rows[0].MerchantName)
	assert.True(t, page.Rows[0].SaleAmount.Decimal.Equal(mustDecimal(t, "10.00")))
	assert.True(t, page.Rows[0].SaleComm.Decimal.Equal(mustDecimal(t, "0.5")))
}

func TestFetchTransactionsPageClampsTotalPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": {"code": 0, "msg": "ok"}, "data": {"list": [], "total_page": 0}}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	page, err := c.FetchTransactionsPage(context.Background(), "2026-08-01", "2026-08-01", 1, 1000)
	assert.NoError(t, err)
	assert.Equal(t, 1, page.TotalPage)
	assert.Empty(t, page.Rows)
}
