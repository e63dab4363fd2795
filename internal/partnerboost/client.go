package partnerboost

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/affistack/brandledger/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	productsPath = "/api/datafeed/get_fba_products"
	reportPath   = "/api/datafeed/get_amazon_report"
	mediumPath   = "/api.php"
)

// ErrMissingToken is returned when no API credential is configured.
var ErrMissingToken = errors.New("partnerboost: PARTNERBOOST_TOKEN is not configured")

// Client talks to the PartnerBoost API. All calls are synchronous with a
// bounded timeout; there is no retry beyond what the caller provides.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	log     *zap.Logger
}

type Params struct {
	fx.In

	Config config.Config
	Log    *zap.Logger
}

func New(p Params) (*Client, error) {
	if p.Config.APIToken == "" {
		return nil, ErrMissingToken
	}

	timeout := time.Duration(p.Config.HTTPTimeout) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		baseURL: strings.TrimRight(p.Config.APIBaseURL, "/"),
		token:   p.Config.APIToken,
		http:    &http.Client{Timeout: timeout},
		log:     p.Log.Named("partnerboost"),
	}, nil
}

// FetchProductsPage fetches one page of the FBA product datafeed.
func (c *Client) FetchProductsPage(ctx context.Context, page, pageSize int) (*ProductPage, error) {
	payload := map[string]any{
		"token":                  c.token,
		"page_size":              pageSize,
		"page":                   page,
		"default_filter":         1,
		"country_code":           "",
		"brand_id":               nil,
		"sort":                   "",
		"asins":                  "",
		"relationship":           1,
		"is_original_currency":   0,
		"has_promo_code":         0,
		"has_acc":                0,
		"filter_sexual_wellness": 0,
	}

	var data productData
	if err := c.postJSON(ctx, productsPath, payload, &data); err != nil {
		return nil, err
	}

	records := data.List
	if len(records) == 0 {
		records = data.Rows
	}
	return &ProductPage{Records: records, HasMore: data.HasMore}, nil
}

// FetchReportPage fetches one page of the Amazon report for a date range.
// Dates are in the endpoint's compact YYYYMMDD form.
func (c *Client) FetchReportPage(ctx context.Context, startDate, endDate string, page, pageSize int) (*ReportPage, error) {
	payload := map[string]any{
		"token":       c.token,
		"page_size":   pageSize,
		"page":        page,
		"start_date":  startDate,
		"end_date":    endDate,
		"marketplace": "",
		"asins":       "",
		"adGroupIds":  "",
	}

	var data reportData
	if err := c.postJSON(ctx, reportPath, payload, &data); err != nil {
		return nil, err
	}
	return &ReportPage{Rows: data.List, HasMore: data.HasMore}, nil
}

// FetchTransactionsPage fetches one page of transactions for a date range.
// Dates are in YYYY-MM-DD form.
func (c *Client) FetchTransactionsPage(ctx context.Context, beginDate, endDate string, page, limit int) (*TransactionPage, error) {
	form := url.Values{}
	form.Set("begin_date", beginDate)
	form.Set("end_date", endDate)
	form.Set("page", strconv.Itoa(page))
	form.Set("limit", strconv.Itoa(limit))

	var data transactionData
	if err := c.postForm(ctx, "medium", "transaction", form, &data); err != nil {
		return nil, err
	}

	totalPage := int(data.TotalPage)
	if totalPage < 1 {
		totalPage = 1
	}
	return &TransactionPage{Rows: data.List, TotalPage: totalPage}, nil
}

// FetchBrandsPage fetches one page of the Amazon brand listing. The payload
// is returned raw; only the sampling tool consumes it.
func (c *Client) FetchBrandsPage(ctx context.Context, page, limit int) (json.RawMessage, error) {
	form := url.Values{}
	form.Set("brand_type", "Amazon")
	form.Set("page", strconv.Itoa(page))
	form.Set("limit", strconv.Itoa(limit))

	var data json.RawMessage
	if err := c.postForm(ctx, "medium", "monetization_api", form, &data); err != nil {
		return nil, err
	}
	return data, nil
}

func (c *Client) postJSON(ctx context.Context, path string, payload any, data any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%s: marshal payload: %w", path, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%s: build request: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, path, data)
}

func (c *Client) postForm(ctx context.Context, mod, op string, form url.Values, data any) error {
	form.Set("token", c.token)
	form.Set("type", "json")

	query := url.Values{"mod": {mod}, "op": {op}}
	endpoint := c.baseURL + mediumPath + "?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("%s/%s: build request: %w", mod, op, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	return c.do(req, mod+"/"+op, data)
}

func (c *Client) do(req *http.Request, name string, data any) error {
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s: request failed: %w", name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%s: unexpected status %d: %s", name, resp.StatusCode, string(snippet))
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s: read response: %w", name, err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("%s: decode response: %w", name, err)
	}
	if !env.Status.Code.OK() {
		return fmt.Errorf("%s: api error %s: %s", name, env.Status.Code, env.Status.Msg)
	}

	c.log.Debug("api call",
		zap.String("endpoint", name),
		zap.Duration("elapsed", time.Since(start)),
	)

	if data == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, data); err != nil {
		return fmt.Errorf("%s: decode data block: %w", name, err)
	}
	return nil
}
