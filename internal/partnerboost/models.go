package partnerboost

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Status is the envelope every PartnerBoost response carries.
type Status struct {
	Code Code   `json:"code"`
	Msg  string `json:"msg"`
}

// Code tolerates both numeric and string status codes; the API mixes them
// across endpoints.
type Code string

func (c *Code) UnmarshalJSON(b []byte) error {
	*c = Code(strings.Trim(strings.TrimSpace(string(b)), `"`))
	return nil
}

func (c Code) OK() bool { return c == "0" }

// Count is an integer field that may arrive as a number, a numeric string,
// or null.
type Count int

func (c *Count) UnmarshalJSON(b []byte) error {
	s := strings.Trim(strings.TrimSpace(string(b)), `"`)
	if s == "" || s == "null" {
		*c = 0
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		*c = 0
		return nil
	}
	*c = Count(f)
	return nil
}

// Amount is a monetary field decoded into an exact decimal. The API reports
// amounts as numbers or strings depending on the endpoint; values that parse
// as neither decode to zero and are flagged so callers can count them.
type Amount struct {
	decimal.Decimal
	Malformed bool
}

func (a *Amount) UnmarshalJSON(b []byte) error {
	s := strings.Trim(strings.TrimSpace(string(b)), `"`)
	if s == "" || s == "null" {
		a.Decimal = decimal.Zero
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		a.Decimal = decimal.Zero
		a.Malformed = true
		return nil
	}
	a.Decimal = d
	return nil
}

type envelope struct {
	Status Status          `json:"status"`
	Data   json.RawMessage `json:"data"`
}

type productData struct {
	List    []map[string]any `json:"list"`
	Rows    []map[string]any `json:"rows"`
	HasMore *bool            `json:"has_more"`
}

// ProductPage is one page of the FBA product datafeed. Records stay untyped
// so the sync job's declared field mapping owns the shape, not the client.
// HasMore is nil when the endpoint omits the field; callers then fall back
// to judging by page length.
type ProductPage struct {
	Records []map[string]any
	HasMore *bool
}

// ReportRow is one per-ASIN row of the daily Amazon report.
type ReportRow struct {
	ASIN          string `json:"asin"`
	Quantity      Count  `json:"quantity"`
	Sales         Amount `json:"sales"`
	EstCommission Amount `json:"estCommission"`
}

type reportData struct {
	List    []ReportRow `json:"list"`
	HasMore bool        `json:"has_more"`
}

// ReportPage is one page of the Amazon report endpoint.
type ReportPage struct {
	Rows    []ReportRow
	HasMore bool
}

// Transaction is one row of the medium transaction endpoint. Each row is a
// single order; the brand name arrives pre-resolved as merchant_name.
type Transaction struct {
	MerchantName string `json:"merchant_name"`
	SaleAmount   Amount `json:"sale_amount"`
	SaleComm     Amount `json:"sale_comm"`
}

type transactionData struct {
	List      []Transaction `json:"list"`
	TotalPage Count         `json:"total_page"`
}

// TransactionPage is one page of the transaction endpoint; pagination there
// reports a total page count instead of a has_more flag.
type TransactionPage struct {
	Rows      []Transaction
	TotalPage int
}
