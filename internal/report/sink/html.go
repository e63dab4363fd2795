package sink

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"os"
	"path/filepath"

	"github.com/affistack/brandledger/internal/report/domain"
	"github.com/shopspring/decimal"
)

// HTML writes a self-contained static page per report range, suitable for
// publishing straight from the output directory.
type HTML struct {
	dir  string
	tmpl *template.Template
}

func NewHTML(dir string) *HTML {
	tmpl := template.Must(template.New("report").Funcs(template.FuncMap{
		"amount": func(d decimal.Decimal) string { return d.StringFixed(2) },
	}).Parse(reportPage))
	return &HTML{dir: dir, tmpl: tmpl}
}

func (s *HTML) Name() string { return "html" }

func (s *HTML) Write(_ context.Context, report *domain.Report) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	var buf bytes.Buffer
	if err := s.tmpl.Execute(&buf, report); err != nil {
		return fmt.Errorf("render report page: %w", err)
	}

	path := filepath.Join(s.dir, report.Range.FileBase()+".html")
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

const reportPage = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>Brand Report {{.Range.Label}}</title>
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <style>
    :root {
      --bg: #f5f5f7;
      --card-bg: #ffffff;
      --border: #e5e5ea;
      --text: #1d1d1f;
      --muted: #6e6e73;
      --accent: #0071e3;
      --accent-soft: rgba(0,113,227,0.08);
    }
    * { box-sizing: border-box; }
    body {
      margin: 0;
      padding: 32px 16px;
      font-family: -apple-system, BlinkMacSystemFont, system-ui, sans-serif;
      background: var(--bg);
      color: var(--text);
    }
    .container { max-width: 980px; margin: 0 auto; }
    .card {
      background: var(--card-bg);
      border-radius: 28px;
      border: 1px solid var(--border);
      box-shadow: 0 20px 40px rgba(0,0,0,0.06);
      padding: 24px 28px 28px;
    }
    .header {
      display: flex;
      justify-content: space-between;
      align-items: baseline;
      gap: 12px;
      margin-bottom: 18px;
    }
    .title { font-size: 22px; font-weight: 600; }
    .date-pill {
      font-size: 13px;
      color: var(--accent);
      background: var(--accent-soft);
      border-radius: 999px;
      padding: 4px 12px;
    }
    .summary { display: flex; flex-wrap: wrap; gap: 12px; margin-bottom: 18px; }
    .summary-item {
      flex: 1 1 160px;
      min-width: 160px;
      padding: 10px 14px;
      border-radius: 16px;
      background: #f9fafb;
      border: 1px solid #ededf0;
    }
    .summary-label {
      font-size: 11px;
      text-transform: uppercase;
      letter-spacing: 0.08em;
      color: var(--muted);
      margin-bottom: 4px;
    }
    .summary-value { font-size: 20px; font-weight: 600; }
    .table-wrapper {
      margin-top: 8px;
      border-radius: 18px;
      border: 1px solid var(--border);
      overflow: hidden;
    }
    table { border-collapse: collapse; width: 100%; font-size: 13px; }
    thead { background: #f5f5f7; }
    th, td { padding: 9px 12px; border-bottom: 1px solid #f2f2f7; white-space: nowrap; }
    th { text-align: left; font-weight: 500; color: var(--muted); font-size: 12px; }
    tbody tr:hover { background: #f9fafb; }
    td.brand { max-width: 260px; overflow: hidden; text-overflow: ellipsis; }
    td.num { text-align: right; font-variant-numeric: tabular-nums; }
    .footer-note { margin-top: 12px; font-size: 11px; color: var(--muted); text-align: right; }
  </style>
</head>
<body>
  <div class="container">
    <div class="card">
      <div class="header">
        <div class="title">Brand Commission Report</div>
        <div class="date-pill">{{.Range.Label}}</div>
      </div>
      <div class="summary">
        <div class="summary-item">
          <div class="summary-label">Total Orders</div>
          <div class="summary-value">{{.Totals.Orders}}</div>
        </div>
        <div class="summary-item">
          <div class="summary-label">Total Sales</div>
          <div class="summary-value">{{amount .Totals.Sales}}</div>
        </div>
        <div class="summary-item">
          <div class="summary-label">Total Commission</div>
          <div class="summary-value">{{amount .Totals.Commission}}</div>
        </div>
      </div>
      <div class="table-wrapper">
        <table>
          <thead>
            <tr>
              <th>Brand</th>
              <th>Orders</th>
              <th>Sales</th>
              <th>Commission</th>
            </tr>
          </thead>
          <tbody>
            {{range .Summaries}}<tr>
              <td class="brand">{{.Brand}}</td>
              <td class="num">{{.Orders}}</td>
              <td class="num">{{amount .Sales}}</td>
              <td class="num">{{amount .Commission}}</td>
            </tr>
            {{end}}
          </tbody>
        </table>
      </div>
      <div class="footer-note">Generated {{.GeneratedAt.Format "2006-01-02 15:04:05 MST"}} from the {{.Source}} report.</div>
    </div>
  </div>
</body>
</html>
`
