package view

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/iWorld-y/credit_viewer/app/viewer/internal/conf"
	"github.com/iWorld-y/credit_viewer/app/viewer/internal/domain"
	"github.com/iWorld-y/credit_viewer/app/viewer/internal/usecase"
	"github.com/shopspring/decimal"
)

func newTestBuilder() *Builder {
	return NewBuilder("Credit Report Processor", ".xml", NewFormatter("en-US", "₹", time.UTC))
}

func sampleReport(id, name string, score int) *domain.CreditReport {
	return &domain.CreditReport{
		ID: id,
		BasicDetails: domain.BasicDetails{
			Name:        name,
			MobilePhone: "9876543210",
			PAN:         "ABCDE1234F",
			CreditScore: score,
		},
		ReportSummary: domain.ReportSummary{
			TotalAccounts:                4,
			ActiveAccounts:               3,
			ClosedAccounts:               1,
			CurrentBalanceAmount:         decimal.NewFromInt(245000),
			SecuredAccountsAmount:        decimal.NewFromInt(85000),
			UnsecuredAccountsAmount:      decimal.NewFromInt(160000),
			LastSevenDaysCreditEnquiries: 3,
		},
		CreditAccounts: []domain.CreditAccount{
			{Type: "Credit Card", Bank: "ICICI Bank", AccountNumber: "XXXX1234", AmountOverdue: decimal.NewFromInt(12000), CurrentBalance: decimal.NewFromInt(45000)},
			{Type: "Personal Loan", Bank: "HDFC Bank", AccountNumber: "XXXX5678", AmountOverdue: decimal.Zero, CurrentBalance: decimal.NewFromInt(200000)},
		},
		CreatedAt: time.Date(2024, 8, 6, 10, 0, 0, 0, time.UTC),
	}
}

func TestBuildEmptyCollection(t *testing.T) {
	p := newTestBuilder().Build(usecase.ViewState{})
	if p.EmptyMessage != MsgNoReports {
		t.Errorf("EmptyMessage = %q, want %q", p.EmptyMessage, MsgNoReports)
	}
	if p.Count != 0 || len(p.Rows) != 0 {
		t.Errorf("expected no rows, got %d", len(p.Rows))
	}
	if p.Detail != nil || p.Placeholder == nil {
		t.Fatal("expected placeholder without detail")
	}
	if p.Placeholder.Message != MsgPlaceholder {
		t.Errorf("placeholder = %q", p.Placeholder.Message)
	}
}

func TestBuildNoMatches(t *testing.T) {
	p := newTestBuilder().Build(usecase.ViewState{Query: "zzz", Total: 2})
	if p.EmptyMessage != MsgNoMatches {
		t.Errorf("EmptyMessage = %q, want %q", p.EmptyMessage, MsgNoMatches)
	}
	if p.Query != "zzz" {
		t.Errorf("Query = %q", p.Query)
	}
}

// 集合为空时无论是否有查询词都提示没有报告
func TestBuildEmptyCollectionWithQuery(t *testing.T) {
	p := newTestBuilder().Build(usecase.ViewState{Query: "x", Total: 0})
	if p.EmptyMessage != MsgNoReports {
		t.Errorf("EmptyMessage = %q, want %q", p.EmptyMessage, MsgNoReports)
	}
}

func TestBuildRowsAndSelection(t *testing.T) {
	a := sampleReport("a", "Ravi Kumar", 780)
	b := sampleReport("b", "Priya Rao", 640)
	p := newTestBuilder().Build(usecase.ViewState{
		Total:    2,
		Reports:  []*domain.CreditReport{a, b},
		Selected: b,
	})

	if p.Count != 2 || p.EmptyMessage != "" {
		t.Fatalf("Count = %d, EmptyMessage = %q", p.Count, p.EmptyMessage)
	}
	if p.Rows[0].Selected || !p.Rows[1].Selected {
		t.Errorf("only row b should be selected: %+v", p.Rows)
	}
	if p.Rows[0].Band != BandGood || p.Rows[1].Band != BandPoor {
		t.Errorf("bands = %s, %s", p.Rows[0].Band, p.Rows[1].Band)
	}
	if p.Rows[0].CreatedDate != "8/6/2024" {
		t.Errorf("CreatedDate = %q", p.Rows[0].CreatedDate)
	}

	if p.Placeholder != nil || p.Detail == nil {
		t.Fatal("expected detail without placeholder")
	}
	d := p.Detail
	if d.ID != "b" || d.Name != "Priya Rao" {
		t.Errorf("detail = %s %s", d.ID, d.Name)
	}
	if d.Summary.CurrentBalance != "₹245,000" {
		t.Errorf("CurrentBalance = %q", d.Summary.CurrentBalance)
	}
	if !d.Summary.EnquiriesElevated {
		t.Error("3 recent enquiries should be elevated")
	}
	if len(d.Accounts) != 2 || d.NoAccounts != "" {
		t.Fatalf("accounts = %d, NoAccounts = %q", len(d.Accounts), d.NoAccounts)
	}
	if d.Accounts[0].Severity != SeveritySevere || d.Accounts[1].Severity != SeverityClear {
		t.Errorf("severities = %s, %s", d.Accounts[0].Severity, d.Accounts[1].Severity)
	}
	if d.Accounts[0].Bank != "ICICI Bank" {
		t.Errorf("account order changed: %s", d.Accounts[0].Bank)
	}
}

// 选中的报告被过滤掉时详情依然展示
func TestBuildSelectedOutsideFilter(t *testing.T) {
	a := sampleReport("a", "Ravi Kumar", 780)
	p := newTestBuilder().Build(usecase.ViewState{Query: "nobody", Total: 1, Selected: a})
	if p.EmptyMessage != MsgNoMatches {
		t.Errorf("EmptyMessage = %q", p.EmptyMessage)
	}
	if p.Detail == nil || p.Detail.ID != "a" {
		t.Fatal("detail should still show the selected report")
	}
}

func TestBuildNoAccounts(t *testing.T) {
	r := sampleReport("a", "Ravi Kumar", 700)
	r.CreditAccounts = nil
	p := newTestBuilder().Build(usecase.ViewState{Total: 1, Reports: []*domain.CreditReport{r}, Selected: r})
	if p.Detail.NoAccounts != MsgNoAccounts {
		t.Errorf("NoAccounts = %q", p.Detail.NoAccounts)
	}
	if len(p.Detail.Accounts) != 0 {
		t.Errorf("Accounts = %d", len(p.Detail.Accounts))
	}
}

func TestBuildNotifications(t *testing.T) {
	now := time.Now()
	p := newTestBuilder().Build(usecase.ViewState{
		Busy: true,
		Notifications: []domain.Notification{{
			ID:        "n1",
			Kind:      domain.UploadSucceeded,
			Message:   domain.UploadSucceeded.Message(),
			CreatedAt: now,
			ExpiresAt: now.Add(4 * time.Second),
		}},
	})
	if !p.Busy {
		t.Error("Busy should be carried through")
	}
	if len(p.Notifications) != 1 {
		t.Fatalf("notifications = %d", len(p.Notifications))
	}
	n := p.Notifications[0]
	if n.Level != "success" || n.TTLms != 4000 {
		t.Errorf("notification = %+v", n)
	}

	// 展示时间从首次展示算起
	p = newTestBuilder().Build(usecase.ViewState{
		Notifications: []domain.Notification{{
			Kind:        domain.UploadSucceeded,
			CreatedAt:   now,
			DeliveredAt: now.Add(10 * time.Second),
			ExpiresAt:   now.Add(14 * time.Second),
		}},
	})
	if got := p.Notifications[0].TTLms; got != 4000 {
		t.Errorf("TTLms = %d, want 4000", got)
	}
}

func TestRendererHTML(t *testing.T) {
	r, err := NewRenderer(&conf.UI{Title: "Credit Report Processor", Locale: "en-US", CurrencySymbol: "₹", Timezone: "UTC"}, &conf.Upload{Accept: ".xml"})
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}

	a := sampleReport("a", "Ravi <Kumar>", 780)
	var buf bytes.Buffer
	if err := r.Render(&buf, usecase.ViewState{Total: 1, Reports: []*domain.CreditReport{a}, Selected: a, Busy: true}); err != nil {
		t.Fatalf("Render: %v", err)
	}
	html := buf.String()
	for _, want := range []string{
		"<title>Credit Report Processor</title>",
		"1 reports",
		"Ravi &lt;Kumar&gt;",
		"₹245,000",
		"Processing...",
		`accept=".xml"`,
		"disabled",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("rendered page missing %q", want)
		}
	}
	if strings.Contains(html, MsgPlaceholder) {
		t.Error("placeholder should not render when a report is selected")
	}
}
