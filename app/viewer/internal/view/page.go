package view

import (
	"github.com/iWorld-y/credit_viewer/app/viewer/internal/domain"
	"github.com/iWorld-y/credit_viewer/app/viewer/internal/usecase"
)

const (
	MsgNoReports       = "No reports available"
	MsgNoMatches       = "No matching reports found"
	MsgNoAccounts      = "No credit accounts found"
	MsgPlaceholder     = "Select a report from the list to view details"
	MsgPlaceholderHint = "You can search for specific reports using the search box"
)

// Page 查看器页面的视图模型
type Page struct {
	Title         string             `json:"title"`
	Query         string             `json:"query"`
	Count         int                `json:"count"`
	Rows          []ListRow          `json:"rows"`
	EmptyMessage  string             `json:"empty_message,omitempty"`
	Detail        *Detail            `json:"detail,omitempty"`
	Placeholder   *Placeholder       `json:"placeholder,omitempty"`
	Busy          bool               `json:"busy"`
	Accept        string             `json:"accept"`
	Notifications []NotificationView `json:"notifications"`
}

// ListRow 列表中的一行
type ListRow struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	CreatedDate string    `json:"created_date"`
	Score       int       `json:"score"`
	Band        ScoreBand `json:"band"`
	Selected    bool      `json:"selected"`
}

// Detail 选中报告的详情
type Detail struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	MobilePhone string       `json:"mobile_phone"`
	PAN         string       `json:"pan"`
	ReportDate  string       `json:"report_date"`
	Score       int          `json:"score"`
	Band        ScoreBand    `json:"band"`
	Summary     Summary      `json:"summary"`
	Accounts    []AccountRow `json:"accounts"`
	// NoAccounts 非空时渲染一行明确的空账户提示
	NoAccounts string `json:"no_accounts,omitempty"`
}

// Summary 汇总指标
type Summary struct {
	TotalAccounts     int    `json:"total_accounts"`
	ActiveAccounts    int    `json:"active_accounts"`
	ClosedAccounts    int    `json:"closed_accounts"`
	CurrentBalance    string `json:"current_balance"`
	SecuredAmount     string `json:"secured_amount"`
	UnsecuredAmount   string `json:"unsecured_amount"`
	RecentEnquiries   int    `json:"recent_enquiries"`
	EnquiriesElevated bool   `json:"enquiries_elevated"`
}

// AccountRow 账户明细行
type AccountRow struct {
	Type           string          `json:"type"`
	Bank           string          `json:"bank"`
	AccountNumber  string          `json:"account_number"`
	Address        string          `json:"address"`
	CurrentBalance string          `json:"current_balance"`
	AmountOverdue  string          `json:"amount_overdue"`
	Severity       OverdueSeverity `json:"severity"`
}

type Placeholder struct {
	Message string `json:"message"`
	Hint    string `json:"hint"`
}

type NotificationView struct {
	ID      string `json:"id"`
	Kind    string `json:"kind"`
	Level   string `json:"level"`
	Message string `json:"message"`
	TTLms   int64  `json:"ttl_ms"`
}

// Builder 把只读状态转换为视图模型
type Builder struct {
	title  string
	accept string
	fmt    *Formatter
}

func NewBuilder(title, accept string, f *Formatter) *Builder {
	return &Builder{title: title, accept: accept, fmt: f}
}

// Build 同样的输入总是得到同样的页面
func (b *Builder) Build(state usecase.ViewState) *Page {
	p := &Page{
		Title:         b.title,
		Query:         state.Query,
		Count:         len(state.Reports),
		Rows:          make([]ListRow, 0, len(state.Reports)),
		Busy:          state.Busy,
		Accept:        b.accept,
		Notifications: make([]NotificationView, 0, len(state.Notifications)),
	}

	var selectedID string
	if state.Selected != nil {
		selectedID = state.Selected.ID
	}
	for _, r := range state.Reports {
		p.Rows = append(p.Rows, ListRow{
			ID:          r.ID,
			Name:        r.BasicDetails.Name,
			CreatedDate: b.fmt.Date(r.CreatedAt),
			Score:       r.BasicDetails.CreditScore,
			Band:        BandFor(r.BasicDetails.CreditScore),
			Selected:    r.ID == selectedID,
		})
	}

	if len(p.Rows) == 0 {
		if state.Total == 0 {
			p.EmptyMessage = MsgNoReports
		} else {
			p.EmptyMessage = MsgNoMatches
		}
	}

	if state.Selected != nil {
		p.Detail = b.detail(state.Selected)
	} else {
		p.Placeholder = &Placeholder{Message: MsgPlaceholder, Hint: MsgPlaceholderHint}
	}

	for _, n := range state.Notifications {
		start := n.DeliveredAt
		if start.IsZero() {
			start = n.CreatedAt
		}
		p.Notifications = append(p.Notifications, NotificationView{
			ID:      n.ID,
			Kind:    string(n.Kind),
			Level:   n.Kind.Level(),
			Message: n.Message,
			TTLms:   n.ExpiresAt.Sub(start).Milliseconds(),
		})
	}
	return p
}

func (b *Builder) detail(r *domain.CreditReport) *Detail {
	s := r.ReportSummary
	d := &Detail{
		ID:          r.ID,
		Name:        r.BasicDetails.Name,
		MobilePhone: r.BasicDetails.MobilePhone,
		PAN:         r.BasicDetails.PAN,
		ReportDate:  b.fmt.Date(r.CreatedAt),
		Score:       r.BasicDetails.CreditScore,
		Band:        BandFor(r.BasicDetails.CreditScore),
		Summary: Summary{
			TotalAccounts:     s.TotalAccounts,
			ActiveAccounts:    s.ActiveAccounts,
			ClosedAccounts:    s.ClosedAccounts,
			CurrentBalance:    b.fmt.Currency(s.CurrentBalanceAmount),
			SecuredAmount:     b.fmt.Currency(s.SecuredAccountsAmount),
			UnsecuredAmount:   b.fmt.Currency(s.UnsecuredAccountsAmount),
			RecentEnquiries:   s.LastSevenDaysCreditEnquiries,
			EnquiriesElevated: EnquiriesElevated(s.LastSevenDaysCreditEnquiries),
		},
		Accounts: make([]AccountRow, 0, len(r.CreditAccounts)),
	}
	for _, a := range r.CreditAccounts {
		d.Accounts = append(d.Accounts, AccountRow{
			Type:           a.Type,
			Bank:           a.Bank,
			AccountNumber:  a.AccountNumber,
			Address:        a.Address,
			CurrentBalance: b.fmt.Currency(a.CurrentBalance),
			AmountOverdue:  b.fmt.Currency(a.AmountOverdue),
			Severity:       SeverityFor(a.AmountOverdue),
		})
	}
	if len(d.Accounts) == 0 {
		d.NoAccounts = MsgNoAccounts
	}
	return d
}
