package domain

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// CreditReport 一份已由后端解析完成的信用报告
type CreditReport struct {
	ID             string          `json:"id"`
	BasicDetails   BasicDetails    `json:"basicDetails"`
	ReportSummary  ReportSummary   `json:"reportSummary"`
	CreditAccounts []CreditAccount `json:"creditAccounts"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// BasicDetails 身份信息
type BasicDetails struct {
	Name        string `json:"name"`
	MobilePhone string `json:"mobilePhone"`
	PAN         string `json:"pan"`
	CreditScore int    `json:"creditScore"`
}

// ReportSummary 汇总指标
type ReportSummary struct {
	TotalAccounts                int             `json:"totalAccounts"`
	ActiveAccounts               int             `json:"activeAccounts"`
	ClosedAccounts               int             `json:"closedAccounts"`
	CurrentBalanceAmount         decimal.Decimal `json:"currentBalanceAmount"`
	SecuredAccountsAmount        decimal.Decimal `json:"securedAccountsAmount"`
	UnsecuredAccountsAmount      decimal.Decimal `json:"unsecuredAccountsAmount"`
	LastSevenDaysCreditEnquiries int             `json:"lastSevenDaysCreditEnquiries"`
}

// CreditAccount 账户明细行
type CreditAccount struct {
	Type           string          `json:"type"`
	Bank           string          `json:"bank"`
	AccountNumber  string          `json:"accountNumber"`
	Address        string          `json:"address"`
	AmountOverdue  decimal.Decimal `json:"amountOverdue"`
	CurrentBalance decimal.Decimal `json:"currentBalance"`
}

// UnmarshalJSON 兼容后端文档主键 `_id`
func (r *CreditReport) UnmarshalJSON(b []byte) error {
	type alias CreditReport
	aux := struct {
		*alias
		DocumentID string `json:"_id"`
	}{alias: (*alias)(r)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	if r.ID == "" {
		r.ID = aux.DocumentID
	}
	return nil
}
