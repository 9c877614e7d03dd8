package order

import "strings"

// Status is the order status vocabulary reported by the venue.
type Status string

const (
	StatusPendingSubmit Status = "PendingSubmit"
	StatusPendingCancel Status = "PendingCancel"
	StatusPreSubmitted  Status = "PreSubmitted"
	StatusSubmitted     Status = "Submitted"
	StatusAPIPending    Status = "ApiPending"
	StatusAPICancelled  Status = "ApiCancelled"
	StatusCancelled     Status = "Cancelled"
	StatusFilled        Status = "Filled"
	StatusInactive      Status = "Inactive"
)

// IsFinal 判断是否是终态
func (s Status) IsFinal() bool {
	switch s {
	case StatusFilled, StatusCancelled, StatusAPICancelled, StatusInactive:
		return true
	default:
		return false
	}
}

// IsActive 判断是否仍在场内（可能产生成交）
func (s Status) IsActive() bool {
	switch s {
	case StatusPreSubmitted, StatusSubmitted:
		return true
	default:
		return false
	}
}

// CanCancel 判断当前状态下是否可以撤单
func (s Status) CanCancel() bool {
	switch s {
	case StatusPendingSubmit, StatusAPIPending, StatusPreSubmitted, StatusSubmitted:
		return true
	default:
		return false
	}
}

// Describe 获取状态描述
func (s Status) Describe() string {
	descriptions := map[Status]string{
		StatusPendingSubmit: "transmitted, not yet acknowledged by the venue",
		StatusPendingCancel: "cancel sent, not yet confirmed",
		StatusPreSubmitted:  "accepted, held until its trigger or session",
		StatusSubmitted:     "working at the venue",
		StatusAPIPending:    "created but not transmitted",
		StatusAPICancelled:  "cancelled before the venue acknowledged it",
		StatusCancelled:     "cancelled",
		StatusFilled:        "completely filled",
		StatusInactive:      "received but not working",
	}
	if desc, ok := descriptions[s]; ok {
		return desc
	}
	return "unknown status"
}

// OrderState is the read-only snapshot the venue returns for a what-if
// evaluation or a submitted order. Nothing in this module mutates it.
type OrderState struct {
	Status Status `json:"status" yaml:"status"`

	InitMarginBefore     string `json:"init_margin_before" yaml:"init_margin_before"`
	MaintMarginBefore    string `json:"maint_margin_before" yaml:"maint_margin_before"`
	EquityWithLoanBefore string `json:"equity_with_loan_before" yaml:"equity_with_loan_before"`
	InitMarginChange     string `json:"init_margin_change" yaml:"init_margin_change"`
	MaintMarginChange    string `json:"maint_margin_change" yaml:"maint_margin_change"`
	EquityWithLoanChange string `json:"equity_with_loan_change" yaml:"equity_with_loan_change"`
	InitMarginAfter      string `json:"init_margin_after" yaml:"init_margin_after"`
	MaintMarginAfter     string `json:"maint_margin_after" yaml:"maint_margin_after"`
	EquityWithLoanAfter  string `json:"equity_with_loan_after" yaml:"equity_with_loan_after"`

	Commission         float64 `json:"commission" yaml:"commission"`
	MinCommission      float64 `json:"min_commission" yaml:"min_commission"`
	MaxCommission      float64 `json:"max_commission" yaml:"max_commission"`
	CommissionCurrency string  `json:"commission_currency" yaml:"commission_currency"`
	WarningText        string  `json:"warning_text" yaml:"warning_text"`
	CompletedTime      string  `json:"completed_time" yaml:"completed_time"`
	CompletedStatus    string  `json:"completed_status" yaml:"completed_status"`
}

// NewOrderState returns an empty snapshot with unset commissions.
func NewOrderState() OrderState {
	return OrderState{
		Commission:    UnsetDouble,
		MinCommission: UnsetDouble,
		MaxCommission: UnsetDouble,
	}
}

// IsWhatIfResult reports whether the snapshot carries margin projections.
func (s OrderState) IsWhatIfResult() bool {
	return s.InitMarginAfter != "" || s.MaintMarginAfter != "" || s.EquityWithLoanAfter != ""
}

func (s OrderState) String() string {
	var b strings.Builder
	line := func(k, v string) {
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(v)
		b.WriteByte('\n')
	}
	line("status", string(s.Status))
	line("init_margin_before", s.InitMarginBefore)
	line("maint_margin_before", s.MaintMarginBefore)
	line("equity_with_loan_before", s.EquityWithLoanBefore)
	line("init_margin_change", s.InitMarginChange)
	line("maint_margin_change", s.MaintMarginChange)
	line("equity_with_loan_change", s.EquityWithLoanChange)
	line("init_margin_after", s.InitMarginAfter)
	line("maint_margin_after", s.MaintMarginAfter)
	line("equity_with_loan_after", s.EquityWithLoanAfter)
	line("commission", FormatDouble(s.Commission))
	line("min_commission", FormatDouble(s.MinCommission))
	line("max_commission", FormatDouble(s.MaxCommission))
	line("commission_currency", s.CommissionCurrency)
	line("warning_text", s.WarningText)
	line("completed_time", s.CompletedTime)
	line("completed_status", s.CompletedStatus)
	return strings.TrimSuffix(b.String(), "\n")
}
