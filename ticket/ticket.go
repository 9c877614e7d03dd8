// Package ticket turns declarative YAML order tickets into Orders built by
// the preset package.
package ticket

import (
	"errors"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"venue-orders-go/order"
)

var (
	ErrUnknownPreset   = errors.New("ticket: unknown preset")
	ErrMissingParam    = errors.New("ticket: missing param")
	ErrUnknownParent   = errors.New("ticket: unknown parent")
	ErrDuplicateTicket = errors.New("ticket: duplicate ticket name")
	ErrInvalidTicket   = errors.New("ticket: invalid ticket")
)

// OCA 描述一组互斥订单。
type OCA struct {
	Group string `yaml:"group" json:"group"`
	Type  int32  `yaml:"type" json:"type"`
}

// Ticket is one preset invocation.
type Ticket struct {
	Name     string          `yaml:"name" json:"name"`
	Preset   string          `yaml:"preset" json:"preset"`
	OrderID  int32           `yaml:"order_id" json:"order_id"`
	Account  string          `yaml:"account" json:"account"`
	Action   string          `yaml:"action" json:"action"`
	Quantity decimal.Decimal `yaml:"quantity" json:"quantity"`

	// numeric preset arguments, by name
	Params map[string]decimal.Decimal `yaml:"params" json:"params"`
	// string / bool preset arguments (reference_exchange, decrease, ...)
	Options map[string]string `yaml:"options" json:"options"`
	// per-leg prices for combo_leg_prices
	Legs          []decimal.Decimal `yaml:"legs" json:"legs"`
	NonGuaranteed bool              `yaml:"non_guaranteed" json:"non_guaranteed"`

	OCA                   *OCA              `yaml:"oca" json:"oca"`
	Conditions            []order.Condition `yaml:"conditions" json:"conditions"`
	ConditionsCancelOrder bool              `yaml:"conditions_cancel_order" json:"conditions_cancel_order"`
	ConditionsIgnoreRth   bool              `yaml:"conditions_ignore_rth" json:"conditions_ignore_rth"`

	// Parent names an earlier ticket; its first order becomes the parent.
	Parent string `yaml:"parent" json:"parent"`
}

// File is a ticket document.
type File struct {
	Tickets []Ticket `yaml:"tickets"`
}

// LoadFile reads and parses a ticket document.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tickets: %w", err)
	}
	return Parse(data)
}

// Parse decodes a ticket document and checks names are present and unique.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse tickets: %w", err)
	}
	seen := make(map[string]struct{}, len(f.Tickets))
	for i, t := range f.Tickets {
		if t.Name == "" {
			return nil, fmt.Errorf("%w: ticket #%d has no name", ErrInvalidTicket, i)
		}
		if t.Preset == "" {
			return nil, fmt.Errorf("%w: ticket %q has no preset", ErrInvalidTicket, t.Name)
		}
		if _, ok := seen[t.Name]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateTicket, t.Name)
		}
		seen[t.Name] = struct{}{}
	}
	return &f, nil
}

// ApplyDefaults fills the account of tickets that do not name one.
func (f *File) ApplyDefaults(account string) {
	for i := range f.Tickets {
		if f.Tickets[i].Account == "" {
			f.Tickets[i].Account = account
		}
	}
}
