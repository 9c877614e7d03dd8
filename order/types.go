package order

import "fmt"

// Origin 标识下单方身份。
type Origin int32

const (
	OriginCustomer Origin = 0
	OriginFirm     Origin = 1
	OriginUnknown  Origin = 2
)

// DefaultOrigin is the member used when nothing says otherwise.
// Order.Default overrides it with OriginCustomer.
const DefaultOrigin = OriginUnknown

func (o Origin) String() string {
	switch o {
	case OriginCustomer:
		return "Customer"
	case OriginFirm:
		return "Firm"
	case OriginUnknown:
		return "Unknown"
	default:
		return fmt.Sprintf("Origin(%d)", int32(o))
	}
}

// AuctionStrategy is used by BOX price improvement auction orders.
type AuctionStrategy int32

const (
	AuctionUnset       AuctionStrategy = 0
	AuctionMatch       AuctionStrategy = 1
	AuctionImprovement AuctionStrategy = 2
	AuctionTransparent AuctionStrategy = 3
)

func (a AuctionStrategy) String() string {
	switch a {
	case AuctionUnset:
		return "Unset"
	case AuctionMatch:
		return "Match"
	case AuctionImprovement:
		return "Improvement"
	case AuctionTransparent:
		return "Transparent"
	default:
		return fmt.Sprintf("AuctionStrategy(%d)", int32(a))
	}
}

// OCA group types.
const (
	OCACancelWithBlock int32 = 1
	OCAReduceWithBlock int32 = 2
	OCAReduceNonBlock  int32 = 3
)

// Units for Order.AdjustableTrailingUnit.
const (
	TrailingUnitAmount  int32 = 0
	TrailingUnitPercent int32 = 1
)

// Actions.
const (
	ActionBuy  = "BUY"
	ActionSell = "SELL"
)

// OppositeAction returns SELL for BUY and BUY for anything else.
func OppositeAction(action string) string {
	if action == ActionBuy {
		return ActionSell
	}
	return ActionBuy
}

// TagValue is one entry of an ordered tag/value list (algo params,
// smart combo routing params, misc options).
type TagValue struct {
	Tag   string `json:"tag" yaml:"tag"`
	Value string `json:"value" yaml:"value"`
}

func (t TagValue) String() string {
	return t.Tag + " = " + t.Value
}

// SoftDollarTier carries descriptive compliance metadata.
type SoftDollarTier struct {
	Name        string `json:"name" yaml:"name"`
	Value       string `json:"value" yaml:"value"`
	DisplayName string `json:"display_name" yaml:"display_name"`
}

func (s SoftDollarTier) String() string {
	return "name: " + s.Name + "\nvalue: " + s.Value + "\ndisplay_name: " + s.DisplayName
}

// OrderComboLeg is the price of one combination leg. Position in
// Order.OrderComboLegs matches the leg position of the combo contract.
type OrderComboLeg struct {
	Price float64 `json:"price" yaml:"price"`
}

func (l OrderComboLeg) String() string {
	return FormatDouble(l.Price)
}
