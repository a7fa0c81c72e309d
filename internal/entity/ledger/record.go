package ledger

import "time"

// Record is a single ledger transaction. Income and expense records share
// this shape and live in separate tables, selected by Variant.
type Record struct {
	ID        int64
	Owner     string
	Amount    float64
	Category  Category
	Date      time.Time
	Note      string
	CreatedAt time.Time
}

type Variant int

const (
	Income Variant = iota
	Expense
)

func (v Variant) String() string {
	if v == Income {
		return "income"
	}
	return "expense"
}

// Label is the human-facing variant name.
func (v Variant) Label() string {
	if v == Income {
		return "Income"
	}
	return "Expense"
}

// Variants lists both record variants in menu order.
func Variants() []Variant {
	return []Variant{Income, Expense}
}
