package ledger

type Category string

const (
	Medical   Category = "Medical"
	Food      Category = "Food"
	Transport Category = "Transport"
	Shopping  Category = "Shopping"
	Other     Category = "Other"
)

var categories = []Category{Medical, Food, Transport, Shopping, Other}

// Categories returns the closed category set in menu order.
func Categories() []Category {
	res := make([]Category, len(categories))
	copy(res, categories)
	return res
}

// CategoryFromChoice maps a 1-based menu choice to a category.
// Only an all-digit string in [1, 5] selects a slot; every other input
// (empty, out of range, non-numeric) resolves to Other.
func CategoryFromChoice(choice string) Category {
	if !allDigits(choice) {
		return Other
	}
	n := 0
	for _, r := range choice {
		n = n*10 + int(r-'0')
		if n > len(categories) {
			return Other
		}
	}
	if n < 1 {
		return Other
	}
	return categories[n-1]
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
