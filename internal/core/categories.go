package core

import (
	"strings"
	"unicode"
)

// categoryNames maps known category tags to display names.
var categoryNames = map[string]string{
	"salary":        "Salary",
	"freelance":     "Freelance",
	"bonus":         "Bonus",
	"food":          "Food & Dining",
	"groceries":     "Groceries",
	"shopping":      "Shopping",
	"transport":     "Transport",
	"bills":         "Bills & Utilities",
	"rent":          "Rent",
	"entertainment": "Entertainment",
	"health":        "Health",
	"education":     "Education",
	"travel":        "Travel",
	"stocks":        "Stocks",
	"mutual_funds":  "Mutual Funds",
	"crypto":        "Crypto",
	"savings":       "Savings",
}

// CategoryName returns the display name for a category tag. Unknown tags are
// title-cased with underscores turned into spaces.
func CategoryName(category string) string {
	category = strings.ToLower(strings.TrimSpace(category))
	if name, ok := categoryNames[category]; ok {
		return name
	}
	if category == "" {
		return "Other"
	}
	words := strings.Fields(strings.ReplaceAll(category, "_", " "))
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
