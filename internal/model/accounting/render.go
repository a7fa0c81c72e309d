package accounting

import (
	"fmt"
	"strings"

	"max.ks1230/accounting/internal/entity/ledger"
	"max.ks1230/accounting/internal/model/stats"
)

const (
	recordsHeader = "ID\tAmount\tCategory\tDate\t\tNote"
	dateLayout    = "2006-01-02"
)

func renderRecords(title string, recs []ledger.Record) string {
	lines := make([]string, 0, len(recs)+2)
	lines = append(lines, title, recordsHeader)
	for _, rec := range recs {
		lines = append(lines, fmt.Sprintf("%d\t%.2f\t%s\t%s\t%s",
			rec.ID, rec.Amount, rec.Category, rec.Date.Format(dateLayout), rec.Note))
	}
	return strings.Join(lines, "\n")
}

func renderTotals(from, to string, t stats.Totals) string {
	lines := []string{
		"Totals " + from + " to " + to + ":",
		fmt.Sprintf("Total income: %.2f", t.Income),
		fmt.Sprintf("Total expense: %.2f", t.Expense),
		fmt.Sprintf("Net: %.2f", t.Net),
	}
	return strings.Join(lines, "\n")
}

// renderCategoryTotals lists categories in menu order; categories with no
// records do not appear at all.
func renderCategoryTotals(t stats.CategoryTotals) string {
	lines := make([]string, 0)
	lines = append(lines, "Income by category:")
	lines = append(lines, categoryLines(t.Income)...)
	lines = append(lines, "", "Expense by category:")
	lines = append(lines, categoryLines(t.Expense)...)
	return strings.Join(lines, "\n")
}

func categoryLines(sums map[ledger.Category]float64) []string {
	lines := make([]string, 0, len(sums))
	for _, cat := range ledger.Categories() {
		if sum, ok := sums[cat]; ok {
			lines = append(lines, fmt.Sprintf("%s\t%.2f", cat, sum))
		}
	}
	return lines
}
