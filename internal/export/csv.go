package export

import (
	"encoding/csv"
	"fmt"
	"os"

	"lifeboard/internal/store"
)

// ExpensesToCSV writes the expense collection as a spreadsheet-friendly
// file. Income rows keep their negative sign.
func ExpensesToCSV(expenses []store.Expense, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"ID", "Title", "Amount", "Category", "Date"}); err != nil {
		return err
	}

	for _, e := range expenses {
		row := []string{
			e.ID,
			e.Title,
			fmt.Sprintf("%.2f", e.Amount),
			string(e.Category),
			e.Date,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}
