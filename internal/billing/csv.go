package billing

import (
	"encoding/csv"
	"os"
	"sort"
	"strconv"
	"time"
)

// WriteLedgerCSV writes the per-timestep ledger with one column per cost
// bucket, in stable sorted column order.
func WriteLedgerCSV(path string, ledger []LedgerRow) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	components := map[string]bool{}
	for _, r := range ledger {
		for name := range r.Components {
			components[name] = true
		}
	}
	names := make([]string, 0, len(components))
	for name := range components {
		names = append(names, name)
	}
	sort.Strings(names)

	header := append([]string{"index", "timestamp", "cost", "cum_cost"}, names...)
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range ledger {
		row := []string{
			strconv.Itoa(r.Index),
			r.Timestamp.Format(time.RFC3339),
			fmtFloat(r.Cost),
			fmtFloat(r.CumCost),
		}
		for _, name := range names {
			row = append(row, fmtFloat(r.Components[name]))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
