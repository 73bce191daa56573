package sim

import (
	"encoding/csv"
	"os"
	"strconv"
)

// WriteLedgerCSV writes the run's ledger, one row per time step, with a column
// per resource plus import and shortage columns.
func WriteLedgerCSV(path string, res *Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{"ix"}
	header = append(header, res.SourceNames...)
	header = append(header, res.StorageNames...)
	if res.HasCrossBorder {
		header = append(header, "import")
	}
	header = append(header, "shortage")
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range res.Ledger {
		row := []string{strconv.Itoa(r.Index)}
		for _, name := range res.SourceNames {
			row = append(row, fmtFloat(r.Sources[name]))
		}
		for _, name := range res.StorageNames {
			row = append(row, fmtFloat(r.Storage[name]))
		}
		if res.HasCrossBorder {
			row = append(row, fmtFloat(r.NetImport))
		}
		row = append(row, fmtFloat(r.Shortage))
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
