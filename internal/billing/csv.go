package billing

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"

	"github.com/nitishagar/bharatdcim/internal/model"
)

// WriteHourlyCSV writes the hourly ledger with a header row.
func WriteHourlyCSV(out io.Writer, rows []model.HourlyRow) error {
	w := csv.NewWriter(out)

	header := []string{
		"hour",
		"slot",
		"category",
		"matched_slot",
		"rate",
		"load_weight",
		"consumption_kwh",
		"billed_units",
		"energy_charge",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range rows {
		row := []string{
			fmtHour(r.Hour),
			r.SlotName,
			string(r.Category),
			strconv.FormatBool(r.MatchedSlot),
			fmtFloat(r.Rate),
			fmtFloat(r.LoadWeight),
			fmtFloat(r.ConsumptionKWh),
			fmtFloat(r.BilledUnits),
			fmtFloat(r.EnergyCharge),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// WriteHourlyCSVFile writes the ledger to path, creating or truncating it.
func WriteHourlyCSVFile(path string, rows []model.HourlyRow) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteHourlyCSV(f, rows); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func fmtHour(h int) string {
	if h < 10 {
		return "0" + strconv.Itoa(h)
	}
	return strconv.Itoa(h)
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
