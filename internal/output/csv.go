package output

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/its-camilo/AgenticNodes/internal/domain"
)

// CSVFormatter writes the negotiated terms table (one row per term).
type CSVFormatter struct{}

func (CSVFormatter) Name() string { return "csv" }

func (CSVFormatter) Format(w io.Writer, resp *domain.SimulationResponse) error {
	cw := csv.NewWriter(w)
	header := []string{"Material", "SupplierID", "Qty", "UnitPriceEst", "Subtotal", "Currency", "LeadTimeDays"}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, t := range resp.Report.Negotiation.Terms {
		row := []string{
			t.Material,
			t.SupplierID,
			strconv.FormatInt(t.Qty, 10),
			t.UnitPriceEst.StringFixed(2),
			t.Subtotal.StringFixed(2),
			t.Currency,
			strconv.Itoa(t.LeadTimeDays),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
