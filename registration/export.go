package registration

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"time"
)

var csvHeader = []string{
	"Id",
	"Full Name",
	"Email",
	"Mobile Number",
	"Address",
	"Enterprise",
	"Sponsor Name",
	"Sponsor Phone",
	"Amount",
	"Payment Status",
	"Transaction ID",
	"Created At",
}

// ExportCSV writes every registration as CSV, newest first, and returns the
// number of data rows written. An empty store is reported as
// REASON_NO_REGISTRATIONS rather than producing a header-only file, so that
// "nothing to export" stays distinguishable from a successful export.
func ExportCSV(ctx context.Context, w io.Writer, repo Repository) (int, error) {
	regs, err := repo.ListRegistrations(ctx)
	if err != nil {
		return 0, err
	}

	if len(regs) == 0 {
		return 0, NewNoRegistrationsError()
	}

	csvWriter := csv.NewWriter(w)

	err = csvWriter.Write(csvHeader)
	if err != nil {
		return 0, fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, reg := range regs {
		err = csvWriter.Write(csvRow(reg))
		if err != nil {
			return 0, fmt.Errorf("failed to write CSV row for registration %q: %w", reg.ID, err)
		}
	}

	csvWriter.Flush()
	if err := csvWriter.Error(); err != nil {
		return 0, fmt.Errorf("failed to flush CSV: %w", err)
	}

	return len(regs), nil
}

func csvRow(reg Registration) []string {
	transactionID := ""
	if reg.TransactionID != nil {
		transactionID = *reg.TransactionID
	}

	return []string{
		reg.ID.String(),
		reg.FullName,
		reg.Email,
		reg.MobileNumber,
		reg.Address,
		reg.Enterprise,
		reg.SponsorName,
		reg.SponsorPhone,
		fmt.Sprintf("%.2f", reg.Amount.AsMajorUnits()),
		string(reg.PaymentStatus),
		transactionID,
		reg.CreatedAt.Format(time.RFC3339),
	}
}
