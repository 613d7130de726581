package api

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rise-summit/event-registration/registration"
)

func (a *API) exportRegistrations(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := a.getLoggerOrBaseLogger(ctx)

	var buf bytes.Buffer
	numRows, err := registration.ExportCSV(ctx, &buf, a.db)
	if err != nil {
		var registrationErr *registration.Error
		if errors.As(err, &registrationErr) && registrationErr.Reason == registration.REASON_NO_REGISTRATIONS {
			logger.Warn("Export requested with no registrations stored")

			a.writeError(ctx, w, http.StatusNotFound, "No registrations found")
			return
		}

		logger.Error("Failed to export registrations", "error", err)

		a.writeError(ctx, w, http.StatusInternalServerError, "Export failed")
		return
	}

	logger.Info("Exported registrations", "rows", numRows)

	filename := fmt.Sprintf("registrations_%s.csv", time.Now().UTC().Format(time.DateOnly))

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
