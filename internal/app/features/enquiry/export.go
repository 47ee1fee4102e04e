// internal/app/features/enquiry/export.go
package enquiry

import (
	"encoding/csv"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// utf8BOM makes spreadsheet applications detect the encoding.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// export downloads the full enquiry list as a CSV spreadsheet.
func (h *Handler) export(w http.ResponseWriter, r *http.Request) {
	enquiries, err := h.enquiries.ListAll(r.Context())
	if err != nil {
		h.errLog.Log(r, "failed to list enquiries for export", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	filename := "enquiries-" + time.Now().Format("2006-01-02") + ".csv"
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.Write(utf8BOM)

	cw := csv.NewWriter(w)
	cw.UseCRLF = true
	cw.Write([]string{"Date", "Name", "Email", "Phone", "Subject", "Message", "Status"})
	for _, enq := range enquiries {
		cw.Write([]string{
			enq.CreatedAt.Format("2006-01-02 15:04"),
			enq.Name,
			enq.Email,
			enq.Phone,
			enq.Subject,
			enq.Message,
			strings.ToUpper(enq.Status),
		})
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		h.logger.Warn("failed to write enquiry export", zap.Error(err))
	}
}
