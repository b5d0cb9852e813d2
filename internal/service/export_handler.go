package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/mmynk/neondara/internal/export"
	"github.com/mmynk/neondara/internal/i18n"
	"github.com/mmynk/neondara/internal/middleware"
	"github.com/mmynk/neondara/internal/storage"
)

const (
	contentTypeCSV   = "text/csv; charset=utf-8"
	contentTypeXLSX  = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypeVCard = "text/vcard; charset=utf-8"
)

// ExportHandler serves file downloads of the owner's ledger and contacts.
// It expects middleware.RequireAuthHTTP in front of it.
type ExportHandler struct {
	store  storage.Store
	i18n   *i18n.Translator
	logger *slog.Logger
	now    func() time.Time
}

// NewExportHandler creates an ExportHandler.
func NewExportHandler(store storage.Store, translator *i18n.Translator, logger *slog.Logger) *ExportHandler {
	return &ExportHandler{store: store, i18n: translator, logger: logger, now: time.Now}
}

// Routes returns the download endpoints mounted under /export/.
func (h *ExportHandler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /export/entries.csv", h.entries("csv", contentTypeCSV, export.WriteCSV))
	mux.HandleFunc("GET /export/entries.xlsx", h.entries("xlsx", contentTypeXLSX, export.WriteXLSX))
	mux.HandleFunc("GET /export/people.vcf", h.people)
	return mux
}

type reportWriter func(io.Writer, *export.Report) error

// entries renders the ledger, or one person's history when personId is set.
func (h *ExportHandler) entries(ext, contentType string, write reportWriter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		userID := middleware.GetUserID(ctx)
		loc := h.i18n.FromRequest(r)
		personID := strings.TrimSpace(r.URL.Query().Get("personId"))

		var personName string
		if personID != "" {
			person, err := h.store.GetPerson(ctx, userID, personID)
			if errors.Is(err, storage.ErrNotFound) {
				http.Error(w, loc.T(i18n.PersonNotFound), http.StatusNotFound)
				return
			}
			if err != nil {
				h.fail(w, "load person", err)
				return
			}
			personName = person.Name
		}

		entries, err := h.store.ListEntries(ctx, userID, storage.EntryFilter{PersonID: personID})
		if err != nil {
			h.fail(w, "list entries", err)
			return
		}

		report, err := export.BuildReport(entries, loc)
		if errors.Is(err, export.ErrNoData) {
			http.Error(w, loc.T(i18n.NoDataToExport), http.StatusNotFound)
			return
		}
		if err != nil {
			h.fail(w, "build report", err)
			return
		}

		var buf bytes.Buffer
		if err := write(&buf, report); err != nil {
			h.fail(w, "write "+ext, err)
			return
		}

		h.logger.Info("Entries exported", "user_id", userID, "format", ext, "rows", len(report.Rows))
		h.send(ctx, w, export.Filename(personName, h.now(), ext), contentType, &buf)
	}
}

func (h *ExportHandler) people(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	loc := h.i18n.FromRequest(r)

	people, err := h.store.ListPeople(ctx, userID)
	if err != nil {
		h.fail(w, "list people", err)
		return
	}
	if len(people) == 0 {
		http.Error(w, loc.T(i18n.NoDataToExport), http.StatusNotFound)
		return
	}

	var buf bytes.Buffer
	if err := export.WriteVCards(&buf, people); err != nil {
		h.fail(w, "write vcards", err)
		return
	}

	h.logger.Info("People exported", "user_id", userID, "count", len(people))
	h.send(ctx, w, export.VCardFilename, contentTypeVCard, &buf)
}

func (h *ExportHandler) send(ctx context.Context, w http.ResponseWriter, filename, contentType string, body *bytes.Buffer) {
	header := w.Header()
	header.Set("Content-Type", contentType)
	header.Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
	header.Set("Cache-Control", "no-store")
	if _, err := body.WriteTo(w); err != nil {
		h.logger.WarnContext(ctx, "export write interrupted", "filename", filename, "error", err)
	}
}

func (h *ExportHandler) fail(w http.ResponseWriter, op string, err error) {
	h.logger.Error("export failed", "op", op, "error", err)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}
