package handlers

import (
	"errors"
	"fmt"
	"time"

	"patient-profile-service/internal/bridge"
	"patient-profile-service/internal/domain/entities"
	"patient-profile-service/internal/draft"
	"patient-profile-service/internal/report"
	"patient-profile-service/internal/view"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// DirectoryResponse is the directory listing plus the sync state the UI
// renders alongside it.
type DirectoryResponse struct {
	Records      []entities.PatientRecord `json:"records"`
	Count        int                      `json:"count"`
	Status       bridge.Status            `json:"status"`
	SyncError    string                   `json:"syncError,omitempty"`
	AccessDenied bool                     `json:"accessDenied,omitempty"`
	LastSyncTime *time.Time               `json:"lastSyncTime,omitempty"`
}

// ValidationResponse carries the per-field errors and the section to reveal.
type ValidationResponse struct {
	Errors  map[string]string `json:"errors"`
	Section string            `json:"section"`
}

type RecordHandler struct {
	bridge  bridge.BridgeContract
	confirm *view.DeleteConfirm
	clip    report.Clipboard
	logger  *zap.Logger
}

func NewRecordHandler(b bridge.BridgeContract, confirm *view.DeleteConfirm, clip report.Clipboard, logger *zap.Logger) *RecordHandler {
	return &RecordHandler{
		bridge:  b,
		confirm: confirm,
		clip:    clip,
		logger:  logger,
	}
}

// ListRecords serves the filtered, sorted directory.
func (h *RecordHandler) ListRecords(c *fiber.Ctx) error {
	records := h.bridge.Records()
	records = view.Filter(records, c.Query("search"))
	records = view.Sort(records, view.ParseSortMode(c.Query("sort")))

	resp := DirectoryResponse{Records: records, Count: len(records)}
	status, err := h.bridge.Status()
	resp.Status = status
	if err != nil {
		resp.SyncError = err.Error()
		resp.AccessDenied = errors.Is(err, bridge.ErrPermissionDenied)
	}
	if t := h.bridge.LastSyncTime(); !t.IsZero() {
		resp.LastSyncTime = &t
	}
	return c.JSON(resp)
}

// GetRecord serves the active-record selection for the detail view.
func (h *RecordHandler) GetRecord(c *fiber.Ctx) error {
	record, ok := view.Select(h.bridge.Records(), c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "record not found"})
	}
	return c.JSON(record)
}

// CreateRecord validates and commits a new record. A blank id receives a
// fresh one here, matching the client-side creation flow.
func (h *RecordHandler) CreateRecord(c *fiber.Ctx) error {
	var record entities.PatientRecord
	if err := c.BodyParser(&record); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "could not parse record: " + err.Error()})
	}
	if record.ID == "" {
		record.ID = fmt.Sprintf("PAT-%d", time.Now().UnixMilli())
	}
	return h.commit(c, record)
}

// UpdateRecord validates and commits an edit of an existing record.
func (h *RecordHandler) UpdateRecord(c *fiber.Ctx) error {
	var record entities.PatientRecord
	if err := c.BodyParser(&record); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "could not parse record: " + err.Error()})
	}
	record.ID = c.Params("id")
	return h.commit(c, record)
}

// commit runs the validation gate and, when it passes, writes through the
// bridge. The stamped payload comes back in the response so the client can
// display it immediately instead of waiting for the next subscription tick.
func (h *RecordHandler) commit(c *fiber.Ctx, record entities.PatientRecord) error {
	d := draft.New(record)
	if res := d.Validate(); !res.Valid() {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(ValidationResponse{
			Errors:  res.Errors,
			Section: res.Section,
		})
	}
	if h.bridge.Syncing() {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "a sync operation is already in flight"})
	}

	stamped, err := h.bridge.Commit(c.Context(), d.Record())
	if err != nil {
		h.logger.Warn("commit failed", zap.String("id", record.ID), zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "Cloud Sync Failed: " + err.Error()})
	}
	return c.JSON(stamped)
}

// DeleteRecord implements the two-step gesture: the first call arms a
// confirmation window for this id, a second call inside it deletes.
func (h *RecordHandler) DeleteRecord(c *fiber.Ctx) error {
	id := c.Params("id")
	if !h.confirm.Press(id) {
		return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
			"status": "confirm",
			"detail": "repeat the request within the confirmation window to delete",
		})
	}
	if h.bridge.Syncing() {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "a sync operation is already in flight"})
	}
	if err := h.bridge.Delete(c.Context(), id); err != nil {
		h.logger.Warn("delete failed", zap.String("id", id), zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "Delete Failed: " + err.Error()})
	}
	return c.JSON(fiber.Map{"status": "deleted", "id": id})
}

// ExportRecord serves the report in the requested format.
func (h *RecordHandler) ExportRecord(c *fiber.Ctx) error {
	record, ok := view.Select(h.bridge.Records(), c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "record not found"})
	}

	switch c.Query("format", "pdf") {
	case "pdf":
		out, err := report.PDF(record)
		if err != nil {
			h.logger.Error("report generation failed", zap.String("id", record.ID), zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not generate report"})
		}
		c.Type("pdf")
		return c.Send(out)
	case "text":
		c.Type("txt")
		return c.SendString(report.Text(record))
	case "json":
		out, err := report.JSON(record)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not encode record"})
		}
		c.Type("json")
		return c.Send(out)
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "format must be pdf, text or json"})
	}
}

// CopyRecord copies a text or JSON snapshot to the host clipboard.
// Fire-and-forget: a clipboard failure is logged, not surfaced.
func (h *RecordHandler) CopyRecord(c *fiber.Ctx) error {
	record, ok := view.Select(h.bridge.Records(), c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "record not found"})
	}
	var content string
	if c.Query("format", "text") == "json" {
		out, err := report.JSON(record)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not encode record"})
		}
		content = string(out)
	} else {
		content = report.Text(record)
	}
	if err := h.clip.Copy(content); err != nil {
		h.logger.Warn("clipboard copy failed", zap.Error(err))
	}
	return c.JSON(fiber.Map{"status": "copied"})
}

// ExportRoster serves the XLSX directory roster.
func (h *RecordHandler) ExportRoster(c *fiber.Ctx) error {
	records := view.Sort(h.bridge.Records(), view.SortNewest)
	out, err := report.Roster(records)
	if err != nil {
		h.logger.Error("roster export failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not generate roster"})
	}
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="directory.xlsx"`)
	c.Type("xlsx")
	return c.Send(out)
}

// SetupRules serves the permission-fix snippet and copies it to the host
// clipboard for sharing.
func (h *RecordHandler) SetupRules(c *fiber.Ctx) error {
	if err := h.clip.Copy(report.SetupRules); err != nil {
		h.logger.Warn("clipboard copy failed", zap.Error(err))
	}
	c.Type("txt")
	return c.SendString(report.SetupRules)
}

// Reload reopens the subscription after an external configuration fix.
func (h *RecordHandler) Reload(c *fiber.Ctx) error {
	if err := h.bridge.Reload(c.Context()); err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "reload failed: " + err.Error()})
	}
	status, _ := h.bridge.Status()
	return c.JSON(fiber.Map{"status": status})
}

func RegisterRecordRoutes(app *fiber.App, h *RecordHandler) {
	app.Get("/records", h.ListRecords)
	app.Get("/records/export/roster", h.ExportRoster)
	app.Get("/records/:id", h.GetRecord)
	app.Post("/records", h.CreateRecord)
	app.Put("/records/:id", h.UpdateRecord)
	app.Delete("/records/:id", h.DeleteRecord)
	app.Get("/records/:id/report", h.ExportRecord)
	app.Post("/records/:id/copy", h.CopyRecord)
	app.Get("/setup/rules", h.SetupRules)
	app.Post("/reload", h.Reload)
}
