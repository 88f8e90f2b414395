package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"salespulse/internal/analytics"
	"salespulse/internal/annotations"
	apierrors "salespulse/internal/errors"
	"salespulse/internal/exporter"
	"salespulse/internal/report"
	"salespulse/internal/store"
)

// ReportHandler handles report and export HTTP requests
type ReportHandler struct {
	service     *report.Service
	store       *store.Store
	engine      *analytics.Engine
	annotations *annotations.Log
	logger      *slog.Logger
	validate    *validator.Validate
}

// NewReportHandler creates a new report handler
func NewReportHandler(service *report.Service, st *store.Store, engine *analytics.Engine, log *annotations.Log, logger *slog.Logger) *ReportHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReportHandler{
		service:     service,
		store:       st,
		engine:      engine,
		annotations: log,
		logger:      logger.With(slog.String("component", "report_handler")),
		validate:    validator.New(),
	}
}

// Routes returns the report routes
func (h *ReportHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/overview", h.GetOverview)
	r.Get("/series", h.GetSeries)
	r.Get("/performance", h.GetPerformance)
	r.Get("/segments", h.GetSegmentPerformance)
	r.Get("/executive", h.GetExecutive)
	r.Get("/export", h.Export)

	r.Route("/comments", func(r chi.Router) {
		r.Get("/", h.ListComments)
		r.Post("/", h.AddComment)
		r.Post("/replies", h.ReceiveEmailReply)
		r.Delete("/{id}", h.DeleteComment)
	})
	r.Route("/emails", func(r chi.Router) {
		r.Get("/", h.ListSentEmails)
		r.Post("/", h.SendEmail)
	})

	return r
}

// GetOverview returns the headline totals for the reporting period
func (h *ReportHandler) GetOverview(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, h.service.Overview(r.Context()))
}

// GetSeries returns the revenue series at the requested granularity
func (h *ReportHandler) GetSeries(w http.ResponseWriter, r *http.Request) {
	g := report.SeriesGranularity(r.URL.Query().Get("granularity"))
	switch g {
	case "", report.SeriesDaily:
		g = report.SeriesDaily
	case report.SeriesWeekly, report.SeriesMonthly:
	default:
		h.writeError(w, r, apierrors.NewValidationError(
			fmt.Sprintf("unsupported granularity %q", g)))
		return
	}
	render.JSON(w, r, map[string]interface{}{
		"granularity": g,
		"points":      h.service.RevenueSeries(r.Context(), g),
	})
}

// GetPerformance runs a single-granularity period comparison and ranks it
func (h *ReportHandler) GetPerformance(w http.ResponseWriter, r *http.Request) {
	dim, g, metric, err := h.comparisonParams(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	result, err := h.engine.Compare(r.Context(), h.store.All(), dim, g, metric)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	insight, err := analytics.Rank(result.Rows)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"comparison": result,
		"insight":    insight,
	})
}

// GetSegmentPerformance returns the merged WoW/MoM segment table
func (h *ReportHandler) GetSegmentPerformance(w http.ResponseWriter, r *http.Request) {
	dim, err := analytics.ParseDimension(h.queryDefault(r, "dimension", string(analytics.DimensionProduct)))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	perf, err := h.service.SegmentPerformance(r.Context(), dim)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	render.JSON(w, r, perf)
}

// GetExecutive returns the period-over-period executive summary
func (h *ReportHandler) GetExecutive(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, h.service.Executive(r.Context()))
}

// Export serializes a dataset to CSV or XLSX and serves it as a download
func (h *ReportHandler) Export(w http.ResponseWriter, r *http.Request) {
	format, err := exporter.ParseFormat(h.queryDefault(r, "format", string(exporter.FormatCSV)))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var table exporter.Table
	var prefix string
	switch dataset := h.queryDefault(r, "dataset", "records"); dataset {
	case "records":
		table = exporter.RecordTable(h.store.All())
		prefix = "sales_data"
	case "performance":
		dim, g, metric, err := h.comparisonParams(r)
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		result, err := h.engine.Compare(r.Context(), h.store.All(), dim, g, metric)
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		table = exporter.ComparisonTable(result)
		prefix = fmt.Sprintf("%s_performance", dim)
	default:
		h.writeError(w, r, apierrors.NewValidationError(
			fmt.Sprintf("unsupported dataset %q", dataset)))
		return
	}

	data, err := exporter.Serialize(table, format)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	filename := fmt.Sprintf("%s_%s.%s", prefix, time.Now().Format("20060102_150405"), format)
	if format == exporter.FormatXLSX {
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	} else {
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	}
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// commentRequest is the POST /comments payload
type commentRequest struct {
	Text string `json:"text" validate:"required"`
}

// replyRequest is the POST /comments/replies payload
type replyRequest struct {
	Sender  string `json:"sender" validate:"required,email"`
	Subject string `json:"subject"`
	Text    string `json:"text" validate:"required"`
}

// emailRequest is the POST /emails payload
type emailRequest struct {
	Recipient string `json:"recipient" validate:"required,email"`
	Subject   string `json:"subject"`
}

// ListComments returns comments, optionally filtered by source
func (h *ReportHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	source := annotations.Source(r.URL.Query().Get("source"))
	switch source {
	case "", annotations.SourceDashboard, annotations.SourceEmail:
	default:
		h.writeError(w, r, apierrors.NewValidationError(
			fmt.Sprintf("unsupported comment source %q", source)))
		return
	}
	render.JSON(w, r, map[string]interface{}{
		"comments": h.annotations.Comments(source),
	})
}

// AddComment appends a dashboard comment
func (h *ReportHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	var req commentRequest
	if err := h.decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	comment, err := h.annotations.Add(req.Text)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, comment)
}

// ReceiveEmailReply records a simulated inbound email reply
func (h *ReportHandler) ReceiveEmailReply(w http.ResponseWriter, r *http.Request) {
	var req replyRequest
	if err := h.decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	comment, err := h.annotations.ReceiveEmailReply(req.Sender, req.Subject, req.Text)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, comment)
}

// DeleteComment removes a comment by ID
func (h *ReportHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !h.annotations.Remove(id) {
		h.writeError(w, r, apierrors.NewNotFoundError("comment"))
		return
	}
	render.NoContent(w, r)
}

// SendEmail records a simulated outbound report delivery
func (h *ReportHandler) SendEmail(w http.ResponseWriter, r *http.Request) {
	var req emailRequest
	if err := h.decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	sent, err := h.annotations.RecordSend(req.Recipient, req.Subject)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	render.Status(r, http.StatusAccepted)
	render.JSON(w, r, map[string]interface{}{
		"sent":      sent,
		"simulated": true,
	})
}

// ListSentEmails returns the simulated send history
func (h *ReportHandler) ListSentEmails(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]interface{}{
		"emails": h.annotations.SentEmails(),
	})
}

// comparisonParams parses the shared comparison query parameters
func (h *ReportHandler) comparisonParams(r *http.Request) (analytics.Dimension, analytics.Granularity, analytics.Metric, error) {
	dim, err := analytics.ParseDimension(h.queryDefault(r, "dimension", string(analytics.DimensionProduct)))
	if err != nil {
		return "", "", "", err
	}
	g, err := analytics.ParseGranularity(h.queryDefault(r, "granularity", string(analytics.GranularityWeek)))
	if err != nil {
		return "", "", "", apierrors.NewValidationError(err.Error())
	}
	metric, err := analytics.ParseMetric(h.queryDefault(r, "metric", string(analytics.MetricRevenue)))
	if err != nil {
		return "", "", "", err
	}
	return dim, g, metric, nil
}

// decode binds and validates a JSON request body
func (h *ReportHandler) decode(r *http.Request, v interface{}) error {
	if err := render.DecodeJSON(r.Body, v); err != nil {
		return apierrors.NewValidationError(fmt.Sprintf("invalid request body: %v", err))
	}
	if err := h.validate.Struct(v); err != nil {
		return apierrors.NewValidationError(err.Error())
	}
	return nil
}

func (h *ReportHandler) queryDefault(r *http.Request, key, fallback string) string {
	if v := r.URL.Query().Get(key); v != "" {
		return v
	}
	return fallback
}
