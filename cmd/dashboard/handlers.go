package main

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"time"

	"trade-dashboard-go/internal/analysis"
	"trade-dashboard-go/internal/chart"
	"trade-dashboard-go/internal/config"
	"trade-dashboard-go/internal/dashboard"
	"trade-dashboard-go/internal/database"
	"trade-dashboard-go/internal/session"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	sessionCookie    = "session_id"
	maxUploadMemory  = 64 << 20
	tmplIndex        = "index.html"
	tmplDashboard    = "dashboard.html"
	msgNoFiles       = "No files selected. Choose at least one trade history file."
	msgBadThreshold  = "The day/swing threshold must be a positive number of hours."
	msgUploadRunning = "An upload is already in progress. Wait for it to finish."
)

// Handler holds dependencies for the dashboard endpoints.
type Handler struct {
	log      *zap.Logger
	cfg      *config.Config
	store    *database.TradeStore
	sessions *session.Manager
	client   analysis.ClientInterface
	tmpl     *template.Template
}

// NewHandler creates a new Handler.
func NewHandler(log *zap.Logger, cfg *config.Config, store *database.TradeStore,
	sessions *session.Manager, client analysis.ClientInterface, tmpl *template.Template) *Handler {
	return &Handler{
		log:      log,
		cfg:      cfg,
		store:    store,
		sessions: sessions,
		client:   client,
		tmpl:     tmpl,
	}
}

// sessionID returns the browser's session ID, minting a cookie on first visit.
func (h *Handler) sessionID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(sessionCookie); err == nil && c.Value != "" {
		return c.Value
	}
	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
	})
	return id
}

func (h *Handler) render(w http.ResponseWriter, name string, data any) {
	var buf bytes.Buffer
	if err := h.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		h.log.Error("Template execution failed", zap.String("template", name), zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

type indexView struct {
	Flash          string
	ThresholdHours int
}

// IndexHandler renders the upload page.
func (h *Handler) IndexHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	sid := h.sessionID(w, r)
	h.render(w, tmplIndex, indexView{
		Flash:          h.sessions.PopFlash(sid),
		ThresholdHours: h.cfg.Dashboard.DefaultThresholdHours,
	})
}

// UploadHandler forwards the selected files to the analysis server and, on
// success, replaces the session's trade list and resets the view.
func (h *Handler) UploadHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	sid := h.sessionID(w, r)

	flashAndRedirect := func(msg, target string) {
		h.sessions.SetFlash(sid, msg)
		http.Redirect(w, r, target, http.StatusSeeOther)
	}

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		flashAndRedirect(msgNoFiles, "/")
		return
	}
	headers := r.MultipartForm.File["files"]
	if len(headers) == 0 {
		flashAndRedirect(msgNoFiles, "/")
		return
	}

	threshold := h.cfg.Dashboard.DefaultThresholdHours
	if raw := r.FormValue("threshold_hours"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 {
			flashAndRedirect(msgBadThreshold, "/")
			return
		}
		threshold = v
	}

	if !h.sessions.BeginUpload(sid) {
		flashAndRedirect(msgUploadRunning, "/")
		return
	}
	defer h.sessions.EndUpload(sid)

	files := make([]analysis.File, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			flashAndRedirect(fmt.Sprintf("Could not read %s: %v", fh.Filename, err), "/")
			return
		}
		defer f.Close()
		files = append(files, analysis.File{Name: fh.Filename, Reader: f})
	}

	trades, err := h.client.Analyze(r.Context(), files, threshold)
	if err != nil {
		var mixed *analysis.MixedFilesError
		if errors.As(err, &mixed) {
			// Server-signaled domain error: show the message and navigate
			// back to the upload page. No state mutation.
			h.log.Warn("Mixed file types rejected by analysis server", zap.String("session", sid))
			flashAndRedirect(mixed.Message, "/")
			return
		}
		h.log.Error("Analysis upload failed", zap.String("session", sid), zap.Error(err))
		target := "/"
		if h.sessions.Snapshot(sid).HasTrades {
			target = "/dashboard"
		}
		flashAndRedirect(err.Error(), target)
		return
	}

	if err := h.store.Replace(sid, trades); err != nil {
		h.log.Error("Failed to store trades", zap.String("session", sid), zap.Error(err))
		flashAndRedirect("Failed to store analysis results.", "/")
		return
	}
	h.sessions.ResetView(sid)

	h.log.Info("Upload processed",
		zap.String("session", sid),
		zap.Int("files", len(files)),
		zap.Int("trades", len(trades)),
	)
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

type kpiView struct {
	TotalPnL      string
	TotalClass    string
	TradeCount    int
	DayTradePnL   string
	DayClass      string
	SwingTradePnL string
	SwingClass    string
}

type rowView struct {
	ID                 string
	Contract           string
	Type               string
	OpenTime           string
	CloseTime          string
	HoldingPeriod      string
	PnL                string
	PnLClass           string
	TradeFees          string
	FundingFee         string
	CumulativePnL      string
	CumulativePnLClass string
	CumulativeFees     string
}

type dashboardView struct {
	Flash     string
	Contracts []string
	Selected  string
	KPI       kpiView
	ChartURL  string
	Rows      []rowView
	Page      dashboard.Page
	Window    []int
	PrevPage  int
	NextPage  int
	PageSizes []int
}

// DashboardHandler applies any view-state change carried in the query string
// and re-renders the whole dashboard: KPIs, chart, table, and pagination.
func (h *Handler) DashboardHandler(w http.ResponseWriter, r *http.Request) {
	sid := h.sessionID(w, r)
	st := h.sessions.Snapshot(sid)
	if !st.HasTrades {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	q := r.URL.Query()
	if q.Has("contract") {
		if c := q.Get("contract"); c != st.Contract {
			h.sessions.SetContract(sid, c)
		}
	}
	if raw := q.Get("size"); raw != "" {
		if size, err := strconv.Atoi(raw); err == nil && h.allowedPageSize(size) && size != st.PageSize {
			h.sessions.SetPageSize(sid, size)
		}
	}
	if raw := q.Get("page"); raw != "" {
		if page, err := strconv.Atoi(raw); err == nil {
			h.sessions.SetPage(sid, page)
		}
	}
	st = h.sessions.Snapshot(sid)

	trades, err := h.store.BySession(sid)
	if err != nil {
		h.log.Error("Failed to load trades", zap.String("session", sid), zap.Error(err))
		http.Error(w, "failed to load trades", http.StatusInternalServerError)
		return
	}

	filtered := dashboard.FilterByContract(trades, st.Contract)
	kpi := dashboard.Aggregate(filtered, h.cfg.Dashboard.DayTradeLabel, h.cfg.Dashboard.SwingTradeLabel)
	rows, page := dashboard.Paginate(filtered, st.Page, st.PageSize)
	if page.Number != st.Page {
		// Requested page was out of range; persist the clamped value.
		h.sessions.SetPage(sid, page.Number)
	}

	view := dashboardView{
		Flash:     h.sessions.PopFlash(sid),
		Contracts: dashboard.Contracts(trades),
		Selected:  st.Contract,
		KPI: kpiView{
			TotalPnL:      dashboard.FormatCurrency(kpi.TotalPnL),
			TotalClass:    dashboard.SignClass(kpi.TotalPnL),
			TradeCount:    kpi.TradeCount,
			DayTradePnL:   dashboard.FormatCurrency(kpi.DayTradePnL),
			DayClass:      dashboard.SignClass(kpi.DayTradePnL),
			SwingTradePnL: dashboard.FormatCurrency(kpi.SwingTradePnL),
			SwingClass:    dashboard.SignClass(kpi.SwingTradePnL),
		},
		ChartURL:  "/chart.png?v=" + strconv.FormatInt(time.Now().UnixNano(), 10),
		Page:      page,
		Window:    dashboard.PageWindow(page.TotalPages, page.Number, dashboard.MaxPageButtons),
		PrevPage:  page.Number - 1,
		NextPage:  page.Number + 1,
		PageSizes: h.cfg.Dashboard.PageSizes,
	}
	for _, t := range rows {
		view.Rows = append(view.Rows, rowView{
			ID:                 t.TradeID,
			Contract:           t.Contract,
			Type:               t.Type,
			OpenTime:           t.OpenTime.Format(analysis.TimeLayout),
			CloseTime:          t.CloseTime.Format(analysis.TimeLayout),
			HoldingPeriod:      t.HoldingPeriod,
			PnL:                dashboard.FormatCurrency(t.PnL),
			PnLClass:           dashboard.SignClass(t.PnL),
			TradeFees:          dashboard.FormatCurrency(t.TradeFees),
			FundingFee:         dashboard.FormatCurrency(t.FundingFee),
			CumulativePnL:      dashboard.FormatCurrency(t.CumulativePnL),
			CumulativePnLClass: dashboard.SignClass(t.CumulativePnL),
			CumulativeFees:     dashboard.FormatCurrency(t.CumulativeFees),
		})
	}

	h.render(w, tmplDashboard, view)
}

// ChartHandler renders the cumulative P&L chart for the session's current
// filter. The image is rebuilt from scratch on every request.
func (h *Handler) ChartHandler(w http.ResponseWriter, r *http.Request) {
	sid := h.sessionID(w, r)
	st := h.sessions.Snapshot(sid)
	if !st.HasTrades {
		http.NotFound(w, r)
		return
	}

	trades, err := h.store.BySession(sid)
	if err != nil {
		h.log.Error("Failed to load trades for chart", zap.String("session", sid), zap.Error(err))
		http.Error(w, "failed to load trades", http.StatusInternalServerError)
		return
	}

	filtered := dashboard.FilterByContract(trades, st.Contract)
	series := dashboard.CumulativeSeries(filtered)

	var buf bytes.Buffer
	if err := chart.RenderPNG(series, &buf); err != nil {
		h.log.Error("Chart rendering failed", zap.String("session", sid), zap.Error(err))
		http.Error(w, "chart rendering failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = buf.WriteTo(w)
}

func (h *Handler) allowedPageSize(size int) bool {
	for _, s := range h.cfg.Dashboard.PageSizes {
		if s == size {
			return true
		}
	}
	return false
}
