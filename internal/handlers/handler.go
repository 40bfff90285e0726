// Package handlers exposes the wizard over HTTP: one session cookie per
// browser, one route per page, and the generated documents as downloads.
package handlers

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/a-h/templ"
	"github.com/google/uuid"

	"github.com/thandol/j101-generator/internal/adapters/j101"
	"github.com/thandol/j101-generator/internal/adapters/report"
	"github.com/thandol/j101-generator/internal/domain"
	"github.com/thandol/j101-generator/internal/export"
	"github.com/thandol/j101-generator/internal/ports"
	"github.com/thandol/j101-generator/internal/templates"
	"github.com/thandol/j101-generator/internal/wizard"
)

const sessionCookie = "j101_session"

// Config carries the handler-level settings.
type Config struct {
	// TemplatePath locates the fillable J101 PDF template.
	TemplatePath string
	// ClearAfterGenerate wipes the session once the form has been
	// downloaded. Off by default to make repeat downloads painless.
	ClearAfterGenerate bool
	// DevAutofill enables the /dev-autofill route that seeds a session
	// with sample data. Never enable outside development.
	DevAutofill bool
}

type Handler struct {
	store  ports.SessionStore
	filler ports.FormFiller
	nav    *wizard.Navigator
	mapper *j101.Mapper
	cfg    Config
	log    *slog.Logger
}

func New(store ports.SessionStore, filler ports.FormFiller, nav *wizard.Navigator, mapper *j101.Mapper, cfg Config, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{store: store, filler: filler, nav: nav, mapper: mapper, cfg: cfg, log: log}
}

func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", h.landing)
	mux.HandleFunc("GET /start", h.showStep)
	mux.HandleFunc("POST /start", h.submitStep)
	mux.HandleFunc("GET /summary", h.summary)
	mux.HandleFunc("GET /generate_pdf", h.generatePDF)
	mux.HandleFunc("GET /downloads", h.downloads)
	mux.HandleFunc("GET /downloads/checklist.pdf", h.downloadChecklist)
	mux.HandleFunc("GET /downloads/summary.csv", h.downloadCSV)
	mux.HandleFunc("GET /downloads/summary.xlsx", h.downloadXLSX)
	if h.cfg.DevAutofill {
		mux.HandleFunc("GET /dev-autofill", h.devAutofill)
	}
	return mux
}

// session returns the request's session ID, setting the cookie on first
// contact.
func (h *Handler) session(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(sessionCookie); err == nil && c.Value != "" {
		return c.Value
	}
	sid := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    sid,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return sid
}

func (h *Handler) loadState(w http.ResponseWriter, r *http.Request) (string, *domain.WizardState, bool) {
	sid := h.session(w, r)
	st, err := h.store.Load(r.Context(), sid)
	if err != nil {
		h.log.Error("load session", "err", err)
		http.Error(w, "session error", http.StatusInternalServerError)
		return "", nil, false
	}
	return sid, st, true
}

func (h *Handler) landing(w http.ResponseWriter, r *http.Request) {
	render(w, r, templates.Landing())
}

// showStep renders the wizard page for ?step=, clamped to the furthest
// step the session may legally reach.
func (h *Handler) showStep(w http.ResponseWriter, r *http.Request) {
	_, st, ok := h.loadState(w, r)
	if !ok {
		return
	}
	id := h.nav.Resolve(st, domain.StepID(r.URL.Query().Get("step")))
	render(w, r, templates.Step(buildStepView(h.nav, st, id, nil, nil)))
}

func (h *Handler) submitStep(w http.ResponseWriter, r *http.Request) {
	sid, st, ok := h.loadState(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	id := h.nav.Resolve(st, domain.StepID(r.URL.Query().Get("step")))
	next, done, errs := h.nav.Submit(st, id, r.PostForm)
	if errs.Any() {
		// Rejected: nothing was stored, re-render with the submitted
		// values and messages.
		render(w, r, templates.Step(buildStepView(h.nav, st, id, r.PostForm, errs)))
		return
	}
	if err := h.store.Save(r.Context(), sid, st); err != nil {
		h.log.Error("save session", "err", err)
		http.Error(w, "session error", http.StatusInternalServerError)
		return
	}
	if done {
		http.Redirect(w, r, "/summary", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/start?step="+url.QueryEscape(string(next)), http.StatusSeeOther)
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	_, st, ok := h.loadState(w, r)
	if !ok {
		return
	}
	render(w, r, templates.Summary(summaryView(export.Rows(st, h.nav.Pipeline()))))
}

func (h *Handler) generatePDF(w http.ResponseWriter, r *http.Request) {
	sid, st, ok := h.loadState(w, r)
	if !ok {
		return
	}
	if st.Empty() {
		http.Redirect(w, r, "/start", http.StatusSeeOther)
		return
	}

	fields := h.mapper.BuildFieldData(st, time.Now())
	var buf bytes.Buffer
	if err := h.filler.Fill(r.Context(), h.cfg.TemplatePath, fields, &buf); err != nil {
		h.log.Error("fill form", "err", err)
		http.Error(w, "could not generate the form", http.StatusInternalServerError)
		return
	}

	name := st.Record(domain.StepApplicant).Get("full_name")
	if name == "" {
		name = "user"
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="maintenance_application_%s.pdf"`, name))
	w.Write(buf.Bytes())

	if h.cfg.ClearAfterGenerate {
		if err := h.store.Delete(r.Context(), sid); err != nil {
			h.log.Error("clear session", "err", err)
		}
	}
}

func (h *Handler) downloads(w http.ResponseWriter, r *http.Request) {
	render(w, r, templates.Downloads(templates.DownloadsView{Docs: report.SupportingDocs}))
}

func (h *Handler) downloadChecklist(w http.ResponseWriter, r *http.Request) {
	_, st, ok := h.loadState(w, r)
	if !ok {
		return
	}
	if st.Empty() {
		http.Redirect(w, r, "/start", http.StatusSeeOther)
		return
	}
	var buf bytes.Buffer
	if err := report.Generate(export.Rows(st, h.nav.Pipeline()), &buf); err != nil {
		h.log.Error("generate checklist", "err", err)
		http.Error(w, "could not generate the checklist", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="supporting_documents_checklist.pdf"`)
	w.Write(buf.Bytes())
}

func (h *Handler) downloadCSV(w http.ResponseWriter, r *http.Request) {
	_, st, ok := h.loadState(w, r)
	if !ok {
		return
	}
	if st.Empty() {
		http.Redirect(w, r, "/start", http.StatusSeeOther)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="application_summary.csv"`)
	if err := export.WriteCSV(w, export.Rows(st, h.nav.Pipeline())); err != nil {
		h.log.Error("write csv", "err", err)
	}
}

func (h *Handler) downloadXLSX(w http.ResponseWriter, r *http.Request) {
	_, st, ok := h.loadState(w, r)
	if !ok {
		return
	}
	if st.Empty() {
		http.Redirect(w, r, "/start", http.StatusSeeOther)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="application_summary.xlsx"`)
	if err := export.WriteXLSX(w, export.Rows(st, h.nav.Pipeline())); err != nil {
		h.log.Error("write xlsx", "err", err)
	}
}

// summaryView groups flat export rows into per-section blocks, preserving
// row order.
func summaryView(rows []export.Row) templates.SummaryView {
	var view templates.SummaryView
	for _, r := range rows {
		n := len(view.Sections)
		if n == 0 || view.Sections[n-1].Title != r.Section {
			view.Sections = append(view.Sections, templates.SummarySection{Title: r.Section})
			n++
		}
		sec := &view.Sections[n-1]
		sec.Items = append(sec.Items, templates.QA{Question: r.Question, Answer: r.Answer})
	}
	return view
}

// render writes a templ component to the response.
func render(w http.ResponseWriter, r *http.Request, c templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := c.Render(r.Context(), w); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
