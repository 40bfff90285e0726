package handlers_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thandol/j101-generator/internal/adapters/j101"
	"github.com/thandol/j101-generator/internal/domain"
	"github.com/thandol/j101-generator/internal/handlers"
	"github.com/thandol/j101-generator/internal/wizard"
)

const testSID = "test-session"

type memStore struct {
	states  map[string]*domain.WizardState
	deleted []string
}

func newMemStore() *memStore {
	return &memStore{states: map[string]*domain.WizardState{}}
}

func (s *memStore) Load(_ context.Context, sid string) (*domain.WizardState, error) {
	if st, ok := s.states[sid]; ok {
		return st, nil
	}
	return domain.NewWizardState(domain.DefaultPipeline()), nil
}

func (s *memStore) Save(_ context.Context, sid string, st *domain.WizardState) error {
	s.states[sid] = st
	return nil
}

func (s *memStore) Delete(_ context.Context, sid string) error {
	delete(s.states, sid)
	s.deleted = append(s.deleted, sid)
	return nil
}

type stubFiller struct {
	fields map[string]string
}

func (f *stubFiller) Fill(_ context.Context, _ string, fields map[string]string, w io.Writer) error {
	f.fields = fields
	_, err := w.Write([]byte("%PDF-stub"))
	return err
}

func newTestHandler(t *testing.T, store *memStore, filler *stubFiller, cfg handlers.Config) http.Handler {
	t.Helper()
	nav, err := wizard.NewNavigator(domain.DefaultPipeline(), wizard.Validators(nil))
	require.NoError(t, err)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return handlers.New(store, filler, nav, j101.NewMapper(log), cfg, log).Routes()
}

func get(h http.Handler, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", path, nil)
	req.AddCookie(&http.Cookie{Name: "j101_session", Value: testSID})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func post(h http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: "j101_session", Value: testSID})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func applicantForm() url.Values {
	return url.Values{
		"full_name":           {"Mary Applicant"},
		"id_number":           {"8501155180085"},
		"residential_address": {"123 Sample Street"},
		"contact_phone":       {"0821234567"},
	}
}

func fullState() *domain.WizardState {
	st := domain.NewWizardState(domain.DefaultPipeline())
	st.SetRecord(domain.StepApplicant, domain.StepRecord{
		"full_name": "Mary Applicant", "id_number": "8501155180085",
		"residential_address": "123 Sample Street", "contact_phone": "0821234567",
	})
	st.SetRecord(domain.StepRespondent, domain.StepRecord{
		"full_name": "John Respondent", "home_address": "789 Other Road",
	})
	st.SetList(domain.StepChildren, []domain.StepRecord{
		{"full_name": "Thabo Junior", "date_of_birth": "2015-06-10"},
	})
	st.SetRecord(domain.StepIncome, domain.StepRecord{"gross_salary": "25000.00"})
	st.SetRecord(domain.StepFinancials, domain.StepRecord{
		"legally_liable_reason":     "Biological father.",
		"child_in_care_reason":      "Primary caregiver.",
		"total_maintenance_claimed": "8000.00",
	})
	return st
}

func TestLandingPage(t *testing.T) {
	h := newTestHandler(t, newMemStore(), &stubFiller{}, handlers.Config{})
	rec := get(h, "/")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "START APPLICATION")
}

func TestShowFirstStep(t *testing.T) {
	h := newTestHandler(t, newMemStore(), &stubFiller{}, handlers.Config{})
	rec := get(h, "/start")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "What is your full name?")
}

func TestStepNavigationClamped(t *testing.T) {
	store := newMemStore()
	st := domain.NewWizardState(domain.DefaultPipeline())
	st.SetRecord(domain.StepApplicant, domain.StepRecord{"full_name": "Mary"})
	store.states[testSID] = st

	h := newTestHandler(t, store, &stubFiller{}, handlers.Config{})
	// Only the first step is completed; asking for the financials step
	// lands on the respondent step instead.
	rec := get(h, "/start?step=financials")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "the other parent")
}

func TestSubmitValidStepAdvances(t *testing.T) {
	store := newMemStore()
	h := newTestHandler(t, store, &stubFiller{}, handlers.Config{})

	rec := post(h, "/start?step=applicant_details", applicantForm())
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/start?step=respondent_details", rec.Header().Get("Location"))

	saved := store.states[testSID]
	require.NotNil(t, saved)
	assert.Equal(t, "Mary Applicant", saved.Record(domain.StepApplicant).Get("full_name"))
	assert.Equal(t, domain.StepRespondent, saved.Current)
}

func TestSubmitInvalidStepRerenders(t *testing.T) {
	store := newMemStore()
	h := newTestHandler(t, store, &stubFiller{}, handlers.Config{})

	form := applicantForm()
	form.Del("full_name")
	rec := post(h, "/start?step=applicant_details", form)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Please enter your full name.")
	// Submitted values survive the round trip.
	assert.Contains(t, rec.Body.String(), "8501155180085")
	// Nothing was persisted.
	assert.Nil(t, store.states[testSID])
}

func TestFinalStepRedirectsToSummary(t *testing.T) {
	store := newMemStore()
	st := fullState()
	delete(st.Records, domain.StepFinancials)
	st.Current = domain.StepFinancials
	store.states[testSID] = st

	h := newTestHandler(t, store, &stubFiller{}, handlers.Config{})
	form := url.Values{
		"legally_liable_reason":     {"Biological father."},
		"child_in_care_reason":      {"Primary caregiver."},
		"total_maintenance_claimed": {"8000.00"},
	}
	rec := post(h, "/start?step=financials", form)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/summary", rec.Header().Get("Location"))
}

func TestSummaryShowsAnswers(t *testing.T) {
	store := newMemStore()
	store.states[testSID] = fullState()
	h := newTestHandler(t, store, &stubFiller{}, handlers.Config{})

	rec := get(h, "/summary")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Mary Applicant")
	assert.Contains(t, rec.Body.String(), "Child Details 1")
}

func TestGeneratePDFEmptySessionRedirects(t *testing.T) {
	h := newTestHandler(t, newMemStore(), &stubFiller{}, handlers.Config{})
	rec := get(h, "/generate_pdf")
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/start", rec.Header().Get("Location"))
}

func TestGeneratePDF(t *testing.T) {
	store := newMemStore()
	store.states[testSID] = fullState()
	filler := &stubFiller{}
	h := newTestHandler(t, store, filler, handlers.Config{TemplatePath: "j101.pdf"})

	rec := get(h, "/generate_pdf")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "maintenance_application_Mary Applicant.pdf")
	assert.Equal(t, "%PDF-stub", rec.Body.String())

	// The mapper's output reached the filler.
	assert.Equal(t, "Mary Applicant", filler.fields["p1_applicant_name"])
	assert.Equal(t, "8000.00", filler.fields["p2_claim_total"])

	// Session kept by default.
	assert.Empty(t, store.deleted)
}

func TestGeneratePDFClearsSessionWhenConfigured(t *testing.T) {
	store := newMemStore()
	store.states[testSID] = fullState()
	h := newTestHandler(t, store, &stubFiller{}, handlers.Config{ClearAfterGenerate: true})

	rec := get(h, "/generate_pdf")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{testSID}, store.deleted)
}

func TestDownloadCSV(t *testing.T) {
	store := newMemStore()
	store.states[testSID] = fullState()
	h := newTestHandler(t, store, &stubFiller{}, handlers.Config{})

	rec := get(h, "/downloads/summary.csv")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.HasPrefix(body, "Section,Question,Answer\n"), "unexpected header: %q", body)
	assert.Contains(t, body, "Applicant Details,Full Name,Mary Applicant")
}

func TestDownloadsEmptySessionRedirects(t *testing.T) {
	h := newTestHandler(t, newMemStore(), &stubFiller{}, handlers.Config{})
	for _, path := range []string{
		"/downloads/checklist.pdf",
		"/downloads/summary.csv",
		"/downloads/summary.xlsx",
	} {
		rec := get(h, path)
		require.Equal(t, http.StatusSeeOther, rec.Code, path)
		assert.Equal(t, "/start", rec.Header().Get("Location"), path)
	}
}

func TestDownloadsPageListsChecklist(t *testing.T) {
	h := newTestHandler(t, newMemStore(), &stubFiller{}, handlers.Config{})
	rec := get(h, "/downloads")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Birth certificate for each child")
}

func TestDevAutofillGated(t *testing.T) {
	h := newTestHandler(t, newMemStore(), &stubFiller{}, handlers.Config{})
	rec := get(h, "/dev-autofill")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDevAutofillSeedsSession(t *testing.T) {
	store := newMemStore()
	h := newTestHandler(t, store, &stubFiller{}, handlers.Config{DevAutofill: true})

	rec := get(h, "/dev-autofill")
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/summary", rec.Header().Get("Location"))

	st := store.states[testSID]
	require.NotNil(t, st)
	assert.Equal(t, "Mary Applicant", st.Record(domain.StepApplicant).Get("full_name"))
	assert.Len(t, st.List(domain.StepChildren), 2)
}
