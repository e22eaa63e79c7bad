package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"travelbuddies/internal/catalog"
	"travelbuddies/internal/domain/models"
	"travelbuddies/internal/http/middleware"
	"travelbuddies/internal/leads"
	"travelbuddies/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type memStore struct {
	mu    sync.Mutex
	leads []models.Lead
}

func (m *memStore) Enabled() bool { return true }

func (m *memStore) Insert(_ context.Context, l models.Lead) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.leads = append(m.leads, l)
	return nil
}

func (m *memStore) ListRecent(_ context.Context, kind string, limit int) ([]models.Lead, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Lead
	for i := len(m.leads) - 1; i >= 0 && len(out) < limit; i-- {
		if kind == "" || string(m.leads[i].Kind) == kind {
			out = append(out, m.leads[i])
		}
	}
	return out, nil
}

type stubRemote struct {
	err   error
	block chan struct{}
	calls int
	mu    sync.Mutex
}

func (s *stubRemote) SendBooking(ctx context.Context, _ models.BookingPayload) error {
	return s.send(ctx)
}

func (s *stubRemote) SendEnquiry(ctx context.Context, _ models.EnquiryPayload) error {
	return s.send(ctx)
}

func (s *stubRemote) send(ctx context.Context) error {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	if s.block != nil {
		select {
		case <-s.block:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return s.err
}

const testSecret = "handler-test-secret"

func newTestHandlers(t *testing.T, remote leads.Submitter) (*Handlers, *memStore) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)
	store := &memStore{}
	return &Handlers{
		Catalog:   catalog.Default(),
		Store:     store,
		Fallbacks: services.NewFallbackLog(10),
		Sessions:  leads.NewSessions(),
		Remote:    remote,
		Admin: AdminConfig{
			Username:     "ops",
			PasswordHash: string(hash),
			Secret:       []byte(testSecret),
			TokenTTL:     time.Hour,
		},
	}, store
}

func newEngine(hs *Handlers) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID())
	r.GET("/", hs.Index)
	r.GET("/api/health", hs.Health)
	r.GET("/api/site", hs.Site)
	r.GET("/api/trips/completed", hs.CompletedTrips)
	r.GET("/api/trips/upcoming", hs.UpcomingTrips)
	r.GET("/api/itineraries", hs.Itineraries)
	r.GET("/api/itineraries/:id/print", hs.PrintItinerary)
	r.GET("/api/itineraries/:id/pdf", hs.ItineraryPDF)
	r.POST("/forms/booking", hs.SubmitBookingForm)
	r.POST("/forms/enquiry", hs.SubmitEnquiryForm)
	r.POST("/api/send-booking", hs.SendBooking)
	r.POST("/api/send-enquiry", hs.SendEnquiry)
	r.POST("/api/admin/login", hs.AdminLogin)
	inbox := r.Group("/api/admin", middleware.AdminAuth(hs.Admin.Secret), middleware.RequireRoles(middleware.RoleAdmin))
	inbox.GET("/leads", hs.AdminLeads)
	inbox.GET("/fallbacks", hs.AdminFallbacks)
	return r
}

func do(r http.Handler, method, target, contentType, body string, headers ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

const validBookingForm = "tripId=shimla-manali-june&fullName=Priya+Sharma&email=priya%40example.com&phone=9876543210&travelers=2"

func TestUpcomingTripsSortedAndFiltered(t *testing.T) {
	hs, _ := newTestHandlers(t, nil)
	r := newEngine(hs)

	w := do(r, http.MethodGet, "/api/trips/upcoming?sort=price-high", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Trips []struct {
			ID             string `json:"id"`
			PricePerPerson int    `json:"pricePerPerson"`
			PriceLabel     string `json:"priceLabel"`
		} `json:"trips"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NotEmpty(t, body.Trips)
	for i := 1; i < len(body.Trips); i++ {
		assert.GreaterOrEqual(t, body.Trips[i-1].PricePerPerson, body.Trips[i].PricePerPerson)
	}
	assert.True(t, strings.HasSuffix(body.Trips[0].PriceLabel, " per person"))

	w = do(r, http.MethodGet, "/api/trips/upcoming?q=zzzz", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(0), decode(t, w)["count"])
}

func TestItineraryExports(t *testing.T) {
	hs, _ := newTestHandlers(t, nil)
	r := newEngine(hs)

	w := do(r, http.MethodGet, "/api/itineraries/shimla-manali-3day/print", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "Day 1:")

	w = do(r, http.MethodGet, "/api/itineraries/shimla-manali-3day/pdf", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "ITINERARY_shimla-manali-3day.pdf")

	w = do(r, http.MethodGet, "/api/itineraries/unknown/print", "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(r, http.MethodGet, "/api/itineraries?q=jallianwala", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decode(t, w)["count"])
}

func TestBookingFormSucceeds(t *testing.T) {
	remote := &stubRemote{}
	hs, _ := newTestHandlers(t, remote)
	r := newEngine(hs)

	w := do(r, http.MethodPost, "/forms/booking", "application/x-www-form-urlencoded", validBookingForm, FormSessionHeader, "s1")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decode(t, w)
	assert.Equal(t, string(leads.StateSucceeded), body["state"])
	assert.Equal(t, leads.MsgBookingSent, body["message"])
	assert.Nil(t, body["mailto"])
	assert.Equal(t, 1, remote.calls)
	assert.Equal(t, 0, hs.Sessions.Len(), "terminal state closes the session")
}

func TestBookingFormFallsBackToMailto(t *testing.T) {
	hs, _ := newTestHandlers(t, &stubRemote{err: leads.ErrRemoteUnavailable})
	r := newEngine(hs)

	w := do(r, http.MethodPost, "/forms/booking", "application/json",
		`{"tripId":"shimla-manali-june","fullName":"Priya","email":"priya@example.com","phone":"9876543210"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decode(t, w)
	assert.Equal(t, string(leads.StateFailedRemoteFallbackLocal), body["state"])
	assert.Equal(t, leads.MsgOpeningEmail, body["message"])

	mailto, _ := body["mailto"].(string)
	require.True(t, strings.HasPrefix(mailto, "mailto:"+hs.Catalog.Agency().Email+"?subject="), mailto)
	parsed, err := url.Parse(mailto)
	require.NoError(t, err)
	assert.Equal(t, "Booking Request: Shimla - Manali Summer Special", parsed.Query().Get("subject"))

	require.Len(t, hs.Fallbacks.Recent(), 1)
	assert.Equal(t, "shimla-manali-june", hs.Fallbacks.Recent()[0].TripID)
}

func TestFormValidationKeepsSessionOpen(t *testing.T) {
	remote := &stubRemote{}
	hs, _ := newTestHandlers(t, remote)
	r := newEngine(hs)

	w := do(r, http.MethodPost, "/forms/booking", "application/x-www-form-urlencoded",
		"tripId=shimla-manali-june&fullName=Priya&email=priya%40example.com&phone=12345", FormSessionHeader, "s2")
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	body := decode(t, w)
	assert.Equal(t, string(leads.StateIdle), body["state"])
	assert.Equal(t, "Please enter a valid 10-digit Indian phone number", body["error"])
	assert.Equal(t, "phone", body["field"])
	assert.Equal(t, 0, remote.calls)
	assert.Equal(t, 1, hs.Sessions.Len())

	w = do(r, http.MethodPost, "/forms/enquiry", "application/x-www-form-urlencoded",
		"fullName=Asha&email=asha%40example.com", FormSessionHeader, "s3")
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "Please fill in all required fields", decode(t, w)["error"])
}

func TestFormRejectsSecondSubmitWhileInFlight(t *testing.T) {
	remote := &stubRemote{block: make(chan struct{})}
	hs, _ := newTestHandlers(t, remote)
	r := newEngine(hs)

	first := make(chan *httptest.ResponseRecorder, 1)
	go func() {
		first <- do(r, http.MethodPost, "/forms/booking", "application/x-www-form-urlencoded", validBookingForm, FormSessionHeader, "dup")
	}()

	require.Eventually(t, func() bool {
		return hs.Sessions.Get("session:dup").Submitting()
	}, time.Second, 5*time.Millisecond)

	w := do(r, http.MethodPost, "/forms/booking", "application/x-www-form-urlencoded", validBookingForm, FormSessionHeader, "dup")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "conflict", decode(t, w)["code"])

	close(remote.block)
	res := <-first
	assert.Equal(t, http.StatusOK, res.Code)
	assert.Equal(t, 1, remote.calls)
}

func TestFormsWithoutSessionHeaderAreNotShared(t *testing.T) {
	remote := &stubRemote{block: make(chan struct{})}
	hs, _ := newTestHandlers(t, remote)
	r := newEngine(hs)

	results := make(chan *httptest.ResponseRecorder, 2)
	for i := 0; i < 2; i++ {
		go func() {
			results <- do(r, http.MethodPost, "/forms/booking", "application/x-www-form-urlencoded", validBookingForm)
		}()
	}
	require.Eventually(t, func() bool {
		remote.mu.Lock()
		defer remote.mu.Unlock()
		return remote.calls == 2
	}, time.Second, 5*time.Millisecond, "both visitors reach the remote")

	close(remote.block)
	for i := 0; i < 2; i++ {
		assert.Equal(t, http.StatusOK, (<-results).Code)
	}

	w := do(r, http.MethodPost, "/forms/enquiry", "application/x-www-form-urlencoded", "fullName=Asha")
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, 0, hs.Sessions.Len())
}

func TestSendBookingIntake(t *testing.T) {
	hs, store := newTestHandlers(t, nil)
	r := newEngine(hs)

	w := do(r, http.MethodPost, "/api/send-booking", "application/json",
		`{"tripId":"shimla-manali-june","fullName":"Priya","email":"priya@example.com","phone":"9876543210","travelers":"3"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	body := decode(t, w)
	assert.Equal(t, "booking", body["kind"])
	require.Len(t, store.leads, 1)
	assert.Equal(t, body["id"], store.leads[0].ID)

	w = do(r, http.MethodPost, "/api/send-booking", "application/json",
		`{"tripId":"atlantis","fullName":"Priya","email":"priya@example.com","phone":"9876543210"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(r, http.MethodPost, "/api/send-booking", "application/json",
		`{"tripId":"shimla-manali-june","fullName":"Priya","email":"not-an-email","phone":"9876543210"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "validation_error", decode(t, w)["code"])

	w = do(r, http.MethodPost, "/api/send-booking", "application/json", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSendEnquiryUnavailableWithoutChannels(t *testing.T) {
	hs, _ := newTestHandlers(t, nil)
	hs.Store = nil
	r := newEngine(hs)

	w := do(r, http.MethodPost, "/api/send-enquiry", "application/json",
		`{"fullName":"Asha","email":"asha@example.com","message":"Hello"}`)
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "unavailable", decode(t, w)["code"])
}

func TestAdminInbox(t *testing.T) {
	hs, store := newTestHandlers(t, nil)
	r := newEngine(hs)
	store.leads = append(store.leads, models.Lead{ID: "l1", Kind: models.LeadEnquiry, FullName: "Asha"})
	hs.Fallbacks.RecordFallback(context.Background(), models.FallbackEvent{Kind: models.LeadBooking, Reason: "status 503"})

	w := do(r, http.MethodPost, "/api/admin/login", "application/json", `{"username":"ops","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(r, http.MethodGet, "/api/admin/leads", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(r, http.MethodPost, "/api/admin/login", "application/json", `{"username":"ops","password":"s3cret"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	token, _ := decode(t, w)["token"].(string)
	require.NotEmpty(t, token)

	w = do(r, http.MethodGet, "/api/admin/leads?kind=enquiry&limit=5", "", "", "Authorization", "Bearer "+token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decode(t, w)["count"])

	w = do(r, http.MethodGet, "/api/admin/leads?limit=abc", "", "", "Authorization", "Bearer "+token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodGet, "/api/admin/fallbacks", "", "", "Authorization", "Bearer "+token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decode(t, w)["count"])
}

func TestAdminLoginDisabled(t *testing.T) {
	hs, _ := newTestHandlers(t, nil)
	hs.Admin.PasswordHash = ""
	r := newEngine(hs)
	w := do(r, http.MethodPost, "/api/admin/login", "application/json", `{"username":"ops","password":"s3cret"}`)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestIndexPage(t *testing.T) {
	hs, _ := newTestHandlers(t, nil)
	r := newEngine(hs)

	w := do(r, http.MethodGet, "/?q=golden&sort=price-low", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	page := w.Body.String()
	assert.Contains(t, page, "Travel Buddies")
	assert.Contains(t, page, "upcoming-amritsar-dharamshala-july")
	assert.NotContains(t, page, "upcoming-kasauli-kufri-weekend")
	assert.Contains(t, page, `<option value="price-low" selected>`)
	assert.NotContains(t, page, `<dialog`)

	w = do(r, http.MethodGet, "/?modal=booking&trip=shimla-manali-june", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `action="/forms/booking"`)
	assert.Contains(t, w.Body.String(), `value="shimla-manali-june"`)

	w = do(r, http.MethodGet, "/?modal=booking&trip=nowhere", "", "")
	assert.NotContains(t, w.Body.String(), `<dialog`)

	w = do(r, http.MethodGet, "/?modal=enquiry", "", "")
	assert.Contains(t, w.Body.String(), `action="/forms/enquiry"`)
}

func TestHealthAndSite(t *testing.T) {
	hs, _ := newTestHandlers(t, nil)
	r := newEngine(hs)

	w := do(r, http.MethodGet, "/api/health", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decode(t, w)["leadStore"])

	w = do(r, http.MethodGet, "/api/site", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, hs.Catalog.Agency().Email, decode(t, w)["email"])
}
