package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"agenda-backend/calendar"
	"agenda-backend/controllers"
	"agenda-backend/logger"
	"agenda-backend/models"
	"agenda-backend/routes"
	"agenda-backend/services"
	"agenda-backend/store"
)

// Mock publisher / agenda reader for testing
type mockPublisher struct {
	published []models.AppointmentDescriptor
}

func (m *mockPublisher) Publish(_ context.Context, appt models.AppointmentDescriptor) error {
	m.published = append(m.published, appt)
	return nil
}

func (m *mockPublisher) ListUpcoming(_ context.Context, _ int) ([]calendar.AgendaEvent, error) {
	events := make([]calendar.AgendaEvent, 0, len(m.published))
	for _, appt := range m.published {
		events = append(events, calendar.AgendaEvent{Summary: appt.Summary, Start: appt.Start})
	}
	return events, nil
}

type testEnv struct {
	router  *gin.Engine
	pub     *mockPublisher
	logPath string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	log := logger.New(logger.Config{Level: "error", Output: io.Discard, Service: "test"})
	loc, err := time.LoadLocation("America/Sao_Paulo")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}

	catalogStore := store.NewFileCatalogStore(filepath.Join(dir, "servicos.csv"))
	logPath := filepath.Join(dir, "agendamentos.csv")
	pub := &mockPublisher{}

	catalogSvc := services.NewCatalogService(catalogStore, true, log)
	bookingSvc := services.NewBookingService(catalogSvc, pub, store.NewFileLogStore(logPath), loc, 60, log)

	router := routes.SetupRouter(
		&controllers.ServiceController{Catalog: catalogSvc},
		&controllers.AppointmentController{Booking: bookingSvc},
		&controllers.AgendaController{Reader: pub},
		log,
	)
	return &testEnv{router: router, pub: pub, logPath: logPath}
}

func (e *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decodeCatalog(t *testing.T, w *httptest.ResponseRecorder) models.Catalog {
	t.Helper()
	var catalog models.Catalog
	if err := json.Unmarshal(w.Body.Bytes(), &catalog); err != nil {
		t.Fatalf("decode catalog: %v (%s)", err, w.Body.String())
	}
	return catalog
}

func TestServiceCRUD(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/services", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("GET services: %d %s", w.Code, w.Body.String())
	}
	if catalog := decodeCatalog(t, w); len(catalog.Records) != 0 {
		t.Fatalf("expected empty initial catalog, got %+v", catalog)
	}

	w = env.do(t, http.MethodPost, "/api/services", gin.H{"name": "Manicure", "price": 30, "durationMin": 45})
	if w.Code != http.StatusCreated {
		t.Fatalf("POST service: %d %s", w.Code, w.Body.String())
	}
	catalog := decodeCatalog(t, w)
	if len(catalog.Records) != 1 || catalog.Records[0].Name != "Manicure" {
		t.Fatalf("unexpected catalog after add: %+v", catalog)
	}

	id := catalog.Records[0].ID
	w = env.do(t, http.MethodPut, "/api/services/"+id.String(), gin.H{"name": "Manicure Gel", "price": 50, "durationMin": 60})
	if w.Code != http.StatusOK {
		t.Fatalf("PUT service: %d %s", w.Code, w.Body.String())
	}
	catalog = decodeCatalog(t, w)
	if catalog.Records[0].Name != "Manicure Gel" || catalog.Records[0].DurationMin != 60 {
		t.Fatalf("update not applied: %+v", catalog.Records[0])
	}

	// Identity may have shifted with the rename; re-resolve before deleting.
	id = catalog.Records[0].ID
	w = env.do(t, http.MethodDelete, "/api/services/"+id.String(), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("DELETE service: %d %s", w.Code, w.Body.String())
	}
	if catalog = decodeCatalog(t, w); len(catalog.Records) != 0 {
		t.Fatalf("expected empty catalog after delete: %+v", catalog)
	}
}

func TestServiceValidationAndNotFound(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/services", gin.H{"price": 30})
	if w.Code != http.StatusBadRequest {
		t.Errorf("missing name: expected 400, got %d", w.Code)
	}

	w = env.do(t, http.MethodPost, "/api/services", gin.H{"name": "Manicure", "price": 0, "durationMin": 45})
	if w.Code != http.StatusBadRequest {
		t.Errorf("zero price: expected 400, got %d", w.Code)
	}

	w = env.do(t, http.MethodPut, "/api/services/"+uuid.NewString(), gin.H{"name": "X", "price": 10, "durationMin": 30})
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown identity: expected 404, got %d", w.Code)
	}

	w = env.do(t, http.MethodDelete, "/api/services/not-a-uuid", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("malformed id: expected 400, got %d", w.Code)
	}
}

// Full flow: empty catalog, add services, preview, book, agenda and audit
// log all agree on the same appointment.
func TestBookingEndToEnd(t *testing.T) {
	env := newTestEnv(t)

	for _, svc := range []gin.H{
		{"name": "Manicure", "price": 30, "durationMin": 45},
		{"name": "Pedicure", "price": 40, "durationMin": 45},
	} {
		if w := env.do(t, http.MethodPost, "/api/services", svc); w.Code != http.StatusCreated {
			t.Fatalf("seed service: %d %s", w.Code, w.Body.String())
		}
	}

	booking := gin.H{
		"clientName":   "Ana",
		"serviceNames": []string{"Manicure", "Pedicure"},
		"date":         "2030-01-15",
		"time":         "14:00",
	}

	w := env.do(t, http.MethodPost, "/api/appointments/preview", booking)
	if w.Code != http.StatusOK {
		t.Fatalf("preview: %d %s", w.Code, w.Body.String())
	}
	if len(env.pub.published) != 0 {
		t.Fatalf("preview must not publish")
	}

	var preview models.AppointmentDescriptor
	if err := json.Unmarshal(w.Body.Bytes(), &preview); err != nil {
		t.Fatalf("decode preview: %v", err)
	}
	if preview.TotalPrice.String() != "70" || preview.TotalDurationMin != 90 {
		t.Fatalf("unexpected preview: %+v", preview)
	}

	w = env.do(t, http.MethodPost, "/api/appointments", booking)
	if w.Code != http.StatusCreated {
		t.Fatalf("book: %d %s", w.Code, w.Body.String())
	}
	if len(env.pub.published) != 1 {
		t.Fatalf("expected one published event, got %d", len(env.pub.published))
	}

	published := env.pub.published[0]
	if published.Summary != "Manicure, Pedicure" || !published.End.Equal(published.Start.Add(90*time.Minute)) {
		t.Errorf("published descriptor mismatch: %+v", published)
	}

	logData, err := os.ReadFile(env.logPath)
	if err != nil {
		t.Fatalf("audit log not written: %v", err)
	}
	for _, want := range []string{"Ana", "Manicure, Pedicure", "2030-01-15 14:00", "70"} {
		if !bytes.Contains(logData, []byte(want)) {
			t.Errorf("log entry missing %q: %s", want, logData)
		}
	}

	w = env.do(t, http.MethodGet, "/api/agenda", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("agenda: %d %s", w.Code, w.Body.String())
	}
	var agenda struct {
		Events []calendar.AgendaEvent `json:"events"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &agenda); err != nil {
		t.Fatalf("decode agenda: %v", err)
	}
	if len(agenda.Events) != 1 || agenda.Events[0].Summary != "Manicure, Pedicure" {
		t.Errorf("agenda does not reflect the booking: %+v", agenda)
	}
}

func TestBookingRejectsUnknownService(t *testing.T) {
	env := newTestEnv(t)

	if w := env.do(t, http.MethodPost, "/api/services", gin.H{"name": "Manicure", "price": 30, "durationMin": 45}); w.Code != http.StatusCreated {
		t.Fatalf("seed service: %d", w.Code)
	}

	w := env.do(t, http.MethodPost, "/api/appointments", gin.H{
		"clientName":   "Ana",
		"serviceNames": []string{"Depilação"},
		"date":         "2030-01-15",
		"time":         "14:00",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("unknown service: expected 400, got %d %s", w.Code, w.Body.String())
	}
	if len(env.pub.published) != 0 {
		t.Errorf("nothing may be published for a rejected selection")
	}

	if _, err := os.Stat(env.logPath); !os.IsNotExist(err) {
		t.Errorf("nothing may be logged for a rejected selection (stat err: %v)", err)
	}
}
