package router

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/deppfellow/schoolapp/internal/config"
	"github.com/deppfellow/schoolapp/internal/handler"
	"github.com/deppfellow/schoolapp/internal/lib/health"
	"github.com/deppfellow/schoolapp/internal/model/teacher"
	"github.com/deppfellow/schoolapp/internal/server"
	"github.com/deppfellow/schoolapp/internal/service"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTeacherService is an in-memory handler.TeacherService.
type fakeTeacherService struct {
	mu      sync.Mutex
	rows    map[int64]teacher.Teacher
	nextID  int64
	inserts int

	lastFilter string
	insertErr  error
	getErr     error
	listErr    error
	deleteErr  error
}

func newFakeTeacherService(rows ...teacher.Teacher) *fakeTeacherService {
	f := &fakeTeacherService{rows: map[int64]teacher.Teacher{}}
	for _, t := range rows {
		f.rows[t.ID] = t
		if t.ID > f.nextID {
			f.nextID = t.ID
		}
	}
	return f
}

func (f *fakeTeacherService) GetTeachersByLastname(_ context.Context, lastname string) ([]teacher.Teacher, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastFilter = lastname
	if f.listErr != nil {
		return nil, f.listErr
	}

	out := []teacher.Teacher{}
	for id := int64(1); id <= f.nextID; id++ {
		if t, ok := f.rows[id]; ok && strings.HasPrefix(strings.ToLower(t.Lastname), strings.ToLower(lastname)) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeTeacherService) GetTeacherByID(_ context.Context, id int64) (*teacher.Teacher, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	t, ok := f.rows[id]
	if !ok {
		return nil, fmt.Errorf("teacher %d: %w", id, service.ErrTeacherNotFound)
	}
	return &t, nil
}

func (f *fakeTeacherService) InsertTeacher(_ context.Context, dto teacher.TeacherInsertDTO) (*teacher.Teacher, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertErr != nil {
		return nil, f.insertErr
	}
	f.nextID++
	f.inserts++
	t := teacher.Teacher{ID: f.nextID, Firstname: dto.Firstname, Lastname: dto.Lastname}
	f.rows[t.ID] = t
	return &t, nil
}

func (f *fakeTeacherService) UpdateTeacher(_ context.Context, dto teacher.TeacherUpdateDTO) (*teacher.Teacher, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.rows[dto.ID]; !ok {
		return nil, fmt.Errorf("teacher %d: %w", dto.ID, service.ErrTeacherNotFound)
	}
	t := teacher.Teacher{ID: dto.ID, Firstname: dto.Firstname, Lastname: dto.Lastname}
	f.rows[t.ID] = t
	return &t, nil
}

func (f *fakeTeacherService) DeleteTeacher(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	if _, ok := f.rows[id]; !ok {
		return fmt.Errorf("teacher %d: %w", id, service.ErrTeacherNotFound)
	}
	delete(f.rows, id)
	return nil
}

func newTestRouter(t *testing.T, svc handler.TeacherService) *echo.Echo {
	t.Helper()

	logger := zerolog.Nop()
	s := &server.Server{
		Config: &config.Config{
			Primary: config.Primary{Env: "test"},
			Server: config.ServerConfig{
				Port:               "8080",
				CORSAllowedOrigins: []string{"*"},
			},
			Observability: config.DefaultObservabilityConfig(),
		},
		Logger: &logger,
		Health: health.NewChecker("test", time.Second, &logger, nil),
	}
	s.Health.Register("database", true, func(context.Context) error { return nil })

	openAPI := handler.NewOpenAPIHandler(s)
	openAPI.StaticDir = "../../static"

	return NewRouter(s, &handler.Handlers{
		Health:  handler.NewHealthHandler(s),
		OpenAPI: openAPI,
		Teacher: handler.NewTeacherHandler(s, svc),
	})
}

func do(r *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeTeacher(t *testing.T, rec *httptest.ResponseRecorder) teacher.TeacherReadOnlyDTO {
	t.Helper()
	var dto teacher.TeacherReadOnlyDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dto), rec.Body.String())
	return dto
}

func decodeMessages(t *testing.T, rec *httptest.ResponseRecorder) []string {
	t.Helper()
	var messages []string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &messages), rec.Body.String())
	return messages
}

func TestGetTeacher_ExistingID(t *testing.T) {
	svc := newFakeTeacherService(
		teacher.Teacher{ID: 1, Firstname: "Eleni", Lastname: "Bakirtzi"},
		teacher.Teacher{ID: 2, Firstname: "Nikos", Lastname: "Alexiou"},
	)
	r := newTestRouter(t, svc)

	for _, id := range []int64{1, 2} {
		rec := do(r, http.MethodGet, "/teachers/"+strconv.FormatInt(id, 10), "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, id, decodeTeacher(t, rec).ID)
	}
}

func TestGetTeacher_NotFound(t *testing.T) {
	r := newTestRouter(t, newFakeTeacherService())

	for _, target := range []string{"/teachers/404", "/teachers/abc", "/teachers/0"} {
		rec := do(r, http.MethodGet, target, "")

		assert.Equal(t, http.StatusNotFound, rec.Code, target)
		assert.Equal(t, "Not Found", rec.Body.String(), target)
	}
}

func TestGetTeacher_ServiceFailureUsesEnvelope(t *testing.T) {
	svc := newFakeTeacherService()
	svc.getErr = errors.New("pool exhausted")
	r := newTestRouter(t, svc)

	rec := do(r, http.MethodGet, "/teachers/1", "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), `"code":"INTERNAL_SERVER_ERROR"`)
}

func TestListTeachers(t *testing.T) {
	svc := newFakeTeacherService(
		teacher.Teacher{ID: 1, Firstname: "Eleni", Lastname: "Papadaki"},
		teacher.Teacher{ID: 2, Firstname: "Nikos", Lastname: "Alexiou"},
		teacher.Teacher{ID: 3, Firstname: "Maria", Lastname: "Papadopoulou"},
	)
	r := newTestRouter(t, svc)

	rec := do(r, http.MethodGet, "/teachers?lastname=pap", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pap", svc.lastFilter)

	var got []teacher.TeacherReadOnlyDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, int64(1), got[0].ID)
	assert.Equal(t, int64(3), got[1].ID)

	rec = do(r, http.MethodGet, "/teachers", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "", svc.lastFilter)
}

func TestListTeachers_EmptyIsArray(t *testing.T) {
	r := newTestRouter(t, newFakeTeacherService())

	rec := do(r, http.MethodGet, "/teachers?lastname=zzz", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestListTeachers_NotFoundSignal(t *testing.T) {
	svc := newFakeTeacherService()
	svc.listErr = fmt.Errorf("lastname zzz: %w", service.ErrTeacherNotFound)
	r := newTestRouter(t, svc)

	rec := do(r, http.MethodGet, "/teachers?lastname=zzz", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Not Found", rec.Body.String())
}

func TestCreateTeacher_MissingFields(t *testing.T) {
	svc := newFakeTeacherService()
	r := newTestRouter(t, svc)

	for _, body := range []string{`{}`, `{"firstname":"Maria"}`, `{"lastname":""}`} {
		rec := do(r, http.MethodPost, "/teachers", body)

		require.Equal(t, http.StatusBadRequest, rec.Code, body)
		assert.NotEmpty(t, decodeMessages(t, rec), body)
	}
	assert.Zero(t, svc.inserts)
}

func TestCreateTeacher_ValidationMessages(t *testing.T) {
	r := newTestRouter(t, newFakeTeacherService())

	rec := do(r, http.MethodPost, "/teachers", `{}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, []string{"firstname is required", "lastname is required"}, decodeMessages(t, rec))
}

func TestCreateTeacher_MalformedBody(t *testing.T) {
	svc := newFakeTeacherService()
	r := newTestRouter(t, svc)

	rec := do(r, http.MethodPost, "/teachers", `{"firstname":`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Len(t, decodeMessages(t, rec), 1)
	assert.Zero(t, svc.inserts)
}

func TestCreateTeacher_NotJSON(t *testing.T) {
	r := newTestRouter(t, newFakeTeacherService())

	req := httptest.NewRequest(http.MethodPost, "/teachers", strings.NewReader("firstname=Maria"))
	req.Header.Set(echo.HeaderContentType, echo.MIMETextPlain)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
}

func TestCreateTeacher_LocationMatchesID(t *testing.T) {
	r := newTestRouter(t, newFakeTeacherService(teacher.Teacher{ID: 41, Firstname: "Old", Lastname: "Record"}))

	rec := do(r, http.MethodPost, "/teachers", `{"firstname":"Maria","lastname":"Papadopoulou"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	dto := decodeTeacher(t, rec)
	assert.Equal(t, int64(42), dto.ID)

	location := rec.Header().Get(echo.HeaderLocation)
	assert.Equal(t, "http://example.com/teachers/42", location)
	assert.True(t, strings.HasSuffix(location, "/"+strconv.FormatInt(dto.ID, 10)))

	segment := location[strings.LastIndex(location, "/")+1:]
	id, err := strconv.ParseInt(segment, 10, 64)
	require.NoError(t, err)
	assert.Equal(t, dto.ID, id)
}

func TestCreateTeacher_InsertFailure(t *testing.T) {
	svc := newFakeTeacherService()
	svc.insertErr = errors.New("duplicate key value violates unique constraint")
	r := newTestRouter(t, svc)

	rec := do(r, http.MethodPost, "/teachers", `{"firstname":"Maria","lastname":"Papadopoulou"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Teacher insert error", rec.Body.String())
	assert.Empty(t, rec.Header().Get(echo.HeaderLocation))
}

func TestCreateThenGet_RoundTrip(t *testing.T) {
	r := newTestRouter(t, newFakeTeacherService())

	rec := do(r, http.MethodPost, "/teachers", `{"firstname":"Anna","lastname":"Georgiou"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	created := decodeTeacher(t, rec)

	rec = do(r, http.MethodGet, "/teachers/"+strconv.FormatInt(created.ID, 10), "")
	require.Equal(t, http.StatusOK, rec.Code)

	fetched := decodeTeacher(t, rec)
	assert.Equal(t, "Anna", fetched.Firstname)
	assert.Equal(t, "Georgiou", fetched.Lastname)
	assert.Equal(t, created, fetched)
}

func TestUpdateTeacher_IDMismatch(t *testing.T) {
	svc := newFakeTeacherService(teacher.Teacher{ID: 5, Firstname: "Anna", Lastname: "Georgiou"})
	r := newTestRouter(t, svc)

	bodies := []string{
		`{"id":6,"firstname":"Anna","lastname":"Georgiou"}`,
		`{"id":6}`,
		`{"firstname":"Anna","lastname":"Georgiou"}`,
		`{"id":6,"firstname":"","lastname":"` + strings.Repeat("x", 300) + `"}`,
	}
	for _, body := range bodies {
		rec := do(r, http.MethodPut, "/teachers/5", body)

		assert.Equal(t, http.StatusUnauthorized, rec.Code, body)
		assert.Equal(t, "Unauthorized", rec.Body.String(), body)
	}
	assert.Equal(t, "Anna", svc.rows[5].Firstname)
}

func TestUpdateTeacher(t *testing.T) {
	r := newTestRouter(t, newFakeTeacherService(teacher.Teacher{ID: 5, Firstname: "Anna", Lastname: "Georgiou"}))

	rec := do(r, http.MethodPut, "/teachers/5", `{"id":5,"firstname":"Anna","lastname":"Ioannou"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, teacher.TeacherReadOnlyDTO{ID: 5, Firstname: "Anna", Lastname: "Ioannou"}, decodeTeacher(t, rec))
}

func TestUpdateTeacher_Validation(t *testing.T) {
	r := newTestRouter(t, newFakeTeacherService(teacher.Teacher{ID: 5, Firstname: "Anna", Lastname: "Georgiou"}))

	rec := do(r, http.MethodPut, "/teachers/5", `{"id":5,"firstname":"Anna"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, []string{"lastname is required"}, decodeMessages(t, rec))
}

func TestUpdateTeacher_NotFound(t *testing.T) {
	r := newTestRouter(t, newFakeTeacherService())

	rec := do(r, http.MethodPut, "/teachers/9", `{"id":9,"firstname":"Anna","lastname":"Georgiou"}`)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Teacher not found", rec.Body.String())
}

func TestDeleteTeacher(t *testing.T) {
	r := newTestRouter(t, newFakeTeacherService(teacher.Teacher{ID: 7, Firstname: "Maria", Lastname: "Papadopoulou"}))

	rec := do(r, http.MethodDelete, "/teachers/7", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, teacher.TeacherReadOnlyDTO{ID: 7, Firstname: "Maria", Lastname: "Papadopoulou"}, decodeTeacher(t, rec))

	rec = do(r, http.MethodGet, "/teachers/7", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(r, http.MethodDelete, "/teachers/7", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Not Found", rec.Body.String())
}

func TestDeleteTeacher_RemovedBetweenFetchAndDelete(t *testing.T) {
	svc := newFakeTeacherService(teacher.Teacher{ID: 7, Firstname: "Maria", Lastname: "Papadopoulou"})
	svc.deleteErr = fmt.Errorf("teacher 7: %w", service.ErrTeacherNotFound)
	r := newTestRouter(t, svc)

	rec := do(r, http.MethodDelete, "/teachers/7", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Not Found", rec.Body.String())
}

func TestUpdateTeacher_WrongFieldType(t *testing.T) {
	r := newTestRouter(t, newFakeTeacherService(teacher.Teacher{ID: 5, Firstname: "Anna", Lastname: "Georgiou"}))

	rec := do(r, http.MethodPut, "/teachers/5", `{"id":5,"firstname":123,"lastname":"Georgiou"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, []string{"firstname has the wrong type"}, decodeMessages(t, rec))
	assert.NotContains(t, rec.Body.String(), "TeacherUpdateDTO")
}

func TestGetTeacher_DatabaseUnavailable(t *testing.T) {
	svc := newFakeTeacherService()
	svc.getErr = fmt.Errorf("teacher id=1: %w", &pgconn.PgError{Code: "53300", Severity: "FATAL"})
	r := newTestRouter(t, svc)

	rec := do(r, http.MethodGet, "/teachers/1", "")

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), `"code":"SERVICE_UNAVAILABLE"`)
}

func TestRequestsDoNotShareState(t *testing.T) {
	r := newTestRouter(t, newFakeTeacherService())

	rec := do(r, http.MethodPost, "/teachers", `{"firstname":"Maria","lastname":"Papadopoulou"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	// A second body without lastname must not inherit the previous value.
	rec = do(r, http.MethodPost, "/teachers", `{"firstname":"Anna"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, []string{"lastname is required"}, decodeMessages(t, rec))
}

func TestSystemRoutes(t *testing.T) {
	r := newTestRouter(t, newFakeTeacherService())

	rec := do(r, http.MethodGet, "/status", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"healthy"`)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	rec = do(r, http.MethodGet, "/static/openapi.json", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(r, http.MethodGet, "/docs", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "no-cache", rec.Header().Get("Cache-Control"))

	rec = do(r, http.MethodGet, "/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Route not found")
}
