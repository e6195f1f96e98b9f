package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"teacher_portal_backend/internal/model"
	"teacher_portal_backend/internal/repository"
	"teacher_portal_backend/internal/service"
	"teacher_portal_backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type memTeachers struct {
	teachers map[uint]*model.Teacher
}

func (m *memTeachers) FindWithRecords(ctx context.Context, id uint) (*model.Teacher, error) {
	t, ok := m.teachers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return t, nil
}

func (m *memTeachers) List(ctx context.Context, page, limit int) ([]model.Teacher, int64, error) {
	var out []model.Teacher
	for id := uint(1); id <= uint(len(m.teachers)); id++ {
		out = append(out, *m.teachers[id])
	}
	return out, int64(len(out)), nil
}

func (m *memTeachers) Create(ctx context.Context, t *model.Teacher) error {
	t.ID = uint(len(m.teachers) + 1)
	m.teachers[t.ID] = t
	return nil
}

func (m *memTeachers) UpdatePhoto(ctx context.Context, id uint, photo string) error {
	t, ok := m.teachers[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	t.ProfilePhoto = photo
	return nil
}

func (m *memTeachers) Count(ctx context.Context) (int64, error) {
	return int64(len(m.teachers)), nil
}

type memStorage map[string][]byte

func (m memStorage) Upload(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	data, err := io.ReadAll(r)
	m[key] = data
	return err
}

func (m memStorage) Delete(ctx context.Context, key string) error {
	delete(m, key)
	return nil
}

func (m memStorage) GetURL(key string) string { return "/uploads/" + key }

type testServer struct {
	router   *gin.Engine
	teachers *memTeachers
	storage  memStorage
}

// newTestServer wires the profile routes with a fixed caller instead of JWT auth.
func newTestServer(t *testing.T, userID uint) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	teachers := &memTeachers{teachers: map[uint]*model.Teacher{}}
	storage := memStorage{}
	profiles := service.NewProfileService(teachers, storage)
	_, err := profiles.Import(context.Background(), []model.Profile{
		{
			Name:           "Sarah Ahmed",
			RegistrationNo: "T-001",
			Schedule: model.Schedule{
				model.Monday: {{Time: "09:00 - 10:30", Department: "CS", Section: "A"}},
			},
			CoursesAttendance: []model.AttendanceRecord{
				{CourseCode: "CS101", CourseName: "Programming Fundamentals", TotalClasses: 20, ClassesTaken: 14},
			},
		},
	})
	if err != nil {
		t.Fatalf("import: %v", err)
	}

	sessions := service.NewViewSessionService(profiles, repository.NewMemoryViewSessionRepository(time.Minute), time.Minute, profiles.PhotoURL)

	tc := NewTeacherController(profiles)
	vc := NewViewSessionController(sessions)

	r := gin.New()
	api := r.Group("/api", func(c *gin.Context) {
		c.Set("user", &util.Claims{UserID: userID, Role: model.Admin})
		c.Next()
	})
	api.GET("/teachers", tc.ListTeachers)
	api.GET("/teachers/:id", tc.GetProfile)
	api.POST("/teachers/:id/photo", tc.UploadPhoto)
	api.POST("/teachers/:id/view-sessions", vc.Open)
	api.GET("/view-sessions/:sessionId", vc.Get)
	api.POST("/view-sessions/:sessionId/sections/:section/toggle", vc.Toggle)
	api.DELETE("/view-sessions/:sessionId", vc.Close)

	return &testServer{router: r, teachers: teachers, storage: storage}
}

func (s *testServer) do(t *testing.T, method, path string, body io.Reader, contentType string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var out map[string]interface{}
	if w.Body.Len() > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
			t.Fatalf("decode %s %s: %v (%s)", method, path, err, w.Body.String())
		}
	}
	return w, out
}

func sectionsOf(t *testing.T, resp map[string]interface{}) map[string]map[string]interface{} {
	t.Helper()
	view := resp["data"].(map[string]interface{})["view"].(map[string]interface{})
	out := map[string]map[string]interface{}{}
	for _, s := range view["sections"].([]interface{}) {
		sec := s.(map[string]interface{})
		out[sec["section"].(string)] = sec
	}
	return out
}

func TestViewSessionFlow(t *testing.T) {
	s := newTestServer(t, 1)

	w, resp := s.do(t, http.MethodPost, "/api/teachers/1/view-sessions", nil, "")
	if w.Code != http.StatusCreated {
		t.Fatalf("open status = %d: %s", w.Code, w.Body.String())
	}
	sessionID := resp["data"].(map[string]interface{})["sessionId"].(string)

	sections := sectionsOf(t, resp)
	if sections["schedule"]["variant"] != "populated" || sections["schedule"]["expanded"] != true {
		t.Errorf("schedule = %v", sections["schedule"])
	}
	if sections["feedback"]["variant"] != "placeholder" || sections["feedback"]["label"] != "Add Student Feedback" {
		t.Errorf("feedback = %v", sections["feedback"])
	}

	w, resp = s.do(t, http.MethodPost, "/api/view-sessions/"+sessionID+"/sections/schedule/toggle", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("toggle status = %d: %s", w.Code, w.Body.String())
	}
	sections = sectionsOf(t, resp)
	if sections["schedule"]["expanded"] != false {
		t.Errorf("schedule after toggle = %v", sections["schedule"])
	}
	if _, hasBody := sections["schedule"]["body"]; hasBody {
		t.Error("collapsed schedule still carries a body")
	}
	if sections["attendance"]["expanded"] != true {
		t.Error("toggling schedule touched attendance")
	}

	w, _ = s.do(t, http.MethodPost, "/api/view-sessions/"+sessionID+"/sections/feedback/toggle", nil, "")
	if w.Code != http.StatusConflict {
		t.Errorf("placeholder toggle status = %d", w.Code)
	}
	w, _ = s.do(t, http.MethodPost, "/api/view-sessions/"+sessionID+"/sections/photos/toggle", nil, "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("unknown section status = %d", w.Code)
	}

	w, resp = s.do(t, http.MethodGet, "/api/view-sessions/"+sessionID, nil, "")
	if w.Code != http.StatusOK || sectionsOf(t, resp)["schedule"]["expanded"] != false {
		t.Errorf("re-render = %d %v", w.Code, resp)
	}

	w, _ = s.do(t, http.MethodDelete, "/api/view-sessions/"+sessionID, nil, "")
	if w.Code != http.StatusNoContent {
		t.Errorf("close status = %d", w.Code)
	}
	w, _ = s.do(t, http.MethodGet, "/api/view-sessions/"+sessionID, nil, "")
	if w.Code != http.StatusNotFound {
		t.Errorf("closed session status = %d", w.Code)
	}
}

func TestViewSessionOpenUnknownTeacher(t *testing.T) {
	s := newTestServer(t, 1)
	w, _ := s.do(t, http.MethodPost, "/api/teachers/99/view-sessions", nil, "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d", w.Code)
	}
	w, _ = s.do(t, http.MethodPost, "/api/teachers/abc/view-sessions", nil, "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestTeacherEndpoints(t *testing.T) {
	s := newTestServer(t, 1)

	w, resp := s.do(t, http.MethodGet, "/api/teachers?page=1&limit=5", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("list status = %d", w.Code)
	}
	page := resp["data"].(map[string]interface{})
	if page["total"].(float64) != 1 || page["limit"].(float64) != 5 {
		t.Errorf("page = %v", page)
	}

	w, resp = s.do(t, http.MethodGet, "/api/teachers/1", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("get status = %d", w.Code)
	}
	if resp["data"].(map[string]interface{})["registrationNo"] != "T-001" {
		t.Errorf("profile = %v", resp["data"])
	}

	w, _ = s.do(t, http.MethodGet, "/api/teachers/2", nil, "")
	if w.Code != http.StatusNotFound {
		t.Errorf("missing teacher status = %d", w.Code)
	}
}

func multipartPhoto(t *testing.T, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("form file: %v", err)
	}
	fw.Write(content)
	mw.Close()
	return body, mw.FormDataContentType()
}

func TestUploadPhoto(t *testing.T) {
	s := newTestServer(t, 1)
	png := append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0}, 64)...)

	body, ct := multipartPhoto(t, "me.png", png)
	w, resp := s.do(t, http.MethodPost, "/api/teachers/1/photo", body, ct)
	if w.Code != http.StatusOK {
		t.Fatalf("upload status = %d: %s", w.Code, w.Body.String())
	}
	url := resp["data"].(map[string]interface{})["photoUrl"].(string)
	if !strings.HasPrefix(url, "/uploads/teachers/1/") {
		t.Errorf("url = %q", url)
	}
	if len(s.storage) != 1 {
		t.Errorf("stored objects = %d", len(s.storage))
	}

	body, ct = multipartPhoto(t, "notes.png", []byte("just text, not an image"))
	w, _ = s.do(t, http.MethodPost, "/api/teachers/1/photo", body, ct)
	if w.Code != http.StatusBadRequest {
		t.Errorf("text upload status = %d", w.Code)
	}

	body, ct = multipartPhoto(t, "me.gif", png)
	w, _ = s.do(t, http.MethodPost, "/api/teachers/1/photo", body, ct)
	if w.Code != http.StatusBadRequest {
		t.Errorf("gif upload status = %d", w.Code)
	}
}

func TestSessionOwnedByAnotherUser(t *testing.T) {
	owner := newTestServer(t, 1)
	w, resp := owner.do(t, http.MethodPost, "/api/teachers/1/view-sessions", nil, "")
	if w.Code != http.StatusCreated {
		t.Fatalf("open status = %d", w.Code)
	}
	sessionID := resp["data"].(map[string]interface{})["sessionId"].(string)

	// same handlers, different caller
	other := gin.New()
	other.Use(func(c *gin.Context) {
		c.Set("user", &util.Claims{UserID: 2, Role: model.Admin})
		c.Next()
	})
	for _, route := range owner.router.Routes() {
		other.Handle(route.Method, route.Path, route.HandlerFunc)
	}
	req := httptest.NewRequest(http.MethodGet, "/api/view-sessions/"+sessionID, nil)
	rec := httptest.NewRecorder()
	other.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", rec.Code)
	}
}

func TestRespondErrorMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := map[error]int{
		util.ErrTeacherNotFound:  http.StatusNotFound,
		util.ErrSessionForbidden: http.StatusForbidden,
		errors.New("boom"):       http.StatusInternalServerError,
	}
	for err, want := range cases {
		w := httptest.NewRecorder()
		ctx, _ := gin.CreateTestContext(w)
		ctx.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		respondError(ctx, err)
		if w.Code != want {
			t.Errorf("%v: status = %d, want %d", err, w.Code, want)
		}
	}
}
