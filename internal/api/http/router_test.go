package http_test

import (
	"context"
	"fmt"
	"io"
	nethttp "net/http"
	"net/url"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	httptransport "github.com/tohally/academy-web/internal/api/http"
	"github.com/tohally/academy-web/internal/api/http/handlers"
	"github.com/tohally/academy-web/internal/auth"
	"github.com/tohally/academy-web/internal/domain"
	"github.com/tohally/academy-web/internal/events"
	"github.com/tohally/academy-web/internal/flash"
	"github.com/tohally/academy-web/internal/observability"
	"github.com/tohally/academy-web/internal/service"
)

// -------- in-memory repositories --------

type memUserRepo struct {
	mu     sync.Mutex
	byID   map[int64]*domain.User
	nextID int64
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{byID: make(map[int64]*domain.User)}
}

func (r *memUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	user.ID = r.nextID
	stored := *user
	r.byID[user.ID] = &stored
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("usuario %d: %w", id, pgx.ErrNoRows)
	}
	result := *user
	return &result, nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.byID {
		if user.Email == email {
			result := *user
			return &result, nil
		}
	}
	return nil, pgx.ErrNoRows
}

type memStudentRepo struct {
	mu     sync.Mutex
	byID   map[int64]*domain.Student
	nextID int64
}

func newMemStudentRepo() *memStudentRepo {
	return &memStudentRepo{byID: make(map[int64]*domain.Student)}
}

func (r *memStudentRepo) Create(_ context.Context, student *domain.Student) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	student.ID = r.nextID
	student.RequestedAt = time.Now()
	stored := *student
	r.byID[student.ID] = &stored
	return nil
}

func (r *memStudentRepo) Update(_ context.Context, student *domain.Student) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[student.ID]; !ok {
		return pgx.ErrNoRows
	}
	stored := *student
	r.byID[student.ID] = &stored
	return nil
}

func (r *memStudentRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.byID, id)
	return nil
}

func (r *memStudentRepo) GetByID(_ context.Context, id int64) (*domain.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	student, ok := r.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	result := *student
	return &result, nil
}

func (r *memStudentRepo) ListOrderedByName(_ context.Context) ([]domain.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	students := make([]domain.Student, 0, len(r.byID))
	for _, student := range r.byID {
		students = append(students, *student)
	}
	sort.Slice(students, func(i, j int) bool { return students[i].Name < students[j].Name })
	return students, nil
}

// -------- test app assembly --------

type testApp struct {
	app      *fiber.App
	users    *memUserRepo
	students *memStudentRepo
	sessions *auth.SessionManager
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	users := newMemUserRepo()
	students := newMemStudentRepo()
	flashes := flash.NewMemoryStore()
	dispatcher := events.NewInMemoryDispatcher()

	authService := service.NewAuthService(users, bcrypt.MinCost)
	studentService := service.NewStudentService(students, dispatcher)
	intakeService := service.NewIntakeService(students, dispatcher)

	sessions := auth.NewSessionManager("test-secret", time.Hour)
	sessionMiddleware := auth.NewSessionMiddleware(sessions, users, flashes)

	app := fiber.New(fiber.Config{
		Views: html.New("../../../web/templates", ".html"),
	})
	httptransport.RegisterMiddlewares(app, zap.NewNop(), observability.NewMetrics(), 0)

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:   handlers.NewHealthHandler("academy-web", "test", nil, nil),
		Pages:    handlers.NewPagesHandler(flashes),
		Auth:     handlers.NewAuthHandler(authService, sessions, flashes),
		Intake:   handlers.NewIntakeHandler(intakeService, flashes),
		Students: handlers.NewStudentsHandler(studentService, flashes),
		Sessions: sessionMiddleware,
	})

	return &testApp{app: app, users: users, students: students, sessions: sessions}
}

func (ta *testApp) seedAdmin(t *testing.T, email, password string) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	user := &domain.User{Name: "Administrador", Email: email, PasswordHash: string(hash), Role: domain.UserRoleAdmin}
	require.NoError(t, ta.users.Create(context.Background(), user))
	return user
}

func (ta *testApp) sessionCookie(t *testing.T, userID int64) string {
	t.Helper()
	token, _, err := ta.sessions.Issue(userID)
	require.NoError(t, err)
	return auth.SessionCookie + "=" + token
}

func formRequest(path string, form url.Values) *nethttp.Request {
	req, _ := nethttp.NewRequest(nethttp.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

// -------- tests --------

func TestProtectedRoutesRedirectToLogin(t *testing.T) {
	ta := newTestApp(t)

	req, _ := nethttp.NewRequest(nethttp.MethodGet, "/movimiento", nil)
	resp, err := ta.app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, nethttp.StatusSeeOther, resp.StatusCode)
	location := resp.Header.Get("Location")
	assert.True(t, strings.HasPrefix(location, "/login?next="))
	assert.Contains(t, location, url.QueryEscape("/movimiento"))
}

func TestUnknownPathReturnsNotFound(t *testing.T) {
	ta := newTestApp(t)

	// An anonymous visitor hitting a path that was never routed gets a
	// plain 404, not a login redirect.
	for _, path := range []string{"/no-such-page", "/favicon.ico"} {
		req, _ := nethttp.NewRequest(nethttp.MethodGet, path, nil)
		resp, err := ta.app.Test(req)
		require.NoError(t, err)

		assert.Equal(t, nethttp.StatusNotFound, resp.StatusCode, path)
		assert.Empty(t, resp.Header.Get("Location"), path)
		resp.Body.Close()
	}
}

func TestStaleSessionCookieRedirectsToLogin(t *testing.T) {
	ta := newTestApp(t)

	// A well-signed cookie for an account that no longer exists behaves
	// like no session at all.
	req, _ := nethttp.NewRequest(nethttp.MethodGet, "/movimiento", nil)
	req.Header.Set("Cookie", ta.sessionCookie(t, 42))

	resp, err := ta.app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, nethttp.StatusSeeOther, resp.StatusCode)
	assert.True(t, strings.HasPrefix(resp.Header.Get("Location"), "/login?next="))

	var cleared bool
	for _, cookie := range resp.Cookies() {
		if cookie.Name == auth.SessionCookie && cookie.Value == "" {
			cleared = true
		}
	}
	assert.True(t, cleared, "stale session cookie must be cleared")
}

func TestLoginEstablishesSession(t *testing.T) {
	ta := newTestApp(t)
	ta.seedAdmin(t, "admin@tohally.example", "secreto123")

	form := url.Values{}
	form.Set("correo", "admin@tohally.example")
	form.Set("contraseña", "secreto123")

	resp, err := ta.app.Test(formRequest("/login", form))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, nethttp.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))

	var sessionSet bool
	for _, cookie := range resp.Cookies() {
		if cookie.Name == auth.SessionCookie && cookie.Value != "" {
			sessionSet = true
			assert.True(t, cookie.HttpOnly)
		}
	}
	assert.True(t, sessionSet, "session cookie must be set on successful login")
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	ta := newTestApp(t)
	ta.seedAdmin(t, "admin@tohally.example", "secreto123")

	form := url.Values{}
	form.Set("correo", "admin@tohally.example")
	form.Set("contraseña", "incorrecta")

	resp, err := ta.app.Test(formRequest("/login", form))
	require.NoError(t, err)
	defer resp.Body.Close()

	// The login page is re-rendered; no session cookie is issued.
	assert.Equal(t, nethttp.StatusOK, resp.StatusCode)
	for _, cookie := range resp.Cookies() {
		assert.NotEqual(t, auth.SessionCookie, cookie.Name)
	}
}

func TestLoginWithActiveSessionRedirectsHome(t *testing.T) {
	ta := newTestApp(t)
	admin := ta.seedAdmin(t, "admin@tohally.example", "secreto123")

	req, _ := nethttp.NewRequest(nethttp.MethodGet, "/login", nil)
	req.Header.Set("Cookie", ta.sessionCookie(t, admin.ID))

	resp, err := ta.app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, nethttp.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))
}

func TestContactFormCreatesPreRegistration(t *testing.T) {
	ta := newTestApp(t)

	form := url.Values{}
	form.Set("nombre", "Lucía Torres")
	form.Set("edad", "15")
	form.Set("categoria", "Sub-15")
	form.Set("contacto", "555-9876")

	resp, err := ta.app.Test(formRequest("/contacto", form))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, nethttp.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/contacto", resp.Header.Get("Location"))

	students, err := ta.students.ListOrderedByName(context.Background())
	require.NoError(t, err)
	require.Len(t, students, 1)
	assert.Equal(t, domain.RequestTypePreRegistration, students[0].RequestType)
	assert.Equal(t, 15, students[0].Age)
}

func TestContactFormCreatesInquiry(t *testing.T) {
	ta := newTestApp(t)

	form := url.Values{}
	form.Set("nombre", "Carlos Vega")
	form.Set("email", "carlos@example.com")
	form.Set("mensaje", "Hola")

	resp, err := ta.app.Test(formRequest("/contacto", form))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, nethttp.StatusSeeOther, resp.StatusCode)

	students, err := ta.students.ListOrderedByName(context.Background())
	require.NoError(t, err)
	require.Len(t, students, 1)
	assert.Equal(t, domain.RequestTypeInquiry, students[0].RequestType)
	assert.Contains(t, students[0].Contact, "carlos@example.com")
}

func TestDeleteMissingStudentReturnsNotFound(t *testing.T) {
	ta := newTestApp(t)
	admin := ta.seedAdmin(t, "admin@tohally.example", "secreto123")

	req := formRequest("/eliminar_alumno/99", url.Values{})
	req.Header.Set("Cookie", ta.sessionCookie(t, admin.ID))

	resp, err := ta.app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, nethttp.StatusNotFound, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.NotEmpty(t, body)
}

func TestEnrollCreateAndPromoteFlow(t *testing.T) {
	ta := newTestApp(t)
	admin := ta.seedAdmin(t, "admin@tohally.example", "secreto123")
	cookie := ta.sessionCookie(t, admin.ID)

	// Public pre-registration arrives first.
	intake := url.Values{}
	intake.Set("nombre", "Ana Gómez")
	intake.Set("edad", "12")
	intake.Set("contacto", "555-0000")
	resp, err := ta.app.Test(formRequest("/contacto", intake))
	require.NoError(t, err)
	resp.Body.Close()

	// The admin edits it, which promotes it.
	edit := url.Values{}
	edit.Set("nombre", "Ana")
	edit.Set("apellido", "Gómez")
	edit.Set("fecha_nacimiento", "2012-03-10")
	edit.Set("contacto_padre", "555-0000")
	edit.Set("categoria", "Sub-13")
	req := formRequest("/inscribir/1", edit)
	req.Header.Set("Cookie", cookie)

	resp, err = ta.app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, nethttp.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/movimiento", resp.Header.Get("Location"))

	student, err := ta.students.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, domain.RequestTypeAdminEnrolled, student.RequestType)
	assert.Equal(t, "Ana Gómez", student.Name)
}
