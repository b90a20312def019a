package echoportal

import (
	"context"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/darasa-lms/portal/core"
	"github.com/darasa-lms/portal/core/session"
	logsvc "github.com/darasa-lms/portal/services/logger"
	"github.com/darasa-lms/portal/services/lmsapi"
	memstore "github.com/darasa-lms/portal/storage/sessions/inmem"
)

// stubBackend mimics the LMS API for the handful of endpoints the tests hit.
func stubBackend() *httptest.Server {
	mux := http.NewServeMux()

	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		if strings.Contains(string(body), "wrong") {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"message":"bad credentials"}`))
			return
		}
		role := "MENTEE"
		if strings.Contains(string(body), "admin@") {
			role = "ADMIN"
		}
		http.SetCookie(w, &http.Cookie{Name: "JSESSIONID", Value: "backend-session"})
		_, _ = w.Write([]byte(`{"user":{"id":1,"name":"Ada","email":"ada@example.com","role":"` + role + `"}}`))
	})
	mux.HandleFunc("/auth/me", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Cookie") == "" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"message":"no session"}`))
			return
		}
		_, _ = w.Write([]byte(`{"user":{"id":1,"name":"Ada","email":"ada@example.com","role":"MENTEE"}}`))
	})
	mux.HandleFunc("/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	mux.HandleFunc("/admin/analytics", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"totalUsers":42,"totalCourses":7}`))
	})
	mux.HandleFunc("/admin/manage-user", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"pagination":{"content":[{"id":2,"name":"Grace","email":"g@example.com","role":"TUTOR"}],"totalItems":1,"totalPages":1}}`))
	})

	mux.HandleFunc("/mentee/myenrollcourses", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":[{"courseId":5,"courseName":"Algebra"}]}`))
	})
	mux.HandleFunc("/mentee/mycourses", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":[{"courseId":8,"courseName":"Calculus","courseStatus":"ACTIVE"}]}`))
	})
	mux.HandleFunc("/mentee/courses", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"pagination":{"content":[{"id":5,"courseName":"Algebra","maxMentee":30}],"totalItems":25,"totalPages":3}}`))
	})
	mux.HandleFunc("/mentee/course/8/sessions", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id":14,"courseId":8,"title":"Integrals","date":"2026-09-03","startTime":"10:00","endTime":"12:00","room":"B2"}]`))
	})
	mux.HandleFunc("/mentee/course/sessions/14", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":14,"courseId":8,"title":"Integrals","date":"2026-09-03","forumId":0}`))
	})
	mux.HandleFunc("/mentee/exercise/21", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":21,"title":"Proof sketch","question":"Show your work","attemptLimit":0}`))
	})
	mux.HandleFunc("/mentee/exercise/21/submissions", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	})
	mux.HandleFunc("/mentee/report-tickets", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	})
	mux.HandleFunc("/mentee/courses/9", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"course not found"}`))
	})
	mux.HandleFunc("/mentee/enroll", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	mux.HandleFunc("/tutors/courses/my", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id":3,"courseName":"Geometry","courseStatus":"ACTIVE"}]`))
	})
	mux.HandleFunc("/tutors/courses/3", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":3,"courseName":"Geometry","courseStatus":"ACTIVE"}`))
	})
	mux.HandleFunc("/tutors/lessons/courses/3", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id":11,"courseId":3,"title":"Angles"}]`))
	})
	mux.HandleFunc("/tutors/course/3/sessions", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	})
	mux.HandleFunc("/tutors/courses/3/mentees", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"pagination":{"content":[{"id":4,"name":"Linus","email":"l@example.com","role":"MENTEE"}],"totalItems":1,"totalPages":1}}`))
	})
	mux.HandleFunc("/tutors/myexercises", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id":21,"lessonId":11,"title":"Proof sketch","deadline":"2026-09-10","submissionCount":2}]`))
	})
	mux.HandleFunc("/tutors/myresources", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	})
	mux.HandleFunc("/tutors/subjects", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id":2,"name":"Analysis","code":"MA201"}]`))
	})
	mux.HandleFunc("/tutors/subject-registrations", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	})

	return httptest.NewServer(mux)
}

type testApp struct {
	server   Server
	sessions *session.Service
}

func newTestApp(t *testing.T, backendURL string) *testApp {
	t.Helper()
	api := lmsapi.New(backendURL)
	sessions := session.NewService(memstore.New(), api.Auth, time.Hour)
	logger := logsvc.NewConsoleLogger(log.New(io.Discard, "", 0))

	srv := NewServer(&Options{
		Addr:           ":0",
		DisableReqLogs: true,
		BackTrap:       true,
		Logger:         logger,
		Sessions:       sessions,
		API:            api,
	})
	return &testApp{server: srv, sessions: sessions}
}

// sessionCookie persists a record and returns its signed browser cookie.
func (app *testApp) sessionCookie(t *testing.T, mutate func(*session.Record)) *http.Cookie {
	t.Helper()
	rec := app.sessions.Begin()
	if mutate != nil {
		mutate(rec)
	}
	require.NoError(t, app.sessions.Save(context.Background(), rec))
	token, err := session.GenerateToken(rec.ID)
	require.NoError(t, err)
	return &http.Cookie{Name: core.Conf.Session.CookieName, Value: token}
}

func (app *testApp) do(method, target string, cookie *http.Cookie, form url.Values) *httptest.ResponseRecorder {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	app.server.ServeHTTP(rec, req)
	return rec
}

func loggedIn(role string) func(*session.Record) {
	return func(rec *session.Record) {
		rec.User = &lmsapi.User{ID: 1, Name: "Ada", Email: "ada@example.com", Role: role}
		rec.BackendCookie = "JSESSIONID=backend-session"
		rec.Resolved = true
	}
}

func TestGuardDecisions(t *testing.T) {
	backend := stubBackend()
	defer backend.Close()

	tests := []struct {
		name         string
		target       string
		mutate       func(*session.Record)
		wantCode     int
		wantLocation string
	}{
		{
			name:         "anonymous is sent to login",
			target:       "/admin",
			mutate:       nil,
			wantCode:     http.StatusFound,
			wantLocation: "/login-lms",
		},
		{
			name:         "mentee cannot enter the admin area",
			target:       "/admin",
			mutate:       loggedIn(session.RoleMentee),
			wantCode:     http.StatusFound,
			wantLocation: "/mentee",
		},
		{
			name:         "tutor cannot enter the mentee area",
			target:       "/mentee/courses",
			mutate:       loggedIn(session.RoleTutor),
			wantCode:     http.StatusFound,
			wantLocation: "/tutor",
		},
		{
			name:     "admin passes through",
			target:   "/admin",
			mutate:   loggedIn(session.RoleAdmin),
			wantCode: http.StatusOK,
		},
		{
			name:     "mentee passes through",
			target:   "/mentee",
			mutate:   loggedIn(session.RoleMentee),
			wantCode: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(t, backend.URL)
			var cookie *http.Cookie
			if tt.mutate != nil {
				cookie = app.sessionCookie(t, tt.mutate)
			}
			res := app.do(http.MethodGet, tt.target, cookie, nil)
			assert.Equal(t, tt.wantCode, res.Code)
			if tt.wantLocation != "" {
				assert.Equal(t, tt.wantLocation, res.Header().Get("Location"))
			}
		})
	}
}

// A session with a backend cookie but no bootstrap yet must see the neutral
// loading page when the backend is unreachable, never a login redirect.
func TestGuardBackendDownShowsLoading(t *testing.T) {
	app := newTestApp(t, "http://127.0.0.1:1") // nothing listens here

	cookie := app.sessionCookie(t, func(rec *session.Record) {
		rec.BackendCookie = "JSESSIONID=maybe-valid"
	})
	res := app.do(http.MethodGet, "/admin", cookie, nil)

	assert.Equal(t, http.StatusServiceUnavailable, res.Code)
	assert.Empty(t, res.Header().Get("Location"))
	assert.Contains(t, res.Body.String(), "Loading")
}

// An unresolved session whose cookie the backend rejects settles as logged out
// and lands on the login page.
func TestGuardStaleCookieRedirectsToLogin(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"expired"}`))
	}))
	defer backend.Close()

	app := newTestApp(t, backend.URL)
	cookie := app.sessionCookie(t, func(rec *session.Record) {
		rec.BackendCookie = "JSESSIONID=stale"
	})
	res := app.do(http.MethodGet, "/mentee", cookie, nil)

	assert.Equal(t, http.StatusFound, res.Code)
	assert.Equal(t, "/login-lms", res.Header().Get("Location"))
}

func TestLoginFlow(t *testing.T) {
	backend := stubBackend()
	defer backend.Close()
	app := newTestApp(t, backend.URL)

	// the first visit mints an anonymous session cookie
	res := app.do(http.MethodGet, "/login-lms", nil, nil)
	require.Equal(t, http.StatusOK, res.Code)
	cookies := res.Result().Cookies()
	require.NotEmpty(t, cookies)
	cookie := cookies[0]

	form := url.Values{"email": {"ada@example.com"}, "password": {"pwd"}}
	res = app.do(http.MethodPost, "/login", cookie, form)
	require.Equal(t, http.StatusFound, res.Code)
	assert.Equal(t, "/mentee", res.Header().Get("Location"))

	// the session now carries the backend login
	res = app.do(http.MethodGet, "/mentee", cookie, nil)
	assert.Equal(t, http.StatusOK, res.Code)
	assert.Contains(t, res.Body.String(), "Algebra")
}

func TestLoginBadCredentialsShowsBackendMessage(t *testing.T) {
	backend := stubBackend()
	defer backend.Close()
	app := newTestApp(t, backend.URL)

	form := url.Values{"email": {"wrong@example.com"}, "password": {"wrong"}}
	res := app.do(http.MethodPost, "/login", nil, form)

	assert.Equal(t, http.StatusUnauthorized, res.Code)
	assert.Contains(t, res.Body.String(), "bad credentials")
}

func TestAdminLoginRedirectsToAdminHome(t *testing.T) {
	backend := stubBackend()
	defer backend.Close()
	app := newTestApp(t, backend.URL)

	form := url.Values{"email": {"admin@example.com"}, "password": {"pwd"}}
	res := app.do(http.MethodPost, "/login-admin", nil, form)

	require.Equal(t, http.StatusFound, res.Code)
	assert.Equal(t, "/admin", res.Header().Get("Location"))
}

func TestAdminUsersPage(t *testing.T) {
	backend := stubBackend()
	defer backend.Close()
	app := newTestApp(t, backend.URL)

	cookie := app.sessionCookie(t, loggedIn(session.RoleAdmin))
	res := app.do(http.MethodGet, "/admin/users", cookie, nil)

	require.Equal(t, http.StatusOK, res.Code)
	assert.Contains(t, res.Body.String(), "Grace")
}

func TestTutorShellDispatch(t *testing.T) {
	backend := stubBackend()
	defer backend.Close()

	tests := []struct {
		name     string
		target   string
		wantCode int
		wantBody string
	}{
		{name: "default view", target: "/tutor", wantCode: http.StatusOK, wantBody: "Geometry"},
		{name: "deep link", target: "/tutor?page=course-detail&courseId=3", wantCode: http.StatusOK, wantBody: "Angles"},
		{name: "unknown page falls back to dashboard", target: "/tutor?page=bogus", wantCode: http.StatusOK, wantBody: "Geometry"},
		{name: "courses", target: "/tutor?page=courses", wantCode: http.StatusOK, wantBody: "Propose a course"},
		{name: "assignments", target: "/tutor?page=assignments", wantCode: http.StatusOK, wantBody: "Proof sketch"},
		{name: "documents", target: "/tutor?page=documents", wantCode: http.StatusOK, wantBody: "My documents"},
		{name: "students roster spans courses", target: "/tutor?page=students", wantCode: http.StatusOK, wantBody: "Linus"},
		{name: "reports", target: "/tutor?page=reports", wantCode: http.StatusOK, wantBody: "Proof sketch"},
		{name: "registrations", target: "/tutor?page=registrations", wantCode: http.StatusOK, wantBody: "Analysis"},
		{name: "missing param", target: "/tutor?page=course-detail", wantCode: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(t, backend.URL)
			cookie := app.sessionCookie(t, loggedIn(session.RoleTutor))
			res := app.do(http.MethodGet, tt.target, cookie, nil)
			assert.Equal(t, tt.wantCode, res.Code)
			if tt.wantBody != "" {
				assert.Contains(t, res.Body.String(), tt.wantBody)
			}
		})
	}
}

// The mentee area keeps the browser-bookmarkable page set, including the
// course-scoped nested paths to lessons, exercises and sessions.
func TestMenteePageRoutes(t *testing.T) {
	backend := stubBackend()
	defer backend.Close()

	tests := []struct {
		name     string
		target   string
		wantBody string
	}{
		{name: "register is the catalogue", target: "/mentee/register", wantBody: "Algebra"},
		{name: "registered courses", target: "/mentee/registered-courses", wantBody: "Calculus"},
		{name: "cancel registration", target: "/mentee/cancel-registration", wantBody: "/mentee/courses/8/unenroll"},
		{name: "combined schedule", target: "/mentee/schedule", wantBody: "Integrals"},
		{name: "report tickets", target: "/mentee/report-tickets", wantBody: "Feedback"},
		{name: "nested exercise deep link", target: "/mentee/courses/8/lessons/11/exercises/21", wantBody: "Proof sketch"},
		{name: "nested session deep link", target: "/mentee/courses/8/sessions/14", wantBody: "Integrals"},
		{name: "session forum falls back to session", target: "/mentee/courses/8/sessions/14/forum", wantBody: "Open a forum"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(t, backend.URL)
			cookie := app.sessionCookie(t, loggedIn(session.RoleMentee))
			res := app.do(http.MethodGet, tt.target, cookie, nil)
			require.Equal(t, http.StatusOK, res.Code)
			assert.Contains(t, res.Body.String(), tt.wantBody)
		})
	}
}

// The history re-push script belongs to the three shell roots only; on any
// sub-page the browser back button must keep working.
func TestBackTrapOnlyOnShellRoots(t *testing.T) {
	backend := stubBackend()
	defer backend.Close()

	const marker = `addEventListener("popstate"`

	tests := []struct {
		name   string
		target string
		role   string
		want   bool
	}{
		{name: "admin root", target: "/admin", role: session.RoleAdmin, want: true},
		{name: "mentee root", target: "/mentee", role: session.RoleMentee, want: true},
		{name: "tutor root", target: "/tutor", role: session.RoleTutor, want: true},
		{name: "tutor sub-view", target: "/tutor?page=course-detail&courseId=3", role: session.RoleTutor, want: false},
		{name: "mentee sub-page", target: "/mentee/courses", role: session.RoleMentee, want: false},
		{name: "login page", target: "/login-lms", role: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(t, backend.URL)
			var cookie *http.Cookie
			if tt.role != "" {
				cookie = app.sessionCookie(t, loggedIn(tt.role))
			}
			res := app.do(http.MethodGet, tt.target, cookie, nil)
			require.Equal(t, http.StatusOK, res.Code)
			if tt.want {
				assert.Contains(t, res.Body.String(), marker)
			} else {
				assert.NotContains(t, res.Body.String(), marker)
			}
		})
	}
}

// A handler mounted outside its guard's prefix bounces to the role's home.
func TestGuardPrefixMismatchRedirectsHome(t *testing.T) {
	backend := stubBackend()
	defer backend.Close()
	app := newTestApp(t, backend.URL)

	srv, ok := app.server.(*server)
	require.True(t, ok)

	req := httptest.NewRequest(http.MethodGet, "/mentee/courses", nil)
	res := httptest.NewRecorder()
	ctx := echo.New().NewContext(req, res)
	ctx.Set(contextSessionKey, &session.Record{
		User:          &lmsapi.User{ID: 1, Role: session.RoleAdmin},
		BackendCookie: "JSESSIONID=backend-session",
		Resolved:      true,
	})

	next := func(c echo.Context) error { return c.String(http.StatusOK, "ok") }
	require.NoError(t, srv.guard("/admin", session.RoleAdmin)(next)(ctx))

	assert.Equal(t, http.StatusFound, res.Code)
	assert.Equal(t, "/admin", res.Header().Get("Location"))
}

// Page links in the catalogue keep the active search filter.
func TestPaginationKeepsFilters(t *testing.T) {
	backend := stubBackend()
	defer backend.Close()
	app := newTestApp(t, backend.URL)

	cookie := app.sessionCookie(t, loggedIn(session.RoleMentee))
	res := app.do(http.MethodGet, "/mentee/courses?course_name=alg", cookie, nil)

	require.Equal(t, http.StatusOK, res.Code)
	assert.Contains(t, res.Body.String(), "?page=1&amp;course_name=alg")
	assert.Contains(t, res.Body.String(), "?page=2&amp;course_name=alg")
}

func TestEnrollFlow(t *testing.T) {
	backend := stubBackend()
	defer backend.Close()
	app := newTestApp(t, backend.URL)

	cookie := app.sessionCookie(t, loggedIn(session.RoleMentee))

	res := app.do(http.MethodPost, "/mentee/courses/5/enroll", cookie, url.Values{})
	require.Equal(t, http.StatusFound, res.Code)
	assert.Equal(t, "/mentee/courses/5/enrolled", res.Header().Get("Location"))

	res = app.do(http.MethodGet, "/mentee/courses/5/enrolled", cookie, nil)
	require.Equal(t, http.StatusOK, res.Code)
	assert.Contains(t, res.Body.String(), "enrolled")

	// the catalogue now shows the unenroll action for that course
	res = app.do(http.MethodGet, "/mentee/courses", cookie, nil)
	require.Equal(t, http.StatusOK, res.Code)
	assert.Contains(t, res.Body.String(), "/mentee/courses/5/unenroll")
}

func TestBackendErrorSurfacesVerbatim(t *testing.T) {
	backend := stubBackend()
	defer backend.Close()
	app := newTestApp(t, backend.URL)

	cookie := app.sessionCookie(t, loggedIn(session.RoleMentee))
	res := app.do(http.MethodGet, "/mentee/courses/9", cookie, nil)

	assert.Equal(t, http.StatusNotFound, res.Code)
	assert.Contains(t, res.Body.String(), "course not found")
}

func TestLogoutClearsSession(t *testing.T) {
	backend := stubBackend()
	defer backend.Close()
	app := newTestApp(t, backend.URL)

	cookie := app.sessionCookie(t, loggedIn(session.RoleMentee))

	res := app.do(http.MethodPost, "/logout", cookie, url.Values{})
	require.Equal(t, http.StatusFound, res.Code)
	assert.Equal(t, "/login-lms", res.Header().Get("Location"))

	// the same cookie is now an anonymous, settled session
	res = app.do(http.MethodGet, "/mentee", cookie, nil)
	assert.Equal(t, http.StatusFound, res.Code)
	assert.Equal(t, "/login-lms", res.Header().Get("Location"))
}
