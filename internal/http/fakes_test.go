package httpx

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	domainauth "github.com/memberhub/portal/internal/domain/auth"
	"github.com/memberhub/portal/internal/domain/model"
	apperrors "github.com/memberhub/portal/internal/errors"
	"github.com/memberhub/portal/internal/ports"
	"github.com/memberhub/portal/internal/service"
	"github.com/stretchr/testify/require"
)

const (
	testSessionID = "sess-1"
	testCSRFToken = "csrf-test-token"
)

var errNotFoundForTest = apperrors.NotFound("not found")

func sessionWithRole(role domainauth.Role) *domainauth.Session {
	return &domainauth.Session{
		ID: testSessionID,
		User: &domainauth.User{
			ID:         "u-1",
			FirstName:  "Ada",
			LastName:   "Lovelace",
			Email:      "ada@example.com",
			Role:       role,
			IsVerified: true,
		},
		BackendToken: "backend-token",
		ExpiresAt:    time.Now().Add(time.Hour),
	}
}

// fakeRecorder counts what the HTTP layer reports.
type fakeRecorder struct {
	mu          sync.Mutex
	guards      []string
	requests    []string
	rateLimited []string
}

func (f *fakeRecorder) RecordGuardDecision(guard, outcome string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.guards = append(f.guards, guard+":"+outcome)
}

func (f *fakeRecorder) RecordHTTPRequest(route, method string, status int, _ time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, route+" "+method+" "+http.StatusText(status))
}

func (f *fakeRecorder) RecordBackendRequest(string, int, string, time.Duration) {}
func (f *fakeRecorder) RecordAuthAttempt(string, string)                         {}

func (f *fakeRecorder) RecordRateLimited(route string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rateLimited = append(f.rateLimited, route)
}

// fakeAuth resolves testSessionID to session and records calls.
type fakeAuth struct {
	session *domainauth.Session
	getErr  error

	loginFunc  func(email, password string) (*domainauth.Session, error)
	signupFunc func(in service.SignupInput) (*domainauth.Session, error)
	verifyFunc func(sessionID, code string) (*domainauth.Session, error)

	mu         sync.Mutex
	calls      []string
	loggedOut  []string
	forgotFor  []string
	resetToken string
}

func (f *fakeAuth) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeAuth) Login(_ context.Context, email, password string) (*domainauth.Session, error) {
	f.record("Login")
	if f.loginFunc != nil {
		return f.loginFunc(email, password)
	}
	return sessionWithRole(domainauth.RoleMember), nil
}

func (f *fakeAuth) Signup(_ context.Context, in service.SignupInput) (*domainauth.Session, error) {
	f.record("Signup")
	if f.signupFunc != nil {
		return f.signupFunc(in)
	}
	s := sessionWithRole(domainauth.RolePending)
	s.User.IsVerified = false
	return s, nil
}

func (f *fakeAuth) VerifyEmail(_ context.Context, sessionID, code string) (*domainauth.Session, error) {
	f.record("VerifyEmail")
	if f.verifyFunc != nil {
		return f.verifyFunc(sessionID, code)
	}
	return nil, nil
}

func (f *fakeAuth) ForgotPassword(_ context.Context, email string) error {
	f.record("ForgotPassword")
	f.forgotFor = append(f.forgotFor, email)
	return nil
}

func (f *fakeAuth) ResetPassword(_ context.Context, resetToken, _ string) error {
	f.record("ResetPassword")
	f.resetToken = resetToken
	return nil
}

func (f *fakeAuth) GetSession(_ context.Context, sessionID string) (*domainauth.Session, error) {
	f.record("GetSession")
	if f.getErr != nil {
		return nil, f.getErr
	}
	if f.session == nil || sessionID != f.session.ID {
		return nil, ports.ErrSessionNotFound
	}
	return f.session, nil
}

func (f *fakeAuth) Logout(_ context.Context, sessionID string) error {
	f.record("Logout")
	f.loggedOut = append(f.loggedOut, sessionID)
	return nil
}

// fakeEvents serves a fixed event list.
type fakeEvents struct {
	events  []model.Event
	listErr error

	mu      sync.Mutex
	calls   int
	created []model.EventInput
	deleted []string
	delErr  error
}

func (f *fakeEvents) count() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
}

func (f *fakeEvents) List(_ context.Context, _ string, tab model.EventTab, page int) (*service.EventList, error) {
	f.count()
	if f.listErr != nil {
		return nil, f.listErr
	}
	return &service.EventList{Events: f.events, Tab: tab, Page: page, TotalPages: 2, Count: len(f.events)}, nil
}

func (f *fakeEvents) Upcoming(_ context.Context, _ string, n int) ([]model.Event, error) {
	f.count()
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.events[:min(n, len(f.events))], nil
}

func (f *fakeEvents) Get(_ context.Context, _, id string) (*model.Event, error) {
	f.count()
	for _, e := range f.events {
		if e.ID == id {
			return &e, nil
		}
	}
	return nil, errNotFoundForTest
}

func (f *fakeEvents) Create(_ context.Context, _ string, in model.EventInput) (*model.Event, error) {
	f.count()
	f.created = append(f.created, in)
	return &model.Event{ID: "new", Title: in.Title}, nil
}

func (f *fakeEvents) Update(_ context.Context, _, id string, in model.EventInput) (*model.Event, error) {
	f.count()
	return &model.Event{ID: id, Title: in.Title}, nil
}

func (f *fakeEvents) Delete(_ context.Context, _, id string) error {
	f.count()
	if f.delErr != nil {
		return f.delErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

// fakeMembers serves a small directory.
type fakeMembers struct {
	members   []model.Member
	roleErr   error
	approved  []string
	roleCalls []domainauth.Role
	updated   []model.ProfileInput
}

func (f *fakeMembers) Directory(context.Context, string) ([]model.Member, error) {
	return f.members, nil
}

func (f *fakeMembers) Profile(_ context.Context, _, id string) (*model.Member, error) {
	for _, m := range f.members {
		if m.ID == id {
			return &m, nil
		}
	}
	return nil, errNotFoundForTest
}

func (f *fakeMembers) UpdateProfile(_ context.Context, _ string, in model.ProfileInput) (*model.Member, error) {
	f.updated = append(f.updated, in)
	return &model.Member{ID: "u-1", FirstName: in.FirstName, LastName: in.LastName}, nil
}

func (f *fakeMembers) Permissions(context.Context, string) (*service.PermissionsView, error) {
	var view service.PermissionsView
	for _, m := range f.members {
		if m.Role == domainauth.RolePending {
			view.Pending = append(view.Pending, m)
		} else {
			view.Current = append(view.Current, m)
		}
	}
	return &view, nil
}

func (f *fakeMembers) ChangeRole(_ context.Context, _ string, _ domainauth.User, _ string, role domainauth.Role) error {
	f.roleCalls = append(f.roleCalls, role)
	return f.roleErr
}

func (f *fakeMembers) Approve(_ context.Context, _ string, _ domainauth.User, userID string) error {
	f.approved = append(f.approved, userID)
	return nil
}

func (f *fakeMembers) Reject(context.Context, string, domainauth.User, string) error { return nil }

type fakeAnnouncements struct {
	items   []model.Announcement
	listErr error
}

func (f *fakeAnnouncements) List(_ context.Context, _ string, page int) (*service.AnnouncementList, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return &service.AnnouncementList{Announcements: f.items, Page: page, TotalPages: 1, Count: len(f.items)}, nil
}

func (f *fakeAnnouncements) Latest(_ context.Context, _ string, n int) ([]model.Announcement, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.items[:min(n, len(f.items))], nil
}

func (f *fakeAnnouncements) Create(_ context.Context, _ string, in model.AnnouncementInput) (*model.Announcement, error) {
	return &model.Announcement{ID: "a-new", Title: in.Title, Body: in.Body}, nil
}

func (f *fakeAnnouncements) Delete(context.Context, string, string) error { return nil }

type fakeMessages struct {
	sent []model.MessageInput
}

func (f *fakeMessages) Send(_ context.Context, in model.MessageInput) error {
	f.sent = append(f.sent, in)
	return nil
}

func (f *fakeMessages) List(_ context.Context, _ string, page int) (*service.MessageList, error) {
	return &service.MessageList{Page: page, TotalPages: 1}, nil
}

func (f *fakeMessages) Delete(context.Context, string, string) error { return nil }

type fakeAdmin struct{}

func (fakeAdmin) Overview(context.Context, string) (*model.AdminOverview, error) {
	return &model.AdminOverview{PendingMembers: 2, ActiveMembers: 40, UpcomingEvents: 3}, nil
}

// testPortal bundles a router with the fakes behind it.
type testPortal struct {
	handler       http.Handler
	auth          *fakeAuth
	events        *fakeEvents
	members       *fakeMembers
	announcements *fakeAnnouncements
	messages      *fakeMessages
	metrics       *fakeRecorder
}

type portalOption func(*RouterServices)

func newTestPortal(t *testing.T, session *domainauth.Session, opts ...portalOption) *testPortal {
	t.Helper()
	p := &testPortal{
		auth: &fakeAuth{session: session},
		events: &fakeEvents{events: []model.Event{
			{ID: "e-1", Title: "Spring gala", StartDate: time.Date(2026, 5, 1, 18, 0, 0, 0, time.UTC), EndDate: time.Date(2026, 5, 1, 22, 0, 0, 0, time.UTC)},
			{ID: "e-2", Title: "Board meeting", StartDate: time.Date(2026, 6, 3, 18, 0, 0, 0, time.UTC), EndDate: time.Date(2026, 6, 3, 19, 0, 0, 0, time.UTC)},
		}},
		members: &fakeMembers{members: []model.Member{
			{ID: "u-1", FirstName: "Ada", LastName: "Lovelace", Role: domainauth.RoleAdmin},
			{ID: "u-2", FirstName: "Grace", LastName: "Hopper", Role: domainauth.RoleMember},
			{ID: "u-3", FirstName: "Alan", LastName: "Turing", Role: domainauth.RolePending},
		}},
		announcements: &fakeAnnouncements{items: []model.Announcement{{ID: "a-1", Title: "Welcome", Body: "<p>Hello</p>"}}},
		messages:      &fakeMessages{},
		metrics:       &fakeRecorder{},
	}
	services := RouterServices{
		Auth:          p.auth,
		Events:        p.events,
		Members:       p.members,
		Announcements: p.announcements,
		Messages:      p.messages,
		Admin:         fakeAdmin{},
		TemplateFS:    os.DirFS(TemplatePathFromTest),
		Metrics:       p.metrics,
		Location:      time.UTC,
		Logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(&services)
	}
	h, err := NewRouter(services)
	require.NoError(t, err)
	p.handler = h
	return p
}

// get performs a GET carrying the session cookie.
func (p *testPortal) get(path string, header ...string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodGet, path, nil)
	r.Header.Set("Accept", "text/html")
	for i := 0; i+1 < len(header); i += 2 {
		r.Header.Set(header[i], header[i+1])
	}
	r.AddCookie(&http.Cookie{Name: DefaultSessionCookieName, Value: testSessionID})
	w := httptest.NewRecorder()
	p.handler.ServeHTTP(w, r)
	return w
}

// post submits a form with a valid double-submit CSRF token.
func (p *testPortal) post(path string, form url.Values, header ...string) *httptest.ResponseRecorder {
	if form == nil {
		form = url.Values{}
	}
	form.Set(DefaultCSRFFormFieldName, testCSRFToken)
	r := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	r.Header.Set("Accept", "text/html")
	for i := 0; i+1 < len(header); i += 2 {
		r.Header.Set(header[i], header[i+1])
	}
	r.AddCookie(&http.Cookie{Name: DefaultSessionCookieName, Value: testSessionID})
	r.AddCookie(&http.Cookie{Name: DefaultCSRFCookieName, Value: testCSRFToken})
	w := httptest.NewRecorder()
	p.handler.ServeHTTP(w, r)
	return w
}

func (p *testPortal) backendCalls() int {
	p.events.mu.Lock()
	defer p.events.mu.Unlock()
	return p.events.calls
}
