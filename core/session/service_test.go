package session

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/darasa-lms/portal/services/lmsapi"
)

type fakeStore struct {
	records map[string]*Record
	puts    int
}

func newFakeStore() *fakeStore { return &fakeStore{records: make(map[string]*Record)} }

func (s *fakeStore) GetSession(_ context.Context, id string) (*Record, error) {
	rec, ok := s.records[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *rec
	return &cp, nil
}

func (s *fakeStore) PutSession(_ context.Context, rec *Record, _ time.Duration) error {
	cp := *rec
	s.records[rec.ID] = &cp
	s.puts++
	return nil
}

func (s *fakeStore) DeleteSession(_ context.Context, id string) error {
	delete(s.records, id)
	return nil
}

type fakeResolver struct {
	usr   *lmsapi.User
	err   error
	calls int
}

func (r *fakeResolver) Me(context.Context) (*lmsapi.User, error) {
	r.calls++
	return r.usr, r.err
}

func TestResolveRunsOnce(t *testing.T) {
	resolver := &fakeResolver{usr: &lmsapi.User{ID: 1, Name: "Ada", Role: RoleMentee}}
	svc := NewService(newFakeStore(), resolver, time.Hour)

	rec := svc.Begin()
	rec.BackendCookie = "JSESSIONID=abc"

	ctx := context.Background()
	require.NoError(t, svc.Resolve(ctx, rec))
	require.NoError(t, svc.Resolve(ctx, rec))
	require.NoError(t, svc.Resolve(ctx, rec))

	assert.Equal(t, 1, resolver.calls)
	assert.True(t, rec.Resolved)
	assert.True(t, rec.IsAuthenticated())
	assert.Equal(t, "Ada", rec.User.Name)
}

func TestResolveWithoutCookieSettlesLoggedOut(t *testing.T) {
	resolver := &fakeResolver{}
	svc := NewService(newFakeStore(), resolver, time.Hour)

	rec := svc.Begin()
	require.NoError(t, svc.Resolve(context.Background(), rec))

	assert.Zero(t, resolver.calls, "no cookie means no whoami call")
	assert.True(t, rec.Resolved)
	assert.False(t, rec.IsAuthenticated())
}

func TestResolveAPIErrorLogsOut(t *testing.T) {
	resolver := &fakeResolver{err: &lmsapi.APIError{StatusCode: 401, Message: "expired"}}
	svc := NewService(newFakeStore(), resolver, time.Hour)

	rec := svc.Begin()
	rec.BackendCookie = "JSESSIONID=stale"
	require.NoError(t, svc.Resolve(context.Background(), rec))

	assert.True(t, rec.Resolved)
	assert.False(t, rec.IsAuthenticated())
	assert.Empty(t, rec.BackendCookie)
}

func TestResolveBackendErrorStaysUnresolved(t *testing.T) {
	resolver := &fakeResolver{err: &lmsapi.APIError{StatusCode: 500, Message: "boom"}}
	svc := NewService(newFakeStore(), resolver, time.Hour)

	rec := svc.Begin()
	rec.BackendCookie = "JSESSIONID=abc"
	err := svc.Resolve(context.Background(), rec)

	require.Error(t, err)
	assert.False(t, rec.Resolved, "only auth rejections settle the session")
	assert.Equal(t, "JSESSIONID=abc", rec.BackendCookie)
}

func TestResolveTransportErrorStaysUnresolved(t *testing.T) {
	resolver := &fakeResolver{err: errors.New("connection refused")}
	svc := NewService(newFakeStore(), resolver, time.Hour)

	rec := svc.Begin()
	rec.BackendCookie = "JSESSIONID=abc"
	err := svc.Resolve(context.Background(), rec)

	require.Error(t, err)
	assert.False(t, rec.Resolved, "transport failures must not settle auth state")
	assert.Equal(t, "JSESSIONID=abc", rec.BackendCookie)

	// and the next attempt retries
	resolver.err = nil
	resolver.usr = &lmsapi.User{ID: 2, Role: RoleTutor}
	require.NoError(t, svc.Resolve(context.Background(), rec))
	assert.True(t, rec.IsAuthenticated())
}

func TestLoginResetsEnrollments(t *testing.T) {
	svc := NewService(newFakeStore(), &fakeResolver{}, time.Hour)

	rec := svc.Begin()
	rec.Enroll(5)
	rec.Enroll(9)

	usr := &lmsapi.User{ID: 3, Role: RoleMentee}
	require.NoError(t, svc.Login(context.Background(), rec, usr, "JSESSIONID=new"))

	assert.Empty(t, rec.EnrolledIDs)
	assert.True(t, rec.Resolved)
	assert.Equal(t, usr, rec.User)
}

func TestLogoutClearsLocalState(t *testing.T) {
	svc := NewService(newFakeStore(), &fakeResolver{}, time.Hour)

	rec := svc.Begin()
	require.NoError(t, svc.Login(context.Background(), rec, &lmsapi.User{ID: 4, Role: RoleAdmin}, "JSESSIONID=adm"))
	require.NoError(t, svc.Logout(context.Background(), rec))

	assert.False(t, rec.IsAuthenticated())
	assert.Empty(t, rec.BackendCookie)
	assert.True(t, rec.Resolved)
}

func TestRecordEnrollment(t *testing.T) {
	rec := &Record{}
	rec.Enroll(7)
	rec.Enroll(7)
	assert.Equal(t, []int{7}, rec.EnrolledIDs)
	assert.True(t, rec.IsEnrolled(7))

	rec.Unenroll(7)
	assert.False(t, rec.IsEnrolled(7))
	rec.Unenroll(7) // no-op
}

func TestHomePath(t *testing.T) {
	tests := []struct {
		role string
		want string
	}{
		{RoleAdmin, "/admin"},
		{RoleMentee, "/mentee"},
		{RoleTutor, "/tutor"},
		{"SOMETHING_ELSE", "/"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, HomePath(tt.role))
	}
}
