package session

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/darasa-lms/portal/services/lmsapi"
)

// Resolver answers the whoami call. *lmsapi.AuthAPI satisfies it.
type Resolver interface {
	Me(ctx context.Context) (*lmsapi.User, error)
}

type Service struct {
	store Store
	auth  Resolver
	ttl   time.Duration
}

func NewService(store Store, auth Resolver, ttl time.Duration) *Service {
	return &Service{store: store, auth: auth, ttl: ttl}
}

// Begin creates a fresh anonymous record. Not yet persisted; Save does that.
func (svc *Service) Begin() *Record {
	now := time.Now().UTC()
	return &Record{
		ID:        uuid.NewString(),
		CreatedAt: now,
		SeenAt:    now,
	}
}

func (svc *Service) Get(ctx context.Context, id string) (*Record, error) {
	return svc.store.GetSession(ctx, id)
}

func (svc *Service) Save(ctx context.Context, rec *Record) error {
	rec.SeenAt = time.Now().UTC()
	return errors.Wrap(svc.store.PutSession(ctx, rec, svc.ttl), "saving session")
}

// Resolve runs the whoami bootstrap at most once per session. A backend
// answer settles the record either way: a user payload logs it in, a 401/403
// logs it out. Any other failure, transport or backend, leaves the record
// unresolved so callers keep treating the auth state as unknown; they must
// not redirect to login off an unresolved record.
func (svc *Service) Resolve(ctx context.Context, rec *Record) error {
	if rec.Resolved {
		return nil
	}

	if rec.BackendCookie == "" {
		rec.User = nil
		rec.Resolved = true
		return svc.Save(ctx, rec)
	}

	usr, err := svc.auth.Me(lmsapi.WithCredentials(ctx, rec.BackendCookie))
	if err != nil {
		if lmsapi.IsAuthError(err) {
			rec.User = nil
			rec.BackendCookie = ""
			rec.Resolved = true
			return svc.Save(ctx, rec)
		}
		return errors.Wrap(err, "resolving session")
	}

	rec.User = usr
	rec.Resolved = true
	return svc.Save(ctx, rec)
}

// Login records an authenticated user. The network call happened in the page
// handler; this only mutates session state.
func (svc *Service) Login(ctx context.Context, rec *Record, usr *lmsapi.User, backendCookie string) error {
	rec.User = usr
	rec.BackendCookie = backendCookie
	rec.Resolved = true
	rec.EnrolledIDs = nil
	return svc.Save(ctx, rec)
}

// Register behaves like Login.
func (svc *Service) Register(ctx context.Context, rec *Record, usr *lmsapi.User, backendCookie string) error {
	return svc.Login(ctx, rec, usr, backendCookie)
}

// Logout clears the user locally; callers invoke the backend logout endpoint
// separately.
func (svc *Service) Logout(ctx context.Context, rec *Record) error {
	rec.User = nil
	rec.BackendCookie = ""
	rec.Resolved = true
	rec.EnrolledIDs = nil
	return svc.Save(ctx, rec)
}

func (svc *Service) Delete(ctx context.Context, rec *Record) error {
	return svc.store.DeleteSession(ctx, rec.ID)
}
