package session

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/darasa-lms/portal/services/lmsapi"
)

// Roles
const (
	RoleAdmin  = "ADMIN"
	RoleMentee = "MENTEE"
	RoleTutor  = "TUTOR"
)

var (
	AllRoles = []string{RoleAdmin, RoleMentee, RoleTutor}

	ErrNotFound = errors.New("session not found")
)

// HomePath is where a role lands after login and after any guard rejection.
func HomePath(role string) string {
	switch role {
	case RoleAdmin:
		return "/admin"
	case RoleMentee:
		return "/mentee"
	case RoleTutor:
		return "/tutor"
	}
	return "/"
}

// Record is the per-browser session. User stays nil until the whoami
// bootstrap has run; Resolved says whether it ran. Until then nil must not be
// read as "logged out".
type Record struct {
	ID            string       `json:"id"`
	User          *lmsapi.User `json:"user,omitempty"`
	BackendCookie string       `json:"backendCookie,omitempty"`
	Resolved      bool         `json:"resolved"`
	// EnrolledIDs tracks courses enrolled during this session, so the course
	// list can flip its buttons before the backend list catches up.
	EnrolledIDs []int     `json:"enrolledIds,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	SeenAt      time.Time `json:"seenAt"`
}

func (r *Record) IsAuthenticated() bool {
	return r.User != nil
}

func (r *Record) HasRole(roles ...string) bool {
	if r.User == nil {
		return false
	}
	for _, role := range roles {
		if r.User.Role == role {
			return true
		}
	}
	return false
}

func (r *Record) IsEnrolled(courseID int) bool {
	for _, id := range r.EnrolledIDs {
		if id == courseID {
			return true
		}
	}
	return false
}

func (r *Record) Enroll(courseID int) {
	if !r.IsEnrolled(courseID) {
		r.EnrolledIDs = append(r.EnrolledIDs, courseID)
	}
}

func (r *Record) Unenroll(courseID int) {
	for i, id := range r.EnrolledIDs {
		if id == courseID {
			r.EnrolledIDs = append(r.EnrolledIDs[:i], r.EnrolledIDs[i+1:]...)
			return
		}
	}
}

// Store persists session records.
type Store interface {
	GetSession(ctx context.Context, id string) (*Record, error)
	PutSession(ctx context.Context, rec *Record, ttl time.Duration) error
	DeleteSession(ctx context.Context, id string) error
}
