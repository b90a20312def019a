package lmsapi

import (
	"context"
	"net/http"
	"strings"
)

// AuthAPI wraps the /auth/* endpoints. Login and Register surface the
// backend's session cookie so the caller can pin it to the portal session.
type AuthAPI struct {
	c *Client
}

// authResponse tolerates both {"user": {...}} and a bare user object.
type authResponse struct {
	WrappedUser *User `json:"user"`
	User
}

func (r *authResponse) user() *User {
	if r.WrappedUser != nil {
		return r.WrappedUser
	}
	if r.User.ID != 0 || r.User.Email != "" {
		u := r.User
		return &u
	}
	return nil
}

func cookieHeader(cookies []*http.Cookie) string {
	pairs := make([]string, 0, len(cookies))
	for _, ck := range cookies {
		pairs = append(pairs, ck.Name+"="+ck.Value)
	}
	return strings.Join(pairs, "; ")
}

func (a *AuthAPI) Register(ctx context.Context, name, email, password, role string) (*User, string, error) {
	if role == "" {
		role = "MENTEE"
	}
	payload := map[string]string{"name": name, "email": email, "password": password, "role": role}
	raw, cookies, err := a.c.call(ctx, http.MethodPost, "/auth/register", nil, payload)
	if err != nil {
		return nil, "", err
	}
	var resp authResponse
	if err := unwrap(raw, &resp); err != nil {
		return nil, "", err
	}
	return resp.user(), cookieHeader(cookies), nil
}

func (a *AuthAPI) Login(ctx context.Context, email, password string) (*User, string, error) {
	payload := map[string]string{"email": email, "password": password}
	raw, cookies, err := a.c.call(ctx, http.MethodPost, "/auth/login", nil, payload)
	if err != nil {
		return nil, "", err
	}
	var resp authResponse
	if err := unwrap(raw, &resp); err != nil {
		return nil, "", err
	}
	return resp.user(), cookieHeader(cookies), nil
}

func (a *AuthAPI) Logout(ctx context.Context) error {
	_, _, err := a.c.call(ctx, http.MethodPost, "/auth/logout", nil, nil)
	return err
}

// Me is the session bootstrap call: it restores login state from the backend
// session cookie carried in ctx.
func (a *AuthAPI) Me(ctx context.Context) (*User, error) {
	raw, _, err := a.c.call(ctx, http.MethodGet, "/auth/me", nil, nil)
	if err != nil {
		return nil, err
	}
	var resp authResponse
	if err := unwrap(raw, &resp); err != nil {
		return nil, err
	}
	return resp.user(), nil
}
