package backend

import (
	"context"
	"net/http"
)

// Auth wraps the credential-issuing endpoints. None of them require a
// bearer; they return one.
type Auth struct {
	client *Client
}

func NewAuth(client *Client) *Auth {
	return &Auth{client: client}
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	FullName    string `json:"fullName"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
}

type GoogleLoginRequest struct {
	IDToken string `json:"idToken"`
}

// TokenResponse carries the opaque bearer credential. Register may come back
// without one, in which case the user logs in manually afterwards.
type TokenResponse struct {
	Token string `json:"token"`
}

func (a *Auth) Login(ctx context.Context, req LoginRequest) (*TokenResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, Precondition("email and password are required")
	}
	var out TokenResponse
	if err := a.client.do(ctx, http.MethodPost, "/auth/login", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *Auth) Register(ctx context.Context, req RegisterRequest) (*TokenResponse, error) {
	if req.FullName == "" || req.Email == "" || req.Password == "" {
		return nil, Precondition("fullName, email and password are required")
	}
	var out TokenResponse
	if err := a.client.do(ctx, http.MethodPost, "/auth/register", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *Auth) GoogleLogin(ctx context.Context, req GoogleLoginRequest) (*TokenResponse, error) {
	if req.IDToken == "" {
		return nil, Precondition("idToken is required")
	}
	var out TokenResponse
	if err := a.client.do(ctx, http.MethodPost, "/auth/google/login", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
