package backend

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/barberdev/barberdev-web/internal/domain/user"
)

// Users wraps the user and staff endpoints.
type Users struct {
	client *Client
}

func NewUsers(client *Client) *Users {
	return &Users{client: client}
}

// List returns every user. A 404 means the deployment does not expose the
// endpoint yet; that degrades to an empty list instead of an error.
func (u *Users) List(ctx context.Context) ([]user.Profile, error) {
	var out []user.Profile
	err := u.client.do(ctx, http.MethodGet, "/users", nil, nil, &out)
	if err != nil {
		if ae, ok := AsAPIError(err); ok && ae.Status == http.StatusNotFound {
			u.client.logger.Warn("users endpoint not available, returning empty list")
			return []user.Profile{}, nil
		}
		return nil, err
	}
	return out, nil
}

func (u *Users) Get(ctx context.Context, id int) (*user.Profile, error) {
	if id <= 0 {
		return nil, Precondition("invalid user id: %d", id)
	}
	var out user.Profile
	if err := u.client.do(ctx, http.MethodGet, fmt.Sprintf("/users/%d", id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Barbers filters the user list down to the barber role.
func (u *Users) Barbers(ctx context.Context) ([]user.Profile, error) {
	all, err := u.List(ctx)
	if err != nil {
		return nil, err
	}
	barbers := make([]user.Profile, 0, len(all))
	for _, p := range all {
		if p.Role == user.RoleBarber {
			barbers = append(barbers, p)
		}
	}
	return barbers, nil
}

// Profile fetches the authenticated user's own profile.
func (u *Users) Profile(ctx context.Context) (*user.Profile, error) {
	var out user.Profile
	if err := u.client.do(ctx, http.MethodGet, "/users/profile", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type UpdateUserRequest struct {
	FullName    string `json:"fullName"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
}

func (u *Users) Update(ctx context.Context, id int, req UpdateUserRequest) (*user.Profile, error) {
	if id <= 0 {
		return nil, Precondition("invalid user id: %d", id)
	}
	var out user.Profile
	if err := u.client.do(ctx, http.MethodPut, fmt.Sprintf("/users/%d", id), nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type UploadPhotoResponse struct {
	ProfilePhotoURL string `json:"profilePhotoUrl"`
}

// UploadPhoto sends an already-normalized image as multipart form data and
// returns the URL the backend stored it under.
func (u *Users) UploadPhoto(ctx context.Context, id int, filename string, photo io.Reader) (*UploadPhotoResponse, error) {
	if id <= 0 {
		return nil, Precondition("invalid user id: %d", id)
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, photo); err != nil {
		return nil, err
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	var out UploadPhotoResponse
	path := fmt.Sprintf("/users/%d/upload-photo", id)
	if err := u.client.doMultipart(ctx, http.MethodPut, path, mw.FormDataContentType(), &buf, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type CreateStaffRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"` // symbolic tag, e.g. "Barber"
}

func (u *Users) CreateStaff(ctx context.Context, req CreateStaffRequest) (*user.Profile, error) {
	if req.FullName == "" || req.Email == "" || req.Password == "" {
		return nil, Precondition("fullName, email and password are required")
	}
	var out user.Profile
	if err := u.client.do(ctx, http.MethodPost, "/users/create-staff", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
