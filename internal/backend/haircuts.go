package backend

import (
	"context"
	"net/http"

	"github.com/barberdev/barberdev-web/internal/domain/appointment"
)

// Haircuts wraps the public service-catalog endpoints.
type Haircuts struct {
	client *Client
}

func NewHaircuts(client *Client) *Haircuts {
	return &Haircuts{client: client}
}

// List fetches the service catalog. Public, no credential required.
func (h *Haircuts) List(ctx context.Context) ([]appointment.Haircut, error) {
	var out []appointment.Haircut
	if err := h.client.do(ctx, http.MethodGet, "/haircuts", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
