package odin

import (
	"context"
	"net/http"
	"strings"

	"clinical-sharing/internal/domain/users"
	"clinical-sharing/internal/platform/httpclient"
)

// Directory resuelve usuarios contra Odin. Implementa users.Directory.
// Los errores de upstream se devuelven tal cual; el core los trata como fuente caída.
type Directory struct {
	client *Client
}

var _ users.Directory = (*Directory)(nil)

func NewDirectory(client *Client) *Directory {
	return &Directory{client: client}
}

func (d *Directory) ResolveUserIDByEmail(ctx context.Context, email string) (string, error) {
	email = users.NormalizeEmail(email)
	if email == "" {
		return "", users.NotFoundEmail(email)
	}
	if !d.client.IsConfigured() {
		return "", ErrOdinNotConfigured
	}

	id, err := d.client.LookupByEmail(ctx, email)
	if httpclient.IsStatus(err, http.StatusNotFound) || (err == nil && id == "") {
		return "", users.NotFoundEmail(email)
	}
	if err != nil {
		return "", d.client.mapError(err)
	}
	return id, nil
}

func (d *Directory) Exists(ctx context.Context, userID string) (bool, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return false, nil
	}
	if !d.client.IsConfigured() {
		return false, ErrOdinNotConfigured
	}

	_, err := d.client.GetUser(ctx, userID)
	if httpclient.IsStatus(err, http.StatusNotFound) {
		return false, nil
	}
	if err != nil {
		return false, d.client.mapError(err)
	}
	return true, nil
}
