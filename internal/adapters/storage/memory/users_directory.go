package memory

import (
	"context"
	"strings"
	"sync"

	"clinical-sharing/internal/domain/users"
)

// UserDirectory es el directorio de usuarios para modo dev: aprende
// identidades a partir de los claims verificados (ver middleware.TrackUsers).
type UserDirectory struct {
	mu      sync.RWMutex
	byID    map[string]string // userID -> email
	byEmail map[string]string // email -> userID
}

func NewUserDirectory() *UserDirectory {
	return &UserDirectory{
		byID:    make(map[string]string),
		byEmail: make(map[string]string),
	}
}

// Remember registra (o actualiza) un usuario. Email vacío solo registra el ID.
func (d *UserDirectory) Remember(userID, email string) {
	userID = strings.TrimSpace(userID)
	email = users.NormalizeEmail(email)
	if userID == "" {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if prev, ok := d.byID[userID]; ok && prev != "" && prev != email && email != "" {
		delete(d.byEmail, prev)
	}
	if email != "" || d.byID[userID] == "" {
		d.byID[userID] = email
	}
	if email != "" {
		d.byEmail[email] = userID
	}
}

func (d *UserDirectory) ResolveUserIDByEmail(ctx context.Context, email string) (string, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	email = users.NormalizeEmail(email)
	id, ok := d.byEmail[email]
	if !ok {
		return "", users.NotFoundEmail(email)
	}
	return id, nil
}

func (d *UserDirectory) Exists(ctx context.Context, userID string) (bool, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	_, ok := d.byID[strings.TrimSpace(userID)]
	return ok, nil
}
