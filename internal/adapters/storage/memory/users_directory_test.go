package memory

import (
	"context"
	"errors"
	"testing"

	"clinical-sharing/internal/domain/access"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserDirectory_RememberAndResolve(t *testing.T) {
	d := NewUserDirectory()
	ctx := context.Background()

	d.Remember("user-b", "B@Example.com")
	d.Remember("user-c", "")

	id, err := d.ResolveUserIDByEmail(ctx, " b@example.com ")
	require.NoError(t, err)
	assert.Equal(t, "user-b", id)

	ok, err := d.Exists(ctx, "user-c")
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = d.ResolveUserIDByEmail(ctx, "nobody@example.com")
	assert.True(t, errors.Is(err, access.ErrNotFound))

	// Cambio de email: el viejo deja de resolver
	d.Remember("user-b", "new@example.com")
	_, err = d.ResolveUserIDByEmail(ctx, "b@example.com")
	assert.True(t, errors.Is(err, access.ErrNotFound))

	// Un request sin email no borra el conocido
	d.Remember("user-b", "")
	id, err = d.ResolveUserIDByEmail(ctx, "new@example.com")
	require.NoError(t, err)
	assert.Equal(t, "user-b", id)
}
