package apitoken

import (
	"context"
	"testing"

	"vet-practice/internal/ports/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerify(t *testing.T) {
	v := New(" s3cret ")

	c, err := v.Verify(context.Background(), "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "api-token", c.Subject)

	_, err = v.Verify(context.Background(), "wrong")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestVerify_EmptyConfiguredTokenRejectsAll(t *testing.T) {
	_, err := New("").Verify(context.Background(), "")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}
