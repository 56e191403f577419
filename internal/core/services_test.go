package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServices(t *testing.T) {
	db := &mockDB{}

	svcs := NewServices(db)

	require.NotNil(t, svcs)
	require.NotNil(t, svcs.APIKey)
	require.NotNil(t, svcs.Character)
	assert.Same(t, db, svcs.APIKey.db)
	assert.Same(t, db, svcs.Character.db)
	db.AssertExpectations(t)
}
