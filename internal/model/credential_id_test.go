package model

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocateCredentialID_UniqueAcrossGrowingMapping(t *testing.T) {
	existing := make(map[string]TOTPCredential)
	for i := 0; i < 500; i++ {
		id := AllocateCredentialID(existing)
		_, dup := existing[id]
		require.False(t, dup, "duplicate id %s", id)

		parsed, err := uuid.Parse(id)
		require.NoError(t, err)
		assert.Equal(t, uuid.Version(4), parsed.Version())

		existing[id] = TOTPCredential{}
	}
	assert.Len(t, existing, 500)
}

func TestAllocateCredentialID_RegeneratesOnCollision(t *testing.T) {
	taken := "6f1c1f9e-5b7d-4f0e-9a51-0f3c7c2f6d11"
	fresh := "0b8f3a54-2d1c-4c55-8a9b-8f1a2d3c4e5f"
	queue := []string{taken, taken, fresh}

	orig := newCredentialID
	t.Cleanup(func() { newCredentialID = orig })
	newCredentialID = func() string {
		id := queue[0]
		queue = queue[1:]
		return id
	}

	id := AllocateCredentialID(map[string]U2FCredential{taken: {}})
	assert.Equal(t, fresh, id)
	assert.Empty(t, queue)
}

func TestAllocateCredentialID_NilMapping(t *testing.T) {
	var existing map[string]U2FCredential
	assert.NotEmpty(t, AllocateCredentialID(existing))
}
