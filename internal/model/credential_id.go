package model

import "github.com/google/uuid"

var newCredentialID = uuid.NewString

// AllocateCredentialID returns a random v4 UUID that is not a key of existing.
func AllocateCredentialID[T any](existing map[string]T) string {
	for {
		id := newCredentialID()
		if _, taken := existing[id]; !taken {
			return id
		}
	}
}
