package identity

import (
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// UUID derives a deterministic UUID from a stable key using go-hashid.
//
// Callers must ensure key construction prevents cross-entity collisions
// (prefix by domain/type).
func UUID(key string) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return uid
}

// DraftUUID gives a markdown-imported draft a stable client reference so
// re-importing the same file never stages a duplicate.
func DraftUUID(contentType, slug string) uuid.UUID {
	return UUID("go-portfolio:draft:" + strings.ToLower(strings.TrimSpace(contentType)) + ":" + strings.ToLower(strings.TrimSpace(slug)))
}

// SourceUUID identifies an import source file independent of its content.
func SourceUUID(path string) uuid.UUID {
	return UUID("go-portfolio:source:" + strings.TrimSpace(path))
}
