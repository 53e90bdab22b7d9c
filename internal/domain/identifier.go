/**
 * @description
 * Identifier derivation for message fields that are not guaranteed to arrive
 * as well-formed UUIDs. Upstream systems occasionally send free-form user or
 * payment identifiers; the platform contract requires a stable 128-bit id, so
 * non-conforming values are mapped deterministically through a SHA-256 digest.
 *
 * @notes
 * - DeriveID must stay deterministic across processes and releases: derived
 *   ids are stored by downstream systems and compared across services.
 */
package domain

import (
	"crypto/sha256"
	"strings"

	"github.com/google/uuid"
)

// DeriveID maps an arbitrary string identifier to a UUID. A value that is
// already a well-formed UUID decodes unchanged; anything else is hashed with
// SHA-256 and the first 16 digest bytes become the UUID, in digest order.
// Every input is acceptable, including the empty string.
func DeriveID(source string) uuid.UUID {
	if id, err := uuid.Parse(source); err == nil {
		return id
	}
	digest := sha256.Sum256([]byte(source))
	id, _ := uuid.FromBytes(digest[:16])
	return id
}

// ParseID resolves a wire-level identifier field. Blank values map to
// uuid.Nil so validation can reject them; everything else goes through
// DeriveID.
func ParseID(value string) uuid.UUID {
	if strings.TrimSpace(value) == "" {
		return uuid.Nil
	}
	return DeriveID(value)
}
