// Package id generates vault ids, proposal trace ids and ledger request ids.
package id

import (
	"strings"

	"github.com/gofrs/uuid"
)

// New random uuid
func New() string {
	return uuid.Must(uuid.NewV4()).String()
}

// From name based uuid, equal parts give equal ids
func From(parts ...string) string {
	return uuid.NewV5(uuid.NamespaceOID, strings.Join(parts, ":")).String()
}
