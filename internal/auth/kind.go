package auth

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownKind is returned for a credential kind outside the known set.
var ErrUnknownKind = errors.New("unknown credential kind")

// Kind selects which client-credential wire protocol is used to obtain
// a token, and which environment variables hold the credentials.
type Kind string

const (
	// KindGeneral authenticates with Authorization: Basic and a
	// grant_type-only form body.
	KindGeneral Kind = "general"

	// KindClientOps sends client_id and client_secret in the form body
	// with no Authorization header.
	KindClientOps Kind = "clientops"
)

// Kinds returns all credential kinds.
func Kinds() []Kind {
	return []Kind{KindGeneral, KindClientOps}
}

// ParseKind normalizes and validates a credential kind string. The
// legacy alias "client" maps to clientops.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "general":
		return KindGeneral, nil
	case "clientops", "client":
		return KindClientOps, nil
	}
	return "", fmt.Errorf("%w: %q (valid: general, clientops)", ErrUnknownKind, s)
}

// envSuffix is the credential variable infix for this kind.
func (k Kind) envSuffix() string {
	if k == KindGeneral {
		return "GENERAL"
	}
	return "CLIENTOPS"
}
