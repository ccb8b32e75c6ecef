// README: Confirmation identifier generation.
package types

import (
	"strings"

	"github.com/google/uuid"
)

// NewConfirmationID returns prefix + "-" + six uppercase characters taken from a random UUID.
// Callers must check for collisions against their own registry.
func NewConfirmationID(prefix string) string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return prefix + "-" + strings.ToUpper(raw[:6])
}
