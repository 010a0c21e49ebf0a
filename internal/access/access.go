// Package access resolves submitted access codes to an actor role. Codes are
// compared in plaintext with no rate limiting or lockout; the tool trades
// hardening for a zero-friction influencer flow.
package access

import (
	"strings"

	"github.com/seedkitapp/seedkit-backend/internal/document"
	"github.com/seedkitapp/seedkit-backend/pkg/enums"
)

// Outcome names who a code belongs to. CollectionID is set only for
// influencer matches.
type Outcome struct {
	Role         enums.ActorRole
	CollectionID string
}

// Resolve matches a code against the document. Comparison trims whitespace
// and ignores case. The admin code always wins over collection codes; among
// collections the first match in array order wins, so pre-existing duplicate
// codes stay deterministic.
func Resolve(code string, state *document.AppState) (Outcome, bool) {
	normalized := normalize(code)
	if normalized == "" {
		return Outcome{}, false
	}

	if normalized == normalize(state.AdminAccessCode) {
		return Outcome{Role: enums.ActorRoleAdmin}, true
	}

	for i := range state.Collections {
		if normalized == normalize(state.Collections[i].AccessCode) {
			return Outcome{
				Role:         enums.ActorRoleInfluencer,
				CollectionID: state.Collections[i].ID,
			}, true
		}
	}
	return Outcome{}, false
}

func normalize(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}
