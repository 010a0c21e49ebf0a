package session

import (
	"context"

	"github.com/seedkitapp/seedkit-backend/pkg/enums"
	pkgerrors "github.com/seedkitapp/seedkit-backend/pkg/errors"
)

// allowedTransitions encodes the influencer browsing flow. Entering
// submitted happens only through Checkout, and submitted permits nothing
// until logout.
var allowedTransitions = map[enums.SessionView][]enums.SessionView{
	enums.SessionViewBrowsing:      {enums.SessionViewProductDetail, enums.SessionViewCart},
	enums.SessionViewProductDetail: {enums.SessionViewBrowsing},
	enums.SessionViewCart:          {enums.SessionViewBrowsing},
	enums.SessionViewSubmitted:     {},
}

// SetView performs a guarded navigation transition. A disallowed target
// leaves the session untouched and reports a state conflict.
func (m *Manager) SetView(ctx context.Context, token string, target enums.SessionView) (*Session, error) {
	if !target.IsValid() || target == enums.SessionViewSubmitted {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown or reserved view").
			WithDetails(map[string]string{"view": target.String()})
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	session, err := m.influencerSessionLocked(token)
	if err != nil {
		return nil, err
	}
	if !transitionAllowed(session.View, target) {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "view transition not allowed").
			WithDetails(map[string]string{"from": session.View.String(), "to": target.String()})
	}

	session.View = target
	return snapshot(session), nil
}

func transitionAllowed(from, to enums.SessionView) bool {
	if from == to {
		return true
	}
	for _, allowed := range allowedTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}
