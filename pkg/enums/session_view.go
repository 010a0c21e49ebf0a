package enums

import "fmt"

// SessionView is the influencer session's position in the browsing flow.
// Transitions between views are guarded by the session state machine.
type SessionView string

const (
	SessionViewBrowsing      SessionView = "browsing"
	SessionViewProductDetail SessionView = "product_detail"
	SessionViewCart          SessionView = "cart"
	SessionViewSubmitted     SessionView = "submitted"
)

var validSessionViews = []SessionView{
	SessionViewBrowsing,
	SessionViewProductDetail,
	SessionViewCart,
	SessionViewSubmitted,
}

// String implements fmt.Stringer.
func (v SessionView) String() string {
	return string(v)
}

// IsValid reports whether the value is a known SessionView.
func (v SessionView) IsValid() bool {
	for _, candidate := range validSessionViews {
		if candidate == v {
			return true
		}
	}
	return false
}

// Terminal reports whether the view permits no further catalog activity.
func (v SessionView) Terminal() bool {
	return v == SessionViewSubmitted
}

// ParseSessionView converts raw input into a SessionView.
func ParseSessionView(value string) (SessionView, error) {
	for _, candidate := range validSessionViews {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid session view %q", value)
}
