package enums

import "fmt"

// ShippingStatus tracks whether a shipping entry is still being prepared or
// has been handed to the courier.
type ShippingStatus string

const (
	ShippingStatusPreparing ShippingStatus = "PREPARING"
	ShippingStatusShipped   ShippingStatus = "SHIPPED"
)

var validShippingStatuses = []ShippingStatus{
	ShippingStatusPreparing,
	ShippingStatusShipped,
}

// String implements fmt.Stringer.
func (s ShippingStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known ShippingStatus.
func (s ShippingStatus) IsValid() bool {
	for _, candidate := range validShippingStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseShippingStatus converts raw input into a ShippingStatus.
func ParseShippingStatus(value string) (ShippingStatus, error) {
	for _, candidate := range validShippingStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid shipping status %q", value)
}
