package enums

import "fmt"

// LicenseStatus tracks whether a lister's platform license is usable.
type LicenseStatus string

const (
	LicenseStatusActive  LicenseStatus = "active"
	LicenseStatusExpired LicenseStatus = "expired"
	LicenseStatusRevoked LicenseStatus = "revoked"
)

var validLicenseStatuses = []LicenseStatus{
	LicenseStatusActive,
	LicenseStatusExpired,
	LicenseStatusRevoked,
}

// String implements fmt.Stringer.
func (l LicenseStatus) String() string {
	return string(l)
}

// IsValid reports whether the value is a known LicenseStatus.
func (l LicenseStatus) IsValid() bool {
	for _, candidate := range validLicenseStatuses {
		if candidate == l {
			return true
		}
	}
	return false
}

// ParseLicenseStatus converts raw input into a LicenseStatus.
func ParseLicenseStatus(value string) (LicenseStatus, error) {
	for _, candidate := range validLicenseStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid license status %q", value)
}
