package billing

import (
	"time"

	"github.com/google/uuid"
)

// LicenseTerm is how long an issued license stays valid.
const LicenseTerm = 365 * 24 * time.Hour

type License struct {
	ID          uuid.UUID     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	LicenseKey  string        `gorm:"column:license_key;not null;uniqueIndex:idx_licenses_license_key" json:"license_key"`
	LicenseType string        `gorm:"column:license_type;type:varchar(50);not null" json:"license_type"`
	UserID      *string       `gorm:"index" json:"user_id,omitempty"`
	PaymentID   uuid.UUID     `gorm:"type:uuid;not null;index" json:"payment_id"`
	Payment     *Payment      `gorm:"constraint:OnDelete:RESTRICT" json:"-"`
	Status      LicenseStatus `gorm:"type:varchar(20);not null" json:"status"`
	ExpiresAt   time.Time     `json:"expires_at"`
	CreatedAt   time.Time     `json:"created_at"`
}

// NewLicense builds an active license for payment, expiring LicenseTerm after now.
func NewLicense(p *Payment, licenseType string, now time.Time) *License {
	return &License{
		ID:          uuid.New(),
		LicenseKey:  uuid.NewString(),
		LicenseType: licenseType,
		UserID:      p.UserID,
		PaymentID:   p.ID,
		Status:      LicenseStatusActive,
		ExpiresAt:   now.Add(LicenseTerm),
		CreatedAt:   now,
	}
}

// IsActive reports whether the license grants access at now.
func (l *License) IsActive(now time.Time) bool {
	return l.Status == LicenseStatusActive && now.Before(l.ExpiresAt)
}
