package domain

import "time"

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"`
}

// NewAuditFields stamps a new entity as created and last updated by userID at at.
func NewAuditFields(userID string, at time.Time) AuditFields {
	return AuditFields{CreatedAt: at, CreatedBy: userID, LastUpdatedAt: at, LastUpdatedBy: userID}
}

// Touch records a modification.
func (a *AuditFields) Touch(userID string, at time.Time) {
	a.LastUpdatedAt = at
	a.LastUpdatedBy = userID
}
