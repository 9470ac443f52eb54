package consent

import (
	"time"

	"github.com/google/uuid"
)

// RecordStatus is the lifecycle state of a consent record.
type RecordStatus string

const (
	StatusActive    RecordStatus = "active"
	StatusWithdrawn RecordStatus = "withdrawn"
	StatusExpired   RecordStatus = "expired"
)

// Record is a stored consent decision: which purposes a subject allowed
// for a domain under a given policy version.
type Record struct {
	ID            uuid.UUID
	SubjectID     string
	Domain        string
	Purposes      map[string]bool
	PolicyVersion string
	Status        RecordStatus
	GivenAt       time.Time
	UpdatedAt     time.Time
	ExpiresAt     *time.Time
}

// Response is the API representation of a consent record.
type Response struct {
	ID            string          `json:"id"`
	SubjectID     string          `json:"subjectId"`
	Domain        string          `json:"domain"`
	Purposes      map[string]bool `json:"purposes"`
	PolicyVersion string          `json:"policyVersion"`
	Status        string          `json:"status"`
	GivenAt       time.Time       `json:"givenAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
	ExpiresAt     *time.Time      `json:"expiresAt,omitempty"`
}

// Verdict is the outcome of a consent verification check.
type Verdict struct {
	Allowed       bool            `json:"allowed"`
	Reason        string          `json:"reason"`
	Purposes      map[string]bool `json:"purposes,omitempty"`
	PolicyVersion string          `json:"policyVersion,omitempty"`
}

// denyAll is the verdict used when no usable consent record exists.
func denyAll(reason string) Verdict {
	return Verdict{Allowed: false, Reason: reason}
}
