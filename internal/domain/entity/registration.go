package entity

import (
	"time"
)

// LegalType distinguishes individual applicants from companies.
type LegalType string

const (
	LegalTypeIndividual LegalType = "Individual"
	LegalTypeCompany    LegalType = "Company"
)

// Registration request statuses. Closed set, enforced by a CHECK constraint
// in the schema as well.
const (
	RegistrationStatusPending  = "pending"
	RegistrationStatusApproved = "approved"
	RegistrationStatusRejected = "rejected"
)

// RegistrationRequest is an applicant's pending submission awaiting admin
// vetting. Approval spawns an Agent; ApprovedAgentID records the link.
type RegistrationRequest struct {
	ID          string    `json:"id"`
	FullName    string    `json:"fullName"`
	CompanyName string    `json:"companyName"`
	LegalType   LegalType `json:"legalType"`
	Mobile      string    `json:"mobile"`
	OfficePhone string    `json:"officePhone"`
	HomePhone   string    `json:"homePhone"`

	Address   string   `json:"address"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`

	Customs           []string `json:"customs"`
	GoodsTypes        []string `json:"goodsTypes"`
	YearsOfExperience int      `json:"yearsOfExperience"`
	Description       string   `json:"description"`

	Attachments []RegistrationAttachment `json:"attachments,omitempty"`
	Phones      []RegistrationPhone      `json:"phones,omitempty"`

	Status          string    `json:"status"`
	RejectReason    string    `json:"rejectReason,omitempty"`
	ApprovedAgentID *string   `json:"approvedAgentId,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}

// RegistrationPhone is one entry of the open-ended phone list.
// Type is one of mobile|office|home|fax|other.
type RegistrationPhone struct {
	ID                    string `json:"id,omitempty"`
	RegistrationRequestID string `json:"-"`
	Type                  string `json:"type"`
	Number                string `json:"number"`
}

// RegistrationAttachment records an uploaded file: the stored object name and
// the URL it is served from.
type RegistrationAttachment struct {
	ID                    string `json:"id,omitempty"`
	RegistrationRequestID string `json:"-"`
	FileName              string `json:"fileName"`
	URL                   string `json:"url"`
}
