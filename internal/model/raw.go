package model

import "time"

// RawRow is one source record contributing to an entity group. It is
// produced by the upstream loader and read-only to the aggregation engine.
type RawRow struct {
	OrganizationName string `json:"organization_name"`
	SourceDataset    string `json:"source_dataset"`
	SourceRecordID   string `json:"source_record_id"`

	Province         string `json:"province,omitempty"`
	Area             string `json:"area,omitempty"`
	Address          string `json:"address,omitempty"`
	Category         string `json:"category,omitempty"`
	OrganizationType string `json:"organization_type,omitempty"`
	Status           string `json:"status,omitempty"`
	Website          string `json:"website,omitempty"`
	Planes           string `json:"planes,omitempty"`
	Description      string `json:"description,omitempty"`
	Notes            string `json:"notes,omitempty"`
	Priority         string `json:"priority,omitempty"`
	PrivacyBasis     string `json:"privacy_basis,omitempty"`

	// LastInteraction holds the raw, loosely formatted date string as it
	// appeared in the source. LastInteractionAt is set instead when the
	// source carried a native timestamp.
	LastInteraction   string     `json:"last_interaction_date,omitempty"`
	LastInteractionAt *time.Time `json:"last_interaction_at,omitempty"`

	// Contacts are index-aligned in the source files; the loader zips the
	// four parallel columns into one slice of structs.
	Contacts []Contact `json:"contacts,omitempty"`
}

// Contact is one person attached to a raw row.
type Contact struct {
	Name  string `json:"name,omitempty"`
	Role  string `json:"role,omitempty"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// ScalarField returns the value of a sourced scalar field by its SSOT
// column name. Unknown names return "".
func (r RawRow) ScalarField(name string) string {
	switch name {
	case ColOrganizationName:
		return r.OrganizationName
	case ColProvince:
		return r.Province
	case ColArea:
		return r.Area
	case ColAddressPrimary:
		return r.Address
	case ColOrganizationCategory:
		return r.Category
	case ColOrganizationType:
		return r.OrganizationType
	case ColStatus:
		return r.Status
	case ColWebsite:
		return r.Website
	case ColPlanes:
		return r.Planes
	case ColDescription:
		return r.Description
	case ColNotes:
		return r.Notes
	case ColPriority:
		return r.Priority
	case ColPrivacyBasis:
		return r.PrivacyBasis
	}
	return ""
}

// IntentSummary is the optional per-entity signal summary supplied by the
// intent-signal collaborator, keyed by organization slug.
type IntentSummary struct {
	Score       float64  `json:"score" yaml:"score"`
	SignalTypes []string `json:"signal_types" yaml:"signal_types"`
}
