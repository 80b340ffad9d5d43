package model

// SSOT column names. The aggregation output carries exactly this column
// set, in this order, for every row.
const (
	ColOrganizationName       = "organization_name"
	ColOrganizationSlug       = "organization_slug"
	ColProvince               = "province"
	ColCountry                = "country"
	ColArea                   = "area"
	ColAddressPrimary         = "address_primary"
	ColOrganizationCategory   = "organization_category"
	ColOrganizationType       = "organization_type"
	ColStatus                 = "status"
	ColWebsite                = "website"
	ColPlanes                 = "planes"
	ColDescription            = "description"
	ColNotes                  = "notes"
	ColSourceDatasets         = "source_datasets"
	ColSourceRecordIDs        = "source_record_ids"
	ColContactPrimaryName     = "contact_primary_name"
	ColContactPrimaryRole     = "contact_primary_role"
	ColContactPrimaryEmail    = "contact_primary_email"
	ColContactPrimaryPhone    = "contact_primary_phone"
	ColContactSecondaryEmails = "contact_secondary_emails"
	ColContactSecondaryPhones = "contact_secondary_phones"
	ColDataQualityScore       = "data_quality_score"
	ColDataQualityFlags       = "data_quality_flags"
	ColSelectionProvenance    = "selection_provenance"
	ColLastInteractionDate    = "last_interaction_date"
	ColPriority               = "priority"
	ColPrivacyBasis           = "privacy_basis"
)

// Columns is the fixed SSOT column order.
var Columns = []string{
	ColOrganizationName,
	ColOrganizationSlug,
	ColProvince,
	ColCountry,
	ColArea,
	ColAddressPrimary,
	ColOrganizationCategory,
	ColOrganizationType,
	ColStatus,
	ColWebsite,
	ColPlanes,
	ColDescription,
	ColNotes,
	ColSourceDatasets,
	ColSourceRecordIDs,
	ColContactPrimaryName,
	ColContactPrimaryRole,
	ColContactPrimaryEmail,
	ColContactPrimaryPhone,
	ColContactSecondaryEmails,
	ColContactSecondaryPhones,
	ColDataQualityScore,
	ColDataQualityFlags,
	ColSelectionProvenance,
	ColLastInteractionDate,
	ColPriority,
	ColPrivacyBasis,
}

// SourcedColumns lists the columns whose value is chosen from raw rows by
// the field selector and therefore carries selection provenance. Contact
// columns are excluded here: the contact merger records their provenance
// from the primary-contact decision.
var SourcedColumns = []string{
	ColOrganizationName,
	ColProvince,
	ColArea,
	ColAddressPrimary,
	ColOrganizationCategory,
	ColOrganizationType,
	ColStatus,
	ColWebsite,
	ColPlanes,
	ColDescription,
	ColNotes,
	ColPriority,
	ColPrivacyBasis,
}

// CanonicalRecord is one SSOT output row, one per entity group. Every
// column of the fixed set is present and typed even when empty.
type CanonicalRecord struct {
	OrganizationName       string  `json:"organization_name"`
	OrganizationSlug       string  `json:"organization_slug"`
	Province               string  `json:"province"`
	Country                string  `json:"country"`
	Area                   string  `json:"area"`
	AddressPrimary         string  `json:"address_primary"`
	OrganizationCategory   string  `json:"organization_category"`
	OrganizationType       string  `json:"organization_type"`
	Status                 string  `json:"status"`
	Website                string  `json:"website"`
	Planes                 string  `json:"planes"`
	Description            string  `json:"description"`
	Notes                  string  `json:"notes"`
	SourceDatasets         string  `json:"source_datasets"`
	SourceRecordIDs        string  `json:"source_record_ids"`
	ContactPrimaryName     string  `json:"contact_primary_name"`
	ContactPrimaryRole     string  `json:"contact_primary_role"`
	ContactPrimaryEmail    string  `json:"contact_primary_email"`
	ContactPrimaryPhone    string  `json:"contact_primary_phone"`
	ContactSecondaryEmails string  `json:"contact_secondary_emails"`
	ContactSecondaryPhones string  `json:"contact_secondary_phones"`
	DataQualityScore       float64 `json:"data_quality_score"`
	DataQualityFlags       string  `json:"data_quality_flags"`
	SelectionProvenance    string  `json:"selection_provenance"`
	LastInteractionDate    string  `json:"last_interaction_date"`
	Priority               string  `json:"priority"`
	PrivacyBasis           string  `json:"privacy_basis"`
}

// Value returns the record's value for the given SSOT column as a string.
// data_quality_score is rendered by the caller; here it returns "" so that
// writers can format the float themselves.
func (c CanonicalRecord) Value(column string) string {
	switch column {
	case ColOrganizationName:
		return c.OrganizationName
	case ColOrganizationSlug:
		return c.OrganizationSlug
	case ColProvince:
		return c.Province
	case ColCountry:
		return c.Country
	case ColArea:
		return c.Area
	case ColAddressPrimary:
		return c.AddressPrimary
	case ColOrganizationCategory:
		return c.OrganizationCategory
	case ColOrganizationType:
		return c.OrganizationType
	case ColStatus:
		return c.Status
	case ColWebsite:
		return c.Website
	case ColPlanes:
		return c.Planes
	case ColDescription:
		return c.Description
	case ColNotes:
		return c.Notes
	case ColSourceDatasets:
		return c.SourceDatasets
	case ColSourceRecordIDs:
		return c.SourceRecordIDs
	case ColContactPrimaryName:
		return c.ContactPrimaryName
	case ColContactPrimaryRole:
		return c.ContactPrimaryRole
	case ColContactPrimaryEmail:
		return c.ContactPrimaryEmail
	case ColContactPrimaryPhone:
		return c.ContactPrimaryPhone
	case ColContactSecondaryEmails:
		return c.ContactSecondaryEmails
	case ColContactSecondaryPhones:
		return c.ContactSecondaryPhones
	case ColDataQualityFlags:
		return c.DataQualityFlags
	case ColSelectionProvenance:
		return c.SelectionProvenance
	case ColLastInteractionDate:
		return c.LastInteractionDate
	case ColPriority:
		return c.Priority
	case ColPrivacyBasis:
		return c.PrivacyBasis
	}
	return ""
}
