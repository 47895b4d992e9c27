package domain

// AllowedExtensions maps upload file extensions to a logical file type.
var AllowedExtensions = map[string]string{
	"pdf":  "pdf",
	"jpg":  "image",
	"jpeg": "image",
	"png":  "image",
	"webp": "image",
}

// AllowedContentTypes lists content types accepted after magic-byte sniffing.
var AllowedContentTypes = map[string]bool{
	"application/pdf": true,
	"image/jpeg":      true,
	"image/png":       true,
	"image/webp":      true,
}

// canonicalKeys is the superset of field keys recognized across supported
// identity and supporting document types. Prompts enumerate these so the
// model anchors extractions to real document semantics; anything else the
// model finds goes into extra_fields.
var canonicalKeys = []string{
	// Person identifiers
	"surname", "given_names", "first_name", "middle_names", "full_name", "alias_name",

	// Document numbers
	"document_number", "passport_number", "national_id_number", "nin",
	"voter_id_number", "driver_license_number", "license_number",
	"permit_number", "work_permit_number", "residence_permit_number",
	"tax_id_number", "social_security_number", "account_number",
	"customer_number", "reference_number", "file_number", "card_number",
	"folio_number", "deed_number", "parcel_number", "plot_number",
	"survey_plan_number", "title_number", "certificate_number",

	// Machine readable zone
	"mrz_line1", "mrz_line2", "mrz_line3",

	// Dates and places
	"date_of_birth", "place_of_birth", "date_of_issue", "date_of_expiry",
	"date_of_registration", "date_of_execution", "date_of_signature",
	"date_of_transfer", "issue_date", "expiry_date", "effective_date",
	"statement_period_start", "statement_period_end",
	"billing_period_start", "billing_period_end",

	// Classification
	"document_type_label", "document_category", "class_code",
	"vehicle_class", "license_class", "restriction_codes", "endorsement_codes",

	// Nationality / issuing authority
	"nationality", "nationality_code", "issuing_country", "issuing_authority",
	"country_of_issue",

	// Personal attributes
	"sex", "gender", "marital_status", "profession", "occupation",
	"tribe", "religion", "height", "weight", "eye_color", "hair_color",
	"distinguishing_marks", "signature_present",

	// Contact and address
	"address_line1", "address_line2", "address_line3", "city", "state",
	"province", "region", "postal_code", "country", "residence_status",
	"phone_number", "email",

	// Voter / election
	"polling_unit", "ward", "lga", "constituency", "state_code", "vin",

	// Driver license
	"issuing_office", "driver_restrictions", "driver_endorsements",
	"driver_conditions", "vehicle_categories",

	// Financial statement
	"bank_name", "branch_name", "iban", "swift_code", "balance", "currency",

	// Utility bill
	"meter_number", "account_name", "service_address", "tariff", "billing_reference",

	// Property / land
	"property_address", "property_description", "land_size", "coordinates",
	"grantor_name", "grantee_name", "consideration_amount", "tenure_type",
	"encumbrances",

	// Permit / visa
	"visa_number", "visa_type", "visa_category", "visa_entries", "visa_issue_place",

	// Misc
	"barcode_value", "qr_code_value", "hash_value", "notes", "observations",
	"warnings", "seal_present", "hologram_present", "watermark_present",
}

// CanonicalKeys returns a copy of the canonical field-key superset.
func CanonicalKeys() []string {
	out := make([]string, len(canonicalKeys))
	copy(out, canonicalKeys)
	return out
}
