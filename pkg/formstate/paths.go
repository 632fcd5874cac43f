package formstate

// Canonical dotted paths for the fields the photo pipeline and template panel
// read and write. All other record fields are addressed by the same dotted
// convention but have no behavior attached beyond storage and validation.
const (
	PathPhotoURL         = "personal.photoUrl"
	PathFirstName        = "personal.firstName"
	PathLastName         = "personal.lastName"
	PathTemplateSelected = "template.selected"
	PathIncludePhoto     = "template.includePhoto"
)
