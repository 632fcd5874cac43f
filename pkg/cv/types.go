package cv

// Document is the structured CV record assembled by the form. It is the value
// the form-state container materializes and the renderers consume. JSON tags
// match the wire shape the export pipeline expects.
type Document struct {
	Personal        Personal        `json:"personal"`
	Summary         Summary         `json:"summary"`
	KeyCompetencies KeyCompetencies `json:"keyCompetencies"`
	Experiences     []Experience    `json:"experiences"`
	Educations      []Education     `json:"educations"`
	Certificates    []Certificate   `json:"certificates"`
	Languages       []Language      `json:"languages"`
	Additional      Additional      `json:"additional"`
	Template        Settings        `json:"templateSettings"`
}

// Personal carries identity and contact details. PhotoURL is either the empty
// string (no photo) or a self-contained image data URI.
type Personal struct {
	FirstName         string `json:"firstName" validate:"required,max=80"`
	LastName          string `json:"lastName" validate:"required,max=80"`
	ProfessionalTitle string `json:"professionalTitle" validate:"max=120"`
	Email             string `json:"email" validate:"omitempty,email"`
	Phone             string `json:"phone" validate:"max=40"`
	LinkedIn          string `json:"linkedin" validate:"max=200"`
	PhotoURL          string `json:"photoUrl"`
}

// Summary is the free-text professional summary block.
type Summary struct {
	Summary string `json:"summary" validate:"max=2000"`
}

// KeyCompetencies splits skills into the two lists the templates render side
// by side.
type KeyCompetencies struct {
	TechnicalSkills []string `json:"technicalSkills" validate:"dive,max=80"`
	SoftSkills      []string `json:"softSkills" validate:"dive,max=80"`
}

// Experience is a single employment entry. EndDate is ignored by renderers
// when IsCurrent is set.
type Experience struct {
	CompanyName      string `json:"companyName" validate:"required,max=120"`
	JobTitle         string `json:"jobTitle" validate:"required,max=120"`
	StartDate        string `json:"startDate" validate:"max=20"`
	EndDate          string `json:"endDate" validate:"max=20"`
	IsCurrent        bool   `json:"isCurrent"`
	Responsibilities string `json:"responsibilities" validate:"max=4000"`
}

// Education is a single schooling entry.
type Education struct {
	SchoolName   string `json:"schoolName" validate:"required,max=120"`
	Major        string `json:"major" validate:"max=120"`
	StartDate    string `json:"startDate" validate:"max=20"`
	EndDate      string `json:"endDate" validate:"max=20"`
	Achievements string `json:"achievements" validate:"max=2000"`
}

// Certificate is a single certification entry. ExpirationDate is optional.
type Certificate struct {
	Name           string `json:"name" validate:"required,max=120"`
	Institution    string `json:"institution" validate:"max=120"`
	DateAcquired   string `json:"dateAcquired" validate:"max=20"`
	ExpirationDate string `json:"expirationDate" validate:"max=20"`
	Achievements   string `json:"achievements" validate:"max=2000"`
}

// Language pairs a language name with a proficiency level.
type Language struct {
	Name        string `json:"name" validate:"required,max=60"`
	Proficiency string `json:"proficiency" validate:"max=40"`
}

// Additional holds the loose skills list rendered at the bottom of every
// template.
type Additional struct {
	Skills []string `json:"skills" validate:"dive,max=80"`
}

// Settings records the visual choices made in the template panel: which of
// the fixed template styles to render with and whether the photo block is
// included.
type Settings struct {
	Selected     string `json:"selected" validate:"omitempty,oneof=professional modern minimal"`
	IncludePhoto bool   `json:"includePhoto"`
}

// FullName joins the name fields for display, tolerating missing parts.
func (p Personal) FullName() string {
	switch {
	case p.FirstName == "":
		return p.LastName
	case p.LastName == "":
		return p.FirstName
	default:
		return p.FirstName + " " + p.LastName
	}
}
