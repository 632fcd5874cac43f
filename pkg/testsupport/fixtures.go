// Package testsupport holds fixtures and helpers shared by the package test
// suites.
package testsupport

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-cvform/pkg/cv"
)

// Context returns the context contract tests run under.
func Context() context.Context {
	return context.Background()
}

// TinyPNG is a valid 1x1 PNG payload, small enough to inline in tests that
// exercise the photo pipeline without a file on disk.
var TinyPNG = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a,
	0x00, 0x00, 0x00, 0x0d, 0x49, 0x48, 0x44, 0x52,
	0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4,
	0x89, 0x00, 0x00, 0x00, 0x0d, 0x49, 0x44, 0x41,
	0x54, 0x78, 0x9c, 0x62, 0x00, 0x01, 0x00, 0x00,
	0x05, 0x00, 0x01, 0x0d, 0x0a, 0x2d, 0xb4, 0x00,
	0x00, 0x00, 0x00, 0x49, 0x45, 0x4e, 0x44, 0xae,
	0x42, 0x60, 0x82,
}

// SampleDocument returns a fully populated CV record used across renderer and
// container tests.
func SampleDocument() cv.Document {
	return cv.Document{
		Personal: cv.Personal{
			FirstName:         "Jane",
			LastName:          "Doe",
			ProfessionalTitle: "Staff Engineer",
			Email:             "jane.doe@example.com",
			Phone:             "+1 555 0100",
			LinkedIn:          "linkedin.com/in/janedoe",
		},
		Summary: cv.Summary{
			Summary: "Engineer with a decade of distributed-systems work.",
		},
		KeyCompetencies: cv.KeyCompetencies{
			TechnicalSkills: []string{"Go", "Kubernetes", "PostgreSQL"},
			SoftSkills:      []string{"Mentoring", "Technical writing"},
		},
		Experiences: []cv.Experience{
			{
				CompanyName:      "Acme Corp",
				JobTitle:         "Staff Engineer",
				StartDate:        "2021-03",
				IsCurrent:        true,
				Responsibilities: "Leads the platform team.",
			},
			{
				CompanyName:      "Initech",
				JobTitle:         "Senior Engineer",
				StartDate:        "2017-06",
				EndDate:          "2021-02",
				Responsibilities: "Built the billing pipeline.",
			},
		},
		Educations: []cv.Education{
			{
				SchoolName: "State University",
				Major:      "Computer Science",
				StartDate:  "2010-09",
				EndDate:    "2014-06",
			},
		},
		Certificates: []cv.Certificate{
			{
				Name:         "CKA",
				Institution:  "CNCF",
				DateAcquired: "2022-01",
			},
		},
		Languages: []cv.Language{
			{Name: "English", Proficiency: "native"},
			{Name: "Spanish", Proficiency: "intermediate"},
		},
		Additional: cv.Additional{
			Skills: []string{"Conference speaking", "Open source maintenance"},
		},
		Template: cv.Settings{
			Selected:     "professional",
			IncludePhoto: true,
		},
	}
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// MustLoadDocument reads a JSON fixture into a CV record.
func MustLoadDocument(t *testing.T, path string) cv.Document {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read document fixture: %v", err)
	}
	var doc cv.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("unmarshal document fixture: %v", err)
	}
	return doc
}
