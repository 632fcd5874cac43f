package formstate_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-cvform/pkg/cv"
	"github.com/goliatone/go-cvform/pkg/formstate"
	"github.com/goliatone/go-cvform/pkg/testsupport"
)

func TestContainer_GetSetDottedPaths(t *testing.T) {
	form := formstate.New()

	if err := form.Set("personal.firstName", "Ada"); err != nil {
		t.Fatalf("set scalar: %v", err)
	}
	if err := form.Set("experiences.0.companyName", "Acme"); err != nil {
		t.Fatalf("set array element: %v", err)
	}
	if err := form.Set("experiences.1.companyName", "Initech"); err != nil {
		t.Fatalf("set second array element: %v", err)
	}

	if got := form.GetString("personal.firstName"); got != "Ada" {
		t.Fatalf("firstName = %q, want Ada", got)
	}
	if got := form.GetString("experiences.1.companyName"); got != "Initech" {
		t.Fatalf("experiences.1.companyName = %q, want Initech", got)
	}
	if _, ok := form.Get("personal.missing"); ok {
		t.Fatal("absent path reported as present")
	}
	if _, ok := form.Get("experiences.5.companyName"); ok {
		t.Fatal("out-of-range index reported as present")
	}
}

func TestContainer_GettersDegradeOnTypeMismatch(t *testing.T) {
	form := formstate.New()
	if err := form.Set("template.includePhoto", true); err != nil {
		t.Fatalf("set: %v", err)
	}

	if got := form.GetString("template.includePhoto"); got != "" {
		t.Fatalf("GetString on a bool = %q, want empty", got)
	}
	if form.GetBool("template.missing") {
		t.Fatal("GetBool on an absent path = true, want false")
	}
}

func TestContainer_RejectsLeadingNumericSegment(t *testing.T) {
	form := formstate.New()
	if err := form.Set("0.name", "x"); err == nil {
		t.Fatal("expected an error for a leading numeric segment")
	}
}

func TestContainer_WatchFiresAfterWrite(t *testing.T) {
	form := formstate.New()

	var got []string
	cancel := form.Watch("personal.photoUrl", func(_ string, value any) {
		s, _ := value.(string)
		got = append(got, s)
	})

	if err := form.Set("personal.photoUrl", "data:one"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := form.Set("personal.lastName", "Doe"); err != nil {
		t.Fatalf("set other path: %v", err)
	}
	cancel()
	if err := form.Set("personal.photoUrl", "data:two"); err != nil {
		t.Fatalf("set after cancel: %v", err)
	}

	want := []string{"data:one"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("watcher calls mismatch (-want +got):\n%s", diff)
	}
}

func TestContainer_LoadNotifiesWatchersOfChangedPaths(t *testing.T) {
	form := formstate.New()
	if err := form.Set("personal.photoUrl", "data:old"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := form.Set("personal.firstName", "Jane"); err != nil {
		t.Fatalf("seed: %v", err)
	}

	var photoSeen []any
	form.Watch("personal.photoUrl", func(_ string, value any) {
		photoSeen = append(photoSeen, value)
	})
	nameCalls := 0
	form.Watch("personal.firstName", func(string, any) { nameCalls++ })

	doc := testsupport.SampleDocument()
	doc.Personal.PhotoURL = "data:new"
	if err := form.Load(doc); err != nil {
		t.Fatalf("load: %v", err)
	}

	want := []any{"data:new"}
	if diff := cmp.Diff(want, photoSeen); diff != "" {
		t.Fatalf("photo watcher calls mismatch (-want +got):\n%s", diff)
	}
	// SampleDocument's first name matches the seeded value, so that watcher
	// stays quiet.
	if nameCalls != 0 {
		t.Fatalf("firstName watcher fired %d times for an unchanged value", nameCalls)
	}

	// Loading a record without a photo clears the path and says so.
	doc.Personal.PhotoURL = ""
	if err := form.Load(doc); err != nil {
		t.Fatalf("load without photo: %v", err)
	}
	if len(photoSeen) != 2 || photoSeen[1] != any("") {
		t.Fatalf("photo watcher calls = %v, want a clearing notification", photoSeen)
	}
}

func TestContainer_RegistryRejectsUnknownPaths(t *testing.T) {
	form := formstate.New(formstate.WithRegistry(formstate.DefaultRegistry()))

	if err := form.Set("personal.nickname", "ace"); err == nil {
		t.Fatal("unknown path accepted")
	}
	if err := form.Set("personal.firstName", "Ada"); err != nil {
		t.Fatalf("registered path rejected: %v", err)
	}
	if err := form.Set("experiences.3.companyName", "Acme"); err != nil {
		t.Fatalf("indexed path did not match its wildcard field: %v", err)
	}
}

func TestContainer_RuleViolationRecordsMessageButKeepsValue(t *testing.T) {
	form := formstate.New(formstate.WithRegistry(formstate.DefaultRegistry()))

	if err := form.Set("personal.email", "not-an-email"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if got := form.GetString("personal.email"); got != "not-an-email" {
		t.Fatalf("value = %q, want the rejected input kept", got)
	}
	msgs := form.ErrorsFor("personal.email")
	if len(msgs) != 1 || msgs[0] != "Email must be a valid email address" {
		t.Fatalf("messages = %v, want the email message", msgs)
	}

	if err := form.Set("personal.email", "ada@example.com"); err != nil {
		t.Fatalf("set valid: %v", err)
	}
	if msgs := form.ErrorsFor("personal.email"); len(msgs) != 0 {
		t.Fatalf("messages after valid write = %v, want none", msgs)
	}
}

func TestContainer_SetErrors(t *testing.T) {
	form := formstate.New()

	form.SetErrors("summary.summary", "too vague")
	want := map[string][]string{"summary.summary": {"too vague"}}
	if diff := cmp.Diff(want, form.Errors()); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}

	form.SetErrors("summary.summary")
	if got := form.Errors(); got != nil {
		t.Fatalf("errors after clear = %v, want nil", got)
	}
}

func TestContainer_SnapshotLoadRoundTrip(t *testing.T) {
	want := testsupport.SampleDocument()
	want.Personal.PhotoURL = "data:image/png;base64,AAAA"

	form := formstate.New()
	if err := form.Load(want); err != nil {
		t.Fatalf("load: %v", err)
	}

	// Loaded values are addressable under the panel's "template" prefix.
	if got := form.GetString("template.selected"); got != "professional" {
		t.Fatalf("template.selected = %q, want professional", got)
	}
	if !form.GetBool("template.includePhoto") {
		t.Fatal("template.includePhoto = false, want true")
	}

	got, err := form.Snapshot()
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestContainer_SnapshotFromIncrementalWrites(t *testing.T) {
	form := formstate.New(formstate.WithRegistry(formstate.DefaultRegistry()))

	writes := map[string]any{
		"personal.firstName":        "Ada",
		"personal.lastName":         "Lovelace",
		"summary.summary":           "Analytical engine programmer.",
		"experiences.0.companyName": "Analytical Engines Ltd",
		"experiences.0.jobTitle":    "Programmer",
		"experiences.0.isCurrent":   true,
		"languages.0.name":          "English",
		"template.selected":         "minimal",
		"template.includePhoto":     false,
	}
	for path, value := range writes {
		if err := form.Set(path, value); err != nil {
			t.Fatalf("set %s: %v", path, err)
		}
	}

	doc, err := form.Snapshot()
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}

	want := cv.Document{
		Personal: cv.Personal{FirstName: "Ada", LastName: "Lovelace"},
		Summary:  cv.Summary{Summary: "Analytical engine programmer."},
		Experiences: []cv.Experience{
			{CompanyName: "Analytical Engines Ltd", JobTitle: "Programmer", IsCurrent: true},
		},
		Languages: []cv.Language{{Name: "English"}},
		Template:  cv.Settings{Selected: "minimal"},
	}
	if diff := cmp.Diff(want, doc); diff != "" {
		t.Fatalf("snapshot mismatch (-want +got):\n%s", diff)
	}
}
