package mutate_test

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/web-rebel/devlink/internal/domain/models"
	"github.com/web-rebel/devlink/internal/domain/mutate"
)

func expEntry(title string) models.Experience {
	return models.Experience{
		Title:   title,
		Company: "Acme",
		From:    time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func eduEntry(school string) models.Education {
	return models.Education{
		School:       school,
		Degree:       "BSc",
		FieldOfStudy: "CS",
		From:         time.Date(2016, 9, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestAddExperience_PrependsWithFreshID(t *testing.T) {
	p := &models.Profile{UserID: primitive.NewObjectID()}

	if err := mutate.AddExperience(p, expEntry("Engineer")); err != nil {
		t.Fatalf("AddExperience: %v", err)
	}
	if err := mutate.AddExperience(p, expEntry("Senior Engineer")); err != nil {
		t.Fatalf("AddExperience: %v", err)
	}

	if len(p.Experience) != 2 {
		t.Fatalf("len = %d, want 2", len(p.Experience))
	}
	if p.Experience[0].Title != "Senior Engineer" {
		t.Errorf("newest entry not at index 0: got %q", p.Experience[0].Title)
	}
	if p.Experience[0].ID == "" || p.Experience[1].ID == "" {
		t.Error("expected IDs to be assigned")
	}
	if p.Experience[0].ID == p.Experience[1].ID {
		t.Errorf("IDs not unique: %q", p.Experience[0].ID)
	}
}

func TestAddExperience_RequiredFields(t *testing.T) {
	tests := []struct {
		name  string
		entry models.Experience
		param string
	}{
		{"missing title", models.Experience{Company: "Acme", From: time.Now()}, "title"},
		{"missing company", models.Experience{Title: "Engineer", From: time.Now()}, "company"},
		{"missing from", models.Experience{Title: "Engineer", Company: "Acme"}, "from"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &models.Profile{}
			err := mutate.AddExperience(p, tt.entry)
			ve, ok := mutate.AsValidation(err)
			if !ok {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if ve.Param != tt.param {
				t.Errorf("param: got %q, want %q", ve.Param, tt.param)
			}
			if len(p.Experience) != 0 {
				t.Error("collection mutated on validation failure")
			}
		})
	}
}

func TestUpdateExperience_ReplacesWholeEntryKeepingID(t *testing.T) {
	p := &models.Profile{}
	if err := mutate.AddExperience(p, models.Experience{
		Title:       "Engineer",
		Company:     "Acme",
		Location:    "Remote",
		From:        time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		Description: "old",
	}); err != nil {
		t.Fatal(err)
	}
	id := p.Experience[0].ID

	patch := expEntry("Staff Engineer")
	if err := mutate.UpdateExperience(p, id, patch); err != nil {
		t.Fatalf("UpdateExperience: %v", err)
	}

	got := p.Experience[0]
	if got.ID != id {
		t.Errorf("ID changed: got %q, want %q", got.ID, id)
	}
	if got.Title != "Staff Engineer" {
		t.Errorf("title: got %q", got.Title)
	}
	// Wholesale replace: fields absent from the patch are cleared, not merged.
	if got.Location != "" || got.Description != "" {
		t.Errorf("expected replace, got merge: %+v", got)
	}
}

func TestUpdateExperience_MissLeavesCollectionUnchanged(t *testing.T) {
	p := &models.Profile{}
	if err := mutate.AddExperience(p, expEntry("Engineer")); err != nil {
		t.Fatal(err)
	}
	before := p.Experience[0]

	err := mutate.UpdateExperience(p, "no-such-id", expEntry("Intruder"))
	if !mutate.IsNotFound(err) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if len(p.Experience) != 1 || p.Experience[0] != before {
		t.Error("miss must never touch an unrelated entry")
	}
}

func TestRemoveExperience_RemovesExactlyMatchedEntry(t *testing.T) {
	p := &models.Profile{}
	for _, title := range []string{"A", "B", "C"} {
		if err := mutate.AddExperience(p, expEntry(title)); err != nil {
			t.Fatal(err)
		}
	}
	// Order is C, B, A. Remove the middle one.
	id := p.Experience[1].ID

	if err := mutate.RemoveExperience(p, id); err != nil {
		t.Fatalf("RemoveExperience: %v", err)
	}
	if len(p.Experience) != 2 {
		t.Fatalf("len = %d, want 2", len(p.Experience))
	}
	for _, e := range p.Experience {
		if e.ID == id {
			t.Error("removed entry still present")
		}
	}
	if p.Experience[0].Title != "C" || p.Experience[1].Title != "A" {
		t.Errorf("wrong entries survived: %q, %q", p.Experience[0].Title, p.Experience[1].Title)
	}
}

func TestRemoveExperience_MissNeverRemovesLastEntry(t *testing.T) {
	p := &models.Profile{}
	if err := mutate.AddExperience(p, expEntry("Only")); err != nil {
		t.Fatal(err)
	}

	err := mutate.RemoveExperience(p, "no-such-id")
	if !mutate.IsNotFound(err) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if len(p.Experience) != 1 {
		t.Error("miss removed an unrelated entry")
	}
}

func TestAddEducation_PrependsWithFreshID(t *testing.T) {
	p := &models.Profile{}

	if err := mutate.AddEducation(p, eduEntry("MIT")); err != nil {
		t.Fatalf("AddEducation: %v", err)
	}
	if err := mutate.AddEducation(p, eduEntry("Stanford")); err != nil {
		t.Fatalf("AddEducation: %v", err)
	}

	if p.Education[0].School != "Stanford" {
		t.Errorf("newest entry not at index 0: got %q", p.Education[0].School)
	}
	if p.Education[0].ID == p.Education[1].ID {
		t.Error("IDs not unique")
	}
}

func TestAddEducation_RequiredFields(t *testing.T) {
	from := time.Date(2016, 9, 1, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name  string
		entry models.Education
		param string
	}{
		{"missing school", models.Education{Degree: "BSc", FieldOfStudy: "CS", From: from}, "school"},
		{"missing degree", models.Education{School: "MIT", FieldOfStudy: "CS", From: from}, "degree"},
		{"missing fieldofstudy", models.Education{School: "MIT", Degree: "BSc", From: from}, "fieldofstudy"},
		{"missing from", models.Education{School: "MIT", Degree: "BSc", FieldOfStudy: "CS"}, "from"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &models.Profile{}
			err := mutate.AddEducation(p, tt.entry)
			ve, ok := mutate.AsValidation(err)
			if !ok {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if ve.Param != tt.param {
				t.Errorf("param: got %q, want %q", ve.Param, tt.param)
			}
		})
	}
}

func TestUpdateEducation_MissLeavesCollectionUnchanged(t *testing.T) {
	p := &models.Profile{}
	if err := mutate.AddEducation(p, eduEntry("MIT")); err != nil {
		t.Fatal(err)
	}

	err := mutate.UpdateEducation(p, "bogus", eduEntry("Evil U"))
	if !mutate.IsNotFound(err) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if p.Education[0].School != "MIT" {
		t.Error("miss mutated an unrelated entry")
	}
}

func TestRemoveEducation_ByID(t *testing.T) {
	p := &models.Profile{}
	if err := mutate.AddEducation(p, eduEntry("MIT")); err != nil {
		t.Fatal(err)
	}
	id := p.Education[0].ID

	if err := mutate.RemoveEducation(p, id); err != nil {
		t.Fatalf("RemoveEducation: %v", err)
	}
	if len(p.Education) != 0 {
		t.Errorf("len = %d, want 0", len(p.Education))
	}

	if err := mutate.RemoveEducation(p, id); !mutate.IsNotFound(err) {
		t.Errorf("expected NotFoundError on second remove, got %v", err)
	}
}
