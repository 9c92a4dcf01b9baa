// internal/domain/mutate/profile.go
package mutate

import (
	"github.com/google/uuid"

	"github.com/web-rebel/devlink/internal/domain/models"
)

// AddExperience validates entry, assigns it a fresh ID, and prepends it to
// the profile's experience list (newest first).
func AddExperience(p *models.Profile, e models.Experience) error {
	if err := validateExperience(e); err != nil {
		return err
	}
	e.ID = uuid.NewString()
	p.Experience = append([]models.Experience{e}, p.Experience...)
	return nil
}

// UpdateExperience replaces the entry whose ID equals id with e, keeping the
// original ID. The replacement is wholesale, not a field merge. A miss leaves
// the list untouched and returns NotFoundError.
func UpdateExperience(p *models.Profile, id string, e models.Experience) error {
	if err := validateExperience(e); err != nil {
		return err
	}
	for i := range p.Experience {
		if p.Experience[i].ID == id {
			e.ID = id
			p.Experience[i] = e
			return nil
		}
	}
	return &NotFoundError{What: "experience entry"}
}

// RemoveExperience removes exactly the entry whose ID equals id. A miss
// leaves the list untouched and returns NotFoundError.
func RemoveExperience(p *models.Profile, id string) error {
	for i := range p.Experience {
		if p.Experience[i].ID == id {
			p.Experience = append(p.Experience[:i], p.Experience[i+1:]...)
			return nil
		}
	}
	return &NotFoundError{What: "experience entry"}
}

// AddEducation validates entry, assigns it a fresh ID, and prepends it to the
// profile's education list.
func AddEducation(p *models.Profile, e models.Education) error {
	if err := validateEducation(e); err != nil {
		return err
	}
	e.ID = uuid.NewString()
	p.Education = append([]models.Education{e}, p.Education...)
	return nil
}

// UpdateEducation replaces the entry whose ID equals id with e, keeping the
// original ID. A miss leaves the list untouched and returns NotFoundError.
func UpdateEducation(p *models.Profile, id string, e models.Education) error {
	if err := validateEducation(e); err != nil {
		return err
	}
	for i := range p.Education {
		if p.Education[i].ID == id {
			e.ID = id
			p.Education[i] = e
			return nil
		}
	}
	return &NotFoundError{What: "education entry"}
}

// RemoveEducation removes exactly the entry whose ID equals id. A miss leaves
// the list untouched and returns NotFoundError.
func RemoveEducation(p *models.Profile, id string) error {
	for i := range p.Education {
		if p.Education[i].ID == id {
			p.Education = append(p.Education[:i], p.Education[i+1:]...)
			return nil
		}
	}
	return &NotFoundError{What: "education entry"}
}

func validateExperience(e models.Experience) error {
	switch {
	case e.Title == "":
		return &ValidationError{Param: "title", Msg: "Title is required"}
	case e.Company == "":
		return &ValidationError{Param: "company", Msg: "Company is required"}
	case e.From.IsZero():
		return &ValidationError{Param: "from", Msg: "From date is required"}
	}
	return nil
}

func validateEducation(e models.Education) error {
	switch {
	case e.School == "":
		return &ValidationError{Param: "school", Msg: "School is required"}
	case e.Degree == "":
		return &ValidationError{Param: "degree", Msg: "Degree is required"}
	case e.FieldOfStudy == "":
		return &ValidationError{Param: "fieldofstudy", Msg: "Field of study is required"}
	case e.From.IsZero():
		return &ValidationError{Param: "from", Msg: "From date is required"}
	}
	return nil
}
