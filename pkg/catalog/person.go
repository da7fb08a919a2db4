package catalog

import (
	"strings"
	"time"

	"gorm.io/gorm"

	"cairocms/models"
)

// PersonInput carries all caller-settable person fields. ProfilePhotoID nil
// clears the portrait, which is always legal.
type PersonInput struct {
	FirstName      string
	LastName       string
	DOB            *time.Time
	Brief          string
	Biography      string
	ProfilePhotoID *uint
}

func validatePerson(in PersonInput) error {
	if strings.TrimSpace(in.FirstName) == "" {
		return invalid("first_name", "required")
	}
	if len(in.FirstName) > 25 {
		return invalid("first_name", "at most 25 characters")
	}
	if strings.TrimSpace(in.LastName) == "" {
		return invalid("last_name", "required")
	}
	if len(in.LastName) > 25 {
		return invalid("last_name", "at most 25 characters")
	}
	if len(in.Brief) > 250 {
		return invalid("brief", "at most 250 characters")
	}
	if len(in.Biography) > 10000 {
		return invalid("biography", "at most 10000 characters")
	}
	return nil
}

// requirePortraitFree rejects a profile photo already held by another person.
// The portrait reference is exclusive; excludePersonID skips the person being
// updated so keeping the same photo does not conflict with itself.
func (s *Store) requirePortraitFree(tx *gorm.DB, photoID, excludePersonID uint) error {
	q := tx.Model(&models.Person{}).Where("profile_photo_id = ?", photoID)
	if excludePersonID != 0 {
		q = q.Where("id <> ?", excludePersonID)
	}
	var cnt int64
	if err := q.Count(&cnt).Error; err != nil {
		return err
	}
	if cnt > 0 {
		return conflict("photo already in use as another person's portrait")
	}
	return nil
}

// CreatePerson validates and persists a new person.
func (s *Store) CreatePerson(in PersonInput) (*models.Person, error) {
	if err := validatePerson(in); err != nil {
		return nil, err
	}
	if in.ProfilePhotoID != nil {
		if err := s.requirePhoto(s.db, *in.ProfilePhotoID); err != nil {
			return nil, err
		}
		if err := s.requirePortraitFree(s.db, *in.ProfilePhotoID, 0); err != nil {
			return nil, err
		}
	}
	p := models.Person{
		FirstName:      in.FirstName,
		LastName:       in.LastName,
		DOB:            datePtr(in.DOB),
		Brief:          in.Brief,
		Biography:      in.Biography,
		ProfilePhotoID: in.ProfilePhotoID,
	}
	if err := s.db.Create(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdatePerson replaces a person's fields after revalidation.
func (s *Store) UpdatePerson(id uint, in PersonInput) (*models.Person, error) {
	var p models.Person
	if err := s.db.First(&p, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, notFound("person", id)
		}
		return nil, err
	}
	if err := validatePerson(in); err != nil {
		return nil, err
	}
	if in.ProfilePhotoID != nil {
		if err := s.requirePhoto(s.db, *in.ProfilePhotoID); err != nil {
			return nil, err
		}
		if err := s.requirePortraitFree(s.db, *in.ProfilePhotoID, id); err != nil {
			return nil, err
		}
	}
	p.FirstName = in.FirstName
	p.LastName = in.LastName
	p.DOB = datePtr(in.DOB)
	p.Brief = in.Brief
	p.Biography = in.Biography
	p.ProfilePhotoID = in.ProfilePhotoID
	// Save writes every column, so a nil dob or portrait actually clears.
	if err := s.db.Save(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// GetPerson loads a person by id.
func (s *Store) GetPerson(id uint) (*models.Person, error) {
	var p models.Person
	if err := s.db.First(&p, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, notFound("person", id)
		}
		return nil, err
	}
	return &p, nil
}

// Persons lists all persons ordered by last then first name.
func (s *Store) Persons() ([]models.Person, error) {
	var out []models.Person
	if err := s.db.Order("last_name, first_name").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// DeletePerson removes a person and cascades their place and event associations.
func (s *Store) DeletePerson(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.requirePerson(tx, id); err != nil {
			return err
		}
		if err := tx.Where("person_id = ?", id).Delete(&models.PersonPlace{}).Error; err != nil {
			return err
		}
		if err := tx.Where("person_id = ?", id).Delete(&models.EventPerson{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Person{}, id).Error
	})
}
