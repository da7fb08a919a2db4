package catalog

import (
	"strings"
	"time"

	"gorm.io/gorm"

	"cairocms/models"
)

// PlaceInput carries all caller-settable place fields.
type PlaceInput struct {
	PlaceName string
	Latitude  float64
	Longitude float64
	DateStart *time.Time
	DateEnd   *time.Time
	Brief     string
	History   string
}

func validatePlace(in PlaceInput) error {
	if strings.TrimSpace(in.PlaceName) == "" {
		return invalid("place_name", "required")
	}
	if len(in.PlaceName) > 50 {
		return invalid("place_name", "at most 50 characters")
	}
	if in.Latitude < -90 || in.Latitude > 90 {
		return invalid("latitude", "must be between -90 and 90")
	}
	if in.Longitude < -180 || in.Longitude > 180 {
		return invalid("longitude", "must be between -180 and 180")
	}
	if len(in.Brief) > 250 {
		return invalid("brief", "at most 250 characters")
	}
	if len(in.History) > 10000 {
		return invalid("history", "at most 10000 characters")
	}
	if in.DateStart != nil && in.DateEnd != nil && in.DateEnd.Before(*in.DateStart) {
		return invalid("date_end", "must not precede date_start")
	}
	return nil
}

// CreatePlace validates and persists a new place.
func (s *Store) CreatePlace(in PlaceInput) (*models.Place, error) {
	if err := validatePlace(in); err != nil {
		return nil, err
	}
	p := models.Place{
		PlaceName: in.PlaceName,
		Latitude:  in.Latitude,
		Longitude: in.Longitude,
		DateStart: datePtr(in.DateStart),
		DateEnd:   datePtr(in.DateEnd),
		Brief:     in.Brief,
		History:   in.History,
	}
	if err := s.db.Create(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdatePlace replaces a place's fields after revalidation.
func (s *Store) UpdatePlace(id uint, in PlaceInput) (*models.Place, error) {
	var p models.Place
	if err := s.db.First(&p, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, notFound("place", id)
		}
		return nil, err
	}
	if err := validatePlace(in); err != nil {
		return nil, err
	}
	p.PlaceName = in.PlaceName
	p.Latitude = in.Latitude
	p.Longitude = in.Longitude
	p.DateStart = datePtr(in.DateStart)
	p.DateEnd = datePtr(in.DateEnd)
	p.Brief = in.Brief
	p.History = in.History
	if err := s.db.Save(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// GetPlace loads a place by id.
func (s *Store) GetPlace(id uint) (*models.Place, error) {
	var p models.Place
	if err := s.db.First(&p, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, notFound("place", id)
		}
		return nil, err
	}
	return &p, nil
}

// Places lists all places ordered by name.
func (s *Store) Places() ([]models.Place, error) {
	var out []models.Place
	if err := s.db.Order("place_name").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// DeletePlace removes a place and cascades its person and photo associations.
// A place that still has events is protected and the delete is rejected.
func (s *Store) DeletePlace(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.requirePlace(tx, id); err != nil {
			return err
		}
		var events int64
		if err := tx.Model(&models.Event{}).Where("place_id = ?", id).Count(&events).Error; err != nil {
			return err
		}
		if events > 0 {
			return &ProtectedError{Entity: "place", ID: id, Reason: "has dependent events"}
		}
		if err := tx.Where("place_id = ?", id).Delete(&models.PersonPlace{}).Error; err != nil {
			return err
		}
		if err := tx.Where("place_id = ?", id).Delete(&models.PlacePhoto{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Place{}, id).Error
	})
}
