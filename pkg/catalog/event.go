package catalog

import (
	"strings"
	"time"

	"gorm.io/gorm"

	"cairocms/models"
)

var significanceLevels = map[string]bool{
	models.SignificanceLocal:    true,
	models.SignificanceRegional: true,
	models.SignificanceNational: true,
	models.SignificanceGlobal:   true,
}

// EventInput carries all caller-settable event fields.
type EventInput struct {
	EventName        string
	EventDate        *time.Time
	EventDescription string
	Significance     string
	PlaceID          uint
}

func validateEvent(in EventInput) error {
	if strings.TrimSpace(in.EventName) == "" {
		return invalid("event_name", "required")
	}
	if len(in.EventName) > 100 {
		return invalid("event_name", "at most 100 characters")
	}
	if in.EventDate == nil {
		return invalid("event_date", "required")
	}
	if strings.TrimSpace(in.EventDescription) == "" {
		return invalid("event_description", "required")
	}
	if len(in.EventDescription) > 10000 {
		return invalid("event_description", "at most 10000 characters")
	}
	if in.Significance != "" && !significanceLevels[in.Significance] {
		return invalid("significance", "must be LOCAL, REGIONAL, NATIONAL or GLOBAL")
	}
	if in.PlaceID == 0 {
		return invalid("place_id", "required")
	}
	return nil
}

// CreateEvent validates the input, checks the place reference and persists.
func (s *Store) CreateEvent(in EventInput) (*models.Event, error) {
	if err := validateEvent(in); err != nil {
		return nil, err
	}
	if err := s.requirePlace(s.db, in.PlaceID); err != nil {
		return nil, err
	}
	e := models.Event{
		EventName:        in.EventName,
		EventDate:        dateOnly(*in.EventDate),
		EventDescription: in.EventDescription,
		Significance:     in.Significance,
		PlaceID:          in.PlaceID,
	}
	if err := s.db.Create(&e).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

// UpdateEvent replaces an event's fields after revalidation.
func (s *Store) UpdateEvent(id uint, in EventInput) (*models.Event, error) {
	var e models.Event
	if err := s.db.First(&e, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, notFound("event", id)
		}
		return nil, err
	}
	if err := validateEvent(in); err != nil {
		return nil, err
	}
	if err := s.requirePlace(s.db, in.PlaceID); err != nil {
		return nil, err
	}
	e.EventName = in.EventName
	e.EventDate = dateOnly(*in.EventDate)
	e.EventDescription = in.EventDescription
	e.Significance = in.Significance
	e.PlaceID = in.PlaceID
	if err := s.db.Save(&e).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

// GetEvent loads an event by id.
func (s *Store) GetEvent(id uint) (*models.Event, error) {
	var e models.Event
	if err := s.db.First(&e, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, notFound("event", id)
		}
		return nil, err
	}
	return &e, nil
}

// Events lists all events, newest first, name as tiebreaker.
func (s *Store) Events() ([]models.Event, error) {
	var out []models.Event
	if err := s.db.Order("event_date desc, event_name").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteEvent removes an event and cascades its person and photo associations.
func (s *Store) DeleteEvent(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		ok, err := exists[models.Event](tx, id)
		if err != nil {
			return err
		}
		if !ok {
			return notFound("event", id)
		}
		if err := tx.Where("event_id = ?", id).Delete(&models.EventPerson{}).Error; err != nil {
			return err
		}
		if err := tx.Where("event_id = ?", id).Delete(&models.EventPhoto{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Event{}, id).Error
	})
}
