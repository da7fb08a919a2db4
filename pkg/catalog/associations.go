package catalog

import (
	"time"

	"gorm.io/gorm"

	"cairocms/models"
)

// ViaEvent marks PersonPlace rows derived from event participation.
const ViaEvent = "via_event"

// PersonPlaceInput links a person to a place. The (person, place, date) triple
// must be unique; a nil date counts as a value for uniqueness purposes.
type PersonPlaceInput struct {
	PersonID        uint
	PlaceID         uint
	AssociationDate *time.Time
	AssociationType string
}

// EventPersonInput links a person to an event.
type EventPersonInput struct {
	EventID  uint
	PersonID uint
	Role     string
}

// PlacePhotoInput attaches a photo to a place in a display slot.
type PlacePhotoInput struct {
	PlaceID    uint
	PhotoID    uint
	PhotoOrder int
}

// EventPhotoInput attaches a photo to an event in a display slot.
type EventPhotoInput struct {
	EventID    uint
	PhotoID    uint
	PhotoOrder int
}

func personPlaceTripleQuery(tx *gorm.DB, personID, placeID uint, date *time.Time) *gorm.DB {
	q := tx.Model(&models.PersonPlace{}).
		Where("person_id = ? AND place_id = ?", personID, placeID)
	if date == nil {
		return q.Where("association_date IS NULL")
	}
	return q.Where("association_date = ?", dateOnly(*date))
}

// CreatePersonPlace validates endpoints and the uniqueness triple, then persists.
func (s *Store) CreatePersonPlace(in PersonPlaceInput) (*models.PersonPlace, error) {
	if len(in.AssociationType) > 50 {
		return nil, invalid("association_type", "at most 50 characters")
	}
	var row *models.PersonPlace
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.requirePerson(tx, in.PersonID); err != nil {
			return err
		}
		if err := s.requirePlace(tx, in.PlaceID); err != nil {
			return err
		}
		var cnt int64
		if err := personPlaceTripleQuery(tx, in.PersonID, in.PlaceID, in.AssociationDate).
			Count(&cnt).Error; err != nil {
			return err
		}
		if cnt > 0 {
			return conflict("person already associated with this place on this date")
		}
		row = &models.PersonPlace{
			PersonID:        in.PersonID,
			PlaceID:         in.PlaceID,
			AssociationDate: datePtr(in.AssociationDate),
			AssociationType: in.AssociationType,
		}
		return tx.Create(row).Error
	})
	if err != nil {
		return nil, err
	}
	return row, nil
}

// DeletePersonPlace removes one association row.
func (s *Store) DeletePersonPlace(id uint) error {
	res := s.db.Delete(&models.PersonPlace{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return notFound("person_place", id)
	}
	return nil
}

// derivePlaceAssociation ensures a PersonPlace row exists for the person at
// the event's place on the event's date. Existing rows are left untouched so
// a manually entered association type is never overwritten.
func derivePlaceAssociation(tx *gorm.DB, personID, placeID uint, eventDate time.Time) error {
	date := dateOnly(eventDate)
	var cnt int64
	if err := personPlaceTripleQuery(tx, personID, placeID, &date).Count(&cnt).Error; err != nil {
		return err
	}
	if cnt > 0 {
		return nil
	}
	return tx.Create(&models.PersonPlace{
		PersonID:        personID,
		PlaceID:         placeID,
		AssociationDate: &date,
		AssociationType: ViaEvent,
	}).Error
}

// CreateEventPerson links a person to an event and, in the same transaction,
// derives the person's place association from the event. If the derived write
// fails the whole operation rolls back.
func (s *Store) CreateEventPerson(in EventPersonInput) (*models.EventPerson, error) {
	if len(in.Role) > 100 {
		return nil, invalid("role", "at most 100 characters")
	}
	var row *models.EventPerson
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var event models.Event
		if err := tx.First(&event, in.EventID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return notFound("event", in.EventID)
			}
			return err
		}
		if err := s.requirePerson(tx, in.PersonID); err != nil {
			return err
		}
		var cnt int64
		if err := tx.Model(&models.EventPerson{}).
			Where("event_id = ? AND person_id = ?", in.EventID, in.PersonID).
			Count(&cnt).Error; err != nil {
			return err
		}
		if cnt > 0 {
			return conflict("person already linked to this event")
		}
		row = &models.EventPerson{EventID: in.EventID, PersonID: in.PersonID, Role: in.Role}
		if err := tx.Create(row).Error; err != nil {
			return err
		}
		return derivePlaceAssociation(tx, in.PersonID, event.PlaceID, event.EventDate)
	})
	if err != nil {
		return nil, err
	}
	return row, nil
}

// DeleteEventPerson removes one association row. The derived PersonPlace row,
// if any, is history and stays.
func (s *Store) DeleteEventPerson(id uint) error {
	res := s.db.Delete(&models.EventPerson{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return notFound("event_person", id)
	}
	return nil
}

// validatePhotoSlot enforces the shared photo-attachment rules for one owner:
// order within [1,10], no duplicate photo, no occupied slot, and at most ten
// photos with no automatic renumbering. excludeID skips the row being edited
// so revalidating it does not count itself.
func validatePhotoSlot(q func() *gorm.DB, photoID uint, order int, excludeID uint) error {
	if order < 1 || order > maxPhotosPerOwner {
		return invalid("photo_order", "must be between 1 and 10")
	}
	base := func() *gorm.DB {
		db := q()
		if excludeID != 0 {
			db = db.Where("id <> ?", excludeID)
		}
		return db
	}
	var cnt int64
	if err := base().Where("photo_id = ?", photoID).Count(&cnt).Error; err != nil {
		return err
	}
	if cnt > 0 {
		return conflict("photo already attached")
	}
	if err := base().Where("photo_order = ?", order).Count(&cnt).Error; err != nil {
		return err
	}
	if cnt > 0 {
		return conflict("photo_order slot already occupied")
	}
	var total int64
	if err := base().Count(&total).Error; err != nil {
		return err
	}
	if total >= maxPhotosPerOwner {
		var low int64
		if err := base().Where("photo_order < ?", maxPhotosPerOwner).Count(&low).Error; err != nil {
			return err
		}
		if low == 0 {
			return conflict("at most 10 photos allowed")
		}
	}
	return nil
}

// CreatePlacePhoto attaches a photo to a place.
func (s *Store) CreatePlacePhoto(in PlacePhotoInput) (*models.PlacePhoto, error) {
	var row *models.PlacePhoto
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.requirePlace(tx, in.PlaceID); err != nil {
			return err
		}
		if err := s.requirePhoto(tx, in.PhotoID); err != nil {
			return err
		}
		q := func() *gorm.DB {
			return tx.Model(&models.PlacePhoto{}).Where("place_id = ?", in.PlaceID)
		}
		if err := validatePhotoSlot(q, in.PhotoID, in.PhotoOrder, 0); err != nil {
			return err
		}
		row = &models.PlacePhoto{PlaceID: in.PlaceID, PhotoID: in.PhotoID, PhotoOrder: in.PhotoOrder}
		return tx.Create(row).Error
	})
	if err != nil {
		return nil, err
	}
	return row, nil
}

// UpdatePlacePhotoOrder moves an existing attachment to another slot.
func (s *Store) UpdatePlacePhotoOrder(id uint, order int) (*models.PlacePhoto, error) {
	var row models.PlacePhoto
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&row, id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return notFound("place_photo", id)
			}
			return err
		}
		q := func() *gorm.DB {
			return tx.Model(&models.PlacePhoto{}).Where("place_id = ?", row.PlaceID)
		}
		if err := validatePhotoSlot(q, row.PhotoID, order, row.ID); err != nil {
			return err
		}
		row.PhotoOrder = order
		return tx.Save(&row).Error
	})
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// DeletePlacePhoto removes one attachment row.
func (s *Store) DeletePlacePhoto(id uint) error {
	res := s.db.Delete(&models.PlacePhoto{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return notFound("place_photo", id)
	}
	return nil
}

// CreateEventPhoto attaches a photo to an event.
func (s *Store) CreateEventPhoto(in EventPhotoInput) (*models.EventPhoto, error) {
	var row *models.EventPhoto
	err := s.db.Transaction(func(tx *gorm.DB) error {
		ok, err := exists[models.Event](tx, in.EventID)
		if err != nil {
			return err
		}
		if !ok {
			return notFound("event", in.EventID)
		}
		if err := s.requirePhoto(tx, in.PhotoID); err != nil {
			return err
		}
		q := func() *gorm.DB {
			return tx.Model(&models.EventPhoto{}).Where("event_id = ?", in.EventID)
		}
		if err := validatePhotoSlot(q, in.PhotoID, in.PhotoOrder, 0); err != nil {
			return err
		}
		row = &models.EventPhoto{EventID: in.EventID, PhotoID: in.PhotoID, PhotoOrder: in.PhotoOrder}
		return tx.Create(row).Error
	})
	if err != nil {
		return nil, err
	}
	return row, nil
}

// UpdateEventPhotoOrder moves an existing attachment to another slot.
func (s *Store) UpdateEventPhotoOrder(id uint, order int) (*models.EventPhoto, error) {
	var row models.EventPhoto
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&row, id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return notFound("event_photo", id)
			}
			return err
		}
		q := func() *gorm.DB {
			return tx.Model(&models.EventPhoto{}).Where("event_id = ?", row.EventID)
		}
		if err := validatePhotoSlot(q, row.PhotoID, order, row.ID); err != nil {
			return err
		}
		row.PhotoOrder = order
		return tx.Save(&row).Error
	})
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// DeleteEventPhoto removes one attachment row.
func (s *Store) DeleteEventPhoto(id uint) error {
	res := s.db.Delete(&models.EventPhoto{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return notFound("event_photo", id)
	}
	return nil
}
