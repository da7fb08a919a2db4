package catalog

import (
	"time"

	"gorm.io/gorm"

	"cairocms/models"
)

// maxPhotosPerOwner caps how many photos a place or event may hold.
const maxPhotosPerOwner = 10

// Store runs all catalog reads and writes over a single gorm connection.
// Mutations validate business rules before touching the database; multi-row
// writes go through a transaction so callers never observe partial state.
type Store struct {
	db        *gorm.DB
	mediaBase string
}

// New returns a Store. mediaBase is the filesystem root that image refs are
// resolved against when probing file sizes; it may be empty (probe always fails,
// file sizes stay null).
func New(db *gorm.DB, mediaBase string) *Store {
	return &Store{db: db, mediaBase: mediaBase}
}

// dateOnly truncates t to a calendar date in UTC so equality checks on
// date-typed columns behave the same on postgres and sqlite.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func datePtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := dateOnly(*t)
	return &d
}

func fmtDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.DateOnly)
	return &s
}

func exists[T any](tx *gorm.DB, id uint) (bool, error) {
	var cnt int64
	var m T
	if err := tx.Model(&m).Where("id = ?", id).Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}

func (s *Store) requirePlace(tx *gorm.DB, id uint) error {
	ok, err := exists[models.Place](tx, id)
	if err != nil {
		return err
	}
	if !ok {
		return notFound("place", id)
	}
	return nil
}

func (s *Store) requirePerson(tx *gorm.DB, id uint) error {
	ok, err := exists[models.Person](tx, id)
	if err != nil {
		return err
	}
	if !ok {
		return notFound("person", id)
	}
	return nil
}

func (s *Store) requirePhoto(tx *gorm.DB, id uint) error {
	ok, err := exists[models.Photo](tx, id)
	if err != nil {
		return err
	}
	if !ok {
		return notFound("photo", id)
	}
	return nil
}
