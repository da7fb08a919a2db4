package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"cairocms/models"
)

// setupTestStore creates a Store over an in-memory SQLite database.
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.Photo{},
		&models.Place{},
		&models.Person{},
		&models.Event{},
		&models.PersonPlace{},
		&models.EventPerson{},
		&models.PlacePhoto{},
		&models.EventPhoto{},
	)
	require.NoError(t, err)

	return New(db, t.TempDir())
}

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func mustPlace(t *testing.T, s *Store, name string, lat, lon float64) *models.Place {
	t.Helper()
	p, err := s.CreatePlace(PlaceInput{PlaceName: name, Latitude: lat, Longitude: lon})
	require.NoError(t, err)
	return p
}

func mustPerson(t *testing.T, s *Store, first, last string) *models.Person {
	t.Helper()
	p, err := s.CreatePerson(PersonInput{FirstName: first, LastName: last})
	require.NoError(t, err)
	return p
}

func mustEvent(t *testing.T, s *Store, name string, d *time.Time, placeID uint) *models.Event {
	t.Helper()
	e, err := s.CreateEvent(EventInput{
		EventName:        name,
		EventDate:        d,
		EventDescription: name + " description",
		PlaceID:          placeID,
	})
	require.NoError(t, err)
	return e
}

func mustPhoto(t *testing.T, s *Store, ref string) *models.Photo {
	t.Helper()
	p, err := s.CreatePhoto(PhotoInput{ImageRef: ref})
	require.NoError(t, err)
	return p
}
