package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cairocms/models"
)

func TestPlaceDetailsEmptyAssociations(t *testing.T) {
	s := setupTestStore(t)
	place := mustPlace(t, s, "Giza", 29.9792, 31.1342)

	d, err := s.PlaceDetails(place.ID)
	require.NoError(t, err)
	assert.Equal(t, "Giza", d.Name)
	assert.NotNil(t, d.Photos)
	assert.Empty(t, d.Photos)
	assert.Empty(t, d.Events)
	assert.Empty(t, d.Persons)
}

func TestPlaceDetailsNotFound(t *testing.T) {
	s := setupTestStore(t)

	_, err := s.PlaceDetails(404)
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
}

func TestPlaceDetailsOrdering(t *testing.T) {
	s := setupTestStore(t)
	place := mustPlace(t, s, "Giza", 29.9792, 31.1342)

	mustEvent(t, s, "Older", date(1950, 6, 1), place.ID)
	newer := mustEvent(t, s, "Newer", date(2020, 1, 1), place.ID)

	// photos attached out of slot order come back sorted by slot
	p2 := mustPhoto(t, s, "photos/second.jpg")
	p1 := mustPhoto(t, s, "photos/first.jpg")
	_, err := s.CreatePlacePhoto(PlacePhotoInput{PlaceID: place.ID, PhotoID: p2.ID, PhotoOrder: 2})
	require.NoError(t, err)
	_, err = s.CreatePlacePhoto(PlacePhotoInput{PlaceID: place.ID, PhotoID: p1.ID, PhotoOrder: 1})
	require.NoError(t, err)

	zoe := mustPerson(t, s, "Zoe", "Adams")
	ana := mustPerson(t, s, "Ana", "Lee")
	for _, person := range []*models.Person{zoe, ana} {
		_, err := s.CreatePersonPlace(PersonPlaceInput{PersonID: person.ID, PlaceID: place.ID})
		require.NoError(t, err)
	}

	d, err := s.PlaceDetails(place.ID)
	require.NoError(t, err)

	require.Len(t, d.Photos, 2)
	assert.Equal(t, "photos/first.jpg", d.Photos[0].Ref)
	assert.Equal(t, 1, d.Photos[0].Order)

	require.Len(t, d.Events, 2)
	assert.Equal(t, newer.ID, d.Events[0].ID, "events newest first")
	assert.Equal(t, "2020-01-01", d.Events[0].EventDate)

	require.Len(t, d.Persons, 2)
	assert.Equal(t, "Adams", d.Persons[0].LastName, "persons by last then first name")
}

func TestPlaceDetailsDistinctPersons(t *testing.T) {
	s := setupTestStore(t)
	place := mustPlace(t, s, "Giza", 29.9792, 31.1342)
	person := mustPerson(t, s, "Ana", "Lee")

	// two associations on different dates, one person in the detail list
	_, err := s.CreatePersonPlace(PersonPlaceInput{PersonID: person.ID, PlaceID: place.ID, AssociationDate: date(1920, 1, 1)})
	require.NoError(t, err)
	_, err = s.CreatePersonPlace(PersonPlaceInput{PersonID: person.ID, PlaceID: place.ID, AssociationDate: date(1925, 1, 1)})
	require.NoError(t, err)

	d, err := s.PlaceDetails(place.ID)
	require.NoError(t, err)
	assert.Len(t, d.Persons, 1)
}

func TestDetailsDropUnresolvablePhotos(t *testing.T) {
	s := setupTestStore(t)
	place := mustPlace(t, s, "Giza", 29.9792, 31.1342)
	good := mustPhoto(t, s, "photos/good.jpg")
	bad := mustPhoto(t, s, "photos/bad.jpg")

	_, err := s.CreatePlacePhoto(PlacePhotoInput{PlaceID: place.ID, PhotoID: good.ID, PhotoOrder: 1})
	require.NoError(t, err)
	_, err = s.CreatePlacePhoto(PlacePhotoInput{PlaceID: place.ID, PhotoID: bad.ID, PhotoOrder: 2})
	require.NoError(t, err)

	// blank out the second photo's ref behind the store's back (legacy row)
	require.NoError(t, s.db.Model(&models.Photo{}).Where("id = ?", bad.ID).Update("image_ref", "").Error)

	d, err := s.PlaceDetails(place.ID)
	require.NoError(t, err)
	require.Len(t, d.Photos, 1, "unresolvable photos are dropped, not errors")
	assert.Equal(t, "photos/good.jpg", d.Photos[0].Ref)
}

func TestEventDetails(t *testing.T) {
	s := setupTestStore(t)
	place := mustPlace(t, s, "Giza", 29.9792, 31.1342)
	event, err := s.CreateEvent(EventInput{
		EventName:        "Opening",
		EventDate:        date(2020, 1, 1),
		EventDescription: "grand opening",
		Significance:     models.SignificanceNational,
		PlaceID:          place.ID,
	})
	require.NoError(t, err)
	person := mustPerson(t, s, "Ana", "Lee")
	_, err = s.CreateEventPerson(EventPersonInput{EventID: event.ID, PersonID: person.ID, Role: "speaker"})
	require.NoError(t, err)

	d, err := s.EventDetails(event.ID)
	require.NoError(t, err)
	assert.Equal(t, "Opening", d.Name)
	assert.Equal(t, "2020-01-01", d.Date)
	assert.Equal(t, "NATIONAL", d.Significance)
	assert.Equal(t, place.ID, d.Place.ID)
	assert.Equal(t, "Giza", d.Place.Name)
	require.Len(t, d.Persons, 1)
	assert.Equal(t, "Ana", d.Persons[0].FirstName)
}

func TestEventDetailsNotFound(t *testing.T) {
	s := setupTestStore(t)

	_, err := s.EventDetails(404)
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
}

func TestPersonDetailsFullScenario(t *testing.T) {
	s := setupTestStore(t)

	place := mustPlace(t, s, "Giza", 29.9792, 31.1342)
	event := mustEvent(t, s, "Opening", date(2020, 1, 1), place.ID)
	person := mustPerson(t, s, "Ana", "Lee")

	_, err := s.CreateEventPerson(EventPersonInput{EventID: event.ID, PersonID: person.ID})
	require.NoError(t, err)

	d, err := s.PersonDetails(person.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana", d.FirstName)
	assert.Equal(t, "Lee", d.LastName)

	require.Len(t, d.Events, 1)
	assert.Equal(t, "Opening", d.Events[0].EventName)
	assert.Equal(t, place.ID, d.Events[0].PlaceID)
	assert.Equal(t, "Giza", d.Events[0].PlaceName)

	// the derived association surfaces Giza in the places list
	require.Len(t, d.Places, 1)
	assert.Equal(t, "Giza", d.Places[0].PlaceName)
}

func TestPersonDetailsProfilePhoto(t *testing.T) {
	s := setupTestStore(t)
	photo := mustPhoto(t, s, "photos/ana.jpg")
	person, err := s.CreatePerson(PersonInput{FirstName: "Ana", LastName: "Lee", ProfilePhotoID: &photo.ID})
	require.NoError(t, err)

	d, err := s.PersonDetails(person.ID)
	require.NoError(t, err)
	assert.Equal(t, "photos/ana.jpg", d.ProfilePhotoRef)

	// without a portrait the ref stays empty
	plain := mustPerson(t, s, "Bob", "Ray")
	d2, err := s.PersonDetails(plain.ID)
	require.NoError(t, err)
	assert.Empty(t, d2.ProfilePhotoRef)
}

func TestPersonDetailsNotFound(t *testing.T) {
	s := setupTestStore(t)

	_, err := s.PersonDetails(404)
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
}
