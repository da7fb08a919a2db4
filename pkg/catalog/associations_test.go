package catalog

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cairocms/models"
)

func TestPersonPlaceTripleUnique(t *testing.T) {
	s := setupTestStore(t)
	place := mustPlace(t, s, "Giza", 29.9792, 31.1342)
	person := mustPerson(t, s, "Ana", "Lee")

	_, err := s.CreatePersonPlace(PersonPlaceInput{
		PersonID: person.ID, PlaceID: place.ID, AssociationDate: date(1920, 3, 1),
	})
	require.NoError(t, err)

	// same triple is a conflict
	_, err = s.CreatePersonPlace(PersonPlaceInput{
		PersonID: person.ID, PlaceID: place.ID, AssociationDate: date(1920, 3, 1),
	})
	var ce *ConflictError
	require.ErrorAs(t, err, &ce)

	// a different date is allowed
	_, err = s.CreatePersonPlace(PersonPlaceInput{
		PersonID: person.ID, PlaceID: place.ID, AssociationDate: date(1921, 3, 1),
	})
	require.NoError(t, err)
}

func TestPersonPlaceNilDateCountsForUniqueness(t *testing.T) {
	s := setupTestStore(t)
	place := mustPlace(t, s, "Giza", 29.9792, 31.1342)
	person := mustPerson(t, s, "Ana", "Lee")

	_, err := s.CreatePersonPlace(PersonPlaceInput{PersonID: person.ID, PlaceID: place.ID})
	require.NoError(t, err)
	_, err = s.CreatePersonPlace(PersonPlaceInput{PersonID: person.ID, PlaceID: place.ID})
	var ce *ConflictError
	require.ErrorAs(t, err, &ce)
}

func TestPersonPlaceEndpointsMustExist(t *testing.T) {
	s := setupTestStore(t)
	place := mustPlace(t, s, "Giza", 29.9792, 31.1342)

	_, err := s.CreatePersonPlace(PersonPlaceInput{PersonID: 77, PlaceID: place.ID})
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "person", nf.Entity)
}

func TestEventPersonDerivesPlaceAssociation(t *testing.T) {
	s := setupTestStore(t)
	place := mustPlace(t, s, "Giza", 29.9792, 31.1342)
	event := mustEvent(t, s, "Opening", date(2020, 1, 1), place.ID)
	person := mustPerson(t, s, "Ana", "Lee")

	_, err := s.CreateEventPerson(EventPersonInput{EventID: event.ID, PersonID: person.ID, Role: "speaker"})
	require.NoError(t, err)

	var rows []models.PersonPlace
	require.NoError(t, s.db.Where("person_id = ? AND place_id = ?", person.ID, place.ID).Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, ViaEvent, rows[0].AssociationType)
	require.NotNil(t, rows[0].AssociationDate)
	assert.Equal(t, "2020-01-01", rows[0].AssociationDate.Format("2006-01-02"))

	// repeating the link is rejected and leaves the derived row alone
	_, err = s.CreateEventPerson(EventPersonInput{EventID: event.ID, PersonID: person.ID})
	var ce *ConflictError
	require.ErrorAs(t, err, &ce)
	require.NoError(t, s.db.Where("person_id = ? AND place_id = ?", person.ID, place.ID).Find(&rows).Error)
	assert.Len(t, rows, 1)
}

func TestEventPersonDerivationKeepsManualRow(t *testing.T) {
	s := setupTestStore(t)
	place := mustPlace(t, s, "Giza", 29.9792, 31.1342)
	event := mustEvent(t, s, "Opening", date(2020, 1, 1), place.ID)
	person := mustPerson(t, s, "Ana", "Lee")

	// a manual association for the same triple already exists
	_, err := s.CreatePersonPlace(PersonPlaceInput{
		PersonID: person.ID, PlaceID: place.ID,
		AssociationDate: date(2020, 1, 1), AssociationType: "residence",
	})
	require.NoError(t, err)

	_, err = s.CreateEventPerson(EventPersonInput{EventID: event.ID, PersonID: person.ID})
	require.NoError(t, err)

	var rows []models.PersonPlace
	require.NoError(t, s.db.Where("person_id = ? AND place_id = ?", person.ID, place.ID).Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, "residence", rows[0].AssociationType, "manual association_type is never overwritten")
}

func TestPhotoSlotRules(t *testing.T) {
	s := setupTestStore(t)
	place := mustPlace(t, s, "Giza", 29.9792, 31.1342)
	a := mustPhoto(t, s, "photos/a.jpg")
	b := mustPhoto(t, s, "photos/b.jpg")

	_, err := s.CreatePlacePhoto(PlacePhotoInput{PlaceID: place.ID, PhotoID: a.ID, PhotoOrder: 0})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	_, err = s.CreatePlacePhoto(PlacePhotoInput{PlaceID: place.ID, PhotoID: a.ID, PhotoOrder: 11})
	require.ErrorAs(t, err, &ve)

	_, err = s.CreatePlacePhoto(PlacePhotoInput{PlaceID: place.ID, PhotoID: a.ID, PhotoOrder: 3})
	require.NoError(t, err)

	// same photo again
	_, err = s.CreatePlacePhoto(PlacePhotoInput{PlaceID: place.ID, PhotoID: a.ID, PhotoOrder: 4})
	var ce *ConflictError
	require.ErrorAs(t, err, &ce)

	// occupied slot
	_, err = s.CreatePlacePhoto(PlacePhotoInput{PlaceID: place.ID, PhotoID: b.ID, PhotoOrder: 3})
	require.ErrorAs(t, err, &ce)
}

func TestPhotoCapTenNoReshuffle(t *testing.T) {
	s := setupTestStore(t)
	event := mustEvent(t, s, "Opening", date(2020, 1, 1),
		mustPlace(t, s, "Giza", 29.9792, 31.1342).ID)

	for i := 1; i <= 10; i++ {
		photo := mustPhoto(t, s, fmt.Sprintf("photos/e%d.jpg", i))
		_, err := s.CreateEventPhoto(EventPhotoInput{EventID: event.ID, PhotoID: photo.ID, PhotoOrder: i})
		require.NoError(t, err)
	}

	// the eleventh distinct photo is rejected at full occupancy
	extra := mustPhoto(t, s, "photos/extra.jpg")
	_, err := s.CreateEventPhoto(EventPhotoInput{EventID: event.ID, PhotoID: extra.ID, PhotoOrder: 5})
	var ce *ConflictError
	require.ErrorAs(t, err, &ce)
}

func TestUpdatePhotoOrderExcludesSelf(t *testing.T) {
	s := setupTestStore(t)
	place := mustPlace(t, s, "Giza", 29.9792, 31.1342)

	var rows []*models.PlacePhoto
	for i := 1; i <= 10; i++ {
		photo := mustPhoto(t, s, fmt.Sprintf("photos/p%d.jpg", i))
		row, err := s.CreatePlacePhoto(PlacePhotoInput{PlaceID: place.ID, PhotoID: photo.ID, PhotoOrder: i})
		require.NoError(t, err)
		rows = append(rows, row)
	}

	// moving a row into a slot freed by deleting another row works even at
	// full occupancy, because the row being edited does not count itself
	require.NoError(t, s.DeletePlacePhoto(rows[4].ID)) // frees slot 5
	moved, err := s.UpdatePlacePhotoOrder(rows[9].ID, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, moved.PhotoOrder)

	// moving onto an occupied slot is still a conflict
	_, err = s.UpdatePlacePhotoOrder(rows[0].ID, 2)
	var ce *ConflictError
	require.ErrorAs(t, err, &ce)
}

func TestDeleteEventCascadesAssociations(t *testing.T) {
	s := setupTestStore(t)
	place := mustPlace(t, s, "Giza", 29.9792, 31.1342)
	event := mustEvent(t, s, "Opening", date(2020, 1, 1), place.ID)
	person := mustPerson(t, s, "Ana", "Lee")
	photo := mustPhoto(t, s, "photos/x.jpg")

	_, err := s.CreateEventPerson(EventPersonInput{EventID: event.ID, PersonID: person.ID})
	require.NoError(t, err)
	_, err = s.CreateEventPhoto(EventPhotoInput{EventID: event.ID, PhotoID: photo.ID, PhotoOrder: 1})
	require.NoError(t, err)

	require.NoError(t, s.DeleteEvent(event.ID))

	var cnt int64
	require.NoError(t, s.db.Model(&models.EventPerson{}).Where("event_id = ?", event.ID).Count(&cnt).Error)
	assert.Zero(t, cnt)
	require.NoError(t, s.db.Model(&models.EventPhoto{}).Where("event_id = ?", event.ID).Count(&cnt).Error)
	assert.Zero(t, cnt)

	// the derived person-place history survives the event
	var pp int64
	require.NoError(t, s.db.Model(&models.PersonPlace{}).Where("person_id = ?", person.ID).Count(&pp).Error)
	assert.Equal(t, int64(1), pp)
}

func TestDeletePersonCascadesAssociations(t *testing.T) {
	s := setupTestStore(t)
	place := mustPlace(t, s, "Giza", 29.9792, 31.1342)
	event := mustEvent(t, s, "Opening", date(2020, 1, 1), place.ID)
	person := mustPerson(t, s, "Ana", "Lee")

	_, err := s.CreateEventPerson(EventPersonInput{EventID: event.ID, PersonID: person.ID})
	require.NoError(t, err)

	require.NoError(t, s.DeletePerson(person.ID))

	var cnt int64
	require.NoError(t, s.db.Model(&models.EventPerson{}).Where("person_id = ?", person.ID).Count(&cnt).Error)
	assert.Zero(t, cnt)
	require.NoError(t, s.db.Model(&models.PersonPlace{}).Where("person_id = ?", person.ID).Count(&cnt).Error)
	assert.Zero(t, cnt)
}
