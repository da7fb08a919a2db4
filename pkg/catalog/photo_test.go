package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePhotoDerivesFileMeta(t *testing.T) {
	s := setupTestStore(t)

	p, err := s.CreatePhoto(PhotoInput{ImageRef: "photos/2020/01/Sphinx.JPG", Caption: "the sphinx"})
	require.NoError(t, err)

	assert.Equal(t, "Sphinx.JPG", p.FileName)
	assert.Equal(t, "photos/2020/01/Sphinx.JPG", p.FilePath)
	assert.Equal(t, "jpg", p.FileType)
	assert.False(t, p.UploadDate.IsZero())
}

func TestCreatePhotoUnrecognizedExtension(t *testing.T) {
	s := setupTestStore(t)

	p, err := s.CreatePhoto(PhotoInput{ImageRef: "photos/map.tiff"})
	require.NoError(t, err)
	// unrecognized type is left blank, not rejected
	assert.Equal(t, "", p.FileType)
	assert.Equal(t, "map.tiff", p.FileName)
}

func TestCreatePhotoRequiresImageRef(t *testing.T) {
	s := setupTestStore(t)

	_, err := s.CreatePhoto(PhotoInput{Caption: "no image"})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "image_ref", ve.Field)
}

func TestCreatePhotoCaptionTooLong(t *testing.T) {
	s := setupTestStore(t)

	_, err := s.CreatePhoto(PhotoInput{ImageRef: "a.png", Caption: strings.Repeat("x", 251)})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "caption", ve.Field)
}

func TestPhotoSizeProbe(t *testing.T) {
	s := setupTestStore(t)

	// a real file under the media base is probed
	path := filepath.Join(s.mediaBase, "real.png")
	require.NoError(t, os.WriteFile(path, []byte("pngdata"), 0644))
	p, err := s.CreatePhoto(PhotoInput{ImageRef: "real.png"})
	require.NoError(t, err)
	require.NotNil(t, p.FileSize)
	assert.Equal(t, int64(7), *p.FileSize)

	// a missing file leaves the size null, not an error
	p2, err := s.CreatePhoto(PhotoInput{ImageRef: "gone.png"})
	require.NoError(t, err)
	assert.Nil(t, p2.FileSize)
}

func TestUpdatePhotoRederivesMeta(t *testing.T) {
	s := setupTestStore(t)
	p := mustPhoto(t, s, "photos/old.png")

	ref := "photos/new.jpeg"
	updated, err := s.UpdatePhoto(p.ID, PhotoUpdate{ImageRef: &ref})
	require.NoError(t, err)
	assert.Equal(t, "new.jpeg", updated.FileName)
	assert.Equal(t, "jpeg", updated.FileType)
	assert.Equal(t, ref, updated.FilePath)
}

func TestUpdatePhotoNotFound(t *testing.T) {
	s := setupTestStore(t)

	caption := "x"
	_, err := s.UpdatePhoto(99, PhotoUpdate{Caption: &caption})
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
}

func TestDeletePhotoCascadesAndClearsProfiles(t *testing.T) {
	s := setupTestStore(t)
	photo := mustPhoto(t, s, "photos/portrait.jpg")
	place := mustPlace(t, s, "Giza", 29.9792, 31.1342)
	event := mustEvent(t, s, "Opening", date(2020, 1, 1), place.ID)

	person, err := s.CreatePerson(PersonInput{FirstName: "Ana", LastName: "Lee", ProfilePhotoID: &photo.ID})
	require.NoError(t, err)
	_, err = s.CreatePlacePhoto(PlacePhotoInput{PlaceID: place.ID, PhotoID: photo.ID, PhotoOrder: 1})
	require.NoError(t, err)
	_, err = s.CreateEventPhoto(EventPhotoInput{EventID: event.ID, PhotoID: photo.ID, PhotoOrder: 1})
	require.NoError(t, err)

	require.NoError(t, s.DeletePhoto(photo.ID))

	got, err := s.GetPerson(person.ID)
	require.NoError(t, err)
	assert.Nil(t, got.ProfilePhotoID, "profile reference is cleared, not cascaded")

	d, err := s.PlaceDetails(place.ID)
	require.NoError(t, err)
	assert.Empty(t, d.Photos)
}
