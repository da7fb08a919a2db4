package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"gorm.io/gorm"

	"cairocms/models"
)

// recognizedTypes is the set of extensions recorded as a file type. Anything
// else leaves FileType blank rather than rejecting the upload.
var recognizedTypes = map[string]bool{"png": true, "jpg": true, "jpeg": true}

// PhotoInput carries caller-settable photo fields. Size, Width and Height are
// optional hints from the upload path; when Size is nil the store probes the
// file under the media base instead.
type PhotoInput struct {
	ImageRef   string
	Caption    string
	UploadDate *time.Time
	Size       *int64
	Width      int
	Height     int
}

// PhotoUpdate carries partial updates; nil fields are left unchanged.
type PhotoUpdate struct {
	ImageRef   *string
	Caption    *string
	UploadDate *time.Time
}

// applyDerived recomputes FileName, FilePath, FileType and FileSize from the
// current ImageRef. Runs on every save; a failed size probe leaves FileSize nil.
func (s *Store) applyDerived(p *models.Photo, knownSize *int64) {
	ref := p.ImageRef
	p.FilePath = ref
	name := ref
	if i := strings.LastIndex(ref, "/"); i >= 0 {
		name = ref[i+1:]
	}
	p.FileName = name
	p.FileType = ""
	if i := strings.LastIndex(name, "."); i >= 0 && i < len(name)-1 {
		ext := strings.ToLower(name[i+1:])
		if recognizedTypes[ext] {
			p.FileType = ext
		}
	}
	if knownSize != nil {
		sz := *knownSize
		p.FileSize = &sz
		return
	}
	p.FileSize = nil
	if s.mediaBase == "" {
		return
	}
	if fi, err := os.Stat(filepath.Join(s.mediaBase, filepath.FromSlash(ref))); err == nil {
		sz := fi.Size()
		p.FileSize = &sz
	}
}

func validatePhoto(p *models.Photo) error {
	if strings.TrimSpace(p.ImageRef) == "" {
		return invalid("image_ref", "required")
	}
	if len(p.Caption) > 250 {
		return invalid("caption", "at most 250 characters")
	}
	return nil
}

// CreatePhoto registers an uploaded image and derives its file metadata.
func (s *Store) CreatePhoto(in PhotoInput) (*models.Photo, error) {
	p := models.Photo{
		ImageRef:   in.ImageRef,
		Caption:    in.Caption,
		UploadDate: time.Now(),
		Width:      in.Width,
		Height:     in.Height,
	}
	if in.UploadDate != nil {
		p.UploadDate = *in.UploadDate
	}
	if err := validatePhoto(&p); err != nil {
		return nil, err
	}
	s.applyDerived(&p, in.Size)
	if err := s.db.Create(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdatePhoto applies the given fields and re-derives file metadata.
func (s *Store) UpdatePhoto(id uint, upd PhotoUpdate) (*models.Photo, error) {
	var p models.Photo
	if err := s.db.First(&p, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, notFound("photo", id)
		}
		return nil, err
	}
	if upd.ImageRef != nil {
		p.ImageRef = *upd.ImageRef
	}
	if upd.Caption != nil {
		p.Caption = *upd.Caption
	}
	if upd.UploadDate != nil {
		p.UploadDate = *upd.UploadDate
	}
	if err := validatePhoto(&p); err != nil {
		return nil, err
	}
	s.applyDerived(&p, nil)
	if err := s.db.Save(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// GetPhoto loads a photo by id.
func (s *Store) GetPhoto(id uint) (*models.Photo, error) {
	var p models.Photo
	if err := s.db.First(&p, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, notFound("photo", id)
		}
		return nil, err
	}
	return &p, nil
}

// Photos lists all photos, newest upload first.
func (s *Store) Photos() ([]models.Photo, error) {
	var out []models.Photo
	if err := s.db.Order("upload_date desc").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// DeletePhoto removes a photo, its place/event attachments, and clears any
// person profile reference to it.
func (s *Store) DeletePhoto(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.requirePhoto(tx, id); err != nil {
			return err
		}
		if err := tx.Where("photo_id = ?", id).Delete(&models.PlacePhoto{}).Error; err != nil {
			return err
		}
		if err := tx.Where("photo_id = ?", id).Delete(&models.EventPhoto{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Person{}).Where("profile_photo_id = ?", id).
			Update("profile_photo_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Photo{}, id).Error
	})
}
