package catalog

import (
	"time"

	"gorm.io/gorm"

	"cairocms/models"
)

// PhotoEntry is one photo in a detail document. Ref is the opaque image
// reference; the transport layer fills URL from it before responding.
type PhotoEntry struct {
	Ref     string `json:"-"`
	URL     string `json:"url"`
	Caption string `json:"caption"`
	Order   int    `json:"order"`
}

// EventSummary is an event row inside place details.
type EventSummary struct {
	ID        uint   `json:"id"`
	EventName string `json:"event_name"`
	EventDate string `json:"event_date"`
}

// PersonSummary is a person row inside place or event details.
type PersonSummary struct {
	ID        uint   `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// PlaceDetails is the denormalized document for one place.
type PlaceDetails struct {
	ID        uint            `json:"id"`
	Name      string          `json:"name"`
	DateStart *string         `json:"date_start"`
	DateEnd   *string         `json:"date_end"`
	Brief     string          `json:"brief"`
	History   string          `json:"history"`
	Latitude  float64         `json:"latitude"`
	Longitude float64         `json:"longitude"`
	Photos    []PhotoEntry    `json:"photos"`
	Events    []EventSummary  `json:"events"`
	Persons   []PersonSummary `json:"persons"`
}

// PlaceRef names the place an event belongs to.
type PlaceRef struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// EventDetails is the denormalized document for one event.
type EventDetails struct {
	ID           uint            `json:"id"`
	Name         string          `json:"name"`
	Date         string          `json:"date"`
	Description  string          `json:"description"`
	Significance string          `json:"significance"`
	Place        PlaceRef        `json:"place"`
	Photos       []PhotoEntry    `json:"photos"`
	Persons      []PersonSummary `json:"persons"`
}

// PersonEventSummary is an event row inside person details, annotated with
// the event's place.
type PersonEventSummary struct {
	ID        uint   `json:"id"`
	EventName string `json:"event_name"`
	EventDate string `json:"event_date"`
	PlaceID   uint   `json:"place_id"`
	PlaceName string `json:"place_name"`
}

// PlaceSummary is a place row inside person details.
type PlaceSummary struct {
	ID        uint   `json:"id"`
	PlaceName string `json:"place_name"`
}

// PersonDetails is the denormalized document for one person.
type PersonDetails struct {
	ID              uint                 `json:"id"`
	FirstName       string               `json:"first_name"`
	LastName        string               `json:"last_name"`
	DOB             *string              `json:"dob"`
	Brief           string               `json:"brief"`
	Biography       string               `json:"biography"`
	ProfilePhotoRef string               `json:"-"`
	ProfilePhotoURL *string              `json:"profile_photo_url"`
	Events          []PersonEventSummary `json:"events"`
	Places          []PlaceSummary       `json:"places"`
}

// placePhotoEntries loads a place's photos in slot order, dropping rows whose
// photo has no resolvable image ref.
func (s *Store) placePhotoEntries(placeID uint) ([]PhotoEntry, error) {
	var links []models.PlacePhoto
	if err := s.db.Preload("Photo").Where("place_id = ?", placeID).
		Order("photo_order asc").Find(&links).Error; err != nil {
		return nil, err
	}
	out := make([]PhotoEntry, 0, len(links))
	for _, l := range links {
		if l.Photo.ImageRef == "" {
			continue
		}
		out = append(out, PhotoEntry{Ref: l.Photo.ImageRef, Caption: l.Photo.Caption, Order: l.PhotoOrder})
	}
	return out, nil
}

func (s *Store) eventPhotoEntries(eventID uint) ([]PhotoEntry, error) {
	var links []models.EventPhoto
	if err := s.db.Preload("Photo").Where("event_id = ?", eventID).
		Order("photo_order asc").Find(&links).Error; err != nil {
		return nil, err
	}
	out := make([]PhotoEntry, 0, len(links))
	for _, l := range links {
		if l.Photo.ImageRef == "" {
			continue
		}
		out = append(out, PhotoEntry{Ref: l.Photo.ImageRef, Caption: l.Photo.Caption, Order: l.PhotoOrder})
	}
	return out, nil
}

// PlaceDetails assembles the nested document for one place. The only error
// condition besides storage failure is an unknown id; empty relations come
// back as empty lists.
func (s *Store) PlaceDetails(id uint) (*PlaceDetails, error) {
	p, err := s.GetPlace(id)
	if err != nil {
		return nil, err
	}
	photos, err := s.placePhotoEntries(id)
	if err != nil {
		return nil, err
	}
	var events []models.Event
	if err := s.db.Where("place_id = ?", id).Order("event_date desc").Find(&events).Error; err != nil {
		return nil, err
	}
	eventRows := make([]EventSummary, 0, len(events))
	for _, e := range events {
		eventRows = append(eventRows, EventSummary{ID: e.ID, EventName: e.EventName, EventDate: e.EventDate.Format(time.DateOnly)})
	}
	persons, err := s.personsAtPlace(id)
	if err != nil {
		return nil, err
	}
	return &PlaceDetails{
		ID:        p.ID,
		Name:      p.PlaceName,
		DateStart: fmtDate(p.DateStart),
		DateEnd:   fmtDate(p.DateEnd),
		Brief:     p.Brief,
		History:   p.History,
		Latitude:  p.Latitude,
		Longitude: p.Longitude,
		Photos:    photos,
		Events:    eventRows,
		Persons:   persons,
	}, nil
}

func (s *Store) personsAtPlace(placeID uint) ([]PersonSummary, error) {
	var persons []models.Person
	if err := s.db.Model(&models.Person{}).Distinct("people.*").
		Joins("JOIN person_places ON person_places.person_id = people.id").
		Where("person_places.place_id = ?", placeID).
		Order("people.last_name, people.first_name").
		Find(&persons).Error; err != nil {
		return nil, err
	}
	out := make([]PersonSummary, 0, len(persons))
	for _, p := range persons {
		out = append(out, PersonSummary{ID: p.ID, FirstName: p.FirstName, LastName: p.LastName})
	}
	return out, nil
}

// EventDetails assembles the nested document for one event.
func (s *Store) EventDetails(id uint) (*EventDetails, error) {
	var e models.Event
	if err := s.db.Preload("Place").First(&e, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, notFound("event", id)
		}
		return nil, err
	}
	photos, err := s.eventPhotoEntries(id)
	if err != nil {
		return nil, err
	}
	var persons []models.Person
	if err := s.db.Model(&models.Person{}).
		Joins("JOIN event_persons ON event_persons.person_id = people.id").
		Where("event_persons.event_id = ?", id).
		Order("people.last_name, people.first_name").
		Find(&persons).Error; err != nil {
		return nil, err
	}
	personRows := make([]PersonSummary, 0, len(persons))
	for _, p := range persons {
		personRows = append(personRows, PersonSummary{ID: p.ID, FirstName: p.FirstName, LastName: p.LastName})
	}
	return &EventDetails{
		ID:           e.ID,
		Name:         e.EventName,
		Date:         e.EventDate.Format(time.DateOnly),
		Description:  e.EventDescription,
		Significance: e.Significance,
		Place:        PlaceRef{ID: e.PlaceID, Name: e.Place.PlaceName},
		Photos:       photos,
		Persons:      personRows,
	}, nil
}

// PersonDetails assembles the nested document for one person. The profile
// photo ref is included only when the referenced photo still resolves.
func (s *Store) PersonDetails(id uint) (*PersonDetails, error) {
	var p models.Person
	if err := s.db.Preload("ProfilePhoto").First(&p, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, notFound("person", id)
		}
		return nil, err
	}
	d := &PersonDetails{
		ID:        p.ID,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		DOB:       fmtDate(p.DOB),
		Brief:     p.Brief,
		Biography: p.Biography,
	}
	if p.ProfilePhoto != nil && p.ProfilePhoto.ImageRef != "" {
		d.ProfilePhotoRef = p.ProfilePhoto.ImageRef
	}
	var events []models.Event
	if err := s.db.Preload("Place").
		Joins("JOIN event_persons ON event_persons.event_id = events.id").
		Where("event_persons.person_id = ?", id).
		Order("events.event_date desc").
		Find(&events).Error; err != nil {
		return nil, err
	}
	d.Events = make([]PersonEventSummary, 0, len(events))
	for _, e := range events {
		d.Events = append(d.Events, PersonEventSummary{
			ID:        e.ID,
			EventName: e.EventName,
			EventDate: e.EventDate.Format(time.DateOnly),
			PlaceID:   e.PlaceID,
			PlaceName: e.Place.PlaceName,
		})
	}
	var places []models.Place
	if err := s.db.Model(&models.Place{}).Distinct("places.*").
		Joins("JOIN person_places ON person_places.place_id = places.id").
		Where("person_places.person_id = ?", id).
		Order("places.place_name").
		Find(&places).Error; err != nil {
		return nil, err
	}
	d.Places = make([]PlaceSummary, 0, len(places))
	for _, pl := range places {
		d.Places = append(d.Places, PlaceSummary{ID: pl.ID, PlaceName: pl.PlaceName})
	}
	return d, nil
}
