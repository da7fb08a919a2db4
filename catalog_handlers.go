package main

import (
	"net/http"
	"strconv"

	"cairocms/pkg/catalog"

	"github.com/gin-gonic/gin"
)

func setupReadRoutes(g *gin.RouterGroup) {
	g.GET("/places.geojson", placesGeoJSONHandler)
	g.GET("/places", listPlacesHandler)
	g.GET("/places/:id", getPlaceHandler)
	g.GET("/places/:id/details", placeDetailsHandler)
	g.GET("/events", listEventsHandler)
	g.GET("/events/:id", getEventHandler)
	g.GET("/events/:id/details", eventDetailsHandler)
	g.GET("/persons", listPersonsHandler)
	g.GET("/persons/:id", getPersonHandler)
	g.GET("/persons/:id/details", personDetailsHandler)
	g.GET("/photos", listPhotosHandler)
	g.GET("/photos/:id", getPhotoHandler)
}

func setupContentRoutes(g *gin.RouterGroup) {
	g.POST("/photos", createPhotoHandler)
	g.POST("/photos/upload", uploadPhotoHandler)
	g.PUT("/photos/:id", updatePhotoHandler)
	g.DELETE("/photos/:id", deletePhotoHandler)

	g.POST("/places", createPlaceHandler)
	g.PUT("/places/:id", updatePlaceHandler)
	g.DELETE("/places/:id", deletePlaceHandler)

	g.POST("/events", createEventHandler)
	g.PUT("/events/:id", updateEventHandler)
	g.DELETE("/events/:id", deleteEventHandler)

	g.POST("/persons", createPersonHandler)
	g.PUT("/persons/:id", updatePersonHandler)
	g.DELETE("/persons/:id", deletePersonHandler)

	g.POST("/person-places", createPersonPlaceHandler)
	g.DELETE("/person-places/:id", deletePersonPlaceHandler)
	g.POST("/event-persons", createEventPersonHandler)
	g.DELETE("/event-persons/:id", deleteEventPersonHandler)
	g.POST("/place-photos", createPlacePhotoHandler)
	g.PUT("/place-photos/:id/order", updatePlacePhotoOrderHandler)
	g.DELETE("/place-photos/:id", deletePlacePhotoHandler)
	g.POST("/event-photos", createEventPhotoHandler)
	g.PUT("/event-photos/:id/order", updateEventPhotoOrderHandler)
	g.DELETE("/event-photos/:id", deleteEventPhotoHandler)
}

func idParam(c *gin.Context) (uint, bool) {
	v, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || v == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return uint(v), true
}

// ---------- photos ----------

type photoRequest struct {
	ImageRef   string `json:"image_ref"`
	Caption    string `json:"caption"`
	UploadDate string `json:"upload_date"`
}

func createPhotoHandler(c *gin.Context) {
	var req photoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	upload, err := parseDate(req.UploadDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	photo, err := store.CreatePhoto(catalog.PhotoInput{
		ImageRef:   req.ImageRef,
		Caption:    req.Caption,
		UploadDate: upload,
	})
	if err != nil {
		respondStoreErr(c, err)
		return
	}
	c.JSON(http.StatusOK, photo)
}

func updatePhotoHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req struct {
		ImageRef   *string `json:"image_ref"`
		Caption    *string `json:"caption"`
		UploadDate *string `json:"upload_date"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	upd := catalog.PhotoUpdate{ImageRef: req.ImageRef, Caption: req.Caption}
	if req.UploadDate != nil {
		t, err := parseDate(*req.UploadDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		upd.UploadDate = t
	}
	photo, err := store.UpdatePhoto(id, upd)
	if err != nil {
		respondStoreErr(c, err)
		return
	}
	c.JSON(http.StatusOK, photo)
}

func getPhotoHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	photo, err := store.GetPhoto(id)
	if err != nil {
		respondStoreErr(c, err)
		return
	}
	c.JSON(http.StatusOK, photo)
}

func listPhotosHandler(c *gin.Context) {
	photos, err := store.Photos()
	if err != nil {
		respondStoreErr(c, err)
		return
	}
	c.JSON(http.StatusOK, photos)
}

func deletePhotoHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := store.DeletePhoto(id); err != nil {
		respondStoreErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

// ---------- places ----------

type placeRequest struct {
	PlaceName string  `json:"place_name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	DateStart string  `json:"date_start"`
	DateEnd   string  `json:"date_end"`
	Brief     string  `json:"brief"`
	History   string  `json:"history"`
}

func (r placeRequest) toInput() (catalog.PlaceInput, error) {
	start, err := parseDate(r.DateStart)
	if err != nil {
		return catalog.PlaceInput{}, err
	}
	end, err := parseDate(r.DateEnd)
	if err != nil {
		return catalog.PlaceInput{}, err
	}
	return catalog.PlaceInput{
		PlaceName: r.PlaceName,
		Latitude:  r.Latitude,
		Longitude: r.Longitude,
		DateStart: start,
		DateEnd:   end,
		Brief:     r.Brief,
		History:   r.History,
	}, nil
}

func createPlaceHandler(c *gin.Context) {
	var req placeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	in, err := req.toInput()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	place, err := store.CreatePlace(in)
	if err != nil {
		respondStoreErr(c, err)
		return
	}
	c.JSON(http.StatusOK, place)
}

func updatePlaceHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req placeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	in, err := req.toInput()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	place, err := store.UpdatePlace(id, in)
	if err != nil {
		respondStoreErr(c, err)
		return
	}
	c.JSON(http.StatusOK, place)
}

func getPlaceHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	place, err := store.GetPlace(id)
	if err != nil {
		respondStoreErr(c, err)
		return
	}
	c.JSON(http.StatusOK, place)
}

func listPlacesHandler(c *gin.Context) {
	places, err := store.Places()
	if err != nil {
		respondStoreErr(c, err)
		return
	}
	c.JSON(http.StatusOK, places)
}

func deletePlaceHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := store.DeletePlace(id); err != nil {
		respondStoreErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

// ---------- events ----------

type eventRequest struct {
	EventName        string `json:"event_name"`
	EventDate        string `json:"event_date"`
	EventDescription string `json:"event_description"`
	Significance     string `json:"significance"`
	PlaceID          uint   `json:"place_id"`
}

func createEventHandler(c *gin.Context) {
	var req eventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	date, err := parseDate(req.EventDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	event, err := store.CreateEvent(catalog.EventInput{
		EventName:        req.EventName,
		EventDate:        date,
		EventDescription: req.EventDescription,
		Significance:     req.Significance,
		PlaceID:          req.PlaceID,
	})
	if err != nil {
		respondStoreErr(c, err)
		return
	}
	c.JSON(http.StatusOK, event)
}

func updateEventHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req eventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	date, err := parseDate(req.EventDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	event, err := store.UpdateEvent(id, catalog.EventInput{
		EventName:        req.EventName,
		EventDate:        date,
		EventDescription: req.EventDescription,
		Significance:     req.Significance,
		PlaceID:          req.PlaceID,
	})
	if err != nil {
		respondStoreErr(c, err)
		return
	}
	c.JSON(http.StatusOK, event)
}

func getEventHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	event, err := store.GetEvent(id)
	if err != nil {
		respondStoreErr(c, err)
		return
	}
	c.JSON(http.StatusOK, event)
}

func listEventsHandler(c *gin.Context) {
	events, err := store.Events()
	if err != nil {
		respondStoreErr(c, err)
		return
	}
	c.JSON(http.StatusOK, events)
}

func deleteEventHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := store.DeleteEvent(id); err != nil {
		respondStoreErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

// ---------- persons ----------

type personRequest struct {
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	DOB            string `json:"dob"`
	Brief          string `json:"brief"`
	Biography      string `json:"biography"`
	ProfilePhotoID *uint  `json:"profile_photo_id"`
}

func (r personRequest) toInput() (catalog.PersonInput, error) {
	dob, err := parseDate(r.DOB)
	if err != nil {
		return catalog.PersonInput{}, err
	}
	return catalog.PersonInput{
		FirstName:      r.FirstName,
		LastName:       r.LastName,
		DOB:            dob,
		Brief:          r.Brief,
		Biography:      r.Biography,
		ProfilePhotoID: r.ProfilePhotoID,
	}, nil
}

func createPersonHandler(c *gin.Context) {
	var req personRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	in, err := req.toInput()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	person, err := store.CreatePerson(in)
	if err != nil {
		respondStoreErr(c, err)
		return
	}
	c.JSON(http.StatusOK, person)
}

func updatePersonHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req personRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	in, err := req.toInput()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	person, err := store.UpdatePerson(id, in)
	if err != nil {
		respondStoreErr(c, err)
		return
	}
	c.JSON(http.StatusOK, person)
}

func getPersonHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	person, err := store.GetPerson(id)
	if err != nil {
		respondStoreErr(c, err)
		return
	}
	c.JSON(http.StatusOK, person)
}

func listPersonsHandler(c *gin.Context) {
	persons, err := store.Persons()
	if err != nil {
		respondStoreErr(c, err)
		return
	}
	c.JSON(http.StatusOK, persons)
}

func deletePersonHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := store.DeletePerson(id); err != nil {
		respondStoreErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

// ---------- associations ----------

func createPersonPlaceHandler(c *gin.Context) {
	var req struct {
		PersonID        uint   `json:"person_id" binding:"required"`
		PlaceID         uint   `json:"place_id" binding:"required"`
		AssociationDate string `json:"association_date"`
		AssociationType string `json:"association_type"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	date, err := parseDate(req.AssociationDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	row, err := store.CreatePersonPlace(catalog.PersonPlaceInput{
		PersonID:        req.PersonID,
		PlaceID:         req.PlaceID,
		AssociationDate: date,
		AssociationType: req.AssociationType,
	})
	if err != nil {
		respondStoreErr(c, err)
		return
	}
	c.JSON(http.StatusOK, row)
}

func deletePersonPlaceHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := store.DeletePersonPlace(id); err != nil {
		respondStoreErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

func createEventPersonHandler(c *gin.Context) {
	var req struct {
		EventID  uint   `json:"event_id" binding:"required"`
		PersonID uint   `json:"person_id" binding:"required"`
		Role     string `json:"role"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	row, err := store.CreateEventPerson(catalog.EventPersonInput{
		EventID:  req.EventID,
		PersonID: req.PersonID,
		Role:     req.Role,
	})
	if err != nil {
		respondStoreErr(c, err)
		return
	}
	c.JSON(http.StatusOK, row)
}

func deleteEventPersonHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := store.DeleteEventPerson(id); err != nil {
		respondStoreErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

func createPlacePhotoHandler(c *gin.Context) {
	var req struct {
		PlaceID    uint `json:"place_id" binding:"required"`
		PhotoID    uint `json:"photo_id" binding:"required"`
		PhotoOrder int  `json:"photo_order" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	row, err := store.CreatePlacePhoto(catalog.PlacePhotoInput{
		PlaceID:    req.PlaceID,
		PhotoID:    req.PhotoID,
		PhotoOrder: req.PhotoOrder,
	})
	if err != nil {
		respondStoreErr(c, err)
		return
	}
	c.JSON(http.StatusOK, row)
}

func updatePlacePhotoOrderHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req struct {
		PhotoOrder int `json:"photo_order" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	row, err := store.UpdatePlacePhotoOrder(id, req.PhotoOrder)
	if err != nil {
		respondStoreErr(c, err)
		return
	}
	c.JSON(http.StatusOK, row)
}

func deletePlacePhotoHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := store.DeletePlacePhoto(id); err != nil {
		respondStoreErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

func createEventPhotoHandler(c *gin.Context) {
	var req struct {
		EventID    uint `json:"event_id" binding:"required"`
		PhotoID    uint `json:"photo_id" binding:"required"`
		PhotoOrder int  `json:"photo_order" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	row, err := store.CreateEventPhoto(catalog.EventPhotoInput{
		EventID:    req.EventID,
		PhotoID:    req.PhotoID,
		PhotoOrder: req.PhotoOrder,
	})
	if err != nil {
		respondStoreErr(c, err)
		return
	}
	c.JSON(http.StatusOK, row)
}

func updateEventPhotoOrderHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req struct {
		PhotoOrder int `json:"photo_order" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	row, err := store.UpdateEventPhotoOrder(id, req.PhotoOrder)
	if err != nil {
		respondStoreErr(c, err)
		return
	}
	c.JSON(http.StatusOK, row)
}

func deleteEventPhotoHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := store.DeleteEventPhoto(id); err != nil {
		respondStoreErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

// ---------- detail + geo reads ----------

func placeDetailsHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	d, err := store.PlaceDetails(id)
	if err != nil {
		respondStoreErr(c, err)
		return
	}
	for i := range d.Photos {
		d.Photos[i].URL = photoURL(d.Photos[i].Ref)
	}
	c.JSON(http.StatusOK, d)
}

func eventDetailsHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	d, err := store.EventDetails(id)
	if err != nil {
		respondStoreErr(c, err)
		return
	}
	for i := range d.Photos {
		d.Photos[i].URL = photoURL(d.Photos[i].Ref)
	}
	c.JSON(http.StatusOK, d)
}

func personDetailsHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	d, err := store.PersonDetails(id)
	if err != nil {
		respondStoreErr(c, err)
		return
	}
	if d.ProfilePhotoRef != "" {
		u := photoURL(d.ProfilePhotoRef)
		d.ProfilePhotoURL = &u
	}
	c.JSON(http.StatusOK, d)
}

func placesGeoJSONHandler(c *gin.Context) {
	fc, err := store.PlaceFeatures()
	if err != nil {
		respondStoreErr(c, err)
		return
	}
	c.JSON(http.StatusOK, fc)
}
