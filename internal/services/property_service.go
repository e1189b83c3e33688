package services

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"immolist/internal/domain"
	"immolist/internal/store"
)

// DuplicateTitleError rejects a create/update whose title collides with
// another listing (case-insensitive).
type DuplicateTitleError struct {
	Title string
}

func (e *DuplicateTitleError) Error() string {
	return fmt.Sprintf("a property titled %q already exists", e.Title)
}

// ValidationError rejects input that breaks a field invariant before
// anything is persisted.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

type PropertyService struct {
	Store *store.Store
}

func NewPropertyService(st *store.Store) *PropertyService {
	return &PropertyService{Store: st}
}

// GetAll returns every listing in storage order.
func (s *PropertyService) GetAll() []domain.Property {
	return s.Store.Load()
}

// GetByID returns the matching listing, or ok=false when no record has
// that id.
func (s *PropertyService) GetByID(id string) (domain.Property, bool) {
	for _, p := range s.Store.Load() {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Property{}, false
}

// Create validates in, assigns a fresh id and the available status, and
// appends the listing to the catalog.
func (s *PropertyService) Create(in domain.CreateProperty) (domain.Property, error) {
	if err := validateCreate(in); err != nil {
		return domain.Property{}, err
	}
	props := s.Store.Load()
	if titleTaken(props, in.Title, "") {
		return domain.Property{}, &DuplicateTitleError{Title: in.Title}
	}
	images := in.Images
	if images == nil {
		images = []string{}
	}
	p := domain.Property{
		ID:       uuid.NewString(),
		Title:    in.Title,
		City:     in.City,
		Price:    in.Price,
		Surface:  in.Surface,
		Type:     in.Type,
		Category: in.Category,
		Status:   domain.StatusAvailable,
		Images:   images,
	}
	props = append(props, p)
	if err := s.Store.Save(props); err != nil {
		return domain.Property{}, err
	}
	return p, nil
}

// Update merges the non-nil fields of in onto the listing with the given
// id. ok=false means no such listing; the record's own title never trips
// the uniqueness check.
func (s *PropertyService) Update(id string, in domain.UpdateProperty) (domain.Property, bool, error) {
	if err := validateUpdate(in); err != nil {
		return domain.Property{}, false, err
	}
	props := s.Store.Load()
	idx := -1
	for i, p := range props {
		if p.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return domain.Property{}, false, nil
	}
	if in.Title != nil && titleTaken(props, *in.Title, id) {
		return domain.Property{}, true, &DuplicateTitleError{Title: *in.Title}
	}

	p := props[idx]
	if in.Title != nil {
		p.Title = *in.Title
	}
	if in.City != nil {
		p.City = *in.City
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.Surface != nil {
		p.Surface = *in.Surface
	}
	if in.Type != nil {
		p.Type = *in.Type
	}
	if in.Category != nil {
		p.Category = *in.Category
	}
	if in.Status != nil {
		p.Status = *in.Status
	}
	if in.Images != nil {
		imgs := *in.Images
		if imgs == nil {
			imgs = []string{}
		}
		p.Images = imgs
	}
	props[idx] = p
	if err := s.Store.Save(props); err != nil {
		return domain.Property{}, true, err
	}
	return p, true, nil
}

// Delete removes the listing with the given id. The bool reports whether a
// record was actually removed.
func (s *PropertyService) Delete(id string) (bool, error) {
	props := s.Store.Load()
	for i, p := range props {
		if p.ID == id {
			props = append(props[:i], props[i+1:]...)
			if err := s.Store.Save(props); err != nil {
				return false, err
			}
			return true, nil
		}
	}
	return false, nil
}

// titleTaken reports whether another record (id != selfID) already uses
// title, ignoring case.
func titleTaken(props []domain.Property, title, selfID string) bool {
	for _, p := range props {
		if p.ID != selfID && strings.EqualFold(p.Title, title) {
			return true
		}
	}
	return false
}

func validateCreate(in domain.CreateProperty) error {
	if strings.TrimSpace(in.Title) == "" {
		return &ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if strings.TrimSpace(in.City) == "" {
		return &ValidationError{Field: "city", Reason: "must not be empty"}
	}
	if in.Price <= 0 {
		return &ValidationError{Field: "price", Reason: "must be positive"}
	}
	if in.Surface <= 0 {
		return &ValidationError{Field: "surface", Reason: "must be positive"}
	}
	if !domain.ValidType(in.Type) {
		return &ValidationError{Field: "type", Reason: "must be sale or rent"}
	}
	if !domain.ValidCategory(in.Category) {
		return &ValidationError{Field: "category", Reason: "unknown category"}
	}
	if len(in.Images) > domain.MaxImages {
		return &ValidationError{Field: "images", Reason: fmt.Sprintf("at most %d images", domain.MaxImages)}
	}
	return nil
}

func validateUpdate(in domain.UpdateProperty) error {
	if in.Title != nil && strings.TrimSpace(*in.Title) == "" {
		return &ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if in.City != nil && strings.TrimSpace(*in.City) == "" {
		return &ValidationError{Field: "city", Reason: "must not be empty"}
	}
	if in.Price != nil && *in.Price <= 0 {
		return &ValidationError{Field: "price", Reason: "must be positive"}
	}
	if in.Surface != nil && *in.Surface <= 0 {
		return &ValidationError{Field: "surface", Reason: "must be positive"}
	}
	if in.Type != nil && !domain.ValidType(*in.Type) {
		return &ValidationError{Field: "type", Reason: "must be sale or rent"}
	}
	if in.Category != nil && !domain.ValidCategory(*in.Category) {
		return &ValidationError{Field: "category", Reason: "unknown category"}
	}
	if in.Status != nil && !domain.ValidStatus(*in.Status) {
		return &ValidationError{Field: "status", Reason: "unknown status"}
	}
	if in.Images != nil && len(*in.Images) > domain.MaxImages {
		return &ValidationError{Field: "images", Reason: fmt.Sprintf("at most %d images", domain.MaxImages)}
	}
	return nil
}
