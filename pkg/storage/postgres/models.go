package postgres

import (
	"time"

	"github.com/google/uuid"

	"stays/pkg/domain"
)

type PgUser struct {
	ID uuid.UUID `db:"id" goqu:"skipinsert"`

	FirstName  string `db:"first_name"`
	LastName   string `db:"last_name"`
	Email      string `db:"email"`
	Credential string `db:"credential"`
	IsAdmin    bool   `db:"is_admin"`

	CreatedAt time.Time    `db:"created_at" goqu:"skipinsert"`
	UpdatedAt time.Time    `db:"updated_at" goqu:"skipinsert"`
}

func (p *PgUser) ToDomain() *domain.User {
	return &domain.User{
		ID:         domain.UserID(p.ID),
		FirstName:  p.FirstName,
		LastName:   p.LastName,
		Email:      p.Email,
		Credential: p.Credential,
		IsAdmin:    p.IsAdmin,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

func (p *PgUser) FromDomain(user domain.User) {
	*p = PgUser{
		ID:         uuid.UUID(user.ID),
		FirstName:  user.FirstName,
		LastName:   user.LastName,
		Email:      user.Email,
		Credential: user.Credential,
		IsAdmin:    user.IsAdmin,
		CreatedAt:  user.CreatedAt,
		UpdatedAt:  user.UpdatedAt,
	}
}

type PgPlace struct {
	ID      uuid.UUID `db:"id"       goqu:"skipinsert"`
	OwnerID uuid.UUID `db:"owner_id"`

	Title       string  `db:"title"`
	Description string  `db:"description"`
	Price       float64 `db:"price"`
	Latitude    float64 `db:"latitude"`
	Longitude   float64 `db:"longitude"`

	CreatedAt time.Time    `db:"created_at" goqu:"skipinsert"`
	UpdatedAt time.Time    `db:"updated_at" goqu:"skipinsert"`
}

// ToDomain converts the row; amenity links are loaded separately and passed in.
func (p *PgPlace) ToDomain(amenityIDs []domain.AmenityID) *domain.Place {
	return &domain.Place{
		ID:          domain.PlaceID(p.ID),
		OwnerID:     domain.UserID(p.OwnerID),
		Title:       p.Title,
		Description: p.Description,
		Price:       p.Price,
		Latitude:    p.Latitude,
		Longitude:   p.Longitude,
		AmenityIDs:  amenityIDs,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func (p *PgPlace) FromDomain(place domain.Place) {
	*p = PgPlace{
		ID:          uuid.UUID(place.ID),
		OwnerID:     uuid.UUID(place.OwnerID),
		Title:       place.Title,
		Description: place.Description,
		Price:       place.Price,
		Latitude:    place.Latitude,
		Longitude:   place.Longitude,
		CreatedAt:   place.CreatedAt,
		UpdatedAt:   place.UpdatedAt,
	}
}

type PgAmenity struct {
	ID uuid.UUID `db:"id" goqu:"skipinsert"`

	Name string `db:"name"`

	CreatedAt time.Time    `db:"created_at" goqu:"skipinsert"`
	UpdatedAt time.Time    `db:"updated_at" goqu:"skipinsert"`
}

func (p *PgAmenity) ToDomain() *domain.Amenity {
	return &domain.Amenity{
		ID:        domain.AmenityID(p.ID),
		Name:      p.Name,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

type PgReview struct {
	ID       uuid.UUID `db:"id"        goqu:"skipinsert"`
	AuthorID uuid.UUID `db:"author_id"`
	PlaceID  uuid.UUID `db:"place_id"`

	Text   string `db:"body"`
	Rating int    `db:"rating"`

	CreatedAt time.Time    `db:"created_at" goqu:"skipinsert"`
	UpdatedAt time.Time    `db:"updated_at" goqu:"skipinsert"`
}

func (p *PgReview) ToDomain() *domain.Review {
	return &domain.Review{
		ID:        domain.ReviewID(p.ID),
		AuthorID:  domain.UserID(p.AuthorID),
		PlaceID:   domain.PlaceID(p.PlaceID),
		Text:      p.Text,
		Rating:    p.Rating,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func (p *PgReview) FromDomain(review domain.Review) {
	*p = PgReview{
		ID:       uuid.UUID(review.ID),
		AuthorID: uuid.UUID(review.AuthorID),
		PlaceID:  uuid.UUID(review.PlaceID),
		Text:     review.Text,
		Rating:   review.Rating,
	}
}

// PgPlaceAmenity is a row of the place-amenity join table.
type PgPlaceAmenity struct {
	PlaceID   uuid.UUID `db:"place_id"`
	AmenityID uuid.UUID `db:"amenity_id"`
}
