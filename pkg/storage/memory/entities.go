package memory

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"stays/pkg/domain"
	"stays/pkg/storage"
)

func now() time.Time {
	return time.Now().UTC()
}

// removeID drops the first occurrence of id from ids, preserving order.
func removeID(ids []uuid.UUID, id uuid.UUID) []uuid.UUID {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}

	return ids
}

// copyPlace returns a place whose amenity slice is detached from the stored
// record, so callers can mutate the result freely.
func copyPlace(p domain.Place) domain.Place {
	p.AmenityIDs = append([]domain.AmenityID(nil), p.AmenityIDs...)

	return p
}

// --- users ---

func (o ops) StoreUser(_ context.Context, user domain.User) (*domain.User, error) {
	var out domain.User
	err := o.r.do(func(st *state) error {
		if user.ID.IsZero() {
			user.ID = domain.UserID(uuid.New())
		}
		id := uuid.UUID(user.ID)
		if _, ok := st.users[id]; ok {
			return storage.ErrDuplicateID
		}
		if user.CreatedAt.IsZero() {
			user.CreatedAt = now()
		}
		if user.UpdatedAt.IsZero() {
			user.UpdatedAt = user.CreatedAt
		}

		st.users[id] = user
		st.userOrder = append(st.userOrder, id)
		out = user

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &out, nil
}

func (o ops) UserByID(_ context.Context, id domain.UserID) (*domain.User, error) {
	var out *domain.User
	err := o.r.do(func(st *state) error {
		if u, ok := st.users[uuid.UUID(id)]; ok {
			out = &u
		}

		return nil
	})

	return out, err
}

func (o ops) UserByEmail(_ context.Context, email string) (*domain.User, error) {
	var out *domain.User
	err := o.r.do(func(st *state) error {
		for _, id := range st.userOrder {
			if u := st.users[id]; strings.EqualFold(u.Email, email) {
				out = &u

				return nil
			}
		}

		return nil
	})

	return out, err
}

func (o ops) Users(_ context.Context) ([]domain.User, error) {
	var out []domain.User
	err := o.r.do(func(st *state) error {
		out = make([]domain.User, 0, len(st.userOrder))
		for _, id := range st.userOrder {
			out = append(out, st.users[id])
		}

		return nil
	})

	return out, err
}

func (o ops) UpdateUser(_ context.Context,
	id domain.UserID,
	updates storage.UserUpdates) (*domain.User, error) {
	var out *domain.User
	err := o.r.do(func(st *state) error {
		u, ok := st.users[uuid.UUID(id)]
		if !ok {
			return nil
		}
		if updates.FirstName != nil {
			u.FirstName = *updates.FirstName
		}
		if updates.LastName != nil {
			u.LastName = *updates.LastName
		}
		if updates.Email != nil {
			u.Email = *updates.Email
		}
		if updates.Credential != nil {
			u.Credential = *updates.Credential
		}
		if updates.IsAdmin != nil {
			u.IsAdmin = *updates.IsAdmin
		}
		u.UpdatedAt = now()

		st.users[uuid.UUID(id)] = u
		out = &u

		return nil
	})

	return out, err
}

func (o ops) DeleteUser(_ context.Context, id domain.UserID) (bool, error) {
	var removed bool
	err := o.r.do(func(st *state) error {
		if _, ok := st.users[uuid.UUID(id)]; !ok {
			return nil
		}
		delete(st.users, uuid.UUID(id))
		st.userOrder = removeID(st.userOrder, uuid.UUID(id))
		removed = true

		return nil
	})

	return removed, err
}

// --- places ---

func (o ops) StorePlace(_ context.Context, place domain.Place) (*domain.Place, error) {
	var out domain.Place
	err := o.r.do(func(st *state) error {
		if place.ID.IsZero() {
			place.ID = domain.PlaceID(uuid.New())
		}
		id := uuid.UUID(place.ID)
		if _, ok := st.places[id]; ok {
			return storage.ErrDuplicateID
		}
		if place.CreatedAt.IsZero() {
			place.CreatedAt = now()
		}
		if place.UpdatedAt.IsZero() {
			place.UpdatedAt = place.CreatedAt
		}

		st.places[id] = copyPlace(place)
		st.placeOrder = append(st.placeOrder, id)
		out = copyPlace(place)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &out, nil
}

func (o ops) PlaceByID(_ context.Context, id domain.PlaceID) (*domain.Place, error) {
	var out *domain.Place
	err := o.r.do(func(st *state) error {
		if p, ok := st.places[uuid.UUID(id)]; ok {
			p = copyPlace(p)
			out = &p
		}

		return nil
	})

	return out, err
}

func (o ops) Places(_ context.Context) ([]domain.Place, error) {
	var out []domain.Place
	err := o.r.do(func(st *state) error {
		out = make([]domain.Place, 0, len(st.placeOrder))
		for _, id := range st.placeOrder {
			out = append(out, copyPlace(st.places[id]))
		}

		return nil
	})

	return out, err
}

func (o ops) PlacesByOwner(_ context.Context, ownerID domain.UserID) ([]domain.Place, error) {
	var out []domain.Place
	err := o.r.do(func(st *state) error {
		for _, id := range st.placeOrder {
			if p := st.places[id]; p.OwnerID == ownerID {
				out = append(out, copyPlace(p))
			}
		}

		return nil
	})

	return out, err
}

func (o ops) UpdatePlace(_ context.Context,
	id domain.PlaceID,
	updates storage.PlaceUpdates) (*domain.Place, error) {
	var out *domain.Place
	err := o.r.do(func(st *state) error {
		p, ok := st.places[uuid.UUID(id)]
		if !ok {
			return nil
		}
		if updates.Title != nil {
			p.Title = *updates.Title
		}
		if updates.Description != nil {
			p.Description = *updates.Description
		}
		if updates.Price != nil {
			p.Price = *updates.Price
		}
		if updates.Latitude != nil {
			p.Latitude = *updates.Latitude
		}
		if updates.Longitude != nil {
			p.Longitude = *updates.Longitude
		}
		if updates.AmenityIDs != nil {
			p.AmenityIDs = append([]domain.AmenityID(nil), *updates.AmenityIDs...)
		}
		p.UpdatedAt = now()

		st.places[uuid.UUID(id)] = copyPlace(p)
		p = copyPlace(p)
		out = &p

		return nil
	})

	return out, err
}

func (o ops) DeletePlace(_ context.Context, id domain.PlaceID) (bool, error) {
	var removed bool
	err := o.r.do(func(st *state) error {
		if _, ok := st.places[uuid.UUID(id)]; !ok {
			return nil
		}
		// amenity links live inside the place record, so deleting the place
		// detaches them
		delete(st.places, uuid.UUID(id))
		st.placeOrder = removeID(st.placeOrder, uuid.UUID(id))
		removed = true

		return nil
	})

	return removed, err
}

// --- amenities ---

func (o ops) StoreAmenity(_ context.Context, amenity domain.Amenity) (*domain.Amenity, error) {
	var out domain.Amenity
	err := o.r.do(func(st *state) error {
		if amenity.ID.IsZero() {
			amenity.ID = domain.AmenityID(uuid.New())
		}
		id := uuid.UUID(amenity.ID)
		if _, ok := st.amenities[id]; ok {
			return storage.ErrDuplicateID
		}
		if amenity.CreatedAt.IsZero() {
			amenity.CreatedAt = now()
		}
		if amenity.UpdatedAt.IsZero() {
			amenity.UpdatedAt = amenity.CreatedAt
		}

		st.amenities[id] = amenity
		st.amenityOrder = append(st.amenityOrder, id)
		out = amenity

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &out, nil
}

func (o ops) AmenityByID(_ context.Context, id domain.AmenityID) (*domain.Amenity, error) {
	var out *domain.Amenity
	err := o.r.do(func(st *state) error {
		if a, ok := st.amenities[uuid.UUID(id)]; ok {
			out = &a
		}

		return nil
	})

	return out, err
}

func (o ops) AmenityByName(_ context.Context, name string) (*domain.Amenity, error) {
	var out *domain.Amenity
	err := o.r.do(func(st *state) error {
		for _, id := range st.amenityOrder {
			if a := st.amenities[id]; strings.EqualFold(a.Name, name) {
				out = &a

				return nil
			}
		}

		return nil
	})

	return out, err
}

func (o ops) Amenities(_ context.Context) ([]domain.Amenity, error) {
	var out []domain.Amenity
	err := o.r.do(func(st *state) error {
		out = make([]domain.Amenity, 0, len(st.amenityOrder))
		for _, id := range st.amenityOrder {
			out = append(out, st.amenities[id])
		}

		return nil
	})

	return out, err
}

func (o ops) UpdateAmenity(_ context.Context,
	id domain.AmenityID,
	updates storage.AmenityUpdates) (*domain.Amenity, error) {
	var out *domain.Amenity
	err := o.r.do(func(st *state) error {
		a, ok := st.amenities[uuid.UUID(id)]
		if !ok {
			return nil
		}
		if updates.Name != nil {
			a.Name = *updates.Name
		}
		a.UpdatedAt = now()

		st.amenities[uuid.UUID(id)] = a
		out = &a

		return nil
	})

	return out, err
}

func (o ops) DeleteAmenity(_ context.Context, id domain.AmenityID) (bool, error) {
	var removed bool
	err := o.r.do(func(st *state) error {
		if _, ok := st.amenities[uuid.UUID(id)]; !ok {
			return nil
		}
		delete(st.amenities, uuid.UUID(id))
		st.amenityOrder = removeID(st.amenityOrder, uuid.UUID(id))

		// detach from every place holding the amenity
		for pid, p := range st.places {
			for i, aid := range p.AmenityIDs {
				if aid == id {
					p.AmenityIDs = append(p.AmenityIDs[:i], p.AmenityIDs[i+1:]...)
					st.places[pid] = p

					break
				}
			}
		}
		removed = true

		return nil
	})

	return removed, err
}

// --- reviews ---

func (o ops) StoreReview(_ context.Context, review domain.Review) (*domain.Review, error) {
	var out domain.Review
	err := o.r.do(func(st *state) error {
		if review.ID.IsZero() {
			review.ID = domain.ReviewID(uuid.New())
		}
		id := uuid.UUID(review.ID)
		if _, ok := st.reviews[id]; ok {
			return storage.ErrDuplicateID
		}
		if review.CreatedAt.IsZero() {
			review.CreatedAt = now()
		}
		if review.UpdatedAt.IsZero() {
			review.UpdatedAt = review.CreatedAt
		}

		st.reviews[id] = review
		st.reviewOrder = append(st.reviewOrder, id)
		out = review

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &out, nil
}

func (o ops) ReviewByID(_ context.Context, id domain.ReviewID) (*domain.Review, error) {
	var out *domain.Review
	err := o.r.do(func(st *state) error {
		if r, ok := st.reviews[uuid.UUID(id)]; ok {
			out = &r
		}

		return nil
	})

	return out, err
}

func (o ops) ReviewByAuthorAndPlace(_ context.Context,
	authorID domain.UserID,
	placeID domain.PlaceID) (*domain.Review, error) {
	var out *domain.Review
	err := o.r.do(func(st *state) error {
		for _, id := range st.reviewOrder {
			if r := st.reviews[id]; r.AuthorID == authorID && r.PlaceID == placeID {
				out = &r

				return nil
			}
		}

		return nil
	})

	return out, err
}

func (o ops) Reviews(_ context.Context) ([]domain.Review, error) {
	var out []domain.Review
	err := o.r.do(func(st *state) error {
		out = make([]domain.Review, 0, len(st.reviewOrder))
		for _, id := range st.reviewOrder {
			out = append(out, st.reviews[id])
		}

		return nil
	})

	return out, err
}

func (o ops) ReviewsByPlace(_ context.Context, placeID domain.PlaceID) ([]domain.Review, error) {
	var out []domain.Review
	err := o.r.do(func(st *state) error {
		for _, id := range st.reviewOrder {
			if r := st.reviews[id]; r.PlaceID == placeID {
				out = append(out, r)
			}
		}

		return nil
	})

	return out, err
}

func (o ops) UpdateReview(_ context.Context,
	id domain.ReviewID,
	updates storage.ReviewUpdates) (*domain.Review, error) {
	var out *domain.Review
	err := o.r.do(func(st *state) error {
		r, ok := st.reviews[uuid.UUID(id)]
		if !ok {
			return nil
		}
		if updates.Text != nil {
			r.Text = *updates.Text
		}
		if updates.Rating != nil {
			r.Rating = *updates.Rating
		}
		r.UpdatedAt = now()

		st.reviews[uuid.UUID(id)] = r
		out = &r

		return nil
	})

	return out, err
}

func (o ops) DeleteReview(_ context.Context, id domain.ReviewID) (bool, error) {
	var removed bool
	err := o.r.do(func(st *state) error {
		if _, ok := st.reviews[uuid.UUID(id)]; !ok {
			return nil
		}
		delete(st.reviews, uuid.UUID(id))
		st.reviewOrder = removeID(st.reviewOrder, uuid.UUID(id))
		removed = true

		return nil
	})

	return removed, err
}

func (o ops) DeleteReviewsByPlace(_ context.Context, placeID domain.PlaceID) (int64, error) {
	var n int64
	err := o.r.do(func(st *state) error {
		kept := st.reviewOrder[:0]
		for _, id := range st.reviewOrder {
			if st.reviews[id].PlaceID == placeID {
				delete(st.reviews, id)
				n++

				continue
			}
			kept = append(kept, id)
		}
		st.reviewOrder = kept

		return nil
	})

	return n, err
}
