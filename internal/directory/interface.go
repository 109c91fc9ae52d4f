package directory

import (
	"context"

	"stays/pkg/domain"
)

// RegisterUserInput carries the fields of a new account. Registration always
// creates a regular user; the admin flag is granted later by an admin through
// UpdateUser.
type RegisterUserInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// UpdateUserInput is a partial update of a user. Nil fields are left
// untouched. IsAdmin may only be changed by an admin actor.
type UpdateUserInput struct {
	FirstName *string
	LastName  *string
	Email     *string
	Password  *string
	IsAdmin   *bool
}

// CreatePlaceInput carries the fields of a new listing. OwnerID, when set,
// creates the place on behalf of another user and requires an admin actor;
// otherwise the actor becomes the owner.
type CreatePlaceInput struct {
	Title       string
	Description string
	Price       float64
	Latitude    float64
	Longitude   float64
	OwnerID     *domain.UserID
	AmenityIDs  []domain.AmenityID
}

// UpdatePlaceInput is a partial update of a place. Nil fields are left
// untouched; AmenityIDs, when set, replaces the attached amenity set.
type UpdatePlaceInput struct {
	Title       *string
	Description *string
	Price       *float64
	Latitude    *float64
	Longitude   *float64
	AmenityIDs  *[]domain.AmenityID
}

// CreateAmenityInput carries the fields of a new amenity.
type CreateAmenityInput struct {
	Name string
}

// UpdateAmenityInput is a partial update of an amenity.
type UpdateAmenityInput struct {
	Name *string
}

// CreateReviewInput carries the fields of a new review. The author is always
// the acting user.
type CreateReviewInput struct {
	PlaceID domain.PlaceID
	Text    string
	Rating  int
}

// UpdateReviewInput is a partial update of a review.
type UpdateReviewInput struct {
	Text   *string
	Rating *int
}

// PlaceDetails is the canonical read projection of a place: the listing
// itself plus its owner, resolved amenities and reviews. The owner's
// credential is excluded from serialization by the entity itself.
type PlaceDetails struct {
	domain.Place

	Owner     domain.User      `json:"owner"`
	Amenities []domain.Amenity `json:"amenities"`
	Reviews   []domain.Review  `json:"reviews"`
}

// Directory is the single entry point for every use case of the rental
// directory. All business invariants (ownership, uniqueness, numeric bounds,
// relationship consistency) are enforced here; transports call these methods
// with already-decoded payloads and an actor derived from a verified token.
//
// Every method validates fully before writing, so a failed operation leaves
// no partial state behind.
type Directory interface {
	// RegisterUser creates a new account with a hashed credential. The email
	// must not already be registered.
	RegisterUser(ctx context.Context, in RegisterUserInput) (*domain.User, error)
	// Authenticate returns the user matching the email and password. Both an
	// unknown email and a wrong password yield the same not-found error so
	// callers can present a uniform "invalid credentials" response.
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)
	// ResetPassword replaces the credential of the user identified by email.
	// Allowed for the user themselves or an admin.
	ResetPassword(ctx context.Context, actor domain.Actor, email, newPassword string) (*domain.User, error)
	// User returns a single user by id.
	User(ctx context.Context, id domain.UserID) (*domain.User, error)
	// Users returns all users. Reserved to authenticated actors.
	Users(ctx context.Context, actor domain.Actor) ([]domain.User, error)
	// UpdateUser applies a partial update. Allowed for the user themselves or
	// an admin; the admin flag itself only changes for admin actors.
	UpdateUser(ctx context.Context,
		actor domain.Actor,
		id domain.UserID,
		in UpdateUserInput) (*domain.User, error)

	// CreatePlace creates a listing according to the configured creation
	// policy and resolves every referenced amenity id.
	CreatePlace(ctx context.Context, actor domain.Actor, in CreatePlaceInput) (*PlaceDetails, error)
	// Place returns a place with its owner, amenities and reviews resolved.
	Place(ctx context.Context, id domain.PlaceID) (*PlaceDetails, error)
	// Places returns all places in creation order.
	Places(ctx context.Context) ([]domain.Place, error)
	// UpdatePlace applies a partial update. Owner or admin only.
	UpdatePlace(ctx context.Context,
		actor domain.Actor,
		id domain.PlaceID,
		in UpdatePlaceInput) (*PlaceDetails, error)
	// DeletePlace removes a place, cascading its reviews and detaching its
	// amenities in one transaction. Owner or admin only.
	DeletePlace(ctx context.Context, actor domain.Actor, id domain.PlaceID) error

	// CreateAmenity creates a shared amenity with a globally unique name.
	CreateAmenity(ctx context.Context, in CreateAmenityInput) (*domain.Amenity, error)
	// Amenity returns a single amenity by id.
	Amenity(ctx context.Context, id domain.AmenityID) (*domain.Amenity, error)
	// Amenities returns all amenities in creation order.
	Amenities(ctx context.Context) ([]domain.Amenity, error)
	// UpdateAmenity renames an amenity. Admin only; the new name must remain
	// unique.
	UpdateAmenity(ctx context.Context,
		actor domain.Actor,
		id domain.AmenityID,
		in UpdateAmenityInput) (*domain.Amenity, error)
	// DeleteAmenity removes an amenity and detaches it from every place.
	// Admin only.
	DeleteAmenity(ctx context.Context, actor domain.Actor, id domain.AmenityID) error

	// CreateReview adds a review authored by the actor. The place must exist,
	// the actor must not own it, and the actor must not have reviewed it
	// before.
	CreateReview(ctx context.Context, actor domain.Actor, in CreateReviewInput) (*domain.Review, error)
	// Review returns a single review by id.
	Review(ctx context.Context, id domain.ReviewID) (*domain.Review, error)
	// Reviews returns all reviews in creation order.
	Reviews(ctx context.Context) ([]domain.Review, error)
	// PlaceReviews returns the reviews of a place in creation order.
	PlaceReviews(ctx context.Context, placeID domain.PlaceID) ([]domain.Review, error)
	// UpdateReview applies a partial update. Author or admin only.
	UpdateReview(ctx context.Context,
		actor domain.Actor,
		id domain.ReviewID,
		in UpdateReviewInput) (*domain.Review, error)
	// DeleteReview removes a review. Author or admin only.
	DeleteReview(ctx context.Context, actor domain.Actor, id domain.ReviewID) error
}
