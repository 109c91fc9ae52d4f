package domain_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"stays/pkg/domain"
	"stays/pkg/serrors"
)

func requireFieldError(t *testing.T, err error, field string) {
	t.Helper()

	require.ErrorIs(t, err, serrors.ErrValidation)
	var se *serrors.Error
	require.True(t, errors.As(err, &se))
	require.Equal(t, field, se.Field())
}

func validUser() domain.User {
	return domain.User{
		FirstName:  "John",
		LastName:   "Doe",
		Email:      "john@x.com",
		Credential: "$2a$10$hash",
	}
}

func TestUserValidate(t *testing.T) {
	t.Parallel()

	t.Run("valid", func(t *testing.T) {
		t.Parallel()
		require.NoError(t, validUser().Validate())
	})

	t.Run("blank first name", func(t *testing.T) {
		t.Parallel()
		u := validUser()
		u.FirstName = "   "
		requireFieldError(t, u.Validate(), "firstName")
	})

	t.Run("last name too long", func(t *testing.T) {
		t.Parallel()
		u := validUser()
		u.LastName = strings.Repeat("a", 51)
		requireFieldError(t, u.Validate(), "lastName")
	})

	t.Run("bad email", func(t *testing.T) {
		t.Parallel()
		for _, email := range []string{"", "not-an-email", "John Doe <john@x.com>", "john@"} {
			u := validUser()
			u.Email = email
			requireFieldError(t, u.Validate(), "email")
		}
	})

	t.Run("missing credential", func(t *testing.T) {
		t.Parallel()
		u := validUser()
		u.Credential = ""
		requireFieldError(t, u.Validate(), "password")
	})
}

func TestUserNormalize(t *testing.T) {
	t.Parallel()

	u := domain.User{FirstName: "  John ", LastName: " Doe ", Email: " John@X.Com "}
	u.Normalize()
	require.Equal(t, "John", u.FirstName)
	require.Equal(t, "Doe", u.LastName)
	require.Equal(t, "john@x.com", u.Email)
}

func validPlace() domain.Place {
	return domain.Place{
		OwnerID:   domain.UserID(uuid.New()),
		Title:     "Cabin",
		Price:     100,
		Latitude:  38.0,
		Longitude: -77.0,
	}
}

func TestPlaceValidate(t *testing.T) {
	t.Parallel()

	t.Run("valid", func(t *testing.T) {
		t.Parallel()
		require.NoError(t, validPlace().Validate())
	})

	t.Run("blank title", func(t *testing.T) {
		t.Parallel()
		p := validPlace()
		p.Title = ""
		requireFieldError(t, p.Validate(), "title")
	})

	t.Run("title too long", func(t *testing.T) {
		t.Parallel()
		p := validPlace()
		p.Title = strings.Repeat("x", 101)
		requireFieldError(t, p.Validate(), "title")
	})

	t.Run("price bounds", func(t *testing.T) {
		t.Parallel()
		for _, price := range []float64{0, -1} {
			p := validPlace()
			p.Price = price
			requireFieldError(t, p.Validate(), "price")
		}
	})

	t.Run("latitude bounds", func(t *testing.T) {
		t.Parallel()
		for _, lat := range []float64{-90.01, 90.5} {
			p := validPlace()
			p.Latitude = lat
			requireFieldError(t, p.Validate(), "latitude")
		}
		p := validPlace()
		p.Latitude = 90
		require.NoError(t, p.Validate())
	})

	t.Run("longitude bounds", func(t *testing.T) {
		t.Parallel()
		for _, long := range []float64{-180.5, 181} {
			p := validPlace()
			p.Longitude = long
			requireFieldError(t, p.Validate(), "longitude")
		}
		p := validPlace()
		p.Longitude = -180
		require.NoError(t, p.Validate())
	})

	t.Run("missing owner", func(t *testing.T) {
		t.Parallel()
		p := validPlace()
		p.OwnerID = domain.UserID{}
		requireFieldError(t, p.Validate(), "ownerId")
	})
}

func TestAmenityValidate(t *testing.T) {
	t.Parallel()

	require.NoError(t, domain.Amenity{Name: "Wi-Fi"}.Validate())
	requireFieldError(t, domain.Amenity{Name: " "}.Validate(), "name")
	requireFieldError(t, domain.Amenity{Name: strings.Repeat("w", 51)}.Validate(), "name")
}

func TestReviewValidate(t *testing.T) {
	t.Parallel()

	valid := domain.Review{
		AuthorID: domain.UserID(uuid.New()),
		PlaceID:  domain.PlaceID(uuid.New()),
		Text:     "great stay",
		Rating:   5,
	}
	require.NoError(t, valid.Validate())

	t.Run("blank text", func(t *testing.T) {
		t.Parallel()
		r := valid
		r.Text = "  "
		requireFieldError(t, r.Validate(), "text")
	})

	t.Run("rating bounds", func(t *testing.T) {
		t.Parallel()
		for _, rating := range []int{0, 6, -1} {
			r := valid
			r.Rating = rating
			requireFieldError(t, r.Validate(), "rating")
		}
		for rating := domain.RatingMin; rating <= domain.RatingMax; rating++ {
			r := valid
			r.Rating = rating
			require.NoError(t, r.Validate())
		}
	})

	t.Run("missing references", func(t *testing.T) {
		t.Parallel()
		r := valid
		r.AuthorID = domain.UserID{}
		requireFieldError(t, r.Validate(), "authorId")

		r = valid
		r.PlaceID = domain.PlaceID{}
		requireFieldError(t, r.Validate(), "placeId")
	})
}
