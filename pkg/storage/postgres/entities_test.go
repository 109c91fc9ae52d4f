package postgres_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"stays/pkg/domain"
	"stays/pkg/storage"
)

func strPtr(s string) *string { return &s }

func storeUser(t *testing.T, pgSQL storage.AllStorage, email string) domain.User {
	t.Helper()

	u, err := pgSQL.StoreUser(context.Background(), domain.User{
		FirstName:  "Test",
		LastName:   "User",
		Email:      email,
		Credential: "hash",
	})
	require.NoError(t, err)

	return *u
}

func TestPgSQL_Users(t *testing.T) {
	t.Parallel()

	pgSQL := setupTestDB(t)
	ctx := context.Background()

	stored := storeUser(t, pgSQL, "john@x.com")
	require.False(t, stored.ID.IsZero())
	require.False(t, stored.CreatedAt.IsZero())

	t.Run("lookup by id and email", func(t *testing.T) {
		got, err := pgSQL.UserByID(ctx, stored.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		require.Equal(t, "john@x.com", got.Email)

		byEmail, err := pgSQL.UserByEmail(ctx, "JOHN@X.COM")
		require.NoError(t, err)
		require.NotNil(t, byEmail, "email lookup should ignore case")
		require.Equal(t, stored.ID, byEmail.ID)

		absent, err := pgSQL.UserByID(ctx, domain.UserID(uuid.New()))
		require.NoError(t, err)
		require.Nil(t, absent)
	})

	t.Run("email uniqueness enforced by index", func(t *testing.T) {
		_, err := pgSQL.StoreUser(ctx, domain.User{
			FirstName:  "Dup",
			LastName:   "User",
			Email:      "John@X.com",
			Credential: "hash",
		})
		require.Error(t, err)
	})

	t.Run("partial update", func(t *testing.T) {
		updated, err := pgSQL.UpdateUser(ctx, stored.ID, storage.UserUpdates{FirstName: strPtr("Jane")})
		require.NoError(t, err)
		require.NotNil(t, updated)
		require.Equal(t, "Jane", updated.FirstName)
		require.Equal(t, "User", updated.LastName)
		require.False(t, updated.UpdatedAt.IsZero())

		missing, err := pgSQL.UpdateUser(ctx, domain.UserID(uuid.New()), storage.UserUpdates{FirstName: strPtr("x")})
		require.NoError(t, err)
		require.Nil(t, missing)
	})

	t.Run("delete", func(t *testing.T) {
		extra := storeUser(t, pgSQL, "extra@x.com")

		removed, err := pgSQL.DeleteUser(ctx, extra.ID)
		require.NoError(t, err)
		require.True(t, removed)

		again, err := pgSQL.DeleteUser(ctx, extra.ID)
		require.NoError(t, err)
		require.False(t, again)
	})
}

func TestPgSQL_PlacesWithAmenities(t *testing.T) {
	t.Parallel()

	pgSQL := setupTestDB(t)
	ctx := context.Background()

	owner := storeUser(t, pgSQL, "owner@x.com")

	wifi, err := pgSQL.StoreAmenity(ctx, domain.Amenity{Name: "Wi-Fi"})
	require.NoError(t, err)
	pool, err := pgSQL.StoreAmenity(ctx, domain.Amenity{Name: "Pool"})
	require.NoError(t, err)

	stored, err := pgSQL.StorePlace(ctx, domain.Place{
		OwnerID:    owner.ID,
		Title:      "Cabin",
		Price:      100,
		Latitude:   38,
		Longitude:  -77,
		AmenityIDs: []domain.AmenityID{wifi.ID},
	})
	require.NoError(t, err)
	require.False(t, stored.ID.IsZero())

	t.Run("round trip with links", func(t *testing.T) {
		got, err := pgSQL.PlaceByID(ctx, stored.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		require.Equal(t, "Cabin", got.Title)
		require.InEpsilon(t, 100.0, got.Price, 1e-9)
		require.Equal(t, []domain.AmenityID{wifi.ID}, got.AmenityIDs)
	})

	t.Run("replace amenity set on update", func(t *testing.T) {
		newSet := []domain.AmenityID{pool.ID}
		updated, err := pgSQL.UpdatePlace(ctx, stored.ID, storage.PlaceUpdates{AmenityIDs: &newSet})
		require.NoError(t, err)
		require.NotNil(t, updated)
		require.Equal(t, []domain.AmenityID{pool.ID}, updated.AmenityIDs)
	})

	t.Run("owner filter", func(t *testing.T) {
		owned, err := pgSQL.PlacesByOwner(ctx, owner.ID)
		require.NoError(t, err)
		require.Len(t, owned, 1)

		none, err := pgSQL.PlacesByOwner(ctx, domain.UserID(uuid.New()))
		require.NoError(t, err)
		require.Empty(t, none)
	})

	t.Run("delete drops links", func(t *testing.T) {
		removed, err := pgSQL.DeletePlace(ctx, stored.ID)
		require.NoError(t, err)
		require.True(t, removed)

		got, err := pgSQL.PlaceByID(ctx, stored.ID)
		require.NoError(t, err)
		require.Nil(t, got)

		// amenities themselves survive
		a, err := pgSQL.AmenityByID(ctx, pool.ID)
		require.NoError(t, err)
		require.NotNil(t, a)
	})
}

func TestPgSQL_AmenityNameUnique(t *testing.T) {
	t.Parallel()

	pgSQL := setupTestDB(t)
	ctx := context.Background()

	_, err := pgSQL.StoreAmenity(ctx, domain.Amenity{Name: "Sauna"})
	require.NoError(t, err)

	_, err = pgSQL.StoreAmenity(ctx, domain.Amenity{Name: "sauna"})
	require.Error(t, err, "name uniqueness ignores case")

	got, err := pgSQL.AmenityByName(ctx, "SAUNA")
	require.NoError(t, err)
	require.NotNil(t, got)
}

func TestPgSQL_Reviews(t *testing.T) {
	t.Parallel()

	pgSQL := setupTestDB(t)
	ctx := context.Background()

	owner := storeUser(t, pgSQL, "owner@x.com")
	author := storeUser(t, pgSQL, "author@x.com")

	place, err := pgSQL.StorePlace(ctx, domain.Place{
		OwnerID:   owner.ID,
		Title:     "Loft",
		Price:     50,
		Latitude:  1,
		Longitude: 1,
	})
	require.NoError(t, err)

	stored, err := pgSQL.StoreReview(ctx, domain.Review{
		AuthorID: author.ID,
		PlaceID:  place.ID,
		Text:     "lovely",
		Rating:   5,
	})
	require.NoError(t, err)

	t.Run("one review per author and place", func(t *testing.T) {
		_, err := pgSQL.StoreReview(ctx, domain.Review{
			AuthorID: author.ID,
			PlaceID:  place.ID,
			Text:     "again",
			Rating:   1,
		})
		require.Error(t, err, "unique constraint should reject the second review")

		got, err := pgSQL.ReviewByAuthorAndPlace(ctx, author.ID, place.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		require.Equal(t, stored.ID, got.ID)
	})

	t.Run("update", func(t *testing.T) {
		rating := 3
		updated, err := pgSQL.UpdateReview(ctx, stored.ID, storage.ReviewUpdates{Rating: &rating})
		require.NoError(t, err)
		require.NotNil(t, updated)
		require.Equal(t, 3, updated.Rating)
		require.Equal(t, "lovely", updated.Text)
	})

	t.Run("cascade delete by place", func(t *testing.T) {
		n, err := pgSQL.DeleteReviewsByPlace(ctx, place.ID)
		require.NoError(t, err)
		require.EqualValues(t, 1, n)

		left, err := pgSQL.ReviewsByPlace(ctx, place.ID)
		require.NoError(t, err)
		require.Empty(t, left)
	})
}

func TestPgSQL_TxRollback(t *testing.T) {
	t.Parallel()

	pgSQL := setupTestDB(t)
	ctx := context.Background()

	sentinel := context.Canceled
	err := pgSQL.WithTx(ctx, func(tx storage.AllStorage) error {
		_, err := tx.StoreUser(ctx, domain.User{
			FirstName:  "Tx",
			LastName:   "User",
			Email:      "tx@x.com",
			Credential: "hash",
		})
		require.NoError(t, err)

		return sentinel
	})
	require.ErrorIs(t, err, sentinel)

	got, err := pgSQL.UserByEmail(ctx, "tx@x.com")
	require.NoError(t, err)
	require.Nil(t, got, "rolled back insert must not be visible")
}
