package memory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"stays/pkg/domain"
	"stays/pkg/storage"
	"stays/pkg/storage/memory"
)

func strPtr(s string) *string { return &s }

func TestMemory_Users(t *testing.T) {
	t.Parallel()

	m := memory.New()
	ctx := context.Background()

	stored, err := m.StoreUser(ctx, domain.User{
		FirstName:  "John",
		LastName:   "Doe",
		Email:      "john@x.com",
		Credential: "hash",
	})
	require.NoError(t, err)
	require.False(t, stored.ID.IsZero())
	require.False(t, stored.CreatedAt.IsZero())
	require.Equal(t, stored.CreatedAt, stored.UpdatedAt, "updated_at starts equal to created_at")

	t.Run("lookup by id and email", func(t *testing.T) {
		got, err := m.UserByID(ctx, stored.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		require.Equal(t, "john@x.com", got.Email)

		byEmail, err := m.UserByEmail(ctx, "JOHN@X.COM")
		require.NoError(t, err)
		require.NotNil(t, byEmail, "email lookup should ignore case")
		require.Equal(t, stored.ID, byEmail.ID)

		absent, err := m.UserByID(ctx, domain.UserID(uuid.New()))
		require.NoError(t, err)
		require.Nil(t, absent)
	})

	t.Run("duplicate id rejected", func(t *testing.T) {
		_, err := m.StoreUser(ctx, domain.User{ID: stored.ID, Email: "other@x.com", Credential: "h"})
		require.ErrorIs(t, err, storage.ErrDuplicateID)
	})

	t.Run("partial update", func(t *testing.T) {
		updated, err := m.UpdateUser(ctx, stored.ID, storage.UserUpdates{FirstName: strPtr("Jane")})
		require.NoError(t, err)
		require.NotNil(t, updated)
		require.Equal(t, "Jane", updated.FirstName)
		require.Equal(t, "Doe", updated.LastName, "untouched field must survive")
		require.False(t, updated.UpdatedAt.IsZero())

		missing, err := m.UpdateUser(ctx, domain.UserID(uuid.New()), storage.UserUpdates{FirstName: strPtr("x")})
		require.NoError(t, err)
		require.Nil(t, missing)
	})

	t.Run("delete", func(t *testing.T) {
		removed, err := m.DeleteUser(ctx, stored.ID)
		require.NoError(t, err)
		require.True(t, removed)

		again, err := m.DeleteUser(ctx, stored.ID)
		require.NoError(t, err)
		require.False(t, again)
	})
}

func TestMemory_CreationOrder(t *testing.T) {
	t.Parallel()

	m := memory.New()
	ctx := context.Background()

	emails := []string{"a@x.com", "b@x.com", "c@x.com"}
	for _, email := range emails {
		_, err := m.StoreUser(ctx, domain.User{FirstName: "u", LastName: "u", Email: email, Credential: "h"})
		require.NoError(t, err)
	}

	users, err := m.Users(ctx)
	require.NoError(t, err)
	require.Len(t, users, 3)
	for i, u := range users {
		require.Equal(t, emails[i], u.Email)
	}
}

func TestMemory_PlacesAndAmenities(t *testing.T) {
	t.Parallel()

	m := memory.New()
	ctx := context.Background()

	owner, err := m.StoreUser(ctx, domain.User{FirstName: "o", LastName: "o", Email: "o@x.com", Credential: "h"})
	require.NoError(t, err)

	wifi, err := m.StoreAmenity(ctx, domain.Amenity{Name: "Wi-Fi"})
	require.NoError(t, err)

	place, err := m.StorePlace(ctx, domain.Place{
		OwnerID:    owner.ID,
		Title:      "Cabin",
		Price:      100,
		Latitude:   38,
		Longitude:  -77,
		AmenityIDs: []domain.AmenityID{wifi.ID},
	})
	require.NoError(t, err)
	require.Equal(t, wifi.CreatedAt, wifi.UpdatedAt)
	require.Equal(t, place.CreatedAt, place.UpdatedAt)

	t.Run("amenity name lookup ignores case", func(t *testing.T) {
		got, err := m.AmenityByName(ctx, "wi-fi")
		require.NoError(t, err)
		require.NotNil(t, got)
		require.Equal(t, wifi.ID, got.ID)
	})

	t.Run("owner filter", func(t *testing.T) {
		owned, err := m.PlacesByOwner(ctx, owner.ID)
		require.NoError(t, err)
		require.Len(t, owned, 1)

		none, err := m.PlacesByOwner(ctx, domain.UserID(uuid.New()))
		require.NoError(t, err)
		require.Empty(t, none)
	})

	t.Run("deleting amenity detaches it from places", func(t *testing.T) {
		removed, err := m.DeleteAmenity(ctx, wifi.ID)
		require.NoError(t, err)
		require.True(t, removed)

		got, err := m.PlaceByID(ctx, place.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		require.Empty(t, got.AmenityIDs)
	})
}

func TestMemory_Reviews(t *testing.T) {
	t.Parallel()

	m := memory.New()
	ctx := context.Background()

	author := domain.UserID(uuid.New())
	placeID := domain.PlaceID(uuid.New())

	r1, err := m.StoreReview(ctx, domain.Review{AuthorID: author, PlaceID: placeID, Text: "nice", Rating: 4})
	require.NoError(t, err)
	_, err = m.StoreReview(ctx, domain.Review{
		AuthorID: domain.UserID(uuid.New()),
		PlaceID:  placeID,
		Text:     "ok",
		Rating:   3,
	})
	require.NoError(t, err)

	t.Run("author and place lookup", func(t *testing.T) {
		got, err := m.ReviewByAuthorAndPlace(ctx, author, placeID)
		require.NoError(t, err)
		require.NotNil(t, got)
		require.Equal(t, r1.ID, got.ID)

		none, err := m.ReviewByAuthorAndPlace(ctx, author, domain.PlaceID(uuid.New()))
		require.NoError(t, err)
		require.Nil(t, none)
	})

	t.Run("cascade delete by place", func(t *testing.T) {
		n, err := m.DeleteReviewsByPlace(ctx, placeID)
		require.NoError(t, err)
		require.EqualValues(t, 2, n)

		left, err := m.Reviews(ctx)
		require.NoError(t, err)
		require.Empty(t, left)
	})
}

func TestMemory_TxCommitAndRollback(t *testing.T) {
	t.Parallel()

	m := memory.New()
	ctx := context.Background()

	t.Run("rollback leaves no trace", func(t *testing.T) {
		sentinel := errors.New("boom")
		err := m.WithTx(ctx, func(tx storage.AllStorage) error {
			_, err := tx.StoreUser(ctx, domain.User{FirstName: "g", LastName: "g", Email: "gone@x.com", Credential: "h"})
			require.NoError(t, err)

			return sentinel
		})
		require.ErrorIs(t, err, sentinel)

		got, err := m.UserByEmail(ctx, "gone@x.com")
		require.NoError(t, err)
		require.Nil(t, got)
	})

	t.Run("commit publishes staged writes", func(t *testing.T) {
		err := m.WithTx(ctx, func(tx storage.AllStorage) error {
			_, err := tx.StoreUser(ctx, domain.User{FirstName: "k", LastName: "k", Email: "kept@x.com", Credential: "h"})

			return err
		})
		require.NoError(t, err)

		got, err := m.UserByEmail(ctx, "kept@x.com")
		require.NoError(t, err)
		require.NotNil(t, got)
	})

	t.Run("tx handle unusable after commit", func(t *testing.T) {
		tx, err := m.Begin(ctx)
		require.NoError(t, err)
		require.NoError(t, tx.Commit())
		require.ErrorIs(t, tx.Commit(), storage.ErrNotInTx)
		_, err = tx.Users(ctx)
		require.ErrorIs(t, err, storage.ErrNotInTx)
	})
}
