package businessflow

import (
	"context"
	"testing"

	"github.com/chitrakalakar/backend/app/dto"
	"github.com/chitrakalakar/backend/models"
	testingutil "github.com/chitrakalakar/backend/testing"
	"github.com/chitrakalakar/backend/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOrCreateBySubject(t *testing.T) {
	t.Run("ProvisionsPlainUserOnFirstSight", func(t *testing.T) {
		profiles := testingutil.NewMemoryProfileRepository()
		flow := NewProfileFlow(profiles)

		subject := uuid.New().String()
		profile, err := flow.GetOrCreateBySubject(context.Background(), subject, "new@example.com", "")
		require.NoError(t, err)
		require.NotNil(t, profile)
		assert.Equal(t, models.RoleUser, profile.Role)
		assert.Equal(t, subject, profile.UUID.String())
		assert.Equal(t, "new@example.com", profile.Email)
		assert.Equal(t, "new@example.com", profile.Name) // falls back to email
		assert.False(t, utils.IsTrue(profile.IsApproved))
		assert.True(t, utils.IsTrue(profile.IsActive))
	})

	t.Run("ReturnsExistingProfile", func(t *testing.T) {
		profiles := testingutil.NewMemoryProfileRepository()
		flow := NewProfileFlow(profiles)

		subject := uuid.New().String()
		first, err := flow.GetOrCreateBySubject(context.Background(), subject, "same@example.com", "Asha")
		require.NoError(t, err)

		second, err := flow.GetOrCreateBySubject(context.Background(), subject, "same@example.com", "Asha")
		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)

		count, err := profiles.Count(context.Background(), models.ProfileFilter{})
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("RejectsMalformedSubject", func(t *testing.T) {
		flow := NewProfileFlow(testingutil.NewMemoryProfileRepository())
		_, err := flow.GetOrCreateBySubject(context.Background(), "not-a-uuid", "x@example.com", "")
		assert.Error(t, err)
	})
}

func TestUpdateProfile(t *testing.T) {
	t.Run("UpdatesBasicFields", func(t *testing.T) {
		profiles := testingutil.NewMemoryProfileRepository()
		flow := NewProfileFlow(profiles)

		user := testingutil.BuildUser()
		require.NoError(t, profiles.Save(context.Background(), user))

		req := &dto.UpdateProfileRequest{
			Name: utils.ToPtr("Renamed"),
			Bio:  utils.ToPtr("Watercolor enthusiast"),
		}
		result, err := flow.UpdateProfile(context.Background(), req, user.ID, nil)
		require.NoError(t, err)
		assert.Equal(t, "Renamed", result.Profile.Name)
		require.NotNil(t, result.Profile.Bio)
		assert.Equal(t, "Watercolor enthusiast", *result.Profile.Bio)
	})

	t.Run("TeachingFieldsIgnoredForPlainUsers", func(t *testing.T) {
		profiles := testingutil.NewMemoryProfileRepository()
		flow := NewProfileFlow(profiles)

		user := testingutil.BuildUser()
		require.NoError(t, profiles.Save(context.Background(), user))

		req := &dto.UpdateProfileRequest{TeachingRate: utils.ToPtr(400.0)}
		result, err := flow.UpdateProfile(context.Background(), req, user.ID, nil)
		require.NoError(t, err)
		assert.Nil(t, result.Profile.TeachingRate)
	})

	t.Run("TeachingFieldsAppliedForArtists", func(t *testing.T) {
		profiles := testingutil.NewMemoryProfileRepository()
		flow := NewProfileFlow(profiles)

		artist := testingutil.BuildArtist(300, true, false, "", "painting")
		require.NoError(t, profiles.Save(context.Background(), artist))

		req := &dto.UpdateProfileRequest{
			TeachingRate:   utils.ToPtr(450.0),
			TeachesOffline: utils.ToPtr(true),
		}
		result, err := flow.UpdateProfile(context.Background(), req, artist.ID, nil)
		require.NoError(t, err)
		require.NotNil(t, result.Profile.TeachingRate)
		assert.Equal(t, 450.0, *result.Profile.TeachingRate)
		assert.True(t, utils.IsTrue(result.Profile.TeachesOffline))
	})

	t.Run("UnknownProfile", func(t *testing.T) {
		flow := NewProfileFlow(testingutil.NewMemoryProfileRepository())
		_, err := flow.UpdateProfile(context.Background(), &dto.UpdateProfileRequest{}, 42, nil)
		assert.ErrorIs(t, err, ErrProfileNotFound)
	})
}

func TestApplyAsArtist(t *testing.T) {
	applyReq := func() *dto.ApplyAsArtistRequest {
		return &dto.ApplyAsArtistRequest{
			Phone:         "+919812345678",
			Categories:    []string{"painting", "sketching"},
			TeachingRate:  utils.ToPtr(320.0),
			TeachesOnline: true,
		}
	}

	t.Run("UserBecomesPendingArtist", func(t *testing.T) {
		profiles := testingutil.NewMemoryProfileRepository()
		flow := NewProfileFlow(profiles)

		user := testingutil.BuildUser()
		require.NoError(t, profiles.Save(context.Background(), user))

		result, err := flow.ApplyAsArtist(context.Background(), applyReq(), user.ID, nil)
		require.NoError(t, err)
		assert.Equal(t, string(models.RoleArtist), result.Profile.Role)
		assert.False(t, utils.IsTrue(result.Profile.IsApproved))
		assert.ElementsMatch(t, []string{"painting", "sketching"}, result.Profile.Categories)
		require.NotNil(t, result.Profile.TeachingRate)
		assert.Equal(t, 320.0, *result.Profile.TeachingRate)
	})

	t.Run("ArtistsCannotReapply", func(t *testing.T) {
		profiles := testingutil.NewMemoryProfileRepository()
		flow := NewProfileFlow(profiles)

		artist := testingutil.BuildArtist(300, true, false, "", "painting")
		require.NoError(t, profiles.Save(context.Background(), artist))

		_, err := flow.ApplyAsArtist(context.Background(), applyReq(), artist.ID, nil)
		assert.ErrorIs(t, err, ErrRoleNotAllowed)
	})

	t.Run("ReviewersCannotApply", func(t *testing.T) {
		profiles := testingutil.NewMemoryProfileRepository()
		flow := NewProfileFlow(profiles)

		reviewer := testingutil.BuildReviewer(models.RoleLeadReviewer)
		require.NoError(t, profiles.Save(context.Background(), reviewer))

		_, err := flow.ApplyAsArtist(context.Background(), applyReq(), reviewer.ID, nil)
		assert.ErrorIs(t, err, ErrRoleNotAllowed)
	})
}

func TestListArtists(t *testing.T) {
	t.Run("OnlyApprovedActiveArtists", func(t *testing.T) {
		profiles := testingutil.NewMemoryProfileRepository()
		flow := NewProfileFlow(profiles)

		approved := testingutil.BuildArtist(300, true, false, "", "painting")
		require.NoError(t, profiles.Save(context.Background(), approved))

		pending := testingutil.BuildArtist(300, true, false, "", "painting")
		pending.IsApproved = utils.ToPtr(false)
		require.NoError(t, profiles.Save(context.Background(), pending))

		inactive := testingutil.BuildArtist(300, true, false, "", "painting")
		inactive.IsActive = utils.ToPtr(false)
		require.NoError(t, profiles.Save(context.Background(), inactive))

		require.NoError(t, profiles.Save(context.Background(), testingutil.BuildUser()))

		result, err := flow.ListArtists(context.Background(), 0, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(1), result.Total)
		require.Len(t, result.Items, 1)
		assert.Equal(t, approved.ID, result.Items[0].ID)
	})

	t.Run("PageSizeCapped", func(t *testing.T) {
		flow := NewProfileFlow(testingutil.NewMemoryProfileRepository())
		_, err := flow.ListArtists(context.Background(), 1, 101)
		assert.ErrorIs(t, err, ErrInvalidPageSize)
	})

	t.Run("Pagination", func(t *testing.T) {
		profiles := testingutil.NewMemoryProfileRepository()
		flow := NewProfileFlow(profiles)

		for i := 0; i < 5; i++ {
			require.NoError(t, profiles.Save(context.Background(), testingutil.BuildArtist(300, true, false, "", "painting")))
		}

		first, err := flow.ListArtists(context.Background(), 1, 2)
		require.NoError(t, err)
		assert.Equal(t, int64(5), first.Total)
		assert.Len(t, first.Items, 2)

		last, err := flow.ListArtists(context.Background(), 3, 2)
		require.NoError(t, err)
		assert.Len(t, last.Items, 1)
	})
}
