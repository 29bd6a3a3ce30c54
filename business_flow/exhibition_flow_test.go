package businessflow

import (
	"context"
	"testing"
	"time"

	"github.com/chitrakalakar/backend/app/dto"
	"github.com/chitrakalakar/backend/models"
	testingutil "github.com/chitrakalakar/backend/testing"
	"github.com/chitrakalakar/backend/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type exhibitionFlowEnv struct {
	profiles    *testingutil.MemoryProfileRepository
	exhibitions *testingutil.MemoryExhibitionRepository
	flow        ExhibitionFlow
}

func newExhibitionFlowEnv() *exhibitionFlowEnv {
	profiles := testingutil.NewMemoryProfileRepository()
	exhibitions := testingutil.NewMemoryExhibitionRepository()
	return &exhibitionFlowEnv{
		profiles:    profiles,
		exhibitions: exhibitions,
		flow:        NewExhibitionFlow(profiles, exhibitions),
	}
}

func TestCreateExhibition(t *testing.T) {
	now := time.Now().UTC()
	validReq := func() *dto.CreateExhibitionRequest {
		return &dto.CreateExhibitionRequest{
			Name:      "Winter Showcase",
			StartDate: now.Add(7 * 24 * time.Hour),
			EndDate:   now.Add(14 * 24 * time.Hour),
		}
	}

	t.Run("EntersReviewQueueWithDefaultType", func(t *testing.T) {
		env := newExhibitionFlowEnv()
		artist := testingutil.BuildArtist(300, true, false, "", "painting")
		require.NoError(t, env.profiles.Save(context.Background(), artist))

		result, err := env.flow.CreateExhibition(context.Background(), validReq(), artist.ID, nil)
		require.NoError(t, err)
		assert.False(t, result.IsApproved)
		assert.Equal(t, models.ExhibitionStatusUpcoming, result.Status)

		stored, err := env.exhibitions.ByID(context.Background(), result.ID)
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Equal(t, "Kalakanksh", stored.Type)
		assert.Equal(t, artist.ID, stored.CuratorID)
	})

	t.Run("ExplicitTypeKept", func(t *testing.T) {
		env := newExhibitionFlowEnv()
		artist := testingutil.BuildArtist(300, true, false, "", "painting")
		require.NoError(t, env.profiles.Save(context.Background(), artist))

		req := validReq()
		req.Type = "Solo"
		result, err := env.flow.CreateExhibition(context.Background(), req, artist.ID, nil)
		require.NoError(t, err)

		stored, err := env.exhibitions.ByID(context.Background(), result.ID)
		require.NoError(t, err)
		assert.Equal(t, "Solo", stored.Type)
	})

	t.Run("EndMustFollowStart", func(t *testing.T) {
		env := newExhibitionFlowEnv()
		artist := testingutil.BuildArtist(300, true, false, "", "painting")
		require.NoError(t, env.profiles.Save(context.Background(), artist))

		req := validReq()
		req.EndDate = req.StartDate
		_, err := env.flow.CreateExhibition(context.Background(), req, artist.ID, nil)
		assert.ErrorIs(t, err, ErrExhibitionDatesInvalid)
	})

	t.Run("PlainUsersCannotCurate", func(t *testing.T) {
		env := newExhibitionFlowEnv()
		user := testingutil.BuildUser()
		require.NoError(t, env.profiles.Save(context.Background(), user))

		_, err := env.flow.CreateExhibition(context.Background(), validReq(), user.ID, nil)
		assert.ErrorIs(t, err, ErrRoleNotAllowed)
	})
}

func TestListExhibitions(t *testing.T) {
	t.Run("ApprovedSoonestFirst", func(t *testing.T) {
		env := newExhibitionFlowEnv()
		artist := testingutil.BuildArtist(300, true, false, "", "painting")
		require.NoError(t, env.profiles.Save(context.Background(), artist))

		later := testingutil.BuildExhibition(artist.ID, "Later")
		later.StartDate = time.Now().Add(30 * 24 * time.Hour)
		later.EndDate = later.StartDate.Add(7 * 24 * time.Hour)
		later.IsApproved = utils.ToPtr(true)
		require.NoError(t, env.exhibitions.Save(context.Background(), later))

		sooner := testingutil.BuildExhibition(artist.ID, "Sooner")
		sooner.IsApproved = utils.ToPtr(true)
		require.NoError(t, env.exhibitions.Save(context.Background(), sooner))

		// still pending review, must not surface
		require.NoError(t, env.exhibitions.Save(context.Background(), testingutil.BuildExhibition(artist.ID, "Pending")))

		result, err := env.flow.ListExhibitions(context.Background())
		require.NoError(t, err)
		require.Len(t, result.Items, 2)
		assert.Equal(t, "Sooner", result.Items[0].Name)
		assert.Equal(t, "Later", result.Items[1].Name)
		assert.Equal(t, artist.Name, result.Items[0].CuratorName)
	})
}

func TestListMyExhibitions(t *testing.T) {
	t.Run("OwnRowsIncludingPending", func(t *testing.T) {
		env := newExhibitionFlowEnv()
		artist := testingutil.BuildArtist(300, true, false, "", "painting")
		require.NoError(t, env.profiles.Save(context.Background(), artist))
		other := testingutil.BuildArtist(300, true, false, "", "painting")
		require.NoError(t, env.profiles.Save(context.Background(), other))

		mine := testingutil.BuildExhibition(artist.ID, "Mine")
		require.NoError(t, env.exhibitions.Save(context.Background(), mine))
		require.NoError(t, env.exhibitions.Save(context.Background(), testingutil.BuildExhibition(other.ID, "Theirs")))

		result, err := env.flow.ListMyExhibitions(context.Background(), artist.ID)
		require.NoError(t, err)
		require.Len(t, result.Items, 1)
		assert.Equal(t, "Mine", result.Items[0].Name)
		assert.Equal(t, artist.Name, result.Items[0].CuratorName)
	})
}
