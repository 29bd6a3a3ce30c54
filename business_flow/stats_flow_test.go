package businessflow

import (
	"context"
	"testing"

	"github.com/chitrakalakar/backend/models"
	testingutil "github.com/chitrakalakar/backend/testing"
	"github.com/chitrakalakar/backend/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlatformStats(t *testing.T) {
	t.Run("CountsOnlyVisibleRows", func(t *testing.T) {
		profiles := testingutil.NewMemoryProfileRepository()
		artworks := testingutil.NewMemoryArtworkRepository()
		exhibitions := testingutil.NewMemoryExhibitionRepository()
		enquiries := testingutil.NewMemoryEnquiryRepository()
		flow := NewStatsFlow(profiles, artworks, exhibitions, enquiries, nil)

		user := testingutil.BuildUser()
		require.NoError(t, profiles.Save(context.Background(), user))

		artist := testingutil.BuildArtist(300, true, false, "", "painting")
		require.NoError(t, profiles.Save(context.Background(), artist))

		pendingArtist := testingutil.BuildArtist(300, true, false, "", "painting")
		pendingArtist.IsApproved = utils.ToPtr(false)
		require.NoError(t, profiles.Save(context.Background(), pendingArtist))

		require.NoError(t, artworks.Save(context.Background(), testingutil.BuildArtwork(artist.ID, "Shown", 0)))
		draft := testingutil.BuildArtwork(artist.ID, "Draft", 0)
		draft.IsApproved = utils.ToPtr(false)
		require.NoError(t, artworks.Save(context.Background(), draft))

		showcase := testingutil.BuildExhibition(artist.ID, "Showcase")
		showcase.IsApproved = utils.ToPtr(true)
		require.NoError(t, exhibitions.Save(context.Background(), showcase))

		require.NoError(t, exhibitions.Save(context.Background(), testingutil.BuildExhibition(artist.ID, "Pending")))

		enquiry := testingutil.BuildEnquiry(user.ID)
		enquiry.Status = models.EnquiryStatusExpired
		require.NoError(t, enquiries.Save(context.Background(), enquiry))

		resp, err := flow.PlatformStats(context.Background())
		require.NoError(t, err)
		assert.Equal(t, int64(1), resp.TotalArtists)
		assert.Equal(t, int64(1), resp.TotalArtworks)
		assert.Equal(t, int64(1), resp.TotalExhibitions)
		assert.Equal(t, int64(1), resp.TotalEnquiries) // expired enquiries still count
	})

	t.Run("EmptyPlatform", func(t *testing.T) {
		flow := NewStatsFlow(
			testingutil.NewMemoryProfileRepository(),
			testingutil.NewMemoryArtworkRepository(),
			testingutil.NewMemoryExhibitionRepository(),
			testingutil.NewMemoryEnquiryRepository(),
			nil,
		)

		resp, err := flow.PlatformStats(context.Background())
		require.NoError(t, err)
		assert.Zero(t, resp.TotalArtists)
		assert.Zero(t, resp.TotalEnquiries)
	})
}
