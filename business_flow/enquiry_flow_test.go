package businessflow

import (
	"context"
	"testing"
	"time"

	"github.com/chitrakalakar/backend/app/dto"
	"github.com/chitrakalakar/backend/models"
	testingutil "github.com/chitrakalakar/backend/testing"
	"github.com/chitrakalakar/backend/utils"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type enquiryFlowEnv struct {
	profiles  *testingutil.MemoryProfileRepository
	enquiries *testingutil.MemoryEnquiryRepository
	artworks  *testingutil.MemoryArtworkRepository
	flow      EnquiryFlow
}

func newEnquiryFlowEnv() *enquiryFlowEnv {
	profiles := testingutil.NewMemoryProfileRepository()
	enquiries := testingutil.NewMemoryEnquiryRepository()
	artworks := testingutil.NewMemoryArtworkRepository()
	return &enquiryFlowEnv{
		profiles:  profiles,
		enquiries: enquiries,
		artworks:  artworks,
		flow:      NewEnquiryFlow(profiles, enquiries, artworks),
	}
}

func (env *enquiryFlowEnv) seedUser(t *testing.T) *models.Profile {
	t.Helper()
	user := testingutil.BuildUser()
	require.NoError(t, env.profiles.Save(context.Background(), user))
	return user
}

func (env *enquiryFlowEnv) seedArtist(t *testing.T, rate float64, online, offline bool, location string, categories ...string) *models.Profile {
	t.Helper()
	artist := testingutil.BuildArtist(rate, online, offline, location, categories...)
	require.NoError(t, env.profiles.Save(context.Background(), artist))
	return artist
}

func onlineEnquiryRequest() *dto.SubmitEnquiryRequest {
	return &dto.SubmitEnquiryRequest{
		ArtType:     "painting",
		SkillLevel:  "beginner",
		Duration:    "1 month",
		BudgetRange: "250-350",
		ClassType:   models.ClassModeOnline,
	}
}

func TestSubmitEnquiry(t *testing.T) {
	t.Run("MatchedWhenArtistsFit", func(t *testing.T) {
		env := newEnquiryFlowEnv()
		user := env.seedUser(t)
		cheap := env.seedArtist(t, 260, true, false, "", "painting")
		mid := env.seedArtist(t, 300, true, false, "", "painting")
		env.seedArtist(t, 600, true, false, "", "painting") // outside band

		result, err := env.flow.SubmitEnquiry(context.Background(), onlineEnquiryRequest(), user.ID, nil)
		require.NoError(t, err)
		require.NotNil(t, result)
		assert.Equal(t, models.EnquiryStatusMatched, result.Status)
		assert.Equal(t, 2, result.MatchedCount)
		require.Len(t, result.MatchedArtists, 2)
		assert.Equal(t, cheap.ID, result.MatchedArtists[0].ID)
		assert.Equal(t, mid.ID, result.MatchedArtists[1].ID)

		// Contacts start hidden
		for _, card := range result.MatchedArtists {
			assert.Equal(t, utils.HiddenPhoneSentinel, card.Phone)
			assert.False(t, card.ContactRevealed)
		}
	})

	t.Run("PendingWhenNoArtistsFit", func(t *testing.T) {
		env := newEnquiryFlowEnv()
		user := env.seedUser(t)
		env.seedArtist(t, 300, true, false, "", "sculpture") // wrong category

		result, err := env.flow.SubmitEnquiry(context.Background(), onlineEnquiryRequest(), user.ID, nil)
		require.NoError(t, err)
		assert.Equal(t, models.EnquiryStatusPending, result.Status)
		assert.Empty(t, result.MatchedArtists)
	})

	t.Run("InvalidClassType", func(t *testing.T) {
		env := newEnquiryFlowEnv()
		user := env.seedUser(t)

		req := onlineEnquiryRequest()
		req.ClassType = "hybrid"
		_, err := env.flow.SubmitEnquiry(context.Background(), req, user.ID, nil)
		assert.ErrorIs(t, err, ErrInvalidClassType)
	})

	t.Run("OfflineLocationHintOptional", func(t *testing.T) {
		env := newEnquiryFlowEnv()
		user := env.seedUser(t)
		local := env.seedArtist(t, 300, false, true, "Andheri, Mumbai", "painting")

		req := onlineEnquiryRequest()
		req.ClassType = models.ClassModeOffline
		req.Location = "   "
		result, err := env.flow.SubmitEnquiry(context.Background(), req, user.ID, nil)
		require.NoError(t, err)
		assert.Equal(t, models.EnquiryStatusMatched, result.Status)
		require.Len(t, result.MatchedArtists, 1)
		assert.Equal(t, local.ID, result.MatchedArtists[0].ID)
	})

	t.Run("UnknownRequester", func(t *testing.T) {
		env := newEnquiryFlowEnv()
		_, err := env.flow.SubmitEnquiry(context.Background(), onlineEnquiryRequest(), 999, nil)
		assert.ErrorIs(t, err, ErrProfileNotFound)
	})

	t.Run("InactiveRequester", func(t *testing.T) {
		env := newEnquiryFlowEnv()
		user := testingutil.BuildUser()
		user.IsActive = utils.ToPtr(false)
		require.NoError(t, env.profiles.Save(context.Background(), user))

		_, err := env.flow.SubmitEnquiry(context.Background(), onlineEnquiryRequest(), user.ID, nil)
		assert.ErrorIs(t, err, ErrAccountInactive)
	})
}

func TestSubmitEnquiryRateLimit(t *testing.T) {
	t.Run("SecondEnquiryWithinWindowBlocked", func(t *testing.T) {
		env := newEnquiryFlowEnv()
		user := env.seedUser(t)

		_, err := env.flow.SubmitEnquiry(context.Background(), onlineEnquiryRequest(), user.ID, nil)
		require.NoError(t, err)

		_, err = env.flow.SubmitEnquiry(context.Background(), onlineEnquiryRequest(), user.ID, nil)
		assert.ErrorIs(t, err, ErrEnquiryRateLimited)
	})

	t.Run("RecentEnquiryInsideWindowBlocks", func(t *testing.T) {
		env := newEnquiryFlowEnv()
		user := env.seedUser(t)

		old := testingutil.BuildEnquiry(user.ID)
		old.CreatedAt = utils.UTCNow().Add(-utils.EnquiryWindow + time.Hour)
		require.NoError(t, env.enquiries.Save(context.Background(), old))

		_, err := env.flow.SubmitEnquiry(context.Background(), onlineEnquiryRequest(), user.ID, nil)
		assert.ErrorIs(t, err, ErrEnquiryRateLimited)
	})

	t.Run("EnquiryOlderThanWindowAllowed", func(t *testing.T) {
		env := newEnquiryFlowEnv()
		user := env.seedUser(t)

		old := testingutil.BuildEnquiry(user.ID)
		old.CreatedAt = utils.UTCNow().Add(-utils.EnquiryWindow - time.Hour)
		old.ExpiresAt = old.CreatedAt.Add(utils.EnquiryTTL)
		require.NoError(t, env.enquiries.Save(context.Background(), old))

		result, err := env.flow.SubmitEnquiry(context.Background(), onlineEnquiryRequest(), user.ID, nil)
		require.NoError(t, err)
		assert.NotZero(t, result.ID)
	})

	t.Run("WindowIsPerRequester", func(t *testing.T) {
		env := newEnquiryFlowEnv()
		first := env.seedUser(t)
		second := env.seedUser(t)

		_, err := env.flow.SubmitEnquiry(context.Background(), onlineEnquiryRequest(), first.ID, nil)
		require.NoError(t, err)

		_, err = env.flow.SubmitEnquiry(context.Background(), onlineEnquiryRequest(), second.ID, nil)
		require.NoError(t, err)
	})
}

func TestGetMatches(t *testing.T) {
	t.Run("HiddenPhonesAndQuota", func(t *testing.T) {
		env := newEnquiryFlowEnv()
		user := env.seedUser(t)
		artist := env.seedArtist(t, 300, true, false, "", "painting")

		submitted, err := env.flow.SubmitEnquiry(context.Background(), onlineEnquiryRequest(), user.ID, nil)
		require.NoError(t, err)

		result, err := env.flow.GetMatches(context.Background(), submitted.ID, user.ID)
		require.NoError(t, err)
		assert.Equal(t, submitted.ID, result.EnquiryID)
		assert.Equal(t, 0, result.RevealedCount)
		assert.Equal(t, utils.RevealQuota, result.RemainingReveals)
		require.Len(t, result.MatchedArtists, 1)
		assert.Equal(t, artist.ID, result.MatchedArtists[0].ID)
		assert.Equal(t, utils.HiddenPhoneSentinel, result.MatchedArtists[0].Phone)
	})

	t.Run("SampleArtworksMostViewedFirst", func(t *testing.T) {
		env := newEnquiryFlowEnv()
		user := env.seedUser(t)
		artist := env.seedArtist(t, 300, true, false, "", "painting")

		for i, views := range []int64{10, 500, 90, 40} {
			artwork := testingutil.BuildArtwork(artist.ID, "Piece", views)
			artwork.Title = string(rune('A' + i))
			require.NoError(t, env.artworks.Save(context.Background(), artwork))
		}

		submitted, err := env.flow.SubmitEnquiry(context.Background(), onlineEnquiryRequest(), user.ID, nil)
		require.NoError(t, err)

		result, err := env.flow.GetMatches(context.Background(), submitted.ID, user.ID)
		require.NoError(t, err)
		require.Len(t, result.MatchedArtists, 1)
		samples := result.MatchedArtists[0].SampleArtworks
		require.Len(t, samples, utils.SampleArtworkLimit)
		assert.Equal(t, int64(500), samples[0].Views)
		assert.Equal(t, int64(90), samples[1].Views)
		assert.Equal(t, int64(40), samples[2].Views)
	})

	t.Run("OtherRequestersEnquiryNotFound", func(t *testing.T) {
		env := newEnquiryFlowEnv()
		owner := env.seedUser(t)
		other := env.seedUser(t)
		env.seedArtist(t, 300, true, false, "", "painting")

		submitted, err := env.flow.SubmitEnquiry(context.Background(), onlineEnquiryRequest(), owner.ID, nil)
		require.NoError(t, err)

		_, err = env.flow.GetMatches(context.Background(), submitted.ID, other.ID)
		assert.ErrorIs(t, err, ErrEnquiryNotFound)
	})

	t.Run("ExpiredEnquiryRecordedAndRejected", func(t *testing.T) {
		env := newEnquiryFlowEnv()
		user := env.seedUser(t)

		stale := testingutil.BuildEnquiry(user.ID)
		stale.CreatedAt = utils.UTCNow().Add(-utils.EnquiryTTL - 24*time.Hour)
		stale.ExpiresAt = stale.CreatedAt.Add(utils.EnquiryTTL)
		stale.Status = models.EnquiryStatusMatched
		require.NoError(t, env.enquiries.Save(context.Background(), stale))

		_, err := env.flow.GetMatches(context.Background(), stale.ID, user.ID)
		assert.ErrorIs(t, err, ErrEnquiryExpired)

		// Expiry is recorded in place on the first read past the deadline
		stored, err := env.enquiries.ByID(context.Background(), stale.ID)
		require.NoError(t, err)
		assert.Equal(t, models.EnquiryStatusExpired, stored.Status)

		// Subsequent reads keep failing the same way
		_, err = env.flow.GetMatches(context.Background(), stale.ID, user.ID)
		assert.ErrorIs(t, err, ErrEnquiryExpired)
	})
}

func TestRevealContact(t *testing.T) {
	setup := func(t *testing.T) (*enquiryFlowEnv, *models.Profile, *models.Profile, uint) {
		env := newEnquiryFlowEnv()
		user := env.seedUser(t)
		artist := env.seedArtist(t, 300, true, false, "", "painting")

		submitted, err := env.flow.SubmitEnquiry(context.Background(), onlineEnquiryRequest(), user.ID, nil)
		require.NoError(t, err)
		return env, user, artist, submitted.ID
	}

	t.Run("SuccessfulReveal", func(t *testing.T) {
		env, user, artist, enquiryID := setup(t)

		result, err := env.flow.RevealContact(context.Background(), enquiryID, artist.ID, user.ID)
		require.NoError(t, err)
		assert.Equal(t, artist.ID, result.ArtistID)
		assert.Equal(t, artist.Name, result.ArtistName)
		assert.Equal(t, *artist.Phone, result.Phone)
		assert.Equal(t, artist.Email, result.Email)
		assert.Equal(t, 1, result.RevealedCount)
		assert.Equal(t, utils.RevealQuota-1, result.RemainingReveals)

		// Subsequent match reads carry the real phone
		matches, err := env.flow.GetMatches(context.Background(), enquiryID, user.ID)
		require.NoError(t, err)
		require.Len(t, matches.MatchedArtists, 1)
		assert.Equal(t, *artist.Phone, matches.MatchedArtists[0].Phone)
		assert.True(t, matches.MatchedArtists[0].ContactRevealed)
	})

	t.Run("AlreadyRevealed", func(t *testing.T) {
		env, user, artist, enquiryID := setup(t)

		_, err := env.flow.RevealContact(context.Background(), enquiryID, artist.ID, user.ID)
		require.NoError(t, err)

		_, err = env.flow.RevealContact(context.Background(), enquiryID, artist.ID, user.ID)
		assert.ErrorIs(t, err, ErrContactAlreadyRevealed)
	})

	t.Run("ArtistNotMatched", func(t *testing.T) {
		env, user, _, enquiryID := setup(t)
		outsider := env.seedArtist(t, 900, true, false, "", "sculpture")

		_, err := env.flow.RevealContact(context.Background(), enquiryID, outsider.ID, user.ID)
		assert.ErrorIs(t, err, ErrArtistNotMatched)
	})

	t.Run("EnquiryNotFound", func(t *testing.T) {
		env, user, artist, _ := setup(t)

		_, err := env.flow.RevealContact(context.Background(), 9999, artist.ID, user.ID)
		assert.ErrorIs(t, err, ErrEnquiryNotFound)
	})

	t.Run("ExpiredEnquiry", func(t *testing.T) {
		env := newEnquiryFlowEnv()
		user := env.seedUser(t)
		artist := env.seedArtist(t, 300, true, false, "", "painting")

		stale := testingutil.BuildEnquiry(user.ID)
		stale.CreatedAt = utils.UTCNow().Add(-utils.EnquiryTTL - 24*time.Hour)
		stale.ExpiresAt = stale.CreatedAt.Add(utils.EnquiryTTL)
		stale.Status = models.EnquiryStatusMatched
		stale.MatchedArtistIDs = pq.Int64Array{int64(artist.ID)}
		require.NoError(t, env.enquiries.Save(context.Background(), stale))

		_, err := env.flow.RevealContact(context.Background(), stale.ID, artist.ID, user.ID)
		assert.ErrorIs(t, err, ErrEnquiryExpired)
	})

	t.Run("QuotaExceeded", func(t *testing.T) {
		env := newEnquiryFlowEnv()
		user := env.seedUser(t)

		var artistIDs []int64
		for i := 0; i < utils.RevealQuota; i++ {
			artist := env.seedArtist(t, 300, true, false, "", "painting")
			artistIDs = append(artistIDs, int64(artist.ID))
		}
		fourth := env.seedArtist(t, 320, true, false, "", "painting")

		enquiry := testingutil.BuildEnquiry(user.ID)
		enquiry.Status = models.EnquiryStatusMatched
		enquiry.MatchedArtistIDs = pq.Int64Array(artistIDs)
		enquiry.RevealedArtistIDs = pq.Int64Array(artistIDs)
		require.NoError(t, env.enquiries.Save(context.Background(), enquiry))

		// A full quota wins over target validity: the 4th distinct artist is
		// rejected for the quota, not for being unmatched
		_, err := env.flow.RevealContact(context.Background(), enquiry.ID, fourth.ID, user.ID)
		assert.ErrorIs(t, err, ErrRevealQuotaExceeded)

		// Re-asking for an already revealed artist reports the same
		_, err = env.flow.RevealContact(context.Background(), enquiry.ID, uint(artistIDs[0]), user.ID)
		assert.ErrorIs(t, err, ErrRevealQuotaExceeded)
	})

	t.Run("PersistentConflictSurfaces", func(t *testing.T) {
		profiles := testingutil.NewMemoryProfileRepository()
		enquiries := &conflictingEnquiryRepo{MemoryEnquiryRepository: testingutil.NewMemoryEnquiryRepository()}
		artworks := testingutil.NewMemoryArtworkRepository()
		flow := NewEnquiryFlow(profiles, enquiries, artworks)

		user := testingutil.BuildUser()
		require.NoError(t, profiles.Save(context.Background(), user))
		artist := testingutil.BuildArtist(300, true, false, "", "painting")
		require.NoError(t, profiles.Save(context.Background(), artist))

		enquiry := testingutil.BuildEnquiry(user.ID)
		enquiry.Status = models.EnquiryStatusMatched
		enquiry.MatchedArtistIDs = pq.Int64Array{int64(artist.ID)}
		require.NoError(t, enquiries.Save(context.Background(), enquiry))

		_, err := flow.RevealContact(context.Background(), enquiry.ID, artist.ID, user.ID)
		assert.ErrorIs(t, err, ErrRevealConflict)
	})
}

// conflictingEnquiryRepo simulates a concurrent reveal always winning the
// compare-and-swap so the retry loop exhausts its attempts.
type conflictingEnquiryRepo struct {
	*testingutil.MemoryEnquiryRepository
}

func (r *conflictingEnquiryRepo) AppendRevealedContact(ctx context.Context, enquiryID, artistID uint, expectedRevealed int) (bool, error) {
	return false, nil
}

func TestListMyEnquiries(t *testing.T) {
	t.Run("NewestFirstWithLazyExpiry", func(t *testing.T) {
		env := newEnquiryFlowEnv()
		user := env.seedUser(t)

		stale := testingutil.BuildEnquiry(user.ID)
		stale.CreatedAt = utils.UTCNow().Add(-utils.EnquiryTTL - 24*time.Hour)
		stale.ExpiresAt = stale.CreatedAt.Add(utils.EnquiryTTL)
		stale.Status = models.EnquiryStatusMatched
		require.NoError(t, env.enquiries.Save(context.Background(), stale))

		fresh := testingutil.BuildEnquiry(user.ID)
		require.NoError(t, env.enquiries.Save(context.Background(), fresh))

		result, err := env.flow.ListMyEnquiries(context.Background(), user.ID)
		require.NoError(t, err)
		require.Len(t, result.Items, 2)
		assert.Equal(t, fresh.ID, result.Items[0].ID)
		assert.Equal(t, models.EnquiryStatusPending, result.Items[0].Status)
		assert.Equal(t, stale.ID, result.Items[1].ID)
		assert.Equal(t, models.EnquiryStatusExpired, result.Items[1].Status)
	})

	t.Run("OnlyOwnEnquiries", func(t *testing.T) {
		env := newEnquiryFlowEnv()
		owner := env.seedUser(t)
		other := env.seedUser(t)

		mine := testingutil.BuildEnquiry(owner.ID)
		require.NoError(t, env.enquiries.Save(context.Background(), mine))
		theirs := testingutil.BuildEnquiry(other.ID)
		require.NoError(t, env.enquiries.Save(context.Background(), theirs))

		result, err := env.flow.ListMyEnquiries(context.Background(), owner.ID)
		require.NoError(t, err)
		require.Len(t, result.Items, 1)
		assert.Equal(t, mine.ID, result.Items[0].ID)
	})
}
