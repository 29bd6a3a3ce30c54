package repository

import (
	"context"
	"testing"
	"time"

	"github.com/chitrakalakar/backend/models"
	testingutil "github.com/chitrakalakar/backend/testing"
	"github.com/chitrakalakar/backend/utils"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Integration tests against a real Postgres; skipped unless TEST_DB_HOST is set.
func setupEnquiryRepoTest(t *testing.T) (EnquiryRepository, ProfileRepository, *testingutil.TestDB) {
	t.Helper()
	if !testingutil.DatabaseAvailable() {
		t.Skip("TEST_DB_HOST not set; skipping database integration test")
	}

	tdb, err := testingutil.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := tdb.TeardownTestDB(); err != nil {
			t.Logf("teardown: %v", err)
		}
	})

	return NewEnquiryRepository(tdb.DB), NewProfileRepository(tdb.DB), tdb
}

func TestEnquiryRepositoryOwnership(t *testing.T) {
	enquiries, profiles, _ := setupEnquiryRepoTest(t)
	ctx := context.Background()

	requester := testingutil.BuildUser()
	require.NoError(t, profiles.Save(ctx, requester))
	other := testingutil.BuildUser()
	require.NoError(t, profiles.Save(ctx, other))

	enquiry := testingutil.BuildEnquiry(requester.ID)
	require.NoError(t, enquiries.Save(ctx, enquiry))

	found, err := enquiries.ByIDAndRequester(ctx, enquiry.ID, requester.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, enquiry.UUID, found.UUID)

	foreign, err := enquiries.ByIDAndRequester(ctx, enquiry.ID, other.ID)
	require.NoError(t, err)
	assert.Nil(t, foreign)
}

func TestEnquiryRepositoryCountCreatedSince(t *testing.T) {
	enquiries, profiles, _ := setupEnquiryRepoTest(t)
	ctx := context.Background()

	requester := testingutil.BuildUser()
	require.NoError(t, profiles.Save(ctx, requester))

	cutoff := utils.UTCNow().Add(-utils.EnquiryWindow)

	atCutoff := testingutil.BuildEnquiry(requester.ID)
	atCutoff.CreatedAt = cutoff
	atCutoff.ExpiresAt = cutoff.Add(utils.EnquiryTTL)
	require.NoError(t, enquiries.Save(ctx, atCutoff))

	before := testingutil.BuildEnquiry(requester.ID)
	before.CreatedAt = cutoff.Add(-time.Hour)
	before.ExpiresAt = before.CreatedAt.Add(utils.EnquiryTTL)
	require.NoError(t, enquiries.Save(ctx, before))

	count, err := enquiries.CountCreatedSince(ctx, requester.ID, cutoff)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count) // the cutoff instant itself counts
}

func TestEnquiryRepositoryMarkExpired(t *testing.T) {
	enquiries, profiles, _ := setupEnquiryRepoTest(t)
	ctx := context.Background()

	requester := testingutil.BuildUser()
	require.NoError(t, profiles.Save(ctx, requester))

	enquiry := testingutil.BuildEnquiry(requester.ID)
	enquiry.Status = models.EnquiryStatusMatched
	require.NoError(t, enquiries.Save(ctx, enquiry))

	require.NoError(t, enquiries.MarkExpired(ctx, enquiry.ID))

	stored, err := enquiries.ByID(ctx, enquiry.ID)
	require.NoError(t, err)
	assert.Equal(t, models.EnquiryStatusExpired, stored.Status)
}

func TestEnquiryRepositoryAppendRevealedContact(t *testing.T) {
	enquiries, profiles, _ := setupEnquiryRepoTest(t)
	ctx := context.Background()

	requester := testingutil.BuildUser()
	require.NoError(t, profiles.Save(ctx, requester))

	enquiry := testingutil.BuildEnquiry(requester.ID)
	enquiry.Status = models.EnquiryStatusMatched
	enquiry.MatchedArtistIDs = pq.Int64Array{11, 12, 13}
	require.NoError(t, enquiries.Save(ctx, enquiry))

	ok, err := enquiries.AppendRevealedContact(ctx, enquiry.ID, 11, 0)
	require.NoError(t, err)
	assert.True(t, ok)

	// Stale expected count models a concurrent reveal landing first
	ok, err = enquiries.AppendRevealedContact(ctx, enquiry.ID, 12, 0)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = enquiries.AppendRevealedContact(ctx, enquiry.ID, 12, 1)
	require.NoError(t, err)
	assert.True(t, ok)

	stored, err := enquiries.ByID(ctx, enquiry.ID)
	require.NoError(t, err)
	assert.Equal(t, pq.Int64Array{11, 12}, stored.RevealedArtistIDs)
}
