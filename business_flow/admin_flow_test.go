package businessflow

import (
	"bytes"
	"context"
	"testing"

	"github.com/chitrakalakar/backend/app/dto"
	"github.com/chitrakalakar/backend/models"
	testingutil "github.com/chitrakalakar/backend/testing"
	"github.com/chitrakalakar/backend/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type adminFlowEnv struct {
	profiles    *testingutil.MemoryProfileRepository
	artworks    *testingutil.MemoryArtworkRepository
	exhibitions *testingutil.MemoryExhibitionRepository
	enquiries   *testingutil.MemoryEnquiryRepository
	flow        AdminFlow
}

func newAdminFlowEnv() *adminFlowEnv {
	profiles := testingutil.NewMemoryProfileRepository()
	artworks := testingutil.NewMemoryArtworkRepository()
	exhibitions := testingutil.NewMemoryExhibitionRepository()
	enquiries := testingutil.NewMemoryEnquiryRepository()
	return &adminFlowEnv{
		profiles:    profiles,
		artworks:    artworks,
		exhibitions: exhibitions,
		enquiries:   enquiries,
		flow:        NewAdminFlow(profiles, artworks, exhibitions, enquiries),
	}
}

func (env *adminFlowEnv) seedRole(t *testing.T, role models.Role) *models.Profile {
	t.Helper()
	p := testingutil.BuildReviewer(role)
	require.NoError(t, env.profiles.Save(context.Background(), p))
	return p
}

func TestAdminCapabilities(t *testing.T) {
	t.Run("PlainUsersCannotReachDashboard", func(t *testing.T) {
		env := newAdminFlowEnv()
		user := testingutil.BuildUser()
		require.NoError(t, env.profiles.Save(context.Background(), user))

		_, err := env.flow.Dashboard(context.Background(), user.ID)
		assert.ErrorIs(t, err, ErrRoleNotAllowed)
	})

	t.Run("LeadReviewerReviewsArtistsNotArtworks", func(t *testing.T) {
		env := newAdminFlowEnv()
		lead := env.seedRole(t, models.RoleLeadReviewer)

		_, err := env.flow.ListPendingArtists(context.Background(), lead.ID)
		require.NoError(t, err)

		_, err = env.flow.ListPendingArtworks(context.Background(), lead.ID)
		assert.ErrorIs(t, err, ErrRoleNotAllowed)
	})

	t.Run("SeniorReviewerReviewsArtworksNotArtists", func(t *testing.T) {
		env := newAdminFlowEnv()
		senior := env.seedRole(t, models.RoleSeniorReviewer)

		_, err := env.flow.ListPendingArtworks(context.Background(), senior.ID)
		require.NoError(t, err)

		_, err = env.flow.ListPendingArtists(context.Background(), senior.ID)
		assert.ErrorIs(t, err, ErrRoleNotAllowed)
	})

	t.Run("OnlyAdminsManageSubAdmins", func(t *testing.T) {
		env := newAdminFlowEnv()
		lead := env.seedRole(t, models.RoleLeadReviewer)

		req := &dto.CreateSubAdminRequest{Name: "R", Email: "r@example.com", Password: "Password1!", Role: "lead_reviewer"}
		_, err := env.flow.CreateSubAdmin(context.Background(), req, lead.ID)
		assert.ErrorIs(t, err, ErrRoleNotAllowed)
	})
}

func TestReviewArtist(t *testing.T) {
	t.Run("ApprovePendingArtist", func(t *testing.T) {
		env := newAdminFlowEnv()
		lead := env.seedRole(t, models.RoleLeadReviewer)

		artist := testingutil.BuildArtist(300, true, false, "", "painting")
		artist.IsApproved = utils.ToPtr(false)
		require.NoError(t, env.profiles.Save(context.Background(), artist))

		result, err := env.flow.ReviewArtist(context.Background(), lead.ID, artist.ID, true)
		require.NoError(t, err)
		assert.True(t, result.IsApproved)

		stored, err := env.profiles.ByID(context.Background(), artist.ID)
		require.NoError(t, err)
		assert.True(t, utils.IsTrue(stored.IsApproved))
	})

	t.Run("RejectArtist", func(t *testing.T) {
		env := newAdminFlowEnv()
		admin := env.seedRole(t, models.RoleAdmin)

		artist := testingutil.BuildArtist(300, true, false, "", "painting")
		require.NoError(t, env.profiles.Save(context.Background(), artist))

		result, err := env.flow.ReviewArtist(context.Background(), admin.ID, artist.ID, false)
		require.NoError(t, err)
		assert.False(t, result.IsApproved)

		stored, err := env.profiles.ByID(context.Background(), artist.ID)
		require.NoError(t, err)
		assert.False(t, utils.IsTrue(stored.IsApproved))
	})

	t.Run("PlainUserIsNotAnArtist", func(t *testing.T) {
		env := newAdminFlowEnv()
		lead := env.seedRole(t, models.RoleLeadReviewer)

		user := testingutil.BuildUser()
		require.NoError(t, env.profiles.Save(context.Background(), user))

		_, err := env.flow.ReviewArtist(context.Background(), lead.ID, user.ID, true)
		assert.ErrorIs(t, err, ErrProfileNotFound)
	})
}

func TestReviewArtworkAndExhibition(t *testing.T) {
	t.Run("ApproveArtwork", func(t *testing.T) {
		env := newAdminFlowEnv()
		senior := env.seedRole(t, models.RoleSeniorReviewer)

		artwork := testingutil.BuildArtwork(1, "Sunset", 0)
		artwork.IsApproved = utils.ToPtr(false)
		require.NoError(t, env.artworks.Save(context.Background(), artwork))

		result, err := env.flow.ReviewArtwork(context.Background(), senior.ID, artwork.ID, true)
		require.NoError(t, err)
		assert.True(t, result.IsApproved)

		stored, err := env.artworks.ByID(context.Background(), artwork.ID)
		require.NoError(t, err)
		assert.True(t, utils.IsTrue(stored.IsApproved))
	})

	t.Run("ArtworkNotFound", func(t *testing.T) {
		env := newAdminFlowEnv()
		senior := env.seedRole(t, models.RoleSeniorReviewer)

		_, err := env.flow.ReviewArtwork(context.Background(), senior.ID, 999, true)
		assert.ErrorIs(t, err, ErrArtworkNotFound)
	})

	t.Run("ApproveExhibition", func(t *testing.T) {
		env := newAdminFlowEnv()
		senior := env.seedRole(t, models.RoleSeniorReviewer)

		exhibition := testingutil.BuildExhibition(1, "Winter Show")
		require.NoError(t, env.exhibitions.Save(context.Background(), exhibition))

		result, err := env.flow.ReviewExhibition(context.Background(), senior.ID, exhibition.ID, true)
		require.NoError(t, err)
		assert.True(t, result.IsApproved)
	})
}

func TestCreateSubAdmin(t *testing.T) {
	t.Run("CreatesReviewerAccount", func(t *testing.T) {
		env := newAdminFlowEnv()
		admin := env.seedRole(t, models.RoleAdmin)

		req := &dto.CreateSubAdminRequest{
			Name:     "New Reviewer",
			Email:    "reviewer@chitrakalakar.com",
			Password: "StrongPass1!",
			Role:     "senior_reviewer",
		}
		result, err := env.flow.CreateSubAdmin(context.Background(), req, admin.ID)
		require.NoError(t, err)
		assert.Equal(t, "senior_reviewer", result.Role)

		stored, err := env.profiles.ByEmail(context.Background(), req.Email)
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Equal(t, models.RoleSeniorReviewer, stored.Role)
		require.NotNil(t, stored.PasswordHash)
		assert.NotEqual(t, req.Password, *stored.PasswordHash)
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		env := newAdminFlowEnv()
		admin := env.seedRole(t, models.RoleAdmin)

		req := &dto.CreateSubAdminRequest{Name: "A", Email: "dup@example.com", Password: "StrongPass1!", Role: "lead_reviewer"}
		_, err := env.flow.CreateSubAdmin(context.Background(), req, admin.ID)
		require.NoError(t, err)

		_, err = env.flow.CreateSubAdmin(context.Background(), req, admin.ID)
		assert.ErrorIs(t, err, ErrEmailAlreadyExists)
	})

	t.Run("AdminRoleNotGrantable", func(t *testing.T) {
		env := newAdminFlowEnv()
		admin := env.seedRole(t, models.RoleAdmin)

		req := &dto.CreateSubAdminRequest{Name: "A", Email: "a@example.com", Password: "StrongPass1!", Role: "admin"}
		_, err := env.flow.CreateSubAdmin(context.Background(), req, admin.ID)
		assert.ErrorIs(t, err, ErrInvalidRole)
	})
}

func TestAdminDashboardCounts(t *testing.T) {
	env := newAdminFlowEnv()
	admin := env.seedRole(t, models.RoleAdmin)

	user := testingutil.BuildUser()
	require.NoError(t, env.profiles.Save(context.Background(), user))

	approved := testingutil.BuildArtist(300, true, false, "", "painting")
	require.NoError(t, env.profiles.Save(context.Background(), approved))
	pending := testingutil.BuildArtist(300, true, false, "", "painting")
	pending.IsApproved = utils.ToPtr(false)
	require.NoError(t, env.profiles.Save(context.Background(), pending))

	require.NoError(t, env.artworks.Save(context.Background(), testingutil.BuildArtwork(approved.ID, "One", 0)))

	matched := testingutil.BuildEnquiry(user.ID)
	matched.Status = models.EnquiryStatusMatched
	require.NoError(t, env.enquiries.Save(context.Background(), matched))

	result, err := env.flow.Dashboard(context.Background(), admin.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.TotalUsers)
	assert.Equal(t, int64(2), result.TotalArtists)
	assert.Equal(t, int64(1), result.PendingArtists)
	assert.Equal(t, int64(1), result.TotalArtworks)
	assert.Equal(t, int64(1), result.TotalEnquiries)
	assert.Equal(t, int64(1), result.MatchedEnquiries)
	assert.Equal(t, int64(0), result.ExpiredEnquiries)
}

func TestAdminEnquiries(t *testing.T) {
	t.Run("ListingCarriesRequesterDetails", func(t *testing.T) {
		env := newAdminFlowEnv()
		admin := env.seedRole(t, models.RoleAdmin)

		user := testingutil.BuildUser()
		require.NoError(t, env.profiles.Save(context.Background(), user))
		require.NoError(t, env.enquiries.Save(context.Background(), testingutil.BuildEnquiry(user.ID)))

		result, err := env.flow.ListEnquiries(context.Background(), admin.ID, 1, 20)
		require.NoError(t, err)
		assert.Equal(t, int64(1), result.Total)
		require.Len(t, result.Items, 1)
		assert.Equal(t, user.Name, result.Items[0].RequesterName)
		assert.Equal(t, user.Email, result.Items[0].RequesterEmail)
	})

	t.Run("ExportProducesWorkbook", func(t *testing.T) {
		env := newAdminFlowEnv()
		admin := env.seedRole(t, models.RoleAdmin)

		user := testingutil.BuildUser()
		require.NoError(t, env.profiles.Save(context.Background(), user))
		require.NoError(t, env.enquiries.Save(context.Background(), testingutil.BuildEnquiry(user.ID)))

		data, err := env.flow.ExportEnquiries(context.Background(), admin.ID)
		require.NoError(t, err)
		require.NotEmpty(t, data)

		workbook, err := excelize.OpenReader(bytes.NewReader(data))
		require.NoError(t, err)
		defer workbook.Close()

		sheet := workbook.GetSheetName(0)
		rows, err := workbook.GetRows(sheet)
		require.NoError(t, err)
		require.Len(t, rows, 2) // header + one enquiry
		assert.Equal(t, "ID", rows[0][0])
		assert.Equal(t, user.Name, rows[1][1])
	})

	t.Run("ReviewersCannotExport", func(t *testing.T) {
		env := newAdminFlowEnv()
		senior := env.seedRole(t, models.RoleSeniorReviewer)

		_, err := env.flow.ExportEnquiries(context.Background(), senior.ID)
		assert.ErrorIs(t, err, ErrRoleNotAllowed)
	})
}
