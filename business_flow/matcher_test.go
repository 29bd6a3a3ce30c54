package businessflow

import (
	"testing"

	"github.com/chitrakalakar/backend/models"
	testingutil "github.com/chitrakalakar/backend/testing"
	"github.com/chitrakalakar/backend/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBudgetBandFor(t *testing.T) {
	tests := []struct {
		name        string
		classType   string
		budgetRange string
		wantBand    BudgetBand
		wantOK      bool
	}{
		{"OnlineLowBand", models.ClassModeOnline, "250-350", BudgetBand{Min: 250, Max: 350}, true},
		{"OnlineHighBand", models.ClassModeOnline, "350-500", BudgetBand{Min: 350, Max: 500}, true},
		{"OnlineUnknownBand", models.ClassModeOnline, "500-1000", BudgetBand{}, false},
		{"OfflineLowBand", models.ClassModeOffline, "250-350", BudgetBand{Min: 250, Max: 350}, true},
		{"OfflineMidBand", models.ClassModeOffline, "350-500", BudgetBand{Min: 350, Max: 500}, true},
		{"OfflineHighBand", models.ClassModeOffline, "500-1000", BudgetBand{Min: 500, Max: 1000}, true},
		{"UnrecognizedLabel", models.ClassModeOnline, "flexible", BudgetBand{}, false},
		{"UnknownClassType", "hybrid", "250-350", BudgetBand{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			band, ok := BudgetBandFor(tt.classType, tt.budgetRange)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantBand, band)
		})
	}
}

func TestEligibleArtist(t *testing.T) {
	t.Run("ApprovedActiveArtistWithRate", func(t *testing.T) {
		p := testingutil.BuildArtist(300, true, false, "", "painting")
		assert.True(t, EligibleArtist(p))
	})

	t.Run("PlainUserNotEligible", func(t *testing.T) {
		assert.False(t, EligibleArtist(testingutil.BuildUser()))
	})

	t.Run("UnapprovedArtistNotEligible", func(t *testing.T) {
		p := testingutil.BuildArtist(300, true, false, "", "painting")
		p.IsApproved = utils.ToPtr(false)
		assert.False(t, EligibleArtist(p))
	})

	t.Run("InactiveArtistNotEligible", func(t *testing.T) {
		p := testingutil.BuildArtist(300, true, false, "", "painting")
		p.IsActive = utils.ToPtr(false)
		assert.False(t, EligibleArtist(p))
	})

	t.Run("NoTeachingRateNotEligible", func(t *testing.T) {
		p := testingutil.BuildArtist(300, true, false, "", "painting")
		p.TeachingRate = nil
		assert.False(t, EligibleArtist(p))
	})

	t.Run("NilProfileNotEligible", func(t *testing.T) {
		assert.False(t, EligibleArtist(nil))
	})
}

func TestMatchArtistsRankingAndCap(t *testing.T) {
	enquiry := &models.Enquiry{
		ArtType:     "painting",
		BudgetRange: "350-500",
		ClassType:   models.ClassModeOnline,
	}

	rates := []float64{300, 380, 420, 480, 600}
	candidates := make([]*models.Profile, 0, len(rates))
	for i, rate := range rates {
		p := testingutil.BuildArtist(rate, true, false, "", "painting")
		p.ID = uint(i + 1)
		candidates = append(candidates, p)
	}

	matched := MatchArtists(enquiry, candidates)
	require.Len(t, matched, 3)
	assert.Equal(t, 380.0, *matched[0].TeachingRate)
	assert.Equal(t, 420.0, *matched[1].TeachingRate)
	assert.Equal(t, 480.0, *matched[2].TeachingRate)
}

func TestMatchArtistsBandBoundsInclusive(t *testing.T) {
	enquiry := &models.Enquiry{
		ArtType:     "painting",
		BudgetRange: "250-350",
		ClassType:   models.ClassModeOnline,
	}

	atMin := testingutil.BuildArtist(250, true, false, "", "painting")
	atMin.ID = 1
	atMax := testingutil.BuildArtist(350, true, false, "", "painting")
	atMax.ID = 2
	below := testingutil.BuildArtist(249.99, true, false, "", "painting")
	below.ID = 3
	above := testingutil.BuildArtist(350.01, true, false, "", "painting")
	above.ID = 4

	matched := MatchArtists(enquiry, []*models.Profile{atMin, atMax, below, above})
	require.Len(t, matched, 2)
	assert.Equal(t, uint(1), matched[0].ID)
	assert.Equal(t, uint(2), matched[1].ID)
}

func TestMatchArtistsUnrecognizedBandSkipsRateFilter(t *testing.T) {
	enquiry := &models.Enquiry{
		ArtType:     "painting",
		BudgetRange: "whatever",
		ClassType:   models.ClassModeOnline,
	}

	cheap := testingutil.BuildArtist(100, true, false, "", "painting")
	cheap.ID = 1
	expensive := testingutil.BuildArtist(5000, true, false, "", "painting")
	expensive.ID = 2

	matched := MatchArtists(enquiry, []*models.Profile{expensive, cheap})
	require.Len(t, matched, 2)
	assert.Equal(t, uint(1), matched[0].ID)
	assert.Equal(t, uint(2), matched[1].ID)
}

func TestMatchArtistsTieBreakByID(t *testing.T) {
	enquiry := &models.Enquiry{
		ArtType:     "painting",
		BudgetRange: "250-350",
		ClassType:   models.ClassModeOnline,
	}

	second := testingutil.BuildArtist(300, true, false, "", "painting")
	second.ID = 20
	first := testingutil.BuildArtist(300, true, false, "", "painting")
	first.ID = 10

	matched := MatchArtists(enquiry, []*models.Profile{second, first})
	require.Len(t, matched, 2)
	assert.Equal(t, uint(10), matched[0].ID)
	assert.Equal(t, uint(20), matched[1].ID)
}

func TestMatchArtistsOfflineLocationSubstring(t *testing.T) {
	enquiry := &models.Enquiry{
		ArtType:     "painting",
		BudgetRange: "250-350",
		ClassType:   models.ClassModeOffline,
		Location:    "mumbai",
	}

	inCity := testingutil.BuildArtist(300, false, true, "Andheri, Mumbai", "painting")
	inCity.ID = 1
	otherCity := testingutil.BuildArtist(300, false, true, "Delhi", "painting")
	otherCity.ID = 2
	noLocation := testingutil.BuildArtist(300, false, true, "", "painting")
	noLocation.ID = 3
	onlineOnly := testingutil.BuildArtist(300, true, false, "Mumbai", "painting")
	onlineOnly.ID = 4

	matched := MatchArtists(enquiry, []*models.Profile{inCity, otherCity, noLocation, onlineOnly})
	require.Len(t, matched, 1)
	assert.Equal(t, uint(1), matched[0].ID)
}

func TestMatchArtistsOfflineWithoutLocationHint(t *testing.T) {
	enquiry := &models.Enquiry{
		ArtType:     "painting",
		BudgetRange: "250-350",
		ClassType:   models.ClassModeOffline,
	}

	inCity := testingutil.BuildArtist(300, false, true, "Andheri, Mumbai", "painting")
	inCity.ID = 1
	otherCity := testingutil.BuildArtist(310, false, true, "Delhi", "painting")
	otherCity.ID = 2
	noLocation := testingutil.BuildArtist(320, false, true, "", "painting")
	noLocation.ID = 3
	onlineOnly := testingutil.BuildArtist(300, true, false, "Mumbai", "painting")
	onlineOnly.ID = 4

	// No hint means no location facet: every offline teacher stays in
	matched := MatchArtists(enquiry, []*models.Profile{inCity, otherCity, noLocation, onlineOnly})
	require.Len(t, matched, 3)
	assert.Equal(t, uint(1), matched[0].ID)
	assert.Equal(t, uint(2), matched[1].ID)
	assert.Equal(t, uint(3), matched[2].ID)
}

func TestMatchArtistsCategoryFacet(t *testing.T) {
	enquiry := &models.Enquiry{
		ArtType:     "sculpture",
		BudgetRange: "250-350",
		ClassType:   models.ClassModeOnline,
	}

	sculptor := testingutil.BuildArtist(300, true, false, "", "painting", "sculpture")
	sculptor.ID = 1
	painter := testingutil.BuildArtist(300, true, false, "", "painting")
	painter.ID = 2

	matched := MatchArtists(enquiry, []*models.Profile{sculptor, painter})
	require.Len(t, matched, 1)
	assert.Equal(t, uint(1), matched[0].ID)
}
