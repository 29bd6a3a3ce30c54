package businessflow

import (
	"sort"
	"strings"

	"github.com/chitrakalakar/backend/models"
	"github.com/chitrakalakar/backend/utils"
)

// BudgetBand is an inclusive teaching-rate band derived from a budget label
type BudgetBand struct {
	Min float64
	Max float64
}

var onlineBudgetBands = map[string]BudgetBand{
	"250-350": {Min: 250, Max: 350},
	"350-500": {Min: 350, Max: 500},
}

var offlineBudgetBands = map[string]BudgetBand{
	"250-350":  {Min: 250, Max: 350},
	"350-500":  {Min: 350, Max: 500},
	"500-1000": {Min: 500, Max: 1000},
}

// BudgetBandFor maps a class type and budget label to a rate band. Unrecognized
// labels carry no band, which means no rate filtering for that enquiry.
func BudgetBandFor(classType, budgetRange string) (BudgetBand, bool) {
	switch classType {
	case models.ClassModeOnline:
		band, ok := onlineBudgetBands[budgetRange]
		return band, ok
	case models.ClassModeOffline:
		band, ok := offlineBudgetBands[budgetRange]
		return band, ok
	}
	return BudgetBand{}, false
}

// EligibleArtist reports whether the profile can appear in any match result:
// an approved, active artist with a published teaching rate.
func EligibleArtist(p *models.Profile) bool {
	return p != nil &&
		p.Role == models.RoleArtist &&
		utils.IsTrue(p.IsApproved) &&
		utils.IsTrue(p.IsActive) &&
		p.TeachingRate != nil
}

// matchesClassMode checks the enquiry's delivery mode against the artist.
// When an offline enquiry carries a location hint, the artist's location must
// contain it case-insensitively; without a hint any offline teacher matches.
func matchesClassMode(p *models.Profile, classType, location string) bool {
	switch classType {
	case models.ClassModeOnline:
		return utils.IsTrue(p.TeachesOnline)
	case models.ClassModeOffline:
		if !utils.IsTrue(p.TeachesOffline) {
			return false
		}
		if location == "" {
			return true
		}
		if p.Location == nil {
			return false
		}
		return strings.Contains(strings.ToLower(*p.Location), strings.ToLower(location))
	}
	return false
}

// MatchArtists filters and ranks candidate profiles for an enquiry. The result
// is ordered by ascending teaching rate (ties broken by ID) and capped at
// MaxMatchedArtists. Candidates failing any facet are dropped, never demoted.
func MatchArtists(enquiry *models.Enquiry, candidates []*models.Profile) []*models.Profile {
	band, hasBand := BudgetBandFor(enquiry.ClassType, enquiry.BudgetRange)

	var matched []*models.Profile
	for _, p := range candidates {
		if !EligibleArtist(p) {
			continue
		}
		if !matchesClassMode(p, enquiry.ClassType, enquiry.Location) {
			continue
		}
		if !p.HasCategory(enquiry.ArtType) {
			continue
		}
		if hasBand {
			rate := *p.TeachingRate
			if rate < band.Min || rate > band.Max {
				continue
			}
		}
		matched = append(matched, p)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		if *matched[i].TeachingRate != *matched[j].TeachingRate {
			return *matched[i].TeachingRate < *matched[j].TeachingRate
		}
		return matched[i].ID < matched[j].ID
	})

	if len(matched) > utils.MaxMatchedArtists {
		matched = matched[:utils.MaxMatchedArtists]
	}
	return matched
}
