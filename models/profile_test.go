package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidRole(t *testing.T) {
	for _, role := range []Role{RoleUser, RoleArtist, RoleLeadReviewer, RoleSeniorReviewer, RoleAdmin} {
		assert.True(t, ValidRole(role), string(role))
	}
	assert.False(t, ValidRole("superuser"))
	assert.False(t, ValidRole(""))
}

func TestRoleCapabilities(t *testing.T) {
	tests := []struct {
		role            Role
		reviewsArtists  bool
		reviewsArtworks bool
		administers     bool
	}{
		{RoleUser, false, false, false},
		{RoleArtist, false, false, false},
		{RoleLeadReviewer, true, false, false},
		{RoleSeniorReviewer, false, true, false},
		{RoleAdmin, true, true, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			assert.Equal(t, tt.reviewsArtists, tt.role.CanReviewArtists())
			assert.Equal(t, tt.reviewsArtworks, tt.role.CanReviewArtworks())
			assert.Equal(t, tt.administers, tt.role.CanAdminister())
		})
	}
}

func TestHasCategory(t *testing.T) {
	p := &Profile{Categories: []string{"painting", "sketching"}}
	assert.True(t, p.HasCategory("painting"))
	assert.False(t, p.HasCategory("sculpture"))
	assert.False(t, (&Profile{}).HasCategory("painting"))
}
