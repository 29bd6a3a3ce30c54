package utils

import (
	"time"
)

// Enquiry matching constants
const (
	// MaxMatchedArtists is the maximum number of artists matched per enquiry
	MaxMatchedArtists = 3

	// RevealQuota is the maximum number of contacts a requester may unlock per enquiry
	RevealQuota = 3

	// EnquiryWindow is the trailing window in which a requester may hold only one enquiry
	EnquiryWindow = 30 * 24 * time.Hour

	// EnquiryTTL is the lifetime of an enquiry before it expires
	EnquiryTTL = 30 * 24 * time.Hour

	// HiddenPhoneSentinel replaces the phone field of unrevealed artist contacts
	HiddenPhoneSentinel = "***HIDDEN***"
)

// Artwork constants
const (
	// SampleArtworkLimit is the number of sample artworks shown per matched artist
	SampleArtworkLimit = 3
)

// CORS and security constants
const (
	// CORSMaxAge is the maximum age for CORS preflight requests (24 hours)
	CORSMaxAge = 86400
)

// StatsCacheTTL is how long public platform statistics stay cached
const StatsCacheTTL = 5 * time.Minute
