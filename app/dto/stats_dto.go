package dto

// PlatformStatsResponse carries the public landing-page counters
type PlatformStatsResponse struct {
	Message          string `json:"message"`
	TotalArtists     int64  `json:"total_artists"`
	TotalArtworks    int64  `json:"total_artworks"`
	TotalExhibitions int64  `json:"total_exhibitions"`
	TotalEnquiries   int64  `json:"total_enquiries"`
}
