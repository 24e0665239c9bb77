package response

type ToggleWatchlistResponse struct {
	// State is "added" or "removed"
	State      string `json:"state"`
	MovieTitle string `json:"movie_title"`
}

type LandingResponse struct {
	App    string   `json:"app"`
	Genres []string `json:"genres"`
}
