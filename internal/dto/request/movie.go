package request

// MovieRequest carries the admin add/edit form fields. Year must parse as
// an integer before it gets here; the range guards against absurd values.
type MovieRequest struct {
	Title    string `json:"title" validate:"required,min=1,max=200"`
	Genre    string `json:"genre" validate:"max=50"`
	Poster   string `json:"poster" validate:"max=300"`
	Year     int    `json:"year" validate:"required,min=1888,max=2100"`
	Duration string `json:"duration" validate:"max=20"`
	Synopsis string `json:"synopsis"`
}
