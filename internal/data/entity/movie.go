package entity

type Movie struct {
	Base
	Title    string `db:"title"`
	Synopsis string `db:"synopsis"`
	Poster   string `db:"poster"`
	Year     int    `db:"year"`
	Genre    string `db:"genre"`
	Duration string `db:"duration"` // display string, e.g. "2h 35m"
}
