package models

import "strconv"

// Category tells a rating row apart from a tasting-note row.
type Category string

const (
	CategoryRating Category = "Rating"
	CategoryTaste  Category = "Taste"
)

// Known reports whether c is one of the two categories the views understand.
func (c Category) Known() bool {
	return c == CategoryRating || c == CategoryTaste
}

// Column names of the record sheet, in storage order.
const (
	ColumnName     = "Name"
	ColumnWine     = "Wine"
	ColumnRating   = "Rating"
	ColumnCategory = "Category"
	ColumnTaste    = "Taste"
)

// Header is the expected first row of the record sheet.
var Header = []string{ColumnName, ColumnWine, ColumnRating, ColumnCategory, ColumnTaste}

const (
	MinRating = 1
	MaxRating = 10
)

// Record is one persisted row: either a rating or a single tasting note.
type Record struct {
	Name     string   `json:"name"`
	Wine     string   `json:"wine"`
	Rating   *int     `json:"rating"`
	Category Category `json:"category"`
	Taste    string   `json:"taste"`
}

// NewRatingRecord builds a Rating record. The rating is stored as given;
// range checks belong to the caller.
func NewRatingRecord(name, wine string, rating int) Record {
	r := rating
	return Record{Name: name, Wine: wine, Rating: &r, Category: CategoryRating}
}

// NewTasteRecord builds a Taste record carrying one tasting note.
func NewTasteRecord(name, wine, taste string) Record {
	return Record{Name: name, Wine: wine, Category: CategoryTaste, Taste: taste}
}

// HasRating reports whether the record carries a rating value.
func (r Record) HasRating() bool { return r.Rating != nil }

// RatingValue returns the rating, or 0 when absent.
func (r Record) RatingValue() int {
	if r.Rating == nil {
		return 0
	}
	return *r.Rating
}

// Row renders the record as sheet cells in Header order.
func (r Record) Row() []string {
	rating := ""
	if r.Rating != nil {
		rating = strconv.Itoa(*r.Rating)
	}
	return []string{r.Name, r.Wine, rating, string(r.Category), r.Taste}
}
