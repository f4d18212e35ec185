package aggregate

import "github.com/cellar-club/tasting/internal/models"

// RatingView is the rating section for one selection. Empty is set when no
// Rating record matches the wine.
type RatingView struct {
	Selection Selection `json:"selection"`
	Empty     bool      `json:"empty"`
	Histogram Histogram `json:"histogram"`

	// UserRatings is empty unless a user is selected.
	UserRatings    RatingSet `json:"-"`
	UserHasRatings bool      `json:"user_has_ratings"`
	UserMean       *float64  `json:"user_mean,omitempty"`
	OverallMean    *float64  `json:"overall_mean,omitempty"`
	Values         []int     `json:"values"`
}

// BuildRatingView builds the rating section. It never fails; missing data
// shows up as Empty or as nil means.
func BuildRatingView(records []models.Record, sel Selection) RatingView {
	ratings := FilterWine(Partition(records).Ratings, sel.Wine)
	view := RatingView{
		Selection:   sel,
		Histogram:   RatingHistogram(ratings, AllWines),
		UserRatings: RatingSet{},
		Values:      RatingValues(ratings),
	}
	if len(ratings) == 0 {
		view.Empty = true
		return view
	}

	if m, ok := Mean(ratings); ok {
		view.OverallMean = &m
	}
	if !sel.AllUsers() {
		mine := FilterUser(ratings, sel.User)
		view.UserRatings = UserRatingSet(mine, AllWines, sel.User)
		if m, ok := Mean(mine); ok {
			view.UserMean = &m
			view.UserHasRatings = true
		}
	}
	return view
}

// TasteView is the taste section for one selection.
type TasteView struct {
	Selection   Selection    `json:"selection"`
	Empty       bool         `json:"empty"`
	Frequencies []TasteCount `json:"frequencies"`
	Total       int          `json:"total"`
}

func BuildTasteView(records []models.Record, sel Selection) TasteView {
	freq := TasteFrequency(Partition(records).Tastes, sel.Wine)
	total := 0
	for _, f := range freq {
		total += f.Count
	}
	return TasteView{
		Selection:   sel,
		Empty:       len(freq) == 0,
		Frequencies: freq,
		Total:       total,
	}
}
