package aggregate

import (
	"sort"

	"github.com/cellar-club/tasting/internal/models"
)

// Partitioned splits records by category. Rows with any other category end
// up in Unknown and take no part in either view.
type Partitioned struct {
	Ratings []models.Record
	Tastes  []models.Record
	Unknown []models.Record
}

func Partition(records []models.Record) Partitioned {
	var p Partitioned
	for _, r := range records {
		switch {
		case !r.Category.Known():
			p.Unknown = append(p.Unknown, r)
		case r.Category == models.CategoryRating:
			p.Ratings = append(p.Ratings, r)
		default:
			p.Tastes = append(p.Tastes, r)
		}
	}
	return p
}

// FilterWine keeps the records for wine. AllWines and "" keep everything.
func FilterWine(records []models.Record, wine string) []models.Record {
	if wine == "" || wine == AllWines {
		return records
	}
	out := make([]models.Record, 0, len(records))
	for _, r := range records {
		if r.Wine == wine {
			out = append(out, r)
		}
	}
	return out
}

// FilterUser keeps the records written by user. AllUsers and "" keep everything.
func FilterUser(records []models.Record, user string) []models.Record {
	if user == "" || user == AllUsers {
		return records
	}
	out := make([]models.Record, 0, len(records))
	for _, r := range records {
		if r.Name == user {
			out = append(out, r)
		}
	}
	return out
}

// Bin is one histogram bar.
type Bin struct {
	Rating int `json:"rating"`
	Count  int `json:"count"`
}

// Histogram always holds one bin per rating from MinRating to MaxRating.
type Histogram []Bin

func newHistogram() Histogram {
	h := make(Histogram, 0, models.MaxRating-models.MinRating+1)
	for r := models.MinRating; r <= models.MaxRating; r++ {
		h = append(h, Bin{Rating: r})
	}
	return h
}

// Count returns the count for rating, 0 outside the scale.
func (h Histogram) Count(rating int) int {
	i := rating - models.MinRating
	if i < 0 || i >= len(h) {
		return 0
	}
	return h[i].Count
}

func (h Histogram) Total() int {
	total := 0
	for _, b := range h {
		total += b.Count
	}
	return total
}

// RatingHistogram counts the present ratings of Rating records for wine.
func RatingHistogram(records []models.Record, wine string) Histogram {
	h := newHistogram()
	for _, r := range FilterWine(records, wine) {
		if r.Category != models.CategoryRating || !r.HasRating() {
			continue
		}
		i := r.RatingValue() - models.MinRating
		if i >= 0 && i < len(h) {
			h[i].Count++
		}
	}
	return h
}

// RatingSet is the set of rating values one user gave.
type RatingSet map[int]struct{}

func (s RatingSet) Has(rating int) bool {
	_, ok := s[rating]
	return ok
}

// Sorted lists the set ascending.
func (s RatingSet) Sorted() []int {
	out := make([]int, 0, len(s))
	for r := range s {
		out = append(out, r)
	}
	sort.Ints(out)
	return out
}

// UserRatingSet collects the ratings user gave wine. AllUsers yields an empty set.
func UserRatingSet(records []models.Record, wine, user string) RatingSet {
	set := RatingSet{}
	if user == "" || user == AllUsers {
		return set
	}
	for _, r := range FilterWine(records, wine) {
		if r.Category == models.CategoryRating && r.Name == user && r.HasRating() {
			set[r.RatingValue()] = struct{}{}
		}
	}
	return set
}

// Mean averages the present ratings. ok is false when there are none.
func Mean(records []models.Record) (mean float64, ok bool) {
	sum, n := 0, 0
	for _, r := range records {
		if !r.HasRating() {
			continue
		}
		sum += r.RatingValue()
		n++
	}
	if n == 0 {
		return 0, false
	}
	return float64(sum) / float64(n), true
}

// RatingValues lists present ratings in record order.
func RatingValues(records []models.Record) []int {
	out := make([]int, 0, len(records))
	for _, r := range records {
		if r.HasRating() {
			out = append(out, r.RatingValue())
		}
	}
	return out
}

// TasteCount is one row of the taste frequency table.
type TasteCount struct {
	Taste string `json:"taste"`
	Count int    `json:"count"`
}

// TasteFrequency counts Taste records for wine by exact note text, most
// frequent first. Ties keep first-seen order.
func TasteFrequency(records []models.Record, wine string) []TasteCount {
	index := map[string]int{}
	out := []TasteCount{}
	for _, r := range FilterWine(records, wine) {
		if r.Category != models.CategoryTaste {
			continue
		}
		if i, ok := index[r.Taste]; ok {
			out[i].Count++
			continue
		}
		index[r.Taste] = len(out)
		out = append(out, TasteCount{Taste: r.Taste, Count: 1})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}

// Users lists distinct non-empty names, sorted.
func Users(records []models.Record) []string {
	return uniqueSorted(records, func(r models.Record) string { return r.Name })
}

// Wines lists distinct non-empty wines, sorted.
func Wines(records []models.Record) []string {
	return uniqueSorted(records, func(r models.Record) string { return r.Wine })
}

func uniqueSorted(records []models.Record, field func(models.Record) string) []string {
	seen := map[string]struct{}{}
	out := []string{}
	for _, r := range records {
		v := field(r)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
