// Package aggregate turns fetched records into the rating and taste views.
// Everything here is pure: no I/O, no shared state.
package aggregate

import (
	"net/url"
	"strings"

	"github.com/cellar-club/tasting/internal/models"
)

// Sentinels offered in the selectors for "no filter".
const (
	AllWines = "All Wines"
	AllUsers = "All Users"
)

// Selection is the filter tuple a view is built for.
type Selection struct {
	Wine     string          `json:"wine"`
	User     string          `json:"user"`
	Category models.Category `json:"category"`
}

// NewSelection fills blanks with the sentinels and defaults to the rating view.
func NewSelection(wine, user string, category models.Category) Selection {
	sel := Selection{
		Wine:     strings.TrimSpace(wine),
		User:     strings.TrimSpace(user),
		Category: category,
	}
	if sel.Wine == "" {
		sel.Wine = AllWines
	}
	if sel.User == "" {
		sel.User = AllUsers
	}
	if sel.Category == "" {
		sel.Category = models.CategoryRating
	}
	return sel
}

// AllWines reports whether the selection spans every wine.
func (s Selection) AllWines() bool { return s.Wine == "" || s.Wine == AllWines }

// AllUsers reports whether no user is singled out.
func (s Selection) AllUsers() bool { return s.User == "" || s.User == AllUsers }

// Key identifies the selection in memo stores. Distinct selections never share a key.
func (s Selection) Key() string {
	v := url.Values{}
	v.Set("wine", s.Wine)
	v.Set("user", s.User)
	v.Set("category", string(s.Category))
	return v.Encode()
}
