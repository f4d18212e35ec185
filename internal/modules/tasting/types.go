package tasting

import (
	"time"

	"github.com/cellar-club/tasting/internal/aggregate"
	"github.com/cellar-club/tasting/internal/models"
)

// DefaultRating is used when a submission leaves the rating out.
const DefaultRating = 5

// Empty-state messages shown in place of a chart or summary.
const (
	MsgNoData          = "No data available yet. Be the first to add your ratings!"
	MsgNoRatings       = "No ratings for the selected wine."
	MsgNoPersonalFmt   = "No personal rating data found for %s on this wine."
	MsgNoTastingNotes  = "No tasting notes available for the selected wine."
	msgThankYouFmt     = "Thank you, %s! Your inputs for %s have been recorded. 🍷"
	comparisonTitleFmt = "Comparison Summary for %s"
	readTitleFmt       = "Summary of %s"
)

type SubmitDTO struct {
	Name   string `json:"name"   form:"name"`
	Wine   string `json:"wine"   form:"wine"`
	Rating *int   `json:"rating" form:"rating"`
	Notes  string `json:"notes"  form:"notes"`
}

type SubmitResult struct {
	Message string          `json:"message"`
	Records []models.Record `json:"records"`
}

type ViewQuery struct {
	User       string `form:"user"       json:"user"`
	Wine       string `form:"wine"       json:"wine"`
	Category   string `form:"category"   json:"category"`
	Regenerate bool   `form:"regenerate" json:"regenerate"`
}

type ViewResult struct {
	Users             []string            `json:"users"`
	Wines             []string            `json:"wines"`
	Selection         aggregate.Selection `json:"selection"`
	Empty             bool                `json:"empty"`
	Message           string              `json:"message,omitempty"`
	UnknownCategories int                 `json:"unknown_categories"`
	Rating            *RatingSection      `json:"rating,omitempty"`
	Taste             *TasteSection       `json:"taste,omitempty"`
}

type RatingSection struct {
	Message     string                 `json:"message,omitempty"`
	Chart       *aggregate.ChartConfig `json:"chart,omitempty"`
	Histogram   aggregate.Histogram    `json:"histogram"`
	OverallMean *float64               `json:"overall_mean,omitempty"`
	UserMean    *float64               `json:"user_mean,omitempty"`

	// PersonalMessage replaces Comparison when the user has no rating for the wine.
	PersonalMessage string   `json:"personal_message,omitempty"`
	Comparison      *Summary `json:"comparison,omitempty"`
	Read            *Summary `json:"read,omitempty"`
}

type Summary struct {
	Title     string    `json:"title"`
	Text      string    `json:"text"`
	HTML      string    `json:"html"`
	UpdatedAt time.Time `json:"updated_at"`
}

type TasteSection struct {
	Message     string                 `json:"message,omitempty"`
	Chart       *aggregate.ChartConfig `json:"chart,omitempty"`
	Frequencies []aggregate.TasteCount `json:"frequencies"`
}
