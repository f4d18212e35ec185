package aggregate

import "strconv"

const (
	ColorAll  = "skyblue"
	ColorUser = "orange"

	legendAll = "All Ratings"
)

// ChartConfig is the bar chart payload the client renders.
type ChartConfig struct {
	ChartType  string        `json:"chart_type"`
	Title      string        `json:"title"`
	XAxis      string        `json:"x_axis"`
	YAxis      string        `json:"y_axis"`
	Series     []ChartSeries `json:"series"`
	Legend     []LegendEntry `json:"legend,omitempty"`
	ShowLegend bool          `json:"show_legend"`
	ShowGrid   bool          `json:"show_grid"`
}

type ChartSeries struct {
	Name string       `json:"name"`
	Data []ChartPoint `json:"data"`
}

// ChartPoint is one bar; Color overrides the series colour.
type ChartPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Color string  `json:"color"`
}

type LegendEntry struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

// RatingChart draws the histogram with the user's bins highlighted.
func RatingChart(view RatingView, user string) ChartConfig {
	points := make([]ChartPoint, 0, len(view.Histogram))
	for _, b := range view.Histogram {
		color := ColorAll
		if view.UserRatings.Has(b.Rating) {
			color = ColorUser
		}
		points = append(points, ChartPoint{
			Label: strconv.Itoa(b.Rating),
			Value: float64(b.Count),
			Color: color,
		})
	}
	if user == "" {
		user = AllUsers
	}
	return ChartConfig{
		ChartType: "bar",
		Title:     "Wine Rating Distribution",
		XAxis:     "Rating",
		YAxis:     "Count",
		Series:    []ChartSeries{{Name: "Count", Data: points}},
		Legend: []LegendEntry{
			{Label: legendAll, Color: ColorAll},
			{Label: user, Color: ColorUser},
		},
		ShowLegend: true,
		ShowGrid:   true,
	}
}

// TasteChart draws the taste frequencies, most frequent first.
func TasteChart(view TasteView) ChartConfig {
	points := make([]ChartPoint, 0, len(view.Frequencies))
	for _, f := range view.Frequencies {
		points = append(points, ChartPoint{Label: f.Taste, Value: float64(f.Count), Color: ColorUser})
	}
	return ChartConfig{
		ChartType: "bar",
		Title:     "Tasting Notes Frequency",
		XAxis:     "Taste",
		YAxis:     "Count",
		Series:    []ChartSeries{{Name: "Count", Data: points}},
		ShowGrid:  true,
	}
}
