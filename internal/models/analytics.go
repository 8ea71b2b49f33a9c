package models

// DailyViews is one day of the views time series.
type DailyViews struct {
	Date  string `json:"date"` // YYYY-MM-DD
	Views int    `json:"views"`
}

// TopContent ranks a project by synthetic view count.
type TopContent struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Views int    `json:"views"`
}

// AnalyticsData is the dashboard metrics payload. The numbers are
// derived from the user's real project count scaled by randomness;
// they are demo figures, not measurements.
type AnalyticsData struct {
	Views                 int          `json:"views"`
	CompletionRate        int          `json:"completionRate"`
	AverageEngagement     int          `json:"averageEngagement"`
	InteractionRate       int          `json:"interactionRate"`
	DailyViewsData        []DailyViews `json:"dailyViewsData"`
	TopPerformingContent  []TopContent `json:"topPerformingContent"`
}
