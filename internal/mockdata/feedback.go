package mockdata

type Feedback struct {
	ID       int    `json:"id"`
	Date     string `json:"date"`
	Feedback string `json:"feedback"`
	Rating   int    `json:"rating"`
}

var recentFeedback = []Feedback{
	{ID: 1, Date: "2024-01-15", Feedback: "Excellent work on the quarterly report. Shows great attention to detail.", Rating: 5},
	{ID: 2, Date: "2024-01-01", Feedback: "Good collaboration skills and team player attitude.", Rating: 4},
	{ID: 3, Date: "2023-12-15", Feedback: "Needs improvement in time management for project deadlines.", Rating: 3},
}

// RecentFeedback returns the same three reviews for everyone, newest first.
func RecentFeedback() []Feedback {
	return append([]Feedback(nil), recentFeedback...)
}
