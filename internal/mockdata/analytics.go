package mockdata

import (
	"math"
	"strconv"
	"time"

	"github.com/MrSnakeDoc/staffdash/internal/domain"
)

type DepartmentStats struct {
	Department    string  `json:"department"`
	AverageRating float64 `json:"averageRating"`
	EmployeeCount int     `json:"employeeCount"`
}

type RatingBucket struct {
	Rating int    `json:"rating"`
	Label  string `json:"label"`
	Count  int    `json:"count"`
}

type TrendPoint struct {
	Month     string `json:"month"`
	Bookmarks int    `json:"bookmarks"`
}

type Totals struct {
	TotalEmployees int     `json:"totalEmployees"`
	AverageRating  float64 `json:"averageRating"`
	TotalBookmarks int     `json:"totalBookmarks"`
	TopPerformers  int     `json:"topPerformers"`
}

type Analytics struct {
	Totals         Totals            `json:"totals"`
	Departments    []DepartmentStats `json:"departments"`
	Distribution   []RatingBucket    `json:"distribution"`
	BookmarkTrend  []TrendPoint      `json:"bookmarkTrend"`
	BestDepartment *DepartmentStats  `json:"bestDepartment"`
}

// trendShape is the relative bookmark curve over the last six months, ending
// at 1.0 for the current month.
var trendShape = [6]float64{12.0 / 30, 19.0 / 30, 15.0 / 30, 25.0 / 30, 22.0 / 30, 1}

// ComputeAnalytics aggregates the roster. The bookmark trend is synthetic and
// ends at bookmarkCount in the month of now.
func ComputeAnalytics(records []domain.Employee, bookmarkCount int, now time.Time) Analytics {
	type acc struct{ sum, n int }
	byDept := make(map[string]*acc, len(domain.Departments))
	byRating := make(map[int]int, domain.MaxRating)
	total := 0

	for _, e := range records {
		a, ok := byDept[e.Department]
		if !ok {
			a = &acc{}
			byDept[e.Department] = a
		}
		a.sum += e.Rating
		a.n++
		byRating[e.Rating]++
		total += e.Rating
	}

	out := Analytics{
		Totals: Totals{
			TotalEmployees: len(records),
			TotalBookmarks: bookmarkCount,
			TopPerformers:  byRating[domain.MaxRating],
		},
		Departments:   make([]DepartmentStats, 0, len(domain.Departments)),
		Distribution:  make([]RatingBucket, 0, domain.MaxRating),
		BookmarkTrend: bookmarkTrend(bookmarkCount, now),
	}
	if len(records) > 0 {
		out.Totals.AverageRating = round1(float64(total) / float64(len(records)))
	}

	for _, d := range domain.Departments {
		stats := DepartmentStats{Department: d}
		if a := byDept[d]; a != nil {
			stats.EmployeeCount = a.n
			stats.AverageRating = round1(float64(a.sum) / float64(a.n))
		}
		out.Departments = append(out.Departments, stats)

		if stats.EmployeeCount > 0 && (out.BestDepartment == nil || stats.AverageRating > out.BestDepartment.AverageRating) {
			best := stats
			out.BestDepartment = &best
		}
	}

	for r := domain.MaxRating; r >= domain.MinRating; r-- {
		label := "Stars"
		if r == 1 {
			label = "Star"
		}
		out.Distribution = append(out.Distribution, RatingBucket{
			Rating: r,
			Label:  strconv.Itoa(r) + " " + label,
			Count:  byRating[r],
		})
	}

	return out
}

func bookmarkTrend(current int, now time.Time) []TrendPoint {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(len(trendShape) - 1), 0)

	points := make([]TrendPoint, 0, len(trendShape))
	for i, f := range trendShape {
		points = append(points, TrendPoint{
			Month:     first.AddDate(0, i, 0).Format("Jan"),
			Bookmarks: int(math.Round(f * float64(current))),
		})
	}
	return points
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
