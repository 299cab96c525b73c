package analytics

import (
	"math"
	"sort"
	"strings"

	"github.com/almanarhr/recruit-api/internal/models"
)

// PageSize is the fixed page length for ranking and comparison views.
const PageSize = 10

// TopPerformers is the size of the multi-axis comparison selection.
const TopPerformers = 3

// ViewState is the serializable UI state driving the comparison table.
type ViewState struct {
	SortKey       string `json:"sortKey"`
	SortDirection string `json:"sortDirection"` // "asc" or "desc"; empty means desc
	PageIndex     int    `json:"pageIndex"`     // zero-based
	SearchTerm    string `json:"searchTerm"`
}

// ComparisonRow is one worker's row in the ranking/comparison views.
type ComparisonRow struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Views     int64  `json:"views"`
	Calls     int64  `json:"calls"`
	Shares    int64  `json:"shares"`
	Whatsapp  int64  `json:"whatsapp"`
	Downloads int64  `json:"downloads"`
	Total     int64  `json:"total"`

	// EngagementRate is (calls+shares+whatsapp+downloads)/views*100, rounded
	// to one decimal. Zero views always yields 0.0 by policy, even when
	// non-view interactions exist.
	EngagementRate float64 `json:"engagementRate"`
}

// Page is one page of rows plus enough context to render a pager.
type Page struct {
	Rows      []ComparisonRow `json:"rows"`
	TotalRows int             `json:"totalRows"`
	PageIndex int             `json:"pageIndex"`
	PageCount int             `json:"pageCount"`
}

// Series is one worker's axes in the top-N multi-axis comparison,
// one axis per canonical action type, absent actions defaulting to 0.
type Series struct {
	ID   string                      `json:"id"`
	Name string                      `json:"name"`
	Axes map[models.ActionType]int64 `json:"axes"`
}

// Rows derives comparison rows 1:1 from summaries, preserving input order.
func Rows(summaries []WorkerStatSummary) []ComparisonRow {
	rows := make([]ComparisonRow, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, ComparisonRow{
			ID:             s.WorkerID,
			Name:           displayName(s),
			Views:          s.Stat(models.ActionView),
			Calls:          s.Stat(models.ActionCall),
			Shares:         s.Stat(models.ActionShare),
			Whatsapp:       s.Stat(models.ActionWhatsApp),
			Downloads:      s.Stat(models.ActionDownloadResume),
			Total:          s.Total(),
			EngagementRate: engagementRate(s),
		})
	}
	return rows
}

// Rank sorts rows descending by total. The sort is stable, so rows with
// equal totals keep their input order; deterministic given the same input
// ordering.
func Rank(summaries []WorkerStatSummary) []ComparisonRow {
	rows := Rows(summaries)
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Total > rows[j].Total
	})
	return rows
}

// RankingPage returns one fixed-size page of the ranking view.
func RankingPage(summaries []WorkerStatSummary, pageIndex int) Page {
	return paginate(Rank(summaries), pageIndex)
}

// TopN returns the multi-axis series for the first n entries of the
// ranking view.
func TopN(summaries []WorkerStatSummary, n int) []Series {
	ranked := Rank(summaries)
	if n > len(ranked) {
		n = len(ranked)
	}

	series := make([]Series, 0, n)
	for _, row := range ranked[:n] {
		axes := make(map[models.ActionType]int64, len(models.KnownActions))
		for _, action := range models.KnownActions {
			axes[action] = 0
		}
		axes[models.ActionView] = row.Views
		axes[models.ActionCall] = row.Calls
		axes[models.ActionShare] = row.Shares
		axes[models.ActionWhatsApp] = row.Whatsapp
		axes[models.ActionDownloadResume] = row.Downloads

		series = append(series, Series{ID: row.ID, Name: row.Name, Axes: axes})
	}
	return series
}

// ComparisonPage evaluates the comparison-table view for a given state:
// case-insensitive substring search on name, sort by any column (descending
// when no direction is given, matching the first click on a new column),
// then a fixed-size page.
func ComparisonPage(summaries []WorkerStatSummary, state ViewState) Page {
	rows := Rows(summaries)

	if term := strings.TrimSpace(state.SearchTerm); term != "" {
		term = strings.ToLower(term)
		filtered := rows[:0]
		for _, row := range rows {
			if strings.Contains(strings.ToLower(row.Name), term) {
				filtered = append(filtered, row)
			}
		}
		rows = filtered
	}

	if state.SortKey != "" {
		sortRows(rows, state.SortKey, state.SortDirection != "asc")
	}

	return paginate(rows, state.PageIndex)
}

func sortRows(rows []ComparisonRow, key string, desc bool) {
	less := func(a, b ComparisonRow) bool { return a.Total < b.Total }

	switch key {
	case "name":
		less = func(a, b ComparisonRow) bool {
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		}
	case "views":
		less = func(a, b ComparisonRow) bool { return a.Views < b.Views }
	case "calls":
		less = func(a, b ComparisonRow) bool { return a.Calls < b.Calls }
	case "shares":
		less = func(a, b ComparisonRow) bool { return a.Shares < b.Shares }
	case "whatsapp":
		less = func(a, b ComparisonRow) bool { return a.Whatsapp < b.Whatsapp }
	case "downloads":
		less = func(a, b ComparisonRow) bool { return a.Downloads < b.Downloads }
	case "engagementRate":
		less = func(a, b ComparisonRow) bool { return a.EngagementRate < b.EngagementRate }
	case "total":
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if desc {
			return less(rows[j], rows[i])
		}
		return less(rows[i], rows[j])
	})
}

func paginate(rows []ComparisonRow, pageIndex int) Page {
	total := len(rows)
	pageCount := (total + PageSize - 1) / PageSize
	if pageIndex < 0 {
		pageIndex = 0
	}

	start := pageIndex * PageSize
	if start > total {
		start = total
	}
	end := start + PageSize
	if end > total {
		end = total
	}

	return Page{
		Rows:      rows[start:end],
		TotalRows: total,
		PageIndex: pageIndex,
		PageCount: pageCount,
	}
}

func displayName(s WorkerStatSummary) string {
	if s.WorkerNameEng != "" {
		return s.WorkerNameEng
	}
	if s.WorkerNameArabic != "" {
		return s.WorkerNameArabic
	}
	return "Unknown"
}

func engagementRate(s WorkerStatSummary) float64 {
	views := s.Stat(models.ActionView)
	if views == 0 {
		return 0.0
	}

	engaged := s.Stat(models.ActionCall) +
		s.Stat(models.ActionShare) +
		s.Stat(models.ActionWhatsApp) +
		s.Stat(models.ActionDownloadResume)

	rate := float64(engaged) / float64(views) * 100
	return math.Round(rate*10) / 10
}
