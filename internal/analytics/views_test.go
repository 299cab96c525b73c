package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/almanarhr/recruit-api/internal/models"
)

func summary(id, name string, stats map[models.ActionType]int64) WorkerStatSummary {
	return WorkerStatSummary{
		WorkerID:      id,
		WorkerNameEng: name,
		Stats:         stats,
	}
}

func TestEngagementRate(t *testing.T) {
	tests := []struct {
		name  string
		stats map[models.ActionType]int64
		want  float64
	}{
		{
			name: "ten percent",
			stats: map[models.ActionType]int64{
				models.ActionView: 10,
				models.ActionCall: 1,
			},
			want: 10.0,
		},
		{
			name: "rounded to one decimal",
			stats: map[models.ActionType]int64{
				models.ActionView:  3,
				models.ActionShare: 1,
			},
			want: 33.3,
		},
		{
			name: "zero views yields zero even with engagement",
			stats: map[models.ActionType]int64{
				models.ActionCall:     5,
				models.ActionWhatsApp: 2,
			},
			want: 0.0,
		},
		{
			name: "all engagement actions counted",
			stats: map[models.ActionType]int64{
				models.ActionView:           4,
				models.ActionCall:           1,
				models.ActionShare:          1,
				models.ActionWhatsApp:       1,
				models.ActionDownloadResume: 1,
			},
			want: 100.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := Rows([]WorkerStatSummary{summary("w1", "Amal", tt.stats)})
			require.Len(t, rows, 1)
			assert.Equal(t, tt.want, rows[0].EngagementRate)
		})
	}
}

func TestRowsMissingKeysDefaultToZero(t *testing.T) {
	rows := Rows([]WorkerStatSummary{
		summary("w1", "Amal", map[models.ActionType]int64{models.ActionView: 2}),
	})

	require.Len(t, rows, 1)
	assert.Equal(t, int64(2), rows[0].Views)
	assert.Equal(t, int64(0), rows[0].Calls)
	assert.Equal(t, int64(0), rows[0].Shares)
	assert.Equal(t, int64(0), rows[0].Whatsapp)
	assert.Equal(t, int64(0), rows[0].Downloads)
	assert.Equal(t, int64(2), rows[0].Total)
}

func TestRowsUnknownActionsCountInTotal(t *testing.T) {
	rows := Rows([]WorkerStatSummary{
		summary("w1", "Amal", map[models.ActionType]int64{
			models.ActionView: 2,
			"BOOKMARK":        3,
		}),
	})

	require.Len(t, rows, 1)
	assert.Equal(t, int64(2), rows[0].Views)
	assert.Equal(t, int64(5), rows[0].Total)
}

func TestRankOrdersByTotalDescending(t *testing.T) {
	ranked := Rank([]WorkerStatSummary{
		summary("w1", "Amal", map[models.ActionType]int64{models.ActionView: 1}),
		summary("w2", "Basim", map[models.ActionType]int64{models.ActionView: 5}),
		summary("w3", "Dana", map[models.ActionType]int64{models.ActionView: 3}),
	})

	require.Len(t, ranked, 3)
	assert.Equal(t, "w2", ranked[0].ID)
	assert.Equal(t, "w3", ranked[1].ID)
	assert.Equal(t, "w1", ranked[2].ID)
}

func TestRankIsStableOnTies(t *testing.T) {
	summaries := []WorkerStatSummary{
		summary("w1", "Amal", map[models.ActionType]int64{models.ActionView: 2}),
		summary("w2", "Basim", map[models.ActionType]int64{models.ActionCall: 2}),
		summary("w3", "Dana", map[models.ActionType]int64{models.ActionShare: 2}),
	}

	for i := 0; i < 5; i++ {
		ranked := Rank(summaries)
		require.Len(t, ranked, 3)
		assert.Equal(t, "w1", ranked[0].ID)
		assert.Equal(t, "w2", ranked[1].ID)
		assert.Equal(t, "w3", ranked[2].ID)
	}
}

func TestTopNFillsAllAxes(t *testing.T) {
	series := TopN([]WorkerStatSummary{
		summary("w1", "Amal", map[models.ActionType]int64{models.ActionView: 7}),
		summary("w2", "Basim", map[models.ActionType]int64{models.ActionCall: 1}),
	}, TopPerformers)

	// Only two workers exist, so n is clamped.
	require.Len(t, series, 2)

	top := series[0]
	assert.Equal(t, "w1", top.ID)
	assert.Len(t, top.Axes, len(models.KnownActions))
	assert.Equal(t, int64(7), top.Axes[models.ActionView])
	assert.Equal(t, int64(0), top.Axes[models.ActionCall])
	assert.Equal(t, int64(0), top.Axes[models.ActionDownloadResume])
}

func TestComparisonPageSearchIsCaseInsensitive(t *testing.T) {
	summaries := []WorkerStatSummary{
		summary("w1", "Amal Hassan", map[models.ActionType]int64{models.ActionView: 1}),
		summary("w2", "Basim Khalid", map[models.ActionType]int64{models.ActionView: 2}),
		summary("w3", "Huda Amali", map[models.ActionType]int64{models.ActionView: 3}),
	}

	page := ComparisonPage(summaries, ViewState{SearchTerm: "  AMAL "})
	require.Len(t, page.Rows, 2)
	assert.Equal(t, "w1", page.Rows[0].ID)
	assert.Equal(t, "w3", page.Rows[1].ID)
	assert.Equal(t, 2, page.TotalRows)
}

func TestComparisonPageSortDefaultsDescending(t *testing.T) {
	summaries := []WorkerStatSummary{
		summary("w1", "Amal", map[models.ActionType]int64{models.ActionView: 1}),
		summary("w2", "Basim", map[models.ActionType]int64{models.ActionView: 9}),
		summary("w3", "Dana", map[models.ActionType]int64{models.ActionView: 4}),
	}

	page := ComparisonPage(summaries, ViewState{SortKey: "views"})
	require.Len(t, page.Rows, 3)
	assert.Equal(t, "w2", page.Rows[0].ID)
	assert.Equal(t, "w3", page.Rows[1].ID)
	assert.Equal(t, "w1", page.Rows[2].ID)

	asc := ComparisonPage(summaries, ViewState{SortKey: "views", SortDirection: "asc"})
	assert.Equal(t, "w1", asc.Rows[0].ID)
	assert.Equal(t, "w2", asc.Rows[2].ID)
}

func TestComparisonPageSortByName(t *testing.T) {
	summaries := []WorkerStatSummary{
		summary("w1", "dana", map[models.ActionType]int64{models.ActionView: 1}),
		summary("w2", "Amal", map[models.ActionType]int64{models.ActionView: 1}),
		summary("w3", "Basim", map[models.ActionType]int64{models.ActionView: 1}),
	}

	page := ComparisonPage(summaries, ViewState{SortKey: "name", SortDirection: "asc"})
	require.Len(t, page.Rows, 3)
	assert.Equal(t, "Amal", page.Rows[0].Name)
	assert.Equal(t, "Basim", page.Rows[1].Name)
	assert.Equal(t, "dana", page.Rows[2].Name)
}

func TestComparisonPageNoSortPreservesInputOrder(t *testing.T) {
	summaries := []WorkerStatSummary{
		summary("w2", "Basim", map[models.ActionType]int64{models.ActionView: 9}),
		summary("w1", "Amal", map[models.ActionType]int64{models.ActionView: 1}),
	}

	page := ComparisonPage(summaries, ViewState{})
	require.Len(t, page.Rows, 2)
	assert.Equal(t, "w2", page.Rows[0].ID)
	assert.Equal(t, "w1", page.Rows[1].ID)
}

func TestPagination(t *testing.T) {
	summaries := make([]WorkerStatSummary, 0, 25)
	for i := 0; i < 25; i++ {
		summaries = append(summaries, summary(
			string(rune('a'+i)), "Worker",
			map[models.ActionType]int64{models.ActionView: int64(25 - i)},
		))
	}

	first := ComparisonPage(summaries, ViewState{PageIndex: 0})
	assert.Len(t, first.Rows, PageSize)
	assert.Equal(t, 25, first.TotalRows)
	assert.Equal(t, 3, first.PageCount)

	last := ComparisonPage(summaries, ViewState{PageIndex: 2})
	assert.Len(t, last.Rows, 5)
	assert.Equal(t, 2, last.PageIndex)

	past := ComparisonPage(summaries, ViewState{PageIndex: 9})
	assert.Empty(t, past.Rows)
	assert.Equal(t, 25, past.TotalRows)

	negative := ComparisonPage(summaries, ViewState{PageIndex: -3})
	assert.Len(t, negative.Rows, PageSize)
	assert.Equal(t, 0, negative.PageIndex)
}

func TestDisplayNameFallback(t *testing.T) {
	rows := Rows([]WorkerStatSummary{
		{WorkerID: "w1", WorkerNameEng: "Amal", WorkerNameArabic: "أمل", Stats: map[models.ActionType]int64{models.ActionView: 1}},
		{WorkerID: "w2", WorkerNameArabic: "باسم", Stats: map[models.ActionType]int64{models.ActionView: 1}},
		{WorkerID: "w3", Stats: map[models.ActionType]int64{models.ActionView: 1}},
	})

	require.Len(t, rows, 3)
	assert.Equal(t, "Amal", rows[0].Name)
	assert.Equal(t, "باسم", rows[1].Name)
	assert.Equal(t, "Unknown", rows[2].Name)
}
