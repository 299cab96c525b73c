package analytics

import "github.com/almanarhr/recruit-api/internal/models"

// Totals is the grand-total fold over all worker summaries.
type Totals struct {
	Views     int64 `json:"views"`
	Calls     int64 `json:"calls"`
	Shares    int64 `json:"shares"`
	Whatsapp  int64 `json:"whatsapp"`
	Downloads int64 `json:"downloads"`

	// TotalInteractions sums every key present in every stats map, not just
	// the five named actions, so future action types are still counted.
	TotalInteractions int64 `json:"totalInteractions"`

	// TotalProfiles counts workers present in the input; workers with zero
	// events have no summary and are not counted.
	TotalProfiles int64 `json:"totalProfiles"`
}

// Summarize folds worker summaries into grand totals. Pure and
// order-independent: the same input set always yields the same output.
func Summarize(summaries []WorkerStatSummary) Totals {
	var t Totals
	for _, s := range summaries {
		t.Views += s.Stat(models.ActionView)
		t.Calls += s.Stat(models.ActionCall)
		t.Shares += s.Stat(models.ActionShare)
		t.Whatsapp += s.Stat(models.ActionWhatsApp)
		t.Downloads += s.Stat(models.ActionDownloadResume)
		t.TotalInteractions += s.Total()
	}
	t.TotalProfiles = int64(len(summaries))
	return t
}
