package analytics

import (
	"github.com/almanarhr/recruit-api/internal/models"
	"github.com/almanarhr/recruit-api/internal/storage"
)

// WorkerStatSummary is the aggregation output for one worker: a mapping of
// action type to count, joined with the worker's display names. Keys are
// present only for actions that occurred at least once; consumers must
// default missing keys to zero. Computed fresh on every request, never
// persisted.
type WorkerStatSummary struct {
	WorkerID         string                      `json:"workerId"`
	WorkerNameEng    string                      `json:"workerNameEng"`
	WorkerNameArabic string                      `json:"workerNameArabic"`
	Stats            map[models.ActionType]int64 `json:"stats"`
}

// Stat returns the count for an action, defaulting missing keys to zero.
func (s WorkerStatSummary) Stat(action models.ActionType) int64 {
	return s.Stats[action]
}

// Total is the sum over every action present, named or not.
func (s WorkerStatSummary) Total() int64 {
	var total int64
	for _, n := range s.Stats {
		total += n
	}
	return total
}

// BuildSummaries regroups per-(worker, action) counts into one summary per
// worker and joins in display names from the worker directory. Inner-join
// semantics: counts for a workerId absent from the directory are dropped,
// so workers deleted after events were recorded disappear from the report.
// Output order follows the first appearance of each worker in counts; the
// engine itself promises no ordering, callers sort if they need one.
func BuildSummaries(counts []storage.ActionCount, workers map[string]*models.Worker) []WorkerStatSummary {
	byWorker := make(map[string]*WorkerStatSummary)
	order := make([]string, 0, len(workers))

	for _, c := range counts {
		w, ok := workers[c.WorkerID]
		if !ok {
			continue
		}

		sum, ok := byWorker[c.WorkerID]
		if !ok {
			sum = &WorkerStatSummary{
				WorkerID:         c.WorkerID,
				WorkerNameEng:    w.NameEng,
				WorkerNameArabic: w.NameArabic,
				Stats:            make(map[models.ActionType]int64),
			}
			byWorker[c.WorkerID] = sum
			order = append(order, c.WorkerID)
		}
		sum.Stats[c.Action] += c.Count
	}

	result := make([]WorkerStatSummary, 0, len(order))
	for _, id := range order {
		result = append(result, *byWorker[id])
	}
	return result
}
