package store

import (
	"sort"

	"github.com/liamoiknine/wolram/internal/models"
)

// FilterResponses keeps the responses belonging to one session and task.
// An empty task matches every task.
func FilterResponses(rs []models.ItemResponse, sessionID string, task models.TaskKind) []models.ItemResponse {
	var out []models.ItemResponse
	for _, r := range rs {
		if r.SessionID != sessionID {
			continue
		}
		if task != "" && r.Task != task {
			continue
		}
		out = append(out, r)
	}
	return out
}

// SortResponses orders responses by creation time ascending, stable on
// ties.
func SortResponses(rs []models.ItemResponse) []models.ItemResponse {
	out := make([]models.ItemResponse, len(rs))
	copy(out, rs)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// LatestPreferUnscored picks the response a task should attach results to
// when it has no explicit handle: the most recently created response for
// the session+task that has no score yet, falling back to the most recent
// overall. Returns nil when the task has no responses.
func LatestPreferUnscored(rs []models.ItemResponse, sessionID string, task models.TaskKind) *models.ItemResponse {
	matched := SortResponses(FilterResponses(rs, sessionID, task))
	if len(matched) == 0 {
		return nil
	}
	for i := len(matched) - 1; i >= 0; i-- {
		if !matched[i].Scored() {
			r := matched[i]
			return &r
		}
	}
	r := matched[len(matched)-1]
	return &r
}
