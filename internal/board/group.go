package board

import (
	"sort"
	"time"

	"taskboard/internal/store"
)

// Group is one owner's slice of the board, ordered by date.
type Group struct {
	Owner string
	Tasks []store.Task
}

// Groups derives the presentation model from the current snapshot:
// tasks partitioned by owner, owners ascending by byte comparison, and
// each group's tasks ascending by parsed calendar date.
func (c *Controller) Groups() []Group {
	return GroupTasks(c.Tasks())
}

// GroupTasks partitions tasks by owner and orders the result.
//
// Owner keys are compared as raw strings (case-sensitive). Dates compare
// as parsed calendar days, not as strings, so differing spellings of the
// same day order together. Unparsable dates sort as the zero time; their
// order relative to each other is whatever the stable sort preserves.
func GroupTasks(tasks []store.Task) []Group {
	byOwner := make(map[string][]store.Task)
	for _, t := range tasks {
		byOwner[t.Owner] = append(byOwner[t.Owner], t)
	}

	owners := make([]string, 0, len(byOwner))
	for owner := range byOwner {
		owners = append(owners, owner)
	}
	sort.Strings(owners)

	groups := make([]Group, 0, len(owners))
	for _, owner := range owners {
		group := Group{Owner: owner, Tasks: byOwner[owner]}
		sort.SliceStable(group.Tasks, func(i, j int) bool {
			return parseDate(group.Tasks[i].Date).Before(parseDate(group.Tasks[j].Date))
		})
		groups = append(groups, group)
	}

	return groups
}

// parseDate parses a YYYY-MM-DD date leniently. Malformed input yields
// the zero time rather than an error; ordering among invalid dates is
// unspecified but comparison never panics.
func parseDate(s string) time.Time {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
