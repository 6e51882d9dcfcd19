package engine

import (
	"sort"
	"time"

	"github.com/example/committee-scheduler/internal/calendar"
	"github.com/example/committee-scheduler/internal/domain"
)

// CommitteePlan pairs a committee type with its candidate dates for one
// month.
type CommitteePlan struct {
	CommitteeType domain.CommitteeType
	Candidates    []Candidate
}

// PlanMonth builds the month's candidate dates for every active committee
// type, ordered by committee name. Committee types whose recurrence produces
// no occurrence that month appear with an empty candidate list.
func (e *Engine) PlanMonth(year int, month time.Month) ([]CommitteePlan, error) {
	first := calendar.Date(year, month, 1)
	days := first.AddDate(0, 1, 0).Sub(first).Hours() / 24

	plans := make([]CommitteePlan, 0)
	for _, committeeType := range e.snapshot.CommitteeTypes {
		if !committeeType.Active {
			continue
		}
		candidates, err := e.SuggestDates(committeeType, committeeType.DivisionID, first, int(days))
		if err != nil {
			return nil, err
		}
		plans = append(plans, CommitteePlan{CommitteeType: committeeType, Candidates: candidates})
	}

	sort.Slice(plans, func(i, j int) bool {
		return plans[i].CommitteeType.Name < plans[j].CommitteeType.Name
	})
	return plans, nil
}
