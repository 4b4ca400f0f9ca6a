package workers

import (
	"encoding/json"
	"fmt"

	"roomscout/models"
)

// RunStats aggregates how far the resolution stages got across one batch.
type RunStats struct {
	Resolved        int
	Geocoded        int
	Priced          int
	CrossReferenced int
	VacancyFailed   int
	VacancyPartial  int
}

// Aggregate adds one resolved room to the stats.
func (s *RunStats) Aggregate(r *models.Room) {
	s.Resolved++
	if r.Address != nil {
		s.Geocoded++
	}
	if r.Fees != nil {
		s.Priced++
	}
	if r.Deposit != nil {
		s.CrossReferenced++
	}
	if r.VacancyRate == models.VacancyFailed {
		s.VacancyFailed++
	}
	if r.VacancyPartial {
		s.VacancyPartial++
	}
}

// Summary is the one-line log form.
func (s *RunStats) Summary() string {
	return fmt.Sprintf("%d resolved, %d geocoded, %d priced, %d cross-referenced, %d vacancy failures (%d partial)",
		s.Resolved, s.Geocoded, s.Priced, s.CrossReferenced, s.VacancyFailed, s.VacancyPartial)
}

// ToJSON returns JSON-serializable metadata.
func (s *RunStats) ToJSON() json.RawMessage {
	data, _ := json.Marshal(map[string]int{
		"resolved":         s.Resolved,
		"geocoded":         s.Geocoded,
		"priced":           s.Priced,
		"cross_referenced": s.CrossReferenced,
		"vacancy_failed":   s.VacancyFailed,
		"vacancy_partial":  s.VacancyPartial,
	})
	return data
}
