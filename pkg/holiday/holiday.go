// Package holiday provides the holiday lookup collaborator backed by a
// static table of Korean public holidays.
package holiday

import (
	"strings"
	"time"

	"github.com/minjaecode/haruplan/pkg/dateutil"
)

// record maps YYYY-MM-DD strings to holiday names.
var record = map[string]string{
	"2024-01-01": "신정",
	"2024-02-09": "설날",
	"2024-02-10": "설날",
	"2024-02-11": "설날",
	"2024-03-01": "삼일절",
	"2024-05-05": "어린이날",
	"2024-06-06": "현충일",
	"2024-08-15": "광복절",
	"2024-09-16": "추석",
	"2024-09-17": "추석",
	"2024-09-18": "추석",
	"2024-10-03": "개천절",
	"2024-10-09": "한글날",
	"2024-12-25": "크리스마스",
	"2025-01-01": "신정",
	"2025-01-28": "설날",
	"2025-01-29": "설날",
	"2025-01-30": "설날",
	"2025-03-01": "삼일절",
	"2025-05-05": "어린이날",
	"2025-06-06": "현충일",
	"2025-08-15": "광복절",
	"2025-10-03": "개천절",
	"2025-10-05": "추석",
	"2025-10-06": "추석",
	"2025-10-07": "추석",
	"2025-10-09": "한글날",
	"2025-12-25": "크리스마스",
}

// Static serves holidays from the built-in table.
type Static struct{}

// NewStatic returns the static holiday lookup.
func NewStatic() *Static {
	return &Static{}
}

// HolidaysForMonth returns the holidays falling in date's month, keyed
// by their YYYY-MM-DD string. Months without holidays return an empty
// map.
func (s *Static) HolidaysForMonth(date time.Time) map[string]string {
	prefix := dateutil.FormatDate(date)[:7]

	holidays := map[string]string{}
	for day, name := range record {
		if strings.HasPrefix(day, prefix) {
			holidays[day] = name
		}
	}
	return holidays
}
