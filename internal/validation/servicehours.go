package validation

import (
	"fmt"
	"time"

	"github.com/heartmarshall/serviceregistry-backend/internal/domain"
)

var weekdayOrder = []domain.Weekday{
	domain.Monday, domain.Tuesday, domain.Wednesday, domain.Thursday,
	domain.Friday, domain.Saturday, domain.Sunday,
}

// CheckServiceHours validates every service-hour entry under path.
func CheckServiceHours(path Path, hours []domain.ServiceHour) []Violation {
	var out []Violation
	for i, h := range hours {
		out = append(out, checkServiceHour(path.Index(i), h)...)
	}
	return out
}

func checkServiceHour(path Path, h domain.ServiceHour) []Violation {
	var out []Violation

	if !h.Type.IsValid() {
		out = append(out, violation(path.Field("ServiceHourType"), KindStructuralConflict,
			fmt.Sprintf("unknown service hour type %q", h.Type)))
	}

	if h.ValidFrom != nil && h.ValidTo != nil && !dateBefore(*h.ValidFrom, *h.ValidTo) {
		out = append(out, violation(path.Field("ValidTo"), KindStructuralConflict,
			"validTo must be later than validFrom"))
	}

	if h.IsAlwaysOpen && h.IsClosed {
		out = append(out, violation(path, KindStructuralConflict, "IsAlwaysOpen and IsClosed cannot both be set"))
	}
	if h.IsAlwaysOpen && h.IsReservation {
		out = append(out, violation(path, KindStructuralConflict, "IsAlwaysOpen and IsReservation cannot both be set"))
	}
	if h.IsClosed && h.IsReservation {
		out = append(out, violation(path, KindStructuralConflict, "IsClosed and IsReservation cannot both be set"))
	}
	standard := h.Type == domain.ServiceHourTypeStandard
	if h.IsAlwaysOpen && !standard {
		out = append(out, violation(path.Field("IsAlwaysOpen"), KindStructuralConflict,
			"IsAlwaysOpen is only allowed for Standard service hours"))
	}
	if h.IsReservation && !standard {
		out = append(out, violation(path.Field("IsReservation"), KindStructuralConflict,
			"IsReservation is only allowed for Standard service hours"))
	}

	hoursPath := path.Field("OpeningHour")
	if len(h.OpeningHours) > 0 && (h.IsAlwaysOpen || h.IsReservation) {
		flag := "IsAlwaysOpen"
		if !h.IsAlwaysOpen {
			flag = "IsReservation"
		}
		return append(out, violation(hoursPath, KindStructuralConflict,
			"no OpeningHours allowed when "+flag))
	}

	if len(h.OpeningHours) == 0 {
		if !standard && !(h.Type == domain.ServiceHourTypeException && h.IsClosed) {
			out = append(out, violation(hoursPath, KindStructuralConflict, "OpeningHour required"))
		}
		return out
	}

	if (h.Type == domain.ServiceHourTypeException || h.Type == domain.ServiceHourTypeSpecial) && len(h.OpeningHours) > 1 {
		out = append(out, violation(hoursPath, KindStructuralConflict,
			fmt.Sprintf("%s service hours allow at most one OpeningHour", h.Type)))
	}

	for i, oh := range h.OpeningHours {
		out = append(out, checkOpeningHour(hoursPath.Index(i), h, oh)...)
	}
	out = append(out, checkExtraHours(hoursPath, h.OpeningHours)...)
	return out
}

func checkOpeningHour(path Path, h domain.ServiceHour, oh domain.OpeningHour) []Violation {
	var out []Violation
	standard := h.Type == domain.ServiceHourTypeStandard

	if oh.DayFrom == nil {
		if standard {
			out = append(out, violation(path.Field("DayFrom"), KindStructuralConflict, "DayFrom required"))
		}
	} else if !oh.DayFrom.IsValid() {
		out = append(out, violation(path.Field("DayFrom"), KindStructuralConflict,
			fmt.Sprintf("unknown day %q", *oh.DayFrom)))
	}
	if oh.DayTo != nil && !oh.DayTo.IsValid() {
		out = append(out, violation(path.Field("DayTo"), KindStructuralConflict,
			fmt.Sprintf("unknown day %q", *oh.DayTo)))
	}

	from, fromErr := parseTimeOfDay(oh.From)
	if fromErr != nil {
		out = append(out, violation(path.Field("From"), KindStructuralConflict,
			fmt.Sprintf("invalid time %q, expected HH:mm or HH:mm:ss", oh.From)))
	}
	to, toErr := parseTimeOfDay(oh.To)
	if toErr != nil {
		out = append(out, violation(path.Field("To"), KindStructuralConflict,
			fmt.Sprintf("invalid time %q, expected HH:mm or HH:mm:ss", oh.To)))
	}
	if fromErr != nil || toErr != nil {
		return out
	}

	orderedTimes := standard ||
		(h.Type == domain.ServiceHourTypeException && h.ValidTo == nil)
	if orderedTimes && to <= from {
		out = append(out, violation(path.Field("To"), KindStructuralConflict,
			"To must be later than From"))
	}
	return out
}

// checkExtraHours enforces that every day with extra entries has exactly one
// base entry, and that no day has more than one base entry.
func checkExtraHours(path Path, hours []domain.OpeningHour) []Violation {
	base := make(map[domain.Weekday]int)
	extra := make(map[domain.Weekday]int)
	for _, oh := range hours {
		if oh.DayFrom == nil {
			continue
		}
		if oh.IsExtra {
			extra[*oh.DayFrom]++
		} else {
			base[*oh.DayFrom]++
		}
	}

	var out []Violation
	for _, day := range weekdayOrder {
		switch {
		case base[day] > 1:
			out = append(out, violation(path, KindStructuralConflict,
				fmt.Sprintf("at most one non-extra OpeningHour allowed for %s", day)))
		case extra[day] > 0 && base[day] == 0:
			out = append(out, violation(path, KindStructuralConflict,
				fmt.Sprintf("a non-extra OpeningHour is required for %s", day)))
		}
	}
	return out
}

// parseTimeOfDay accepts "HH:mm" and "HH:mm:ss" and returns the offset from midnight.
func parseTimeOfDay(s string) (time.Duration, error) {
	var t time.Time
	var err error
	if len(s) == len("15:04") {
		t, err = time.Parse("15:04", s)
	} else {
		t, err = time.Parse("15:04:05", s)
	}
	if err != nil {
		return 0, err
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute +
		time.Duration(t.Second())*time.Second, nil
}
