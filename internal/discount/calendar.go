package discount

import "time"

// IsWeekday сообщает, приходится ли t на понедельник-пятницу. Праздники не учитываются.
func IsWeekday(t time.Time) bool {
	switch t.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	default:
		return true
	}
}

// DayType возвращает метку типа дня для логов и ответов.
func DayType(isWeekday bool) string {
	if isWeekday {
		return "weekday"
	}
	return "weekend"
}
