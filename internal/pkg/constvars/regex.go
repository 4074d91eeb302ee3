package constvars

const (
	RegexDateYYYYMMDD = `^\d{4}-\d{2}-\d{2}$`
	// RegexClockHHMM matches 24h wall-clock times such as "09:00" or "17:30".
	RegexClockHHMM       = `^([01]\d|2[0-3]):[0-5]\d$`
	RegexDateTimeISO8601 = `^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(?:\.\d+)?(?:Z|[+-]\d{2}:\d{2})$`
	RegexAlphanumeric    = `^[a-zA-Z0-9]+$`
	RegexNumeric         = `^\d+$`
)
