package constvars

// Mongo collections
const (
	MongoCollectionAvailability = "therapist_availability"
	MongoCollectionAppointments = "appointments"
)

// Redis key formats
const (
	RedisKeySessionFormat = "session:%s"
	// RedisKeyDayLockFormat serializes calendar writes per therapist per day:
	// therapist ID first, then the YYYY-MM-DD day.
	RedisKeyDayLockFormat = "calendar_lock:%s:%s"
	// RedisKeyAvailabilityLockFormat serializes template and blocked interval
	// writes for one therapist.
	RedisKeyAvailabilityLockFormat = "availability_lock:%s"
)
