package constvars

// Validation messages mapper
var CustomValidationErrorMessages = map[string]string{
	"required": "is required",
	"min":      "must be at least %s characters long",
	"max":      "maximum at %s characters long",
	"numeric":  "must be a number",
	"len":      "must be %s characters long",
	"oneof":    "must be one of [%s]",
	"gt":       "must be greater than %s",
	"gte":      "must be greater than or equal to %s",
	"lt":       "must be less than %s",
	"lte":      "must be less than or equal to %s",
	"uuid":     "must be a valid UUID",
	"clock":    "must be a wall-clock time formatted as HH:MM",
	"weekday":  "must be a valid weekday name",
}

// Tags that require parameter substitution
var TagsWithParams = map[string]bool{
	"min":   true,
	"max":   true,
	"len":   true,
	"gt":    true,
	"gte":   true,
	"lt":    true,
	"lte":   true,
	"oneof": true,
}

// Error messages for clients
const (
	ErrClientCannotProcessRequest          = "failed to process your request"
	ErrClientSomethingWrongWithApplication = "there is something wrong with the application"
	ErrClientServerLongRespond             = "the app taking too long to respond"
	ErrClientNotAuthorized                 = "you can't access this feature"
	ErrClientNotLoggedIn                   = "your session ended, please login again"
	ErrClientInvalidWorkingHours           = "working hours are invalid: start time must be before end time"
	ErrClientInvalidBlockedInterval        = "blocked time is invalid: check the dates and times"
	ErrClientOutsideWorkingHours           = "the requested time is outside the therapist's working hours"
	ErrClientTimeBlocked                   = "the therapist is unavailable at the requested time"
	ErrClientDoubleBooked                  = "the requested time overlaps with an existing appointment"
	ErrClientBookingNotFound               = "we couldn't find that booking"
	ErrClientTherapistBusy                 = "the therapist's calendar is being updated, please retry"
)

// Error messages for developers
const (
	ErrDevInvalidInput             = "invalid input"
	ErrDevValidationFailed         = "request payload validation failed"
	ErrDevInvalidRequestPayload    = "invalid request payload"
	ErrDevCannotParseJSON          = "cannot parse JSON into struct or other data types"
	ErrDevCannotMarshalJSON        = "cannot convert struct or other data types to JSON"
	ErrDevCannotParseTime          = "cannot parse time into the given format"
	ErrDevCannotParseDate          = "cannot parse the requested date"
	ErrDevInvalidFormat            = "invalid %s format"
	ErrDevServerProcess            = "something went wrong while processing the request"
	ErrDevServerDeadlineExceeded   = "server deadline exceeded"
	ErrDevMissingRequestID         = "request id not found in request context"
	ErrDevMissingSessionData       = "session data not found in request context"
	ErrDevURLParamIDValidation     = "url parameter %s failed validation"
	ErrDevAuthTokenMissing         = "authorization token missing from request header"
	ErrDevAuthTokenInvalid         = "authorization token is invalid or expired"
	ErrDevAuthSigningMethod        = "unexpected jwt signing method"
	ErrDevNotResourceOwner         = "session identity does not own the requested resource"
	ErrDevWorkingHoursRuleSet      = "working hour rule set rejected"
	ErrDevBlockedIntervalRejected  = "blocked interval rejected"
	ErrDevBookingConflict          = "booking conflicts with calendar state"
	ErrDevBookingNotFound          = "booking does not exist"
	ErrDevLockNotAcquired          = "failed to acquire calendar day lock"
	ErrDevMongoFindDocument        = "failed to find document on mongo database"
	ErrDevMongoInsertDocument      = "failed to insert document to mongo database"
	ErrDevMongoUpdateDocument      = "failed to update document on mongo database"
	ErrDevMongoDeleteDocument      = "failed to delete document on mongo database"
	ErrDevMongoIterateDocuments    = "failed to iterate documents from mongo database"
	ErrDevRedisGetData             = "failed to get data from redis"
	ErrDevRedisSetData             = "failed to set data to redis"
	ErrDevRedisDeleteData          = "failed to delete data from redis"
	ErrDevRedisGetNoData           = "no data found on redis with key: %s"
	ErrDevRedisUnlock              = "failed to release redis lock"
	ErrDevRabbitMQPublishMessage   = "failed to publish message to rabbitmq queue: %s"
	ErrDevRabbitMQDeclareQueue     = "failed to declare rabbitmq queue"
	ErrDevRabbitMQConfirmTimedOut  = "timed out waiting for rabbitmq publisher confirm"
)
