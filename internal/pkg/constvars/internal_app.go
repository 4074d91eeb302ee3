package constvars

type ContextKey string

const (
	CONTEXT_REQUEST_ID_KEY           ContextKey = "request_id"
	CONTEXT_SESSION_DATA_KEY         ContextKey = "session_data"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY ContextKey = "is_client_request_id"
)

const (
	ResourceTherapists       = "therapists"
	ResourceBookings         = "bookings"
	ResourceWorkingHours     = "working-hours"
	ResourceBlockedIntervals = "blocked-intervals"
	ResourceCalendar         = "calendar"
	ResourceAppointments     = "appointments"
)

// Calendar view modes accepted by the projection endpoint.
const (
	CalendarViewDay   = "day"
	CalendarViewWeek  = "week"
	CalendarViewMonth = "month"
)

// Appointment statuses. Only pending and confirmed occupy calendar slots;
// cancelled is treated as absence by every core operation.
const (
	AppointmentStatusPending   = "pending"
	AppointmentStatusConfirmed = "confirmed"
	AppointmentStatusCancelled = "cancelled"
)

// Slot states produced by calendar projection.
const (
	SlotStateAvailable   = "available"
	SlotStateBooked      = "booked"
	SlotStateBlocked     = "blocked"
	SlotStateUnavailable = "unavailable"
)

const (
	AppPaginationUrlFormat = "%s?page=%d&page_size=%d"
)
