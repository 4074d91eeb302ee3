package constvars

const (
	// Generic messages
	ResponseUnknown = "unknown"
	ResponseSuccess = "success"
	ResponseError   = "error"

	// Availability messages
	WorkingHoursUpdatedSuccess   = "working hours updated successfully"
	BlockedIntervalCreatedSuccess = "blocked time added successfully"
	BlockedIntervalRemovedSuccess = "blocked time removed successfully"

	// Calendar messages
	GetCalendarSuccess     = "get calendar successfully"
	GetAppointmentsSuccess = "get appointments successfully"

	// Booking messages
	BookingCreatedSuccess   = "booking created successfully"
	BookingCancelledSuccess = "booking cancelled successfully"
)
