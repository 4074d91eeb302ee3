package constvars

const (
	URLParamTherapistID = "therapist_id"
	URLParamBookingID   = "booking_id"
	URLParamIntervalID  = "interval_id"
)

const (
	URLQueryParamView     = "view"
	URLQueryParamStart    = "start"
	URLQueryParamEnd      = "end"
	URLQueryParamPage     = "page"
	URLQueryParamPageSize = "page_size"
	URLQueryParamStatus   = "status"
)
