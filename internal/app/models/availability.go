package models

import "time"

// WorkingHourRule declares the recurring weekly working window for one weekday.
// A therapist always owns exactly seven rules, one per weekday; a disabled rule
// keeps its times but contributes no working hours.
type WorkingHourRule struct {
	Weekday time.Weekday `json:"weekday" bson:"weekday"`
	Enabled bool         `json:"enabled" bson:"enabled"`
	Start   Clock        `json:"start" bson:"start"`
	End     Clock        `json:"end" bson:"end"`
}

// BlockedInterval is therapist-declared unavailability overriding working hours.
// AllDay intervals carry no wall times. RecurringWeekly intervals repeat on the
// StartDate weekday every week on/after StartDate, open-ended until removed.
type BlockedInterval struct {
	ID              string    `json:"id" bson:"_id"`
	Title           string    `json:"title" bson:"title"`
	StartDate       time.Time `json:"start_date" bson:"start_date"`
	EndDate         time.Time `json:"end_date" bson:"end_date"`
	Start           Clock     `json:"start,omitempty" bson:"start,omitempty"`
	End             Clock     `json:"end,omitempty" bson:"end,omitempty"`
	AllDay          bool      `json:"all_day" bson:"all_day"`
	RecurringWeekly bool      `json:"recurring_weekly" bson:"recurring_weekly"`
}

// TherapistAvailability is the persisted availability document: the 7-rule
// weekly template plus every blocked interval, one document per therapist.
type TherapistAvailability struct {
	TherapistID string            `json:"therapist_id" bson:"_id"`
	Rules       []WorkingHourRule `json:"rules" bson:"rules"`
	Blocked     []BlockedInterval `json:"blocked" bson:"blocked"`
	TimeModel   `bson:",inline"`
}
