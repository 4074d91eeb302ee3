package responses

type CalendarSlot struct {
	At    string `json:"at"`
	State string `json:"state"`
}

type CalendarDay struct {
	Date  string         `json:"date"`
	State string         `json:"state"`
	Slots []CalendarSlot `json:"slots,omitempty"`
}

type Calendar struct {
	TherapistID string        `json:"therapist_id"`
	View        string        `json:"view"`
	Days        []CalendarDay `json:"days"`
}
