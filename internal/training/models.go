package training

// Weekdays in calendar order, as published by the schedule.
var Weekdays = []string{"Montag", "Dienstag", "Mittwoch", "Donnerstag", "Freitag", "Samstag", "Sonntag"}

// WeekdayIndex returns the calendar position of a German weekday name,
// or len(Weekdays) for anything unknown so it sorts after real days.
func WeekdayIndex(day string) int {
	for i, d := range Weekdays {
		if d == day {
			return i
		}
	}
	return len(Weekdays)
}

// Training is one recurring session of the published schedule.
//
// DistanceKm and DistanceLabel are ephemeral annotations relative to a client
// position. They are never part of the stored snapshot: either both are set
// on a response copy or both are absent.
type Training struct {
	ID            int      `json:"id"`
	Wochentag     string   `json:"wochentag"`
	Ort           string   `json:"ort"`
	Von           string   `json:"von"`
	Bis           string   `json:"bis"`
	Art           string   `json:"training"`
	Altersgruppe  string   `json:"altersgruppe"`
	MinAlter      *int     `json:"minAlter,omitempty"`
	MaxAlter      *int     `json:"maxAlter,omitempty"`
	Trainer       string   `json:"trainer,omitempty"`
	Probetraining bool     `json:"probetraining"`
	Hinweis       string   `json:"hinweis,omitempty"`
	AnmeldeLink   string   `json:"anmeldeLink,omitempty"`
	Lat           *float64 `json:"lat,omitempty"`
	Lng           *float64 `json:"lng,omitempty"`

	DistanceKm    *float64 `json:"distanceKm,omitempty"`
	DistanceLabel string   `json:"distanceLabel,omitempty"`
}

func (t Training) HasCoordinates() bool {
	return t.Lat != nil && t.Lng != nil
}

// Metadata lists the distinct filterable values of the current schedule.
type Metadata struct {
	Orte           []string `json:"orte"`
	Trainingsarten []string `json:"trainingsarten"`
	Altersgruppen  []string `json:"altersgruppen"`
	Wochentage     []string `json:"wochentage"`
}

// Payload is the upstream document shape. A missing trainings array marks the
// payload as malformed.
type Payload struct {
	Version   string     `json:"version"`
	Generated string     `json:"generated"`
	Metadata  Metadata   `json:"metadata"`
	Trainings []Training `json:"trainings"`
}
