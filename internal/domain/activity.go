package domain

import "strings"

// Represents a single stop of an itinerary day.
// An Activity enters the system with either explicit coordinates or a
// free-text location; only the coordinate resolver fills Coordinates in.
type Activity struct {
	ID          string       `json:"id"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
	Location    string       `json:"location,omitempty"`
}

// Report whether the activity already carries usable coordinates.
func (a Activity) HasCoordinates() bool {
	return a.Coordinates != nil && a.Coordinates.Valid()
}

// Check the inbound invariant: coordinates in range, or a location to geocode.
func (a Activity) Validate() error {
	if strings.TrimSpace(a.ID) == "" {
		return NewValidationError("", "activity id is required")
	}

	if a.Coordinates != nil {
		if !a.Coordinates.Valid() {
			return NewValidationError(a.ID, "activity %q has coordinates out of range", a.ID)
		}
		return nil
	}

	if strings.TrimSpace(a.Location) == "" {
		return NewValidationError(a.ID, "activity %q requires lat/lng or a location", a.ID)
	}

	return nil
}

// Return the resolved coordinates of each activity, in order.
// Every activity is expected to have been resolved.
func CoordinatesOf(activities []Activity) []Coordinates {
	out := make([]Coordinates, 0, len(activities))
	for _, a := range activities {
		if a.Coordinates == nil {
			continue
		}
		out = append(out, *a.Coordinates)
	}
	return out
}
