package core

import "testing"

func TestIDFromContent(t *testing.T) {
	a := IDFromContent("Joe's Pizza|7 Carmine St, New York")
	b := IDFromContent("Joe's Pizza|7 Carmine St, New York")
	c := IDFromContent("Joe's Pizza|150 E 14th St, New York")

	if a != b {
		t.Errorf("same content produced different IDs: %d != %d", a, b)
	}
	if a == c {
		t.Errorf("different content produced the same ID: %d", a)
	}
	if a == 0 {
		t.Error("ID should not be zero for non-empty content")
	}
}

func TestValidTravelMode(t *testing.T) {
	for _, mode := range []TravelMode{ModeWalking, ModeDriving, ModeBicycling, ModeTransit} {
		if !ValidTravelMode(mode) {
			t.Errorf("ValidTravelMode(%q) = false, want true", mode)
		}
	}
	for _, mode := range []TravelMode{"", "flying", "WALKING "} {
		if ValidTravelMode(mode) {
			t.Errorf("ValidTravelMode(%q) = true, want false", mode)
		}
	}
}

func TestLocationResultStates(t *testing.T) {
	resolved := &LocationResult{
		Kind:         KindLandmark,
		DisplayValue: "Eiffel Tower",
		Coordinates:  &Coordinates{Lat: 48.8584, Lon: 2.2945},
	}
	if !resolved.Resolved() || resolved.Ambiguous() {
		t.Error("resolved result misreported its state")
	}

	ambiguous := &LocationResult{
		Options: []LocationOption{
			{Kind: KindCity, DisplayValue: "Springfield, IL"},
			{Kind: KindCity, DisplayValue: "Springfield, MA"},
		},
	}
	if ambiguous.Resolved() || !ambiguous.Ambiguous() {
		t.Error("ambiguous result misreported its state")
	}

	var nilResult *LocationResult
	if nilResult.Resolved() || nilResult.Ambiguous() {
		t.Error("nil result should report neither state")
	}
}
