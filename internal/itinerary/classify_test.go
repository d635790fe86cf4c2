package itinerary

import "testing"

func TestClassify_Kinds(t *testing.T) {
	tests := []struct {
		line     string
		kind     LineKind
		wantDay  int
		wantTime string
	}{
		{"Hey there, here is your trip!", LineNoise, 4, "15:00"},
		{"Cheers,", LineNoise, 4, "15:00"},
		{"Day 7: Departure", LineDay, 7, "09:00"},
		{"Morning:", LinePeriod, 4, "09:00"},
		{"Afternoon", LinePeriod, 4, "14:00"},
		{"Late night jazz if you still have energy", LinePeriod, 4, "18:00"},
		{"* Afternoon (3:30 PM - 5:00 PM): Tea ceremony in a machiya", LineActivity, 4, "15:30"},
		{"- Evening: Izakaya hopping in Pontocho alley", LineActivity, 4, "18:00"},
		{"* Morning & Afternoon: Day hike through the bamboo forest", LineActivity, 4, "09:00"},
		{"Morning & Afternoon: free time", LinePeriod, 4, "09:00"},
		{"Pack comfortable shoes for the cobblestones.", LineUnmatched, 4, "15:00"},
	}
	for _, tc := range tests {
		t.Run(tc.line, func(t *testing.T) {
			start := Cursor{Day: 4, Time: "15:00"}
			line, cur := Classify(tc.line, start)
			if line.Kind != tc.kind {
				t.Fatalf("expected kind %s, got %s", tc.kind, line.Kind)
			}
			if cur.Day != tc.wantDay {
				t.Errorf("expected day %d, got %d", tc.wantDay, cur.Day)
			}
			if cur.Time != tc.wantTime {
				t.Errorf("expected time %q, got %q", tc.wantTime, cur.Time)
			}
		})
	}
}

func TestClassify_DayMarkerResetsTime(t *testing.T) {
	cur := Cursor{Day: 1, Time: "18:00"}
	line, cur := Classify("Day 2: Old Town", cur)
	if line.Kind != LineDay {
		t.Fatalf("expected day marker, got %s", line.Kind)
	}
	if cur.Day != 2 || cur.Time != "09:00" {
		t.Errorf("expected day 2 09:00, got day %d %s", cur.Day, cur.Time)
	}
}

func TestMatchActivity_MostSpecificWins(t *testing.T) {
	tests := []struct {
		line    string
		matcher string
		period  Period
		clock   string
		text    string
	}{
		{"* Morning (9:00 AM - 12:00 PM): Grand Palace", "bullet-period-clock", PeriodMorning, "9:00 AM - 12:00 PM", "Grand Palace"},
		{"* Morning & Afternoon: Ayutthaya day trip", "bullet-period-pair", PeriodMorning, "", "Ayutthaya day trip"},
		{"* evening: Chinatown food walk", "bullet-period", PeriodEvening, "", "Chinatown food walk"},
		{"• Night: Rooftop bar", "bullet-period", PeriodNight, "", "Rooftop bar"},
		{"Afternoon (1 PM): Jim Thompson House", "period-clock", PeriodAfternoon, "1 PM", "Jim Thompson House"},
		{"Morning: Lumphini Park jog", "period", PeriodMorning, "", "Lumphini Park jog"},
	}
	for _, tc := range tests {
		t.Run(tc.matcher, func(t *testing.T) {
			name, m, ok := matchActivity(tc.line)
			if !ok {
				t.Fatalf("expected %q to match", tc.line)
			}
			if name != tc.matcher {
				t.Errorf("expected matcher %q, got %q", tc.matcher, name)
			}
			if m.Period != tc.period {
				t.Errorf("expected period %q, got %q", tc.period, m.Period)
			}
			if m.ClockExpr != tc.clock {
				t.Errorf("expected clock %q, got %q", tc.clock, m.ClockExpr)
			}
			if m.Text != tc.text {
				t.Errorf("expected text %q, got %q", tc.text, m.Text)
			}
		})
	}
}

func TestMatchActivity_RejectsBareMarkers(t *testing.T) {
	for _, line := range []string{"Morning:", "* Afternoon", "Evening (6 PM)", "Visit the museum"} {
		if _, _, ok := matchActivity(line); ok {
			t.Errorf("expected %q not to match an activity pattern", line)
		}
	}
}
