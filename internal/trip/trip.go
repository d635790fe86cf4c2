// Package trip holds the saved-trip model that parsed itineraries are
// stored as.
package trip

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/dgallion1/tripgest/internal/itinerary"
)

type Status string

const (
	StatusPlanning  Status = "planning"
	StatusBooked    Status = "booked"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPlanning, StatusBooked, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Booking records reservation details attached to an item.
type Booking struct {
	IsBooked           bool   `json:"is_booked"`
	ConfirmationNumber string `json:"confirmation_number,omitempty"`
	Website            string `json:"website,omitempty"`
}

// Item is a parsed activity once it belongs to a trip.
type Item struct {
	ID string `json:"id"`
	itinerary.Activity
	Description string   `json:"description"`
	Booking     *Booking `json:"booking,omitempty"`
}

type Trip struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Destination string    `json:"destination"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	Budget      float64   `json:"budget"`
	Travelers   int       `json:"travelers"`
	Status      Status    `json:"status"`
	Items       []Item    `json:"items"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

var clockRe = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// Validate checks a trip before it is saved. All problems are reported
// together.
func (t *Trip) Validate() error {
	var errs []error
	if strings.TrimSpace(t.Title) == "" {
		errs = append(errs, errors.New("title is required"))
	}
	if strings.TrimSpace(t.Destination) == "" {
		errs = append(errs, errors.New("destination is required"))
	}
	if !t.StartDate.IsZero() && !t.EndDate.IsZero() && t.EndDate.Before(t.StartDate) {
		errs = append(errs, errors.New("end date is before start date"))
	}
	if t.Travelers < 1 {
		errs = append(errs, errors.New("travelers must be at least 1"))
	}
	if t.Budget < 0 {
		errs = append(errs, errors.New("budget must not be negative"))
	}
	if !t.Status.Valid() {
		errs = append(errs, fmt.Errorf("unknown status %q", t.Status))
	}
	for i, it := range t.Items {
		if it.Day < 1 {
			errs = append(errs, fmt.Errorf("item %d: day must be at least 1", i))
		}
		if !clockRe.MatchString(it.Time) {
			errs = append(errs, fmt.Errorf("item %d: time %q is not HH:MM", i, it.Time))
		}
		if it.EstimatedCost < 0 {
			errs = append(errs, fmt.Errorf("item %d: estimated cost must not be negative", i))
		}
		if it.Duration < 0 {
			errs = append(errs, fmt.Errorf("item %d: duration must not be negative", i))
		}
		if it.Type != "" && !it.Type.Valid() {
			errs = append(errs, fmt.Errorf("item %d: unknown type %q", i, it.Type))
		}
	}
	return errors.Join(errs...)
}

// DurationDays counts calendar days from StartDate to EndDate, both included.
// A trip without dates is one day long.
func (t *Trip) DurationDays() int {
	if t.StartDate.IsZero() || t.EndDate.IsZero() {
		return 1
	}
	start := truncateDay(t.StartDate)
	end := truncateDay(t.EndDate)
	days := int(end.Sub(start).Hours()/24) + 1
	if days < 1 {
		return 1
	}
	return days
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ItemsFromActivities wraps parsed activities as trip items, assigning each a
// fresh ID from newID. The parsed description is copied into Description.
func ItemsFromActivities(acts []itinerary.Activity, newID func() string) []Item {
	items := make([]Item, 0, len(acts))
	for _, a := range acts {
		items = append(items, Item{
			ID:          newID(),
			Activity:    a,
			Description: a.Activity,
		})
	}
	return items
}

const (
	manualItemCost     = 25
	manualItemDuration = 120
	slotGap            = 2 * time.Hour
)

// NextSlot returns a blank item scheduled two hours after the last one in
// items. A slot at or past 22:00 moves to 09:00 the next day; one before 09:00
// is pushed to 09:00.
func NextSlot(items []Item, destination string) Item {
	day, clock := 1, "09:00"
	if n := len(items); n > 0 {
		last := items[n-1]
		if last.Day > 0 {
			day = last.Day
		}
		if t, err := time.Parse("15:04", last.Time); err == nil {
			next := t.Add(slotGap)
			switch {
			case next.Day() != t.Day() || next.Hour() >= 22:
				day++
			case next.Hour() >= 9:
				clock = next.Format("15:04")
			}
		}
	}
	return Item{
		Activity: itinerary.Activity{
			Day:           day,
			Time:          clock,
			Location:      destination,
			EstimatedCost: manualItemCost,
			Duration:      manualItemDuration,
			Type:          itinerary.CategoryActivity,
		},
	}
}

// TotalCost sums the estimated cost of every item.
func (t *Trip) TotalCost() float64 {
	var sum float64
	for _, it := range t.Items {
		sum += it.EstimatedCost
	}
	return sum
}
