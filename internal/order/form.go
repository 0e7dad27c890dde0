package order

import (
	"strings"
	"time"

	"bitbucket.org/dropcars/vendor-gateway/internal/locations"
	"bitbucket.org/dropcars/vendor-gateway/internal/pricing"
	"bitbucket.org/dropcars/vendor-gateway/internal/schema"
	"bitbucket.org/dropcars/vendor-gateway/internal/trip"
	"github.com/shopspring/decimal"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

type MaxAssignTime struct {
	Hours   int `json:"hours" validate:"gte=0"`
	Minutes int `json:"minutes" validate:"gte=0"`
}

func (m MaxAssignTime) TotalMinutes() int {
	return m.Hours*60 + m.Minutes
}

// Form is the state of one order being composed.
type Form struct {
	VendorID       string        `json:"vendor_id"`
	CarType        trip.CarType  `json:"car_type" validate:"car_type"`
	Locations      locations.Set `json:"locations"`
	StartDateTime  time.Time     `json:"start_date_time"`
	CustomerName   string        `json:"customer_name"`
	CustomerNumber string        `json:"customer_number"`
	MaxAssignTime  MaxAssignTime `json:"max_time_to_assign_order"`
	TollIncluded   bool          `json:"toll_charge_update"`
	Pricing        pricing.Form  `json:"pricing"`
	PickupNotes    string        `json:"pickup_notes"`
}

func NewForm(vendorID string, now time.Time) Form {
	return Form{
		VendorID:      vendorID,
		CarType:       trip.DefaultCarType,
		Locations:     locations.New(trip.Oneway),
		StartDateTime: now,
		MaxAssignTime: MaxAssignTime{Hours: 0, Minutes: 10},
		TollIncluded:  true,
		Pricing:       pricing.Form{},
	}
}

func (f *Form) TripType() trip.Type {
	return f.Locations.TripType()
}

// Update carries the detail fields a client may change at once; nil fields
// are left untouched.
type Update struct {
	CarType        *trip.CarType                      `json:"car_type"`
	StartDateTime  *time.Time                         `json:"start_date_time"`
	StartDate      *string                            `json:"start_date"`
	StartTime      *string                            `json:"start_time"`
	CustomerName   *string                            `json:"customer_name"`
	CustomerNumber *string                            `json:"customer_number"`
	MaxAssignTime  *MaxAssignTime                     `json:"max_time_to_assign_order"`
	TollIncluded   *bool                              `json:"toll_charge_update"`
	PickupNotes    *string                            `json:"pickup_notes"`
	PackageHours   *pricing.Package                   `json:"package_hours"`
	Pricing        map[pricing.Field]*decimal.Decimal `json:"pricing"`
}

// Apply changes the form only when the whole update is acceptable. The
// package, when given, must be one of the session packages.
func (f *Form) Apply(u Update, packages []pricing.Package) error {
	updated := *f
	updated.Pricing = f.Pricing.Clone()

	if u.CarType != nil {
		if !u.CarType.IsKnown() {
			return schema.NewValidationError("car_type", "Please select a valid car type")
		}
		updated.CarType = *u.CarType
	}

	if u.StartDateTime != nil {
		updated.StartDateTime = *u.StartDateTime
	}

	if u.StartDate != nil {
		date, err := time.ParseInLocation(dateLayout, *u.StartDate, updated.StartDateTime.Location())
		if err != nil {
			return schema.NewValidationError("start_date", "Please select a valid start date")
		}
		updated.StartDateTime = withDate(updated.StartDateTime, date)
	}

	if u.StartTime != nil {
		clock, err := time.Parse(timeLayout, *u.StartTime)
		if err != nil {
			return schema.NewValidationError("start_time", "Please select a valid start time")
		}
		updated.StartDateTime = withClock(updated.StartDateTime, clock)
	}

	if u.CustomerName != nil {
		updated.CustomerName = *u.CustomerName
	}

	if u.CustomerNumber != nil {
		updated.CustomerNumber = strings.TrimSpace(*u.CustomerNumber)
	}

	if u.MaxAssignTime != nil {
		if u.MaxAssignTime.Hours < 0 || u.MaxAssignTime.Minutes < 0 {
			return schema.NewValidationError("max_time_to_assign_order", "Max time to assign order can not be negative")
		}
		updated.MaxAssignTime = *u.MaxAssignTime
	}

	if u.TollIncluded != nil {
		updated.TollIncluded = *u.TollIncluded
	}

	if u.PickupNotes != nil {
		updated.PickupNotes = *u.PickupNotes
	}

	if u.PackageHours != nil {
		if !pricing.Contains(packages, *u.PackageHours) {
			return schema.NewValidationError(string(pricing.PackageHours), "Please select one of the available packages")
		}
		selected := *u.PackageHours
		updated.Pricing.PackageHours = &selected
	}

	if len(u.Pricing) > 0 {
		if err := updated.Pricing.Apply(u.Pricing); err != nil {
			return schema.NewValidationError("pricing", err.Error())
		}
	}

	*f = updated

	return nil
}

// withDate keeps the time of day, as the date picker does.
func withDate(current time.Time, date time.Time) time.Time {
	return time.Date(
		date.Year(), date.Month(), date.Day(),
		current.Hour(), current.Minute(), current.Second(), current.Nanosecond(),
		current.Location(),
	)
}

// withClock keeps the calendar day, as the time picker does.
func withClock(current time.Time, clock time.Time) time.Time {
	return time.Date(
		current.Year(), current.Month(), current.Day(),
		clock.Hour(), clock.Minute(), current.Second(), current.Nanosecond(),
		current.Location(),
	)
}
