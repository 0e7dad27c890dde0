package order

import (
	"time"

	"bitbucket.org/dropcars/vendor-gateway/internal/pricing"
	"bitbucket.org/dropcars/vendor-gateway/internal/schema"
	"bitbucket.org/dropcars/vendor-gateway/internal/trip"
)

type RequestBase struct {
	VendorID             string            `json:"vendor_id"`
	TripType             trip.Type         `json:"trip_type"`
	CarType              trip.CarType      `json:"car_type"`
	PickupDropLocation   map[string]string `json:"pickup_drop_location"`
	StartDateTime        string            `json:"start_date_time"`
	CustomerName         string            `json:"customer_name"`
	CustomerNumber       string            `json:"customer_number"`
	MaxTimeToAssignOrder int               `json:"max_time_to_assign_order"`
	TollChargeUpdate     bool              `json:"toll_charge_update"`
	PickupNotes          string            `json:"pickup_notes"`
}

type DistanceQuoteRequest struct {
	RequestBase
	CostPerKm            float64  `json:"cost_per_km"`
	ExtraCostPerKm       float64  `json:"extra_cost_per_km"`
	DriverAllowance      float64  `json:"driver_allowance"`
	ExtraDriverAllowance float64  `json:"extra_driver_allowance"`
	PermitCharges        float64  `json:"permit_charges"`
	ExtraPermitCharges   float64  `json:"extra_permit_charges"`
	HillCharges          float64  `json:"hill_charges"`
	NightCharges         float64  `json:"night_charges"`
	TollCharges          *float64 `json:"toll_charges,omitempty"`
}

type HourlyQuoteRequest struct {
	RequestBase
	PackageHours        pricing.Package `json:"package_hours"`
	CostPerHour         float64         `json:"cost_per_hour"`
	ExtraCostPerHour    float64         `json:"extra_cost_per_hour"`
	CostForAddonKm      float64         `json:"cost_for_addon_km"`
	ExtraCostForAddonKm float64         `json:"extra_cost_for_addon_km"`
}

type SendTo string

const (
	SendToAll      SendTo = "ALL"
	SendToNearCity SendTo = "NEAR_CITY"
)

// Distribution says who in the marketplace can see the order.
type Distribution struct {
	SendTo   SendTo   `json:"send_to" validate:"oneof=ALL NEAR_CITY"`
	NearCity []string `json:"near_city" validate:"dive,required"`
}

func DefaultDistribution() Distribution {
	return Distribution{SendTo: SendToAll, NearCity: []string{}}
}

func (d Distribution) Validate() *schema.ResponseError {
	if err := structErrors(validate.Struct(d)); err != nil {
		return err
	}

	if d.SendTo == SendToNearCity && len(d.NearCity) == 0 {
		return schema.NewValidationError("near_city", fieldMessages["near_city"])
	}

	return nil
}

type DistanceConfirmRequest struct {
	DistanceQuoteRequest
	Distribution
}

type HourlyConfirmRequest struct {
	HourlyQuoteRequest
	Distribution
}

func newRequestBase(form Form) RequestBase {
	return RequestBase{
		VendorID:             form.VendorID,
		TripType:             form.TripType(),
		CarType:              form.CarType,
		PickupDropLocation:   form.Locations.Map(),
		StartDateTime:        form.StartDateTime.Format(time.RFC3339),
		CustomerName:         form.CustomerName,
		CustomerNumber:       form.CustomerNumber,
		MaxTimeToAssignOrder: form.MaxAssignTime.TotalMinutes(),
		TollChargeUpdate:     form.TollIncluded,
		PickupNotes:          form.PickupNotes,
	}
}

func NewDistanceQuoteRequest(form Form) DistanceQuoteRequest {
	profile := form.Pricing.Distance(form.TollIncluded)

	request := DistanceQuoteRequest{
		RequestBase:          newRequestBase(form),
		CostPerKm:            profile.CostPerKm.InexactFloat64(),
		ExtraCostPerKm:       profile.ExtraCostPerKm.InexactFloat64(),
		DriverAllowance:      profile.DriverAllowance.InexactFloat64(),
		ExtraDriverAllowance: profile.ExtraDriverAllowance.InexactFloat64(),
		PermitCharges:        profile.PermitCharges.InexactFloat64(),
		ExtraPermitCharges:   profile.ExtraPermitCharges.InexactFloat64(),
		HillCharges:          profile.HillCharges.InexactFloat64(),
		NightCharges:         profile.NightCharges.InexactFloat64(),
	}

	if profile.TollCharges != nil {
		toll := profile.TollCharges.InexactFloat64()
		request.TollCharges = &toll
	}

	return request
}

func NewHourlyQuoteRequest(form Form) HourlyQuoteRequest {
	profile := form.Pricing.Hourly()

	return HourlyQuoteRequest{
		RequestBase:         newRequestBase(form),
		PackageHours:        profile.Package,
		CostPerHour:         profile.CostPerHour.InexactFloat64(),
		ExtraCostPerHour:    profile.ExtraCostPerHour.InexactFloat64(),
		CostForAddonKm:      profile.CostForAddonKm.InexactFloat64(),
		ExtraCostForAddonKm: profile.ExtraCostForAddonKm.InexactFloat64(),
	}
}

func withDistribution(d Distribution) Distribution {
	if d.NearCity == nil {
		d.NearCity = []string{}
	}
	return d
}

func NewDistanceConfirmRequest(form Form, d Distribution) DistanceConfirmRequest {
	return DistanceConfirmRequest{
		DistanceQuoteRequest: NewDistanceQuoteRequest(form),
		Distribution:         withDistribution(d),
	}
}

func NewHourlyConfirmRequest(form Form, d Distribution) HourlyConfirmRequest {
	return HourlyConfirmRequest{
		HourlyQuoteRequest: NewHourlyQuoteRequest(form),
		Distribution:       withDistribution(d),
	}
}
