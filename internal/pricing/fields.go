package pricing

import (
	"strings"

	"bitbucket.org/dropcars/vendor-gateway/internal/trip"
)

type Field string

const (
	CostPerKm            Field = "cost_per_km"
	ExtraCostPerKm       Field = "extra_cost_per_km"
	DriverAllowance      Field = "driver_allowance"
	ExtraDriverAllowance Field = "extra_driver_allowance"
	PermitCharges        Field = "permit_charges"
	ExtraPermitCharges   Field = "extra_permit_charges"
	HillCharges          Field = "hill_charges"
	NightCharges         Field = "night_charges"
	TollCharges          Field = "toll_charges"

	PackageHours        Field = "package_hours"
	CostPerHour         Field = "cost_per_hour"
	ExtraCostPerHour    Field = "extra_cost_per_hour"
	CostForAddonKm      Field = "cost_for_addon_km"
	ExtraCostForAddonKm Field = "extra_cost_for_addon_km"
)

type Fields struct {
	Required []Field `json:"required"`
	Optional []Field `json:"optional"`
}

// FieldsFor returns the pricing fields solicited for a trip type. Hourly
// rentals and distance trips never share a field.
func FieldsFor(tripType trip.Type, tollIncluded bool) Fields {
	if tripType.IsHourly() {
		return Fields{
			Required: []Field{PackageHours, CostPerHour},
			Optional: []Field{ExtraCostPerHour, CostForAddonKm, ExtraCostForAddonKm},
		}
	}

	optional := []Field{
		ExtraCostPerKm,
		DriverAllowance,
		ExtraDriverAllowance,
		PermitCharges,
		ExtraPermitCharges,
		HillCharges,
		NightCharges,
	}

	if !tollIncluded {
		optional = append(optional, TollCharges)
	}

	return Fields{
		Required: []Field{CostPerKm},
		Optional: optional,
	}
}

func (f Fields) Contains(field Field) bool {
	for _, candidate := range f.All() {
		if candidate == field {
			return true
		}
	}
	return false
}

func (f Fields) All() []Field {
	all := make([]Field, 0, len(f.Required)+len(f.Optional))
	all = append(all, f.Required...)
	return append(all, f.Optional...)
}

// Prompt is the message shown when a required field is missing.
func (f Field) Prompt() string {
	if f == PackageHours {
		return "Please select package hours"
	}
	return "Please enter " + strings.ReplaceAll(string(f), "_", " ")
}
