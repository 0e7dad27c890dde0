package pricing

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrUnknownField   = errors.New("unknown pricing field")
	ErrNegativeAmount = errors.New("pricing amounts can not be negative")
)

var amountFields = map[Field]bool{
	CostPerKm:            true,
	ExtraCostPerKm:       true,
	DriverAllowance:      true,
	ExtraDriverAllowance: true,
	PermitCharges:        true,
	ExtraPermitCharges:   true,
	HillCharges:          true,
	NightCharges:         true,
	TollCharges:          true,
	CostPerHour:          true,
	ExtraCostPerHour:     true,
	CostForAddonKm:       true,
	ExtraCostForAddonKm:  true,
}

// Form holds every amount entered so far, for both pricing modes. Which of
// them reach the marketplace is decided by the projections.
type Form struct {
	Amounts      map[Field]decimal.Decimal `json:"amounts,omitempty"`
	PackageHours *Package                  `json:"package_hours,omitempty"`
}

func (f Form) Has(field Field) bool {
	if field == PackageHours {
		return f.PackageHours != nil
	}

	_, ok := f.Amounts[field]
	return ok
}

func (f Form) Amount(field Field) decimal.Decimal {
	return f.Amounts[field]
}

func (f Form) Clone() Form {
	clone := Form{}

	if f.Amounts != nil {
		clone.Amounts = make(map[Field]decimal.Decimal, len(f.Amounts))
		for field, value := range f.Amounts {
			clone.Amounts[field] = value
		}
	}

	if f.PackageHours != nil {
		selected := *f.PackageHours
		clone.PackageHours = &selected
	}

	return clone
}

// Apply merges entered amounts into the form; a nil value clears the field.
// Nothing is applied when one of the values is rejected.
func (f *Form) Apply(values map[Field]*decimal.Decimal) error {
	for field, value := range values {
		if !amountFields[field] {
			return fmt.Errorf("%w: %s", ErrUnknownField, field)
		}
		if value != nil && value.IsNegative() {
			return fmt.Errorf("%w: %s", ErrNegativeAmount, field)
		}
	}

	if f.Amounts == nil {
		f.Amounts = make(map[Field]decimal.Decimal, len(values))
	}

	for field, value := range values {
		if value == nil {
			delete(f.Amounts, field)
			continue
		}
		f.Amounts[field] = *value
	}

	return nil
}

type DistanceProfile struct {
	CostPerKm            decimal.Decimal
	ExtraCostPerKm       decimal.Decimal
	DriverAllowance      decimal.Decimal
	ExtraDriverAllowance decimal.Decimal
	PermitCharges        decimal.Decimal
	ExtraPermitCharges   decimal.Decimal
	HillCharges          decimal.Decimal
	NightCharges         decimal.Decimal
	// nil when toll is bundled into the quote
	TollCharges *decimal.Decimal
}

type HourlyProfile struct {
	Package             Package
	CostPerHour         decimal.Decimal
	ExtraCostPerHour    decimal.Decimal
	CostForAddonKm      decimal.Decimal
	ExtraCostForAddonKm decimal.Decimal
}

// Distance projects the per-km amounts; optional fields left empty are zero.
func (f Form) Distance(tollIncluded bool) DistanceProfile {
	profile := DistanceProfile{
		CostPerKm:            f.Amount(CostPerKm),
		ExtraCostPerKm:       f.Amount(ExtraCostPerKm),
		DriverAllowance:      f.Amount(DriverAllowance),
		ExtraDriverAllowance: f.Amount(ExtraDriverAllowance),
		PermitCharges:        f.Amount(PermitCharges),
		ExtraPermitCharges:   f.Amount(ExtraPermitCharges),
		HillCharges:          f.Amount(HillCharges),
		NightCharges:         f.Amount(NightCharges),
	}

	if !tollIncluded {
		toll := f.Amount(TollCharges)
		profile.TollCharges = &toll
	}

	return profile
}

func (f Form) Hourly() HourlyProfile {
	profile := HourlyProfile{
		CostPerHour:         f.Amount(CostPerHour),
		ExtraCostPerHour:    f.Amount(ExtraCostPerHour),
		CostForAddonKm:      f.Amount(CostForAddonKm),
		ExtraCostForAddonKm: f.Amount(ExtraCostForAddonKm),
	}

	if f.PackageHours != nil {
		profile.Package = *f.PackageHours
	}

	return profile
}
