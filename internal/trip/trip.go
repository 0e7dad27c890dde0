package trip

import "strings"

type Type string

const (
	Oneway       Type = "Oneway"
	RoundTrip    Type = "Round Trip"
	MultiCity    Type = "Multy City"
	HourlyRental Type = "Hourly Rental"
)

type PricingMode string

const (
	DistancePricing PricingMode = "DISTANCE"
	HourlyPricing   PricingMode = "HOURLY"
)

type Policy struct {
	Type             Type        `json:"trip_type"`
	Label            string      `json:"label"`
	MinLocations     int         `json:"min_locations"`
	MaxLocations     int         `json:"max_locations"`
	DefaultLocations int         `json:"default_locations"`
	PricingMode      PricingMode `json:"pricing_mode"`
	Reorderable      bool        `json:"reorderable"`
}

// First entry is the fallback for unknown trip types.
var policies = []Policy{
	{
		Type:             Oneway,
		Label:            "One Way",
		MinLocations:     2,
		MaxLocations:     2,
		DefaultLocations: 2,
		PricingMode:      DistancePricing,
	},
	{
		Type:             RoundTrip,
		Label:            "Round Trip",
		MinLocations:     3,
		MaxLocations:     10,
		DefaultLocations: 3,
		PricingMode:      DistancePricing,
		Reorderable:      true,
	},
	{
		Type:             MultiCity,
		Label:            "Multi City",
		MinLocations:     3,
		MaxLocations:     10,
		DefaultLocations: 3,
		PricingMode:      DistancePricing,
		Reorderable:      true,
	},
	{
		Type:             HourlyRental,
		Label:            "Hourly Rental",
		MinLocations:     1,
		MaxLocations:     1,
		DefaultLocations: 1,
		PricingMode:      HourlyPricing,
	},
}

var aliases = map[string]Type{
	"oneway":       Oneway,
	"roundtrip":    RoundTrip,
	"multicity":    MultiCity,
	"multycity":    MultiCity,
	"hourlyrental": HourlyRental,
	"hourly":       HourlyRental,
}

// PolicyFor never fails: unknown types get the first policy of the table.
func PolicyFor(t Type) Policy {
	for _, policy := range policies {
		if policy.Type == t {
			return policy
		}
	}

	return policies[0]
}

func Policies() []Policy {
	result := make([]Policy, len(policies))
	copy(result, policies)
	return result
}

// Parse maps wire values and loose spellings ("RoundTrip", "round_trip") to a
// known type, falling back to the first enumerated type.
func Parse(value string) Type {
	normalized := strings.NewReplacer(" ", "", "_", "", "-", "").Replace(strings.ToLower(strings.TrimSpace(value)))

	if t, ok := aliases[normalized]; ok {
		return t
	}

	return policies[0].Type
}

func (t Type) Policy() Policy {
	return PolicyFor(t)
}

func (t Type) IsHourly() bool {
	return PolicyFor(t).PricingMode == HourlyPricing
}

func (t Type) IsKnown() bool {
	for _, policy := range policies {
		if policy.Type == t {
			return true
		}
	}
	return false
}
