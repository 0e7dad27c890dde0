package pricing

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

type Package struct {
	Hours   int `json:"hours" validate:"gt=0"`
	KmRange int `json:"km_range" validate:"gt=0"`
}

func (p Package) String() string {
	return fmt.Sprintf("%d hrs (%d km)", p.Hours, p.KmRange)
}

// DefaultPackages keeps the package picker usable when the marketplace can not
// be reached.
var DefaultPackages = []Package{
	{Hours: 4, KmRange: 40},
	{Hours: 8, KmRange: 80},
	{Hours: 12, KmRange: 120},
	{Hours: 24, KmRange: 240},
}

type PackageSource interface {
	RentalPackages(ctx context.Context) ([]Package, error)
}

type Catalog struct {
	source PackageSource
}

func NewCatalog(source PackageSource) *Catalog {
	return &Catalog{source: source}
}

// Packages never returns an empty list.
func (c *Catalog) Packages(ctx context.Context, log *zerolog.Logger) []Package {
	packages, err := c.source.RentalPackages(ctx)
	if err != nil {
		log.Warn().
			Err(err).
			Str("label", "packages").
			Msg("Unable to fetch rental packages, using defaults")

		return defaults()
	}

	valid := make([]Package, 0, len(packages))
	for _, p := range packages {
		if p.Hours > 0 && p.KmRange > 0 {
			valid = append(valid, p)
		}
	}

	if len(valid) == 0 {
		log.Warn().
			Str("label", "packages").
			Msg("Marketplace returned no rental packages, using defaults")

		return defaults()
	}

	return valid
}

func Contains(packages []Package, p Package) bool {
	for _, candidate := range packages {
		if candidate == p {
			return true
		}
	}
	return false
}

func defaults() []Package {
	result := make([]Package, len(DefaultPackages))
	copy(result, DefaultPackages)
	return result
}
