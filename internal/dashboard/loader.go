package dashboard

import (
	"context"

	"bitbucket.org/dropcars/vendor-gateway/internal/marketplace"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

type Fleet interface {
	VehicleOwner(ctx context.Context) (marketplace.VehicleOwner, error)
	Cars(ctx context.Context, path string) ([]marketplace.Car, error)
	Drivers(ctx context.Context, path string) ([]marketplace.Driver, error)
}

type Summary struct {
	TotalCars     int             `json:"total_cars"`
	TotalDrivers  int             `json:"total_drivers"`
	WalletBalance decimal.Decimal `json:"wallet_balance"`
}

type Dashboard struct {
	UserInfo marketplace.VehicleOwner `json:"user_info"`
	Cars     []marketplace.Car        `json:"cars"`
	Drivers  []marketplace.Driver     `json:"drivers"`
	Summary  Summary                  `json:"summary"`
}

type Loader struct {
	fleet    Fleet
	observer AttemptObserver
}

func NewLoader(fleet Fleet, observer AttemptObserver) *Loader {
	return &Loader{
		fleet:    fleet,
		observer: observer,
	}
}

// Load fetches the owner first; without an owner nothing else is fetched.
// Cars and drivers are then aggregated side by side.
func (l *Loader) Load(ctx context.Context, log *zerolog.Logger) (*Dashboard, error) {
	owner, err := l.fleet.VehicleOwner(ctx)
	if err != nil {
		return nil, err
	}

	carEndpoints, err := marketplace.CarEndpoints(owner)
	if err != nil {
		return nil, err
	}

	driverEndpoints, err := marketplace.DriverEndpoints(owner)
	if err != nil {
		return nil, err
	}

	var (
		cars    []marketplace.Car
		drivers []marketplace.Driver
	)

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		cars = FetchFirstAvailable(groupCtx, log, l.observer, "cars", sources(carEndpoints, l.fleet.Cars))
		return nil
	})

	group.Go(func() error {
		drivers = FetchFirstAvailable(groupCtx, log, l.observer, "drivers", sources(driverEndpoints, l.fleet.Drivers))
		return nil
	})

	if err := group.Wait(); err != nil {
		return nil, err
	}

	return &Dashboard{
		UserInfo: owner,
		Cars:     cars,
		Drivers:  drivers,
		Summary: Summary{
			TotalCars:     len(cars),
			TotalDrivers:  len(drivers),
			WalletBalance: owner.WalletBalance,
		},
	}, nil
}

func sources[T any](paths []string, fetch func(ctx context.Context, path string) ([]T, error)) []Source[T] {
	result := make([]Source[T], 0, len(paths))

	for _, path := range paths {
		path := path
		result = append(result, Source[T]{
			Name: path,
			Fetch: func(ctx context.Context) ([]T, error) {
				return fetch(ctx, path)
			},
		})
	}

	return result
}
