package order

import (
	"time"

	"bitbucket.org/dropcars/vendor-gateway/internal/pricing"
	"bitbucket.org/dropcars/vendor-gateway/internal/trip"
	"github.com/google/uuid"
)

// Session is one order being composed by a vendor, from the moment the
// create screen opens until it is left.
type Session struct {
	ID        string            `json:"id"`
	Form      Form              `json:"form"`
	Flow      Flow              `json:"flow"`
	Packages  []pricing.Package `json:"packages"`
	CreatedAt time.Time         `json:"created_at"`
}

func NewSession(vendorID string, packages []pricing.Package, now time.Time) *Session {
	return &Session{
		ID:        uuid.NewString(),
		Form:      NewForm(vendorID, now),
		Flow:      NewFlow(),
		Packages:  packages,
		CreatedAt: now,
	}
}

// Mutate applies change to the form. Any successful change invalidates a
// quote computed for the previous form.
func (s *Session) Mutate(change func(form *Form) error) error {
	form := s.Form
	form.Locations = s.Form.Locations.Clone()
	form.Pricing = s.Form.Pricing.Clone()

	if err := change(&form); err != nil {
		return err
	}

	s.Form = form
	s.Flow.Invalidate()

	return nil
}

// InFlight reports whether a quote or confirm request has not finished.
func (s *Session) InFlight() bool {
	return s.Flow.State == QuoteRequested || s.Flow.State == ConfirmRequested
}

type LocationView struct {
	Position int    `json:"position"`
	Label    string `json:"label"`
	Value    string `json:"value"`
	Derived  bool   `json:"derived"`
}

type View struct {
	ID         string            `json:"id"`
	Policy     trip.Policy       `json:"policy"`
	Form       Form              `json:"form"`
	Locations  []LocationView    `json:"locations"`
	CanAddStop bool              `json:"can_add_stop"`
	CanRemove  bool              `json:"can_remove"`
	Fields     pricing.Fields    `json:"fields"`
	Packages   []pricing.Package `json:"packages"`
	Flow       Flow              `json:"flow"`
	CreatedAt  time.Time         `json:"created_at"`
}

func (s *Session) View() View {
	set := s.Form.Locations

	locations := make([]LocationView, 0, set.Len())
	for position, value := range set.Values() {
		locations = append(locations, LocationView{
			Position: position,
			Label:    set.LabelFor(position),
			Value:    value,
			Derived:  set.IsDerived(position),
		})
	}

	return View{
		ID:         s.ID,
		Policy:     s.Form.TripType().Policy(),
		Form:       s.Form,
		Locations:  locations,
		CanAddStop: set.CanAddStop(),
		CanRemove:  set.CanRemove(),
		Fields:     pricing.FieldsFor(s.Form.TripType(), s.Form.TollIncluded),
		Packages:   s.Packages,
		Flow:       s.Flow,
		CreatedAt:  s.CreatedAt,
	}
}
