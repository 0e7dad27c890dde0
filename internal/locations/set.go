package locations

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"bitbucket.org/dropcars/vendor-gateway/internal/trip"
)

const DerivedSlotMessage = "Return location is automatically set to pickup location for round trip"

var (
	ErrDerivedSlot = errors.New(DerivedSlotMessage)
	ErrOutOfRange  = errors.New("location position out of range")
)

// Set is the ordered collection of stops of one order form. Positions are
// always the contiguous range [0, Len()) and the size always respects the
// policy of the active trip type.
type Set struct {
	tripType trip.Type
	slots    []string
}

func New(tripType trip.Type) Set {
	s := Set{}
	s.Reset(tripType)
	return s
}

// Reset replaces the set with the default shape of the trip type, dropping
// everything entered so far.
func (s *Set) Reset(tripType trip.Type) {
	policy := trip.PolicyFor(tripType)

	s.tripType = policy.Type
	s.slots = make([]string, policy.DefaultLocations)
}

func (s *Set) TripType() trip.Type {
	if s.tripType == "" {
		return trip.PolicyFor(s.tripType).Type
	}
	return s.tripType
}

func (s *Set) Len() int {
	return len(s.slots)
}

func (s *Set) At(position int) (string, bool) {
	if !s.inRange(position) {
		return "", false
	}
	return s.slots[position], true
}

func (s *Set) Values() []string {
	values := make([]string, len(s.slots))
	copy(values, s.slots)
	return values
}

func (s *Set) Clone() Set {
	return Set{tripType: s.tripType, slots: s.Values()}
}

// Map is the wire representation: positions as string keys.
func (s *Set) Map() map[string]string {
	result := make(map[string]string, len(s.slots))
	for i, value := range s.slots {
		result[strconv.Itoa(i)] = value
	}
	return result
}

// SetLocation is a no-op when the position is outside the set or holds the
// derived return leg of a round trip.
func (s *Set) SetLocation(position int, value string) bool {
	if !s.inRange(position) || s.IsDerived(position) {
		return false
	}

	s.slots[position] = value

	if position == 0 {
		s.mirror()
	}

	return true
}

func (s *Set) CanAddStop() bool {
	return len(s.slots) < trip.PolicyFor(s.TripType()).MaxLocations
}

// AddStop appends an empty slot. For round trips the new last slot becomes the
// return leg and mirrors the pickup.
func (s *Set) AddStop() bool {
	if !s.CanAddStop() {
		return false
	}

	s.slots = append(s.slots, "")
	s.mirror()

	return true
}

// Move takes the slot at from and reinserts it at to. Whether the trip type
// allows reordering is decided by the caller.
func (s *Set) Move(from int, to int) bool {
	if from == to || !s.inRange(from) || !s.inRange(to) {
		return false
	}

	moved := s.slots[from]
	reordered := make([]string, 0, len(s.slots))
	reordered = append(reordered, s.slots[:from]...)
	reordered = append(reordered, s.slots[from+1:]...)

	reordered = append(reordered[:to], append([]string{moved}, reordered[to:]...)...)
	s.slots = reordered

	s.mirror()

	return true
}

func (s *Set) CanRemove() bool {
	return len(s.slots)-1 >= trip.PolicyFor(s.TripType()).MinLocations
}

func (s *Set) Remove(position int) bool {
	if !s.inRange(position) || !s.CanRemove() {
		return false
	}

	s.slots = append(s.slots[:position], s.slots[position+1:]...)
	s.mirror()

	return true
}

// IsDerived reports whether the slot is computed from the pickup and can not
// be authored directly.
func (s *Set) IsDerived(position int) bool {
	return s.TripType() == trip.RoundTrip && len(s.slots) > 1 && position == len(s.slots)-1
}

func (s *Set) OpenEditor(position int) error {
	if !s.inRange(position) {
		return ErrOutOfRange
	}

	if s.IsDerived(position) {
		return ErrDerivedSlot
	}

	return nil
}

func (s *Set) LabelFor(position int) string {
	if !s.inRange(position) {
		return ""
	}

	last := len(s.slots) - 1

	switch {
	case s.TripType() == trip.HourlyRental:
		return "Pickup Location"
	case position == 0:
		return "Pickup Location"
	case s.TripType() == trip.RoundTrip && position == last:
		return "Return to Pickup"
	case position == last:
		return "Final Destination"
	default:
		return fmt.Sprintf("Stop %d", position)
	}
}

// FirstEmpty returns the first position without a value. Blank values count as empty.
func (s *Set) FirstEmpty() (int, bool) {
	for i, value := range s.slots {
		if strings.TrimSpace(value) == "" {
			return i, true
		}
	}
	return 0, false
}

func (s *Set) mirror() {
	if s.TripType() != trip.RoundTrip || len(s.slots) <= 1 {
		return
	}
	s.slots[len(s.slots)-1] = s.slots[0]
}

func (s *Set) inRange(position int) bool {
	return position >= 0 && position < len(s.slots)
}

type storedSet struct {
	TripType  trip.Type         `json:"trip_type"`
	Locations map[string]string `json:"locations"`
}

func (s Set) MarshalJSON() ([]byte, error) {
	return json.Marshal(storedSet{
		TripType:  s.TripType(),
		Locations: s.Map(),
	})
}

// UnmarshalJSON repairs anything that breaks the invariants (gaps, wrong
// size) by falling back to the default shape of the trip type.
func (s *Set) UnmarshalJSON(data []byte) error {
	var stored storedSet
	if err := json.Unmarshal(data, &stored); err != nil {
		return err
	}

	s.Reset(stored.TripType)

	slots, ok := contiguous(stored.Locations)
	if !ok {
		return nil
	}

	policy := trip.PolicyFor(s.tripType)
	if len(slots) < policy.MinLocations || len(slots) > policy.MaxLocations {
		return nil
	}

	s.slots = slots
	s.mirror()

	return nil
}

func contiguous(locations map[string]string) ([]string, bool) {
	positions := make([]int, 0, len(locations))
	for key := range locations {
		position, err := strconv.Atoi(key)
		if err != nil {
			return nil, false
		}
		positions = append(positions, position)
	}
	sort.Ints(positions)

	slots := make([]string, len(positions))
	for i, position := range positions {
		if position != i {
			return nil, false
		}
		slots[i] = locations[strconv.Itoa(position)]
	}

	return slots, true
}
