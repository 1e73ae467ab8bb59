package domain

import (
	"fmt"
	"regexp"
	"strings"
)

// buildingPattern accepts numeric building labels with an optional single
// letter suffix, e.g. "13" or "13-А". Latin and Cyrillic letters are distinct
// on purpose: labels are opaque identifiers taken verbatim from the source data.
var buildingPattern = regexp.MustCompile(`^[0-9]+(-[A-Za-zА-ЯІЇЄҐа-яіїєґ])?$`)

// Address is the outage-side location: a street and the set of affected buildings.
type Address struct {
	StreetID   int
	StreetName string
	Buildings  []string
	City       string
}

// NewAddress validates and constructs an Address. City is optional.
func NewAddress(streetID int, streetName string, buildings []string, city string) (Address, error) {
	if streetID <= 0 {
		return Address{}, fmt.Errorf("%w: street id must be positive", ErrValidation)
	}
	if strings.TrimSpace(streetName) == "" {
		return Address{}, fmt.Errorf("%w: street name is empty", ErrValidation)
	}
	if len(buildings) == 0 {
		return Address{}, fmt.Errorf("%w: buildings list is empty", ErrValidation)
	}
	for _, b := range buildings {
		if strings.TrimSpace(b) == "" {
			return Address{}, fmt.Errorf("%w: empty building label", ErrValidation)
		}
	}
	return Address{
		StreetID:   streetID,
		StreetName: streetName,
		Buildings:  buildings,
		City:       city,
	}, nil
}

// Covers reports whether the outage address includes the user address:
// same street id and the user's building present in the affected set.
// Building comparison is exact, byte for byte.
func (a Address) Covers(ua UserAddress) bool {
	if a.StreetID != ua.StreetID {
		return false
	}
	for _, b := range a.Buildings {
		if b == ua.Building {
			return true
		}
	}
	return false
}

// UserAddress is the subscriber-side address: one street, one building.
type UserAddress struct {
	StreetID   int
	StreetName string
	Building   string
	City       string
}

// NewUserAddress validates and constructs a UserAddress. A malformed building
// label yields ErrBuildingFormat so the caller can ask the user to retry.
func NewUserAddress(streetID int, streetName, building string) (UserAddress, error) {
	if streetID <= 0 {
		return UserAddress{}, fmt.Errorf("%w: street id must be positive", ErrValidation)
	}
	if strings.TrimSpace(streetName) == "" {
		return UserAddress{}, fmt.Errorf("%w: street name is empty", ErrValidation)
	}
	if strings.TrimSpace(building) == "" {
		return UserAddress{}, fmt.Errorf("%w: building is empty", ErrBuildingFormat)
	}
	if !buildingPattern.MatchString(building) {
		return UserAddress{}, fmt.Errorf("%w: %q", ErrBuildingFormat, building)
	}
	return UserAddress{
		StreetID:   streetID,
		StreetName: streetName,
		Building:   building,
	}, nil
}
