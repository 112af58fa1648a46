package models

import (
	"fmt"
	"strings"
)

// YearRange bounds the model years a car may have, inclusive on both ends.
type YearRange struct {
	Min int
	Max int
}

// DefaultYearRange spans the first production automobile to 2100.
var DefaultYearRange = YearRange{Min: 1886, Max: 2100}

// Contains reports whether year lies within the range.
func (r YearRange) Contains(year int) bool {
	return year >= r.Min && year <= r.Max
}

func (r YearRange) String() string {
	return fmt.Sprintf("%d-%d", r.Min, r.Max)
}

// Car represents a vehicle owned by exactly one owner.
type Car struct {
	// ID is the store-assigned primary key. Zero until the car is saved.
	ID int64

	// Make is the manufacturer (e.g., "Toyota").
	Make string

	// Model is the model name (e.g., "Corolla").
	Model string

	// Year is the model year.
	Year int

	// OwnerID references the owning Owner's ID.
	OwnerID int64
}

// NewCar returns a transient car with trimmed text fields, validated
// against years.
func NewCar(carMake, model string, year int, ownerID int64, years YearRange) (*Car, error) {
	c := &Car{
		Make:    carMake,
		Model:   model,
		Year:    year,
		OwnerID: ownerID,
	}
	c.Normalize()
	if err := c.Validate(years); err != nil {
		return nil, err
	}
	return c, nil
}

// Persisted reports whether the car has been assigned an ID by the store.
func (c *Car) Persisted() bool {
	return c.ID != 0
}

// Normalize trims the car's text fields in place.
func (c *Car) Normalize() {
	c.Make = strings.TrimSpace(c.Make)
	c.Model = strings.TrimSpace(c.Model)
}

// Validate checks the car's fields without modifying them.
// Whether OwnerID refers to a live owner is left to the store.
func (c *Car) Validate(years YearRange) error {
	if strings.TrimSpace(c.Make) == "" {
		return invalid("make", "must be a non-empty string")
	}
	if strings.TrimSpace(c.Model) == "" {
		return invalid("model", "must be a non-empty string")
	}
	if !years.Contains(c.Year) {
		return invalid("year", "must be between %d and %d", years.Min, years.Max)
	}
	if c.OwnerID <= 0 {
		return invalid("owner_id", "must be a positive integer")
	}
	return nil
}

// Label is the short form used in listings, e.g. "2020 Toyota Corolla".
func (c *Car) Label() string {
	return fmt.Sprintf("%d %s %s", c.Year, c.Make, c.Model)
}
