package models

import "strings"

// Owner represents a person who owns zero or more cars.
type Owner struct {
	// ID is the store-assigned primary key. Zero until the owner is saved.
	ID int64

	// Name is the display name of the owner. Unique across all owners.
	Name string
}

// NewOwner returns a transient owner with the trimmed name.
func NewOwner(name string) (*Owner, error) {
	o := &Owner{Name: strings.TrimSpace(name)}
	if err := o.Validate(); err != nil {
		return nil, err
	}
	return o, nil
}

// Persisted reports whether the owner has been assigned an ID by the store.
func (o *Owner) Persisted() bool {
	return o.ID != 0
}

// Normalize trims the owner's name in place.
func (o *Owner) Normalize() {
	o.Name = strings.TrimSpace(o.Name)
}

// Validate checks the owner's fields without modifying them.
func (o *Owner) Validate() error {
	if strings.TrimSpace(o.Name) == "" {
		return invalid("name", "must be a non-empty string")
	}
	return nil
}
