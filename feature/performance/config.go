package performance

import (
	"fmt"
	"time"
)

// Config identifies the institution whose schedule is reconciled.
type Config struct {
	// City owning the institution.
	City string `mapstructure:"city" default:"Chemnitz"`
	// Institution whose locations, categories and performances are managed.
	Institution string `mapstructure:"institution" default:"Theater"`
	// Timezone the listing's wall-clock times are read in.
	Timezone string `mapstructure:"timezone" default:"Europe/Berlin"`
	// DefaultLocation is used when a record names no venue.
	DefaultLocation string `mapstructure:"default_location" default:"Theater Chemnitz"`
	// DefaultCategory is used when a record carries no category.
	DefaultCategory string `mapstructure:"default_category" default:"Sonstiges"`
}

// Location loads the configured timezone.
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}
