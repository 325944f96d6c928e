// Package models contains the gorm models of the schedule: cities,
// institutions, locations, categories and performances.
package models
