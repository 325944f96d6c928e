package models

import (
	"strconv"
	"time"

	"theaterwecker/core/utils"
)

// City is the top of the ownership chain.
type City struct {
	ID   uint   `gorm:"column:id;primaryKey" json:"id"`
	Name string `gorm:"column:name;size:100;not null;uniqueIndex" json:"name"`
}

// TableName overrides the table name.
func (City) TableName() string {
	return "cities"
}

// Institution owns locations, categories and, through them, performances.
type Institution struct {
	ID     uint   `gorm:"column:id;primaryKey" json:"id"`
	CityID uint   `gorm:"column:city_id;not null;uniqueIndex:idx_institution_city_name" json:"city_id"`
	Name   string `gorm:"column:name;size:100;not null;uniqueIndex:idx_institution_city_name" json:"name"`
}

// TableName overrides the table name.
func (Institution) TableName() string {
	return "institutions"
}

// Location is a venue. It is unique per institution by canonical key.
type Location struct {
	ID            uint   `gorm:"column:id;primaryKey" json:"id"`
	InstitutionID uint   `gorm:"column:institution_id;not null;uniqueIndex:idx_location_institution_key" json:"institution_id"`
	Key           string `gorm:"column:name_key;size:191;not null;uniqueIndex:idx_location_institution_key" json:"key"`
	Name          string `gorm:"column:name;size:191;not null" json:"name"`
}

// TableName overrides the table name.
func (Location) TableName() string {
	return "locations"
}

// Category groups performances (Drama, Oper, Sonstiges). Unique per
// institution by canonical key.
type Category struct {
	ID            uint   `gorm:"column:id;primaryKey" json:"id"`
	InstitutionID uint   `gorm:"column:institution_id;not null;uniqueIndex:idx_category_institution_key" json:"institution_id"`
	Key           string `gorm:"column:name_key;size:191;not null;uniqueIndex:idx_category_institution_key" json:"key"`
	Name          string `gorm:"column:name;size:191;not null" json:"name"`
}

// TableName overrides the table name.
func (Category) TableName() string {
	return "categories"
}

// Performance is one dated, ticketed show. IdentityKey is derived from
// (title, location, category, begin, description) and is unique.
type Performance struct {
	ID          uint      `gorm:"column:id;primaryKey" json:"id"`
	Title       string    `gorm:"column:title;size:255;not null" json:"title"`
	Begin       time.Time `gorm:"column:begin_at;not null;index" json:"begin"`
	LocationID  uint      `gorm:"column:location_id;not null;index" json:"location_id"`
	CategoryID  uint      `gorm:"column:category_id;not null;index" json:"category_id"`
	Description string    `gorm:"column:description;type:text;not null" json:"description"`
	IdentityKey string    `gorm:"column:identity_key;size:64;not null;uniqueIndex" json:"identity_key"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"created_at"`
}

// TableName overrides the table name.
func (Performance) TableName() string {
	return "performances"
}

// All returns every model for migration.
func All() []any {
	return []any{&City{}, &Institution{}, &Location{}, &Category{}, &Performance{}}
}

// IdentityKey hashes the identity tuple. Begin is compared as a UTC instant.
func IdentityKey(title string, locationID, categoryID uint, begin time.Time, description string) string {
	return utils.HashKey(
		title,
		strconv.FormatUint(uint64(locationID), 10),
		strconv.FormatUint(uint64(categoryID), 10),
		begin.UTC().Format(time.RFC3339),
		description,
	)
}

// WithIdentity returns p with IdentityKey computed from its fields.
func (p Performance) WithIdentity() Performance {
	p.IdentityKey = IdentityKey(p.Title, p.LocationID, p.CategoryID, p.Begin, p.Description)
	return p
}
