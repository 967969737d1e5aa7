package models

import (
	"strings"
	"time"
)

type Room struct {
	ID            int64     `yaml:"id" json:"id"`
	Name          string    `yaml:"name" json:"name"`
	NameKo        string    `yaml:"name_ko" json:"name_ko,omitempty"`
	NameEn        string    `yaml:"name_en" json:"name_en,omitempty"`
	Description   string    `yaml:"description" json:"description"`
	DescriptionKo string    `yaml:"description_ko" json:"description_ko,omitempty"`
	DescriptionEn string    `yaml:"description_en" json:"description_en,omitempty"`
	PricePerNight int64     `yaml:"price_per_night" json:"price_per_night"`
	Capacity      int64     `yaml:"capacity" json:"capacity"`
	BedType       string    `yaml:"bed_type" json:"bed_type"`
	Amenities     []string  `yaml:"amenities" json:"amenities,omitempty"`
	Images        []string  `yaml:"images" json:"images,omitempty"`
	IsBookable    bool      `yaml:"is_bookable" json:"is_bookable"`
	SortOrder     int64     `yaml:"sort_order" json:"sort_order"`
	CreatedAt     time.Time `yaml:"-" json:"created_at"`
	UpdatedAt     time.Time `yaml:"-" json:"updated_at"`
}

// LocalizedName resolves the display name for a locale tag, falling back
// to the default name when the locale has no translation.
func (r *Room) LocalizedName(locale string) string {
	byLocale := map[string]string{
		LocaleKo: r.NameKo,
		LocaleEn: r.NameEn,
	}
	if name := byLocale[normalizeLocale(locale)]; name != "" {
		return name
	}
	return r.Name
}

// LocalizedDescription resolves the description the same way as LocalizedName.
func (r *Room) LocalizedDescription(locale string) string {
	byLocale := map[string]string{
		LocaleKo: r.DescriptionKo,
		LocaleEn: r.DescriptionEn,
	}
	if desc := byLocale[normalizeLocale(locale)]; desc != "" {
		return desc
	}
	return r.Description
}

func normalizeLocale(locale string) string {
	locale = strings.ToLower(strings.TrimSpace(locale))
	if i := strings.IndexAny(locale, "-_"); i > 0 {
		locale = locale[:i]
	}
	return locale
}

// RoomPatch carries a sparse admin update; nil fields are left untouched.
type RoomPatch struct {
	Name          *string   `json:"name,omitempty"`
	NameKo        *string   `json:"name_ko,omitempty"`
	NameEn        *string   `json:"name_en,omitempty"`
	Description   *string   `json:"description,omitempty"`
	DescriptionKo *string   `json:"description_ko,omitempty"`
	DescriptionEn *string   `json:"description_en,omitempty"`
	PricePerNight *int64    `json:"price_per_night,omitempty"`
	Capacity      *int64    `json:"capacity,omitempty"`
	BedType       *string   `json:"bed_type,omitempty"`
	Amenities     *[]string `json:"amenities,omitempty"`
	Images        *[]string `json:"images,omitempty"`
	IsBookable    *bool     `json:"is_bookable,omitempty"`
	SortOrder     *int64    `json:"sort_order,omitempty"`
}

// IsEmpty reports whether the patch carries no fields at all.
func (p *RoomPatch) IsEmpty() bool {
	return p.Name == nil && p.NameKo == nil && p.NameEn == nil &&
		p.Description == nil && p.DescriptionKo == nil && p.DescriptionEn == nil &&
		p.PricePerNight == nil && p.Capacity == nil && p.BedType == nil &&
		p.Amenities == nil && p.Images == nil && p.IsBookable == nil && p.SortOrder == nil
}

// Apply merges the patch into a room value.
func (p *RoomPatch) Apply(room *Room) {
	if p.Name != nil {
		room.Name = *p.Name
	}
	if p.NameKo != nil {
		room.NameKo = *p.NameKo
	}
	if p.NameEn != nil {
		room.NameEn = *p.NameEn
	}
	if p.Description != nil {
		room.Description = *p.Description
	}
	if p.DescriptionKo != nil {
		room.DescriptionKo = *p.DescriptionKo
	}
	if p.DescriptionEn != nil {
		room.DescriptionEn = *p.DescriptionEn
	}
	if p.PricePerNight != nil {
		room.PricePerNight = *p.PricePerNight
	}
	if p.Capacity != nil {
		room.Capacity = *p.Capacity
	}
	if p.BedType != nil {
		room.BedType = *p.BedType
	}
	if p.Amenities != nil {
		room.Amenities = *p.Amenities
	}
	if p.Images != nil {
		room.Images = *p.Images
	}
	if p.IsBookable != nil {
		room.IsBookable = *p.IsBookable
	}
	if p.SortOrder != nil {
		room.SortOrder = *p.SortOrder
	}
}
