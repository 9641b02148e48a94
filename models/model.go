package models

import "time"

// Model is the base for rows addressed by monotonically increasing IDs.
// The ID doubles as the pagination cursor, so it must stay an
// auto-incrementing integer.
type Model struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Location is an optional point attached to posts and comments,
// stored as a JSON column. Coordinates are [longitude, latitude].
type Location struct {
	Coordinates [2]float64 `json:"coordinates"`
	Address     string     `json:"address,omitempty"`
	City        string     `json:"city,omitempty"`
	Country     string     `json:"country,omitempty"`
}

// Image is a stored media reference: the CDN URL plus the storage key
// needed to delete it later.
type Image struct {
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnailUrl,omitempty"`
	PublicID     string `json:"publicId"`
	Width        int    `json:"width,omitempty"`
	Height       int    `json:"height,omitempty"`
}
