package tracking

import (
	"time"
)

const (
	RoleAdmin   = "admin"
	RoleTracked = "tracked"
)

const (
	KindEnter = "enter"
	KindExit  = "exit"
)

// User is a person known to the dashboard. Admins operate the dashboard and
// are never tracked; everyone else may have a circular geofence assigned.
type User struct {
	UserID     int64    `gorm:"primaryKey" json:"user_id"`
	Name       string   `json:"name"`
	Role       string   `gorm:"default:'tracked'" json:"role"`
	ZoneLat    *float64 `json:"zone_lat"`
	ZoneLng    *float64 `json:"zone_lng"`
	ZoneRadius *float64 `gorm:"column:zone_radius_m" json:"zone_radius_m"`
}

// Zone is a circular geofence: center point plus radius in meters.
type Zone struct {
	Lat     float64
	Lng     float64
	RadiusM float64
}

// Zone returns the user's assigned geofence, if one is fully configured.
func (u User) Zone() (Zone, bool) {
	if u.ZoneLat == nil || u.ZoneLng == nil || u.ZoneRadius == nil {
		return Zone{}, false
	}
	return Zone{Lat: *u.ZoneLat, Lng: *u.ZoneLng, RadiusM: *u.ZoneRadius}, true
}

// Location is the last known position of a user. One row per user,
// overwritten on every accepted report; no position history is kept here.
type Location struct {
	UserID     int64      `gorm:"primaryKey" json:"user_id"`
	Latitude   float64    `json:"latitude"`
	Longitude  float64    `json:"longitude"`
	InsideZone ZoneStatus `gorm:"type:text;not null;default:'unknown'" json:"inside_zone"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// Alert records a detected zone transition. Rows are append-only; nothing in
// this package updates or deletes them.
type Alert struct {
	ID         string    `gorm:"primaryKey" json:"id"`
	UserID     int64     `gorm:"index" json:"user_id"`
	Kind       string    `json:"kind"`
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	OccurredAt time.Time `json:"occurred_at"`
}

func (User) TableName() string     { return "tracking.users" }
func (Location) TableName() string { return "tracking.locations" }
func (Alert) TableName() string    { return "tracking.alerts" }
