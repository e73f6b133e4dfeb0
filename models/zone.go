// models/zone.go
package models

import (
	"fmt"
	"math"
	"time"
)

// EarthRadiusM is the spherical earth radius used for all geofence math.
// Both the unlock check and the nearby search use the same constant so
// membership decisions always agree.
const EarthRadiusM = 6371000.0

// Zone categories
const (
	CategoryArchaeological = "archaeological"
	CategoryNatural        = "natural"
	CategoryCultural       = "cultural"
	CategoryReligious      = "religious"
	CategoryUrban          = "urban"
)

// RewardContent is the payload granted when a zone is unlocked.
type RewardContent struct {
	Badge    string `gorm:"size:100" json:"badge"`
	Phrase   string `gorm:"size:200" json:"phrase"`
	AudioURL string `gorm:"size:255" json:"audio_url"`
	Discount int    `gorm:"default:0" json:"discount"`
}

// Zone is a geofenced point of cultural interest. Zones are created by
// the seeder and retired by flipping Active off, never deleted.
type Zone struct {
	ID            uint          `gorm:"primaryKey" json:"id"`
	ZoneID        string        `gorm:"uniqueIndex;not null;size:80" json:"zone_id"`
	NameES        string        `gorm:"not null;size:150" json:"name_es"`
	NameEN        string        `gorm:"not null;size:150" json:"name_en"`
	DescriptionES string        `gorm:"type:text" json:"description_es"`
	DescriptionEN string        `gorm:"type:text" json:"description_en"`
	Longitude     float64       `gorm:"not null" json:"longitude"`
	Latitude      float64       `gorm:"not null" json:"latitude"`
	RadiusM       float64       `gorm:"not null;default:150" json:"radius_m"`
	Category      string        `gorm:"default:'cultural';size:30" json:"category"`
	Difficulty    string        `gorm:"default:'medium';size:20" json:"difficulty"`
	QRCode        string        `gorm:"size:50" json:"-"`
	Reward        RewardContent `gorm:"embedded;embeddedPrefix:reward_" json:"reward_content"`
	Active        bool          `gorm:"default:true;index" json:"active"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

func (Zone) TableName() string {
	return "zones"
}

// Validate checks the geofence invariants before a zone is persisted.
func (z *Zone) Validate() error {
	if z.ZoneID == "" {
		return fmt.Errorf("zone_id is required")
	}
	if z.RadiusM <= 0 {
		return fmt.Errorf("zone %s: radius must be positive, got %v", z.ZoneID, z.RadiusM)
	}
	if z.Longitude < -180 || z.Longitude > 180 {
		return fmt.Errorf("zone %s: longitude %v out of range", z.ZoneID, z.Longitude)
	}
	if z.Latitude < -90 || z.Latitude > 90 {
		return fmt.Errorf("zone %s: latitude %v out of range", z.ZoneID, z.Latitude)
	}
	return nil
}

// DistanceTo returns the great-circle distance in meters between the zone
// centroid and the given point, using the haversine formula.
func (z *Zone) DistanceTo(lon, lat float64) float64 {
	return HaversineDistance(z.Longitude, z.Latitude, lon, lat)
}

// IsWithinRadius reports whether the given point falls inside the geofence.
func (z *Zone) IsWithinRadius(lon, lat float64) bool {
	return z.DistanceTo(lon, lat) <= z.RadiusM
}

// HaversineDistance computes the great-circle distance in meters between
// two WGS84 points given in degrees.
func HaversineDistance(lonA, latA, lonB, latB float64) float64 {
	dLat := radians(latB - latA)
	dLon := radians(lonB - lonA)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(radians(latA))*math.Cos(radians(latB))*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return EarthRadiusM * c
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
