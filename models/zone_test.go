package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Meters per degree of latitude on the sphere used by the geofence math.
const metersPerDegreeLat = EarthRadiusM * 3.14159265358979323846 / 180

func cuscoZone() Zone {
	return Zone{
		ZoneID:    "plaza_armas_cusco",
		NameES:    "Plaza de Armas",
		NameEN:    "Main Square",
		Longitude: -71.9675,
		Latitude:  -13.5167,
		RadiusM:   150,
		QRCode:    "QR_PLAZA_2024",
		Active:    true,
	}
}

func TestHaversineDistance(t *testing.T) {
	t.Run("zero for identical points", func(t *testing.T) {
		assert.Zero(t, HaversineDistance(-71.9675, -13.5167, -71.9675, -13.5167))
	})

	t.Run("symmetric", func(t *testing.T) {
		a := HaversineDistance(-71.9675, -13.5167, -72.5450, -13.1631)
		b := HaversineDistance(-72.5450, -13.1631, -71.9675, -13.5167)
		assert.InDelta(t, a, b, 1e-9)
	})

	t.Run("meridian distance matches latitude offset", func(t *testing.T) {
		// 140m due north of the zone center.
		d := HaversineDistance(-71.9675, -13.5167, -71.9675, -13.5167+140/metersPerDegreeLat)
		assert.InDelta(t, 140, d, 0.5)
	})
}

func TestZoneIsWithinRadius(t *testing.T) {
	zone := cuscoZone()

	t.Run("140m inside 150m radius", func(t *testing.T) {
		lat := zone.Latitude + 140/metersPerDegreeLat
		assert.True(t, zone.IsWithinRadius(zone.Longitude, lat))
	})

	t.Run("160m outside 150m radius", func(t *testing.T) {
		lat := zone.Latitude + 160/metersPerDegreeLat
		assert.False(t, zone.IsWithinRadius(zone.Longitude, lat))
	})

	t.Run("center is inside", func(t *testing.T) {
		assert.True(t, zone.IsWithinRadius(zone.Longitude, zone.Latitude))
	})
}

func TestZoneValidate(t *testing.T) {
	t.Run("valid zone passes", func(t *testing.T) {
		zone := cuscoZone()
		require.NoError(t, zone.Validate())
	})

	t.Run("rejects bad geometry", func(t *testing.T) {
		cases := map[string]func(*Zone){
			"zero radius":         func(z *Zone) { z.RadiusM = 0 },
			"negative radius":     func(z *Zone) { z.RadiusM = -10 },
			"longitude too big":   func(z *Zone) { z.Longitude = 181 },
			"longitude too small": func(z *Zone) { z.Longitude = -181 },
			"latitude too big":    func(z *Zone) { z.Latitude = 91 },
			"latitude too small":  func(z *Zone) { z.Latitude = -91 },
			"missing zone_id":     func(z *Zone) { z.ZoneID = "" },
		}
		for name, mutate := range cases {
			t.Run(name, func(t *testing.T) {
				zone := cuscoZone()
				mutate(&zone)
				assert.Error(t, zone.Validate())
			})
		}
	})
}

func TestZoneJSONHidesQRCode(t *testing.T) {
	zone := cuscoZone()
	data, err := json.Marshal(zone)
	require.NoError(t, err)

	assert.NotContains(t, string(data), "qr_code")
	assert.NotContains(t, string(data), "QR_PLAZA_2024")
	assert.Contains(t, string(data), "zone_id")
}
