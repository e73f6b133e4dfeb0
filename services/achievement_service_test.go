package services

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"ulenguage/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// Meters per degree of latitude on the geofence sphere.
const metersPerDegreeLat = models.EarthRadiusM * 3.14159265358979323846 / 180

type fakeZoneStore struct {
	zones map[string]models.Zone
}

func (f *fakeZoneStore) FindActiveByZoneID(zoneID string) (*models.Zone, error) {
	zone, ok := f.zones[zoneID]
	if !ok || !zone.Active {
		return nil, nil
	}
	z := zone
	return &z, nil
}

func (f *fakeZoneStore) ListActive() ([]models.Zone, error) {
	var out []models.Zone
	for _, z := range f.zones {
		if z.Active {
			out = append(out, z)
		}
	}
	return out, nil
}

// fakeAchievementStore enforces the (user, zone) unique constraint the
// way the database does.
type fakeAchievementStore struct {
	mu     sync.Mutex
	nextID uint
	rows   map[string]*models.Achievement
}

func newFakeAchievementStore() *fakeAchievementStore {
	return &fakeAchievementStore{rows: make(map[string]*models.Achievement)}
}

func key(userID uint, zoneID string) string {
	return fmt.Sprintf("%d|%s", userID, zoneID)
}

func (f *fakeAchievementStore) FindByUserAndZone(userID uint, zoneID string) (*models.Achievement, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if a, ok := f.rows[key(userID, zoneID)]; ok {
		copied := *a
		return &copied, nil
	}
	return nil, nil
}

func (f *fakeAchievementStore) ListByUser(userID uint) ([]models.Achievement, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Achievement
	for _, a := range f.rows {
		if a.UserID == userID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeAchievementStore) Insert(a *models.Achievement) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	k := key(a.UserID, a.ZoneID)
	if _, exists := f.rows[k]; exists {
		return gorm.ErrDuplicatedKey
	}
	f.nextID++
	a.ID = f.nextID
	copied := *a
	f.rows[k] = &copied
	return nil
}

func testZones() *fakeZoneStore {
	return &fakeZoneStore{zones: map[string]models.Zone{
		"plaza_armas_cusco": {
			ZoneID:    "plaza_armas_cusco",
			NameES:    "Plaza de Armas",
			NameEN:    "Main Square",
			Longitude: -71.9675,
			Latitude:  -13.5167,
			RadiusM:   150,
			Active:    true,
			Reward:    models.RewardContent{Badge: "explorador_urbano", Discount: 10},
		},
		"machu_picchu": {
			ZoneID:    "machu_picchu",
			NameES:    "Machu Picchu",
			NameEN:    "Machu Picchu",
			Longitude: -72.5450,
			Latitude:  -13.1631,
			RadiusM:   300,
			Active:    true,
			Reward:    models.RewardContent{Badge: "guardian_inca", Discount: 15},
		},
		"qorikancha": {
			ZoneID:    "qorikancha",
			NameES:    "Qorikancha",
			NameEN:    "Temple of the Sun",
			Longitude: -71.9755,
			Latitude:  -13.5206,
			RadiusM:   100,
			Active:    true,
			Reward:    models.RewardContent{Badge: "templo_del_sol", Discount: 5},
		},
		"retired_zone": {
			ZoneID:    "retired_zone",
			Longitude: -71.9,
			Latitude:  -13.5,
			RadiusM:   100,
			Active:    false,
		},
	}}
}

func newTestService() (*AchievementService, *fakeAchievementStore) {
	store := newFakeAchievementStore()
	svc := NewAchievementService(testZones(), store)
	svc.now = func() time.Time { return time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC) }
	return svc, store
}

func ptr(v float64) *float64 { return &v }

func TestUnlock(t *testing.T) {
	plazaLon, plazaLat := -71.9675, -13.5167

	t.Run("gps unlock inside radius", func(t *testing.T) {
		svc, _ := newTestService()

		a, err := svc.Unlock(1, "plaza_armas_cusco", ptr(plazaLon), ptr(plazaLat+100/metersPerDegreeLat), "gps")
		require.NoError(t, err)
		require.NotNil(t, a)

		assert.Equal(t, uint(1), a.UserID)
		assert.Equal(t, "plaza_armas_cusco", a.ZoneID)
		assert.Equal(t, "Plaza de Armas", a.ZoneNameES)
		assert.Equal(t, models.UnlockMethodGPS, a.UnlockMethod)
		assert.Equal(t, "explorador_urbano", a.Reward.Badge)
		require.NotNil(t, a.SyncAt)
		assert.Equal(t, a.UnlockAt, *a.SyncAt)
	})

	t.Run("method defaults to gps", func(t *testing.T) {
		svc, _ := newTestService()
		a, err := svc.Unlock(1, "plaza_armas_cusco", ptr(plazaLon), ptr(plazaLat), "")
		require.NoError(t, err)
		assert.Equal(t, models.UnlockMethodGPS, a.UnlockMethod)
	})

	t.Run("gps outside radius carries distance hint", func(t *testing.T) {
		svc, _ := newTestService()

		_, err := svc.Unlock(1, "plaza_armas_cusco", ptr(plazaLon), ptr(plazaLat+200/metersPerDegreeLat), "gps")
		require.ErrorIs(t, err, ErrOutOfRange)

		var rangeErr *RangeError
		require.ErrorAs(t, err, &rangeErr)
		assert.InDelta(t, 200, rangeErr.DistanceM, 1)
		assert.Equal(t, 150.0, rangeErr.RadiusM)
	})

	t.Run("unknown zone", func(t *testing.T) {
		svc, _ := newTestService()
		_, err := svc.Unlock(1, "atlantis", ptr(0), ptr(0), "gps")
		assert.ErrorIs(t, err, ErrZoneNotFound)
	})

	t.Run("inactive zone behaves like missing", func(t *testing.T) {
		svc, _ := newTestService()
		_, err := svc.Unlock(1, "retired_zone", ptr(-71.9), ptr(-13.5), "gps")
		assert.ErrorIs(t, err, ErrZoneNotFound)
	})

	t.Run("gps requires coordinates", func(t *testing.T) {
		svc, _ := newTestService()
		_, err := svc.Unlock(1, "plaza_armas_cusco", nil, nil, "gps")
		assert.ErrorIs(t, err, ErrMissingCoords)
	})

	t.Run("rejects unknown method", func(t *testing.T) {
		svc, _ := newTestService()
		_, err := svc.Unlock(1, "plaza_armas_cusco", ptr(plazaLon), ptr(plazaLat), "telepathy")
		assert.ErrorIs(t, err, ErrInvalidMethod)
	})

	t.Run("qr unlock skips distance check", func(t *testing.T) {
		svc, _ := newTestService()

		// Far away and without coordinates at all.
		a, err := svc.Unlock(1, "machu_picchu", nil, nil, "qr")
		require.NoError(t, err)
		assert.Equal(t, models.UnlockMethodQR, a.UnlockMethod)
	})

	t.Run("second unlock returns existing record", func(t *testing.T) {
		svc, _ := newTestService()

		first, err := svc.Unlock(1, "plaza_armas_cusco", ptr(plazaLon), ptr(plazaLat), "gps")
		require.NoError(t, err)

		second, err := svc.Unlock(1, "plaza_armas_cusco", ptr(plazaLon), ptr(plazaLat), "gps")
		assert.ErrorIs(t, err, ErrAlreadyUnlocked)
		require.NotNil(t, second)
		assert.Equal(t, first.ID, second.ID)
	})

	t.Run("different users unlock independently", func(t *testing.T) {
		svc, _ := newTestService()

		_, err := svc.Unlock(1, "plaza_armas_cusco", ptr(plazaLon), ptr(plazaLat), "gps")
		require.NoError(t, err)
		_, err = svc.Unlock(2, "plaza_armas_cusco", ptr(plazaLon), ptr(plazaLat), "gps")
		require.NoError(t, err)
	})

	t.Run("concurrent unlocks produce exactly one record", func(t *testing.T) {
		svc, store := newTestService()

		const n = 20
		var wg sync.WaitGroup
		results := make([]error, n)
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, results[i] = svc.Unlock(1, "plaza_armas_cusco", ptr(plazaLon), ptr(plazaLat), "gps")
			}(i)
		}
		wg.Wait()

		winners := 0
		for _, err := range results {
			switch {
			case err == nil:
				winners++
			case errors.Is(err, ErrAlreadyUnlocked):
			default:
				t.Fatalf("unexpected error: %v", err)
			}
		}
		assert.Equal(t, 1, winners)
		assert.Len(t, store.rows, 1)
	})
}

func TestSyncOffline(t *testing.T) {
	plazaLon, plazaLat := -71.9675, -13.5167
	claimed := time.Date(2025, 6, 10, 8, 30, 0, 0, time.UTC)

	t.Run("classifies entries independently", func(t *testing.T) {
		svc, _ := newTestService()

		// Pre-existing unlock so one entry is a duplicate.
		existing, err := svc.Unlock(1, "machu_picchu", nil, nil, "qr")
		require.NoError(t, err)

		result, err := svc.SyncOffline(1, []OfflineEntry{
			{ZoneID: "plaza_armas_cusco", Lon: plazaLon, Lat: plazaLat, Timestamp: claimed},
			{ZoneID: "qorikancha", Lon: -71.9755, Lat: -13.5206 + 1, Timestamp: claimed},
			{ZoneID: "atlantis", Lon: 0, Lat: 0, Timestamp: claimed},
			{ZoneID: "machu_picchu", Lon: -72.5450, Lat: -13.1631, Timestamp: claimed},
		})
		require.NoError(t, err)

		require.Len(t, result.Synced, 1)
		require.Len(t, result.Failed, 2)
		require.Len(t, result.Duplicates, 1)

		// Claimed unlock time survives; sync time is the server's.
		synced := result.Synced[0]
		assert.Equal(t, claimed, synced.UnlockAt)
		require.NotNil(t, synced.SyncAt)
		assert.Equal(t, svc.now(), *synced.SyncAt)

		assert.Contains(t, result.Failed[0].Reason, "out of range")
		assert.Equal(t, "atlantis", result.Failed[1].ZoneID)
		assert.Equal(t, "zone not found", result.Failed[1].Reason)

		require.NotNil(t, result.Duplicates[0].Existing)
		assert.Equal(t, existing.ID, result.Duplicates[0].Existing.ID)
	})

	t.Run("zero timestamp falls back to server time", func(t *testing.T) {
		svc, _ := newTestService()

		result, err := svc.SyncOffline(1, []OfflineEntry{
			{ZoneID: "plaza_armas_cusco", Lon: plazaLon, Lat: plazaLat},
		})
		require.NoError(t, err)
		require.Len(t, result.Synced, 1)
		assert.Equal(t, svc.now(), result.Synced[0].UnlockAt)
	})

	t.Run("duplicate entries within one batch", func(t *testing.T) {
		svc, _ := newTestService()

		result, err := svc.SyncOffline(1, []OfflineEntry{
			{ZoneID: "plaza_armas_cusco", Lon: plazaLon, Lat: plazaLat, Timestamp: claimed},
			{ZoneID: "plaza_armas_cusco", Lon: plazaLon, Lat: plazaLat, Timestamp: claimed},
		})
		require.NoError(t, err)
		assert.Len(t, result.Synced, 1)
		assert.Len(t, result.Duplicates, 1)
	})

	t.Run("empty batch is an error", func(t *testing.T) {
		svc, _ := newTestService()
		_, err := svc.SyncOffline(1, nil)
		assert.ErrorIs(t, err, ErrEmptyBatch)
	})
}

func TestFindNearby(t *testing.T) {
	svc, _ := newTestService()
	plazaLon, plazaLat := -71.9675, -13.5167

	t.Run("sorted by distance, inactive excluded", func(t *testing.T) {
		// Machu Picchu is ~75km from the plaza; use a huge radius so
		// both actives qualify.
		nearby, err := svc.FindNearby(plazaLon, plazaLat, 200_000)
		require.NoError(t, err)
		require.Len(t, nearby, 3)

		assert.Equal(t, "plaza_armas_cusco", nearby[0].ZoneID)
		assert.Equal(t, "qorikancha", nearby[1].ZoneID)
		assert.Equal(t, "machu_picchu", nearby[2].ZoneID)
		assert.Less(t, nearby[0].DistanceM, nearby[1].DistanceM)
		assert.Less(t, nearby[1].DistanceM, nearby[2].DistanceM)
	})

	t.Run("default radius filters far zones", func(t *testing.T) {
		nearby, err := svc.FindNearby(plazaLon, plazaLat, 0)
		require.NoError(t, err)
		require.Len(t, nearby, 2)
		assert.Equal(t, "plaza_armas_cusco", nearby[0].ZoneID)
		assert.Equal(t, "qorikancha", nearby[1].ZoneID)
	})
}

func TestListUserAchievements(t *testing.T) {
	svc, _ := newTestService()
	plazaLon, plazaLat := -71.9675, -13.5167

	_, err := svc.Unlock(1, "plaza_armas_cusco", ptr(plazaLon), ptr(plazaLat), "gps")
	require.NoError(t, err)
	_, err = svc.Unlock(1, "machu_picchu", nil, nil, "qr")
	require.NoError(t, err)
	_, err = svc.Unlock(2, "machu_picchu", nil, nil, "qr")
	require.NoError(t, err)

	achievements, stats, err := svc.ListUserAchievements(1)
	require.NoError(t, err)

	assert.Len(t, achievements, 2)
	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 1, stats.ByMethod.GPS)
	assert.Equal(t, 1, stats.ByMethod.QR)
	assert.Equal(t, 2, stats.TotalRewards.Badges)
	assert.Equal(t, 25, stats.TotalRewards.Discounts)
}
