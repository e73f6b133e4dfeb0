// services/achievement_service.go - Geo-Achievement Engine
package services

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"ulenguage/models"

	"gorm.io/gorm"
)

// Business-rule errors surfaced to the HTTP layer. ErrAlreadyUnlocked is
// an idempotent outcome, not an alarm: the existing record is returned
// alongside it.
var (
	ErrZoneNotFound    = errors.New("zone not found or inactive")
	ErrAlreadyUnlocked = errors.New("achievement already unlocked")
	ErrOutOfRange      = errors.New("outside zone radius")
	ErrEmptyBatch      = errors.New("no achievements to sync")
	ErrMissingCoords   = errors.New("lat and lon are required for gps unlock")
	ErrInvalidMethod   = errors.New("unlock method must be gps or qr")
)

// DefaultNearbyRadiusM is used when a nearby query omits the radius.
const DefaultNearbyRadiusM = 5000

// RangeError reports a gps unlock attempt from outside the zone
// geofence. It carries the measured distance so clients can tell the
// user how far off they are. errors.Is(err, ErrOutOfRange) holds.
type RangeError struct {
	DistanceM float64
	RadiusM   float64
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("outside zone radius: %.0fm away, radius %.0fm", e.DistanceM, e.RadiusM)
}

func (e *RangeError) Unwrap() error { return ErrOutOfRange }

// ZoneStore is the read-only zone lookup the engine depends on.
// Implementations return (nil, nil) when no matching row exists; an
// error means the storage layer itself failed.
type ZoneStore interface {
	FindActiveByZoneID(zoneID string) (*models.Zone, error)
	ListActive() ([]models.Zone, error)
}

// AchievementStore persists the append-only achievement ledger. Insert
// must enforce the (user, zone) unique constraint and return
// gorm.ErrDuplicatedKey on violation; the application-level dedup check
// is only an optimization for a friendly error message.
type AchievementStore interface {
	FindByUserAndZone(userID uint, zoneID string) (*models.Achievement, error)
	ListByUser(userID uint) ([]models.Achievement, error)
	Insert(a *models.Achievement) error
}

type AchievementService struct {
	zones        ZoneStore
	achievements AchievementStore
	now          func() time.Time
}

func NewAchievementService(zones ZoneStore, achievements AchievementStore) *AchievementService {
	return &AchievementService{
		zones:        zones,
		achievements: achievements,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// Unlock validates a claimed visit to a zone and appends the achievement.
// For gps unlocks the claimed coordinate must fall inside the zone
// geofence; qr unlocks carry out-of-band proof of presence and skip the
// distance check. On ErrAlreadyUnlocked the returned achievement is the
// existing record.
func (s *AchievementService) Unlock(userID uint, zoneID string, lon, lat *float64, method string) (*models.Achievement, error) {
	if method == "" {
		method = models.UnlockMethodGPS
	}
	if method != models.UnlockMethodGPS && method != models.UnlockMethodQR {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMethod, method)
	}

	zone, err := s.zones.FindActiveByZoneID(zoneID)
	if err != nil {
		return nil, fmt.Errorf("zone lookup: %w", err)
	}
	if zone == nil {
		return nil, ErrZoneNotFound
	}

	existing, err := s.achievements.FindByUserAndZone(userID, zoneID)
	if err != nil {
		return nil, fmt.Errorf("achievement lookup: %w", err)
	}
	if existing != nil {
		return existing, ErrAlreadyUnlocked
	}

	if method == models.UnlockMethodGPS {
		if lon == nil || lat == nil {
			return nil, ErrMissingCoords
		}
		if !zone.IsWithinRadius(*lon, *lat) {
			return nil, &RangeError{
				DistanceM: zone.DistanceTo(*lon, *lat),
				RadiusM:   zone.RadiusM,
			}
		}
	}

	now := s.now()
	achievement := snapshot(userID, zone, method, now, now)
	if err := s.achievements.Insert(achievement); err != nil {
		return s.reclassifyInsertErr(userID, zoneID, err)
	}
	return achievement, nil
}

// OfflineEntry is one client-recorded unlock awaiting reconciliation.
type OfflineEntry struct {
	ZoneID    string    `json:"zoneId"`
	Lon       float64   `json:"lon"`
	Lat       float64   `json:"lat"`
	Timestamp time.Time `json:"timestamp"`
}

type SyncFailure struct {
	ZoneID string `json:"zoneId"`
	Reason string `json:"reason"`
}

type SyncDuplicate struct {
	ZoneID   string              `json:"zoneId"`
	Reason   string              `json:"reason"`
	Existing *models.Achievement `json:"existing,omitempty"`
}

type SyncResult struct {
	Synced     []models.Achievement `json:"synced"`
	Failed     []SyncFailure        `json:"failed"`
	Duplicates []SyncDuplicate      `json:"duplicates"`
}

// SyncOffline reconciles a batch of offline-recorded unlocks. Entries are
// classified independently; a bad entry never aborts the batch. Synced
// entries keep the client-claimed unlock time and get sync_at stamped
// with the server receipt time. Entries are always validated with gps
// semantics.
func (s *AchievementService) SyncOffline(userID uint, entries []OfflineEntry) (*SyncResult, error) {
	if len(entries) == 0 {
		return nil, ErrEmptyBatch
	}

	result := &SyncResult{
		Synced:     []models.Achievement{},
		Failed:     []SyncFailure{},
		Duplicates: []SyncDuplicate{},
	}

	for _, entry := range entries {
		existing, err := s.achievements.FindByUserAndZone(userID, entry.ZoneID)
		if err != nil {
			result.Failed = append(result.Failed, SyncFailure{ZoneID: entry.ZoneID, Reason: "storage error"})
			continue
		}
		if existing != nil {
			result.Duplicates = append(result.Duplicates, SyncDuplicate{
				ZoneID: entry.ZoneID, Reason: "already unlocked", Existing: existing,
			})
			continue
		}

		zone, err := s.zones.FindActiveByZoneID(entry.ZoneID)
		if err != nil {
			result.Failed = append(result.Failed, SyncFailure{ZoneID: entry.ZoneID, Reason: "storage error"})
			continue
		}
		if zone == nil {
			result.Failed = append(result.Failed, SyncFailure{ZoneID: entry.ZoneID, Reason: "zone not found"})
			continue
		}

		if !zone.IsWithinRadius(entry.Lon, entry.Lat) {
			d := zone.DistanceTo(entry.Lon, entry.Lat)
			result.Failed = append(result.Failed, SyncFailure{
				ZoneID: entry.ZoneID,
				Reason: fmt.Sprintf("out of range: %.0fm away, radius %.0fm", d, zone.RadiusM),
			})
			continue
		}

		unlockAt := entry.Timestamp
		if unlockAt.IsZero() {
			unlockAt = s.now()
		}
		achievement := snapshot(userID, zone, models.UnlockMethodGPS, unlockAt, s.now())
		if err := s.achievements.Insert(achievement); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				// Lost the race against a concurrent sync or a second
				// entry naming the same zone: the constraint wins.
				current, _ := s.achievements.FindByUserAndZone(userID, entry.ZoneID)
				result.Duplicates = append(result.Duplicates, SyncDuplicate{
					ZoneID: entry.ZoneID, Reason: "already unlocked", Existing: current,
				})
				continue
			}
			result.Failed = append(result.Failed, SyncFailure{ZoneID: entry.ZoneID, Reason: "storage error"})
			continue
		}
		result.Synced = append(result.Synced, *achievement)
	}

	return result, nil
}

// NearbyZone is a zone annotated with its distance from the query point.
type NearbyZone struct {
	models.Zone
	DistanceM float64 `json:"distance_m"`
}

// FindNearby returns active zones whose centroid lies within maxMeters of
// the query point, nearest first. The same haversine used for unlocking
// decides membership, so the two always agree.
func (s *AchievementService) FindNearby(lon, lat float64, maxMeters float64) ([]NearbyZone, error) {
	if maxMeters <= 0 {
		maxMeters = DefaultNearbyRadiusM
	}

	zones, err := s.zones.ListActive()
	if err != nil {
		return nil, fmt.Errorf("list zones: %w", err)
	}

	nearby := []NearbyZone{}
	for _, zone := range zones {
		d := zone.DistanceTo(lon, lat)
		if d <= maxMeters {
			nearby = append(nearby, NearbyZone{Zone: zone, DistanceM: d})
		}
	}

	sort.Slice(nearby, func(i, j int) bool {
		return nearby[i].DistanceM < nearby[j].DistanceM
	})
	return nearby, nil
}

// ListZones returns all active zones. QR codes never reach the JSON
// output; the field is excluded at the model level.
func (s *AchievementService) ListZones() ([]models.Zone, error) {
	return s.zones.ListActive()
}

type MethodCounts struct {
	GPS int `json:"gps"`
	QR  int `json:"qr"`
}

type RewardTotals struct {
	Badges    int `json:"badges"`
	Discounts int `json:"discounts"`
}

type AchievementStats struct {
	Total        int          `json:"total"`
	ByMethod     MethodCounts `json:"byMethod"`
	TotalRewards RewardTotals `json:"totalRewards"`
}

// ListUserAchievements returns the user's ledger newest-first plus
// aggregate stats.
func (s *AchievementService) ListUserAchievements(userID uint) ([]models.Achievement, AchievementStats, error) {
	achievements, err := s.achievements.ListByUser(userID)
	if err != nil {
		return nil, AchievementStats{}, fmt.Errorf("list achievements: %w", err)
	}

	stats := AchievementStats{Total: len(achievements)}
	for _, a := range achievements {
		switch a.UnlockMethod {
		case models.UnlockMethodGPS:
			stats.ByMethod.GPS++
		case models.UnlockMethodQR:
			stats.ByMethod.QR++
		}
		stats.TotalRewards.Discounts += a.Reward.Discount
	}
	stats.TotalRewards.Badges = len(achievements)
	return achievements, stats, nil
}

func (s *AchievementService) reclassifyInsertErr(userID uint, zoneID string, err error) (*models.Achievement, error) {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// Near-simultaneous unlock of the same zone: the unique
		// constraint resolved the race, report it as already unlocked.
		if current, ferr := s.achievements.FindByUserAndZone(userID, zoneID); ferr == nil && current != nil {
			return current, ErrAlreadyUnlocked
		}
		return nil, ErrAlreadyUnlocked
	}
	return nil, fmt.Errorf("insert achievement: %w", err)
}

// snapshot copies the zone's display and geo data into a new achievement
// so the ledger entry stays accurate after zone edits.
func snapshot(userID uint, zone *models.Zone, method string, unlockAt, syncAt time.Time) *models.Achievement {
	return &models.Achievement{
		UserID:       userID,
		ZoneID:       zone.ZoneID,
		ZoneNameES:   zone.NameES,
		ZoneNameEN:   zone.NameEN,
		Longitude:    zone.Longitude,
		Latitude:     zone.Latitude,
		RadiusM:      zone.RadiusM,
		UnlockMethod: method,
		UnlockAt:     unlockAt,
		SyncAt:       &syncAt,
		Reward:       zone.Reward,
	}
}
