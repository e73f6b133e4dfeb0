// database/stores.go - GORM-backed store implementations for the engine
// and resolver interfaces in the services package.
package database

import (
	"errors"

	"ulenguage/models"
	"ulenguage/services"

	"gorm.io/gorm"
)

type zoneStore struct {
	db *gorm.DB
}

// NewZoneStore returns the Postgres-backed ZoneStore.
func NewZoneStore(db *gorm.DB) services.ZoneStore {
	return &zoneStore{db: db}
}

func (s *zoneStore) FindActiveByZoneID(zoneID string) (*models.Zone, error) {
	var zone models.Zone
	err := s.db.Where("zone_id = ? AND active = ?", zoneID, true).First(&zone).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &zone, nil
}

func (s *zoneStore) ListActive() ([]models.Zone, error) {
	var zones []models.Zone
	err := s.db.Where("active = ?", true).Order("zone_id").Find(&zones).Error
	return zones, err
}

type achievementStore struct {
	db *gorm.DB
}

// NewAchievementStore returns the Postgres-backed AchievementStore. The
// unique (user_id, zone_id) index makes Insert fail with
// gorm.ErrDuplicatedKey on concurrent duplicate unlocks.
func NewAchievementStore(db *gorm.DB) services.AchievementStore {
	return &achievementStore{db: db}
}

func (s *achievementStore) FindByUserAndZone(userID uint, zoneID string) (*models.Achievement, error) {
	var achievement models.Achievement
	err := s.db.Where("user_id = ? AND zone_id = ?", userID, zoneID).First(&achievement).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &achievement, nil
}

func (s *achievementStore) ListByUser(userID uint) ([]models.Achievement, error) {
	var achievements []models.Achievement
	err := s.db.Where("user_id = ?", userID).Order("unlock_at DESC").Find(&achievements).Error
	return achievements, err
}

func (s *achievementStore) Insert(a *models.Achievement) error {
	return s.db.Create(a).Error
}

type termStore struct {
	db *gorm.DB
}

// NewTermStore returns the Postgres-backed curated dictionary store.
func NewTermStore(db *gorm.DB) services.TermStore {
	return &termStore{db: db}
}

func (s *termStore) FindBySpanish(normalized string) (*models.QuechuaTerm, error) {
	var term models.QuechuaTerm
	err := s.db.Where("spanish = ?", normalized).First(&term).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &term, nil
}
