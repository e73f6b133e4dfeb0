// database/migrate.go - Database Migration Runner
package database

import (
	"log"
	"ulenguage/models"
)

// RunMigrations runs all database migrations
func RunMigrations() {
	db := GetDB()
	log.Println("🔄 Running database migrations...")

	if err := db.AutoMigrate(
		&models.User{},
		&models.Plan{},
		&models.Content{},
		&models.Zone{},
		&models.Achievement{},
		&models.QuechuaTerm{},
	); err != nil {
		log.Fatalf("❌ Failed to run migrations: %v", err)
	}

	createIndexes()

	log.Println("✅ All migrations completed successfully")
}

// createIndexes creates indexes AutoMigrate does not cover. The
// composite unique index on achievements is the correctness guarantee
// for one-achievement-per-user-per-zone; everything else is query
// optimization.
func createIndexes() {
	db := GetDB()
	log.Println("Creating indexes...")

	db.Exec("CREATE UNIQUE INDEX IF NOT EXISTS idx_achievements_user_zone ON achievements(user_id, zone_id)")

	// User indexes
	db.Exec("CREATE INDEX IF NOT EXISTS idx_users_email ON users(email)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_users_google_id ON users(google_id)")

	// Zone indexes
	db.Exec("CREATE INDEX IF NOT EXISTS idx_zones_active ON zones(active)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_zones_category ON zones(category)")

	// Achievement indexes
	db.Exec("CREATE INDEX IF NOT EXISTS idx_achievements_user ON achievements(user_id)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_achievements_unlock_at ON achievements(unlock_at DESC)")

	// Dictionary indexes
	db.Exec("CREATE INDEX IF NOT EXISTS idx_quechua_terms_category ON quechua_terms(category)")

	log.Println("✅ Indexes created successfully")
}
