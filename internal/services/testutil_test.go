package services

import (
	"testing"

	"github.com/tunedeck/backend/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens an isolated in-memory database with the full schema.
// A single connection keeps every query on the same sqlite instance.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get database instance: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := models.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func testVideo(videoID, title string) VideoInput {
	return VideoInput{
		VideoID:      videoID,
		Title:        title,
		ChannelTitle: "Test Channel",
		ThumbnailURL: "https://i.ytimg.com/vi/" + videoID + "/mqdefault.jpg",
		SourceURL:    "https://www.youtube.com/watch?v=" + videoID,
	}
}
