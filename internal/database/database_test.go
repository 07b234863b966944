package database

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *Database {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}

	if err := db.AutoMigrate(&UserPreferences{}); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return &Database{db: db}
}

func TestGetPreferences_CreatesDefault(t *testing.T) {
	d := setupTestDB(t)

	prefs, err := d.GetPreferences()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if prefs.DefaultTargetWidth != 800 {
		t.Errorf("Expected default width 800, got %d", prefs.DefaultTargetWidth)
	}
	if prefs.DefaultTargetHeight != 600 {
		t.Errorf("Expected default height 600, got %d", prefs.DefaultTargetHeight)
	}
	if prefs.ArchiveName != "converted_files.zip" {
		t.Errorf("Expected default archive name, got %q", prefs.ArchiveName)
	}
	if prefs.JPEGQuality != 85 {
		t.Errorf("Expected default quality 85, got %d", prefs.JPEGQuality)
	}
}

func TestUpdatePreferences(t *testing.T) {
	d := setupTestDB(t)

	err := d.UpdatePreferences(map[string]interface{}{
		"default_target_width":  float64(1024),
		"default_target_height": float64(768),
		"archive_name":          "batch.zip",
		"jpeg_quality":          float64(70),
		"auto_reveal":           true,
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	prefs, err := d.GetPreferences()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if prefs.DefaultTargetWidth != 1024 || prefs.DefaultTargetHeight != 768 {
		t.Errorf("Expected 1024x768, got %dx%d", prefs.DefaultTargetWidth, prefs.DefaultTargetHeight)
	}
	if prefs.ArchiveName != "batch.zip" {
		t.Errorf("Expected archive name batch.zip, got %q", prefs.ArchiveName)
	}
	if prefs.JPEGQuality != 70 {
		t.Errorf("Expected quality 70, got %d", prefs.JPEGQuality)
	}
	if !prefs.AutoReveal {
		t.Error("Expected auto reveal true")
	}
}

func TestUpdatePreferences_IgnoresInvalidValues(t *testing.T) {
	d := setupTestDB(t)

	err := d.UpdatePreferences(map[string]interface{}{
		"default_target_width": float64(0),
		"jpeg_quality":         float64(200),
		"archive_name":         "",
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	prefs, err := d.GetPreferences()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if prefs.DefaultTargetWidth != 800 {
		t.Errorf("Expected width untouched at 800, got %d", prefs.DefaultTargetWidth)
	}
	if prefs.JPEGQuality != 85 {
		t.Errorf("Expected quality untouched at 85, got %d", prefs.JPEGQuality)
	}
	if prefs.ArchiveName != "converted_files.zip" {
		t.Errorf("Expected archive name untouched, got %q", prefs.ArchiveName)
	}
}

func TestUpdatePreferences_PartialUpdate(t *testing.T) {
	d := setupTestDB(t)

	if err := d.UpdatePreferences(map[string]interface{}{"auto_reveal": true}); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	prefs, err := d.GetPreferences()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if !prefs.AutoReveal {
		t.Error("Expected auto reveal updated")
	}
	if prefs.DefaultTargetWidth != 800 {
		t.Errorf("Expected unrelated fields untouched, got width %d", prefs.DefaultTargetWidth)
	}
}
