package database

import (
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Database handles preferences persistence
type Database struct {
	db *gorm.DB
}

// NewDatabase opens the sqlite database and migrates the schema
func NewDatabase(dbPath string) (*Database, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&UserPreferences{}); err != nil {
		return nil, err
	}

	return &Database{db: db}, nil
}

// GetPreferences gets the current user preferences
func (d *Database) GetPreferences() (*UserPreferencesData, error) {
	prefs, err := d.getOrCreatePreferences()
	if err != nil {
		return nil, err
	}

	prefsData := prefs.GetPreferences()
	return &prefsData, nil
}

// UpdatePreferences updates user preferences from a frontend request map
func (d *Database) UpdatePreferences(data map[string]interface{}) error {
	prefs, err := d.getOrCreatePreferences()
	if err != nil {
		return err
	}

	currentPrefs := prefs.GetPreferences()

	if val, ok := data["default_target_width"]; ok {
		if width, ok := val.(float64); ok && width >= 1 {
			currentPrefs.DefaultTargetWidth = int(width)
		}
	}

	if val, ok := data["default_target_height"]; ok {
		if height, ok := val.(float64); ok && height >= 1 {
			currentPrefs.DefaultTargetHeight = int(height)
		}
	}

	if val, ok := data["default_download_folder"]; ok {
		if folder, ok := val.(string); ok {
			currentPrefs.DefaultDownloadFolder = folder
		}
	}

	if val, ok := data["archive_name"]; ok {
		if name, ok := val.(string); ok && name != "" {
			currentPrefs.ArchiveName = name
		}
	}

	if val, ok := data["jpeg_quality"]; ok {
		if quality, ok := val.(float64); ok && quality >= 1 && quality <= 100 {
			currentPrefs.JPEGQuality = int(quality)
		}
	}

	if val, ok := data["auto_reveal"]; ok {
		if reveal, ok := val.(bool); ok {
			currentPrefs.AutoReveal = reveal
		}
	}

	if err := prefs.SetPreferences(currentPrefs); err != nil {
		return err
	}

	return d.db.Save(prefs).Error
}

// getOrCreatePreferences gets existing preferences or creates default ones
func (d *Database) getOrCreatePreferences() (*UserPreferences, error) {
	var prefs UserPreferences

	result := d.db.First(&prefs, 1)

	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			prefs = UserPreferences{ID: 1}

			defaultPrefs := DefaultPreferences()
			if err := prefs.SetPreferences(defaultPrefs); err != nil {
				return nil, err
			}

			if err := d.db.Create(&prefs).Error; err != nil {
				return nil, err
			}
		} else {
			return nil, result.Error
		}
	}

	return &prefs, nil
}
