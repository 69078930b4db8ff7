package seeds

import (
	"gorm.io/gorm"

	"schooldocs_backend/internals/seeds/templates"
)

func RunAllSeeds(db *gorm.DB) error {
	if _, err := templates.SeedTemplates(db); err != nil {
		return err
	}
	return nil
}
