package specification

import "gorm.io/gorm"

// NameContains matches records whose name contains the fragment, case-insensitively.
// Substring match only: no ranking, no fuzzy matching.
type NameContains struct {
	Fragment string
}

func (s NameContains) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("name ILIKE ?", "%"+s.Fragment+"%")
}
