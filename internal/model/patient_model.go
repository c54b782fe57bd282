package model

import (
	"time"
)

type Patient struct {
	Id                    int64     `gorm:"primaryKey;autoIncrement"`
	Name                  string    `gorm:"type:varchar(255);not null;index"`
	Age                   int       `gorm:"default:0"`
	DischargeDate         string    `gorm:"type:varchar(64)"`
	PrimaryDiagnosis      string    `gorm:"type:text"`
	Medications           string    `gorm:"type:text"`
	DietaryRestrictions   string    `gorm:"type:text"`
	FollowUp              string    `gorm:"type:text"`
	WarningSigns          string    `gorm:"type:text"`
	DischargeInstructions string    `gorm:"type:text"`
	CreatedAt             time.Time `gorm:"autoCreateTime"`
}

func (Patient) TableName() string {
	return "patients"
}
