package entity

import (
	"time"
)

// Patient is a discharge record from the patients directory. Records are
// written once by the seeding process and read-only to the agents.
type Patient struct {
	Id                    int64
	Name                  string
	Age                   int
	DischargeDate         string
	PrimaryDiagnosis      string
	Medications           string // comma-joined
	DietaryRestrictions   string
	FollowUp              string
	WarningSigns          string
	DischargeInstructions string
	CreatedAt             time.Time
}
