package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"strings"
	"time"

	"nephro-assistant-be/internal/entity"
	"nephro-assistant-be/internal/repository/unitofwork"
	"nephro-assistant-be/pkg/database"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
)

// mockPatient mirrors one JSONL line of seed data. Medications may be a list
// or an already-joined string.
type mockPatient struct {
	PatientName           string          `json:"patient_name"`
	Age                   int             `json:"age"`
	DischargeDate         string          `json:"discharge_date"`
	PrimaryDiagnosis      string          `json:"primary_diagnosis"`
	Medications           json.RawMessage `json:"medications"`
	DietaryRestrictions   string          `json:"dietary_restrictions"`
	FollowUp              string          `json:"follow_up"`
	WarningSigns          string          `json:"warning_signs"`
	DischargeInstructions string          `json:"discharge_instructions"`
}

func (m *mockPatient) medicationsText() string {
	var list []string
	if err := json.Unmarshal(m.Medications, &list); err == nil {
		return strings.Join(list, ", ")
	}
	var single string
	if err := json.Unmarshal(m.Medications, &single); err == nil {
		return single
	}
	return ""
}

func main() {
	dataFile := flag.String("file", "cmd/seed/data/mock_patients.jsonl", "JSONL file with mock patient records")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	f, err := os.Open(*dataFile)
	if err != nil {
		log.Fatalf("Error: Failed to open seed file: %v", err)
	}
	defer f.Close()

	var patients []*entity.Patient
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var mock mockPatient
		if err := json.Unmarshal([]byte(line), &mock); err != nil {
			log.Fatalf("Error: Invalid seed record: %v", err)
		}
		patients = append(patients, &entity.Patient{
			Name:                  mock.PatientName,
			Age:                   mock.Age,
			DischargeDate:         mock.DischargeDate,
			PrimaryDiagnosis:      mock.PrimaryDiagnosis,
			Medications:           mock.medicationsText(),
			DietaryRestrictions:   mock.DietaryRestrictions,
			FollowUp:              mock.FollowUp,
			WarningSigns:          mock.WarningSigns,
			DischargeInstructions: mock.DischargeInstructions,
			CreatedAt:             time.Now(),
		})
	}
	if err := scanner.Err(); err != nil {
		log.Fatalf("Error: Failed to read seed file: %v", err)
	}

	ctx := context.Background()
	uow := unitofwork.NewRepositoryFactory(db).NewUnitOfWork(ctx)

	if err := uow.Begin(ctx); err != nil {
		log.Fatalf("Error: Failed to begin transaction: %v", err)
	}
	defer uow.Rollback()

	if err := uow.PatientRepository().CreateBulk(ctx, patients); err != nil {
		log.Fatalf("Error: Failed to insert patients: %v", err)
	}

	if err := uow.Commit(); err != nil {
		log.Fatalf("Error: Failed to commit: %v", err)
	}

	color.Green("✅ Seeded %d mock patients from %s", len(patients), *dataFile)
}
