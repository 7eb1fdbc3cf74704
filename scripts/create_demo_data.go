package main

import (
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/johnquangdev/crm-backend/internal/domain/entities"
	"github.com/johnquangdev/crm-backend/internal/infrastructure/database"
	"github.com/johnquangdev/crm-backend/pkg/config"
)

// Seeds a demo user plus a small CRM data set for local development.
// Run with: go run scripts/create_demo_data.go
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	log.Println("Cleaning up existing demo data...")
	db.Where("user_id IN (SELECT id FROM users WHERE email LIKE ?)", "%@demo.local").Delete(&entities.Session{})
	db.Where("email LIKE ?", "%@demo.local").Delete(&entities.User{})
	db.Where("email LIKE ?", "%@demo.local").Delete(&entities.Contact{})
	db.Where("name = ?", "Demo Corp").Delete(&entities.Company{})

	hash, err := bcrypt.GenerateFromPassword([]byte("demo-password"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	user := entities.User{
		Email:        "agent@demo.local",
		Name:         "Demo Agent",
		PasswordHash: string(hash),
		IsActive:     true,
	}
	if err := db.Create(&user).Error; err != nil {
		log.Fatalf("Failed to create demo user: %v", err)
	}
	log.Printf("Created user %s (password: demo-password)", user.Email)

	company := entities.Company{
		Name:     "Demo Corp",
		Industry: "Software",
		Website:  "https://demo.example.com",
	}
	if err := db.Create(&company).Error; err != nil {
		log.Fatalf("Failed to create company: %v", err)
	}

	contacts := []entities.Contact{
		{FirstName: "Demo", LastName: "Agent", Email: "agent@demo.local", CompanyID: &company.ID},
		{FirstName: "Carol", LastName: "Chen", Email: "carol@demo.local", CompanyID: &company.ID},
		{FirstName: "Dmitri", LastName: "Volkov", Email: "dmitri@demo.local", CompanyID: &company.ID},
	}
	for i := range contacts {
		if err := db.Create(&contacts[i]).Error; err != nil {
			log.Fatalf("Failed to create contact: %v", err)
		}
	}
	log.Printf("Created %d contacts", len(contacts))

	deal := entities.Deal{
		Title:       "Demo Corp pilot",
		Amount:      25000,
		Stage:       entities.DealStageProposal,
		Probability: 60,
		CompanyID:   company.ID,
		ContactID:   &contacts[1].ID,
	}
	if err := db.Create(&deal).Error; err != nil {
		log.Fatalf("Failed to create deal: %v", err)
	}

	meeting := entities.Meeting{
		Title:       "Pilot kickoff",
		Description: "Scope the pilot rollout",
		DateTime:    time.Now().Add(24 * time.Hour),
		Duration:    60,
		Location:    "Demo Corp HQ",
		MeetingType: entities.MeetingTypeInPerson,
		Status:      entities.MeetingStatusScheduled,
		DealID:      &deal.ID,
		CompanyID:   &company.ID,
	}
	if err := db.Create(&meeting).Error; err != nil {
		log.Fatalf("Failed to create meeting: %v", err)
	}
	if err := db.Model(&meeting).Association("Participants").Replace(contacts); err != nil {
		log.Fatalf("Failed to attach participants: %v", err)
	}
	log.Printf("Created meeting %d with %d participants", meeting.ID, len(contacts))

	log.Println("Demo data ready")
}
