package main

import (
	"log"

	"ai-resume-be/internal/model"

	"gorm.io/gorm"
)

// SeedNotificationTypes populates the database with default notification types.
func SeedNotificationTypes(db *gorm.DB) {
	log.Println("Seeding Notification Types...")

	types := []model.NotificationType{
		{
			Code:        "ENHANCEMENT_COMPLETED",
			DisplayName: "Resume Enhanced",
			Template:    "Your resume enhancement is ready: {message}",
			Priority:    "MEDIUM",
			IsActive:    true,
		},
		{
			Code:        "USER_LOGIN",
			DisplayName: "Login Activity",
			Template:    "You logged in from a new device",
			Priority:    "LOW",
			IsActive:    true,
		},
		{
			Code:        "SUBSCRIPTION_CREATED",
			DisplayName: "Subscription Started",
			Template:    "Your {plan_name} subscription is being processed",
			Priority:    "HIGH",
			IsActive:    true,
		},
		{
			Code:        "SYSTEM_BROADCAST",
			DisplayName: "System Announcement",
			Template:    "{message}",
			Priority:    "HIGH",
			IsActive:    true,
		},
	}

	for _, t := range types {
		if err := db.Where("code = ?", t.Code).FirstOrCreate(&t).Error; err != nil {
			log.Printf("Error seeding notification type %s: %v", t.Code, err)
		}
	}
	log.Println("✅ Notification types seeded successfully.")
}
