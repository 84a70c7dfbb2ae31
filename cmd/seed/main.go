package main

import (
	"log"
	"os"

	"ai-resume-be/internal/constant"
	"ai-resume-be/internal/model"
	"ai-resume-be/pkg/database"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

type planSeed struct {
	plan     model.SubscriptionPlan
	benefits map[string]int
}

func main() {
	// Load Environment Variables
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

	seedPlans(db)
	seedTemplates(db)
	SeedNotificationTypes(db)

	color.Green("✅ Seeding completed")
}

func seedPlans(db *gorm.DB) {
	log.Println("Seeding Subscription Plans...")

	plans := []planSeed{
		{
			plan: model.SubscriptionPlan{
				Name:          "Free",
				Slug:          constant.PlanFree,
				Description:   "Get started with AI resume enhancement",
				Tagline:       "For trying things out",
				Price:         0,
				BillingPeriod: "monthly",
				IsActive:      true,
				SortOrder:     1,
			},
			benefits: map[string]int{
				constant.BenefitDailyTokenLimit:    20000,
				constant.BenefitActiveSessionLimit: 3,
				constant.BenefitTemplateLimit:      2,
			},
		},
		{
			plan: model.SubscriptionPlan{
				Name:          "Pro",
				Slug:          constant.PlanPro,
				Description:   "Unlimited sessions and every template",
				Tagline:       "For active job seekers",
				Price:         49000,
				TaxRate:       0.11,
				BillingPeriod: "monthly",
				IsMostPopular: true,
				IsActive:      true,
				SortOrder:     2,
			},
			benefits: map[string]int{
				constant.BenefitDailyTokenLimit:    200000,
				constant.BenefitActiveSessionLimit: -1,
				constant.BenefitTemplateLimit:      -1,
			},
		},
		{
			plan: model.SubscriptionPlan{
				Name:          "Enterprise",
				Slug:          constant.PlanEnterprise,
				Description:   "For teams and career services",
				Tagline:       "Volume enhancement for organizations",
				Price:         490000,
				TaxRate:       0.11,
				BillingPeriod: "yearly",
				IsActive:      true,
				SortOrder:     3,
			},
			benefits: map[string]int{
				constant.BenefitDailyTokenLimit:    -1,
				constant.BenefitActiveSessionLimit: -1,
				constant.BenefitTemplateLimit:      -1,
			},
		},
	}

	for _, seed := range plans {
		var existing model.SubscriptionPlan
		if err := db.Where("slug = ?", seed.plan.Slug).First(&existing).Error; err == nil {
			color.Yellow("Plan '%s' already exists, skipping...", seed.plan.Slug)
			continue
		}

		if err := db.Create(&seed.plan).Error; err != nil {
			log.Printf("Error creating plan '%s': %v", seed.plan.Slug, err)
			continue
		}

		for code, value := range seed.benefits {
			benefit := model.PlanBenefit{
				PlanId: seed.plan.Id,
				Code:   code,
				Value:  value,
			}
			if err := db.Create(&benefit).Error; err != nil {
				log.Printf("Error creating benefit '%s' for plan '%s': %v", code, seed.plan.Slug, err)
			}
		}

		color.Green("Created plan: %s (%s)", seed.plan.Name, seed.plan.Slug)
	}
}

func seedTemplates(db *gorm.DB) {
	log.Println("Seeding Resume Templates...")

	templates := []model.ResumeTemplate{
		{Name: "Classic", Slug: "classic", Description: "Traditional single-column layout", PreviewURL: "/templates/classic.png", IsActive: true, SortOrder: 1},
		{Name: "Modern", Slug: "modern", Description: "Two-column layout with a sidebar", PreviewURL: "/templates/modern.png", IsActive: true, SortOrder: 2},
		{Name: "Minimal", Slug: "minimal", Description: "Whitespace-heavy, typography-first", PreviewURL: "/templates/minimal.png", IsActive: true, SortOrder: 3},
		{Name: "Executive", Slug: "executive", Description: "Formal layout for senior roles", PreviewURL: "/templates/executive.png", IsActive: true, SortOrder: 4},
	}

	for _, t := range templates {
		var existing model.ResumeTemplate
		if err := db.Where("slug = ?", t.Slug).First(&existing).Error; err == nil {
			color.Yellow("Template '%s' already exists, skipping...", t.Slug)
			continue
		}

		if err := db.Create(&t).Error; err != nil {
			log.Printf("Error creating template '%s': %v", t.Slug, err)
		} else {
			color.Green("Created template: %s (%s)", t.Name, t.Slug)
		}
	}
}
