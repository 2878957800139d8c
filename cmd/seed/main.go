package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/spequip/backend/internal/users"
	"github.com/spequip/backend/pkg/config"
	"github.com/spequip/backend/pkg/db"
	"github.com/spequip/backend/pkg/db/models"
	"github.com/spequip/backend/pkg/enums"
	"github.com/spequip/backend/pkg/logger"
	"github.com/spequip/backend/pkg/security"
)

type seedProduct struct {
	name        string
	description string
	price       string
	category    enums.ProductCategory
	imageURL    string
	stock       int
}

var seedProducts = []seedProduct{
	{"Professional Football Helmet", "High-quality football helmet with advanced protection technology. Features impact-resistant shell and comfortable padding.", "24899.17", enums.ProductCategoryFootball, "https://via.placeholder.com/300x300/7D8D86/FFFFFF?text=Football+Helmet", 25},
	{"Football Shoulder Pads", "Lightweight yet durable shoulder pads designed for maximum protection and mobility on the field.", "16599.17", enums.ProductCategoryFootball, "https://via.placeholder.com/300x300/7D8D86/FFFFFF?text=Shoulder+Pads", 30},
	{"Official NFL Football", "Official size and weight football used in professional games. Perfect for practice and games.", "4149.17", enums.ProductCategoryFootball, "https://via.placeholder.com/300x300/7D8D86/FFFFFF?text=NFL+Football", 100},
	{"Professional Basketball", "Official size basketball with superior grip and durability. Perfect for indoor and outdoor play.", "3319.17", enums.ProductCategoryBasketball, "https://via.placeholder.com/300x300/BCA88D/FFFFFF?text=Basketball", 75},
	{"Basketball Hoop System", "Adjustable height basketball hoop system perfect for backyard play. Easy assembly included.", "49799.17", enums.ProductCategoryBasketball, "https://via.placeholder.com/300x300/BCA88D/FFFFFF?text=Basketball+Hoop", 15},
	{"Basketball Shoes - Pro Series", "High-performance basketball shoes with excellent ankle support and traction for optimal court performance.", "12449.17", enums.ProductCategoryBasketball, "https://via.placeholder.com/300x300/BCA88D/FFFFFF?text=Basketball+Shoes", 50},
	{"Professional Tennis Racket", "Lightweight carbon fiber tennis racket with perfect balance for power and control.", "16599.17", enums.ProductCategoryTennis, "https://via.placeholder.com/300x300/3E3F29/FFFFFF?text=Tennis+Racket", 40},
	{"Tennis Ball Set (12 balls)", "Professional grade tennis balls with consistent bounce and durability. Perfect for practice and matches.", "2074.17", enums.ProductCategoryTennis, "https://via.placeholder.com/300x300/3E3F29/FFFFFF?text=Tennis+Balls", 80},
	{"Tennis Net - Tournament Grade", "Official tournament grade tennis net with adjustable height and weather-resistant materials.", "7469.17", enums.ProductCategoryTennis, "https://via.placeholder.com/300x300/3E3F29/FFFFFF?text=Tennis+Net", 20},
	{"Professional Soccer Ball", "FIFA approved soccer ball with excellent flight characteristics and durability.", "3817.17", enums.ProductCategorySoccer, "https://via.placeholder.com/300x300/F1F0E4/000000?text=Soccer+Ball", 60},
	{"Soccer Goal Set", "Portable soccer goal set perfect for backyard practice. Easy setup and takedown.", "10789.17", enums.ProductCategorySoccer, "https://via.placeholder.com/300x300/F1F0E4/000000?text=Soccer+Goal", 25},
	{"Soccer Cleats - Elite", "Professional soccer cleats with superior traction and comfort for optimal field performance.", "9959.17", enums.ProductCategorySoccer, "https://via.placeholder.com/300x300/F1F0E4/000000?text=Soccer+Cleats", 45},
	{"Adjustable Dumbbell Set", "Complete adjustable dumbbell set with multiple weight options. Perfect for home workouts.", "33199.17", enums.ProductCategoryFitness, "https://via.placeholder.com/300x300/7D8D86/FFFFFF?text=Dumbbells", 20},
	{"Yoga Mat - Premium", "Non-slip premium yoga mat with extra cushioning for comfort during workouts.", "4149.17", enums.ProductCategoryFitness, "https://via.placeholder.com/300x300/7D8D86/FFFFFF?text=Yoga+Mat", 100},
	{"Resistance Band Set", "Complete resistance band set with multiple resistance levels and accessories.", "2489.17", enums.ProductCategoryFitness, "https://via.placeholder.com/300x300/7D8D86/FFFFFF?text=Resistance+Bands", 75},
	{"Running Shoes - Marathon", "Lightweight running shoes with excellent cushioning and support for long distance running.", "10789.17", enums.ProductCategoryRunning, "https://via.placeholder.com/300x300/BCA88D/FFFFFF?text=Running+Shoes", 60},
	{"Fitness Tracker Watch", "Advanced fitness tracker with heart rate monitoring, GPS, and smartphone connectivity.", "16599.17", enums.ProductCategoryRunning, "https://via.placeholder.com/300x300/BCA88D/FFFFFF?text=Fitness+Tracker", 35},
	{"Swimming Goggles - Pro", "Anti-fog swimming goggles with UV protection and adjustable straps.", "2074.17", enums.ProductCategorySwimming, "https://via.placeholder.com/300x300/3E3F29/FFFFFF?text=Swimming+Goggles", 50},
	{"Swim Cap - Silicone", "Durable silicone swim cap that provides excellent water protection and comfort.", "1078.17", enums.ProductCategorySwimming, "https://via.placeholder.com/300x300/3E3F29/FFFFFF?text=Swim+Cap", 80},
	{"Golf Club Set - Beginner", "Complete golf club set perfect for beginners. Includes drivers, irons, wedges, and putter.", "41499.17", enums.ProductCategoryGolf, "https://via.placeholder.com/300x300/F1F0E4/000000?text=Golf+Clubs", 15},
	{"Golf Balls - Tournament", "Professional grade golf balls with superior distance and control. Pack of 12.", "2904.17", enums.ProductCategoryGolf, "https://via.placeholder.com/300x300/F1F0E4/000000?text=Golf+Balls", 100},
}

type seedUser struct {
	username string
	email    string
	password string
	isAdmin  bool
}

var seedUsers = []seedUser{
	{"admin", "admin@spequip.com", "admin123", true},
	{"demo_user", "user@spequip.com", "user123", false},
	{"john_doe", "john_doe@example.com", "password123", false},
	{"jane_smith", "jane_smith@example.com", "password123", false},
	{"mike_johnson", "mike_johnson@example.com", "password123", false},
	{"sarah_wilson", "sarah_wilson@example.com", "password123", false},
	{"tom_brown", "tom_brown@example.com", "password123", false},
}

func main() {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "seed"})

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logg.Error(ctx, "failed to load config", err)
		os.Exit(1)
	}
	if cfg.App.IsProd() {
		logg.Error(ctx, "refusing to seed a prod database", fmt.Errorf("app env is %s", cfg.App.Env))
		os.Exit(1)
	}

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer dbClient.Close()

	conn := dbClient.DB()
	usersRepo := users.NewRepository(conn)

	for _, u := range seedUsers {
		hash, err := security.HashPassword(u.password, cfg.Password)
		if err != nil {
			logg.Error(ctx, "failed to hash seed password", err)
			os.Exit(1)
		}
		if _, err := usersRepo.Create(ctx, users.CreateUserDTO{
			Username:     u.username,
			Email:        u.email,
			PasswordHash: hash,
			IsAdmin:      u.isAdmin,
		}); err != nil {
			logg.Error(ctx, fmt.Sprintf("failed to seed user %s", u.username), err)
			os.Exit(1)
		}
	}
	logg.Info(logg.WithField(ctx, "count", len(seedUsers)), "seeded users")

	for _, p := range seedProducts {
		product := &models.Product{
			Name:          p.name,
			Description:   p.description,
			Price:         decimal.RequireFromString(p.price),
			Category:      p.category,
			ImageURL:      p.imageURL,
			StockQuantity: p.stock,
		}
		if err := conn.WithContext(ctx).Create(product).Error; err != nil {
			logg.Error(ctx, fmt.Sprintf("failed to seed product %s", p.name), err)
			os.Exit(1)
		}
	}
	logg.Info(logg.WithField(ctx, "count", len(seedProducts)), "seeded products")
}
