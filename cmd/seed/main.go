package main

import (
	"context"
	"log"
	"os"

	"tablebook/internal/database"
	"tablebook/internal/domain"
	"tablebook/internal/repository"
)

func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "tablebook.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	catalog := repository.NewCatalogRepository(db)
	if err := catalog.Migrate(); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	ctx := context.Background()

	menuItems := []domain.MenuItem{
		{ID: "app-001", Name: "Tom Yum Soup", Description: "Hot and sour soup with shrimp", Price: 9.5, Category: "Soups", Course: "appetizer", Availability: true, PreparationTime: 15, IsSpicy: true},
		{ID: "app-002", Name: "Spring Rolls", Description: "Crispy vegetable rolls", Price: 6.0, Category: "Starters", Course: "appetizer", Availability: true, PreparationTime: 10, IsVegetarian: true},
		{ID: "main-001", Name: "Pad Thai", Description: "Rice noodles with tamarind sauce", Price: 12.5, Category: "Noodles", Course: "main", Availability: true, PreparationTime: 20},
		{ID: "main-002", Name: "Green Curry", Description: "Coconut curry with basil", Price: 11.0, Category: "Curries", Course: "main", Availability: true, PreparationTime: 25, IsSpicy: true},
		{ID: "main-003", Name: "Grilled Salmon", Description: "Salmon with lemongrass glaze", Price: 18.0, Category: "Grill", Course: "main", Availability: true, PreparationTime: 30},
		{ID: "des-001", Name: "Mango Sticky Rice", Description: "Sweet rice with fresh mango", Price: 7.0, Category: "Desserts", Course: "dessert", Availability: true, PreparationTime: 10, IsVegetarian: true},
	}
	if err := catalog.UpsertMenuItems(ctx, menuItems); err != nil {
		log.Fatal("seeding menu items failed:", err)
	}

	restaurants := []domain.Restaurant{
		{ID: "rest-001", Name: "Savoria", Cuisine: "Thai", Rating: 4.6},
		{ID: "rest-002", Name: "Basil & Lime", Cuisine: "Fusion", Rating: 4.3},
	}
	if err := catalog.UpsertRestaurants(ctx, restaurants); err != nil {
		log.Fatal("seeding restaurants failed:", err)
	}

	log.Printf("seeded %d menu items, %d restaurants", len(menuItems), len(restaurants))
}
