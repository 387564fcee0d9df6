// Command seed loads the base catalog data (client types, categories, sizes),
// a default admin account and a handful of demo products. Safe to re-run:
// every row is created with FirstOrCreate on its natural key.
package main

import (
	"log"

	"go-retail-ws/internal/model"
	"go-retail-ws/pkg/database"

	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	db := database.ConnectDB()
	db.AutoMigrate(
		&model.User{},
		&model.ClientType{},
		&model.Category{},
		&model.Size{},
		&model.Customer{},
		&model.Product{},
		&model.Sale{},
		&model.SaleItem{},
	)

	clientTypes := seedClientTypes(db)
	categories := seedCategories(db)
	seedSizes(db)
	seedUsers(db)
	seedProducts(db, clientTypes, categories)

	log.Println("Seeding finished")
}

func seedClientTypes(db *gorm.DB) map[string]model.ClientType {
	names := []string{"Mujer", "Hombre", "Niño", "Niña"}
	result := make(map[string]model.ClientType, len(names))
	for _, name := range names {
		var ct model.ClientType
		if err := db.Where(model.ClientType{Name: name}).FirstOrCreate(&ct, model.ClientType{Name: name}).Error; err != nil {
			log.Printf("Warning: failed to seed client type %s: %v", name, err)
			continue
		}
		result[name] = ct
	}
	log.Printf("Seeded %d client types", len(result))
	return result
}

func seedCategories(db *gorm.DB) map[string]model.Category {
	names := []string{
		"Abrigos", "Bermudas", "Buzos", "Camisas", "Faldas", "Hogar",
		"Jeans", "Pantalones", "Pijamas", "Ropa Interior", "Terceras Piezas",
		"T-Shirts", "Vestidos", "Polos", "Ropa de Baño",
	}
	result := make(map[string]model.Category, len(names))
	for _, name := range names {
		var cat model.Category
		if err := db.Where(model.Category{Name: name}).FirstOrCreate(&cat, model.Category{Name: name}).Error; err != nil {
			log.Printf("Warning: failed to seed category %s: %v", name, err)
			continue
		}
		result[name] = cat
	}
	log.Printf("Seeded %d categories", len(result))
	return result
}

func seedSizes(db *gorm.DB) {
	names := []string{"XXS", "XS", "S", "M", "L", "XL", "4", "6", "8", "10", "12", "14", "16"}
	for _, name := range names {
		var size model.Size
		if err := db.Where(model.Size{Name: name}).FirstOrCreate(&size, model.Size{Name: name}).Error; err != nil {
			log.Printf("Warning: failed to seed size %s: %v", name, err)
		}
	}
	log.Printf("Seeded %d sizes", len(names))
}

func seedUsers(db *gorm.DB) {
	accounts := []struct {
		email string
		name  string
		role  string
	}{
		{"admin@example.com", "Admin User", model.RoleAdmin},
		{"customer@example.com", "Customer User", model.RoleCustomer},
	}

	for _, acc := range accounts {
		var existing model.User
		if err := db.Where("email = ?", acc.email).First(&existing).Error; err == nil {
			continue
		}

		user := model.User{Email: acc.email, Name: acc.name, Role: acc.role}
		if err := user.SetPassword("password123"); err != nil {
			log.Printf("Warning: failed to hash password for %s: %v", acc.email, err)
			continue
		}
		if err := db.Create(&user).Error; err != nil {
			log.Printf("Warning: failed to create user %s: %v", acc.email, err)
			continue
		}
		log.Printf("Created user %s / password123 (%s)", acc.email, acc.role)
	}
}

func seedProducts(db *gorm.DB, clientTypes map[string]model.ClientType, categories map[string]model.Category) {
	adultSizes := []string{"XXS", "XS", "S", "M", "L", "XL"}
	kidSizes := []string{"4", "6", "8", "10", "12", "14", "16"}

	demo := []struct {
		name       string
		category   string
		clientType string
		sizes      []string
		price      float64
		stock      int
	}{
		{"ABRIGO", "Abrigos", "Mujer", adultSizes, 180000, 120},
		{"FALDA", "Faldas", "Mujer", adultSizes, 65000, 90},
		{"JEANS TERMINADOS", "Jeans", "Mujer", adultSizes, 120000, 150},
		{"BUZO", "Buzos", "Hombre", adultSizes, 95000, 110},
		{"POLOS", "Polos", "Hombre", adultSizes, 45000, 200},
		{"PANTALONES", "Pantalones", "Niño", kidSizes, 55000, 80},
		{"TSHIRT TERMINADA", "T-Shirts", "Niña", kidSizes, 35000, 140},
		{"VESTIDOS", "Vestidos", "Niña", kidSizes, 75000, 60},
	}

	var sizesByName []model.Size
	if err := db.Find(&sizesByName).Error; err != nil {
		log.Printf("Warning: failed to load sizes: %v", err)
		return
	}
	sizeMap := make(map[string]model.Size, len(sizesByName))
	for _, s := range sizesByName {
		sizeMap[s.Name] = s
	}

	for _, p := range demo {
		var existing model.Product
		if err := db.Where("name = ?", p.name).First(&existing).Error; err == nil {
			continue
		}

		product := model.Product{
			Name:  p.name,
			Price: p.price,
			Stock: p.stock,
		}
		if cat, ok := categories[p.category]; ok {
			product.CategoryID = &cat.ID
		}
		if ct, ok := clientTypes[p.clientType]; ok {
			product.ClientTypeID = &ct.ID
		}
		for _, name := range p.sizes {
			if size, ok := sizeMap[name]; ok {
				product.Sizes = append(product.Sizes, size)
			}
		}

		if err := db.Create(&product).Error; err != nil {
			log.Printf("Warning: failed to seed product %s: %v", p.name, err)
		}
	}
	log.Printf("Seeded %d demo products", len(demo))
}
