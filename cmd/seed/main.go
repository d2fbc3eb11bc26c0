package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"boqbase/internal/database"
	"boqbase/internal/domain/auth"
	"boqbase/internal/domain/catalog"
	"boqbase/internal/domain/taxonomy"
	"boqbase/internal/domain/template"
)

func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "boqbase.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running schema bootstrap...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("schema bootstrap failed:", err)
	}

	// ================== USERS ==================
	log.Println("Creating users...")

	seedUser := func(email, password, name string, role auth.UserRole) auth.User {
		hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		u := auth.User{
			Email:        email,
			PasswordHash: string(hash),
			Role:         role,
			Name:         name,
		}
		db.Where(auth.User{Email: email}).FirstOrCreate(&u)
		return u
	}

	admin := seedUser("admin@boqbase.local", "admin123", "Administrator", auth.RoleAdmin)
	seedUser("software@boqbase.local", "software123", "Software Team", auth.RoleSoftwareTeam)
	purchaser := seedUser("purchase@boqbase.local", "purchase123", "Purchase Team", auth.RolePurchaseTeam)
	supplier := seedUser("supplier@boqbase.local", "supplier123", "Demo Supplier", auth.RoleSupplier)
	log.Println("Staff users created: admin / software / purchase (password <role>123)")

	// ================== TAXONOMY ==================
	log.Println("Creating starter taxonomy...")

	cement := taxonomy.Category{Name: "Cement", CreatedBy: admin.ID}
	db.Where(taxonomy.Category{Name: cement.Name}).FirstOrCreate(&cement)

	steel := taxonomy.Category{Name: "Steel", CreatedBy: admin.ID}
	db.Where(taxonomy.Category{Name: steel.Name}).FirstOrCreate(&steel)

	opc := taxonomy.Subcategory{Name: "OPC", CategoryID: cement.ID, CreatedBy: admin.ID}
	db.Where(taxonomy.Subcategory{Name: opc.Name, CategoryID: cement.ID}).FirstOrCreate(&opc)

	bag50 := taxonomy.Product{Name: "50kg Bag", SubcategoryID: opc.ID, CreatedBy: admin.ID}
	db.Where(taxonomy.Product{Name: bag50.Name}).FirstOrCreate(&bag50)

	// ================== CATALOG ==================
	log.Println("Creating demo shop and template...")

	shop := catalog.Shop{
		Name:     "City Building Supplies",
		Address:  "12 Market Road",
		City:     "Colombo",
		OwnerID:  supplier.ID,
		Approved: true,
	}
	db.Where(catalog.Shop{Name: shop.Name}).FirstOrCreate(&shop)

	tpl := template.MaterialTemplate{
		Name:         "Portland Cement",
		Code:         "CEM-01",
		CategoryID:   cement.ID,
		CategoryName: cement.Name,
		CreatedBy:    admin.ID,
	}
	db.Where(template.MaterialTemplate{Code: tpl.Code}).FirstOrCreate(&tpl)

	sub := template.MaterialSubmission{
		TemplateID:  tpl.ID,
		ShopID:      shop.ID,
		Rate:        decimal.NewFromInt(350),
		Unit:        "bag",
		Brand:       "Holcim",
		SubmittedBy: purchaser.ID,
	}
	var existing int64
	db.Model(&template.MaterialSubmission{}).
		Where("template_id = ? AND shop_id = ?", tpl.ID, shop.ID).
		Count(&existing)
	if existing == 0 {
		db.Create(&sub)
		log.Println("Pending submission created for", tpl.Name)
	}

	log.Println("Seed complete")
}
