package main

import (
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"boqbase/internal/database"
	"boqbase/internal/domain/auth"
	"boqbase/internal/domain/boq"
	"boqbase/internal/domain/catalog"
	"boqbase/internal/domain/taxonomy"
	"boqbase/internal/domain/template"
	"boqbase/internal/middleware"
	jwtsvc "boqbase/internal/pkg/jwt"
)

func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL is empty")
	}
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET is empty")
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal(err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal("schema bootstrap failed:", err)
	}

	userRepo := auth.NewRepository(db)
	taxonomyRepo := taxonomy.NewRepository(db)
	shopRepo := catalog.NewShopRepository(db)
	materialRepo := catalog.NewMaterialRepository(db)
	templateRepo := template.NewRepository(db)
	boqRepo := boq.NewRepository(db)

	j := jwtsvc.New(secret, 24*time.Hour)

	authService := auth.NewService(userRepo, j)
	authHandler := auth.NewHandler(authService)

	taxonomyService := taxonomy.NewService(taxonomyRepo)
	taxonomyHandler := taxonomy.NewHandler(taxonomyService)

	catalogService := catalog.NewService(shopRepo, materialRepo)
	catalogHandler := catalog.NewHandler(catalogService)

	templateService := template.NewService(templateRepo, shopRepo, taxonomyRepo)
	templateHandler := template.NewHandler(templateService)

	boqService := boq.NewService(boqRepo)
	boqHandler := boq.NewHandler(boqService)

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterRoutes(v1)
		taxonomyHandler.RegisterPublicRoutes(v1)
		catalogHandler.RegisterPublicRoutes(v1)
		templateHandler.RegisterPublicRoutes(v1)

		// authenticated
		protected := v1.Group("/")
		protected.Use(middleware.Auth(j))
		{
			catalogHandler.RegisterRoutes(protected)
			boqHandler.RegisterRoutes(protected)

			suppliers := protected.Group("/")
			suppliers.Use(middleware.RequireRoles("supplier", "purchase_team", "admin"))
			templateHandler.RegisterSubmitRoutes(suppliers)
		}

		// review staff
		staff := v1.Group("/admin")
		staff.Use(middleware.Auth(j), middleware.StaffOnly())
		{
			taxonomyHandler.RegisterStaffRoutes(staff)
			catalogHandler.RegisterStaffRoutes(staff)
			templateHandler.RegisterStaffRoutes(staff)
		}
	}

	addr := os.Getenv("LISTEN_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	if err := r.Run(addr); err != nil {
		log.Fatal(err)
	}
}
