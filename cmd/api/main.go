package main

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"

	"github.com/pixisphere/pixisphere-api/internal/cache"
	"github.com/pixisphere/pixisphere-api/internal/config"
	"github.com/pixisphere/pixisphere-api/internal/db"
	"github.com/pixisphere/pixisphere-api/internal/handlers"
	"github.com/pixisphere/pixisphere-api/internal/middleware"
	"github.com/pixisphere/pixisphere-api/internal/models"
	"github.com/pixisphere/pixisphere-api/internal/services/matching"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	gdb, err := db.Connect(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}

	if err := gdb.AutoMigrate(
		&models.User{},
		&models.PartnerProfile{},
		&models.Category{},
		&models.Location{},
		&models.Inquiry{},
	); err != nil {
		log.Fatal(err)
	}

	rdb := cache.NewRedis(cfg.RedisAddr, cfg.RedisPassword)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Println("Redis unreachable, stats caching disabled:", err)
		rdb = nil
	}
	statsCache := cache.NewStatsCache(rdb, time.Duration(cfg.StatsCacheTTLSec)*time.Second)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			msg := "Internal Server Error"
			var fe *fiber.Error
			if errors.As(err, &fe) {
				code = fe.Code
				msg = fe.Message
			}
			if code == fiber.StatusInternalServerError {
				log.Println("Unhandled error:", err)
				msg = "Internal Server Error"
			}
			return c.Status(code).JSON(fiber.Map{"message": msg})
		},
	})

	app.Use(cors.New(cors.Config{
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	authH := &handlers.AuthHandler{
		DB:        gdb,
		JWTSecret: cfg.JWTSecret,
		Expires:   cfg.JWTExpiresMin,
	}
	partnerH := handlers.NewPartnerHandler(gdb)
	portfolioH := handlers.NewPortfolioHandler(gdb)
	inquiryH := handlers.NewInquiryHandler(gdb, matching.NewMatchingService(gdb))
	adminH := handlers.NewAdminHandler(gdb, statsCache)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Pixisphere")
	})

	api := app.Group("/api")

	// public
	api.Post("/auth/signup", authH.Signup)
	api.Post("/auth/login", authH.Login)

	// protected (JWT bearer)
	protected := api.Group("/",
		middleware.Protect(cfg.JWTSecret),
		middleware.AttachClaims(),
	)

	// partner onboarding & portfolio
	partner := protected.Group("/partner", middleware.RequireRoles("partner"))
	partner.Post("/onboard", partnerH.SubmitOnboarding)
	partner.Post("/portfolio", portfolioH.AddItem)
	partner.Get("/portfolio", portfolioH.GetMine)
	// reorder before :itemId so the literal segment wins
	partner.Put("/portfolio/reorder", portfolioH.Reorder)
	partner.Put("/portfolio/:itemId", portfolioH.EditItem)
	partner.Delete("/portfolio/:itemId", portfolioH.DeleteItem)

	// inquiries
	protected.Post("/inquiry", middleware.RequireRoles("client"), inquiryH.SubmitInquiry)
	protected.Get("/inquiry/partner/leads", middleware.RequireRoles("partner"), inquiryH.GetPartnerLeads)

	// admin
	admin := protected.Group("/admin", middleware.RequireRoles("admin"))
	admin.Get("/verifications", adminH.GetPendingVerifications)
	admin.Put("/verifications/:id", adminH.VerifyPartner)
	admin.Get("/stats", adminH.GetStats)
	admin.Post("/categories", adminH.CreateCategory)
	admin.Get("/categories", adminH.GetCategories)
	admin.Put("/categories/:id", adminH.UpdateCategory)
	admin.Delete("/categories/:id", adminH.DeleteCategory)
	admin.Post("/locations", adminH.CreateLocation)
	admin.Get("/locations", adminH.GetLocations)
	admin.Put("/locations/:id", adminH.UpdateLocation)
	admin.Delete("/locations/:id", adminH.DeleteLocation)
	admin.Put("/partner/:partnerId/promote", adminH.PromotePartner)

	// unknown routes
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Not Found",
		})
	})

	log.Println("server is running on port:", cfg.AppPort)
	log.Fatal(app.Listen(":" + cfg.AppPort))
}
