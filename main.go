package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"catalogapi/config"
	"catalogapi/controllers"
	"catalogapi/database"
	"catalogapi/middleware"
	"catalogapi/models"
	"catalogapi/storage"
	"catalogapi/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}
	cfg := config.Load()

	ctx := context.Background()
	if _, err := database.Connect(ctx, cfg.Mongo); err != nil {
		log.Fatal(err)
	}
	if err := utils.SeedAdminUser(ctx, database.OpenCollection("users"), cfg.Auth); err != nil {
		log.Fatal(err)
	}

	store, err := storage.New(ctx, cfg.Assets)
	if err != nil {
		log.Fatal(err)
	}
	reaper := storage.NewReaper(store, nil)
	defer reaper.Close()

	app := &controllers.App{
		Store:   store,
		Reaper:  reaper,
		Uploads: storage.NewValidator(cfg.Uploads),
		Auth:    cfg.Auth,
	}

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "X-Total-Count", "Content-Range"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.POST("/auth/login", app.Login())

	r.GET("/categories", app.GetCategories())
	r.GET("/categories/:id", app.GetCategory())
	r.GET("/products", app.GetProducts())
	r.GET("/products/:id", app.GetProduct())
	r.GET("/images/:id", app.LoadImage())

	admin := r.Group("/admin")
	admin.Use(middleware.Authenticate(cfg.Auth.JWTSecret), middleware.RequireRoles(string(models.RoleAdmin)))
	{
		admin.POST("/categories/new", app.NewCategory())
		admin.PUT("/categories/:id", app.UpdateCategory())
		admin.DELETE("/categories/:id", app.DeleteCategory())

		admin.POST("/products/new", app.CreateProduct())
		admin.PUT("/products/:id", app.UpdateProduct())
		admin.DELETE("/products/:id", app.DeleteProduct())
		admin.DELETE("/products/:id/images/:imageid", app.DeleteImage())
		admin.POST("/products/:id/images", app.AddProductImages())
	}

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
