package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/visapath/content-service/internal/config"
	"github.com/visapath/content-service/internal/database"
	"github.com/visapath/content-service/internal/handler"
	"github.com/visapath/content-service/internal/model"
	"github.com/visapath/content-service/internal/queue"
	"github.com/visapath/content-service/internal/repository"
	"github.com/visapath/content-service/internal/router"
	"github.com/visapath/content-service/internal/service"
	"github.com/visapath/content-service/internal/storage"
	"github.com/visapath/content-service/internal/utils"

	"github.com/google/uuid"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	rdb := config.NewRedisClient()
	cacheCfg := config.LoadCacheConfig()
	rlCfg := config.LoadRateLimitConfig()

	// Repositories
	articles := repository.NewArticleRepo(db)
	destinations := repository.NewDestinationCountryRepo(db)
	origins := repository.NewOriginCountryRepo(db)
	visaTypes := repository.NewVisaTypeRepo(db)
	categories := repository.NewCategoryRepo(db)
	categoryMaps := repository.NewArticleCategoryMapRepo(db)
	checklists := repository.NewChecklistRepo(db)
	items := repository.NewChecklistItemRepo(db)
	admins := repository.NewAdminUserRepo(db)

	// Services
	categorySvc := service.NewCategoryAssignments(categoryMaps)
	articleSvc := service.NewArticles(articles, categorySvc, service.NewArticleEvents())
	orderingSvc := service.NewChecklistOrdering(checklists, items)
	images := storage.NewImageStore(cfg.MediaRoot, cfg.MediaBaseURL)

	bootstrapAdmin(cfg, admins)

	// Handlers
	authH := handler.NewAuthHandler(cfg, admins)
	adminH := &handler.AdminHandler{
		Articles:     articles,
		Destinations: destinations,
		Origins:      origins,
		VisaTypes:    visaTypes,
		Categories:   categories,
		Checklists:   checklists,
		Items:        items,
		CategoryMaps: categoryMaps,
		ArticleSvc:   articleSvc,
		CategorySvc:  categorySvc,
		OrderingSvc:  orderingSvc,
		Images:       images,
	}
	publicH := &handler.PublicHandler{
		Articles:     articles,
		Destinations: destinations,
		Origins:      origins,
		VisaTypes:    visaTypes,
		Categories:   categories,
		Checklists:   checklists,
		Items:        items,
		CategoryMaps: categoryMaps,
		CategorySvc:  categorySvc,
	}

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret, rlCfg, rdb)
	router.RegisterAdmin(e, authH, adminH, cfg.JWTSecret)
	router.RegisterPublic(e, publicH, cacheCfg, rdb)
	// Uploaded cover images are served straight from disk.
	e.Static(cfg.MediaBaseURL, cfg.MediaRoot)

	// Audit log consumer for article.published events.
	go func() {
		if err := queue.StartContentConsumer(); err != nil {
			log.Printf("content consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}

// bootstrapAdmin creates the configured admin account on first start so a
// fresh deployment has a way into the back office.  Existing accounts are
// left untouched.
func bootstrapAdmin(cfg config.Config, admins *repository.AdminUserRepo) {
	if cfg.AdminEmail == "" || cfg.AdminPass == "" {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := admins.GetByEmail(ctx, cfg.AdminEmail); err == nil {
		return
	} else if err != repository.ErrUserNotFound {
		log.Printf("bootstrap admin: lookup failed: %v", err)
		return
	}

	hash, err := utils.HashPassword(cfg.AdminPass, cfg.BcryptCost)
	if err != nil {
		log.Printf("bootstrap admin: hash failed: %v", err)
		return
	}
	u := &model.AdminUser{
		ID:           uuid.NewString(),
		Email:        cfg.AdminEmail,
		PasswordHash: hash,
		Role:         "ADMIN",
		CreatedAt:    time.Now().UTC(),
	}
	if err := admins.Create(ctx, u); err != nil {
		log.Printf("bootstrap admin: create failed: %v", err)
		return
	}
	log.Printf("bootstrap admin: created account %s", cfg.AdminEmail)
}
