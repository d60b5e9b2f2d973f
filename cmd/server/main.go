package main

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"petdiary-backend/internal/config"
	"petdiary-backend/internal/database"
	"petdiary-backend/internal/handlers"
	"petdiary-backend/internal/middleware"
	"petdiary-backend/internal/render"
	"petdiary-backend/internal/routes"
	"petdiary-backend/internal/services"
	"petdiary-backend/internal/store/mongostore"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("no .env file found")
	}
	cfg := config.Load()

	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(level)
	}

	log.Info().Msg("connecting to MongoDB")
	client, db, err := database.Connect(cfg.MongoURI)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to MongoDB")
	}
	defer database.Disconnect(client)

	if err := mongostore.EnsureIndexes(context.Background(), db); err != nil {
		log.Warn().Err(err).Msg("failed to ensure user indexes")
	} else {
		log.Info().Msg("user indexes ensured")
	}

	log.Info().Msg("connecting to Redis")
	redisClient, err := database.ConnectRedis(cfg.RedisURI)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to Redis")
	}
	defer redisClient.Close()

	var media services.MediaStore
	if cfg.CloudinaryConfigured() {
		media, err = services.NewCloudinaryMediaStore(
			cfg.CloudinaryName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret, "petdiary")
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize Cloudinary")
		}
		log.Info().Msg("Cloudinary media store enabled")
	} else {
		media, err = services.NewLocalMediaStore(cfg.UploadDir)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to prepare upload directory")
		}
		log.Info().Str("dir", cfg.UploadDir).Msg("local media store enabled")
	}

	renderer, err := render.NewHTMLRenderer(cfg.TemplateGlob)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to parse templates")
	}

	if cfg.IsProduction() && cfg.SessionSecret == "dev-secret" {
		log.Warn().Msg("SESSION_SECRET is not set; using the development default")
	}
	sessions := services.NewSessions(
		services.NewRedisTokenStore(redisClient), cfg.SessionSecret, cfg.IsProduction())

	core := &handlers.Core{
		Users:    mongostore.NewUsers(db),
		Pets:     mongostore.NewPets(db),
		Diary:    mongostore.NewDiary(db),
		Sessions: sessions,
		Media:    media,
		Render:   renderer,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(middleware.RateLimit(redisClient))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir("web/static"))))

	routes.Setup(r, handlers.NewSet(core))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
	}

	log.Info().Str("port", cfg.Port).Msg("petdiary backend running")
	if err := srv.ListenAndServe(); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
