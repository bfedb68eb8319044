package main

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"

	api "github.com/questbank/qmlbank/internal/api/http"
	"github.com/questbank/qmlbank/internal/auth"
	"github.com/questbank/qmlbank/internal/bank"
	"github.com/questbank/qmlbank/internal/config"
	"github.com/questbank/qmlbank/internal/db"
	"github.com/questbank/qmlbank/internal/formats"
	_ "github.com/questbank/qmlbank/internal/formats/qml"
	"github.com/questbank/qmlbank/internal/i18n"
	"github.com/questbank/qmlbank/internal/rbac"
	"github.com/questbank/qmlbank/internal/storage"
	"github.com/questbank/qmlbank/internal/templvars"
)

func main() {
	log := logrus.New()
	cfg := config.FromEnv()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		log.WithError(err).Fatal("db open failed")
	}
	store := bank.NewSQLStore(dbh)

	if err := auth.EnsureUser(ctx, dbh, cfg.AdminUser, cfg.AdminPassHash, "teacher"); err != nil {
		log.WithError(err).Fatal("seed admin user")
	}
	authSvc := auth.NewService(cfg.AuthSecret)

	var vars *templvars.Store
	if cfg.TemplateVarsPath != "" {
		vars, err = templvars.Load(cfg.TemplateVarsPath)
		if err != nil {
			log.WithError(err).Fatal("load template vars")
		}
		log.WithField("keys", vars.Len()).Info("template vars loaded")
	}

	var archive storage.Archive
	if cfg.UploadDir != "" {
		fs, err := storage.NewFSArchive(cfg.UploadDir)
		if err != nil {
			log.WithError(err).Fatal("init upload archive")
		}
		archive = fs
	}

	factory, ok := formats.Lookup("qml")
	if !ok {
		log.Fatal("qml importer not registered")
	}
	importer := factory(formats.Options{Vars: vars, Messages: i18n.NewEnglish()})

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Post("/auth/login", auth.LoginHandler(authSvc, dbh))

	r.Group(func(pr chi.Router) {
		pr.Use(auth.JWTMiddleware(authSvc))
		pr.With(rbac.Require(rbac.PermImport)).
			Post("/qml/import", api.ImportQMLHandler(importer, store, archive, log))
		pr.With(rbac.Require(rbac.PermQuestionRead)).
			Get("/questions", api.ListQuestionsHandler(store))
		pr.With(rbac.Require(rbac.PermQuestionRead)).
			Get("/questions/{id}", api.GetQuestionHandler(store))
	})

	log.WithField("addr", cfg.HTTPAddr).Info("qmlbankd listening")
	if err := http.ListenAndServe(cfg.HTTPAddr, r); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}
