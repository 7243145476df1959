package main

import (
	"html/template"
	"log/slog"
	"os"
	"time"

	"github.com/sayurimoto/inkwell/internal/common"
	"github.com/sayurimoto/inkwell/internal/mailservice"
	"github.com/sayurimoto/inkwell/internal/postservice"
	"github.com/sayurimoto/inkwell/internal/userservice"
)

type application struct {
	config      *Config
	logger      *slog.Logger
	userService *userservice.UserService
	postService *postservice.PostService
	mailService *mailservice.MailService
	templates   map[string]*template.Template
}

func main() {
	// Initialize the logger
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	// Load the configuration
	cfg, err := loadConfig(".env")
	if err != nil {
		logger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Create the schema on first run
	err = common.MigrateDB("file://migrations", cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName)
	if err != nil {
		logger.Error("failed to migrate the database", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize the database
	db, err := common.NewDB(cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName, 10, 5, 15*time.Minute)
	if err != nil {
		logger.Error("failed to connect to the database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer common.CloseDB(db)

	// Parse the page templates
	templates, err := newTemplateCache(cfg.HTMLDir)
	if err != nil {
		logger.Error("failed to parse templates", slog.String("error", err.Error()))
		os.Exit(1)
	}

	cache := common.NewCache(5*time.Minute, 10*time.Minute)

	// Initialize the services
	app := &application{
		config:      cfg,
		logger:      logger,
		userService: userservice.NewUserService(db, cache),
		postService: postservice.NewPostService(db),
		mailService: mailservice.NewMailService(cfg.MailHost, cfg.MailUser, cfg.MailPassword, cfg.MailSender, cfg.MailRecipient, cfg.MailPort),
		templates:   templates,
	}

	// Start the HTTP server
	err = app.serve(cfg.Port)
	if err != nil {
		logger.Error("failed to start the server", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
