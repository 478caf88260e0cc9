package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/taller-pos/api/internal/blob"
	"github.com/taller-pos/api/internal/bsale"
	"github.com/taller-pos/api/internal/config"
	"github.com/taller-pos/api/internal/database"
	"github.com/taller-pos/api/internal/notify"
	"github.com/taller-pos/api/internal/router"
	"github.com/taller-pos/api/internal/ws"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()
	ctx := context.Background()

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Unable to create connection pool: %v", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		log.Fatalf("Unable to ping database: %v", err)
	}
	log.Println("Connected to database")

	queries := database.New(pool)

	hub := ws.NewHub()
	go hub.Run()

	smtpPort, err := strconv.Atoi(cfg.SMTPPort)
	if err != nil {
		log.Fatalf("Invalid SMTP_PORT %q: %v", cfg.SMTPPort, err)
	}
	mailer := notify.NewMailer(cfg.SMTPHost, smtpPort, cfg.SMTPUser, cfg.SMTPPass, cfg.MailFrom)

	validator := bsale.NewClient(cfg.BsaleBaseURL, cfg.BsaleTokens)

	var uploader blob.Uploader
	store, err := blob.NewS3Store(ctx, cfg.AWSRegion, cfg.AWSAccessKeyID, cfg.AWSSecretAccessKey, cfg.S3Bucket)
	if err != nil {
		log.Fatalf("Unable to initialize S3 store: %v", err)
	}
	if store != nil {
		uploader = store
		log.Printf("Document archiving enabled (bucket %s)", cfg.S3Bucket)
	} else {
		log.Println("Document archiving disabled (S3_BUCKET not set)")
	}

	r := router.New(cfg, queries, pool, hub, mailer, validator, uploader)

	log.Printf("Starting server on :%s", cfg.Port)
	if err := http.ListenAndServe(fmt.Sprintf(":%s", cfg.Port), r); err != nil {
		log.Fatal(err)
	}
}
