package main

import (
	"io"
	"log"
	"os"
	"time"

	"github.com/partnertrackhq/PartnerTrack_CRM_BackEnd/internal/config"
	"github.com/partnertrackhq/PartnerTrack_CRM_BackEnd/internal/logging"
	"github.com/partnertrackhq/PartnerTrack_CRM_BackEnd/internal/media"
	minioRepo "github.com/partnertrackhq/PartnerTrack_CRM_BackEnd/internal/repository/minio"
	"github.com/partnertrackhq/PartnerTrack_CRM_BackEnd/internal/repository/postgres"
	"github.com/partnertrackhq/PartnerTrack_CRM_BackEnd/internal/service"
	transport "github.com/partnertrackhq/PartnerTrack_CRM_BackEnd/internal/transport/http"
	"github.com/partnertrackhq/PartnerTrack_CRM_BackEnd/internal/transport/mail"
	"github.com/partnertrackhq/PartnerTrack_CRM_BackEnd/internal/util"
)

func main() {
	cfg := config.Load()

	if cfg.LogstashTCPAddr != "" {
		writer, err := logging.NewLogstashWriter(cfg.LogstashTCPAddr)
		if err != nil {
			log.Printf("Warning: logstash disabled: %v", err)
		} else {
			defer writer.Close()
			log.SetOutput(io.MultiWriter(os.Stdout, writer))
		}
	}

	db, err := postgres.New(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("connect to database: %v", err)
	}
	defer db.Close()

	userRepo := postgres.NewUserRepo(db)
	sessionRepo := postgres.NewSessionRepo(db)
	resetRepo := postgres.NewPasswordResetRepo(db)
	partnerRepo := postgres.NewPartnerRepo(db)
	leadRepo := postgres.NewLeadRepo(db)
	historyRepo := postgres.NewStatusHistoryRepo(db)
	dealRepo := postgres.NewDealRepo(db)
	dashboardRepo := postgres.NewDashboardRepo(db)
	profileRepo := postgres.NewProfileRepo(db)

	minioClient, err := minioRepo.NewClient(cfg.MinIOEndpoint, cfg.MinIOAccessKey, cfg.MinIOSecretKey, cfg.MinIOUseSSL)
	if err != nil {
		log.Fatalf("connect to minio: %v", err)
	}
	storage := minioRepo.NewStorage(minioClient, cfg.MinIOEndpoint, cfg.MinIOUseSSL, cfg.MinIOPublicURL)

	sessionTTL, err := time.ParseDuration(cfg.SessionTTL)
	if err != nil {
		log.Fatalf("invalid SESSION_TTL %q: %v", cfg.SessionTTL, err)
	}
	resetTTL, err := time.ParseDuration(cfg.PasswordResetTTL)
	if err != nil {
		log.Fatalf("invalid PASSWORD_RESET_TTL %q: %v", cfg.PasswordResetTTL, err)
	}

	jwtManager := util.NewJWTManager(cfg.JWTSecret, sessionTTL)
	mailer := mail.NewPasswordResetMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFrom)
	processor := media.NewImageProcessor(cfg.AvatarMaxDimension)

	authSvc := service.NewAuthService(userRepo, sessionRepo, resetRepo, jwtManager, mailer, service.AuthServiceConfig{
		SessionTTL:       sessionTTL,
		PasswordResetTTL: resetTTL,
		OTPLength:        cfg.PasswordResetOTPLength,
		GoogleAudience:   cfg.GoogleAudience,
	})
	partnerSvc := service.NewPartnerService(partnerRepo)
	leadSvc := service.NewLeadService(leadRepo, partnerRepo, historyRepo)
	dealSvc := service.NewDealService(dealRepo, leadRepo)
	dashboardSvc := service.NewDashboardService(dashboardRepo, service.DashboardServiceConfig{})
	profileSvc := service.NewProfileService(profileRepo, storage, processor, service.ProfileServiceConfig{
		AvatarBucket:       cfg.MinIOBucketAvatars,
		AvatarMaxBytes:     cfg.AvatarMaxBytes,
		AvatarMaxDimension: cfg.AvatarMaxDimension,
	})
	accountSvc := service.NewAccountService(userRepo, partnerRepo, leadRepo, dealRepo)
	importSvc := service.NewImportService(partnerRepo, leadRepo, storage, service.ImportServiceConfig{
		ArchiveBucket:  cfg.MinIOBucketImports,
		ArchiveEnabled: cfg.ImportArchiveEnabled,
		MaxRows:        cfg.ImportMaxRows,
		MaxFileBytes:   cfg.ImportMaxFileBytes,
	})

	e := transport.NewRouter(cfg.AllowOrigins)
	transport.RegisterPages(e, cfg.FrontendBaseURL)
	transport.RegisterSwagger(e)
	transport.RegisterAuthRoutes(e, authSvc)
	transport.RegisterPartnerRoutes(e, authSvc, partnerSvc)
	transport.RegisterLeadRoutes(e, authSvc, leadSvc)
	transport.RegisterDealRoutes(e, authSvc, dealSvc)
	transport.RegisterDashboardRoutes(e, authSvc, dashboardSvc)
	transport.RegisterProfileRoutes(e, authSvc, profileSvc)
	transport.RegisterAccountRoutes(e, authSvc, accountSvc)
	transport.RegisterImportExportRoutes(e, authSvc, importSvc, cfg.ImportMaxFileBytes)

	if err := e.Start(":" + cfg.Port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
