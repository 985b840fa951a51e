package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Sandanitin/ecommerce-wedding-backend/internal/config"
	dompayment "github.com/Sandanitin/ecommerce-wedding-backend/internal/domain/payment"
	"github.com/Sandanitin/ecommerce-wedding-backend/internal/infra/gateway"
	"github.com/Sandanitin/ecommerce-wedding-backend/internal/infra/mail"
	"github.com/Sandanitin/ecommerce-wedding-backend/internal/infra/metrics"
	"github.com/Sandanitin/ecommerce-wedding-backend/internal/infra/persistence/postgres"
	"github.com/Sandanitin/ecommerce-wedding-backend/internal/infra/security"
	httpapi "github.com/Sandanitin/ecommerce-wedding-backend/internal/interface/http"
	authuc "github.com/Sandanitin/ecommerce-wedding-backend/internal/usecase/auth"
	dashboarduc "github.com/Sandanitin/ecommerce-wedding-backend/internal/usecase/dashboard"
	orderuc "github.com/Sandanitin/ecommerce-wedding-backend/internal/usecase/order"
	paymentuc "github.com/Sandanitin/ecommerce-wedding-backend/internal/usecase/payment"
	productuc "github.com/Sandanitin/ecommerce-wedding-backend/internal/usecase/product"
)

func main() {
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database config error: %v", err)
	}
	if err := pool.Ping(ctx); err != nil {
		log.Fatalf("database ping error: %v", err)
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	outbox := postgres.NewPaymentOutbox(pool)

	tokenSvc := security.NewJWTService(cfg.JWTSecret, cfg.JWTExpire)
	passwords := security.NewBcryptService(cfg.BcryptCost)

	var mailer authuc.Mailer
	if cfg.SMTPHost != "" {
		mailer = mail.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.MailFrom)
	} else {
		log.Print("[mail] SMTP not configured, using log mailer")
		mailer = mail.NewLogMailer()
	}

	var gw dompayment.Gateway
	if cfg.UseMockGateway() {
		log.Print("[gateway] using mock payment gateway")
		gw = gateway.NewMock(cfg.RazorpayKeyID, cfg.RazorpayKeySecret)
	} else {
		gw = gateway.NewClient(cfg.RazorpayKeyID, cfg.RazorpayKeySecret)
	}

	api := httpapi.NewAPI(httpapi.Dependencies{
		AuthService:      authuc.NewService(userRepo, passwords, tokenSvc, mailer, security.GenerateOTP),
		ProductService:   productuc.NewService(productRepo),
		OrderService:     orderuc.NewService(orderRepo),
		PaymentService:   paymentuc.NewService(gw, orderRepo, outbox),
		DashboardService: dashboarduc.NewService(orderRepo, productRepo, userRepo),
		PaymentOutbox:    outbox,
		TokenService:     tokenSvc,
		Metrics:          metrics.NewServerMetrics(),
		ExposeErrors:     !cfg.IsProduction(),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           api.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	log.Printf("listening on :%s ...", cfg.Port)
	if err := srv.ListenAndServe(); err != nil {
		log.Fatal(err)
	}
}
