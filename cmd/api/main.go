package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"hedniya-backend/internal/adapter/delivery"
	httpadp "hedniya-backend/internal/adapter/http"
	appmw "hedniya-backend/internal/adapter/middleware"
	"hedniya-backend/internal/adapter/repository/mysql"
	"hedniya-backend/internal/config"
	"hedniya-backend/internal/domain/auditlog"
	confDomain "hedniya-backend/internal/domain/confirmation"
	loanDomain "hedniya-backend/internal/domain/loan"
	notifDomain "hedniya-backend/internal/domain/notification"
	"hedniya-backend/internal/infrastructure/cache"
	"hedniya-backend/internal/infrastructure/db"
	"hedniya-backend/internal/scheduler"
	loanUC "hedniya-backend/internal/usecase/loan"
	"hedniya-backend/internal/usecase/notifier"
	"hedniya-backend/internal/usecase/proposal"
	"hedniya-backend/pkg/clock"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatalf("mysql: %v", err)
	}
	if err := gdb.AutoMigrate(
		&loanDomain.Loan{},
		&confDomain.Confirmation{},
		&notifDomain.Notification{},
		&auditlog.Entry{},
	); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}

	clk := clock.System()
	planner := notifier.Planner{
		Loc:         cfg.ReminderLocation(),
		Hour:        cfg.ReminderHour,
		HorizonDays: cfg.ScheduleHorizonDays,
	}
	tx := mysql.NewGormUoW(gdb)
	audit := mysql.NewAuditLogRecorder(gdb)

	loanUsecase := loanUC.NewUsecase(tx, clk, planner)
	proposalUsecase := proposal.NewUsecase(tx, clk, planner, audit, cfg.AllowDueDateBackdating)
	notifierUsecase := notifier.NewUsecase(tx, clk, delivery.NewLogSender(), planner)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sweeper := scheduler.New(notifierUsecase, time.Duration(cfg.SweepIntervalSecs)*time.Second, cfg.SweepBatchSize)
	go sweeper.Run(ctx)

	h := httpadp.NewHandler()
	lh := httpadp.NewLoanHandler(loanUsecase)
	ph := httpadp.NewProposalHandler(proposalUsecase)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Logger(), echomw.Recover())

	idemp := appmw.Idempotency(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second)

	e.GET("/health", h.Health)
	e.GET("/loans/:loan_id", lh.GetLoan)
	e.GET("/loans/dashboard/:user_id", lh.Dashboard)
	e.POST("/loans", lh.CreateLoan, idemp)
	e.POST("/loans/:loan_id/confirm", lh.ConfirmLoan, idemp)
	e.POST("/loans/:loan_id/cancel", lh.CancelLoan, idemp)
	e.POST("/loans/:loan_id/confirmations", ph.Propose, idemp)
	e.POST("/confirmations/:confirmation_id/act", ph.Act, idemp)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	addr := ":" + cfg.AppPort
	log.Printf("listening on %s", addr)
	if err := e.Start(addr); err != nil {
		log.Println(err)
	}
}
