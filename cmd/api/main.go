package main

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/nimasrn/donor-hub/internal/config"
	gateway "github.com/nimasrn/donor-hub/internal/gateways"
	"github.com/nimasrn/donor-hub/internal/handlers"
	"github.com/nimasrn/donor-hub/internal/lifecycle"
	"github.com/nimasrn/donor-hub/internal/locker"
	"github.com/nimasrn/donor-hub/internal/notify"
	"github.com/nimasrn/donor-hub/internal/repository"
	"github.com/nimasrn/donor-hub/internal/services"
	xhttp "github.com/nimasrn/donor-hub/pkg/http"
	"github.com/nimasrn/donor-hub/pkg/logger"
	"github.com/nimasrn/donor-hub/pkg/pg"
	"github.com/nimasrn/donor-hub/pkg/prom"
	"github.com/nimasrn/donor-hub/pkg/redis"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const drainTimeout = 15 * time.Second

func main() {
	defer logger.Sync()

	err := config.Load(argContainsEnvPath())
	if err != nil {
		logger.Error("failed to load config", "error", err)
		return
	}
	cfg := config.Get()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid config", "error", err)
		return
	}
	logger.Info("starting donor-hub api", "version", version, "commit", commit, "date", date, "env", cfg.AppEnv)

	hostname, _ := os.Hostname()
	if err := prom.Create(hostname, cfg.AppEnv, cfg.PromNamespace); err != nil {
		logger.Error("failed registering metrics", "error", err)
		return
	}
	go prom.ListenAndServer(cfg.HttpMetricsAddr, cfg.HttpMetricsURI)

	s := xhttp.NewServer(xhttp.DefaultServerOption)
	s.Use(xhttp.CompressMiddleware(6))
	s.Use(xhttp.TimeoutMiddleware(cfg.HttpRequestTimeout))
	s.Use(xhttp.RequestLoggerMiddleware)
	s.Use(xhttp.RecoverMiddleware)

	readConf := pg.Config{
		User:           cfg.PostgresReadUser,
		Host:           cfg.PostgresReadHost,
		Port:           cfg.PostgresReadPort,
		Password:       cfg.PostgresReadPassword,
		Database:       cfg.PostgresReadDatabase,
		SSLMode:        cfg.PostgresSSLMode,
		ConnectTimeout: cfg.PostgresConnectTimeout,
	}
	writeConf := pg.Config{
		User:           cfg.PostgresWriteUser,
		Host:           cfg.PostgresWriteHost,
		Port:           cfg.PostgresWritePort,
		Password:       cfg.PostgresWritePassword,
		Database:       cfg.PostgresWriteDatabase,
		SSLMode:        cfg.PostgresSSLMode,
		ConnectTimeout: cfg.PostgresConnectTimeout,
	}
	db, err := pg.CreateReadWrite(readConf, writeConf, cfg.AppDebug)
	if err != nil {
		logger.Error("failed connecting to pg", "error", err)
		return
	}

	redisAdap, err := redis.NewRedisAdapter("default", cfg.RedisUniversalKeyPrefix, &redis.Options{
		Addrs:      []string{cfg.RedisAddr},
		ClientName: cfg.AppName,
		DB:         cfg.RedisDatabase,
		Username:   cfg.RedisUsername,
		Password:   cfg.RedisPassword,
	})
	if err != nil {
		logger.Error("failed connecting to redis", "error", err)
		return
	}

	// repositories
	donationRepo := repository.NewDonationRepository(db)
	volunteerRepo := repository.NewVolunteerRepository(db)
	eventRepo := repository.NewEventRepository(db)
	contactRepo := repository.NewContactRepository(db)
	subscriberRepo := repository.NewSubscriberRepository(db)
	projectRepo := repository.NewProjectRepository(db)

	// notifications
	transport, closeTransport, err := mailTransport(cfg)
	if err != nil {
		logger.Error("failed creating mail transport", "error", err)
		return
	}
	defer closeTransport()

	renderer, err := notify.NewRenderer(cfg.OrgName, cfg.Currency)
	if err != nil {
		logger.Error("failed parsing mail templates", "error", err)
		return
	}
	sender := notify.NewSender(renderer, transport, notify.SenderConfig{
		From:        cfg.MailFrom,
		SendTimeout: cfg.MailSendTimeout,
	})

	stats := lifecycle.NewStats()
	var (
		executor lifecycle.Executor
		pool     *lifecycle.PoolExecutor
	)
	if cfg.NotifyAsync {
		pool = lifecycle.NewPoolExecutor(lifecycle.PoolOptions{
			Workers: cfg.NotifyWorkers,
			Buffer:  cfg.NotifyBuffer,
		}, stats)
		executor = pool
	} else {
		executor = lifecycle.NewInlineExecutor(stats)
	}
	dispatcher := lifecycle.NewDispatcher(sender, subscriberRepo, executor, stats, lifecycle.Options{
		AdminAddress: cfg.MailAdminAddress,
	})

	// services
	verifier, err := gateway.NewSignatureVerifier(cfg.PaymentGatewaySecret)
	if err != nil {
		logger.Error("failed creating signature verifier", "error", err)
		return
	}
	lock := locker.New(redisAdap, locker.Config{TTL: cfg.PaymentLockTTL, KeyPrefix: "lock:"})

	donationService := services.NewDonationService(donationRepo, dispatcher)
	paymentService := services.NewPaymentService(donationRepo, verifier, lock, dispatcher)
	volunteerService := services.NewVolunteerService(volunteerRepo, dispatcher)
	eventService := services.NewEventService(eventRepo, dispatcher)
	contactService := services.NewContactService(contactRepo, dispatcher)
	newsletterService := services.NewNewsletterService(subscriberRepo, dispatcher)
	projectService := services.NewProjectService(projectRepo, dispatcher)

	// v1 handlers
	g := s.Router.Group("/api/v1")
	admin := handlers.NewAdminGroup(g.Group("/admin"), xhttp.BearerAuth(cfg.AdminApiToken))
	if cfg.AdminApiToken == "" {
		logger.Warn("ADMIN_API_TOKEN is empty, admin routes will reject every request")
	}

	handlers.RegisterDonationRoutes(g, admin, handlers.NewDonationHandler(donationService, paymentService))
	handlers.RegisterVolunteerRoutes(g, admin, handlers.NewVolunteerHandler(volunteerService))
	handlers.RegisterEventRoutes(g, admin, handlers.NewEventHandler(eventService))
	handlers.RegisterContactRoutes(g, admin, handlers.NewContactHandler(contactService))
	handlers.RegisterNewsletterRoutes(g, admin, handlers.NewNewsletterHandler(newsletterService))
	handlers.RegisterProjectRoutes(g, admin, handlers.NewProjectHandler(projectService))
	handlers.RegisterHealthRoutes(g, handlers.NewHealthHandler(dispatcher, map[string]handlers.Pinger{
		"postgres": db,
		"redis":    redisAdap,
	}))

	done := make(chan struct{})
	s.CloseOnSignal(func() { close(done) })

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.ListenAndServe(cfg.HttpListenAddr)
	}()

	select {
	case <-done:
	case err := <-serveErr:
		if err != nil {
			logger.Error("error in running http-server", "error", err)
		}
	}

	if pool != nil {
		ctx, cancel := context.WithTimeout(context.Background(), drainTimeout)
		defer cancel()
		if err := pool.Close(ctx); err != nil {
			logger.Warn("notification pool did not drain", "pending", pool.Pending(), "error", err)
		}
	}
	logger.Info("shutdown complete", "notifications", dispatcher.Stats())
}

// mailTransport returns the HTTP mail gateway when providers are configured
// and the log transport otherwise.
func mailTransport(cfg *config.Config) (notify.Transport, func(), error) {
	var providers []gateway.ProviderConfig
	if cfg.MailProviderPrimaryUrl != "" {
		providers = append(providers, gateway.ProviderConfig{Name: "primary", URL: cfg.MailProviderPrimaryUrl, Weight: 2})
	}
	if cfg.MailProviderSecondaryUrl != "" {
		providers = append(providers, gateway.ProviderConfig{Name: "secondary", URL: cfg.MailProviderSecondaryUrl, Weight: 1})
	}
	if len(providers) == 0 {
		logger.Warn("no mail provider configured, notifications are logged only")
		return notify.LogTransport{}, func() {}, nil
	}

	client, err := gateway.NewMailClient(gateway.MailConfig{
		Providers: providers,
		APIKey:    cfg.MailProviderApiKey,
		Timeout:   cfg.MailSendTimeout,
	})
	if err != nil {
		return nil, nil, err
	}
	return client, func() { _ = client.Close() }, nil
}

func argContainsEnvPath() string {
	for _, v := range os.Args {
		if strings.Contains(v, "--env=") {
			s := strings.Split(v, "=")
			if _, err := os.Open(s[1]); err != nil {
				logger.Error("failed to open the passed env file, got error" + err.Error())
				return ""
			}
			return s[1]
		}
	}
	return ""
}
