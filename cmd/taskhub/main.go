package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/amirhosseinghanipour/taskhub/internal/application/command"
	"github.com/amirhosseinghanipour/taskhub/internal/application/identity"
	"github.com/amirhosseinghanipour/taskhub/internal/application/ports"
	"github.com/amirhosseinghanipour/taskhub/internal/application/query"
	"github.com/amirhosseinghanipour/taskhub/internal/config"
	"github.com/amirhosseinghanipour/taskhub/internal/domain"
	infraauth "github.com/amirhosseinghanipour/taskhub/internal/infrastructure/auth"
	httprouter "github.com/amirhosseinghanipour/taskhub/internal/infrastructure/http"
	"github.com/amirhosseinghanipour/taskhub/internal/infrastructure/http/handlers"
	"github.com/amirhosseinghanipour/taskhub/internal/infrastructure/http/middleware"
	"github.com/amirhosseinghanipour/taskhub/internal/infrastructure/lockout"
	"github.com/amirhosseinghanipour/taskhub/internal/infrastructure/persistence/db"
	"github.com/amirhosseinghanipour/taskhub/internal/infrastructure/persistence/memory"
	"github.com/amirhosseinghanipour/taskhub/internal/infrastructure/persistence/postgres"
	"github.com/amirhosseinghanipour/taskhub/internal/infrastructure/queue"
	"github.com/amirhosseinghanipour/taskhub/internal/infrastructure/security"
	"github.com/amirhosseinghanipour/taskhub/internal/infrastructure/webhook"
)

// storage is the set of persistence ports one backend provides.
type storage struct {
	uow      ports.UnitOfWorkFactory
	users    ports.UserReader
	projects ports.ProjectReader
	userQ    ports.UserQueryGateway
	projectQ ports.ProjectQueryGateway
	taskQ    ports.TaskQueryGateway
	pool     *pgxpool.Pool
}

func openStorage(ctx context.Context, cfg *config.Config, log zerolog.Logger) storage {
	if cfg.UsesMemoryStore() {
		log.Warn().Msg("DATABASE_URL not set; using the in-memory store, data is lost on exit")
		store := memory.NewStore()
		gateway := memory.NewQueryGateway(store)
		return storage{
			uow:      memory.NewUnitOfWorkFactory(store),
			users:    store.Users(),
			projects: store.Projects(),
			userQ:    gateway,
			projectQ: gateway,
			taskQ:    gateway,
		}
	}

	poolCfg, err := pgxpool.ParseConfig(cfg.Database.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("parse DATABASE_URL")
	}
	poolCfg.MaxConns = cfg.Database.MaxConns
	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("connect to database")
	}
	if err := pool.Ping(ctx); err != nil {
		log.Fatal().Err(err).Msg("ping database")
	}
	if err := postgres.ApplySchema(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("apply schema")
	}
	queries := db.New(pool)
	gateway := postgres.NewQueryGateway(queries)
	return storage{
		uow:      postgres.NewUnitOfWorkFactory(pool, log),
		users:    postgres.NewUserRepository(queries),
		projects: postgres.NewProjectRepository(queries),
		userQ:    gateway,
		projectQ: gateway,
		taskQ:    gateway,
		pool:     pool,
	}
}

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		log = log.Level(level)
	}

	ctx := context.Background()
	store := openStorage(ctx, cfg, log)
	if store.pool != nil {
		defer store.pool.Close()
	}

	checks := map[string]handlers.Pinger{}
	if store.pool != nil {
		checks["database"] = store.pool
	}

	var emitter ports.WebhookEmitter = webhook.NewLogEmitter(log)
	if cfg.Webhook.URL != "" {
		emitter = webhook.NewHTTPEmitter(cfg.Webhook.URL, webhook.WithSigningSecret(cfg.Webhook.Secret))
	}

	var auditQueue ports.AuditEnqueuer = queue.NewNoopEnqueuer()
	var asynqWorker *queue.Worker
	if cfg.Redis.URL != "" {
		opt, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("parse REDIS_URL")
		}
		redisClient := redis.NewClient(opt)
		defer redisClient.Close()
		checks["redis"] = handlers.PingFunc(func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		})

		asynqOpt := asynq.RedisClientOpt{Addr: opt.Addr, Username: opt.Username, Password: opt.Password, DB: opt.DB, TLSConfig: opt.TLSConfig}
		enq, err := queue.NewAsynqEnqueuer(asynqOpt, log)
		if err != nil {
			log.Fatal().Err(err).Msg("create asynq enqueuer")
		}
		defer enq.Close()
		auditQueue = enq
		asynqWorker = queue.NewWorker(asynqOpt, emitter, log)
		go func() {
			if err := asynqWorker.Run(); err != nil {
				log.Warn().Err(err).Msg("asynq worker stopped")
			}
		}()
	} else if cfg.Webhook.URL != "" {
		log.Warn().Msg("WEBHOOK_URL set without REDIS_URL; audit events will not be delivered")
	}

	hasher := security.NewPooledHasher(security.NewArgon2Hasher(security.Argon2Params{
		Memory:      cfg.Argon2.Memory,
		Iterations:  cfg.Argon2.Iterations,
		Parallelism: cfg.Argon2.Parallelism,
		SaltLength:  16,
		KeyLength:   32,
	}), cfg.Argon2.Workers)
	userService := domain.NewUserService(hasher)

	privateKey, generated, err := infraauth.LoadOrGenerateKey(cfg.JWT.PrivateKeyPath)
	if err != nil {
		log.Fatal().Err(err).Msg("load JWT private key")
	}
	if generated {
		log.Warn().Msg("JWT_PRIVATE_KEY_PATH not set; using an ephemeral signing key, tokens will not survive a restart")
	}
	issuer := infraauth.NewTokenIssuer(privateKey, cfg.JWT.Issuer, cfg.JWT.Audience)

	if cfg.Bootstrap.AdminUsername != "" {
		created, err := command.NewEnsureSuperAdmin(store.uow, userService).Execute(ctx, cfg.Bootstrap.AdminUsername, cfg.Bootstrap.AdminPassword)
		if err != nil {
			log.Fatal().Err(err).Msg("bootstrap super admin")
		}
		if created {
			log.Info().Str("username", cfg.Bootstrap.AdminUsername).Msg("super admin created")
		}
	}

	createUser := command.NewCreateUser(store.uow, userService, auditQueue)
	loginLockout := lockout.NewMemoryStore(cfg.Lockout.MaxAttempts, cfg.Lockout.CooldownSeconds)
	authHandler := handlers.NewAuthHandler(
		createUser,
		command.NewLogin(store.users, userService, issuer, loginLockout, cfg.JWT.AccessExpiry),
		command.NewChangePassword(store.uow, userService, auditQueue),
		log,
	)
	usersHandler := handlers.NewUsersHandler(
		createUser,
		command.NewSetUserActive(store.uow, auditQueue),
		command.NewPromoteUser(store.uow, auditQueue),
		query.NewListUsers(store.userQ),
		query.NewGetCurrentUser(),
		log,
	)
	projectsHandler := handlers.NewProjectsHandler(
		command.NewCreateProject(store.uow, auditQueue),
		command.NewRenameProject(store.uow, auditQueue),
		command.NewCreateTask(store.uow, auditQueue),
		query.NewListProjects(store.projectQ),
		query.NewListTasks(store.projects, store.taskQ),
		log,
	)
	tasksHandler := handlers.NewTasksHandler(
		command.NewChangeTaskStatus(store.uow, auditQueue),
		command.NewDeleteTask(store.uow, auditQueue),
		log,
	)

	ipLimit, err := middleware.NewIPRateLimiter(cfg.RateLimit.PerIP)
	if err != nil {
		log.Fatal().Err(err).Msg("create IP rate limiter")
	}
	userLimit, err := middleware.NewUserRateLimiter(cfg.RateLimit.PerUser)
	if err != nil {
		log.Fatal().Err(err).Msg("create user rate limiter")
	}

	router := httprouter.NewRouter(httprouter.RouterConfig{
		AuthHandler:     authHandler,
		UsersHandler:    usersHandler,
		ProjectsHandler: projectsHandler,
		TasksHandler:    tasksHandler,
		HealthHandler:   handlers.NewHealthHandler(checks),
		Identity:        middleware.NewIdentity(identity.NewFactory(issuer, store.users)),
		Log:             log,
		Secure:          middleware.NewSecure(middleware.SecureOptions(cfg.Secure.IsDevelopment)),
		CORS:            middleware.CORS(cfg.CORS.AllowedOrigins),
		IPRateLimit:     ipLimit,
		UserRateLimit:   userLimit,
		Metrics:         true,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Server.Port).Bool("memory_store", cfg.UsesMemoryStore()).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
	if asynqWorker != nil {
		asynqWorker.Shutdown()
	}
	log.Info().Msg("server stopped")
}
