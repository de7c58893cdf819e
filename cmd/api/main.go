package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jhoicas/jobboard-api/internal/application/auth"
	"github.com/jhoicas/jobboard-api/internal/application/intake"
	"github.com/jhoicas/jobboard-api/internal/application/usecase"
	"github.com/jhoicas/jobboard-api/internal/domain/repository"
	"github.com/jhoicas/jobboard-api/internal/infrastructure/memory"
	"github.com/jhoicas/jobboard-api/internal/infrastructure/postgres"
	"github.com/jhoicas/jobboard-api/internal/infrastructure/scanner"
	"github.com/jhoicas/jobboard-api/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/jobboard-api/internal/interfaces/http"
	"github.com/jhoicas/jobboard-api/pkg/config"
	"github.com/jhoicas/jobboard-api/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

// repositories agrupa las implementaciones elegidas por DB_DRIVER.
type repositories struct {
	users  repository.UserRepository
	tokens repository.TokenRepository
	jobs   repository.JobRepository
	apps   repository.ApplicationRepository
	tx     usecase.CatalogTxRunner
	close  func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("db_driver", cfg.DB.Driver).
		Str("resume_disk", cfg.Storage.Disk).
		Msg("iniciando aplicación")

	ctx := context.Background()
	repos, err := openRepositories(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar persistencia")
	}
	defer repos.close()

	resumes, err := storage.New(ctx, cfg.Storage)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento de hojas de vida")
	}
	virus := scanner.New(cfg.Scan.Command, log.Component("scanner"))
	log.Info().Bool("virus_scan", virus.Enabled()).Msg("escáner de hojas de vida listo")

	authUC := auth.NewAuthUseCase(repos.users, repos.tokens, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, cfg.Auth.PasswordMin, log)
	jobUC := usecase.NewJobUseCase(repos.jobs, repos.apps, repos.users, repos.tx, resumes, log)
	intakeUC := intake.NewIntakeUseCase(repos.jobs, repos.apps, repos.users, resumes, virus, log)
	userUC := usecase.NewUserUseCase(repos.users, log)

	opts := httpRouter.ServerOptions{AppName: cfg.App.Name, HTTP: cfg.HTTP}
	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		opts.SwaggerFile = swaggerFile
	}
	app := httpRouter.NewServer(opts, httpRouter.RouterDeps{
		AuthUC:   authUC,
		JobUC:    jobUC,
		IntakeUC: intakeUC,
		UserUC:   userUC,
		Rate:     cfg.Rate,
		Log:      log.Component("http"),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

func openRepositories(ctx context.Context, cfg *config.Config, log *logger.Logger) (*repositories, error) {
	if cfg.DB.Driver == "memory" {
		log.Warn().Msg("DB_DRIVER=memory: los datos se pierden al reiniciar")
		store := memory.NewStore()
		return &repositories{
			users:  store.Users(),
			tokens: store.Tokens(),
			jobs:   store.Jobs(),
			apps:   store.Applications(),
			tx:     memory.NewTxRunner(store),
			close:  func() {},
		}, nil
	}

	if cfg.DB.Migrate {
		if err := postgres.RunMigrations(cfg.DB.ConnectionString(), log.Component("migrate")); err != nil {
			return nil, err
		}
	}
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	return &repositories{
		users:  postgres.NewUserRepository(pool),
		tokens: postgres.NewTokenRepository(pool),
		jobs:   postgres.NewJobRepository(pool),
		apps:   postgres.NewApplicationRepository(pool),
		tx:     postgres.NewTxRunner(pool),
		close:  pool.Close,
	}, nil
}
