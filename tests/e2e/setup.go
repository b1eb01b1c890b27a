//go:build e2e

package e2e

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"court-scheduler/cmd/bootstrap"
	"court-scheduler/cmd/bootstrap/components"
	"court-scheduler/internal/infra/db"
	"court-scheduler/internal/infra/notify"
	"court-scheduler/internal/pkg/config"
	"court-scheduler/internal/usecase/commands"
	"court-scheduler/internal/usecase/shared"
	"court-scheduler/tests/common/authtest"
	"court-scheduler/tests/common/dbtest"

	"github.com/docker/go-connections/nat"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/fx"
)

const (
	pgUser     = "test"
	pgPassword = "testpass"
	pgPort     = nat.Port("5432/tcp")
)

// pgServer is one Postgres container shared by every suite in the process.
// Each suite gets a fresh database on it.
type pgServer struct {
	container testcontainers.Container
	host      string
	port      string
}

var (
	serverOnce sync.Once
	server     *pgServer
	serverErr  error
)

func sharedServer(t *testing.T) *pgServer {
	serverOnce.Do(func() {
		server, serverErr = startPostgres()
	})
	require.NoError(t, serverErr, "failed to start postgres container")
	return server
}

func startPostgres() (*pgServer, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	c, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Name:         "postgres-court-e2e",
			Image:        "postgres:17",
			ExposedPorts: []string{string(pgPort)},
			Env: map[string]string{
				"POSTGRES_USER":     pgUser,
				"POSTGRES_PASSWORD": pgPassword,
				"POSTGRES_DB":       "postgres",
			},
			Tmpfs: map[string]string{"/var/lib/postgresql/data": "rw,size=512m"},
			// Durability off: the data dies with the container anyway.
			Cmd: []string{
				"postgres",
				"-c", "fsync=off",
				"-c", "synchronous_commit=off",
				"-c", "full_page_writes=off",
				"-c", "max_connections=200",
			},
			Labels: map[string]string{"purpose": "e2e-tests"},
			WaitingFor: wait.ForSQL(pgPort, "pgx", func(host string, port nat.Port) string {
				return adminDSN(host, port.Port())
			}).WithStartupTimeout(time.Minute),
		},
		Started: true,
		Reuse:   true,
	})
	if err != nil {
		return nil, err
	}

	host, err := c.Host(ctx)
	if err != nil {
		return nil, err
	}
	mapped, err := c.MappedPort(ctx, pgPort)
	if err != nil {
		return nil, err
	}
	return &pgServer{container: c, host: host, port: mapped.Port()}, nil
}

func adminDSN(host, port string) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/postgres?sslmode=disable", pgUser, pgPassword, host, port)
}

// newDatabase creates a migrated database that is dropped with the test.
func (s *pgServer) newDatabase(t *testing.T) config.DBConfig {
	name := "court_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	admin := adminDSN(s.host, s.port)

	exec := func(ctx context.Context, stmt string) error {
		pool, err := pgxpool.New(ctx, admin)
		if err != nil {
			return err
		}
		defer pool.Close()
		_, err = pool.Exec(ctx, stmt)
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	// CREATE DATABASE races with template1 use by parallel test processes.
	var err error
	for attempt := range 5 {
		if attempt > 0 {
			time.Sleep(time.Duration(attempt) * 500 * time.Millisecond)
		}
		if err = exec(ctx, "CREATE DATABASE "+name); err == nil {
			break
		}
		slog.Warn("retrying database creation", "attempt", attempt+1, "error", err)
	}
	require.NoError(t, err, "failed to create test database")

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := exec(ctx, "DROP DATABASE IF EXISTS "+name+" WITH (FORCE)"); err != nil {
			slog.Warn("failed to drop test database", "database", name, "error", err)
		}
	})

	cfg := config.NewTestConfig().DB
	cfg.Host = s.host
	cfg.Port = s.port
	cfg.User = pgUser
	cfg.Password = pgPassword
	cfg.DBName = name

	require.NoError(t, db.Migrate(cfg.BuildDSN(), db.Up), "migrations failed")
	return cfg
}

type e2eApp struct {
	router      *gin.Engine
	cfg         config.Config
	maintenance commands.MaintenanceCommands
}

// startApp assembles the HTTP stack on the test pool. Notifications are
// discarded, Redis is absent and the scheduler is not started.
func startApp(t *testing.T, pool *pgxpool.Pool, dbCfg config.DBConfig) e2eApp {
	cfg := config.NewTestConfig()
	cfg.DB = dbCfg

	var built e2eApp
	app := fx.New(
		fx.Provide(
			func() *pgxpool.Pool { return pool },
			func() config.Config { return cfg },
			func() *gin.Engine { return gin.New() },
			func() *redis.Client { return nil },
			func() shared.Notifier { return notify.Nop{} },
		),
		bootstrap.LoggerModule,
		bootstrap.JWTModule,
		components.PersistenceModule,
		components.UseCaseModule,
		components.HandlerModule,

		fx.Populate(&built.router, &built.cfg, &built.maintenance),
		fx.NopLogger,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	require.NoError(t, app.Start(ctx), "failed to start fx app")

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := app.Stop(ctx); err != nil {
			slog.Warn("failed to stop fx app", "error", err)
		}
	})
	return built
}

// SharedSuite is embedded by every e2e suite.
type SharedSuite struct {
	suite.Suite
	Router      *gin.Engine
	DB          *pgxpool.Pool
	Config      config.Config
	Maintenance commands.MaintenanceCommands
	JWT         *authtest.JWTHelper
}

func (s *SharedSuite) SetupSuite() {
	t := s.T()
	gin.SetMode(gin.TestMode)

	dbCfg := sharedServer(t).newDatabase(t)
	pool, closePool, err := db.Connect(context.Background(), dbCfg)
	s.Require().NoError(err, "database connection failed")
	t.Cleanup(closePool)

	app := startApp(t, pool, dbCfg)
	s.DB = pool
	s.Router = app.router
	s.Config = app.cfg
	s.Maintenance = app.maintenance
	s.JWT = authtest.NewJWTHelper(app.cfg.JWT)
}

func (s *SharedSuite) SetupTest() {
	s.Require().NoError(dbtest.ResetDB(s.DB), "failed to reset database state")
}

func (s *SharedSuite) SetupSubTest() {
	s.Require().NoError(dbtest.ResetDB(s.DB), "failed to reset database state")
}
