// This file is a helper for running the storage backends in containers.
// It is used by the integration tests and by cmd/testcontainers as a standalone executable.
// Images and credentials come from the environment, with defaults for local runs.
//

package helpers

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/docker/docker/client"
	"github.com/docker/go-connections/nat"
	_ "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/network"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	defaultRedisImage    = "redis:7-alpine"
	defaultPostgresImage = "postgres:16-alpine"
	defaultMySQLImage    = "mariadb:11"
)

// TestContainers holds the running backend containers
type TestContainers struct {
	Network        *testcontainers.DockerNetwork
	RedisContainer testcontainers.Container
	DBContainer    testcontainers.Container

	// Env is the configuration that reaches the containers from the host
	Env map[string]string
}

// Terminate stops every container and removes the network
func (tc *TestContainers) Terminate(t *testing.T) {
	ctx := context.Background()
	if tc.RedisContainer != nil {
		if err := tc.RedisContainer.Terminate(ctx); err != nil {
			logMessage(t, "Failed to terminate Redis: %v", err)
		}
	}
	if tc.DBContainer != nil {
		if err := tc.DBContainer.Terminate(ctx); err != nil {
			logMessage(t, "Failed to terminate Database: %v", err)
		}
	}
	if tc.Network != nil {
		if err := tc.Network.Remove(ctx); err != nil {
			logMessage(t, "Failed to remove network: %v", err)
		}
	}
}

// DockerAvailable reports whether a docker daemon answers
func DockerAvailable(ctx context.Context) bool {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return false
	}
	defer cli.Close()

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	_, err = cli.Ping(ctx)
	return err == nil
}

// RequireDocker skips the test in short mode or when docker is unavailable
func RequireDocker(t *testing.T) {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	if !DockerAvailable(context.Background()) {
		t.Skip("Skipping integration test, docker is not available")
	}
}

// CreateAllTestContainers starts redis and the DB_TYPE database on one network.
// With a nil t, failures print and exit.
func CreateAllTestContainers(t *testing.T) (*TestContainers, error) {
	ctx := context.Background()
	testContainers := &TestContainers{Env: map[string]string{}}

	nw, err := network.New(ctx)
	if err != nil {
		exitWithError(t, err, "Failed to create network")
		return nil, err
	}
	testContainers.Network = nw

	redisContainer, redisEnv, err := StartRedis(ctx, nw.Name)
	if err != nil {
		testContainers.Terminate(t)
		exitWithError(t, err, "Failed to start Redis")
		return nil, err
	}
	testContainers.RedisContainer = redisContainer
	for k, v := range redisEnv {
		testContainers.Env[k] = v
	}

	dbType := getenv("DB_TYPE", "postgres")
	dbContainer, dbEnv, err := StartDatabase(ctx, dbType, nw.Name)
	if err != nil {
		testContainers.Terminate(t)
		exitWithError(t, err, "Failed to start Database")
		return nil, err
	}
	testContainers.DBContainer = dbContainer
	for k, v := range dbEnv {
		testContainers.Env[k] = v
	}

	// with both KV settings present the kv backend is chosen unless STORAGE_BACKEND says otherwise
	delete(testContainers.Env, "STORAGE_BACKEND")

	for _, key := range []string{"KV_URL", "KV_TOKEN", "DB_TYPE", "DB_HOST", "DB_PORT", "DB_DATABASE", "DB_USER", "DB_PASSWORD"} {
		logMessage(t, "%s=%s", key, testContainers.Env[key])
	}
	logMessage(t, "Backend testcontainers started successfully")
	return testContainers, nil
}

// StartRedis runs a password protected redis and returns the KV_* settings that reach it.
// networkName may be empty.
func StartRedis(ctx context.Context, networkName string) (testcontainers.Container, map[string]string, error) {
	token := getenv("KV_TOKEN", uuid.NewString())
	tcpRedisPort, err := nat.NewPort("tcp", "6379")
	if err != nil {
		return nil, nil, err
	}

	req := testcontainers.ContainerRequest{
		Image:        getenv("REDIS_IMAGE", defaultRedisImage),
		ExposedPorts: []string{string(tcpRedisPort)},
		Cmd:          []string{"redis-server", "--requirepass", token},
		WaitingFor:   wait.ForListeningPort(tcpRedisPort).WithStartupTimeout(30 * time.Second),
	}
	if networkName != "" {
		req.Networks = []string{networkName}
		req.NetworkAliases = map[string][]string{networkName: {"kv"}}
	}

	redisContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, nil, err
	}

	host, err := redisContainer.Host(ctx)
	if err != nil {
		_ = redisContainer.Terminate(ctx)
		return nil, nil, err
	}
	port, err := redisContainer.MappedPort(ctx, tcpRedisPort)
	if err != nil {
		_ = redisContainer.Terminate(ctx)
		return nil, nil, err
	}

	return redisContainer, map[string]string{
		"STORAGE_BACKEND": "kv",
		"KV_URL":          fmt.Sprintf("redis://%s:%s", host, port.Port()),
		"KV_TOKEN":        token,
	}, nil
}

// StartDatabase runs a postgres or mysql/mariadb server and returns the DB_* settings that reach it.
// networkName may be empty.
func StartDatabase(ctx context.Context, dbType, networkName string) (testcontainers.Container, map[string]string, error) {
	var (
		image    string
		portName string
		ready    wait.Strategy
	)
	switch dbType {
	case "postgres":
		image, portName = getenv("DB_IMAGE", defaultPostgresImage), "5432"
	case "mysql", "mariadb":
		image, portName = getenv("DB_IMAGE", defaultMySQLImage), "3306"
	default:
		return nil, nil, fmt.Errorf("unsupported container database type: %s", dbType)
	}

	tcpDbPort, err := nat.NewPort("tcp", portName)
	if err != nil {
		return nil, nil, err
	}
	ready = wait.ForListeningPort(tcpDbPort).WithStartupTimeout(60 * time.Second)

	req := testcontainers.ContainerRequest{
		Image:        image,
		ExposedPorts: []string{string(tcpDbPort)},
		Env:          getDBInitEnvMap(dbType),
		WaitingFor:   ready,
	}
	if networkName != "" {
		req.Networks = []string{networkName}
		req.NetworkAliases = map[string][]string{networkName: {"db"}}
	}

	dbContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, nil, err
	}

	host, err := dbContainer.Host(ctx)
	if err != nil {
		_ = dbContainer.Terminate(ctx)
		return nil, nil, err
	}
	port, err := dbContainer.MappedPort(ctx, tcpDbPort)
	if err != nil {
		_ = dbContainer.Terminate(ctx)
		return nil, nil, err
	}

	if dbType != "postgres" {
		if err := performMySQLDBInit(ctx, host, port); err != nil {
			_ = dbContainer.Terminate(ctx)
			return nil, nil, err
		}
	}

	return dbContainer, map[string]string{
		"STORAGE_BACKEND": "sql",
		"DB_TYPE":         dbType,
		"DB_HOST":         host,
		"DB_PORT":         port.Port(),
		"DB_DATABASE":     dbName(),
		"DB_USER":         dbUser(),
		"DB_PASSWORD":     dbPassword(),
	}, nil
}

func dbName() string     { return getenv("DB_DATABASE", "bakery") }
func dbUser() string     { return getenv("DB_USER", "bakery") }
func dbPassword() string { return getenv("DB_PASSWORD", "bakery-secret") }

func getDBInitEnvMap(dbType string) map[string]string {
	switch dbType {
	case "postgres":
		return map[string]string{
			"POSTGRES_PASSWORD": dbPassword(),
			"POSTGRES_USER":     dbUser(),
			"POSTGRES_DB":       dbName(),
		}
	default:
		return map[string]string{
			"MYSQL_ROOT_PASSWORD": getenv("DB_ROOT_PASSWORD", "root-secret"),
			"MYSQL_DATABASE":      dbName(),
			"MYSQL_USER":          dbUser(),
			"MYSQL_PASSWORD":      dbPassword(),
		}
	}
}

// performMySQLDBInit waits for the server to accept logins, the listening port opens early
func performMySQLDBInit(ctx context.Context, dbHost string, dbPort nat.Port) error {
	db, err := sql.Open("mysql", fmt.Sprintf("root:%s@tcp(%s:%s)/", getenv("DB_ROOT_PASSWORD", "root-secret"), dbHost, dbPort.Port()))
	if err != nil {
		return fmt.Errorf("failed to connect to MariaDB for setup: %w", err)
	}
	defer db.Close()

	// Wait for connection to be really ready
	for i := 0; i < 30; i++ {
		err = db.PingContext(ctx)
		if err == nil {
			break
		}
		time.Sleep(1 * time.Second)
	}
	if err != nil {
		return fmt.Errorf("MariaDB not ready after 30 seconds: %w", err)
	}

	if _, err := db.ExecContext(ctx, fmt.Sprintf("CREATE DATABASE IF NOT EXISTS `%s` CHARACTER SET utf8mb4", dbName())); err != nil {
		return fmt.Errorf("failed to create %s: %w", dbName(), err)
	}
	if _, err := db.ExecContext(ctx, fmt.Sprintf("GRANT ALL PRIVILEGES ON `%s`.* TO '%s'@'%%'", dbName(), dbUser())); err != nil {
		return fmt.Errorf("failed to grant privileges to %s: %w", dbUser(), err)
	}
	_, err = db.ExecContext(ctx, "FLUSH PRIVILEGES")
	return err
}

func getenv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func exitWithError(t *testing.T, err error, msg string) {
	if t != nil {
		t.Fatalf(msg+": %v", err)
	} else {
		fmt.Printf(msg+": %v\n", err)
		os.Exit(1)
	}
}

func logMessage(t *testing.T, format string, args ...any) {
	if t != nil {
		t.Logf(format, args...)
	} else {
		fmt.Printf(format+"\n", args...)
	}
}
