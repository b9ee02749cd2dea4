package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/docker/go-connections/nat"
	// postgres driver for the raw bootstrap connection
	_ "github.com/lib/pq"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TerminateFunc stop a test container.
type TerminateFunc func(context.Context, ...testcontainers.TerminateOption) error

// StartTestDB starts a disposable PostgreSQL container with the uuid-ossp extension
// installed and return configuration pointing to it.
func StartTestDB() (TerminateFunc, *DBConfig, error) {
	var (
		dbName = "database"
		dbPwd  = "password"
		dbUser = "user"
	)

	ctx := context.Background()

	dbContainer, err := postgres.Run(
		ctx,
		"postgres:16-alpine",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPwd),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		return nil, nil, err
	}

	dbHost, err := dbContainer.Host(ctx)
	if err != nil {
		return dbContainer.Terminate, nil, err
	}

	dbPort, err := dbContainer.MappedPort(ctx, nat.Port("5432/tcp"))
	if err != nil {
		return dbContainer.Terminate, nil, err
	}

	config := &DBConfig{
		Host:     dbHost,
		Port:     dbPort.Port(),
		User:     dbUser,
		Password: dbPwd,
		DBName:   dbName,
	}

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		dbHost, dbPort.Port(), dbUser, dbPwd, dbName)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return dbContainer.Terminate, nil, err
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.WithError(err).Error("Fail to close bootstrap connection")
		}
	}()

	_, err = db.ExecContext(ctx, `CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`)
	if err != nil {
		return dbContainer.Terminate, nil, err
	}

	return dbContainer.Terminate, config, nil
}
