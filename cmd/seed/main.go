package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/classtrack-dev/classtrack/backend/internal/config"
	"github.com/classtrack-dev/classtrack/backend/internal/domain"
	"github.com/classtrack-dev/classtrack/backend/internal/repository"
	"github.com/classtrack-dev/classtrack/backend/internal/seed"
	"github.com/classtrack-dev/classtrack/backend/internal/utils"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var op int
	var n int
	var rosterPath string

	flag.IntVar(&op, "op", 0, "operation to run (1: insert random users, 2: insert random assignments, 3: import roster CSV)")
	flag.IntVar(&n, "n", 5, "number of records to insert")
	flag.StringVar(&rosterPath, "roster", "./internal/seed/data/roster.csv", "path to the roster CSV for op 3")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("failed to create database connection pool", "error", err)
		return
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	// sql.Open only builds the pool object, it does not connect, so ping
	// explicitly
	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("failed to connect to the database", "error", err)
		return
	}

	repo := repository.NewRepository(cfg, dbpool)

	switch op {
	case 0:
		slog.Error("no operation given")
	case 1:
		if n <= 0 {
			slog.Error("number of users must be positive")
			return
		}
		cnt := 0
		for i := 0; i < n; i++ {
			user, err := utils.GenerateRandomUser(cfg.Seed.UserPassword, "example.com")
			if err != nil {
				slog.Error("failed to generate random user", slog.String("error", err.Error()))
				continue
			}
			if err := repo.CreateUser(user); err != nil {
				slog.Error("failed to insert random user", slog.String("error", err.Error()))
				continue
			}
			cnt++
		}
		slog.Info("inserted random users", "count", cnt)
	case 2:
		if n <= 0 {
			slog.Error("number of assignments must be positive")
			return
		}

		users, err := repo.GetAllUsers()
		if err != nil {
			slog.Error("failed to load users", slog.String("error", err.Error()))
			return
		}
		teachers := make([]*domain.User, 0)
		for _, user := range users {
			if user.Role == domain.RoleTeacher {
				teachers = append(teachers, user)
			}
		}
		if len(teachers) == 0 {
			slog.Error("no teachers to assign to, run op 1 first")
			return
		}

		cnt := 0
		for i := 0; i < n; i++ {
			teacher := teachers[rand.Intn(len(teachers))]
			assignment := utils.GenerateRandomAssignment(teacher.ID)
			if err := repo.CreateAssignment(assignment); err != nil {
				slog.Error("failed to insert random assignment", slog.String("error", err.Error()))
				continue
			}
			cnt++
		}
		slog.Info("inserted random assignments", "count", cnt)
	case 3:
		seed.SeedRoster(repo, rosterPath, cfg.Seed.UserPassword)
	default:
		slog.Error("unknown operation", "op", op)
	}
}
