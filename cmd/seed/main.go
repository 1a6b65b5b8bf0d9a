package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/parishops/sacristy/backend/internal/config"
	"github.com/parishops/sacristy/backend/internal/domain"
	"github.com/parishops/sacristy/backend/internal/repository"
	"github.com/parishops/sacristy/backend/internal/seed"
	"github.com/parishops/sacristy/backend/internal/utils"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var op int
	var n int
	var year int

	flag.IntVar(&op, "op", 0, "operation (1: insert random users, 2: seed parish fixtures, 3: insert random ministers)")
	flag.IntVar(&n, "n", 5, "number of records to insert")
	flag.IntVar(&year, "year", time.Now().Year(), "calendar year for liturgical events")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("failed to create database pool", "error", err)
		return
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	// sql.Open does not dial, ping to fail fast on a bad DSN
	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("failed to connect to database", "error", err)
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

		cnt := n
		for i := 0; i < n; i++ {
			user, err := utils.GenerateRandomUser(cfg.Seed.User.Password, cfg.Email.UserDomain)
			if err != nil {
				slog.Error("failed to generate random user", slog.String("error", err.Error()))
				continue
			}

			if err := repo.CreateUser(user); err != nil {
				slog.Error("failed to insert user", slog.String("error", err.Error()))
				continue
			}

			cnt--
		}

		slog.Info("users inserted", slog.Int("count", n-cnt))
	case 2:
		seed.SeedParishData(repo, year)
	case 3:
		if n <= 0 {
			slog.Error("number of ministers must be positive")
			return
		}

		roles, err := repo.GetAllMassRoles()
		if err != nil {
			slog.Error("failed to fetch mass roles", slog.String("error", err.Error()))
			return
		}
		if len(roles) == 0 {
			slog.Error("no mass roles found, seed the parish fixtures first")
			return
		}

		cnt := n
		for i := 0; i < n; i++ {
			fullName := utils.GenerateRandomFullName()
			email := fmt.Sprintf("%s@%s", strings.ReplaceAll(strings.ToLower(fullName), " ", "."), cfg.Email.UserDomain)

			person := &domain.Person{
				FullName: fullName,
				Email:    email,
				IsActive: true,
			}
			if err := repo.CreatePerson(person); err != nil {
				slog.Error("failed to insert person", slog.String("error", err.Error()))
				continue
			}

			// every minister serves in one or two ministries
			role := roles[rand.Intn(len(roles))]
			if err := repo.AddRoleMember(role.ID, person.ID); err != nil {
				slog.Error("failed to add role member", slog.String("error", err.Error()))
				continue
			}
			if rand.Intn(3) == 0 {
				second := roles[rand.Intn(len(roles))]
				if second.ID != role.ID {
					if err := repo.AddRoleMember(second.ID, person.ID); err != nil {
						slog.Error("failed to add role member", slog.String("error", err.Error()))
						continue
					}
				}
			}

			// some ministers are away for a week at some point this year
			if rand.Intn(4) == 0 {
				start := time.Date(year, time.Month(1+rand.Intn(12)), 1+rand.Intn(21), 0, 0, 0, 0, time.UTC)
				blackout := domain.BlackoutRange{
					StartDate: start,
					EndDate:   start.AddDate(0, 0, 6),
					Reason:    "away",
				}
				if err := repo.AddPersonBlackout(person.ID, blackout); err != nil {
					slog.Error("failed to add blackout", slog.String("error", err.Error()))
					continue
				}
			}

			cnt--
		}

		slog.Info("ministers inserted", slog.Int("count", n-cnt))
	default:
		slog.Error("unknown operation")
	}
}
