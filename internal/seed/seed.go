package seed

import (
	"encoding/csv"
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/classtrack-dev/classtrack/backend/internal/domain"
	"github.com/classtrack-dev/classtrack/backend/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

// SeedRoster imports a class roster from a CSV file with the columns
// username,role,email (email may be empty). Every imported account gets
// the same initial password.
func SeedRoster(repo *repository.Repository, path string, password string) {
	file, err := os.Open(path)
	if err != nil {
		slog.Error("failed to open roster file", "error", err)
		return
	}
	defer file.Close()

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		slog.Error("failed to hash the initial password", "error", err)
		return
	}

	reader := csv.NewReader(file)
	line := 0
	inserted := 0

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			slog.Error("failed to read roster record", "line", line, "error", err)
			return
		}
		line++

		if len(record) < 2 {
			slog.Error("roster record is too short", "line", line)
			continue
		}

		username := strings.TrimSpace(record[0])
		role := domain.Role(strings.TrimSpace(record[1]))
		if role != domain.RoleTeacher && role != domain.RoleStudent {
			slog.Error("roster record has an unknown role", "line", line, "role", string(role))
			continue
		}

		user := &domain.User{
			Username:     username,
			PasswordHash: string(passwordHash),
			Role:         role,
		}
		if len(record) > 2 {
			user.Email = strings.TrimSpace(record[2])
		}

		if err := repo.CreateUser(user); err != nil {
			if errors.Is(err, repository.ErrDuplicateUsername) {
				slog.Info("skipping existing user", "username", username)
				continue
			}
			slog.Error("failed to insert roster user", "username", username, "error", err)
			return
		}
		inserted++
	}

	slog.Info("roster import finished", "inserted", inserted)
}
