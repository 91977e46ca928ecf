// Command createuser bootstraps accounts from the shell: admins, managers
// and delivery crew that cannot self-register through the API.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/angelmondragon/littlelemon-backend/internal/memberships"
	"github.com/angelmondragon/littlelemon-backend/internal/users"
	"github.com/angelmondragon/littlelemon-backend/pkg/config"
	"github.com/angelmondragon/littlelemon-backend/pkg/db"
	"github.com/angelmondragon/littlelemon-backend/pkg/enums"
	"github.com/angelmondragon/littlelemon-backend/pkg/logger"
	"github.com/angelmondragon/littlelemon-backend/pkg/security"
)

const generatedPasswordLength = 20

func main() {
	username := flag.String("username", "", "username of the new account (required)")
	email := flag.String("email", "", "email address")
	password := flag.String("password", "", "password; generated and printed when empty")
	staff := flag.Bool("staff", false, "grant admin (staff) rights")
	groups := flag.String("group", "", "comma separated groups: Manager,delivery_crew")
	promote := flag.Bool("promote", false, "apply -staff and -group to an existing account instead of creating one")
	flag.Parse()

	_ = godotenv.Load()
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	logg := logger.New(logger.Options{
		ServiceName: "createuser",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	if strings.TrimSpace(*username) == "" {
		fmt.Fprintln(os.Stderr, "missing -username")
		os.Exit(1)
	}
	parsedGroups, err := parseGroups(*groups)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer dbClient.Close()
	userRepo := users.NewRepository(dbClient.DB())

	if *promote {
		if err := promoteUser(ctx, dbClient, userRepo, strings.TrimSpace(*username), *staff, parsedGroups); err != nil {
			logg.Error(ctx, "promote user", err)
			os.Exit(1)
		}
		fmt.Printf("updated user %s\n", *username)
		return
	}

	generated := false
	if *password == "" {
		if *password, err = security.GeneratePassword(generatedPasswordLength); err != nil {
			logg.Error(ctx, "generate password", err)
			os.Exit(1)
		}
		generated = true
	}
	hash, err := security.HashPassword(*password, cfg.Password)
	if err != nil {
		logg.Error(ctx, "hash password", err)
		os.Exit(1)
	}

	var userID uint
	err = dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		user, err := userRepo.WithTx(tx).Create(ctx, users.CreateUserDTO{
			Username:     strings.TrimSpace(*username),
			Email:        strings.ToLower(strings.TrimSpace(*email)),
			PasswordHash: hash,
			IsStaff:      *staff,
		})
		if err != nil {
			return err
		}
		userID = user.ID
		groupRepo := memberships.NewRepository(tx)
		for _, group := range parsedGroups {
			if err := groupRepo.Add(ctx, user.ID, group); err != nil {
				return fmt.Errorf("add to %s: %w", group, err)
			}
		}
		return nil
	})
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			fmt.Fprintf(os.Stderr, "user %q already exists\n", *username)
			os.Exit(1)
		}
		logg.Error(ctx, "create user", err)
		os.Exit(1)
	}

	logg.Info(logg.WithUserID(ctx, userID), "user.created")
	fmt.Printf("created user %s (id %d)\n", *username, userID)
	if generated {
		fmt.Printf("generated password: %s\n", *password)
	}
}

func promoteUser(ctx context.Context, dbClient *db.Client, userRepo *users.Repository, username string, staff bool, groups []enums.Group) error {
	return dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		repo := userRepo.WithTx(tx)
		user, err := repo.FindByUsername(ctx, username)
		if err != nil {
			return fmt.Errorf("find %q: %w", username, err)
		}
		if staff && !user.IsStaff {
			if err := repo.SetStaff(ctx, user.ID, true); err != nil {
				return err
			}
		}
		groupRepo := memberships.NewRepository(tx)
		for _, group := range groups {
			if err := groupRepo.Add(ctx, user.ID, group); err != nil {
				return fmt.Errorf("add to %s: %w", group, err)
			}
		}
		return nil
	})
}

func parseGroups(raw string) ([]enums.Group, error) {
	var out []enums.Group
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part == "" {
			continue
		}
		group, err := enums.ParseGroup(part)
		if err != nil {
			return nil, err
		}
		out = append(out, group)
	}
	return out, nil
}
