package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"markit-notes-be/internal/config"
	"markit-notes-be/internal/pkg/logger"
	"markit-notes-be/internal/repository/schema"
	"markit-notes-be/internal/repository/unitofwork"
	"markit-notes-be/internal/service"
	"markit-notes-be/pkg/database"

	"github.com/fatih/color"
	"golang.org/x/term"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: go run ./cmd/user-add <username>")
		os.Exit(2)
	}
	username := strings.TrimSpace(os.Args[1])
	if username == "" {
		fmt.Fprintln(os.Stderr, "username must not be empty")
		os.Exit(2)
	}

	password, err := promptPassword("Password: ")
	if err != nil {
		fail(err)
	}
	confirm, err := promptPassword("Confirm: ")
	if err != nil {
		fail(err)
	}
	if password != confirm {
		fail(errors.New("passwords do not match"))
	}

	cfg := config.Load()
	db, err := database.NewGormDB(database.GormConfig{
		Driver:       cfg.Database.Driver,
		DSN:          cfg.Database.Connection,
		MaxOpenConns: cfg.Database.MaxOpenConns,
		Silent:       true,
	})
	if err != nil {
		fail(err)
	}
	ctx := context.Background()
	if err := schema.Init(ctx, db); err != nil {
		fail(err)
	}

	users := service.NewUserService(unitofwork.NewRepositoryFactory(db), logger.NewNopLogger(), cfg.Auth.JwtSecret, cfg.Auth.TokenLifetime)
	userId, err := users.Register(ctx, username, password)
	if err != nil {
		fail(err)
	}
	token, err := users.IssueAccessToken(userId)
	if err != nil {
		fail(err)
	}

	color.Green("created user %q (id %d)", username, userId)
	fmt.Println(token)
}

func promptPassword(prompt string) (string, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return "", errors.New("stdin is not a terminal")
	}
	fmt.Fprint(os.Stderr, prompt)
	pass, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimSpace(string(pass)), nil
}

func fail(err error) {
	color.Red("error: %v", err)
	os.Exit(1)
}
