// Command useradd provisions a dashboard user. The password is hashed
// with bcrypt before it leaves the process; pgcrypto's crypt() verifies
// the stored hash at login time.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/clusterdash/clusterdash-backend/internal/auth"
	"github.com/clusterdash/clusterdash-backend/internal/config"
	"github.com/clusterdash/clusterdash-backend/internal/repository"
)

func main() {
	email := flag.String("email", "", "login email of the new user")
	flag.Parse()

	if *email == "" || !strings.Contains(*email, "@") {
		fmt.Fprintln(os.Stderr, "usage: useradd -email user@example.com  (password read from stdin)")
		os.Exit(2)
	}

	fmt.Fprint(os.Stderr, "password: ")
	reader := bufio.NewReader(os.Stdin)
	password, err := reader.ReadString('\n')
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read password: %v\n", err)
		os.Exit(1)
	}
	password = strings.TrimRight(password, "\r\n")
	if password == "" {
		fmt.Fprintln(os.Stderr, "password must not be empty")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to hash password: %v\n", err)
		os.Exit(1)
	}

	store, err := repository.NewPostgresStore(cfg.DSN())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to connect: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	id, err := store.CreateUser(ctx, *email, hash)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create user: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("created user %d (%s)\n", id, *email)
}
