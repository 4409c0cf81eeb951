package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/Hanahafi/redux-stack-ecommerce/internal/auth"
	"github.com/Hanahafi/redux-stack-ecommerce/internal/models"
	"github.com/Hanahafi/redux-stack-ecommerce/internal/store"
)

func main() {
	_ = godotenv.Load()

	addUserCmd := flag.NewFlagSet("add-user", flag.ExitOnError)
	username := addUserCmd.String("username", "", "Username for the new user")
	email := addUserCmd.String("email", "", "Email for the new user")
	password := addUserCmd.String("password", "", "Password for the new user")
	role := addUserCmd.String("role", string(models.RoleAdmin), "Role: admin, seller or buyer")

	if len(os.Args) < 2 {
		fmt.Println("expected 'add-user' subcommand")
		os.Exit(1)
	}

	switch os.Args[1] {
	case "add-user":
		addUserCmd.Parse(os.Args[2:])
		if *username == "" || *email == "" || *password == "" {
			fmt.Println("username, email and password are required")
			addUserCmd.PrintDefaults()
			os.Exit(1)
		}
		if !models.Role(*role).Valid() {
			fmt.Printf("unknown role %q\n", *role)
			os.Exit(1)
		}
		createUser(*username, *email, *password, models.Role(*role))
	default:
		fmt.Println("expected 'add-user' subcommand")
		os.Exit(1)
	}
}

func createUser(username, email, password string, role models.Role) {
	ctx := context.Background()

	driver := getEnv("DB_DRIVER", store.DriverSQLite)
	dsn := getEnv("DB_DSN", "./storefront.db")

	db, err := store.Open(ctx, driver, dsn)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	// Ensure tables exist if running cli before server
	if err := db.Migrate(ctx); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	user, err := db.CreateUser(ctx, username, email, hash, role)
	if err != nil {
		log.Fatalf("Failed to create user: %v", err)
	}

	fmt.Printf("User '%s' (%s, id %d) created successfully.\n", user.Username, user.Role, user.ID)
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
