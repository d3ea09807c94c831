// seed-admin bootstraps a fresh deployment: it creates an organization with
// its first ADMIN user and prints a bearer token for that user.
//
// Usage (from backend directory):
//   DB_USER=... DB_PASSWORD=... DB_HOST=... DB_PORT=... DB_NAME=... \
//     go run ./cmd/seed-admin -org "Acme Trading" -email admin@acme.example -password "..."
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"bitbucket.org/mmdatafocus/bizmanage_backend/config"
	"bitbucket.org/mmdatafocus/bizmanage_backend/models"
	"bitbucket.org/mmdatafocus/bizmanage_backend/utils"
	"github.com/joho/godotenv"
)

func main() {
	orgName := flag.String("org", "", "organization name")
	orgEmail := flag.String("org-email", "", "organization contact email (defaults to admin email)")
	name := flag.String("name", "Admin", "admin user name")
	email := flag.String("email", "", "admin login email")
	password := flag.String("password", "", "admin password (min 8 characters)")
	flag.Parse()

	if *orgName == "" || *email == "" || len(*password) < 8 {
		fmt.Fprintln(os.Stderr, "usage: seed-admin -org NAME -email EMAIL -password PASSWORD (min 8 chars)")
		os.Exit(2)
	}
	if *orgEmail == "" {
		*orgEmail = *email
	}

	_ = godotenv.Load()
	config.ConnectDatabaseWithRetry()
	if config.GetDB() == nil {
		fmt.Fprintln(os.Stderr, "database not initialized (config.GetDB returned nil). Set DB_* env vars.")
		os.Exit(1)
	}
	models.MigrateTable()

	ctx := context.Background()
	org, user, err := models.CreateOrganization(ctx, &models.NewOrganization{
		Name:  *orgName,
		Email: *orgEmail,
	}, *name, *email, *password)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create organization: %v\n", err)
		os.Exit(1)
	}

	token, err := utils.JwtGenerate(user.ID, user.Name, user.Email, org.ID.String(), string(user.Role))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to generate token: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Created organization %q (id=%s)\n", org.Name, org.ID)
	fmt.Printf("Admin user: %s (id=%d)\n", user.Email, user.ID)
	fmt.Printf("Token: %s\n", token)
}
