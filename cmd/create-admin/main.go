// Command-line tool to create an admin account, prompting for credentials
// or generating a random password with -generate.
package main

import (
	"bufio"
	"context"
	"crypto/rand"
	"encoding/hex"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"jobposter-backend/internal/apperror"
	"jobposter-backend/internal/config"
	"jobposter-backend/internal/database"
	"jobposter-backend/internal/logging"
	"jobposter-backend/internal/repository"
	"jobposter-backend/internal/service"
)

// generateRandomString creates a random hex string of length 2n
func generateRandomString(n int) string {
	bytes := make([]byte, n)
	if _, err := rand.Read(bytes); err != nil {
		log.Fatal(err)
	}
	return hex.EncodeToString(bytes)
}

func prompt(reader *bufio.Reader, label string) string {
	fmt.Print(label)
	s, _ := reader.ReadString('\n')
	return strings.TrimSpace(s)
}

func main() {
	generate := flag.Bool("generate", false, "generate a random password instead of prompting")
	flag.Parse()

	fmt.Println("Generating admin account")

	reader := bufio.NewReader(os.Stdin)
	email := prompt(reader, "Enter email: ")

	var password string
	if *generate {
		password = generateRandomString(8)
	} else {
		password = prompt(reader, "Enter password: ")
		if prompt(reader, "Confirm password: ") != password {
			fmt.Println("Passwords do not match.")
			os.Exit(1)
		}
	}

	dbConfig, err := config.LoadDB()
	if err != nil {
		log.Fatalf("Invalid database config: %v", err)
	}
	db, err := database.NewDBInstance(dbConfig)
	if err != nil {
		log.Fatalf("Database failed to initialize: %v", err)
	}
	defer func() { _ = db.Close() }()

	accounts := service.NewAccountService(repository.NewAccountStore(db.DB), logging.New("warn"))
	admin, err := accounts.CreateAdmin(context.Background(), email, password)
	if err != nil {
		if kind := apperror.KindOf(err); kind == apperror.InvalidInput || kind == apperror.DuplicateEmail {
			fmt.Println(apperror.Message(err))
			os.Exit(1)
		}
		log.Fatalf("failed to create admin: %v", err)
	}

	fmt.Println("Admin credentials generated successfully!")
	fmt.Println("======================================")
	fmt.Printf("Email: %s\n", admin.Email)
	if *generate {
		fmt.Printf("Password: %s\n", password)
	}
	fmt.Println("======================================")
}
