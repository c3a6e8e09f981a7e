package main

import (
	"flag"
	"log"

	"github.com/joho/godotenv"

	"gymdesk/internal/services"
)

// Manual smoke test for the WAHA integration: sends one expiry reminder to
// the given phone number.
func main() {
	phone := flag.String("phone", "", "Member phone number (10 digits)")
	name := flag.String("name", "Test Member", "Member name")
	expiry := flag.String("expiry", "01 Jan 2030", "Expiry date to mention")
	flag.Parse()

	if *phone == "" {
		log.Fatal("Please provide a phone number using -phone flag")
	}

	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found")
	}

	service := services.NewWahaService()

	log.Printf("Sending expiry reminder to %s", *phone)

	if err := service.SendExpiryReminder(*phone, *name, *expiry); err != nil {
		log.Fatalf("Failed to send reminder: %v", err)
	}

	log.Println("Reminder sent successfully!")
}
