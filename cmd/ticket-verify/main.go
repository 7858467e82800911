package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"registration-backend/errs"
	"registration-backend/jwt"
	"registration-backend/log"
)

func verify(token string, key []byte) (*jwt.TicketClaims, error) {
	c, err := jwt.ValidateTicket(token, key)
	if err != nil {
		if err == jwt.ErrExpired {
			return nil, errs.ErrTicketExpired
		}

		log.Logger.Debug("invalid ticket", zap.Error(err))
		return nil, errs.ErrJWT
	}

	return c, nil
}

func main() {
	k := flag.String("key", os.Getenv("TICKET_KEY"), "Key the tickets were signed with")
	t := flag.String("token", "", "Ticket to verify")
	flag.Parse()
	log.EnsureLogger()

	if *k == "" {
		fmt.Println("--key is required")
		os.Exit(1)
	}

	if *t == "" {
		fmt.Println("--token is required")
		os.Exit(1)
	}

	c, err := verify(*t, []byte(*k))
	if err != nil {
		fmt.Println("Ticket rejected:", err)
		os.Exit(2)
	}

	fmt.Println("Ticket valid")
	fmt.Println("  Registration:", c.RegistrationID)
	fmt.Println("  Name:        ", c.FullName)
	fmt.Println("  Email:       ", c.Email)
	fmt.Println("  Branch:      ", c.Branch)
	fmt.Println("  Expires:     ", time.Unix(c.ExpiresAt, 0).Format(time.RFC3339))
}
