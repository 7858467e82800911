package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"
	"registration-backend/log"
)

const (
	issuer = "event-registration"

	TicketTTL = time.Hour * 24 * 90
)

var (
	ErrExpired = errors.New("token expired")
)

// TicketClaims is the attendance ticket mailed to a registrant.
type TicketClaims struct {
	RegistrationID string `json:"registration_id"`
	FullName       string `json:"full_name"`
	Email          string `json:"email"`
	Branch         string `json:"branch"`
	jwt.StandardClaims
}

func NewTicket(registrationID, fullName, email, branch string, key []byte, now time.Time) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS512, &TicketClaims{
		RegistrationID: registrationID,
		FullName:       fullName,
		Email:          email,
		Branch:         branch,
		StandardClaims: jwt.StandardClaims{
			Subject:   registrationID,
			ExpiresAt: now.Add(TicketTTL).Unix(),
			IssuedAt:  now.Unix(),
			Issuer:    issuer,
		},
	})

	ss, err := token.SignedString(key)
	if err != nil {
		log.Logger.Error("signing failure", zap.Error(err))
		return "", err
	}

	return ss, nil
}

func ValidateTicket(token string, key []byte) (*TicketClaims, error) {
	t, err := jwt.ParseWithClaims(token, &TicketClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return key, nil
	})
	if err != nil {
		var ve *jwt.ValidationError
		if errors.As(err, &ve) && ve.Errors&jwt.ValidationErrorExpired != 0 {
			return nil, ErrExpired
		}

		log.Logger.Debug("parse failure", zap.Error(err))
		return nil, err
	}

	c, ok := t.Claims.(*TicketClaims)
	if !ok || c.Issuer != issuer {
		return nil, errors.New("not a ticket")
	}

	return c, nil
}
