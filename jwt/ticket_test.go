package jwt_test

import (
	"time"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"registration-backend/jwt"
)

var key = []byte("test-key")

var _ = Describe("Ticket", func() {
	Specify("happy path", func() {
		ss, err := jwt.NewTicket("64b0c0ffee", "test", "test@test.test", "IT", key, time.Now())
		Expect(err).To(BeNil())

		c, err := jwt.ValidateTicket(ss, key)
		Expect(err).To(BeNil())
		Expect(c.RegistrationID).To(Equal("64b0c0ffee"))
		Expect(c.Subject).To(Equal("64b0c0ffee"))
		Expect(c.Email).To(Equal("test@test.test"))
		Expect(c.Branch).To(Equal("IT"))
		Expect(c.ExpiresAt).To(Satisfy(func(t int64) bool { return time.Now().Unix() < t }))
	})

	Specify("sad path - wrong key", func() {
		ss, err := jwt.NewTicket("id", "test", "test@test.test", "IT", key, time.Now())
		Expect(err).To(BeNil())

		_, err = jwt.ValidateTicket(ss, []byte("other-key"))
		Expect(err).NotTo(BeNil())
	})

	Specify("sad path - expired", func() {
		ss, err := jwt.NewTicket("id", "test", "test@test.test", "IT", key, time.Now().Add(-jwt.TicketTTL-time.Hour))
		Expect(err).To(BeNil())

		_, err = jwt.ValidateTicket(ss, key)
		Expect(err).To(MatchError(jwt.ErrExpired))
	})

	Specify("sad path - garbage", func() {
		_, err := jwt.ValidateTicket("not.a.token", key)
		Expect(err).NotTo(BeNil())
	})
})
