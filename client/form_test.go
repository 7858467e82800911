package client_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"registration-backend/client"
	"registration-backend/entity"
	"registration-backend/errs"
	"registration-backend/handler"
)

type uniqueStore struct {
	mu     sync.Mutex
	emails map[string]bool
}

func (s *uniqueStore) Insert(_ context.Context, r *entity.Registration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.emails[r.Email] {
		return errs.ErrAlreadyExists
	}
	s.emails[r.Email] = true
	return nil
}

func (s *uniqueStore) Ping(context.Context) error {
	return nil
}

func fill(f *client.Form, email string) {
	Expect(f.Set(client.FieldFullName, "Test User")).To(Succeed())
	Expect(f.Set(client.FieldEmail, email)).To(Succeed())
	Expect(f.Set(client.FieldContactNumber, "+91 98765 43210")).To(Succeed())
	Expect(f.Set(client.FieldCurrentYear, "First Year")).To(Succeed())
	Expect(f.Set(client.FieldBranch, "AIDS")).To(Succeed())
}

var _ = Describe("Form", func() {
	var (
		srv *httptest.Server
		c   *client.Client
	)

	BeforeEach(func() {
		s := &uniqueStore{emails: map[string]bool{}}
		srv = httptest.NewServer(handler.NewRouter(handler.Deps{Store: s, Ready: s}))
		c = client.New(srv.URL + "/")
	})

	AfterEach(func() {
		srv.Close()
	})

	Specify("starts empty and editing", func() {
		f := client.NewForm(c)
		Expect(f.View()).To(Equal(client.Editing))
		for _, name := range client.Fields {
			Expect(f.Get(name)).To(BeEmpty())
		}
		Expect(f.Registration()).To(BeNil())
	})

	Specify("set", func() {
		f := client.NewForm(c)
		Expect(f.Set("nickname", "x")).To(MatchError(client.ErrUnknownField))
		Expect(f.Set(client.FieldCurrentYear, "Fifth Year")).To(MatchError(client.ErrUnknownOption))
		Expect(f.Set(client.FieldBranch, "CIVIL")).To(MatchError(client.ErrUnknownOption))
		Expect(f.Set(client.FieldBranch, "MECH")).To(Succeed())
		Expect(f.Set(client.FieldBranch, "")).To(Succeed())
		Expect(f.Request().Branch).To(BeEmpty())
	})

	Specify("happy path", func() {
		f := client.NewForm(c)
		fill(f, "test@test.test")

		Expect(f.Submit(context.Background())).To(Succeed())
		Expect(f.View()).To(Equal(client.Confirmed))
		Expect(f.Registration().Email).To(Equal("test@test.test"))
		Expect(f.Registration().ID.IsZero()).To(BeFalse())
	})

	Specify("confirmed is final", func() {
		f := client.NewForm(c)
		fill(f, "test@test.test")
		Expect(f.Submit(context.Background())).To(Succeed())

		Expect(f.Submit(context.Background())).To(MatchError(client.ErrAlreadyConfirmed))
		Expect(f.View()).To(Equal(client.Confirmed))
	})

	Specify("sad path - duplicate email stays editing with the server message", func() {
		first := client.NewForm(c)
		fill(first, "test@test.test")
		Expect(first.Submit(context.Background())).To(Succeed())

		second := client.NewForm(c)
		fill(second, "test@test.test")
		err := second.Submit(context.Background())

		var se *client.SubmitError
		Expect(errors.As(err, &se)).To(BeTrue())
		Expect(se.Status).To(Equal(http.StatusInternalServerError))
		Expect(se.Message).To(Equal("Registration failed."))
		Expect(se.Detail).To(Equal(errs.ErrAlreadyExists.Error()))
		Expect(se.Error()).To(Equal("registration rejected: " + errs.ErrAlreadyExists.Error()))
		Expect(second.View()).To(Equal(client.Editing))
		Expect(second.Registration()).To(BeNil())
	})

	Specify("sad path - missing field, then corrected", func() {
		f := client.NewForm(c)
		fill(f, "test@test.test")
		Expect(f.Set(client.FieldContactNumber, "")).To(Succeed())

		err := f.Submit(context.Background())
		var se *client.SubmitError
		Expect(errors.As(err, &se)).To(BeTrue())
		Expect(se.Detail).To(Equal(errs.ErrContactNumberRequired.Error()))
		Expect(f.View()).To(Equal(client.Editing))

		Expect(f.Set(client.FieldContactNumber, "123")).To(Succeed())
		Expect(f.Submit(context.Background())).To(Succeed())
		Expect(f.View()).To(Equal(client.Confirmed))
	})

	Specify("sad path - server unreachable", func() {
		url := srv.URL
		srv.Close()

		f := client.NewForm(client.NewWithHTTPClient(url, &http.Client{Timeout: time.Second}))
		fill(f, "test@test.test")
		err := f.Submit(context.Background())
		Expect(err).To(MatchError(client.ErrUnreachable))
		Expect(err.Error()).To(HavePrefix("registration service unreachable"))
		Expect(f.View()).To(Equal(client.Editing))
	})
})

type blockingRegisterer struct {
	entered chan struct{}
	release chan struct{}
}

func (b *blockingRegisterer) Register(context.Context, *entity.RegisterRequest) (*entity.Registration, error) {
	close(b.entered)
	<-b.release
	return &entity.Registration{}, nil
}

var _ = Describe("Form submission", func() {
	Specify("one outstanding request at a time", func() {
		b := &blockingRegisterer{entered: make(chan struct{}), release: make(chan struct{})}
		f := client.NewForm(b)

		done := make(chan error, 1)
		go func() { done <- f.Submit(context.Background()) }()
		<-b.entered

		Expect(f.Submit(context.Background())).To(MatchError(client.ErrInFlight))

		close(b.release)
		Expect(<-done).To(Succeed())
		Expect(f.View()).To(Equal(client.Confirmed))
	})
})
