package client

import (
	"context"
	"errors"
	"sync"

	"registration-backend/entity"
)

const (
	FieldFullName      = "fullName"
	FieldEmail         = "email"
	FieldContactNumber = "contactNumber"
	FieldCurrentYear   = "currentYear"
	FieldBranch        = "branch"
)

// Fields lists the form fields in display order.
var Fields = []string{FieldFullName, FieldEmail, FieldContactNumber, FieldCurrentYear, FieldBranch}

type View int

const (
	Editing View = iota
	Confirmed
)

func (v View) String() string {
	if v == Confirmed {
		return "confirmed"
	}
	return "editing"
}

var (
	ErrUnknownField     = errors.New("unknown field")
	ErrUnknownOption    = errors.New("value is not one of the offered options")
	ErrInFlight         = errors.New("a submission is already in progress")
	ErrAlreadyConfirmed = errors.New("already registered")
)

type Registerer interface {
	Register(ctx context.Context, req *entity.RegisterRequest) (*entity.Registration, error)
}

// Form mirrors the five inputs of the registration form. It moves from
// Editing to Confirmed on the first successful submission and never back.
type Form struct {
	mu       sync.Mutex
	values   map[string]string
	view     View
	inFlight bool
	stored   *entity.Registration
	c        Registerer
}

func NewForm(c Registerer) *Form {
	values := make(map[string]string, len(Fields))
	for _, f := range Fields {
		values[f] = ""
	}

	return &Form{values: values, c: c}
}

// Set updates one field. Year and branch only take values from the offered
// sets, or "" to clear the selection.
func (f *Form) Set(name, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.values[name]; !ok {
		return ErrUnknownField
	}

	switch {
	case value == "":
	case name == FieldCurrentYear && !entity.Year(value).Valid():
		return ErrUnknownOption
	case name == FieldBranch && !entity.Branch(value).Valid():
		return ErrUnknownOption
	}

	f.values[name] = value
	return nil
}

func (f *Form) Get(name string) string {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.values[name]
}

func (f *Form) View() View {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.view
}

// Registration is the stored record once Confirmed, nil before.
func (f *Form) Registration() *entity.Registration {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.stored
}

func (f *Form) Request() *entity.RegisterRequest {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.request()
}

func (f *Form) request() *entity.RegisterRequest {
	return &entity.RegisterRequest{
		FullName:      f.values[FieldFullName],
		Email:         f.values[FieldEmail],
		ContactNumber: f.values[FieldContactNumber],
		CurrentYear:   entity.Year(f.values[FieldCurrentYear]),
		Branch:        entity.Branch(f.values[FieldBranch]),
	}
}

// Submit sends the current values. On failure the form stays in Editing
// and the error is returned as is.
func (f *Form) Submit(ctx context.Context) error {
	f.mu.Lock()
	if f.view == Confirmed {
		f.mu.Unlock()
		return ErrAlreadyConfirmed
	}
	if f.inFlight {
		f.mu.Unlock()
		return ErrInFlight
	}
	f.inFlight = true
	req := f.request()
	f.mu.Unlock()

	reg, err := f.c.Register(ctx, req)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.inFlight = false
	if err != nil {
		return err
	}

	f.view = Confirmed
	f.stored = reg
	return nil
}
