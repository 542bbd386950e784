package app

import (
	"errors"
	"strings"
	"sync"
)

// PostalCodeLen is the exact length a postal code must have for the form
// to be valid. Longer input is rejected at the boundary, never truncated.
const PostalCodeLen = 6

// ErrSubmitInFlight means an order submission is already running for
// this form; re-entrant submission is not allowed.
var ErrSubmitInFlight = errors.New("submission already in flight")

// ErrFormInvalid means submission was attempted while the shipping form
// is incomplete.
var ErrFormInvalid = errors.New("form is not valid")

// Form tracks shipping-address field validity gating order submission.
// Every setter re-evaluates validity synchronously. Safe for concurrent
// use.
type Form struct {
	mu         sync.Mutex
	address    string
	city       string
	postalCode string
	submitting bool
}

func NewForm() *Form {
	return &Form{}
}

func (f *Form) SetAddress(address string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.address = address
}

func (f *Form) SetCity(city string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.city = city
}

// SetPostalCode stores the postal code unless it exceeds PostalCodeLen,
// in which case the update is dropped and false is returned.
func (f *Form) SetPostalCode(postalCode string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(postalCode) > PostalCodeLen {
		return false
	}
	f.postalCode = postalCode
	return true
}

// Valid reports whether address and city are non-blank and the postal
// code is exactly PostalCodeLen characters.
func (f *Form) Valid() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.valid()
}

func (f *Form) valid() bool {
	return strings.TrimSpace(f.address) != "" &&
		strings.TrimSpace(f.city) != "" &&
		len(f.postalCode) == PostalCodeLen
}

// Submitting reports whether a submission is currently in flight.
func (f *Form) Submitting() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.submitting
}

// BeginSubmit acquires the single in-flight submission slot. It fails if
// the form is invalid or a submission is already running.
func (f *Form) BeginSubmit() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.submitting {
		return ErrSubmitInFlight
	}
	if !f.valid() {
		return ErrFormInvalid
	}
	f.submitting = true
	return nil
}

// EndSubmit releases the in-flight slot after a failed attempt.
func (f *Form) EndSubmit() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.submitting = false
}

// Reset clears every field after a successful placement.
func (f *Form) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.address = ""
	f.city = ""
	f.postalCode = ""
	f.submitting = false
}

// Fields returns a point-in-time copy of the form fields.
func (f *Form) Fields() (address, city, postalCode string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.address, f.city, f.postalCode
}

// FormRegistry hands out one form per owner.
type FormRegistry struct {
	mu    sync.Mutex
	forms map[string]*Form
}

func NewFormRegistry() *FormRegistry {
	return &FormRegistry{forms: make(map[string]*Form)}
}

func (r *FormRegistry) Get(ownerID string) *Form {
	r.mu.Lock()
	defer r.mu.Unlock()

	f, ok := r.forms[ownerID]
	if !ok {
		f = NewForm()
		r.forms[ownerID] = f
	}
	return f
}
