package checkout

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/strixcommerce/storefront-platform/internal/cart"
	appErrors "github.com/strixcommerce/storefront-platform/internal/errors"
	"github.com/strixcommerce/storefront-platform/internal/models"
	"github.com/strixcommerce/storefront-platform/internal/pricing"
)

type Step int

const (
	StepShipping Step = iota
	StepPayment
	StepConfirmation
	StepOrderPlaced
)

func (s Step) String() string {
	switch s {
	case StepShipping:
		return "shipping"
	case StepPayment:
		return "payment"
	case StepConfirmation:
		return "confirmation"
	case StepOrderPlaced:
		return "order_placed"
	default:
		return "unknown"
	}
}

// ErrSubmitInProgress is returned when any transition is attempted while an
// earlier submission is still awaiting the persistence collaborator. The
// state machine itself refuses the transition rather than relying on a
// disabled button in the UI.
var ErrSubmitInProgress = errors.New("order submission already in progress")

var expiryPattern = regexp.MustCompile(`^\d{2}/\d{2}$`)

var cardNumberPattern = regexp.MustCompile(`^\d{16}$`)

// Flow walks one checkout attempt through shipping, payment and
// confirmation. Forward transitions are gated on per-step validation;
// backward navigation keeps the entered data. Every transition requires a
// non-empty cart, and every transition is refused while a submission is in
// flight.
type Flow struct {
	mu        sync.Mutex
	store     *cart.Store
	engine    *pricing.Engine
	submitter *Submitter
	validate  *validator.Validate
	sanitize  *bluemonday.Policy

	step       Step
	shipping   models.ShippingInfo
	payment    models.PaymentInfo
	submitting bool
	orderID    uuid.UUID
	lastErr    error
}

func NewFlow(store *cart.Store, engine *pricing.Engine, submitter *Submitter) *Flow {
	return &Flow{
		store:     store,
		engine:    engine,
		submitter: submitter,
		validate:  validator.New(),
		sanitize:  bluemonday.StrictPolicy(),
		step:      StepShipping,
	}
}

func (f *Flow) Step() Step {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.step
}

// SubmitShipping validates the step-one form and advances to payment.
// Free-text fields are stripped of any markup before they can reach the
// order snapshot.
func (f *Flow) SubmitShipping(info models.ShippingInfo) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.guardSubmitting(); err != nil {
		return err
	}

	if err := f.requireCart(); err != nil {
		return err
	}

	if f.step != StepShipping {
		return appErrors.ConflictError("Checkout is not at the shipping step")
	}

	info = f.sanitizeShipping(info)

	if err := f.validate.Struct(info); err != nil {
		return appErrors.ValidationError("Shipping information is incomplete").WithError(err)
	}

	f.shipping = info
	f.step = StepPayment

	return nil
}

// SubmitPayment runs the format-only card checks and advances to
// confirmation. Nothing here talks to a payment network.
func (f *Flow) SubmitPayment(info models.PaymentInfo) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.guardSubmitting(); err != nil {
		return err
	}

	if err := f.requireCart(); err != nil {
		return err
	}

	if f.step != StepPayment {
		return appErrors.ConflictError("Checkout is not at the payment step")
	}

	if err := f.validate.Struct(info); err != nil {
		return appErrors.ValidationError("Payment information is incomplete").WithError(err)
	}

	cardNumber := strings.ReplaceAll(info.CardNumber, " ", "")
	if !cardNumberPattern.MatchString(cardNumber) {
		return appErrors.AddValidationError("card_number", "must be 16 digits")
	}

	if !expiryPattern.MatchString(info.Expiry) {
		return appErrors.AddValidationError("expiry", "must match MM/YY")
	}

	f.payment = info
	f.step = StepConfirmation

	return nil
}

// Back moves one step towards shipping without clearing any entered data.
func (f *Flow) Back() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.guardSubmitting(); err != nil {
		return err
	}

	if err := f.requireCart(); err != nil {
		return err
	}

	switch f.step {
	case StepPayment:
		f.step = StepShipping
	case StepConfirmation:
		f.step = StepPayment
	default:
		return appErrors.ConflictError("Cannot navigate back from this step")
	}

	return nil
}

// Submit performs the order commit. It is the single commit point: success
// clears the cart and the flow becomes terminal; failure keeps the cart and
// the flow at confirmation with the error recorded for display.
func (f *Flow) Submit(ctx context.Context) (*models.Order, error) {
	f.mu.Lock()

	if f.submitting {
		f.mu.Unlock()

		return nil, ErrSubmitInProgress
	}

	if err := f.requireCart(); err != nil {
		f.mu.Unlock()

		return nil, err
	}

	if f.step != StepConfirmation {
		f.mu.Unlock()

		return nil, appErrors.ConflictError("Checkout is not at the confirmation step")
	}

	snapshot := f.store.Snapshot()
	quote := f.engine.Quote(snapshot.Items, snapshot.Coupon)

	sub := &Submission{
		Items:    snapshot.Items,
		Quote:    quote,
		Shipping: f.shipping,
		Coupon:   snapshot.Coupon,
	}

	f.submitting = true
	f.lastErr = nil
	f.mu.Unlock()

	order, err := f.submitter.Submit(ctx, sub)

	f.mu.Lock()
	defer f.mu.Unlock()

	f.submitting = false

	if err != nil {
		f.lastErr = err

		return nil, err
	}

	f.store.Clear(ctx)
	f.orderID = order.ID
	f.step = StepOrderPlaced

	return order, nil
}

func (f *Flow) OrderID() uuid.UUID {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.orderID
}

// State reports the flow plus a freshly computed quote for display.
func (f *Flow) State() models.CheckoutStateResponse {
	f.mu.Lock()
	defer f.mu.Unlock()

	snapshot := f.store.Snapshot()
	quote := f.engine.Quote(snapshot.Items, snapshot.Coupon)

	resp := models.CheckoutStateResponse{
		Step:       f.step.String(),
		Submitting: f.submitting,
		Subtotal:   quote.Subtotal,
		Discount:   quote.Discount,
		Shipping:   quote.Shipping,
		Total:      quote.Total,
	}

	if f.orderID != uuid.Nil {
		resp.OrderID = f.orderID.String()
	}

	if f.lastErr != nil {
		resp.LastError = f.lastErr.Error()
	}

	return resp
}

// guardSubmitting refuses navigation while Submit is awaiting the
// repository, so a concurrent request cannot move the step out from under an
// in-flight commit. Caller must hold the lock.
func (f *Flow) guardSubmitting() error {

	if f.submitting {
		return appErrors.ConflictError("An order submission is in progress").WithError(ErrSubmitInProgress)
	}

	return nil
}

// requireCart enforces the non-empty-cart precondition on every transition
// before the order is placed. Caller must hold the lock.
func (f *Flow) requireCart() error {

	if f.step == StepOrderPlaced {
		return nil
	}

	if f.store.Empty() {
		return appErrors.EmptyCartError()
	}

	return nil
}

func (f *Flow) sanitizeShipping(info models.ShippingInfo) models.ShippingInfo {
	info.FirstName = strings.TrimSpace(f.sanitize.Sanitize(info.FirstName))
	info.LastName = strings.TrimSpace(f.sanitize.Sanitize(info.LastName))
	info.Address = strings.TrimSpace(f.sanitize.Sanitize(info.Address))
	info.City = strings.TrimSpace(f.sanitize.Sanitize(info.City))
	info.PostalCode = strings.TrimSpace(f.sanitize.Sanitize(info.PostalCode))
	info.Province = strings.TrimSpace(f.sanitize.Sanitize(info.Province))
	info.Phone = strings.TrimSpace(f.sanitize.Sanitize(info.Phone))
	info.Email = strings.TrimSpace(info.Email)

	return info
}
