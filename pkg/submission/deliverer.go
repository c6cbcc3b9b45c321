package submission

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrymomot/regform/pkg/form"
)

// Deliverer hands validated values to whatever receives registrations.
type Deliverer interface {
	Deliver(ctx context.Context, values form.Values) error
}

// DeliverFunc adapts a function to Deliverer.
type DeliverFunc func(ctx context.Context, values form.Values) error

func (f DeliverFunc) Deliver(ctx context.Context, values form.Values) error {
	return f(ctx, values)
}

// Registration is the record built from a submitted form.
type Registration struct {
	ID            uuid.UUID
	FullName      string
	Email         string
	Mobile        string
	PasswordHash  []byte `json:"-"`
	AcceptedTerms bool
	SubmittedAt   time.Time
}

// NewRegistration builds a record from form values, hashing the password with bcrypt.
func NewRegistration(values form.Values, cost int, now time.Time) (Registration, error) {
	hash, err := hashPassword(values.Text(form.Password), cost)
	if err != nil {
		return Registration{}, fmt.Errorf("hash password: %w", err)
	}
	return Registration{
		ID:            uuid.New(),
		FullName:      values.Text(form.FullName),
		Email:         values.Text(form.Email),
		Mobile:        values.Text(form.Mobile),
		PasswordHash:  hash,
		AcceptedTerms: values.Checked(form.Terms),
		SubmittedAt:   now,
	}, nil
}

// LogValue omits the password hash.
func (r Registration) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("id", r.ID.String()),
		slog.String("full_name", r.FullName),
		slog.String("email", r.Email),
		slog.String("mobile", r.Mobile),
		slog.Bool("accepted_terms", r.AcceptedTerms),
		slog.Time("submitted_at", r.SubmittedAt),
	)
}

// bcrypt rejects secrets longer than 72 bytes.
const maxBcryptInput = 72

func hashPassword(password string, cost int) ([]byte, error) {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	secret := []byte(password)
	if len(secret) > maxBcryptInput {
		sum := sha256.Sum256(secret)
		secret = []byte(hex.EncodeToString(sum[:]))
	}
	return bcrypt.GenerateFromPassword(secret, cost)
}

// LogDeliverer stands in for a registration backend: it logs the record and succeeds.
type LogDeliverer struct {
	logger *slog.Logger
	cost   int
	now    func() time.Time
}

// NewLogDeliverer creates a LogDeliverer. A zero cost uses bcrypt.DefaultCost.
func NewLogDeliverer(l *slog.Logger, cost int) *LogDeliverer {
	if l == nil {
		l = slog.Default()
	}
	return &LogDeliverer{logger: l, cost: cost, now: time.Now}
}

func (d *LogDeliverer) Deliver(ctx context.Context, values form.Values) error {
	reg, err := NewRegistration(values, d.cost, d.now())
	if err != nil {
		return err
	}
	d.logger.InfoContext(ctx, "Form submitted", slog.Any("registration", reg))
	return nil
}
