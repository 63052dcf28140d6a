package payments

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"chaptr/internal/ledger"
	"chaptr/internal/utils"
	"chaptr/internal/websocket"

	"github.com/google/uuid"
)

// Notifier pushes a tip event to its author. The websocket hub implements
// it; tests use a fake.
type Notifier interface {
	SendToAuthor(authorID string, msg websocket.OutgoingMessage)
}

type ServiceOptions struct {
	AppID           string
	MinAmount       float64
	MaxAmount       float64
	PendingTTL      time.Duration
	AllowUnverified bool
}

type Service struct {
	registry Registry
	ledger   ledger.Ledger
	verifier TransactionVerifier // nil: no portal credential configured
	notifier Notifier            // nil: notifications disabled
	opts     ServiceOptions
}

func NewService(registry Registry, ld ledger.Ledger, verifier TransactionVerifier, notifier Notifier, opts ServiceOptions) *Service {
	if opts.MinAmount == 0 {
		opts.MinAmount = 0.1
	}
	if opts.MaxAmount == 0 {
		opts.MaxAmount = 100
	}
	if opts.PendingTTL == 0 {
		opts.PendingTTL = 30 * time.Minute
	}
	return &Service{
		registry: registry,
		ledger:   ld,
		verifier: verifier,
		notifier: notifier,
		opts:     opts,
	}
}

// Initiate validates a tip intent and parks it in the registry until the
// host wallet reports completion.
func (s *Service) Initiate(ctx context.Context, req InitiateRequest) (*PendingPayment, error) {
	if req.StoryID == "" || req.AuthorID == "" || req.Amount == "" || req.Token == "" {
		return nil, ErrMissingFields
	}

	// ParseFloat accepts "NaN" and "Inf"; NaN slips past both range
	// comparisons, so reject it explicitly
	amount, err := strconv.ParseFloat(req.Amount, 64)
	if err != nil || math.IsNaN(amount) || amount < s.opts.MinAmount || amount > s.opts.MaxAmount {
		return nil, fmt.Errorf("%w: must be between %g and %g", ErrInvalidAmount, s.opts.MinAmount, s.opts.MaxAmount)
	}

	rec := PendingPayment{
		ID:        strings.ReplaceAll(uuid.NewString(), "-", ""),
		StoryID:   req.StoryID,
		AuthorID:  req.AuthorID,
		Amount:    req.Amount,
		Token:     req.Token,
		Message:   req.Message,
		Timestamp: time.Now().UnixMilli(),
	}

	if err := s.registry.Put(ctx, rec); err != nil {
		return nil, err
	}

	utils.Log.Info("payment initiated",
		"id", rec.ID, "storyId", rec.StoryID, "authorId", rec.AuthorID,
		"amount", rec.Amount, "token", rec.Token)

	return &rec, nil
}

// Confirm resolves a pending payment by its reference. On any failure the
// record stays in the registry (except when it was never there); on success
// it is removed, recorded in the ledger, and the author is notified.
func (s *Service) Confirm(ctx context.Context, payload PaymentPayload) (*ledger.Tip, error) {
	rec, ok, err := s.registry.Get(ctx, payload.Reference)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrPaymentNotFound
	}

	// defensive double-check against the record's own id
	if payload.Reference != rec.ID {
		return nil, ErrReferenceMismatch
	}

	if s.opts.AppID == "" {
		return nil, fmt.Errorf("%w: app id not set", ErrNotConfigured)
	}

	switch {
	case s.verifier != nil:
		if err := s.verifier.Verify(ctx, payload.TransactionID, payload.Reference); err != nil {
			return nil, err
		}
	case s.opts.AllowUnverified:
		utils.Log.Warn("accepting payment without portal verification",
			"reference", rec.ID, "transactionId", payload.TransactionID)
	default:
		return nil, fmt.Errorf("%w: no verification credential and unverified mode disabled", ErrNotConfigured)
	}

	if err := s.registry.Remove(ctx, rec.ID); err != nil {
		return nil, err
	}

	amount, _ := strconv.ParseFloat(rec.Amount, 64) // validated at initiate
	tip := ledger.Tip{
		ID:            rec.ID,
		StoryID:       rec.StoryID,
		AuthorID:      rec.AuthorID,
		Amount:        amount,
		Token:         rec.Token,
		Message:       rec.Message,
		TransactionID: payload.TransactionID,
		CreatedAt:     time.Now(),
	}
	// the payment already settled on the wallet side; a ledger write failure
	// loses display state, not money
	if err := s.ledger.Record(ctx, tip); err != nil {
		utils.Log.Error("tip ledger write failed", "id", tip.ID, "err", err)
	}

	if s.notifier != nil {
		s.notifier.SendToAuthor(rec.AuthorID, websocket.OutgoingMessage{
			Event: "tip",
			Data: map[string]interface{}{
				"storyId": rec.StoryID,
				"amount":  rec.Amount,
				"token":   rec.Token,
				"display": FormatAmount(rec.Amount, rec.Token),
				"message": rec.Message,
			},
		})
	}

	utils.Log.Info("payment confirmed",
		"reference", rec.ID, "transactionId", payload.TransactionID,
		"amount", rec.Amount, "token", rec.Token, "to", rec.AuthorID)

	return &tip, nil
}

// ExpireStale sweeps records older than the pending window. Driven by a
// ticker in main; the service owns no timer.
func (s *Service) ExpireStale(ctx context.Context) (int, error) {
	return s.registry.ExpireStale(ctx, s.opts.PendingTTL)
}
