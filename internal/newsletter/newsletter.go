// Package newsletter runs the one-time signup popup and the subscriber list.
package newsletter

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/example/watchhaven/internal/infrastructure/kv"
	log "github.com/sirupsen/logrus"
)

const (
	DefaultPopupDelay = 5 * time.Second

	shownKeyPrefix = "newsletter_shown:"
	SubscribersSet = "newsletter:subscribers"
)

var ErrInvalidEmail = errors.New("invalid email address")

// Popup is what the client needs to schedule the popup
type Popup struct {
	Show    bool  `json:"show"`
	DelayMs int64 `json:"delayMs"`
}

// Service gates the popup per visitor and records subscriptions
type Service struct {
	store kv.Store
	delay time.Duration
}

func NewService(store kv.Store, delay time.Duration) *Service {
	if delay <= 0 {
		delay = DefaultPopupDelay
	}
	return &Service{store: store, delay: delay}
}

// Check reports whether the popup should be shown to session. The flag is
// not set here; the client acknowledges with Dismiss once it has shown it.
func (s *Service) Check(ctx context.Context, session string) (Popup, error) {
	shown, err := s.store.GetFlag(ctx, shownKey(session))
	if err != nil {
		return Popup{}, fmt.Errorf("read popup flag: %w", err)
	}
	if shown {
		return Popup{Show: false}, nil
	}
	return Popup{Show: true, DelayMs: s.delay.Milliseconds()}, nil
}

// Dismiss persists the shown flag so the popup never reappears for session
func (s *Service) Dismiss(ctx context.Context, session string) error {
	if err := s.store.SetFlag(ctx, shownKey(session)); err != nil {
		return fmt.Errorf("set popup flag: %w", err)
	}
	return nil
}

// Subscribe adds email to the subscriber list and marks the popup shown.
// It reports false when the address was already subscribed.
func (s *Service) Subscribe(ctx context.Context, session, email string) (bool, error) {
	addr, err := normalizeEmail(email)
	if err != nil {
		return false, err
	}

	added, err := s.store.AddMember(ctx, SubscribersSet, addr)
	if err != nil {
		return false, fmt.Errorf("add subscriber: %w", err)
	}
	if session != "" {
		if err := s.Dismiss(ctx, session); err != nil {
			log.WithError(err).WithField("session_id", session).Warn("[Newsletter] Failed to set popup flag after subscribe")
		}
	}

	log.WithFields(log.Fields{"email": addr, "new": added}).Info("[Newsletter] Subscription recorded")
	return added, nil
}

// Subscribers returns every subscribed address in sorted order
func (s *Service) Subscribers(ctx context.Context) ([]string, error) {
	return s.store.Members(ctx, SubscribersSet)
}

func shownKey(session string) string {
	return shownKeyPrefix + session
}

func normalizeEmail(email string) (string, error) {
	email = strings.TrimSpace(email)
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", ErrInvalidEmail
	}
	return strings.ToLower(addr.Address), nil
}
