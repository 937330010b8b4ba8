package service

import (
	"context"
	"encoding/json"
	"net/http"

	"smartpos/internal/dto"
	"smartpos/internal/model"
	"smartpos/internal/repository"

	"github.com/rs/zerolog/log"
)

// PushSender delivers one payload to one endpoint and reports the upstream
// HTTP status code. The concrete implementation lives in infra.
type PushSender interface {
	Send(ctx context.Context, sub model.PushSubscription, payload []byte) (int, error)
}

type PushService interface {
	Subscribe(ctx context.Context, userID, businessID uint, req dto.PushSubscribeRequest) error
	PublicKey() string
	// Broadcast fans a notification out to every subscription of the
	// business. Gone endpoints (404/410) are pruned, other failures are
	// logged and skipped; one dead endpoint never blocks the rest.
	Broadcast(ctx context.Context, businessID uint, title, body string) (sent int, err error)
}

type pushService struct {
	repo      repository.PushSubscriptionRepository
	sender    PushSender
	publicKey string
}

func NewPushService(repo repository.PushSubscriptionRepository, sender PushSender, publicKey string) PushService {
	return &pushService{repo: repo, sender: sender, publicKey: publicKey}
}

func (s *pushService) PublicKey() string {
	return s.publicKey
}

func (s *pushService) Subscribe(ctx context.Context, userID, businessID uint, req dto.PushSubscribeRequest) error {
	return s.repo.Upsert(ctx, &model.PushSubscription{
		UserID:     userID,
		BusinessID: businessID,
		Endpoint:   req.Endpoint,
		P256dh:     req.Keys.P256dh,
		Auth:       req.Keys.Auth,
	})
}

type pushPayload struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

func (s *pushService) Broadcast(ctx context.Context, businessID uint, title, body string) (int, error) {
	subs, err := s.repo.ListByBusiness(ctx, businessID)
	if err != nil {
		return 0, err
	}

	payload, err := json.Marshal(pushPayload{Title: title, Body: body})
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, sub := range subs {
		status, err := s.sender.Send(ctx, sub, payload)
		if err != nil {
			log.Warn().Err(err).
				Uint("business_id", businessID).
				Str("endpoint", sub.Endpoint).
				Msg("push delivery failed")
			continue
		}
		switch status {
		case http.StatusNotFound, http.StatusGone:
			// Subscription is dead on the push service side.
			if err := s.repo.DeleteByEndpoint(ctx, sub.Endpoint); err != nil {
				log.Warn().Err(err).Str("endpoint", sub.Endpoint).Msg("failed to prune push subscription")
			}
		default:
			sent++
		}
	}
	return sent, nil
}
