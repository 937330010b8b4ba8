package infra

import (
	"context"

	"smartpos/internal/config"
	"smartpos/internal/model"

	webpush "github.com/SherClockHolmes/webpush-go"
)

// WebPushSender delivers notifications through the browser push gateways
// (FCM, Mozilla autopush, ...) using VAPID authentication. All sends go
// through the circuit breaker so a downed gateway fast-fails instead of
// stalling the worker pool.
type WebPushSender struct {
	opts *webpush.Options
	cb   *CircuitBreaker
}

func NewWebPushSender(cfg *config.Config, cb *CircuitBreaker) *WebPushSender {
	return &WebPushSender{
		opts: &webpush.Options{
			Subscriber:      cfg.VAPIDSubscriber,
			VAPIDPublicKey:  cfg.VAPIDPublicKey,
			VAPIDPrivateKey: cfg.VAPIDPrivateKey,
			TTL:             3600,
		},
		cb: cb,
	}
}

// Send pushes one payload to one endpoint and returns the gateway's HTTP
// status code. 404/410 mean the subscription is gone; the caller prunes it.
func (s *WebPushSender) Send(ctx context.Context, sub model.PushSubscription, payload []byte) (int, error) {
	target := &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256dh,
			Auth:   sub.Auth,
		},
	}

	status := 0
	err := s.cb.Execute(func() error {
		resp, err := webpush.SendNotificationWithContext(ctx, payload, target, s.opts)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		status = resp.StatusCode
		return nil
	})
	if err != nil {
		return 0, err
	}
	return status, nil
}
