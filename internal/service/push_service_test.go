package service_test

import (
	"context"
	"errors"
	"testing"

	"smartpos/internal/dto"
	"smartpos/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func subscribeReq(endpoint string) dto.PushSubscribeRequest {
	var req dto.PushSubscribeRequest
	req.Endpoint = endpoint
	req.Keys.P256dh = "p256dh-key"
	req.Keys.Auth = "auth-secret"
	return req
}

func TestSubscribeUpsertsByEndpoint(t *testing.T) {
	repo := newStubPushRepo()
	svc := service.NewPushService(repo, newStubPushSender(), "vapid-pub")

	require.NoError(t, svc.Subscribe(context.Background(), 1, 1, subscribeReq("https://push.test/ep1")))

	// Re-subscribing from the same device under a new user updates in place.
	require.NoError(t, svc.Subscribe(context.Background(), 2, 1, subscribeReq("https://push.test/ep1")))

	subs, err := repo.ListByBusiness(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, uint(2), subs[0].UserID)
}

func TestPublicKey(t *testing.T) {
	svc := service.NewPushService(newStubPushRepo(), newStubPushSender(), "vapid-pub")
	assert.Equal(t, "vapid-pub", svc.PublicKey())
}

func TestBroadcastFansOutPerBusiness(t *testing.T) {
	repo := newStubPushRepo()
	sender := newStubPushSender()
	svc := service.NewPushService(repo, sender, "vapid-pub")

	require.NoError(t, svc.Subscribe(context.Background(), 1, 1, subscribeReq("https://push.test/a")))
	require.NoError(t, svc.Subscribe(context.Background(), 2, 1, subscribeReq("https://push.test/b")))
	require.NoError(t, svc.Subscribe(context.Background(), 3, 2, subscribeReq("https://push.test/other")))

	sent, err := svc.Broadcast(context.Background(), 1, "Reminder", "Please renew")
	require.NoError(t, err)

	assert.Equal(t, 2, sent)
	assert.NotContains(t, sender.sent, "https://push.test/other")
}

func TestBroadcastPrunesGoneEndpoints(t *testing.T) {
	repo := newStubPushRepo()
	sender := newStubPushSender()
	sender.statusByEndpoint["https://push.test/dead"] = 410
	svc := service.NewPushService(repo, sender, "vapid-pub")

	require.NoError(t, svc.Subscribe(context.Background(), 1, 1, subscribeReq("https://push.test/dead")))
	require.NoError(t, svc.Subscribe(context.Background(), 2, 1, subscribeReq("https://push.test/live")))

	sent, err := svc.Broadcast(context.Background(), 1, "Reminder", "Please renew")
	require.NoError(t, err)
	assert.Equal(t, 1, sent)

	subs, err := repo.ListByBusiness(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, "https://push.test/live", subs[0].Endpoint)
}

func TestBroadcastSkipsFailingEndpointWithoutAborting(t *testing.T) {
	repo := newStubPushRepo()
	sender := newStubPushSender()
	sender.errByEndpoint["https://push.test/flaky"] = errors.New("gateway timeout")
	svc := service.NewPushService(repo, sender, "vapid-pub")

	require.NoError(t, svc.Subscribe(context.Background(), 1, 1, subscribeReq("https://push.test/flaky")))
	require.NoError(t, svc.Subscribe(context.Background(), 2, 1, subscribeReq("https://push.test/solid")))

	sent, err := svc.Broadcast(context.Background(), 1, "Reminder", "Please renew")
	require.NoError(t, err)
	assert.Equal(t, 1, sent)

	// The flaky endpoint is NOT pruned: only 404/410 mean gone.
	subs, err := repo.ListByBusiness(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, subs, 2)
}
