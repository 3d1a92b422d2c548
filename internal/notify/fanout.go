package notify

import (
	"context"
	"fmt"

	"brickdeals/internal/models"
	"brickdeals/internal/providers"
	"brickdeals/internal/store"
	"brickdeals/internal/structures"
)

type NotifierInterface interface {
	NotifyHotDeal(ctx context.Context, deal *models.Deal) int
	SendTest(ctx context.Context, sub *models.Subscriber) error
}

// Notifier fans a qualifying deal out to every matching subscriber.
// Delivery is best effort: a failed gateway batch is logged and the
// remaining batches are still sent.
type Notifier struct {
	subscribers store.SubscriberStoreInterface
	client      PushClientInterface
	logger      providers.Logger
	metrics     providers.MetricsProviderInterface
	hot         int
	batchSize   int
}

func NewNotifier(conf *structures.Config, subscribers store.SubscriberStoreInterface, client PushClientInterface, logger providers.Logger, metrics providers.MetricsProviderInterface) NotifierInterface {
	return &Notifier{
		subscribers: subscribers,
		client:      client,
		logger:      logger,
		metrics:     metrics,
		hot:         conf.Deals.HotThreshold,
		batchSize:   conf.Push.BatchSize,
	}
}

// NotifyHotDeal returns the number of messages handed to the gateway.
// Deals below the fanout threshold are a no-op; the persistence threshold
// is lower and handled elsewhere.
func (n *Notifier) NotifyHotDeal(ctx context.Context, deal *models.Deal) int {
	if deal.PercentOff < n.hot {
		return 0
	}

	subs, err := n.subscribers.FindEligible(ctx, deal.PercentOff)
	if err != nil {
		n.logger.Errorf(providers.TypePush, "Subscriber query failed for %s/%s: %s", deal.Number, deal.Retailer, err)
		return 0
	}

	var messages []PushMessage
	for _, sub := range subs {
		if sub.Matches(deal) {
			messages = append(messages, buildDealMessage(sub.Token, deal))
		}
	}
	if len(messages) == 0 {
		return 0
	}

	sent := 0
	for start := 0; start < len(messages); start += n.batchSize {
		end := min(start+n.batchSize, len(messages))
		batch := messages[start:end]
		if err := n.client.SendBatch(ctx, batch); err != nil {
			n.metrics.IncPushBatchErrors()
			n.logger.Errorf(providers.TypePush, "Push batch %d-%d failed for %s/%s: %s", start, end, deal.Number, deal.Retailer, err)
			continue
		}
		sent += len(batch)
	}

	n.metrics.IncNotificationsSent(sent)
	n.logger.Infof(providers.TypePush, "Hot deal %s/%s (%d%% off): %d notifications sent", deal.Number, deal.Retailer, deal.PercentOff, sent)
	return sent
}

func (n *Notifier) SendTest(ctx context.Context, sub *models.Subscriber) error {
	msg := PushMessage{
		To:    sub.Token,
		Title: "Test notification",
		Body:  "Push notifications are working.",
		Sound: "default",
	}
	return n.client.SendBatch(ctx, []PushMessage{msg})
}

func buildDealMessage(token string, deal *models.Deal) PushMessage {
	return PushMessage{
		To:    token,
		Title: fmt.Sprintf("%d%% off: %s", deal.PercentOff, deal.Name),
		Body:  fmt.Sprintf("Now $%.2f at %s, save $%.2f", deal.Price, deal.Retailer, deal.Savings),
		Sound: "default",
		Data: map[string]any{
			"number":      deal.Number,
			"retailer":    string(deal.Retailer),
			"percent_off": deal.PercentOff,
			"url":         deal.URL,
		},
	}
}
