// internal/app/system/tasks/basket.go
package tasks

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// BasketSyncer posts profile updates to the external marketing-list
// service ("basket"). The endpoint owns subscription state; this side
// only tells it which profile changed.
type BasketSyncer struct {
	d        *Dispatcher
	endpoint string
	client   *http.Client
	log      *zap.Logger
}

// NewBasketSyncer creates a BasketSyncer. An empty endpoint disables
// sync entirely (useful in dev, where there is no basket to talk to).
func NewBasketSyncer(d *Dispatcher, endpoint string, logger *zap.Logger) *BasketSyncer {
	return &BasketSyncer{
		d:        d,
		endpoint: endpoint,
		client:   &http.Client{},
		log:      logger,
	}
}

func (s *BasketSyncer) SyncProfile(userID primitive.ObjectID) {
	if s.endpoint == "" {
		s.log.Debug("basket sync disabled, skipping", zap.String("user_id", userID.Hex()))
		return
	}
	s.d.Go("basket-sync", func(ctx context.Context) error {
		body, err := json.Marshal(map[string]string{"user_id": userID.Hex()})
		if err != nil {
			return err
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := s.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 300 {
			return fmt.Errorf("basket responded %d", resp.StatusCode)
		}
		return nil
	})
}
