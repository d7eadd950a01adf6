package sorting

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/redis/go-redis/v9"
	"github.com/sandvall/katalog-grid/pkg/common/jsoncompat"
	"github.com/sandvall/katalog-grid/pkg/types"
)

const (
	redisOrderKey     = "_predefinedOrder"
	redisOrderChange  = "orderChange"
	redisRulesKeyFmt  = "_customRules_%s"
	redisRulesChange  = "rulesChange"
	redisConfigKeyFmt = "_gridConfig_%s"
)

// OrderStore keeps the shared predefined sort order and per-grid custom
// rules in redis and fans out changes to other admin replicas over
// pub/sub. Reads after a change message reload from redis, the store
// itself holds the latest copy behind a lock.
type OrderStore struct {
	mu     sync.RWMutex
	client *redis.Client
	order  *types.PredefinedSortOrder
	rules  map[string][]types.CustomSortRule
}

func NewOrderStore(addr, password string, db int) *OrderStore {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return NewOrderStoreWithClient(rdb)
}

func NewOrderStoreWithClient(client *redis.Client) *OrderStore {
	return &OrderStore{
		client: client,
		rules:  make(map[string][]types.CustomSortRule),
	}
}

func (s *OrderStore) Close() error {
	return s.client.Close()
}

// Initialize loads the persisted order and starts listening for change
// messages from other replicas.
func (s *OrderStore) Initialize(ctx context.Context) error {
	if order, err := s.loadOrder(ctx); err == nil {
		s.mu.Lock()
		s.order = order
		s.mu.Unlock()
	} else if err != redis.Nil {
		return err
	}
	go s.listen(ctx, s.client.Subscribe(ctx, redisOrderChange, redisRulesChange))
	return nil
}

func (s *OrderStore) listen(ctx context.Context, sub *redis.PubSub) {
	for msg := range sub.Channel() {
		switch msg.Channel {
		case redisOrderChange:
			order, err := s.loadOrder(ctx)
			if err != nil {
				log.Printf("Error reloading predefined order: %v", err)
				continue
			}
			s.mu.Lock()
			s.order = order
			s.mu.Unlock()
		case redisRulesChange:
			rules, err := s.loadRules(ctx, msg.Payload)
			if err != nil {
				log.Printf("Error reloading custom rules for %s: %v", msg.Payload, err)
				continue
			}
			s.mu.Lock()
			s.rules[msg.Payload] = rules
			s.mu.Unlock()
		}
	}
}

func (s *OrderStore) loadOrder(ctx context.Context) (*types.PredefinedSortOrder, error) {
	data, err := s.client.Get(ctx, redisOrderKey).Result()
	if err != nil {
		return nil, err
	}
	order := &types.PredefinedSortOrder{}
	if err := jsoncompat.Unmarshal([]byte(data), order); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *OrderStore) loadRules(ctx context.Context, gridId string) ([]types.CustomSortRule, error) {
	data, err := s.client.Get(ctx, fmt.Sprintf(redisRulesKeyFmt, gridId)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var rules []types.CustomSortRule
	if err := jsoncompat.Unmarshal([]byte(data), &rules); err != nil {
		return nil, err
	}
	return rules, nil
}

// GetOrder returns the current predefined order, nil when none is saved.
func (s *OrderStore) GetOrder() *types.PredefinedSortOrder {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.order
}

// SaveOrder persists the order and notifies other replicas. Existing
// entries keep their relative order by contract, the caller reconciles
// against current values before saving.
func (s *OrderStore) SaveOrder(ctx context.Context, order *types.PredefinedSortOrder) error {
	data, err := jsoncompat.Marshal(order)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, redisOrderKey, string(data), 0).Err(); err != nil {
		return err
	}
	s.mu.Lock()
	s.order = order
	s.mu.Unlock()
	if err := s.client.Publish(ctx, redisOrderChange, "external").Err(); err != nil {
		log.Printf("Error publishing order change: %v", err)
	}
	return nil
}

func (s *OrderStore) ClearOrder(ctx context.Context) error {
	if err := s.client.Del(ctx, redisOrderKey).Err(); err != nil {
		return err
	}
	s.mu.Lock()
	s.order = nil
	s.mu.Unlock()
	if err := s.client.Publish(ctx, redisOrderChange, "external").Err(); err != nil {
		log.Printf("Error publishing order change: %v", err)
	}
	return nil
}

// GetRules returns the saved custom sort rules for a grid instance.
func (s *OrderStore) GetRules(ctx context.Context, gridId string) []types.CustomSortRule {
	s.mu.RLock()
	rules, ok := s.rules[gridId]
	s.mu.RUnlock()
	if ok {
		return rules
	}
	rules, err := s.loadRules(ctx, gridId)
	if err != nil {
		log.Printf("Error loading custom rules for %s: %v", gridId, err)
		return nil
	}
	s.mu.Lock()
	s.rules[gridId] = rules
	s.mu.Unlock()
	return rules
}

func (s *OrderStore) SaveRules(ctx context.Context, gridId string, rules []types.CustomSortRule) error {
	data, err := jsoncompat.Marshal(rules)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, fmt.Sprintf(redisRulesKeyFmt, gridId), string(data), 0).Err(); err != nil {
		return err
	}
	s.mu.Lock()
	s.rules[gridId] = rules
	s.mu.Unlock()
	if err := s.client.Publish(ctx, redisRulesChange, gridId).Err(); err != nil {
		log.Printf("Error publishing rules change: %v", err)
	}
	return nil
}

func (s *OrderStore) ClearRules(ctx context.Context, gridId string) error {
	if err := s.client.Del(ctx, fmt.Sprintf(redisRulesKeyFmt, gridId)).Err(); err != nil {
		return err
	}
	s.mu.Lock()
	delete(s.rules, gridId)
	s.mu.Unlock()
	if err := s.client.Publish(ctx, redisRulesChange, gridId).Err(); err != nil {
		log.Printf("Error publishing rules change: %v", err)
	}
	return nil
}

// SaveGridConfig mirrors the ephemeral per-grid UI state (column
// filters, widths, single column sort). Best effort, callers debounce.
func (s *OrderStore) SaveGridConfig(ctx context.Context, gridId string, config *types.GridConfig) error {
	data, err := jsoncompat.Marshal(config)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, fmt.Sprintf(redisConfigKeyFmt, gridId), string(data), 0).Err()
}

func (s *OrderStore) LoadGridConfig(ctx context.Context, gridId string) (*types.GridConfig, error) {
	data, err := s.client.Get(ctx, fmt.Sprintf(redisConfigKeyFmt, gridId)).Result()
	if err == redis.Nil {
		return &types.GridConfig{}, nil
	}
	if err != nil {
		return nil, err
	}
	config := &types.GridConfig{}
	if err := jsoncompat.Unmarshal([]byte(data), config); err != nil {
		return nil, err
	}
	return config, nil
}
