package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"burger-palace-api/models"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "burger-palace"

// RedisStore keeps JSON snapshots: one string per cart, and a hash plus an
// insertion-ordered list for orders and reservations.
type RedisStore struct {
	Client  *redis.Client
	CartTTL time.Duration
}

func NewRedisStore(client *redis.Client, cartTTL time.Duration) *RedisStore {
	return &RedisStore{Client: client, CartTTL: cartTTL}
}

// DialRedis connects and pings so a bad address fails at startup
func DialRedis(ctx context.Context, addr string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}
	return client, nil
}

func cartKey(sessionID string) string { return keyPrefix + "-cart:" + sessionID }

const (
	ordersKey         = keyPrefix + "-orders"
	orderLogKey       = keyPrefix + "-orders:log"
	reservationsKey   = keyPrefix + "-reservations"
	reservationLogKey = keyPrefix + "-reservations:log"

	maxOptimisticRetries = 3
)

var errConcurrentUpdate = errors.New("snapshot changed during update")

func (s *RedisStore) SaveCart(ctx context.Context, sessionID string, lines []models.CartLine) error {
	if len(lines) == 0 {
		return s.Client.Del(ctx, cartKey(sessionID)).Err()
	}
	data, err := json.Marshal(lines)
	if err != nil {
		return err
	}
	return s.Client.Set(ctx, cartKey(sessionID), data, s.CartTTL).Err()
}

func (s *RedisStore) LoadCart(ctx context.Context, sessionID string) ([]models.CartLine, error) {
	data, err := s.Client.Get(ctx, cartKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var lines []models.CartLine
	if err := json.Unmarshal(data, &lines); err != nil {
		return nil, fmt.Errorf("corrupt cart snapshot for %s: %w", sessionID, err)
	}
	return lines, nil
}

func (s *RedisStore) CreateOrder(ctx context.Context, order *models.Order) error {
	return s.insert(ctx, ordersKey, orderLogKey, order.ID, order)
}

// UpdateOrderStatus rewrites the stored order under WATCH so a concurrent
// writer forces a retry instead of a lost update.
func (s *RedisStore) UpdateOrderStatus(ctx context.Context, orderID string, status models.OrderStatus, history *models.OrderStatusHistory) error {
	return s.update(ctx, ordersKey, orderID, func(data []byte) ([]byte, error) {
		var order models.Order
		if err := json.Unmarshal(data, &order); err != nil {
			return nil, err
		}
		order.Status = status
		order.UpdatedAt = history.CreatedAt
		order.StatusHistory = append(order.StatusHistory, *history)
		return json.Marshal(order)
	})
}

func (s *RedisStore) LoadOrders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	err := s.loadAll(ctx, ordersKey, orderLogKey, func(data []byte) error {
		var o models.Order
		if err := json.Unmarshal(data, &o); err != nil {
			return err
		}
		orders = append(orders, o)
		return nil
	})
	return orders, err
}

func (s *RedisStore) CreateReservation(ctx context.Context, r *models.TableReservation) error {
	return s.insert(ctx, reservationsKey, reservationLogKey, r.ID, r)
}

func (s *RedisStore) UpdateReservationStatus(ctx context.Context, id string, status models.ReservationStatus, updatedAt time.Time) error {
	return s.update(ctx, reservationsKey, id, func(data []byte) ([]byte, error) {
		var r models.TableReservation
		if err := json.Unmarshal(data, &r); err != nil {
			return nil, err
		}
		r.Status = status
		r.UpdatedAt = updatedAt
		return json.Marshal(r)
	})
}

func (s *RedisStore) LoadReservations(ctx context.Context) ([]models.TableReservation, error) {
	var reservations []models.TableReservation
	err := s.loadAll(ctx, reservationsKey, reservationLogKey, func(data []byte) error {
		var r models.TableReservation
		if err := json.Unmarshal(data, &r); err != nil {
			return err
		}
		reservations = append(reservations, r)
		return nil
	})
	return reservations, err
}

func (s *RedisStore) Close() error {
	return s.Client.Close()
}

func (s *RedisStore) insert(ctx context.Context, hashKey, logKey, id string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = s.Client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, hashKey, id, data)
		pipe.RPush(ctx, logKey, id)
		return nil
	})
	return err
}

func (s *RedisStore) update(ctx context.Context, hashKey, id string, apply func([]byte) ([]byte, error)) error {
	txf := func(tx *redis.Tx) error {
		data, err := tx.HGet(ctx, hashKey, id).Bytes()
		if errors.Is(err, redis.Nil) {
			return fmt.Errorf("%s %s: %w", hashKey, id, models.ErrNotFound)
		}
		if err != nil {
			return err
		}
		updated, err := apply(data)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, hashKey, id, updated)
			return nil
		})
		return err
	}

	for i := 0; i < maxOptimisticRetries; i++ {
		err := s.Client.Watch(ctx, txf, hashKey)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return err
	}
	return errConcurrentUpdate
}

func (s *RedisStore) loadAll(ctx context.Context, hashKey, logKey string, decode func([]byte) error) error {
	ids, err := s.Client.LRange(ctx, logKey, 0, -1).Result()
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		return nil
	}
	values, err := s.Client.HMGet(ctx, hashKey, ids...).Result()
	if err != nil {
		return err
	}
	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			// listed but missing from the hash; skip rather than fail the restore
			continue
		}
		if err := decode([]byte(raw)); err != nil {
			return fmt.Errorf("corrupt snapshot %s/%s: %w", hashKey, ids[i], err)
		}
	}
	return nil
}
