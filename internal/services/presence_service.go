package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/Kiranpjk/RapidGigs-sub001/internal/enums"
	"github.com/Kiranpjk/RapidGigs-sub001/internal/interfaces"
	"github.com/Kiranpjk/RapidGigs-sub001/internal/models"
	"github.com/Kiranpjk/RapidGigs-sub001/internal/models/socket"

	"github.com/redis/go-redis/v9"
)

const (
	presenceCacheTTL = 24 * time.Hour
	presenceCacheKey = "user_online_status_%v"
)

// PresenceService tracks who is online and which connection is their current
// one. The durable row lives in the store; redis mirrors the online flag for
// cheap reads. The cache is optional (nil in tests) and never authoritative.
type PresenceService struct {
	presenceStore interfaces.PresenceStore
	publisher     interfaces.EventPublisher
	cache         *redis.Client
	ctx           context.Context
}

func NewPresenceService(
	ctx context.Context,
	presenceStore interfaces.PresenceStore,
	publisher interfaces.EventPublisher,
	cache *redis.Client,
) *PresenceService {
	return &PresenceService{
		ctx:           ctx,
		presenceStore: presenceStore,
		publisher:     publisher,
		cache:         cache,
	}
}

// Bind marks the user online on this connection. Last writer wins; the old
// connection is superseded, not closed here (the connection registry does
// that).
func (ps *PresenceService) Bind(userID uint, connectionID string) error {
	if err := ps.presenceStore.Bind(userID, connectionID); err != nil {
		return err
	}
	ps.cacheOnlineStatus(userID, true)
	return nil
}

// Unbind flips the user offline only when connectionID is still their current
// connection; a stale disconnect after a supersede is a silent no-op and
// publishes nothing.
func (ps *PresenceService) Unbind(userID uint, connectionID string) error {
	unbound, err := ps.presenceStore.Unbind(userID, connectionID)
	if err != nil {
		return err
	}
	if !unbound {
		return nil
	}
	ps.cacheOnlineStatus(userID, false)

	payload := socket.UserOfflinePayload{UserID: userID}
	if err := ps.publisher.Broadcast(enums.SOCKET_EVENT_USER_OFFLINE, payload); err != nil {
		log.Printf("Error broadcasting offline event for user %v: %v", userID, err)
	}
	return nil
}

// IsOnline answers from the cache when it has the user, falling back to the
// store and repopulating the cache on a miss.
func (ps *PresenceService) IsOnline(userID uint) (bool, error) {
	if online, ok := ps.cachedOnlineStatus(userID); ok {
		return online, nil
	}
	presence, err := ps.presenceStore.Get(userID)
	if err != nil {
		return false, err
	}
	ps.cacheOnlineStatus(userID, presence.Online)
	return presence.Online, nil
}

func (ps *PresenceService) GetPresence(userID uint) (*models.PresenceResponse, error) {
	presence, err := ps.presenceStore.Get(userID)
	if err != nil {
		return nil, err
	}
	response := presence.ToPresenceResponse()
	return &response, nil
}

func (ps *PresenceService) Snapshot(userIDs []uint) ([]models.PresenceResponse, error) {
	presences, err := ps.presenceStore.Snapshot(userIDs)
	if err != nil {
		return nil, err
	}
	responses := make([]models.PresenceResponse, 0, len(presences))
	for i := range presences {
		responses = append(responses, presences[i].ToPresenceResponse())
	}
	return responses, nil
}

func (ps *PresenceService) OnlineUserIDs() ([]uint, error) {
	return ps.presenceStore.OnlineUserIDs()
}

func (ps *PresenceService) cacheOnlineStatus(userID uint, online bool) {
	if ps.cache == nil {
		return
	}
	key := fmt.Sprintf(presenceCacheKey, userID)
	value := "false"
	if online {
		value = "true"
	}
	if err := ps.cache.Set(ps.ctx, key, value, presenceCacheTTL).Err(); err != nil {
		log.Printf("Error caching online status for user %v: %v", userID, err)
	}
}

// cachedOnlineStatus reports the cached flag and whether the cache had an
// answer. Cache errors degrade to a miss; the store stays authoritative.
func (ps *PresenceService) cachedOnlineStatus(userID uint) (bool, bool) {
	if ps.cache == nil {
		return false, false
	}
	value, err := ps.cache.Get(ps.ctx, fmt.Sprintf(presenceCacheKey, userID)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Printf("Error reading cached online status for user %v: %v", userID, err)
		}
		return false, false
	}
	return value == "true", true
}
