package cache

import (
	"strconv"
	"time"

	"github.com/bradfitz/gomemcache/memcache"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"my-finance-dashboard/logger"
)

// Chart reports are keyed by day, so nothing needs to outlive a day.
const reportExpiration = 24 * time.Hour

const (
	keyPrefix     = "dashboard:"
	defaultBase   = 10
	generationKey = "generation"
)

type MemcacheClient struct {
	client *memcache.Client
	now    func() time.Time
}

type config interface {
	Hosts() []string
}

func NewMemcache(config config) (*MemcacheClient, error) {
	logger.Info("memcached hosts", zap.Strings("hosts", config.Hosts()))
	mc := memcache.New(config.Hosts()...)
	if err := mc.Ping(); err != nil {
		return nil, errors.Wrap(err, "ping memcached")
	}
	return &MemcacheClient{client: mc, now: time.Now}, nil
}

func formatKey(userID string, generation uint64, option string) string {
	return keyPrefix + userID + ":" + strconv.FormatUint(generation, defaultBase) + ":" + option
}

func formatGenerationKey(userID string) string {
	return keyPrefix + userID + ":" + generationKey
}

// Generation returns the user's current report generation, starting a counter if none exists.
func (mc *MemcacheClient) Generation(userID string) (uint64, error) {
	item, err := mc.client.Get(formatGenerationKey(userID))
	if errors.Is(err, memcache.ErrCacheMiss) {
		return mc.startGeneration(userID)
	}
	if err != nil {
		return 0, errors.Wrap(err, "get report generation")
	}
	return parseGeneration(item.Value)
}

// startGeneration seeds the counter from the clock so an evicted counter never reuses old keys.
func (mc *MemcacheClient) startGeneration(userID string) (uint64, error) {
	generation := uint64(mc.now().UnixNano())
	err := mc.client.Add(&memcache.Item{
		Key:   formatGenerationKey(userID),
		Value: []byte(strconv.FormatUint(generation, defaultBase)),
	})
	if errors.Is(err, memcache.ErrNotStored) {
		item, err := mc.client.Get(formatGenerationKey(userID))
		if err != nil {
			return 0, errors.Wrap(err, "get report generation")
		}
		return parseGeneration(item.Value)
	}
	if err != nil {
		return 0, errors.Wrap(err, "start report generation")
	}
	return generation, nil
}

func parseGeneration(raw []byte) (uint64, error) {
	generation, err := strconv.ParseUint(string(raw), defaultBase, 64)
	return generation, errors.Wrap(err, "parse report generation")
}

func (mc *MemcacheClient) CacheReport(userID string, generation uint64, option string, report string) error {
	logger.Debug("cache report", zap.String("userID", userID), zap.String("option", option))
	return mc.client.Set(&memcache.Item{
		Key:        formatKey(userID, generation, option),
		Value:      []byte(report),
		Expiration: int32(reportExpiration / time.Second),
	})
}

func (mc *MemcacheClient) GetReport(userID string, generation uint64, option string) (string, error) {
	logger.Debug("get report from cache", zap.String("userID", userID), zap.String("option", option))
	item, err := mc.client.Get(formatKey(userID, generation, option))
	if err != nil {
		return "", err
	}
	return string(item.Value), nil
}

// InvalidateCache moves the user to a new generation; reports under older ones expire unread.
func (mc *MemcacheClient) InvalidateCache(userID string) error {
	logger.Info("invalidate cache", zap.String("userID", userID))

	_, err := mc.client.Increment(formatGenerationKey(userID), 1)
	if !errors.Is(err, memcache.ErrCacheMiss) {
		return errors.Wrap(err, "bump report generation")
	}

	_, err = mc.startGeneration(userID)
	if err != nil {
		return err
	}
	// a reader may have seeded the counter first; bump past whatever it saw
	_, err = mc.client.Increment(formatGenerationKey(userID), 1)
	return errors.Wrap(err, "bump report generation")
}
