package cache

import (
	"go.uber.org/zap"

	"github.com/bradfitz/gomemcache/memcache"
	"github.com/pkg/errors"

	"max.ks1230/accounting/internal/logger"
)

type MemcacheClient struct {
	client *memcache.Client
}

type config interface {
	Hosts() []string
}

func NewMemcache(config config) (*MemcacheClient, error) {
	logger.Info("memcached hosts", zap.Strings("hosts", config.Hosts()))
	mc := memcache.New(config.Hosts()...)
	return &MemcacheClient{mc}, mc.Ping()
}

func formatKey(owner, option string) string {
	return owner + ":" + option
}

func (mc *MemcacheClient) CacheReport(owner, option, report string) error {
	logger.Info("cache report", zap.String("owner", owner), zap.String("option", option))
	return mc.client.Set(&memcache.Item{
		Key:   formatKey(owner, option),
		Value: []byte(report),
	})
}

func (mc *MemcacheClient) GetReport(owner, option string) (string, error) {
	item, err := mc.client.Get(formatKey(owner, option))
	if err != nil {
		return "", err
	}
	return string(item.Value), nil
}

func (mc *MemcacheClient) InvalidateReports(owner string, options []string) error {
	logger.Info("invalidate reports", zap.String("owner", owner))

	for _, opt := range options {
		err := mc.client.Delete(formatKey(owner, opt))
		if err != nil && !errors.Is(err, memcache.ErrCacheMiss) {
			return err
		}
	}
	return nil
}
