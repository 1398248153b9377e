package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_EnvOverridesDefaults(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9999")
	t.Setenv("NOTIFY_MODE", "AMQP")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("JWT_TTL", "90m")
	t.Setenv("PUSH_LINK_BASE", "https://food.example")

	cfg := Load()

	assert.Equal(t, ":9999", cfg.HTTPAddr)
	assert.Equal(t, "amqp", cfg.NotifyMode)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, 90*time.Minute, cfg.JWTTTL)
	assert.Equal(t, 16, cfg.PushConcurrency)
	assert.Equal(t, "order-notifications", cfg.NotifyQueue)
	assert.Equal(t, "https://food.example", cfg.PushLinkBase)
	assert.Equal(t, 30*time.Second, cfg.NotifyTimeout)
}

func TestSplitList_Empty(t *testing.T) {
	assert.Nil(t, splitList(""))
	assert.Nil(t, splitList(" , "))
}
