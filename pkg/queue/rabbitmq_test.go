package queue

import (
	"testing"

	"syncup/pkg/config"

	"github.com/stretchr/testify/assert"
)

func TestTaskPriority(t *testing.T) {
	assert.Equal(t, uint8(1), TaskPriority(map[string]interface{}{}))
	assert.Equal(t, uint8(5), TaskPriority(map[string]interface{}{"priority": 5}))
	assert.Equal(t, uint8(7), TaskPriority(map[string]interface{}{"priority": float64(7)}))
	assert.Equal(t, uint8(0), TaskPriority(map[string]interface{}{"priority": -3}))
	assert.Equal(t, uint8(10), TaskPriority(map[string]interface{}{"priority": 42}))
	assert.Equal(t, uint8(1), TaskPriority(map[string]interface{}{"priority": "high"}))
}

func TestURL(t *testing.T) {
	cfg := &config.Config{
		RabbitMQHost:     "rabbit",
		RabbitMQPort:     "5672",
		RabbitMQUser:     "guest",
		RabbitMQPassword: "pw",
	}
	assert.Equal(t, "amqp://guest:pw@rabbit:5672/", URL(cfg))
}
