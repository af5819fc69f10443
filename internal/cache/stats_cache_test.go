package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStatsKeyIsPerDay(t *testing.T) {
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "fleet:dashboard:stats:2024-03-01", statsKey(day))
	assert.NotEqual(t, statsKey(day), statsKey(day.AddDate(0, 0, 1)))
}
