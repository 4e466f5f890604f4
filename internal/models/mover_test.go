package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextStatus(t *testing.T) {
	assert.Equal(t, StatusLoading, NextStatus(StatusResting))
	assert.Equal(t, StatusOnMission, NextStatus(StatusLoading))
	assert.Equal(t, StatusResting, NextStatus(StatusOnMission))
	assert.Equal(t, MoverStatus(""), NextStatus(MoverStatus("Parked")))
}

func TestLogActionValid(t *testing.T) {
	assert.True(t, LogLoaded.Valid())
	assert.True(t, LogOnMission.Valid())
	assert.True(t, LogUnloaded.Valid())
	assert.False(t, LogAction("Dropped").Valid())
}
