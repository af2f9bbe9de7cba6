package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCredential_Expired(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	assert.False(t, (&Credential{}).Expired(now), "no expiry never expires")
	assert.False(t, (&Credential{ExpiresAt: now.Add(time.Second)}).Expired(now))
	assert.True(t, (&Credential{ExpiresAt: now}).Expired(now), "expiry instant counts as expired")
	assert.True(t, (&Credential{ExpiresAt: now.Add(-time.Minute)}).Expired(now))
}
