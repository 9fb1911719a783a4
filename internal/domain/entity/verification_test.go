package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCodeEquals_ExactMatchOnly(t *testing.T) {
	v := Verification{Code: "123456"}

	assert.True(t, v.CodeEquals("123456"))
	assert.False(t, v.CodeEquals("123457"))
	assert.False(t, v.CodeEquals(" 123456"))
	assert.False(t, v.CodeEquals(""))
}

func TestExpiredAt(t *testing.T) {
	now := time.Now()
	sent := now.Add(-10 * time.Minute)

	cases := []struct {
		name    string
		v       Verification
		sentAt  *time.Time
		expired bool
	}{
		{"within default ttl", Verification{}, &sent, false},
		{"exactly at ttl boundary", Verification{TTL: 10 * time.Minute}, &sent, false},
		{"past custom ttl", Verification{TTL: 5 * time.Minute}, &sent, true},
		{"never sent", Verification{}, nil, true},
		{"zero ttl falls back to default", Verification{TTL: 0}, &sent, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expired, tc.v.ExpiredAt(tc.sentAt, now))
		})
	}
}

func TestExpiredAt_DefaultTTLEdge(t *testing.T) {
	now := time.Now()

	justInside := now.Add(-DefaultCodeTTL)
	assert.False(t, Verification{}.ExpiredAt(&justInside, now))

	justOutside := now.Add(-DefaultCodeTTL - time.Second)
	assert.True(t, Verification{}.ExpiredAt(&justOutside, now))
}
