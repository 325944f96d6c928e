package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIdentityKey(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	assert.NoError(t, err)

	begin := time.Date(2024, time.May, 1, 19, 0, 0, 0, berlin)
	base := IdentityKey("Hamlet", 1, 2, begin, "")

	assert.Len(t, base, 64)
	assert.Equal(t, base, IdentityKey("Hamlet", 1, 2, begin.UTC(), ""), "same instant in another zone")
	assert.NotEqual(t, base, IdentityKey("Hamlet", 1, 2, begin, "Tragödie"), "description is part of the identity")
	assert.NotEqual(t, base, IdentityKey("Hamlet", 3, 2, begin, ""))
	assert.NotEqual(t, base, IdentityKey("Hamlet", 1, 3, begin, ""))
	assert.NotEqual(t, base, IdentityKey("Hamlet", 1, 2, begin.Add(time.Minute), ""))
	assert.NotEqual(t, IdentityKey("a\x1fb", 1, 2, begin, ""), IdentityKey("a", 1, 2, begin, "b"))
}

func TestWithIdentity(t *testing.T) {
	p := Performance{Title: "Faust", LocationID: 4, CategoryID: 5, Begin: time.Date(2024, 6, 12, 17, 30, 0, 0, time.UTC)}
	assert.Equal(t, IdentityKey("Faust", 4, 5, p.Begin, ""), p.WithIdentity().IdentityKey)
	assert.Empty(t, p.IdentityKey)
}
