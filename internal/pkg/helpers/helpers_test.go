package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseDuration(t *testing.T) {
	assert.Equal(t, 3*time.Second, ParseDuration("3s", time.Minute))
	assert.Equal(t, time.Minute, ParseDuration("soon", time.Minute))
	assert.Equal(t, time.Minute, ParseDuration("-2s", time.Minute))
}

func TestNullableValues(t *testing.T) {
	assert.False(t, NullableString("").Valid)
	assert.Equal(t, "B-12", NullableString("B-12").String)

	assert.False(t, NullableInt(0).Valid)
	assert.Equal(t, int32(4), NullableInt(4).Int32)

	assert.False(t, NullableDate(nil).Valid)
	day := time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)
	d := NullableDate(&day)
	assert.True(t, d.Valid)
	assert.Equal(t, day, *DatePtr(d))
	assert.Nil(t, DatePtr(NullableDate(nil)))
}
