package partnerboost

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	assert.NoError(t, err)
	return d
}

func TestCodeAcceptsNumberAndString(t *testing.T) {
	var s Status
	assert.NoError(t, json.Unmarshal([]byte(`{"code": 0, "msg": "ok"}`), &s))
	assert.True(t, s.Code.OK())

	assert.NoError(t, json.Unmarshal([]byte(`{"code": "0", "msg": "ok"}`), &s))
	assert.True(t, s.Code.OK())

	assert.NoError(t, json.Unmarshal([]byte(`{"code": "500", "msg": "boom"}`), &s))
	assert.False(t, s.Code.OK())
}

func TestCountToleratesStringsAndNull(t *testing.T) {
	cases := map[string]Count{
		`3`:     3,
		`"7"`:   7,
		`"2.0"`: 2,
		`null`:  0,
		`""`:    0,
		`"n/a"`: 0,
	}
	for raw, want := range cases {
		var c Count
		assert.NoError(t, json.Unmarshal([]byte(raw), &c), raw)
		assert.Equal(t, want, c, raw)
	}
}

func TestAmountFlagsGarbageOnly(t *testing.T) {
	var a Amount
	assert.NoError(t, json.Unmarshal([]byte(`"12.345"`), &a))
	assert.True(t, a.Decimal.Equal(mustDecimal(t, "12.345")))
	assert.False(t, a.Malformed)

	a = Amount{}
	assert.NoError(t, json.Unmarshal([]byte(`null`), &a))
	assert.True(t, a.Decimal.IsZero())
	assert.False(t, a.Malformed)

	a = Amount{}
	assert.NoError(t, json.Unmarshal([]byte(`"abc"`), &a))
	assert.True(t, a.Decimal.IsZero())
	assert.True(t, a.Malformed)
}
