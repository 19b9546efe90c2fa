package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"intellivend/internal/domain"
)

func TestEmail(t *testing.T) {
	for _, ok := range []string{"a@b.co", " alex.developer@example.com "} {
		_, valid := Email(ok)
		assert.True(t, valid, ok)
	}
	for _, bad := range []string{"", "nope", "a@b", "<script>@x.com"} {
		_, valid := Email(bad)
		assert.False(t, valid, bad)
	}
}

func TestQAllowsEmpty(t *testing.T) {
	q, ok := Q("  ")
	assert.True(t, ok)
	assert.Empty(t, q)

	_, ok = Q("chair")
	assert.True(t, ok)
	_, ok = Q("<img src=x>")
	assert.False(t, ok)
}

func TestRole(t *testing.T) {
	r, ok := Role("vendor")
	assert.True(t, ok)
	assert.Equal(t, domain.RoleVendor, r)
	_, ok = Role("root")
	assert.False(t, ok)
}

func TestRatingPriceDelta(t *testing.T) {
	assert.True(t, Rating(1))
	assert.True(t, Rating(5))
	assert.False(t, Rating(0))
	assert.False(t, Rating(6))

	assert.True(t, Price(0.01))
	assert.False(t, Price(0))
	assert.False(t, Price(-3))

	assert.Equal(t, -1, Delta(-1))
	assert.Equal(t, 50, Delta(900))
	assert.Equal(t, -50, Delta(-900))
}

func TestResetCodeAndZIP(t *testing.T) {
	_, ok := ResetCode("123456")
	assert.True(t, ok)
	_, ok = ResetCode("12a456")
	assert.False(t, ok)

	_, ok = ZIP("94105")
	assert.True(t, ok)
	_, ok = ZIP("")
	assert.True(t, ok)
	_, ok = ZIP("9410")
	assert.False(t, ok)
}
