package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscount_Amount(t *testing.T) {
	tests := []struct {
		name     string
		discount Discount
		subtotal string
		want     string
	}{
		{"ten percent", Discount{Kind: Percentage, Value: d("10")}, "80", "8"},
		{"twenty percent", Discount{Kind: Percentage, Value: d("20")}, "33.33", "6.666"},
		{"flat under subtotal", Discount{Kind: FixedAmount, Value: d("50")}, "120", "50"},
		{"flat over subtotal", Discount{Kind: FixedAmount, Value: d("50")}, "49.99", "49.99"},
		{"over one hundred percent", Discount{Kind: Percentage, Value: d("150")}, "10", "10"},
		{"negative value", Discount{Kind: FixedAmount, Value: d("-5")}, "10", "0"},
		{"unknown kind", Discount{Kind: "bogus", Value: d("5")}, "10", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertDecimal(t, tt.want, tt.discount.Amount(d(tt.subtotal)), "amount")
		})
	}
}

func TestParseDiscountKind(t *testing.T) {
	for in, want := range map[string]DiscountKind{
		"percentage": Percentage, "Percent": Percentage,
		"fixed_amount": FixedAmount, "flat": FixedAmount, " FIXED ": FixedAmount,
	} {
		got, err := ParseDiscountKind(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseDiscountKind("bogo")
	assert.Error(t, err)
}

func TestDiscount_String(t *testing.T) {
	assert.Equal(t, "10%", Discount{Kind: Percentage, Value: d("10")}.String())
	assert.Equal(t, "$50.00", Discount{Kind: FixedAmount, Value: d("50")}.String())
}
