package money

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSum(t *testing.T) {
	t.Run("should be exactly zero for no amounts", func(t *testing.T) {
		total := Sum()

		assert.True(t, total.IsZero())
		assert.True(t, total.Equal(Zero()))
	})

	t.Run("should add without binary rounding", func(t *testing.T) {
		// given
		amounts := []Money{MustParse("0.1"), MustParse("0.2")}

		// when
		total := Sum(amounts...)

		// then
		assert.True(t, total.Equal(MustParse("0.3")))
	})

	t.Run("should not depend on order", func(t *testing.T) {
		a, b, c := MustParse("10.05"), MustParse("3.333"), MustParse("0.0007")

		assert.True(t, Sum(a, b, c).Equal(Sum(c, a, b)))
		assert.True(t, a.Add(b).Add(c).Equal(a.Add(b.Add(c))))
	})
}

func TestMoney_Equal(t *testing.T) {
	assert.True(t, MustParse("10").Equal(MustParse("10.00")))
	assert.False(t, MustParse("10").Equal(MustParse("10.01")))
	assert.Equal(t, -1, MustParse("9.99").Cmp(MustParse("10")))
}

func TestMoney_Percentage(t *testing.T) {
	tests := []struct {
		name        string
		expenditure string
		amount      string
		want        string
	}{
		{"quarter", "25.00", "100.00", "25.0000"},
		{"third rounds down", "1.00", "3.00", "33.3333"},
		{"two thirds rounds up", "2.00", "3.00", "66.6667"},
		{"nothing spent", "0", "50", "0.0000"},
		{"over budget", "150", "100", "150.0000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MustParse(tt.expenditure).Percentage(MustParse(tt.amount))

			require.NoError(t, err)
			assert.Equal(t, tt.want, got.StringFixed(4))
		})
	}

	t.Run("should fail on zero amount", func(t *testing.T) {
		_, err := MustParse("10").Percentage(Zero())

		assert.ErrorIs(t, err, ErrDivisionByZero)
	})
}

func TestMoney_JSON(t *testing.T) {
	t.Run("should encode as a bare number", func(t *testing.T) {
		data, err := json.Marshal(struct {
			Amount Money `json:"amount"`
		}{MustParse("12.50")})

		require.NoError(t, err)
		assert.JSONEq(t, `{"amount": 12.5}`, string(data))
	})

	t.Run("should decode numbers and numeric strings", func(t *testing.T) {
		var body struct {
			A Money `json:"a"`
			B Money `json:"b"`
		}

		err := json.Unmarshal([]byte(`{"a": 12.34, "b": "56.78"}`), &body)

		require.NoError(t, err)
		assert.True(t, body.A.Equal(MustParse("12.34")))
		assert.True(t, body.B.Equal(MustParse("56.78")))
	})

	t.Run("should reject non numeric values", func(t *testing.T) {
		var m Money

		err := json.Unmarshal([]byte(`"abc"`), &m)

		assert.Error(t, err)
	})
}

func TestParse(t *testing.T) {
	_, err := Parse("1,5")
	assert.Error(t, err)

	m, err := Parse("-3.5")
	require.NoError(t, err)
	assert.True(t, m.IsNegative())
}
