package utils

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalize_SortsKeysAtEveryDepth(t *testing.T) {
	input := map[string]any{
		"b": 1,
		"a": map[string]any{"z": "last", "m": nil, "c": []any{3, 1, 2}},
	}

	out, err := Canonicalize(input)

	require.NoError(t, err)
	assert.Equal(t, `{"a":{"c":[3,1,2],"m":null,"z":"last"},"b":1}`, string(out))
}

func TestCanonicalize_OrderIndependent(t *testing.T) {
	// Same logical record written with keys in two different orders.
	first := []byte(`{"razorpay_payment_id":"pay_1","amount":60,"notes":{"bill_id":"b1","extra":true},"currency":"INR"}`)
	second := []byte(`{"currency":"INR","notes":{"extra":true,"bill_id":"b1"},"amount":60,"razorpay_payment_id":"pay_1"}`)

	a, err := Canonicalize(json.RawMessage(first))
	require.NoError(t, err)
	b, err := Canonicalize(json.RawMessage(second))
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestCanonicalize_StructFieldsAreSorted(t *testing.T) {
	type record struct {
		Zeta  string `json:"zeta"`
		Alpha int    `json:"alpha"`
	}

	out, err := Canonicalize(record{Zeta: "z", Alpha: 1})

	require.NoError(t, err)
	assert.Equal(t, `{"alpha":1,"zeta":"z"}`, string(out))
}

func TestCanonicalize_KeepsNumberTextAndHTML(t *testing.T) {
	out, err := Canonicalize(json.RawMessage(`{"amount":60.50,"email":"a<b>@x.com"}`))

	require.NoError(t, err)
	assert.Equal(t, `{"amount":60.50,"email":"a<b>@x.com"}`, string(out))
}

func TestCanonicalize_RejectsNonJSONValues(t *testing.T) {
	_, err := Canonicalize(map[string]any{"amount": math.NaN()})
	assert.Error(t, err)

	_, err = Canonicalize(map[string]any{"ch": make(chan int)})
	assert.Error(t, err)
}

func TestCanonicalHash_Deterministic(t *testing.T) {
	record := map[string]any{"bill_id": "b1", "amount": 40.0, "currency": "INR"}

	first, err := CanonicalHash(record)
	require.NoError(t, err)
	second, err := CanonicalHash(record)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, first, 64)
}

func TestSHA256Hex_KnownVector(t *testing.T) {
	assert.Equal(t,
		"e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
		SHA256Hex(nil))
}
