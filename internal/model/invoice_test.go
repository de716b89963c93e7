package model_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/stripe-invoicer/internal/model"
)

func TestLineItem_Normalize(t *testing.T) {
	li := model.LineItem{Description: "Consulting", Amount: 5000}
	n := li.Normalize()

	assert.Equal(t, int64(1), n.Quantity)
	assert.Equal(t, "usd", n.Currency)

	// Explicit values survive normalization
	li = model.LineItem{Description: "Hosting", Amount: 7500, Quantity: 3, Currency: "eur"}
	n = li.Normalize()
	assert.Equal(t, int64(3), n.Quantity)
	assert.Equal(t, "eur", n.Currency)
}

func TestLineItem_Validate(t *testing.T) {
	tests := []struct {
		name    string
		item    model.LineItem
		wantErr bool
	}{
		{"valid", model.LineItem{Description: "A", Amount: 100, Quantity: 1}, false},
		{"zero quantity allowed before normalize", model.LineItem{Description: "A", Amount: 100}, false},
		{"empty description", model.LineItem{Amount: 100}, true},
		{"zero amount", model.LineItem{Description: "A"}, true},
		{"negative amount", model.LineItem{Description: "A", Amount: -5}, true},
		{"negative quantity", model.LineItem{Description: "A", Amount: 100, Quantity: -1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.item.Validate()
			if tt.wantErr {
				require.Error(t, err)
				var verr *model.ValidationError
				assert.True(t, errors.As(err, &verr))
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestCustomerUpdate_IsEmpty(t *testing.T) {
	assert.True(t, model.CustomerUpdate{}.IsEmpty())

	name := "Jane"
	assert.False(t, model.CustomerUpdate{Name: &name}.IsEmpty())
	assert.False(t, model.CustomerUpdate{Metadata: map[string]string{"k": "v"}}.IsEmpty())
}

func TestProviderError_Unwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := model.NewProviderError("customer.create", "", "request failed", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "customer.create")
}

func TestNotFoundError_Message(t *testing.T) {
	err := model.NewNotFoundError("customer", "cus_missing")
	assert.Equal(t, "customer not found: cus_missing", err.Error())
}
