package api

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/dmitrijs2005/etimsclient/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvelopeError_Unwrap(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{0, ErrUnavailable},
		{401, ErrUnauthorized},
		{403, ErrUnauthorized},
		{502, ErrUnavailable},
		{503, ErrUnavailable},
		{504, ErrUnavailable},
		{400, nil},
		{500, nil},
	}
	for _, tt := range tests {
		err := Envelope{Status: tt.status, Message: "m"}.Err()
		require.Error(t, err)

		var ee *EnvelopeError
		require.True(t, errors.As(err, &ee))
		assert.Equal(t, tt.want, errors.Unwrap(err), "status %d", tt.status)
	}
}

func TestEnvelope_ErrNilOnSuccess(t *testing.T) {
	assert.NoError(t, Envelope{Success: true}.Err())
}

func TestEnvelopeError_MessageWithFields(t *testing.T) {
	err := Envelope{
		Message: "Validation failed",
		Errors:  map[string][]string{"pin": {"too short"}, "email": {"required", "invalid"}},
	}.Err()
	assert.Equal(t, "Validation failed; email: required, invalid; pin: too short", err.Error())
}

func TestDecode_NormalizesAndUnwraps(t *testing.T) {
	env := Envelope{Success: true, Data: json.RawMessage(`{
		"success": true,
		"data": {"id": 3, "invoiceNumber": "INV-3", "totalAmount": "1500.5", "status": "confirmed",
		         "items": [{"description": "Tea", "unitPrice": 10}]}
	}`)}

	inv, err := Decode[models.Invoice](env)
	require.NoError(t, err)
	assert.Equal(t, models.ID("3"), inv.ID)
	assert.Equal(t, "INV-3", inv.InvoiceNumber)
	assert.Equal(t, models.Amount(1500.5), inv.TotalAmount)
	require.Len(t, inv.Items, 1)
	assert.Equal(t, "Tea", inv.Items[0].Description)
	assert.Equal(t, models.Amount(10), inv.Items[0].UnitPrice)
}

func TestDecode_Page(t *testing.T) {
	env := Envelope{Success: true, Data: json.RawMessage(`{"count":2,"next":null,"results":[{"id":"a"},{"id":"b"}]}`)}

	page, err := Decode[models.Page[models.Invoice]](env)
	require.NoError(t, err)
	assert.Equal(t, 2, page.Count)
	assert.False(t, page.HasNext())
	assert.Len(t, page.Results, 2)
}

func TestDecode_Failures(t *testing.T) {
	_, err := Decode[models.User](Envelope{Status: 401, Message: "nope"})
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = Decode[models.User](Envelope{Success: true})
	assert.ErrorIs(t, err, ErrUnexpectedShape)

	_, err = Decode[models.User](Envelope{Success: true, Data: json.RawMessage(`[1,2]`)})
	assert.ErrorIs(t, err, ErrUnexpectedShape)

	_, err = Decode[models.User](Envelope{Success: true, Data: json.RawMessage(`not json`)})
	assert.ErrorIs(t, err, ErrUnexpectedShape)
}

func TestSnakeCase(t *testing.T) {
	tests := map[string]string{
		"isStaff":       "is_staff",
		"is_staff":      "is_staff",
		"invoiceNumber": "invoice_number",
		"QRCode":        "qr_code",
		"userID":        "user_id",
		"ID":            "id",
		"kraPIN":        "kra_pin",
		"cmcKey2":       "cmc_key2",
		"last24Hours":   "last24_hours",
		"already_Mixed": "already_mixed",
		"":              "",
	}
	for in, want := range tests {
		assert.Equal(t, want, SnakeCase(in), in)
	}
}

func TestNormalizeKeys(t *testing.T) {
	out, err := NormalizeKeys(json.RawMessage(`{"firstName":"A","nested":{"lastSync":1e21,"list":[{"deviceId":"d"}]},"is_staff":true,"isStaff":false}`))
	require.NoError(t, err)
	assert.JSONEq(t, `{"first_name":"A","nested":{"last_sync":1e21,"list":[{"device_id":"d"}]},"is_staff":true}`, string(out))
}
