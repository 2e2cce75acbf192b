package dto_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/invoice-renderer/internal/application/dto"
	"github.com/jhoicas/invoice-renderer/internal/domain"
)

func TestNumber_Coalescencia(t *testing.T) {
	cases := map[string]float64{
		`12.5`:     12.5,
		`"7"`:      7,
		`" 3.25 "`: 3.25,
		`null`:     0,
		`"abc"`:    0,
		`""`:       0,
		`true`:     0,
		`-4`:       -4,
	}
	for raw, want := range cases {
		var n dto.Number
		require.NoError(t, json.Unmarshal([]byte(raw), &n), raw)
		assert.Equal(t, want, float64(n), raw)
	}
}

func TestText_AceptaStringYNumero(t *testing.T) {
	var in struct {
		A dto.Text `json:"a"`
		B dto.Text `json:"b"`
		C dto.Text `json:"c"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":"abc","b":42,"c":null}`), &in))
	assert.Equal(t, dto.Text("abc"), in.A)
	assert.Equal(t, dto.Text("42"), in.B)
	assert.Equal(t, dto.Text(""), in.C)
}

func TestText_NumeroEnFormaCanonica(t *testing.T) {
	cases := map[string]string{
		`42`:   "42",
		`42.0`: "42",
		`1e2`:  "100",
		`2.50`: "2.5",
		`-7`:   "-7",
	}
	for raw, want := range cases {
		var id dto.Text
		require.NoError(t, json.Unmarshal([]byte(raw), &id), raw)
		assert.Equal(t, dto.Text(want), id, raw)
	}
}

func TestFlag_VeracidadLaxa(t *testing.T) {
	cases := map[string]bool{
		`true`:    true,
		`false`:   false,
		`null`:    false,
		`1`:       true,
		`0`:       false,
		`-0.0`:    false,
		`2.5`:     true,
		`"true"`:  true,
		`"false"`: true,
		`""`:      false,
		`[]`:      true,
		`{}`:      true,
	}
	for raw, want := range cases {
		var f dto.Flag
		require.NoError(t, json.Unmarshal([]byte(raw), &f), raw)
		assert.Equal(t, want, bool(f), raw)
	}
}

func TestToEntity_BanderasNoBooleanasNoFallan(t *testing.T) {
	body := `{"id":"1","bill_by_user":1,"annual_invoice":"true","use_training":0,
		"custom_services":[{"price":10,"discount":1}]}`
	in, err := dto.DecodeInvoiceRequest([]byte(body))
	require.NoError(t, err)
	rec, err := in.ToEntity()
	require.NoError(t, err)
	assert.True(t, rec.BillByUser)
	assert.True(t, rec.AnnualInvoice)
	assert.False(t, rec.UseTraining)
	assert.True(t, rec.CustomServices[0].Discount)
}

func TestToEntity_RegistroCompleto(t *testing.T) {
	body := `{
		"id": 42,
		"customer_name": "Acme",
		"bill_by_user": true,
		"user_price": "12.5",
		"active_users_avg": 10,
		"deployment_fee": null,
		"annual_invoice": true,
		"custom_services": [
			{"name": "Setup", "price": 100, "amount": "2", "term": "monthly", "discount": true},
			{"price": 50}
		],
		"note": "see https://x.io"
	}`
	in, err := dto.DecodeInvoiceRequest([]byte(body))
	require.NoError(t, err)

	rec, err := in.ToEntity()
	require.NoError(t, err)
	assert.Equal(t, "42", rec.ID)
	assert.Equal(t, "Acme", rec.CustomerName)
	assert.True(t, rec.BillByUser)
	assert.True(t, rec.AnnualInvoice)
	assert.Equal(t, 12.5, rec.UserPrice)
	assert.Equal(t, 10.0, rec.ActiveUsersAvg)
	assert.Equal(t, 0.0, rec.DeploymentFee)
	require.Len(t, rec.CustomServices, 2)
	assert.Equal(t, 2.0, rec.CustomServices[0].Amount)
	assert.True(t, rec.CustomServices[0].Discount)
	assert.Equal(t, 1.0, rec.CustomServices[1].Quantity())
	assert.Equal(t, "see https://x.io", rec.Note)
}

func TestToEntity_ArregloVacioEsValido(t *testing.T) {
	in, err := dto.DecodeInvoiceRequest([]byte(`{"id":"1","custom_services":[]}`))
	require.NoError(t, err)
	rec, err := in.ToEntity()
	require.NoError(t, err)
	assert.NotNil(t, rec.CustomServices)
	assert.Empty(t, rec.CustomServices)
}

func TestToEntity_CustomServicesInvalido(t *testing.T) {
	for _, body := range []string{
		`{"id":"1"}`,
		`{"id":"1","custom_services":null}`,
		`{"id":"1","custom_services":{"a":1}}`,
		`{"id":"1","custom_services":"x"}`,
	} {
		in, err := dto.DecodeInvoiceRequest([]byte(body))
		require.NoError(t, err, body)
		_, err = in.ToEntity()
		require.Error(t, err, body)
		assert.True(t, errors.Is(err, domain.ErrInvalidRecord), body)

		var ire *domain.InvalidRecordError
		require.True(t, errors.As(err, &ire))
		assert.Equal(t, "custom_services", ire.Field)
	}
}

func TestToEntity_ElementoQueNoEsObjeto(t *testing.T) {
	in, err := dto.DecodeInvoiceRequest([]byte(`{"custom_services":[{"price":1}, 5]}`))
	require.NoError(t, err)
	_, err = in.ToEntity()

	var ire *domain.InvalidRecordError
	require.True(t, errors.As(err, &ire))
	assert.Equal(t, "custom_services[1]", ire.Field)
}

func TestDecodeInvoiceRequest_JSONMalformado(t *testing.T) {
	_, err := dto.DecodeInvoiceRequest([]byte(`{"id":`))
	assert.Error(t, err)
}
