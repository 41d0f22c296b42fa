package validator

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type itemRequest struct {
	ProductID string  `json:"product_id" validate:"required"`
	Price     float64 `json:"extracted_price" validate:"gte=0"`
	Quantity  int     `json:"quantity" validate:"gte=0,lte=100"`
}

type contactRequest struct {
	Email string      `json:"email" validate:"required,email"`
	Item  itemRequest `json:"item"`
}

func TestValidate_Success(t *testing.T) {
	err := Validate(itemRequest{ProductID: "p-1", Price: 9.99, Quantity: 2})
	assert.NoError(t, err)
}

func TestValidate_UsesJSONFieldNames(t *testing.T) {
	err := Validate(itemRequest{Price: 1})
	require.Error(t, err)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	fields := valErr.Fields()
	assert.Equal(t, "is required", fields["product_id"])
}

func TestValidate_NestedFieldPath(t *testing.T) {
	err := Validate(contactRequest{Email: "a@b.com", Item: itemRequest{Price: -1, ProductID: "p"}})
	require.Error(t, err)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "must be greater than or equal to 0", valErr.Fields()["item.extracted_price"])
}

func TestValidate_InvalidEmail(t *testing.T) {
	err := Validate(contactRequest{Email: "nope", Item: itemRequest{ProductID: "p"}})
	require.Error(t, err)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "must be a valid email address", valErr.Fields()["email"])
}

func TestValidate_OutOfRange(t *testing.T) {
	err := Validate(itemRequest{ProductID: "p", Quantity: 101})
	require.Error(t, err)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Contains(t, valErr.Fields()["quantity"], "100")
}

func TestValidationError_ErrorString(t *testing.T) {
	err := Validate(itemRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "field 'product_id'")
	assert.Contains(t, err.Error(), "is required")
}

func TestDecodeAndValidate(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"product_id":"p-1","quantity":3}`))

	var dst itemRequest
	require.NoError(t, DecodeAndValidate(req, &dst))
	assert.Equal(t, "p-1", dst.ProductID)
	assert.Equal(t, 3, dst.Quantity)
}

func TestDecodeAndValidate_BadJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{bad`))

	var dst itemRequest
	err := DecodeAndValidate(req, &dst)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode request body")
}

func TestValidate_Phone(t *testing.T) {
	type contact struct {
		Phone string `json:"phone" validate:"required,phone"`
	}

	assert.NoError(t, Validate(contact{Phone: "(555) 123-4567"}))
	assert.NoError(t, Validate(contact{Phone: "+1 555 123 4567"}))

	err := Validate(contact{Phone: "555-1234"})
	require.Error(t, err)
	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "must contain at least 10 digits", valErr.Fields()["phone"])
}
