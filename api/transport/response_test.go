package transport

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noctura/backend/domain"
)

func TestSuccessWithTypedNilEmitsNullData(t *testing.T) {
	var entry *domain.NightEntry

	out, err := json.Marshal(NewSuccess(entry))
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":true,"data":null}`, string(out))
}

func TestErrorEnvelopeOmitsDataKey(t *testing.T) {
	out, err := json.Marshal(NewError("Unauthorized"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":false,"message":"Unauthorized"}`, string(out))
}

func TestBatchMissingCarriesIDs(t *testing.T) {
	out, err := json.Marshal(NewBatchMissing("One or more tasks not found", []string{"a", "b"}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":false,"message":"One or more tasks not found","missing":["a","b"]}`, string(out))
}
