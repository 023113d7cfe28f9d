package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONBMap_NilValue(t *testing.T) {
	var m JSONBMap
	value, err := m.Value()
	require.NoError(t, err)
	assert.Equal(t, []byte("{}"), value)
}

func TestJSONBMap_ScanNil(t *testing.T) {
	var m JSONBMap
	require.NoError(t, m.Scan(nil))
	assert.NotNil(t, m)
	assert.Empty(t, m)
}

func TestJSONBMap_RoundTrip(t *testing.T) {
	m := JSONBMap{"prescriber": "Dr. Lee", "refills": float64(2)}

	value, err := m.Value()
	require.NoError(t, err)

	var got JSONBMap
	require.NoError(t, got.Scan(value))
	assert.Equal(t, m, got)
}

func TestJSONBMap_ScanRejectsUnexpectedType(t *testing.T) {
	var m JSONBMap
	assert.Error(t, m.Scan(42))
}

func TestJSONBArray_NilValue(t *testing.T) {
	var a JSONBArray
	value, err := a.Value()
	require.NoError(t, err)
	assert.Equal(t, []byte("[]"), value)
}

func TestJSONBArray_RoundTrip(t *testing.T) {
	a := JSONBArray{"acetylsalicylic acid", "caffeine"}

	value, err := a.Value()
	require.NoError(t, err)

	var got JSONBArray
	require.NoError(t, got.Scan(value))
	assert.Equal(t, a, got)
}

func TestJSONBArray_ScanNil(t *testing.T) {
	var a JSONBArray
	require.NoError(t, a.Scan(nil))
	assert.NotNil(t, a)
	assert.Empty(t, a)
}
