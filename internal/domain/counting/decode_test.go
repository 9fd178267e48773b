package counting_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Chirlanio/inmystock/internal/domain/counting"
)

func TestDecodeText_UTF8ConBOM(t *testing.T) {
	raw := append([]byte{0xEF, 0xBB, 0xBF}, []byte("7701234\n")...)
	text, err := counting.DecodeText(raw)
	require.NoError(t, err)
	assert.Equal(t, "7701234\n", text, "el BOM de Excel debe desaparecer")
}

func TestDecodeText_UTF8Plano(t *testing.T) {
	text, err := counting.DecodeText([]byte("7701234\n"))
	require.NoError(t, err)
	assert.Equal(t, "7701234\n", text)
}

func TestDecodeText_Latin1(t *testing.T) {
	// "ubicación" en ISO-8859-1: la ó es el byte 0xF3, inválido como UTF-8.
	raw := []byte("ubicaci\xf3n")
	text, err := counting.DecodeText(raw)
	require.NoError(t, err)
	assert.Equal(t, "ubicación", text, "los exports Latin-1 deben reinterpretarse")
}
