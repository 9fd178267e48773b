package counting

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// DecodeText convierte los bytes crudos de un archivo de conteo a texto UTF-8.
// Quita el BOM si viene (los exports de Excel suelen traerlo) y, si los bytes
// no son UTF-8 válido, reintenta como ISO-8859-1 (lectores de código de barras
// antiguos exportan en Latin-1).
func DecodeText(raw []byte) (string, error) {
	utf8Dec := unicode.UTF8BOM.NewDecoder()
	decoded, _, err := transform.Bytes(utf8Dec, raw)
	if err == nil && utf8.Valid(decoded) {
		return string(decoded), nil
	}

	latin1, _, err := transform.Bytes(charmap.ISO8859_1.NewDecoder(), bytes.TrimPrefix(raw, []byte("\xef\xbb\xbf")))
	if err != nil {
		return "", fmt.Errorf("decodificar archivo de conteo: %w", err)
	}
	return string(latin1), nil
}
