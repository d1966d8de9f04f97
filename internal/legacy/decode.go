package legacy

import (
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// utf8BOM is written by some Windows editors at the start of the file.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// decodeText returns data as UTF-8. Transcripts saved on Windows machines
// are often in the ANSI code page; anything that is not valid UTF-8 is
// decoded as Windows-1252.
func decodeText(data []byte) (string, error) {
	if len(data) >= len(utf8BOM) && string(data[:len(utf8BOM)]) == string(utf8BOM) {
		data = data[len(utf8BOM):]
	}
	if utf8.Valid(data) {
		return string(data), nil
	}
	out, err := charmap.Windows1252.NewDecoder().Bytes(data)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
