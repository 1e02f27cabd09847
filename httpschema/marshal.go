package httpschema

import (
	"bytes"
	"encoding/json"
)

func indent(data []byte, indent string) ([]byte, error) {
	buf := &bytes.Buffer{}
	if err := json.Indent(buf, data, "", indent); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
