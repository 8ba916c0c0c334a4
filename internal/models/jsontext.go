package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// CompactJSON re-encodes raw JSON without whitespace, keeping object key order.
// Numbers are rendered in their shortest round-trip form (1200.50 -> 1200.5,
// 1e3 -> 1000), matching how a browser client would print them.
func CompactJSON(raw []byte) (string, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var buf bytes.Buffer
	if err := writeJSONValue(dec, &buf); err != nil {
		return "", err
	}
	if _, err := dec.Token(); err != io.EOF {
		return "", fmt.Errorf("trailing data after JSON value")
	}
	return buf.String(), nil
}

// NumberText renders a JSON number the way CompactJSON does.
func NumberText(n json.Number) string {
	f, err := n.Float64()
	if err != nil {
		return n.String()
	}
	if f == 0 {
		return "0"
	}
	out, err := json.Marshal(f)
	if err != nil {
		return n.String()
	}
	return string(out)
}

func writeJSONValue(dec *json.Decoder, buf *bytes.Buffer) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}

	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			buf.WriteByte('{')
			for i := 0; dec.More(); i++ {
				if i > 0 {
					buf.WriteByte(',')
				}
				key, err := dec.Token()
				if err != nil {
					return err
				}
				if err := writeJSONString(buf, key.(string)); err != nil {
					return err
				}
				buf.WriteByte(':')
				if err := writeJSONValue(dec, buf); err != nil {
					return err
				}
			}
			buf.WriteByte('}')
		case '[':
			buf.WriteByte('[')
			for i := 0; dec.More(); i++ {
				if i > 0 {
					buf.WriteByte(',')
				}
				if err := writeJSONValue(dec, buf); err != nil {
					return err
				}
			}
			buf.WriteByte(']')
		default:
			return fmt.Errorf("unexpected delimiter %q", v)
		}
		// closing delimiter
		if _, err := dec.Token(); err != nil {
			return err
		}
	case string:
		return writeJSONString(buf, v)
	case json.Number:
		buf.WriteString(NumberText(v))
	case bool:
		fmt.Fprintf(buf, "%t", v)
	case nil:
		buf.WriteString("null")
	}
	return nil
}

func writeJSONString(buf *bytes.Buffer, s string) error {
	var out bytes.Buffer
	enc := json.NewEncoder(&out)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	buf.Write(bytes.TrimSuffix(out.Bytes(), []byte("\n")))
	return nil
}
