package diff

import (
	"encoding/json"
	"fmt"
	"strings"
)

// JSON compares two JSON documents after canonicalizing both sides (two-space
// indentation, authored key order preserved) so a diff never reports
// formatting-only changes. When either side fails to parse the comparison
// falls back to a raw text diff instead of failing.
func JSON(old, new, label string) (bool, string) {
	if old == new {
		return false, ""
	}
	canonOld, errOld := canonicalize(old)
	canonNew, errNew := canonicalize(new)
	if errOld != nil || errNew != nil {
		return Text(old, new, label)
	}
	if canonOld == canonNew {
		return false, ""
	}
	return Text(canonOld+"\n", canonNew+"\n", label)
}

// canonicalize re-serializes a JSON document with stable formatting. Key
// order is kept exactly as authored; encoding/json's map decoding would lose
// it, so the token stream is walked directly.
func canonicalize(s string) (string, error) {
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()
	var b strings.Builder
	if err := writeValue(dec, &b, 0); err != nil {
		return "", err
	}
	if _, err := dec.Token(); err == nil {
		return "", fmt.Errorf("diff: trailing content after JSON value")
	}
	return b.String(), nil
}

func writeValue(dec *json.Decoder, b *strings.Builder, depth int) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	return writeToken(dec, b, tok, depth)
}

func writeToken(dec *json.Decoder, b *strings.Builder, tok json.Token, depth int) error {
	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			return writeObject(dec, b, depth)
		case '[':
			return writeArray(dec, b, depth)
		}
		return fmt.Errorf("diff: unexpected delimiter %v", v)
	case string:
		return writeString(b, v)
	case json.Number:
		b.WriteString(v.String())
		return nil
	case bool:
		if v {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
		return nil
	case nil:
		b.WriteString("null")
		return nil
	}
	return fmt.Errorf("diff: unexpected token %v", tok)
}

func writeObject(dec *json.Decoder, b *strings.Builder, depth int) error {
	if !dec.More() {
		if _, err := dec.Token(); err != nil {
			return err
		}
		b.WriteString("{}")
		return nil
	}
	b.WriteString("{\n")
	first := true
	for dec.More() {
		if !first {
			b.WriteString(",\n")
		}
		first = false
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("diff: object key is not a string: %v", keyTok)
		}
		b.WriteString(indent(depth + 1))
		if err := writeString(b, key); err != nil {
			return err
		}
		b.WriteString(": ")
		if err := writeValue(dec, b, depth+1); err != nil {
			return err
		}
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	b.WriteString("\n" + indent(depth) + "}")
	return nil
}

func writeArray(dec *json.Decoder, b *strings.Builder, depth int) error {
	if !dec.More() {
		if _, err := dec.Token(); err != nil {
			return err
		}
		b.WriteString("[]")
		return nil
	}
	b.WriteString("[\n")
	first := true
	for dec.More() {
		if !first {
			b.WriteString(",\n")
		}
		first = false
		b.WriteString(indent(depth + 1))
		if err := writeValue(dec, b, depth+1); err != nil {
			return err
		}
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	b.WriteString("\n" + indent(depth) + "]")
	return nil
}

func writeString(b *strings.Builder, s string) error {
	encoded, err := json.Marshal(s)
	if err != nil {
		return err
	}
	b.Write(encoded)
	return nil
}

func indent(depth int) string {
	return strings.Repeat("  ", depth)
}
