package payfast

import (
	"bytes"
	"encoding/json"
)

type Field struct {
	Key   string
	Value string
}

// Payload is an insertion-ordered set of form fields sent to the gateway.
type Payload struct {
	fields []Field
}

func (p *Payload) Set(key, value string) {
	for i := range p.fields {
		if p.fields[i].Key == key {
			p.fields[i].Value = value
			return
		}
	}
	p.fields = append(p.fields, Field{Key: key, Value: value})
}

func (p *Payload) Get(key string) (string, bool) {
	for _, f := range p.fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return "", false
}

func (p *Payload) Fields() []Field {
	out := make([]Field, len(p.fields))
	copy(out, p.fields)
	return out
}

func (p *Payload) Map() map[string]string {
	m := make(map[string]string, len(p.fields))
	for _, f := range p.fields {
		m[f.Key] = f.Value
	}
	return m
}

// Sign computes the signature over every other field and appends it as the last field.
func (p *Payload) Sign(passphrase string) string {
	kept := p.fields[:0]
	for _, f := range p.fields {
		if f.Key != FieldSignature {
			kept = append(kept, f)
		}
	}
	p.fields = kept

	sig := Signature(p.Map(), passphrase)
	p.fields = append(p.fields, Field{Key: FieldSignature, Value: sig})
	return sig
}

// MarshalJSON writes the fields as a JSON object, keeping insertion order.
func (p *Payload) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range p.fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(f.Key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(f.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
