package product

import (
	"bytes"
	"encoding/json"
	"errors"
	"sort"
)

var ErrProductNotFound = errors.New("product not found")

// Product is the catalog metadata copied into a cart line when it is first added.
// Catalog members beyond the typed ones are kept in Extra and written back as-is.
type Product struct {
	ID    int                        `json:"id"`
	Title string                     `json:"title"`
	Price float64                    `json:"price"`
	Image string                     `json:"image"`
	Extra map[string]json.RawMessage `json:"-"`
}

// Field is a JSON member appended after the product's own members.
type Field struct {
	Key   string
	Value any
}

var typedKeys = []string{"id", "title", "price", "image"}

func (p Product) MarshalJSON() ([]byte, error) {
	return p.MarshalWith()
}

func (p *Product) UnmarshalJSON(data []byte) error {
	return p.UnmarshalWith(data)
}

// MarshalWith encodes p as one flat object: the typed members, then more,
// then the Extra members not already written.
func (p Product) MarshalWith(more ...Field) ([]byte, error) {
	fields := append([]Field{
		{"id", p.ID},
		{"title", p.Title},
		{"price", p.Price},
		{"image", p.Image},
	}, more...)

	var buf bytes.Buffer
	written := make(map[string]bool, len(fields)+len(p.Extra))
	write := func(key string, value []byte) error {
		k, err := json.Marshal(key)
		if err != nil {
			return err
		}
		if buf.Len() > 0 {
			buf.WriteByte(',')
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(value)
		written[key] = true
		return nil
	}

	for _, f := range fields {
		v, err := json.Marshal(f.Value)
		if err != nil {
			return nil, err
		}
		if err := write(f.Key, v); err != nil {
			return nil, err
		}
	}

	keys := make([]string, 0, len(p.Extra))
	for k := range p.Extra {
		if !written[k] {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := write(k, p.Extra[k]); err != nil {
			return nil, err
		}
	}

	return append(append([]byte{'{'}, buf.Bytes()...), '}'), nil
}

// UnmarshalWith decodes data into p. Members other than the typed ones and
// skip end up in Extra.
func (p *Product) UnmarshalWith(data []byte, skip ...string) error {
	type plain Product
	var v plain
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}

	var members map[string]json.RawMessage
	if err := json.Unmarshal(data, &members); err != nil {
		return err
	}
	for _, k := range typedKeys {
		delete(members, k)
	}
	for _, k := range skip {
		delete(members, k)
	}
	if len(members) == 0 {
		members = nil
	}

	v.Extra = members
	*p = Product(v)
	return nil
}
