package items

import (
	"bytes"
	"encoding/json"
	"fmt"
)

const (
	keyID          = "id"
	keyName        = "name"
	keyDescription = "description"
	keyQuantity    = "quantity"
	keyPrice       = "price"
)

// Item is a product record. Field values are kept as the JSON the client
// sent, so "quantity": 5 stays a number and "price": "5" stays a string.
// A nil value means the field is absent and it is left out of the JSON form.
// Keys other than the known ones live in Extra.
type Item struct {
	ID          int
	Name        json.RawMessage
	Description json.RawMessage
	Quantity    json.RawMessage
	Price       json.RawMessage
	Extra       map[string]json.RawMessage
}

func (it *Item) field(key string) *json.RawMessage {
	switch key {
	case keyName:
		return &it.Name
	case keyDescription:
		return &it.Description
	case keyQuantity:
		return &it.Quantity
	case keyPrice:
		return &it.Price
	}
	return nil
}

func (it Item) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, 5+len(it.Extra))
	for k, v := range it.Extra {
		out[k] = v
	}
	for _, k := range []string{keyName, keyDescription, keyQuantity, keyPrice} {
		if v := *it.field(k); v != nil {
			out[k] = v
		}
	}

	id, err := json.Marshal(it.ID)
	if err != nil {
		return nil, err
	}
	out[keyID] = id
	return json.Marshal(out)
}

func (it *Item) UnmarshalJSON(b []byte) error {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(b, &m); err != nil {
		return err
	}

	*it = Item{}
	for k, v := range m {
		if k == keyID {
			if err := json.Unmarshal(v, &it.ID); err != nil {
				return fmt.Errorf("item id: %w", err)
			}
			continue
		}
		if f := it.field(k); f != nil {
			*f = v
			continue
		}
		if it.Extra == nil {
			it.Extra = make(map[string]json.RawMessage)
		}
		it.Extra[k] = v
	}
	return nil
}

func (it Item) clone() Item {
	out := Item{
		ID:          it.ID,
		Name:        cloneRaw(it.Name),
		Description: cloneRaw(it.Description),
		Quantity:    cloneRaw(it.Quantity),
		Price:       cloneRaw(it.Price),
	}
	if it.Extra != nil {
		out.Extra = make(map[string]json.RawMessage, len(it.Extra))
		for k, v := range it.Extra {
			out.Extra[k] = cloneRaw(v)
		}
	}
	return out
}

func cloneRaw(v json.RawMessage) json.RawMessage {
	if v == nil {
		return nil
	}
	return append(json.RawMessage(nil), v...)
}

// Text encodes v as a JSON string value, for building items in code.
func Text(v string) json.RawMessage {
	b, _ := json.Marshal(v)
	return b
}

// TextOf reads a field value as text: the decoded string for a JSON string,
// the literal JSON otherwise. ok is false for an absent or null value.
func TextOf(v json.RawMessage) (string, bool) {
	v = bytes.TrimSpace(v)
	if len(v) == 0 || isNull(v) {
		return "", false
	}
	if v[0] == '"' {
		var s string
		if err := json.Unmarshal(v, &s); err == nil {
			return s, true
		}
	}
	return string(v), true
}

func isNull(v json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(v), []byte("null"))
}

// Field is one optional value of a request body: absent, null, or a JSON value.
type Field struct {
	Set   bool
	Null  bool
	Value json.RawMessage
}

// Value builds a Field carrying the string v.
func Value(v string) Field { return Field{Set: true, Value: Text(v)} }

// Raw builds a Field carrying v as sent.
func Raw(v json.RawMessage) Field {
	if isNull(v) {
		return Null()
	}
	return Field{Set: true, Value: cloneRaw(v)}
}

// Null builds a Field that clears the target.
func Null() Field { return Field{Set: true, Null: true} }

// UnmarshalJSON only runs when the key is present in the body.
func (f *Field) UnmarshalJSON(b []byte) error {
	*f = Raw(b)
	return nil
}

// MarshalJSON writes null for an absent field; callers drop unset fields
// before encoding when absence matters.
func (f Field) MarshalJSON() ([]byte, error) {
	if !f.Set || f.Null {
		return []byte("null"), nil
	}
	return f.Value, nil
}

func (f Field) apply(dst *json.RawMessage) {
	switch {
	case !f.Set:
	case f.Null:
		*dst = nil
	default:
		*dst = cloneRaw(f.Value)
	}
}

// Patch carries the fields of a create or update body. Any id sent by the
// caller is dropped. Keys other than the known four go to Extra and are
// merged onto the record the same way.
type Patch struct {
	Name        Field
	Description Field
	Quantity    Field
	Price       Field
	Extra       map[string]Field
}

func (p *Patch) field(key string) *Field {
	switch key {
	case keyName:
		return &p.Name
	case keyDescription:
		return &p.Description
	case keyQuantity:
		return &p.Quantity
	case keyPrice:
		return &p.Price
	}
	return nil
}

// UnmarshalJSON accepts any JSON object. A null body is an empty patch.
func (p *Patch) UnmarshalJSON(b []byte) error {
	*p = Patch{}
	if isNull(b) {
		return nil
	}

	var m map[string]json.RawMessage
	if err := json.Unmarshal(b, &m); err != nil {
		return err
	}

	for k, v := range m {
		if k == keyID {
			continue
		}
		if f := p.field(k); f != nil {
			*f = Raw(v)
			continue
		}
		if p.Extra == nil {
			p.Extra = make(map[string]Field)
		}
		p.Extra[k] = Raw(v)
	}
	return nil
}

// MarshalJSON writes only the fields that are set, so a partial patch
// stays partial on the wire.
func (p Patch) MarshalJSON() ([]byte, error) {
	out := make(map[string]Field, 4+len(p.Extra))
	for k, f := range p.Extra {
		if f.Set && k != keyID {
			out[k] = f
		}
	}
	for _, k := range []string{keyName, keyDescription, keyQuantity, keyPrice} {
		if f := *p.field(k); f.Set {
			out[k] = f
		}
	}
	return json.Marshal(out)
}

// ApplyTo merges the present fields into it and leaves the rest untouched.
func (p Patch) ApplyTo(it *Item) {
	for _, k := range []string{keyName, keyDescription, keyQuantity, keyPrice} {
		p.field(k).apply(it.field(k))
	}

	for k, f := range p.Extra {
		if !f.Set || k == keyID {
			continue
		}
		if f.Null {
			delete(it.Extra, k)
			continue
		}
		if it.Extra == nil {
			it.Extra = make(map[string]json.RawMessage)
		}
		it.Extra[k] = cloneRaw(f.Value)
	}
}
