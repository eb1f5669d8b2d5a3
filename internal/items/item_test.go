package items

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPatch_UnmarshalFieldStates(t *testing.T) {
	var p Patch
	err := json.Unmarshal([]byte(`{"name":"X","description":null,"quantity":5,"id":42,"colour":"red"}`), &p)
	require.NoError(t, err)

	assert.Equal(t, Raw(json.RawMessage(`"X"`)), p.Name)
	assert.Equal(t, Null(), p.Description)
	assert.JSONEq(t, `5`, string(p.Quantity.Value))
	assert.False(t, p.Price.Set)
	assert.Equal(t, map[string]Field{"colour": Raw(json.RawMessage(`"red"`))}, p.Extra)
}

func TestField_KeepsValueAsSent(t *testing.T) {
	for _, raw := range []string{`"1943"`, `12.50`, `-3`, `true`, `""`, `{"eur":5}`, `[1,2]`} {
		var p Patch
		require.NoError(t, json.Unmarshal([]byte(`{"price":`+raw+`}`), &p), raw)
		assert.True(t, p.Price.Set, raw)
		assert.False(t, p.Price.Null, raw)
		assert.JSONEq(t, raw, string(p.Price.Value), raw)
	}
}

func TestPatch_RejectsNonObjectBody(t *testing.T) {
	for _, raw := range []string{`[1,2]`, `"x"`, `3`} {
		var p Patch
		assert.Error(t, json.Unmarshal([]byte(raw), &p), raw)
	}

	var p Patch
	require.NoError(t, json.Unmarshal([]byte(`null`), &p))
	assert.Equal(t, Patch{}, p)
}

func TestPatch_ApplyTo(t *testing.T) {
	it := Item{
		ID:          7,
		Name:        Text("old"),
		Description: Text("desc"),
		Price:       Text("10"),
		Extra:       map[string]json.RawMessage{"tag": Text("promo"), "colour": Text("red")},
	}

	Patch{
		Name:        Value("new"),
		Description: Null(),
		Quantity:    Raw(json.RawMessage(`3`)),
		Extra: map[string]Field{
			"tag":    Null(),
			"weight": Raw(json.RawMessage(`{"kg":1}`)),
		},
	}.ApplyTo(&it)

	assert.Equal(t, 7, it.ID)
	assert.JSONEq(t, `"new"`, string(it.Name))
	assert.Nil(t, it.Description)
	assert.JSONEq(t, `3`, string(it.Quantity))
	assert.JSONEq(t, `"10"`, string(it.Price))
	assert.NotContains(t, it.Extra, "tag")
	assert.JSONEq(t, `"red"`, string(it.Extra["colour"]))
	assert.JSONEq(t, `{"kg":1}`, string(it.Extra["weight"]))
}

func TestItem_JSONRoundTripKeepsExtra(t *testing.T) {
	in := Item{ID: 4, Name: Text("X"), Quantity: json.RawMessage(`5`), Extra: map[string]json.RawMessage{"tag": Text("promo")}}

	b, err := json.Marshal(in)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":4,"name":"X","quantity":5,"tag":"promo"}`, string(b))

	var out Item
	require.NoError(t, json.Unmarshal(b, &out))
	assert.Equal(t, 4, out.ID)
	assert.Nil(t, out.Price)
	assert.JSONEq(t, `"promo"`, string(out.Extra["tag"]))
}

func TestPatch_MarshalOnlySetFields(t *testing.T) {
	b, err := json.Marshal(Patch{Price: Value("4"), Description: Null(), Extra: map[string]Field{"id": Value("9")}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"price":"4","description":null}`, string(b))
}

func TestTextOf(t *testing.T) {
	cases := []struct {
		raw  string
		want string
		ok   bool
	}{
		{`"12"`, "12", true},
		{`12`, "12", true},
		{`""`, "", true},
		{`null`, "", false},
		{``, "", false},
	}
	for _, tc := range cases {
		got, ok := TextOf(json.RawMessage(tc.raw))
		assert.Equal(t, tc.want, got, tc.raw)
		assert.Equal(t, tc.ok, ok, tc.raw)
	}
}
