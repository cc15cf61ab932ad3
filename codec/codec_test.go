package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/adindex/model"
)

const adJSON = `{
	"url": "https://divar.ir/v/1",
	"title": "Yamaha",
	"city": "Tehran",
	"district": "D1",
	"brand": null,
	"model_year_jalali": 1395,
	"mileage_km": null,
	"price_toman": 100000000,
	"negotiable": 1,
	"description": "clean",
	"posted_at": "2024-01-01",
	"scraped_at": "2024-01-02T00:00:00",
	"seller_phone": "ignored"
}`

func TestDecodeRow(t *testing.T) {
	for _, c := range []Codec{JSON{}, GoJSON{}} {
		t.Run(c.Name(), func(t *testing.T) {
			var r model.Row
			require.NoError(t, c.Unmarshal([]byte(adJSON), &r))

			assert.Equal(t, "https://divar.ir/v/1", r.URL)
			assert.Nil(t, r.Brand)
			assert.Equal(t, int64(1395), r.Year)
			assert.Zero(t, r.Mileage)
			assert.Equal(t, int64(100_000_000), r.Price)
			assert.Equal(t, int64(1), r.Negotiable)
			require.NotNil(t, r.PostedAt)
			assert.Equal(t, "2024-01-01", *r.PostedAt)
		})
	}
}

func TestCodecsInterchangeable(t *testing.T) {
	brand := "Honda"
	in := model.Row{URL: "u", Brand: &brand, Year: 1392, Mileage: 5000, Price: 50_000_000}

	var out model.Row
	require.NoError(t, GoJSON{}.Unmarshal(MustMarshal(JSON{}, in), &out))
	assert.Equal(t, in, out)

	out = model.Row{}
	require.NoError(t, JSON{}.Unmarshal(MustMarshal(GoJSON{Indent: "  "}, in), &out))
	assert.Equal(t, in, out)
}

func TestIndent(t *testing.T) {
	v := map[string]int{"size": 10}
	assert.Equal(t, "{\n  \"size\": 10\n}", string(MustMarshal(JSON{Indent: "  "}, v)))
	assert.Equal(t, "{\n  \"size\": 10\n}", string(MustMarshal(GoJSON{Indent: "  "}, v)))
}

func TestByName(t *testing.T) {
	for _, name := range Names() {
		c, ok := ByName(name)
		require.True(t, ok)
		assert.Equal(t, name, c.Name())
	}

	c, ok := ByName("")
	require.True(t, ok)
	assert.Equal(t, Default, c)

	_, ok = ByName("msgpack")
	assert.False(t, ok)
}
