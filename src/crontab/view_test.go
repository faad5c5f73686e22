package crontab

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yashkumarverma/cronline/src/cronitem"
	"gopkg.in/yaml.v3"
)

func sampleEntries() []Entry {
	return []Entry{
		{
			Line: 4,
			Item: cronitem.CronItem{
				Minute:     cronitem.MultipleValues{1, 10},
				Hour:       cronitem.Interval{Start: 1, End: 4},
				DayOfMonth: cronitem.Interval{Start: 1, End: 11},
				Month:      cronitem.MultipleValues{1, 2, 5},
				DayOfWeek:  cronitem.AllValues{},
				Command:    "sudo rm -rf /",
			},
		},
		{
			Line: 9,
			Item: cronitem.CronItem{
				Minute:     cronitem.SingleValue(0),
				Hour:       cronitem.AllValues{},
				DayOfMonth: cronitem.AllValues{},
				Month:      cronitem.AllValues{},
				DayOfWeek:  cronitem.SingleValue(5),
				Command:    "ls",
			},
		},
	}
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	for input, want := range map[string]Format{"text": FormatText, "JSON": FormatJSON, " yaml ": FormatYAML} {
		got, err := ParseFormat(input)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseFormat("xml")
	assert.Error(t, err)
}

func TestNewFieldView(t *testing.T) {
	t.Parallel()

	assert.Equal(t, FieldView{Kind: KindAll}, NewFieldView(cronitem.AllValues{}))
	assert.Equal(t, FieldView{Kind: KindSingle, Values: []int{7}}, NewFieldView(cronitem.SingleValue(7)))
	assert.Equal(t, FieldView{Kind: KindMultiple, Values: []int{3, 1}}, NewFieldView(cronitem.MultipleValues{3, 1}))
	assert.Equal(t, FieldView{Kind: KindInterval, Values: []int{2, 9}}, NewFieldView(cronitem.Interval{Start: 2, End: 9}))
}

func TestEncodeText(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	require.NoError(t, Encode(&out, FormatText, sampleEntries()))
	assert.Equal(t, "1,10 1-4 1-11 1,2,5 * sudo rm -rf /\n0 * * * 5 ls\n", out.String())
}

func TestEncodeJSON(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	require.NoError(t, Encode(&out, FormatJSON, sampleEntries()))

	var got []EntryView
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, NewEntryView(sampleEntries()[0]), got[0])
	assert.Contains(t, out.String(), `"day_of_month"`)
	assert.Contains(t, out.String(), `"kind": "interval"`)
}

func TestEncodeJSONEmptyIsArray(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	require.NoError(t, Encode(&out, FormatJSON, nil))
	assert.Equal(t, "[]\n", out.String())
}

func TestEncodeYAML(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	require.NoError(t, Encode(&out, FormatYAML, sampleEntries()))

	var got []EntryView
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, NewEntryView(sampleEntries()[1]), got[1])
	assert.Contains(t, out.String(), "values: [1, 10]")
}

func TestEncodeUnknownFormat(t *testing.T) {
	t.Parallel()

	assert.Error(t, Encode(&bytes.Buffer{}, Format("xml"), sampleEntries()))
}
