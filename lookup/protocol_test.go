package lookup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTags(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want []string
	}{
		{"SkipsEntriesWithoutTag", `{"result":{"tags":[{"tag":"Spam"},{"tag":"Delivery"},{}]}}`, []string{"Spam", "Delivery"}},
		{"KeepsOrderAndExtraFields", `{"result":{"tags":[{"tag":"B","count":3},{"tag":"A","count":1}]}}`, []string{"B", "A"}},
		{"NoResult", `{"meta":{"errorCode":"403"}}`, []string{}},
		{"NoTags", `{"result":{}}`, []string{}},
		{"TagsNotArray", `{"result":{"tags":"Spam"}}`, []string{}},
		{"ResultNotObject", `{"result":[1,2]}`, []string{}},
		{"MixedEntries", `{"result":{"tags":["Spam",{"tag":7},null,{"tag":"Ok"},{"name":"x"}]}}`, []string{"Ok"}},
		{"EmptyTagKept", `{"result":{"tags":[{"tag":""}]}}`, []string{""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTags([]byte(tt.doc))
			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseTags_Invalid(t *testing.T) {
	for _, doc := range []string{"", "not json", "[1,2]", "null", `"str"`} {
		_, err := ParseTags([]byte(doc))
		assert.Error(t, err, "doc %q", doc)
	}
}

func TestMarshalCompact(t *testing.T) {
	b, err := marshalCompact(payload{CountryCode: "us", PhoneNumber: "+62812", Source: payloadSource, Token: "<&>"})
	require.NoError(t, err)
	assert.Equal(t, `{"countryCode":"us","phoneNumber":"+62812","source":"profile","token":"<&>"}`, string(b))

	b, err = marshalCompact(envelope{Data: "ab+/=="})
	require.NoError(t, err)
	assert.Equal(t, `{"data":"ab+/=="}`, string(b))
}
