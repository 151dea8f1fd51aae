package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractJSON(t *testing.T) {
	cases := map[string]string{
		`{"timeframe":"24h","count":10}`:                    `{"timeframe":"24h","count":10}`,
		"```json\n{\"count\":5}\n```":                       `{"count":5}`,
		"```\n{\"count\":5}\n```":                           `{"count":5}`,
		"Sure, here you go: {\"count\": 3} hope that helps": `{"count": 3}`,
		"  {\"a\":{\"b\":1}}  ":                             `{"a":{"b":1}}`,
	}
	for in, want := range cases {
		assert.Equal(t, want, string(ExtractJSON(in)), in)
	}
}

func TestExtractJSONNoObject(t *testing.T) {
	assert.Equal(t, "no json here", string(ExtractJSON("no json here")))
}
