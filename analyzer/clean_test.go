package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanResponseFencedEqualsUnfenced(t *testing.T) {
	payload := `{"simplified_text":"x","jargon_definitions":[{"term":"a","definition":"b"}],"risk_score":4,"questions_for_lawyer":["q?"]}`

	testCases := []struct {
		name  string
		reply string
	}{
		{name: "bare", reply: payload},
		{name: "padded", reply: "\n  " + payload + "  \n"},
		{name: "json fence", reply: "```json\n" + payload + "\n```"},
		{name: "plain fence", reply: "```\n" + payload + "\n```"},
		{name: "single line fence", reply: "```json" + payload + "```"},
		{name: "crlf fence", reply: "```JSON\r\n" + payload + "\r\n```\r\n"},
		{name: "closing fence only", reply: payload + "\n```"},
		{name: "opening fence only", reply: "```json\n" + payload},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, payload, CleanResponse(tc.reply))
		})
	}
}

func TestCleanResponseKeepsInteriorFences(t *testing.T) {
	payload := "{\"simplified_text\":\"use ``` to quote\"}"

	assert.Equal(t, payload, CleanResponse("```json\n"+payload+"\n```"))
	assert.Equal(t, payload, CleanResponse(payload))
}

func TestCleanResponseLeavesProseUntouched(t *testing.T) {
	assert.Equal(t, "not json", CleanResponse("  not json \n"))
	assert.Equal(t, "", CleanResponse("```"))
}
