package learner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGeneralizeResponse(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"number", "Your order id is 42", "Your order id is {number}"},
		{"amount", "Cost is $1,200", "Cost is {amount}"},
		{"amount with cents", "That will be $19.99 total", "That will be {amount} total"},
		{"email", "Contact a@b.com for help", "Contact {email} for help"},
		{"url", "See https://x.com for details", "See {url} for details"},
		{"plain url", "See http://example.org here", "See {url} here"},
		{
			"combined",
			"Cost is $1,200 for id 42, contact a@b.com, see https://x.com",
			"Cost is {amount} for id {number}, contact {email}, see {url}",
		},
		{"no substitutions", "Nothing variable here", "Nothing variable here"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GeneralizeResponse(tt.in))
		})
	}
}

func TestGeneralizeResponse_DigitsInEmailAndURL(t *testing.T) {
	// Digits inside an email or URL belong to that placeholder, not {number}.
	assert.Equal(t, "Mail {email}", GeneralizeResponse("Mail user42@host99.com"))
	assert.Equal(t, "Open {url}", GeneralizeResponse("Open https://example.com/v2/items/42"))
}
