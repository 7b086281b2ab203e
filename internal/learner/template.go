package learner

import "regexp"

// Placeholder substitution patterns, applied in order. URLs go first (they
// may contain digits and dollar signs), then emails, then currency amounts,
// then bare digit runs last so earlier classes are not torn apart.
var (
	urlRe    = regexp.MustCompile(`https?://[^\s]+`)
	emailRe  = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	amountRe = regexp.MustCompile(`\$[0-9][0-9,]*(\.[0-9]+)?`)
	numberRe = regexp.MustCompile(`[0-9]+`)
)

// GeneralizeResponse turns one exemplar response into a template by replacing
// variable substrings with typed placeholders: {url}, {email}, {amount},
// {number}.
func GeneralizeResponse(response string) string {
	out := urlRe.ReplaceAllString(response, "{url}")
	out = emailRe.ReplaceAllString(out, "{email}")
	out = amountRe.ReplaceAllString(out, "{amount}")
	out = numberRe.ReplaceAllString(out, "{number}")
	return out
}
