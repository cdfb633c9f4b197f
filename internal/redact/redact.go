// Package redact scrubs sensitive substrings from transcript text
// before it is rendered.
package redact

import (
	"fmt"
	"regexp"
	"strings"
)

// Placeholder tokens written in place of redacted values.
const (
	RedactedClientID     = "[REDACTED-GOOGLE-CLIENT-ID]"
	RedactedClientSecret = "[REDACTED-GOOGLE-CLIENT-SECRET]"
	RedactedEmail        = "[REDACTED-EMAIL]"
)

var (
	googleClientIDPattern     = regexp.MustCompile(`\d+-[a-z0-9]+\.apps\.googleusercontent\.com`)
	googleClientSecretPattern = regexp.MustCompile(`GOCSPX-[A-Za-z0-9_-]{28}`)
	emailPattern              = regexp.MustCompile(`\b[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}\b`)
)

// rule is one independent pattern-substitution pass.
type rule struct {
	pattern     *regexp.Regexp
	replacement string
}

// Redactor applies ordered redaction rules to text. Construct one with
// New.
type Redactor struct {
	rules              []rule
	protectedAddresses []string
	allowedDomains     []string
}

// New returns a Redactor with the given email allow-lists. Protected
// addresses survive redaction exactly as written; allowed domains
// exempt any address whose domain part starts with one of them.
func New(protectedAddresses, allowedDomains []string) *Redactor {
	return &Redactor{
		rules: []rule{
			{googleClientIDPattern, RedactedClientID},
			{googleClientSecretPattern, RedactedClientSecret},
		},
		protectedAddresses: protectedAddresses,
		allowedDomains:     allowedDomains,
	}
}

// Redact scrubs sensitive substrings from text. It is pure and
// idempotent: the placeholder tokens match none of the patterns, and
// text with no sensitive substrings passes through unchanged.
func (r *Redactor) Redact(text string) string {
	for _, rule := range r.rules {
		text = rule.pattern.ReplaceAllString(text, rule.replacement)
	}
	return r.redactEmails(text)
}

// redactEmails replaces email-shaped substrings, exempting allow-listed
// domains. Protected addresses are swapped for placeholder tokens first
// and restored after; the swap has to bracket the generic pass exactly,
// or the generic pattern would eat the protected addresses too.
func (r *Redactor) redactEmails(text string) string {
	for i, addr := range r.protectedAddresses {
		text = strings.ReplaceAll(text, addr, protectToken(i))
	}

	text = emailPattern.ReplaceAllStringFunc(text, func(match string) string {
		if r.domainAllowed(match) {
			return match
		}
		return RedactedEmail
	})

	for i, addr := range r.protectedAddresses {
		text = strings.ReplaceAll(text, protectToken(i), addr)
	}
	return text
}

// domainAllowed checks the matched address against the domain
// allow-list. RE2 has no negative lookahead, so the check runs in the
// replacement func instead of the pattern; a prefix match keeps the
// accept set identical to the lookahead form.
func (r *Redactor) domainAllowed(email string) bool {
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return false
	}
	domain := email[at+1:]
	for _, allowed := range r.allowedDomains {
		if strings.HasPrefix(domain, allowed) {
			return true
		}
	}
	return false
}

func protectToken(i int) string {
	return fmt.Sprintf("<<<PROTECTED-EMAIL-%d>>>", i)
}
