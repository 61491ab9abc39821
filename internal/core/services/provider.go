package services

import (
	"regexp"
	"strings"
	"unicode"
)

// providerMapping pairs a match key with the display label it resolves
// to. Keys containing a dot require an exact domain match (e.g. the
// bare x.com rebrand); plain keys match as a domain prefix or dotted
// sub-domain component.
type providerMapping struct {
	key   string
	label string
}

// providerTable is evaluated top to bottom by one linear scan; earlier
// entries win (e.g. atlassian before jira).
var providerTable = []providerMapping{
	{"google", "Google"}, {"gmail", "Google"},
	{"apple", "Apple"}, {"microsoft", "Microsoft"}, {"outlook", "Microsoft"},
	{"amazon", "Amazon"},
	{"facebook", "Facebook"}, {"meta", "Meta"}, {"instagram", "Instagram"},
	{"twitter", "Twitter"}, {"x.com", "X"},
	{"github", "GitHub"},
	{"linkedin", "LinkedIn"},
	{"paypal", "PayPal"},
	{"stripe", "Stripe"},
	{"venmo", "Venmo"},
	{"cashapp", "Cash App"},
	{"square", "Square"},
	{"coinbase", "Coinbase"},
	{"binance", "Binance"},
	{"robinhood", "Robinhood"},
	{"chase", "Chase"},
	{"wellsfargo", "Wells Fargo"},
	{"bankofamerica", "Bank of America"},
	{"aws", "AWS"},
	{"heroku", "Heroku"},
	{"digitalocean", "DigitalOcean"},
	{"cloudflare", "Cloudflare"},
	{"shopify", "Shopify"},
	{"ebay", "eBay"},
	{"etsy", "Etsy"},
	{"doordash", "DoorDash"},
	{"grubhub", "Grubhub"},
	{"postmates", "Postmates"},
	{"uber", "Uber"},
	{"lyft", "Lyft"},
	{"spotify", "Spotify"},
	{"netflix", "Netflix"},
	{"notion", "Notion"},
	{"figma", "Figma"},
	{"canva", "Canva"},
	{"zoom", "Zoom"},
	{"webex", "Webex"},
	{"asana", "Asana"},
	{"trello", "Trello"},
	{"airbnb", "Airbnb"},
	{"twilio", "Twilio"},
	{"auth0", "Auth0"},
	{"okta", "Okta"},
	{"dropbox", "Dropbox"},
	{"slack", "Slack"},
	{"discord", "Discord"},
	{"salesforce", "Salesforce"},
	{"atlassian", "Atlassian"},
	{"jira", "Jira"},
	{"adobe", "Adobe"},
	{"oracle", "Oracle"},
	{"namecheap", "Namecheap"},
	{"godaddy", "GoDaddy"},
}

// maxDerivedNameLen caps labels derived from the sender name portion.
const maxDerivedNameLen = 30

var (
	senderNameRe  = regexp.MustCompile(`^([^<@]+)`)
	cleanNameRe   = regexp.MustCompile(`\s*(no-?reply|noreply|support|security|verify|verification|accounts?|team|notifications?)\s*`)
	localDomainRe = regexp.MustCompile(`@([^.>]+)`)
)

// ExtractProvider maps a From header value to a display provider name.
//
// The domain substring after @ is checked against the table first so a
// display name containing a provider keyword cannot claim a domain it
// does not own; the full-sender scan still runs afterwards for
// name-only senders. When no table entry matches, the name portion is
// stripped of common transactional words and used if it stays under the
// length cap, then the raw name portion, then the capitalised domain
// label of the address, then the literal "Unknown".
func ExtractProvider(sender string) string {
	lower := strings.ToLower(sender)

	domainPart := lower
	if at := strings.Index(lower, "@"); at >= 0 {
		domainPart = lower[at+1:]
	}

	for _, m := range providerTable {
		// Exact domain match for dotted keys (e.g. "x.com").
		if strings.Contains(m.key, ".") && domainPart == m.key {
			return m.label
		}
		// Domain prefix or dotted component match (e.g. "netflix" in
		// "netflix.com" or "mail.netflix.com").
		if strings.HasPrefix(domainPart, m.key) || strings.Contains(domainPart, "."+m.key) {
			return m.label
		}
		// Name-based match over the full sender (e.g. "GitHub <noreply@github.com>").
		if strings.Contains(lower, m.key+" ") || strings.HasPrefix(lower, m.key) {
			return m.label
		}
	}

	// Derive a label from the name portion preceding < or @.
	if m := senderNameRe.FindStringSubmatch(sender); m != nil {
		name := strings.TrimSpace(m[1])
		clean := strings.TrimSpace(cleanNameRe.ReplaceAllString(name, ""))
		if clean != "" && len(clean) < maxDerivedNameLen {
			return clean
		}
		if name != "" && len(name) < maxDerivedNameLen {
			return name
		}
	}

	// Fall back to the capitalised first domain label of the address.
	if m := localDomainRe.FindStringSubmatch(sender); m != nil {
		return capitalise(m[1])
	}

	return "Unknown"
}

// ExtractSenderName returns the display portion of a From header: the
// text preceding < or @, trimmed, or the full value when neither occurs.
func ExtractSenderName(from string) string {
	if m := senderNameRe.FindStringSubmatch(from); m != nil {
		return strings.TrimSpace(m[1])
	}
	return from
}

func capitalise(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return s
	}
	return string(unicode.ToUpper(r[0])) + string(r[1:])
}
