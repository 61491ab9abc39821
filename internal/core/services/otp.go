package services

import "regexp"

// otpPatterns is the ordered rule list for code extraction. Contextual
// rules come first so a bare digit run in unrelated text does not win
// over an explicitly labelled code; the hyphenated ddd-ddd form and the
// bare six-digit fallback close the list. Order matters.
var otpPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:code|verification|otp|pin)[:\s]+(\d{4,8})`),
	regexp.MustCompile(`(?i)(\d{4,8})\s+(?:is\s+)?your\s+(?:code|otp|verification|pin)`),
	regexp.MustCompile(`(?i)your\s+(?:code|otp|verification|pin)\s+(?:is[:\s]+)?(\d{4,8})`),
	regexp.MustCompile(`(?i)enter[:\s]+(\d{4,8})\s+to\s+(?:verify|confirm)`),
	regexp.MustCompile(`(?i)\b(\d{3}-\d{3})\b`),
	regexp.MustCompile(`\b(\d{6})\b`),
}

// ExtractOTP scans text with the ordered pattern rules and returns the
// first captured code. The second return is false when nothing matches.
func ExtractOTP(text string) (string, bool) {
	for _, pattern := range otpPatterns {
		if m := pattern.FindStringSubmatch(text); m != nil {
			return m[1], true
		}
	}
	return "", false
}
