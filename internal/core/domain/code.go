package domain

// MaxRecentCodes bounds the in-memory code list.
const MaxRecentCodes = 10

// MaxHistorySize bounds the on-disk code history.
const MaxHistorySize = 50

// CodeEntry is a one-time passcode surfaced from a mail message.
// Entries are immutable once created and evicted oldest-first.
// JSON field names match the on-disk history format.
type CodeEntry struct {
	Code      string `json:"code"`
	Sender    string `json:"sender"`
	Provider  string `json:"provider"`
	Timestamp int64  `json:"timestamp"` // Unix milliseconds
	MessageID string `json:"message_id"`
}

// DedupKey derives the identifier that decides "already surfaced"
// for a (message, code) pair.
func (e CodeEntry) DedupKey() string {
	return DedupKey(e.MessageID, e.Code)
}

// DedupKey builds the dedup set member for a message id and code value.
func DedupKey(messageID, code string) string {
	return messageID + ":" + code
}

// Message is a fetched mail message. It lives only for the poll cycle
// that fetched it and is never persisted.
type Message struct {
	ID      string
	From    string
	Subject string
	Snippet string
	Body    string
}

// SearchableText joins the fields the extractor scans for a code.
func (m Message) SearchableText() string {
	return m.Subject + " " + m.Snippet + " " + m.Body
}
