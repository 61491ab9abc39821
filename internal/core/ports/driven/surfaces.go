package driven

// Clipboard is the OS clipboard, reduced to plain text writes.
// Writing the empty string clears it.
type Clipboard interface {
	WriteText(text string) error
}

// Notifier shows a desktop notification. Bodies must never contain
// code values; callers pass only display-safe text.
type Notifier interface {
	Notify(title, body string) error
}

// URLOpener opens a URL in the host's default browser.
type URLOpener interface {
	OpenURL(url string) error
}
