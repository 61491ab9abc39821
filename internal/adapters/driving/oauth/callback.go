// Package oauth provides the loopback OAuth callback server and
// browser-opening utilities for the interactive login flow.
package oauth

import (
	"context"
	"fmt"
	"html"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/tanRdev/otpbar/internal/core/domain"
	"github.com/tanRdev/otpbar/internal/core/services"
)

// watchdogTimeout is how long the server stays alive without a
// completed redirect before shutting itself down.
const watchdogTimeout = 300 * time.Second

// Ensure CallbackServer satisfies the listener contract.
var _ services.RedirectListener = (*CallbackServer)(nil)

// NewListener is the factory handed to the auth orchestrator.
func NewListener(port int) services.RedirectListener {
	return NewCallbackServer(port)
}

// CallbackServer receives the single authorization redirect on a
// loopback port. Only a redirect carrying a code resolves the wait;
// provider errors and malformed callbacks render a failure page and
// leave the wait running until its timeout.
type CallbackServer struct {
	mu       sync.Mutex
	port     int
	codeChan chan string
	server   *http.Server
	listener net.Listener
	watchdog *time.Timer
}

// NewCallbackServer creates a callback server for the given port.
func NewCallbackServer(port int) *CallbackServer {
	return &CallbackServer{
		port:     port,
		codeChan: make(chan string, 1),
	}
}

// Start binds 127.0.0.1 on the configured port and begins serving.
// A bind failure is returned so the caller can try the next port.
func (s *CallbackServer) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	mux := http.NewServeMux()
	mux.HandleFunc("/callback", s.handleCallback)

	s.server = &http.Server{
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	addr := fmt.Sprintf("127.0.0.1:%d", s.port)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	s.listener = listener

	// Keep the resolved port when 0 was requested.
	if tcpAddr, ok := listener.Addr().(*net.TCPAddr); ok {
		s.port = tcpAddr.Port
	}

	go func() {
		_ = s.server.Serve(listener)
	}()

	// Stale listeners from abandoned attempts free their port on
	// their own.
	s.watchdog = time.AfterFunc(watchdogTimeout, func() { _ = s.Stop() })

	return nil
}

// handleCallback processes the redirect. The code is delivered at most
// once; a repeated redirect gets the success page but no redelivery.
func (s *CallbackServer) handleCallback(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	if errParam := r.URL.Query().Get("error"); errParam != "" {
		renderPage(w, "Authorization failed", html.EscapeString(errParam)+". You can close this window and try again.", false)
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		renderPage(w, "Authorization failed", "No authorization code received. You can close this window and try again.", false)
		return
	}

	select {
	case s.codeChan <- code:
	default:
	}

	renderPage(w, "Authorization successful", "You can close this window and return to the application.", true)

	// The single redirect has been served; release the port.
	go func() { _ = s.Stop() }()
}

// WaitForCode blocks until the redirect delivers a code or the timeout
// elapses.
func (s *CallbackServer) WaitForCode(timeout time.Duration) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	select {
	case code := <-s.codeChan:
		return code, nil
	case <-ctx.Done():
		return "", fmt.Errorf("waiting for authorization callback: %w", domain.ErrTimeout)
	}
}

// Stop shuts down the callback server. Safe to call more than once.
func (s *CallbackServer) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.watchdog != nil {
		s.watchdog.Stop()
	}
	if s.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server := s.server
		s.server = nil
		return server.Shutdown(ctx)
	}
	return nil
}

// Port returns the port the server is listening on.
func (s *CallbackServer) Port() int {
	return s.port
}

// RedirectURI returns the redirect URI for this callback server. The
// listener binds 127.0.0.1 but the advertised URI uses localhost, which
// Google accepts for loopback redirects without pre-registration.
func (s *CallbackServer) RedirectURI() string {
	return fmt.Sprintf("http://localhost:%d/callback", s.port)
}

func renderPage(w http.ResponseWriter, title, message string, autoClose bool) {
	script := ""
	if autoClose {
		script = "<script>setTimeout(function () { window.close(); }, 1500);</script>"
	}
	w.Header().Set("Content-Type", "text/html")
	fmt.Fprintf(w, `<!DOCTYPE html>
<html>
<head>
    <title>OTP Bar - Sign in</title>
    %s
    <style>
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
            display: flex;
            justify-content: center;
            align-items: center;
            height: 100vh;
            margin: 0;
            background: #1E1E2E;
        }
        .container {
            text-align: center;
            background: #2A2A3C;
            padding: 48px 64px;
            border-radius: 16px;
            border: 1px solid #3B3B4F;
            box-shadow: 0 4px 24px rgba(0,0,0,0.4);
        }
        h1 {
            color: #CDD6F4;
            margin: 0 0 8px 0;
            font-size: 24px;
            font-weight: 600;
        }
        p {
            color: #9399B2;
            margin: 0;
            font-size: 16px;
        }
    </style>
</head>
<body>
    <div class="container">
        <h1>%s</h1>
        <p>%s</p>
    </div>
</body>
</html>`, script, title, message)
}
