// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/desertthunder/lessonctl/internal/services"
	"golang.org/x/oauth2"
)

// FakeAuth is a test double for [services.Auth].
//
// Session is returned by GetSession; the error fields force failures per
// operation. Call counters allow asserting the once-per-activation contract
// of the session gate.
type FakeAuth struct {
	Session *services.Session

	GetSessionErr error
	LinkErr       error
	VerifyErr     error
	ProviderErr   error
	SignOutErr    error

	GetSessionCalls int
	LinkedEmails    []string
	SignedOut       bool
}

func (f *FakeAuth) GetSession(ctx context.Context) (*services.Session, error) {
	f.GetSessionCalls++
	if f.GetSessionErr != nil {
		return nil, f.GetSessionErr
	}
	return f.Session, nil
}

func (f *FakeAuth) SignInWithLink(ctx context.Context, email string) error {
	if f.LinkErr != nil {
		return f.LinkErr
	}
	f.LinkedEmails = append(f.LinkedEmails, email)
	return nil
}

func (f *FakeAuth) VerifyLinkCode(ctx context.Context, email, code string) (*services.Session, error) {
	if f.VerifyErr != nil {
		return nil, f.VerifyErr
	}
	f.Session = &services.Session{Email: email, AccessToken: "token-" + code}
	return f.Session, nil
}

func (f *FakeAuth) SignInWithProvider(ctx context.Context, provider string) (*services.Session, error) {
	if f.ProviderErr != nil {
		return nil, f.ProviderErr
	}
	f.Session = &services.Session{Email: provider + "@example.com", AccessToken: "token-" + provider}
	return f.Session, nil
}

func (f *FakeAuth) SignOut(ctx context.Context) error {
	if f.SignOutErr != nil {
		return f.SignOutErr
	}
	f.Session = nil
	f.SignedOut = true
	return nil
}

func (f *FakeAuth) AccessToken() string {
	if f.Session == nil {
		return ""
	}
	return f.Session.AccessToken
}

// UploadCall records one [services.Storage] upload.
type UploadCall struct {
	Path      string
	Size      int
	Overwrite bool
}

// FakeStorage is a test double for [services.Storage].
//
// Safe for concurrent use since step image uploads are issued in parallel.
// FailSubstring forces an error for any path containing it.
type FakeStorage struct {
	mu            sync.Mutex
	Uploads       []UploadCall
	FailSubstring string
	Err           error
}

func (f *FakeStorage) Upload(ctx context.Context, path string, data []byte, overwrite bool) error {
	if f.FailSubstring != "" && strings.Contains(path, f.FailSubstring) {
		if f.Err != nil {
			return f.Err
		}
		return errors.New("upload failed: " + path)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.Uploads = append(f.Uploads, UploadCall{Path: path, Size: len(data), Overwrite: overwrite})
	return nil
}

// Paths returns the uploaded paths in call order.
func (f *FakeStorage) Paths() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	paths := make([]string, len(f.Uploads))
	for i, call := range f.Uploads {
		paths[i] = call.Path
	}
	return paths
}

// InsertCall records one [services.Table] insert.
type InsertCall struct {
	Table  string
	Record any
}

// FakeTable is a test double for [services.Table].
type FakeTable struct {
	Inserts []InsertCall
	Err     error
}

func (f *FakeTable) Insert(ctx context.Context, table string, record any) error {
	if f.Err != nil {
		return f.Err
	}
	f.Inserts = append(f.Inserts, InsertCall{Table: table, Record: record})
	return nil
}

// FakeAuthorizer is a test double for [services.ProviderAuthorizer].
type FakeAuthorizer struct {
	Token *oauth2.Token
	Err   error
}

func (f *FakeAuthorizer) Authorize(ctx context.Context, config *oauth2.Config, state string) (*oauth2.Token, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	return f.Token, nil
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

func MustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return wd
}

func MustChdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory to %s: %v", dir, err)
	}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
