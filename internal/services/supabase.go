// Supabase-compatible implementations of [Auth], [Storage], and [Table]
//
// Auth speaks the GoTrue REST API, Storage the object API, Table the
// PostgREST API. All three authenticate with the project anon key plus the
// session's bearer token when one is active.
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/desertthunder/lessonctl/internal/shared"
	"golang.org/x/oauth2"
)

const (
	authPathOTP       = "/auth/v1/otp"
	authPathVerify    = "/auth/v1/verify"
	authPathUser      = "/auth/v1/user"
	authPathLogout    = "/auth/v1/logout"
	authPathAuthorize = "/auth/v1/authorize"
	authPathToken     = "/auth/v1/token"

	storagePathPrefix = "/storage/v1/object"
	tablePathPrefix   = "/rest/v1"
)

// authErrorBody covers the error shapes GoTrue responds with.
type authErrorBody struct {
	Msg              string `json:"msg"`
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
	Message          string `json:"message"`
}

func (b authErrorBody) text() string {
	for _, s := range []string{b.Msg, b.ErrorDescription, b.Message, b.Error} {
		if s != "" {
			return s
		}
	}
	return ""
}

func decodeAPIError(resp *http.Response, service string) error {
	var body authErrorBody
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil {
		if text := body.text(); text != "" {
			return fmt.Errorf("%s error (status %d): %s", service, resp.StatusCode, text)
		}
	}
	return fmt.Errorf("%s error: status %d", service, resp.StatusCode)
}

// SupabaseAuth implements [Auth] against the GoTrue REST API.
//
// It also implements [TokenProvider] so the storage and table clients reuse
// the active session's bearer token.
type SupabaseAuth struct {
	baseURL      string
	anonKey      string
	httpClient   *http.Client
	clientID     string
	clientSecret string
	redirectURI  string
	authorizer   ProviderAuthorizer
	session      *Session
}

// NewSupabaseAuth creates an auth client for the given project URL and anon key.
func NewSupabaseAuth(baseURL, anonKey string, client *http.Client) *SupabaseAuth {
	if client == nil {
		client = http.DefaultClient
	}

	return &SupabaseAuth{
		baseURL:    strings.TrimRight(baseURL, "/"),
		anonKey:    anonKey,
		httpClient: client,
	}
}

// SetProviderFlow configures OAuth provider sign-in with app credentials and
// the collaborator that runs the browser/loopback authorization dance.
func (a *SupabaseAuth) SetProviderFlow(clientID, clientSecret, redirectURI string, authorizer ProviderAuthorizer) {
	a.clientID = clientID
	a.clientSecret = clientSecret
	a.redirectURI = redirectURI
	a.authorizer = authorizer
}

// UseSession primes the client with a session restored from the local store.
func (a *SupabaseAuth) UseSession(session *Session) {
	a.session = session
}

// AccessToken returns the active session's bearer token, or empty when signed out.
func (a *SupabaseAuth) AccessToken() string {
	if a.session == nil {
		return ""
	}
	return a.session.AccessToken
}

func (a *SupabaseAuth) newRequest(ctx context.Context, method, path string, body any, bearer string) (*http.Request, error) {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", a.anonKey)
	if bearer == "" {
		bearer = a.anonKey
	}
	req.Header.Set("Authorization", "Bearer "+bearer)

	return req, nil
}

// GetSession validates the primed session against the auth service.
//
// Returns (nil, nil) when no session is primed or the backend rejects the
// token; absence is an expected outcome, not a fault.
func (a *SupabaseAuth) GetSession(ctx context.Context) (*Session, error) {
	if a.session == nil || a.session.AccessToken == "" {
		return nil, nil
	}

	req, err := a.newRequest(ctx, http.MethodGet, authPathUser, nil, a.session.AccessToken)
	if err != nil {
		return nil, err
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		a.session = nil
		return nil, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, decodeAPIError(resp, "auth")
	}

	var user struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("failed to decode user: %w", err)
	}

	a.session.UserID = user.ID
	a.session.Email = user.Email
	return a.session, nil
}

// SignInWithLink sends a magic sign-in link to the given email address.
func (a *SupabaseAuth) SignInWithLink(ctx context.Context, email string) error {
	payload := map[string]any{"email": email, "create_user": true}

	req, err := a.newRequest(ctx, http.MethodPost, authPathOTP, payload, "")
	if err != nil {
		return err
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeAPIError(resp, "auth")
	}

	return nil
}

// tokenResponse is the GoTrue grant response shape.
type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
	User         struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	} `json:"user"`
}

func (t tokenResponse) session() *Session {
	session := &Session{
		UserID:       t.User.ID,
		Email:        t.User.Email,
		AccessToken:  t.AccessToken,
		RefreshToken: t.RefreshToken,
	}
	if t.ExpiresIn > 0 {
		session.ExpiresAt = time.Now().Add(time.Duration(t.ExpiresIn) * time.Second)
	}
	return session
}

// VerifyLinkCode exchanges the emailed one-time code for a session.
func (a *SupabaseAuth) VerifyLinkCode(ctx context.Context, email, code string) (*Session, error) {
	payload := map[string]any{"type": "magiclink", "email": email, "token": code}

	req, err := a.newRequest(ctx, http.MethodPost, authPathVerify, payload, "")
	if err != nil {
		return nil, err
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, decodeAPIError(resp, "auth")
	}

	var grant tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&grant); err != nil {
		return nil, fmt.Errorf("failed to decode token response: %w", err)
	}

	a.session = grant.session()
	return a.session, nil
}

// SignInWithProvider runs the OAuth flow for the named provider (github, google).
//
// The configured [ProviderAuthorizer] opens the authorization URL and
// collects the exchanged token; the resulting session becomes active.
func (a *SupabaseAuth) SignInWithProvider(ctx context.Context, provider string) (*Session, error) {
	if a.authorizer == nil {
		return nil, fmt.Errorf("provider sign-in not configured")
	}

	config := &oauth2.Config{
		ClientID:     a.clientID,
		ClientSecret: a.clientSecret,
		RedirectURL:  a.redirectURI,
		Endpoint: oauth2.Endpoint{
			AuthURL:  a.baseURL + authPathAuthorize + "?provider=" + url.QueryEscape(provider),
			TokenURL: a.baseURL + authPathToken,
		},
	}

	state := shared.GenerateID()
	token, err := a.authorizer.Authorize(ctx, config, state)
	if err != nil {
		return nil, fmt.Errorf("provider authorization failed: %w", err)
	}

	a.session = &Session{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		ExpiresAt:    token.Expiry,
	}

	// Resolve the account the provider signed in
	session, err := a.GetSession(ctx)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, fmt.Errorf("provider sign-in produced no usable session")
	}

	return session, nil
}

// SignOut revokes the active session.
func (a *SupabaseAuth) SignOut(ctx context.Context) error {
	if a.session == nil {
		return nil
	}

	req, err := a.newRequest(ctx, http.MethodPost, authPathLogout, nil, a.session.AccessToken)
	if err != nil {
		return err
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	// An already-expired token still counts as signed out
	if resp.StatusCode >= 300 && resp.StatusCode != http.StatusUnauthorized {
		return decodeAPIError(resp, "auth")
	}

	a.session = nil
	return nil
}

// SupabaseStorage implements [Storage] against the object API, rooted at a fixed bucket.
type SupabaseStorage struct {
	baseURL    string
	anonKey    string
	bucket     string
	httpClient *http.Client
	tokens     TokenProvider
}

// NewSupabaseStorage creates a storage client for the given project URL, anon key, and bucket.
func NewSupabaseStorage(baseURL, anonKey, bucket string, client *http.Client, tokens TokenProvider) *SupabaseStorage {
	if client == nil {
		client = http.DefaultClient
	}

	return &SupabaseStorage{
		baseURL:    strings.TrimRight(baseURL, "/"),
		anonKey:    anonKey,
		bucket:     bucket,
		httpClient: client,
		tokens:     tokens,
	}
}

// escapePath escapes each segment of a POSIX-style object path.
func escapePath(path string) string {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	for i, segment := range segments {
		segments[i] = url.PathEscape(segment)
	}
	return strings.Join(segments, "/")
}

// Upload writes data to path inside the bucket.
//
// Sets Cache-Control to one hour, matching how the lesson images are served.
func (s *SupabaseStorage) Upload(ctx context.Context, path string, data []byte, overwrite bool) error {
	endpoint := fmt.Sprintf("%s%s/%s/%s", s.baseURL, storagePathPrefix, s.bucket, escapePath(path))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	bearer := s.anonKey
	if s.tokens != nil && s.tokens.AccessToken() != "" {
		bearer = s.tokens.AccessToken()
	}

	req.Header.Set("apikey", s.anonKey)
	req.Header.Set("Authorization", "Bearer "+bearer)
	req.Header.Set("Content-Type", "image/png")
	req.Header.Set("Cache-Control", "3600")
	req.Header.Set("x-upsert", strconv.FormatBool(overwrite))

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeAPIError(resp, "storage")
	}

	return nil
}

// SupabaseTable implements [Table] against the PostgREST API.
type SupabaseTable struct {
	baseURL    string
	anonKey    string
	httpClient *http.Client
	tokens     TokenProvider
}

// NewSupabaseTable creates a table client for the given project URL and anon key.
func NewSupabaseTable(baseURL, anonKey string, client *http.Client, tokens TokenProvider) *SupabaseTable {
	if client == nil {
		client = http.DefaultClient
	}

	return &SupabaseTable{
		baseURL:    strings.TrimRight(baseURL, "/"),
		anonKey:    anonKey,
		httpClient: client,
		tokens:     tokens,
	}
}

// Insert writes one structured record into the named table.
func (t *SupabaseTable) Insert(ctx context.Context, table string, record any) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	endpoint := fmt.Sprintf("%s%s/%s", t.baseURL, tablePathPrefix, url.PathEscape(table))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	bearer := t.anonKey
	if t.tokens != nil && t.tokens.AccessToken() != "" {
		bearer = t.tokens.AccessToken()
	}

	req.Header.Set("apikey", t.anonKey)
	req.Header.Set("Authorization", "Bearer "+bearer)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "return=minimal")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeAPIError(resp, "table")
	}

	return nil
}
