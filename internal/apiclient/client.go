package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/nfrund/ipadmin/internal/domain"
	"github.com/tidwall/gjson"
)

// Client talks to the practice's REST API. It satisfies every repository
// interface in the domain package.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client, mostly for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New creates a client for the API rooted at baseURL.
func New(baseURL string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var (
	_ domain.Authenticator      = (*Client)(nil)
	_ domain.PatientRepository  = (*Client)(nil)
	_ domain.FeedbackRepository = (*Client)(nil)
	_ domain.MeasureCatalog     = (*Client)(nil)
	_ domain.Inviter            = (*Client)(nil)
)

type loginRequest struct {
	UserName string `json:"userName"`
	Password string `json:"password"`
}

// Login checks credentials against the user profile service. Only a 200
// response counts as success.
func (c *Client) Login(ctx context.Context, userName, password string) error {
	status, _, err := c.do(ctx, http.MethodPut, "/api/userProfiles/login", loginRequest{UserName: userName, Password: password})
	if err != nil {
		return fmt.Errorf("login request: %w", err)
	}
	if status != http.StatusOK {
		return domain.ErrInvalidCredentials
	}
	return nil
}

// PatientsByLegacyID searches patients by their legacy identifier.
func (c *Client) PatientsByLegacyID(ctx context.Context, legacyID string) ([]domain.Patient, error) {
	status, body, err := c.do(ctx, http.MethodGet, "/api/patients/byLegacyPatientId/"+url.PathEscape(legacyID), nil)
	if err != nil {
		return nil, fmt.Errorf("fetch patients: %w", err)
	}
	if !ok(status) {
		return nil, &APIError{Op: "Failed to fetch patients", StatusCode: status}
	}
	return decodePatients(body)
}

// FeedbackByLegacyID loads a patient's measures with their feedback rows.
func (c *Client) FeedbackByLegacyID(ctx context.Context, legacyID string) (*domain.PatientData, error) {
	status, body, err := c.do(ctx, http.MethodGet, "/api/patientFeedback/byLegacyPatientId/"+url.PathEscape(legacyID), nil)
	if err != nil {
		return nil, fmt.Errorf("fetch patient feedback: %w", err)
	}
	if !ok(status) {
		return nil, &APIError{Op: "Failed to fetch patient data", StatusCode: status, WithStatus: true}
	}

	res := gjson.ParseBytes(body)
	if !res.IsObject() {
		return nil, domain.ErrEmptyResponse
	}

	var data domain.PatientData
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("decode patient feedback: %w", err)
	}
	return &data, nil
}

// CreatePatient adds a new patient record.
func (c *Client) CreatePatient(ctx context.Context, in domain.PatientInput) (*domain.Patient, error) {
	status, body, err := c.do(ctx, http.MethodPost, "/api/patients", in)
	if err != nil {
		return nil, fmt.Errorf("create patient: %w", err)
	}
	if !ok(status) {
		return nil, &APIError{Op: "Failed to add patient", StatusCode: status}
	}

	var p domain.Patient
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, fmt.Errorf("decode created patient: %w", err)
	}
	return &p, nil
}

// UpdatePatient replaces a patient record. The API answers with either the
// updated object or an array holding it; both are returned as a slice.
func (c *Client) UpdatePatient(ctx context.Context, patientID int, in domain.PatientInput) ([]domain.Patient, error) {
	status, body, err := c.do(ctx, http.MethodPut, "/api/patients/"+strconv.Itoa(patientID), in)
	if err != nil {
		return nil, fmt.Errorf("update patient: %w", err)
	}
	if !ok(status) {
		return nil, &APIError{Op: "Failed to update patient", StatusCode: status}
	}
	return decodePatients(body)
}

// ListMeasures returns the full measure catalog.
func (c *Client) ListMeasures(ctx context.Context) (domain.Catalog, error) {
	status, body, err := c.do(ctx, http.MethodGet, "/api/measures/All", nil)
	if err != nil {
		return nil, fmt.Errorf("fetch measures: %w", err)
	}
	if !ok(status) {
		return nil, &APIError{Op: "Failed to fetch measures", StatusCode: status}
	}

	var catalog domain.Catalog
	if err := json.Unmarshal(body, &catalog); err != nil {
		return nil, fmt.Errorf("decode measures: %w", err)
	}
	return catalog, nil
}

// SendInvite asks the API to email the patient an invitation.
func (c *Client) SendInvite(ctx context.Context, patientID int) error {
	status, _, err := c.do(ctx, http.MethodPost, "/api/userProfiles/invite/"+strconv.Itoa(patientID), nil)
	if err != nil {
		return fmt.Errorf("send invite: %w", err)
	}
	if !ok(status) {
		return &APIError{Op: "Failed to send invitation", StatusCode: status}
	}
	return nil
}

// do performs a JSON request and returns the status code and body.
func (c *Client) do(ctx context.Context, method, path string, payload any) (int, []byte, error) {
	var reqBody io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return 0, nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.WarnContext(ctx, "api request failed", "method", method, "path", path, "error", err)
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("failed to read response body: %w", err)
	}

	c.logger.DebugContext(ctx, "api request",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)
	return resp.StatusCode, body, nil
}

func ok(status int) bool {
	return status >= 200 && status < 300
}

// decodePatients accepts an array of patients, a single patient object, or
// an empty body.
func decodePatients(body []byte) ([]domain.Patient, error) {
	res := gjson.ParseBytes(body)
	switch {
	case res.IsArray():
		var patients []domain.Patient
		if err := json.Unmarshal(body, &patients); err != nil {
			return nil, fmt.Errorf("decode patients: %w", err)
		}
		return patients, nil
	case res.IsObject():
		var p domain.Patient
		if err := json.Unmarshal(body, &p); err != nil {
			return nil, fmt.Errorf("decode patient: %w", err)
		}
		return []domain.Patient{p}, nil
	default:
		return nil, nil
	}
}
