package imagestore

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// B2Config dibaca dari environment oleh registry.
type B2Config struct {
	KeyID       string
	Key         string
	BucketName  string
	CDNEndpoint string
}

// b2Store adalah klien tipis untuk native API Backblaze B2
// (authorize_account, get_upload_url, upload_file).
type b2Store struct {
	cfg    B2Config
	client *http.Client
}

func NewB2Store(cfg B2Config) Service {
	return &b2Store{
		cfg:    cfg,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

func (s *b2Store) Compress(data []byte) ([]byte, error) {
	return Compress(data)
}

func (s *b2Store) URLFor(path string) string {
	return fmt.Sprintf("%sfile/%s/%s", s.cfg.CDNEndpoint, s.cfg.BucketName, path)
}

type b2AuthResponse struct {
	AuthorizationToken string `json:"authorizationToken"`
	APIURL             string `json:"apiUrl"`
	Allowed            struct {
		BucketID string `json:"bucketId"`
	} `json:"allowed"`
}

type b2UploadURLResponse struct {
	UploadURL          string `json:"uploadUrl"`
	AuthorizationToken string `json:"authorizationToken"`
}

func (s *b2Store) Upload(ctx context.Context, data []byte, path string) error {
	auth, err := s.authorize(ctx)
	if err != nil {
		return err
	}

	uploadURL, err := s.uploadURL(ctx, auth)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, uploadURL.UploadURL, strings.NewReader(string(data)))
	if err != nil {
		return err
	}

	sum := sha1.Sum(data)
	req.Header.Set("Authorization", uploadURL.AuthorizationToken)
	req.Header.Set("X-Bz-File-Name", path)
	req.Header.Set("Content-Type", "image/jpeg")
	req.Header.Set("X-Bz-Content-Sha1", hex.EncodeToString(sum[:]))

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("b2 upload failed: status %d", resp.StatusCode)
	}
	return nil
}

func (s *b2Store) authorize(ctx context.Context) (*b2AuthResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		"https://api.backblazeb2.com/b2api/v2/b2_authorize_account", nil)
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(s.cfg.KeyID, s.cfg.Key)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("b2 authorize failed: status %d", resp.StatusCode)
	}

	var auth b2AuthResponse
	if err := json.NewDecoder(resp.Body).Decode(&auth); err != nil {
		return nil, err
	}
	return &auth, nil
}

func (s *b2Store) uploadURL(ctx context.Context, auth *b2AuthResponse) (*b2UploadURLResponse, error) {
	body := fmt.Sprintf(`{"bucketId":%q}`, auth.Allowed.BucketID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		auth.APIURL+"/b2api/v2/b2_get_upload_url", strings.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", auth.AuthorizationToken)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("b2 get upload url failed: status %d", resp.StatusCode)
	}

	var upload b2UploadURLResponse
	if err := json.NewDecoder(resp.Body).Decode(&upload); err != nil {
		return nil, err
	}
	return &upload, nil
}
