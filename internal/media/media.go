// Package media signs direct browser uploads and proxies server-side image
// uploads to Cloudinary.
package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"github.com/iliyamo/azulu-crm/internal/config"
)

// ErrNotConfigured is returned by every operation when Cloudinary
// credentials are missing.
var ErrNotConfigured = errors.New("media: cloudinary is not configured")

// Signature lets a browser upload straight to Cloudinary.
type Signature struct {
	Signature string `json:"signature"`
	Timestamp int64  `json:"timestamp"`
	CloudName string `json:"cloudName"`
	APIKey    string `json:"apiKey"`
}

// Image describes a stored upload.
type Image struct {
	URL      string `json:"url"`
	PublicID string `json:"public_id"`
	Format   string `json:"format"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
}

// Uploader is the media collaborator as seen by the HTTP layer.
type Uploader interface {
	Sign() (*Signature, error)
	Upload(ctx context.Context, file io.Reader, folder string) (*Image, error)
}

// Client implements Uploader on top of cloudinary-go.
type Client struct {
	cld *cloudinary.Cloudinary
	cfg config.CloudinaryConfig
	now func() time.Time
}

// New builds a Client.  With incomplete credentials it returns a client
// whose operations all fail with ErrNotConfigured, so the routes can answer
// 503 instead of the process refusing to start.
func New(cfg config.CloudinaryConfig) (*Client, error) {
	c := &Client{cfg: cfg, now: time.Now}
	if !cfg.Enabled() {
		return c, nil
	}
	cld, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("cloudinary: %w", err)
	}
	cld.Config.URL.Secure = true
	c.cld = cld
	return c, nil
}

// Sign returns an upload signature over the current unix timestamp.
func (c *Client) Sign() (*Signature, error) {
	if !c.cfg.Enabled() {
		return nil, ErrNotConfigured
	}
	ts := c.now().Unix()
	sig, err := api.SignParameters(url.Values{"timestamp": []string{strconv.FormatInt(ts, 10)}}, c.cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("sign upload: %w", err)
	}
	return &Signature{
		Signature: sig,
		Timestamp: ts,
		CloudName: c.cfg.CloudName,
		APIKey:    c.cfg.APIKey,
	}, nil
}

// Upload stores file as an image under folder, or under the configured
// default folder when folder is empty.
func (c *Client) Upload(ctx context.Context, file io.Reader, folder string) (*Image, error) {
	if c.cld == nil {
		return nil, ErrNotConfigured
	}
	if folder == "" {
		folder = c.cfg.UploadFolder
	}
	res, err := c.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:       folder,
		ResourceType: "image",
	})
	if err != nil {
		return nil, fmt.Errorf("cloudinary upload: %w", err)
	}
	// API-level failures come back in the result, not as err.
	if res.Error.Message != "" {
		return nil, fmt.Errorf("cloudinary upload: %s", res.Error.Message)
	}
	return &Image{
		URL:      res.SecureURL,
		PublicID: res.PublicID,
		Format:   res.Format,
		Width:    res.Width,
		Height:   res.Height,
	}, nil
}
