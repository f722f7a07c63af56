package middleware

import (
	"bytes"
	"compress/gzip"
	"io"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/go-resty/resty/v2"
)

var gzipMagic = []byte{0x1f, 0x8b}

// DecompressMiddleware inflates brotli and gzip bodies that the transport
// left encoded because Accept-Encoding was set explicitly.
func DecompressMiddleware(c *resty.Client, resp *resty.Response) error {
	encoding := strings.ToLower(strings.TrimSpace(resp.Header().Get("Content-Encoding")))
	if encoding == "" || len(resp.Body()) == 0 {
		return nil
	}

	var reader io.ReadCloser
	var err error

	switch encoding {
	case "br":
		reader = io.NopCloser(brotli.NewReader(bytes.NewReader(resp.Body())))
	case "gzip":
		// resty may already have inflated gzip bodies
		if !bytes.HasPrefix(resp.Body(), gzipMagic) {
			return nil
		}
		reader, err = gzip.NewReader(bytes.NewReader(resp.Body()))
		if err != nil {
			return err
		}
		defer reader.Close()
	default:
		return nil
	}

	decompressed, err := io.ReadAll(reader)
	if err != nil {
		return err
	}

	resp.SetBody(decompressed)
	resp.Header().Del("Content-Encoding")
	return nil
}
