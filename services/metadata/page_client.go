package metadata

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"

	"trailerfinder/utils"
)

const maxPageBytes = 4 << 20

var utf8BOM = []byte("\xef\xbb\xbf")

var (
	errNotJSON        = errors.New("page body is not json")
	errIMDbIDNotFound = errors.New("imdb id not present in page")
)

// Viaplay content pages are HAL documents. Only the first block is inspected:
// _embedded["viaplay:blocks"][0]._embedded["viaplay:product"].content.imdb.id

type viaplayPage struct {
	Embedded struct {
		Blocks []json.RawMessage `json:"viaplay:blocks"`
	} `json:"_embedded"`
}

type viaplayBlock struct {
	Embedded struct {
		Product *struct {
			Content struct {
				IMDb *struct {
					ID imdbID `json:"id"`
				} `json:"imdb"`
			} `json:"content"`
		} `json:"viaplay:product"`
	} `json:"_embedded"`
}

// imdbID accepts the id as a JSON string or a bare number.
type imdbID string

func (id *imdbID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*id = imdbID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("imdb id must be a string or number: %s", data)
	}
	*id = imdbID(n.String())
	return nil
}

type pageClient struct {
	userAgent string
	httpc     *http.Client
}

func newPageClient(userAgent string, httpc *http.Client) *pageClient {
	if httpc == nil {
		httpc = &http.Client{Timeout: 15 * time.Second}
	}
	return &pageClient{userAgent: userAgent, httpc: httpc}
}

// fetchIMDbID downloads a streaming-service page and extracts the IMDb id
// embedded in its product metadata.
func (c *pageClient) fetchIMDbID(ctx context.Context, pageURL string) (string, error) {
	target, err := utils.NormalizePageURL(pageURL)
	if err != nil {
		return "", fmt.Errorf("invalid page url: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return "", fmt.Errorf("build page request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	log.Printf("[page] GET %s", redactURL(target))
	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", fmt.Errorf("page request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("page request failed: %s", resp.Status)
	}

	body, err := readJSONBody(resp.Body)
	if err != nil {
		return "", err
	}
	return extractIMDbID(body)
}

// readJSONBody skips a leading UTF-8 BOM and sniffs the start of r. Bodies
// that do not look like JSON are rejected before the rest is read.
func readJSONBody(r io.Reader) ([]byte, error) {
	br := bufio.NewReader(io.LimitReader(r, maxPageBytes))
	if lead, _ := br.Peek(len(utf8BOM)); bytes.Equal(lead, utf8BOM) {
		br.Discard(len(utf8BOM))
	}

	var head bytes.Buffer
	mtype, err := mimetype.DetectReader(io.TeeReader(br, &head))
	if err != nil {
		return nil, fmt.Errorf("read page body: %w", err)
	}
	if !isJSON(mtype) {
		return nil, fmt.Errorf("%w: detected %s", errNotJSON, mtype.String())
	}

	body, err := io.ReadAll(io.MultiReader(&head, br))
	if err != nil {
		return nil, fmt.Errorf("read page body: %w", err)
	}
	return body, nil
}

func extractIMDbID(body []byte) (string, error) {
	var page viaplayPage
	if err := json.Unmarshal(body, &page); err != nil {
		return "", fmt.Errorf("decode page: %w", err)
	}
	if len(page.Embedded.Blocks) == 0 {
		return "", errIMDbIDNotFound
	}

	var block viaplayBlock
	if err := json.Unmarshal(page.Embedded.Blocks[0], &block); err != nil {
		return "", fmt.Errorf("decode first block: %w", err)
	}
	product := block.Embedded.Product
	if product == nil || product.Content.IMDb == nil {
		return "", errIMDbIDNotFound
	}
	id := strings.TrimSpace(string(product.Content.IMDb.ID))
	if id == "" {
		return "", errIMDbIDNotFound
	}
	return id, nil
}

// isJSON reports whether mtype is JSON or a JSON subtype. The response
// Content-Type header is not consulted.
func isJSON(mtype *mimetype.MIME) bool {
	for m := mtype; m != nil; m = m.Parent() {
		if m.Is("application/json") {
			return true
		}
	}
	return false
}

func redactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	return u.Redacted()
}
