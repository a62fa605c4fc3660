package mcpserver

import (
	"container/list"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/erraggy/hsrgen/parser"
)

// inlineSourceName is the source path reported for inline documents.
const inlineSourceName = "inline.yaml"

// documentInput is the contract argument shared by every tool. Exactly one of
// File or Content must be set.
type documentInput struct {
	File    string `json:"file,omitempty"    jsonschema:"Path to an OpenAPI 3 document on disk"`
	Content string `json:"content,omitempty" jsonschema:"Inline OpenAPI 3 document content (JSON or YAML)"`
}

// documentCache is a size-bounded LRU of parsed documents. Entries past their
// TTL are dropped when next looked up.
type documentCache struct {
	mu      sync.Mutex
	order   *list.List // front is most recently used
	entries map[string]*list.Element
}

type cachedDocument struct {
	key     string
	result  *parser.ParseResult
	expires time.Time
}

var docCache = newDocumentCache()

func newDocumentCache() *documentCache {
	return &documentCache{order: list.New(), entries: make(map[string]*list.Element)}
}

func (c *documentCache) get(key string, now time.Time) *parser.ParseResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	el, ok := c.entries[key]
	if !ok {
		return nil
	}
	doc := el.Value.(*cachedDocument)
	if now.After(doc.expires) {
		c.order.Remove(el)
		delete(c.entries, key)
		return nil
	}
	c.order.MoveToFront(el)
	return doc.result
}

func (c *documentCache) put(key string, result *parser.ParseResult, now time.Time, ttl time.Duration, capacity int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.entries[key]; ok {
		el.Value = &cachedDocument{key: key, result: result, expires: now.Add(ttl)}
		c.order.MoveToFront(el)
		return
	}
	c.entries[key] = c.order.PushFront(&cachedDocument{key: key, result: result, expires: now.Add(ttl)})
	for c.order.Len() > capacity {
		oldest := c.order.Back()
		c.order.Remove(oldest)
		delete(c.entries, oldest.Value.(*cachedDocument).key)
	}
}

func (c *documentCache) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.order.Init()
	clear(c.entries)
}

func (c *documentCache) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// cacheKey identifies the input's bytes: a file by absolute path, size and
// modification time, inline content by its SHA-256. It returns "" for a file
// that cannot be stat'ed; the parse then reports the real error.
func (d documentInput) cacheKey() string {
	if d.File == "" {
		sum := sha256.Sum256([]byte(d.Content))
		return "content:" + hex.EncodeToString(sum[:])
	}
	abs, err := filepath.Abs(d.File)
	if err != nil {
		return ""
	}
	info, err := os.Stat(abs)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("file:%s:%d:%d", abs, info.Size(), info.ModTime().UnixNano())
}

// resolve parses the input, consulting the session cache when it is enabled.
func (d documentInput) resolve() (*parser.ParseResult, error) {
	if n := countSet(d.File, d.Content); n != 1 {
		return nil, fmt.Errorf("exactly one of file or content must be provided (got %d)", n)
	}
	if size := int64(len(d.Content)); size > cfg.MaxInlineSize {
		return nil, fmt.Errorf("inline content is %d bytes, over the %d byte limit; pass a file or raise HSRGEN_MAX_INLINE_SIZE",
			size, cfg.MaxInlineSize)
	}

	var key string
	if cfg.CacheEnabled {
		key = d.cacheKey()
	}
	now := time.Now()
	if key != "" {
		if result := docCache.get(key, now); result != nil {
			return result, nil
		}
	}

	var result *parser.ParseResult
	var err error
	if d.File != "" {
		result, err = parser.ParseWithOptions(parser.WithFilePath(d.File))
	} else {
		result, err = parser.ParseWithOptions(
			parser.WithReader(strings.NewReader(d.Content)),
			parser.WithSourceName(inlineSourceName),
		)
	}
	if err != nil {
		return nil, err
	}
	if key != "" {
		docCache.put(key, result, now, cfg.CacheTTL, cfg.CacheMaxSize)
	}
	return result, nil
}

func countSet(values ...string) int {
	n := 0
	for _, v := range values {
		if v != "" {
			n++
		}
	}
	return n
}
