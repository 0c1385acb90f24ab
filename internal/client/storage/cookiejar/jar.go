// Package cookiejar implements the edge-visible token sink as a
// Netscape-format cookie file. The file can be consumed by tooling that
// intercepts requests outside the client process (curl -b, a reverse
// proxy sidecar) and therefore cannot read the durable BoltDB store.
package cookiejar

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/iudanet/procure/internal/client/storage"
)

const fileHeader = "# Netscape HTTP Cookie File"

// Jar represents a file-backed cookie store
type Jar struct {
	path   string
	domain string
	now    func() time.Time
}

// Compile-time check that Jar implements EdgeStorage
var _ storage.EdgeStorage = (*Jar)(nil)

// New creates a cookie jar backed by the file at path.
// An empty path produces a no-op jar: writes succeed silently and reads
// report absence, so code running without filesystem access keeps working.
func New(path, domain string) *Jar {
	return &Jar{
		path:   path,
		domain: domain,
		now:    time.Now,
	}
}

// SetCookie writes a cookie with the given time-to-live
func (j *Jar) SetCookie(name, value string, ttl time.Duration) error {
	if j.path == "" {
		return nil
	}

	cookies, err := j.load()
	if err != nil {
		return err
	}

	cookies[name] = cookieLine{
		name:    name,
		value:   value,
		expires: j.now().Add(ttl).Unix(),
	}

	return j.save(cookies)
}

// Cookie reads a cookie value
func (j *Jar) Cookie(name string) (string, error) {
	if j.path == "" {
		return "", storage.ErrTokenNotFound
	}

	cookies, err := j.load()
	if err != nil {
		return "", err
	}

	c, ok := cookies[name]
	if !ok {
		return "", storage.ErrTokenNotFound
	}

	// Истёкшая cookie эквивалентна отсутствующей
	if c.expires <= j.now().Unix() {
		return "", storage.ErrTokenNotFound
	}

	return c.value, nil
}

// ExpireCookie expires a cookie immediately
func (j *Jar) ExpireCookie(name string) error {
	if j.path == "" {
		return nil
	}

	cookies, err := j.load()
	if err != nil {
		return err
	}

	c, ok := cookies[name]
	if !ok {
		return nil
	}

	// Записываем cookie с истекшим сроком вместо удаления строки,
	// чтобы потребители файла увидели явное истечение
	c.value = ""
	c.expires = 1
	cookies[name] = c

	return j.save(cookies)
}

type cookieLine struct {
	name    string
	value   string
	expires int64
}

// load parses the cookie file; a missing file is an empty jar
func (j *Jar) load() (map[string]cookieLine, error) {
	cookies := make(map[string]cookieLine)

	f, err := os.Open(j.path)
	if err != nil {
		if os.IsNotExist(err) {
			return cookies, nil
		}
		return nil, fmt.Errorf("failed to open cookie file: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// domain \t includeSubdomains \t path \t secure \t expires \t name \t value
		fields := strings.Split(line, "\t")
		if len(fields) != 7 {
			continue
		}

		expires, err := strconv.ParseInt(fields[4], 10, 64)
		if err != nil {
			continue
		}

		cookies[fields[5]] = cookieLine{
			name:    fields[5],
			value:   fields[6],
			expires: expires,
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read cookie file: %w", err)
	}

	return cookies, nil
}

// save rewrites the cookie file atomically via a temp file rename
func (j *Jar) save(cookies map[string]cookieLine) error {
	var b strings.Builder
	b.WriteString(fileHeader)
	b.WriteString("\n")

	for _, c := range cookies {
		// path всегда "/", secure не используется для локального файла
		fmt.Fprintf(&b, "%s\tTRUE\t/\tFALSE\t%d\t%s\t%s\n",
			j.domain, c.expires, c.name, c.value)
	}

	tmp := j.path + ".tmp"
	if err := os.WriteFile(tmp, []byte(b.String()), 0600); err != nil {
		return fmt.Errorf("failed to write cookie file: %w", err)
	}
	if err := os.Rename(tmp, j.path); err != nil {
		return fmt.Errorf("failed to replace cookie file: %w", err)
	}

	return nil
}
