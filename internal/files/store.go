// Package files loads and saves whole documents for the editor, either on
// the local filesystem or on a remote host over scp.
package files

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
)

// ErrBadTarget is returned for a malformed scp:// path.
var ErrBadTarget = errors.New("bad remote target")

// Store reads and writes whole documents by path.
type Store interface {
	Load(ctx context.Context, path string) (string, error)
	Save(ctx context.Context, path, content string) error
}

const remoteScheme = "scp://"

// IsRemote reports whether path names a file on a remote host.
func IsRemote(path string) bool {
	return strings.HasPrefix(path, remoteScheme)
}

// Target is a parsed scp://[user@]host[:port]/path.
type Target struct {
	User string
	Host string
	Port string
	Path string
}

// String returns the target in scp:// form.
func (t Target) String() string {
	host := t.Host
	if t.Port != "" {
		host = net.JoinHostPort(t.Host, t.Port)
	}
	if t.User != "" {
		host = t.User + "@" + host
	}
	path := t.Path
	if !strings.HasPrefix(path, "/") {
		path = "/~/" + path
	}
	return remoteScheme + host + path
}

// ParseTarget parses an scp:// path. A path beginning with /~/ is relative
// to the remote user's home directory; any other path is absolute.
func ParseTarget(s string) (Target, error) {
	if !IsRemote(s) {
		return Target{}, fmt.Errorf("%w: %q is not an scp:// path", ErrBadTarget, s)
	}
	u, err := url.Parse(s)
	if err != nil {
		return Target{}, fmt.Errorf("%w: %v", ErrBadTarget, err)
	}
	if u.Hostname() == "" {
		return Target{}, fmt.Errorf("%w: %q has no host", ErrBadTarget, s)
	}
	if u.RawQuery != "" || u.Fragment != "" {
		return Target{}, fmt.Errorf("%w: %q has a query or fragment", ErrBadTarget, s)
	}

	t := Target{Host: u.Hostname(), Port: u.Port(), Path: u.Path}
	if u.User != nil {
		t.User = u.User.Username()
	}
	if rest, ok := strings.CutPrefix(t.Path, "/~/"); ok {
		t.Path = rest
	}
	if t.Path == "" || t.Path == "/" || strings.HasSuffix(t.Path, "/") {
		return Target{}, fmt.Errorf("%w: %q does not name a file", ErrBadTarget, s)
	}
	return t, nil
}

// Router sends scp:// paths to Remote and everything else to Local.
type Router struct {
	Local  Store
	Remote Store
}

func (r Router) pick(path string) (Store, error) {
	if !IsRemote(path) {
		return r.Local, nil
	}
	if r.Remote == nil {
		return nil, fmt.Errorf("%w: remote files are not available", ErrBadTarget)
	}
	return r.Remote, nil
}

// Load implements Store.
func (r Router) Load(ctx context.Context, path string) (string, error) {
	s, err := r.pick(path)
	if err != nil {
		return "", err
	}
	return s.Load(ctx, path)
}

// Save implements Store.
func (r Router) Save(ctx context.Context, path, content string) error {
	s, err := r.pick(path)
	if err != nil {
		return err
	}
	return s.Save(ctx, path, content)
}
