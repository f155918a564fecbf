package files

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"os"
	"sync"

	"hoshipad/internal/config"
	hssh "hoshipad/internal/ssh"

	"golang.org/x/crypto/ssh"
	"golang.org/x/sync/singleflight"
)

// Conn is an open connection to one remote host.
type Conn interface {
	ReadFile(ctx context.Context, path string) ([]byte, error)
	WriteFile(ctx context.Context, path string, data []byte) error
	Close() error
}

// DialFunc opens a connection able to serve t.
type DialFunc func(ctx context.Context, t Target) (Conn, error)

// ErrClosed is returned for transfers started after Close.
var ErrClosed = errors.New("remote store closed")

// Remote reads and writes scp:// paths. Connections are opened on first use
// and reused per user@host:port until Close.
type Remote struct {
	dial    DialFunc
	dialing singleflight.Group

	mu     sync.Mutex
	conns  map[string]Conn
	closed bool
}

// NewRemote returns a Remote that opens connections with dial.
func NewRemote(dial DialFunc) *Remote {
	return &Remote{dial: dial, conns: map[string]Conn{}}
}

func connKey(t Target) string {
	return t.User + "@" + net.JoinHostPort(t.Host, t.Port)
}

// conn returns the cached connection for t or dials one. The lock is not
// held while dialing; concurrent callers for the same key share one dial.
func (r *Remote) conn(ctx context.Context, t Target) (Conn, error) {
	key := connKey(t)

	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil, ErrClosed
	}
	if c, ok := r.conns[key]; ok {
		r.mu.Unlock()
		return c, nil
	}
	r.mu.Unlock()

	ch := r.dialing.DoChan(key, func() (any, error) {
		r.mu.Lock()
		c, ok := r.conns[key]
		r.mu.Unlock()
		if ok {
			return c, nil
		}
		c, err := r.dial(ctx, t)
		if err != nil {
			return nil, err
		}
		return r.install(key, c)
	})
	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(Conn), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// install caches a freshly dialed c under key. If Close already ran, c is
// closed and ErrClosed returned. If another dial won, c is closed and the
// cached connection returned instead.
func (r *Remote) install(key string, c Conn) (Conn, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		log.Printf("[files] closed during dial, dropping %s", key)
		if err := c.Close(); err != nil {
			log.Printf("[files] close %s: %v", key, err)
		}
		return nil, ErrClosed
	}
	if existing, ok := r.conns[key]; ok {
		if err := c.Close(); err != nil {
			log.Printf("[files] close %s: %v", key, err)
		}
		return existing, nil
	}
	log.Printf("[files] connected %s", key)
	r.conns[key] = c
	return c, nil
}

// drop closes and forgets the connection for t so the next use redials.
func (r *Remote) drop(t Target, c Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := connKey(t)
	if r.conns[key] != c {
		return
	}
	delete(r.conns, key)
	if err := c.Close(); err != nil {
		log.Printf("[files] close %s: %v", key, err)
	}
}

// Load implements Store.
func (r *Remote) Load(ctx context.Context, path string) (string, error) {
	t, err := ParseTarget(path)
	if err != nil {
		return "", err
	}
	c, err := r.conn(ctx, t)
	if err != nil {
		return "", err
	}
	data, err := c.ReadFile(ctx, t.Path)
	if err != nil {
		r.drop(t, c)
		return "", err
	}
	return string(data), nil
}

// Save implements Store.
func (r *Remote) Save(ctx context.Context, path, content string) error {
	t, err := ParseTarget(path)
	if err != nil {
		return err
	}
	c, err := r.conn(ctx, t)
	if err != nil {
		return err
	}
	if err := c.WriteFile(ctx, t.Path, []byte(content)); err != nil {
		r.drop(t, c)
		return err
	}
	return nil
}

// Close closes every cached connection. Dials still in flight close their
// connection when they finish, and later transfers fail with ErrClosed.
func (r *Remote) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.closed = true

	var errs []error
	for key, c := range r.conns {
		if err := c.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %s: %w", key, err))
		}
		delete(r.conns, key)
	}
	return errors.Join(errs...)
}

// SSHOptions configures SSHDialer.
type SSHOptions struct {
	Hosts       []config.SSHHost // parsed ~/.ssh/config
	KnownHosts  string
	AgentSock   string
	Home        string
	DefaultUser string
}

// endpoint is a target with ssh config applied.
type endpoint struct {
	host, port, user string
	identity         string
}

// resolve applies the ssh config entry for t.Host, if any. Values given in
// the target take precedence over the config.
func resolve(hosts []config.SSHHost, t Target, defaultUser string) endpoint {
	ep := endpoint{host: t.Host, port: t.Port, user: t.User}
	if h, ok := config.FindHost(hosts, t.Host); ok {
		ep.host = h.DisplayHost()
		if ep.port == "" {
			ep.port = h.Port
		}
		if ep.user == "" {
			ep.user = h.User
		}
		ep.identity = h.IdentityFile
	}
	if ep.port == "" {
		ep.port = "22"
	}
	if ep.user == "" {
		ep.user = defaultUser
	}
	return ep
}

// SSHDialer returns a DialFunc connecting with the configured identity
// file, the ssh-agent and the default key files, verifying host keys
// against known_hosts.
func SSHDialer(opts SSHOptions) DialFunc {
	return func(ctx context.Context, t Target) (Conn, error) {
		ep := resolve(opts.Hosts, t, opts.DefaultUser)

		hk, err := hssh.HostKeyCallback(opts.KnownHosts)
		if err != nil {
			return nil, err
		}

		auths, closers := authMethods(opts, ep.identity)
		defer func() {
			for _, c := range closers {
				_ = c.Close()
			}
		}()
		if len(auths) == 0 {
			return nil, fmt.Errorf("%s: no usable ssh credentials", t)
		}

		log.Printf("[files] dialling %s@%s:%s", ep.user, ep.host, ep.port)
		c, err := hssh.Dial(ctx, ep.host, ep.port, ep.user, auths, hk)
		if err != nil {
			return nil, err
		}
		return c, nil
	}
}

// authMethods collects auth methods in OpenSSH order. The closers release
// agent connections once the handshake is over.
func authMethods(opts SSHOptions, identity string) ([]ssh.AuthMethod, []io.Closer) {
	var auths []ssh.AuthMethod
	var closers []io.Closer

	if identity != "" {
		if a, err := hssh.PubKeyAuth(identity); err == nil {
			auths = append(auths, a)
		} else {
			log.Printf("[files] identity %s: %v", identity, err)
		}
	}
	if opts.AgentSock != "" {
		if a, c, err := hssh.AgentAuth(opts.AgentSock); err == nil {
			auths = append(auths, a)
			closers = append(closers, c)
		} else {
			log.Printf("[files] ssh-agent: %v", err)
		}
	}
	if opts.Home != "" {
		for _, p := range hssh.DefaultKeyPaths(opts.Home) {
			if p == identity {
				continue
			}
			if _, err := os.Stat(p); err != nil {
				continue
			}
			if a, err := hssh.PubKeyAuth(p); err == nil {
				auths = append(auths, a)
			}
		}
	}
	return auths, closers
}
