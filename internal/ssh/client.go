package ssh

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"path/filepath"
	"time"

	"github.com/bramvdbogaerde/go-scp"
	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/agent"
	"golang.org/x/crypto/ssh/knownhosts"
)

// fileMode is the permission used for files created by WriteFile.
const fileMode = "0644"

// Client wraps an SSH connection used to move whole files with scp.
type Client struct {
	client  *ssh.Client
	address string
}

// Dial opens an SSH connection to host:port. The handshake is bounded by
// ctx; the connection itself outlives it.
func Dial(ctx context.Context, host, port, username string, authMethods []ssh.AuthMethod, hkCallback ssh.HostKeyCallback) (*Client, error) {
	cfg := &ssh.ClientConfig{
		User:            username,
		Auth:            authMethods,
		HostKeyCallback: hkCallback,
		Timeout:         10 * time.Second,
	}
	address := net.JoinHostPort(host, port)

	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", address)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", address, err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}
	c, chans, reqs, err := ssh.NewClientConn(conn, address, cfg)
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("handshake %s: %w", address, err)
	}
	_ = conn.SetDeadline(time.Time{})

	return &Client{
		client:  ssh.NewClient(c, chans, reqs),
		address: address,
	}, nil
}

// Address returns the host:port the client is connected to.
func (c *Client) Address() string { return c.address }

// Close closes the SSH connection.
func (c *Client) Close() error {
	return c.client.Close()
}

// ReadFile downloads the remote file at path.
func (c *Client) ReadFile(ctx context.Context, path string) ([]byte, error) {
	scpClient, err := scp.NewClientBySSH(c.client)
	if err != nil {
		return nil, fmt.Errorf("scp session: %w", err)
	}
	defer scpClient.Close()

	var buf bytes.Buffer
	if err := scpClient.CopyFromRemotePassThru(ctx, &buf, path, nil); err != nil {
		return nil, fmt.Errorf("read %s:%s: %w", c.address, path, err)
	}
	return buf.Bytes(), nil
}

// WriteFile uploads data to the remote path, creating or truncating it.
func (c *Client) WriteFile(ctx context.Context, path string, data []byte) error {
	scpClient, err := scp.NewClientBySSH(c.client)
	if err != nil {
		return fmt.Errorf("scp session: %w", err)
	}
	defer scpClient.Close()

	if err := scpClient.Copy(ctx, bytes.NewReader(data), path, fileMode, int64(len(data))); err != nil {
		return fmt.Errorf("write %s:%s: %w", c.address, path, err)
	}
	return nil
}

// PubKeyAuth returns an AuthMethod for public key authentication from a key file.
func PubKeyAuth(keyPath string) (ssh.AuthMethod, error) {
	key, err := os.ReadFile(keyPath)
	if err != nil {
		return nil, err
	}
	signer, err := ssh.ParsePrivateKey(key)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", keyPath, err)
	}
	return ssh.PublicKeys(signer), nil
}

// AgentAuth connects to the ssh-agent listening on socket. The returned
// closer releases the agent connection.
func AgentAuth(socket string) (ssh.AuthMethod, io.Closer, error) {
	if socket == "" {
		return nil, nil, errors.New("no agent socket")
	}
	conn, err := net.Dial("unix", socket)
	if err != nil {
		return nil, nil, fmt.Errorf("connect agent: %w", err)
	}
	return ssh.PublicKeysCallback(agent.NewClient(conn).Signers), conn, nil
}

// DefaultKeyPaths lists the identity files OpenSSH tries when none is
// configured, in order.
func DefaultKeyPaths(home string) []string {
	names := []string{"id_ed25519", "id_ecdsa", "id_rsa"}
	paths := make([]string, 0, len(names))
	for _, n := range names {
		paths = append(paths, filepath.Join(home, ".ssh", n))
	}
	return paths
}

// HostKeyCallback verifies host keys against a known_hosts file. Unknown
// hosts and mismatched keys are rejected.
func HostKeyCallback(knownHostsPath string) (ssh.HostKeyCallback, error) {
	cb, err := knownhosts.New(knownHostsPath)
	if err != nil {
		return nil, fmt.Errorf("known hosts %s: %w", knownHostsPath, err)
	}
	return cb, nil
}
