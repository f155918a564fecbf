package config

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// SSHHost represents a single Host alias from ~/.ssh/config.
type SSHHost struct {
	Alias        string // the Host alias (e.g. "myserver")
	HostName     string // HostName directive (actual hostname / IP)
	Port         string // Port directive
	User         string // User directive
	IdentityFile string // IdentityFile path (~ expanded)
}

// DisplayHost returns the effective hostname (HostName if set, otherwise Alias).
func (h SSHHost) DisplayHost() string {
	if h.HostName != "" {
		return h.HostName
	}
	return h.Alias
}

// LoadSSHConfig reads and parses the SSH client config at path. A missing or
// unreadable file yields no hosts and no error; remote targets then use
// their literal host names.
func LoadSSHConfig(path string) []SSHHost {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer func() { _ = f.Close() }()

	return ParseSSHConfig(f)
}

// FindHost returns the entry for alias, if any.
func FindHost(hosts []SSHHost, alias string) (SSHHost, bool) {
	for _, h := range hosts {
		if h.Alias == alias {
			return h, true
		}
	}
	return SSHHost{}, false
}

// ParseSSHConfig parses SSH config content from a reader. A Host line naming
// several patterns yields one entry per non-wildcard alias. As in OpenSSH,
// the first value given for a directive wins.
func ParseSSHConfig(r io.Reader) []SSHHost {
	var hosts []SSHHost
	var block []int // indexes into hosts of the current Host block

	home, _ := os.UserHomeDir()

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value := splitSSHConfigLine(line)
		if key == "" {
			continue
		}

		switch strings.ToLower(key) {
		case "host":
			block = block[:0]
			for _, alias := range strings.Fields(value) {
				if isWildcard(alias) || strings.HasPrefix(alias, "!") {
					continue
				}
				hosts = append(hosts, SSHHost{Alias: alias})
				block = append(block, len(hosts)-1)
			}
		case "match":
			// Match blocks are conditional; their directives are ignored.
			block = block[:0]
		case "hostname":
			for _, i := range block {
				setOnce(&hosts[i].HostName, value)
			}
		case "port":
			for _, i := range block {
				setOnce(&hosts[i].Port, value)
			}
		case "user":
			for _, i := range block {
				setOnce(&hosts[i].User, value)
			}
		case "identityfile":
			for _, i := range block {
				setOnce(&hosts[i].IdentityFile, expandTilde(unquote(value), home))
			}
		}
	}
	return hosts
}

func setOnce(field *string, value string) {
	if *field == "" {
		*field = value
	}
}

// splitSSHConfigLine splits a line like "HostName example.com" or
// "HostName=example.com" into key and value.
func splitSSHConfigLine(line string) (string, string) {
	i := strings.IndexAny(line, " \t=")
	if i < 0 {
		return line, ""
	}
	key := line[:i]
	val := strings.TrimSpace(line[i:])
	val = strings.TrimSpace(strings.TrimPrefix(val, "="))
	return key, val
}

func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}

// isWildcard returns true if the host alias contains glob characters.
func isWildcard(alias string) bool {
	return strings.ContainsAny(alias, "*?")
}

// expandTilde replaces a leading ~ with the user's home directory.
func expandTilde(path, home string) string {
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(home, path[2:])
	}
	if path == "~" {
		return home
	}
	return path
}
