package engine

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	m "github.com/curl/urler/internal/model"
	"github.com/curl/urler/pkg/urlenc"
)

// knownSchemes maps every supported scheme to its default port. Schemes
// without a conventional port map to the empty string.
var knownSchemes = map[string]string{
	"dict":    "2628",
	"file":    "",
	"ftp":     "21",
	"ftps":    "990",
	"gopher":  "70",
	"gophers": "70",
	"http":    "80",
	"https":   "443",
	"imap":    "143",
	"imaps":   "993",
	"ldap":    "389",
	"ldaps":   "636",
	"mqtt":    "1883",
	"pop3":    "110",
	"pop3s":   "995",
	"rtmp":    "1935",
	"rtsp":    "554",
	"scp":     "22",
	"sftp":    "22",
	"smb":     "445",
	"smbs":    "445",
	"smtp":    "25",
	"smtps":   "465",
	"telnet":  "23",
	"tftp":    "69",
	"ws":      "80",
	"wss":     "443",
}

// guessPrefixes maps well known hostname prefixes to the scheme they imply
// for scheme-less input. Anything unrecognized becomes http.
var guessPrefixes = map[string]string{
	"ftp.":  "ftp",
	"dict.": "dict",
	"ldap.": "ldap",
	"imap.": "imap",
	"smtp.": "smtp",
	"pop3.": "pop3",
}

// optionsSchemes lists the schemes whose userinfo can carry a ";options"
// suffix after the password.
var optionsSchemes = map[string]bool{
	"imap":  true,
	"imaps": true,
	"ldap":  true,
	"ldaps": true,
	"pop3":  true,
	"pop3s": true,
	"smtp":  true,
	"smtps": true,
}

// urlEngine is the production Engine backed by net/url parsing.
type urlEngine struct{}

// NewURLEngine returns the net/url-backed Engine used outside of tests.
func NewURLEngine() Engine {
	return urlEngine{}
}

func (urlEngine) New() Handle {
	return &urlHandle{}
}

func (urlEngine) Escape(s string) string {
	return urlenc.Escape(s)
}

func (urlEngine) Unescape(s string) (string, error) {
	return urlenc.Unescape(s)
}

// urlHandle stores each component in its encoded wire form, with a presence
// bit per component so empty and absent stay distinct. The url component is
// never stored; it is synthesized from the parts on Get.
type urlHandle struct {
	part [m.NumComponents]string
	set  [m.NumComponents]bool
}

func (h *urlHandle) Set(c m.Component, value string, flags Flags) error {
	switch c {
	case m.ComponentURL:
		return h.setURL(value, flags)

	case m.ComponentScheme:
		if err := checkSchemeSyntax(value); err != nil {
			return err
		}
		if err := checkSchemeSupported(value, flags); err != nil {
			return err
		}
		h.assign(m.ComponentScheme, strings.ToLower(value))

		return nil

	case m.ComponentPort:
		port, err := parsePort(value)
		if err != nil {
			return err
		}
		h.assign(m.ComponentPort, strconv.Itoa(port))

		return nil

	case m.ComponentHost:
		host, zone, err := parseHostValue(value)
		if err != nil {
			return err
		}
		if flags&URLEncode != 0 && !strings.Contains(host, ":") {
			host = urlenc.Escape(host)
		}
		h.assign(m.ComponentHost, host)

		// A new host replaces any zone id from the previous one.
		h.part[m.ComponentZoneID] = ""
		h.set[m.ComponentZoneID] = false
		if zone != "" {
			h.assign(m.ComponentZoneID, zone)
		}

		return nil
	}

	if c < 0 || int(c) >= m.NumComponents {
		return fmt.Errorf("unknown component %d", int(c))
	}

	v := value
	if flags&URLEncode != 0 {
		switch c {
		case m.ComponentPath:
			v = urlenc.EscapePath(v)
		case m.ComponentQuery:
			v = urlenc.EscapeQuery(v)
		default:
			v = urlenc.Escape(v)
		}
	}
	h.assign(c, v)

	return nil
}

func (h *urlHandle) Get(c m.Component, flags Flags) (string, error) {
	if c == m.ComponentURL {
		s, err := h.synthesizeURL()
		if err != nil {
			return "", err
		}
		if flags&URLDecode != 0 {
			return urlenc.Unescape(s)
		}

		return s, nil
	}

	if c < 0 || int(c) >= m.NumComponents {
		return "", fmt.Errorf("unknown component %d", int(c))
	}

	if !h.set[c] {
		if c == m.ComponentPort && flags&DefaultPort != 0 && h.set[m.ComponentScheme] {
			if port := knownSchemes[strings.ToLower(h.part[m.ComponentScheme])]; port != "" {
				return port, nil
			}
		}

		return "", fmt.Errorf("%w: %s", ErrAbsent, c)
	}

	v := h.part[c]
	if c == m.ComponentHost && strings.Contains(v, ":") {
		v = "[" + v + "]"
	}
	if flags&URLDecode != 0 {
		return urlenc.Unescape(v)
	}

	return v, nil
}

// setURL parses value as a whole URL. On a handle with existing state a
// value without an explicit scheme is an RFC 3986 reference and resolves
// against that state; otherwise the value replaces the state entirely,
// guessing a scheme when allowed.
func (h *urlHandle) setURL(value string, flags Flags) error {
	if h.anySet() && !hasExplicitScheme(value) {
		if base, ok := h.baseURL(); ok {
			ref, err := url.Parse(value)
			if err != nil {
				return fmt.Errorf("malformed URL %q: %w", value, err)
			}

			return h.absorb(base.ResolveReference(ref), flags)
		}
	}

	raw := value
	if !hasExplicitScheme(raw) {
		if flags&GuessScheme == 0 {
			return fmt.Errorf("missing scheme in %q", value)
		}
		if strings.HasPrefix(raw, "//") {
			raw = guessScheme(strings.TrimPrefix(raw, "//")) + ":" + raw
		} else {
			raw = guessScheme(raw) + "://" + raw
		}
	}

	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("malformed URL %q: %w", value, err)
	}

	return h.absorb(u, flags)
}

// absorb replaces the handle state with the components of u. Validation
// happens before the reset so a rejected URL leaves the old state intact.
func (h *urlHandle) absorb(u *url.URL, flags Flags) error {
	if u.Opaque != "" {
		return fmt.Errorf("unsupported URL form %q", u.String())
	}
	if u.Scheme == "" {
		return fmt.Errorf("missing scheme in %q", u.String())
	}
	if err := checkSchemeSupported(u.Scheme, flags); err != nil {
		return err
	}

	host, zone, port := splitHost(u.Host)
	if port != "" {
		n, err := parsePort(port)
		if err != nil {
			return err
		}
		port = strconv.Itoa(n)
	}

	h.part = [m.NumComponents]string{}
	h.set = [m.NumComponents]bool{}

	h.assign(m.ComponentScheme, u.Scheme)

	// The file scheme is the one place an empty host is still a host.
	if host != "" || u.Scheme == "file" {
		h.assign(m.ComponentHost, host)
	}
	if zone != "" {
		h.assign(m.ComponentZoneID, zone)
	}
	if port != "" {
		h.assign(m.ComponentPort, port)
	}

	if u.User != nil {
		user, password, options, hasPassword, hasOptions := splitUserinfo(u.Scheme, u.User.String())
		h.assign(m.ComponentUser, user)
		if hasPassword {
			h.assign(m.ComponentPassword, password)
		}
		if hasOptions {
			h.assign(m.ComponentOptions, options)
		}
	}

	path := u.EscapedPath()
	if path == "" && h.set[m.ComponentHost] {
		path = "/"
	}
	if path != "" {
		h.assign(m.ComponentPath, path)
	}

	if u.RawQuery != "" || u.ForceQuery {
		h.assign(m.ComponentQuery, u.RawQuery)
	}
	if fragment := u.EscapedFragment(); fragment != "" {
		h.assign(m.ComponentFragment, fragment)
	}

	return nil
}

// synthesizeURL reassembles the stored parts. A scheme and a host are the
// minimum input for a URL.
func (h *urlHandle) synthesizeURL() (string, error) {
	if !h.set[m.ComponentScheme] {
		return "", fmt.Errorf("%w: %s", ErrAbsent, m.ComponentScheme)
	}
	if !h.set[m.ComponentHost] {
		return "", fmt.Errorf("%w: %s", ErrAbsent, m.ComponentHost)
	}

	var b strings.Builder
	b.WriteString(h.part[m.ComponentScheme])
	b.WriteString("://")

	if h.set[m.ComponentUser] {
		b.WriteString(h.part[m.ComponentUser])
		if h.set[m.ComponentPassword] {
			b.WriteByte(':')
			b.WriteString(h.part[m.ComponentPassword])
		}
		if h.set[m.ComponentOptions] {
			b.WriteByte(';')
			b.WriteString(h.part[m.ComponentOptions])
		}
		b.WriteByte('@')
	}

	host := h.part[m.ComponentHost]
	if strings.Contains(host, ":") || h.set[m.ComponentZoneID] {
		b.WriteByte('[')
		b.WriteString(host)
		if h.set[m.ComponentZoneID] {
			b.WriteString("%25")
			b.WriteString(h.part[m.ComponentZoneID])
		}
		b.WriteByte(']')
	} else {
		b.WriteString(host)
	}

	if h.set[m.ComponentPort] {
		b.WriteByte(':')
		b.WriteString(h.part[m.ComponentPort])
	}

	if h.set[m.ComponentPath] {
		path := h.part[m.ComponentPath]
		if !strings.HasPrefix(path, "/") {
			b.WriteByte('/')
		}
		b.WriteString(path)
	}

	if h.set[m.ComponentQuery] {
		b.WriteByte('?')
		b.WriteString(h.part[m.ComponentQuery])
	}

	if h.set[m.ComponentFragment] {
		b.WriteByte('#')
		b.WriteString(h.part[m.ComponentFragment])
	}

	return b.String(), nil
}

// baseURL parses the current state back into a url.URL for reference
// resolution. A handle without enough state has no base.
func (h *urlHandle) baseURL() (*url.URL, bool) {
	s, err := h.synthesizeURL()
	if err != nil {
		return nil, false
	}

	u, err := url.Parse(s)
	if err != nil {
		return nil, false
	}

	return u, true
}

func (h *urlHandle) assign(c m.Component, value string) {
	h.part[c] = value
	h.set[c] = true
}

func (h *urlHandle) anySet() bool {
	for _, isSet := range h.set {
		if isSet {
			return true
		}
	}

	return false
}

// hasExplicitScheme reports whether value starts with "scheme://". A bare
// host:port prefix parses like a scheme but is not one.
func hasExplicitScheme(value string) bool {
	if len(value) == 0 || !isAlpha(value[0]) {
		return false
	}

	for i := 1; i < len(value); i++ {
		c := value[i]
		if isSchemeByte(c) {
			continue
		}

		return c == ':' && strings.HasPrefix(value[i:], "://")
	}

	return false
}

// guessScheme picks a scheme for scheme-less input from the hostname
// prefix, falling back to http.
func guessScheme(value string) string {
	host := value
	if i := strings.IndexAny(host, "/?#:"); i >= 0 {
		host = host[:i]
	}
	host = strings.ToLower(host)

	for prefix, scheme := range guessPrefixes {
		if strings.HasPrefix(host, prefix) {
			return scheme
		}
	}

	return "http"
}

func checkSchemeSyntax(scheme string) error {
	if len(scheme) == 0 || !isAlpha(scheme[0]) {
		return fmt.Errorf("bad scheme %q", scheme)
	}

	for i := 1; i < len(scheme); i++ {
		if !isSchemeByte(scheme[i]) {
			return fmt.Errorf("bad scheme %q", scheme)
		}
	}

	return nil
}

func checkSchemeSupported(scheme string, flags Flags) error {
	if flags&NonSupportScheme != 0 {
		return nil
	}

	if _, ok := knownSchemes[strings.ToLower(scheme)]; !ok {
		return fmt.Errorf("unsupported scheme %q", scheme)
	}

	return nil
}

func parsePort(value string) (int, error) {
	if value == "" {
		return 0, errors.New("bad port number: empty")
	}

	for i := 0; i < len(value); i++ {
		if value[i] < '0' || value[i] > '9' {
			return 0, fmt.Errorf("bad port number %q", value)
		}
	}

	port, err := strconv.Atoi(value)
	if err != nil || port < 1 || port > 65535 {
		return 0, fmt.Errorf("bad port number %q", value)
	}

	return port, nil
}

// splitHost breaks a URL authority host into host, zone id and port. IPv6
// literals lose their brackets here and get them back at synthesis.
func splitHost(raw string) (host, zone, port string) {
	if strings.HasPrefix(raw, "[") {
		end := strings.IndexByte(raw, ']')
		if end < 0 {
			return raw, "", ""
		}

		host = raw[1:end]
		if rest := raw[end+1:]; strings.HasPrefix(rest, ":") {
			port = rest[1:]
		}

		if i := strings.Index(host, "%25"); i >= 0 {
			host, zone = host[:i], host[i+len("%25"):]
		} else if i := strings.IndexByte(host, '%'); i >= 0 {
			host, zone = host[:i], host[i+1:]
		}

		return host, zone, port
	}

	if i := strings.LastIndexByte(raw, ':'); i >= 0 {
		return raw[:i], "", raw[i+1:]
	}

	return raw, "", ""
}

// parseHostValue validates a host given to Set directly. Bracketed IPv6
// literals are unwrapped and may carry a zone; anything with authority
// punctuation outside brackets is rejected.
func parseHostValue(value string) (host, zone string, err error) {
	if strings.HasPrefix(value, "[") {
		end := strings.IndexByte(value, ']')
		if end < 0 || end != len(value)-1 {
			return "", "", fmt.Errorf("bad hostname %q", value)
		}

		host = value[1:end]
		if i := strings.Index(host, "%25"); i >= 0 {
			host, zone = host[:i], host[i+len("%25"):]
		} else if i := strings.IndexByte(host, '%'); i >= 0 {
			host, zone = host[:i], host[i+1:]
		}

		return host, zone, nil
	}

	if strings.ContainsAny(value, ":/?#@") {
		return "", "", fmt.Errorf("bad hostname %q", value)
	}

	return value, "", nil
}

// splitUserinfo breaks an encoded userinfo into user, password and options.
// The ";options" suffix is only recognized for schemes that define one.
func splitUserinfo(scheme, ui string) (user, password, options string, hasPassword, hasOptions bool) {
	cred := ui
	if optionsSchemes[strings.ToLower(scheme)] {
		if i := strings.IndexByte(ui, ';'); i >= 0 {
			cred, options, hasOptions = ui[:i], ui[i+1:], true
		}
	}

	user = cred
	if i := strings.IndexByte(cred, ':'); i >= 0 {
		user, password, hasPassword = cred[:i], cred[i+1:], true
	}

	return user, password, options, hasPassword, hasOptions
}

func isAlpha(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func isSchemeByte(c byte) bool {
	if isAlpha(c) || ('0' <= c && c <= '9') {
		return true
	}

	return c == '+' || c == '-' || c == '.'
}
