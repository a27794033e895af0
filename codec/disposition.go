package codec

import (
	"net/url"
	"regexp"
	"strings"
)

var (
	extFilenameRe = regexp.MustCompile(`(?i)(?:^|;)\s*filename\*\s*=\s*([^;]*)`)
	filenameRe    = regexp.MustCompile(`(?i)(?:^|;)\s*filename\s*=\s*("(?:[^"\\]|\\.)*"|[^;]*)`)
)

// FilenameFromDisposition extracts the filename from a Content-Disposition
// value. filename* (RFC 5987, charset'lang'value) wins over filename. Values
// are percent-decoded and unquoted; undecodable escapes are kept verbatim.
func FilenameFromDisposition(cd string) (string, bool) {
	if cd == "" {
		return "", false
	}

	if m := extFilenameRe.FindStringSubmatch(cd); m != nil {
		v := strings.Trim(strings.TrimSpace(m[1]), `"`)
		if parts := strings.SplitN(v, "'", 3); len(parts) == 3 {
			v = parts[2]
		}
		if name := percentDecode(v); name != "" {
			return name, true
		}
	}

	if m := filenameRe.FindStringSubmatch(cd); m != nil {
		v := strings.TrimSpace(m[1])
		if len(v) >= 2 && strings.HasPrefix(v, `"`) && strings.HasSuffix(v, `"`) {
			v = strings.NewReplacer(`\"`, `"`, `\\`, `\`).Replace(v[1 : len(v)-1])
		} else {
			v = strings.ReplaceAll(v, `"`, "")
		}
		if name := percentDecode(v); name != "" {
			return name, true
		}
	}

	return "", false
}

func percentDecode(s string) string {
	if u, err := url.PathUnescape(s); err == nil {
		return u
	}
	return s
}
