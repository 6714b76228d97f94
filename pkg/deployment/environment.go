package deployment

import (
	"os"
	"strings"
)

// Environment is the set of variables available when resolving deployment
// names and file paths. In a CI context this is typically the build
// environment (BUILD_NUMBER, JOB_NAME, and so on).
type Environment map[string]string

// OSEnvironment captures the current process environment.
func OSEnvironment() Environment {
	env := make(Environment)
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			env[k] = v
		}
	}
	return env
}

// Resolve substitutes $VAR and ${VAR} references in s. A reference with no
// matching variable is left in place verbatim rather than silently removed,
// and "$$" produces a literal dollar sign.
func (e Environment) Resolve(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		if s[i] != '$' {
			b.WriteByte(s[i])
			i++
			continue
		}
		if i+1 >= len(s) {
			b.WriteByte('$')
			break
		}
		switch next := s[i+1]; {
		case next == '$':
			b.WriteByte('$')
			i += 2
		case next == '{':
			end := strings.IndexByte(s[i+2:], '}')
			if end < 0 {
				b.WriteString(s[i:])
				return b.String()
			}
			if val, ok := e[s[i+2:i+2+end]]; ok {
				b.WriteString(val)
			} else {
				b.WriteString(s[i : i+3+end])
			}
			i += 3 + end
		case isNameStart(next):
			j := i + 1
			for j < len(s) && isNameByte(s[j]) {
				j++
			}
			if val, ok := e[s[i+1:j]]; ok {
				b.WriteString(val)
			} else {
				b.WriteString(s[i:j])
			}
			i = j
		default:
			b.WriteByte('$')
			i++
		}
	}
	return b.String()
}

func isNameStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isNameByte(c byte) bool {
	return isNameStart(c) || (c >= '0' && c <= '9')
}
