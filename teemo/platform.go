package teemo

type platform struct {
	short string
	full  string
}

// The CaptainTeemo API serves these eight platforms. Requests must carry
// the short code on the wire, never the full name.
var platforms = [8]platform{
	{"na", "North_America"},
	{"br", "Brasil"},
	{"ru", "Russia"},
	{"euw", "Europe_West"},
	{"eun", "Europe_East"},
	{"tr", "Turkey"},
	{"las", "Latin_America_South"},
	{"lan", "Latin_America_North"},
}

// NormalizePlatform resolves a platform given in either short or full
// form to its short code. It reports false for unknown platforms.
func NormalizePlatform(name string) (string, bool) {
	for _, p := range platforms {
		if name == p.short || name == p.full {
			return p.short, true
		}
	}
	return "", false
}

// Platforms returns the supported short codes.
func Platforms() []string {
	codes := make([]string, len(platforms))
	for i, p := range platforms {
		codes[i] = p.short
	}
	return codes
}
