package teemo

// intent describes a single lookup before it is turned into a request
// path. One is built per call and discarded after dispatch.
type intent struct {
	platform string
	subpath  string
	summoner string
	tag      string
	guid     string
	season   string
}

// path builds the API path for the intent. Discriminator precedence is
// summoner, then tag, then guid, then the platform-wide service-state
// form. The splicing below matches the remote path grammar exactly; the
// season segment is appended raw after the sub-path.
func (in intent) path() (string, error) {
	short, ok := NormalizePlatform(in.platform)
	if !ok {
		return "", ErrInvalidPlatform
	}

	sub := ""
	if in.subpath != "" {
		sub = "/" + in.subpath
	}

	switch {
	case in.summoner != "":
		return "/player/" + short + "/" + in.summoner + sub + in.season, nil
	case in.tag != "":
		return "/team/" + short + sub + "/" + in.tag, nil
	case in.guid != "":
		return "/team/" + short + sub + "/" + in.guid + "/leagues", nil
	default:
		return "/service-state/" + short + sub, nil
	}
}
