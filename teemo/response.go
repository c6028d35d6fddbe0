package teemo

import (
	"encoding/json"
	"fmt"
)

// Response is the envelope every endpoint answers with. Data keeps the
// payload exactly as parsed.
type Response struct {
	Success bool                   `json:"success"`
	Data    map[string]interface{} `json:"data"`
}

// parseResponse unmarshals a full response body and enforces the API's
// two success flags. Some endpoints embed a second flag at data._success;
// that check is a literal fixed-shape one, not a general convention.
func parseResponse(body []byte) (*Response, error) {
	var res Response
	if err := json.Unmarshal(body, &res); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}

	if !res.Success {
		return nil, ErrAPIFailure
	}

	if ok, isBool := res.Data["_success"].(bool); isBool && !ok {
		return nil, ErrAPIFailure
	}

	return &res, nil
}
