package scrape

import (
	"fmt"
	"net/http"

	"github.com/dghubble/sling"
)

// FormRequest builds a form-encoded POST from a url-tagged parameter
// struct. An empty referer leaves the header unset.
func FormRequest(url, referer string, params interface{}) (*http.Request, error) {
	s := sling.New().Post(url).BodyForm(params)
	if referer != "" {
		s.Set("Referer", referer)
	}
	req, err := s.Request()
	if err != nil {
		return nil, fmt.Errorf("building form request for %s: %w", url, err)
	}
	return req, nil
}

// QueryRequest builds a GET whose query string comes from a url-tagged
// parameter struct.
func QueryRequest(url string, params interface{}) (*http.Request, error) {
	req, err := sling.New().Get(url).QueryStruct(params).Request()
	if err != nil {
		return nil, fmt.Errorf("building query request for %s: %w", url, err)
	}
	return req, nil
}
