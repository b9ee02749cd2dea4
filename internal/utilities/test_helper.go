package utilities

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
)

// SimulateAPICall run a single gin handler against a JSON request without a router.
// Each setup function run on the context before the handler, so tests can place
// values that middleware would normally set (user, claims, headers).
// It returns the recorder and the response parsed as JSON object. A nil body send no payload.
func SimulateAPICall(
	handlerFunc gin.HandlerFunc,
	route string,
	method string,
	body interface{},
	setup ...func(*gin.Context),
) (*httptest.ResponseRecorder, map[string]interface{}, error) {
	var payload []byte
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, nil, err
		}
		payload = b
	}

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	req, err := http.NewRequest(method, route, bytes.NewReader(payload))
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	for _, fn := range setup {
		fn(c)
	}
	handlerFunc(c)

	var resp map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		return rec, nil, err
	}
	return rec, resp, nil
}
