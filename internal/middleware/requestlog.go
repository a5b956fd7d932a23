package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/mbalagam/marketplace/internal/activity"
)

const maxRawBody = 1000

var sensitiveKeys = map[string]bool{
	"password": true,
	"pwd":      true,
	"token":    true,
}

// RequestLogger writes one http_request entry per /api call to the
// application log. Request bodies are captured with credential fields
// redacted; non-JSON bodies are stored trimmed.
func RequestLogger(log *activity.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			if !strings.HasPrefix(req.URL.Path, "/api") {
				return next(c)
			}

			var bodyBytes []byte
			if req.Body != nil {
				bodyBytes, _ = io.ReadAll(req.Body)
				req.Body = io.NopCloser(bytes.NewReader(bodyBytes))
			}
			parsed, redacted := redactBody(bodyBytes)

			err := next(c)

			status := c.Response().Status
			if err != nil {
				if he, ok := err.(*echo.HTTPError); ok {
					status = he.Code
				}
			}

			username := c.QueryParam("username")
			if username == "" && parsed != nil {
				if v, ok := parsed["username"].(string); ok {
					username = v
				} else if v, ok := parsed["buyer"].(string); ok {
					username = v
				}
			}

			query := map[string]any{}
			for k, vs := range c.QueryParams() {
				if len(vs) > 0 {
					query[k] = vs[0]
				}
			}

			ctx := activity.WithClientIP(req.Context(), c.RealIP())
			log.Event(ctx, activity.ActionHTTPRequest, username, map[string]any{
				"method": req.Method,
				"path":   req.URL.Path,
				"query":  query,
				"body":   redacted,
				"status": status,
			})

			return err
		}
	}
}

// redactBody returns the parsed JSON object (when the body is one) and the
// loggable form with sensitive keys replaced.
func redactBody(body []byte) (map[string]any, any) {
	if len(body) == 0 {
		return nil, nil
	}
	var parsed any
	if err := json.Unmarshal(body, &parsed); err != nil {
		raw := string(body)
		if len(raw) > maxRawBody {
			raw = raw[:maxRawBody]
		}
		return nil, raw
	}
	obj, ok := parsed.(map[string]any)
	if !ok {
		return nil, parsed
	}
	redacted := make(map[string]any, len(obj))
	for k, v := range obj {
		if sensitiveKeys[strings.ToLower(k)] {
			redacted[k] = "REDACTED"
		} else {
			redacted[k] = v
		}
	}
	return obj, redacted
}
