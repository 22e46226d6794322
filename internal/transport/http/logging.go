package http

import (
	"encoding/json"
	"log"
	"mime"
	"net/url"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/partnertrackhq/PartnerTrack_CRM_BackEnd/internal/domain"
)

const (
	requestBodyLogKey  = "http.request.body"
	responseBodyLogKey = "http.response.body"
	maxLoggedBody      = 2048
)

// registerLogging emits one JSON line per request. Bodies are captured by the
// BodyDump middleware, redacted, and attached to the access log entry.
func registerLogging(e *echo.Echo) {
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:      true,
		LogStatus:   true,
		LogMethod:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			userID := "anonymous"
			if user, ok := c.Get(contextUserKey).(*domain.User); ok && user != nil {
				userID = user.ID.String()
			}

			entry := map[string]any{
				"time":       v.StartTime.Format(time.RFC3339),
				"user_uuid":  userID,
				"method":     v.Method,
				"uri":        v.URI,
				"status":     v.Status,
				"latency_ms": v.Latency.Milliseconds(),
			}
			if body := c.Get(requestBodyLogKey); body != nil {
				entry["request_body"] = body
			}
			if body := c.Get(responseBodyLogKey); body != nil {
				entry["response_body"] = body
			}
			if v.Error != nil {
				entry["error"] = v.Error.Error()
			}

			buf, err := json.Marshal(entry)
			if err != nil {
				return err
			}
			log.Println(string(buf))
			return nil
		},
	}))

	e.Use(middleware.BodyDump(func(c echo.Context, reqBody, resBody []byte) {
		if summary := summarizeBody(reqBody, c.Request().Header.Get(echo.HeaderContentType)); summary != nil {
			c.Set(requestBodyLogKey, summary)
		}
		if summary := summarizeBody(resBody, c.Response().Header().Get(echo.HeaderContentType)); summary != nil {
			c.Set(responseBodyLogKey, summary)
		}
	}))
}

// summarizeBody renders a request or response body safe for logs: passwords
// and tokens are redacted, file uploads and binary payloads are replaced
// with markers, and anything oversized is clamped.
func summarizeBody(body []byte, contentType string) any {
	if len(body) == 0 {
		return nil
	}

	lowered := strings.ToLower(strings.TrimSpace(contentType))
	if strings.HasPrefix(lowered, "multipart/form-data") {
		return summarizeMultipart(contentType)
	}
	if strings.HasPrefix(lowered, "text/csv") {
		return "csv"
	}

	if strings.HasPrefix(lowered, "application/json") || json.Valid(body) {
		var data any
		if err := json.Unmarshal(body, &data); err == nil {
			return redactJSON(data, "")
		}
	}

	if strings.HasPrefix(lowered, "application/x-www-form-urlencoded") {
		if values, err := url.ParseQuery(string(body)); err == nil && len(values) > 0 {
			fields := make(map[string]any, len(values))
			for key, vals := range values {
				if sensitiveKey(key) {
					fields[key] = "redacted"
					continue
				}
				fields[key] = clampString(strings.Join(vals, ","))
			}
			return fields
		}
	}

	if looksBinary(body) {
		return "binary"
	}
	if sensitiveKey(string(body)) {
		return "redacted"
	}
	return clampString(string(body))
}

// summarizeMultipart logs only the shape of a multipart upload, never its
// contents.
func summarizeMultipart(contentType string) any {
	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil || !strings.HasPrefix(mediaType, "multipart/") {
		return "multipart"
	}
	if params["boundary"] == "" {
		return "multipart"
	}
	return "multipart upload"
}

func redactJSON(value any, keyHint string) any {
	switch v := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, val := range v {
			if sensitiveKey(key) {
				out[key] = "redacted"
				continue
			}
			out[key] = redactJSON(val, strings.ToLower(key))
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = redactJSON(item, keyHint)
		}
		return out
	case string:
		if sensitiveKey(keyHint) {
			return "redacted"
		}
		if looksBinary([]byte(v)) {
			return "binary"
		}
		return clampString(v)
	default:
		return v
	}
}

func sensitiveKey(key string) bool {
	lowered := strings.ToLower(key)
	return strings.Contains(lowered, "password") ||
		strings.Contains(lowered, "token") ||
		strings.Contains(lowered, "otp")
}

func looksBinary(data []byte) bool {
	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		if r == utf8.RuneError && size == 1 {
			return true
		}
		if !unicode.IsPrint(r) && !unicode.IsSpace(r) {
			return true
		}
		data = data[size:]
	}
	return false
}

func clampString(value string) string {
	if len(value) <= maxLoggedBody {
		return value
	}
	truncated := value[:maxLoggedBody]
	for !utf8.ValidString(truncated) && len(truncated) > 0 {
		truncated = truncated[:len(truncated)-1]
	}
	return truncated + "...(truncated)"
}
