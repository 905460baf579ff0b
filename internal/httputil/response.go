package httputil

import (
	"encoding/json"
	"maps"
	"net/http"
)

// RespondJSON marshals data before touching the response so an encoding
// failure still produces a clean 500.
func RespondJSON(w http.ResponseWriter, status int, data any) {
	payload, err := json.Marshal(data)
	if err != nil {
		RespondError(w, http.StatusInternalServerError, "failed to encode response")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(payload)
}

// Problem is an RFC 7807 problem document. Fields set with With are
// flattened next to the standard members.
type Problem struct {
	Status int
	Detail string
	fields map[string]any
}

// NewProblem creates a problem for status
func NewProblem(status int, detail string) *Problem {
	return &Problem{Status: status, Detail: detail}
}

// With adds an extension member
func (p *Problem) With(key string, value any) *Problem {
	if p.fields == nil {
		p.fields = make(map[string]any)
	}
	p.fields[key] = value
	return p
}

func (p *Problem) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(p.fields)+4)
	maps.Copy(m, p.fields)
	m["type"] = problemType(p.Status)
	m["title"] = http.StatusText(p.Status)
	m["status"] = p.Status
	if p.Detail != "" {
		m["detail"] = p.Detail
	}
	return json.Marshal(m)
}

// RespondError writes a problem+json body with just a detail message
func RespondError(w http.ResponseWriter, status int, detail string) {
	RespondProblem(w, NewProblem(status, detail))
}

// RespondProblem writes p as application/problem+json
func RespondProblem(w http.ResponseWriter, p *Problem) {
	payload, err := json.Marshal(p)
	if err != nil {
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(p.Status)
	w.Write(payload)
}

var problemTypes = map[int]string{
	http.StatusBadRequest:            "https://datatracker.ietf.org/doc/html/rfc9110#section-15.5.1",
	http.StatusUnauthorized:          "https://datatracker.ietf.org/doc/html/rfc9110#section-15.5.2",
	http.StatusForbidden:             "https://datatracker.ietf.org/doc/html/rfc9110#section-15.5.4",
	http.StatusNotFound:              "https://datatracker.ietf.org/doc/html/rfc9110#section-15.5.5",
	http.StatusRequestEntityTooLarge: "https://datatracker.ietf.org/doc/html/rfc9110#section-15.5.14",
	http.StatusInternalServerError:   "https://datatracker.ietf.org/doc/html/rfc9110#section-15.6.1",
	http.StatusBadGateway:            "https://datatracker.ietf.org/doc/html/rfc9110#section-15.6.3",
}

func problemType(status int) string {
	if t, ok := problemTypes[status]; ok {
		return t
	}
	return "about:blank"
}
