package api

import (
	"encoding/json/v2"
	"net/http"
	"sort"

	domainerrors "github.com/conduitapp/conduit-server/internal/errors"
	"github.com/conduitapp/conduit-server/internal/http/response"
)

// errKey selects which JSON key an endpoint uses for failure bodies. The
// public contract is inconsistent on purpose: account endpoints respond with
// {"error": ...}, everything else with {"message": ...}.
type errKey int

const (
	errKeyError errKey = iota
	errKeyMessage
)

// decodeBody decodes the request body into dst. Malformed JSON yields the
// public 400 body and a false return; the handler must stop.
func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.UnmarshalRead(r.Body, dst); err != nil {
		response.Message(w, http.StatusBadRequest, "Invalid JSON format", s.logger)
		return false
	}
	return true
}

// respondError translates a service error into the endpoint's failure body.
// Anything that is not a coded domain error falls through to the generic 500.
func (s *Server) respondError(w http.ResponseWriter, err error, key errKey) {
	var domainErr *domainerrors.Error
	if !domainerrors.As(err, &domainErr) {
		response.InternalError(w, err, s.logger)
		return
	}

	msg := errorMessage(domainErr)
	if key == errKeyMessage {
		response.Message(w, domainErr.HTTPStatus(), msg, s.logger)
		return
	}
	response.Error(w, domainErr.HTTPStatus(), msg, s.logger)
}

// errorMessage flattens a domain error to a single user-facing string.
// Validation errors surface their first field detail so clients get
// something like "username must be at least 4 characters" rather than a
// generic summary.
func errorMessage(domainErr *domainerrors.Error) string {
	details, ok := domainErr.Details.(map[string]string)
	if !ok || len(details) == 0 {
		return domainErr.Message
	}

	fields := make([]string, 0, len(details))
	for field := range details {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fields[0] + " " + details[fields[0]]
}
