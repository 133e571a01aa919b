package backend

import (
	"encoding/json"
	"errors"
	"fmt"

	jmespath "github.com/jmespath-community/go-jmespath"

	apperrors "github.com/memberhub/portal/internal/errors"
)

// envelope locates the payload inside a backend response.
// items selects the object or list; count selects the total for list responses.
// Expressions are JMESPath so each endpoint's wrapper is data, not code.
type envelope struct {
	items string
	count string
}

var (
	userEnvelope           = envelope{items: "user || data.user"}
	eventEnvelope          = envelope{items: "event || data || @"}
	eventListEnvelope      = envelope{items: "events", count: "numOfEvents"}
	profileEnvelope        = envelope{items: "profile || user || @"}
	activeMembersEnvelope  = envelope{items: "activeMembers"}
	currentMembersEnvelope = envelope{items: "currentMembers"}
	pendingMembersEnvelope = envelope{items: "pendingMembers"}
	announcementEnvelope   = envelope{items: "announcement || @"}
	announcementsEnvelope  = envelope{items: "announcements", count: "numOfAnnouncements"}
	messagesEnvelope       = envelope{items: "messages", count: "numOfMessages"}
	errorEnvelope          = envelope{items: "message || error"}
	tokenEnvelope          = envelope{items: "token"}
)

// mustCompile validates the package's expressions at init.
func (e envelope) mustCompile() {
	for _, expr := range []string{e.items, e.count} {
		if expr == "" {
			continue
		}
		if _, err := jmespath.Compile(expr); err != nil {
			panic(fmt.Sprintf("backend: invalid envelope expression %q: %v", expr, err))
		}
	}
}

func init() {
	for _, e := range []envelope{
		userEnvelope, eventEnvelope, eventListEnvelope, profileEnvelope,
		activeMembersEnvelope, currentMembersEnvelope, pendingMembersEnvelope,
		announcementEnvelope, announcementsEnvelope, messagesEnvelope,
		errorEnvelope, tokenEnvelope,
	} {
		e.mustCompile()
	}
}

func parseDocument(body []byte) (any, error) {
	if len(body) == 0 {
		return nil, nil
	}
	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeUnavailable, "member service returned malformed JSON")
	}
	return doc, nil
}

// errMissingPayload reports that the items expression matched nothing.
var errMissingPayload = errors.New("payload missing")

// decode extracts the payload from body into dst and returns the total count.
// For list envelopes without a count expression the count is the number of items.
func (e envelope) decode(body []byte, dst any) (int, error) {
	count, err := e.extract(body, dst)
	if errors.Is(err, errMissingPayload) {
		return 0, apperrors.Unavailable("member service response is missing " + e.items)
	}
	return count, err
}

// decodeList is decode for list endpoints, where an absent list means no items.
func (e envelope) decodeList(body []byte, dst any) (int, error) {
	count, err := e.extract(body, dst)
	if errors.Is(err, errMissingPayload) {
		return 0, nil
	}
	return count, err
}

func (e envelope) extract(body []byte, dst any) (int, error) {
	doc, err := parseDocument(body)
	if err != nil {
		return 0, err
	}
	payload, err := jmespath.Search(e.items, doc)
	if err != nil {
		return 0, apperrors.Wrapf(err, apperrors.ErrCodeInternal, "evaluate %q", e.items)
	}
	if payload == nil {
		return 0, errMissingPayload
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return 0, fmt.Errorf("re-encode payload: %w", err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return 0, apperrors.Wrap(err, apperrors.ErrCodeUnavailable, "member service payload has unexpected shape")
	}

	count := 0
	if list, ok := payload.([]any); ok {
		count = len(list)
	}
	if e.count != "" {
		if n, ok := searchNumber(e.count, doc); ok {
			count = n
		}
	}
	return count, nil
}

// searchString evaluates expr against body and returns a string result.
func (e envelope) searchString(body []byte) string {
	doc, err := parseDocument(body)
	if err != nil || doc == nil {
		return ""
	}
	v, err := jmespath.Search(e.items, doc)
	if err != nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

func searchNumber(expr string, doc any) (int, bool) {
	v, err := jmespath.Search(expr, doc)
	if err != nil {
		return 0, false
	}
	f, ok := v.(float64)
	if !ok || f < 0 {
		return 0, false
	}
	return int(f), true
}

func errorMessage(body []byte) string {
	return errorEnvelope.searchString(body)
}
