// Package resolver turns a shortcode into a redirect decision. The
// outcome is an explicit state, not an error: the transport layer maps
// states to responses and the original UI mapped them to screens.
package resolver

import (
	"context"
	"errors"
	"strings"

	"github.com/akurlov/shortly/internal/logic"
	"github.com/akurlov/shortly/internal/models"
	"github.com/akurlov/shortly/internal/remotelog"
)

type State string

const (
	StateLoading     State = "loading"
	StateRedirecting State = "redirecting"
	StateError       State = "error"
	StateExpired     State = "expired"
)

const (
	ReasonInvalid  = "invalid shortcode"
	ReasonNotFound = "not found"

	tagRedirect = "redirect"
)

// Resolution is the terminal outcome for one shortcode lookup.
// OriginalURL is set only in StateRedirecting.
type Resolution struct {
	State       State
	OriginalURL string
	Reason      string
}

type Resolver struct {
	core *logic.CoreLogic
	diag remotelog.Logger
}

func NewResolver(core *logic.CoreLogic, diag remotelog.Logger) *Resolver {
	return &Resolver{
		core: core,
		diag: diag,
	}
}

// Resolve walks Loading -> {Redirecting, Error, Expired}. On the
// success path it records a click built from the request metadata;
// click recording is best-effort telemetry and never gates the
// redirect.
func (r *Resolver) Resolve(ctx context.Context, code string, referer string, acceptLanguage string) Resolution {
	if code == "" {
		r.diag.Warn(tagRedirect, "blank shortcode")
		return Resolution{State: StateError, Reason: ReasonInvalid}
	}

	record, err := r.core.Get(ctx, code)
	if err != nil {
		if !errors.Is(err, logic.ErrNotFound) {
			r.diag.Error(tagRedirect, err.Error())
		}
		return Resolution{State: StateError, Reason: ReasonNotFound}
	}

	if r.core.IsExpired(record) {
		return Resolution{State: StateExpired, Reason: "link expired"}
	}

	// Capture the destination before touching storage again, the
	// redirect must not depend on the click write.
	resolution := Resolution{
		State:       StateRedirecting,
		OriginalURL: record.OriginalURL,
	}

	if _, err := r.core.RecordClick(ctx, code, ClickSource(referer), ClickLocation(acceptLanguage)); err != nil {
		r.diag.Warn(tagRedirect, "click not recorded: "+err.Error())
	}

	return resolution
}

// ClickSource maps a Referer header to the recorded click source.
func ClickSource(referer string) string {
	if referer == "" {
		return models.SourceDirect
	}
	return referer
}

// ClickLocation derives a coarse locale hint from the primary
// Accept-Language tag.
func ClickLocation(acceptLanguage string) string {
	primary, _, _ := strings.Cut(acceptLanguage, ",")
	primary, _, _ = strings.Cut(primary, ";")
	primary = strings.TrimSpace(primary)
	if primary == "" || primary == "*" {
		return models.LocationUnknown
	}
	return primary
}
