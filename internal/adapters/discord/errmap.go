package discord

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/url"

	"github.com/bwmarrin/discordgo"

	"github.com/aretw0/concord/pkg/domain"
)

// Discord JSON error codes for missing entities ("Unknown X"). The REST
// status for these is sometimes 400/403 rather than 404, so they are
// matched by code as well.
const (
	codeUnknownEntityMin = 10001
	codeUnknownEntityMax = 10099
)

// MapError translates a platform-layer failure into the stable error
// taxonomy. This is the single place that understands discordgo failure
// shapes; everything above it only sees domain.Envelope.
func MapError(err error) *domain.Envelope {
	if err == nil {
		return nil
	}

	// Already classified (e.g. pre-platform checks in the adapter).
	var env *domain.Envelope
	if errors.As(err, &env) {
		return env
	}

	var rle *discordgo.RateLimitError
	if errors.As(err, &rle) {
		msg := rle.Message
		if msg == "" {
			msg = "you are being rate limited"
		}
		return domain.NewRateLimitError(rle.RetryAfter, "%s", msg)
	}

	var rerr *discordgo.RESTError
	if errors.As(err, &rerr) {
		return mapREST(rerr)
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return domain.NewError(domain.KindUnavailable, "request aborted: %v", err)
	}

	var uerr *url.Error
	if errors.As(err, &uerr) {
		return domain.NewError(domain.KindUnavailable, "transport failure: %v", uerr)
	}
	var nerr net.Error
	if errors.As(err, &nerr) {
		return domain.NewError(domain.KindUnavailable, "transport failure: %v", nerr)
	}

	return domain.NewError(domain.KindUnknown, "%v", err)
}

func mapREST(rerr *discordgo.RESTError) *domain.Envelope {
	status := 0
	if rerr.Response != nil {
		status = rerr.Response.StatusCode
	}

	msg := ""
	code := 0
	if rerr.Message != nil {
		msg = rerr.Message.Message
		code = rerr.Message.Code
	}
	if msg == "" {
		msg = http.StatusText(status)
	}
	if msg == "" {
		msg = string(rerr.ResponseBody)
	}

	// "Unknown channel/message/member/..." come back with 10xxx codes and
	// are not always status 404.
	if code >= codeUnknownEntityMin && code <= codeUnknownEntityMax {
		return domain.NewError(domain.KindNotFound, "%s", msg)
	}

	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return domain.NewError(domain.KindPermission, "%s", msg)
	case status == http.StatusNotFound:
		return domain.NewError(domain.KindNotFound, "%s", msg)
	case status == http.StatusTooManyRequests:
		// Normally surfaced as RateLimitError; this is the fallback when
		// the body could not be parsed, so no advertised wait is known.
		return &domain.Envelope{Kind: domain.KindRateLimit, Message: msg}
	case status >= 500:
		return domain.NewError(domain.KindUnavailable, "platform error (%d): %s", status, msg)
	default:
		return domain.NewError(domain.KindUnknown, "platform error (%d, code %d): %s", status, code, msg)
	}
}
