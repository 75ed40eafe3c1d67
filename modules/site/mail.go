package site

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/corpsite/handler"
	"github.com/dmitrymomot/corpsite/pkg/binder"
	"github.com/dmitrymomot/corpsite/pkg/jwt"
	"github.com/dmitrymomot/corpsite/pkg/mailer"
	"github.com/dmitrymomot/corpsite/svc/dispatch"
)

// Dispatcher sends a validated email request.
type Dispatcher interface {
	Send(ctx context.Context, req dispatch.Request) (dispatch.Outcome, error)
}

// MailService serves POST /send-email.
type MailService struct {
	dispatcher   Dispatcher
	authorize    jwt.VerifyFunc
	errorHandler handler.ErrorHandler[handler.Context]
}

type MailOption func(*MailService)

// WithAuthorizer requires a bearer access token accepted by fn.
func WithAuthorizer(fn jwt.VerifyFunc) MailOption {
	return func(s *MailService) { s.authorize = fn }
}

func NewMailService(d Dispatcher, errorHandler handler.ErrorHandler[handler.Context], opts ...MailOption) *MailService {
	s := &MailService{dispatcher: d, errorHandler: errorHandler}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *MailService) Handle() http.Handler {
	r := chi.NewRouter()

	if s.authorize != nil {
		r.Use(jwt.Middleware(jwt.MiddlewareConfig{
			Verify: s.authorize,
			ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
				writeError(s.errorHandler, w, r,
					handler.NewAPIError(http.StatusUnauthorized, msgAccessDenied, handler.WithCause(err)))
			},
		}))
	}

	r.Post("/", handler.Wrap(s.send,
		handler.WithBinder[handler.Context, dispatch.Request](binder.JSON()),
		handler.WithErrorHandler[handler.Context, dispatch.Request](s.errorHandler),
	))

	return r
}

type SendEmailResponse struct {
	Success   bool   `json:"success"`
	MessageID string `json:"messageId"`
	Method    string `json:"method"`
	Message   string `json:"message"`
}

func (s *MailService) send(ctx handler.Context, req dispatch.Request) handler.Response {
	out, err := s.dispatcher.Send(ctx, req)
	if err != nil {
		return handler.Error(dispatchError(err))
	}

	return handler.JSON(SendEmailResponse{
		Success:   true,
		MessageID: out.MessageID,
		Method:    out.Transport.String(),
		Message:   msgSent + out.Transport.String(),
	})
}

// dispatchError maps a dispatch failure to its HTTP representation.
// Provider rejections answer 400 with the provider's status in "code".
func dispatchError(err error) *handler.APIError {
	switch dispatch.KindOf(err) {
	case dispatch.KindMissingField:
		return handler.NewAPIError(http.StatusBadRequest, msgMissingFields,
			handler.WithDetails(strings.Join(dispatch.MissingFields(err), ", ")),
			handler.WithCause(err))
	case dispatch.KindConfiguration:
		return handler.NewAPIError(http.StatusInternalServerError, msgMailUnconfigured,
			handler.WithDetails(msgMailUnconfiguredHint),
			handler.WithCause(err))
	case dispatch.KindProvider:
		pe, _ := mailer.AsProviderError(err)
		details := pe.Message
		if details == "" {
			details = msgUnknownProvider
		}
		return handler.NewAPIError(http.StatusBadRequest, msgSendFailed,
			handler.WithDetails(details),
			handler.WithCode(pe.Status),
			handler.WithCause(err))
	default:
		return handler.NewAPIError(http.StatusInternalServerError, msgInternalError,
			handler.WithDetails(err.Error()),
			handler.WithCause(err))
	}
}
