// Package handler provides typed HTTP handlers that decode a request struct,
// return a Response and route every failure through one JSON error handler.
//
//	type verifyRequest struct {
//	    Password string `json:"password"`
//	}
//
//	func (h *accessHandler) verify(ctx handler.Context, req verifyRequest) handler.Response {
//	    grant, err := h.gate.Verify(ctx, req.Password)
//	    if err != nil {
//	        return handler.Error(err)
//	    }
//	    return handler.JSON(verifyResponse{Success: true})
//	}
//
//	r.Post("/verify-password", handler.Wrap(h.verify,
//	    handler.WithBinder[handler.Context, verifyRequest](binder.JSON()),
//	    handler.WithErrorHandler[handler.Context, verifyRequest](errHandler),
//	))
//
// Handlers signal expected failures with *APIError, which carries the status
// and the "error", "details" and "code" fields of the body. Any other error is
// rendered as a 500 whose details contain err.Error(). Binder failures map to
// 400, 413 or 415.
package handler
