// Package dispatch sends the corporate email composed on the site.
//
// A Dispatcher validates the request, reads the mail configuration, picks
// one transport and renders the HTML and plain text bodies before a single
// delivery attempt:
//
//	d := dispatch.New(dispatch.EnvSource(), dispatch.WithLogger(log))
//	out, err := d.Send(ctx, dispatch.Request{To: to, Subject: subject, Message: body})
//	switch dispatch.KindOf(err) {
//	case dispatch.KindMissingField:
//		// dispatch.MissingFields(err) lists the empty fields
//	case dispatch.KindProvider:
//		// mailer.AsProviderError(err) carries status and provider message
//	}
//
// The API transport is used whenever MAIL_API_KEY is set. SMTP is used only
// when no API key exists; a failed API delivery is not retried over SMTP.
package dispatch
