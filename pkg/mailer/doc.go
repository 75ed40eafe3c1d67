// Package mailer hands rendered emails to a delivery transport.
//
// Two transports are provided behind the Transport interface:
//   - PostmarkTransport delivers through the Postmark transactional API
//   - SMTPTransport delivers through any SMTP relay using gomail
//
// Each call to Transport.Send is a single attempt. Nothing is retried and
// there is no failover between transports; choosing a transport is the
// caller's job.
//
// # Usage
//
//	tr, err := mailer.NewPostmarkTransport(mailer.PostmarkConfig{ServerToken: token})
//	if err != nil {
//	    return err
//	}
//
//	receipt, err := tr.Send(ctx, mailer.Message{
//	    From:    mailer.Address{Email: "noreply@example.com"},
//	    To:      "user@example.com",
//	    Subject: "Hello",
//	    HTML:    html,
//	    Text:    text,
//	})
//
// # Error Handling
//
// Rejections reported by the remote side are returned as *ProviderError with
// the HTTP status (API) or SMTP reply code and the provider's message:
//
//	if pe, ok := mailer.AsProviderError(err); ok {
//	    log.Printf("rejected by %s: %d %s", pe.Transport, pe.Status, pe.Message)
//	}
//
// All delivery failures, provider rejections included, match ErrDeliveryFailed.
// Invalid input matches ErrInvalidMessage and bad configuration ErrInvalidConfig.
package mailer
