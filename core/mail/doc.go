// Package mail sends plain text notifications through an SMTP relay using
// jordan-wright/email.
//
// Delivery outcomes fall in three groups: success, ErrRecipientUnknown for
// permanent mailbox rejections (SMTP 550, 551 and 553), and any other error,
// which callers should treat as transient.
package mail
