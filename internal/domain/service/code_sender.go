package service

import "context"

// CodeSender delivers a verification code to the owner's contact channel.
// Actual delivery (SMS gateway, email provider) is an external collaborator;
// the domain only hands over the code and the destination.
type CodeSender interface {
	// Send delivers the code to the given phone number.
	Send(ctx context.Context, phonenumber, code string) error
}
