package ticket

import "errors"

var (
	ErrTicketNotFound     = errors.New("ticket not found")
	ErrTicketAccessDenied = errors.New("not allowed to access this ticket")
	ErrTicketClosed       = errors.New("ticket is already closed")
)
