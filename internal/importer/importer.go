// Package importer turns bank statement exports into transaction params.
package importer

import (
	"errors"
	"io"

	"github.com/MrJamesThe3rd/networth/internal/transaction"
)

type Bank string

const (
	BankCGD     Bank = "cgd"
	BankGeneric Bank = "generic"
)

var (
	ErrUnknownBank = errors.New("unknown bank")
	ErrUnreadable  = errors.New("unreadable statement")
)

// Parser reads one bank's export. Returned params have no account or
// category yet.
type Parser interface {
	Parse(r io.Reader) ([]transaction.CreateParams, error)
}
