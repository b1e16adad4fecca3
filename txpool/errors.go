package txpool

import "github.com/pkg/errors"

var (
	InvalidTransactionError     = errors.New("invalid transaction")
	InvalidSignatureError       = errors.New("invalid signature")
	InsufficientFundsError      = errors.New("insufficient funds")
	StaleNonceError             = errors.New("stale nonce")
	UnderpricedReplacementError = errors.New("underpriced replacement")
	PoolFullError               = errors.New("pool full, priority too low")
	StateUnavailableError       = errors.New("state unavailable")
	KnownTransactionError       = errors.New("known transaction")
)

// reasonOf maps a rejection to its metric label class.
func reasonOf(err error) string {
	switch errors.Cause(err) {
	case InvalidTransactionError:
		return "invalid_transaction"
	case InvalidSignatureError:
		return "invalid_signature"
	case InsufficientFundsError:
		return "insufficient_funds"
	case StaleNonceError:
		return "stale_nonce"
	case UnderpricedReplacementError:
		return "underpriced_replacement"
	case PoolFullError:
		return "pool_full"
	case StateUnavailableError:
		return "state_unavailable"
	case KnownTransactionError:
		return "known_transaction"
	default:
		return "other"
	}
}
