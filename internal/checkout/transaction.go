package checkout

import "strings"

// TransactionResult is the outcome of the simulated payment.
type TransactionResult string

const (
	TransactionApproved     TransactionResult = "approved"
	TransactionDeclined     TransactionResult = "declined"
	TransactionGatewayError TransactionResult = "gateway_error"
)

// SimulateTransaction stands in for a payment gateway. For cards the digits
// of the number pick the outcome: "1" approves, "2" declines, "3" fails at
// the gateway and anything else approves. Other methods always approve.
func SimulateTransaction(p Payment) TransactionResult {
	if p.Method != PaymentCard {
		return TransactionApproved
	}

	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, p.CardNumber)

	switch digits {
	case "2":
		return TransactionDeclined
	case "3":
		return TransactionGatewayError
	default:
		return TransactionApproved
	}
}
