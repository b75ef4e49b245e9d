package services

import "fmt"

// ProposalStatus is the lifecycle state of a proposal.
type ProposalStatus string

const (
	ProposalNew       ProposalStatus = "NEW"
	ProposalConfirmed ProposalStatus = "CONFIRMED"
	ProposalCancelled ProposalStatus = "CANCELLED"
)

// ProposalStatuses lists every valid proposal status.
var ProposalStatuses = []ProposalStatus{ProposalNew, ProposalConfirmed, ProposalCancelled}

// ValidProposalStatus reports whether s is a known proposal status.
func ValidProposalStatus(s string) bool {
	for _, status := range ProposalStatuses {
		if string(status) == s {
			return true
		}
	}
	return false
}

// CanTransitionProposal reports whether a proposal may move from one
// status to another. CANCELLED is terminal; confirming is only allowed
// from NEW.
func CanTransitionProposal(from, to ProposalStatus) bool {
	switch from {
	case ProposalNew:
		return to == ProposalConfirmed || to == ProposalCancelled
	case ProposalConfirmed:
		return to == ProposalCancelled
	}
	return false
}

// ProposalTransitionError describes a rejected transition in user-facing
// terms. It is reported as a no-op message, never as a crash.
func ProposalTransitionError(from, to ProposalStatus) error {
	if from == to {
		return fmt.Errorf("proposal is already %s", from)
	}
	return fmt.Errorf("a %s proposal cannot be marked %s", from, to)
}

// VoucherStatus is the independent lifecycle state of a voucher.
type VoucherStatus string

const (
	VoucherPendingPayment VoucherStatus = "PENDING_PAYMENT"
	VoucherPaid           VoucherStatus = "PAID"
	VoucherCompleted      VoucherStatus = "COMPLETED"
	VoucherCancelled      VoucherStatus = "CANCELLED"
)

// VoucherStatuses lists every valid voucher status.
var VoucherStatuses = []VoucherStatus{
	VoucherPendingPayment,
	VoucherPaid,
	VoucherCompleted,
	VoucherCancelled,
}

// ValidVoucherStatus reports whether s is a known voucher status.
func ValidVoucherStatus(s string) bool {
	for _, status := range VoucherStatuses {
		if string(status) == s {
			return true
		}
	}
	return false
}

// CanTransitionVoucher reports whether a voucher may move from one status
// to another. The forward path is PENDING_PAYMENT -> PAID -> COMPLETED;
// CANCELLED is reachable from any other state and is terminal.
func CanTransitionVoucher(from, to VoucherStatus) bool {
	if from == VoucherCancelled || from == to {
		return false
	}
	if to == VoucherCancelled {
		return true
	}
	switch from {
	case VoucherPendingPayment:
		return to == VoucherPaid
	case VoucherPaid:
		return to == VoucherCompleted
	}
	return false
}

// VoucherTransitionError describes a rejected voucher transition.
func VoucherTransitionError(from, to VoucherStatus) error {
	if from == to {
		return fmt.Errorf("voucher is already %s", from)
	}
	return fmt.Errorf("a %s voucher cannot be marked %s", from, to)
}
