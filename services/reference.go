package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// formatProposalReference constructs the reference string from components.
func formatProposalReference(year, sequence int) string {
	return fmt.Sprintf("TOMS-%d-%04d", year, sequence)
}

// formatVoucherNumber constructs the voucher number string from components.
func formatVoucherNumber(year, sequence int) string {
	return fmt.Sprintf("TOMS-V-%d-%04d", year, sequence)
}

// maxSequence scans the year's existing references and returns the highest
// sequence number. Counting records instead would reuse a number after a
// deletion.
func maxSequence(records []*core.Record, field, prefix string) int {
	max := 0
	for _, r := range records {
		suffix := strings.TrimPrefix(r.GetString(field), prefix)
		n, err := strconv.Atoi(suffix)
		if err != nil {
			continue
		}
		if n > max {
			max = n
		}
	}
	return max
}

// GenerateProposalReference creates the next proposal reference.
// Format: TOMS-{year}-{sequence}, sequence 4-digit zero-padded per year.
// The reference is assigned once at creation and never changes.
func GenerateProposalReference(app *pocketbase.PocketBase, now time.Time) string {
	year := now.Year()
	prefix := fmt.Sprintf("TOMS-%d-", year)

	existing, err := app.FindRecordsByFilter(
		"proposals",
		"reference ~ {:prefix}",
		"", 0, 0,
		map[string]any{"prefix": prefix + "%"},
	)
	if err != nil {
		existing = nil
	}

	return formatProposalReference(year, maxSequence(existing, "reference", prefix)+1)
}

// GenerateVoucherNumber creates the next voucher number.
// Format: TOMS-V-{year}-{sequence}, sequence 4-digit zero-padded per year.
func GenerateVoucherNumber(app *pocketbase.PocketBase, now time.Time) string {
	year := now.Year()
	prefix := fmt.Sprintf("TOMS-V-%d-", year)

	existing, err := app.FindRecordsByFilter(
		"vouchers",
		"voucher_number ~ {:prefix}",
		"", 0, 0,
		map[string]any{"prefix": prefix + "%"},
	)
	if err != nil {
		existing = nil
	}

	return formatVoucherNumber(year, maxSequence(existing, "voucher_number", prefix)+1)
}
