package redis

import (
	"fmt"

	"github.com/google/uuid"
)

const ns = "studiodesk:v1"

func KeyClientList(userID uuid.UUID) string {
	return fmt.Sprintf("%s:user:%s:clients", ns, userID)
}

func KeyClientSummary(userID, clientID uuid.UUID) string {
	return fmt.Sprintf("%s:user:%s:client:%s:summary", ns, userID, clientID)
}

func KeyFinanceSummary(userID uuid.UUID, month, year int) string {
	return fmt.Sprintf("%s:user:%s:finance:%d-%d", ns, userID, year, month)
}

func KeyPreference(userID uuid.UUID, name string) string {
	return fmt.Sprintf("%s:user:%s:prefs:%s", ns, userID, name)
}

func KeyQuotations(userID uuid.UUID) string {
	return fmt.Sprintf("%s:user:%s:quotations", ns, userID)
}

// KeyQuotationSeq holds the per-day document sequence. day is the
// issue date formatted 2006-01-02.
func KeyQuotationSeq(userID uuid.UUID, day string) string {
	return fmt.Sprintf("%s:user:%s:quotseq:%s", ns, userID, day)
}

func KeyIdemBooking(userID uuid.UUID, idemKey string) string {
	return fmt.Sprintf("%s:idem:bookings:%s:%s", ns, userID, idemKey)
}

func ChannelUserNotifications(userID uuid.UUID) string {
	return fmt.Sprintf("%s:user:%s:notifications", ns, userID)
}
