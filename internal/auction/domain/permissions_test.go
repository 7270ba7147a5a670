package domain

import (
	"testing"

	"github.com/peterldowns/testy/check"
)

func TestAdministrativeOperationsRequireAdmin(t *testing.T) {
	for name, allowed := range map[string]func(Role) bool{
		"create":           CanCreateAuction,
		"finalize":         CanFinalizeAuction,
		"process deadline": CanProcessPaymentDeadline,
		"confirm payment":  CanConfirmPayment,
	} {
		t.Run(name, func(t *testing.T) {
			check.True(t, allowed(RoleAdmin))
			check.False(t, allowed(RoleParticipant))
			check.False(t, allowed(""))
		})
	}
}
