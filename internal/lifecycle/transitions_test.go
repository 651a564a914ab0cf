package lifecycle

import (
	"fmt"
	"testing"

	"github.com/Eursukkul/helper-marketplace/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allStatuses = []models.BookingStatus{
	models.StatusPending,
	models.StatusCounterOffered,
	models.StatusAccepted,
	models.StatusInProgress,
	models.StatusCompleted,
	models.StatusPaid,
	models.StatusCancelled,
}

var allRoles = []models.Role{models.RoleMember, models.RoleWorker}

// legal is written out independently of the table so every cell of the
// status x role x transition grid is checked.
var legal = map[string]models.BookingStatus{
	"pending/worker/accept":                 models.StatusAccepted,
	"pending/worker/counter_offer":          models.StatusCounterOffered,
	"counter_offered/member/accept_counter": models.StatusAccepted,
	"accepted/worker/start":                 models.StatusInProgress,
	"accepted/worker/complete":              models.StatusCompleted,
	"in_progress/worker/complete":           models.StatusCompleted,
	"accepted/member/confirm_payment":       models.StatusPaid,
	"in_progress/member/confirm_payment":    models.StatusPaid,
	"completed/member/confirm_payment":      models.StatusPaid,
	"pending/member/cancel":                 models.StatusCancelled,
	"counter_offered/member/cancel":         models.StatusCancelled,
	"accepted/member/cancel":                models.StatusCancelled,
	"counter_offered/worker/cancel":         models.StatusCancelled,
	"accepted/worker/cancel":                models.StatusCancelled,
}

func TestNext_ExhaustiveGrid(t *testing.T) {
	for _, from := range allStatuses {
		for _, role := range allRoles {
			for _, tr := range Transitions {
				name := fmt.Sprintf("%s/%s/%s", from, role, tr)
				t.Run(name, func(t *testing.T) {
					to, err := Next(from, role, tr)
					want, ok := legal[name]
					if ok {
						require.NoError(t, err)
						assert.Equal(t, want, to)
						assert.True(t, Allowed(from, role, tr))
						return
					}
					assert.Error(t, err)
					assert.False(t, Allowed(from, role, tr))
				})
			}
		}
	}
}

func TestNext_RoleVersusStateErrors(t *testing.T) {
	_, err := Next(models.StatusPending, models.RoleMember, Accept)
	assert.ErrorIs(t, err, ErrRoleNotAllowed)

	_, err = Next(models.StatusAccepted, models.RoleWorker, Accept)
	assert.ErrorIs(t, err, ErrWrongState)

	_, err = Next(models.StatusPending, models.RoleWorker, AcceptCounter)
	assert.ErrorIs(t, err, ErrRoleNotAllowed)

	_, err = Next(models.StatusPaid, models.RoleMember, ConfirmPayment)
	assert.ErrorIs(t, err, ErrWrongState)
}

func TestNext_AgreedPriceStatusesAreReachedOnlyThroughPricedTransitions(t *testing.T) {
	for _, from := range allStatuses {
		for _, role := range allRoles {
			for _, tr := range Transitions {
				to, err := Next(from, role, tr)
				if err != nil {
					continue
				}
				if to.HasAgreedPrice() && !from.HasAgreedPrice() {
					assert.Contains(t, []Transition{Accept, AcceptCounter}, tr,
						"%s -> %s via %s must set the agreed price", from, to, tr)
				}
			}
		}
	}
}

func TestTerminal(t *testing.T) {
	assert.True(t, Terminal(models.StatusCancelled))
	assert.True(t, Terminal(models.StatusPaid))
	assert.False(t, Terminal(models.StatusCompleted))
	assert.False(t, Terminal(models.StatusPending))
}

func TestPermittedBy(t *testing.T) {
	assert.True(t, PermittedBy(models.RoleWorker, Accept))
	assert.False(t, PermittedBy(models.RoleMember, Accept))
	assert.True(t, PermittedBy(models.RoleMember, Cancel))
	assert.True(t, PermittedBy(models.RoleWorker, Cancel))
}
