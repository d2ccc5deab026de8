package codes

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"cosign/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/stretchr/testify/assert"
	"github.com/twitchtv/twirp"
)

func TestFrom(t *testing.T) {
	cases := []struct {
		err    error
		code   twirp.ErrorCode
		custom int
	}{
		{core.ErrNotInitialized, twirp.Unauthenticated, int(core.ErrNotInitialized)},
		{core.ErrNotSigner, twirp.PermissionDenied, int(core.ErrNotSigner)},
		{fmt.Errorf("find: %w", core.ErrVaultNotFound), twirp.NotFound, int(core.ErrVaultNotFound)},
		{core.ErrProposalNotReady, twirp.FailedPrecondition, int(core.ErrProposalNotReady)},
		{core.NewValidationError("amount", "must be positive"), twirp.InvalidArgument, InvalidArguments},
		{&core.LedgerError{Code: http.StatusForbidden, Message: "nope"}, twirp.PermissionDenied, http.StatusForbidden},
		{&core.LedgerError{Code: 4100, Message: "custom"}, twirp.Unknown, 4100},
		{fmt.Errorf("vaults.Update: %w", db.ErrOptimisticLock), twirp.Aborted, http.StatusConflict},
		{errors.New("boom"), twirp.Internal, http.StatusInternalServerError},
	}

	for _, c := range cases {
		twerr := From(c.err)
		assert.Equal(t, c.code, twerr.Code(), c.err.Error())
		assert.Equal(t, c.custom, Custom(twerr), c.err.Error())
	}
}

func TestFromLedgerDetails(t *testing.T) {
	twerr := From(&core.LedgerError{Code: 404, Message: "missing", Details: "vault v1"})
	assert.Equal(t, "missing", twerr.Msg())
	assert.Equal(t, "vault v1", twerr.Meta(HintKey))
}
